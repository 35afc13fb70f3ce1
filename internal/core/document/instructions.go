package document

import (
	"fmt"
	"strings"

	"github.com/jinford/repo-analyzer/internal/core/inspection"
)

const (
	// InstructionsFileName はレビュー指示書のファイル名
	InstructionsFileName = "instructions.md"
	// ReportFileName はレビュー結果を書き込むレポートのファイル名
	ReportFileName = "report.md"
	// OutputFileName は下流エージェントの出力を保存するファイル名
	OutputFileName = "output.md"
	// AnalysisFileName は機械可読な解析結果のファイル名
	AnalysisFileName = "analysis.json"
)

// RenderInstructions はレポートから固定テンプレートのレビュー指示書を生成する
// 同じレポートからは常に同じ文字列が生成される
func RenderInstructions(report *inspection.AnalysisReport) string {
	info := report.Repository()
	metrics := report.Metrics()

	var sb strings.Builder

	sb.WriteString("# Repository Analysis and Recommendations\n\n")

	// 1. 概要
	sb.WriteString("## 1. Overview (Current Architecture and Design)\n\n")
	sb.WriteString("### Repository Information\n")
	sb.WriteString(fmt.Sprintf("- Name: %s\n", info.Name))
	sb.WriteString(fmt.Sprintf("- Description: %s\n", info.Description))
	sb.WriteString(fmt.Sprintf("- Last Updated: %s\n", info.LastCommit))
	sb.WriteString(fmt.Sprintf("- Branch: %s\n", info.Branch))
	sb.WriteString(fmt.Sprintf("- Total Commits: %d\n", info.TotalCommits))
	sb.WriteString(fmt.Sprintf("- Contributors: %d\n", info.Contributors))
	sb.WriteString(fmt.Sprintf("- Repository Path: %s\n\n", report.Path()))

	sb.WriteString("### Codebase Structure\n")
	sb.WriteString(fmt.Sprintf("- Total Files: %d\n", report.TotalFiles()))
	sb.WriteString(fmt.Sprintf("- File Types: %s\n\n", formatFileTypes(report.FileTypes())))

	sb.WriteString("### Directory Structure\n")
	sb.WriteString(formatDirectories(report.Directories()))
	sb.WriteString("\n\n")

	// 2. 技術スタックとメトリクス
	sb.WriteString("## 2. Tech Stack and Code Quality\n\n")
	sb.WriteString("### Technology Stack\n")
	sb.WriteString(fmt.Sprintf("- Languages Detected: %s\n", strings.Join(report.Technologies(), ", ")))
	sb.WriteString(fmt.Sprintf("- Frameworks: %s\n", strings.Join(report.Frameworks(), ", ")))
	sb.WriteString(fmt.Sprintf("- Dependencies: %s\n\n", strings.Join(report.Dependencies(), ", ")))

	sb.WriteString("### Code Metrics\n")
	sb.WriteString(fmt.Sprintf("- Total Lines: %d\n", metrics.TotalLines))
	sb.WriteString(fmt.Sprintf("- Code Lines: %d\n", metrics.CodeLines))
	sb.WriteString(fmt.Sprintf("- Comment Lines: %d\n", metrics.CommentLines))
	sb.WriteString(fmt.Sprintf("- Blank Lines: %d\n", metrics.BlankLines))
	sb.WriteString("- File Size Distribution:\n")
	sb.WriteString(fmt.Sprintf("  - Small Files (<100 lines): %d\n", metrics.FileSizes.Small))
	sb.WriteString(fmt.Sprintf("  - Medium Files (100-500 lines): %d\n", metrics.FileSizes.Medium))
	sb.WriteString(fmt.Sprintf("  - Large Files (>500 lines): %d\n\n", metrics.FileSizes.Large))

	// 3, 4 は固定文
	sb.WriteString(recommendationsSection)
	sb.WriteString(outputInstructionsSection)

	return sb.String()
}

func formatFileTypes(counts []inspection.ExtensionCount) string {
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		parts = append(parts, fmt.Sprintf("%s: %d", c.Extension, c.Count))
	}
	return strings.Join(parts, ", ")
}

func formatDirectories(entries []inspection.DirectoryEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("- **%s**\n", e.Path))
		sb.WriteString(fmt.Sprintf("  - Files: %d\n", e.FileCount))
		sb.WriteString(fmt.Sprintf("  - Subdirectories: %d\n", e.SubdirectoryCount))
	}
	return sb.String()
}

const recommendationsSection = `## 3. Recommendations

Please analyze this repository and provide specific, actionable recommendations in the following areas:

### A. Architecture and Design Improvements
- Evaluate current architecture and design patterns
- Identify potential architectural improvements
- Suggest design pattern implementations
- Recommend structural changes

### B. Code Quality and Security
- Identify code quality issues and suggest improvements
- Review error handling and logging practices
- Identify security vulnerabilities
- Suggest security improvements
- Review authentication and authorization

### C. Technology and Performance
- Evaluate technology choices and suggest modern alternatives
- Identify performance bottlenecks
- Suggest optimization opportunities
- Recommend dependency updates
- Evaluate scalability considerations

### D. Testing and Documentation
- Evaluate test coverage and quality
- Suggest testing improvements and tools
- Review existing documentation
- Identify documentation gaps
- Recommend documentation tools and practices

### E. Development Workflow
- Evaluate CI/CD practices
- Suggest workflow improvements
- Recommend development tools
- Identify automation opportunities

### F. Project Ideas and Extensions
- Suggest complementary projects to build
- Recommend features to add
- Identify integration opportunities
- Suggest experimental improvements

Please provide specific, actionable recommendations for each area, with examples where appropriate. Focus on practical improvements that can be implemented incrementally. When referencing specific files or code, please use the actual file paths from the cloned repository.

`

const outputInstructionsSection = `## 4. Output Instructions

After completing your analysis, please save your findings to the report.md file in the same directory as this instructions.md file. The report.md file has already been created with a basic structure. Please update the "Analysis Results" section with your detailed analysis and the "Recommendations" and "Next Steps" sections with your specific recommendations.
`
