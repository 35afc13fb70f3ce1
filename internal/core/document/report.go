package document

import (
	"fmt"
	"strings"
	"time"
)

// RenderReportStub は見出しのみを持つ空のレポートを生成する
// 解析日付以外は常に同じ内容になる
func RenderReportStub(repoName string, analyzedAt time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Repository Analysis Report\n\n")
	sb.WriteString("## Overview\n")
	sb.WriteString("This report contains the analysis of the repository based on the instructions provided.\n\n")
	sb.WriteString("## Repository Information\n")
	sb.WriteString(fmt.Sprintf("- Repository: %s\n", repoName))
	sb.WriteString(fmt.Sprintf("- Analysis Date: %s\n\n", analyzedAt.Format("January 02, 2006")))
	sb.WriteString("## Analysis Results\n")
	sb.WriteString("[Your analysis results will be added here]\n\n")
	sb.WriteString("## Recommendations\n")
	sb.WriteString("[Your recommendations will be added here]\n\n")
	sb.WriteString("## Next Steps\n")
	sb.WriteString("[Your next steps will be added here]\n")

	return sb.String()
}
