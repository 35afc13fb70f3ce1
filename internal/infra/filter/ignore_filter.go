package filter

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// AnalyzerIgnoreFile はリポジトリ固有の除外パターンを記述するファイル名
const AnalyzerIgnoreFile = ".analyzerignore"

// IgnoreFilter は .gitignore と .analyzerignore のパターンマッチングを提供します
type IgnoreFilter struct {
	patterns *gitignore.GitIgnore
}

// NewIgnoreFilter は新しいIgnoreFilterを作成します
// repoPath 直下の .gitignore と .analyzerignore、およびデフォルトパターンを使用します
func NewIgnoreFilter(repoPath string) (*IgnoreFilter, error) {
	var patterns []string

	for _, name := range []string{".gitignore", AnalyzerIgnoreFile} {
		filePatterns, err := readIgnoreFile(filepath.Join(repoPath, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		patterns = append(patterns, filePatterns...)
	}

	patterns = append(patterns, defaultIgnorePatterns()...)

	return &IgnoreFilter{
		patterns: gitignore.CompileIgnoreLines(patterns...),
	}, nil
}

// ShouldIgnore はパス（ルート相対、スラッシュ区切り）が除外対象かどうかを判定します
func (f *IgnoreFilter) ShouldIgnore(path string) bool {
	if f == nil || f.patterns == nil {
		return false
	}
	return f.patterns.MatchesPath(path)
}

// readIgnoreFile は ignore ファイルを読み込んでパターンのスライスを返します
// ファイルが存在しない場合は空を返します
func readIgnoreFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var patterns []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		// 空行とコメント行をスキップ
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return patterns, nil
}

// defaultIgnorePatterns は依存関係・ビルド成果物などのデフォルト除外パターンを返します
func defaultIgnorePatterns() []string {
	return []string{
		// 依存関係
		"node_modules",
		"vendor",
		"__pycache__",
		".venv",

		// ビルド成果物
		"dist",
		"build",
		"target",
		".next",
		".nuxt",

		// IDE/エディタ関連
		".vscode",
		".idea",
		".DS_Store",
	}
}
