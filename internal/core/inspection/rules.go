package inspection

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Marker はルート直下のマーカーファイルと技術名の対応
type Marker struct {
	File       string `yaml:"file"`
	Technology string `yaml:"technology"`
}

// Rules は解析時に使用する固定パラメータ
type Rules struct {
	// SourceExtensions は行メトリクスの対象となる拡張子
	SourceExtensions []string `yaml:"source_extensions"`

	// CommentPrefixes はコメント行とみなす行頭トークン
	CommentPrefixes []string `yaml:"comment_prefixes"`

	// Markers は技術スタック判定用のマーカーテーブル（順序あり）
	Markers []Marker `yaml:"markers"`

	// ExcludeSubstring を相対パスに含むディレクトリは解析対象外
	ExcludeSubstring string `yaml:"exclude_substring"`
}

// DefaultRules はデフォルトの解析ルールを返す
func DefaultRules() Rules {
	return Rules{
		SourceExtensions: []string{".py", ".js", ".java", ".cpp", ".cs", ".rb", ".php", ".go"},
		CommentPrefixes:  []string{"#", "//", "/*", "*", "*/"},
		Markers: []Marker{
			{File: "package.json", Technology: "Node.js"},
			{File: "requirements.txt", Technology: "Python"},
			{File: "pom.xml", Technology: "Java/Maven"},
			{File: "build.gradle", Technology: "Java/Gradle"},
			{File: "Cargo.toml", Technology: "Rust"},
			{File: "go.mod", Technology: "Go"},
			{File: "Gemfile", Technology: "Ruby"},
			{File: "composer.json", Technology: "PHP"},
			{File: "Dockerfile", Technology: "Docker"},
			{File: "docker-compose.yml", Technology: "Docker"},
		},
		ExcludeSubstring: ".git",
	}
}

// LoadRules はYAMLファイルを読み込み、指定された項目のみデフォルトを上書きする
// path が空の場合はデフォルトをそのまま返す
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	var override Rules
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Rules{}, fmt.Errorf("failed to parse rules file: %w", err)
	}

	if len(override.SourceExtensions) > 0 {
		rules.SourceExtensions = normalizeExtensions(override.SourceExtensions)
	}
	if len(override.CommentPrefixes) > 0 {
		rules.CommentPrefixes = override.CommentPrefixes
	}
	if len(override.Markers) > 0 {
		rules.Markers = override.Markers
	}
	if override.ExcludeSubstring != "" {
		rules.ExcludeSubstring = override.ExcludeSubstring
	}

	return rules, nil
}

// sourceExtensionSet は拡張子の集合を返す
func (r Rules) sourceExtensionSet() map[string]struct{} {
	set := make(map[string]struct{}, len(r.SourceExtensions))
	for _, ext := range r.SourceExtensions {
		set[ext] = struct{}{}
	}
	return set
}

// normalizeExtensions は拡張子を小文字・ドット付きに揃える
func normalizeExtensions(exts []string) []string {
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return normalized
}
