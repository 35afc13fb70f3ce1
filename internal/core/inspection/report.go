package inspection

import (
	"encoding/json"
	"maps"
	"sort"
)

// DirectoryEntry はソート済みディレクトリ一覧の1要素
type DirectoryEntry struct {
	Path string
	DirectoryInfo
}

// ExtensionCount はソート済み拡張子ヒストグラムの1要素
type ExtensionCount struct {
	Extension string
	Count     int
}

// AnalysisReport は1回の解析結果をまとめた不変のレポート
// 生成後は変更されず、アクセサはすべてコピーを返す
type AnalysisReport struct {
	repository RepositoryInfo
	path       string
	tree       *TreeSummary
	tech       TechStack
	metrics    CodeMetrics
}

// Assemble は各コンポーネントの結果からレポートを組み立てる
// 欠けている入力は空の値で補う
func Assemble(info RepositoryInfo, path string, tree *TreeSummary, tech TechStack, metrics CodeMetrics) *AnalysisReport {
	copied := NewTreeSummary()
	if tree != nil {
		maps.Copy(copied.Directories, tree.Directories)
		maps.Copy(copied.Files, tree.Files)
		maps.Copy(copied.FileTypes, tree.FileTypes)
		maps.Copy(copied.Languages, tree.Languages)
	}

	// 検出順のキーを先に、順序情報のないキーはソートして後ろに並べる
	stack := NewTechStack()
	for _, name := range tech.order {
		if value, ok := tech.Languages[name]; ok {
			stack.Languages[name] = value
			stack.order = append(stack.order, name)
		}
	}
	for _, name := range sortedKeys(tech.Languages) {
		if _, ok := stack.Languages[name]; !ok {
			stack.Languages[name] = tech.Languages[name]
			stack.order = append(stack.order, name)
		}
	}
	maps.Copy(stack.Frameworks, tech.Frameworks)
	maps.Copy(stack.Dependencies, tech.Dependencies)

	return &AnalysisReport{
		repository: info,
		path:       path,
		tree:       copied,
		tech:       stack,
		metrics:    metrics,
	}
}

// Repository はリポジトリ情報を返す
func (r *AnalysisReport) Repository() RepositoryInfo { return r.repository }

// Path は解析したワーキングコピーのパスを返す
func (r *AnalysisReport) Path() string { return r.path }

// Metrics は行メトリクスの集計を返す
func (r *AnalysisReport) Metrics() CodeMetrics { return r.metrics }

// TotalFiles は記録したファイル総数を返す
func (r *AnalysisReport) TotalFiles() int { return r.tree.TotalFiles() }

// Directories は相対パスでソートしたディレクトリ一覧を返す
func (r *AnalysisReport) Directories() []DirectoryEntry {
	entries := make([]DirectoryEntry, 0, len(r.tree.Directories))
	for path, info := range r.tree.Directories {
		entries = append(entries, DirectoryEntry{Path: path, DirectoryInfo: info})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries
}

// Files はファイル記録のコピーを返す
func (r *AnalysisReport) Files() map[string]FileRecord {
	return maps.Clone(r.tree.Files)
}

// FileTypes は拡張子でソートしたヒストグラムを返す
func (r *AnalysisReport) FileTypes() []ExtensionCount {
	return sortedCounts(r.tree.FileTypes)
}

// LanguageHistogram は言語ごとのファイル数のコピーを返す
func (r *AnalysisReport) LanguageHistogram() map[string]int {
	return maps.Clone(r.tree.Languages)
}

// Technologies は検出した技術名をマーカーテーブル順で返す
func (r *AnalysisReport) Technologies() []string { return r.tech.LanguageNames() }

// Frameworks はフレームワーク名をソートして返す
func (r *AnalysisReport) Frameworks() []string { return sortedKeys(r.tech.Frameworks) }

// Dependencies は依存関係名をソートして返す
func (r *AnalysisReport) Dependencies() []string { return sortedKeys(r.tech.Dependencies) }

// MarshalJSON は analysis.json 用の表現を返す
func (r *AnalysisReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Repository    RepositoryInfo `json:"repository_info"`
		Path          string         `json:"path"`
		FileStructure struct {
			Directories map[string]DirectoryInfo `json:"directories"`
			Files       map[string]FileRecord    `json:"files"`
			FileTypes   map[string]int           `json:"file_types"`
			TotalFiles  int                      `json:"total_files"`
		} `json:"file_structure"`
		Languages    map[string]int `json:"language_histogram"`
		Technologies TechStack      `json:"technologies"`
		Metrics      CodeMetrics    `json:"code_metrics"`
	}{
		Repository: r.repository,
		Path:       r.path,
		FileStructure: struct {
			Directories map[string]DirectoryInfo `json:"directories"`
			Files       map[string]FileRecord    `json:"files"`
			FileTypes   map[string]int           `json:"file_types"`
			TotalFiles  int                      `json:"total_files"`
		}{
			Directories: r.tree.Directories,
			Files:       r.tree.Files,
			FileTypes:   r.tree.FileTypes,
			TotalFiles:  r.tree.TotalFiles(),
		},
		Languages:    r.tree.Languages,
		Technologies: r.tech,
		Metrics:      r.metrics,
	})
}

func sortedCounts(m map[string]int) []ExtensionCount {
	counts := make([]ExtensionCount, 0, len(m))
	for ext, n := range m {
		counts = append(counts, ExtensionCount{Extension: ext, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Extension < counts[j].Extension })
	return counts
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
