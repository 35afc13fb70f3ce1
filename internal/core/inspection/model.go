package inspection

// DirectoryInfo はディレクトリ直下のファイル数とサブディレクトリ数を表す
type DirectoryInfo struct {
	FileCount         int `json:"file_count"`
	SubdirectoryCount int `json:"subdirectories"`
}

// FileRecord は1ファイル分の記録
type FileRecord struct {
	Size      int64  `json:"size"`
	Extension string `json:"extension"`
	Language  string `json:"language,omitempty"`
}

// TreeSummary はツリーウォークの結果
type TreeSummary struct {
	Directories map[string]DirectoryInfo `json:"directories"`
	Files       map[string]FileRecord    `json:"files"`
	FileTypes   map[string]int           `json:"file_types"`
	Languages   map[string]int           `json:"languages"`
}

// NewTreeSummary は空のTreeSummaryを作成する
func NewTreeSummary() *TreeSummary {
	return &TreeSummary{
		Directories: make(map[string]DirectoryInfo),
		Files:       make(map[string]FileRecord),
		FileTypes:   make(map[string]int),
		Languages:   make(map[string]int),
	}
}

// TotalFiles はウォーク中に記録したファイル数を返す
func (s *TreeSummary) TotalFiles() int {
	return len(s.Files)
}

// TechStack はマーカーファイルから検出した技術スタック
// Frameworks と Dependencies は現状では常に空
type TechStack struct {
	Languages    map[string]string `json:"languages"`
	Frameworks   map[string]string `json:"frameworks"`
	Dependencies map[string]string `json:"dependencies"`

	// order は Languages のキーを検出順に保持する
	order []string
}

// NewTechStack は空のTechStackを作成する
func NewTechStack() TechStack {
	return TechStack{
		Languages:    make(map[string]string),
		Frameworks:   make(map[string]string),
		Dependencies: make(map[string]string),
	}
}

// markDetected は技術を検出済みとして記録する
func (t *TechStack) markDetected(name string) {
	if _, exists := t.Languages[name]; exists {
		return
	}
	t.Languages[name] = DetectedFlag
	t.order = append(t.order, name)
}

// LanguageNames は検出した技術名をマーカーテーブル順で返す
func (t TechStack) LanguageNames() []string {
	names := make([]string, len(t.order))
	copy(names, t.order)
	return names
}

// DetectedFlag は検出済みの技術に付与される値
const DetectedFlag = "detected"

// SizeBucket はファイルの行数による分類
type SizeBucket string

const (
	SizeSmall  SizeBucket = "small"
	SizeMedium SizeBucket = "medium"
	SizeLarge  SizeBucket = "large"
)

// FileSizes はサイズ分類ごとのファイル数
type FileSizes struct {
	Small  int `json:"small"`
	Medium int `json:"medium"`
	Large  int `json:"large"`
}

// CodeMetrics は集計済みの行メトリクス
type CodeMetrics struct {
	TotalLines   int       `json:"total_lines"`
	CodeLines    int       `json:"code_lines"`
	CommentLines int       `json:"comment_lines"`
	BlankLines   int       `json:"blank_lines"`
	FileSizes    FileSizes `json:"file_sizes"`
}

// RepositoryInfo はバージョン管理側から取得したリポジトリ情報
type RepositoryInfo struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	LastCommit   string `json:"last_commit"`
	Branch       string `json:"branch"`
	TotalCommits int    `json:"total_commits"`
	Contributors int    `json:"contributors"`
}

const (
	// NoDescription は説明が取得できない場合の既定値
	NoDescription = "No description available"
	// Unknown は取得できなかったメタデータの既定値
	Unknown = "unknown"
)

// UnknownRepositoryInfo はメタデータが取得できない場合の既定値を返す
func UnknownRepositoryInfo(name string) RepositoryInfo {
	return RepositoryInfo{
		Name:        name,
		Description: NoDescription,
		LastCommit:  Unknown,
		Branch:      Unknown,
	}
}
