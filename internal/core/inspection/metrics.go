package inspection

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

const (
	// mediumThreshold 行以上のファイルは medium
	mediumThreshold = 100
	// largeThreshold 行以上のファイルは large
	largeThreshold = 500
)

// BucketFor は行数からサイズ分類を返す
func BucketFor(lines int) SizeBucket {
	switch {
	case lines < mediumThreshold:
		return SizeSmall
	case lines < largeThreshold:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// FileMetrics は1ファイル分の行メトリクス
type FileMetrics struct {
	Lines   int
	Code    int
	Comment int
	Blank   int
	Bucket  SizeBucket
}

// FileOutcome はファイル単位の抽出結果
// Skipped が nil でない場合、そのファイルは集計に含めない
type FileOutcome struct {
	Path    string
	Metrics FileMetrics
	Skipped error
}

// Counted は集計対象かどうかを返す
func (o FileOutcome) Counted() bool {
	return o.Skipped == nil
}

// Extractor は行頭トークンによるヒューリスティックで行を分類する
type Extractor struct {
	commentPrefixes []string
}

// NewExtractor は新しいExtractorを作成する
func NewExtractor(rules Rules) *Extractor {
	return &Extractor{commentPrefixes: rules.CommentPrefixes}
}

// ExtractContent はファイル内容を行ごとに分類する
// UTF-8として不正な内容は ErrDecode を返す
func (e *Extractor) ExtractContent(content []byte) (FileMetrics, error) {
	if !utf8.Valid(content) {
		return FileMetrics{}, ErrDecode
	}

	var m FileMetrics
	for _, line := range splitLines(string(content)) {
		m.Lines++
		stripped := strings.TrimSpace(line)
		switch {
		case stripped == "":
			m.Blank++
		case e.isComment(stripped):
			m.Comment++
		default:
			m.Code++
		}
	}
	m.Bucket = BucketFor(m.Lines)

	return m, nil
}

// ExtractFile はファイルを読み込んで行メトリクスを抽出する
// 読み込みやデコードに失敗した場合は Skipped に理由を設定して返す
func (e *Extractor) ExtractFile(path string) FileOutcome {
	content, err := os.ReadFile(path)
	if err != nil {
		return FileOutcome{Path: path, Skipped: err}
	}

	metrics, err := e.ExtractContent(content)
	if err != nil {
		return FileOutcome{Path: path, Skipped: fmt.Errorf("%s: %w", path, err)}
	}

	return FileOutcome{Path: path, Metrics: metrics}
}

func (e *Extractor) isComment(stripped string) bool {
	for _, prefix := range e.commentPrefixes {
		if strings.HasPrefix(stripped, prefix) {
			return true
		}
	}
	return false
}

// splitLines は \n, \r\n, \r のいずれも改行として分割する
// 末尾の改行は空行を生まない
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// Sum は集計対象の結果のみを合算する
func Sum(outcomes []FileOutcome) CodeMetrics {
	var total CodeMetrics
	for _, o := range outcomes {
		if !o.Counted() {
			continue
		}
		total.TotalLines += o.Metrics.Lines
		total.CodeLines += o.Metrics.Code
		total.CommentLines += o.Metrics.Comment
		total.BlankLines += o.Metrics.Blank

		switch o.Metrics.Bucket {
		case SizeSmall:
			total.FileSizes.Small++
		case SizeMedium:
			total.FileSizes.Medium++
		case SizeLarge:
			total.FileSizes.Large++
		}
	}
	return total
}

// Aggregator はソースファイルの行メトリクスを並列に抽出して集計する
type Aggregator struct {
	extractor  *Extractor
	sourceExts map[string]struct{}
	workers    int
	logger     *slog.Logger
}

// NewAggregator は新しいAggregatorを作成する
// workers が0以下の場合はCPU数を使用する
func NewAggregator(rules Rules, workers int, logger *slog.Logger) *Aggregator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		extractor:  NewExtractor(rules),
		sourceExts: rules.sourceExtensionSet(),
		workers:    workers,
		logger:     logger,
	}
}

// SourceFiles はツリーからソース対象ファイルの相対パスを抽出する（ソート済み）
func (a *Aggregator) SourceFiles(tree *TreeSummary) []string {
	var paths []string
	for path, record := range tree.Files {
		if _, ok := a.sourceExts[record.Extension]; ok {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// Aggregate はツリー内のソースファイルを抽出・集計する
// 個々のファイルの失敗は集計から除外するだけでエラーにはしない
func (a *Aggregator) Aggregate(ctx context.Context, root string, tree *TreeSummary) (CodeMetrics, error) {
	paths := a.SourceFiles(tree)
	outcomes := make([]FileOutcome, len(paths))

	workers := min(a.workers, len(paths))
	jobs := make(chan int)
	var wg sync.WaitGroup

	// 各ワーカーは受け取ったインデックスのスロットにのみ書き込む
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				rel := paths[index]
				outcome := a.extractor.ExtractFile(filepath.Join(root, rel))
				outcome.Path = rel
				outcomes[index] = outcome
			}
		}()
	}

dispatch:
	for i := range paths {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return CodeMetrics{}, err
	}

	skipped := 0
	for _, o := range outcomes {
		if !o.Counted() {
			skipped++
			a.logger.Debug("ファイルをメトリクス集計から除外しました", "path", o.Path, "reason", o.Skipped)
		}
	}

	metrics := Sum(outcomes)
	a.logger.Debug("行メトリクスの集計が完了しました",
		"files", len(paths),
		"skipped", skipped,
		"totalLines", metrics.TotalLines,
	)

	return metrics, nil
}
