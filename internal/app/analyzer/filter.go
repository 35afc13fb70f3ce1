package analyzer

import (
	"path/filepath"
	"strings"

	"github.com/jinford/repo-analyzer/internal/core/inspection"
)

// pathFilters は複数のフィルタのいずれかが除外すればそのパスを除外する
type pathFilters []inspection.PathFilter

func (f pathFilters) ShouldIgnore(path string) bool {
	for _, filter := range f {
		if filter.ShouldIgnore(path) {
			return true
		}
	}
	return false
}

// subtreeFilter はルート相対の1ディレクトリ配下をすべて除外する
type subtreeFilter struct {
	rel string
}

func (f subtreeFilter) ShouldIgnore(path string) bool {
	return path == f.rel || strings.HasPrefix(path, f.rel+"/")
}

// outputDirFilter は出力ルートが解析対象の内側にある場合にそれを除外するフィルタを返す
// 内側にない場合は nil
func outputDirFilter(repoPath, outputRoot string) inspection.PathFilter {
	repoAbs, err := absPath(repoPath)
	if err != nil {
		return nil
	}
	outAbs, err := absPath(outputRoot)
	if err != nil {
		return nil
	}

	rel, err := filepath.Rel(repoAbs, outAbs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return subtreeFilter{rel: filepath.ToSlash(rel)}
}

// absPath はシンボリックリンクを解決した絶対パスを返す
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
