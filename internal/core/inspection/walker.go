package inspection

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// PathFilter は相対パスを解析対象から除外するかどうかを判定する
type PathFilter interface {
	ShouldIgnore(path string) bool
}

// Walker はディレクトリツリーを1回走査し、構造情報を収集する
type Walker struct {
	excludeSubstring string
	filter           PathFilter
}

// NewWalker は新しいWalkerを作成する
// filter が nil の場合はルールによる除外のみを行う
func NewWalker(rules Rules, filter PathFilter) *Walker {
	return &Walker{
		excludeSubstring: rules.ExcludeSubstring,
		filter:           filter,
	}
}

// Walk は root 配下を走査し、ディレクトリ・ファイル・拡張子の集計を返す
// ルートが存在しない、またはディレクトリでない場合は ErrAccess を返す
func (w *Walker) Walk(ctx context.Context, root string) (*TreeSummary, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAccess, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrAccess, root)
	}

	summary := NewTreeSummary()

	// シンボリックリンク先のディレクトリには降りないため、各ディレクトリは1回だけ訪問される
	pending := []string{"."}
	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rel := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		entries, err := os.ReadDir(filepath.Join(root, rel))
		if err != nil {
			if rel == "." {
				return nil, fmt.Errorf("%w: %s: %v", ErrAccess, root, err)
			}
			// 読めないサブディレクトリは走査しない
			continue
		}

		fileCount, subdirCount := 0, 0
		for _, entry := range entries {
			childRel := joinRel(rel, entry.Name())
			if w.filter != nil && w.filter.ShouldIgnore(filepath.ToSlash(childRel)) {
				continue
			}

			childAbs := filepath.Join(root, childRel)
			isDir, descend := entry.IsDir(), entry.IsDir()
			if entry.Type()&fs.ModeSymlink != 0 {
				if target, err := os.Stat(childAbs); err == nil && target.IsDir() {
					isDir = true
				}
			}

			if isDir {
				subdirCount++
				if descend && !w.excluded(childRel) {
					pending = append(pending, childRel)
				}
				continue
			}

			fileCount++
			ext := Classify(childRel)
			lang := DetectLanguage(childRel)
			summary.Files[childRel] = FileRecord{
				Size:      fileSize(childAbs, entry),
				Extension: ext,
				Language:  lang,
			}
			summary.FileTypes[ext]++
			if lang != "" {
				summary.Languages[lang]++
			}
		}

		if rel != "." {
			summary.Directories[rel] = DirectoryInfo{
				FileCount:         fileCount,
				SubdirectoryCount: subdirCount,
			}
		}
	}

	return summary, nil
}

// excluded はディレクトリの相対パスが除外文字列を含むかを判定する
// 区切り単位ではなく部分文字列で判定する（x.github なども対象になる）
func (w *Walker) excluded(rel string) bool {
	return w.excludeSubstring != "" && strings.Contains(rel, w.excludeSubstring)
}

func joinRel(dir, name string) string {
	if dir == "." {
		return name
	}
	return filepath.Join(dir, name)
}

// fileSize はリンク先を辿ったサイズを返す。リンク切れの場合はリンク自体のサイズ
func fileSize(path string, entry fs.DirEntry) int64 {
	if info, err := os.Stat(path); err == nil {
		return info.Size()
	}
	if info, err := entry.Info(); err == nil {
		return info.Size()
	}
	return 0
}
