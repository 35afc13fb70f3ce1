package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrWrite は解析結果の書き込みに失敗した場合のエラー
	ErrWrite = errors.New("failed to write analysis output")

	// ErrTargetNotFound は対象リポジトリの出力ディレクトリが存在しない場合のエラー
	ErrTargetNotFound = errors.New("repository directory not found")

	// ErrInvalidName はリポジトリ名として使用できない場合のエラー
	ErrInvalidName = errors.New("invalid repository name")
)

// cloneDirName は出力ディレクトリ内のクローン先
const cloneDirName = "repo"

// Document は出力ディレクトリに書き込む1ファイル
type Document struct {
	Name    string
	Content []byte
}

// Workspace は解析結果の出力ディレクトリを管理する
// 出力先はプロセス全体の状態ではなく、このインスタンスに保持される
type Workspace struct {
	root string
}

// New は出力ルートを作成して Workspace を返す
func New(root string) (*Workspace, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: failed to create output directory %s: %v", ErrWrite, root, err)
	}
	return &Workspace{root: root}, nil
}

// Root は出力ルートを返す
func (w *Workspace) Root() string {
	return w.root
}

// TargetDir はリポジトリごとの出力ディレクトリを返す
func (w *Workspace) TargetDir(name string) string {
	return filepath.Join(w.root, name)
}

// CloneDir はリモートリポジトリのクローン先を返す
func (w *Workspace) CloneDir(name string) string {
	return filepath.Join(w.TargetDir(name), cloneDirName)
}

// EnsureTarget はリポジトリごとの出力ディレクトリを作成する
func (w *Workspace) EnsureTarget(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	dir := w.TargetDir(name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: failed to create %s: %v", ErrWrite, dir, err)
	}
	return dir, nil
}

// Publish は全ドキュメントを一時ファイルに書き出した後にまとめて配置する
// 途中で失敗した場合は書き出したファイルを削除し、何も残さない
func (w *Workspace) Publish(name string, docs []Document) ([]string, error) {
	dir, err := w.EnsureTarget(name)
	if err != nil {
		return nil, err
	}

	staged := make([]string, 0, len(docs))
	removeStaged := func() {
		for _, path := range staged {
			_ = os.Remove(path)
		}
	}

	for _, doc := range docs {
		path, err := stage(dir, doc)
		if err != nil {
			removeStaged()
			return nil, fmt.Errorf("%w: %s: %v", ErrWrite, doc.Name, err)
		}
		staged = append(staged, path)
	}

	published := make([]string, 0, len(docs))
	for i, doc := range docs {
		dest := filepath.Join(dir, doc.Name)
		if err := os.Rename(staged[i], dest); err != nil {
			removeStaged()
			for _, path := range published {
				_ = os.Remove(path)
			}
			return nil, fmt.Errorf("%w: %s: %v", ErrWrite, doc.Name, err)
		}
		published = append(published, dest)
	}

	return published, nil
}

// SaveOutput は下流エージェントの出力を output.md として保存する
// 出力ディレクトリが存在しない場合は ErrTargetNotFound を返す
func (w *Workspace) SaveOutput(name, fileName string, content []byte) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	dir := w.TargetDir(name)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrTargetNotFound, dir)
	}

	paths, err := w.Publish(name, []Document{{Name: fileName, Content: content}})
	if err != nil {
		return "", err
	}
	return paths[0], nil
}

// Cleanup はリポジトリの出力ディレクトリ（クローンを含む）を削除する
// ディレクトリが存在しなかった場合は false を返す
func (w *Workspace) Cleanup(name string) (bool, error) {
	if err := validateName(name); err != nil {
		return false, err
	}
	dir := w.TargetDir(name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return false, nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("%w: failed to remove %s: %v", ErrWrite, dir, err)
	}
	return true, nil
}

// CleanupAll は出力ルート配下をすべて削除し、空のルートを作り直す
func (w *Workspace) CleanupAll() error {
	if err := os.RemoveAll(w.root); err != nil {
		return fmt.Errorf("%w: failed to remove %s: %v", ErrWrite, w.root, err)
	}
	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return fmt.Errorf("%w: failed to recreate %s: %v", ErrWrite, w.root, err)
	}
	return nil
}

func stage(dir string, doc Document) (string, error) {
	f, err := os.CreateTemp(dir, "."+doc.Name+".tmp-*")
	if err != nil {
		return "", err
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if _, err := f.Write(doc.Content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
