package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	giturls "github.com/whilp/git-urls"

	"github.com/jinford/repo-analyzer/internal/core/inspection"
)

// ErrAcquisition はリポジトリのローカルコピーを取得・更新できない場合のエラー
var ErrAcquisition = errors.New("failed to acquire repository")

// LastCommitLayout は最終コミット日時の表示形式
const LastCommitLayout = "2006-01-02 15:04:05-07:00"

// defaultDescriptionPrefix は git init が生成する description ファイルの既定文
const defaultDescriptionPrefix = "Unnamed repository;"

// Client は Git リポジトリ操作を提供する
type Client struct {
	sshKeyPath  string
	sshPassword string
	logger      *slog.Logger
}

// NewClient は新しい Client を作成する
func NewClient(sshKeyPath, sshPassword string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		sshKeyPath:  sshKeyPath,
		sshPassword: sshPassword,
		logger:      logger,
	}
}

// RepositoryName はリポジトリの指定（URLまたはパス）から表示名を求める
// 例: git@github.com:user/repo.git -> repo
// 例: https://github.com/user/repo -> repo
// ローカルディレクトリの場合は絶対パスの末尾要素を使う（. -> カレントディレクトリ名）
func RepositoryName(locator string) string {
	if IsLocalDirectory(locator) {
		if abs, err := filepath.Abs(locator); err == nil {
			return strings.TrimSuffix(filepath.Base(abs), ".git")
		}
	}

	trimmed := strings.TrimRight(strings.TrimSpace(locator), `/\`)

	name := ""
	if u, err := giturls.Parse(trimmed); err == nil && u.Path != "" {
		name = path.Base(u.Path)
	}
	if name == "" || name == "." || name == "/" {
		name = filepath.Base(trimmed)
	}

	return strings.TrimSuffix(name, ".git")
}

// IsLocalDirectory は指定がローカルに存在するディレクトリかどうかを判定する
func IsLocalDirectory(locator string) bool {
	info, err := os.Stat(locator)
	return err == nil && info.IsDir()
}

// Acquire は解析対象のワーキングコピーを用意し、そのパスを返す
// ローカルディレクトリが指定された場合はそのまま使用し、
// それ以外は destDir にクローン（既存なら pull、失敗時は再クローン）する
func (c *Client) Acquire(ctx context.Context, locator, destDir string) (string, error) {
	if IsLocalDirectory(locator) {
		abs, err := filepath.Abs(locator)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrAcquisition, err)
		}
		c.logger.Info("ローカルディレクトリをそのまま解析します", "path", abs)
		return abs, nil
	}

	if err := c.CloneOrPull(ctx, locator, destDir); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAcquisition, err)
	}
	return destDir, nil
}

// Clone は Git リポジトリをクローンする
func (c *Client) Clone(ctx context.Context, url, destDir string) error {
	auth, err := c.getSSHAuth(url)
	if err != nil {
		return fmt.Errorf("failed to setup SSH auth: %w", err)
	}

	_, err = git.PlainCloneContext(ctx, destDir, false, &git.CloneOptions{
		URL:  url,
		Auth: auth,
	})
	if err != nil {
		return fmt.Errorf("failed to clone repository: %w", err)
	}

	return nil
}

// Pull は現在のブランチを origin から pull する
func (c *Client) Pull(ctx context.Context, repoPath string) error {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return fmt.Errorf("failed to get remote: %w", err)
	}

	var remoteURL string
	if urls := remote.Config().URLs; len(urls) > 0 {
		remoteURL = urls[0]
	}
	auth, err := c.getSSHAuth(remoteURL)
	if err != nil {
		return fmt.Errorf("failed to setup SSH auth: %w", err)
	}

	err = worktree.PullContext(ctx, &git.PullOptions{
		RemoteName: "origin",
		Auth:       auth,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to pull: %w", err)
	}

	return nil
}

// CloneOrPull はリポジトリが存在しない場合はクローン、存在する場合は pull する
// pull に失敗した場合は既存のコピーを削除してクローンし直す
func (c *Client) CloneOrPull(ctx context.Context, url, destDir string) error {
	gitDir := filepath.Join(destDir, ".git")
	if _, err := os.Stat(gitDir); os.IsNotExist(err) {
		return c.Clone(ctx, url, destDir)
	}

	if err := c.Pull(ctx, destDir); err != nil {
		c.logger.Warn("pull に失敗したため再クローンします", "path", destDir, "error", err)
		if err := os.RemoveAll(destDir); err != nil {
			return fmt.Errorf("failed to remove stale repository: %w", err)
		}
		return c.Clone(ctx, url, destDir)
	}

	return nil
}

// RepositoryInfo はワーキングコピーのメタデータを取得する
// Git リポジトリでない場合や HEAD が解決できない場合も失敗せず、既定値を返す
func (c *Client) RepositoryInfo(ctx context.Context, repoPath, name string) inspection.RepositoryInfo {
	info := inspection.UnknownRepositoryInfo(name)
	info.Description = readDescription(repoPath)

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		c.logger.Debug("Git リポジトリではないため既定値を使用します", "path", repoPath, "error", err)
		return info
	}

	head, err := repo.Head()
	if err != nil {
		c.logger.Debug("HEAD を解決できません", "path", repoPath, "error", err)
		return info
	}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		c.logger.Debug("HEAD のコミットを取得できません", "path", repoPath, "error", err)
		return info
	}
	info.LastCommit = commit.Committer.When.Format(LastCommitLayout)

	commitIter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		c.logger.Debug("コミットログを取得できません", "path", repoPath, "error", err)
		return info
	}
	defer commitIter.Close()

	total := 0
	authors := make(map[string]struct{})
	err = commitIter.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		total++
		authors[commit.Author.Name] = struct{}{}
		return nil
	})
	if err != nil {
		c.logger.Debug("コミットログの走査に失敗しました", "path", repoPath, "error", err)
		return info
	}

	info.TotalCommits = total
	info.Contributors = len(authors)
	return info
}

// readDescription は .git/description を読み込む（未設定なら既定文）
func readDescription(repoPath string) string {
	content, err := os.ReadFile(filepath.Join(repoPath, ".git", "description"))
	if err != nil {
		return inspection.NoDescription
	}
	desc := strings.TrimSpace(string(content))
	if desc == "" || strings.HasPrefix(desc, defaultDescriptionPrefix) {
		return inspection.NoDescription
	}
	return desc
}

// getSSHAuth は SSH URL の場合のみ鍵認証を返す
func (c *Client) getSSHAuth(url string) (transport.AuthMethod, error) {
	if c.sshKeyPath == "" || !isSSHURL(url) {
		return nil, nil
	}

	if _, err := os.Stat(c.sshKeyPath); os.IsNotExist(err) {
		return nil, nil
	}

	auth, err := ssh.NewPublicKeysFromFile("git", c.sshKeyPath, c.sshPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to load SSH key: %w", err)
	}

	return auth, nil
}

func isSSHURL(url string) bool {
	u, err := giturls.Parse(url)
	if err != nil {
		return false
	}
	return u.Scheme == "ssh"
}
