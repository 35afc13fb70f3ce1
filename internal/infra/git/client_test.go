package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/repo-analyzer/internal/core/inspection"
)

func TestRepositoryName(t *testing.T) {
	tests := []struct {
		name     string
		locator  string
		expected string
	}{
		{name: "HTTPS URL", locator: "https://github.com/user/repo", expected: "repo"},
		{name: "HTTPS URL（.git付き）", locator: "https://github.com/user/repo.git", expected: "repo"},
		{name: "末尾スラッシュ", locator: "https://github.com/user/repo/", expected: "repo"},
		{name: "SCP形式", locator: "git@github.com:user/my-project.git", expected: "my-project"},
		{name: "SSH URL", locator: "ssh://git@example.com:2222/group/tool.git", expected: "tool"},
		{name: "存在しないローカルパス", locator: "/no/such/dir/service", expected: "service"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RepositoryName(tt.locator))
		})
	}
}

func TestRepositoryName_LocalDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "checkout")
	require.NoError(t, os.Mkdir(dir, 0o755))

	assert.Equal(t, "checkout", RepositoryName(dir))
	assert.Equal(t, "checkout", RepositoryName(dir+string(filepath.Separator)))
}

func TestClient_RepositoryInfo_NotARepository(t *testing.T) {
	client := NewClient("", "", nil)

	info := client.RepositoryInfo(context.Background(), t.TempDir(), "plain")

	assert.Equal(t, inspection.RepositoryInfo{
		Name:         "plain",
		Description:  inspection.NoDescription,
		LastCommit:   inspection.Unknown,
		Branch:       inspection.Unknown,
		TotalCommits: 0,
		Contributors: 0,
	}, info)
}

func TestClient_RepositoryInfo(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName("main")},
	})
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	jst := time.FixedZone("JST", 9*60*60)
	commits := []struct {
		author string
		when   time.Time
	}{
		{author: "Alice", when: time.Date(2024, 1, 1, 9, 0, 0, 0, jst)},
		{author: "Bob", when: time.Date(2024, 1, 2, 9, 0, 0, 0, jst)},
		{author: "Alice", when: time.Date(2024, 1, 3, 12, 34, 56, 0, jst)},
	}
	for i, c := range commits {
		name := filepath.Join(dir, "file.txt")
		require.NoError(t, os.WriteFile(name, []byte(c.when.String()), 0o644))
		_, err := wt.Add("file.txt")
		require.NoError(t, err)
		_, err = wt.Commit("commit", &git.CommitOptions{
			Author: &object.Signature{Name: c.author, Email: c.author + "@example.com", When: c.when},
		})
		require.NoError(t, err, "commit %d", i)
	}

	client := NewClient("", "", nil)
	info := client.RepositoryInfo(context.Background(), dir, "sample")

	assert.Equal(t, "sample", info.Name)
	assert.Equal(t, "main", info.Branch)
	assert.Equal(t, 3, info.TotalCommits)
	assert.Equal(t, 2, info.Contributors)
	assert.Equal(t, "2024-01-03 12:34:56+09:00", info.LastCommit)
	assert.Equal(t, inspection.NoDescription, info.Description)
}

func TestReadDescription(t *testing.T) {
	tests := []struct {
		name     string
		content  *string
		expected string
	}{
		{name: "ファイルなし", content: nil, expected: inspection.NoDescription},
		{name: "空ファイル", content: strPtr("\n"), expected: inspection.NoDescription},
		{name: "git init の既定文", content: strPtr("Unnamed repository; edit this file 'description' to name the repository.\n"), expected: inspection.NoDescription},
		{name: "設定済み", content: strPtr("Payment gateway\n"), expected: "Payment gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.content != nil {
				require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
				require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "description"), []byte(*tt.content), 0o644))
			}
			assert.Equal(t, tt.expected, readDescription(dir))
		})
	}
}

func TestClient_Acquire_LocalDirectory(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(t.TempDir(), "repo")

	client := NewClient("", "", nil)
	path, err := client.Acquire(context.Background(), dir, dest)
	require.NoError(t, err)

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, path)

	// ローカルディレクトリはコピーされない
	_, err = os.Stat(dest)
	assert.True(t, os.IsNotExist(err))
}

func TestClient_Acquire_Unreachable(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "repo")

	client := NewClient("", "", nil)
	_, err := client.Acquire(context.Background(), filepath.Join(t.TempDir(), "missing"), dest)

	assert.ErrorIs(t, err, ErrAcquisition)
}

func strPtr(s string) *string {
	return &s
}
