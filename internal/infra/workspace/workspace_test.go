package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestWorkspace_Paths(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out")
	ws, err := New(root)
	require.NoError(t, err)

	assert.DirExists(t, root)
	assert.Equal(t, root, ws.Root())
	assert.Equal(t, filepath.Join(root, "svc"), ws.TargetDir("svc"))
	assert.Equal(t, filepath.Join(root, "svc", "repo"), ws.CloneDir("svc"))
}

func TestWorkspace_Publish(t *testing.T) {
	ws, err := New(t.TempDir())
	require.NoError(t, err)

	paths, err := ws.Publish("svc", []Document{
		{Name: "instructions.md", Content: []byte("first")},
		{Name: "report.md", Content: []byte("stub")},
	})
	require.NoError(t, err)
	require.Len(t, paths, 2)

	content, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "first", string(content))
	assert.ElementsMatch(t, []string{"instructions.md", "report.md"}, listNames(t, ws.TargetDir("svc")))

	// 再実行時は上書きされる
	_, err = ws.Publish("svc", []Document{{Name: "instructions.md", Content: []byte("second")}})
	require.NoError(t, err)
	content, err = os.ReadFile(filepath.Join(ws.TargetDir("svc"), "instructions.md"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestWorkspace_Publish_FailureLeavesNothing(t *testing.T) {
	ws, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = ws.Publish("svc", []Document{
		{Name: "instructions.md", Content: []byte("ok")},
		{Name: "missing/x.md", Content: []byte("ng")},
	})
	assert.ErrorIs(t, err, ErrWrite)
	assert.Empty(t, listNames(t, ws.TargetDir("svc")))
}

func TestWorkspace_InvalidName(t *testing.T) {
	ws, err := New(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", ".", "..", "a/b", `a\b`} {
		_, err := ws.Publish(name, nil)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)

		_, err = ws.Cleanup(name)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestWorkspace_SaveOutput(t *testing.T) {
	ws, err := New(t.TempDir())
	require.NoError(t, err)

	t.Run("対象ディレクトリなし", func(t *testing.T) {
		_, err := ws.SaveOutput("unknown", "output.md", []byte("x"))
		assert.ErrorIs(t, err, ErrTargetNotFound)
		assert.NoDirExists(t, ws.TargetDir("unknown"))
	})

	t.Run("保存", func(t *testing.T) {
		_, err := ws.EnsureTarget("svc")
		require.NoError(t, err)

		path, err := ws.SaveOutput("svc", "output.md", []byte("agent output"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(ws.TargetDir("svc"), "output.md"), path)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "agent output", string(content))
	})
}

func TestWorkspace_Cleanup(t *testing.T) {
	ws, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(ws.CloneDir("svc"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ws.CloneDir("svc"), "main.go"), []byte("package main\n"), 0o644))

	removed, err := ws.Cleanup("svc")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoDirExists(t, ws.TargetDir("svc"))

	removed, err = ws.Cleanup("svc")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestWorkspace_CleanupAll(t *testing.T) {
	ws, err := New(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"a", "b"} {
		_, err := ws.EnsureTarget(name)
		require.NoError(t, err)
	}

	require.NoError(t, ws.CleanupAll())
	assert.DirExists(t, ws.Root())
	assert.Empty(t, listNames(t, ws.Root()))
}
