package inspection

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspector_SinglePythonFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "# comment\n\nprint(1)\n")

	report, err := NewInspector(DefaultRules(), Options{}).Inspect(context.Background(), root, UnknownRepositoryInfo("a"))
	require.NoError(t, err)

	assert.Equal(t, CodeMetrics{
		TotalLines:   3,
		CodeLines:    1,
		CommentLines: 1,
		BlankLines:   1,
		FileSizes:    FileSizes{Small: 1},
	}, report.Metrics())
	assert.Equal(t, 1, report.TotalFiles())
	assert.Equal(t, []ExtensionCount{{Extension: ".py", Count: 1}}, report.FileTypes())
	assert.Equal(t, root, report.Path())
}

func TestInspector_UndecodableSourceFileIsSkipped(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob.go"), []byte{0x00, 0xff, 0xfe, 0x9f}, 0o644))

	report, err := NewInspector(DefaultRules(), Options{Workers: 2}).Inspect(context.Background(), root, UnknownRepositoryInfo("blob"))
	require.NoError(t, err)

	assert.Equal(t, CodeMetrics{}, report.Metrics())
	assert.Equal(t, 1, report.TotalFiles())
}

func TestInspector_ExcludedDirectoryContributesNothing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".git/hooks/pre-commit.py", "print('hook')\n")
	writeFile(t, root, "vendor.git/lib.go", "package lib\n")
	writeFile(t, root, "app/main.go", "package main\n")

	report, err := NewInspector(DefaultRules(), Options{}).Inspect(context.Background(), root, UnknownRepositoryInfo("x"))
	require.NoError(t, err)

	assert.Equal(t, []DirectoryEntry{{Path: "app", DirectoryInfo: DirectoryInfo{FileCount: 1}}}, report.Directories())
	assert.Equal(t, []ExtensionCount{{Extension: ".go", Count: 1}}, report.FileTypes())
	assert.Equal(t, 1, report.Metrics().TotalLines)
}

func TestInspector_MissingRoot(t *testing.T) {
	_, err := NewInspector(DefaultRules(), Options{}).Inspect(context.Background(), filepath.Join(t.TempDir(), "nope"), RepositoryInfo{})
	assert.ErrorIs(t, err, ErrAccess)
}
