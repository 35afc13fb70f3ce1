package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// newTestCommand はアクション単体を実行するためのコマンドを作成する
func newTestCommand(action cli.ActionFunc, out *bytes.Buffer, in string, extra ...cli.Flag) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "env"},
		&cli.StringFlag{Name: "output-dir"},
		&cli.StringFlag{Name: "log-level"},
		&cli.StringFlag{Name: "rules"},
		&cli.IntFlag{Name: "workers"},
		&cli.BoolFlag{Name: "respect-ignore"},
	}
	return &cli.Command{
		Name:   "test",
		Flags:  append(flags, extra...),
		Action: action,
		Writer: out,
		Reader: strings.NewReader(in),
	}
}

func TestAnalyzeAction_LocalDirectory(t *testing.T) {
	repo := filepath.Join(t.TempDir(), "sample")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(repo, "src", "main.go"), []byte("package main\n"), 0o644))
	outDir := filepath.Join(t.TempDir(), "out")

	var out bytes.Buffer
	cmd := newTestCommand(AnalyzeAction, &out, "")
	err := cmd.Run(context.Background(), []string{"test", "--env", "", "--output-dir", outDir, "--workers", "2", repo})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Analysis complete.")
	assert.FileExists(t, filepath.Join(outDir, "sample", "instructions.md"))
	assert.FileExists(t, filepath.Join(outDir, "sample", "report.md"))
	assert.FileExists(t, filepath.Join(outDir, "sample", "analysis.json"))
}

func TestAnalyzeAction_Usage(t *testing.T) {
	var out bytes.Buffer
	cmd := newTestCommand(AnalyzeAction, &out, "")
	err := cmd.Run(context.Background(), []string{"test", "--output-dir", t.TempDir()})
	assert.ErrorContains(t, err, "usage")
}

func TestSaveOutputAction(t *testing.T) {
	outDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(outDir, "sample"), 0o755))

	t.Run("標準入力から保存", func(t *testing.T) {
		var out bytes.Buffer
		cmd := newTestCommand(SaveOutputAction, &out, "review result\n", &cli.StringFlag{Name: "file"})
		err := cmd.Run(context.Background(), []string{"test", "--env", "", "--output-dir", outDir, "sample"})
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(outDir, "sample", "output.md"))
		require.NoError(t, err)
		assert.Equal(t, "review result\n", string(content))
		assert.Contains(t, out.String(), "Output saved to:")
	})

	t.Run("ファイルから保存", func(t *testing.T) {
		src := filepath.Join(t.TempDir(), "result.md")
		require.NoError(t, os.WriteFile(src, []byte("from file"), 0o644))

		var out bytes.Buffer
		cmd := newTestCommand(SaveOutputAction, &out, "", &cli.StringFlag{Name: "file"})
		err := cmd.Run(context.Background(), []string{"test", "--env", "", "--output-dir", outDir, "--file", src, "sample"})
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(outDir, "sample", "output.md"))
		require.NoError(t, err)
		assert.Equal(t, "from file", string(content))
	})

	t.Run("未解析のリポジトリ", func(t *testing.T) {
		var out bytes.Buffer
		cmd := newTestCommand(SaveOutputAction, &out, "x", &cli.StringFlag{Name: "file"})
		err := cmd.Run(context.Background(), []string{"test", "--env", "", "--output-dir", outDir, "unknown"})
		assert.ErrorContains(t, err, "not found")
	})
}

func TestCleanAction(t *testing.T) {
	outDir := t.TempDir()
	for _, name := range []string{"a", "b"} {
		require.NoError(t, os.MkdirAll(filepath.Join(outDir, name, "repo"), 0o755))
	}

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		cmd := newTestCommand(CleanAction, &out, "", &cli.BoolFlag{Name: "all"})
		err := cmd.Run(context.Background(), append([]string{"test", "--env", "", "--output-dir", outDir}, args...))
		return out.String(), err
	}

	output, err := run("a")
	require.NoError(t, err)
	assert.Contains(t, output, "Removed:")
	assert.NoDirExists(t, filepath.Join(outDir, "a"))
	assert.DirExists(t, filepath.Join(outDir, "b"))

	_, err = run("a")
	assert.ErrorContains(t, err, "not found")

	_, err = run("--all")
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(outDir, "b"))
	assert.DirExists(t, outDir)
}
