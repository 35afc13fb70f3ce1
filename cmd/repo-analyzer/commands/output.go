package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/jinford/repo-analyzer/internal/core/document"
)

// SaveOutputAction はレビューエージェントの出力を output.md として保存するアクション
// --file が省略された場合は標準入力から読み込む
func SaveOutputAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("usage: save-output <repository_name> [--file <path>]")
	}
	name := cmd.Args().First()

	appCtx, err := NewAppContext(cmd)
	if err != nil {
		return err
	}

	var content []byte
	if path := cmd.String("file"); path != "" {
		content, err = os.ReadFile(path)
	} else {
		content, err = io.ReadAll(cmd.Root().Reader)
	}
	if err != nil {
		return fmt.Errorf("出力内容の読み込みに失敗: %w", err)
	}

	outputPath, err := appCtx.Workspace.SaveOutput(name, document.OutputFileName, content)
	if err != nil {
		return fmt.Errorf("failed to save output: %w", err)
	}

	appCtx.Logger.Info("出力を保存しました", "path", outputPath)
	fmt.Fprintf(cmd.Root().Writer, "Output saved to: %s\n", outputPath)
	return nil
}
