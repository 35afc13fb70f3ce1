package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// CleanAction は解析済みリポジトリの出力ディレクトリを削除するアクション
func CleanAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("all") {
		if err := appCtx.Workspace.CleanupAll(); err != nil {
			return fmt.Errorf("failed to clean up repositories: %w", err)
		}
		appCtx.Logger.Info("すべての解析結果を削除しました", "dir", appCtx.Workspace.Root())
		fmt.Fprintf(cmd.Root().Writer, "Removed all analysis output in: %s\n", appCtx.Workspace.Root())
		return nil
	}

	if cmd.Args().Len() != 1 {
		return fmt.Errorf("usage: clean <repository_name> | clean --all")
	}
	name := cmd.Args().First()

	removed, err := appCtx.Workspace.Cleanup(name)
	if err != nil {
		return fmt.Errorf("failed to clean up repository: %w", err)
	}
	if !removed {
		return fmt.Errorf("repository directory not found: %s", appCtx.Workspace.TargetDir(name))
	}

	appCtx.Logger.Info("解析結果を削除しました", "name", name)
	fmt.Fprintf(cmd.Root().Writer, "Removed: %s\n", appCtx.Workspace.TargetDir(name))
	return nil
}
