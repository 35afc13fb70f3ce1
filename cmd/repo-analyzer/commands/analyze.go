package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/jinford/repo-analyzer/internal/app/analyzer"
	"github.com/jinford/repo-analyzer/internal/core/inspection"
	"github.com/jinford/repo-analyzer/internal/infra/git"
)

// AnalyzeAction はリポジトリを解析してレビュー指示書を生成するアクション
func AnalyzeAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("usage: %s <repository_url>", cmd.Name)
	}
	locator := cmd.Args().First()

	appCtx, err := NewAppContext(cmd)
	if err != nil {
		return err
	}

	rules, err := inspection.LoadRules(appCtx.Config.Analysis.RulesFile)
	if err != nil {
		return fmt.Errorf("解析ルールの読み込みに失敗: %w", err)
	}

	gitClient := git.NewClient(appCtx.Config.Git.SSHKeyPath, appCtx.Config.Git.SSHPassword, appCtx.Logger)
	service := analyzer.NewService(gitClient, appCtx.Workspace, rules, analyzer.Options{
		Workers:       appCtx.Config.Analysis.Workers,
		RespectIgnore: appCtx.Config.Analysis.RespectIgnore,
	}, appCtx.Logger)

	result, err := service.Analyze(ctx, locator)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Fprintln(cmd.Root().Writer, result.Message())
	return nil
}
