package commands

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/jinford/repo-analyzer/internal/infra/workspace"
	"github.com/jinford/repo-analyzer/internal/platform/logger"
	"github.com/jinford/repo-analyzer/pkg/config"
)

// AppContext はコマンド実行に必要な共通コンテキストを保持する
type AppContext struct {
	Config    *config.Config
	Logger    *slog.Logger
	Workspace *workspace.Workspace
}

// NewAppContext は設定を読み込み、フラグで上書きした上で AppContext を作成する
func NewAppContext(cmd *cli.Command) (*AppContext, error) {
	cfg, err := config.Load(cmd.String("env"))
	if err != nil {
		return nil, fmt.Errorf("設定の読み込みに失敗: %w", err)
	}
	applyFlagOverrides(cmd, cfg)

	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.ParseLevel(cfg.Log.Level)
	logCfg.Format = cfg.Log.Format
	appLogger := logger.New(logCfg)

	ws, err := workspace.New(cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	return &AppContext{
		Config:    cfg,
		Logger:    appLogger,
		Workspace: ws,
	}, nil
}

// applyFlagOverrides は明示的に指定されたフラグで設定値を上書きする
func applyFlagOverrides(cmd *cli.Command, cfg *config.Config) {
	if cmd.IsSet("output-dir") {
		cfg.OutputDir = cmd.String("output-dir")
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("rules") {
		cfg.Analysis.RulesFile = cmd.String("rules")
	}
	if cmd.IsSet("workers") {
		cfg.Analysis.Workers = int(cmd.Int("workers"))
	}
	if cmd.IsSet("respect-ignore") {
		cfg.Analysis.RespectIgnore = cmd.Bool("respect-ignore")
	}
}
