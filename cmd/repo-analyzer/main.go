package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/jinford/repo-analyzer/cmd/repo-analyzer/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:      "repo-analyzer",
		Usage:     "リポジトリの構造・メトリクス・技術スタックを解析し、レビュー指示書を生成する",
		ArgsUsage: "<repository_url>",
		Flags:     commonFlags(analyzeFlags()...),
		Action:    commands.AnalyzeAction,
		Commands: []*cli.Command{
			{
				Name:      "clean",
				Usage:     "解析済みリポジトリの出力を削除",
				ArgsUsage: "<repository_name>",
				Flags: commonFlags(
					&cli.BoolFlag{
						Name:  "all",
						Usage: "すべての解析結果を削除",
					},
				),
				Action: commands.CleanAction,
			},
			{
				Name:      "save-output",
				Usage:     "レビュー結果を output.md として保存",
				ArgsUsage: "<repository_name>",
				Flags: commonFlags(
					&cli.StringFlag{
						Name:  "file",
						Usage: "保存する内容のファイルパス（省略時は標準入力）",
					},
				),
				Action: commands.SaveOutputAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// commonFlags は全コマンド共通のフラグに extra を加えて返す
func commonFlags(extra ...cli.Flag) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "env",
			Usage: "環境変数ファイルパス",
			Value: ".env",
		},
		&cli.StringFlag{
			Name:  "output-dir",
			Usage: "出力ディレクトリ（省略時は ANALYZER_OUTPUT_DIR または analysis_output）",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "ログレベル (debug/info/warn/error)",
		},
	}
	return append(flags, extra...)
}

func analyzeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "rules",
			Usage: "解析ルールのYAMLファイル",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "メトリクス抽出の並列数（0はCPU数）",
		},
		&cli.BoolFlag{
			Name:  "respect-ignore",
			Usage: ".gitignore / .analyzerignore のパターンを解析に反映",
		},
	}
}
