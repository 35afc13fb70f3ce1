package inspection

import (
	"context"
	"fmt"
	"log/slog"
)

// Options はInspectorの任意設定
type Options struct {
	// Workers はメトリクス抽出の並列数（0以下はCPU数）
	Workers int
	// Filter は追加の除外フィルタ（nil可）
	Filter PathFilter
	Logger *slog.Logger
}

// Inspector はツリーウォーク・技術判定・メトリクス集計を実行してレポートを組み立てる
type Inspector struct {
	walker     *Walker
	detector   *TechnologyDetector
	aggregator *Aggregator
	logger     *slog.Logger
}

// NewInspector は新しいInspectorを作成する
func NewInspector(rules Rules, opts Options) *Inspector {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Inspector{
		walker:     NewWalker(rules, opts.Filter),
		detector:   NewTechnologyDetector(rules),
		aggregator: NewAggregator(rules, opts.Workers, logger),
		logger:     logger,
	}
}

// Inspect は root を解析し、リポジトリ情報と合わせてレポートを返す
func (i *Inspector) Inspect(ctx context.Context, root string, info RepositoryInfo) (*AnalysisReport, error) {
	tree, err := i.walker.Walk(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk repository: %w", err)
	}
	i.logger.Info("ディレクトリ構造を収集しました",
		"directories", len(tree.Directories),
		"files", tree.TotalFiles(),
	)

	tech := i.detector.Detect(root)
	i.logger.Info("技術スタックを判定しました", "technologies", tech.LanguageNames())

	metrics, err := i.aggregator.Aggregate(ctx, root, tree)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate code metrics: %w", err)
	}
	i.logger.Info("コードメトリクスを集計しました",
		"totalLines", metrics.TotalLines,
		"codeLines", metrics.CodeLines,
	)

	return Assemble(info, root, tree, tech, metrics), nil
}
