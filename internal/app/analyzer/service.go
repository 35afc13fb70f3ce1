package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jinford/repo-analyzer/internal/core/document"
	"github.com/jinford/repo-analyzer/internal/core/inspection"
	"github.com/jinford/repo-analyzer/internal/infra/filter"
	"github.com/jinford/repo-analyzer/internal/infra/git"
	"github.com/jinford/repo-analyzer/internal/infra/workspace"
)

// Acquirer はワーキングコピーの取得とメタデータ取得を行う
type Acquirer interface {
	Acquire(ctx context.Context, locator, destDir string) (string, error)
	RepositoryInfo(ctx context.Context, repoPath, name string) inspection.RepositoryInfo
}

// Options は解析サービスの設定
type Options struct {
	Workers       int
	RespectIgnore bool
}

// Result は1回の解析の結果
type Result struct {
	RunID            string
	Name             string
	TargetDir        string
	RepositoryPath   string
	InstructionsPath string
	ReportPath       string
	AnalysisPath     string
	Report           *inspection.AnalysisReport
}

// Message は利用者向けの完了メッセージを返す
func (r *Result) Message() string {
	return fmt.Sprintf(`Analysis complete. Repository and analysis files are in: %s
- Repository files: %s
- Instructions file: %s
- Report file: %s
You can now open the repository in your editor and use the generated prompt.`,
		r.TargetDir, r.RepositoryPath, r.InstructionsPath, r.ReportPath)
}

// Service は取得・解析・レンダリング・保存を順に実行する
type Service struct {
	acquirer  Acquirer
	workspace *workspace.Workspace
	rules     inspection.Rules
	opts      Options
	logger    *slog.Logger
	now       func() time.Time
}

// NewService は新しいServiceを作成する
func NewService(acquirer Acquirer, ws *workspace.Workspace, rules inspection.Rules, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		acquirer:  acquirer,
		workspace: ws,
		rules:     rules,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// Analyze は locator（URLまたはローカルパス）のリポジトリを解析し、結果を出力ディレクトリに保存する
// 途中で失敗した場合は出力ファイルを残さない
func (s *Service) Analyze(ctx context.Context, locator string) (*Result, error) {
	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)

	name := git.RepositoryName(locator)
	logger.Info("リポジトリの解析を開始します", "locator", locator, "name", name)

	repoPath, err := s.acquirer.Acquire(ctx, locator, s.workspace.CloneDir(name))
	if err != nil {
		return nil, err
	}

	info := s.acquirer.RepositoryInfo(ctx, repoPath, name)
	logger.Info("リポジトリ情報を取得しました",
		"branch", info.Branch,
		"totalCommits", info.TotalCommits,
		"contributors", info.Contributors,
	)

	inspectOpts := inspection.Options{
		Workers: s.opts.Workers,
		Logger:  logger,
	}
	var filters pathFilters
	if outFilter := outputDirFilter(repoPath, s.workspace.Root()); outFilter != nil {
		logger.Info("出力ディレクトリを解析対象から除外します", "dir", s.workspace.Root())
		filters = append(filters, outFilter)
	}
	if s.opts.RespectIgnore {
		ignoreFilter, err := filter.NewIgnoreFilter(repoPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
		}
		filters = append(filters, ignoreFilter)
	}
	if len(filters) > 0 {
		inspectOpts.Filter = filters
	}

	report, err := inspection.NewInspector(s.rules, inspectOpts).Inspect(ctx, repoPath, info)
	if err != nil {
		return nil, err
	}

	analysisJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}

	docs := []workspace.Document{
		{Name: document.InstructionsFileName, Content: []byte(document.RenderInstructions(report))},
		{Name: document.ReportFileName, Content: []byte(document.RenderReportStub(name, s.now()))},
		{Name: document.AnalysisFileName, Content: analysisJSON},
	}
	paths, err := s.workspace.Publish(name, docs)
	if err != nil {
		return nil, err
	}

	logger.Info("解析結果を保存しました", "dir", s.workspace.TargetDir(name))

	return &Result{
		RunID:            runID,
		Name:             name,
		TargetDir:        s.workspace.TargetDir(name),
		RepositoryPath:   repoPath,
		InstructionsPath: paths[0],
		ReportPath:       paths[1],
		AnalysisPath:     paths[2],
		Report:           report,
	}, nil
}
