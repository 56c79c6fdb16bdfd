package application

import (
	"context"
	"fmt"
	"time"

	"github.com/zenith-platform/readygate/internal/domain"
	"github.com/zenith-platform/readygate/internal/domain/checkers"
)

// CheckService orchestrates the readiness pipeline:
// load config → run the six checkers sequentially → aggregate → attach git
// metadata → save history.
type CheckService struct {
	runner       domain.ToolRunner
	configLoader domain.ConfigLoader
	git          domain.GitInfo
	history      domain.RunHistory
}

func NewCheckService(
	runner domain.ToolRunner,
	configLoader domain.ConfigLoader,
	git domain.GitInfo,
	history domain.RunHistory,
) *CheckService {
	return &CheckService{
		runner:       runner,
		configLoader: configLoader,
		git:          git,
		history:      history,
	}
}

// RunOptions carries the per-run switches from the CLI.
type RunOptions struct {
	Fix    bool
	Strict bool
}

// Run executes one full readiness check of the project at dir.
func (s *CheckService) Run(ctx context.Context, dir string, opts RunOptions) (*domain.OverallResult, error) {
	// 0. Load config
	cfg, err := s.configLoader.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// 1. Run checkers strictly sequentially in the fixed order. Each one
	// gets its own deadline so a hung tool blocks only its category.
	results := make([]domain.CheckResult, 0, len(domain.CategoryOrder))
	for _, check := range checkers.InOrder() {
		results = append(results, s.runOne(ctx, check, dir, cfg, opts))
	}

	// 2. Aggregate into the GO / CONDITIONAL / NO-GO decision.
	overall := domain.Aggregate(results, domain.AggregateOptions{
		Weights:   cfg.EffectiveWeights(),
		MinScores: cfg.EffectiveMinScores(),
		Strict:    opts.Strict,
	})

	// 3. Attach commit hash if the project is a git repo.
	if s.git.IsGitRepo(dir) {
		if hash, err := s.git.CommitHash(dir); err == nil {
			overall.CommitHash = hash
		}
	}

	// 4. Save history, best-effort.
	_ = s.history.Save(dir, domain.RunEntry{
		Timestamp:  overall.Timestamp.Format(time.RFC3339),
		CommitHash: overall.CommitHash,
		Score:      overall.Score,
		Status:     overall.Status,
	})

	return &overall, nil
}

func (s *CheckService) runOne(ctx context.Context, check checkers.Checker, dir string, cfg domain.Config, opts RunOptions) domain.CheckResult {
	if cfg.ToolTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ToolTimeout)
		defer cancel()
	}
	return check(ctx, dir, cfg, s.runner, checkers.Options{Fix: opts.Fix})
}

// History returns previous run entries for the project at dir.
func (s *CheckService) History(dir string) ([]domain.RunEntry, error) {
	return s.history.Load(dir)
}

// Config returns the effective configuration for the project at dir.
func (s *CheckService) Config(dir string) (domain.Config, error) {
	return s.configLoader.Load(dir)
}
