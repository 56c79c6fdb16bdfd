package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenith-platform/readygate/internal/application"
	"github.com/zenith-platform/readygate/internal/domain"
)

type stubRunner struct{}

func (stubRunner) Run(_ context.Context, _ string, _ string, _ ...string) (domain.ToolOutput, error) {
	// Every boundary tool is "missing": all shelling checkers degrade to
	// the could-not-verify floor and the run still completes.
	return domain.ToolOutput{}, domain.ErrToolNotFound
}

type stubConfigLoader struct {
	cfg domain.Config
	err error
}

func (l stubConfigLoader) Load(string) (domain.Config, error) { return l.cfg, l.err }

type stubGit struct {
	isRepo bool
	hash   string
	err    error
	asked  bool
}

func (g *stubGit) IsGitRepo(string) bool { return g.isRepo }

func (g *stubGit) CommitHash(string) (string, error) {
	g.asked = true
	return g.hash, g.err
}

type memHistory struct {
	entries []domain.RunEntry
	saveErr error
}

func (h *memHistory) Save(_ string, e domain.RunEntry) error {
	if h.saveErr != nil {
		return h.saveErr
	}
	h.entries = append(h.entries, e)
	return nil
}

func (h *memHistory) Load(string) ([]domain.RunEntry, error) { return h.entries, nil }

func newService(hist *memHistory) *application.CheckService {
	return application.NewCheckService(
		stubRunner{},
		stubConfigLoader{cfg: domain.DefaultConfig()},
		&stubGit{isRepo: true, hash: "0123456789abcdef0123456789abcdef01234567"},
		hist,
	)
}

func TestCheckService_Run_SixCategoriesInFixedOrder(t *testing.T) {
	svc := newService(&memHistory{})

	res, err := svc.Run(context.Background(), t.TempDir(), application.RunOptions{})
	require.NoError(t, err)

	require.Len(t, res.Categories, 6)
	for i, cat := range domain.CategoryOrder {
		assert.Equal(t, cat, res.Categories[i].Category)
	}
}

func TestCheckService_Run_EveryCategoryScoredUnderTotalToolFailure(t *testing.T) {
	svc := newService(&memHistory{})

	res, err := svc.Run(context.Background(), t.TempDir(), application.RunOptions{})
	require.NoError(t, err)

	for _, cat := range res.Categories {
		assert.GreaterOrEqual(t, cat.Score, 0.0, "category %s", cat.Category)
		assert.LessOrEqual(t, cat.Score, 100.0, "category %s", cat.Category)
	}
	assert.GreaterOrEqual(t, res.Score, 0.0)
	assert.LessOrEqual(t, res.Score, 100.0)
	assert.NotEmpty(t, res.Recommendation)
}

func TestCheckService_Run_AttachesCommitHashAndSavesHistory(t *testing.T) {
	hist := &memHistory{}
	svc := newService(hist)

	res, err := svc.Run(context.Background(), t.TempDir(), application.RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, "0123456789abcdef0123456789abcdef01234567", res.CommitHash)
	require.Len(t, hist.entries, 1)
	assert.Equal(t, res.Score, hist.entries[0].Score)
	assert.Equal(t, res.Status, hist.entries[0].Status)
}

func TestCheckService_Run_NonGitProjectSkipsCommitLookup(t *testing.T) {
	hist := &memHistory{}
	git := &stubGit{isRepo: false, hash: "0123456789abcdef0123456789abcdef01234567"}
	svc := application.NewCheckService(
		stubRunner{},
		stubConfigLoader{cfg: domain.DefaultConfig()},
		git,
		hist,
	)

	res, err := svc.Run(context.Background(), t.TempDir(), application.RunOptions{})
	require.NoError(t, err)

	assert.False(t, git.asked)
	assert.Empty(t, res.CommitHash)
	require.Len(t, hist.entries, 1)
	assert.Empty(t, hist.entries[0].CommitHash)
}

func TestCheckService_Run_HistorySaveFailureIsNotFatal(t *testing.T) {
	hist := &memHistory{saveErr: errors.New("disk full")}
	svc := newService(hist)

	_, err := svc.Run(context.Background(), t.TempDir(), application.RunOptions{})
	assert.NoError(t, err)
}

func TestCheckService_Run_ConfigErrorIsFatal(t *testing.T) {
	svc := application.NewCheckService(
		stubRunner{},
		stubConfigLoader{err: errors.New("weights must sum to 1.0")},
		&stubGit{},
		&memHistory{},
	)

	_, err := svc.Run(context.Background(), t.TempDir(), application.RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestCheckService_Run_Deterministic(t *testing.T) {
	svc := newService(&memHistory{})
	dir := t.TempDir()

	first, err := svc.Run(context.Background(), dir, application.RunOptions{})
	require.NoError(t, err)
	second, err := svc.Run(context.Background(), dir, application.RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Status, second.Status)
}

func TestCheckService_Run_StrictFlowsToAggregation(t *testing.T) {
	svc := newService(&memHistory{})
	dir := t.TempDir()

	// Strict mode must never change the numeric score, only the decision.
	relaxed, err := svc.Run(context.Background(), dir, application.RunOptions{})
	require.NoError(t, err)
	strict, err := svc.Run(context.Background(), dir, application.RunOptions{Strict: true})
	require.NoError(t, err)

	assert.Equal(t, relaxed.Score, strict.Score)
	if relaxed.Status == domain.StatusConditional {
		assert.Equal(t, domain.StatusNoGo, strict.Status)
	}
}
