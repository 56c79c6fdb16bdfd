package toolrunner_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenith-platform/readygate/internal/adapters/outbound/toolrunner"
	"github.com/zenith-platform/readygate/internal/domain"
)

func TestExecRunner_CapturesStdout(t *testing.T) {
	out, err := toolrunner.New().Run(context.Background(), t.TempDir(), "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out.Stdout)
	assert.Zero(t, out.ExitCode)
	assert.Greater(t, out.Duration, time.Duration(0))
}

func TestExecRunner_NonZeroExitIsNotAnError(t *testing.T) {
	out, err := toolrunner.New().Run(context.Background(), t.TempDir(), "sh", "-c", "echo findings; exit 3")
	require.NoError(t, err)
	assert.Equal(t, 3, out.ExitCode)
	assert.Equal(t, "findings\n", out.Stdout)
}

func TestExecRunner_MissingTool(t *testing.T) {
	_, err := toolrunner.New().Run(context.Background(), t.TempDir(), "definitely-not-a-real-tool-xyz")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrToolNotFound)
}

func TestExecRunner_ContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := toolrunner.New().Run(ctx, t.TempDir(), "sleep", "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrToolTimeout)
}
