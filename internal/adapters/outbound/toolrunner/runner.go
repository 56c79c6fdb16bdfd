// Package toolrunner executes the boundary tools (npm, npx, jest, eslint,
// lighthouse) the checkers score against. Only exit code and captured
// output cross this boundary.
package toolrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/zenith-platform/readygate/internal/domain"
)

// ExecRunner implements domain.ToolRunner on top of os/exec.
type ExecRunner struct{}

func New() *ExecRunner { return &ExecRunner{} }

// Run invokes name with args in dir. A non-zero exit code is reported via
// ToolOutput, not as an error: auditors and linters exit non-zero when they
// have findings. Errors are reserved for invocation failures, mapped onto
// the domain sentinels so checkers stay free of os/exec.
func (r *ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) (domain.ToolOutput, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	out := domain.ToolOutput{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return out, nil
	case errors.As(err, &exitErr):
		if ctx.Err() != nil {
			return out, fmt.Errorf("%w: %s after %s", domain.ErrToolTimeout, name, out.Duration.Round(time.Second))
		}
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	case errors.Is(err, exec.ErrNotFound):
		return out, fmt.Errorf("%w: %s", domain.ErrToolNotFound, name)
	case ctx.Err() != nil:
		return out, fmt.Errorf("%w: %s after %s", domain.ErrToolTimeout, name, out.Duration.Round(time.Second))
	default:
		return out, fmt.Errorf("running %s: %w", name, err)
	}
}

var _ domain.ToolRunner = (*ExecRunner)(nil)
