package domain

import (
	"context"
	"errors"
	"time"
)

// ErrToolNotFound marks a boundary tool that is not installed. Checkers map
// it to the could-not-verify score rather than a hard failure.
var ErrToolNotFound = errors.New("tool not found")

// ErrToolTimeout marks a tool invocation that exceeded its deadline. Treated
// as a tool-invocation failure for the invoking category only.
var ErrToolTimeout = errors.New("tool timed out")

// ToolOutput is everything a checker may depend on from a boundary tool:
// exit code and captured output, nothing about the tool's internals.
type ToolOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// ToolRunner executes one external tool in dir and captures its output.
// A non-zero exit code is not an error: auditors and linters exit non-zero
// when they have findings. Run returns an error only when the tool could
// not be invoked at all (missing binary, timeout, start failure).
type ToolRunner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (ToolOutput, error)
}

// ConfigLoader loads project configuration from dir.
type ConfigLoader interface {
	Load(dir string) (Config, error)
}

// RunHistory persists run summaries per project.
type RunHistory interface {
	Save(dir string, entry RunEntry) error
	Load(dir string) ([]RunEntry, error)
}

// GitInfo reads version-control metadata for the validated project.
type GitInfo interface {
	IsGitRepo(dir string) bool
	CommitHash(dir string) (string, error)
}
