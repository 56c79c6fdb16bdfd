// Package checkers implements the six deployment-readiness checks.
//
// Each checker is a pure function of the project directory, configuration
// thresholds, and a ToolRunner. A checker never lets an error escape its
// boundary: tool-invocation and parse failures degrade that one category's
// score and are recorded as issues.
package checkers

import (
	"context"

	"github.com/zenith-platform/readygate/internal/domain"
)

// Checker runs one category check against dir.
type Checker func(ctx context.Context, dir string, cfg domain.Config, runner domain.ToolRunner, opts Options) domain.CheckResult

// InOrder returns the checkers in the fixed execution order:
// cleanup → build → tests → security → performance → code quality.
func InOrder() []Checker {
	return []Checker{
		CheckCleanup,
		CheckBuild,
		CheckTests,
		CheckSecurity,
		CheckPerformance,
		CheckCodeQuality,
	}
}
