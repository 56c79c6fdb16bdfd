package checkers

import (
	"errors"
	"fmt"
	"time"

	"github.com/zenith-platform/readygate/internal/domain"
)

// couldNotVerifyScore is the floor for a category whose boundary tool is not
// installed: "could not fully verify", not "proven broken".
const couldNotVerifyScore = 50

// Options carries the per-run checker switches.
type Options struct {
	// Fix allows checkers to mutate the working tree (delete matched temp
	// files, apply safe dependency patches). Without it every checker is
	// read-only.
	Fix bool
}

// lowerIsBetter scores a lower-is-better metric: full credit at or under the
// threshold, proportional decay above it.
func lowerIsBetter(threshold, actual float64) float64 {
	if actual <= 0 || actual <= threshold {
		return 100
	}
	return 100 * threshold / actual
}

// deduct applies a per-unit penalty to a base score, floored at 0.
func deduct(base, perUnit float64, count int) float64 {
	s := base - perUnit*float64(count)
	if s < 0 {
		return 0
	}
	return s
}

// newResult starts a CheckResult for a category.
func newResult(cat domain.Category) domain.CheckResult {
	return domain.CheckResult{Category: cat, Metrics: map[string]string{}}
}

// finish stamps the elapsed time. The result is immutable after this.
func finish(res domain.CheckResult, start time.Time) domain.CheckResult {
	res.Duration = time.Since(start)
	return res
}

// toolFailure converts a ToolRunner error into a non-exceptional result.
// A missing binary degrades to couldNotVerifyScore; a timeout or any other
// invocation failure scores 0. Never propagates the error.
func toolFailure(cat domain.Category, tool string, err error, start time.Time) domain.CheckResult {
	res := newResult(cat)
	switch {
	case errors.Is(err, domain.ErrToolNotFound):
		res.Score = couldNotVerifyScore
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("could not fully verify %s: %s is not installed", cat, tool),
		})
	case errors.Is(err, domain.ErrToolTimeout):
		res.Score = 0
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("%s timed out", tool),
			Detail:   err.Error(),
		})
	default:
		res.Score = 0
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("failed to invoke %s", tool),
			Detail:   err.Error(),
		})
	}
	return finish(res, start)
}

// parseFailure records tool output that did not match the expected shape.
// Same degrade-and-continue policy as an invocation failure.
func parseFailure(res domain.CheckResult, tool string, err error, start time.Time) domain.CheckResult {
	res.Score = 0
	res.Issues = append(res.Issues, domain.Issue{
		Severity: domain.SeverityError,
		Message:  fmt.Sprintf("unexpected %s output", tool),
		Detail:   err.Error(),
	})
	return finish(res, start)
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "…" + s[len(s)-n:]
}
