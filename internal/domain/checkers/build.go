package checkers

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/zenith-platform/readygate/internal/domain"
)

var tsErrorRe = regexp.MustCompile(`error TS\d+`)

// CheckBuild type-checks the project and runs a full production build.
// Type errors are must-be-zero: a single one forces score 0. Otherwise the
// score tracks build time against the configured lower-is-better threshold.
func CheckBuild(ctx context.Context, dir string, cfg domain.Config, runner domain.ToolRunner, _ Options) domain.CheckResult {
	start := time.Now()
	res := newResult(domain.CategoryBuild)

	// 1. Type check. The compiler reports errors on stdout as "error TSxxxx".
	tsc, err := runner.Run(ctx, dir, "npx", "tsc", "--noEmit")
	if err != nil {
		return toolFailure(domain.CategoryBuild, "tsc", err, start)
	}
	typeErrors := len(tsErrorRe.FindAllString(tsc.Stdout+tsc.Stderr, -1))
	res.Metrics["type_errors"] = strconv.Itoa(typeErrors)
	if typeErrors > 0 {
		res.Score = 0
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("%d TypeScript error(s)", typeErrors),
			Detail:   tail(tsc.Stdout, 400),
		})
		return finish(res, start)
	}

	// 2. Production build.
	build, err := runner.Run(ctx, dir, "npm", "run", "build")
	if err != nil {
		return toolFailure(domain.CategoryBuild, "npm run build", err, start)
	}
	res.Metrics["build_time"] = build.Duration.Round(time.Millisecond).String()
	if build.ExitCode != 0 {
		res.Score = 0
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityError,
			Message:  "production build failed",
			Detail:   tail(build.Stderr, 400),
		})
		return finish(res, start)
	}

	threshold := cfg.Thresholds.BuildTime
	res.Score = lowerIsBetter(threshold.Seconds(), build.Duration.Seconds())
	if res.Score < 100 {
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityInfo,
			Message:  fmt.Sprintf("build took %s (target %s)", build.Duration.Round(time.Second), threshold),
		})
	}
	return finish(res, start)
}
