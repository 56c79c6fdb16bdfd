package checkers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/zenith-platform/readygate/internal/domain"
)

// jestSummary is the subset of `jest --json` output the checker relies on.
type jestSummary struct {
	NumTotalTests  int  `json:"numTotalTests"`
	NumPassedTests int  `json:"numPassedTests"`
	NumFailedTests int  `json:"numFailedTests"`
	Success        bool `json:"success"`
}

// coverageSummary mirrors coverage/coverage-summary.json.
type coverageSummary struct {
	Total struct {
		Lines struct {
			Pct float64 `json:"pct"`
		} `json:"lines"`
	} `json:"total"`
}

// CheckTests runs the test suite with coverage. Test failures are
// must-be-zero: any failing test forces score 0 and a critical issue.
// With a green suite the score tracks line coverage against the target.
func CheckTests(ctx context.Context, dir string, cfg domain.Config, runner domain.ToolRunner, _ Options) domain.CheckResult {
	start := time.Now()
	res := newResult(domain.CategoryTests)

	out, err := runner.Run(ctx, dir, "npx", "jest", "--json", "--coverage", "--silent")
	if err != nil {
		return toolFailure(domain.CategoryTests, "jest", err, start)
	}

	var summary jestSummary
	if err := json.Unmarshal([]byte(out.Stdout), &summary); err != nil {
		return parseFailure(res, "jest", err, start)
	}

	res.Metrics["tests_total"] = strconv.Itoa(summary.NumTotalTests)
	res.Metrics["tests_failed"] = strconv.Itoa(summary.NumFailedTests)

	if summary.NumFailedTests > 0 {
		res.Score = 0
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityCritical,
			Message:  fmt.Sprintf("%d failing test(s)", summary.NumFailedTests),
			Detail:   tail(out.Stderr, 400),
		})
		return finish(res, start)
	}
	if summary.NumTotalTests == 0 {
		res.Score = 0
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityError,
			Message:  "no tests executed",
		})
		return finish(res, start)
	}

	pct, ok := readCoverage(dir)
	if !ok {
		// Suite is green but coverage is unknown; score on pass/fail alone.
		res.Score = 100
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityInfo,
			Message:  "coverage report not found; scored on pass/fail only",
		})
		return finish(res, start)
	}

	res.Metrics["coverage_pct"] = fmt.Sprintf("%.1f", pct)
	target := cfg.Thresholds.CoverageTarget
	if target <= 0 {
		target = 80
	}
	score := 100 * pct / target
	if score > 100 {
		score = 100
	}
	res.Score = score
	if pct < target {
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("line coverage %.1f%% below target %.0f%%", pct, target),
		})
	}
	return finish(res, start)
}

func readCoverage(dir string) (float64, bool) {
	data, err := os.ReadFile(filepath.Join(dir, "coverage", "coverage-summary.json"))
	if err != nil {
		return 0, false
	}
	var cov coverageSummary
	if err := json.Unmarshal(data, &cov); err != nil {
		return 0, false
	}
	return cov.Total.Lines.Pct, true
}
