package checkers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/zenith-platform/readygate/internal/domain"
)

const (
	lintErrorPenalty   = 2
	lintWarningPenalty = 0.5
)

// eslintFileResult is one element of the `eslint --format json` array.
type eslintFileResult struct {
	FilePath     string `json:"filePath"`
	ErrorCount   int    `json:"errorCount"`
	WarningCount int    `json:"warningCount"`
}

// CheckCodeQuality lints the project. Score is 100 minus 2 per error and
// 0.5 per warning, floored at 0.
func CheckCodeQuality(ctx context.Context, dir string, _ domain.Config, runner domain.ToolRunner, _ Options) domain.CheckResult {
	start := time.Now()
	res := newResult(domain.CategoryCodeQuality)

	out, err := runner.Run(ctx, dir, "npx", "eslint", ".", "--format", "json")
	if err != nil {
		return toolFailure(domain.CategoryCodeQuality, "eslint", err, start)
	}

	var files []eslintFileResult
	if err := json.Unmarshal([]byte(out.Stdout), &files); err != nil {
		return parseFailure(res, "eslint", err, start)
	}

	var errorCount, warningCount int
	for _, f := range files {
		errorCount += f.ErrorCount
		warningCount += f.WarningCount
	}

	score := 100.0
	score = deduct(score, lintErrorPenalty, errorCount)
	score = deduct(score, lintWarningPenalty, warningCount)
	res.Score = score

	if errorCount > 0 {
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("%d lint error(s)", errorCount),
		})
	}
	if warningCount > 0 {
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("%d lint warning(s)", warningCount),
		})
	}

	res.Metrics["lint_errors"] = strconv.Itoa(errorCount)
	res.Metrics["lint_warnings"] = strconv.Itoa(warningCount)
	return finish(res, start)
}
