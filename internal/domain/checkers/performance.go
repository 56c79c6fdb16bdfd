package checkers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/zenith-platform/readygate/internal/domain"
)

// buildOutputDirs are probed in order for the bundler's output.
var buildOutputDirs = []string{"dist", "build", ".next"}

// lighthouseReport is the subset of the lighthouse JSON output used here.
type lighthouseReport struct {
	Categories struct {
		Performance struct {
			Score float64 `json:"score"` // 0..1
		} `json:"performance"`
	} `json:"categories"`
}

// CheckPerformance scores bundle size against the configured threshold and,
// when a lighthouse_url is configured, averages in the page-performance
// audit. A missing build output or lighthouse binary degrades to the
// could-not-verify floor instead of failing the run.
func CheckPerformance(ctx context.Context, dir string, cfg domain.Config, runner domain.ToolRunner, _ Options) domain.CheckResult {
	start := time.Now()
	res := newResult(domain.CategoryPerformance)

	sizeScore, sized := scoreBundleSize(dir, cfg, &res)

	url := cfg.Thresholds.LighthouseURL
	if url == "" {
		if !sized {
			res.Score = couldNotVerifyScore
		} else {
			res.Score = sizeScore
		}
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityInfo,
			Message:  "page-performance audit skipped (no lighthouse_url configured)",
		})
		return finish(res, start)
	}

	lhScore := couldNotVerifyScore * 1.0
	out, err := runner.Run(ctx, dir, "npx", "lighthouse", url, "--output=json", "--quiet", "--chrome-flags=--headless")
	switch {
	case errors.Is(err, domain.ErrToolNotFound):
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Message:  "could not fully verify performance: lighthouse is not installed",
		})
	case err != nil:
		lhScore = 0
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityError,
			Message:  "lighthouse audit failed",
			Detail:   err.Error(),
		})
	default:
		var report lighthouseReport
		if jsonErr := json.Unmarshal([]byte(out.Stdout), &report); jsonErr != nil {
			lhScore = 0
			res.Issues = append(res.Issues, domain.Issue{
				Severity: domain.SeverityError,
				Message:  "unexpected lighthouse output",
				Detail:   jsonErr.Error(),
			})
		} else {
			lhScore = report.Categories.Performance.Score * 100
			res.Metrics["lighthouse_performance"] = fmt.Sprintf("%.0f", lhScore)
			if lhScore < 90 {
				res.Issues = append(res.Issues, domain.Issue{
					Severity: domain.SeverityWarning,
					Message:  fmt.Sprintf("lighthouse performance score %.0f below 90", lhScore),
				})
			}
		}
	}

	if !sized {
		sizeScore = couldNotVerifyScore
	}
	res.Score = (sizeScore + lhScore) / 2
	return finish(res, start)
}

// scoreBundleSize measures the build output on disk. Returns ok=false when
// no output directory exists (build has not run).
func scoreBundleSize(dir string, cfg domain.Config, res *domain.CheckResult) (float64, bool) {
	outDir := ""
	for _, cand := range buildOutputDirs {
		if info, err := os.Stat(filepath.Join(dir, cand)); err == nil && info.IsDir() {
			outDir = filepath.Join(dir, cand)
			break
		}
	}
	if outDir == "" {
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Message:  "no build output found; run the build before measuring bundle size",
		})
		return 0, false
	}

	var size int64
	_ = filepath.WalkDir(outDir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, infoErr := d.Info(); infoErr == nil {
			size += info.Size()
		}
		return nil
	})

	threshold := cfg.Thresholds.BundleSizeKB * 1024
	res.Metrics["bundle_size"] = humanize.Bytes(uint64(size))
	score := lowerIsBetter(float64(threshold), float64(size))
	if score < 100 {
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("bundle size %s exceeds target %s", humanize.Bytes(uint64(size)), humanize.Bytes(uint64(threshold))),
		})
	}
	return score, true
}
