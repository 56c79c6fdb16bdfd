package checkers

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/zenith-platform/readygate/internal/domain"
)

// tempPatterns match development artifacts that should never ship.
var tempPatterns = []string{
	"*.log", "*.tmp", "*.bak", "*.swp", "*.swo",
	".DS_Store", "Thumbs.db",
	"npm-debug.log*", "yarn-error.log",
}

const tempFilePenalty = 5 // points per leftover file

// CheckCleanup walks the working tree for temp/debug artifacts. Score is
// 100 minus tempFilePenalty per match beyond the max_temp_files allowance
// (default 0). In fix mode the matches are deleted; otherwise the checker
// is read-only.
func CheckCleanup(ctx context.Context, dir string, cfg domain.Config, _ domain.ToolRunner, opts Options) domain.CheckResult {
	start := time.Now()
	res := newResult(domain.CategoryCleanup)

	var matched []string
	var totalSize int64

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		if d.IsDir() {
			if excluded(rel, cfg.ExcludePaths) {
				return filepath.SkipDir
			}
			return nil
		}
		if !matchesTempPattern(d.Name()) {
			return nil
		}
		matched = append(matched, rel)
		if info, infoErr := d.Info(); infoErr == nil {
			totalSize += info.Size()
		}
		return nil
	})
	if err != nil {
		res.Score = 0
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityError,
			Message:  "cleanup scan failed",
			Detail:   err.Error(),
		})
		return finish(res, start)
	}

	removed := 0
	if opts.Fix {
		for _, rel := range matched {
			if rmErr := os.Remove(filepath.Join(dir, rel)); rmErr == nil {
				removed++
			}
		}
	}

	for _, rel := range matched {
		msg := "temp file left in working tree: " + rel
		if opts.Fix {
			msg = "removed temp file: " + rel
		}
		res.Issues = append(res.Issues, domain.Issue{Severity: domain.SeverityWarning, Message: msg})
	}

	excess := len(matched) - cfg.Thresholds.MaxTempFiles
	if excess < 0 {
		excess = 0
	}
	res.Score = deduct(100, tempFilePenalty, excess)
	res.Metrics["temp_files"] = strconv.Itoa(len(matched))
	res.Metrics["reclaimable"] = humanize.Bytes(uint64(totalSize))
	if opts.Fix {
		res.Metrics["removed"] = strconv.Itoa(removed)
	}
	return finish(res, start)
}

func matchesTempPattern(name string) bool {
	for _, p := range tempPatterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

func excluded(rel string, excludePaths []string) bool {
	rel = filepath.ToSlash(rel)
	for _, ex := range excludePaths {
		ex = strings.TrimSuffix(filepath.ToSlash(ex), "/")
		if rel == ex || strings.HasPrefix(rel, ex+"/") {
			return true
		}
		// directories excluded by name match at any depth
		if filepath.Base(rel) == ex {
			return true
		}
	}
	return false
}
