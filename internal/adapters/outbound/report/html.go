// Package report writes the self-contained HTML readiness report. Pure
// string construction; a write failure is the caller's to log, never to
// propagate into the exit code.
package report

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zenith-platform/readygate/internal/domain"
)

// FileName returns the deterministic date-stamped report name for t.
func FileName(t time.Time) string {
	return fmt.Sprintf("readiness-report-%s.html", t.Format("2006-01-02"))
}

// Write renders res as a standalone HTML document into dir and returns the
// written path.
func Write(dir string, res *domain.OverallResult) (string, error) {
	path := filepath.Join(dir, FileName(res.Timestamp))
	if err := os.WriteFile(path, []byte(Render(res)), 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// Render builds the HTML document for res.
func Render(res *domain.OverallResult) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>Deployment Readiness %s</title>\n", res.Timestamp.Format("2006-01-02"))
	b.WriteString("<style>\n")
	b.WriteString(`body{font-family:-apple-system,Segoe UI,sans-serif;background:#18181b;color:#e8e6e3;max-width:880px;margin:2rem auto;padding:0 1rem}
h1{color:#d97706}
.status{font-size:1.4rem;font-weight:700;padding:.2rem .8rem;border-radius:6px;display:inline-block}
.status.go{background:#14532d;color:#22c55e}
.status.conditional{background:#78350f;color:#f59e0b}
.status.no-go{background:#7f1d1d;color:#ef4444}
.bar{background:#3f3f46;border-radius:4px;height:12px;width:100%;margin:.2rem 0 .8rem}
.bar>div{height:12px;border-radius:4px}
.bar .hi{background:#22c55e}.bar .mid{background:#f59e0b}.bar .lo{background:#ef4444}
table{border-collapse:collapse;width:100%}
td,th{text-align:left;padding:.3rem .6rem;border-bottom:1px solid #3f3f46}
.critical{color:#ef4444;font-weight:700}
.error{color:#ef4444}.warning{color:#f59e0b}.info{color:#8b949e}
.rec{margin-top:1.2rem;padding:.8rem;background:#27272a;border-left:4px solid #d97706}
`)
	b.WriteString("</style>\n</head>\n<body>\n")

	fmt.Fprintf(&b, "<h1>readygate &mdash; Deployment Readiness</h1>\n")
	fmt.Fprintf(&b, "<p class=\"status %s\">%s &mdash; %.1f / 100</p>\n",
		statusClass(res.Status), html.EscapeString(string(res.Status)), res.Score)
	fmt.Fprintf(&b, "<p>Generated %s", res.Timestamp.Format(time.RFC1123))
	if res.CommitHash != "" {
		fmt.Fprintf(&b, " at commit <code>%s</code>", html.EscapeString(shortHash(res.CommitHash)))
	}
	b.WriteString("</p>\n")

	b.WriteString("<h2>Categories</h2>\n")
	for _, cat := range res.Categories {
		fmt.Fprintf(&b, "<h3>%s &mdash; %.1f</h3>\n", html.EscapeString(string(cat.Category)), cat.Score)
		fmt.Fprintf(&b, "<div class=\"bar\"><div class=\"%s\" style=\"width:%.0f%%\"></div></div>\n",
			barClass(cat.Score), cat.Score)
		if len(cat.Issues) > 0 {
			b.WriteString("<table>\n")
			for _, issue := range cat.Issues {
				fmt.Fprintf(&b, "<tr><td class=\"%s\">%s</td><td>%s</td></tr>\n",
					html.EscapeString(issue.Severity),
					html.EscapeString(issue.Severity),
					html.EscapeString(issue.Message))
			}
			b.WriteString("</table>\n")
		}
	}

	if len(res.CriticalIssues) > 0 {
		b.WriteString("<h2 class=\"critical\">Critical issues</h2>\n<ul>\n")
		for _, issue := range res.CriticalIssues {
			fmt.Fprintf(&b, "<li class=\"critical\">%s</li>\n", html.EscapeString(issue.Message))
		}
		b.WriteString("</ul>\n")
	}

	fmt.Fprintf(&b, "<div class=\"rec\">%s</div>\n", html.EscapeString(res.Recommendation))
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func statusClass(s domain.Status) string {
	switch s {
	case domain.StatusGo:
		return "go"
	case domain.StatusConditional:
		return "conditional"
	default:
		return "no-go"
	}
}

func barClass(score float64) string {
	switch {
	case score >= 80:
		return "hi"
	case score >= 60:
		return "mid"
	default:
		return "lo"
	}
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
