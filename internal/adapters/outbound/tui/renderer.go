package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"
	"github.com/muesli/termenv"

	"github.com/zenith-platform/readygate/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	statusColors = map[domain.Status]lipgloss.Color{
		domain.StatusGo:          success,
		domain.StatusConditional: warning,
		domain.StatusNoGo:        danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	critTagStyle  = lipgloss.NewStyle().Foreground(danger).Bold(true).Underline(true)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	catNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// DisableColor forces plain-text rendering regardless of terminal
// detection. CI log collectors get no ANSI escape sequences.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// RenderResult formats an overall readiness result for the terminal.
// In CI mode informational lines are suppressed.
func RenderResult(res *domain.OverallResult, ciMode bool) string {
	var b strings.Builder

	// ── Header ──
	statusStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(statusColor(res.Status)).
		Render(string(res.Status))
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(statusColor(res.Status)).
		Render(fmt.Sprintf("%.1f / 100", res.Score))

	title := headerStyle.Render("readygate")
	subtitle := dimStyle.Render("Deployment Readiness")
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + statusStyled))
	b.WriteString("\n\n")

	// ── Categories ──
	for _, cat := range res.Categories {
		renderCategory(&b, cat, ciMode)
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Critical issues ──
	if len(res.CriticalIssues) > 0 {
		b.WriteString("  " + critTagStyle.Render(fmt.Sprintf("%d critical issue(s)", len(res.CriticalIssues))))
		b.WriteString("\n\n")
		for _, issue := range res.CriticalIssues {
			fmt.Fprintf(&b, "    %s %s\n", critTagStyle.Render("crit "), dimStyle.Render(issue.Message))
		}
		b.WriteString("\n")
	}

	// ── Issues ──
	issues := collectIssues(res, ciMode)
	if len(issues) > 0 {
		b.WriteString("  " + titleStyle.Render("Issues") + "\n\n")
		for _, issue := range issues {
			renderIssue(&b, issue, ciMode)
		}
		b.WriteString("\n")
	} else if !ciMode {
		b.WriteString("  " + passStyle.Render("No issues found.") + "\n\n")
	}

	// ── Recommendation ──
	b.WriteString("  " + titleStyle.Render("Recommendation") + "\n")
	b.WriteString("  " + dimStyle.Render(res.Recommendation) + "\n")

	return b.String()
}

func renderCategory(b *strings.Builder, cat domain.CheckResult, ciMode bool) {
	color := scoreColor(cat.Score)
	scoreText := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("%5.1f", cat.Score))
	bar := coloredBar(cat.Score, 20)
	dur := dimStyle.Render(cat.Duration.Round(time.Millisecond).String())

	name := catNameStyle.Render(padRight(DisplayName(cat.Category), 16))
	fmt.Fprintf(b, "  %s %s  %s  %s\n", name, bar, scoreText, dur)

	if ciMode {
		return
	}
	for _, line := range metricLines(cat.Metrics) {
		fmt.Fprintf(b, "    %s\n", faintStyle.Render(line))
	}
}

// metricLines renders the free-form metrics in a stable order.
func metricLines(metrics map[string]string) []string {
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, metrics[k]))
	}
	return lines
}

// DisplayName converts a camelCase category name to words for display,
// e.g. codeQuality → "Code Quality".
func DisplayName(cat domain.Category) string {
	parts := camelcase.Split(string(cat))
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

func renderIssue(b *strings.Builder, issue domain.Issue, ciMode bool) {
	tag := severityTag(issue.Severity)
	fmt.Fprintf(b, "    %s %s\n", tag, dimStyle.Render(issue.Message))
	if issue.Detail != "" && !ciMode {
		fmt.Fprintf(b, "          %s\n", faintStyle.Render(oneLine(issue.Detail)))
	}
}

func severityTag(severity string) string {
	switch severity {
	case domain.SeverityCritical:
		return critTagStyle.Render("crit ")
	case domain.SeverityError:
		return errorTagStyle.Render("error")
	case domain.SeverityWarning:
		return warnTagStyle.Render("warn ")
	default:
		return infoTagStyle.Render("info ")
	}
}

// collectIssues flattens category issues sorted by severity. CI mode drops
// informational findings.
func collectIssues(res *domain.OverallResult, ciMode bool) []domain.Issue {
	var all []domain.Issue
	for _, cat := range res.Categories {
		for _, i := range cat.Issues {
			if ciMode && i.Severity == domain.SeverityInfo {
				continue
			}
			all = append(all, i)
		}
	}
	sortBySeverity(all)
	return all
}

func sortBySeverity(issues []domain.Issue) {
	order := map[string]int{
		domain.SeverityCritical: 0,
		domain.SeverityError:    1,
		domain.SeverityWarning:  2,
		domain.SeverityInfo:     3,
	}
	for i := 1; i < len(issues); i++ {
		for j := i; j > 0 && order[issues[j].Severity] < order[issues[j-1].Severity]; j-- {
			issues[j], issues[j-1] = issues[j-1], issues[j]
		}
	}
}

func coloredBar(score float64, width int) string {
	filled := int(score) * width / 100
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	empty := width - filled

	color := scoreColor(score)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(score float64) lipgloss.Color {
	switch {
	case score >= 80:
		return success
	case score >= 60:
		return lipgloss.Color("#A3E635") // lime
	case score >= 40:
		return warning
	default:
		return danger
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// RenderHistory formats previous run scores for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		scoreStyled := lipgloss.NewStyle().
			Foreground(scoreColor(e.Score)).
			Render(fmt.Sprintf("%5.1f", e.Score))

		ts := e.Timestamp
		if len(ts) > 10 {
			ts = ts[:10]
		}

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(ts),
			faintStyle.Render(hash),
			scoreStyled,
			lipgloss.NewStyle().Foreground(statusColor(e.Status)).Render(string(e.Status)),
		)

		if i > 0 {
			diff := e.Score - entries[i-1].Score
			if diff > 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↑%.1f", diff))
			} else if diff < 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↓%.1f", -diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func statusColor(status domain.Status) lipgloss.Color {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return fg
}
