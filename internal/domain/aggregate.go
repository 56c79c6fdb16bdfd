package domain

import (
	"fmt"
	"strings"
	"time"
)

// AggregateOptions tunes classification without touching the scores.
type AggregateOptions struct {
	// Weights per category; nil means DefaultWeights. Must sum to 1.0.
	Weights map[Category]float64
	// MinScores are per-category floors named in the recommendation when
	// breached. They never change the numeric score.
	MinScores map[Category]float64
	// Strict removes the CONDITIONAL outcome: anything below the GO
	// threshold becomes NO-GO.
	Strict bool
}

const (
	goThreshold          = 90.0
	conditionalThreshold = 70.0
)

// Aggregate combines the per-category results into the overall decision.
// Pure function: same inputs always yield the same OverallResult.
func Aggregate(results []CheckResult, opts AggregateOptions) OverallResult {
	weights := opts.Weights
	if weights == nil {
		weights = DefaultWeights
	}

	var weighted, totalWeight float64
	for _, r := range results {
		w := weights[r.Category]
		weighted += clamp(r.Score) * w
		totalWeight += w
	}
	score := 0.0
	if totalWeight > 0 {
		score = clamp(weighted / totalWeight)
	}

	status := Classify(score, opts.Strict)

	var critical []Issue
	for _, r := range results {
		critical = append(critical, r.CriticalIssues()...)
	}

	return OverallResult{
		Score:          score,
		Status:         status,
		Recommendation: recommendation(status, score, results, critical, opts.MinScores),
		CriticalIssues: critical,
		Categories:     results,
		Timestamp:      time.Now(),
	}
}

// Classify maps a score to the deployment decision.
func Classify(score float64, strict bool) Status {
	switch {
	case score >= goThreshold:
		return StatusGo
	case score >= conditionalThreshold && !strict:
		return StatusConditional
	default:
		return StatusNoGo
	}
}

func recommendation(status Status, score float64, results []CheckResult, critical []Issue, minScores map[Category]float64) string {
	var b strings.Builder

	switch status {
	case StatusGo:
		fmt.Fprintf(&b, "Ready to deploy (score %.1f).", score)
	case StatusConditional:
		fmt.Fprintf(&b, "Deployable with caution (score %.1f); resolve flagged categories before the next release.", score)
	default:
		fmt.Fprintf(&b, "Do not deploy (score %.1f).", score)
	}

	if below := belowMinimum(results, minScores); len(below) > 0 {
		b.WriteString(" Below minimum: ")
		b.WriteString(strings.Join(below, ", "))
		b.WriteString(".")
	}

	if len(critical) > 0 {
		fmt.Fprintf(&b, " %d critical issue(s) require attention regardless of score.", len(critical))
	}

	return b.String()
}

// belowMinimum names every category scoring under its configured floor.
// Results arrive in CategoryOrder, so the output order is stable.
func belowMinimum(results []CheckResult, minScores map[Category]float64) []string {
	var out []string
	for _, r := range results {
		min, ok := minScores[r.Category]
		if ok && r.Score < min {
			out = append(out, fmt.Sprintf("%s (%.1f < %.1f)", r.Category, r.Score, min))
		}
	}
	return out
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
