package domain

import "time"

// Category identifies one of the six readiness checks. Names are camelCase
// on the wire (JSON, YAML, reports).
type Category string

const (
	CategoryCleanup     Category = "cleanup"
	CategoryBuild       Category = "build"
	CategoryTests       Category = "tests"
	CategorySecurity    Category = "security"
	CategoryPerformance Category = "performance"
	CategoryCodeQuality Category = "codeQuality"
)

// CategoryOrder is the fixed execution and display order of the checkers.
var CategoryOrder = []Category{
	CategoryCleanup,
	CategoryBuild,
	CategoryTests,
	CategorySecurity,
	CategoryPerformance,
	CategoryCodeQuality,
}

// DefaultWeights is the baseline weighting; the values sum to 1.0.
var DefaultWeights = map[Category]float64{
	CategoryCleanup:     0.10,
	CategoryBuild:       0.20,
	CategoryTests:       0.20,
	CategorySecurity:    0.25,
	CategoryPerformance: 0.15,
	CategoryCodeQuality: 0.10,
}

// ValidCategory reports whether name is a known category.
func ValidCategory(name string) bool {
	for _, c := range CategoryOrder {
		if string(c) == name {
			return true
		}
	}
	return false
}

// Status is the tri-state deployment decision.
type Status string

const (
	StatusGo          Status = "GO"
	StatusConditional Status = "CONDITIONAL"
	StatusNoGo        Status = "NO-GO"
)

const (
	SeverityCritical = "critical"
	SeverityError    = "error"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Issue is a single discrete finding produced by a checker.
type Issue struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Detail   string `json:"detail,omitempty"`
}

// CheckResult is the outcome of one checker. Created once per category per
// run and never mutated afterwards.
type CheckResult struct {
	Category Category          `json:"category"`
	Score    float64           `json:"score"`
	Issues   []Issue           `json:"issues,omitempty"`
	Metrics  map[string]string `json:"metrics,omitempty"`
	Duration time.Duration     `json:"duration"`
}

// CriticalIssues returns the critical-severity findings of this category.
func (r CheckResult) CriticalIssues() []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == SeverityCritical {
			out = append(out, i)
		}
	}
	return out
}

// OverallResult is the aggregate of one full run.
type OverallResult struct {
	Score          float64       `json:"score"`
	Status         Status        `json:"status"`
	Recommendation string        `json:"recommendation"`
	CriticalIssues []Issue       `json:"critical_issues,omitempty"`
	Categories     []CheckResult `json:"categories"`
	Timestamp      time.Time     `json:"timestamp"`
	CommitHash     string        `json:"commit_hash,omitempty"`
}

// RunEntry is one line of the persisted run history.
type RunEntry struct {
	Timestamp  string  `json:"timestamp"`
	CommitHash string  `json:"commit_hash,omitempty"`
	Score      float64 `json:"score"`
	Status     Status  `json:"status"`
}
