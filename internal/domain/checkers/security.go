package checkers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/zenith-platform/readygate/internal/domain"
)

// Per-unit deductions by advisory severity.
const (
	criticalVulnPenalty = 20
	highVulnPenalty     = 10
	moderateVulnPenalty = 3
	lowVulnPenalty      = 1
)

// auditReport is the subset of `npm audit --json` the checker relies on.
type auditReport struct {
	Metadata struct {
		Vulnerabilities struct {
			Info     int `json:"info"`
			Low      int `json:"low"`
			Moderate int `json:"moderate"`
			High     int `json:"high"`
			Critical int `json:"critical"`
		} `json:"vulnerabilities"`
	} `json:"metadata"`
}

// CheckSecurity audits dependencies for known vulnerabilities. Score is 100
// minus a per-advisory deduction by severity, floored at 0. Critical and
// high findings are also raised as critical issues so they surface in the
// recommendation even when the weighted score alone would say GO.
func CheckSecurity(ctx context.Context, dir string, _ domain.Config, runner domain.ToolRunner, opts Options) domain.CheckResult {
	start := time.Now()
	res := newResult(domain.CategorySecurity)

	if opts.Fix {
		// Safe patches only; the subsequent audit scores whatever remains.
		if _, err := runner.Run(ctx, dir, "npm", "audit", "fix"); err != nil {
			res.Issues = append(res.Issues, domain.Issue{
				Severity: domain.SeverityInfo,
				Message:  "npm audit fix could not run",
				Detail:   err.Error(),
			})
		}
	}

	out, err := runner.Run(ctx, dir, "npm", "audit", "--json")
	if err != nil {
		return toolFailure(domain.CategorySecurity, "npm audit", err, start)
	}

	var report auditReport
	if err := json.Unmarshal([]byte(out.Stdout), &report); err != nil {
		return parseFailure(res, "npm audit", err, start)
	}

	v := report.Metadata.Vulnerabilities
	score := 100.0
	score = deduct(score, criticalVulnPenalty, v.Critical)
	score = deduct(score, highVulnPenalty, v.High)
	score = deduct(score, moderateVulnPenalty, v.Moderate)
	score = deduct(score, lowVulnPenalty, v.Low)
	res.Score = score

	if v.Critical > 0 {
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityCritical,
			Message:  fmt.Sprintf("%d critical vulnerability(ies) in dependencies", v.Critical),
		})
	}
	if v.High > 0 {
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityCritical,
			Message:  fmt.Sprintf("%d high-severity vulnerability(ies) in dependencies", v.High),
		})
	}
	if v.Moderate > 0 {
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("%d moderate vulnerability(ies) in dependencies", v.Moderate),
		})
	}
	if v.Low > 0 {
		res.Issues = append(res.Issues, domain.Issue{
			Severity: domain.SeverityInfo,
			Message:  fmt.Sprintf("%d low-severity vulnerability(ies) in dependencies", v.Low),
		})
	}

	res.Metrics["vulns_critical"] = strconv.Itoa(v.Critical)
	res.Metrics["vulns_high"] = strconv.Itoa(v.High)
	res.Metrics["vulns_moderate"] = strconv.Itoa(v.Moderate)
	res.Metrics["vulns_low"] = strconv.Itoa(v.Low)
	return finish(res, start)
}
