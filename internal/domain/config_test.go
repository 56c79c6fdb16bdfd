package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenith-platform/readygate/internal/domain"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := domain.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5*time.Minute, cfg.ToolTimeout)
	assert.Positive(t, cfg.Thresholds.CoverageTarget)
}

func TestDefaultWeights_SumToOne(t *testing.T) {
	var sum float64
	for _, cat := range domain.CategoryOrder {
		sum += domain.DefaultWeights[cat]
	}
	assert.InDelta(t, 1.0, sum, 0.0001)
}

func TestConfig_Validate_UnknownWeightCategory(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Weights = map[string]float64{"lint": 1.0}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestConfig_Validate_UnknownMinScoreCategory(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.MinScores = map[string]float64{"bogus": 50}
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_WeightsMustSumToOne(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Weights = map[string]float64{
		"cleanup": 0.5,
		"build":   0.3,
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1.0")
}

func TestConfig_Validate_NegativeWeight(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Weights = map[string]float64{
		"cleanup": -0.1, "build": 0.3, "tests": 0.2,
		"security": 0.3, "performance": 0.2, "codeQuality": 0.1,
	}
	assert.Error(t, cfg.Validate())
}

func TestConfig_EffectiveWeights_Defaults(t *testing.T) {
	cfg := domain.DefaultConfig()
	weights := cfg.EffectiveWeights()
	assert.Equal(t, 0.25, weights[domain.CategorySecurity])
	assert.Equal(t, 0.20, weights[domain.CategoryBuild])
	assert.Equal(t, 0.10, weights[domain.CategoryCleanup])
}

func TestConfig_PartialWeightsMergeOntoDefaults(t *testing.T) {
	// Restating a single category at its default weight keeps the merged
	// vector at 1.0, so a one-key weights map is valid.
	cfg := domain.DefaultConfig()
	cfg.Weights = map[string]float64{"security": 0.25}
	require.NoError(t, cfg.Validate())

	weights := cfg.EffectiveWeights()
	assert.Equal(t, 0.25, weights[domain.CategorySecurity])
	assert.Equal(t, 0.20, weights[domain.CategoryBuild])
	assert.Equal(t, 0.10, weights[domain.CategoryCleanup])
	assert.Len(t, weights, len(domain.CategoryOrder))
}

func TestConfig_PartialWeightsValidateMergedSum(t *testing.T) {
	// Raising one weight without lowering another breaks the merged sum.
	cfg := domain.DefaultConfig()
	cfg.Weights = map[string]float64{"security": 0.40}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1.0")
}

func TestConfig_EffectiveWeights_Overrides(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Weights = map[string]float64{
		"cleanup": 0.05, "build": 0.15, "tests": 0.20,
		"security": 0.40, "performance": 0.10, "codeQuality": 0.10,
	}
	require.NoError(t, cfg.Validate())

	weights := cfg.EffectiveWeights()
	assert.Equal(t, 0.40, weights[domain.CategorySecurity])
	assert.Equal(t, 0.05, weights[domain.CategoryCleanup])
}

func TestValidCategory(t *testing.T) {
	assert.True(t, domain.ValidCategory("codeQuality"))
	assert.True(t, domain.ValidCategory("cleanup"))
	assert.False(t, domain.ValidCategory("code_quality"))
	assert.False(t, domain.ValidCategory(""))
}

func TestCheckResult_CriticalIssues(t *testing.T) {
	r := domain.CheckResult{
		Category: domain.CategorySecurity,
		Issues: []domain.Issue{
			{Severity: domain.SeverityCritical, Message: "2 critical vulnerability(ies)"},
			{Severity: domain.SeverityWarning, Message: "3 moderate vulnerability(ies)"},
			{Severity: domain.SeverityCritical, Message: "1 high-severity vulnerability(ies)"},
		},
	}
	crit := r.CriticalIssues()
	require.Len(t, crit, 2)
	assert.Equal(t, "2 critical vulnerability(ies)", crit[0].Message)
}
