package domain

import (
	"fmt"
	"math"
	"time"
)

// Config holds project-level configuration loaded from .readygate.yaml.
type Config struct {
	Weights      map[string]float64 `yaml:"weights"       json:"weights,omitempty"`
	Thresholds   Thresholds         `yaml:"thresholds"    json:"thresholds"`
	MinScores    map[string]float64 `yaml:"min_scores"    json:"min_scores,omitempty"`
	ToolTimeout  time.Duration      `yaml:"tool_timeout"  json:"tool_timeout,omitempty"`
	ExcludePaths []string           `yaml:"exclude_paths" json:"exclude_paths,omitempty"`
}

// Thresholds are the per-metric targets the checkers score against.
type Thresholds struct {
	// BuildTime is the lower-is-better target for a full production build.
	BuildTime time.Duration `yaml:"build_time" json:"build_time"`
	// BundleSizeKB is the lower-is-better target for build output size.
	BundleSizeKB int64 `yaml:"bundle_size_kb" json:"bundle_size_kb"`
	// CoverageTarget is the line-coverage percentage earning full credit.
	CoverageTarget float64 `yaml:"coverage_target" json:"coverage_target"`
	// MaxTempFiles is the number of leftover temp files tolerated before
	// the cleanup score starts dropping.
	MaxTempFiles int `yaml:"max_temp_files" json:"max_temp_files"`
	// LighthouseURL, when set, enables the page-performance audit.
	LighthouseURL string `yaml:"lighthouse_url" json:"lighthouse_url,omitempty"`
}

// DefaultConfig returns the baseline configuration used when no
// .readygate.yaml is present.
func DefaultConfig() Config {
	return Config{
		Thresholds: Thresholds{
			BuildTime:      2 * time.Minute,
			BundleSizeKB:   5 * 1024,
			CoverageTarget: 80,
		},
		ToolTimeout:  5 * time.Minute,
		ExcludePaths: []string{".git", "node_modules", ".next", "dist", "coverage"},
	}
}

// Validate rejects unknown category names, negative weights, and overrides
// that leave the merged weight vector summing away from 1.0.
func (c Config) Validate() error {
	for name, w := range c.Weights {
		if !ValidCategory(name) {
			return fmt.Errorf("unknown category in weights: %q", name)
		}
		if w < 0 {
			return fmt.Errorf("negative weight: %v", w)
		}
	}
	for name := range c.MinScores {
		if !ValidCategory(name) {
			return fmt.Errorf("unknown category in min_scores: %q", name)
		}
	}
	if len(c.Weights) > 0 {
		var sum float64
		for _, w := range c.EffectiveWeights() {
			sum += w
		}
		if math.Abs(sum-1.0) > 0.001 {
			return fmt.Errorf("weights must sum to 1.0, got %.3f", sum)
		}
	}
	if c.ToolTimeout < 0 {
		return fmt.Errorf("tool_timeout must be positive")
	}
	return nil
}

// EffectiveWeights overlays explicit weight overrides on the defaults.
// Categories left out of the weights map keep their default weight, so a
// partial map only restates the entries it changes.
func (c Config) EffectiveWeights() map[Category]float64 {
	if len(c.Weights) == 0 {
		return DefaultWeights
	}
	out := make(map[Category]float64, len(DefaultWeights))
	for cat, w := range DefaultWeights {
		out[cat] = w
	}
	for name, w := range c.Weights {
		out[Category(name)] = w
	}
	return out
}

// EffectiveMinScores converts the YAML-facing map to category keys.
func (c Config) EffectiveMinScores() map[Category]float64 {
	if len(c.MinScores) == 0 {
		return nil
	}
	out := make(map[Category]float64, len(c.MinScores))
	for name, min := range c.MinScores {
		out[Category(name)] = min
	}
	return out
}
