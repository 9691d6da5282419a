// Package config loads and validates the engine configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the flat engine configuration mapping. Zero values are replaced
// by defaults in ApplyDefaults, so a partial YAML file is valid.
type Config struct {
	ConfidenceInterval        float64 `yaml:"confidence_interval"`
	MarketInflationRate       float64 `yaml:"market_inflation_rate"`
	ProgressionAnalysisYears  int     `yaml:"progression_analysis_years"`
	ConvergenceThresholdYears int     `yaml:"convergence_threshold_years"`
	AcceptableGapPercent      float64 `yaml:"acceptable_gap_percent"`

	// InterventionBudgetConstraint is the per-analysis budget cap as a
	// fraction of payroll; MaxBudgetPercent is the simulator-wide ceiling.
	InterventionBudgetConstraint float64 `yaml:"intervention_budget_constraint"`
	MaxBudgetPercent             float64 `yaml:"max_budget_percent"`

	TargetGenderGapPercent float64 `yaml:"target_gender_gap_percent"`

	// Manager policy constraints.
	MaxDirectReports        int     `yaml:"max_direct_reports"`
	HighPerformerThreshold  float64 `yaml:"high_performer_threshold"`
	InequalityBudgetPercent float64 `yaml:"inequality_budget_percent"`

	// MarketAdjustmentYears are the zero-based path indexes at which market
	// correction cycles fire during individual projections.
	MarketAdjustmentYears []int `yaml:"market_adjustment_years"`

	// RandomSeed seeds the market adjustment source; zero means
	// time-seeded (non-reproducible) runs.
	RandomSeed int64 `yaml:"random_seed"`
}

// Default returns the fully populated default configuration.
func Default() Config {
	cfg := Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields with their documented defaults.
func (c *Config) ApplyDefaults() {
	if c.ConfidenceInterval == 0 {
		c.ConfidenceInterval = 0.95
	}
	if c.MarketInflationRate == 0 {
		c.MarketInflationRate = 0.025
	}
	if c.ProgressionAnalysisYears == 0 {
		c.ProgressionAnalysisYears = 5
	}
	if c.ConvergenceThresholdYears == 0 {
		c.ConvergenceThresholdYears = 5
	}
	if c.AcceptableGapPercent == 0 {
		c.AcceptableGapPercent = 5.0
	}
	if c.InterventionBudgetConstraint == 0 {
		c.InterventionBudgetConstraint = 0.005
	}
	if c.MaxBudgetPercent == 0 {
		c.MaxBudgetPercent = 0.006
	}
	if c.MaxDirectReports == 0 {
		c.MaxDirectReports = 6
	}
	if c.HighPerformerThreshold == 0 {
		c.HighPerformerThreshold = 4.0
	}
	if c.InequalityBudgetPercent == 0 {
		c.InequalityBudgetPercent = 0.5
	}
	if c.MarketAdjustmentYears == nil {
		c.MarketAdjustmentYears = []int{2, 5, 8}
	}
}

// Validate checks the configuration for values outside sane bounds.
func (c *Config) Validate() error {
	if c.ConfidenceInterval <= 0 || c.ConfidenceInterval >= 1 {
		return fmt.Errorf("confidence_interval must be in (0, 1), got %g", c.ConfidenceInterval)
	}
	if c.MarketInflationRate < -0.10 || c.MarketInflationRate > 0.20 {
		return fmt.Errorf("market_inflation_rate must be between -10%% and 20%%, got %g", c.MarketInflationRate)
	}
	if c.ProgressionAnalysisYears < 1 {
		return fmt.Errorf("progression_analysis_years must be at least 1, got %d", c.ProgressionAnalysisYears)
	}
	if c.AcceptableGapPercent < 0 || c.AcceptableGapPercent > 100 {
		return fmt.Errorf("acceptable_gap_percent must be in [0, 100], got %g", c.AcceptableGapPercent)
	}
	if c.InterventionBudgetConstraint < 0 || c.InterventionBudgetConstraint > 0.05 {
		return fmt.Errorf("intervention_budget_constraint must be in [0, 5%%] of payroll, got %g", c.InterventionBudgetConstraint)
	}
	if c.MaxDirectReports < 1 {
		return fmt.Errorf("max_direct_reports must be at least 1, got %d", c.MaxDirectReports)
	}
	if c.HighPerformerThreshold < 1 || c.HighPerformerThreshold > 5 {
		return fmt.Errorf("high_performer_threshold must be on the 1-5 rating scale, got %g", c.HighPerformerThreshold)
	}
	for _, year := range c.MarketAdjustmentYears {
		if year < 0 {
			return fmt.Errorf("market_adjustment_years must be non-negative, got %d", year)
		}
	}
	return nil
}

// LoadFromFile reads a YAML configuration file, applying defaults for
// anything unset.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}
