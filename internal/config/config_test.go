package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 0.95, cfg.ConfidenceInterval)
	assert.Equal(t, 0.025, cfg.MarketInflationRate)
	assert.Equal(t, 5, cfg.ProgressionAnalysisYears)
	assert.Equal(t, 5, cfg.ConvergenceThresholdYears)
	assert.Equal(t, 5.0, cfg.AcceptableGapPercent)
	assert.Equal(t, 0.005, cfg.InterventionBudgetConstraint)
	assert.Equal(t, 6, cfg.MaxDirectReports)
	assert.Equal(t, 4.0, cfg.HighPerformerThreshold)
	assert.Equal(t, 0.5, cfg.InequalityBudgetPercent)
	assert.Equal(t, []int{2, 5, 8}, cfg.MarketAdjustmentYears)
	assert.NoError(t, cfg.Validate(), "defaults must validate")
}

func TestConfig_Validate(t *testing.T) {
	cfg := Default()
	cfg.ConfidenceInterval = 1.5
	assert.Error(t, cfg.Validate(), "confidence interval above 1 should fail")

	cfg = Default()
	cfg.ProgressionAnalysisYears = 0
	cfg.ConfidenceInterval = 0.9
	assert.Error(t, cfg.Validate(), "zero analysis years should fail")

	cfg = Default()
	cfg.HighPerformerThreshold = 6
	assert.Error(t, cfg.Validate(), "threshold off the rating scale should fail")

	cfg = Default()
	cfg.MarketAdjustmentYears = []int{2, -1}
	assert.Error(t, cfg.Validate(), "negative adjustment years should fail")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equisim.yaml")
	content := "confidence_interval: 0.9\nprogression_analysis_years: 3\nrandom_seed: 42\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 0.9, cfg.ConfidenceInterval)
	assert.Equal(t, 3, cfg.ProgressionAnalysisYears)
	assert.Equal(t, int64(42), cfg.RandomSeed)
	assert.Equal(t, 0.025, cfg.MarketInflationRate, "unset fields take defaults")
}

func TestLoadFromFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equisim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("confidence_interval: 2.0\n"), 0o644))

	_, err := LoadFromFile(path)
	assert.Error(t, err, "out-of-range values should fail validation")

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
