package convergence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzer_AnalyzePopulationTrends(t *testing.T) {
	analyzer := NewAnalyzer(levelThreeSnapshot(), nil)

	trends := analyzer.AnalyzePopulationTrends(5)

	assert.Equal(t, 5, trends.ProjectionYears)
	require.NotNil(t, trends.CurrentState)
	assert.Equal(t, 5, trends.CurrentState.BelowMedianCount,
		"the zero threshold flags at-median employees too")

	require.Len(t, trends.TrendProjections, 3)
	for _, scenario := range trendScenarios {
		projection := trends.TrendProjections[scenario]
		require.NotNil(t, projection, "scenario %s missing", scenario)
		assert.Len(t, projection.Timeline, 5)
		assert.GreaterOrEqual(t, projection.ConvergenceRate, 0.0)
		assert.LessOrEqual(t, projection.ConvergenceRate, 100.0)
	}

	natural := trends.TrendProjections[ScenarioNatural]
	intervention := trends.TrendProjections[ScenarioIntervention]
	assert.GreaterOrEqual(t, intervention.ConvergenceRate, natural.ConvergenceRate,
		"the intervention growth rate never converges more slowly")

	assert.NotEmpty(t, trends.StrategicRecommendations)
}

func TestAnalyzer_AnalyzePopulationTrends_DefaultHorizon(t *testing.T) {
	analyzer := NewAnalyzer(levelThreeSnapshot(), nil)

	trends := analyzer.AnalyzePopulationTrends(0)
	assert.Equal(t, 5, trends.ProjectionYears, "non-positive horizons fall back to five years")
}

func TestGapDistribution(t *testing.T) {
	analyzer := NewAnalyzer(levelThreeSnapshot(), nil)
	analysis := analyzer.IdentifyBelowMedian(0.0, false)

	dist := gapDistribution(analysis.Employees)

	assert.Equal(t, 5, dist.TotalBelowMedian)
	assert.Equal(t, 1, dist.SevereGaps, "the 50% gap")
	assert.Equal(t, 0, dist.LargeGaps)
	assert.Equal(t, 1, dist.MediumGaps, "the 7.1% gap")
	assert.Equal(t, 1, dist.SmallGaps, "the 1.4% gap; zero gaps fall outside every bucket")
	assert.InDelta(t, 11.71, dist.AverageGapPercent, 0.01)
	assert.InDelta(t, 1.43, dist.MedianGapPercent, 0.01)
}

func TestGapDistribution_Empty(t *testing.T) {
	dist := gapDistribution(nil)
	assert.Zero(t, dist.TotalBelowMedian)
	assert.Zero(t, dist.AverageGapPercent)
}

func TestConvergenceRate(t *testing.T) {
	timeline := []YearProjection{
		{Year: 1, RemainingBelowMedian: 8, ConvergedThisPeriod: 2},
		{Year: 2, RemainingBelowMedian: 4, ConvergedThisPeriod: 6},
	}
	assert.InDelta(t, 60.0, convergenceRate(timeline), 0.001,
		"six of the initial ten converged by the final year")

	assert.Equal(t, 0.0, convergenceRate(nil))
	assert.Equal(t, 100.0, convergenceRate([]YearProjection{{}}), "an empty starting group counts as converged")
}

func TestInterventionImpact(t *testing.T) {
	projections := map[string]*TrendProjection{
		ScenarioNatural:      {ConvergenceRate: 40},
		ScenarioIntervention: {ConvergenceRate: 80},
	}

	impact := interventionImpact(projections)
	assert.Equal(t, 40.0, impact.AbsoluteImprovement)
	assert.Equal(t, 100.0, impact.RelativeImprovementPercent)
	assert.Equal(t, "high", impact.Effectiveness)

	missing := interventionImpact(map[string]*TrendProjection{})
	assert.Equal(t, "insufficient_data", missing.Effectiveness)
}
