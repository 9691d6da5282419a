package convergence

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzer_RecommendStrategies(t *testing.T) {
	analyzer := NewAnalyzer(levelThreeSnapshot(), nil)
	analysis := analyzer.IdentifyBelowMedian(1.0, false)
	require.Equal(t, 3, analysis.BelowMedianCount)

	recommendations := analyzer.RecommendStrategies(analysis)

	// One severe gap, no medium gaps, two marginal ones.
	assert.Equal(t, 1, recommendations.Prioritization.HighPriority)
	assert.Equal(t, 0, recommendations.Prioritization.MediumPriority)
	assert.Equal(t, 2, recommendations.Prioritization.LowPriority)

	immediate := recommendations.AvailableStrategies[StrategyImmediateAdjustment]
	require.NotNil(t, immediate)
	assert.True(t, immediate.Applicable)
	assert.Equal(t, 1, immediate.AffectedEmployees)
	assert.True(t, immediate.TotalCost.Equal(decimal.NewFromInt(24500)),
		"immediate adjustment closes 70% of the 35000 gap")
	assert.Equal(t, 0.95, immediate.SuccessProbability)

	natural := recommendations.AvailableStrategies[StrategyNaturalProgression]
	require.NotNil(t, natural)
	assert.True(t, natural.TotalCost.IsZero())
	assert.Equal(t, 2, natural.AffectedEmployees)

	development := recommendations.AvailableStrategies[StrategyTargetedDevelopment]
	require.NotNil(t, development)
	assert.Equal(t, 3, development.AffectedEmployees, "all flagged employees have rating headroom")
	assert.True(t, development.TotalCost.Equal(decimal.NewFromInt(4500)))

	// Natural progression costs nothing, so it wins the per-pound scoring.
	assert.Equal(t, StrategyNaturalProgression, recommendations.RecommendedStrategy.PrimaryStrategy)
	assert.Len(t, recommendations.RecommendedStrategy.AlternativeStrategies, 3)
	assert.True(t, recommendations.RecommendedStrategy.TotalBudgetRequired.IsZero())
}

func TestAnalyzer_RecommendStrategies_CostBenefit(t *testing.T) {
	analyzer := NewAnalyzer(levelThreeSnapshot(), nil)
	analysis := analyzer.IdentifyBelowMedian(1.0, false)

	recommendations := analyzer.RecommendStrategies(analysis)
	cb := recommendations.CostBenefitAnalysis

	assert.True(t, cb.TotalInvestment.IsZero())
	assert.True(t, cb.PotentialSalaryImpact.IsPositive())
	assert.True(t, cb.RetentionBenefit.IsPositive())
	assert.True(t, cb.TotalBenefit.Equal(cb.PotentialSalaryImpact.Add(cb.RetentionBenefit)))
	assert.Positive(t, cb.ROIRatio)
	assert.Equal(t, 12, cb.PaybackMonths)
}

func TestAnalyzer_RecommendStrategies_Timeline(t *testing.T) {
	analyzer := NewAnalyzer(levelThreeSnapshot(), nil)
	analysis := analyzer.IdentifyBelowMedian(1.0, false)

	recommendations := analyzer.RecommendStrategies(analysis)
	timeline := recommendations.ImplementationTimeline

	// Natural progression runs 36 months, so the long-form timeline applies.
	require.Len(t, timeline, 4)
	assert.Equal(t, 1, timeline[0].Month)
	assert.Equal(t, 18, timeline[2].Month)
	assert.Equal(t, 36, timeline[3].Month)
}

func TestAnalyzer_RecommendStrategies_Empty(t *testing.T) {
	analyzer := NewAnalyzer(levelThreeSnapshot(), nil)

	recommendations := analyzer.RecommendStrategies(&BelowMedianAnalysis{})

	immediate := recommendations.AvailableStrategies[StrategyImmediateAdjustment]
	assert.False(t, immediate.Applicable)
	assert.Equal(t, "no_high_priority_employees", immediate.Reason)

	assert.Equal(t, StrategyTargetedDevelopment, recommendations.RecommendedStrategy.PrimaryStrategy,
		"development outranks natural progression when both are free")
	assert.True(t, recommendations.RecommendedStrategy.TotalBudgetRequired.IsZero())
}

func TestSelectOptimalStrategy_PrefersCheapSuccess(t *testing.T) {
	strategies := map[string]*InterventionStrategy{
		StrategyImmediateAdjustment: {
			Applicable:         true,
			AffectedEmployees:  2,
			TotalCost:          decimal.NewFromInt(40000),
			SuccessProbability: 0.95,
		},
		StrategyPerformanceAcceleration: {
			Applicable:         true,
			AffectedEmployees:  2,
			TotalCost:          decimal.NewFromInt(4000),
			SuccessProbability: 0.75,
		},
		StrategyNaturalProgression: {
			Applicable: false,
			Reason:     "no_low_priority_employees",
		},
		StrategyTargetedDevelopment: {
			Applicable:         true,
			AffectedEmployees:  2,
			TotalCost:          decimal.NewFromInt(3000),
			SuccessProbability: 0.80,
		},
	}

	optimal := selectOptimalStrategy(strategies)

	assert.Equal(t, StrategyTargetedDevelopment, optimal.PrimaryStrategy,
		"highest success per pound of per-employee cost wins")
	assert.NotContains(t, optimal.AlternativeStrategies, StrategyNaturalProgression,
		"inapplicable strategies are excluded entirely")
	assert.NotContains(t, optimal.AlternativeStrategies, StrategyTargetedDevelopment)
}
