package intervention

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulator_AnalyzeEquity_DefaultDimensions(t *testing.T) {
	sim := NewSimulator(genderGapSnapshot())

	analysis := sim.AnalyzeEquity(nil)

	require.NotNil(t, analysis.Gender)
	require.NotNil(t, analysis.Level)
	require.NotNil(t, analysis.GenderByLevel)
	assert.Nil(t, analysis.Tenure, "tenure is not a default dimension")

	assert.InDelta(t, 12.5, analysis.Gender.PayGapPercent, 0.001)
	assert.Equal(t, "insufficient_data", analysis.Gender.StatisticalSignificance,
		"three per gender is below the five-sample floor")

	level3 := analysis.Level[3]
	assert.Equal(t, 6, level3.Count)
	assert.True(t, level3.MedianSalary.Equal(decimal.NewFromInt(72500)))
	assert.Positive(t, level3.CoefficientOfVariation)

	byLevel := analysis.GenderByLevel[3]
	assert.Equal(t, 3, byLevel.MaleCount)
	assert.Equal(t, 3, byLevel.FemaleCount)
	assert.InDelta(t, 12.5, byLevel.GapPercent, 0.001)

	assert.Greater(t, analysis.OverallEquityScore, 0.0)
	assert.LessOrEqual(t, analysis.OverallEquityScore, 1.0)
}

func TestSimulator_AnalyzeEquity_PriorityInterventions(t *testing.T) {
	sim := NewSimulator(genderGapSnapshot())

	analysis := sim.AnalyzeEquity([]string{DimensionGender, DimensionGenderByLevel})

	require.Len(t, analysis.PriorityInterventions, 1,
		"the 12.5% gap triggers remediation; the level gap stays under the 15% bar")
	intervention := analysis.PriorityInterventions[0]
	assert.Equal(t, "gender_gap_remediation", intervention.Type)
	assert.Equal(t, "medium", intervention.Priority)
	assert.Positive(t, intervention.EstimatedCostPercent)
}

func TestSimulator_AnalyzeEquity_TenureDimension(t *testing.T) {
	sim := NewSimulator(genderGapSnapshot())

	analysis := sim.AnalyzeEquity([]string{DimensionTenure})

	require.NotNil(t, analysis.Tenure)
	assert.Nil(t, analysis.Gender)
	bracket, ok := analysis.Tenure["2-5 years"]
	require.True(t, ok, "records without dates assume the conventional 2.5-year tenure")
	assert.Equal(t, 6, bracket.Count)
}

func TestSimulator_EquityGaps(t *testing.T) {
	sim := NewSimulator(genderGapSnapshot())

	gaps := sim.equityGaps()
	assert.InDelta(t, 12.5, gaps.GenderGap, 0.001)

	level3, ok := gaps.LevelInequities[3]
	require.True(t, ok)
	assert.Equal(t, 6, level3.EmployeeCount)
	assert.True(t, level3.SalaryRange.Equal(decimal.NewFromInt(30000)))
	assert.Positive(t, level3.CoefficientVariation)
}

func TestSimulator_ModelEquityIntervention(t *testing.T) {
	sim := NewSimulator(genderGapSnapshot())

	result := sim.ModelEquityIntervention("", 0.005, 5)

	assert.Equal(t, ApproachComprehensive, result.InterventionType)
	assert.Equal(t, 5, result.TimelineYears)
	assert.True(t, result.BudgetConstraint.Amount.Equal(decimal.NewFromInt(2225)))
	require.Len(t, result.Approaches, 4)

	optimal := result.OptimalApproach
	require.NotNil(t, optimal)
	assert.Equal(t, ApproachComprehensive, optimal.ApproachName,
		"only the comprehensive approach carries an equity score, so it wins the weighting")
	assert.Len(t, optimal.Alternatives, 3)
	assert.Positive(t, optimal.SelectionScore)
	assert.True(t, optimal.TotalInvestment.LessThanOrEqual(result.BudgetConstraint.Amount),
		"the winning approach fits the budget cap")
}

func TestSimulator_ModelEquityIntervention_Defaults(t *testing.T) {
	sim := NewSimulator(genderGapSnapshot())

	result := sim.ModelEquityIntervention("", 0, 0)
	assert.Equal(t, DefaultBudgetConstraint, result.BudgetConstraint.Percentage)
	assert.Equal(t, DefaultMaxYears, result.TimelineYears)
}

func TestSelectOptimalApproach_FeasibilityBonus(t *testing.T) {
	budget := decimal.NewFromInt(1000)
	approaches := map[string]*EquityApproach{
		ApproachComprehensive: {
			ApproachName:     ApproachComprehensive,
			TotalInvestment:  decimal.NewFromInt(5000),
			ExpectedOutcomes: map[string]any{"gender_gap_reduction": 80.0, "overall_equity_score": 85.0},
		},
		ApproachTargeted: {
			ApproachName:     ApproachTargeted,
			TotalInvestment:  decimal.NewFromInt(900),
			ExpectedOutcomes: map[string]any{"gender_gap_reduction": 60.0},
		},
		ApproachGradual: {
			ApproachName:     ApproachGradual,
			TotalInvestment:  decimal.NewFromInt(5000),
			ExpectedOutcomes: map[string]any{"gender_gap_reduction": 90.0},
		},
		ApproachPerformanceBased: {
			ApproachName:     ApproachPerformanceBased,
			TotalInvestment:  decimal.NewFromInt(700),
			ExpectedOutcomes: map[string]any{},
		},
	}

	optimal := selectOptimalApproach(approaches, budget)

	assert.Equal(t, ApproachComprehensive, optimal.ApproachName,
		"impact outweighs the 30-point feasibility bonus here")
	assert.InDelta(t, 57.5, optimal.SelectionScore, 0.001)
}
