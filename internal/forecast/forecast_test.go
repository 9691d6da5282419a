package forecast

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payequity/equisim/internal/domain"
)

func TestEngine_CAGR(t *testing.T) {
	engine := NewEngine()

	cagr, err := engine.CAGR(decimal.NewFromInt(80000), decimal.NewFromInt(100000), 5)
	require.NoError(t, err)
	assert.InDelta(t, 0.04564, cagr, 0.0001, "80000 to 100000 over 5 years should be about 4.56%")

	flat, err := engine.CAGR(decimal.NewFromInt(75000), decimal.NewFromInt(75000), 3)
	require.NoError(t, err)
	assert.Zero(t, flat, "no growth should give zero CAGR")
}

func TestEngine_CAGR_InvalidInputs(t *testing.T) {
	engine := NewEngine()

	_, err := engine.CAGR(decimal.Zero, decimal.NewFromInt(100000), 5)
	assert.Error(t, err, "should reject non-positive start")

	_, err = engine.CAGR(decimal.NewFromInt(80000), decimal.NewFromInt(-1), 5)
	assert.Error(t, err, "should reject non-positive end")

	_, err = engine.CAGR(decimal.NewFromInt(80000), decimal.NewFromInt(100000), 0)
	assert.Error(t, err, "should reject non-positive years")
}

func TestEngine_ProjectCompound(t *testing.T) {
	engine := NewEngine()

	projected, err := engine.ProjectCompound(decimal.NewFromInt(80000), 0.05, 3)
	require.NoError(t, err)
	assert.InDelta(t, 92610.00, projected.InexactFloat64(), 0.01, "80000 at 5% for 3 years")

	_, err = engine.ProjectCompound(decimal.Zero, 0.05, 3)
	assert.Error(t, err, "should reject non-positive initial value")

	_, err = engine.ProjectCompound(decimal.NewFromInt(80000), 0.05, -1)
	assert.Error(t, err, "should reject negative years")
}

func TestEngine_UpliftIncrease(t *testing.T) {
	engine := NewEngine()

	increased, err := engine.UpliftIncrease(decimal.NewFromInt(80000), 5, domain.RatingHighPerforming)
	require.NoError(t, err)
	assert.InDelta(t, 83400.00, increased.InexactFloat64(), 0.01, "level 5 High Performing total rate is 4.25%")

	_, err = engine.UpliftIncrease(decimal.NewFromInt(80000), 9, domain.RatingAchieving)
	assert.Error(t, err, "should reject unknown level")

	_, err = engine.UpliftIncrease(decimal.NewFromInt(80000), 5, domain.Rating(0))
	assert.Error(t, err, "should reject invalid rating")
}

func TestEngine_UpliftRate_AllRatingsPositive(t *testing.T) {
	engine := NewEngine()

	for level := domain.MinLevel; level <= domain.MaxLevel; level++ {
		for rating := domain.RatingNotMet; rating <= domain.RatingExceeding; rating++ {
			rate, err := engine.UpliftRate(level, rating)
			require.NoError(t, err)
			assert.Positive(t, rate, "every level/rating pair carries a positive uplift")
			assert.Less(t, rate, 0.10, "uplift rates stay below 10%")
		}
	}
}

func TestEngine_TimeToTarget(t *testing.T) {
	engine := NewEngine()

	years, err := engine.TimeToTarget(decimal.NewFromInt(80000), decimal.NewFromInt(100000), 0.05)
	require.NoError(t, err)
	assert.InDelta(t, 4.57, years, 0.01, "80000 to 100000 at 5%")

	// Inverse property: compounding for the computed time lands on the target.
	projected, err := engine.ProjectCompound(decimal.NewFromInt(80000), 0.05, years)
	require.NoError(t, err)
	assert.InDelta(t, 100000, projected.InexactFloat64(), 0.01)
}

func TestEngine_TimeToTarget_InvalidInputs(t *testing.T) {
	engine := NewEngine()

	_, err := engine.TimeToTarget(decimal.NewFromInt(100000), decimal.NewFromInt(80000), 0.05)
	assert.Error(t, err, "should reject target at or below current")

	_, err = engine.TimeToTarget(decimal.NewFromInt(80000), decimal.NewFromInt(100000), 0)
	assert.Error(t, err, "should reject non-positive rate")
}

func TestEngine_ConfidenceInterval_SingleValue(t *testing.T) {
	engine := NewEngine()

	value := decimal.NewFromInt(85000)
	low, high, err := engine.ConfidenceInterval([]decimal.Decimal{value}, 0)
	require.NoError(t, err)
	assert.True(t, low.Equal(value), "single value gives degenerate interval")
	assert.True(t, high.Equal(value), "single value gives degenerate interval")
}

func TestEngine_ConfidenceInterval_SymmetricAboutMean(t *testing.T) {
	engine := NewEngine()

	values := []decimal.Decimal{
		decimal.NewFromInt(80000),
		decimal.NewFromInt(85000),
		decimal.NewFromInt(90000),
		decimal.NewFromInt(95000),
	}
	low, high, err := engine.ConfidenceInterval(values, 0.95)
	require.NoError(t, err)

	mean := 87500.0
	assert.Less(t, low.InexactFloat64(), mean, "interval contains the mean")
	assert.Greater(t, high.InexactFloat64(), mean, "interval contains the mean")
	midpoint := (low.InexactFloat64() + high.InexactFloat64()) / 2
	assert.InDelta(t, mean, midpoint, 0.01, "interval is symmetric about the mean")
}

func TestEngine_ConfidenceInterval_Empty(t *testing.T) {
	engine := NewEngine()

	_, _, err := engine.ConfidenceInterval(nil, 0)
	assert.Error(t, err, "should reject empty input")
}

func TestEngine_PerformanceScenarios(t *testing.T) {
	engine := NewEngine()

	paths := engine.PerformanceScenarios(domain.RatingAchieving)
	assert.Len(t, paths.Conservative, ScenarioPathLength)
	assert.Len(t, paths.Realistic, ScenarioPathLength)
	assert.Len(t, paths.Optimistic, ScenarioPathLength)

	finalConservative := paths.Conservative[ScenarioPathLength-1]
	finalOptimistic := paths.Optimistic[ScenarioPathLength-1]
	assert.GreaterOrEqual(t, int(finalOptimistic), int(finalConservative),
		"optimistic final rating never below conservative final rating")
}

func TestEngine_PerformanceScenarios_UnknownRatingFallsBack(t *testing.T) {
	engine := NewEngine()

	fallback := engine.PerformanceScenarios(domain.Rating(99))
	expected := engine.PerformanceScenarios(domain.RatingAchieving)
	assert.Equal(t, expected, fallback, "unknown rating falls back to Achieving paths")
}

func TestEngine_PerformanceScenarios_FinalRatingOrderAllRatings(t *testing.T) {
	engine := NewEngine()

	for rating := domain.RatingNotMet; rating <= domain.RatingExceeding; rating++ {
		paths := engine.PerformanceScenarios(rating)
		for year := 0; year < ScenarioPathLength; year++ {
			assert.GreaterOrEqual(t, int(paths.Optimistic[year]), int(paths.Conservative[year]),
				"optimistic never trails conservative for rating %s year %d", rating, year)
		}
	}
}

func TestEngine_ApplyMarketAdjustments(t *testing.T) {
	engine := NewEngine()
	engine.SetRand(rand.New(rand.NewSource(42)))

	path := []decimal.Decimal{
		decimal.NewFromInt(80000),
		decimal.NewFromInt(82000),
		decimal.NewFromInt(84000),
		decimal.NewFromInt(86000),
		decimal.NewFromInt(88000),
	}
	adjusted := engine.ApplyMarketAdjustments(path, []int{2})

	assert.True(t, adjusted[0].Equal(path[0]), "years before the adjustment are untouched")
	assert.True(t, adjusted[1].Equal(path[1]), "years before the adjustment are untouched")
	for i := 2; i < len(path); i++ {
		ratio := adjusted[i].Div(path[i]).InexactFloat64()
		assert.GreaterOrEqual(t, ratio, 1.02, "boost is at least 2%")
		assert.LessOrEqual(t, ratio, 1.04, "boost is at most 4%")
	}
}

func TestEngine_ApplyMarketAdjustments_Reproducible(t *testing.T) {
	path := []decimal.Decimal{
		decimal.NewFromInt(80000),
		decimal.NewFromInt(82000),
		decimal.NewFromInt(84000),
		decimal.NewFromInt(86000),
	}

	first := NewEngine()
	first.SetRand(rand.New(rand.NewSource(7)))
	second := NewEngine()
	second.SetRand(rand.New(rand.NewSource(7)))

	a := first.ApplyMarketAdjustments(path, nil)
	b := second.ApplyMarketAdjustments(path, nil)
	for i := range a {
		assert.True(t, a[i].Equal(b[i]), "same seed gives identical adjustments")
	}
}

func TestEngine_PopulationMedianProgression(t *testing.T) {
	engine := NewEngineWithConfig(DefaultConfidenceLevel, 0.025)

	employees := []domain.Employee{
		{EmployeeID: 1, Level: 3, Salary: decimal.NewFromInt(60000), Performance: domain.RatingAchieving},
		{EmployeeID: 2, Level: 3, Salary: decimal.NewFromInt(70000), Performance: domain.RatingAchieving},
		{EmployeeID: 3, Level: 3, Salary: decimal.NewFromInt(80000), Performance: domain.RatingAchieving},
	}
	progression := engine.PopulationMedianProgression(employees, 3)

	path := progression[3]
	assert.Len(t, path, 4, "path includes the starting median")
	assert.InDelta(t, 70000, path[0].InexactFloat64(), 0.01)
	// Medians grow at inflation plus one point (3.5%).
	assert.InDelta(t, 70000*1.035, path[1].InexactFloat64(), 0.01)
}
