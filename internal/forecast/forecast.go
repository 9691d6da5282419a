// Package forecast provides the numeric primitives for salary progression
// modelling: compound growth, uplift-matrix increases, confidence intervals
// and performance scenario paths.
package forecast

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/payequity/equisim/internal/domain"
)

// Defaults applied by NewEngine.
const (
	DefaultConfidenceLevel     = 0.95
	DefaultMarketInflationRate = 0.025
)

// Market adjustment boosts are drawn uniformly from this range.
const (
	MarketBoostMin = 0.02
	MarketBoostMax = 0.04
)

// DefaultMarketAdjustmentYears are the path indexes adjusted when the caller
// does not configure a cycle.
var DefaultMarketAdjustmentYears = []int{3, 6, 9}

// Engine implements the forecasting math. It is stateless apart from its
// configuration and random source; all operations are pure given a seeded
// source.
type Engine struct {
	ConfidenceLevel     float64
	MarketInflationRate float64

	rng    *rand.Rand
	logger domain.Logger
}

// NewEngine creates an engine with default confidence and inflation.
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultConfidenceLevel, DefaultMarketInflationRate)
}

// NewEngineWithConfig creates an engine with explicit confidence level and
// market inflation rate.
func NewEngineWithConfig(confidenceLevel, marketInflationRate float64) *Engine {
	return &Engine{
		ConfidenceLevel:     confidenceLevel,
		MarketInflationRate: marketInflationRate,
		rng:                 rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:              domain.NopLogger{},
	}
}

// SetLogger replaces the engine logger. A nil logger restores the no-op one.
func (e *Engine) SetLogger(logger domain.Logger) {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	e.logger = logger
}

// SetRand replaces the random source used for market adjustments so callers
// can seed reproducible runs.
func (e *Engine) SetRand(rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.rng = rng
}

// CAGR computes the compound annual growth rate between two salaries.
func (e *Engine) CAGR(start, end decimal.Decimal, years int) (float64, error) {
	if !start.IsPositive() || !end.IsPositive() || years <= 0 {
		return 0, fmt.Errorf("cagr requires positive start, end and years; got start=%s end=%s years=%d", start, end, years)
	}
	ratio := end.Div(start).InexactFloat64()
	return math.Pow(ratio, 1/float64(years)) - 1, nil
}

// ProjectCompound projects a salary forward at a constant annual rate.
// Fractional years are allowed so the operation inverts TimeToTarget.
func (e *Engine) ProjectCompound(initial decimal.Decimal, rate, years float64) (decimal.Decimal, error) {
	if !initial.IsPositive() || years < 0 {
		return decimal.Zero, fmt.Errorf("compound projection requires positive initial value and non-negative years; got initial=%s years=%g", initial, years)
	}
	factor := math.Pow(1+rate, years)
	return initial.Mul(decimal.NewFromFloat(factor)), nil
}

// UpliftIncrease applies one year of uplift-matrix increase for the given
// level and rating.
func (e *Engine) UpliftIncrease(salary decimal.Decimal, level int, rating domain.Rating) (decimal.Decimal, error) {
	components, ok := upliftMatrix[rating]
	if !ok {
		return decimal.Zero, fmt.Errorf("invalid performance rating: %s", rating)
	}
	category, ok := levelCategories[level]
	if !ok {
		return decimal.Zero, fmt.Errorf("invalid level: %d", level)
	}
	rate := components.baseline + components.performance + components.byCategory[category]
	return salary.Mul(decimal.NewFromFloat(1 + rate)), nil
}

// UpliftRate returns the total annual increase rate for a level and rating
// without applying it.
func (e *Engine) UpliftRate(level int, rating domain.Rating) (float64, error) {
	components, ok := upliftMatrix[rating]
	if !ok {
		return 0, fmt.Errorf("invalid performance rating: %s", rating)
	}
	category, ok := levelCategories[level]
	if !ok {
		return 0, fmt.Errorf("invalid level: %d", level)
	}
	return components.baseline + components.performance + components.byCategory[category], nil
}

// ConfidenceInterval computes a t-distribution confidence interval for a set
// of projected salaries. A single value yields the degenerate interval
// (v, v). Pass confidence <= 0 to use the engine default.
func (e *Engine) ConfidenceInterval(values []decimal.Decimal, confidence float64) (decimal.Decimal, decimal.Decimal, error) {
	if len(values) == 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("confidence interval requires at least one value")
	}
	if confidence <= 0 {
		confidence = e.ConfidenceLevel
	}
	if len(values) == 1 {
		return values[0], values[0], nil
	}

	floats := make([]float64, len(values))
	for i, v := range values {
		floats[i] = v.InexactFloat64()
	}
	mean := stat.Mean(floats, nil)
	stdErr := stat.StdDev(floats, nil) / math.Sqrt(float64(len(floats)))

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(len(floats) - 1)}
	critical := tDist.Quantile(0.5 + confidence/2)

	lower := decimal.NewFromFloat(mean - critical*stdErr)
	upper := decimal.NewFromFloat(mean + critical*stdErr)
	return lower, upper, nil
}

// PerformanceScenarios returns the conservative/realistic/optimistic rating
// paths for the given current rating. Unknown ratings fall back to the
// Achieving paths.
func (e *Engine) PerformanceScenarios(current domain.Rating) ScenarioPaths {
	progressions, ok := ratingProgressions[current]
	if !ok {
		progressions = ratingProgressions[domain.RatingAchieving]
	}
	return ScenarioPaths{
		Conservative: append([]domain.Rating(nil), progressions[ScenarioConservative]...),
		Realistic:    append([]domain.Rating(nil), progressions[ScenarioRealistic]...),
		Optimistic:   append([]domain.Rating(nil), progressions[ScenarioOptimistic]...),
	}
}

// TimeToTarget computes the fractional years needed to grow from the current
// salary to the target at a constant rate.
func (e *Engine) TimeToTarget(current, target decimal.Decimal, rate float64) (float64, error) {
	if !current.IsPositive() || target.LessThanOrEqual(current) || rate <= 0 {
		return 0, fmt.Errorf("time to target requires positive current, target above current and positive rate; got current=%s target=%s rate=%g", current, target, rate)
	}
	ratio := target.Div(current).InexactFloat64()
	return math.Log(ratio) / math.Log(1+rate), nil
}

// ApplyMarketAdjustments applies market correction cycles to a salary path.
// For each configured year index a uniform 2-4% boost is applied to that
// year and compounded into every subsequent year. Pass nil to use the
// default cycle.
func (e *Engine) ApplyMarketAdjustments(path []decimal.Decimal, adjustmentYears []int) []decimal.Decimal {
	if len(path) == 0 {
		return path
	}
	if adjustmentYears == nil {
		adjustmentYears = DefaultMarketAdjustmentYears
	}

	adjusted := append([]decimal.Decimal(nil), path...)
	for _, year := range adjustmentYears {
		if year < 0 || year >= len(adjusted) {
			continue
		}
		boost := MarketBoostMin + e.rng.Float64()*(MarketBoostMax-MarketBoostMin)
		factor := decimal.NewFromFloat(1 + boost)
		for i := year; i < len(adjusted); i++ {
			adjusted[i] = adjusted[i].Mul(factor)
		}
		e.logger.Debugf("market adjustment year %d: boost %.2f%%", year, boost*100)
	}
	return adjusted
}

// PopulationMedianProgression projects the median salary per level forward,
// assuming medians grow one point above market inflation.
func (e *Engine) PopulationMedianProgression(employees []domain.Employee, years int) map[int][]decimal.Decimal {
	byLevel := make(map[int][]decimal.Decimal)
	for _, emp := range employees {
		byLevel[emp.Level] = append(byLevel[emp.Level], emp.Salary)
	}

	medianGrowth := e.MarketInflationRate + 0.01
	progression := make(map[int][]decimal.Decimal, len(byLevel))
	for level, salaries := range byLevel {
		current := medianOf(salaries)
		path := make([]decimal.Decimal, 0, years+1)
		path = append(path, current)
		for year := 1; year <= years; year++ {
			factor := decimal.NewFromFloat(math.Pow(1+medianGrowth, float64(year)))
			path = append(path, current.Mul(factor))
		}
		progression[level] = path
	}
	return progression
}

// PerformanceVariance reports the estimated volatility of annual increases
// for a rating. Unknown ratings map to the Achieving baseline.
func (e *Engine) PerformanceVariance(rating domain.Rating) float64 {
	if v, ok := performanceVariance[rating]; ok {
		return v
	}
	return performanceVariance[domain.RatingAchieving]
}

func medianOf(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sorted := append([]decimal.Decimal(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}
