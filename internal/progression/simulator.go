// Package progression simulates multi-year salary progression for individual
// employees across performance scenarios.
package progression

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/payequity/equisim/internal/domain"
	"github.com/payequity/equisim/internal/forecast"
	"github.com/payequity/equisim/internal/population"
)

// DefaultYears is the projection horizon used when callers pass zero.
const DefaultYears = 5

// Simulator projects individual employees forward against population
// benchmarks. It holds the snapshot it was built from; a new snapshot needs a
// new Simulator.
type Simulator struct {
	employees []domain.Employee
	byID      map[int]domain.Employee
	benchmark *population.Benchmark
	engine    *forecast.Engine

	// MarketAdjustmentYears are the zero-based path indexes that receive a
	// market correction when projections include market adjustments.
	MarketAdjustmentYears []int

	logger domain.Logger
}

// NewSimulator builds a simulator over a population snapshot. A nil engine
// gets the default forecasting configuration.
func NewSimulator(employees []domain.Employee, engine *forecast.Engine) *Simulator {
	if engine == nil {
		engine = forecast.NewEngine()
	}
	byID := make(map[int]domain.Employee, len(employees))
	for _, emp := range employees {
		byID[emp.EmployeeID] = emp
	}
	return &Simulator{
		employees:             employees,
		byID:                  byID,
		benchmark:             population.ComputeBenchmark(employees),
		engine:                engine,
		MarketAdjustmentYears: []int{2, 5, 8},
		logger:                domain.NopLogger{},
	}
}

// SetLogger replaces the simulator logger. A nil logger restores the no-op
// one.
func (s *Simulator) SetLogger(logger domain.Logger) {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	s.logger = logger
}

// Benchmark exposes the population benchmark the simulator was built over.
func (s *Simulator) Benchmark() *population.Benchmark { return s.benchmark }

// ScenarioProjection is one scenario's salary and performance trajectory.
type ScenarioProjection struct {
	SalaryProgression []decimal.Decimal `json:"salary_progression"`
	PerformancePath   []domain.Rating   `json:"performance_path"`
	FinalSalary       decimal.Decimal   `json:"final_salary"`
	TotalIncrease     decimal.Decimal   `json:"total_increase"`
	CAGR              float64           `json:"cagr"`
	YearsProjected    int               `json:"years_projected"`
}

// CurrentState captures the employee's standing at projection time.
type CurrentState struct {
	Level          int             `json:"level"`
	Salary         decimal.Decimal `json:"salary"`
	Performance    domain.Rating   `json:"performance_rating"`
	Gender         string          `json:"gender,omitempty"`
	YearsAtCompany float64         `json:"years_at_company"`
}

// MedianComparison positions the employee against the level median, both now
// and at the realistic projection horizon. The level median is held constant
// over the horizon, which keeps the projected position conservative.
type MedianComparison struct {
	CurrentStatus       string          `json:"current_status"`
	CurrentGapAmount    decimal.Decimal `json:"current_gap_amount"`
	CurrentGapPercent   float64         `json:"current_gap_percent"`
	ProjectedStatus     string          `json:"projected_status"`
	ProjectedGapAmount  decimal.Decimal `json:"projected_gap_amount"`
	ProjectedGapPercent float64         `json:"projected_gap_percent"`
}

// MarketCompetitiveness positions the employee within the salary range
// observed for their level.
type MarketCompetitiveness struct {
	CurrentPercentile   float64 `json:"current_percentile"`
	ProjectedPercentile float64 `json:"projected_percentile"`
	CurrentQuartile     string  `json:"current_quartile"`
	ProjectedQuartile   string  `json:"projected_quartile"`
}

// Analysis bundles the derived assessments for a projection.
type Analysis struct {
	ConfidenceIntervalLow  decimal.Decimal       `json:"confidence_interval_low"`
	ConfidenceIntervalHigh decimal.Decimal       `json:"confidence_interval_high"`
	MedianComparison       MedianComparison      `json:"median_comparison"`
	MarketCompetitiveness  MarketCompetitiveness `json:"market_competitiveness"`
	RiskFactors            []string              `json:"risk_factors"`
}

// Recommendations is the action plan derived from the risk assessment.
type Recommendations struct {
	PrimaryAction    string   `json:"primary_action"`
	SecondaryActions []string `json:"secondary_actions"`
	Timeline         string   `json:"timeline"`
	Rationale        string   `json:"rationale,omitempty"`
}

// Result is the full projection report for one employee.
type Result struct {
	EmployeeID      int                                        `json:"employee_id"`
	CurrentState    CurrentState                               `json:"current_state"`
	Projections     map[forecast.Scenario]*ScenarioProjection  `json:"projections"`
	Analysis        Analysis                                   `json:"analysis"`
	Recommendations Recommendations                            `json:"recommendations"`
}

// Summary is the condensed per-employee view returned by AnalyzeMultiple.
type Summary struct {
	CurrentSalary            decimal.Decimal `json:"current_salary"`
	ProjectedSalaryRealistic decimal.Decimal `json:"projected_salary_realistic"`
	CAGRRealistic            float64         `json:"cagr_realistic"`
	MedianStatus             string          `json:"median_status"`
	KeyRecommendation        string          `json:"key_recommendation"`
}

// Project runs the multi-year progression for one employee. Passing zero
// years or nil scenarios selects the defaults (5 years, all three scenarios).
func (s *Simulator) Project(emp domain.Employee, years int, scenarios []forecast.Scenario, includeMarketAdjustments bool) (*Result, error) {
	if err := emp.Validate(); err != nil {
		return nil, err
	}
	if years <= 0 {
		years = DefaultYears
	}
	if scenarios == nil {
		scenarios = forecast.DefaultScenarios
	}

	levelMedian, ok := s.benchmark.LevelMedian(emp.Level)
	if !ok {
		return nil, fmt.Errorf("no benchmark data for level %d", emp.Level)
	}
	levelRange, ok := s.benchmark.LevelRanges[emp.Level]
	if !ok {
		return nil, fmt.Errorf("no salary range data for level %d", emp.Level)
	}

	tenure := emp.Tenure(time.Now())
	s.logger.Infof("projecting employee %d: level %d, %s, %s", emp.EmployeeID, emp.Level, emp.Salary.StringFixed(2), emp.Performance)

	projections := make(map[forecast.Scenario]*ScenarioProjection, len(scenarios))
	var allValues []decimal.Decimal

	for _, scenario := range scenarios {
		path := s.performancePath(emp, years, scenario, tenure)
		salaryPath, err := s.salaryPath(emp, path)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario, err)
		}
		if includeMarketAdjustments {
			salaryPath = s.engine.ApplyMarketAdjustments(salaryPath, s.MarketAdjustmentYears)
		}

		finalSalary := salaryPath[len(salaryPath)-1]
		cagr, err := s.engine.CAGR(emp.Salary, finalSalary, years)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario, err)
		}

		projections[scenario] = &ScenarioProjection{
			SalaryProgression: salaryPath,
			PerformancePath:   path,
			FinalSalary:       finalSalary,
			TotalIncrease:     finalSalary.Sub(emp.Salary),
			CAGR:              cagr,
			YearsProjected:    years,
		}
		allValues = append(allValues, salaryPath...)
	}

	ciLow, ciHigh, err := s.engine.ConfidenceInterval(allValues, 0)
	if err != nil {
		return nil, err
	}

	realistic := projections[forecast.ScenarioRealistic]
	if realistic == nil {
		// Single-scenario runs anchor the analysis on whatever was asked for.
		realistic = projections[scenarios[0]]
	}

	median := s.medianComparison(emp, levelMedian, realistic.FinalSalary)
	market := s.marketCompetitiveness(emp, levelRange, realistic.FinalSalary)
	risks := s.riskFactors(emp, realistic, median, market, tenure)

	result := &Result{
		EmployeeID: emp.EmployeeID,
		CurrentState: CurrentState{
			Level:          emp.Level,
			Salary:         emp.Salary,
			Performance:    emp.Performance,
			Gender:         emp.Gender,
			YearsAtCompany: tenure,
		},
		Projections: projections,
		Analysis: Analysis{
			ConfidenceIntervalLow:  ciLow,
			ConfidenceIntervalHigh: ciHigh,
			MedianComparison:       median,
			MarketCompetitiveness:  market,
			RiskFactors:            risks,
		},
		Recommendations: s.recommendations(realistic, risks),
	}

	s.logger.Infof("projection complete for employee %d: realistic final %s", emp.EmployeeID, realistic.FinalSalary.StringFixed(2))
	return result, nil
}

// AnalyzeMultiple projects a batch of employees by ID and condenses each to a
// summary. Unknown IDs are logged and skipped rather than failing the batch.
func (s *Simulator) AnalyzeMultiple(employeeIDs []int, years int) (map[int]Summary, error) {
	s.logger.Infof("analyzing progression for %d employees", len(employeeIDs))

	results := make(map[int]Summary, len(employeeIDs))
	for _, id := range employeeIDs {
		emp, ok := s.byID[id]
		if !ok {
			s.logger.Warnf("employee %d not found in population data", id)
			continue
		}

		result, err := s.Project(emp, years, nil, true)
		if err != nil {
			return nil, fmt.Errorf("employee %d: %w", id, err)
		}
		realistic := result.Projections[forecast.ScenarioRealistic]
		results[id] = Summary{
			CurrentSalary:            result.CurrentState.Salary,
			ProjectedSalaryRealistic: realistic.FinalSalary,
			CAGRRealistic:            realistic.CAGR,
			MedianStatus:             result.Analysis.MedianComparison.CurrentStatus,
			KeyRecommendation:        result.Recommendations.PrimaryAction,
		}
	}
	return results, nil
}

// performancePath builds the rating trajectory for one scenario, adapted to
// the employee's level and tenure and sized to the horizon.
func (s *Simulator) performancePath(emp domain.Employee, years int, scenario forecast.Scenario, tenure float64) []domain.Rating {
	base := s.engine.PerformanceScenarios(emp.Performance).Path(scenario)
	path := adaptPath(base, emp.Level, tenure)

	if len(path) > years {
		path = path[:years]
	}
	for len(path) < years {
		path = append(path, path[len(path)-1])
	}
	return path
}

// adaptPath adjusts a base rating path for career stage. Senior employees
// (level 4+) are limited to one rating step per year, new core employees get
// an improvement bias, and long-tenure employees get smoothed mid-path dips.
func adaptPath(base []domain.Rating, level int, tenure float64) []domain.Rating {
	path := append([]domain.Rating(nil), base...)

	if level >= 4 {
		for i := 1; i < len(path); i++ {
			delta := int(path[i]) - int(path[i-1])
			if delta > 1 {
				path[i] = path[i-1].Step(1)
			} else if delta < -1 {
				path[i] = path[i-1].Step(-1)
			}
		}
	}

	if tenure < 2.0 && level <= 3 {
		for i := 0; i < len(path)-1; i++ {
			if path[i] == domain.RatingPartiallyMet {
				path[i+1] = domain.RatingAchieving
			}
		}
	}

	if tenure > 5.0 && len(path) >= 3 {
		for i := 1; i < len(path)-1; i++ {
			if path[i-1] == path[i+1] {
				path[i] = path[i-1]
			}
		}
	}

	return path
}

// salaryPath applies one uplift per path year, compounding from the current
// salary. The returned slice includes the starting salary at index 0.
func (s *Simulator) salaryPath(emp domain.Employee, performancePath []domain.Rating) ([]decimal.Decimal, error) {
	path := make([]decimal.Decimal, 0, len(performancePath)+1)
	path = append(path, emp.Salary)

	current := emp.Salary
	for year, rating := range performancePath {
		next, err := s.engine.UpliftIncrease(current, emp.Level, rating)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", year+1, err)
		}
		path = append(path, next)
		current = next
	}
	return path, nil
}

func (s *Simulator) medianComparison(emp domain.Employee, levelMedian, realisticFinal decimal.Decimal) MedianComparison {
	currentGap := emp.Salary.Sub(levelMedian)
	finalGap := realisticFinal.Sub(levelMedian)

	status := func(gap decimal.Decimal) string {
		if gap.IsPositive() {
			return "above_median"
		}
		return "below_median"
	}

	return MedianComparison{
		CurrentStatus:       status(currentGap),
		CurrentGapAmount:    currentGap,
		CurrentGapPercent:   gapPercent(currentGap, levelMedian),
		ProjectedStatus:     status(finalGap),
		ProjectedGapAmount:  finalGap,
		ProjectedGapPercent: gapPercent(finalGap, levelMedian),
	}
}

func (s *Simulator) marketCompetitiveness(emp domain.Employee, levelRange population.RangeStats, realisticFinal decimal.Decimal) MarketCompetitiveness {
	span := levelRange.Max.Sub(levelRange.Min)

	currentPercentile := 50.0
	projectedPercentile := 50.0
	if span.IsPositive() {
		currentPercentile = clampPercentile(emp.Salary.Sub(levelRange.Min).Div(span).InexactFloat64() * 100)
		projectedPercentile = clampPercentile(realisticFinal.Sub(levelRange.Min).Div(span).InexactFloat64() * 100)
	}

	return MarketCompetitiveness{
		CurrentPercentile:   currentPercentile,
		ProjectedPercentile: projectedPercentile,
		CurrentQuartile:     quartileOf(emp.Salary, levelRange),
		ProjectedQuartile:   quartileOf(realisticFinal, levelRange),
	}
}

func quartileOf(salary decimal.Decimal, levelRange population.RangeStats) string {
	switch {
	case salary.LessThanOrEqual(levelRange.Q25):
		return "bottom_quartile"
	case salary.LessThanOrEqual(levelRange.Median):
		return "second_quartile"
	case salary.LessThanOrEqual(levelRange.Q75):
		return "third_quartile"
	default:
		return "top_quartile"
	}
}

func (s *Simulator) riskFactors(emp domain.Employee, realistic *ScenarioProjection, median MedianComparison, market MarketCompetitiveness, tenure float64) []string {
	var risks []string

	for _, rating := range realistic.PerformancePath {
		if rating == domain.RatingNotMet {
			risks = append(risks, "performance_consistency")
			break
		}
	}
	if median.CurrentStatus == "below_median" {
		risks = append(risks, "below_median_salary")
	}
	if realistic.CAGR < 0.025 {
		risks = append(risks, "low_growth_trajectory")
	}
	if market.CurrentPercentile < 25 {
		risks = append(risks, "low_market_position")
	}
	if tenure > 5.0 && emp.Level <= 3 {
		risks = append(risks, "career_progression_stagnation")
	}

	return risks
}

func (s *Simulator) recommendations(realistic *ScenarioProjection, risks []string) Recommendations {
	rec := Recommendations{
		PrimaryAction:    "monitor_progress",
		SecondaryActions: []string{},
		Timeline:         "next_review_cycle",
	}

	has := func(risk string) bool {
		for _, r := range risks {
			if r == risk {
				return true
			}
		}
		return false
	}

	if has("below_median_salary") {
		rec.PrimaryAction = "salary_adjustment_review"
		rec.SecondaryActions = append(rec.SecondaryActions, "market_salary_benchmarking")
		rec.Rationale = "Employee is below level median, requires salary review"
	}
	if has("performance_consistency") {
		rec.PrimaryAction = "performance_improvement_plan"
		rec.SecondaryActions = append(rec.SecondaryActions, "skill_development", "mentoring_assignment")
		rec.Rationale = "Performance inconsistency detected, focus on development"
	}
	if has("career_progression_stagnation") {
		rec.PrimaryAction = "career_development_discussion"
		rec.SecondaryActions = append(rec.SecondaryActions, "level_promotion_assessment", "role_expansion")
		rec.Timeline = "immediate"
		rec.Rationale = "Long tenure with limited progression, needs career path review"
	}
	if has("low_growth_trajectory") {
		rec.SecondaryActions = append(rec.SecondaryActions, "performance_expectations_clarification")
		if rec.PrimaryAction == "monitor_progress" {
			rec.PrimaryAction = "growth_acceleration_plan"
		}
	}

	if realistic.CAGR > 0.06 && len(risks) == 0 {
		rec.PrimaryAction = "recognition_and_retention"
		rec.SecondaryActions = append(rec.SecondaryActions, "stretch_assignments", "leadership_development")
		rec.Rationale = "Strong performer with high growth potential"
	}

	return rec
}

func gapPercent(gap, median decimal.Decimal) float64 {
	if median.IsZero() {
		return 0
	}
	return gap.Div(median).InexactFloat64() * 100
}

func clampPercentile(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
