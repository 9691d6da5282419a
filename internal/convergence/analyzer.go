// Package convergence analyzes below-median employees and models how long
// they take to reach their level median under natural, accelerated and
// intervention scenarios.
package convergence

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/payequity/equisim/internal/domain"
	"github.com/payequity/equisim/internal/forecast"
	"github.com/payequity/equisim/internal/population"
	"github.com/payequity/equisim/internal/progression"
)

// Scenario names used throughout the convergence reports.
const (
	ScenarioNatural      = "natural"
	ScenarioAccelerated  = "accelerated"
	ScenarioIntervention = "intervention"
)

var trendScenarios = []string{ScenarioNatural, ScenarioAccelerated, ScenarioIntervention}

// Annual growth assumptions for population-level trend projection.
var trendGrowthRates = map[string]float64{
	ScenarioNatural:      0.05,
	ScenarioAccelerated:  0.08,
	ScenarioIntervention: 0.12,
}

// Analyzer identifies below-median employees and models convergence
// timelines against the population benchmark.
type Analyzer struct {
	employees []domain.Employee
	benchmark *population.Benchmark
	simulator *progression.Simulator

	// ConvergenceThresholdYears is the horizon considered a healthy
	// convergence; AcceptableGapPercent is how close to the median counts as
	// converged.
	ConvergenceThresholdYears int
	AcceptableGapPercent      float64

	logger domain.Logger
}

// NewAnalyzer builds an analyzer over a population snapshot. A nil engine
// gets the default forecasting configuration.
func NewAnalyzer(employees []domain.Employee, engine *forecast.Engine) *Analyzer {
	if engine == nil {
		engine = forecast.NewEngine()
	}
	return &Analyzer{
		employees:                 employees,
		benchmark:                 population.ComputeBenchmark(employees),
		simulator:                 progression.NewSimulator(employees, engine),
		ConvergenceThresholdYears: 5,
		AcceptableGapPercent:      5.0,
		logger:                    domain.NopLogger{},
	}
}

// SetLogger replaces the analyzer logger. A nil logger restores the no-op
// one.
func (a *Analyzer) SetLogger(logger domain.Logger) {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	a.logger = logger
	a.simulator.SetLogger(logger)
}

// BelowMedianEmployee is one employee flagged below their level median.
type BelowMedianEmployee struct {
	EmployeeID  int             `json:"employee_id"`
	Level       int             `json:"level"`
	Salary      decimal.Decimal `json:"salary"`
	Gender      string          `json:"gender,omitempty"`
	Performance domain.Rating   `json:"performance_rating"`
	LevelMedian decimal.Decimal `json:"level_median"`
	GapAmount   decimal.Decimal `json:"gap_amount"`
	GapPercent  float64         `json:"gap_percent"`
	TenureYears float64         `json:"tenure_years"`
}

// GapStatistics summarizes the gaps of a below-median group.
type GapStatistics struct {
	Count             int             `json:"count"`
	AverageGapAmount  decimal.Decimal `json:"average_gap_amount"`
	MedianGapAmount   decimal.Decimal `json:"median_gap_amount"`
	AverageGapPercent float64         `json:"average_gap_percent"`
	MedianGapPercent  float64         `json:"median_gap_percent"`
	TotalGapAmount    decimal.Decimal `json:"total_gap_amount"`
	MaxGapAmount      decimal.Decimal `json:"max_gap_amount"`
	MinGapAmount      decimal.Decimal `json:"min_gap_amount"`
}

// GenderPattern is the below-median summary for one gender.
type GenderPattern struct {
	Count             int     `json:"count"`
	AverageGapPercent float64 `json:"average_gap_percent"`
	MedianGapPercent  float64 `json:"median_gap_percent"`
}

// GenderAnalysis compares below-median patterns across genders. Disparity is
// the female average gap minus the male average gap in percentage points, and
// is only populated when both groups are represented.
type GenderAnalysis struct {
	ByGender             map[string]GenderPattern `json:"by_gender"`
	Disparity            float64                  `json:"gender_disparity,omitempty"`
	DisparitySignificant bool                     `json:"disparity_significant,omitempty"`
	DisparityComputed    bool                     `json:"-"`
}

// BelowMedianAnalysis is the population-level below-median report.
type BelowMedianAnalysis struct {
	TotalEmployees     int                   `json:"total_employees"`
	BelowMedianCount   int                   `json:"below_median_count"`
	BelowMedianPercent float64               `json:"below_median_percent"`
	Employees          []BelowMedianEmployee `json:"employees"`
	SummaryStatistics  GapStatistics         `json:"summary_statistics"`
	GenderAnalysis     *GenderAnalysis       `json:"gender_analysis,omitempty"`
}

// IdentifyBelowMedian flags every employee at least minGapPercent below
// their level median. Gender analysis covers the Male and Female groups.
func (a *Analyzer) IdentifyBelowMedian(minGapPercent float64, includeGenderAnalysis bool) *BelowMedianAnalysis {
	a.logger.Infof("identifying employees more than %.1f%% below median", minGapPercent)

	var flagged []BelowMedianEmployee
	genderGroups := map[string][]BelowMedianEmployee{"Male": nil, "Female": nil}
	now := time.Now()

	for _, emp := range a.employees {
		levelMedian, ok := a.benchmark.LevelMedian(emp.Level)
		if !ok || levelMedian.IsZero() {
			continue
		}
		gapAmount := levelMedian.Sub(emp.Salary)
		gapPercent := gapAmount.Div(levelMedian).InexactFloat64() * 100

		if gapPercent < minGapPercent {
			continue
		}

		entry := BelowMedianEmployee{
			EmployeeID:  emp.EmployeeID,
			Level:       emp.Level,
			Salary:      emp.Salary,
			Gender:      emp.Gender,
			Performance: emp.Performance,
			LevelMedian: levelMedian,
			GapAmount:   gapAmount,
			GapPercent:  gapPercent,
			TenureYears: emp.Tenure(now),
		}
		flagged = append(flagged, entry)

		if includeGenderAnalysis {
			if _, ok := genderGroups[emp.Gender]; ok {
				genderGroups[emp.Gender] = append(genderGroups[emp.Gender], entry)
			}
		}
	}

	result := &BelowMedianAnalysis{
		TotalEmployees:    len(a.employees),
		BelowMedianCount:  len(flagged),
		Employees:         flagged,
		SummaryStatistics: gapStatistics(flagged),
	}
	if len(a.employees) > 0 {
		result.BelowMedianPercent = float64(len(flagged)) / float64(len(a.employees)) * 100
	}
	if includeGenderAnalysis {
		result.GenderAnalysis = analyzeGenderPatterns(genderGroups)
	}

	a.logger.Infof("found %d employees (%.1f%%) below median", result.BelowMedianCount, result.BelowMedianPercent)
	return result
}

// ConvergenceScenario is one convergence path's timeline and cost.
type ConvergenceScenario struct {
	YearsToMedian                float64         `json:"years_to_median"`
	Strategy                     string          `json:"strategy"`
	ProjectedSalaryAtConvergence decimal.Decimal `json:"projected_salary_at_convergence"`
	CAGRRequired                 float64         `json:"cagr_required,omitempty"`
	Feasibility                  string          `json:"feasibility"`

	// Populated for the intervention scenario only.
	ImmediateAdjustmentAmount  decimal.Decimal `json:"immediate_adjustment_amount,omitempty"`
	ImmediateAdjustmentPercent float64         `json:"immediate_adjustment_percent,omitempty"`
	InterventionCost           decimal.Decimal `json:"intervention_cost,omitempty"`
}

// FeasibilityAssessment compares the convergence approaches.
type FeasibilityAssessment struct {
	NaturalFeasibility     string `json:"natural_feasibility"`
	AcceleratedFeasibility string `json:"accelerated_feasibility"`
	InterventionCertainty  string `json:"intervention_certainty"`
	RecommendedApproach    string `json:"recommended_approach"`
}

// TimelineResult is the convergence analysis for one employee. Status
// above_median carries only the gap and rationale fields.
type TimelineResult struct {
	Status            string                          `json:"status"`
	EmployeeID        int                             `json:"employee_id,omitempty"`
	CurrentGapAmount  decimal.Decimal                 `json:"current_gap_amount,omitempty"`
	CurrentGapPercent float64                         `json:"current_gap_percent"`
	Scenarios         map[string]*ConvergenceScenario `json:"scenarios,omitempty"`
	RecommendedAction string                          `json:"recommended_action,omitempty"`
	Feasibility       *FeasibilityAssessment          `json:"convergence_feasibility,omitempty"`
	ActionRequired    string                          `json:"action_required,omitempty"`
	Rationale         string                          `json:"rationale,omitempty"`
}

// AnalyzeTimeline models how long one employee takes to reach their level
// median. Pass a zero Rating for the default intervention (50% immediate gap
// closure); a valid rating models a performance-based intervention instead.
func (a *Analyzer) AnalyzeTimeline(emp domain.Employee, targetPerformance domain.Rating) (*TimelineResult, error) {
	levelMedian, ok := a.benchmark.LevelMedian(emp.Level)
	if !ok || levelMedian.IsZero() {
		return nil, fmt.Errorf("no benchmark data for level %d", emp.Level)
	}

	a.logger.Infof("analyzing convergence timeline for employee %d", emp.EmployeeID)

	if emp.Salary.GreaterThanOrEqual(levelMedian) {
		return &TimelineResult{
			Status:            "above_median",
			CurrentGapPercent: emp.Salary.Sub(levelMedian).Div(levelMedian).InexactFloat64() * 100,
			ActionRequired:    "none",
			Rationale:         "Employee already at or above median for their level",
		}, nil
	}

	natural, err := a.naturalConvergence(emp, levelMedian)
	if err != nil {
		return nil, err
	}
	accelerated, err := a.acceleratedConvergence(emp, levelMedian)
	if err != nil {
		return nil, err
	}
	intervention, err := a.interventionConvergence(emp, levelMedian, targetPerformance)
	if err != nil {
		return nil, err
	}

	scenarios := map[string]*ConvergenceScenario{
		ScenarioNatural:      natural,
		ScenarioAccelerated:  accelerated,
		ScenarioIntervention: intervention,
	}

	gapAmount := levelMedian.Sub(emp.Salary)
	gapPercent := gapAmount.Div(levelMedian).InexactFloat64() * 100

	result := &TimelineResult{
		Status:            "below_median",
		EmployeeID:        emp.EmployeeID,
		CurrentGapAmount:  gapAmount,
		CurrentGapPercent: gapPercent,
		Scenarios:         scenarios,
		RecommendedAction: recommendAction(gapPercent, natural.YearsToMedian),
		Feasibility:       assessFeasibility(scenarios),
	}

	a.logger.Infof("convergence analysis complete: natural %.1fy, intervention %.1fy",
		natural.YearsToMedian, intervention.YearsToMedian)
	return result, nil
}

// naturalConvergence projects the realistic scenario over ten years and
// finds the first year at or above the median.
func (a *Analyzer) naturalConvergence(emp domain.Employee, levelMedian decimal.Decimal) (*ConvergenceScenario, error) {
	result, err := a.simulator.Project(emp, 10, nil, true)
	if err != nil {
		return nil, fmt.Errorf("natural convergence projection: %w", err)
	}
	realistic := result.Projections[forecast.ScenarioRealistic]

	years, found := yearsToMedian(realistic.SalaryProgression, levelMedian)
	if !found {
		years = 10
	}

	return &ConvergenceScenario{
		YearsToMedian:                float64(years),
		Strategy:                     "natural_progression",
		ProjectedSalaryAtConvergence: salaryAtYear(realistic.SalaryProgression, years),
		CAGRRequired:                 realistic.CAGR,
		Feasibility:                  feasibilityBand(years, 5, 8),
	}, nil
}

// acceleratedConvergence is the same analysis against the optimistic path,
// with tighter feasibility bands.
func (a *Analyzer) acceleratedConvergence(emp domain.Employee, levelMedian decimal.Decimal) (*ConvergenceScenario, error) {
	result, err := a.simulator.Project(emp, 10, nil, true)
	if err != nil {
		return nil, fmt.Errorf("accelerated convergence projection: %w", err)
	}
	optimistic := result.Projections[forecast.ScenarioOptimistic]

	years, found := yearsToMedian(optimistic.SalaryProgression, levelMedian)
	if !found {
		years = 8
	}

	return &ConvergenceScenario{
		YearsToMedian:                float64(years),
		Strategy:                     "performance_acceleration",
		ProjectedSalaryAtConvergence: salaryAtYear(optimistic.SalaryProgression, years),
		CAGRRequired:                 optimistic.CAGR,
		Feasibility:                  feasibilityBand(years, 3, 6),
	}, nil
}

// interventionConvergence models a direct intervention. The default is an
// immediate 50% gap closure followed by natural progression on the adjusted
// salary; a target rating models raised performance over eight years instead.
func (a *Analyzer) interventionConvergence(emp domain.Employee, levelMedian decimal.Decimal, targetPerformance domain.Rating) (*ConvergenceScenario, error) {
	gapAmount := levelMedian.Sub(emp.Salary)
	halfGap := gapAmount.Mul(decimal.NewFromFloat(0.5))

	var totalYears float64
	if targetPerformance.Valid() {
		improved := emp.WithPerformance(targetPerformance)
		result, err := a.simulator.Project(improved, 8, []forecast.Scenario{forecast.ScenarioRealistic}, true)
		if err != nil {
			return nil, fmt.Errorf("performance intervention projection: %w", err)
		}
		realistic := result.Projections[forecast.ScenarioRealistic]
		years, found := yearsToMedian(realistic.SalaryProgression, levelMedian)
		if !found {
			years = 8
		}
		totalYears = float64(years)
	} else {
		adjusted := emp.WithSalary(emp.Salary.Add(halfGap))
		natural, err := a.naturalConvergence(adjusted, levelMedian)
		if err != nil {
			return nil, err
		}
		totalYears = 1 + natural.YearsToMedian
	}

	return &ConvergenceScenario{
		YearsToMedian:                totalYears,
		Strategy:                     "direct_intervention",
		ImmediateAdjustmentAmount:    halfGap,
		ImmediateAdjustmentPercent:   50.0,
		ProjectedSalaryAtConvergence: levelMedian.Mul(decimal.NewFromFloat(1.02)),
		Feasibility:                  "high",
		InterventionCost:             halfGap,
	}, nil
}

func recommendAction(gapPercent, naturalYears float64) string {
	switch {
	case gapPercent > 25 || naturalYears > 7:
		return "immediate_intervention"
	case gapPercent > 15 || naturalYears > 5:
		return "performance_acceleration"
	case naturalYears <= 3:
		return "monitor_natural_progression"
	default:
		return "moderate_intervention"
	}
}

func assessFeasibility(scenarios map[string]*ConvergenceScenario) *FeasibilityAssessment {
	best := trendScenarios[0]
	for _, name := range trendScenarios[1:] {
		if scenarios[name].YearsToMedian < scenarios[best].YearsToMedian {
			best = name
		}
	}
	return &FeasibilityAssessment{
		NaturalFeasibility:     scenarios[ScenarioNatural].Feasibility,
		AcceleratedFeasibility: scenarios[ScenarioAccelerated].Feasibility,
		InterventionCertainty:  "high",
		RecommendedApproach:    best,
	}
}

// yearsToMedian returns the first path index at or above the median. Index 0
// is the starting salary.
func yearsToMedian(path []decimal.Decimal, median decimal.Decimal) (int, bool) {
	for year, salary := range path {
		if salary.GreaterThanOrEqual(median) {
			return year, true
		}
	}
	return 0, false
}

func salaryAtYear(path []decimal.Decimal, year int) decimal.Decimal {
	if year >= len(path) {
		year = len(path) - 1
	}
	return path[year]
}

func feasibilityBand(years, highMax, mediumMax int) string {
	switch {
	case years <= highMax:
		return "high"
	case years <= mediumMax:
		return "medium"
	default:
		return "low"
	}
}

func gapStatistics(employees []BelowMedianEmployee) GapStatistics {
	if len(employees) == 0 {
		return GapStatistics{}
	}

	amounts := make([]decimal.Decimal, len(employees))
	percents := make([]float64, len(employees))
	total := decimal.Zero
	maxGap, minGap := employees[0].GapAmount, employees[0].GapAmount

	for i, emp := range employees {
		amounts[i] = emp.GapAmount
		percents[i] = emp.GapPercent
		total = total.Add(emp.GapAmount)
		if emp.GapAmount.GreaterThan(maxGap) {
			maxGap = emp.GapAmount
		}
		if emp.GapAmount.LessThan(minGap) {
			minGap = emp.GapAmount
		}
	}

	sortedPercents := append([]float64(nil), percents...)
	sort.Float64s(sortedPercents)

	return GapStatistics{
		Count:             len(employees),
		AverageGapAmount:  total.Div(decimal.NewFromInt(int64(len(employees)))),
		MedianGapAmount:   population.Median(amounts),
		AverageGapPercent: stat.Mean(percents, nil),
		MedianGapPercent:  medianFloat(sortedPercents),
		TotalGapAmount:    total,
		MaxGapAmount:      maxGap,
		MinGapAmount:      minGap,
	}
}

func analyzeGenderPatterns(groups map[string][]BelowMedianEmployee) *GenderAnalysis {
	analysis := &GenderAnalysis{ByGender: make(map[string]GenderPattern, len(groups))}

	for gender, employees := range groups {
		if len(employees) == 0 {
			analysis.ByGender[gender] = GenderPattern{}
			continue
		}
		gaps := make([]float64, len(employees))
		for i, emp := range employees {
			gaps[i] = emp.GapPercent
		}
		sorted := append([]float64(nil), gaps...)
		sort.Float64s(sorted)
		analysis.ByGender[gender] = GenderPattern{
			Count:             len(employees),
			AverageGapPercent: stat.Mean(gaps, nil),
			MedianGapPercent:  medianFloat(sorted),
		}
	}

	male, female := analysis.ByGender["Male"], analysis.ByGender["Female"]
	if male.Count > 0 && female.Count > 0 {
		analysis.Disparity = female.AverageGapPercent - male.AverageGapPercent
		analysis.DisparitySignificant = math.Abs(analysis.Disparity) > 5.0
		analysis.DisparityComputed = true
	}

	return analysis
}

// medianFloat expects sorted input and averages the two central values for
// even-sized slices.
func medianFloat(sorted []float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
