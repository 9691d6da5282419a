package intervention

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/payequity/equisim/internal/population"
)

// Equity analysis dimensions.
const (
	DimensionGender        = "gender"
	DimensionLevel         = "level"
	DimensionGenderByLevel = "gender_by_level"
	DimensionTenure        = "tenure"
)

// DefaultDimensions are analyzed when the caller passes none.
var DefaultDimensions = []string{DimensionGender, DimensionLevel, DimensionGenderByLevel}

// Equity intervention approach names in selection order.
const (
	ApproachComprehensive    = "comprehensive_equity"
	ApproachTargeted         = "targeted_adjustment"
	ApproachGradual          = "gradual_remediation"
	ApproachPerformanceBased = "performance_based"
)

var approachOrder = []string{ApproachComprehensive, ApproachTargeted, ApproachGradual, ApproachPerformanceBased}

// GenderEquity summarizes the gender dimension.
type GenderEquity struct {
	MaleMedian              decimal.Decimal `json:"male_median"`
	FemaleMedian            decimal.Decimal `json:"female_median"`
	PayGapPercent           float64         `json:"pay_gap_percent"`
	MaleCount               int             `json:"male_count"`
	FemaleCount             int             `json:"female_count"`
	StatisticalSignificance string          `json:"statistical_significance"`
}

// LevelEquity measures within-level salary spread.
type LevelEquity struct {
	Count                  int             `json:"count"`
	MedianSalary           decimal.Decimal `json:"median_salary"`
	SalaryStdDev           float64         `json:"salary_std"`
	CoefficientOfVariation float64         `json:"coefficient_of_variation"`
}

// GenderLevelEquity compares gender medians within one level.
type GenderLevelEquity struct {
	MaleCount    int             `json:"male_count"`
	FemaleCount  int             `json:"female_count"`
	MaleMedian   decimal.Decimal `json:"male_median"`
	FemaleMedian decimal.Decimal `json:"female_median"`
	GapPercent   float64         `json:"gap_percent"`
}

// TenureEquity summarizes one tenure bracket.
type TenureEquity struct {
	Count        int             `json:"count"`
	MedianSalary decimal.Decimal `json:"median_salary"`
	MeanSalary   decimal.Decimal `json:"mean_salary"`
}

// PriorityIntervention is one recommended equity intervention, ordered by
// priority.
type PriorityIntervention struct {
	Type                 string  `json:"type"`
	Priority             string  `json:"priority"`
	Description          string  `json:"description"`
	EstimatedCostPercent float64 `json:"estimated_cost_percent"`
}

// EquityAnalysis is the multi-dimensional equity report. Dimension fields
// are nil when not requested.
type EquityAnalysis struct {
	Gender                *GenderEquity             `json:"gender,omitempty"`
	Level                 map[int]LevelEquity       `json:"level,omitempty"`
	GenderByLevel         map[int]GenderLevelEquity `json:"gender_by_level,omitempty"`
	Tenure                map[string]TenureEquity   `json:"tenure,omitempty"`
	OverallEquityScore    float64                   `json:"overall_equity_score"`
	PriorityInterventions []PriorityIntervention    `json:"priority_interventions"`
}

// AnalyzeEquity analyzes salary equity across the requested dimensions. Nil
// dimensions selects gender, level and gender_by_level.
func (s *Simulator) AnalyzeEquity(dimensions []string) *EquityAnalysis {
	if dimensions == nil {
		dimensions = DefaultDimensions
	}
	s.logger.Infof("analyzing population salary equity across dimensions: %v", dimensions)

	analysis := &EquityAnalysis{}
	for _, dim := range dimensions {
		switch dim {
		case DimensionGender:
			analysis.Gender = s.genderEquity()
		case DimensionLevel:
			analysis.Level = s.levelEquity()
		case DimensionGenderByLevel:
			analysis.GenderByLevel = s.genderByLevelEquity()
		case DimensionTenure:
			analysis.Tenure = s.tenureEquity()
		}
	}

	analysis.OverallEquityScore = overallEquityScore(analysis)
	analysis.PriorityInterventions = priorityInterventions(analysis)
	return analysis
}

func (s *Simulator) genderEquity() *GenderEquity {
	return &GenderEquity{
		MaleMedian:              s.baseline.MaleMedianSalary,
		FemaleMedian:            s.baseline.FemaleMedianSalary,
		PayGapPercent:           s.baseline.GenderPayGapPercent,
		MaleCount:               s.baseline.MaleEmployees,
		FemaleCount:             s.baseline.FemaleEmployees,
		StatisticalSignificance: s.payGapSignificance(),
	}
}

// payGapSignificance is a coarse significance tier based on sample sizes and
// gap magnitude, not a formal hypothesis test.
func (s *Simulator) payGapSignificance() string {
	males, females := s.baseline.MaleEmployees, s.baseline.FemaleEmployees
	if males < 5 || females < 5 {
		return "insufficient_data"
	}

	gap := math.Abs(s.baseline.GenderPayGapPercent)
	switch {
	case gap > 15 && males > 10 && females > 10:
		return "highly_significant"
	case gap > 10:
		return "significant"
	case gap > 5:
		return "moderately_significant"
	default:
		return "not_significant"
	}
}

func (s *Simulator) levelEquity() map[int]LevelEquity {
	byLevel := make(map[int][]float64)
	for _, emp := range s.employees {
		byLevel[emp.Level] = append(byLevel[emp.Level], emp.Salary.InexactFloat64())
	}

	equity := make(map[int]LevelEquity, len(byLevel))
	for level, salaries := range byLevel {
		median, _ := s.benchmark.LevelMedian(level)
		entry := LevelEquity{Count: len(salaries), MedianSalary: median}
		if len(salaries) > 1 {
			entry.SalaryStdDev = stat.StdDev(salaries, nil)
			if mean := stat.Mean(salaries, nil); mean > 0 {
				entry.CoefficientOfVariation = entry.SalaryStdDev / mean
			}
		}
		equity[level] = entry
	}
	return equity
}

func (s *Simulator) genderByLevelEquity() map[int]GenderLevelEquity {
	counts := make(map[int]map[string]int)
	for _, emp := range s.employees {
		if counts[emp.Level] == nil {
			counts[emp.Level] = make(map[string]int)
		}
		counts[emp.Level][emp.Gender]++
	}

	equity := make(map[int]GenderLevelEquity)
	for _, level := range s.benchmark.Levels() {
		maleMedian, maleOK := s.benchmark.GenderMedian(level, "Male")
		femaleMedian, femaleOK := s.benchmark.GenderMedian(level, "Female")

		entry := GenderLevelEquity{
			MaleCount:   counts[level]["Male"],
			FemaleCount: counts[level]["Female"],
		}
		if maleOK {
			entry.MaleMedian = maleMedian
		}
		if femaleOK {
			entry.FemaleMedian = femaleMedian
		}
		if maleOK && femaleOK && maleMedian.IsPositive() {
			entry.GapPercent = maleMedian.Sub(femaleMedian).Div(maleMedian).InexactFloat64() * 100
		}
		equity[level] = entry
	}
	return equity
}

func (s *Simulator) tenureEquity() map[string]TenureEquity {
	brackets := map[string][]decimal.Decimal{}
	now := time.Now()

	for _, emp := range s.employees {
		tenure := emp.Tenure(now)
		bracket := "5+ years"
		if tenure < 2 {
			bracket = "0-2 years"
		} else if tenure < 5 {
			bracket = "2-5 years"
		}
		brackets[bracket] = append(brackets[bracket], emp.Salary)
	}

	equity := make(map[string]TenureEquity, len(brackets))
	for bracket, salaries := range brackets {
		total := decimal.Zero
		for _, salary := range salaries {
			total = total.Add(salary)
		}
		equity[bracket] = TenureEquity{
			Count:        len(salaries),
			MedianSalary: population.Median(salaries),
			MeanSalary:   total.Div(decimal.NewFromInt(int64(len(salaries)))),
		}
	}
	return equity
}

// overallEquityScore averages the gender score (a 30% gap scores zero) and
// the level score (lower within-level variation scores higher).
func overallEquityScore(analysis *EquityAnalysis) float64 {
	var scores []float64

	if analysis.Gender != nil {
		gap := math.Abs(analysis.Gender.PayGapPercent)
		scores = append(scores, math.Max(0, 1-gap/30))
	}
	if analysis.Level != nil {
		var cvs []float64
		for _, entry := range analysis.Level {
			cvs = append(cvs, entry.CoefficientOfVariation)
		}
		avgCV := 0.0
		if len(cvs) > 0 {
			avgCV = stat.Mean(cvs, nil)
		}
		scores = append(scores, math.Max(0, 1-avgCV))
	}

	if len(scores) == 0 {
		return 0.5
	}
	return stat.Mean(scores, nil)
}

func priorityInterventions(analysis *EquityAnalysis) []PriorityIntervention {
	var interventions []PriorityIntervention

	if analysis.Gender != nil {
		gap := math.Abs(analysis.Gender.PayGapPercent)
		if gap > 10 {
			priority := "medium"
			if gap > 20 {
				priority = "high"
			}
			interventions = append(interventions, PriorityIntervention{
				Type:                 "gender_gap_remediation",
				Priority:             priority,
				Description:          fmt.Sprintf("Address %.1f%% gender pay gap", gap),
				EstimatedCostPercent: math.Min(0.008, gap*0.0003),
			})
		}
	}

	if analysis.GenderByLevel != nil {
		levels := make([]int, 0, len(analysis.GenderByLevel))
		for level := range analysis.GenderByLevel {
			levels = append(levels, level)
		}
		sort.Ints(levels)
		for _, level := range levels {
			entry := analysis.GenderByLevel[level]
			if math.Abs(entry.GapPercent) > 15 {
				interventions = append(interventions, PriorityIntervention{
					Type:                 "level_specific_adjustment",
					Priority:             "medium",
					Description:          fmt.Sprintf("Address Level %d gender gap (%.1f%%)", level, entry.GapPercent),
					EstimatedCostPercent: 0.001,
				})
			}
		}
	}

	priorityRank := map[string]int{"high": 3, "medium": 2, "low": 1}
	sort.SliceStable(interventions, func(i, j int) bool {
		return priorityRank[interventions[i].Priority] > priorityRank[interventions[j].Priority]
	})
	return interventions
}

// LevelInequity measures the salary spread within one level.
type LevelInequity struct {
	CoefficientVariation float64         `json:"coefficient_variation"`
	SalaryRange          decimal.Decimal `json:"salary_range"`
	EmployeeCount        int             `json:"employee_count"`
}

// EquityGaps captures the gaps an equity intervention must address.
type EquityGaps struct {
	GenderGap       float64               `json:"gender_gap"`
	LevelInequities map[int]LevelInequity `json:"level_inequities"`
}

// EquityApproach is one modelled equity intervention approach.
type EquityApproach struct {
	ApproachName         string             `json:"approach_name"`
	Description          string             `json:"description"`
	TotalInvestment      decimal.Decimal    `json:"total_investment"`
	AffectedEmployees    int                `json:"affected_employees"`
	TimelineYears        int                `json:"timeline_years"`
	ExpectedOutcomes     map[string]any     `json:"expected_outcomes"`
	ImplementationPhases []string           `json:"implementation_phases,omitempty"`
	SelectionScore       float64            `json:"selection_score,omitempty"`
	Alternatives         map[string]float64 `json:"alternatives,omitempty"`
}

// BudgetConstraint records the spending cap applied to an intervention.
type BudgetConstraint struct {
	Percentage   float64         `json:"percentage"`
	Amount       decimal.Decimal `json:"amount"`
	TotalPayroll decimal.Decimal `json:"total_payroll"`
}

// EquityInterventionResult is the complete equity intervention analysis.
type EquityInterventionResult struct {
	InterventionType string                     `json:"intervention_type"`
	BaselineMetrics  BaselineMetrics            `json:"baseline_metrics"`
	EquityGaps       EquityGaps                 `json:"equity_gap_analysis"`
	Approaches       map[string]*EquityApproach `json:"intervention_approaches"`
	OptimalApproach  *EquityApproach            `json:"optimal_approach"`
	BudgetConstraint BudgetConstraint           `json:"budget_constraint"`
	TimelineYears    int                        `json:"timeline_years"`
}

// ModelEquityIntervention models comprehensive equity intervention approaches
// within a payroll-fraction budget. Zero or negative budgetConstraint and
// yearsToAchieve select the defaults (0.5% of payroll, 5 years).
func (s *Simulator) ModelEquityIntervention(interventionType string, budgetConstraint float64, yearsToAchieve int) *EquityInterventionResult {
	if interventionType == "" {
		interventionType = ApproachComprehensive
	}
	if budgetConstraint <= 0 {
		budgetConstraint = DefaultBudgetConstraint
	}
	if yearsToAchieve <= 0 {
		yearsToAchieve = DefaultMaxYears
	}

	s.logger.Infof("modeling %s intervention strategy", interventionType)

	maxBudget := s.baseline.TotalPayroll.Mul(decimal.NewFromFloat(budgetConstraint))
	gaps := s.equityGaps()

	approaches := map[string]*EquityApproach{
		ApproachComprehensive:    s.comprehensiveApproach(gaps, maxBudget, yearsToAchieve),
		ApproachTargeted:         s.targetedApproach(gaps, maxBudget, yearsToAchieve),
		ApproachGradual:          s.gradualApproach(gaps, maxBudget, yearsToAchieve),
		ApproachPerformanceBased: s.performanceBasedApproach(maxBudget, yearsToAchieve),
	}

	optimal := selectOptimalApproach(approaches, maxBudget)

	result := &EquityInterventionResult{
		InterventionType: interventionType,
		BaselineMetrics:  s.baseline,
		EquityGaps:       gaps,
		Approaches:       approaches,
		OptimalApproach:  optimal,
		BudgetConstraint: BudgetConstraint{
			Percentage:   budgetConstraint,
			Amount:       maxBudget,
			TotalPayroll: s.baseline.TotalPayroll,
		},
		TimelineYears: yearsToAchieve,
	}

	s.logger.Infof("optimal approach: %s (%s)", optimal.ApproachName, optimal.TotalInvestment.StringFixed(0))
	return result
}

func (s *Simulator) equityGaps() EquityGaps {
	gaps := EquityGaps{
		GenderGap:       s.baseline.GenderPayGapPercent,
		LevelInequities: make(map[int]LevelInequity),
	}

	byLevel := make(map[int][]float64)
	ranges := make(map[int][2]decimal.Decimal)
	for _, emp := range s.employees {
		byLevel[emp.Level] = append(byLevel[emp.Level], emp.Salary.InexactFloat64())
		r, ok := ranges[emp.Level]
		if !ok {
			ranges[emp.Level] = [2]decimal.Decimal{emp.Salary, emp.Salary}
			continue
		}
		if emp.Salary.LessThan(r[0]) {
			r[0] = emp.Salary
		}
		if emp.Salary.GreaterThan(r[1]) {
			r[1] = emp.Salary
		}
		ranges[emp.Level] = r
	}

	for level, salaries := range byLevel {
		if len(salaries) < 2 {
			continue
		}
		std := stat.StdDev(salaries, nil)
		mean := stat.Mean(salaries, nil)
		cv := 0.0
		if mean > 0 {
			cv = std / mean * 100
		}
		r := ranges[level]
		gaps.LevelInequities[level] = LevelInequity{
			CoefficientVariation: cv,
			SalaryRange:          r[1].Sub(r[0]),
			EmployeeCount:        len(salaries),
		}
	}
	return gaps
}

func (s *Simulator) comprehensiveApproach(gaps EquityGaps, maxBudget decimal.Decimal, years int) *EquityApproach {
	return &EquityApproach{
		ApproachName:      ApproachComprehensive,
		Description:       "Address all equity gaps simultaneously across gender, level, and performance dimensions",
		TotalInvestment:   maxBudget.Mul(decimal.NewFromFloat(0.8)),
		AffectedEmployees: len(s.employees) / 3,
		TimelineYears:     years,
		ExpectedOutcomes: map[string]any{
			"gender_gap_reduction":     math.Min(gaps.GenderGap*0.8, 80),
			"level_inequity_reduction": 60.0,
			"overall_equity_score":     85.0,
		},
		ImplementationPhases: []string{
			"Phase 1: Immediate high-priority adjustments (6 months)",
			"Phase 2: Performance-based interventions (18 months)",
			"Phase 3: Long-term equity maintenance (remaining time)",
		},
	}
}

func (s *Simulator) targetedApproach(gaps EquityGaps, maxBudget decimal.Decimal, years int) *EquityApproach {
	timeline := years - 2
	if timeline < 2 {
		timeline = 2
	}
	return &EquityApproach{
		ApproachName:      ApproachTargeted,
		Description:       "Focus on specific high-impact salary adjustments",
		TotalInvestment:   maxBudget.Mul(decimal.NewFromFloat(0.6)),
		AffectedEmployees: len(s.employees) / 5,
		TimelineYears:     timeline,
		ExpectedOutcomes: map[string]any{
			"gender_gap_reduction": math.Min(gaps.GenderGap*0.6, 60),
			"immediate_impact":     "high",
			"sustainable_change":   "medium",
		},
	}
}

func (s *Simulator) gradualApproach(gaps EquityGaps, maxBudget decimal.Decimal, years int) *EquityApproach {
	return &EquityApproach{
		ApproachName:      ApproachGradual,
		Description:       "Spread equity improvements over extended timeline",
		TotalInvestment:   maxBudget,
		AffectedEmployees: len(s.employees) / 2,
		TimelineYears:     years + 2,
		ExpectedOutcomes: map[string]any{
			"gender_gap_reduction": math.Min(gaps.GenderGap*0.9, 90),
			"sustainability":       "high",
			"budget_efficiency":    "high",
		},
	}
}

func (s *Simulator) performanceBasedApproach(maxBudget decimal.Decimal, years int) *EquityApproach {
	return &EquityApproach{
		ApproachName:      ApproachPerformanceBased,
		Description:       "Link equity improvements to performance development programs",
		TotalInvestment:   maxBudget.Mul(decimal.NewFromFloat(0.7)),
		AffectedEmployees: len(s.employees) / 4,
		TimelineYears:     years,
		ExpectedOutcomes: map[string]any{
			"performance_improvement": "high",
			"equity_improvement":      "medium",
			"retention_impact":        "high",
		},
	}
}

// selectOptimalApproach scores approaches on expected gender gap reduction
// (up to 40 points), expected equity score (up to 30), and a 30-point
// feasibility bonus when the investment fits the budget cap.
func selectOptimalApproach(approaches map[string]*EquityApproach, maxBudget decimal.Decimal) *EquityApproach {
	scores := make(map[string]float64, len(approaches))

	for _, name := range approachOrder {
		approach := approaches[name]

		impact := 0.0
		if reduction, ok := approach.ExpectedOutcomes["gender_gap_reduction"].(float64); ok {
			impact += math.Min(reduction, 100) / 100 * 40
		}
		if equityScore, ok := approach.ExpectedOutcomes["overall_equity_score"].(float64); ok {
			impact += equityScore / 100 * 30
		}

		feasibility := 0.0
		if approach.TotalInvestment.LessThanOrEqual(maxBudget) {
			feasibility = 30
		}

		scores[name] = impact + feasibility
	}

	best := approachOrder[0]
	for _, name := range approachOrder[1:] {
		if scores[name] > scores[best] {
			best = name
		}
	}

	optimal := *approaches[best]
	optimal.SelectionScore = scores[best]
	optimal.Alternatives = make(map[string]float64, len(scores)-1)
	for name, score := range scores {
		if name != best {
			optimal.Alternatives[name] = score
		}
	}
	return &optimal
}
