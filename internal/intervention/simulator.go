// Package intervention models management intervention strategies for salary
// equity, centered on gender pay gap remediation with budget constraints.
package intervention

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/payequity/equisim/internal/domain"
	"github.com/payequity/equisim/internal/population"
)

// Defaults for remediation modelling.
const (
	DefaultMaxBudgetPercent = 0.006
	DefaultTargetGapPercent = 0.0
	DefaultMaxYears         = 5
	DefaultBudgetConstraint = 0.005
)

// Remediation strategy names in evaluation order.
const (
	StrategyImmediateAdjustment  = "immediate_adjustment"
	StrategyGradual3Year         = "gradual_3_year"
	StrategyGradual5Year         = "gradual_5_year"
	StrategyNaturalConvergence   = "natural_convergence"
	StrategyTargetedIntervention = "targeted_intervention"
)

var remediationStrategyOrder = []string{
	StrategyImmediateAdjustment,
	StrategyGradual3Year,
	StrategyGradual5Year,
	StrategyNaturalConvergence,
	StrategyTargetedIntervention,
}

// Simulator models intervention strategies against a population snapshot.
type Simulator struct {
	employees []domain.Employee
	benchmark *population.Benchmark
	baseline  BaselineMetrics

	// MaxBudgetPercent caps intervention spend as a fraction of payroll.
	MaxBudgetPercent float64

	logger domain.Logger
}

// NewSimulator builds a simulator over a population snapshot.
func NewSimulator(employees []domain.Employee) *Simulator {
	s := &Simulator{
		employees:        employees,
		benchmark:        population.ComputeBenchmark(employees),
		MaxBudgetPercent: DefaultMaxBudgetPercent,
		logger:           domain.NopLogger{},
	}
	s.baseline = s.computeBaseline()
	return s
}

// SetLogger replaces the simulator logger. A nil logger restores the no-op
// one.
func (s *Simulator) SetLogger(logger domain.Logger) {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	s.logger = logger
}

// Baseline exposes the snapshot's baseline equity metrics.
func (s *Simulator) Baseline() BaselineMetrics { return s.baseline }

// BaselineMetrics is the population state before any intervention.
type BaselineMetrics struct {
	TotalEmployees      int             `json:"total_employees"`
	MaleEmployees       int             `json:"male_employees"`
	FemaleEmployees     int             `json:"female_employees"`
	TotalPayroll        decimal.Decimal `json:"total_payroll"`
	OverallMedianSalary decimal.Decimal `json:"overall_median_salary"`
	MaleMedianSalary    decimal.Decimal `json:"male_median_salary"`
	FemaleMedianSalary  decimal.Decimal `json:"female_median_salary"`
	GenderPayGapPercent float64         `json:"gender_pay_gap_percent"`
	GenderPayGapAmount  decimal.Decimal `json:"gender_pay_gap_amount"`
}

// computeBaseline derives the gender pay gap from population medians. With
// either gender absent the gap is zero and both medians fall back to the
// overall median.
func (s *Simulator) computeBaseline() BaselineMetrics {
	var maleSalaries, femaleSalaries, allSalaries []decimal.Decimal
	payroll := decimal.Zero

	for _, emp := range s.employees {
		payroll = payroll.Add(emp.Salary)
		allSalaries = append(allSalaries, emp.Salary)
		switch emp.Gender {
		case "Male":
			maleSalaries = append(maleSalaries, emp.Salary)
		case "Female":
			femaleSalaries = append(femaleSalaries, emp.Salary)
		}
	}

	overallMedian := population.Median(allSalaries)
	metrics := BaselineMetrics{
		TotalEmployees:      len(s.employees),
		MaleEmployees:       len(maleSalaries),
		FemaleEmployees:     len(femaleSalaries),
		TotalPayroll:        payroll,
		OverallMedianSalary: overallMedian,
	}

	if len(maleSalaries) == 0 || len(femaleSalaries) == 0 {
		metrics.MaleMedianSalary = overallMedian
		metrics.FemaleMedianSalary = overallMedian
		return metrics
	}

	maleMedian := population.Median(maleSalaries)
	femaleMedian := population.Median(femaleSalaries)
	metrics.MaleMedianSalary = maleMedian
	metrics.FemaleMedianSalary = femaleMedian
	metrics.GenderPayGapAmount = maleMedian.Sub(femaleMedian)
	if maleMedian.IsPositive() {
		metrics.GenderPayGapPercent = metrics.GenderPayGapAmount.Div(maleMedian).InexactFloat64() * 100
	}
	return metrics
}

// UnderpaidFemale is one female employee below the male median for her
// level.
type UnderpaidFemale struct {
	EmployeeID      int             `json:"employee_id"`
	Level           int             `json:"level"`
	CurrentSalary   decimal.Decimal `json:"current_salary"`
	MaleLevelMedian decimal.Decimal `json:"male_level_median"`
	GapAmount       decimal.Decimal `json:"gap_amount"`
	GapPercent      float64         `json:"gap_percent"`
	Performance     domain.Rating   `json:"performance_rating"`
}

// IdentifyUnderpaidFemales finds female employees below the male median for
// their level, sorted by gap amount descending. Levels missing either gender
// are skipped.
func (s *Simulator) IdentifyUnderpaidFemales() []UnderpaidFemale {
	var underpaid []UnderpaidFemale

	for _, level := range s.benchmark.Levels() {
		maleMedian, maleOK := s.benchmark.GenderMedian(level, "Male")
		_, femaleOK := s.benchmark.GenderMedian(level, "Female")
		if !maleOK || !femaleOK {
			s.logger.Debugf("skipping level %d - insufficient gender data", level)
			continue
		}

		for _, emp := range s.employees {
			if emp.Level != level || emp.Gender != "Female" || emp.Salary.GreaterThanOrEqual(maleMedian) {
				continue
			}
			gap := maleMedian.Sub(emp.Salary)
			underpaid = append(underpaid, UnderpaidFemale{
				EmployeeID:      emp.EmployeeID,
				Level:           level,
				CurrentSalary:   emp.Salary,
				MaleLevelMedian: maleMedian,
				GapAmount:       gap,
				GapPercent:      gap.Div(maleMedian).InexactFloat64() * 100,
				Performance:     emp.Performance,
			})
		}
	}

	sort.SliceStable(underpaid, func(i, j int) bool {
		return underpaid[i].GapAmount.GreaterThan(underpaid[j].GapAmount)
	})

	s.logger.Debugf("identified %d underpaid female employees", len(underpaid))
	return underpaid
}

// RemediationStrategy is one modelled remediation option.
type RemediationStrategy struct {
	StrategyName             string          `json:"strategy_name"`
	Applicable               bool            `json:"applicable"`
	Reason                   string          `json:"reason,omitempty"`
	TimelineYears            float64         `json:"timeline_years,omitempty"`
	TotalCost                decimal.Decimal `json:"total_cost"`
	AnnualCost               decimal.Decimal `json:"annual_cost,omitempty"`
	CostAsPercentPayroll     float64         `json:"cost_as_percent_payroll"`
	AffectedEmployees        int             `json:"affected_employees"`
	AverageAdjustment        decimal.Decimal `json:"average_adjustment,omitempty"`
	ProjectedFinalGap        float64         `json:"projected_final_gap"`
	GapReductionPercent      float64         `json:"gap_reduction_percent"`
	BudgetUtilization        float64         `json:"budget_utilization"`
	Feasibility              string          `json:"feasibility,omitempty"`
	ImplementationComplexity string          `json:"implementation_complexity,omitempty"`
	LegalRiskReduction       string          `json:"legal_risk_reduction,omitempty"`
	Description              string          `json:"description,omitempty"`
}

// StrategyScore is the weighted evaluation of one strategy.
type StrategyScore struct {
	OverallScore        float64              `json:"overall_score"`
	EffectivenessScore  float64              `json:"effectiveness_score"`
	FeasibilityScore    float64              `json:"feasibility_score"`
	RiskScore           float64              `json:"risk_score"`
	CostEfficiencyScore float64              `json:"cost_efficiency_score"`
	StrategyDetails     *RemediationStrategy `json:"strategy_details"`
}

// StrategyEvaluation ranks the applicable strategies.
type StrategyEvaluation struct {
	StrategyScores map[string]*StrategyScore `json:"strategy_scores"`
	Ranking        []string                  `json:"ranking"`
	TopStrategy    string                    `json:"top_strategy,omitempty"`
}

// RecommendedStrategy is the winning strategy with its confidence band.
type RecommendedStrategy struct {
	StrategyName    string               `json:"strategy_name"`
	OverallScore    float64              `json:"overall_score,omitempty"`
	ConfidenceLevel string               `json:"confidence_level,omitempty"`
	Reason          string               `json:"reason,omitempty"`
	Strategy        *RemediationStrategy `json:"strategy,omitempty"`
}

// CurrentState summarizes the pre-intervention gap.
type CurrentState struct {
	GenderPayGapPercent     float64         `json:"gender_pay_gap_percent"`
	MaleMedianSalary        decimal.Decimal `json:"male_median_salary"`
	FemaleMedianSalary      decimal.Decimal `json:"female_median_salary"`
	AffectedFemaleEmployees int             `json:"affected_female_employees"`
	TotalPayroll            decimal.Decimal `json:"total_payroll"`
}

// TargetState records the remediation goal and its constraints.
type TargetState struct {
	TargetGapPercent        float64         `json:"target_gap_percent"`
	MaxTimelineYears        int             `json:"max_timeline_years"`
	BudgetConstraintPercent float64         `json:"budget_constraint_percent"`
	BudgetConstraintAmount  decimal.Decimal `json:"budget_constraint_amount"`
}

// PlanPhase is one implementation plan step.
type PlanPhase struct {
	Phase          int    `json:"phase"`
	TimelineMonths int    `json:"timeline_months"`
	Activity       string `json:"activity"`
}

// ROIAnalysis estimates financial return for the recommended strategy.
// PaybackYears is +Inf when no measurable annual benefit exists.
type ROIAnalysis struct {
	TotalInvestment         decimal.Decimal `json:"total_investment"`
	AnnualBenefits          decimal.Decimal `json:"annual_benefits"`
	PaybackYears            float64         `json:"payback_years"`
	ROI3Year                float64         `json:"roi_3_year"`
	RetentionBenefit        decimal.Decimal `json:"retention_benefit"`
	ProductivityBenefit     decimal.Decimal `json:"productivity_benefit"`
	LegalRiskReductionValue decimal.Decimal `json:"legal_risk_reduction_value"`
}

// RiskAssessment flags implementation risks and their mitigations.
type RiskAssessment struct {
	RiskFactors          []string `json:"risk_factors"`
	OverallRiskLevel     string   `json:"overall_risk_level"`
	MitigationStrategies []string `json:"mitigation_strategies"`
}

// RemediationResult is the complete gender gap remediation analysis.
type RemediationResult struct {
	CurrentState        CurrentState                    `json:"current_state"`
	TargetState         TargetState                     `json:"target_state"`
	AvailableStrategies map[string]*RemediationStrategy `json:"available_strategies"`
	StrategyEvaluation  *StrategyEvaluation             `json:"strategy_evaluation"`
	RecommendedStrategy RecommendedStrategy             `json:"recommended_strategy"`
	ImplementationPlan  []PlanPhase                     `json:"implementation_plan"`
	ROIAnalysis         ROIAnalysis                     `json:"roi_analysis"`
	RiskAssessment      RiskAssessment                  `json:"risk_assessment"`
}

// ModelGenderGapRemediation models remediation strategies toward a target gap
// within a budget expressed as a fraction of payroll. Zero or negative
// maxYears and budgetConstraint select the defaults.
func (s *Simulator) ModelGenderGapRemediation(targetGapPercent float64, maxYears int, budgetConstraint float64) (*RemediationResult, error) {
	if maxYears <= 0 {
		maxYears = DefaultMaxYears
	}
	if budgetConstraint <= 0 {
		budgetConstraint = DefaultBudgetConstraint
	}
	if targetGapPercent < 0 {
		return nil, fmt.Errorf("target gap percent must be non-negative, got %g", targetGapPercent)
	}

	s.logger.Infof("modeling gender gap remediation: %.1f%% toward %.1f%%",
		s.baseline.GenderPayGapPercent, targetGapPercent)

	underpaid := s.IdentifyUnderpaidFemales()

	strategies := map[string]*RemediationStrategy{
		StrategyImmediateAdjustment:  s.immediateAdjustmentStrategy(underpaid, targetGapPercent, budgetConstraint),
		StrategyGradual3Year:         s.gradualStrategy(underpaid, targetGapPercent, 3, budgetConstraint),
		StrategyGradual5Year:         s.gradualStrategy(underpaid, targetGapPercent, 5, budgetConstraint),
		StrategyNaturalConvergence:   s.naturalConvergenceStrategy(targetGapPercent, maxYears),
		StrategyTargetedIntervention: s.targetedInterventionStrategy(underpaid, budgetConstraint),
	}

	evaluation := s.evaluateStrategies(strategies, budgetConstraint)
	recommended := s.selectStrategy(evaluation)

	result := &RemediationResult{
		CurrentState: CurrentState{
			GenderPayGapPercent:     s.baseline.GenderPayGapPercent,
			MaleMedianSalary:        s.baseline.MaleMedianSalary,
			FemaleMedianSalary:      s.baseline.FemaleMedianSalary,
			AffectedFemaleEmployees: len(underpaid),
			TotalPayroll:            s.baseline.TotalPayroll,
		},
		TargetState: TargetState{
			TargetGapPercent:        targetGapPercent,
			MaxTimelineYears:        maxYears,
			BudgetConstraintPercent: budgetConstraint,
			BudgetConstraintAmount:  s.baseline.TotalPayroll.Mul(decimal.NewFromFloat(budgetConstraint)),
		},
		AvailableStrategies: strategies,
		StrategyEvaluation:  evaluation,
		RecommendedStrategy: recommended,
		ImplementationPlan:  implementationPlan(recommended),
		ROIAnalysis:         s.roiAnalysis(recommended),
		RiskAssessment:      s.assessRisks(recommended),
	}

	s.logger.Infof("recommended strategy: %s", recommended.StrategyName)
	return result, nil
}

// immediateAdjustmentStrategy models a single adjustment round closing the
// gap toward the target, scaled back if it exceeds the budget.
func (s *Simulator) immediateAdjustmentStrategy(underpaid []UnderpaidFemale, targetGapPercent, budgetConstraint float64) *RemediationStrategy {
	if len(underpaid) == 0 {
		return &RemediationStrategy{
			StrategyName: StrategyImmediateAdjustment,
			Applicable:   false,
			Reason:       "No underpaid female employees identified",
		}
	}

	totalNeeded := decimal.Zero
	for _, emp := range underpaid {
		totalNeeded = totalNeeded.Add(emp.GapAmount)
	}

	currentGap := s.baseline.GenderPayGapPercent
	adjustmentFactor := 0.0
	if currentGap > 0 {
		adjustmentFactor = math.Max(0, (currentGap-targetGapPercent)/currentGap)
	}

	totalCost := totalNeeded.Mul(decimal.NewFromFloat(adjustmentFactor))
	budgetLimit := s.baseline.TotalPayroll.Mul(decimal.NewFromFloat(budgetConstraint))

	gapReduction := currentGap * adjustmentFactor
	feasibility := "high"
	if totalCost.GreaterThan(budgetLimit) && budgetLimit.IsPositive() {
		scale := budgetLimit.Div(totalCost).InexactFloat64()
		totalCost = budgetLimit
		gapReduction = currentGap * adjustmentFactor * scale
		feasibility = "medium"
	}

	return &RemediationStrategy{
		StrategyName:             StrategyImmediateAdjustment,
		Applicable:               true,
		TimelineYears:            0.25,
		TotalCost:                totalCost,
		CostAsPercentPayroll:     safeRatio(totalCost, s.baseline.TotalPayroll),
		AffectedEmployees:        len(underpaid),
		AverageAdjustment:        totalCost.Div(decimal.NewFromInt(int64(len(underpaid)))),
		ProjectedFinalGap:        currentGap - gapReduction,
		GapReductionPercent:      gapReduction,
		BudgetUtilization:        safeRatio(totalCost, budgetLimit),
		Feasibility:              feasibility,
		ImplementationComplexity: "low",
		LegalRiskReduction:       "high",
		Description:              "Immediate salary adjustments to reduce gender pay gap",
	}
}

// gradualStrategy spreads the immediate adjustment cost over several years,
// capping each year at its share of the budget.
func (s *Simulator) gradualStrategy(underpaid []UnderpaidFemale, targetGapPercent float64, years int, budgetConstraint float64) *RemediationStrategy {
	immediate := s.immediateAdjustmentStrategy(underpaid, targetGapPercent, budgetConstraint)
	name := fmt.Sprintf("gradual_%d_year", years)
	if !immediate.Applicable {
		clone := *immediate
		clone.StrategyName = name
		return &clone
	}

	yearsDec := decimal.NewFromInt(int64(years))
	annualCost := immediate.TotalCost.Div(yearsDec)
	annualBudgetLimit := s.baseline.TotalPayroll.Mul(decimal.NewFromFloat(budgetConstraint)).Div(yearsDec)

	feasibleAnnual := annualCost
	feasibility := "high"
	if annualCost.GreaterThan(annualBudgetLimit) {
		feasibleAnnual = annualBudgetLimit
		feasibility = "medium"
	}
	actualTotal := feasibleAnnual.Mul(yearsDec)

	scale := 1.0
	if immediate.TotalCost.IsPositive() {
		scale = actualTotal.Div(immediate.TotalCost).InexactFloat64()
	}

	average := decimal.Zero
	if immediate.AffectedEmployees > 0 {
		average = actualTotal.Div(decimal.NewFromInt(int64(immediate.AffectedEmployees)))
	}

	budgetTotal := s.baseline.TotalPayroll.Mul(decimal.NewFromFloat(budgetConstraint))

	return &RemediationStrategy{
		StrategyName:             name,
		Applicable:               true,
		TimelineYears:            float64(years),
		TotalCost:                actualTotal,
		AnnualCost:               feasibleAnnual,
		CostAsPercentPayroll:     safeRatio(actualTotal, s.baseline.TotalPayroll),
		AffectedEmployees:        immediate.AffectedEmployees,
		AverageAdjustment:        average,
		ProjectedFinalGap:        s.baseline.GenderPayGapPercent - immediate.GapReductionPercent*scale,
		GapReductionPercent:      immediate.GapReductionPercent * scale,
		BudgetUtilization:        safeRatio(actualTotal, budgetTotal),
		Feasibility:              feasibility,
		ImplementationComplexity: "medium",
		LegalRiskReduction:       "medium",
		Description:              fmt.Sprintf("Gradual salary adjustments over %d years", years),
	}
}

// naturalConvergenceStrategy assumes the gap narrows half a percentage point
// per year without spending.
func (s *Simulator) naturalConvergenceStrategy(targetGapPercent float64, maxYears int) *RemediationStrategy {
	const annualGapReduction = 0.5

	currentGap := s.baseline.GenderPayGapPercent
	yearsToTarget := math.Max(1, (currentGap-targetGapPercent)/annualGapReduction)
	timeline := math.Min(yearsToTarget, float64(maxYears))

	return &RemediationStrategy{
		StrategyName:             StrategyNaturalConvergence,
		Applicable:               true,
		TimelineYears:            timeline,
		TotalCost:                decimal.Zero,
		CostAsPercentPayroll:     0,
		AffectedEmployees:        0,
		ProjectedFinalGap:        math.Max(targetGapPercent, currentGap-annualGapReduction*timeline),
		GapReductionPercent:      math.Min(currentGap-targetGapPercent, annualGapReduction*timeline),
		BudgetUtilization:        0,
		Feasibility:              "high",
		ImplementationComplexity: "none",
		LegalRiskReduction:       "low",
		Description:              "Allow natural market forces and progression to reduce gap",
	}
}

// targetedInterventionStrategy closes 75% of the gap for the top half of
// underpaid employees by gap size.
func (s *Simulator) targetedInterventionStrategy(underpaid []UnderpaidFemale, budgetConstraint float64) *RemediationStrategy {
	if len(underpaid) == 0 {
		return &RemediationStrategy{
			StrategyName: StrategyTargetedIntervention,
			Applicable:   false,
			Reason:       "No underpaid female employees identified",
		}
	}

	highImpact := underpaid[:len(underpaid)/2]

	totalCost := decimal.Zero
	representedGap := decimal.Zero
	for _, emp := range highImpact {
		totalCost = totalCost.Add(emp.GapAmount.Mul(decimal.NewFromFloat(0.75)))
		representedGap = representedGap.Add(emp.GapAmount)
	}
	allGaps := decimal.Zero
	for _, emp := range underpaid {
		allGaps = allGaps.Add(emp.GapAmount)
	}

	budgetLimit := s.baseline.TotalPayroll.Mul(decimal.NewFromFloat(budgetConstraint))
	scale := 1.0
	if totalCost.GreaterThan(budgetLimit) && budgetLimit.IsPositive() {
		scale = budgetLimit.Div(totalCost).InexactFloat64()
		totalCost = budgetLimit
	}

	gapImpactRatio := 0.0
	if allGaps.IsPositive() {
		gapImpactRatio = representedGap.Div(allGaps).InexactFloat64()
	}
	gapReduction := s.baseline.GenderPayGapPercent * gapImpactRatio * 0.75 * scale

	average := decimal.Zero
	if len(highImpact) > 0 {
		average = totalCost.Div(decimal.NewFromInt(int64(len(highImpact))))
	}

	return &RemediationStrategy{
		StrategyName:             StrategyTargetedIntervention,
		Applicable:               true,
		TimelineYears:            1,
		TotalCost:                totalCost,
		CostAsPercentPayroll:     safeRatio(totalCost, s.baseline.TotalPayroll),
		AffectedEmployees:        len(highImpact),
		AverageAdjustment:        average,
		ProjectedFinalGap:        s.baseline.GenderPayGapPercent - gapReduction,
		GapReductionPercent:      gapReduction,
		BudgetUtilization:        safeRatio(totalCost, budgetLimit),
		Feasibility:              "high",
		ImplementationComplexity: "medium",
		LegalRiskReduction:       "high",
		Description:              "Target highest-impact salary adjustments for maximum gap reduction",
	}
}

// evaluateStrategies scores every applicable strategy on effectiveness,
// feasibility, risk and cost efficiency (weights 0.30/0.25/0.20/0.25).
func (s *Simulator) evaluateStrategies(strategies map[string]*RemediationStrategy, budgetConstraint float64) *StrategyEvaluation {
	scores := make(map[string]*StrategyScore)

	for _, name := range remediationStrategyOrder {
		strategy := strategies[name]
		if !strategy.Applicable {
			continue
		}

		effectiveness := s.effectivenessScore(strategy)
		feasibility := feasibilityScore(strategy, budgetConstraint)
		risk := riskScore(strategy)
		costEfficiency := s.costEfficiencyScore(strategy)

		scores[name] = &StrategyScore{
			OverallScore:        effectiveness*0.3 + feasibility*0.25 + (1-risk)*0.2 + costEfficiency*0.25,
			EffectivenessScore:  effectiveness,
			FeasibilityScore:    feasibility,
			RiskScore:           risk,
			CostEfficiencyScore: costEfficiency,
			StrategyDetails:     strategy,
		}
	}

	ranking := make([]string, 0, len(scores))
	for _, name := range remediationStrategyOrder {
		if _, ok := scores[name]; ok {
			ranking = append(ranking, name)
		}
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return scores[ranking[i]].OverallScore > scores[ranking[j]].OverallScore
	})

	evaluation := &StrategyEvaluation{StrategyScores: scores, Ranking: ranking}
	if len(ranking) > 0 {
		evaluation.TopStrategy = ranking[0]
	}
	return evaluation
}

func (s *Simulator) selectStrategy(evaluation *StrategyEvaluation) RecommendedStrategy {
	if len(evaluation.Ranking) == 0 {
		return RecommendedStrategy{
			StrategyName: "no_viable_strategy",
			Reason:       "No applicable strategies found",
		}
	}

	top := evaluation.StrategyScores[evaluation.Ranking[0]]
	confidence := "low"
	if top.OverallScore > 0.8 {
		confidence = "high"
	} else if top.OverallScore > 0.6 {
		confidence = "medium"
	}

	return RecommendedStrategy{
		StrategyName:    evaluation.Ranking[0],
		OverallScore:    top.OverallScore,
		ConfidenceLevel: confidence,
		Strategy:        top.StrategyDetails,
	}
}

func (s *Simulator) effectivenessScore(strategy *RemediationStrategy) float64 {
	maxPossible := s.baseline.GenderPayGapPercent
	if maxPossible == 0 {
		return 1.0
	}
	return math.Min(1.0, strategy.GapReductionPercent/maxPossible)
}

func feasibilityScore(strategy *RemediationStrategy, budgetConstraint float64) float64 {
	budgetFeasibility := 1.0
	if budgetConstraint > 0 {
		budgetFeasibility = math.Max(0, 1-strategy.CostAsPercentPayroll/budgetConstraint)
	}
	timelineFeasibility := math.Max(0.2, 1-(strategy.TimelineYears-1)*0.1)
	complexityFeasibility := complexityFeasibilityMap(strategy.ImplementationComplexity)
	return (budgetFeasibility + timelineFeasibility + complexityFeasibility) / 3
}

func riskScore(strategy *RemediationStrategy) float64 {
	legal := map[string]float64{"low": 0.8, "medium": 0.5, "high": 0.2}
	legalValue, ok := legal[strategy.LegalRiskReduction]
	if !ok {
		legalValue = 0.5
	}

	budgetRisk := math.Min(1.0, strategy.BudgetUtilization)

	complexityRisk := map[string]float64{"none": 0.1, "low": 0.2, "medium": 0.5, "high": 0.8}
	implementationRisk, ok := complexityRisk[strategy.ImplementationComplexity]
	if !ok {
		implementationRisk = 0.5
	}

	return (budgetRisk + implementationRisk + (1 - legalValue)) / 3
}

func (s *Simulator) costEfficiencyScore(strategy *RemediationStrategy) float64 {
	cost := strategy.TotalCost
	if strategy.GapReductionPercent == 0 {
		if cost.IsZero() {
			return 1.0
		}
		return 0.0
	}
	if cost.IsZero() {
		return 1.0
	}

	costPerGapPoint := cost.InexactFloat64() / strategy.GapReductionPercent
	return math.Max(0, 1-costPerGapPoint/s.baseline.TotalPayroll.InexactFloat64())
}

func complexityFeasibilityMap(complexity string) float64 {
	m := map[string]float64{"none": 1.0, "low": 0.9, "medium": 0.7, "high": 0.5}
	if v, ok := m[complexity]; ok {
		return v
	}
	return 0.7
}

func implementationPlan(recommended RecommendedStrategy) []PlanPhase {
	if recommended.Strategy == nil {
		return nil
	}
	name := recommended.StrategyName

	switch {
	case name == StrategyImmediateAdjustment:
		return []PlanPhase{
			{Phase: 1, TimelineMonths: 1, Activity: "Legal and HR review of adjustments"},
			{Phase: 2, TimelineMonths: 2, Activity: "Employee communication and adjustment implementation"},
			{Phase: 3, TimelineMonths: 3, Activity: "Monitor impact and address any issues"},
		}
	case name == StrategyGradual3Year || name == StrategyGradual5Year:
		years := int(recommended.Strategy.TimelineYears)
		phases := make([]PlanPhase, 0, years)
		for year := 1; year <= years; year++ {
			phases = append(phases, PlanPhase{
				Phase:          year,
				TimelineMonths: year * 12,
				Activity:       fmt.Sprintf("Year %d: Implement %.0f%% of salary adjustments", year, 100/float64(years)),
			})
		}
		return phases
	case name == StrategyNaturalConvergence:
		return []PlanPhase{
			{Phase: 1, TimelineMonths: 12, Activity: "Monitor natural progression and market trends"},
			{Phase: 2, TimelineMonths: 24, Activity: "Evaluate progress and adjust if needed"},
		}
	default:
		return []PlanPhase{
			{Phase: 1, TimelineMonths: 3, Activity: "Strategy planning and approval"},
			{Phase: 2, TimelineMonths: 12, Activity: "Implementation and monitoring"},
		}
	}
}

// roiAnalysis estimates annual benefits from retention and productivity
// effects of the recommended strategy.
func (s *Simulator) roiAnalysis(recommended RecommendedStrategy) ROIAnalysis {
	if recommended.Strategy == nil {
		return ROIAnalysis{PaybackYears: math.Inf(1)}
	}
	strategy := recommended.Strategy

	retentionImprovement := 0.05
	if strategy.LegalRiskReduction == "high" {
		retentionImprovement = 0.10
	}
	productivityGain := 0.0
	if strategy.AffectedEmployees > 0 {
		productivityGain = 0.05
	}

	avgSalary := decimal.Zero
	if s.baseline.TotalEmployees > 0 {
		avgSalary = s.baseline.TotalPayroll.Div(decimal.NewFromInt(int64(s.baseline.TotalEmployees)))
	}

	affected := decimal.NewFromInt(int64(strategy.AffectedEmployees))
	retentionBenefit := affected.Mul(avgSalary).Mul(decimal.NewFromFloat(retentionImprovement)).Mul(decimal.NewFromFloat(1.5))
	productivityBenefit := affected.Mul(avgSalary).Mul(decimal.NewFromFloat(productivityGain))
	annualBenefits := retentionBenefit.Add(productivityBenefit)

	payback := math.Inf(1)
	if annualBenefits.IsPositive() {
		payback = strategy.TotalCost.Div(annualBenefits).InexactFloat64()
	}
	roi3 := 0.0
	if strategy.TotalCost.IsPositive() {
		threeYear := annualBenefits.Mul(decimal.NewFromInt(3))
		roi3 = threeYear.Sub(strategy.TotalCost).Div(strategy.TotalCost).InexactFloat64()
	}

	return ROIAnalysis{
		TotalInvestment:         strategy.TotalCost,
		AnnualBenefits:          annualBenefits,
		PaybackYears:            payback,
		ROI3Year:                roi3,
		RetentionBenefit:        retentionBenefit,
		ProductivityBenefit:     productivityBenefit,
		LegalRiskReductionValue: strategy.TotalCost.Mul(decimal.NewFromFloat(0.5)),
	}
}

func (s *Simulator) assessRisks(recommended RecommendedStrategy) RiskAssessment {
	if recommended.Strategy == nil {
		return RiskAssessment{OverallRiskLevel: "low"}
	}
	strategy := recommended.Strategy

	var risks []string
	if strategy.BudgetUtilization > 0.8 {
		risks = append(risks, "high_budget_utilization")
	}
	if float64(strategy.AffectedEmployees) > float64(s.baseline.TotalEmployees)*0.3 {
		risks = append(risks, "large_employee_impact")
	}
	if strategy.TimelineYears < 0.5 {
		risks = append(risks, "aggressive_timeline")
	}
	if strategy.ImplementationComplexity == "high" {
		risks = append(risks, "implementation_complexity")
	}

	level := "low"
	if len(risks) >= 3 {
		level = "high"
	} else if len(risks) >= 1 {
		level = "medium"
	}

	return RiskAssessment{
		RiskFactors:          risks,
		OverallRiskLevel:     level,
		MitigationStrategies: riskMitigations(risks),
	}
}

func riskMitigations(risks []string) []string {
	var mitigations []string
	for _, risk := range risks {
		switch risk {
		case "high_budget_utilization":
			mitigations = append(mitigations, "Consider phased implementation to spread costs")
		case "large_employee_impact":
			mitigations = append(mitigations, "Implement comprehensive change management and communication plan")
		case "aggressive_timeline":
			mitigations = append(mitigations, "Build buffer time and have contingency plans")
		case "implementation_complexity":
			mitigations = append(mitigations, "Engage external consultants and establish project management office")
		}
	}
	return mitigations
}

func safeRatio(numerator, denominator decimal.Decimal) float64 {
	if denominator.IsZero() {
		return 0
	}
	return numerator.Div(denominator).InexactFloat64()
}
