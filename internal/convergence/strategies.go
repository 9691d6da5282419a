package convergence

import (
	"github.com/shopspring/decimal"

	"github.com/payequity/equisim/internal/domain"
)

// Strategy names in scoring order.
const (
	StrategyImmediateAdjustment     = "immediate_adjustment"
	StrategyPerformanceAcceleration = "performance_acceleration"
	StrategyNaturalProgression      = "natural_progression"
	StrategyTargetedDevelopment     = "targeted_development"
)

var strategyOrder = []string{
	StrategyImmediateAdjustment,
	StrategyPerformanceAcceleration,
	StrategyNaturalProgression,
	StrategyTargetedDevelopment,
}

// Per-employee program costs for development-based strategies.
var (
	accelerationCostPerEmployee = decimal.NewFromInt(2000)
	developmentCostPerEmployee  = decimal.NewFromInt(1500)
)

// InterventionStrategy is one population-level remediation option.
type InterventionStrategy struct {
	Applicable         bool            `json:"applicable"`
	Reason             string          `json:"reason,omitempty"`
	AffectedEmployees  int             `json:"affected_employees"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	AverageAdjustment  decimal.Decimal `json:"average_adjustment,omitempty"`
	CostPerEmployee    decimal.Decimal `json:"cost_per_employee,omitempty"`
	TimelineMonths     int             `json:"timeline_months"`
	SuccessProbability float64         `json:"success_probability"`
	Description        string          `json:"description,omitempty"`
}

// Prioritization counts employees per intervention urgency bucket.
type Prioritization struct {
	HighPriority   int `json:"high_priority"`
	MediumPriority int `json:"medium_priority"`
	LowPriority    int `json:"low_priority"`
}

// OptimalStrategy names the best-scoring strategy and its budget.
type OptimalStrategy struct {
	PrimaryStrategy       string                `json:"primary_strategy"`
	StrategyDetails       *InterventionStrategy `json:"strategy_details"`
	AlternativeStrategies []string              `json:"alternative_strategies"`
	TotalBudgetRequired   decimal.Decimal       `json:"total_budget_required"`
}

// CostBenefit weighs the recommended strategy's investment against salary
// impact and retention savings.
type CostBenefit struct {
	TotalInvestment       decimal.Decimal `json:"total_investment"`
	PotentialSalaryImpact decimal.Decimal `json:"potential_salary_impact"`
	RetentionBenefit      decimal.Decimal `json:"retention_benefit"`
	TotalBenefit          decimal.Decimal `json:"total_benefit"`
	ROIRatio              float64         `json:"roi_ratio"`
	PaybackMonths         int             `json:"payback_months"`
}

// Milestone is one implementation timeline entry.
type Milestone struct {
	Month     int    `json:"month"`
	Milestone string `json:"milestone"`
}

// StrategyRecommendations is the population-level intervention plan.
type StrategyRecommendations struct {
	Prioritization         Prioritization                   `json:"employee_prioritization"`
	AvailableStrategies    map[string]*InterventionStrategy `json:"available_strategies"`
	RecommendedStrategy    OptimalStrategy                  `json:"recommended_strategy"`
	CostBenefitAnalysis    CostBenefit                      `json:"cost_benefit_analysis"`
	ImplementationTimeline []Milestone                      `json:"implementation_timeline"`
}

// RecommendStrategies builds intervention strategy options for a below-median
// analysis and selects the most cost-effective one.
func (a *Analyzer) RecommendStrategies(analysis *BelowMedianAnalysis) *StrategyRecommendations {
	employees := analysis.Employees
	a.logger.Infof("developing intervention strategies for %d below-median employees", len(employees))

	var high, medium, low []BelowMedianEmployee
	for _, emp := range employees {
		switch {
		case emp.GapPercent > 20 || emp.TenureYears > 5:
			high = append(high, emp)
		case emp.GapPercent > 10:
			medium = append(medium, emp)
		default:
			low = append(low, emp)
		}
	}

	strategies := map[string]*InterventionStrategy{
		StrategyImmediateAdjustment:     immediateAdjustmentStrategy(high),
		StrategyPerformanceAcceleration: accelerationStrategy(append(append([]BelowMedianEmployee(nil), high...), medium...)),
		StrategyNaturalProgression:      naturalProgressionStrategy(low),
		StrategyTargetedDevelopment:     targetedDevelopmentStrategy(employees),
	}

	optimal := selectOptimalStrategy(strategies)

	result := &StrategyRecommendations{
		Prioritization: Prioritization{
			HighPriority:   len(high),
			MediumPriority: len(medium),
			LowPriority:    len(low),
		},
		AvailableStrategies:    strategies,
		RecommendedStrategy:    optimal,
		CostBenefitAnalysis:    costBenefitAnalysis(optimal, employees),
		ImplementationTimeline: implementationTimeline(optimal),
	}

	a.logger.Infof("strategy recommendations complete: primary approach %s", optimal.PrimaryStrategy)
	return result
}

// immediateAdjustmentStrategy closes 70% of the gap for high-priority
// employees in a single adjustment round.
func immediateAdjustmentStrategy(highPriority []BelowMedianEmployee) *InterventionStrategy {
	if len(highPriority) == 0 {
		return &InterventionStrategy{Applicable: false, Reason: "no_high_priority_employees"}
	}

	total := decimal.Zero
	for _, emp := range highPriority {
		total = total.Add(emp.GapAmount.Mul(decimal.NewFromFloat(0.7)))
	}

	return &InterventionStrategy{
		Applicable:         true,
		AffectedEmployees:  len(highPriority),
		TotalCost:          total,
		AverageAdjustment:  total.Div(decimal.NewFromInt(int64(len(highPriority)))),
		TimelineMonths:     3,
		SuccessProbability: 0.95,
		Description:        "Immediate salary adjustments to 70% gap closure for high-priority employees",
	}
}

func accelerationStrategy(target []BelowMedianEmployee) *InterventionStrategy {
	if len(target) == 0 {
		return &InterventionStrategy{Applicable: false, Reason: "no_target_employees"}
	}
	return &InterventionStrategy{
		Applicable:         true,
		AffectedEmployees:  len(target),
		TotalCost:          accelerationCostPerEmployee.Mul(decimal.NewFromInt(int64(len(target)))),
		CostPerEmployee:    accelerationCostPerEmployee,
		TimelineMonths:     12,
		SuccessProbability: 0.75,
		Description:        "Performance acceleration through development programs",
	}
}

func naturalProgressionStrategy(lowPriority []BelowMedianEmployee) *InterventionStrategy {
	return &InterventionStrategy{
		Applicable:         true,
		AffectedEmployees:  len(lowPriority),
		TotalCost:          decimal.Zero,
		TimelineMonths:     36,
		SuccessProbability: 0.60,
		Description:        "Allow natural market forces and performance progression",
	}
}

// targetedDevelopmentStrategy covers employees whose rating leaves headroom
// for skill development.
func targetedDevelopmentStrategy(all []BelowMedianEmployee) *InterventionStrategy {
	candidates := 0
	for _, emp := range all {
		if emp.Performance == domain.RatingPartiallyMet || emp.Performance == domain.RatingAchieving {
			candidates++
		}
	}
	return &InterventionStrategy{
		Applicable:         true,
		AffectedEmployees:  candidates,
		TotalCost:          developmentCostPerEmployee.Mul(decimal.NewFromInt(int64(candidates))),
		CostPerEmployee:    developmentCostPerEmployee,
		TimelineMonths:     18,
		SuccessProbability: 0.80,
		Description:        "Targeted skill development for performance improvement",
	}
}

// selectOptimalStrategy scores each applicable strategy by success
// probability per pound of per-employee cost and picks the best. Zero-cost
// strategies score at their raw success probability.
func selectOptimalStrategy(strategies map[string]*InterventionStrategy) OptimalStrategy {
	primary := StrategyNaturalProgression
	bestScore := -1.0
	var alternatives []string

	for _, name := range strategyOrder {
		strategy := strategies[name]
		if !strategy.Applicable {
			continue
		}

		perEmployee := 0.0
		if strategy.AffectedEmployees > 0 {
			perEmployee = strategy.TotalCost.Div(decimal.NewFromInt(int64(strategy.AffectedEmployees))).InexactFloat64()
		}
		if perEmployee < 1 {
			perEmployee = 1
		}
		score := strategy.SuccessProbability / perEmployee

		alternatives = append(alternatives, name)
		if score > bestScore {
			bestScore = score
			primary = name
		}
	}

	filtered := make([]string, 0, len(alternatives))
	for _, name := range alternatives {
		if name != primary {
			filtered = append(filtered, name)
		}
	}

	return OptimalStrategy{
		PrimaryStrategy:       primary,
		StrategyDetails:       strategies[primary],
		AlternativeStrategies: filtered,
		TotalBudgetRequired:   strategies[primary].TotalCost,
	}
}

// costBenefitAnalysis assumes a 70% gap closure for affected employees, with
// a retention benefit from the 15% assumed to leave otherwise at 1.5x
// replacement cost.
func costBenefitAnalysis(strategy OptimalStrategy, employees []BelowMedianEmployee) CostBenefit {
	if len(employees) == 0 {
		return CostBenefit{TotalInvestment: strategy.TotalBudgetRequired, PaybackMonths: 12}
	}

	total := decimal.Zero
	for _, emp := range employees {
		total = total.Add(emp.GapAmount)
	}
	averageGap := total.Div(decimal.NewFromInt(int64(len(employees))))
	affected := decimal.NewFromInt(int64(strategy.StrategyDetails.AffectedEmployees))

	salaryImpact := averageGap.Mul(decimal.NewFromFloat(0.7)).Mul(affected)
	retentionBenefit := salaryImpact.Mul(decimal.NewFromFloat(0.15)).Mul(decimal.NewFromFloat(1.5))
	totalBenefit := salaryImpact.Add(retentionBenefit)

	cost := strategy.TotalBudgetRequired.InexactFloat64()
	if cost < 1 {
		cost = 1
	}

	payback := 12
	if salaryImpact.IsPositive() {
		months := int(strategy.TotalBudgetRequired.Div(salaryImpact).InexactFloat64() * 12)
		if months > payback {
			payback = months
		}
	}

	return CostBenefit{
		TotalInvestment:       strategy.TotalBudgetRequired,
		PotentialSalaryImpact: salaryImpact,
		RetentionBenefit:      retentionBenefit,
		TotalBenefit:          totalBenefit,
		ROIRatio:              totalBenefit.InexactFloat64() / cost,
		PaybackMonths:         payback,
	}
}

func implementationTimeline(strategy OptimalStrategy) []Milestone {
	months := strategy.StrategyDetails.TimelineMonths
	if months <= 6 {
		return []Milestone{
			{Month: 1, Milestone: "Strategy approval and budget allocation"},
			{Month: 2, Milestone: "Employee selection and communication"},
			{Month: months, Milestone: "Implementation complete"},
		}
	}
	return []Milestone{
		{Month: 1, Milestone: "Strategy approval and budget allocation"},
		{Month: 2, Milestone: "Phase 1 rollout (high priority employees)"},
		{Month: months / 2, Milestone: "Mid-point review and adjustments"},
		{Month: months, Milestone: "Full implementation complete"},
	}
}
