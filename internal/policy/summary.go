package policy

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PolicyCompliance reports how many teams respect the direct-report cap.
type PolicyCompliance struct {
	TotalManagers          int     `json:"total_managers"`
	CompliantManagers      int     `json:"compliant_managers"`
	OverLimitManagers      int     `json:"over_limit_managers"`
	ComplianceRate         float64 `json:"compliance_rate"`
	MaxDirectReportsPolicy int     `json:"max_direct_reports_policy"`
	BudgetPercentPolicy    float64 `json:"budget_percent_policy"`
}

// BudgetAnalysis totals the budget picture across all managers.
type BudgetAnalysis struct {
	TotalAvailableBudget     decimal.Decimal `json:"total_available_budget"`
	TotalAllocatedBudget     decimal.Decimal `json:"total_allocated_budget"`
	TotalRemainingBudget     decimal.Decimal `json:"total_remaining_budget"`
	BudgetUtilizationPercent float64         `json:"budget_utilization_percent"`
}

// PriorityDistribution counts funded interventions per priority bucket.
type PriorityDistribution struct {
	BelowMedianHighPerformers int `json:"priority_1_below_median_high_performers"`
	BelowMedian               int `json:"priority_2_below_median"`
	HighPerformers            int `json:"priority_3_high_performers"`
	Standard                  int `json:"priority_4_standard"`
}

// ImpactSummary reports population reach of the funded interventions.
type ImpactSummary struct {
	TotalEmployeesAffected int                  `json:"total_employees_affected"`
	TotalPopulation        int                  `json:"total_population"`
	InterventionRate       float64              `json:"intervention_rate"`
	PriorityDistribution   PriorityDistribution `json:"priority_distribution"`
}

// Recommendation is one policy-level followup action.
type Recommendation struct {
	Type           string `json:"type"`
	Priority       string `json:"priority"`
	Recommendation string `json:"recommendation"`
	Rationale      string `json:"rationale"`
}

// Summary is the policy compliance and impact report.
type Summary struct {
	PolicyCompliance PolicyCompliance `json:"policy_compliance"`
	BudgetAnalysis   BudgetAnalysis   `json:"budget_analysis"`
	Impact           ImpactSummary    `json:"intervention_impact"`
	Recommendations  []Recommendation `json:"recommendations"`
}

// GeneratePolicySummary rolls teams and allocations up into the compliance
// and impact report.
func (a *Allocator) GeneratePolicySummary(teams map[int]*Team, allocations map[int]*Allocation) *Summary {
	totalManagers := len(teams)
	compliant := 0
	totalBudget := decimal.Zero
	for _, team := range teams {
		if team.CompliantTeamSize {
			compliant++
		}
		totalBudget = totalBudget.Add(team.InterventionBudget)
	}

	totalAllocated := decimal.Zero
	totalAffected := 0
	var distribution PriorityDistribution
	for _, alloc := range allocations {
		totalAllocated = totalAllocated.Add(alloc.AllocatedBudget)
		totalAffected += alloc.EmployeesAffected
		for _, intervention := range alloc.SelectedInterventions {
			switch intervention.Priority {
			case 1:
				distribution.BelowMedianHighPerformers++
			case 2:
				distribution.BelowMedian++
			case 3:
				distribution.HighPerformers++
			case 4:
				distribution.Standard++
			}
		}
	}

	complianceRate := 0.0
	if totalManagers > 0 {
		complianceRate = float64(compliant) / float64(totalManagers) * 100
	}
	utilization := 0.0
	if totalBudget.IsPositive() {
		utilization = totalAllocated.Div(totalBudget).InexactFloat64() * 100
	}
	interventionRate := 0.0
	if len(a.employees) > 0 {
		interventionRate = float64(totalAffected) / float64(len(a.employees)) * 100
	}

	return &Summary{
		PolicyCompliance: PolicyCompliance{
			TotalManagers:          totalManagers,
			CompliantManagers:      compliant,
			OverLimitManagers:      totalManagers - compliant,
			ComplianceRate:         complianceRate,
			MaxDirectReportsPolicy: a.MaxDirectReports,
			BudgetPercentPolicy:    a.InequalityBudgetPercent * 100,
		},
		BudgetAnalysis: BudgetAnalysis{
			TotalAvailableBudget:     totalBudget,
			TotalAllocatedBudget:     totalAllocated,
			TotalRemainingBudget:     totalBudget.Sub(totalAllocated),
			BudgetUtilizationPercent: utilization,
		},
		Impact: ImpactSummary{
			TotalEmployeesAffected: totalAffected,
			TotalPopulation:        len(a.employees),
			InterventionRate:       interventionRate,
			PriorityDistribution:   distribution,
		},
		Recommendations: a.policyRecommendations(totalManagers, compliant, allocations),
	}
}

func (a *Allocator) policyRecommendations(totalManagers, compliant int, allocations map[int]*Allocation) []Recommendation {
	var recommendations []Recommendation

	complianceRate := 100.0
	if totalManagers > 0 {
		complianceRate = float64(compliant) / float64(totalManagers) * 100
	}
	if complianceRate < 80 {
		recommendations = append(recommendations, Recommendation{
			Type:     "organizational_structure",
			Priority: "high",
			Recommendation: fmt.Sprintf("Restructure %d teams exceeding %d direct reports limit",
				totalManagers-compliant, a.MaxDirectReports),
			Rationale: fmt.Sprintf("Policy compliance requires maximum %d direct reports per manager", a.MaxDirectReports),
		})
	}

	avgUtilization := 0.0
	if len(allocations) > 0 {
		for _, alloc := range allocations {
			avgUtilization += alloc.BudgetUtilization
		}
		avgUtilization /= float64(len(allocations))
	}
	if avgUtilization < 0.5 {
		recommendations = append(recommendations, Recommendation{
			Type:           "budget_optimization",
			Priority:       "medium",
			Recommendation: "Consider increasing intervention scope or adjusting budget allocation methodology",
			Rationale: fmt.Sprintf("Current budget utilization is %.1f%%, suggesting underutilization of available resources",
				avgUtilization*100),
		})
	}

	unaddressed := 0
	for _, alloc := range allocations {
		for _, intervention := range alloc.SelectedInterventions {
			if intervention.Priority <= 2 && intervention.RecommendedAdjustment.IsZero() {
				unaddressed++
			}
		}
	}
	if unaddressed > 0 {
		recommendations = append(recommendations, Recommendation{
			Type:     "intervention_prioritization",
			Priority: "high",
			Recommendation: fmt.Sprintf("Address %d high-priority below-median employees in future cycles",
				unaddressed),
			Rationale: "Below-median employees should be prioritized for equity interventions",
		})
	}

	return recommendations
}
