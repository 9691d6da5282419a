package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/payequity/equisim/internal/convergence"
	"github.com/payequity/equisim/internal/forecast"
	"github.com/payequity/equisim/internal/intervention"
	"github.com/payequity/equisim/internal/policy"
	"github.com/payequity/equisim/internal/progression"
)

func header(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", len(title)))
}

// ProgressionReport renders one employee's projection result.
func ProgressionReport(w io.Writer, result *progression.Result) {
	header(w, fmt.Sprintf("SALARY PROGRESSION ANALYSIS - EMPLOYEE %d", result.EmployeeID))

	state := result.CurrentState
	fmt.Fprintf(w, "Level:            %d\n", state.Level)
	fmt.Fprintf(w, "Current Salary:   %s\n", FormatCurrency(state.Salary))
	fmt.Fprintf(w, "Performance:      %s\n", state.Performance)
	fmt.Fprintf(w, "Years at Company: %.1f\n", state.YearsAtCompany)

	for _, scenario := range forecast.DefaultScenarios {
		projection, ok := result.Projections[scenario]
		if !ok {
			continue
		}
		section(w, fmt.Sprintf("SCENARIO: %s", strings.ToUpper(string(scenario))))
		fmt.Fprintf(w, "Final Salary (%d years): %s\n", projection.YearsProjected, FormatCurrency(projection.FinalSalary))
		fmt.Fprintf(w, "Total Increase:          %s\n", FormatCurrency(projection.TotalIncrease))
		fmt.Fprintf(w, "CAGR:                    %s\n", FormatPercent(projection.CAGR*100))
	}

	analysis := result.Analysis
	section(w, "ANALYSIS")
	fmt.Fprintf(w, "Confidence Interval: %s - %s\n",
		FormatCurrency(analysis.ConfidenceIntervalLow), FormatCurrency(analysis.ConfidenceIntervalHigh))
	fmt.Fprintf(w, "Median Position:     %s (gap %s)\n",
		analysis.MedianComparison.CurrentStatus, FormatPercent(analysis.MedianComparison.CurrentGapPercent))
	fmt.Fprintf(w, "Market Position:     %s percentile (%s)\n",
		FormatPercent(analysis.MarketCompetitiveness.CurrentPercentile), analysis.MarketCompetitiveness.CurrentQuartile)
	if len(analysis.RiskFactors) > 0 {
		fmt.Fprintf(w, "Risk Factors:        %s\n", strings.Join(analysis.RiskFactors, ", "))
	}

	rec := result.Recommendations
	section(w, "RECOMMENDATIONS")
	fmt.Fprintf(w, "Primary Action: %s\n", rec.PrimaryAction)
	for _, action := range rec.SecondaryActions {
		fmt.Fprintf(w, "  - %s\n", action)
	}
	fmt.Fprintf(w, "Timeline:       %s\n", rec.Timeline)
	if rec.Rationale != "" {
		fmt.Fprintf(w, "Rationale:      %s\n", rec.Rationale)
	}
}

// ConvergenceReport renders one employee's convergence timeline.
func ConvergenceReport(w io.Writer, result *convergence.TimelineResult) {
	header(w, "MEDIAN CONVERGENCE ANALYSIS")

	if result.Status == "above_median" {
		fmt.Fprintf(w, "Status:   above median (+%s)\n", FormatPercent(result.CurrentGapPercent))
		fmt.Fprintf(w, "Action:   %s\n", result.ActionRequired)
		fmt.Fprintf(w, "Rationale: %s\n", result.Rationale)
		return
	}

	fmt.Fprintf(w, "Employee:    %d\n", result.EmployeeID)
	fmt.Fprintf(w, "Current Gap: %s (%s)\n", FormatCurrency(result.CurrentGapAmount), FormatPercent(result.CurrentGapPercent))

	for _, name := range []string{convergence.ScenarioNatural, convergence.ScenarioAccelerated, convergence.ScenarioIntervention} {
		scenario, ok := result.Scenarios[name]
		if !ok {
			continue
		}
		section(w, fmt.Sprintf("SCENARIO: %s", strings.ToUpper(name)))
		fmt.Fprintf(w, "Years to Median: %.1f\n", scenario.YearsToMedian)
		fmt.Fprintf(w, "Strategy:        %s\n", scenario.Strategy)
		fmt.Fprintf(w, "Feasibility:     %s\n", scenario.Feasibility)
		if scenario.InterventionCost.IsPositive() {
			fmt.Fprintf(w, "Intervention Cost: %s (immediate %s adjustment)\n",
				FormatCurrency(scenario.InterventionCost), FormatPercent(scenario.ImmediateAdjustmentPercent))
		}
	}

	section(w, "RECOMMENDATION")
	fmt.Fprintf(w, "Recommended Action:   %s\n", result.RecommendedAction)
	if result.Feasibility != nil {
		fmt.Fprintf(w, "Recommended Approach: %s\n", result.Feasibility.RecommendedApproach)
	}
}

// BelowMedianReport renders the population below-median summary.
func BelowMedianReport(w io.Writer, analysis *convergence.BelowMedianAnalysis) {
	header(w, "BELOW-MEDIAN POPULATION ANALYSIS")

	fmt.Fprintf(w, "Total Employees:  %d\n", analysis.TotalEmployees)
	fmt.Fprintf(w, "Below Median:     %d (%s)\n", analysis.BelowMedianCount, FormatPercent(analysis.BelowMedianPercent))

	stats := analysis.SummaryStatistics
	if stats.Count > 0 {
		section(w, "GAP STATISTICS")
		fmt.Fprintf(w, "Average Gap: %s (%s)\n", FormatCurrency(stats.AverageGapAmount), FormatPercent(stats.AverageGapPercent))
		fmt.Fprintf(w, "Median Gap:  %s (%s)\n", FormatCurrency(stats.MedianGapAmount), FormatPercent(stats.MedianGapPercent))
		fmt.Fprintf(w, "Total Gap:   %s\n", FormatCurrency(stats.TotalGapAmount))
	}

	if analysis.GenderAnalysis != nil {
		section(w, "GENDER PATTERNS")
		for _, gender := range []string{"Male", "Female"} {
			pattern := analysis.GenderAnalysis.ByGender[gender]
			fmt.Fprintf(w, "%-7s %d below median, average gap %s\n", gender+":", pattern.Count, FormatPercent(pattern.AverageGapPercent))
		}
		if analysis.GenderAnalysis.DisparityComputed {
			fmt.Fprintf(w, "Disparity: %.1f percentage points (significant: %t)\n",
				analysis.GenderAnalysis.Disparity, analysis.GenderAnalysis.DisparitySignificant)
		}
	}
}

// TrendsReport renders the population convergence trend projection.
func TrendsReport(w io.Writer, trends *convergence.PopulationTrends) {
	header(w, "POPULATION CONVERGENCE TRENDS")

	fmt.Fprintf(w, "Projection Horizon: %d years\n", trends.ProjectionYears)
	fmt.Fprintf(w, "Below Median Now:   %d of %d employees\n",
		trends.CurrentState.BelowMedianCount, trends.CurrentState.TotalEmployees)

	section(w, "CONVERGENCE BY SCENARIO")
	for _, name := range []string{convergence.ScenarioNatural, convergence.ScenarioAccelerated, convergence.ScenarioIntervention} {
		projection, ok := trends.TrendProjections[name]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%-13s %s converged, %d still below median\n",
			name+":", FormatPercent(projection.ConvergenceRate), projection.FinalBelowMedianCount)
	}

	dist := trends.PopulationHealth.GapDistribution
	section(w, "GAP DISTRIBUTION")
	fmt.Fprintf(w, "Severe (>25%%):  %d\n", dist.SevereGaps)
	fmt.Fprintf(w, "Large (15-25%%): %d\n", dist.LargeGaps)
	fmt.Fprintf(w, "Medium (5-15%%): %d\n", dist.MediumGaps)
	fmt.Fprintf(w, "Small (0-5%%):   %d\n", dist.SmallGaps)

	impact := trends.PopulationHealth.InterventionImpact
	section(w, "INTERVENTION IMPACT")
	fmt.Fprintf(w, "Natural Rate:      %s\n", FormatPercent(impact.NaturalConvergenceRate))
	fmt.Fprintf(w, "Intervention Rate: %s\n", FormatPercent(impact.InterventionConvergenceRate))
	fmt.Fprintf(w, "Effectiveness:     %s\n", impact.Effectiveness)

	section(w, "STRATEGIC RECOMMENDATIONS")
	for _, rec := range trends.StrategicRecommendations {
		fmt.Fprintf(w, "  - %s\n", rec)
	}
}

// RemediationReport renders the gender gap remediation analysis.
func RemediationReport(w io.Writer, result *intervention.RemediationResult) {
	header(w, "GENDER PAY GAP REMEDIATION ANALYSIS")

	current := result.CurrentState
	fmt.Fprintf(w, "Current Gap:       %s\n", FormatPercent(current.GenderPayGapPercent))
	fmt.Fprintf(w, "Male Median:       %s\n", FormatCurrency(current.MaleMedianSalary))
	fmt.Fprintf(w, "Female Median:     %s\n", FormatCurrency(current.FemaleMedianSalary))
	fmt.Fprintf(w, "Affected Females:  %d\n", current.AffectedFemaleEmployees)

	target := result.TargetState
	section(w, "TARGET")
	fmt.Fprintf(w, "Target Gap:    %s within %d years\n", FormatPercent(target.TargetGapPercent), target.MaxTimelineYears)
	fmt.Fprintf(w, "Budget Cap:    %s (%s of payroll)\n",
		FormatCurrency(target.BudgetConstraintAmount), FormatPercent(target.BudgetConstraintPercent*100))

	recommended := result.RecommendedStrategy
	section(w, "RECOMMENDED STRATEGY")
	fmt.Fprintf(w, "Strategy:   %s\n", recommended.StrategyName)
	if recommended.Strategy != nil {
		fmt.Fprintf(w, "Cost:       %s over %.2g years\n",
			FormatCurrency(recommended.Strategy.TotalCost), recommended.Strategy.TimelineYears)
		fmt.Fprintf(w, "Gap After:  %s\n", FormatPercent(recommended.Strategy.ProjectedFinalGap))
		fmt.Fprintf(w, "Confidence: %s (score %.2f)\n", recommended.ConfidenceLevel, recommended.OverallScore)
	}
	if recommended.Reason != "" {
		fmt.Fprintf(w, "Reason:     %s\n", recommended.Reason)
	}

	if len(result.ImplementationPlan) > 0 {
		section(w, "IMPLEMENTATION PLAN")
		for _, phase := range result.ImplementationPlan {
			fmt.Fprintf(w, "Phase %d (month %d): %s\n", phase.Phase, phase.TimelineMonths, phase.Activity)
		}
	}

	roi := result.ROIAnalysis
	section(w, "ROI ANALYSIS")
	fmt.Fprintf(w, "Investment:      %s\n", FormatCurrency(roi.TotalInvestment))
	fmt.Fprintf(w, "Annual Benefits: %s\n", FormatCurrency(roi.AnnualBenefits))
	fmt.Fprintf(w, "3-Year ROI:      %.2f\n", roi.ROI3Year)

	risks := result.RiskAssessment
	section(w, "RISK ASSESSMENT")
	fmt.Fprintf(w, "Overall Risk: %s\n", risks.OverallRiskLevel)
	for _, risk := range risks.RiskFactors {
		fmt.Fprintf(w, "  - %s\n", risk)
	}
	for _, mitigation := range risks.MitigationStrategies {
		fmt.Fprintf(w, "  mitigation: %s\n", mitigation)
	}
}

// PolicyReport renders the manager policy compliance and allocation summary.
func PolicyReport(w io.Writer, summary *policy.Summary) {
	header(w, "MANAGER POLICY & BUDGET ALLOCATION SUMMARY")

	compliance := summary.PolicyCompliance
	fmt.Fprintf(w, "Managers:        %d (%d compliant, %d over limit)\n",
		compliance.TotalManagers, compliance.CompliantManagers, compliance.OverLimitManagers)
	fmt.Fprintf(w, "Compliance Rate: %s (max %d direct reports)\n",
		FormatPercent(compliance.ComplianceRate), compliance.MaxDirectReportsPolicy)

	budget := summary.BudgetAnalysis
	section(w, "BUDGET")
	fmt.Fprintf(w, "Available:   %s\n", FormatCurrency(budget.TotalAvailableBudget))
	fmt.Fprintf(w, "Allocated:   %s\n", FormatCurrency(budget.TotalAllocatedBudget))
	fmt.Fprintf(w, "Remaining:   %s\n", FormatCurrency(budget.TotalRemainingBudget))
	fmt.Fprintf(w, "Utilization: %s\n", FormatPercent(budget.BudgetUtilizationPercent))

	impact := summary.Impact
	section(w, "INTERVENTION IMPACT")
	fmt.Fprintf(w, "Employees Affected: %d of %d (%s)\n",
		impact.TotalEmployeesAffected, impact.TotalPopulation, FormatPercent(impact.InterventionRate))
	fmt.Fprintf(w, "Priority 1 (below-median high performers): %d\n", impact.PriorityDistribution.BelowMedianHighPerformers)
	fmt.Fprintf(w, "Priority 2 (below-median):                 %d\n", impact.PriorityDistribution.BelowMedian)
	fmt.Fprintf(w, "Priority 3 (high performers):              %d\n", impact.PriorityDistribution.HighPerformers)
	fmt.Fprintf(w, "Priority 4 (standard):                     %d\n", impact.PriorityDistribution.Standard)

	if len(summary.Recommendations) > 0 {
		section(w, "RECOMMENDATIONS")
		for _, rec := range summary.Recommendations {
			fmt.Fprintf(w, "[%s] %s\n", strings.ToUpper(rec.Priority), rec.Recommendation)
			fmt.Fprintf(w, "       %s\n", rec.Rationale)
		}
	}
}

// EquityReport renders the multi-dimensional equity analysis.
func EquityReport(w io.Writer, analysis *intervention.EquityAnalysis) {
	header(w, "POPULATION SALARY EQUITY ANALYSIS")

	fmt.Fprintf(w, "Overall Equity Score: %.2f\n", analysis.OverallEquityScore)

	if analysis.Gender != nil {
		section(w, "GENDER")
		fmt.Fprintf(w, "Pay Gap:      %s (%s)\n", FormatPercent(analysis.Gender.PayGapPercent), analysis.Gender.StatisticalSignificance)
		fmt.Fprintf(w, "Male Median:  %s (%d employees)\n", FormatCurrency(analysis.Gender.MaleMedian), analysis.Gender.MaleCount)
		fmt.Fprintf(w, "Female Median: %s (%d employees)\n", FormatCurrency(analysis.Gender.FemaleMedian), analysis.Gender.FemaleCount)
	}

	if analysis.GenderByLevel != nil {
		section(w, "GENDER BY LEVEL")
		levels := make([]int, 0, len(analysis.GenderByLevel))
		for level := range analysis.GenderByLevel {
			levels = append(levels, level)
		}
		sort.Ints(levels)
		for _, level := range levels {
			entry := analysis.GenderByLevel[level]
			fmt.Fprintf(w, "Level %d: gap %s (%dM / %dF)\n",
				level, FormatPercent(entry.GapPercent), entry.MaleCount, entry.FemaleCount)
		}
	}

	if len(analysis.PriorityInterventions) > 0 {
		section(w, "PRIORITY INTERVENTIONS")
		for _, item := range analysis.PriorityInterventions {
			fmt.Fprintf(w, "[%s] %s (est. cost %s of payroll)\n",
				strings.ToUpper(item.Priority), item.Description, FormatPercent(item.EstimatedCostPercent*100))
		}
	}
}
