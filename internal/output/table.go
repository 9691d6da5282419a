package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/payequity/equisim/internal/intervention"
	"github.com/payequity/equisim/internal/policy"
)

// StrategyTable renders the remediation strategy comparison as a console
// table, best score first.
func StrategyTable(w io.Writer, result *intervention.RemediationResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Strategy", "Score", "Cost", "Timeline", "Gap After", "Feasibility"})

	evaluation := result.StrategyEvaluation
	for _, name := range evaluation.Ranking {
		score := evaluation.StrategyScores[name]
		strategy := score.StrategyDetails
		table.Append([]string{
			name,
			fmt.Sprintf("%.2f", score.OverallScore),
			FormatCurrency(strategy.TotalCost),
			fmt.Sprintf("%.2gy", strategy.TimelineYears),
			FormatPercent(strategy.ProjectedFinalGap),
			strategy.Feasibility,
		})
	}
	table.Render()
}

// AllocationTable renders per-manager budget allocations, ordered by manager
// ID.
func AllocationTable(w io.Writer, allocations map[int]*policy.Allocation) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Manager", "Budget", "Allocated", "Remaining", "Utilization", "Employees"})

	managerIDs := make([]int, 0, len(allocations))
	for managerID := range allocations {
		managerIDs = append(managerIDs, managerID)
	}
	sort.Ints(managerIDs)

	for _, managerID := range managerIDs {
		alloc := allocations[managerID]
		table.Append([]string{
			fmt.Sprintf("%d", managerID),
			FormatCurrency(alloc.TotalBudget),
			FormatCurrency(alloc.AllocatedBudget),
			FormatCurrency(alloc.RemainingBudget),
			FormatPercent(alloc.BudgetUtilization * 100),
			fmt.Sprintf("%d", alloc.EmployeesAffected),
		})
	}
	table.Render()
}
