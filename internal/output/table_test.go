package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payequity/equisim/internal/intervention"
	"github.com/payequity/equisim/internal/policy"
)

func TestStrategyTable(t *testing.T) {
	sim := intervention.NewSimulator(reportPopulation())
	result, err := sim.ModelGenderGapRemediation(0, 5, 0.005)
	require.NoError(t, err)

	var buf bytes.Buffer
	StrategyTable(&buf, result)

	rendered := buf.String()
	assert.Contains(t, rendered, "STRATEGY")
	assert.Contains(t, rendered, "FEASIBILITY")
	for _, name := range result.StrategyEvaluation.Ranking {
		assert.Contains(t, rendered, name, "every ranked strategy appears as a row")
	}
}

func TestAllocationTable(t *testing.T) {
	allocator := policy.NewAllocator(reportPopulation())
	teams := allocator.IdentifyManagersAndTeams()
	allocations := allocator.OptimizeBudgetAllocation(allocator.PrioritizeInterventions(teams))
	require.NotEmpty(t, allocations)

	var buf bytes.Buffer
	AllocationTable(&buf, allocations)

	rendered := buf.String()
	assert.Contains(t, rendered, "MANAGER")
	assert.Contains(t, rendered, "UTILIZATION")
	for managerID := range allocations {
		assert.Contains(t, rendered, FormatCurrency(allocations[managerID].TotalBudget))
	}
}

func TestAllocationTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	AllocationTable(&buf, map[int]*policy.Allocation{})
	assert.NotEmpty(t, buf.String(), "an empty allocation set still renders the header")
}
