package policy

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payequity/equisim/internal/domain"
)

func managerRef(id int) *int { return &id }

// twoTeamSnapshot has a compliant six-person team under manager 100 and an
// over-limit seven-person team under manager 200.
func twoTeamSnapshot() []domain.Employee {
	employees := []domain.Employee{
		{EmployeeID: 1, Level: 3, Salary: decimal.NewFromInt(60000), Performance: domain.RatingHighPerforming, Gender: "Male", ManagerID: managerRef(100)},
		{EmployeeID: 2, Level: 3, Salary: decimal.NewFromInt(70000), Performance: domain.RatingAchieving, Gender: "Male", ManagerID: managerRef(100)},
		{EmployeeID: 3, Level: 3, Salary: decimal.NewFromInt(80000), Performance: domain.RatingExceeding, Gender: "Male", ManagerID: managerRef(100)},
		{EmployeeID: 4, Level: 3, Salary: decimal.NewFromInt(55000), Performance: domain.RatingAchieving, Gender: "Female", ManagerID: managerRef(100)},
		{EmployeeID: 5, Level: 3, Salary: decimal.NewFromInt(65000), Performance: domain.RatingAchieving, Gender: "Female", ManagerID: managerRef(100)},
		{EmployeeID: 6, Level: 3, Salary: decimal.NewFromInt(75000), Performance: domain.RatingHighPerforming, Gender: "Female", ManagerID: managerRef(100)},
	}
	for id := 11; id <= 17; id++ {
		employees = append(employees, domain.Employee{
			EmployeeID: id, Level: 4, Salary: decimal.NewFromInt(90000),
			Performance: domain.RatingAchieving, Gender: "Male", ManagerID: managerRef(200),
		})
	}
	return employees
}

func TestAllocator_IdentifyManagersAndTeams(t *testing.T) {
	allocator := NewAllocator(twoTeamSnapshot())

	teams := allocator.IdentifyManagersAndTeams()
	require.Len(t, teams, 2)

	small := teams[100]
	require.NotNil(t, small)
	assert.Equal(t, 6, small.TeamSize)
	assert.True(t, small.CompliantTeamSize)
	assert.Zero(t, small.OverLimitBy)
	assert.True(t, small.TeamPayroll.Equal(decimal.NewFromInt(405000)))
	assert.True(t, small.InterventionBudget.Equal(decimal.NewFromInt(2025)),
		"budget is 0.5% of team payroll")

	large := teams[200]
	require.NotNil(t, large)
	assert.Equal(t, 7, large.TeamSize)
	assert.False(t, large.CompliantTeamSize)
	assert.Equal(t, 1, large.OverLimitBy)
}

func TestAllocator_SyntheticHierarchy(t *testing.T) {
	employees := []domain.Employee{
		{EmployeeID: 1, Level: 2, Salary: decimal.NewFromInt(40000), Performance: domain.RatingAchieving, Gender: "Male"},
		{EmployeeID: 2, Level: 2, Salary: decimal.NewFromInt(42000), Performance: domain.RatingAchieving, Gender: "Female"},
		{EmployeeID: 3, Level: 2, Salary: decimal.NewFromInt(44000), Performance: domain.RatingAchieving, Gender: "Male"},
		{EmployeeID: 10, Level: 3, Salary: decimal.NewFromInt(70000), Performance: domain.RatingAchieving, Gender: "Female"},
		{EmployeeID: 20, Level: 5, Salary: decimal.NewFromInt(120000), Performance: domain.RatingExceeding, Gender: "Male"},
	}
	allocator := NewAllocator(employees)

	teams := allocator.IdentifyManagersAndTeams()
	require.Len(t, teams, 2, "senior employees get no synthetic manager")

	junior := teams[1000]
	require.NotNil(t, junior, "level 1-2 employees group under junior manager IDs")
	assert.Equal(t, 3, junior.TeamSize)

	mid := teams[1101]
	require.NotNil(t, mid, "level 3-4 employees group under mid-level manager IDs")
	assert.Equal(t, []int{10}, mid.TeamEmployees)
}

func TestAllocator_PrioritizeInterventions(t *testing.T) {
	allocator := NewAllocator(twoTeamSnapshot())
	teams := allocator.IdentifyManagersAndTeams()

	interventions := allocator.PrioritizeInterventions(teams)
	smallTeam := interventions[100]
	require.Len(t, smallTeam, 6)

	byID := make(map[int]Intervention, len(smallTeam))
	for _, entry := range smallTeam {
		byID[entry.EmployeeID] = entry
	}

	assert.Equal(t, 1, byID[1].Priority, "below the male median with a high rating")
	assert.Equal(t, "Below-median high performer", byID[1].PriorityReason)
	assert.Equal(t, 2, byID[4].Priority, "below the female median on a standard rating")
	assert.Equal(t, 3, byID[3].Priority, "above median but high performing")
	assert.Equal(t, 3, byID[6].Priority)
	assert.Equal(t, 4, byID[2].Priority, "at the median counts as not below")
	assert.Equal(t, 4, byID[5].Priority)

	for i := 1; i < len(smallTeam); i++ {
		assert.LessOrEqual(t, smallTeam[i-1].Priority, smallTeam[i].Priority,
			"interventions are ordered by priority")
	}

	// Below-median adjustments cap at 10% of the team budget.
	assert.True(t, byID[1].GapToMedian.Equal(decimal.NewFromInt(10000)))
	assert.True(t, byID[1].RecommendedAdjustment.Equal(decimal.NewFromFloat(202.5)))
	assert.Positive(t, byID[1].InterventionImpact)
}

func TestAllocator_OptimizeBudgetAllocation(t *testing.T) {
	allocator := NewAllocator(twoTeamSnapshot())
	teams := allocator.IdentifyManagersAndTeams()
	interventions := allocator.PrioritizeInterventions(teams)

	allocations := allocator.OptimizeBudgetAllocation(interventions)
	require.Len(t, allocations, 2)

	small := allocations[100]
	require.NotNil(t, small)
	assert.True(t, small.TotalBudget.Equal(decimal.NewFromInt(2025)))
	assert.Equal(t, 6, small.EmployeesAffected, "every adjustment fits this budget")
	assert.True(t, small.AllocatedBudget.Equal(decimal.NewFromFloat(810)),
		"two 202.50 gap closures plus four 101.25 merit bumps")
	assert.InDelta(t, 0.4, small.BudgetUtilization, 0.001)

	selectedTotal := decimal.Zero
	for _, entry := range small.SelectedInterventions {
		selectedTotal = selectedTotal.Add(entry.RecommendedAdjustment)
	}
	assert.True(t, selectedTotal.Equal(small.AllocatedBudget))
	assert.True(t, small.AllocatedBudget.Add(small.RemainingBudget).Equal(small.TotalBudget))
}

func TestAllocator_OptimizeBudgetAllocation_NeverExceedsBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	genders := []string{"Male", "Female"}

	for trial := 0; trial < 20; trial++ {
		var employees []domain.Employee
		count := 10 + rng.Intn(30)
		for i := 0; i < count; i++ {
			manager := 100 + rng.Intn(4)
			employees = append(employees, domain.Employee{
				EmployeeID:  i + 1,
				Level:       1 + rng.Intn(6),
				Salary:      decimal.NewFromInt(int64(30000 + rng.Intn(90000))),
				Performance: domain.Rating(1 + rng.Intn(5)),
				Gender:      genders[rng.Intn(2)],
				ManagerID:   &manager,
			})
		}

		allocator := NewAllocator(employees)
		allocator.InequalityBudgetPercent = 0.001 + rng.Float64()*0.01

		teams := allocator.IdentifyManagersAndTeams()
		allocations := allocator.OptimizeBudgetAllocation(allocator.PrioritizeInterventions(teams))

		for managerID, alloc := range allocations {
			assert.True(t, alloc.AllocatedBudget.LessThanOrEqual(alloc.TotalBudget),
				"trial %d manager %d: allocation exceeds budget", trial, managerID)
			assert.False(t, alloc.RemainingBudget.IsNegative(),
				"trial %d manager %d: negative remaining budget", trial, managerID)

			spent := decimal.Zero
			for _, entry := range alloc.SelectedInterventions {
				spent = spent.Add(entry.RecommendedAdjustment)
			}
			assert.True(t, spent.Equal(alloc.AllocatedBudget),
				"trial %d manager %d: selected costs disagree with the allocation", trial, managerID)
		}
	}
}

func TestAllocator_GeneratePolicySummary(t *testing.T) {
	allocator := NewAllocator(twoTeamSnapshot())
	teams := allocator.IdentifyManagersAndTeams()
	allocations := allocator.OptimizeBudgetAllocation(allocator.PrioritizeInterventions(teams))

	summary := allocator.GeneratePolicySummary(teams, allocations)

	compliance := summary.PolicyCompliance
	assert.Equal(t, 2, compliance.TotalManagers)
	assert.Equal(t, 1, compliance.CompliantManagers)
	assert.Equal(t, 1, compliance.OverLimitManagers)
	assert.InDelta(t, 50.0, compliance.ComplianceRate, 0.001)
	assert.Equal(t, DefaultMaxDirectReports, compliance.MaxDirectReportsPolicy)
	assert.InDelta(t, 0.5, compliance.BudgetPercentPolicy, 0.001, "reported as a percentage")

	budget := summary.BudgetAnalysis
	assert.True(t, budget.TotalAvailableBudget.Equal(decimal.NewFromInt(5175)))
	assert.True(t, budget.TotalAllocatedBudget.Add(budget.TotalRemainingBudget).Equal(budget.TotalAvailableBudget))

	impact := summary.Impact
	assert.Equal(t, 13, impact.TotalEmployeesAffected)
	assert.Equal(t, 13, impact.TotalPopulation)
	assert.InDelta(t, 100.0, impact.InterventionRate, 0.001)
	assert.Equal(t, 1, impact.PriorityDistribution.BelowMedianHighPerformers)
	assert.Equal(t, 1, impact.PriorityDistribution.BelowMedian)
	assert.Equal(t, 2, impact.PriorityDistribution.HighPerformers)
	assert.Equal(t, 9, impact.PriorityDistribution.Standard)
}

func TestAllocator_PolicyRecommendations(t *testing.T) {
	allocator := NewAllocator(twoTeamSnapshot())
	teams := allocator.IdentifyManagersAndTeams()
	allocations := allocator.OptimizeBudgetAllocation(allocator.PrioritizeInterventions(teams))

	summary := allocator.GeneratePolicySummary(teams, allocations)

	types := make([]string, 0, len(summary.Recommendations))
	for _, rec := range summary.Recommendations {
		types = append(types, rec.Type)
	}
	assert.Contains(t, types, "organizational_structure",
		"50% compliance falls under the 80% bar")
	assert.Contains(t, types, "budget_optimization",
		"average utilization sits under 50%")
	assert.NotContains(t, types, "intervention_prioritization",
		"no funded zero-value priority interventions exist")
}

func TestAllocator_SetLogger(t *testing.T) {
	allocator := NewAllocator(twoTeamSnapshot())
	allocator.SetLogger(nil)
	assert.IsType(t, domain.NopLogger{}, allocator.logger, "nil restores the no-op logger")
}
