// Package policy implements manager-level intervention constraints: direct
// report caps, per-manager budget ceilings and greedy budget allocation
// favoring below-median high performers.
package policy

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/payequity/equisim/internal/domain"
	"github.com/payequity/equisim/internal/population"
)

// Policy defaults.
const (
	DefaultMaxDirectReports        = 6
	DefaultInequalityBudgetPercent = 0.005
	DefaultHighPerformerThreshold  = 4.0

	// Allocation stops once a manager's remaining budget drops to this
	// floor; smaller adjustments are not meaningful.
	MinMeaningfulAdjustment = 100
)

// Synthetic hierarchy manager ID bases.
const (
	juniorManagerBase = 1000
	seniorManagerBase = 1100
	noManager         = -1
)

// Allocator applies manager-level policy constraints to a population
// snapshot.
type Allocator struct {
	employees []domain.Employee
	benchmark *population.Benchmark

	MaxDirectReports int
	// InequalityBudgetPercent is the per-manager budget as a fraction of
	// team payroll.
	InequalityBudgetPercent float64
	// HighPerformerThreshold is the rating score (1-5 scale) at or above
	// which an employee counts as a high performer.
	HighPerformerThreshold float64

	logger domain.Logger
}

// NewAllocator builds an allocator with the default policy parameters.
func NewAllocator(employees []domain.Employee) *Allocator {
	return &Allocator{
		employees:               employees,
		benchmark:               population.ComputeBenchmark(employees),
		MaxDirectReports:        DefaultMaxDirectReports,
		InequalityBudgetPercent: DefaultInequalityBudgetPercent,
		HighPerformerThreshold:  DefaultHighPerformerThreshold,
		logger:                  domain.NopLogger{},
	}
}

// SetLogger replaces the allocator logger. A nil logger restores the no-op
// one.
func (a *Allocator) SetLogger(logger domain.Logger) {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	a.logger = logger
}

// Team is one manager's team with its budget and compliance status.
type Team struct {
	ManagerID          int               `json:"manager_id"`
	TeamSize           int               `json:"team_size"`
	TeamEmployees      []int             `json:"team_employees"`
	TeamPayroll        decimal.Decimal   `json:"team_payroll"`
	InterventionBudget decimal.Decimal   `json:"intervention_budget"`
	BudgetPercent      float64           `json:"budget_percent"`
	CompliantTeamSize  bool              `json:"compliant_team_size"`
	OverLimitBy        int               `json:"over_limit_by"`
	ManagerLevel       int               `json:"manager_level,omitempty"`
	ManagerSalary      decimal.Decimal   `json:"manager_salary,omitempty"`
	Members            []domain.Employee `json:"-"`
}

// IdentifyManagersAndTeams groups employees by manager and computes each
// team's intervention budget and compliance flag. When no employee carries a
// manager reference a synthetic hierarchy is generated: roughly six reports
// per junior-level manager, eight per mid-level manager, and none above.
func (a *Allocator) IdentifyManagersAndTeams() map[int]*Team {
	managerOf := a.managerAssignments()

	byID := make(map[int]domain.Employee, len(a.employees))
	for _, emp := range a.employees {
		byID[emp.EmployeeID] = emp
	}

	teams := make(map[int]*Team)
	for _, emp := range a.employees {
		managerID, ok := managerOf[emp.EmployeeID]
		if !ok || managerID == noManager {
			continue
		}

		team := teams[managerID]
		if team == nil {
			team = &Team{ManagerID: managerID, BudgetPercent: a.InequalityBudgetPercent}
			if manager, found := byID[managerID]; found {
				team.ManagerLevel = manager.Level
				team.ManagerSalary = manager.Salary
			}
			teams[managerID] = team
		}
		team.TeamSize++
		team.TeamEmployees = append(team.TeamEmployees, emp.EmployeeID)
		team.TeamPayroll = team.TeamPayroll.Add(emp.Salary)
		team.Members = append(team.Members, emp)
	}

	compliant := 0
	for _, team := range teams {
		team.InterventionBudget = team.TeamPayroll.Mul(decimal.NewFromFloat(a.InequalityBudgetPercent))
		team.CompliantTeamSize = team.TeamSize <= a.MaxDirectReports
		if over := team.TeamSize - a.MaxDirectReports; over > 0 {
			team.OverLimitBy = over
		}
		if team.CompliantTeamSize {
			compliant++
		}
	}

	a.logger.Infof("identified %d managers, %d policy compliant", len(teams), compliant)
	return teams
}

// managerAssignments maps employee IDs to manager IDs, synthesizing a
// hierarchy when the snapshot carries no manager references at all.
func (a *Allocator) managerAssignments() map[int]int {
	hasReferences := false
	for _, emp := range a.employees {
		if emp.ManagerID != nil {
			hasReferences = true
			break
		}
	}

	assignments := make(map[int]int, len(a.employees))
	if hasReferences {
		for _, emp := range a.employees {
			if emp.ManagerID != nil {
				assignments[emp.EmployeeID] = *emp.ManagerID
			}
		}
		return assignments
	}

	a.logger.Warnf("no manager references found, generating synthetic hierarchy")
	for _, emp := range a.employees {
		switch {
		case emp.Level <= 2:
			assignments[emp.EmployeeID] = juniorManagerBase + emp.EmployeeID/6
		case emp.Level <= 4:
			assignments[emp.EmployeeID] = seniorManagerBase + emp.EmployeeID/8
		default:
			assignments[emp.EmployeeID] = noManager
		}
	}
	return assignments
}

// Intervention is one employee's prioritized intervention opportunity.
type Intervention struct {
	EmployeeID            int             `json:"employee_id"`
	Priority              int             `json:"priority"`
	PriorityReason        string          `json:"priority_reason"`
	IsBelowMedian         bool            `json:"is_below_median"`
	IsHighPerformer       bool            `json:"is_high_performer"`
	CurrentSalary         decimal.Decimal `json:"current_salary"`
	Level                 int             `json:"level"`
	Gender                string          `json:"gender,omitempty"`
	Performance           domain.Rating   `json:"performance_rating"`
	TargetSalary          decimal.Decimal `json:"target_salary"`
	GapToMedian           decimal.Decimal `json:"gap_to_median"`
	RecommendedAdjustment decimal.Decimal `json:"recommended_adjustment"`
	GapClosurePercent     float64         `json:"gap_closure_percent"`
	SalaryIncreasePercent float64         `json:"salary_increase_percent"`
	InterventionImpact    float64         `json:"intervention_impact"`
	AvailableBudget       decimal.Decimal `json:"available_budget"`
}

// PrioritizeInterventions builds a prioritized intervention list per
// manager. Priority 1 is below-median high performers, then below-median
// employees, then above-median high performers, then everyone else; ties
// order by impact score descending.
func (a *Allocator) PrioritizeInterventions(teams map[int]*Team) map[int][]Intervention {
	all := make(map[int][]Intervention, len(teams))

	for managerID, team := range teams {
		if len(team.Members) == 0 {
			continue
		}

		interventions := make([]Intervention, 0, len(team.Members))
		for _, emp := range team.Members {
			belowMedian := a.isBelowMedian(emp)
			highPerformer := emp.Performance.Score() >= a.HighPerformerThreshold

			entry := a.interventionPotential(emp, team.InterventionBudget)
			entry.IsBelowMedian = belowMedian
			entry.IsHighPerformer = highPerformer

			switch {
			case belowMedian && highPerformer:
				entry.Priority = 1
				entry.PriorityReason = "Below-median high performer"
			case belowMedian:
				entry.Priority = 2
				entry.PriorityReason = "Below-median employee"
			case highPerformer:
				entry.Priority = 3
				entry.PriorityReason = "High performer (above median)"
			default:
				entry.Priority = 4
				entry.PriorityReason = "Standard employee"
			}

			interventions = append(interventions, entry)
		}

		sort.SliceStable(interventions, func(i, j int) bool {
			if interventions[i].Priority != interventions[j].Priority {
				return interventions[i].Priority < interventions[j].Priority
			}
			return interventions[i].InterventionImpact > interventions[j].InterventionImpact
		})
		all[managerID] = interventions
	}

	return all
}

// isBelowMedian compares against the (level, gender) median, falling back to
// the median of the level's per-gender medians when the pair is absent.
func (a *Allocator) isBelowMedian(emp domain.Employee) bool {
	if median, ok := a.benchmark.GenderMedian(emp.Level, emp.Gender); ok {
		return emp.Salary.LessThan(median)
	}
	if fallback, ok := a.levelGenderFallbackMedian(emp.Level); ok {
		return emp.Salary.LessThan(fallback)
	}
	return false
}

func (a *Allocator) levelGenderFallbackMedian(level int) (decimal.Decimal, bool) {
	genders, ok := a.benchmark.LevelGenderMedians[level]
	if !ok || len(genders) == 0 {
		return decimal.Zero, false
	}
	medians := make([]decimal.Decimal, 0, len(genders))
	for _, median := range genders {
		medians = append(medians, median)
	}
	return population.Median(medians), true
}

// interventionPotential computes the recommended adjustment and impact score
// for one employee. Below-median adjustments cap at the gap, 10% of the
// manager's budget, and a 15% raise; above-median adjustments cap at a 5%
// raise and 5% of the budget.
func (a *Allocator) interventionPotential(emp domain.Employee, budget decimal.Decimal) Intervention {
	target := emp.Salary
	if median, ok := a.benchmark.GenderMedian(emp.Level, emp.Gender); ok {
		target = median
	} else if fallback, ok := a.levelGenderFallbackMedian(emp.Level); ok {
		target = fallback
	}

	var adjustment decimal.Decimal
	if emp.Salary.LessThan(target) {
		adjustment = decimal.Min(
			target.Sub(emp.Salary),
			budget.Mul(decimal.NewFromFloat(0.1)),
			emp.Salary.Mul(decimal.NewFromFloat(0.15)),
		)
	} else {
		adjustment = decimal.Min(
			emp.Salary.Mul(decimal.NewFromFloat(0.05)),
			budget.Mul(decimal.NewFromFloat(0.05)),
		)
	}

	gapToMedian := decimal.Zero
	if gap := target.Sub(emp.Salary); gap.IsPositive() {
		gapToMedian = gap
	}

	gapClosure := 0.0
	if gapToMedian.IsPositive() {
		gapClosure = adjustment.Div(gapToMedian).InexactFloat64() * 100
	}
	salaryIncrease := 0.0
	if emp.Salary.IsPositive() {
		salaryIncrease = adjustment.Div(emp.Salary).InexactFloat64() * 100
	}

	performanceWeight := emp.Performance.Score() / 5.0
	gapWeight := 0.0
	if emp.Salary.IsPositive() {
		gapWeight = gapToMedian.Div(emp.Salary).InexactFloat64()
		if gapWeight > 0.5 {
			gapWeight = 0.5
		}
	}
	impact := (gapClosure*gapWeight + salaryIncrease) * performanceWeight

	return Intervention{
		EmployeeID:            emp.EmployeeID,
		CurrentSalary:         emp.Salary,
		Level:                 emp.Level,
		Gender:                emp.Gender,
		Performance:           emp.Performance,
		TargetSalary:          target,
		GapToMedian:           gapToMedian,
		RecommendedAdjustment: adjustment,
		GapClosurePercent:     gapClosure,
		SalaryIncreasePercent: salaryIncrease,
		InterventionImpact:    impact,
		AvailableBudget:       budget,
	}
}

// Allocation is one manager's optimized budget allocation.
type Allocation struct {
	TotalBudget           decimal.Decimal `json:"total_budget"`
	AllocatedBudget       decimal.Decimal `json:"allocated_budget"`
	RemainingBudget       decimal.Decimal `json:"remaining_budget"`
	BudgetUtilization     float64         `json:"budget_utilization"`
	SelectedInterventions []Intervention  `json:"selected_interventions"`
	TotalInterventions    int             `json:"total_interventions"`
	EmployeesAffected     int             `json:"employees_affected"`
	AverageAdjustment     decimal.Decimal `json:"average_adjustment"`
}

// OptimizeBudgetAllocation greedily selects interventions per manager in
// priority order until the budget is exhausted. The allocation never exceeds
// the manager's budget; it is a heuristic, not a globally optimal knapsack
// solution.
func (a *Allocator) OptimizeBudgetAllocation(interventions map[int][]Intervention) map[int]*Allocation {
	allocations := make(map[int]*Allocation, len(interventions))
	totalCost := decimal.Zero
	totalAffected := 0

	managerIDs := make([]int, 0, len(interventions))
	for managerID := range interventions {
		managerIDs = append(managerIDs, managerID)
	}
	sort.Ints(managerIDs)

	floor := decimal.NewFromInt(MinMeaningfulAdjustment)

	for _, managerID := range managerIDs {
		candidates := interventions[managerID]
		budget := decimal.Zero
		if len(candidates) > 0 {
			budget = candidates[0].AvailableBudget
		}

		var selected []Intervention
		remaining := budget

		for _, candidate := range candidates {
			cost := candidate.RecommendedAdjustment
			if cost.IsPositive() && cost.LessThanOrEqual(remaining) {
				selected = append(selected, candidate)
				remaining = remaining.Sub(cost)
				totalCost = totalCost.Add(cost)
				totalAffected++
				a.logger.Debugf("manager %d: selected employee %d (%s, remaining %s)",
					managerID, candidate.EmployeeID, cost.StringFixed(2), remaining.StringFixed(2))
			}
			if remaining.LessThanOrEqual(floor) {
				break
			}
		}

		allocated := budget.Sub(remaining)
		utilization := 0.0
		if budget.IsPositive() {
			utilization = allocated.Div(budget).InexactFloat64()
		}
		average := decimal.Zero
		if len(selected) > 0 {
			average = allocated.Div(decimal.NewFromInt(int64(len(selected))))
		}

		allocations[managerID] = &Allocation{
			TotalBudget:           budget,
			AllocatedBudget:       allocated,
			RemainingBudget:       remaining,
			BudgetUtilization:     utilization,
			SelectedInterventions: selected,
			TotalInterventions:    len(selected),
			EmployeesAffected:     len(selected),
			AverageAdjustment:     average,
		}
	}

	a.logger.Infof("budget optimization complete: %d employees affected, total cost %s",
		totalAffected, totalCost.StringFixed(2))
	return allocations
}
