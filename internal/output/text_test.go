package output

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payequity/equisim/internal/convergence"
	"github.com/payequity/equisim/internal/domain"
	"github.com/payequity/equisim/internal/intervention"
	"github.com/payequity/equisim/internal/policy"
	"github.com/payequity/equisim/internal/progression"
)

func reportPopulation() []domain.Employee {
	return []domain.Employee{
		{EmployeeID: 1, Level: 3, Salary: decimal.NewFromInt(60000), Performance: domain.RatingAchieving, Gender: "Female"},
		{EmployeeID: 2, Level: 3, Salary: decimal.NewFromInt(70000), Performance: domain.RatingAchieving, Gender: "Male"},
		{EmployeeID: 3, Level: 3, Salary: decimal.NewFromInt(80000), Performance: domain.RatingHighPerforming, Gender: "Male"},
	}
}

func TestProgressionReport(t *testing.T) {
	sim := progression.NewSimulator(reportPopulation(), nil)
	result, err := sim.Project(reportPopulation()[0], 5, nil, false)
	require.NoError(t, err)

	var buf bytes.Buffer
	ProgressionReport(&buf, result)

	report := buf.String()
	assert.Contains(t, report, "SALARY PROGRESSION ANALYSIS - EMPLOYEE 1")
	assert.Contains(t, report, "Current Salary:   £60000.00")
	assert.Contains(t, report, "SCENARIO: CONSERVATIVE")
	assert.Contains(t, report, "SCENARIO: REALISTIC")
	assert.Contains(t, report, "SCENARIO: OPTIMISTIC")
	assert.Contains(t, report, "below_median")
	assert.Contains(t, report, "Primary Action:")
}

func TestConvergenceReport_AboveMedian(t *testing.T) {
	analyzer := convergence.NewAnalyzer(reportPopulation(), nil)
	result, err := analyzer.AnalyzeTimeline(reportPopulation()[2], 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	ConvergenceReport(&buf, result)

	report := buf.String()
	assert.Contains(t, report, "above median")
	assert.Contains(t, report, "Action:   none")
	assert.NotContains(t, report, "SCENARIO:", "above-median reports carry no scenarios")
}

func TestConvergenceReport_BelowMedian(t *testing.T) {
	analyzer := convergence.NewAnalyzer(reportPopulation(), nil)
	result, err := analyzer.AnalyzeTimeline(reportPopulation()[0], 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	ConvergenceReport(&buf, result)

	report := buf.String()
	assert.Contains(t, report, "Employee:    1")
	assert.Contains(t, report, "SCENARIO: NATURAL")
	assert.Contains(t, report, "SCENARIO: INTERVENTION")
	assert.Contains(t, report, "Recommended Action:")
}

func TestBelowMedianReport(t *testing.T) {
	analyzer := convergence.NewAnalyzer(reportPopulation(), nil)
	analysis := analyzer.IdentifyBelowMedian(1.0, true)

	var buf bytes.Buffer
	BelowMedianReport(&buf, analysis)

	report := buf.String()
	assert.Contains(t, report, "Total Employees:  3")
	assert.Contains(t, report, "GAP STATISTICS")
	assert.Contains(t, report, "GENDER PATTERNS")
}

func TestTrendsReport(t *testing.T) {
	analyzer := convergence.NewAnalyzer(reportPopulation(), nil)
	trends := analyzer.AnalyzePopulationTrends(5)

	var buf bytes.Buffer
	TrendsReport(&buf, trends)

	report := buf.String()
	assert.Contains(t, report, "Projection Horizon: 5 years")
	assert.Contains(t, report, "natural:")
	assert.Contains(t, report, "intervention:")
	assert.Contains(t, report, "STRATEGIC RECOMMENDATIONS")
}

func TestRemediationReport(t *testing.T) {
	sim := intervention.NewSimulator(reportPopulation())
	result, err := sim.ModelGenderGapRemediation(0, 5, 0.005)
	require.NoError(t, err)

	var buf bytes.Buffer
	RemediationReport(&buf, result)

	report := buf.String()
	assert.Contains(t, report, "GENDER PAY GAP REMEDIATION ANALYSIS")
	assert.Contains(t, report, "RECOMMENDED STRATEGY")
	assert.Contains(t, report, "ROI ANALYSIS")
	assert.Contains(t, report, "RISK ASSESSMENT")
}

func TestPolicyReport(t *testing.T) {
	allocator := policy.NewAllocator(reportPopulation())
	teams := allocator.IdentifyManagersAndTeams()
	allocations := allocator.OptimizeBudgetAllocation(allocator.PrioritizeInterventions(teams))
	summary := allocator.GeneratePolicySummary(teams, allocations)

	var buf bytes.Buffer
	PolicyReport(&buf, summary)

	report := buf.String()
	assert.Contains(t, report, "MANAGER POLICY & BUDGET ALLOCATION SUMMARY")
	assert.Contains(t, report, "Compliance Rate:")
	assert.Contains(t, report, "INTERVENTION IMPACT")
	assert.Contains(t, report, "Priority 1 (below-median high performers):")
}

func TestEquityReport(t *testing.T) {
	sim := intervention.NewSimulator(reportPopulation())
	analysis := sim.AnalyzeEquity(nil)

	var buf bytes.Buffer
	EquityReport(&buf, analysis)

	report := buf.String()
	assert.Contains(t, report, "POPULATION SALARY EQUITY ANALYSIS")
	assert.Contains(t, report, "GENDER")
	assert.Contains(t, report, "Level 3:")
}
