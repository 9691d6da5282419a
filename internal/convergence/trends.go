package convergence

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// YearProjection is one year's convergence status under a trend scenario.
type YearProjection struct {
	Year                 int     `json:"year"`
	Scenario             string  `json:"scenario"`
	RemainingBelowMedian int     `json:"remaining_below_median"`
	ConvergedThisPeriod  int     `json:"converged_this_period"`
	ConvergenceRateYear  float64 `json:"convergence_rate_year"`
}

// TrendProjection is the multi-year convergence outlook for one scenario.
type TrendProjection struct {
	Timeline              []YearProjection `json:"timeline"`
	FinalBelowMedianCount int              `json:"final_below_median_count"`
	ConvergenceRate       float64          `json:"convergence_rate"`
}

// GapDistribution buckets the below-median population by gap severity.
type GapDistribution struct {
	TotalBelowMedian  int     `json:"total_below_median"`
	SmallGaps         int     `json:"small_gaps_0_5_percent"`
	MediumGaps        int     `json:"medium_gaps_5_15_percent"`
	LargeGaps         int     `json:"large_gaps_15_25_percent"`
	SevereGaps        int     `json:"severe_gaps_over_25_percent"`
	AverageGapPercent float64 `json:"average_gap_percent"`
	MedianGapPercent  float64 `json:"median_gap_percent"`
}

// VelocityMetrics reports how fast one scenario converges.
type VelocityMetrics struct {
	PeakVelocityPercentPerYear float64 `json:"peak_velocity_percent_per_year"`
	PeakYear                   int     `json:"peak_year"`
	FinalConvergenceRate       float64 `json:"final_convergence_rate"`
}

// InterventionImpact compares intervention against natural convergence.
type InterventionImpact struct {
	NaturalConvergenceRate      float64 `json:"natural_convergence_rate"`
	InterventionConvergenceRate float64 `json:"intervention_convergence_rate"`
	AbsoluteImprovement         float64 `json:"absolute_improvement"`
	RelativeImprovementPercent  float64 `json:"relative_improvement_percent"`
	Effectiveness               string  `json:"intervention_effectiveness"`
}

// PopulationHealth bundles the population-level convergence metrics.
type PopulationHealth struct {
	GapDistribution     GapDistribution            `json:"current_median_gap_distribution"`
	ConvergenceVelocity map[string]VelocityMetrics `json:"convergence_velocity"`
	InterventionImpact  InterventionImpact         `json:"intervention_impact"`
}

// PopulationTrends is the population-wide convergence trend report.
type PopulationTrends struct {
	ProjectionYears          int                         `json:"projection_years"`
	CurrentState             *BelowMedianAnalysis        `json:"current_state"`
	TrendProjections         map[string]*TrendProjection `json:"trend_projections"`
	PopulationHealth         PopulationHealth            `json:"population_health_metrics"`
	StrategicRecommendations []string                    `json:"strategic_recommendations"`
}

// AnalyzePopulationTrends projects population convergence forward under the
// natural, accelerated and intervention growth assumptions.
func (a *Analyzer) AnalyzePopulationTrends(yearsAhead int) *PopulationTrends {
	if yearsAhead <= 0 {
		yearsAhead = 5
	}
	a.logger.Infof("analyzing population convergence trends over %d years", yearsAhead)

	currentState := a.IdentifyBelowMedian(0.0, true)

	projections := make(map[string]*TrendProjection, len(trendScenarios))
	for _, scenario := range trendScenarios {
		timeline := make([]YearProjection, 0, yearsAhead)
		for year := 1; year <= yearsAhead; year++ {
			timeline = append(timeline, a.projectYear(currentState.Employees, year, scenario))
		}
		projections[scenario] = &TrendProjection{
			Timeline:              timeline,
			FinalBelowMedianCount: timeline[len(timeline)-1].RemainingBelowMedian,
			ConvergenceRate:       convergenceRate(timeline),
		}
	}

	health := PopulationHealth{
		GapDistribution:     gapDistribution(currentState.Employees),
		ConvergenceVelocity: convergenceVelocity(projections),
		InterventionImpact:  interventionImpact(projections),
	}

	return &PopulationTrends{
		ProjectionYears:          yearsAhead,
		CurrentState:             currentState,
		TrendProjections:         projections,
		PopulationHealth:         health,
		StrategicRecommendations: a.strategicRecommendations(projections, health),
	}
}

// projectYear grows every below-median salary at the scenario rate and counts
// who reaches the acceptable band around their level median.
func (a *Analyzer) projectYear(employees []BelowMedianEmployee, year int, scenario string) YearProjection {
	growth := trendGrowthRates[scenario]
	threshold := 1 - a.AcceptableGapPercent/100

	remaining, converged := 0, 0
	for _, emp := range employees {
		factor := decimal.NewFromFloat(math.Pow(1+growth, float64(year)))
		projected := emp.Salary.Mul(factor)
		target := emp.LevelMedian.Mul(decimal.NewFromFloat(threshold))

		if projected.GreaterThanOrEqual(target) {
			converged++
		} else {
			remaining++
		}
	}

	rate := 0.0
	if len(employees) > 0 {
		rate = float64(converged) / float64(len(employees))
	}

	return YearProjection{
		Year:                 year,
		Scenario:             scenario,
		RemainingBelowMedian: remaining,
		ConvergedThisPeriod:  converged,
		ConvergenceRateYear:  rate,
	}
}

func convergenceRate(timeline []YearProjection) float64 {
	if len(timeline) == 0 {
		return 0
	}
	initial := timeline[0].RemainingBelowMedian + timeline[0].ConvergedThisPeriod
	if initial == 0 {
		return 100
	}
	final := timeline[len(timeline)-1].RemainingBelowMedian
	rate := float64(initial-final) / float64(initial) * 100
	if rate < 0 {
		return 0
	}
	return rate
}

func gapDistribution(employees []BelowMedianEmployee) GapDistribution {
	if len(employees) == 0 {
		return GapDistribution{}
	}

	dist := GapDistribution{TotalBelowMedian: len(employees)}
	gaps := make([]float64, 0, len(employees))
	total := 0.0

	for _, emp := range employees {
		gap := emp.GapPercent
		gaps = append(gaps, gap)
		total += gap
		switch {
		case gap > 25:
			dist.SevereGaps++
		case gap > 15:
			dist.LargeGaps++
		case gap > 5:
			dist.MediumGaps++
		case gap > 0:
			dist.SmallGaps++
		}
	}

	sort.Float64s(gaps)
	dist.AverageGapPercent = total / float64(len(gaps))
	dist.MedianGapPercent = gaps[len(gaps)/2]
	return dist
}

func convergenceVelocity(projections map[string]*TrendProjection) map[string]VelocityMetrics {
	metrics := make(map[string]VelocityMetrics, len(projections))
	for scenario, projection := range projections {
		if len(projection.Timeline) == 0 {
			metrics[scenario] = VelocityMetrics{}
			continue
		}
		peak := projection.Timeline[0]
		for _, yr := range projection.Timeline[1:] {
			if yr.ConvergenceRateYear > peak.ConvergenceRateYear {
				peak = yr
			}
		}
		metrics[scenario] = VelocityMetrics{
			PeakVelocityPercentPerYear: peak.ConvergenceRateYear * 100,
			PeakYear:                   peak.Year,
			FinalConvergenceRate:       projection.ConvergenceRate,
		}
	}
	return metrics
}

func interventionImpact(projections map[string]*TrendProjection) InterventionImpact {
	natural := projections[ScenarioNatural]
	intervention := projections[ScenarioIntervention]
	if natural == nil || intervention == nil {
		return InterventionImpact{Effectiveness: "insufficient_data"}
	}

	improvement := intervention.ConvergenceRate - natural.ConvergenceRate
	relative := 0.0
	if natural.ConvergenceRate > 0 {
		relative = improvement / natural.ConvergenceRate * 100
	}

	effectiveness := "low"
	if relative > 50 {
		effectiveness = "high"
	} else if relative > 20 {
		effectiveness = "medium"
	}

	return InterventionImpact{
		NaturalConvergenceRate:      natural.ConvergenceRate,
		InterventionConvergenceRate: intervention.ConvergenceRate,
		AbsoluteImprovement:         improvement,
		RelativeImprovementPercent:  relative,
		Effectiveness:               effectiveness,
	}
}

func (a *Analyzer) strategicRecommendations(projections map[string]*TrendProjection, health PopulationHealth) []string {
	var recommendations []string
	dist := health.GapDistribution

	if dist.SevereGaps > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"URGENT: Address %d employees with >25%% salary gaps through immediate interventions", dist.SevereGaps))
	}
	if dist.MediumGaps+dist.LargeGaps > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"Implement performance acceleration programs for %d employees with 5-25%% gaps", dist.MediumGaps+dist.LargeGaps))
	}

	switch health.InterventionImpact.Effectiveness {
	case "high":
		recommendations = append(recommendations,
			"High intervention effectiveness detected - prioritize intervention strategies over natural progression")
	case "low":
		recommendations = append(recommendations,
			"Low intervention effectiveness - focus on natural progression and performance improvement")
	}

	if float64(dist.TotalBelowMedian) > float64(len(a.employees))*0.3 {
		recommendations = append(recommendations,
			"Population-wide salary review recommended - high percentage of below-median employees")
	}

	if natural := projections[ScenarioNatural]; natural != nil && natural.ConvergenceRate < 50 {
		recommendations = append(recommendations,
			"Natural convergence insufficient - intervention required for equitable outcomes")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"Monitor current progression - population shows healthy convergence patterns")
	}
	return recommendations
}
