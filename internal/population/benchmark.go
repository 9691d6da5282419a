// Package population handles employee snapshot loading and the derived
// benchmark statistics every analyzer keys off.
package population

import (
	"sort"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/payequity/equisim/internal/domain"
)

// RangeStats describes the salary spread for one level.
type RangeStats struct {
	Min    decimal.Decimal `json:"min"`
	Max    decimal.Decimal `json:"max"`
	Q25    decimal.Decimal `json:"q25"`
	Median decimal.Decimal `json:"median"`
	Q75    decimal.Decimal `json:"q75"`
}

// Benchmark is the snapshot-derived statistics bundle. It is computed once
// per analysis from the population snapshot and read-only afterwards; a new
// snapshot requires a new Benchmark.
type Benchmark struct {
	TotalEmployees int             `json:"total_employees"`
	TotalPayroll   decimal.Decimal `json:"total_payroll"`
	OverallMedian  decimal.Decimal `json:"overall_median"`
	OverallMean    decimal.Decimal `json:"overall_mean"`
	SalaryStdDev   float64         `json:"salary_std_dev"`

	LevelMedians       map[int]decimal.Decimal            `json:"level_medians"`
	LevelGenderMedians map[int]map[string]decimal.Decimal `json:"level_gender_medians"`
	LevelRanges        map[int]RangeStats                 `json:"level_ranges"`
}

// ComputeBenchmark derives the benchmark statistics from a population
// snapshot.
func ComputeBenchmark(employees []domain.Employee) *Benchmark {
	b := &Benchmark{
		TotalEmployees:     len(employees),
		LevelMedians:       make(map[int]decimal.Decimal),
		LevelGenderMedians: make(map[int]map[string]decimal.Decimal),
		LevelRanges:        make(map[int]RangeStats),
	}

	all := make([]float64, 0, len(employees))
	byLevel := make(map[int][]decimal.Decimal)
	byLevelGender := make(map[int]map[string][]decimal.Decimal)

	for _, emp := range employees {
		b.TotalPayroll = b.TotalPayroll.Add(emp.Salary)
		all = append(all, emp.Salary.InexactFloat64())
		byLevel[emp.Level] = append(byLevel[emp.Level], emp.Salary)
		if emp.Gender != "" {
			if byLevelGender[emp.Level] == nil {
				byLevelGender[emp.Level] = make(map[string][]decimal.Decimal)
			}
			byLevelGender[emp.Level][emp.Gender] = append(byLevelGender[emp.Level][emp.Gender], emp.Salary)
		}
	}

	if len(all) > 0 {
		b.OverallMean = decimal.NewFromFloat(stat.Mean(all, nil))
		if len(all) > 1 {
			b.SalaryStdDev = stat.StdDev(all, nil)
		}
	}

	salaries := make([]decimal.Decimal, 0, len(employees))
	for _, emp := range employees {
		salaries = append(salaries, emp.Salary)
	}
	b.OverallMedian = Median(salaries)

	for level, levelSalaries := range byLevel {
		b.LevelMedians[level] = Median(levelSalaries)
		b.LevelRanges[level] = rangeStatsOf(levelSalaries)
	}

	for level, genders := range byLevelGender {
		b.LevelGenderMedians[level] = make(map[string]decimal.Decimal, len(genders))
		for gender, genderSalaries := range genders {
			b.LevelGenderMedians[level][gender] = Median(genderSalaries)
		}
	}

	return b
}

// LevelMedian returns the median salary for a level.
func (b *Benchmark) LevelMedian(level int) (decimal.Decimal, bool) {
	m, ok := b.LevelMedians[level]
	return m, ok
}

// GenderMedian returns the median salary for a (level, gender) pair. The
// pair only exists where the snapshot has at least one such employee.
func (b *Benchmark) GenderMedian(level int, gender string) (decimal.Decimal, bool) {
	genders, ok := b.LevelGenderMedians[level]
	if !ok {
		return decimal.Zero, false
	}
	m, ok := genders[gender]
	return m, ok
}

// Levels returns the levels present in the snapshot in ascending order.
func (b *Benchmark) Levels() []int {
	levels := make([]int, 0, len(b.LevelMedians))
	for level := range b.LevelMedians {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	return levels
}

// Median computes the midpoint salary, averaging the two central values for
// even-sized inputs.
func Median(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sorted := append([]decimal.Decimal(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}

// Quantile interpolates the q-th quantile (0-1) linearly between order
// statistics.
func Quantile(values []decimal.Decimal, q float64) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	floats := make([]float64, len(values))
	for i, v := range values {
		floats[i] = v.InexactFloat64()
	}
	sort.Float64s(floats)

	if q <= 0 {
		return decimal.NewFromFloat(floats[0])
	}
	if q >= 1 {
		return decimal.NewFromFloat(floats[len(floats)-1])
	}

	pos := q * float64(len(floats)-1)
	lower := int(pos)
	frac := pos - float64(lower)
	if lower+1 >= len(floats) {
		return decimal.NewFromFloat(floats[lower])
	}
	interpolated := floats[lower] + frac*(floats[lower+1]-floats[lower])
	return decimal.NewFromFloat(interpolated)
}

func rangeStatsOf(values []decimal.Decimal) RangeStats {
	sorted := append([]decimal.Decimal(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	return RangeStats{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q25:    Quantile(sorted, 0.25),
		Median: Median(sorted),
		Q75:    Quantile(sorted, 0.75),
	}
}
