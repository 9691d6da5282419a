package population

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/payequity/equisim/internal/domain"
)

// wireRecord is the permissive on-disk shape of an employee record. Dates
// are plain strings so both 2006-01-02 and RFC 3339 inputs parse.
type wireRecord struct {
	EmployeeID  int             `json:"employee_id"`
	Level       int             `json:"level"`
	Salary      decimal.Decimal `json:"salary"`
	Performance string          `json:"performance_rating"`
	Gender      string          `json:"gender"`
	HireDate    string          `json:"hire_date,omitempty"`
	TenureYears *float64        `json:"tenure_years,omitempty"`
	ManagerID   *int            `json:"manager_id,omitempty"`
}

// Load reads a population snapshot from a JSON or CSV file, validating every
// record.
func Load(path string) ([]domain.Employee, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadJSON(path)
	case ".csv":
		return loadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported population file format: %s", path)
	}
}

func loadJSON(path string) ([]domain.Employee, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read population file %s: %w", path, err)
	}

	var records []wireRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse population JSON: %w", err)
	}

	employees := make([]domain.Employee, 0, len(records))
	for i, rec := range records {
		emp, err := rec.toEmployee()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		employees = append(employees, emp)
	}
	return employees, nil
}

func loadCSV(path string) ([]domain.Employee, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open population file %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse population CSV: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("population CSV %s has no data rows", path)
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"employee_id", "level", "salary", "performance_rating", "gender"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("population CSV missing required column %q", required)
		}
	}

	cell := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	employees := make([]domain.Employee, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec := wireRecord{
			Performance: cell(row, "performance_rating"),
			Gender:      cell(row, "gender"),
			HireDate:    cell(row, "hire_date"),
		}
		if rec.EmployeeID, err = strconv.Atoi(cell(row, "employee_id")); err != nil {
			return nil, fmt.Errorf("row %d: invalid employee_id: %w", i+2, err)
		}
		if rec.Level, err = strconv.Atoi(cell(row, "level")); err != nil {
			return nil, fmt.Errorf("row %d: invalid level: %w", i+2, err)
		}
		if rec.Salary, err = decimal.NewFromString(cell(row, "salary")); err != nil {
			return nil, fmt.Errorf("row %d: invalid salary: %w", i+2, err)
		}
		if raw := cell(row, "manager_id"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid manager_id: %w", i+2, err)
			}
			rec.ManagerID = &id
		}
		if raw := cell(row, "tenure_years"); raw != "" {
			tenure, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid tenure_years: %w", i+2, err)
			}
			rec.TenureYears = &tenure
		}

		emp, err := rec.toEmployee()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		employees = append(employees, emp)
	}
	return employees, nil
}

func (r wireRecord) toEmployee() (domain.Employee, error) {
	rating, err := parseRatingValue(r.Performance)
	if err != nil {
		return domain.Employee{}, err
	}

	emp := domain.Employee{
		EmployeeID:  r.EmployeeID,
		Level:       r.Level,
		Salary:      r.Salary,
		Performance: rating,
		Gender:      r.Gender,
		TenureYears: r.TenureYears,
		ManagerID:   r.ManagerID,
	}

	if r.HireDate != "" {
		hired, err := parseDate(r.HireDate)
		if err != nil {
			return domain.Employee{}, fmt.Errorf("employee %d: %w", r.EmployeeID, err)
		}
		emp.HireDate = &hired
	}

	if err := emp.Validate(); err != nil {
		return domain.Employee{}, err
	}
	return emp, nil
}

// parseRatingValue accepts either a rating label or a numeric score on the
// 1-5 scale, which some exports use instead of labels.
func parseRatingValue(raw string) (domain.Rating, error) {
	if rating, err := domain.ParseRating(raw); err == nil {
		return rating, nil
	}
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("unknown performance rating %q", raw)
	}
	rounded := int(math.Round(score))
	rating := domain.Rating(rounded)
	if !rating.Valid() {
		return 0, fmt.Errorf("performance score %g outside the 1-5 scale", score)
	}
	return rating, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", raw)
}
