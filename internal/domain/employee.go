package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MinLevel and MaxLevel bound the ordinal job-grade scale.
const (
	MinLevel = 1
	MaxLevel = 6
)

// DefaultTenureYears is assumed when an employee record carries neither a
// hire date nor an explicit tenure.
const DefaultTenureYears = 2.5

// Employee is one population record consumed by the engine. Records are
// immutable inputs: projections derive copies via WithSalary/WithPerformance
// and never mutate the original.
type Employee struct {
	EmployeeID  int             `json:"employee_id" yaml:"employee_id"`
	Level       int             `json:"level" yaml:"level"`
	Salary      decimal.Decimal `json:"salary" yaml:"salary"`
	Performance Rating          `json:"performance_rating" yaml:"performance_rating"`
	Gender      string          `json:"gender" yaml:"gender"`
	HireDate    *time.Time      `json:"hire_date,omitempty" yaml:"hire_date,omitempty"`
	TenureYears *float64        `json:"tenure_years,omitempty" yaml:"tenure_years,omitempty"`
	ManagerID   *int            `json:"manager_id,omitempty" yaml:"manager_id,omitempty"`
}

// Validate checks the fields every engine operation depends on.
func (e *Employee) Validate() error {
	if e.Level < MinLevel || e.Level > MaxLevel {
		return fmt.Errorf("employee %d: level %d outside %d-%d", e.EmployeeID, e.Level, MinLevel, MaxLevel)
	}
	if !e.Salary.IsPositive() {
		return fmt.Errorf("employee %d: salary must be positive, got %s", e.EmployeeID, e.Salary)
	}
	if !e.Performance.Valid() {
		return fmt.Errorf("employee %d: missing or invalid performance rating", e.EmployeeID)
	}
	return nil
}

// Tenure returns the employee's tenure in years as of the given date. An
// explicit TenureYears wins over the hire date; with neither present the
// conventional 2.5-year assumption applies.
func (e *Employee) Tenure(asOf time.Time) float64 {
	if e.TenureYears != nil {
		return *e.TenureYears
	}
	if e.HireDate != nil {
		return asOf.Sub(*e.HireDate).Hours() / 24 / 365.25
	}
	return DefaultTenureYears
}

// WithSalary returns a copy of the record with the salary replaced.
func (e Employee) WithSalary(salary decimal.Decimal) Employee {
	e.Salary = salary
	return e
}

// WithPerformance returns a copy of the record with the rating replaced.
func (e Employee) WithPerformance(r Rating) Employee {
	e.Performance = r
	return e
}
