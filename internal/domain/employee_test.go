package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validEmployee() Employee {
	return Employee{
		EmployeeID:  1,
		Level:       3,
		Salary:      decimal.NewFromInt(70000),
		Performance: RatingAchieving,
		Gender:      "Female",
	}
}

func TestEmployee_Validate(t *testing.T) {
	emp := validEmployee()
	assert.NoError(t, emp.Validate())

	badLevel := validEmployee()
	badLevel.Level = 7
	assert.Error(t, badLevel.Validate(), "level above the grade scale should fail")

	badSalary := validEmployee()
	badSalary.Salary = decimal.Zero
	assert.Error(t, badSalary.Validate(), "non-positive salary should fail")

	badRating := validEmployee()
	badRating.Performance = 0
	assert.Error(t, badRating.Validate(), "missing rating should fail")
}

func TestEmployee_Tenure(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	emp := validEmployee()
	assert.Equal(t, DefaultTenureYears, emp.Tenure(asOf), "no hire date or tenure falls back to the default")

	tenure := 4.0
	emp.TenureYears = &tenure
	assert.Equal(t, 4.0, emp.Tenure(asOf), "explicit tenure wins")

	hired := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	fromHire := validEmployee()
	fromHire.HireDate = &hired
	assert.InDelta(t, 2.0, fromHire.Tenure(asOf), 0.01, "tenure derives from the hire date")
}

func TestEmployee_WithSalaryDoesNotMutate(t *testing.T) {
	emp := validEmployee()
	raised := emp.WithSalary(decimal.NewFromInt(75000))

	assert.True(t, emp.Salary.Equal(decimal.NewFromInt(70000)), "original record is untouched")
	assert.True(t, raised.Salary.Equal(decimal.NewFromInt(75000)))

	promoted := emp.WithPerformance(RatingExceeding)
	assert.Equal(t, RatingAchieving, emp.Performance, "original record is untouched")
	assert.Equal(t, RatingExceeding, promoted.Performance)
}
