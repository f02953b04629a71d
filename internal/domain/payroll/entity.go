package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryStatus enum
type SalaryStatus string

const (
	SalaryStatusPending  SalaryStatus = "pending"
	SalaryStatusApproved SalaryStatus = "approved"
	SalaryStatusRejected SalaryStatus = "rejected"
)

func (s SalaryStatus) IsValid() bool {
	return s == SalaryStatusPending || s == SalaryStatusApproved || s == SalaryStatusRejected
}

// SalaryRecord - monthly salary under admin review
type SalaryRecord struct {
	ID               string
	EmployeeID       string
	PeriodMonth      int
	PeriodYear       int
	TotalWorkingDays int
	PresentDays      int
	AbsentDays       int
	HalfDays         int
	LateDays         int
	TotalHours       decimal.Decimal
	ExpectedHours    decimal.Decimal
	BaseSalary       decimal.Decimal
	Deductions       decimal.Decimal
	Bonus            decimal.Decimal
	FinalSalary      decimal.Decimal
	Status           SalaryStatus
	AdminRemarks     *string
	ReviewedBy       *string
	ReviewedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
	Department   *string
}

// Recalculate derives the final salary from its components, floored at 0.
func (r *SalaryRecord) Recalculate() {
	final := r.BaseSalary.Sub(r.Deductions).Add(r.Bonus)
	if final.IsNegative() {
		final = decimal.Zero
	}
	r.FinalSalary = final.Round(2)
}
