package payroll

import (
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/report"
	"github.com/shopspring/decimal"
)

// Settings drives draft salary calculation.
type Settings struct {
	WorkingDaysPerMonth int
	ExpectedDailyHours  float64
}

var half = decimal.NewFromFloat(0.5)

// DraftFromSummary builds a pending salary record from a month of
// attendance. Each absent day deducts one daily rate and each half day
// deducts half of it; the daily rate is the monthly salary over the
// configured working days.
func DraftFromSummary(emp employee.Employee, summary report.MonthlySummary, period report.Period, s Settings) SalaryRecord {
	workingDays := s.WorkingDaysPerMonth
	if workingDays <= 0 {
		workingDays = 26
	}

	base := emp.MonthlySalary
	dailyRate := base.Div(decimal.NewFromInt(int64(workingDays)))
	missedDays := decimal.NewFromInt(int64(summary.AbsentDays)).
		Add(decimal.NewFromInt(int64(summary.HalfDays)).Mul(half))

	record := SalaryRecord{
		EmployeeID:       emp.ID,
		PeriodMonth:      int(period.Month),
		PeriodYear:       period.Year,
		TotalWorkingDays: summary.TotalDays,
		PresentDays:      summary.PresentDays,
		AbsentDays:       summary.AbsentDays,
		HalfDays:         summary.HalfDays,
		LateDays:         summary.LateDays,
		TotalHours:       decimal.NewFromFloat(summary.TotalHours),
		ExpectedHours:    decimal.NewFromFloat(s.ExpectedDailyHours).Mul(decimal.NewFromInt(int64(workingDays))),
		BaseSalary:       base,
		Deductions:       dailyRate.Mul(missedDays).Round(2),
		Bonus:            decimal.Zero,
		Status:           SalaryStatusPending,
	}
	record.Recalculate()
	return record
}
