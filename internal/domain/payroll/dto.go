package payroll

import (
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// LIST / EXPORT
// ========================================

type SalaryFilter struct {
	Month      string
	Search     string
	Department string
	Status     string

	Period report.Period `json:"-"`
}

func (f *SalaryFilter) Validate() error {
	var errs validator.ValidationErrors

	p, ok := report.ParsePeriod(f.Month)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}
	if f.Status != "" && f.Status != "all" && !SalaryStatus(f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of pending, approved, rejected, all",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	f.Period = p
	return nil
}

func (f SalaryFilter) Matches(r SalaryRecord) bool {
	if f.Status != "" && f.Status != "all" && string(r.Status) != f.Status {
		return false
	}
	if f.Department != "" && f.Department != "all" && deref(r.Department) != f.Department {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		name := strings.ToLower(deref(r.EmployeeName))
		code := strings.ToLower(deref(r.EmployeeCode))
		if !strings.Contains(name, q) && !strings.Contains(code, q) {
			return false
		}
	}
	return true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type SalaryResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     string          `json:"employee_name"`
	EmployeeCode     string          `json:"employee_code"`
	Department       string          `json:"department"`
	PeriodMonth      int             `json:"period_month"`
	PeriodYear       int             `json:"period_year"`
	TotalWorkingDays int             `json:"total_working_days"`
	PresentDays      int             `json:"present_days"`
	AbsentDays       int             `json:"absent_days"`
	HalfDays         int             `json:"half_days"`
	LateDays         int             `json:"late_days"`
	TotalHours       decimal.Decimal `json:"total_hours"`
	ExpectedHours    decimal.Decimal `json:"expected_hours"`
	BaseSalary       decimal.Decimal `json:"base_salary"`
	Deductions       decimal.Decimal `json:"deductions"`
	Bonus            decimal.Decimal `json:"bonus"`
	FinalSalary      decimal.Decimal `json:"final_salary"`
	Status           SalaryStatus    `json:"status"`
	AdminRemarks     *string         `json:"admin_remarks,omitempty"`
	ReviewedBy       *string         `json:"reviewed_by,omitempty"`
	ReviewedAt       *string         `json:"reviewed_at,omitempty"`
	CreatedAt        string          `json:"created_at"`
	UpdatedAt        string          `json:"updated_at"`
}

func NewSalaryResponse(r SalaryRecord) SalaryResponse {
	resp := SalaryResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     deref(r.EmployeeName),
		EmployeeCode:     deref(r.EmployeeCode),
		Department:       deref(r.Department),
		PeriodMonth:      r.PeriodMonth,
		PeriodYear:       r.PeriodYear,
		TotalWorkingDays: r.TotalWorkingDays,
		PresentDays:      r.PresentDays,
		AbsentDays:       r.AbsentDays,
		HalfDays:         r.HalfDays,
		LateDays:         r.LateDays,
		TotalHours:       r.TotalHours,
		ExpectedHours:    r.ExpectedHours,
		BaseSalary:       r.BaseSalary,
		Deductions:       r.Deductions,
		Bonus:            r.Bonus,
		FinalSalary:      r.FinalSalary,
		Status:           r.Status,
		AdminRemarks:     r.AdminRemarks,
		ReviewedBy:       r.ReviewedBy,
		CreatedAt:        r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        r.UpdatedAt.Format(time.RFC3339),
	}
	if r.ReviewedAt != nil {
		at := r.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &at
	}
	return resp
}

type SalarySummary struct {
	TotalApproved decimal.Decimal `json:"total_approved"`
	TotalPending  decimal.Decimal `json:"total_pending"`
	PendingCount  int             `json:"pending_count"`
	ApprovedCount int             `json:"approved_count"`
	RejectedCount int             `json:"rejected_count"`
}

// Summarize totals final salaries by review state.
func Summarize(records []SalaryRecord) SalarySummary {
	s := SalarySummary{TotalApproved: decimal.Zero, TotalPending: decimal.Zero}
	for _, r := range records {
		switch r.Status {
		case SalaryStatusApproved:
			s.ApprovedCount++
			s.TotalApproved = s.TotalApproved.Add(r.FinalSalary)
		case SalaryStatusPending:
			s.PendingCount++
			s.TotalPending = s.TotalPending.Add(r.FinalSalary)
		case SalaryStatusRejected:
			s.RejectedCount++
		}
	}
	return s
}

type SalaryListResponse struct {
	Month       string           `json:"month"`
	Records     []SalaryResponse `json:"records"`
	Summary     SalarySummary    `json:"summary"`
	Departments []string         `json:"departments"`
	Total       int              `json:"total"`
}

var salaryHeader = []string{
	"Employee Name",
	"Employee Code",
	"Department",
	"Total Working Days",
	"Present Days",
	"Absent Days",
	"Half Days",
	"Late Days",
	"Total Hours",
	"Expected Hours",
	"Base Salary",
	"Deductions",
	"Bonus",
	"Final Salary",
	"Status",
	"Admin Remarks",
}

// SalaryTable renders records in the salary export layout.
func SalaryTable(name string, records []SalaryRecord) report.Table {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			deref(r.EmployeeName),
			deref(r.EmployeeCode),
			deref(r.Department),
			strconv.Itoa(r.TotalWorkingDays),
			strconv.Itoa(r.PresentDays),
			strconv.Itoa(r.AbsentDays),
			strconv.Itoa(r.HalfDays),
			strconv.Itoa(r.LateDays),
			r.TotalHours.StringFixed(1),
			r.ExpectedHours.StringFixed(1),
			r.BaseSalary.StringFixed(2),
			r.Deductions.StringFixed(2),
			r.Bonus.StringFixed(2),
			r.FinalSalary.StringFixed(2),
			string(r.Status),
			deref(r.AdminRemarks),
		})
	}
	return report.Table{Name: name, Header: salaryHeader, Rows: rows}
}

// ========================================
// GENERATE
// ========================================

type GenerateSalaryRequest struct {
	Month string `json:"month"`

	Period report.Period `json:"-"`
}

func (r *GenerateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	p, ok := report.ParsePeriod(r.Month)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	r.Period = p
	return nil
}

type GenerateSalaryResponse struct {
	Month    string   `json:"month"`
	Created  int      `json:"created"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

// ========================================
// REVIEW / EDIT
// ========================================

type ReviewSalaryRequest struct {
	Remarks *string `json:"remarks"`
}

func (r *ReviewSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Remarks != nil {
		trimmed := strings.TrimSpace(*r.Remarks)
		if trimmed == "" {
			r.Remarks = nil
		} else {
			r.Remarks = &trimmed
		}
	}
	if r.Remarks != nil && len(*r.Remarks) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "remarks",
			Message: "remarks must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSalaryRequest struct {
	BaseSalary  *decimal.Decimal `json:"base_salary"`
	Deductions  *decimal.Decimal `json:"deductions"`
	Bonus       *decimal.Decimal `json:"bonus"`
	FinalSalary *decimal.Decimal `json:"final_salary"`
}

func (r *UpdateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BaseSalary == nil && r.Deductions == nil && r.Bonus == nil && r.FinalSalary == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one amount must be provided",
		})
	}
	fields := []struct {
		name  string
		value *decimal.Decimal
	}{
		{"base_salary", r.BaseSalary},
		{"deductions", r.Deductions},
		{"bonus", r.Bonus},
		{"final_salary", r.FinalSalary},
	}
	for _, f := range fields {
		if f.value != nil && f.value.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   f.name,
				Message: f.name + " must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply writes the provided amounts onto record. The final salary is
// recalculated from the components unless it is given explicitly.
func (r UpdateSalaryRequest) Apply(record SalaryRecord) SalaryRecord {
	if r.BaseSalary != nil {
		record.BaseSalary = *r.BaseSalary
	}
	if r.Deductions != nil {
		record.Deductions = *r.Deductions
	}
	if r.Bonus != nil {
		record.Bonus = *r.Bonus
	}
	if r.FinalSalary != nil {
		record.FinalSalary = r.FinalSalary.Round(2)
	} else {
		record.Recalculate()
	}
	return record
}
