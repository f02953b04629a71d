package report

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/validator"
)

// Period is a calendar month.
type Period struct {
	Year  int
	Month time.Month
}

func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod reads "YYYY-MM".
func ParsePeriod(s string) (Period, bool) {
	t, ok := validator.IsValidMonth(s)
	if !ok {
		return Period{}, false
	}
	return PeriodOf(t), true
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

func (p Period) Next() Period {
	return PeriodOf(p.Start().AddDate(0, 1, 0))
}

func validatePeriod(field, value string, errs *validator.ValidationErrors) Period {
	p, ok := ParsePeriod(value)
	if !ok {
		*errs = append(*errs, validator.ValidationError{
			Field:   field,
			Message: field + " must be in YYYY-MM format",
		})
	}
	return p
}

func validateListOptions(status, sortKey string, errs *validator.ValidationErrors) {
	if status != "" && status != "all" && !attendance.Status(status).IsValid() {
		*errs = append(*errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, half_day, absent, paid_leave, late, unselected, all",
		})
	}
	if sortKey != "" && !SortKey(sortKey).IsValid() {
		*errs = append(*errs, validator.ValidationError{
			Field:   "sort",
			Message: "sort must be one of name, department, date, hours",
		})
	}
}

// ========================================
// ATTENDANCE REVIEW
// ========================================

type ReviewRequest struct {
	Month      string
	Search     string
	Department string
	Status     string
	Sort       string
	Mode       string

	Period Period `json:"-"`
}

func (r *ReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Period = validatePeriod("month", r.Month, &errs)
	validateListOptions(r.Status, r.Sort, &errs)
	if r.Mode != "" && r.Mode != "sequential" && r.Mode != "sort_then_pair" {
		errs = append(errs, validator.ValidationError{
			Field:   "mode",
			Message: "mode must be sequential or sort_then_pair",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *ReviewRequest) Filter() Filter {
	return Filter{Search: r.Search, Department: r.Department, Status: r.Status}
}

// SortKey defaults to worker name.
func (r *ReviewRequest) SortKey() SortKey {
	if r.Sort == "" {
		return SortByName
	}
	return SortKey(r.Sort)
}

type RecordResponse struct {
	Key          string                  `json:"key"`
	EmployeeID   string                  `json:"employee_id"`
	EmployeeCode string                  `json:"employee_code"`
	EmployeeName string                  `json:"employee_name"`
	Department   string                  `json:"department"`
	Date         string                  `json:"date"`
	CheckIn      string                  `json:"check_in,omitempty"`
	CheckOut     string                  `json:"check_out,omitempty"`
	Entries      []attendance.PunchEntry `json:"entries"`
	Hours        float64                 `json:"hours"`
	Status       attendance.Status       `json:"status"`
	Overridden   bool                    `json:"overridden"`
	Notes        string                  `json:"notes,omitempty"`
	Warnings     []string                `json:"warnings,omitempty"`
	Error        string                  `json:"error,omitempty"`
}

func NewRecordResponse(row Row) RecordResponse {
	resp := RecordResponse{
		Key:          row.Record.Key(),
		EmployeeID:   row.Record.EmployeeID,
		EmployeeCode: row.Employee.Code,
		EmployeeName: row.Employee.Name,
		Department:   row.Employee.Department,
		Date:         row.Record.Date.Format(attendance.DateLayout),
		CheckIn:      row.Record.FirstPunch(attendance.PunchIn),
		CheckOut:     row.Record.FirstPunch(attendance.PunchOut),
		Entries:      row.Record.Entries,
		Hours:        row.HoursValue(),
		Status:       row.Status,
		Overridden:   row.Overridden(),
		Notes:        row.Record.Notes,
		Warnings:     row.Warnings(),
	}
	if resp.Entries == nil {
		resp.Entries = []attendance.PunchEntry{}
	}
	if row.Err != nil {
		resp.Error = row.Err.Error()
	}
	return resp
}

func NewRecordResponses(rows []Row) []RecordResponse {
	out := make([]RecordResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewRecordResponse(row))
	}
	return out
}

type StatusCounts map[attendance.Status]int

func CountStatuses(rows []Row) StatusCounts {
	r := NewReporter(rows)
	counts := make(StatusCounts)
	for _, s := range []attendance.Status{
		attendance.StatusPresent,
		attendance.StatusHalfDay,
		attendance.StatusAbsent,
		attendance.StatusPaidLeave,
		attendance.StatusLate,
		attendance.StatusUnselected,
	} {
		counts[s] = r.CountByStatus(s)
	}
	return counts
}

type ReviewResponse struct {
	Month       string           `json:"month"`
	Records     []RecordResponse `json:"records"`
	Departments []string         `json:"departments"`
	Counts      StatusCounts     `json:"counts"`
	TotalHours  float64          `json:"total_hours"`
	Total       int              `json:"total"`
	Warnings    []string         `json:"warnings,omitempty"`
}

// ========================================
// ATTENDANCE HISTORY
// ========================================

type HistoryRequest struct {
	From       string
	To         string
	EmployeeID string
	Department string
	Status     string
	Search     string
	Sort       string

	FromDate time.Time `json:"-"`
	ToDate   time.Time `json:"-"`
}

const maxHistoryDays = 366

func (r *HistoryRequest) Validate() error {
	var errs validator.ValidationErrors

	from, okFrom := validator.IsValidDate(r.From)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}
	to, okTo := validator.IsValidDate(r.To)
	if !okTo {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}
	if okFrom && okTo {
		if to.Before(from) {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must not be before from",
			})
		} else if to.Sub(from) > maxHistoryDays*24*time.Hour {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "date range must not exceed one year",
			})
		}
	}
	validateListOptions(r.Status, r.Sort, &errs)

	if len(errs) > 0 {
		return errs
	}
	r.FromDate = from
	r.ToDate = to
	return nil
}

// Periods lists the months touched by the range.
func (r *HistoryRequest) Periods() []Period {
	var periods []Period
	last := PeriodOf(r.ToDate)
	for p := PeriodOf(r.FromDate); ; p = p.Next() {
		periods = append(periods, p)
		if p == last {
			break
		}
	}
	return periods
}

func (r *HistoryRequest) Filter() Filter {
	from, to := r.FromDate, r.ToDate
	return Filter{
		Search:     r.Search,
		Department: r.Department,
		Status:     r.Status,
		EmployeeID: r.EmployeeID,
		From:       &from,
		To:         &to,
	}
}

type HistoryResponse struct {
	From     string           `json:"from"`
	To       string           `json:"to"`
	Records  []RecordResponse `json:"records"`
	Counts   StatusCounts     `json:"counts"`
	Total    int              `json:"total"`
	Warnings []string         `json:"warnings,omitempty"`
}

// ========================================
// MONTHLY REPORT
// ========================================

type MonthlyReportRequest struct {
	Month      string
	Search     string
	Department string

	Period Period `json:"-"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Period = validatePeriod("month", r.Month, &errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthlyReportResponse struct {
	Month       string           `json:"month"`
	Summaries   []MonthlySummary `json:"summaries"`
	Departments []string         `json:"departments"`
	Warnings    []string         `json:"warnings,omitempty"`
}

// ========================================
// DAILY REPORT
// ========================================

type DailyReportRequest struct {
	Date       string
	Department string

	Day time.Time `json:"-"`
}

func (r *DailyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	day, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	r.Day = day
	return nil
}

type DailyReportResponse struct {
	Date          string           `json:"date"`
	Records       []RecordResponse `json:"records"`
	Counts        StatusCounts     `json:"counts"`
	TotalHours    float64          `json:"total_hours"`
	OvertimeHours float64          `json:"overtime_hours"`
	Warnings      []string         `json:"warnings,omitempty"`
}

// ========================================
// EMPLOYEE REPORT
// ========================================

type EmployeeReportRequest struct {
	EmployeeID string
	Month      string

	Period Period `json:"-"`
}

func (r *EmployeeReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	r.Period = validatePeriod("month", r.Month, &errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeReportResponse struct {
	Month    string           `json:"month"`
	Summary  MonthlySummary   `json:"summary"`
	Records  []RecordResponse `json:"records"`
	Warnings []string         `json:"warnings,omitempty"`
}
