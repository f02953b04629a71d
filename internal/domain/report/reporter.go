package report

import (
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
)

// MonthlySummary is derived per employee on demand and never stored.
type MonthlySummary struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeCode   string  `json:"employee_code"`
	EmployeeName   string  `json:"employee_name"`
	Department     string  `json:"department"`
	TotalDays      int     `json:"total_days"`
	PresentDays    int     `json:"present_days"`
	AbsentDays     int     `json:"absent_days"`
	HalfDays       int     `json:"half_days"`
	LateDays       int     `json:"late_days"`
	PaidLeaveDays  int     `json:"paid_leave_days"`
	UnselectedDays int     `json:"unselected_days"`
	TotalHours     float64 `json:"total_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// Reporter aggregates a set of rows, typically one employee's month.
type Reporter struct {
	rows []Row
}

func NewReporter(rows []Row) Reporter {
	return Reporter{rows: rows}
}

func (r Reporter) Rows() []Row {
	return r.rows
}

func (r Reporter) TotalDays() int {
	return len(r.rows)
}

func (r Reporter) CountByStatus(status attendance.Status) int {
	count := 0
	for _, row := range r.rows {
		if row.Status == status {
			count++
		}
	}
	return count
}

func (r Reporter) SumHours() float64 {
	total := 0.0
	for _, row := range r.rows {
		total += row.HoursValue()
	}
	return attendance.RoundHalfUp(total, 1)
}

// Overtime sums the hours above expectedDailyHours of each record.
func (r Reporter) Overtime(expectedDailyHours float64) float64 {
	total := 0.0
	for _, row := range r.rows {
		total += row.OvertimeHours(expectedDailyHours)
	}
	return attendance.RoundHalfUp(total, 1)
}

// AttendanceRate is present days over total days as a percentage with one
// decimal. An empty set yields 0.
func (r Reporter) AttendanceRate() float64 {
	if len(r.rows) == 0 {
		return 0
	}
	present := r.CountByStatus(attendance.StatusPresent)
	return attendance.RoundHalfUp(float64(present)/float64(len(r.rows))*100, 1)
}

// Summary rolls the rows up for one employee.
func (r Reporter) Summary(expectedDailyHours float64) MonthlySummary {
	s := MonthlySummary{
		TotalDays:      r.TotalDays(),
		PresentDays:    r.CountByStatus(attendance.StatusPresent),
		AbsentDays:     r.CountByStatus(attendance.StatusAbsent),
		HalfDays:       r.CountByStatus(attendance.StatusHalfDay),
		LateDays:       r.CountByStatus(attendance.StatusLate),
		PaidLeaveDays:  r.CountByStatus(attendance.StatusPaidLeave),
		UnselectedDays: r.CountByStatus(attendance.StatusUnselected),
		TotalHours:     r.SumHours(),
		OvertimeHours:  r.Overtime(expectedDailyHours),
		AttendanceRate: r.AttendanceRate(),
	}
	if len(r.rows) > 0 {
		emp := r.rows[0].Employee
		s.EmployeeID = r.rows[0].Record.EmployeeID
		s.EmployeeCode = emp.Code
		s.EmployeeName = emp.Name
		s.Department = emp.Department
	}
	return s
}

// ToCSVRows renders every row through the given column selectors.
func (r Reporter) ToCSVRows(columns []Column) [][]string {
	out := make([][]string, 0, len(r.rows))
	for _, row := range r.rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = col.Value(row)
		}
		out = append(out, cells)
	}
	return out
}

// GroupByEmployee splits rows per employee, keeping first-seen order.
func GroupByEmployee(rows []Row) (order []string, groups map[string][]Row) {
	groups = make(map[string][]Row)
	for _, row := range rows {
		id := row.Record.EmployeeID
		if _, ok := groups[id]; !ok {
			order = append(order, id)
		}
		groups[id] = append(groups[id], row)
	}
	return order, groups
}
