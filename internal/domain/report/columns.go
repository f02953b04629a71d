package report

import (
	"strconv"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
)

func hoursCell(r Row) string {
	if r.Err != nil {
		return "n/a"
	}
	return formatHours(r.Hours.Hours)
}

func dateCell(r Row) string {
	return r.Record.Date.Format(attendance.DateLayout)
}

func checkInCell(r Row) string {
	return r.Record.FirstPunch(attendance.PunchIn)
}

func checkOutCell(r Row) string {
	return r.Record.FirstPunch(attendance.PunchOut)
}

func statusCell(r Row) string {
	return r.Status.Label()
}

// reviewStatusCell writes the stored override value as is, or Unselected
// when the record has none.
func reviewStatusCell(r Row) string {
	if !r.Overridden() {
		return "Unselected"
	}
	return string(*r.Record.ManualStatus)
}

// ReviewColumns is the attendance review export layout.
func ReviewColumns() []Column {
	return []Column{
		{Header: "Worker", Value: func(r Row) string { return r.Employee.Name }},
		{Header: "Department", Value: func(r Row) string { return r.Employee.Department }},
		{Header: "Date", Value: dateCell},
		{Header: "Check In", Value: checkInCell},
		{Header: "Check Out", Value: checkOutCell},
		{Header: "Total Hours", Value: func(r Row) string {
			if r.Err != nil {
				return hoursCell(r)
			}
			return hoursCell(r) + "h"
		}},
		{Header: "Status", Value: reviewStatusCell},
		{Header: "Notes", Value: func(r Row) string { return r.Record.Notes }},
	}
}

// DailyColumns is the per-day report layout.
func DailyColumns(expectedDailyHours float64) []Column {
	return []Column{
		{Header: "Worker Name", Value: func(r Row) string { return r.Employee.Name }},
		{Header: "Department", Value: func(r Row) string { return r.Employee.Department }},
		{Header: "Check In", Value: checkInCell},
		{Header: "Check Out", Value: checkOutCell},
		{Header: "Total Hours", Value: hoursCell},
		{Header: "Status", Value: statusCell},
		{Header: "Overtime", Value: func(r Row) string { return formatHours(r.OvertimeHours(expectedDailyHours)) }},
	}
}

// EmployeeColumns is the single employee monthly log layout.
func EmployeeColumns(expectedDailyHours float64) []Column {
	return []Column{
		{Header: "Date", Value: dateCell},
		{Header: "Check In", Value: checkInCell},
		{Header: "Check Out", Value: checkOutCell},
		{Header: "Hours", Value: hoursCell},
		{Header: "Status", Value: statusCell},
		{Header: "Overtime", Value: func(r Row) string { return formatHours(r.OvertimeHours(expectedDailyHours)) }},
	}
}

var monthlyHeader = []string{
	"Worker Name",
	"Department",
	"Total Days",
	"Present Days",
	"Absent Days",
	"Half Days",
	"Total Hours",
	"Overtime",
	"Attendance Rate",
}

// MonthlyTable renders employee summaries in the monthly report layout.
func MonthlyTable(name string, summaries []MonthlySummary) Table {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.EmployeeName,
			s.Department,
			strconv.Itoa(s.TotalDays),
			strconv.Itoa(s.PresentDays),
			strconv.Itoa(s.AbsentDays),
			strconv.Itoa(s.HalfDays),
			formatHours(s.TotalHours),
			formatHours(s.OvertimeHours),
			formatHours(s.AttendanceRate) + "%",
		})
	}
	return Table{Name: name, Header: monthlyHeader, Rows: rows}
}
