package dashboard

import (
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/report"
)

// BuildToday lists every employee once in directory order, marking those
// with a check-in on the day's records.
func BuildToday(employees []employee.Employee, rows []report.Row) []TodayAttendance {
	checkIns := make(map[string]string, len(rows))
	for _, row := range rows {
		if in := row.Record.FirstPunch(attendance.PunchIn); in != "" {
			if _, seen := checkIns[row.Record.EmployeeID]; !seen {
				checkIns[row.Record.EmployeeID] = in
			}
		}
	}

	out := make([]TodayAttendance, 0, len(employees))
	for _, e := range employees {
		in, ok := checkIns[e.ID]
		if !ok {
			in, ok = checkIns[e.Code]
		}
		out = append(out, TodayAttendance{
			EmployeeID:   e.ID,
			EmployeeCode: e.Code,
			EmployeeName: e.Name,
			Department:   e.Department,
			CheckIn:      in,
			LoggedIn:     ok,
		})
	}
	return out
}

// CountAttendance rolls the day's rows and the login list into counters.
func CountAttendance(today []TodayAttendance, rows []report.Row) AttendanceStats {
	r := report.NewReporter(rows)
	stats := AttendanceStats{
		TotalEmployees: len(today),
		PresentToday:   r.CountByStatus(attendance.StatusPresent) + r.CountByStatus(attendance.StatusLate),
		AbsentToday:    r.CountByStatus(attendance.StatusAbsent),
	}
	for _, t := range today {
		if t.LoggedIn {
			stats.LoggedIn++
		}
	}
	stats.NotLoggedIn = stats.TotalEmployees - stats.LoggedIn
	if stats.TotalEmployees > 0 {
		stats.PresentPercent = attendance.RoundHalfUp(float64(stats.PresentToday)/float64(stats.TotalEmployees)*100, 1)
	}
	return stats
}

func CountSalaries(month string, counts map[payroll.SalaryStatus]int) SalaryStats {
	return SalaryStats{
		Month:     month,
		Pending:   counts[payroll.SalaryStatusPending],
		Processed: counts[payroll.SalaryStatusApproved] + counts[payroll.SalaryStatusRejected],
	}
}

var todayHeader = []string{"Employee Name", "Employee Code", "Department", "Check In Time", "Status"}

func TodayTable(today []TodayAttendance) report.Table {
	rows := make([][]string, 0, len(today))
	for _, t := range today {
		rows = append(rows, []string{t.EmployeeName, t.EmployeeCode, t.Department, t.CheckIn, t.LoginLabel()})
	}
	return report.Table{Name: "Today", Header: todayHeader, Rows: rows}
}
