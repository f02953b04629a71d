package dashboard

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func todayRow(employeeID string, status attendance.Status, entries ...attendance.PunchEntry) report.Row {
	return report.Row{
		Record: attendance.AttendanceRecord{
			EmployeeID: employeeID,
			Date:       time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC),
			Entries:    entries,
		},
		Status: status,
	}
}

func TestBuildToday_MarksLoggedIn(t *testing.T) {
	// Setup
	employees := []employee.Employee{
		{ID: "e1", Code: "EMP001", Name: "Asha", Department: "Assembly"},
		{ID: "e2", Code: "EMP002", Name: "Ravi", Department: "Packing"},
		{ID: "e3", Code: "EMP003", Name: "Sunil", Department: "Assembly"},
	}
	rows := []report.Row{
		todayRow("e1", attendance.StatusPresent,
			attendance.PunchEntry{Time: "08:05", Type: attendance.PunchIn},
			attendance.PunchEntry{Time: "17:00", Type: attendance.PunchOut}),
		todayRow("EMP003", attendance.StatusLate,
			attendance.PunchEntry{Time: "09:40", Type: attendance.PunchIn}),
		todayRow("e2", attendance.StatusAbsent),
	}

	// Act
	today := BuildToday(employees, rows)
	stats := CountAttendance(today, rows)

	// Assert
	require.Len(t, today, 3)
	assert.True(t, today[0].LoggedIn)
	assert.Equal(t, "08:05", today[0].CheckIn)
	assert.False(t, today[1].LoggedIn)
	assert.True(t, today[2].LoggedIn, "matched by employee code")

	assert.Equal(t, 3, stats.TotalEmployees)
	assert.Equal(t, 2, stats.PresentToday)
	assert.Equal(t, 1, stats.AbsentToday)
	assert.Equal(t, 2, stats.LoggedIn)
	assert.Equal(t, 1, stats.NotLoggedIn)
	assert.Equal(t, 66.7, stats.PresentPercent)
}

func TestCountAttendance_Empty(t *testing.T) {
	stats := CountAttendance(nil, nil)
	assert.Equal(t, AttendanceStats{}, stats)
}

func TestCountSalaries(t *testing.T) {
	got := CountSalaries("2024-01", map[payroll.SalaryStatus]int{
		payroll.SalaryStatusPending:  3,
		payroll.SalaryStatusApproved: 4,
		payroll.SalaryStatusRejected: 1,
	})
	assert.Equal(t, SalaryStats{Month: "2024-01", Pending: 3, Processed: 5}, got)
}

func TestTodayTable_Labels(t *testing.T) {
	table := TodayTable([]TodayAttendance{
		{EmployeeName: "Asha", EmployeeCode: "EMP001", Department: "Assembly", CheckIn: "08:05", LoggedIn: true},
		{EmployeeName: "Ravi", EmployeeCode: "EMP002", Department: "Packing"},
	})

	assert.Equal(t, []string{"Employee Name", "Employee Code", "Department", "Check In Time", "Status"}, table.Header)
	assert.Equal(t, "Logged In", table.Rows[0][4])
	assert.Equal(t, "Not Logged In", table.Rows[1][4])
	assert.Equal(t, "", table.Rows[1][3])
}
