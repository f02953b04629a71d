package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/upstream"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	employees []employee.Employee
	err       error
}

func (f fakeDirectory) List(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, f.err
}

type fakeRecords struct {
	records []attendance.AttendanceRecord
}

func (f fakeRecords) ListByMonth(ctx context.Context, year int, month time.Month) ([]attendance.AttendanceRecord, error) {
	return f.records, nil
}

type fakeOverrides struct {
	list []attendance.Override
}

func (f fakeOverrides) ListByMonth(ctx context.Context, year int, month time.Month) ([]attendance.Override, error) {
	return f.list, nil
}

func (f fakeOverrides) Upsert(ctx context.Context, o attendance.Override) (attendance.Override, error) {
	return o, nil
}

func (f fakeOverrides) Delete(ctx context.Context, employeeID string, date time.Time) error {
	return nil
}

type fakeSalaryCounts struct {
	payroll.SalaryRepository
	counts map[payroll.SalaryStatus]int
	err    error
}

func (f fakeSalaryCounts) CountByStatus(ctx context.Context, year, month int) (map[payroll.SalaryStatus]int, error) {
	return f.counts, f.err
}

var today = time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)

func statusPtr(s attendance.Status) *attendance.Status { return &s }

func fixtures() (fakeDirectory, fakeRecords, fakeOverrides) {
	dir := fakeDirectory{employees: []employee.Employee{
		{ID: "e1", Code: "EMP001", Name: "Zoya", Department: "Assembly", MonthlySalary: decimal.NewFromInt(1)},
		{ID: "e2", Code: "EMP002", Name: "Anil", Department: "Packing"},
		{ID: "e3", Code: "EMP003", Name: "Bala", Department: "Packing"},
		{ID: "e4", Code: "EMP004", Name: "Old", Status: employee.EmploymentStatusInactive},
	}}
	recs := fakeRecords{records: []attendance.AttendanceRecord{
		{EmployeeID: "e1", Date: today, Entries: []attendance.PunchEntry{{Time: "08:05", Type: attendance.PunchIn}}},
		{EmployeeID: "EMP002", Date: today, Entries: []attendance.PunchEntry{{Time: "07:55", Type: attendance.PunchIn}}},
		{EmployeeID: "e3", Date: today.AddDate(0, 0, -1), Entries: []attendance.PunchEntry{{Time: "08:00", Type: attendance.PunchIn}}},
	}}
	ovs := fakeOverrides{list: []attendance.Override{
		{EmployeeID: "e1", Date: today, Status: statusPtr(attendance.StatusLate)},
		{EmployeeID: "EMP002", Date: today, Status: statusPtr(attendance.StatusPresent)},
		{EmployeeID: "e3", Date: today.AddDate(0, 0, -1), Status: statusPtr(attendance.StatusAbsent)},
	}}
	return dir, recs, ovs
}

func TestDashboardService_GetDashboard_Success(t *testing.T) {
	// Setup
	dir, recs, ovs := fixtures()
	salaries := fakeSalaryCounts{counts: map[payroll.SalaryStatus]int{
		payroll.SalaryStatusPending:  4,
		payroll.SalaryStatusApproved: 2,
		payroll.SalaryStatusRejected: 1,
	}}
	svc := NewDashboardService(dir, recs, ovs, salaries, attendance.PairSequential)

	// Act
	resp, err := svc.GetDashboard(context.Background(), today)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "2024-03-06", resp.Date)
	assert.Equal(t, 3, resp.Attendance.TotalEmployees)
	assert.Equal(t, 2, resp.Attendance.PresentToday)
	assert.Equal(t, 0, resp.Attendance.AbsentToday)
	assert.Equal(t, 2, resp.Attendance.LoggedIn)
	assert.Equal(t, 1, resp.Attendance.NotLoggedIn)
	assert.Equal(t, 66.7, resp.Attendance.PresentPercent)

	assert.Equal(t, "2024-03", resp.Salaries.Month)
	assert.Equal(t, 4, resp.Salaries.Pending)
	assert.Equal(t, 3, resp.Salaries.Processed)

	require.Len(t, resp.Today, 3)
	assert.Equal(t, "Anil", resp.Today[0].EmployeeName)
	assert.Equal(t, "07:55", resp.Today[0].CheckIn)
	assert.False(t, resp.Today[1].LoggedIn)
	assert.Empty(t, resp.Warnings)
}

func TestDashboardService_GetDashboard_DirectoryDown(t *testing.T) {
	_, recs, ovs := fixtures()
	dir := fakeDirectory{err: &upstream.FetchError{Resource: upstream.ResourceEmployees, Err: errors.New("timeout")}}
	svc := NewDashboardService(dir, recs, ovs, fakeSalaryCounts{}, attendance.PairSequential)

	resp, err := svc.GetDashboard(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Attendance.TotalEmployees)
	assert.Equal(t, []string{"Employee directory is unavailable"}, resp.Warnings)
}

func TestDashboardService_GetDashboard_SalaryCountError(t *testing.T) {
	dir, recs, ovs := fixtures()
	svc := NewDashboardService(dir, recs, ovs, fakeSalaryCounts{err: errors.New("db down")}, attendance.PairSequential)

	_, err := svc.GetDashboard(context.Background(), today)

	assert.Error(t, err)
}

func TestDashboardService_ExportToday(t *testing.T) {
	dir, recs, ovs := fixtures()
	svc := NewDashboardService(dir, recs, ovs, fakeSalaryCounts{}, attendance.PairSequential)

	export, err := svc.ExportToday(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, "today_attendance_2024-03-06.csv", export.Filename("csv"))
	require.Len(t, export.Table.Rows, 3)
	assert.Equal(t, []string{"Bala", "EMP003", "Packing", "", "Not Logged In"}, export.Table.Rows[1])
}

func TestDashboardService_UsesConfiguredPairingMode(t *testing.T) {
	// Setup
	dir, _, _ := fixtures()
	recs := fakeRecords{records: []attendance.AttendanceRecord{{
		EmployeeID: "e1",
		Date:       today,
		Entries: []attendance.PunchEntry{
			{Time: "12:00", Type: attendance.PunchOut},
			{Time: "08:00", Type: attendance.PunchIn},
			{Time: "17:00", Type: attendance.PunchOut},
			{Time: "13:00", Type: attendance.PunchIn},
		},
	}}}
	sequential := NewDashboardService(dir, recs, fakeOverrides{}, fakeSalaryCounts{}, attendance.PairSequential).(*DashboardServiceImpl)
	sorted := NewDashboardService(dir, recs, fakeOverrides{}, fakeSalaryCounts{}, attendance.PairSortThenPair).(*DashboardServiceImpl)

	// Act
	seqData, err := sequential.load(context.Background(), today)
	require.NoError(t, err)
	sortedData, err := sorted.load(context.Background(), today)
	require.NoError(t, err)

	// Assert
	require.Len(t, seqData.rows, 1)
	require.Len(t, sortedData.rows, 1)
	assert.Equal(t, 9.0, seqData.rows[0].Hours.Hours)
	assert.Equal(t, 8.0, sortedData.rows[0].Hours.Hours)
}
