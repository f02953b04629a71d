package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	employees []employee.Employee
	err       error
}

func (f *fakeDirectory) List(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, f.err
}

type fakeRecords struct {
	byMonth map[string][]attendance.AttendanceRecord
	err     error
}

func (f *fakeRecords) ListByMonth(ctx context.Context, year int, month time.Month) ([]attendance.AttendanceRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byMonth[report.Period{Year: year, Month: month}.String()], nil
}

type fakeOverrides struct {
	list []attendance.Override
}

func (f *fakeOverrides) ListByMonth(ctx context.Context, year int, month time.Month) ([]attendance.Override, error) {
	var out []attendance.Override
	for _, o := range f.list {
		if o.Date.Year() == year && o.Date.Month() == month {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOverrides) Upsert(ctx context.Context, o attendance.Override) (attendance.Override, error) {
	return o, nil
}

func (f *fakeOverrides) Delete(ctx context.Context, employeeID string, date time.Time) error {
	return nil
}

var (
	march = report.Period{Year: 2024, Month: time.March}

	meera = employee.Employee{ID: "E1", Code: "EMP001", Name: "Meera Iyer", Department: "Assembly"}
	arjun = employee.Employee{ID: "E2", Code: "EMP002", Name: "Arjun Das", Department: "Packing"}
)

func date(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func shift(in, out string) []attendance.PunchEntry {
	return []attendance.PunchEntry{{Time: in, Type: attendance.PunchIn}, {Time: out, Type: attendance.PunchOut}}
}

func statusPtr(s attendance.Status) *attendance.Status { return &s }

func newTestService(dir *fakeDirectory, recs *fakeRecords) *ReportServiceImpl {
	overrides := &fakeOverrides{list: []attendance.Override{
		{EmployeeID: "E1", Date: date(4), Status: statusPtr(attendance.StatusPresent)},
		{EmployeeID: "E1", Date: date(5), Status: statusPtr(attendance.StatusAbsent)},
		{EmployeeID: "E2", Date: date(4), Status: statusPtr(attendance.StatusHalfDay)},
	}}
	return NewReportService(dir, recs, overrides, Settings{ExpectedDailyHours: 8}).(*ReportServiceImpl)
}

func sampleRecords() *fakeRecords {
	return &fakeRecords{byMonth: map[string][]attendance.AttendanceRecord{
		"2024-03": {
			{EmployeeID: "E1", Date: date(4), Entries: shift("08:00", "17:00")},
			{EmployeeID: "E1", Date: date(5)},
			{EmployeeID: "E2", Date: date(4), Entries: shift("08:00", "12:00")},
			{EmployeeID: "E2", Date: date(5), Entries: shift("08:00", "19:00")},
		},
	}}
}

func TestReportService_Review_Success(t *testing.T) {
	// Setup
	svc := newTestService(&fakeDirectory{employees: []employee.Employee{meera, arjun}}, sampleRecords())

	// Act
	resp, err := svc.Review(context.Background(), report.ReviewRequest{Period: march, Sort: "hours"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "2024-03", resp.Month)
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, []string{"Assembly", "Packing"}, resp.Departments)
	assert.Empty(t, resp.Warnings)
	assert.Equal(t, 11.0, resp.Records[0].Hours)
	assert.Equal(t, "Arjun Das", resp.Records[0].EmployeeName)
	assert.Equal(t, 1, resp.Counts[attendance.StatusUnselected])
	assert.Equal(t, 24.0, resp.TotalHours)
}

func TestReportService_Review_DefaultSortByName(t *testing.T) {
	// Setup
	svc := newTestService(&fakeDirectory{employees: []employee.Employee{meera, arjun}}, sampleRecords())

	// Act
	resp, err := svc.Review(context.Background(), report.ReviewRequest{Period: march})

	// Assert
	require.NoError(t, err)
	require.Len(t, resp.Records, 4)
	names := []string{}
	for _, r := range resp.Records {
		names = append(names, r.EmployeeName)
	}
	assert.Equal(t, []string{"Arjun Das", "Arjun Das", "Meera Iyer", "Meera Iyer"}, names)
	assert.Equal(t, "2024-03-04", resp.Records[0].Date)
}

func TestReportService_Review_DirectoryUnavailableDegrades(t *testing.T) {
	dir := &fakeDirectory{err: &upstream.FetchError{Resource: upstream.ResourceEmployees, StatusCode: 503, Err: errors.New("unavailable")}}
	svc := newTestService(dir, sampleRecords())

	resp, err := svc.Review(context.Background(), report.ReviewRequest{Period: march})

	require.NoError(t, err)
	assert.Equal(t, 4, resp.Total)
	assert.Len(t, resp.Warnings, 1)
	assert.Equal(t, "E1", resp.Records[0].EmployeeName)
	assert.Empty(t, resp.Departments)
}

func TestReportService_Review_RecordsUnavailableDegrades(t *testing.T) {
	recs := &fakeRecords{err: &upstream.FetchError{Resource: upstream.ResourceAttendance, Err: errors.New("connection refused")}}
	svc := newTestService(&fakeDirectory{employees: []employee.Employee{meera}}, recs)

	resp, err := svc.Review(context.Background(), report.ReviewRequest{Period: march})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
	assert.NotNil(t, resp.Records)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "2024-03")
}

func TestReportService_Review_DatabaseErrorFails(t *testing.T) {
	recs := &fakeRecords{err: errors.New("connection reset")}
	svc := newTestService(&fakeDirectory{}, recs)

	_, err := svc.Review(context.Background(), report.ReviewRequest{Period: march})

	assert.Error(t, err)
}

func TestReportService_Monthly_SummariesOrderedByName(t *testing.T) {
	svc := newTestService(&fakeDirectory{employees: []employee.Employee{meera, arjun}}, sampleRecords())

	resp, err := svc.Monthly(context.Background(), report.MonthlyReportRequest{Period: march})

	require.NoError(t, err)
	require.Len(t, resp.Summaries, 2)
	assert.Equal(t, "Arjun Das", resp.Summaries[0].EmployeeName)
	assert.Equal(t, 1, resp.Summaries[0].HalfDays)
	assert.Equal(t, 15.0, resp.Summaries[0].TotalHours)
	assert.Equal(t, 3.0, resp.Summaries[0].OvertimeHours)

	assert.Equal(t, "Meera Iyer", resp.Summaries[1].EmployeeName)
	assert.Equal(t, 1, resp.Summaries[1].PresentDays)
	assert.Equal(t, 1, resp.Summaries[1].AbsentDays)
	assert.Equal(t, 50.0, resp.Summaries[1].AttendanceRate)
}

func TestReportService_Daily_FiltersDay(t *testing.T) {
	svc := newTestService(&fakeDirectory{employees: []employee.Employee{meera, arjun}}, sampleRecords())

	resp, err := svc.Daily(context.Background(), report.DailyReportRequest{Day: date(5), Department: "Packing"})

	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", resp.Date)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "E2", resp.Records[0].EmployeeID)
	assert.Equal(t, 3.0, resp.OvertimeHours)
}

func TestReportService_EmployeeReport(t *testing.T) {
	svc := newTestService(&fakeDirectory{employees: []employee.Employee{meera, arjun}}, sampleRecords())

	resp, err := svc.EmployeeReport(context.Background(), report.EmployeeReportRequest{EmployeeID: "EMP001", Period: march})
	require.NoError(t, err)
	assert.Len(t, resp.Records, 2)
	assert.Equal(t, "2024-03-04", resp.Records[0].Date)
	assert.Equal(t, 2, resp.Summary.TotalDays)

	_, err = svc.EmployeeReport(context.Background(), report.EmployeeReportRequest{EmployeeID: "E404", Period: march})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestReportService_Exports(t *testing.T) {
	svc := newTestService(&fakeDirectory{employees: []employee.Employee{meera, arjun}}, sampleRecords())
	ctx := context.Background()

	review, err := svc.ExportReview(ctx, report.ReviewRequest{Period: march})
	require.NoError(t, err)
	assert.Equal(t, "attendance_review_2024-03.csv", review.Filename("csv"))
	assert.Len(t, review.Table.Rows, 4)

	monthly, err := svc.ExportMonthly(ctx, report.MonthlyReportRequest{Period: march})
	require.NoError(t, err)
	assert.Equal(t, "monthly_report_2024-03.xlsx", monthly.Filename("xlsx"))
	assert.Len(t, monthly.Table.Rows, 2)

	daily, err := svc.ExportDaily(ctx, report.DailyReportRequest{Day: date(4)})
	require.NoError(t, err)
	assert.Equal(t, "daily_report_2024-03-04.csv", daily.Filename("csv"))
	assert.Len(t, daily.Table.Rows, 2)

	emp, err := svc.ExportEmployee(ctx, report.EmployeeReportRequest{EmployeeID: "E2", Period: march})
	require.NoError(t, err)
	assert.Equal(t, "employee_report_EMP002_2024-03.csv", emp.Filename("csv"))
}

func TestReportService_History_SpansMonths(t *testing.T) {
	recs := sampleRecords()
	recs.byMonth["2024-04"] = []attendance.AttendanceRecord{
		{EmployeeID: "E1", Date: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), Entries: shift("08:00", "16:00")},
	}
	svc := newTestService(&fakeDirectory{employees: []employee.Employee{meera, arjun}}, recs)

	req := report.HistoryRequest{From: "2024-03-05", To: "2024-04-30", EmployeeID: "E1"}
	require.NoError(t, req.Validate())

	resp, err := svc.History(context.Background(), req)

	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "2024-03-05", resp.Records[0].Date)
	assert.Equal(t, "2024-04-01", resp.Records[1].Date)
}
