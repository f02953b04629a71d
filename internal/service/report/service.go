package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/upstream"
	"golang.org/x/sync/errgroup"
)

// Settings tunes the attendance calculations shared by every report.
type Settings struct {
	ExpectedDailyHours float64
	PairingMode        attendance.PairingMode
}

type ReportServiceImpl struct {
	directory employee.DirectorySource
	records   attendance.RecordSource
	overrides attendance.OverrideRepository
	settings  Settings
}

func NewReportService(
	directory employee.DirectorySource,
	records attendance.RecordSource,
	overrides attendance.OverrideRepository,
	settings Settings,
) report.ReportService {
	if settings.ExpectedDailyHours <= 0 {
		settings.ExpectedDailyHours = 8
	}
	return &ReportServiceImpl{
		directory: directory,
		records:   records,
		overrides: overrides,
		settings:  settings,
	}
}

// dataset is the merged pipeline output for one or more months.
type dataset struct {
	rows      []report.Row
	employees []employee.Employee
	warnings  []string
}

// load fetches the directory and every requested month concurrently.
// Upstream failures leave the collection empty and add a warning; any
// other failure aborts the load.
func (s *ReportServiceImpl) load(ctx context.Context, periods []report.Period, mode attendance.PairingMode) (dataset, error) {
	var (
		employees []employee.Employee
		records   = make([][]attendance.AttendanceRecord, len(periods))
		overrides = make([][]attendance.Override, len(periods))
		warnings  = make([]string, len(periods)+1)
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := s.directory.List(gCtx)
		if err != nil {
			if !isFetchError(err) {
				return fmt.Errorf("failed to list employees: %w", err)
			}
			slog.Warn("employee directory unavailable", "error", err)
			warnings[0] = "Employee directory is unavailable; employees are shown by ID"
			return nil
		}
		employees = list
		return nil
	})

	for i, p := range periods {
		g.Go(func() error {
			list, err := s.records.ListByMonth(gCtx, p.Year, p.Month)
			if err != nil {
				if !isFetchError(err) {
					return fmt.Errorf("failed to list attendance records for %s: %w", p, err)
				}
				slog.Warn("attendance records unavailable", "month", p.String(), "error", err)
				warnings[i+1] = fmt.Sprintf("Attendance records for %s are unavailable", p)
				return nil
			}
			records[i] = list
			return nil
		})

		g.Go(func() error {
			list, err := s.overrides.ListByMonth(gCtx, p.Year, p.Month)
			if err != nil {
				return fmt.Errorf("failed to list overrides for %s: %w", p, err)
			}
			overrides[i] = list
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return dataset{}, err
	}

	var all []attendance.AttendanceRecord
	var allOverrides []attendance.Override
	for i := range periods {
		all = append(all, records[i]...)
		allOverrides = append(allOverrides, overrides[i]...)
	}

	rows := report.BuildRows(all, employee.NewDirectory(employees), attendance.NewOverrides(allOverrides), mode)
	for _, row := range rows {
		if row.Err != nil {
			metrics.RecordParseErrors.Inc()
		}
	}

	data := dataset{rows: rows, employees: employees}
	for _, w := range warnings {
		if w != "" {
			data.warnings = append(data.warnings, w)
		}
	}
	return data, nil
}

func isFetchError(err error) bool {
	var fetchErr *upstream.FetchError
	return errors.As(err, &fetchErr)
}

func (s *ReportServiceImpl) loadMonth(ctx context.Context, p report.Period) (dataset, error) {
	return s.load(ctx, []report.Period{p}, s.settings.PairingMode)
}

// Review implements report.ReportService.
func (s *ReportServiceImpl) Review(ctx context.Context, req report.ReviewRequest) (report.ReviewResponse, error) {
	mode := s.settings.PairingMode
	if req.Mode != "" {
		mode = attendance.ParsePairingMode(req.Mode)
	}

	data, err := s.load(ctx, []report.Period{req.Period}, mode)
	if err != nil {
		return report.ReviewResponse{}, err
	}

	rows := report.Apply(data.rows, req.Filter(), req.SortKey())
	return report.ReviewResponse{
		Month:       req.Period.String(),
		Records:     report.NewRecordResponses(rows),
		Departments: nonNil(report.Departments(data.rows)),
		Counts:      report.CountStatuses(rows),
		TotalHours:  report.NewReporter(rows).SumHours(),
		Total:       len(rows),
		Warnings:    data.warnings,
	}, nil
}

// History implements report.ReportService.
func (s *ReportServiceImpl) History(ctx context.Context, req report.HistoryRequest) (report.HistoryResponse, error) {
	data, err := s.load(ctx, req.Periods(), s.settings.PairingMode)
	if err != nil {
		return report.HistoryResponse{}, err
	}

	key := report.SortKey(req.Sort)
	if key == "" {
		key = report.SortByDate
	}
	rows := report.Apply(data.rows, req.Filter(), key)

	return report.HistoryResponse{
		From:     req.FromDate.Format(attendance.DateLayout),
		To:       req.ToDate.Format(attendance.DateLayout),
		Records:  report.NewRecordResponses(rows),
		Counts:   report.CountStatuses(rows),
		Total:    len(rows),
		Warnings: data.warnings,
	}, nil
}

// summarize rolls filtered rows up per employee, ordered by name.
func (s *ReportServiceImpl) summarize(rows []report.Row) []report.MonthlySummary {
	sorted := report.Apply(rows, report.Filter{}, report.SortByName)
	order, groups := report.GroupByEmployee(sorted)

	summaries := make([]report.MonthlySummary, 0, len(order))
	for _, id := range order {
		summaries = append(summaries, report.NewReporter(groups[id]).Summary(s.settings.ExpectedDailyHours))
	}
	return summaries
}

// Monthly implements report.ReportService.
func (s *ReportServiceImpl) Monthly(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReportResponse, error) {
	data, err := s.loadMonth(ctx, req.Period)
	if err != nil {
		return report.MonthlyReportResponse{}, err
	}

	rows := report.Apply(data.rows, report.Filter{Search: req.Search, Department: req.Department}, "")
	return report.MonthlyReportResponse{
		Month:       req.Period.String(),
		Summaries:   s.summarize(rows),
		Departments: nonNil(report.Departments(data.rows)),
		Warnings:    data.warnings,
	}, nil
}

func (s *ReportServiceImpl) dailyRows(ctx context.Context, req report.DailyReportRequest) ([]report.Row, dataset, error) {
	data, err := s.loadMonth(ctx, report.PeriodOf(req.Day))
	if err != nil {
		return nil, dataset{}, err
	}
	day := req.Day
	rows := report.Apply(data.rows, report.Filter{
		Department: req.Department,
		From:       &day,
		To:         &day,
	}, report.SortByName)
	return rows, data, nil
}

// Daily implements report.ReportService.
func (s *ReportServiceImpl) Daily(ctx context.Context, req report.DailyReportRequest) (report.DailyReportResponse, error) {
	rows, data, err := s.dailyRows(ctx, req)
	if err != nil {
		return report.DailyReportResponse{}, err
	}

	reporter := report.NewReporter(rows)
	return report.DailyReportResponse{
		Date:          req.Day.Format(attendance.DateLayout),
		Records:       report.NewRecordResponses(rows),
		Counts:        report.CountStatuses(rows),
		TotalHours:    reporter.SumHours(),
		OvertimeHours: reporter.Overtime(s.settings.ExpectedDailyHours),
		Warnings:      data.warnings,
	}, nil
}

// employeeRows returns one employee's month ordered by date together with
// the directory entry for the employee.
func (s *ReportServiceImpl) employeeRows(ctx context.Context, req report.EmployeeReportRequest) ([]report.Row, employee.Employee, dataset, error) {
	data, err := s.loadMonth(ctx, req.Period)
	if err != nil {
		return nil, employee.Employee{}, dataset{}, err
	}

	rows := report.Apply(data.rows, report.Filter{EmployeeID: req.EmployeeID}, report.SortByDate)
	if len(rows) > 0 {
		return rows, rows[0].Employee, data, nil
	}

	dir := employee.NewDirectory(data.employees)
	emp, known := dir[req.EmployeeID]
	if !known && len(data.warnings) == 0 {
		return nil, employee.Employee{}, dataset{}, employee.ErrEmployeeNotFound
	}
	if !known {
		emp = dir.Lookup(req.EmployeeID)
	}
	return rows, emp, data, nil
}

// EmployeeReport implements report.ReportService.
func (s *ReportServiceImpl) EmployeeReport(ctx context.Context, req report.EmployeeReportRequest) (report.EmployeeReportResponse, error) {
	rows, emp, data, err := s.employeeRows(ctx, req)
	if err != nil {
		return report.EmployeeReportResponse{}, err
	}

	summary := report.NewReporter(rows).Summary(s.settings.ExpectedDailyHours)
	if len(rows) == 0 {
		summary.EmployeeID = emp.ID
		summary.EmployeeCode = emp.Code
		summary.EmployeeName = emp.Name
		summary.Department = emp.Department
	}

	return report.EmployeeReportResponse{
		Month:    req.Period.String(),
		Summary:  summary,
		Records:  report.NewRecordResponses(rows),
		Warnings: data.warnings,
	}, nil
}

// ExportReview implements report.ReportService.
func (s *ReportServiceImpl) ExportReview(ctx context.Context, req report.ReviewRequest) (report.Export, error) {
	mode := s.settings.PairingMode
	if req.Mode != "" {
		mode = attendance.ParsePairingMode(req.Mode)
	}

	data, err := s.load(ctx, []report.Period{req.Period}, mode)
	if err != nil {
		return report.Export{}, err
	}

	rows := report.Apply(data.rows, req.Filter(), req.SortKey())
	return report.Export{
		ReportType: "attendance_review",
		Period:     req.Period.String(),
		Table:      report.NewTable("Attendance Review", rows, report.ReviewColumns()),
	}, nil
}

// ExportMonthly implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthly(ctx context.Context, req report.MonthlyReportRequest) (report.Export, error) {
	resp, err := s.Monthly(ctx, req)
	if err != nil {
		return report.Export{}, err
	}
	return report.Export{
		ReportType: "monthly_report",
		Period:     resp.Month,
		Table:      report.MonthlyTable("Monthly Report", resp.Summaries),
	}, nil
}

// ExportDaily implements report.ReportService.
func (s *ReportServiceImpl) ExportDaily(ctx context.Context, req report.DailyReportRequest) (report.Export, error) {
	rows, _, err := s.dailyRows(ctx, req)
	if err != nil {
		return report.Export{}, err
	}
	return report.Export{
		ReportType: "daily_report",
		Period:     req.Day.Format(attendance.DateLayout),
		Table:      report.NewTable("Daily Report", rows, report.DailyColumns(s.settings.ExpectedDailyHours)),
	}, nil
}

// ExportEmployee implements report.ReportService.
func (s *ReportServiceImpl) ExportEmployee(ctx context.Context, req report.EmployeeReportRequest) (report.Export, error) {
	rows, emp, _, err := s.employeeRows(ctx, req)
	if err != nil {
		return report.Export{}, err
	}

	id := emp.Code
	if id == "" {
		id = req.EmployeeID
	}
	return report.Export{
		ReportType: "employee_report_" + id,
		Period:     req.Period.String(),
		Table:      report.NewTable("Employee Report", rows, report.EmployeeColumns(s.settings.ExpectedDailyHours)),
	}, nil
}

// MonthlySummaries implements report.ReportService.
func (s *ReportServiceImpl) MonthlySummaries(ctx context.Context, period report.Period) ([]report.MonthlySummary, []string, error) {
	data, err := s.loadMonth(ctx, period)
	if err != nil {
		return nil, nil, err
	}
	return s.summarize(data.rows), data.warnings, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
