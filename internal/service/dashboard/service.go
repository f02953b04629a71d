package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/upstream"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	directory  employee.DirectorySource
	records    attendance.RecordSource
	overrides  attendance.OverrideRepository
	salaryRepo payroll.SalaryRepository
	pairing    attendance.PairingMode
}

func NewDashboardService(
	directory employee.DirectorySource,
	records attendance.RecordSource,
	overrides attendance.OverrideRepository,
	salaryRepo payroll.SalaryRepository,
	pairing attendance.PairingMode,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		directory:  directory,
		records:    records,
		overrides:  overrides,
		salaryRepo: salaryRepo,
		pairing:    pairing,
	}
}

type todayData struct {
	employees []employee.Employee
	rows      []report.Row
	salaries  map[payroll.SalaryStatus]int
	warnings  []string
}

func (s *DashboardServiceImpl) load(ctx context.Context, day time.Time) (todayData, error) {
	var (
		employees []employee.Employee
		records   []attendance.AttendanceRecord
		overrides []attendance.Override
		salaries  map[payroll.SalaryStatus]int

		directoryWarning string
		recordsWarning   string
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Employee directory
	g.Go(func() error {
		list, err := s.directory.List(gCtx)
		if err != nil {
			if !isFetchError(err) {
				return fmt.Errorf("failed to list employees: %w", err)
			}
			slog.Warn("employee directory unavailable", "error", err)
			directoryWarning = "Employee directory is unavailable"
			return nil
		}
		employees = list
		return nil
	})

	// 2. Month's records, narrowed to the day below
	g.Go(func() error {
		list, err := s.records.ListByMonth(gCtx, day.Year(), day.Month())
		if err != nil {
			if !isFetchError(err) {
				return fmt.Errorf("failed to list attendance records: %w", err)
			}
			slog.Warn("attendance records unavailable", "error", err)
			recordsWarning = "Attendance records are unavailable"
			return nil
		}
		records = list
		return nil
	})

	// 3. Admin overrides
	g.Go(func() error {
		list, err := s.overrides.ListByMonth(gCtx, day.Year(), day.Month())
		if err != nil {
			return fmt.Errorf("failed to list overrides: %w", err)
		}
		overrides = list
		return nil
	})

	// 4. Salary review counters for the month
	g.Go(func() error {
		counts, err := s.salaryRepo.CountByStatus(gCtx, day.Year(), int(day.Month()))
		if err != nil {
			return fmt.Errorf("failed to count salary records: %w", err)
		}
		salaries = counts
		return nil
	})

	if err := g.Wait(); err != nil {
		return todayData{}, err
	}

	var todays []attendance.AttendanceRecord
	for _, r := range records {
		if sameDay(r.Date, day) {
			todays = append(todays, r)
		}
	}

	active := employee.Active(employees)
	sort.SliceStable(active, func(i, j int) bool {
		return strings.ToLower(active[i].Name) < strings.ToLower(active[j].Name)
	})

	data := todayData{
		employees: active,
		rows:      report.BuildRows(todays, employee.NewDirectory(employees), attendance.NewOverrides(overrides), s.pairing),
		salaries:  salaries,
	}
	for _, w := range []string{directoryWarning, recordsWarning} {
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

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// GetDashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, day time.Time) (dashboard.DashboardResponse, error) {
	data, err := s.load(ctx, day)
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}

	today := dashboard.BuildToday(data.employees, data.rows)
	return dashboard.DashboardResponse{
		Date:       day.Format(attendance.DateLayout),
		Attendance: dashboard.CountAttendance(today, data.rows),
		Salaries:   dashboard.CountSalaries(report.PeriodOf(day).String(), data.salaries),
		Today:      today,
		Warnings:   data.warnings,
	}, nil
}

// ExportToday implements dashboard.DashboardService.
func (s *DashboardServiceImpl) ExportToday(ctx context.Context, day time.Time) (report.Export, error) {
	data, err := s.load(ctx, day)
	if err != nil {
		return report.Export{}, err
	}
	return report.Export{
		ReportType: "today_attendance",
		Period:     day.Format(attendance.DateLayout),
		Table:      dashboard.TodayTable(dashboard.BuildToday(data.employees, data.rows)),
	}, nil
}
