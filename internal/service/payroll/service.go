package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/factory-attendance-go/internal/repository/postgresql"
)

type SalaryServiceImpl struct {
	tx         postgresql.Transactor
	salaryRepo payroll.SalaryRepository
	directory  employee.DirectorySource
	reports    report.ReportService
	settings   payroll.Settings
}

func NewSalaryService(
	tx postgresql.Transactor,
	salaryRepo payroll.SalaryRepository,
	directory employee.DirectorySource,
	reports report.ReportService,
	settings payroll.Settings,
) payroll.SalaryService {
	return &SalaryServiceImpl{
		tx:         tx,
		salaryRepo: salaryRepo,
		directory:  directory,
		reports:    reports,
		settings:   settings,
	}
}

func (s *SalaryServiceImpl) filtered(ctx context.Context, filter payroll.SalaryFilter) ([]payroll.SalaryRecord, []payroll.SalaryRecord, error) {
	all, err := s.salaryRepo.ListByPeriod(ctx, filter.Period.Year, int(filter.Period.Month))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list salary records: %w", err)
	}

	matched := make([]payroll.SalaryRecord, 0, len(all))
	for _, r := range all {
		if filter.Matches(r) {
			matched = append(matched, r)
		}
	}
	return all, matched, nil
}

// List implements payroll.SalaryService.
func (s *SalaryServiceImpl) List(ctx context.Context, filter payroll.SalaryFilter) (payroll.SalaryListResponse, error) {
	all, matched, err := s.filtered(ctx, filter)
	if err != nil {
		return payroll.SalaryListResponse{}, err
	}

	records := make([]payroll.SalaryResponse, 0, len(matched))
	for _, r := range matched {
		records = append(records, payroll.NewSalaryResponse(r))
	}

	return payroll.SalaryListResponse{
		Month:       filter.Period.String(),
		Records:     records,
		Summary:     payroll.Summarize(matched),
		Departments: departments(all),
		Total:       len(records),
	}, nil
}

func departments(records []payroll.SalaryRecord) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range records {
		if r.Department == nil || *r.Department == "" {
			continue
		}
		if _, ok := seen[*r.Department]; ok {
			continue
		}
		seen[*r.Department] = struct{}{}
		out = append(out, *r.Department)
	}
	sort.Strings(out)
	return out
}

// Generate implements payroll.SalaryService. Employees without any
// attendance in the period are skipped, as are employees that already
// have a record for it.
func (s *SalaryServiceImpl) Generate(ctx context.Context, req payroll.GenerateSalaryRequest) (payroll.GenerateSalaryResponse, error) {
	employees, err := s.directory.List(ctx)
	if err != nil {
		return payroll.GenerateSalaryResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	summaries, warnings, err := s.reports.MonthlySummaries(ctx, req.Period)
	if err != nil {
		return payroll.GenerateSalaryResponse{}, fmt.Errorf("failed to summarize attendance: %w", err)
	}

	byEmployee := make(map[string]report.MonthlySummary, len(summaries))
	for _, sum := range summaries {
		byEmployee[sum.EmployeeID] = sum
	}

	resp := payroll.GenerateSalaryResponse{Month: req.Period.String(), Warnings: warnings}
	for _, emp := range employee.Active(employees) {
		summary, ok := byEmployee[emp.ID]
		if !ok {
			summary, ok = byEmployee[emp.Code]
		}
		if !ok {
			resp.Skipped++
			continue
		}

		draft := payroll.DraftFromSummary(emp, summary, req.Period, s.settings)
		draft.EmployeeName = &emp.Name
		draft.EmployeeCode = &emp.Code
		draft.Department = &emp.Department

		if _, err := s.salaryRepo.Create(ctx, draft); err != nil {
			if errors.Is(err, payroll.ErrSalaryRecordExists) {
				resp.Skipped++
				continue
			}
			return payroll.GenerateSalaryResponse{}, fmt.Errorf("failed to create salary draft for %s: %w", emp.Code, err)
		}
		metrics.SalaryDrafts.Inc()
		resp.Created++
	}

	slog.Info("salary drafts generated", "month", resp.Month, "created", resp.Created, "skipped", resp.Skipped)
	return resp, nil
}

func (s *SalaryServiceImpl) review(ctx context.Context, id string, status payroll.SalaryStatus, req payroll.ReviewSalaryRequest) (payroll.SalaryResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.SalaryResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	var updated payroll.SalaryRecord
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		current, err := s.salaryRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if current.Status != payroll.SalaryStatusPending {
			return payroll.ErrSalaryAlreadyReviewed
		}

		updated, err = s.salaryRepo.UpdateStatus(txCtx, id, status, req.Remarks, claims.UserID)
		return err
	})
	if err != nil {
		return payroll.SalaryResponse{}, err
	}

	slog.Info("salary reviewed", "id", id, "status", status, "reviewed_by", claims.UserID)
	return payroll.NewSalaryResponse(updated), nil
}

// Approve implements payroll.SalaryService.
func (s *SalaryServiceImpl) Approve(ctx context.Context, id string, req payroll.ReviewSalaryRequest) (payroll.SalaryResponse, error) {
	return s.review(ctx, id, payroll.SalaryStatusApproved, req)
}

// Reject implements payroll.SalaryService.
func (s *SalaryServiceImpl) Reject(ctx context.Context, id string, req payroll.ReviewSalaryRequest) (payroll.SalaryResponse, error) {
	return s.review(ctx, id, payroll.SalaryStatusRejected, req)
}

// Update implements payroll.SalaryService.
func (s *SalaryServiceImpl) Update(ctx context.Context, id string, req payroll.UpdateSalaryRequest) (payroll.SalaryResponse, error) {
	var updated payroll.SalaryRecord
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		current, err := s.salaryRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if current.Status == payroll.SalaryStatusApproved {
			return payroll.ErrSalaryAlreadyApproved
		}

		next := req.Apply(current)
		updated, err = s.salaryRepo.UpdateAmounts(txCtx, id, next.BaseSalary, next.Deductions, next.Bonus, next.FinalSalary)
		return err
	})
	if err != nil {
		return payroll.SalaryResponse{}, err
	}
	return payroll.NewSalaryResponse(updated), nil
}

// Export implements payroll.SalaryService.
func (s *SalaryServiceImpl) Export(ctx context.Context, filter payroll.SalaryFilter) (report.Export, error) {
	_, matched, err := s.filtered(ctx, filter)
	if err != nil {
		return report.Export{}, err
	}
	return report.Export{
		ReportType: "salary_report",
		Period:     filter.Period.String(),
		Table:      payroll.SalaryTable("Salary Report", matched),
	}, nil
}
