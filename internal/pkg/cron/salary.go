package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/report"
)

// SalaryJobs drafts salary records for the month that just closed so the
// review list is ready without a manual generate call.
type SalaryJobs struct {
	salaryService payroll.SalaryService
	now           func() time.Time
}

func NewSalaryJobs(salaryService payroll.SalaryService) *SalaryJobs {
	return &SalaryJobs{salaryService: salaryService, now: time.Now}
}

func (j *SalaryJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("generate_salary_drafts", interval, j.GenerateDrafts)
}

// GenerateDrafts creates pending records for the previous month. Existing
// records are left untouched.
func (j *SalaryJobs) GenerateDrafts(ctx context.Context) error {
	now := j.now().UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	period := report.PeriodOf(first.AddDate(0, -1, 0))

	resp, err := j.salaryService.Generate(ctx, payroll.GenerateSalaryRequest{
		Month:  period.String(),
		Period: period,
	})
	if err != nil {
		return err
	}

	slog.Info("Cron: salary drafts generated", "month", resp.Month, "created", resp.Created, "skipped", resp.Skipped)
	return nil
}
