package payroll

import (
	"context"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/report"
)

type SalaryService interface {
	List(ctx context.Context, filter SalaryFilter) (SalaryListResponse, error)

	// Generate drafts a pending record for every active employee that has
	// none yet for the period
	Generate(ctx context.Context, req GenerateSalaryRequest) (GenerateSalaryResponse, error)

	Approve(ctx context.Context, id string, req ReviewSalaryRequest) (SalaryResponse, error)
	Reject(ctx context.Context, id string, req ReviewSalaryRequest) (SalaryResponse, error)
	Update(ctx context.Context, id string, req UpdateSalaryRequest) (SalaryResponse, error)

	Export(ctx context.Context, filter SalaryFilter) (report.Export, error)
}
