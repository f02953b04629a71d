package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

type SalaryRepository interface {
	// ListByPeriod returns the period's records joined with employee data
	ListByPeriod(ctx context.Context, year, month int) ([]SalaryRecord, error)
	GetByID(ctx context.Context, id string) (SalaryRecord, error)

	// Create inserts a draft; an existing (employee, period) row yields ErrSalaryRecordExists
	Create(ctx context.Context, record SalaryRecord) (SalaryRecord, error)

	UpdateAmounts(ctx context.Context, id string, base, deductions, bonus, final decimal.Decimal) (SalaryRecord, error)
	UpdateStatus(ctx context.Context, id string, status SalaryStatus, remarks *string, reviewedBy string) (SalaryRecord, error)

	CountByStatus(ctx context.Context, year, month int) (map[SalaryStatus]int, error)
}
