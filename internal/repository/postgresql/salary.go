package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) payroll.SalaryRepository {
	return &salaryRepository{db: db}
}

const salaryColumns = `
	id, employee_id, period_month, period_year, total_working_days, present_days, absent_days,
	half_days, late_days, total_hours, expected_hours, base_salary, deductions, bonus, final_salary,
	status, admin_remarks, reviewed_by, reviewed_at, created_at, updated_at,
	employee_name, employee_code, department`

func scanSalary(row pgx.Row) (payroll.SalaryRecord, error) {
	var s payroll.SalaryRecord
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.PeriodMonth, &s.PeriodYear, &s.TotalWorkingDays, &s.PresentDays, &s.AbsentDays,
		&s.HalfDays, &s.LateDays, &s.TotalHours, &s.ExpectedHours, &s.BaseSalary, &s.Deductions, &s.Bonus, &s.FinalSalary,
		&s.Status, &s.AdminRemarks, &s.ReviewedBy, &s.ReviewedAt, &s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeName, &s.EmployeeCode, &s.Department,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryRecord{}, payroll.ErrSalaryRecordNotFound
		}
		return payroll.SalaryRecord{}, err
	}
	return s, nil
}

func (r *salaryRepository) ListByPeriod(ctx context.Context, year, month int) ([]payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryColumns + `
		FROM salary_records
		WHERE period_year = $1 AND period_month = $2
		ORDER BY employee_name ASC, employee_code ASC
	`

	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	records := make([]payroll.SalaryRecord, 0)
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *salaryRepository) GetByID(ctx context.Context, id string) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + ` FROM salary_records WHERE id = $1`
	return scanSalary(q.QueryRow(ctx, query, id))
}

func (r *salaryRepository) Create(ctx context.Context, record payroll.SalaryRecord) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_records (
			employee_id, period_month, period_year, total_working_days, present_days, absent_days,
			half_days, late_days, total_hours, expected_hours, base_salary, deductions, bonus,
			final_salary, status, employee_name, employee_code, department
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING ` + salaryColumns

	created, err := scanSalary(q.QueryRow(ctx, query,
		record.EmployeeID, record.PeriodMonth, record.PeriodYear, record.TotalWorkingDays,
		record.PresentDays, record.AbsentDays, record.HalfDays, record.LateDays,
		record.TotalHours, record.ExpectedHours, record.BaseSalary, record.Deductions, record.Bonus,
		record.FinalSalary, record.Status, record.EmployeeName, record.EmployeeCode, record.Department,
	))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return payroll.SalaryRecord{}, payroll.ErrSalaryRecordExists
		}
		return payroll.SalaryRecord{}, fmt.Errorf("failed to create salary record: %w", err)
	}
	return created, nil
}

func (r *salaryRepository) UpdateAmounts(ctx context.Context, id string, base, deductions, bonus, final decimal.Decimal) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_records
		SET base_salary = $2, deductions = $3, bonus = $4, final_salary = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + salaryColumns

	return scanSalary(q.QueryRow(ctx, query, id, base, deductions, bonus, final))
}

func (r *salaryRepository) UpdateStatus(ctx context.Context, id string, status payroll.SalaryStatus, remarks *string, reviewedBy string) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_records
		SET status = $2, admin_remarks = $3, reviewed_by = $4, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + salaryColumns

	return scanSalary(q.QueryRow(ctx, query, id, status, remarks, reviewedBy))
}

func (r *salaryRepository) CountByStatus(ctx context.Context, year, month int) (map[payroll.SalaryStatus]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT status, COUNT(*)
		FROM salary_records
		WHERE period_year = $1 AND period_month = $2
		GROUP BY status
	`

	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to count salary records: %w", err)
	}
	defer rows.Close()

	counts := make(map[payroll.SalaryStatus]int)
	for rows.Next() {
		var status payroll.SalaryStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
