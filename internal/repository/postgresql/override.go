package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type overrideRepositoryImpl struct {
	db *database.DB
}

func NewOverrideRepository(db *database.DB) attendance.OverrideRepository {
	return &overrideRepositoryImpl{db: db}
}

func scanOverride(row pgx.Row) (attendance.Override, error) {
	var o attendance.Override
	err := row.Scan(&o.EmployeeID, &o.Date, &o.Status, &o.Notes, &o.UpdatedBy, &o.UpdatedAt)
	return o, err
}

// ListByMonth implements attendance.OverrideRepository.
func (r *overrideRepositoryImpl) ListByMonth(ctx context.Context, year int, month time.Month) ([]attendance.Override, error) {
	q := GetQuerier(ctx, r.db)

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	query := `
		SELECT employee_id, date, status, notes, updated_by, updated_at
		FROM attendance_overrides
		WHERE date >= $1 AND date < $2
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("query attendance overrides: %w", err)
	}
	defer rows.Close()

	overrides := make([]attendance.Override, 0)
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance override: %w", err)
		}
		overrides = append(overrides, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return overrides, nil
}

// Upsert implements attendance.OverrideRepository. A nil status or notes
// keeps the stored value.
func (r *overrideRepositoryImpl) Upsert(ctx context.Context, override attendance.Override) (attendance.Override, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_overrides (employee_id, date, status, notes, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, date)
		DO UPDATE SET
			status = COALESCE(EXCLUDED.status, attendance_overrides.status),
			notes = COALESCE(EXCLUDED.notes, attendance_overrides.notes),
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at
		RETURNING employee_id, date, status, notes, updated_by, updated_at
	`

	saved, err := scanOverride(q.QueryRow(ctx, query,
		override.EmployeeID,
		override.Date,
		override.Status,
		override.Notes,
		override.UpdatedBy,
		override.UpdatedAt,
	))
	if err != nil {
		return attendance.Override{}, fmt.Errorf("upsert attendance override: %w", err)
	}
	return saved, nil
}

// Delete implements attendance.OverrideRepository.
func (r *overrideRepositoryImpl) Delete(ctx context.Context, employeeID string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_overrides WHERE employee_id = $1 AND date = $2`, employeeID, date)
	if err != nil {
		return fmt.Errorf("delete attendance override: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrOverrideNotFound
	}
	return nil
}
