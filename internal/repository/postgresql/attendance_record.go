package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRecordRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRecordRepository(db *database.DB) attendance.RecordRepository {
	return &attendanceRecordRepositoryImpl{db: db}
}

func scanAttendanceRecord(row pgx.Row) (attendance.AttendanceRecord, error) {
	var rec attendance.AttendanceRecord
	if err := row.Scan(&rec.EmployeeID, &rec.Date, &rec.Entries, &rec.Notes); err != nil {
		return attendance.AttendanceRecord{}, err
	}
	return rec, nil
}

// ListByMonth implements attendance.RecordSource.
func (r *attendanceRecordRepositoryImpl) ListByMonth(ctx context.Context, year int, month time.Month) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	query := `
		SELECT employee_id, date, entries, notes
		FROM attendance_records
		WHERE date >= $1 AND date < $2
		ORDER BY date ASC, employee_id ASC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("query attendance records: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.AttendanceRecord, 0)
	for rows.Next() {
		rec, err := scanAttendanceRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Upsert implements attendance.RecordRepository.
func (r *attendanceRecordRepositoryImpl) Upsert(ctx context.Context, record attendance.AttendanceRecord) error {
	q := GetQuerier(ctx, r.db)

	entries := record.Entries
	if entries == nil {
		entries = []attendance.PunchEntry{}
	}

	query := `
		INSERT INTO attendance_records (employee_id, date, entries, notes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, date)
		DO UPDATE SET entries = EXCLUDED.entries, notes = EXCLUDED.notes, updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, record.EmployeeID, record.Date, entries, record.Notes); err != nil {
		return fmt.Errorf("upsert attendance record: %w", err)
	}
	return nil
}

// GetByEmployeeAndDate implements attendance.RecordRepository.
func (r *attendanceRecordRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, date, entries, notes
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2
	`

	rec, err := scanAttendanceRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.AttendanceRecord{}, err
	}
	return rec, nil
}
