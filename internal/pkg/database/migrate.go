package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

// Migration is one ordered schema step. Applied indexes are recorded in
// schema_migrations and never run twice.
type Migration struct {
	Index       int
	Description string
	Query       string
}

var Migrations = []Migration{
	{
		Index:       1,
		Description: "Create extension: pgcrypto",
		Query:       `CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
	},
	{
		Index:       2,
		Description: "Create table: users",
		Query: `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			full_name VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'admin' CHECK (role IN ('admin', 'supervisor')),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	},
	{
		Index:       3,
		Description: "Create table: employees",
		Query: `
		CREATE TABLE IF NOT EXISTS employees (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			code VARCHAR(50) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			department VARCHAR(100) NOT NULL DEFAULT '',
			job_role VARCHAR(100) NOT NULL DEFAULT '',
			shift_in TIME NOT NULL DEFAULT '09:00:00',
			shift_out TIME NOT NULL DEFAULT '18:00:00',
			monthly_salary NUMERIC(14, 2) NOT NULL DEFAULT 0,
			hourly_rate NUMERIC(14, 2),
			status VARCHAR(20) NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive')),
			joining_date DATE NOT NULL DEFAULT CURRENT_DATE,
			photo_path TEXT,
			phone_number VARCHAR(30) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	},
	{
		Index:       4,
		Description: "Create table: attendance_records",
		Query: `
		CREATE TABLE IF NOT EXISTS attendance_records (
			employee_id TEXT NOT NULL,
			date DATE NOT NULL,
			entries JSONB NOT NULL DEFAULT '[]'::jsonb,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (employee_id, date)
		);
		CREATE INDEX IF NOT EXISTS idx_attendance_records_date ON attendance_records (date);`,
	},
	{
		Index:       5,
		Description: "Create table: attendance_overrides",
		Query: `
		CREATE TABLE IF NOT EXISTS attendance_overrides (
			employee_id TEXT NOT NULL,
			date DATE NOT NULL,
			status VARCHAR(20),
			notes TEXT,
			updated_by UUID NOT NULL REFERENCES users(id),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (employee_id, date)
		);
		CREATE INDEX IF NOT EXISTS idx_attendance_overrides_date ON attendance_overrides (date);`,
	},
	{
		Index:       6,
		Description: "Create table: salary_records",
		Query: `
		CREATE TABLE IF NOT EXISTS salary_records (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			employee_id TEXT NOT NULL,
			period_month SMALLINT NOT NULL CHECK (period_month BETWEEN 1 AND 12),
			period_year SMALLINT NOT NULL,
			total_working_days INT NOT NULL DEFAULT 0,
			present_days INT NOT NULL DEFAULT 0,
			absent_days INT NOT NULL DEFAULT 0,
			half_days INT NOT NULL DEFAULT 0,
			late_days INT NOT NULL DEFAULT 0,
			total_hours NUMERIC(8, 2) NOT NULL DEFAULT 0,
			expected_hours NUMERIC(8, 2) NOT NULL DEFAULT 0,
			base_salary NUMERIC(14, 2) NOT NULL DEFAULT 0,
			deductions NUMERIC(14, 2) NOT NULL DEFAULT 0,
			bonus NUMERIC(14, 2) NOT NULL DEFAULT 0,
			final_salary NUMERIC(14, 2) NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
			admin_remarks TEXT,
			reviewed_by UUID REFERENCES users(id) ON DELETE SET NULL,
			reviewed_at TIMESTAMPTZ,
			employee_name VARCHAR(255),
			employee_code VARCHAR(50),
			department VARCHAR(100),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (employee_id, period_month, period_year)
		);`,
	},
}

// Migrate applies every migration newer than the recorded version, each in
// its own transaction.
func Migrate(ctx context.Context, db *DB, migrations []Migration) (int, error) {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}

	applied := 0
	for _, m := range migrations {
		if m.Index <= current {
			continue
		}
		err := pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, m.Query); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, description) VALUES ($1, $2)`, m.Index, m.Description)
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("migration %d (%s): %w", m.Index, m.Description, err)
		}
		slog.Info("Applied migration", "index", m.Index, "description", m.Description)
		applied++
	}
	return applied, nil
}
