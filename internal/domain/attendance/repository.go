package attendance

import (
	"context"
	"time"
)

// RecordSource supplies raw attendance records for a month. It is backed
// either by the upstream review service or by the local database.
type RecordSource interface {
	ListByMonth(ctx context.Context, year int, month time.Month) ([]AttendanceRecord, error)
}

// RecordRepository stores punch logs ingested locally.
type RecordRepository interface {
	RecordSource

	// Upsert replaces the punch log of (employeeID, date)
	Upsert(ctx context.Context, record AttendanceRecord) error

	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (AttendanceRecord, error)
}

// OverrideRepository persists admin status/notes annotations keyed by
// employee and date.
type OverrideRepository interface {
	ListByMonth(ctx context.Context, year int, month time.Month) ([]Override, error)
	Upsert(ctx context.Context, override Override) (Override, error)
	Delete(ctx context.Context, employeeID string, date time.Time) error
}

// RecordCache is implemented by cached record sources that must be told
// when a month changes.
type RecordCache interface {
	Invalidate(ctx context.Context, year int, month time.Month) error
}
