package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/factory-attendance-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	tx           postgresql.Transactor
	overrideRepo attendance.OverrideRepository
	recordRepo   attendance.RecordRepository
	cache        attendance.RecordCache
	now          func() time.Time
}

// NewAttendanceService builds the override and punch ingestion service.
// cache may be nil when record caching is disabled.
func NewAttendanceService(
	tx postgresql.Transactor,
	overrideRepo attendance.OverrideRepository,
	recordRepo attendance.RecordRepository,
	cache attendance.RecordCache,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:           tx,
		overrideRepo: overrideRepo,
		recordRepo:   recordRepo,
		cache:        cache,
		now:          time.Now,
	}
}

// SaveOverrides implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SaveOverrides(ctx context.Context, req attendance.SaveOverridesRequest) ([]attendance.OverrideResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	overrides := req.ToOverrides(claims.UserID, s.now().UTC())
	saved := make([]attendance.OverrideResponse, 0, len(overrides))

	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		for _, ov := range overrides {
			stored, err := s.overrideRepo.Upsert(txCtx, ov)
			if err != nil {
				return fmt.Errorf("failed to save override %s: %w", ov.Key(), err)
			}
			saved = append(saved, attendance.NewOverrideResponse(stored))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("attendance overrides saved", "count", len(saved), "user_id", claims.UserID)
	return saved, nil
}

// DeleteOverride implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteOverride(ctx context.Context, employeeID string, date string) error {
	day, ok := validator.IsValidDate(date)
	if !ok {
		return validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	return s.overrideRepo.Delete(ctx, employeeID, day)
}

// RecordPunches implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordPunches(ctx context.Context, req attendance.RecordPunchesRequest) error {
	record := req.ToRecord()
	if err := s.recordRepo.Upsert(ctx, record); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, record.Date.Year(), record.Date.Month()); err != nil {
			slog.Warn("failed to invalidate attendance cache", "date", req.Date, "error", err)
		}
	}
	return nil
}
