package attendance

import (
	"context"
)

type AttendanceService interface {
	// SaveOverrides persists a batch of admin annotations atomically
	SaveOverrides(ctx context.Context, req SaveOverridesRequest) ([]OverrideResponse, error)

	// DeleteOverride returns the record to the unselected state
	DeleteOverride(ctx context.Context, employeeID string, date string) error

	// RecordPunches stores a day's punch log in the local record store
	RecordPunches(ctx context.Context, req RecordPunchesRequest) error
}
