package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passthroughTx struct {
	calls int
}

func (p *passthroughTx) WithinTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type fakeOverrideRepository struct {
	saved     []attendance.Override
	failAt    int
	deleteErr error
	deleted   []string
}

func (f *fakeOverrideRepository) ListByMonth(ctx context.Context, year int, month time.Month) ([]attendance.Override, error) {
	return f.saved, nil
}

func (f *fakeOverrideRepository) Upsert(ctx context.Context, override attendance.Override) (attendance.Override, error) {
	if f.failAt > 0 && len(f.saved)+1 == f.failAt {
		return attendance.Override{}, errors.New("constraint violated")
	}
	f.saved = append(f.saved, override)
	return override, nil
}

func (f *fakeOverrideRepository) Delete(ctx context.Context, employeeID string, date time.Time) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, attendance.OverrideKey(employeeID, date))
	return nil
}

type fakeRecordRepository struct {
	upserted []attendance.AttendanceRecord
}

func (f *fakeRecordRepository) ListByMonth(ctx context.Context, year int, month time.Month) ([]attendance.AttendanceRecord, error) {
	return f.upserted, nil
}

func (f *fakeRecordRepository) Upsert(ctx context.Context, record attendance.AttendanceRecord) error {
	f.upserted = append(f.upserted, record)
	return nil
}

func (f *fakeRecordRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceRecord, error) {
	return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
}

type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) Invalidate(ctx context.Context, year int, month time.Month) error {
	f.invalidated = append(f.invalidated, time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"))
	return nil
}

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	token, _, err := jwt.NewJWTService("secret", time.Hour).JWTAuth().Encode(map[string]interface{}{
		"user_id": userID,
		"role":    "admin",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func strPtr(s string) *string { return &s }

func TestAttendanceService_SaveOverrides_Success(t *testing.T) {
	// Setup
	tx := &passthroughTx{}
	repo := &fakeOverrideRepository{}
	svc := NewAttendanceService(tx, repo, &fakeRecordRepository{}, nil).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC) }

	req := attendance.SaveOverridesRequest{Overrides: []attendance.OverrideItem{
		{EmployeeID: "e1", Date: "2024-03-04", Status: strPtr("present")},
		{EmployeeID: "e2", Date: "2024-03-04", Notes: strPtr("left early for clinic")},
	}}
	require.NoError(t, req.Validate())

	// Act
	resp, err := svc.SaveOverrides(authedContext(t, "admin-1"), req)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	require.Len(t, resp, 2)
	assert.Equal(t, "e1-2024-03-04", resp[0].Key)
	assert.Equal(t, attendance.StatusPresent, *resp[0].Status)
	assert.Nil(t, resp[1].Status)
	assert.Equal(t, "admin-1", repo.saved[1].UpdatedBy)
	assert.Equal(t, "2024-03-05T10:00:00Z", resp[0].UpdatedAt)
}

func TestAttendanceService_SaveOverrides_FailureAbortsBatch(t *testing.T) {
	repo := &fakeOverrideRepository{failAt: 2}
	svc := NewAttendanceService(&passthroughTx{}, repo, &fakeRecordRepository{}, nil)

	req := attendance.SaveOverridesRequest{Overrides: []attendance.OverrideItem{
		{EmployeeID: "e1", Date: "2024-03-04", Status: strPtr("present")},
		{EmployeeID: "e2", Date: "2024-03-04", Status: strPtr("absent")},
	}}

	resp, err := svc.SaveOverrides(authedContext(t, "admin-1"), req)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "e2-2024-03-04")
}

func TestAttendanceService_SaveOverrides_RequiresClaims(t *testing.T) {
	svc := NewAttendanceService(&passthroughTx{}, &fakeOverrideRepository{}, &fakeRecordRepository{}, nil)

	_, err := svc.SaveOverrides(context.Background(), attendance.SaveOverridesRequest{})

	assert.Error(t, err)
}

func TestAttendanceService_DeleteOverride(t *testing.T) {
	repo := &fakeOverrideRepository{}
	svc := NewAttendanceService(&passthroughTx{}, repo, &fakeRecordRepository{}, nil)

	require.NoError(t, svc.DeleteOverride(context.Background(), "e1", "2024-03-04"))
	assert.Equal(t, []string{"e1-2024-03-04"}, repo.deleted)

	err := svc.DeleteOverride(context.Background(), "e1", "04-03-2024")
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	repo.deleteErr = attendance.ErrOverrideNotFound
	assert.ErrorIs(t, svc.DeleteOverride(context.Background(), "e9", "2024-03-04"), attendance.ErrOverrideNotFound)
}

func TestAttendanceService_RecordPunches_InvalidatesCache(t *testing.T) {
	records := &fakeRecordRepository{}
	cache := &fakeCache{}
	svc := NewAttendanceService(&passthroughTx{}, &fakeOverrideRepository{}, records, cache)

	err := svc.RecordPunches(context.Background(), attendance.RecordPunchesRequest{
		EmployeeID: "e1",
		Date:       "2024-03-04",
		Entries:    []attendance.PunchEntry{{Time: "08:00", Type: attendance.PunchIn}},
	})

	require.NoError(t, err)
	require.Len(t, records.upserted, 1)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), records.upserted[0].Date)
	assert.Equal(t, []string{"2024-03"}, cache.invalidated)
}
