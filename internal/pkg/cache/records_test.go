package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	calls   int
	records []attendance.AttendanceRecord
	err     error
}

func (f *fakeSource) ListByMonth(ctx context.Context, year int, month time.Month) ([]attendance.AttendanceRecord, error) {
	f.calls++
	return f.records, f.err
}

func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestNewRecords_NilClientReturnsSource(t *testing.T) {
	src := &fakeSource{}
	assert.Same(t, src, NewRecords(src, nil, time.Minute))
}

func TestRecords_ListByMonth_RedisDownFallsThrough(t *testing.T) {
	// Setup
	client := unreachableRedis()
	defer client.Close()
	src := &fakeSource{records: []attendance.AttendanceRecord{{EmployeeID: "e1"}}}
	cached := NewRecords(src, client, time.Minute)

	// Act
	got, err := cached.ListByMonth(context.Background(), 2024, time.March)

	// Assert
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, src.calls)
}

func TestRecords_ListByMonth_SourceErrorPropagates(t *testing.T) {
	client := unreachableRedis()
	defer client.Close()
	boom := errors.New("upstream down")
	cached := NewRecords(&fakeSource{err: boom}, client, time.Minute)

	_, err := cached.ListByMonth(context.Background(), 2024, time.March)

	assert.ErrorIs(t, err, boom)
}

func TestRecordsKey(t *testing.T) {
	assert.Equal(t, "attendance:records:2024-03", recordsKey(2024, time.March))
}

func TestNewRedisClient_EmptyAddrDisabled(t *testing.T) {
	client, err := NewRedisClient(context.Background(), "", "", 0)
	assert.NoError(t, err)
	assert.Nil(t, client)
}
