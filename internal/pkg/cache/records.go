package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/metrics"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to addr. An empty addr disables caching and
// returns a nil client.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// Records caches a month of attendance records from the wrapped source.
// Cache failures are logged and fall through to the source.
type Records struct {
	source attendance.RecordSource
	client *redis.Client
	ttl    time.Duration
}

// NewRecords wraps source. With a nil client the source is returned as is.
func NewRecords(source attendance.RecordSource, client *redis.Client, ttl time.Duration) attendance.RecordSource {
	if client == nil {
		return source
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Records{source: source, client: client, ttl: ttl}
}

func recordsKey(year int, month time.Month) string {
	return fmt.Sprintf("attendance:records:%04d-%02d", year, int(month))
}

func (c *Records) ListByMonth(ctx context.Context, year int, month time.Month) ([]attendance.AttendanceRecord, error) {
	key := recordsKey(year, month)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var records []attendance.AttendanceRecord
		if jsonErr := json.Unmarshal(raw, &records); jsonErr == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return records, nil
		}
		slog.Warn("cached attendance records unreadable", "key", key)
	case errors.Is(err, redis.Nil):
	default:
		slog.Warn("attendance cache read failed", "key", key, "error", err)
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	records, err := c.source.ListByMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(records); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			slog.Warn("attendance cache write failed", "key", key, "error", err)
		}
	}
	return records, nil
}

// Invalidate drops the cached month so the next read hits the source.
func (c *Records) Invalidate(ctx context.Context, year int, month time.Month) error {
	return c.client.Del(ctx, recordsKey(year, month)).Err()
}
