// Package cache holds availability snapshots in Redis so repeated slot
// lookups for the same owner do not hit the schedule store. Writes are
// last-write-wins; correctness never depends on a hit.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/slotwise/bookings/internal/domain"
)

type ScheduleCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewScheduleCache(rdb *redis.Client, ttl time.Duration) *ScheduleCache {
	return &ScheduleCache{rdb: rdb, ttl: ttl}
}

func scheduleKey(ownerID int64) string {
	return fmt.Sprintf("schedule:%d", ownerID)
}

// Get returns the cached schedule and whether one was present.
func (c *ScheduleCache) Get(ctx context.Context, ownerID int64) (domain.WeeklySchedule, bool, error) {
	raw, err := c.rdb.Get(ctx, scheduleKey(ownerID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var schedule domain.WeeklySchedule
	if err := json.Unmarshal(raw, &schedule); err != nil {
		return nil, false, fmt.Errorf("cached schedule for owner %d is malformed: %w", ownerID, err)
	}
	return schedule, true, nil
}

func (c *ScheduleCache) Set(ctx context.Context, ownerID int64, schedule domain.WeeklySchedule) error {
	raw, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}
	return c.rdb.Set(ctx, scheduleKey(ownerID), raw, c.ttl).Err()
}

func (c *ScheduleCache) Invalidate(ctx context.Context, ownerID int64) error {
	return c.rdb.Del(ctx, scheduleKey(ownerID)).Err()
}
