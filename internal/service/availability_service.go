package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/slotwise/bookings/internal/domain"
	"github.com/slotwise/bookings/internal/repo/postgres"
	"github.com/slotwise/bookings/pkg/events"
	"github.com/slotwise/bookings/pkg/logger"
)

// ScheduleProvider is the collaborator that owns availability data.
// A nil schedule with a nil error means the owner simply has none.
type ScheduleProvider interface {
	GetUserSchedule(ctx context.Context, ownerID int64) (domain.WeeklySchedule, error)
}

// StoreProvider adapts the local Postgres schedule store to the
// provider contract used by the read path.
type StoreProvider struct {
	Repo postgres.ScheduleRepo
}

func (p StoreProvider) GetUserSchedule(ctx context.Context, ownerID int64) (domain.WeeklySchedule, error) {
	return p.Repo.Get(ctx, ownerID)
}

// ScheduleCache is satisfied by the Redis-backed cache. Last write
// wins; a miss falls through to the provider, and a failed refresh
// drops the entry rather than serve a stale snapshot.
type ScheduleCache interface {
	Get(ctx context.Context, ownerID int64) (domain.WeeklySchedule, bool, error)
	Set(ctx context.Context, ownerID int64, schedule domain.WeeklySchedule) error
	Invalidate(ctx context.Context, ownerID int64) error
}

type AvailabilityService interface {
	GetSchedule(ctx context.Context, ownerID int64) (domain.WeeklySchedule, error)
	SetSchedule(ctx context.Context, ownerID int64, schedule domain.WeeklySchedule) error
	DaySlots(ctx context.Context, ownerID int64, date time.Time, window domain.SlotWindow, step time.Duration) []domain.TimeSlot
}

type availabilityService struct {
	provider ScheduleProvider
	store    postgres.ScheduleRepo
	cache    ScheduleCache
	bus      events.Publisher

	window domain.SlotWindow
	step   time.Duration

	group singleflight.Group
}

func NewAvailabilityService(
	provider ScheduleProvider,
	store postgres.ScheduleRepo,
	cache ScheduleCache,
	bus events.Publisher,
	window domain.SlotWindow,
	step time.Duration,
) AvailabilityService {
	return &availabilityService{
		provider: provider,
		store:    store,
		cache:    cache,
		bus:      bus,
		window:   window,
		step:     step,
	}
}

// GetSchedule loads an owner's schedule, serving from cache when
// possible. Concurrent fetches for the same owner are coalesced into a
// single provider call.
func (s *availabilityService) GetSchedule(ctx context.Context, ownerID int64) (domain.WeeklySchedule, error) {
	if s.cache != nil {
		if schedule, ok, err := s.cache.Get(ctx, ownerID); err != nil {
			logger.WarnContext(ctx, "Schedule cache read failed", "error", err, "owner_id", ownerID)
		} else if ok {
			return schedule, nil
		}
	}

	v, err, _ := s.group.Do(fmt.Sprintf("schedule:%d", ownerID), func() (interface{}, error) {
		schedule, err := s.provider.GetUserSchedule(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		if s.cache != nil && schedule != nil {
			if err := s.cache.Set(ctx, ownerID, schedule); err != nil {
				logger.WarnContext(ctx, "Schedule cache write failed", "error", err, "owner_id", ownerID)
			}
		}
		return schedule, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule for owner %d: %w", ownerID, err)
	}

	schedule, _ := v.(domain.WeeklySchedule)
	return schedule, nil
}

// SetSchedule validates and persists an owner's schedule, refreshes the
// cache, and announces the change.
func (s *availabilityService) SetSchedule(ctx context.Context, ownerID int64, schedule domain.WeeklySchedule) error {
	if err := schedule.Validate(); err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}

	if err := s.store.Upsert(ctx, ownerID, schedule); err != nil {
		return fmt.Errorf("failed to store schedule: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, ownerID, schedule); err != nil {
			// A stale snapshot must not outlive the write; drop it so
			// the next read falls through to the store.
			logger.WarnContext(ctx, "Schedule cache refresh failed", "error", err, "owner_id", ownerID)
			if err := s.cache.Invalidate(ctx, ownerID); err != nil {
				logger.WarnContext(ctx, "Schedule cache invalidate failed", "error", err, "owner_id", ownerID)
			}
		}
	}

	if s.bus != nil {
		event := events.ScheduleUpdatedEvent{OwnerID: ownerID, UpdatedAt: time.Now()}
		if err := s.bus.Publish(ctx, events.ScheduleUpdated, event); err != nil {
			logger.ErrorContext(ctx, "Failed to publish schedule updated event", "error", err, "owner_id", ownerID)
		}
	}

	return nil
}

// DaySlots generates the candidate slots for one owner and date. A
// failed or missing schedule fetch degrades to all slots unavailable;
// the display must never crash on missing data.
func (s *availabilityService) DaySlots(ctx context.Context, ownerID int64, date time.Time, window domain.SlotWindow, step time.Duration) []domain.TimeSlot {
	if window == (domain.SlotWindow{}) {
		window = s.window
	}
	if step <= 0 {
		step = s.step
	}

	schedule, err := s.GetSchedule(ctx, ownerID)
	if err != nil {
		logger.WarnContext(ctx, "Schedule unavailable, rendering all slots unavailable",
			"error", err, "owner_id", ownerID, "date", date.Format("2006-01-02"))
		schedule = nil
	}

	return domain.GenerateSlots(date, schedule, window, step)
}
