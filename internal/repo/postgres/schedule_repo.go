package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slotwise/bookings/internal/domain"
)

type ScheduleRepo interface {
	Get(ctx context.Context, ownerID int64) (domain.WeeklySchedule, error)
	Upsert(ctx context.Context, ownerID int64, schedule domain.WeeklySchedule) error
}

type ScheduleRepoImpl struct{ pool *pgxpool.Pool }

func NewScheduleRepo(pool *pgxpool.Pool) *ScheduleRepoImpl { return &ScheduleRepoImpl{pool: pool} }

// Get returns nil, nil when the owner has no stored schedule; callers
// treat that as no availability.
func (r *ScheduleRepoImpl) Get(ctx context.Context, ownerID int64) (domain.WeeklySchedule, error) {
	const q = `SELECT schedule FROM schedules WHERE owner_id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var raw []byte
	err := r.pool.QueryRow(ctx, q, ownerID).Scan(&raw)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var schedule domain.WeeklySchedule
	if err := json.Unmarshal(raw, &schedule); err != nil {
		return nil, fmt.Errorf("stored schedule for owner %d is malformed: %w", ownerID, err)
	}
	return schedule, nil
}

func (r *ScheduleRepoImpl) Upsert(ctx context.Context, ownerID int64, schedule domain.WeeklySchedule) error {
	raw, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}

	const q = `INSERT INTO schedules (owner_id, schedule, updated_at)
  VALUES ($1, $2, now())
  ON CONFLICT (owner_id) DO UPDATE SET schedule = $2, updated_at = now()`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err = r.pool.Exec(ctx, q, ownerID, raw)
	return err
}
