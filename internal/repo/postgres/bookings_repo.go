package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slotwise/bookings/internal/domain"
)

type BookingRepo interface {
	Create(ctx context.Context, ownerID int64, req domain.BookingRequest, startsAt, endsAt time.Time) (*domain.Booking, error)
	GetByIDWithToken(ctx context.Context, id int64, token string) (*domain.Booking, error)
	CancelWithToken(ctx context.Context, id int64, token string) (bool, error)
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Booking, error)
}

type BookingRepoImpl struct{ pool *pgxpool.Pool }

func NewBookingRepo(pool *pgxpool.Pool) *BookingRepoImpl { return &BookingRepoImpl{pool: pool} }

const bookingCols = `id, manage_token, owner_id, status,
requester_name, requester_email, notes,
starts_at, ends_at, created_at, updated_at`

func (r *BookingRepoImpl) Create(ctx context.Context, ownerID int64, req domain.BookingRequest, startsAt, endsAt time.Time) (*domain.Booking, error) {
	const q = `INSERT INTO bookings (
    manage_token, owner_id, status,
    requester_name, requester_email, notes,
    starts_at, ends_at
  ) VALUES ($1,$2,'pending',$3,$4,$5,$6,$7)
  RETURNING ` + bookingCols

	tok := uuid.NewString()
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var b domain.Booking
	err := r.pool.QueryRow(ctx, q, tok, ownerID,
		req.Name, req.Email, req.Notes,
		startsAt, endsAt,
	).Scan(
		&b.ID, &b.ManageToken, &b.OwnerID, &b.Status,
		&b.RequesterName, &b.RequesterEmail, &b.Notes,
		&b.StartsAt, &b.EndsAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepoImpl) GetByIDWithToken(ctx context.Context, id int64, token string) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id=$1 AND manage_token=$2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var b domain.Booking
	err := r.pool.QueryRow(ctx, q, id, token).Scan(
		&b.ID, &b.ManageToken, &b.OwnerID, &b.Status,
		&b.RequesterName, &b.RequesterEmail, &b.Notes,
		&b.StartsAt, &b.EndsAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &b, err
}

func (r *BookingRepoImpl) CancelWithToken(ctx context.Context, id int64, token string) (bool, error) {
	const q = `UPDATE bookings SET status='canceled', updated_at=now()
  WHERE id=$1 AND manage_token=$2 AND status <> 'canceled'`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	ct, err := r.pool.Exec(ctx, q, id, token)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *BookingRepoImpl) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const q = `SELECT ` + bookingCols + ` FROM bookings
  WHERE owner_id=$1 ORDER BY starts_at DESC LIMIT $2 OFFSET $3`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bs := make([]domain.Booking, 0, limit)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID, &b.ManageToken, &b.OwnerID, &b.Status,
			&b.RequesterName, &b.RequesterEmail, &b.Notes,
			&b.StartsAt, &b.EndsAt, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		bs = append(bs, b)
	}
	return bs, rows.Err()
}
