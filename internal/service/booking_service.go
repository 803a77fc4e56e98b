package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/slotwise/bookings/internal/domain"
	"github.com/slotwise/bookings/internal/flow"
	"github.com/slotwise/bookings/internal/repo/postgres"
	"github.com/slotwise/bookings/pkg/events"
	"github.com/slotwise/bookings/pkg/logger"
)

// The booking service doubles as the submission collaborator for the
// client-side booking flow.
var _ flow.Submitter = (BookingService)(nil)

var (
	ErrSlotUnavailable = errors.New("requested slot is not available")
	ErrPastSlot        = errors.New("requested slot is in the past")
)

type BookingService interface {
	CreateBooking(ctx context.Context, ownerID int64, startsAt time.Time, req domain.BookingRequest) (*domain.Booking, error)
	GetBookingWithToken(ctx context.Context, id int64, token string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id int64, token string) (bool, error)
	ListOwnerBookings(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Booking, error)

	// Submit satisfies the booking flow's Submitter contract.
	Submit(ctx context.Context, ownerID int64, slotStart time.Time, req domain.BookingRequest) error
}

type bookingService struct {
	bookings     postgres.BookingRepo
	availability AvailabilityService
	bus          events.Publisher
	step         time.Duration
}

func NewBookingService(
	bookings postgres.BookingRepo,
	availability AvailabilityService,
	bus events.Publisher,
	step time.Duration,
) BookingService {
	return &bookingService{
		bookings:     bookings,
		availability: availability,
		bus:          bus,
		step:         step,
	}
}

// CreateBooking turns a chosen slot plus requester fields into a stored
// booking. The slot is re-checked against the owner's schedule so a
// stale client cannot book outside availability. No automatic retry on
// failure; the caller decides whether to resubmit.
func (s *bookingService) CreateBooking(ctx context.Context, ownerID int64, startsAt time.Time, req domain.BookingRequest) (*domain.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if startsAt.Before(time.Now()) {
		return nil, ErrPastSlot
	}

	schedule, err := s.availability.GetSchedule(ctx, ownerID)
	if err != nil {
		// Booking fails closed when availability cannot be confirmed.
		return nil, fmt.Errorf("cannot confirm availability: %w", err)
	}

	tod, err := domain.NewTimeOfDay(startsAt.Hour(), startsAt.Minute())
	if err != nil {
		return nil, err
	}
	if !domain.IsSlotAvailable(schedule, startsAt, tod) {
		return nil, ErrSlotUnavailable
	}

	booking, err := s.bookings.Create(ctx, ownerID, req, startsAt, startsAt.Add(s.step))
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if s.bus != nil {
		event := events.BookingCreatedEvent{
			BookingID:      booking.ID,
			OwnerID:        booking.OwnerID,
			RequesterName:  booking.RequesterName,
			RequesterEmail: booking.RequesterEmail,
			StartsAt:       booking.StartsAt,
			EndsAt:         booking.EndsAt,
			Notes:          booking.Notes,
			CreatedAt:      booking.CreatedAt,
		}
		if err := s.bus.Publish(ctx, events.BookingCreated, event); err != nil {
			logger.ErrorContext(ctx, "Failed to publish booking created event", "error", err, "booking_id", booking.ID)
		}
	}

	return booking, nil
}

func (s *bookingService) GetBookingWithToken(ctx context.Context, id int64, token string) (*domain.Booking, error) {
	return s.bookings.GetByIDWithToken(ctx, id, token)
}

func (s *bookingService) CancelBooking(ctx context.Context, id int64, token string) (bool, error) {
	booking, err := s.bookings.GetByIDWithToken(ctx, id, token)
	if err != nil {
		return false, err
	}
	if booking == nil {
		return false, nil
	}
	if !booking.CanCancel() {
		return false, nil
	}

	canceled, err := s.bookings.CancelWithToken(ctx, id, token)
	if err != nil {
		return false, fmt.Errorf("failed to cancel booking: %w", err)
	}

	if canceled && s.bus != nil {
		event := events.BookingCanceledEvent{
			BookingID:      booking.ID,
			RequesterEmail: booking.RequesterEmail,
			Reason:         "requester_canceled",
			CanceledAt:     time.Now(),
		}
		if err := s.bus.Publish(ctx, events.BookingCanceled, event); err != nil {
			logger.ErrorContext(ctx, "Failed to publish booking canceled event", "error", err, "booking_id", booking.ID)
		}
	}

	return canceled, nil
}

func (s *bookingService) ListOwnerBookings(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *bookingService) Submit(ctx context.Context, ownerID int64, slotStart time.Time, req domain.BookingRequest) error {
	_, err := s.CreateBooking(ctx, ownerID, slotStart, req)
	return err
}
