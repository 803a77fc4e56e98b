package mailer

import (
	"github.com/slotwise/bookings/internal/domain"
	"github.com/slotwise/bookings/pkg/logger"
)

// DevMailer logs emails instead of sending them.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendBookingConfirmation(booking *domain.Booking) error {
	logger.Info("[DEV MAIL] Booking confirmation",
		"to", booking.RequesterEmail,
		"name", booking.RequesterName,
		"booking_id", booking.ID,
		"starts_at", booking.StartsAt,
	)
	return nil
}

func (d *DevMailer) SendBookingCanceled(toEmail string, bookingID int64) error {
	logger.Info("[DEV MAIL] Booking canceled",
		"to", toEmail,
		"booking_id", bookingID,
	)
	return nil
}
