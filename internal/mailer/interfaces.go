package mailer

import "github.com/slotwise/bookings/internal/domain"

type Service interface {
	SendBookingConfirmation(booking *domain.Booking) error
	SendBookingCanceled(toEmail string, bookingID int64) error
}
