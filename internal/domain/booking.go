package domain

import (
	"fmt"
	"time"

	"github.com/slotwise/bookings/internal/utils"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCanceled  BookingStatus = "canceled"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCanceled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// BookingRequest carries the requester-supplied form fields for a chosen
// slot. It is a value object; persistence happens elsewhere.
type BookingRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Notes string `json:"notes,omitempty"`
}

// Validate rejects a request before submission is attempted. Email only
// needs to look like an address; the submission collaborator owns any
// stricter checks.
func (r BookingRequest) Validate() error {
	if utils.NormalizeString(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !utils.IsValidEmail(r.Email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// Booking is a confirmed booking intent stored for an owner's slot.
type Booking struct {
	ID             int64         `json:"id"`
	ManageToken    string        `json:"manage_token"`
	OwnerID        int64         `json:"owner_id"`
	Status         BookingStatus `json:"status"`
	RequesterName  string        `json:"requester_name"`
	RequesterEmail string        `json:"requester_email"`
	Notes          string        `json:"notes"`
	StartsAt       time.Time     `json:"starts_at"`
	EndsAt         time.Time     `json:"ends_at"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// CanCancel reports whether the booking is still cancelable.
func (b *Booking) CanCancel() bool {
	return b.Status != BookingCanceled
}
