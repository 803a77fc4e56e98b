// Package notify consumes booking events and sends requester emails.
package notify

import (
	"encoding/json"

	"github.com/slotwise/bookings/internal/domain"
	"github.com/slotwise/bookings/internal/mailer"
	"github.com/slotwise/bookings/pkg/events"
	"github.com/slotwise/bookings/pkg/logger"
)

type Consumer struct {
	bus  events.Subscriber
	mail mailer.Service
}

func NewConsumer(bus events.Subscriber, mail mailer.Service) *Consumer {
	return &Consumer{bus: bus, mail: mail}
}

// Start subscribes to booking events. Delivery is best effort; a failed
// email is logged, never retried here.
func (c *Consumer) Start() error {
	if err := c.bus.QueueSubscribe(events.BookingCreated, "notify", c.handleCreated); err != nil {
		return err
	}
	return c.bus.QueueSubscribe(events.BookingCanceled, "notify", c.handleCanceled)
}

func (c *Consumer) handleCreated(msg *events.Message) {
	var event events.BookingCreatedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("Failed to decode booking created event", "error", err)
		return
	}

	booking := &domain.Booking{
		ID:             event.BookingID,
		OwnerID:        event.OwnerID,
		RequesterName:  event.RequesterName,
		RequesterEmail: event.RequesterEmail,
		StartsAt:       event.StartsAt,
		EndsAt:         event.EndsAt,
		Notes:          event.Notes,
	}
	if err := c.mail.SendBookingConfirmation(booking); err != nil {
		logger.Error("Failed to send booking confirmation", "error", err, "booking_id", event.BookingID)
	}
}

func (c *Consumer) handleCanceled(msg *events.Message) {
	var event events.BookingCanceledEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("Failed to decode booking canceled event", "error", err)
		return
	}

	if err := c.mail.SendBookingCanceled(event.RequesterEmail, event.BookingID); err != nil {
		logger.Error("Failed to send cancellation email", "error", err, "booking_id", event.BookingID)
	}
}
