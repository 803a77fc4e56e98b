// Package flow implements the booking submission state machine: a slot
// is chosen, the requester fills the form, and one explicit confirmation
// hands the request to the submission collaborator.
package flow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/slotwise/bookings/internal/domain"
)

type State string

const (
	StateIdle       State = "idle"
	StateComposing  State = "composing"
	StateSubmitting State = "submitting"
)

var (
	ErrSlotUnavailable = errors.New("selected slot is not available")
	ErrNotComposing    = errors.New("no slot selected")
	ErrBusy            = errors.New("submission already in progress")
)

// Submitter is the external collaborator receiving the confirmed
// booking intent. Exactly one call per confirmation; the flow never
// retries on its own.
type Submitter interface {
	Submit(ctx context.Context, ownerID int64, slotStart time.Time, req domain.BookingRequest) error
}

// Flow drives one booking from slot selection to submission outcome.
// It is UI-side state and not safe for concurrent use.
type Flow struct {
	submitter Submitter
	ownerID   int64

	state State
	slot  domain.TimeSlot
	form  domain.BookingRequest
	err   error
}

func New(ownerID int64, submitter Submitter) *Flow {
	return &Flow{
		submitter: submitter,
		ownerID:   ownerID,
		state:     StateIdle,
	}
}

func (f *Flow) State() State { return f.state }

// Err returns the error surfaced by the last failed submission, if any.
func (f *Flow) Err() error { return f.err }

func (f *Flow) Slot() domain.TimeSlot { return f.slot }

func (f *Flow) Form() domain.BookingRequest { return f.form }

// Select moves Idle -> Composing for an available slot. Selecting while
// already composing replaces the slot but keeps the entered form.
func (f *Flow) Select(slot domain.TimeSlot) error {
	if f.state == StateSubmitting {
		return ErrBusy
	}
	if !slot.Available {
		return ErrSlotUnavailable
	}
	f.slot = slot
	f.state = StateComposing
	f.err = nil
	return nil
}

// SetForm records the requester-entered fields while composing.
func (f *Flow) SetForm(req domain.BookingRequest) error {
	if f.state != StateComposing {
		return ErrNotComposing
	}
	f.form = req
	return nil
}

// Cancel abandons the current slot and discards the form contents.
func (f *Flow) Cancel() error {
	if f.state == StateSubmitting {
		return ErrBusy
	}
	f.state = StateIdle
	f.slot = domain.TimeSlot{}
	f.form = domain.BookingRequest{}
	f.err = nil
	return nil
}

// Submit validates the form and hands the booking intent to the
// collaborator. On success the flow returns to Idle with a cleared
// form; on failure it returns to Composing with the entered data
// retained and the error kept visible through Err.
func (f *Flow) Submit(ctx context.Context) error {
	if f.state != StateComposing {
		return ErrNotComposing
	}

	if err := f.form.Validate(); err != nil {
		f.err = err
		return err
	}

	f.state = StateSubmitting
	err := f.submitter.Submit(ctx, f.ownerID, f.slot.Start, f.form)
	if err != nil {
		f.state = StateComposing
		f.err = fmt.Errorf("booking submission failed: %w", err)
		return f.err
	}

	f.state = StateIdle
	f.slot = domain.TimeSlot{}
	f.form = domain.BookingRequest{}
	f.err = nil
	return nil
}
