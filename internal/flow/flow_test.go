package flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/slotwise/bookings/internal/domain"
)

type mockSubmitter struct {
	calls   int
	lastReq domain.BookingRequest
	lastAt  time.Time
	err     error
}

func (m *mockSubmitter) Submit(_ context.Context, _ int64, slotStart time.Time, req domain.BookingRequest) error {
	m.calls++
	m.lastReq = req
	m.lastAt = slotStart
	return m.err
}

func availableSlot() domain.TimeSlot {
	start := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	return domain.TimeSlot{Start: start, End: start.Add(30 * time.Minute), Available: true}
}

func validForm() domain.BookingRequest {
	return domain.BookingRequest{Name: "Ada Lovelace", Email: "ada@example.com", Notes: "first visit"}
}

func TestFlowHappyPath(t *testing.T) {
	sub := &mockSubmitter{}
	f := New(7, sub)

	if f.State() != StateIdle {
		t.Fatalf("initial state = %s, want idle", f.State())
	}

	slot := availableSlot()
	if err := f.Select(slot); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if f.State() != StateComposing {
		t.Fatalf("state after select = %s, want composing", f.State())
	}

	if err := f.SetForm(validForm()); err != nil {
		t.Fatalf("SetForm: %v", err)
	}
	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if f.State() != StateIdle {
		t.Errorf("state after success = %s, want idle", f.State())
	}
	if sub.calls != 1 {
		t.Errorf("submitter called %d times, want 1", sub.calls)
	}
	if !sub.lastAt.Equal(slot.Start) {
		t.Errorf("submitted slot start %v, want %v", sub.lastAt, slot.Start)
	}
	if f.Form() != (domain.BookingRequest{}) {
		t.Error("form not cleared after success")
	}
}

func TestFlowRejectsUnavailableSlot(t *testing.T) {
	f := New(7, &mockSubmitter{})

	slot := availableSlot()
	slot.Available = false
	if err := f.Select(slot); !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("Select(unavailable) error = %v, want ErrSlotUnavailable", err)
	}
	if f.State() != StateIdle {
		t.Errorf("state = %s, want idle", f.State())
	}
}

func TestFlowSubmissionFailureRetainsForm(t *testing.T) {
	sub := &mockSubmitter{err: errors.New("collaborator down")}
	f := New(7, sub)

	if err := f.Select(availableSlot()); err != nil {
		t.Fatalf("Select: %v", err)
	}
	form := validForm()
	if err := f.SetForm(form); err != nil {
		t.Fatalf("SetForm: %v", err)
	}

	err := f.Submit(context.Background())
	if err == nil {
		t.Fatal("expected submission error")
	}

	// Failure must surface the error and keep the entered data, back in
	// composing so the requester can retry explicitly.
	if f.State() != StateComposing {
		t.Errorf("state after failure = %s, want composing", f.State())
	}
	if f.Form() != form {
		t.Errorf("form after failure = %+v, want retained %+v", f.Form(), form)
	}
	if f.Err() == nil {
		t.Error("Err() should surface the failure")
	}
	if sub.calls != 1 {
		t.Errorf("submitter called %d times, want 1 (no auto-retry)", sub.calls)
	}

	// Explicit retry after the collaborator recovers.
	sub.err = nil
	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("retry Submit: %v", err)
	}
	if f.State() != StateIdle {
		t.Errorf("state after retry = %s, want idle", f.State())
	}
	if sub.calls != 2 {
		t.Errorf("submitter called %d times, want 2", sub.calls)
	}
}

func TestFlowInvalidFormBlocksSubmission(t *testing.T) {
	sub := &mockSubmitter{}
	f := New(7, sub)

	if err := f.Select(availableSlot()); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := f.SetForm(domain.BookingRequest{Name: "", Email: "nope"}); err != nil {
		t.Fatalf("SetForm: %v", err)
	}

	if err := f.Submit(context.Background()); err == nil {
		t.Fatal("expected validation error")
	}
	if sub.calls != 0 {
		t.Errorf("submitter called %d times for invalid form, want 0", sub.calls)
	}
	if f.State() != StateComposing {
		t.Errorf("state = %s, want composing", f.State())
	}
}

func TestFlowCancelDiscardsForm(t *testing.T) {
	f := New(7, &mockSubmitter{})

	if err := f.Select(availableSlot()); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := f.SetForm(validForm()); err != nil {
		t.Fatalf("SetForm: %v", err)
	}
	if err := f.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	if f.State() != StateIdle {
		t.Errorf("state after cancel = %s, want idle", f.State())
	}
	if f.Form() != (domain.BookingRequest{}) {
		t.Error("form not discarded on cancel")
	}
}

func TestFlowSetFormRequiresComposing(t *testing.T) {
	f := New(7, &mockSubmitter{})
	if err := f.SetForm(validForm()); !errors.Is(err, ErrNotComposing) {
		t.Errorf("SetForm in idle error = %v, want ErrNotComposing", err)
	}
	if err := f.Submit(context.Background()); !errors.Is(err, ErrNotComposing) {
		t.Errorf("Submit in idle error = %v, want ErrNotComposing", err)
	}
}
