package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/slotwise/bookings/internal/domain"
	"github.com/slotwise/bookings/internal/http/response"
	"github.com/slotwise/bookings/internal/service"
	"github.com/slotwise/bookings/internal/utils"
	"github.com/slotwise/bookings/pkg/logger"
)

type createBookingReq struct {
	OwnerID  int64     `json:"owner_id"`
	StartsAt time.Time `json:"starts_at"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Notes    string    `json:"notes,omitempty"`
}

// CreateBooking accepts a confirmed booking intent for a chosen slot.
func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var in createBookingReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if in.OwnerID <= 0 {
		response.BadRequest(w, "owner_id is required")
		return
	}
	if in.StartsAt.IsZero() {
		response.BadRequest(w, "starts_at is required")
		return
	}

	req := domain.BookingRequest{
		Name:  utils.NormalizeString(in.Name),
		Email: utils.NormalizeEmail(in.Email),
		Notes: utils.NormalizeString(in.Notes),
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	booking, err := h.bookings.CreateBooking(r.Context(), in.OwnerID, in.StartsAt, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlotUnavailable):
			response.WriteError(w, http.StatusConflict, "Requested slot is not available", response.CodeSlotUnavailable)
		case errors.Is(err, service.ErrPastSlot):
			response.WriteError(w, http.StatusBadRequest, "Requested slot is in the past", response.CodePastDateTime)
		default:
			logger.ErrorContext(r.Context(), "Failed to create booking", "error", err)
			response.WriteError(w, http.StatusBadGateway, "Booking could not be submitted, please try again", response.CodeSubmitFailed)
		}
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

// GetBooking returns one booking; the manage token from the
// confirmation protects access.
func (h *Handlers) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, token, ok := bookingRef(w, r)
	if !ok {
		return
	}

	booking, err := h.bookings.GetBookingWithToken(r.Context(), id, token)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load booking", "error", err, "booking_id", id)
		response.InternalError(w, "Failed to load booking")
		return
	}
	if booking == nil {
		response.NotFound(w, "Booking not found")
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// CancelBooking cancels a booking by ID and manage token.
func (h *Handlers) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, token, ok := bookingRef(w, r)
	if !ok {
		return
	}

	canceled, err := h.bookings.CancelBooking(r.Context(), id, token)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to cancel booking", "error", err, "booking_id", id)
		response.InternalError(w, "Failed to cancel booking")
		return
	}
	if !canceled {
		response.NotFound(w, "Booking not found or already canceled")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "canceled"})
}

// ListOwnerBookings lists the authenticated owner's bookings, optionally
// filtered by status.
func (h *Handlers) ListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var status domain.BookingStatus
	if v := r.URL.Query().Get("status"); v != "" {
		parsed, ok := domain.ParseBookingStatus(v)
		if !ok {
			response.BadRequest(w, "Invalid status filter")
			return
		}
		status = parsed
	}

	limit, offset := parsePagination(r)
	bookings, err := h.bookings.ListOwnerBookings(r.Context(), claims.Sub, limit, offset)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list bookings", "error", err)
		response.InternalError(w, "Failed to list bookings")
		return
	}

	if status != "" {
		filtered := make([]domain.Booking, 0, len(bookings))
		for _, b := range bookings {
			if b.Status == status {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"limit":    limit,
		"offset":   offset,
	})
}

func bookingRef(w http.ResponseWriter, r *http.Request) (int64, string, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return 0, "", false
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		response.Unauthorized(w, "Manage token required")
		return 0, "", false
	}

	return id, token, true
}
