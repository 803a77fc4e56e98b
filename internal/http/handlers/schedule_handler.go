package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/slotwise/bookings/internal/domain"
	"github.com/slotwise/bookings/internal/http/response"
	"github.com/slotwise/bookings/pkg/logger"
)

// GetMySchedule returns the authenticated owner's weekly schedule.
func (h *Handlers) GetMySchedule(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	schedule, err := h.availability.GetSchedule(r.Context(), claims.Sub)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load schedule", "error", err)
		response.InternalError(w, "Failed to load schedule")
		return
	}
	if schedule == nil {
		schedule = domain.WeeklySchedule{}
	}

	writeJSON(w, http.StatusOK, schedule)
}

// PutMySchedule replaces the authenticated owner's weekly schedule.
// Malformed ranges are rejected here so a broken schedule never reaches
// evaluation.
func (h *Handlers) PutMySchedule(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var schedule domain.WeeklySchedule
	if err := json.NewDecoder(r.Body).Decode(&schedule); err != nil {
		// Range validation happens during decoding, so a reversed range
		// surfaces as a decode error with the offending values.
		response.WriteErrorWithDetails(w, http.StatusUnprocessableEntity, "Invalid schedule", response.CodeScheduleInvalid, err.Error())
		return
	}

	if err := h.availability.SetSchedule(r.Context(), claims.Sub, schedule); err != nil {
		if schedule.Validate() != nil {
			response.WriteErrorWithDetails(w, http.StatusUnprocessableEntity, "Invalid schedule", response.CodeScheduleInvalid, err.Error())
			return
		}
		logger.ErrorContext(r.Context(), "Failed to store schedule", "error", err)
		response.InternalError(w, "Failed to store schedule")
		return
	}

	writeJSON(w, http.StatusOK, schedule)
}
