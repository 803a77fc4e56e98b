package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/slotwise/bookings/internal/domain"
	"github.com/slotwise/bookings/internal/http/response"
)

type daySlotsResponse struct {
	OwnerID int64             `json:"owner_id"`
	Date    string            `json:"date"`
	Slots   []domain.TimeSlot `json:"slots"`
}

// GetDaySlots returns the ordered candidate slots for one owner and
// date. Optional query params override the window (from, to, in hours)
// and granularity (step, in minutes).
func (h *Handlers) GetDaySlots(w http.ResponseWriter, r *http.Request) {
	ownerID, err := strconv.ParseInt(chi.URLParam(r, "ownerID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid owner ID")
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		response.BadRequest(w, "Missing date parameter (YYYY-MM-DD)")
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		response.BadRequest(w, "Invalid date, want YYYY-MM-DD")
		return
	}

	window, step, err := parseSlotParams(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	slots := h.availability.DaySlots(r.Context(), ownerID, date, window, step)

	writeJSON(w, http.StatusOK, daySlotsResponse{
		OwnerID: ownerID,
		Date:    dateStr,
		Slots:   slots,
	})
}

func parseSlotParams(r *http.Request) (domain.SlotWindow, time.Duration, error) {
	var window domain.SlotWindow
	var step time.Duration

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from != "" || to != "" {
		fromHour, err := parseHour(from)
		if err != nil {
			return window, 0, err
		}
		toHour, err := parseHour(to)
		if err != nil {
			return window, 0, err
		}
		if fromHour >= toHour {
			return window, 0, errInvalidWindow
		}
		window = domain.SlotWindow{StartHour: fromHour, EndHour: toHour}
	}

	if v := r.URL.Query().Get("step"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 || minutes > 24*60 {
			return window, 0, errInvalidStep
		}
		step = time.Duration(minutes) * time.Minute
	}

	return window, step, nil
}

func parseHour(s string) (int, error) {
	h, err := strconv.Atoi(s)
	if err != nil || h < 0 || h > 24 {
		return 0, errInvalidWindow
	}
	return h, nil
}

var (
	errInvalidWindow = &paramError{"invalid window, want from < to in hours 0-24"}
	errInvalidStep   = &paramError{"invalid step, want minutes 1-1440"}
)

type paramError struct{ msg string }

func (e *paramError) Error() string { return e.msg }
