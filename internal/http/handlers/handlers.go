package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/slotwise/bookings/internal/repo/postgres"
	"github.com/slotwise/bookings/internal/service"
	"github.com/slotwise/bookings/pkg/auth"
	"github.com/slotwise/bookings/pkg/config"
	"github.com/slotwise/bookings/pkg/logger"
)

type ctxKey string

const claimsKey ctxKey = "claims"

type Handlers struct {
	availability service.AvailabilityService
	bookings     service.BookingService
	users        postgres.UserRepo
	config       *config.Config
}

func New(
	availability service.AvailabilityService,
	bookings service.BookingService,
	users postgres.UserRepo,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		availability: availability,
		bookings:     bookings,
		users:        users,
		config:       cfg,
	}
}

// RequireJWT guards owner-only routes
func (h *Handlers) RequireJWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "Missing or invalid authorization header", http.StatusUnauthorized)
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.Parse(token, h.config.Auth.JWTSecret)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), logger.OwnerIDKey, claims.Sub)
		ctx = context.WithValue(ctx, claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getClaims(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(claimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	return limit, offset
}
