package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/alexedwards/argon2id"

	"github.com/slotwise/bookings/internal/http/response"
	"github.com/slotwise/bookings/internal/utils"
	"github.com/slotwise/bookings/pkg/auth"
	"github.com/slotwise/bookings/pkg/logger"
)

type registerReq struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenRes struct {
	Token string `json:"token"`
}

// Register creates a schedule owner account.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in registerReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	in.Email = utils.NormalizeEmail(in.Email)
	in.Name = utils.NormalizeString(in.Name)
	if !utils.IsValidEmail(in.Email) {
		response.BadRequest(w, "Invalid email address")
		return
	}
	if in.Name == "" {
		response.BadRequest(w, "Name is required")
		return
	}
	if len(in.Password) < 8 {
		response.BadRequest(w, "Password must be at least 8 characters")
		return
	}

	existing, err := h.users.FindByEmail(r.Context(), in.Email)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to look up user", "error", err)
		response.InternalError(w, "Registration failed")
		return
	}
	if existing != nil {
		response.WriteError(w, http.StatusConflict, "Email already registered", response.CodeEmailExists)
		return
	}

	hash, err := argon2id.CreateHash(in.Password, argon2id.DefaultParams)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to hash password", "error", err)
		response.InternalError(w, "Registration failed")
		return
	}

	user, err := h.users.Create(r.Context(), in.Email, in.Name, hash)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to create user", "error", err)
		response.InternalError(w, "Registration failed")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login exchanges owner credentials for an access token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in loginReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), utils.NormalizeEmail(in.Email))
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to look up user", "error", err)
		response.InternalError(w, "Login failed")
		return
	}
	if user == nil {
		response.Unauthorized(w, "Invalid credentials")
		return
	}

	ok, _ := argon2id.ComparePasswordAndHash(in.Password, user.PasswordHash)
	if !ok {
		response.Unauthorized(w, "Invalid credentials")
		return
	}

	token, err := auth.NewAccessToken(user.ID, user.Email, h.config.Auth.JWTSecret, h.config.Auth.AccessTokenTTL)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to issue token", "error", err)
		response.InternalError(w, "Login failed")
		return
	}

	writeJSON(w, http.StatusOK, tokenRes{Token: token})
}
