package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/madmenmarketingindia/mad-rating/internal/auth"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/user"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/api"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/middleware"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/shared"
)

type Handler struct {
	Users     *user.Store
	JWTSecret string
	JWTTTL    time.Duration
}

func NewHandler(users *user.Store, secret string, ttl time.Duration) *Handler {
	return &Handler{Users: users, JWTSecret: secret, JWTTTL: ttl}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Get("/me", h.handleMe)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	v.Required("password", payload.Password, "password is required")
	if v.Reject(w, requestID) {
		return
	}

	u, hash, err := h.Users.FindByEmail(r.Context(), payload.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid email or password", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "login failed", requestID)
		return
	}
	if u.Status != user.StatusActive {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "account is inactive", requestID)
		return
	}
	if err := auth.CheckPassword(hash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid email or password", requestID)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{
		UserID:     u.ID,
		EmployeeID: u.EmployeeID,
		Role:       u.Role,
		Name:       u.Name,
	}, h.JWTTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "login failed", requestID)
		return
	}

	if err := h.Users.UpdateLastLogin(r.Context(), u.ID); err != nil {
		slog.ErrorContext(r.Context(), "last login update failed", "error", err, "userId", u.ID)
	}

	api.Success(w, map[string]any{
		"token": token,
		"user":  u,
	}, requestID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	uc, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	u, err := h.Users.Get(r.Context(), uc.UserID)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	api.Success(w, u, requestID)
}
