package userhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/madmenmarketingindia/mad-rating/internal/auth"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/audit"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/user"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/api"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/middleware"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/shared"
)

type Handler struct {
	Store *user.Store
	Audit *audit.Service
}

func NewHandler(store *user.Store, auditor *audit.Service) *Handler {
	return &Handler{Store: store, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermUsersRead)).Get("/", h.handleList)
	r.With(middleware.RequirePermission(auth.PermUsersWrite)).Post("/register", h.handleRegister)
	r.Route("/{userID}", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermUsersRead)).Get("/", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermUsersWrite)).Put("/", h.handleUpdate)
		r.With(middleware.RequirePermission(auth.PermUsersWrite)).Put("/status", h.handleSetStatus)
	})
}

type registerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	EmployeeID string `json:"employeeId"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("email", payload.Email, "email is required")
	v.Required("password", payload.Password, "password is required")
	if len(payload.Password) > 0 && len(payload.Password) < 8 {
		v.Add("password", "password must be at least 8 characters")
	}
	if !auth.ValidRole(payload.Role) {
		v.Add("role", "unknown role")
	}
	if v.Reject(w, requestID) {
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create user", requestID)
		return
	}

	created, err := h.Store.Create(r.Context(), user.User{
		Name:       payload.Name,
		Email:      payload.Email,
		Role:       payload.Role,
		Status:     user.StatusActive,
		EmployeeID: payload.EmployeeID,
	}, hash)
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			api.Fail(w, http.StatusConflict, "conflict", "user email already exists", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create user", requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), actor.UserID, "user.create", "user", created.ID, requestID, shared.ClientIP(r), nil, created); err != nil {
		slog.ErrorContext(r.Context(), "audit user.create failed", "error", err)
	}

	api.Created(w, created, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	users, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list users", requestID)
		return
	}
	api.Success(w, users, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	u, err := h.Store.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "user not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to fetch user", requestID)
		return
	}
	api.Success(w, u, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	userID := chi.URLParam(r, "userID")
	existing, err := h.Store.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "user not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to fetch user", requestID)
		return
	}

	var payload user.User
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	payload.ID = userID

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("email", payload.Email, "email is required")
	if !auth.ValidRole(payload.Role) {
		v.Add("role", "unknown role")
	}
	if v.Reject(w, requestID) {
		return
	}

	updated, err := h.Store.Update(r.Context(), payload)
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			api.Fail(w, http.StatusConflict, "conflict", "user email already exists", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to update user", requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), actor.UserID, "user.update", "user", userID, requestID, shared.ClientIP(r), existing, updated); err != nil {
		slog.ErrorContext(r.Context(), "audit user.update failed", "error", err)
	}

	api.Success(w, updated, requestID)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	userID := chi.URLParam(r, "userID")

	var payload statusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Enum("status", payload.Status, []string{user.StatusActive, user.StatusInactive}, "unknown status")
	if v.Reject(w, requestID) {
		return
	}

	if err := h.Store.SetStatus(r.Context(), userID, payload.Status); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "user not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to update user status", requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), actor.UserID, "user.status", "user", userID, requestID, shared.ClientIP(r), nil, payload); err != nil {
		slog.ErrorContext(r.Context(), "audit user.status failed", "error", err)
	}

	api.Success(w, map[string]string{"id": userID, "status": payload.Status}, requestID)
}
