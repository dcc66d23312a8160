package holidayhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/madmenmarketingindia/mad-rating/internal/auth"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/audit"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/holiday"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/api"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/middleware"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/shared"
)

type Handler struct {
	Store *holiday.Store
	Audit *audit.Service
}

func NewHandler(store *holiday.Store, auditor *audit.Service) *Handler {
	return &Handler{Store: store, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermHolidaysRead)).Get("/", h.handleList)
	r.With(middleware.RequirePermission(auth.PermHolidaysWrite)).Post("/", h.handleCreate)
	r.With(middleware.RequirePermission(auth.PermHolidaysRead)).Get("/current-month", h.handleCurrentMonth)
	r.Route("/{holidayID}", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermHolidaysRead)).Get("/", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermHolidaysWrite)).Put("/", h.handleUpdate)
		r.With(middleware.RequirePermission(auth.PermHolidaysWrite)).Delete("/", h.handleDelete)
	})
}

type holidayRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
}

func (h *Handler) validate(w http.ResponseWriter, requestID string, payload holidayRequest) (holiday.Holiday, bool) {
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("date", payload.Date, "date is required")
	var date time.Time
	if payload.Date != "" {
		if parsed, ok := v.Date("date", payload.Date); ok {
			date = parsed
		}
	}
	if v.Reject(w, requestID) {
		return holiday.Holiday{}, false
	}
	return holiday.Holiday{
		Name:        payload.Name,
		Date:        date,
		Description: payload.Description,
		Optional:    payload.Optional,
	}, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	var payload holidayRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	rec, ok := h.validate(w, requestID, payload)
	if !ok {
		return
	}

	created, err := h.Store.Create(r.Context(), rec)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create holiday", requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), actor.UserID, "holiday.create", "holiday", created.ID, requestID, shared.ClientIP(r), nil, created); err != nil {
		slog.ErrorContext(r.Context(), "audit holiday.create failed", "error", err)
	}

	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	holidayID := chi.URLParam(r, "holidayID")
	existing, err := h.Store.Get(r.Context(), holidayID)
	if err != nil {
		if errors.Is(err, holiday.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "holiday not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to fetch holiday", requestID)
		return
	}

	var payload holidayRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	rec, ok := h.validate(w, requestID, payload)
	if !ok {
		return
	}
	rec.ID = holidayID

	updated, err := h.Store.Update(r.Context(), rec)
	if err != nil {
		if errors.Is(err, holiday.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "holiday not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to update holiday", requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), actor.UserID, "holiday.update", "holiday", holidayID, requestID, shared.ClientIP(r), existing, updated); err != nil {
		slog.ErrorContext(r.Context(), "audit holiday.update failed", "error", err)
	}

	api.Success(w, updated, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	rec, err := h.Store.Get(r.Context(), chi.URLParam(r, "holidayID"))
	if err != nil {
		if errors.Is(err, holiday.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "holiday not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to fetch holiday", requestID)
		return
	}
	api.Success(w, rec, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	holidayID := chi.URLParam(r, "holidayID")
	if err := h.Store.Delete(r.Context(), holidayID); err != nil {
		if errors.Is(err, holiday.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "holiday not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to delete holiday", requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), actor.UserID, "holiday.delete", "holiday", holidayID, requestID, shared.ClientIP(r), nil, nil); err != nil {
		slog.ErrorContext(r.Context(), "audit holiday.delete failed", "error", err)
	}

	api.Success(w, map[string]string{"id": holidayID}, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	_, year := shared.ParsePeriod(r)

	holidays, err := h.Store.List(r.Context(), year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list holidays", requestID)
		return
	}
	api.Success(w, holidays, requestID)
}

func (h *Handler) handleCurrentMonth(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	now := time.Now()
	holidays, err := h.Store.ForMonth(r.Context(), int(now.Month()), now.Year())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list holidays", requestID)
		return
	}
	api.Success(w, holidays, requestID)
}
