package ratinghandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/madmenmarketingindia/mad-rating/internal/auth"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/audit"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/rating"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/api"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/middleware"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/shared"
)

type Handler struct {
	Store *rating.Store
	Audit *audit.Service
}

func NewHandler(store *rating.Store, auditor *audit.Service) *Handler {
	return &Handler{Store: store, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermRatingsWrite)).Post("/upsert", h.handleUpsert)
	r.With(middleware.RequirePermission(auth.PermRatingsRead)).Get("/single-month-rating/{employeeID}", h.handleSingleMonth)
	r.With(middleware.RequirePermission(auth.PermRatingsRead)).Get("/yearly-rating/{employeeID}", h.handleYearly)
	r.With(middleware.RequirePermission(auth.PermRatingsRead)).Get("/employee-history/{employeeID}", h.handleHistory)
	r.With(middleware.RequirePermission(auth.PermRatingsRead)).Get("/employee-wise", h.handleEmployeeWise)
	r.With(middleware.RequirePermission(auth.PermRatingsRead)).Get("/company", h.handleCompany)
}

type upsertRequest struct {
	EmployeeID string            `json:"employeeId"`
	Month      int               `json:"month"`
	Year       int               `json:"year"`
	Categories rating.Categories `json:"categories"`
}

func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	var payload upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	v.Period(payload.Month, payload.Year)
	if v.Reject(w, requestID) {
		return
	}

	// Scores clamp silently instead of rejecting.
	clamped := payload.Categories.Clamped()
	avg, _ := rating.AverageScore(clamped)

	saved, err := h.Store.Upsert(r.Context(), rating.MonthlyRating{
		EmployeeID:   payload.EmployeeID,
		Month:        payload.Month,
		Year:         payload.Year,
		Categories:   clamped,
		AverageScore: avg,
		RatedBy:      actor.UserID,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to save rating", requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), actor.UserID, "rating.upsert", "rating", saved.ID, requestID, shared.ClientIP(r), nil, saved); err != nil {
		slog.ErrorContext(r.Context(), "audit rating.upsert failed", "error", err)
	}

	api.Success(w, saved, requestID)
}

func (h *Handler) handleSingleMonth(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	month, year := shared.ParsePeriod(r)

	rec, err := h.Store.SingleMonth(r.Context(), chi.URLParam(r, "employeeID"), month, year)
	if err != nil {
		if errors.Is(err, rating.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "rating not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to fetch rating", requestID)
		return
	}
	api.Success(w, rec, requestID)
}

func (h *Handler) handleYearly(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	_, year := shared.ParsePeriod(r)
	dense, _ := strconv.ParseBool(r.URL.Query().Get("dense"))

	ratings, err := h.Store.Yearly(r.Context(), chi.URLParam(r, "employeeID"), year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to fetch ratings", requestID)
		return
	}
	api.Success(w, map[string]any{
		"year":   year,
		"series": rating.YearlySeries(ratings, dense),
	}, requestID)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	ratings, err := h.Store.History(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to fetch ratings", requestID)
		return
	}
	api.Success(w, ratings, requestID)
}

func (h *Handler) handleEmployeeWise(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	month, year := shared.ParsePeriod(r)

	rows, err := h.Store.EmployeeWise(r.Context(), month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to fetch ratings", requestID)
		return
	}
	api.Success(w, rows, requestID)
}

func (h *Handler) handleCompany(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	month, year := shared.ParsePeriod(r)

	avg, found, err := h.Store.CompanyAverage(r.Context(), month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to compute company rating", requestID)
		return
	}
	api.Success(w, map[string]any{
		"month":     month,
		"year":      year,
		"rated":     found,
		"avgRating": avg,
	}, requestID)
}
