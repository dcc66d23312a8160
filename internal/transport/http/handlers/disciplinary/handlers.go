package disciplinaryhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/madmenmarketingindia/mad-rating/internal/auth"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/audit"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/disciplinary"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/api"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/middleware"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/shared"
)

// defaultReviewHorizonDays bounds the upcoming-reviews card.
const defaultReviewHorizonDays = 14

type Handler struct {
	Store *disciplinary.Store
	Audit *audit.Service
}

func NewHandler(store *disciplinary.Store, auditor *audit.Service) *Handler {
	return &Handler{Store: store, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermDisciplinaryRead)).Get("/", h.handleList)
	r.With(middleware.RequirePermission(auth.PermDisciplinaryWrite)).Post("/", h.handleCreate)
	// The self view only needs authentication; employees read their own
	// actions without the admin permission.
	r.Get("/employee", h.handleSelf)
	r.With(middleware.RequirePermission(auth.PermDisciplinaryRead)).Get("/upcoming-reviews", h.handleUpcomingReviews)
	r.Route("/{actionID}", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermDisciplinaryRead)).Get("/", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermDisciplinaryWrite)).Put("/", h.handleUpdate)
	})
}

// withDaysLeft decorates actions with the derived review countdown.
type actionView struct {
	disciplinary.Action
	DaysLeftInReview int `json:"daysLeftInReview"`
}

func view(a disciplinary.Action, now time.Time) actionView {
	return actionView{Action: a, DaysLeftInReview: disciplinary.DaysLeftInReview(a, now)}
}

func views(actions []disciplinary.Action, now time.Time) []actionView {
	out := make([]actionView, 0, len(actions))
	for _, a := range actions {
		out = append(out, view(a, now))
	}
	return out
}

type actionRequest struct {
	EmployeeID       string `json:"employeeId"`
	Type             string `json:"type"`
	Reason           string `json:"reason"`
	Status           string `json:"status"`
	ReviewPeriodDays int    `json:"reviewPeriodDays"`
	Date             string `json:"date"`
}

func (h *Handler) validate(w http.ResponseWriter, requestID string, payload actionRequest) (disciplinary.Action, bool) {
	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	v.Required("reason", payload.Reason, "reason is required")
	v.Enum("type", payload.Type, disciplinary.Types, "unknown action type")
	v.Enum("status", payload.Status, disciplinary.Statuses, "unknown status")
	v.IntRange("reviewPeriodDays", payload.ReviewPeriodDays, 0, disciplinary.MaxReviewPeriodDays)

	actionDate := time.Now()
	if payload.Date != "" {
		if parsed, ok := v.Date("date", payload.Date); ok {
			actionDate = parsed
		}
	}
	if v.Reject(w, requestID) {
		return disciplinary.Action{}, false
	}

	return disciplinary.Action{
		EmployeeID:       payload.EmployeeID,
		Type:             payload.Type,
		Reason:           payload.Reason,
		Status:           payload.Status,
		ReviewPeriodDays: payload.ReviewPeriodDays,
		ActionDate:       actionDate,
	}, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	var payload actionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if payload.Status == "" {
		payload.Status = disciplinary.StatusActive
	}
	action, ok := h.validate(w, requestID, payload)
	if !ok {
		return
	}

	created, err := h.Store.Create(r.Context(), action)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create disciplinary action", requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), actor.UserID, "disciplinary.create", "disciplinary_action", created.ID, requestID, shared.ClientIP(r), nil, created); err != nil {
		slog.ErrorContext(r.Context(), "audit disciplinary.create failed", "error", err)
	}

	api.Created(w, view(created, time.Now()), requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	actionID := chi.URLParam(r, "actionID")
	existing, err := h.Store.Get(r.Context(), actionID)
	if err != nil {
		if errors.Is(err, disciplinary.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "disciplinary action not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to fetch disciplinary action", requestID)
		return
	}

	var payload actionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	action, ok := h.validate(w, requestID, payload)
	if !ok {
		return
	}
	action.ID = actionID

	updated, err := h.Store.Update(r.Context(), action)
	if err != nil {
		if errors.Is(err, disciplinary.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "disciplinary action not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to update disciplinary action", requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), actor.UserID, "disciplinary.update", "disciplinary_action", actionID, requestID, shared.ClientIP(r), existing, updated); err != nil {
		slog.ErrorContext(r.Context(), "audit disciplinary.update failed", "error", err)
	}

	api.Success(w, view(updated, time.Now()), requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	action, err := h.Store.Get(r.Context(), chi.URLParam(r, "actionID"))
	if err != nil {
		if errors.Is(err, disciplinary.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "disciplinary action not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to fetch disciplinary action", requestID)
		return
	}
	api.Success(w, view(action, time.Now()), requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	status := r.URL.Query().Get("status")
	if status != "" {
		v := shared.NewValidator()
		v.Enum("status", status, disciplinary.Statuses, "unknown status")
		if v.Reject(w, requestID) {
			return
		}
	}

	actions, err := h.Store.List(r.Context(), status)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list disciplinary actions", requestID)
		return
	}
	api.Success(w, views(actions, time.Now()), requestID)
}

// handleSelf returns the signed-in employee's own actions.
func (h *Handler) handleSelf(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	if user.EmployeeID == "" {
		api.Success(w, []actionView{}, requestID)
		return
	}

	actions, err := h.Store.ByEmployee(r.Context(), user.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list disciplinary actions", requestID)
		return
	}
	api.Success(w, views(actions, time.Now()), requestID)
}

func (h *Handler) handleUpcomingReviews(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	horizon := defaultReviewHorizonDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > disciplinary.MaxReviewPeriodDays {
			shared.FailValidation(w, requestID, []shared.ValidationIssue{
				{Field: "days", Reason: "days must be a number between 1 and 365"},
			})
			return
		}
		horizon = parsed
	}

	actions, err := h.Store.Unresolved(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list disciplinary actions", requestID)
		return
	}

	now := time.Now()
	due := make([]actionView, 0)
	for _, a := range actions {
		if disciplinary.ReviewDue(a, now, horizon) {
			due = append(due, view(a, now))
		}
	}
	api.Success(w, due, requestID)
}
