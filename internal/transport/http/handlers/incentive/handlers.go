package incentivehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/madmenmarketingindia/mad-rating/internal/auth"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/audit"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/incentive"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/api"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/middleware"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/shared"
)

type Handler struct {
	Store *incentive.Store
	Audit *audit.Service
}

func NewHandler(store *incentive.Store, auditor *audit.Service) *Handler {
	return &Handler{Store: store, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermIncentivesWrite)).Post("/add-team-incentive", h.handleCreate)
	r.With(middleware.RequirePermission(auth.PermIncentivesRead)).Get("/get-all-incentive", h.handleList)
	r.With(middleware.RequirePermission(auth.PermIncentivesRead)).Get("/incentive/{incentiveID}", h.handleGet)
	r.With(middleware.RequirePermission(auth.PermIncentivesWrite)).Put("/update-incentive/{incentiveID}", h.handleUpdate)
	r.With(middleware.RequirePermission(auth.PermIncentivesWrite)).Delete("/delete-incentive/{incentiveID}", h.handleDelete)
	r.With(middleware.RequirePermission(auth.PermIncentivesRead)).Get("/single-member-incentive/{employeeID}", h.handleMemberShare)
}

type incentiveRequest struct {
	Team        string                  `json:"team"`
	Month       int                     `json:"month"`
	Year        int                     `json:"year"`
	TotalAmount float64                 `json:"totalAmount"`
	Members     []incentive.MemberShare `json:"members"`
	// SplitEqually ignores per-member amounts and divides the pot.
	SplitEqually bool `json:"splitEqually"`
}

func (h *Handler) validate(w http.ResponseWriter, requestID string, payload *incentiveRequest) bool {
	v := shared.NewValidator()
	v.Required("team", payload.Team, "team is required")
	v.Period(payload.Month, payload.Year)
	v.NonNegative("totalAmount", payload.TotalAmount)
	if len(payload.Members) == 0 {
		v.Add("members", "at least one member is required")
	}
	for _, m := range payload.Members {
		if m.EmployeeID == "" {
			v.Add("members.employeeId", "member employee id is required")
		}
		if m.Amount < 0 {
			v.Add("members.amount", "member amount must not be negative")
		}
	}
	if v.Reject(w, requestID) {
		return false
	}

	if payload.SplitEqually {
		shares := incentive.SplitEqually(payload.TotalAmount, len(payload.Members))
		for i := range payload.Members {
			payload.Members[i].Amount = shares[i]
		}
	}

	amounts := make([]float64, len(payload.Members))
	for i, m := range payload.Members {
		amounts[i] = m.Amount
	}
	if err := incentive.ValidateShares(payload.TotalAmount, amounts); err != nil {
		shared.FailValidation(w, requestID, []shared.ValidationIssue{
			{Field: "members", Reason: "member shares exceed the total amount"},
		})
		return false
	}
	return true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	var payload incentiveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if !h.validate(w, requestID, &payload) {
		return
	}

	id, err := h.Store.Create(r.Context(), incentive.TeamIncentive{
		Team:        payload.Team,
		Month:       payload.Month,
		Year:        payload.Year,
		TotalAmount: payload.TotalAmount,
		Members:     payload.Members,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create team incentive", requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), actor.UserID, "incentive.create", "team_incentive", id, requestID, shared.ClientIP(r), nil, payload); err != nil {
		slog.ErrorContext(r.Context(), "audit incentive.create failed", "error", err)
	}

	api.Created(w, map[string]string{"id": id}, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	month, year := shared.ParsePeriod(r)

	incentives, err := h.Store.List(r.Context(), month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list team incentives", requestID)
		return
	}
	api.Success(w, incentives, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	rec, err := h.Store.Get(r.Context(), chi.URLParam(r, "incentiveID"))
	if err != nil {
		if errors.Is(err, incentive.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "team incentive not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to fetch team incentive", requestID)
		return
	}
	api.Success(w, rec, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	incentiveID := chi.URLParam(r, "incentiveID")
	existing, err := h.Store.Get(r.Context(), incentiveID)
	if err != nil {
		if errors.Is(err, incentive.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "team incentive not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to fetch team incentive", requestID)
		return
	}

	var payload incentiveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if !h.validate(w, requestID, &payload) {
		return
	}

	updated := incentive.TeamIncentive{
		ID:          incentiveID,
		Team:        payload.Team,
		Month:       payload.Month,
		Year:        payload.Year,
		TotalAmount: payload.TotalAmount,
		Members:     payload.Members,
	}
	if err := h.Store.Update(r.Context(), updated); err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to update team incentive", requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), actor.UserID, "incentive.update", "team_incentive", incentiveID, requestID, shared.ClientIP(r), existing, updated); err != nil {
		slog.ErrorContext(r.Context(), "audit incentive.update failed", "error", err)
	}

	api.Success(w, updated, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	incentiveID := chi.URLParam(r, "incentiveID")
	if err := h.Store.Delete(r.Context(), incentiveID); err != nil {
		if errors.Is(err, incentive.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "team incentive not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to delete team incentive", requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), actor.UserID, "incentive.delete", "team_incentive", incentiveID, requestID, shared.ClientIP(r), nil, nil); err != nil {
		slog.ErrorContext(r.Context(), "audit incentive.delete failed", "error", err)
	}

	api.Success(w, map[string]string{"id": incentiveID}, requestID)
}

func (h *Handler) handleMemberShare(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	month, year := shared.ParsePeriod(r)

	share, err := h.Store.MemberShare(r.Context(), chi.URLParam(r, "employeeID"), month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to fetch member incentive", requestID)
		return
	}
	api.Success(w, share, requestID)
}
