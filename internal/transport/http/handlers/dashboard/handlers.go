package dashboardhandler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/madmenmarketingindia/mad-rating/internal/auth"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/dashboard"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/api"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/middleware"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/shared"
)

type Handler struct {
	Service *dashboard.Service
}

func NewHandler(service *dashboard.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermDashboardRead)).Get("/department-stats", h.handleDepartmentStats)
	r.With(middleware.RequirePermission(auth.PermDashboardRead)).Get("/department-rating", h.handleDepartmentRating)
	r.With(middleware.RequirePermission(auth.PermDashboardRead)).Get("/birthdays", h.handleBirthdays)
	r.With(middleware.RequirePermission(auth.PermDashboardRead)).Get("/work-anniversary", h.handleWorkAnniversary)
	r.With(middleware.RequirePermission(auth.PermDashboardRead)).Get("/employee", h.handleEmployeeSelf)
	r.With(middleware.RequirePermission(auth.PermDashboardRead)).Get("/employee-yearly-ratings", h.handleEmployeeYearly)
}

func (h *Handler) handleDepartmentStats(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	stats, err := h.Service.DepartmentStats(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load department stats", requestID)
		return
	}
	api.Success(w, stats, requestID)
}

func (h *Handler) handleDepartmentRating(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	month, year := shared.ParsePeriod(r)

	averages, err := h.Service.DepartmentRatings(r.Context(), month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load department ratings", requestID)
		return
	}
	api.Success(w, averages, requestID)
}

func (h *Handler) handleBirthdays(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	events, err := h.Service.UpcomingBirthdays(r.Context(), time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load birthdays", requestID)
		return
	}
	api.Success(w, events, requestID)
}

func (h *Handler) handleWorkAnniversary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	events, err := h.Service.UpcomingAnniversaries(r.Context(), time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load work anniversaries", requestID)
		return
	}
	api.Success(w, events, requestID)
}

// handleEmployeeSelf is the signed-in employee's current-month rating card.
func (h *Handler) handleEmployeeSelf(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok || user.EmployeeID == "" {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	month, year := shared.ParsePeriod(r)

	rec, err := h.Service.EmployeeMonthly(r.Context(), user.EmployeeID, month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load rating", requestID)
		return
	}
	api.Success(w, rec, requestID)
}

func (h *Handler) handleEmployeeYearly(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok || user.EmployeeID == "" {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	_, year := shared.ParsePeriod(r)

	series, err := h.Service.EmployeeYearly(r.Context(), user.EmployeeID, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load yearly ratings", requestID)
		return
	}
	api.Success(w, map[string]any{"year": year, "series": series}, requestID)
}
