package audithandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/madmenmarketingindia/mad-rating/internal/auth"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/audit"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/api"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/middleware"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/shared"
)

type Handler struct {
	Service *audit.Service
}

func NewHandler(service *audit.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermAuditRead)).Get("/", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 200)

	events, err := h.Service.List(r.Context(),
		r.URL.Query().Get("action"),
		r.URL.Query().Get("entityType"),
		page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list audit events", requestID)
		return
	}
	api.Success(w, events, requestID)
}
