package employeehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/madmenmarketingindia/mad-rating/internal/auth"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/audit"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/employee"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/api"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/middleware"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/shared"
)

type Handler struct {
	Store *employee.Store
	Audit *audit.Service
}

func NewHandler(store *employee.Store, auditor *audit.Service) *Handler {
	return &Handler{Store: store, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermEmployeesRead)).Get("/", h.handleList)
	r.With(middleware.RequirePermission(auth.PermEmployeesWrite)).Post("/", h.handleCreate)
	r.With(middleware.RequirePermission(auth.PermEmployeesRead)).Get("/all-department", h.handleDepartments)
	r.With(middleware.RequirePermission(auth.PermEmployeesRead)).Get("/by-department", h.handleByDepartment)
	r.With(middleware.RequirePermission(auth.PermEmployeesRead)).Get("/employee-profile/{employeeID}", h.handleProfile)
	r.Route("/{employeeID}", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead)).Get("/", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite)).Put("/", h.handleUpdate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	employees, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list employees", requestID)
		return
	}
	api.Success(w, employees, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	emp, err := h.Store.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to fetch employee", requestID)
		return
	}
	api.Success(w, emp, requestID)
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	profile, err := h.Store.Profile(r.Context(), chi.URLParam(r, "employeeID"), time.Now())
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to fetch profile", requestID)
		return
	}
	api.Success(w, profile, requestID)
}

func (h *Handler) handleDepartments(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	departments, err := h.Store.Departments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list departments", requestID)
		return
	}
	api.Success(w, departments, requestID)
}

func (h *Handler) handleByDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	department := r.URL.Query().Get("department")
	v := shared.NewValidator()
	v.Required("department", department, "department is required")
	if v.Reject(w, requestID) {
		return
	}

	employees, err := h.Store.ByDepartment(r.Context(), department)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list employees", requestID)
		return
	}
	api.Success(w, employees, requestID)
}

func (h *Handler) validate(w http.ResponseWriter, requestID string, payload employee.Employee) bool {
	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	v.Required("email", payload.Email, "email is required")
	v.Required("department", payload.Department, "department is required")
	if payload.Status != "" {
		v.Enum("status", payload.Status, []string{employee.StatusActive, employee.StatusInactive}, "unknown status")
	}
	v.NonNegative("salary.basicSalary", payload.Salary.BasicSalary)
	v.NonNegative("salary.hra", payload.Salary.HRA)
	v.NonNegative("salary.medicalAllowance", payload.Salary.MedicalAllowance)
	v.NonNegative("salary.conveyanceAllowance", payload.Salary.ConveyanceAllowance)
	return !v.Reject(w, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload employee.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if payload.Status == "" {
		payload.Status = employee.StatusActive
	}
	if !h.validate(w, requestID, payload) {
		return
	}

	created, err := h.Store.Create(r.Context(), payload)
	if err != nil {
		if errors.Is(err, employee.ErrEmailExists) {
			api.Fail(w, http.StatusConflict, "conflict", "employee email already exists", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create employee", requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "employee.create", "employee", created.ID, requestID, shared.ClientIP(r), nil, created); err != nil {
		slog.ErrorContext(r.Context(), "audit employee.create failed", "error", err)
	}

	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	employeeID := chi.URLParam(r, "employeeID")
	existing, err := h.Store.Get(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to fetch employee", requestID)
		return
	}

	var payload employee.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	payload.ID = employeeID
	if payload.Status == "" {
		payload.Status = existing.Status
	}
	if !h.validate(w, requestID, payload) {
		return
	}

	updated, err := h.Store.Update(r.Context(), payload)
	if err != nil {
		if errors.Is(err, employee.ErrEmailExists) {
			api.Fail(w, http.StatusConflict, "conflict", "employee email already exists", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to update employee", requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "employee.update", "employee", employeeID, requestID, shared.ClientIP(r), existing, updated); err != nil {
		slog.ErrorContext(r.Context(), "audit employee.update failed", "error", err)
	}

	api.Success(w, updated, requestID)
}
