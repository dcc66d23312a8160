package payrollhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/madmenmarketingindia/mad-rating/internal/auth"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/audit"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/employee"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/payroll"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/api"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/middleware"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/shared"
)

type Handler struct {
	Service        *payroll.Service
	Audit          *audit.Service
	CompanyName    string
	CompanyAddress string
}

func NewHandler(service *payroll.Service, auditor *audit.Service, companyName, companyAddress string) *Handler {
	return &Handler{Service: service, Audit: auditor, CompanyName: companyName, CompanyAddress: companyAddress}
}

// RegisterPayrollRoutes mounts the admin payroll form endpoints.
func (h *Handler) RegisterPayrollRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermPayrollRead)).Get("/payroll-list", h.handleList)
	r.With(middleware.RequirePermission(auth.PermPayrollRead)).Get("/payroll/{employeeID}", h.handlePrefill)
	r.With(middleware.RequirePermission(auth.PermPayrollWrite)).Post("/upsert", h.handleUpsert)
	r.With(middleware.RequirePermission(auth.PermPayrollRead)).Get("/incentive/{employeeID}", h.handleIncentive)
}

// RegisterSalaryRoutes mounts the employee-facing salary endpoints.
func (h *Handler) RegisterSalaryRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermSalarySelfRead)).Get("/employee/{employeeID}", h.handleSalary)
	r.With(middleware.RequirePermission(auth.PermSalarySelfRead)).Get("/list/{employeeID}", h.handleSalaryHistory)
	r.With(middleware.RequirePermission(auth.PermSalarySelfRead)).Get("/download-salary-slip/{employeeID}", h.handleSlip)
}

// RegisterExportRoutes mounts the CSV export.
func (h *Handler) RegisterExportRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermPayrollRead)).Get("/employees-payroll", h.handleExport)
}

// selfOrPayrollAccess lets employees reach only their own salary records
// while payroll readers reach anyone's.
func selfOrPayrollAccess(w http.ResponseWriter, r *http.Request, employeeID, requestID string) bool {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return false
	}
	if auth.HasPermission(user.Role, auth.PermPayrollRead) {
		return true
	}
	if user.EmployeeID == "" || user.EmployeeID != employeeID {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", requestID)
		return false
	}
	return true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	month, year := shared.ParsePeriod(r)

	rows, err := h.Service.ListForPeriod(r.Context(), month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list payroll", requestID)
		return
	}
	api.Success(w, map[string]any{
		"month":     month,
		"year":      year,
		"employees": rows,
	}, requestID)
}

func (h *Handler) handlePrefill(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	month, year := shared.ParsePeriod(r)

	prefill, err := h.Service.Prefill(r.Context(), chi.URLParam(r, "employeeID"), month, year)
	if err != nil {
		switch {
		case errors.Is(err, payroll.ErrSuperseded):
			// A newer request for the same form is in flight; this
			// response must not land.
			api.Fail(w, http.StatusConflict, "conflict", "superseded by a newer request", requestID)
		case errors.Is(err, employee.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "internal", "failed to build payroll form", requestID)
		}
		return
	}
	api.Success(w, prefill, requestID)
}

func (h *Handler) handleIncentive(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	month, year := shared.ParsePeriod(r)

	calc, err := h.Service.CalculateIncentive(r.Context(), chi.URLParam(r, "employeeID"), month, year)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to calculate incentive", requestID)
		return
	}
	api.Success(w, calc, requestID)
}

func (h *Handler) validate(w http.ResponseWriter, requestID string, rec payroll.Record) bool {
	v := shared.NewValidator()
	v.Required("employeeId", rec.EmployeeID, "employee id is required")
	v.Period(rec.Month, rec.Year)
	v.IntRange("totalDays", rec.TotalDays, 0, payroll.MaxTotalDays)
	for field, value := range map[string]int{
		"leaves":        rec.Leaves,
		"leaveAdjusted": rec.LeaveAdjusted,
		"absent":        rec.Absent,
		"lateIn":        rec.LateIn,
		"lateAdjusted":  rec.LateAdjusted,
	} {
		if value < 0 {
			v.Add(field, fmt.Sprintf("%s must not be negative", field))
		}
	}
	v.NonNegative("basicSalary", rec.BasicSalary)
	v.NonNegative("hra", rec.HRA)
	v.NonNegative("medicalAllowance", rec.MedicalAllowance)
	v.NonNegative("conveyanceAllowance", rec.ConveyanceAllowance)
	v.NonNegative("deductions", rec.Deductions)
	v.NonNegative("reimbursement", rec.Reimbursement)
	return !v.Reject(w, requestID)
}

func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	var payload payroll.Record
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if !h.validate(w, requestID, payload) {
		return
	}

	saved, err := h.Service.Upsert(r.Context(), payload)
	if err != nil {
		if errors.Is(err, payroll.ErrUnknownStatus) {
			shared.FailValidation(w, requestID, []shared.ValidationIssue{
				{Field: "status", Reason: "unknown payroll status"},
			})
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to save payroll", requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), actor.UserID, "payroll.upsert", "payroll_record", saved.ID, requestID, shared.ClientIP(r), nil, saved); err != nil {
		slog.ErrorContext(r.Context(), "audit payroll.upsert failed", "error", err)
	}

	api.Success(w, saved, requestID)
}

func (h *Handler) handleSalary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !selfOrPayrollAccess(w, r, employeeID, requestID) {
		return
	}
	month, year := shared.ParsePeriod(r)

	rec, err := h.Service.Single(r.Context(), employeeID, month, year)
	if err != nil {
		if errors.Is(err, payroll.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "payroll record not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to fetch payroll", requestID)
		return
	}
	api.Success(w, rec, requestID)
}

func (h *Handler) handleSalaryHistory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !selfOrPayrollAccess(w, r, employeeID, requestID) {
		return
	}

	records, err := h.Service.History(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to fetch payroll history", requestID)
		return
	}
	api.Success(w, records, requestID)
}

func (h *Handler) handleSlip(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !selfOrPayrollAccess(w, r, employeeID, requestID) {
		return
	}
	month, year := shared.ParsePeriod(r)

	data, err := h.Service.Slip(r.Context(), employeeID, month, year)
	if err != nil {
		if errors.Is(err, payroll.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "payroll record not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to fetch payroll", requestID)
		return
	}

	pdf, err := payroll.SlipPDF(data, h.CompanyName, h.CompanyAddress)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to render salary slip", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="salary-slip-%s-%02d-%d.pdf"`, employeeID, month, year))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		slog.ErrorContext(r.Context(), "salary slip write failed", "error", err)
	}
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	month, year := shared.ParsePeriod(r)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="employees-payroll-%02d-%d.csv"`, month, year))
	if err := h.Service.ExportCSV(r.Context(), month, year, w); err != nil {
		// Headers are already out; the body is a truncated CSV at this point.
		slog.ErrorContext(r.Context(), "payroll export failed", "error", err, "requestId", requestID)
	}
}
