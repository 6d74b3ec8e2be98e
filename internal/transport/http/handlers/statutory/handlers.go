package statutoryhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/auth"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/employee"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/payroll"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/statutory"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/transport/http/api"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/transport/http/middleware"
)

// Handler exposes the statutory engine without touching payroll state: rate
// regime lookups and dry-run calculations for what-if checks before a period
// is actually run.
type Handler struct {
	Employees *employee.Service
	Perms     middleware.PermissionStore
}

func NewHandler(employees *employee.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Employees: employees, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/statutory", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermRatesRead, h.Perms)).Get("/rates", h.handleGetRates)
		r.With(middleware.RequirePermission(auth.PermRatesRead, h.Perms)).Get("/rates/versions", h.handleListRateVersions)
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Post("/preview", h.handlePreview)
		r.With(middleware.RequirePermission(auth.PermPayrollRun, h.Perms)).Post("/preview/batch", h.handleBatchPreview)
	})
}

func (h *Handler) handleGetRates(w http.ResponseWriter, r *http.Request) {
	_, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	query := r.URL.Query()
	rates, err := resolveRates(query.Get("version"), intQuery(query.Get("year")), intQuery(query.Get("month")))
	if err != nil {
		failRates(w, r, err)
		return
	}
	api.Success(w, rates, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRateVersions(w http.ResponseWriter, r *http.Request) {
	_, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, statutory.Versions(), middleware.GetRequestID(r.Context()))
}

// handlePreview calculates a single payslip without persisting anything.
// Callers either send raw compensation params or name an employee; everyone
// below HR may only preview their own record.
func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		EmployeeID   string                   `json:"employeeId"`
		Params       *statutory.ProfileParams `json:"params"`
		Inputs       statutory.PeriodInputs   `json:"inputs"`
		Year         int                      `json:"year"`
		Month        int                      `json:"month"`
		RatesVersion string                   `json:"ratesVersion"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	rates, err := resolveRates(payload.RatesVersion, payload.Year, payload.Month)
	if err != nil {
		failRates(w, r, err)
		return
	}

	var profile statutory.CompensationProfile
	switch {
	case payload.EmployeeID != "":
		if user.RoleName != auth.RoleHR && user.RoleName != auth.RoleAdmin {
			emp, err := h.Employees.GetEmployeeByUserID(r.Context(), user.UserID)
			if err != nil || emp.ID != payload.EmployeeID {
				api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
				return
			}
		}
		profile, err = h.Employees.CompensationProfile(r.Context(), payload.EmployeeID, rates)
		if err != nil {
			switch {
			case errors.Is(err, employee.ErrNotFound):
				api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			case isProfileValidationError(err):
				api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), middleware.GetRequestID(r.Context()))
			default:
				api.Fail(w, http.StatusInternalServerError, "preview_failed", "failed to build compensation profile", middleware.GetRequestID(r.Context()))
			}
			return
		}
	case payload.Params != nil:
		profile, err = statutory.NewCompensationProfile(*payload.Params, rates)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employeeId or params required", middleware.GetRequestID(r.Context()))
		return
	}

	if err := payload.Inputs.Validate(); err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, statutory.Calculate(profile, payload.Inputs, rates), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleBatchPreview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	if user.RoleName != auth.RoleHR && user.RoleName != auth.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "hr role required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Items        []statutory.BatchItem `json:"items"`
		Year         int                   `json:"year"`
		Month        int                   `json:"month"`
		RatesVersion string                `json:"ratesVersion"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	rates, err := resolveRates(payload.RatesVersion, payload.Year, payload.Month)
	if err != nil {
		failRates(w, r, err)
		return
	}

	api.Success(w, statutory.CalculateBatch(payload.Items, rates), middleware.GetRequestID(r.Context()))
}

// resolveRates picks the regime for a preview: an explicit version wins, then
// a year/month pair resolved by the period's last day, then the current one.
func resolveRates(version string, year, month int) (statutory.StatutoryRates, error) {
	if version != "" {
		return statutory.RatesByVersion(version)
	}
	if year != 0 || month != 0 {
		if !payroll.ValidPeriod(year, month) {
			return statutory.StatutoryRates{}, payroll.ErrInvalidPeriod
		}
		return statutory.RatesFor(payroll.PeriodEndDate(year, month))
	}
	return statutory.CurrentRates(), nil
}

func failRates(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, payroll.ErrInvalidPeriod):
		api.Fail(w, http.StatusBadRequest, "validation_error", "year and month out of range", middleware.GetRequestID(r.Context()))
	case errors.Is(err, statutory.ErrNoRatesForDate):
		api.Fail(w, http.StatusNotFound, "rates_unavailable", "no statutory rates in force for that period", middleware.GetRequestID(r.Context()))
	default:
		api.Fail(w, http.StatusInternalServerError, "rates_lookup_failed", "failed to resolve statutory rates", middleware.GetRequestID(r.Context()))
	}
}

func isProfileValidationError(err error) bool {
	for _, candidate := range []error{
		statutory.ErrMissingBasicSalary,
		statutory.ErrBelowMinimumWage,
		statutory.ErrNegativeAllowances,
		statutory.ErrInvalidContractType,
		statutory.ErrNegativePremium,
		statutory.ErrNegativeMortgage,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

func intQuery(raw string) int {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
