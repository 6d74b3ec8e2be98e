package payrollhandler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/auth"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/employee"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/payroll"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/statutory"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/transport/http/api"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/transport/http/middleware"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/transport/http/shared"
)

type Handler struct {
	Service     *payroll.Service
	Employees   *employee.Service
	Perms       middleware.PermissionStore
	Idempotency *middleware.IdempotencyStore
}

func NewHandler(svc *payroll.Service, employees *employee.Service, perms middleware.PermissionStore, idempotency *middleware.IdempotencyStore) *Handler {
	return &Handler{Service: svc, Employees: employees, Perms: perms, Idempotency: idempotency}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/periods", h.handleListPeriods)
		r.With(middleware.RequirePermission(auth.PermPayrollWrite, h.Perms)).Post("/periods", h.handleCreatePeriod)
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/periods/{periodID}", h.handleGetPeriod)
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/periods/{periodID}/inputs", h.handleListInputs)
		r.With(middleware.RequirePermission(auth.PermPayrollWrite, h.Perms)).Post("/periods/{periodID}/inputs", h.handleSubmitInput)
		r.With(middleware.RequirePermission(auth.PermPayrollWrite, h.Perms)).Post("/periods/{periodID}/inputs/import", h.handleImportInputs)
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/periods/{periodID}/summary", h.handlePeriodSummary)
		r.With(middleware.RequirePermission(auth.PermPayrollRun, h.Perms)).Post("/periods/{periodID}/run", h.handleRunPayroll)
		r.With(middleware.RequirePermission(auth.PermPayrollFinalize, h.Perms)).Post("/periods/{periodID}/finalize", h.handleFinalizePayroll)
		r.With(middleware.RequirePermission(auth.PermPayrollFinalize, h.Perms)).Post("/periods/{periodID}/reopen", h.handleReopenPeriod)
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/periods/{periodID}/results", h.handleListResults)
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/periods/{periodID}/errors", h.handleListRunErrors)
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/payslips", h.handleListPayslips)
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/payslips/{payslipID}/download", h.handleDownloadPayslip)
		r.With(middleware.RequirePermission(auth.PermPayrollWrite, h.Perms)).Post("/payslips/{payslipID}/regenerate", h.handleRegeneratePayslip)
	})
}

func (h *Handler) handleListPeriods(w http.ResponseWriter, r *http.Request) {
	_, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	page := shared.ParsePagination(r, 100, 500)
	total, err := h.Service.CountPeriods(r.Context())
	if err != nil {
		log.Printf("period count failed: %v", err)
	}

	periods, err := h.Service.ListPeriods(r.Context(), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "period_list_failed", "failed to list payroll periods", middleware.GetRequestID(r.Context()))
		return
	}
	if periods == nil {
		periods = []payroll.Period{}
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, periods, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreatePeriod(w http.ResponseWriter, r *http.Request) {
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
		Year  int `json:"year"`
		Month int `json:"month"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Service.CreatePeriod(r.Context(), payload.Year, payload.Month)
	if err != nil {
		switch {
		case errors.Is(err, payroll.ErrInvalidPeriod):
			api.Fail(w, http.StatusBadRequest, "validation_error", "year and month out of range", middleware.GetRequestID(r.Context()))
		case errors.Is(err, payroll.ErrDuplicatePeriod):
			api.Fail(w, http.StatusConflict, "period_exists", "a payroll period already exists for that month", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "period_create_failed", "failed to create payroll period", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetPeriod(w http.ResponseWriter, r *http.Request) {
	_, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	period, err := h.Service.GetPeriod(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		if errors.Is(err, payroll.ErrPeriodNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "payroll period not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "period_lookup_failed", "failed to load payroll period", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, period, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListInputs(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	if user.RoleName != auth.RoleHR && user.RoleName != auth.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "hr role required", middleware.GetRequestID(r.Context()))
		return
	}

	periodID := chi.URLParam(r, "periodID")
	page := shared.ParsePagination(r, 100, 500)
	total, err := h.Service.CountInputs(r.Context(), periodID)
	if err != nil {
		log.Printf("input count failed: %v", err)
	}

	inputs, err := h.Service.ListInputs(r.Context(), periodID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "input_list_failed", "failed to list payroll inputs", middleware.GetRequestID(r.Context()))
		return
	}
	if inputs == nil {
		inputs = []payroll.Input{}
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, inputs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmitInput(w http.ResponseWriter, r *http.Request) {
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
		EmployeeID       string  `json:"employeeId"`
		OvertimeHours    float64 `json:"overtimeHours"`
		OvertimeType     string  `json:"overtimeType"`
		UnpaidDays       int     `json:"unpaidDays"`
		CustomDeductions float64 `json:"customDeductions"`
		Bonuses          float64 `json:"bonuses"`
		Source           string  `json:"source"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if strings.TrimSpace(payload.EmployeeID) == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employee id required", middleware.GetRequestID(r.Context()))
		return
	}

	source := payload.Source
	if source == "" {
		source = payroll.InputSourceManual
	}
	input := payroll.Input{
		EmployeeID:       payload.EmployeeID,
		OvertimeHours:    payload.OvertimeHours,
		OvertimeType:     strings.ToLower(strings.TrimSpace(payload.OvertimeType)),
		UnpaidDays:       payload.UnpaidDays,
		CustomDeductions: payload.CustomDeductions,
		Bonuses:          payload.Bonuses,
		Source:           source,
	}

	if err := h.Service.SubmitInput(r.Context(), chi.URLParam(r, "periodID"), input); err != nil {
		h.failSubmitInput(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "recorded"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failSubmitInput(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, payroll.ErrPeriodNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "payroll period not found", middleware.GetRequestID(r.Context()))
	case errors.Is(err, payroll.ErrPeriodFinalized):
		api.Fail(w, http.StatusBadRequest, "invalid_state", "payroll period already finalized", middleware.GetRequestID(r.Context()))
	case isInputValidationError(err):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), middleware.GetRequestID(r.Context()))
	default:
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "unknown employee", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "input_save_failed", "failed to save payroll input", middleware.GetRequestID(r.Context()))
	}
}

func isInputValidationError(err error) bool {
	for _, candidate := range []error{
		statutory.ErrNegativeOvertimeHours,
		statutory.ErrInvalidOvertimeType,
		statutory.ErrUnpaidDaysOutOfRange,
		statutory.ErrNegativeCustomDeductions,
		statutory.ErrNegativeBonuses,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

// handleImportInputs accepts a CSV body with one row per employee. Rows are
// matched by employee_id or employee_number; a row that fails validation is
// skipped and counted rather than aborting the import.
func (h *Handler) handleImportInputs(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	if user.RoleName != auth.RoleHR && user.RoleName != auth.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "hr role required", middleware.GetRequestID(r.Context()))
		return
	}

	periodID := chi.URLParam(r, "periodID")
	period, err := h.Service.GetPeriod(r.Context(), periodID)
	if err != nil {
		if errors.Is(err, payroll.ErrPeriodNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "payroll period not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "period_lookup_failed", "failed to load payroll period", middleware.GetRequestID(r.Context()))
		return
	}
	if period.Status == payroll.PeriodStatusFinalized {
		api.Fail(w, http.StatusBadRequest, "invalid_state", "payroll period already finalized", middleware.GetRequestID(r.Context()))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "unable to read csv payload", middleware.GetRequestID(r.Context()))
		return
	}

	idempotencyKey := r.Header.Get("Idempotency-Key")
	requestHash := middleware.RequestHash(append([]byte(periodID+"\n"), body...))
	if idempotencyKey != "" {
		stored, found, err := h.Idempotency.Check(r.Context(), user.UserID, "payroll.inputs.import", idempotencyKey, requestHash)
		if errors.Is(err, middleware.ErrIdempotencyConflict) {
			api.Fail(w, http.StatusConflict, "idempotency_conflict", "idempotency key already used for a different request", middleware.GetRequestID(r.Context()))
			return
		}
		if err != nil {
			log.Printf("idempotency check failed: %v", err)
		}
		if found {
			api.Success(w, json.RawMessage(stored), middleware.GetRequestID(r.Context()))
			return
		}
	}

	reader := csv.NewReader(bytes.NewReader(body))
	headers, err := reader.Read()
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid csv payload", middleware.GetRequestID(r.Context()))
		return
	}

	index := map[string]int{}
	for i, name := range headers {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	get := func(row []string, key string) string {
		if idx, ok := index[key]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	imported := 0
	skipped := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid csv payload", middleware.GetRequestID(r.Context()))
			return
		}

		employeeID := get(row, "employee_id")
		if employeeID == "" {
			if number := get(row, "employee_number"); number != "" {
				id, err := h.Employees.EmployeeIDByNumber(r.Context(), number)
				if err != nil {
					log.Printf("import input employee lookup failed for %s: %v", number, err)
				}
				employeeID = id
			}
		}
		if employeeID == "" {
			skipped++
			continue
		}

		input := payroll.Input{
			EmployeeID:       employeeID,
			OvertimeHours:    parseFloatField(get(row, "overtime_hours")),
			OvertimeType:     strings.ToLower(get(row, "overtime_type")),
			UnpaidDays:       parseIntField(get(row, "unpaid_days")),
			CustomDeductions: parseFloatField(get(row, "custom_deductions")),
			Bonuses:          parseFloatField(get(row, "bonuses")),
			Source:           payroll.InputSourceImport,
		}
		if err := h.Service.SubmitInput(r.Context(), periodID, input); err != nil {
			log.Printf("import input rejected for employee %s: %v", employeeID, err)
			skipped++
			continue
		}
		imported++
	}

	response := map[string]any{"imported": imported, "skipped": skipped}
	if idempotencyKey != "" {
		encoded, err := json.Marshal(response)
		if err != nil {
			log.Printf("idempotency response marshal failed: %v", err)
		} else if err := h.Idempotency.Save(r.Context(), user.UserID, "payroll.inputs.import", idempotencyKey, requestHash, encoded); err != nil {
			log.Printf("idempotency save failed: %v", err)
		}
	}
	api.Success(w, response, middleware.GetRequestID(r.Context()))
}

func parseFloatField(raw string) float64 {
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("import input number parse failed: %v", err)
		return 0
	}
	return value
}

func parseIntField(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("import input number parse failed: %v", err)
		return 0
	}
	return value
}

func (h *Handler) handlePeriodSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	if user.RoleName != auth.RoleHR && user.RoleName != auth.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "hr role required", middleware.GetRequestID(r.Context()))
		return
	}

	periodID := chi.URLParam(r, "periodID")
	if _, err := h.Service.GetPeriod(r.Context(), periodID); err != nil {
		if errors.Is(err, payroll.ErrPeriodNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "payroll period not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "period_lookup_failed", "failed to load payroll period", middleware.GetRequestID(r.Context()))
		return
	}

	summary, err := h.Service.PeriodSummary(r.Context(), periodID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "summary_failed", "failed to build period summary", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRunPayroll(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	if user.RoleName != auth.RoleHR && user.RoleName != auth.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "hr role required", middleware.GetRequestID(r.Context()))
		return
	}

	summary, err := h.Service.Run(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		switch {
		case errors.Is(err, payroll.ErrPeriodNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "payroll period not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, payroll.ErrPeriodFinalized):
			api.Fail(w, http.StatusBadRequest, "invalid_state", "payroll period already finalized", middleware.GetRequestID(r.Context()))
		case errors.Is(err, statutory.ErrNoRatesForDate):
			api.Fail(w, http.StatusBadRequest, "rates_unavailable", "no statutory rates in force for that period", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "payroll_run_failed", "failed to process payroll", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

// handleFinalizePayroll requires an Idempotency-Key header: finalizing emits
// payslips, so a retried request must replay the stored response instead of
// running twice. The replay lookup happens before the state check because a
// successful first attempt leaves the period finalized.
func (h *Handler) handleFinalizePayroll(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	if user.RoleName != auth.RoleHR && user.RoleName != auth.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "hr role required", middleware.GetRequestID(r.Context()))
		return
	}

	periodID := chi.URLParam(r, "periodID")
	if _, err := h.Service.GetPeriod(r.Context(), periodID); err != nil {
		if errors.Is(err, payroll.ErrPeriodNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "payroll period not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "period_lookup_failed", "failed to load payroll period", middleware.GetRequestID(r.Context()))
		return
	}

	idempotencyKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if idempotencyKey == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "Idempotency-Key header required", middleware.GetRequestID(r.Context()))
		return
	}

	requestHash := middleware.RequestHash([]byte(periodID))
	stored, found, err := h.Idempotency.Check(r.Context(), user.UserID, "payroll.finalize", idempotencyKey, requestHash)
	if errors.Is(err, middleware.ErrIdempotencyConflict) {
		api.Fail(w, http.StatusConflict, "idempotency_conflict", "idempotency key already used for a different request", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		log.Printf("idempotency check failed: %v", err)
	}
	if found {
		api.Success(w, json.RawMessage(stored), middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.Finalize(r.Context(), periodID); err != nil {
		switch {
		case errors.Is(err, payroll.ErrPeriodNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "payroll period not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, payroll.ErrFinalizeInvalidState):
			api.Fail(w, http.StatusBadRequest, "invalid_state", "payroll period must be processed before finalize", middleware.GetRequestID(r.Context()))
		case errors.Is(err, payroll.ErrFinalizeNoResults):
			api.Fail(w, http.StatusBadRequest, "invalid_state", "payroll period has no results to finalize", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "payroll_finalize_failed", "failed to finalize payroll", middleware.GetRequestID(r.Context()))
		}
		return
	}

	response := map[string]string{"status": payroll.PeriodStatusFinalized}
	payload, err := json.Marshal(response)
	if err != nil {
		log.Printf("finalize response marshal failed: %v", err)
	} else if err := h.Idempotency.Save(r.Context(), user.UserID, "payroll.finalize", idempotencyKey, requestHash, payload); err != nil {
		log.Printf("idempotency save failed: %v", err)
	}
	api.Success(w, response, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReopenPeriod(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	if user.RoleName != auth.RoleHR && user.RoleName != auth.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "hr role required", middleware.GetRequestID(r.Context()))
		return
	}

	periodID := chi.URLParam(r, "periodID")
	var payload struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Printf("reopen payload decode failed: %v", err)
	}
	if strings.TrimSpace(payload.Reason) == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "reopen reason required", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.Reopen(r.Context(), periodID); err != nil {
		switch {
		case errors.Is(err, payroll.ErrPeriodNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "payroll period not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, payroll.ErrReopenInvalidState):
			api.Fail(w, http.StatusBadRequest, "invalid_state", "only finalized periods can be reopened", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "payroll_reopen_failed", "failed to reopen payroll period", middleware.GetRequestID(r.Context()))
		}
		return
	}

	log.Printf("payroll period %s reopened by %s: %s", periodID, user.UserID, payload.Reason)
	api.Success(w, map[string]string{"status": payroll.PeriodStatusDraft}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListResults(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	periodID := chi.URLParam(r, "periodID")

	if user.RoleName != auth.RoleHR && user.RoleName != auth.RoleAdmin {
		emp, err := h.Employees.GetEmployeeByUserID(r.Context(), user.UserID)
		if err != nil {
			if errors.Is(err, employee.ErrNotFound) {
				api.Success(w, []payroll.Result{}, middleware.GetRequestID(r.Context()))
				return
			}
			api.Fail(w, http.StatusInternalServerError, "result_list_failed", "failed to list payroll results", middleware.GetRequestID(r.Context()))
			return
		}
		result, err := h.Service.ResultForEmployee(r.Context(), periodID, emp.ID)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "result_list_failed", "failed to list payroll results", middleware.GetRequestID(r.Context()))
			return
		}
		results := []payroll.Result{}
		if result != nil {
			results = append(results, *result)
		}
		api.Success(w, results, middleware.GetRequestID(r.Context()))
		return
	}

	results, err := h.Service.ListResults(r.Context(), periodID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "result_list_failed", "failed to list payroll results", middleware.GetRequestID(r.Context()))
		return
	}
	if results == nil {
		results = []payroll.Result{}
	}
	api.Success(w, results, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRunErrors(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	if user.RoleName != auth.RoleHR && user.RoleName != auth.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "hr role required", middleware.GetRequestID(r.Context()))
		return
	}

	failures, err := h.Service.ListRunErrors(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "error_list_failed", "failed to list payroll run errors", middleware.GetRequestID(r.Context()))
		return
	}
	if failures == nil {
		failures = []payroll.RunError{}
	}
	api.Success(w, failures, middleware.GetRequestID(r.Context()))
}

// handleListPayslips serves both sides: HR can pass employeeId to inspect any
// employee, everyone else is pinned to their own employee record.
func (h *Handler) handleListPayslips(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := r.URL.Query().Get("employeeId")
	if user.RoleName != auth.RoleHR && user.RoleName != auth.RoleAdmin {
		employeeID = ""
	}
	if employeeID == "" {
		emp, err := h.Employees.GetEmployeeByUserID(r.Context(), user.UserID)
		if err != nil && !errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusInternalServerError, "payslip_list_failed", "failed to list payslips", middleware.GetRequestID(r.Context()))
			return
		}
		if emp != nil {
			employeeID = emp.ID
		}
	}
	if employeeID == "" {
		api.Success(w, []payroll.Payslip{}, middleware.GetRequestID(r.Context()))
		return
	}

	page := shared.ParsePagination(r, 100, 500)
	total, err := h.Service.CountPayslips(r.Context(), employeeID)
	if err != nil {
		log.Printf("payslip count failed: %v", err)
	}

	slips, err := h.Service.ListPayslips(r.Context(), employeeID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_list_failed", "failed to list payslips", middleware.GetRequestID(r.Context()))
		return
	}
	if slips == nil {
		slips = []payroll.Payslip{}
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, slips, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDownloadPayslip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	payslipID := chi.URLParam(r, "payslipID")
	employeeID, fileURL, err := h.Service.PayslipInfo(r.Context(), payslipID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "payslip not found", middleware.GetRequestID(r.Context()))
		return
	}

	if user.RoleName != auth.RoleHR && user.RoleName != auth.RoleAdmin {
		emp, err := h.Employees.GetEmployeeByUserID(r.Context(), user.UserID)
		if err != nil {
			if !errors.Is(err, employee.ErrNotFound) {
				log.Printf("payslip download self employee lookup failed: %v", err)
			}
			api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
			return
		}
		if emp.ID != employeeID {
			api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
			return
		}
	}

	if fileURL == "" {
		_, periodID, err := h.Service.PayslipEmployeePeriod(r.Context(), payslipID)
		if err != nil {
			log.Printf("payslip period lookup failed: %v", err)
		}
		fileURL, err = h.Service.GeneratePayslipPDF(r.Context(), periodID, employeeID, payslipID)
		if err != nil {
			log.Printf("payslip pdf generation failed: %v", err)
		}
		if fileURL != "" {
			if err := h.Service.UpdatePayslipFileURL(r.Context(), payslipID, fileURL); err != nil {
				log.Printf("payslip file url update failed: %v", err)
			}
		}
	}
	if fileURL == "" {
		api.Fail(w, http.StatusInternalServerError, "payslip_missing", "payslip not available", middleware.GetRequestID(r.Context()))
		return
	}

	data, err := h.Service.ReadPayslipFile(fileURL)
	if err != nil {
		log.Printf("payslip read failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "payslip_missing", "payslip not available", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payslip-%s.pdf", payslipID))
	if _, err := w.Write(data); err != nil {
		log.Printf("payslip write failed: %v", err)
	}
}

func (h *Handler) handleRegeneratePayslip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	if user.RoleName != auth.RoleHR && user.RoleName != auth.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "hr role required", middleware.GetRequestID(r.Context()))
		return
	}

	payslipID := chi.URLParam(r, "payslipID")
	employeeID, periodID, err := h.Service.PayslipEmployeePeriod(r.Context(), payslipID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "payslip not found", middleware.GetRequestID(r.Context()))
		return
	}

	fileURL, err := h.Service.GeneratePayslipPDF(r.Context(), periodID, employeeID, payslipID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_generate_failed", "failed to regenerate payslip", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.UpdatePayslipFileURL(r.Context(), payslipID, fileURL); err != nil {
		log.Printf("payslip regenerate update failed: %v", err)
	}
	api.Success(w, map[string]string{"status": "regenerated"}, middleware.GetRequestID(r.Context()))
}
