package employeehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/auth"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/employee"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/transport/http/api"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/transport/http/middleware"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
	Auth    *auth.Service
	Perms   middleware.PermissionStore
}

func NewHandler(svc *employee.Service, authSvc *auth.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: svc, Auth: authSvc, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/me", h.handleMe)
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/", h.handleCreate)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/terminate", h.handleTerminate)
		})
	})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	exists, err := h.Auth.UserExists(r.Context(), user.UserID)
	if err != nil || !exists {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Service.GetEmployeeByUserID(r.Context(), user.UserID)
	if err != nil && !errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusInternalServerError, "employee_lookup_failed", "failed to load employee record", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"user": map[string]string{
			"id":     user.UserID,
			"roleId": user.RoleID,
			"role":   user.RoleName,
		},
		"employee": emp,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" && !employee.ValidStatus(status) {
		api.Fail(w, http.StatusBadRequest, "invalid_status", "status must be active or terminated", middleware.GetRequestID(r.Context()))
		return
	}

	employees, err := h.Service.ListEmployees(r.Context(), status)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}

	out := make([]employee.Employee, 0, len(employees))
	for _, emp := range employees {
		isSelf := emp.UserID != "" && emp.UserID == user.UserID
		employee.FilterFields(&emp, user, isSelf)
		out = append(out, emp)
	}

	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	emp, err := h.Service.GetEmployee(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}

	isSelf := emp.UserID != "" && emp.UserID == user.UserID
	employee.FilterFields(emp, user, isSelf)
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	if user.RoleName != auth.RoleHR && user.RoleName != auth.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "hr role required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload employee.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Status == "" {
		payload.Status = employee.StatusActive
	}

	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	v.Required("email", payload.Email, "email is required")
	v.Enum("status", payload.Status, []string{employee.StatusActive, employee.StatusTerminated}, "status must be active or terminated")
	if payload.BasicSalary != nil && *payload.BasicSalary < 0 {
		v.Add("basicSalary", "must not be negative")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreateEmployee(r.Context(), payload)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			api.Fail(w, http.StatusConflict, "employee_exists", "employee email or number already exists", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}

	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	existing, err := h.Service.GetEmployee(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}

	var payload employee.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	if user.RoleName != auth.RoleHR && user.RoleName != auth.RoleAdmin {
		if existing.UserID == "" || existing.UserID != user.UserID {
			api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
			return
		}
		// Self-service updates only cover contact details; everything that
		// feeds payroll stays as HR entered it.
		payload.EmployeeNumber = existing.EmployeeNumber
		payload.FirstName = existing.FirstName
		payload.LastName = existing.LastName
		payload.Email = existing.Email
		payload.KRAPin = existing.KRAPin
		payload.NSSFNumber = existing.NSSFNumber
		payload.SHIFNumber = existing.SHIFNumber
		payload.BankName = existing.BankName
		payload.BankAccount = existing.BankAccount
		payload.BasicSalary = existing.BasicSalary
		payload.Allowances = existing.Allowances
		payload.ContractType = existing.ContractType
		payload.LifePremium = existing.LifePremium
		payload.EducationPremium = existing.EducationPremium
		payload.HealthPremium = existing.HealthPremium
		payload.MortgageInterest = existing.MortgageInterest
		payload.StartDate = existing.StartDate
		payload.EndDate = existing.EndDate
		payload.Status = existing.Status
	}

	if payload.Status == "" {
		payload.Status = existing.Status
	}
	if payload.BasicSalary != nil && *payload.BasicSalary < 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_salary", "basic salary must not be negative", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.UpdateEmployee(r.Context(), employeeID, payload); err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]string{"id": employeeID}, middleware.GetRequestID(r.Context()))
}

type terminateRequest struct {
	EndDate string `json:"endDate"`
}

func (h *Handler) handleTerminate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	if user.RoleName != auth.RoleHR && user.RoleName != auth.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "hr role required", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := chi.URLParam(r, "employeeID")

	var payload terminateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	endDate := any(time.Now())
	if payload.EndDate != "" {
		parsed, err := shared.ParseDate(payload.EndDate)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "endDate must be a valid date", middleware.GetRequestID(r.Context()))
			return
		}
		endDate = parsed
	}

	if err := h.Service.SetStatus(r.Context(), employeeID, employee.StatusTerminated, endDate); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_terminate_failed", "failed to terminate employee", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]string{"id": employeeID, "status": employee.StatusTerminated}, middleware.GetRequestID(r.Context()))
}
