package reportshandler

import (
	"context"
	"encoding/csv"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/auth"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/reports"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/transport/http/api"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
	Perms   middleware.PermissionStore
}

func NewHandler(svc *reports.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: svc, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/periods/{periodID}/register", h.handleRegister)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/periods/{periodID}/p10", h.handleP10)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/periods/{periodID}/bank-file", h.handleBankFile)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/periods/{periodID}/statutory", h.handleStatutoryReturn)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "payroll-register", h.Service.Register)
}

func (h *Handler) handleP10(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "p10-return", h.Service.P10)
}

func (h *Handler) handleBankFile(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "bank-file", h.Service.BankFile)
}

func (h *Handler) handleStatutoryReturn(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "statutory-return", h.Service.StatutoryReturn)
}

// export runs one report builder and streams the records as a CSV attachment.
// Reports cover every employee in the period, so they stay behind the HR gate
// even though the route permission alone would admit employees.
func (h *Handler) export(w http.ResponseWriter, r *http.Request, name string, build func(ctx context.Context, periodID string) ([][]string, error)) {
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
	records, err := build(r.Context(), periodID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to build "+name+" export", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+name+"-"+periodID+".csv")
	writer := csv.NewWriter(w)
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			log.Printf("%s export row write failed: %v", name, err)
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("%s export flush failed: %v", name, err)
	}
}
