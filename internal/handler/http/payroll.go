package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bayanihr/payroll-backend-go/internal/domain/payroll"
	"github.com/bayanihr/payroll-backend-go/internal/handler/http/response"
	payrollService "github.com/bayanihr/payroll-backend-go/internal/service/payroll"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListByPeriod(w http.ResponseWriter, r *http.Request)
	GenerateThirteenth(w http.ResponseWriter, r *http.Request)
	GetThirteenth(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	svc *payrollService.Service
}

func NewPayrollHandler(svc *payrollService.Service) PayrollHandler {
	return &payrollHandlerImpl{svc: svc}
}

// Generate implements PayrollHandler.
func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.svc.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll generated", result)
}

// Approve implements PayrollHandler.
func (h *payrollHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	var req payroll.ApprovePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "payrollID")

	result, err := h.svc.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll approved", result)
}

// Get implements PayrollHandler.
func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "payrollID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListByPeriod implements PayrollHandler.
func (h *payrollHandlerImpl) ListByPeriod(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse("2006-01-02", r.URL.Query().Get("period_start"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'period_start' must be YYYY-MM-DD", nil)
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("period_end"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'period_end' must be YYYY-MM-DD", nil)
		return
	}

	result, err := h.svc.ListByPeriod(r.Context(), start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GenerateThirteenth implements PayrollHandler.
func (h *payrollHandlerImpl) GenerateThirteenth(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateThirteenthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.svc.GenerateThirteenth(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "13th month pay generated", result)
}

// GetThirteenth implements PayrollHandler.
func (h *payrollHandlerImpl) GetThirteenth(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'year' must be a number", nil)
		return
	}

	result, err := h.svc.GetThirteenth(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
