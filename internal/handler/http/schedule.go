package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bayanihr/payroll-backend-go/internal/domain/schedule"
	"github.com/bayanihr/payroll-backend-go/internal/handler/http/response"
	scheduleService "github.com/bayanihr/payroll-backend-go/internal/service/schedule"
)

type ScheduleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	svc *scheduleService.Service
}

func NewScheduleHandler(svc *scheduleService.Service) ScheduleHandler {
	return &scheduleHandlerImpl{svc: svc}
}

// Create implements ScheduleHandler.
func (h *scheduleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.svc.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Schedule created", result)
}

// ListByEmployee implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListByEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Resolve implements ScheduleHandler.
func (h *scheduleHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'date' must be YYYY-MM-DD", nil)
		return
	}

	result, err := h.svc.Resolve(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
