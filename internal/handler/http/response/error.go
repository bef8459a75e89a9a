package response

import (
	"errors"
	"net/http"

	"github.com/bayanihr/payroll-backend-go/internal/domain/attendance"
	"github.com/bayanihr/payroll-backend-go/internal/domain/employee"
	"github.com/bayanihr/payroll-backend-go/internal/domain/payroll"
	"github.com/bayanihr/payroll-backend-go/internal/domain/schedule"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Schedule not found")
	case errors.Is(err, schedule.ErrNoScheduleFound):
		NotFound(w, "No schedule applies to this date")
	case errors.Is(err, schedule.ErrInvalidKind):
		BadRequest(w, "Invalid schedule kind", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyPunchedIn):
		Conflict(w, "Already punched in")
	case errors.Is(err, attendance.ErrNotPunchedIn):
		Conflict(w, "No open punch to close")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollApproved):
		Conflict(w, "Payroll is approved and can no longer be modified")
	case errors.Is(err, payroll.ErrPayrollAlreadyApproved):
		Conflict(w, "Payroll has already been approved")
	case errors.Is(err, payroll.ErrThirteenthMonthExists):
		Conflict(w, "13th month pay already generated for this year")
	case errors.Is(err, payroll.ErrThirteenthMonthNotFound):
		NotFound(w, "13th month pay record not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
