package attendance

import (
	"github.com/bayanihr/payroll-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type PunchRequest struct {
	EmployeeID string  `json:"employee_id"`
	SiteID     *string `json:"site_id,omitempty"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	ID             int64   `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	Date           string  `json:"date"`
	PunchIn        *string `json:"punch_in,omitempty"`
	PunchOut       *string `json:"punch_out,omitempty"`
	BreakHours     float64 `json:"break_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
	UndertimeHours float64 `json:"undertime_hours"`
	Status         string  `json:"status"`
	SiteID         *string `json:"site_id,omitempty"`
}

func ToRecordResponse(rec Record) RecordResponse {
	resp := RecordResponse{
		ID:             rec.ID,
		EmployeeID:     rec.EmployeeID,
		Date:           rec.Date.Format("2006-01-02"),
		BreakHours:     rec.BreakHours,
		OvertimeHours:  rec.OvertimeHours,
		UndertimeHours: rec.UndertimeHours,
		Status:         rec.Status,
		SiteID:         rec.SiteID,
	}
	if rec.PunchIn != nil {
		s := rec.PunchIn.Format("2006-01-02 15:04:05")
		resp.PunchIn = &s
	}
	if rec.PunchOut != nil {
		s := rec.PunchOut.Format("2006-01-02 15:04:05")
		resp.PunchOut = &s
	}
	return resp
}
