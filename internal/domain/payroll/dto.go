package payroll

import (
	"github.com/bayanihr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GeneratePayrollRequest struct {
	EmployeeID  string `json:"employee_id"`
	PeriodStart string `json:"period_start"` // "2006-01-02"
	PeriodEnd   string `json:"period_end"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.PeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_start",
			Message: "period_start must be a valid date (YYYY-MM-DD)",
		})
	}

	end, endOK := validator.IsValidDate(r.PeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must be a valid date (YYYY-MM-DD)",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must not be before period_start",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApprovePayrollRequest struct {
	ID         string `json:"id"`
	ApprovedBy string `json:"approved_by"`
}

func (r *ApprovePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if validator.IsEmpty(r.ApprovedBy) {
		errs = append(errs, validator.ValidationError{
			Field:   "approved_by",
			Message: "approved_by is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type GenerateThirteenthRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
}

func (r *GenerateThirteenthRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PayrollResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`

	BasePay      decimal.Decimal `json:"base_pay"`
	Allowance    decimal.Decimal `json:"allowance"`
	OvertimePay  decimal.Decimal `json:"overtime_pay"`
	HolidayPay   decimal.Decimal `json:"holiday_pay"`
	NightDiffPay decimal.Decimal `json:"night_diff_pay"`
	LeaveWithPay decimal.Decimal `json:"leave_with_pay"`

	SSSDeduction         decimal.Decimal `json:"sss_deduction"`
	PhilHealthDeduction  decimal.Decimal `json:"philhealth_deduction"`
	PagIbigDeduction     decimal.Decimal `json:"pagibig_deduction"`
	WithholdingTax       decimal.Decimal `json:"withholding_tax"`
	UndertimeDeduction   decimal.Decimal `json:"undertime_deduction"`
	AbsenceDeduction     decimal.Decimal `json:"absence_deduction"`
	UnpaidLeaveDeduction decimal.Decimal `json:"unpaid_leave_deduction"`
	LoanDeduction        decimal.Decimal `json:"loan_deduction"`

	GrossAdjustments     decimal.Decimal `json:"gross_adjustments"`
	DeductionAdjustments decimal.Decimal `json:"deduction_adjustments"`

	GrossPay        decimal.Decimal `json:"gross_pay"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`

	WorkingDays    int     `json:"working_days"`
	AbsentDays     int     `json:"absent_days"`
	UndertimeHours float64 `json:"undertime_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`

	Status     string  `json:"status"`
	ApprovedBy *string `json:"approved_by,omitempty"`
	ApprovedAt *string `json:"approved_at,omitempty"`
}

func ToPayrollResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:          p.ID,
		EmployeeID:  p.EmployeeID,
		PeriodStart: p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   p.PeriodEnd.Format("2006-01-02"),

		BasePay:      p.BasePay,
		Allowance:    p.Allowance,
		OvertimePay:  p.OvertimePay,
		HolidayPay:   p.HolidayPay,
		NightDiffPay: p.NightDiffPay,
		LeaveWithPay: p.LeaveWithPay,

		SSSDeduction:         p.SSSDeduction,
		PhilHealthDeduction:  p.PhilHealthDeduction,
		PagIbigDeduction:     p.PagIbigDeduction,
		WithholdingTax:       p.WithholdingTax,
		UndertimeDeduction:   p.UndertimeDeduction,
		AbsenceDeduction:     p.AbsenceDeduction,
		UnpaidLeaveDeduction: p.UnpaidLeaveDeduction,
		LoanDeduction:        p.LoanDeduction,

		GrossAdjustments:     p.GrossAdjustments,
		DeductionAdjustments: p.DeductionAdjustments,

		GrossPay:        p.GrossPay,
		TotalDeductions: p.TotalDeductions,
		NetPay:          p.NetPay,

		WorkingDays:    p.WorkingDays,
		AbsentDays:     p.AbsentDays,
		UndertimeHours: p.UndertimeHours,
		OvertimeHours:  p.OvertimeHours,

		Status:     string(p.Status),
		ApprovedBy: p.ApprovedBy,
	}
	if p.ApprovedAt != nil {
		s := p.ApprovedAt.Format("2006-01-02 15:04:05")
		resp.ApprovedAt = &s
	}
	return resp
}

type ThirteenthResponse struct {
	ID            string                     `json:"id"`
	EmployeeID    string                     `json:"employee_id"`
	Year          int                        `json:"year"`
	BasicEarnings decimal.Decimal            `json:"basic_earnings"`
	MonthsCovered map[string]decimal.Decimal `json:"months_covered"`
	Pay           decimal.Decimal            `json:"thirteenth_month_pay"`
	Status        string                     `json:"status"`
}

func ToThirteenthResponse(t ThirteenthMonthPay) ThirteenthResponse {
	return ThirteenthResponse{
		ID:            t.ID,
		EmployeeID:    t.EmployeeID,
		Year:          t.Year,
		BasicEarnings: t.BasicEarnings,
		MonthsCovered: t.MonthsCovered,
		Pay:           t.Pay,
		Status:        string(t.Status),
	}
}
