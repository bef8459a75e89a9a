package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bayanihr/payroll-backend-go/internal/domain/payroll"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepositoryImpl{db: db}
}

const payrollColumns = `
	id, employee_id, period_start, period_end,
	base_pay, allowance, overtime_pay, holiday_pay, night_diff_pay, leave_with_pay,
	sss_deduction, philhealth_deduction, pagibig_deduction, withholding_tax,
	undertime_deduction, absence_deduction, unpaid_leave_deduction, loan_deduction,
	gross_adjustments, deduction_adjustments,
	gross_pay, total_deductions, net_pay,
	working_days, absent_days, undertime_hours, overtime_hours,
	status, approved_by, approved_at, created_at, updated_at`

func scanPayroll(row pgx.Row) (payroll.Payroll, error) {
	var p payroll.Payroll
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.PeriodStart, &p.PeriodEnd,
		&p.BasePay, &p.Allowance, &p.OvertimePay, &p.HolidayPay, &p.NightDiffPay, &p.LeaveWithPay,
		&p.SSSDeduction, &p.PhilHealthDeduction, &p.PagIbigDeduction, &p.WithholdingTax,
		&p.UndertimeDeduction, &p.AbsenceDeduction, &p.UnpaidLeaveDeduction, &p.LoanDeduction,
		&p.GrossAdjustments, &p.DeductionAdjustments,
		&p.GrossPay, &p.TotalDeductions, &p.NetPay,
		&p.WorkingDays, &p.AbsentDays, &p.UndertimeHours, &p.OvertimeHours,
		&p.Status, &p.ApprovedBy, &p.ApprovedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *payrollRepositoryImpl) Create(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payrolls (
			id, employee_id, period_start, period_end,
			base_pay, allowance, overtime_pay, holiday_pay, night_diff_pay, leave_with_pay,
			sss_deduction, philhealth_deduction, pagibig_deduction, withholding_tax,
			undertime_deduction, absence_deduction, unpaid_leave_deduction, loan_deduction,
			gross_adjustments, deduction_adjustments,
			gross_pay, total_deductions, net_pay,
			working_days, absent_days, undertime_hours, overtime_hours,
			status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14,
			$15, $16, $17, $18,
			$19, $20,
			$21, $22, $23,
			$24, $25, $26, $27,
			$28, NOW(), NOW()
		)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.ID, p.EmployeeID, p.PeriodStart, p.PeriodEnd,
		p.BasePay, p.Allowance, p.OvertimePay, p.HolidayPay, p.NightDiffPay, p.LeaveWithPay,
		p.SSSDeduction, p.PhilHealthDeduction, p.PagIbigDeduction, p.WithholdingTax,
		p.UndertimeDeduction, p.AbsenceDeduction, p.UnpaidLeaveDeduction, p.LoanDeduction,
		p.GrossAdjustments, p.DeductionAdjustments,
		p.GrossPay, p.TotalDeductions, p.NetPay,
		p.WorkingDays, p.AbsentDays, p.UndertimeHours, p.OvertimeHours,
		p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return payroll.Payroll{}, err
	}
	return p, nil
}

func (r *payrollRepositoryImpl) Update(ctx context.Context, p payroll.Payroll) error {
	q := GetQuerier(ctx, r.db)

	// The status guard in the WHERE clause keeps approved rows immutable even
	// under concurrent approval.
	query := `
		UPDATE payrolls
		SET base_pay = $2, allowance = $3, overtime_pay = $4, holiday_pay = $5,
			night_diff_pay = $6, leave_with_pay = $7,
			sss_deduction = $8, philhealth_deduction = $9, pagibig_deduction = $10,
			withholding_tax = $11, undertime_deduction = $12, absence_deduction = $13,
			unpaid_leave_deduction = $14, loan_deduction = $15,
			gross_adjustments = $16, deduction_adjustments = $17,
			gross_pay = $18, total_deductions = $19, net_pay = $20,
			working_days = $21, absent_days = $22, undertime_hours = $23, overtime_hours = $24,
			updated_at = NOW()
		WHERE id = $1 AND status = 'Pending'
	`

	tag, err := q.Exec(ctx, query,
		p.ID,
		p.BasePay, p.Allowance, p.OvertimePay, p.HolidayPay,
		p.NightDiffPay, p.LeaveWithPay,
		p.SSSDeduction, p.PhilHealthDeduction, p.PagIbigDeduction,
		p.WithholdingTax, p.UndertimeDeduction, p.AbsenceDeduction,
		p.UnpaidLeaveDeduction, p.LoanDeduction,
		p.GrossAdjustments, p.DeductionAdjustments,
		p.GrossPay, p.TotalDeductions, p.NetPay,
		p.WorkingDays, p.AbsentDays, p.UndertimeHours, p.OvertimeHours,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		existing, err := r.GetByID(ctx, p.ID)
		if err != nil {
			return err
		}
		if existing.Status == payroll.StatusApproved {
			return payroll.ErrPayrollApproved
		}
		return payroll.ErrPayrollNotFound
	}
	return nil
}

func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payrolls
		WHERE id = $1
	`

	p, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, err
	}
	return p, nil
}

func (r *payrollRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payrolls
		WHERE employee_id = $1 AND period_start = $2 AND period_end = $3
	`

	p, err := scanPayroll(q.QueryRow(ctx, query, employeeID, periodStart, periodEnd))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *payrollRepositoryImpl) Approve(ctx context.Context, id string, approvedBy string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET status = 'Approved', approved_by = $2, approved_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'Pending'
		RETURNING ` + payrollColumns + `
	`

	p, err := scanPayroll(q.QueryRow(ctx, query, id, approvedBy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Missing row and already-approved row both match zero rows;
			// disambiguate for the caller.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return payroll.Payroll{}, getErr
			}
			return payroll.Payroll{}, payroll.ErrPayrollAlreadyApproved
		}
		return payroll.Payroll{}, err
	}
	return p, nil
}

func (r *payrollRepositoryImpl) ListMonthlyEarnings(ctx context.Context, employeeID string, from, to time.Time) ([]payroll.MonthlyEarnings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT to_char(period_start, 'YYYY-MM') AS month,
			   SUM(base_pay + allowance) AS earnings
		FROM payrolls
		WHERE employee_id = $1 AND period_start >= $2 AND period_start <= $3
		GROUP BY month
		ORDER BY month
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var earnings []payroll.MonthlyEarnings
	for rows.Next() {
		var m payroll.MonthlyEarnings
		if err := rows.Scan(&m.Month, &m.Earnings); err != nil {
			return nil, err
		}
		earnings = append(earnings, m)
	}
	return earnings, rows.Err()
}

func (r *payrollRepositoryImpl) ListByPeriod(ctx context.Context, periodStart, periodEnd time.Time) ([]payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payrolls
		WHERE period_start = $1 AND period_end = $2
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payrolls []payroll.Payroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, err
		}
		payrolls = append(payrolls, p)
	}
	return payrolls, rows.Err()
}
