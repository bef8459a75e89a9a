package postgresql

import (
	"context"
	"time"

	"github.com/bayanihr/payroll-backend-go/internal/domain/payroll"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
)

type loanRepositoryImpl struct {
	db *database.DB
}

func NewLoanRepository(db *database.DB) payroll.LoanRepository {
	return &loanRepositoryImpl{db: db}
}

func (r *loanRepositoryImpl) ListDueInPeriod(ctx context.Context, employeeID string, from, to time.Time) ([]payroll.LoanPayrollDeduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, loan_id, employee_id, amount, due_date, created_at
		FROM loan_payroll_deductions
		WHERE employee_id = $1 AND due_date >= $2 AND due_date <= $3
		ORDER BY due_date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deductions []payroll.LoanPayrollDeduction
	for rows.Next() {
		var d payroll.LoanPayrollDeduction
		err := rows.Scan(&d.ID, &d.LoanID, &d.EmployeeID, &d.Amount, &d.DueDate, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		deductions = append(deductions, d)
	}
	return deductions, rows.Err()
}
