package postgresql

import (
	"context"
	"time"

	"github.com/bayanihr/payroll-backend-go/internal/domain/leave"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepositoryImpl{db: db}
}

func (r *leaveRepositoryImpl) ListApprovedBetween(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, start_date, end_date, with_pay, status, reason, created_at, updated_at
		FROM leave_requests
		WHERE employee_id = $1
		  AND status = 'Approved'
		  AND start_date <= $3
		  AND end_date >= $2
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaves []leave.LeaveRequest
	for rows.Next() {
		var l leave.LeaveRequest
		err := rows.Scan(
			&l.ID,
			&l.EmployeeID,
			&l.StartDate,
			&l.EndDate,
			&l.WithPay,
			&l.Status,
			&l.Reason,
			&l.CreatedAt,
			&l.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}
