package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bayanihr/payroll-backend-go/internal/domain/attendance"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	id, employee_id, date, punch_in, punch_out, break_hours,
	overtime_hours, undertime_hours, status, site_id, created_at, updated_at`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.Date,
		&rec.PunchIn,
		&rec.PunchOut,
		&rec.BreakHours,
		&rec.OvertimeHours,
		&rec.UndertimeHours,
		&rec.Status,
		&rec.SiteID,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	return rec, err
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, date, punch_in, punch_out, break_hours,
			overtime_hours, undertime_hours, status, site_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.Date,
		rec.PunchIn,
		rec.PunchOut,
		rec.BreakHours,
		rec.OvertimeHours,
		rec.UndertimeHours,
		rec.Status,
		rec.SiteID,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return attendance.Record{}, err
	}
	return rec, nil
}

func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET punch_in = $2, punch_out = $3, break_hours = $4,
			overtime_hours = $5, undertime_hours = $6, status = $7,
			site_id = $8, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		rec.ID,
		rec.PunchIn,
		rec.PunchOut,
		rec.BreakHours,
		rec.OvertimeHours,
		rec.UndertimeHours,
		rec.Status,
		rec.SiteID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

func (r *attendanceRepositoryImpl) UpdateUndertime(ctx context.Context, recordID int64, hours float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET undertime_hours = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, recordID, hours)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE date = $1
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

func (r *attendanceRepositoryImpl) ListByEmployeePeriod(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

func collectRecords(rows pgx.Rows) ([]attendance.Record, error) {
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
