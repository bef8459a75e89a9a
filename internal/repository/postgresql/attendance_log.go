package postgresql

import (
	"context"

	"github.com/bayanihr/payroll-backend-go/internal/domain/attendance"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
)

type attendanceLogRepositoryImpl struct {
	db *database.DB
}

// NewAttendanceLogRepository returns the append-only punch ledger. Rows are
// never updated or deleted; the derived record is recomputed from them.
func NewAttendanceLogRepository(db *database.DB) attendance.LogRepository {
	return &attendanceLogRepositoryImpl{db: db}
}

func (r *attendanceLogRepositoryImpl) Append(ctx context.Context, event attendance.PunchEvent) (attendance.PunchEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_punch_log (employee_id, record_id, timestamp, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		event.EmployeeID,
		event.RecordID,
		event.Timestamp,
		event.Type,
	).Scan(&event.ID)
	if err != nil {
		return attendance.PunchEvent{}, err
	}
	return event, nil
}

func (r *attendanceLogRepositoryImpl) ListByRecord(ctx context.Context, recordID int64) ([]attendance.PunchEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, record_id, timestamp, type
		FROM attendance_punch_log
		WHERE record_id = $1
		ORDER BY timestamp ASC
	`

	rows, err := q.Query(ctx, query, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []attendance.PunchEvent
	for rows.Next() {
		var ev attendance.PunchEvent
		err := rows.Scan(&ev.ID, &ev.EmployeeID, &ev.RecordID, &ev.Timestamp, &ev.Type)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
