package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bayanihr/payroll-backend-go/internal/domain/schedule"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
)

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.Repository {
	return &scheduleRepositoryImpl{db: db}
}

// Clock times are stored as "15:04" text; the resolver anchors them to a
// calendar date, so the zero date on the parsed values is irrelevant.
const clockLayout = "15:04"

func (r *scheduleRepositoryImpl) Create(ctx context.Context, sched schedule.Schedule) (schedule.Schedule, error) {
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO schedules (employee_id, kind, effective_from, effective_until, daily_start, daily_end, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			RETURNING id, created_at, updated_at
		`

		var dailyStart, dailyEnd *string
		if sched.Kind == schedule.KindFixed && sched.Daily != nil {
			s := sched.Daily.Start.Format(clockLayout)
			e := sched.Daily.End.Format(clockLayout)
			dailyStart, dailyEnd = &s, &e
		}

		err := tx.QueryRow(ctx, query,
			sched.EmployeeID,
			sched.Kind,
			sched.EffectiveFrom,
			sched.EffectiveUntil,
			dailyStart,
			dailyEnd,
		).Scan(&sched.ID, &sched.CreatedAt, &sched.UpdatedAt)
		if err != nil {
			return err
		}

		if sched.Kind != schedule.KindFlexible {
			return nil
		}

		dayQuery := `
			INSERT INTO schedule_days (schedule_id, weekday, start_time, end_time)
			VALUES ($1, $2, $3, $4)
		`
		for weekday, win := range sched.Weekdays {
			_, err := tx.Exec(ctx, dayQuery,
				sched.ID,
				weekday,
				win.Start.Format(clockLayout),
				win.End.Format(clockLayout),
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return schedule.Schedule{}, err
	}
	return sched, nil
}

func (r *scheduleRepositoryImpl) GetValidOnDate(ctx context.Context, employeeID string, date time.Time) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, kind, effective_from, effective_until, daily_start, daily_end, created_at, updated_at
		FROM schedules
		WHERE employee_id = $1
		  AND effective_from <= $2
		  AND (effective_until IS NULL OR effective_until >= $2)
		ORDER BY id DESC
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, err
	}
	schedules, err := r.collectSchedules(ctx, rows)
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, kind, effective_from, effective_until, daily_start, daily_end, created_at, updated_at
		FROM schedules
		WHERE employee_id = $1
		ORDER BY id DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	return r.collectSchedules(ctx, rows)
}

func (r *scheduleRepositoryImpl) collectSchedules(ctx context.Context, rows pgx.Rows) ([]schedule.Schedule, error) {
	defer rows.Close()

	var schedules []schedule.Schedule
	for rows.Next() {
		var sched schedule.Schedule
		var dailyStart, dailyEnd *string
		err := rows.Scan(
			&sched.ID,
			&sched.EmployeeID,
			&sched.Kind,
			&sched.EffectiveFrom,
			&sched.EffectiveUntil,
			&dailyStart,
			&dailyEnd,
			&sched.CreatedAt,
			&sched.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if sched.Kind == schedule.KindFixed && dailyStart != nil && dailyEnd != nil {
			start, err := time.Parse(clockLayout, *dailyStart)
			if err != nil {
				return nil, err
			}
			end, err := time.Parse(clockLayout, *dailyEnd)
			if err != nil {
				return nil, err
			}
			sched.Daily = &schedule.DayWindow{Start: start, End: end}
		}
		schedules = append(schedules, sched)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range schedules {
		if schedules[i].Kind != schedule.KindFlexible {
			continue
		}
		weekdays, err := r.loadWeekdays(ctx, schedules[i].ID)
		if err != nil {
			return nil, err
		}
		schedules[i].Weekdays = weekdays
	}
	return schedules, nil
}

func (r *scheduleRepositoryImpl) loadWeekdays(ctx context.Context, scheduleID int64) (map[string]schedule.DayWindow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT weekday, start_time, end_time
		FROM schedule_days
		WHERE schedule_id = $1
	`

	rows, err := q.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	weekdays := make(map[string]schedule.DayWindow)
	for rows.Next() {
		var weekday, startStr, endStr string
		if err := rows.Scan(&weekday, &startStr, &endStr); err != nil {
			return nil, err
		}
		start, err := time.Parse(clockLayout, startStr)
		if err != nil {
			return nil, err
		}
		end, err := time.Parse(clockLayout, endStr)
		if err != nil {
			return nil, err
		}
		weekdays[weekday] = schedule.DayWindow{Start: start, End: end}
	}
	return weekdays, rows.Err()
}
