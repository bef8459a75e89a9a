package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bayanihr/payroll-backend-go/internal/config"
	"github.com/bayanihr/payroll-backend-go/internal/domain/schedule"
)

// Resolver finds the one applicable work schedule for an employee on a date
// and derives the expected work window from it.
type Resolver struct {
	scheduleRepo schedule.Repository
	cfg          config.PayrollConfig
	loc          *time.Location
}

func NewResolver(scheduleRepo schedule.Repository, cfg config.PayrollConfig, loc *time.Location) *Resolver {
	return &Resolver{
		scheduleRepo: scheduleRepo,
		cfg:          cfg,
		loc:          loc,
	}
}

// ResolveWindow returns the expected window for the employee on date, or nil
// when no schedule applies (no covering schedule, or the winning flexible
// schedule has no entry for that weekday).
func (r *Resolver) ResolveWindow(ctx context.Context, employeeID string, date time.Time) (*schedule.ResolvedWindow, error) {
	schedules, err := r.scheduleRepo.GetValidOnDate(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedules valid on %s: %w", date.Format("2006-01-02"), err)
	}
	if len(schedules) == 0 {
		return nil, nil
	}

	// The most recently defined schedule supersedes older overlapping ones.
	// The repository orders by id descending already; re-check here so the
	// precedence rule does not depend on query ordering.
	winner := schedules[0]
	for _, s := range schedules[1:] {
		if s.ID > winner.ID && s.Covers(date) {
			winner = s
		}
	}
	if !winner.Covers(date) {
		return nil, nil
	}

	return r.WindowFor(winner, date), nil
}

// WindowFor anchors the schedule's clock-time window to date. A window whose
// end precedes its start is interpreted as an overnight shift ending the next
// day; start == end yields zero expected minutes (malformed schedule, not a
// crash).
func (r *Resolver) WindowFor(sched schedule.Schedule, date time.Time) *schedule.ResolvedWindow {
	var win schedule.DayWindow

	switch sched.Kind {
	case schedule.KindFixed:
		if sched.Daily == nil {
			return nil
		}
		win = *sched.Daily
	case schedule.KindFlexible:
		dayWin, ok := sched.Weekdays[schedule.WeekdayKey(date)]
		if !ok {
			// Weekday absent from the mapping: not a working day.
			return nil
		}
		win = dayWin
	default:
		slog.Warn("schedule has unknown kind",
			"schedule_id", sched.ID,
			"kind", sched.Kind)
		return nil
	}

	start := r.combine(date, win.Start)
	end := r.combine(date, win.End)

	overnight := false
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
		overnight = true
		if end.Sub(start) > time.Duration(r.cfg.MaxShiftHours)*time.Hour {
			slog.Warn("overnight shift exceeds maximum length",
				"schedule_id", sched.ID,
				"employee_id", sched.EmployeeID,
				"shift_hours", end.Sub(start).Hours())
		}
	}

	expected := int(end.Sub(start).Minutes())
	if expected < 0 {
		expected = 0
	}

	return &schedule.ResolvedWindow{
		ScheduleID:      sched.ID,
		Start:           start,
		End:             end,
		ExpectedMinutes: expected,
		Overnight:       overnight,
	}
}

// combine anchors a clock time to the given calendar date in the
// organizational zone.
func (r *Resolver) combine(date time.Time, clock time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		r.loc,
	)
}
