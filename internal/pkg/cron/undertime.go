package cron

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/bayanihr/payroll-backend-go/internal/domain/attendance"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/lock"
	attendanceService "github.com/bayanihr/payroll-backend-go/internal/service/attendance"
	scheduleService "github.com/bayanihr/payroll-backend-go/internal/service/schedule"
)

// How long the sweep lock is held. Longer than a day so a completed sweep
// keeps its date locked until the key stops mattering.
const sweepLockTTL = 25 * time.Hour

type AttendanceJobs struct {
	attendanceRepo attendance.Repository
	logRepo        attendance.LogRepository
	resolver       *scheduleService.Resolver
	locker         lock.Locker
	db             *database.DB
	loc            *time.Location
}

func NewAttendanceJobs(
	attendanceRepo attendance.Repository,
	logRepo attendance.LogRepository,
	resolver *scheduleService.Resolver,
	locker lock.Locker,
	db *database.DB,
	loc *time.Location,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		logRepo:        logRepo,
		resolver:       resolver,
		locker:         locker,
		db:             db,
		loc:            loc,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("undertime_sweep", 1*time.Hour, j.SweepUndertime)
	scheduler.AddJob("liveness_check", 1*time.Minute, j.LivenessCheck)
}

// SweepUndertime recomputes undertime for yesterday's attendance records.
// The date-keyed lock makes the sweep run once per date across all instances
// no matter how often the ticker fires.
func (j *AttendanceJobs) SweepUndertime(ctx context.Context) error {
	now := time.Now().In(j.loc)
	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, j.loc).AddDate(0, 0, -1)

	key := "undertime:" + yesterday.Format("2006-01-02")
	acquired, err := j.locker.Acquire(ctx, key, sweepLockTTL)
	if err != nil {
		return fmt.Errorf("failed to acquire sweep lock: %w", err)
	}
	if !acquired {
		slog.Debug("Cron: Undertime sweep already done or running elsewhere", "date", yesterday.Format("2006-01-02"))
		return nil
	}

	return j.RunForDate(ctx, yesterday)
}

// RunForDate recomputes undertime for every record on the given date. The
// computation reads only the punch log and the resolved window, so re-running
// it overwrites each record with the same value.
func (j *AttendanceJobs) RunForDate(ctx context.Context, date time.Time) error {
	slog.Info("Cron: Starting undertime sweep", "date", date.Format("2006-01-02"))

	records, err := j.attendanceRepo.ListByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to list attendance records: %w", err)
	}

	processed := 0
	skipped := 0
	for _, rec := range records {
		win, err := j.resolver.ResolveWindow(ctx, rec.EmployeeID, date)
		if err != nil {
			slog.Error("Cron: Failed to resolve schedule window",
				"employee_id", rec.EmployeeID,
				"record_id", rec.ID,
				"error", err)
			skipped++
			continue
		}
		if win == nil {
			// No schedule applies: nothing to measure undertime against.
			slog.Info("Cron: No schedule for record, skipping",
				"employee_id", rec.EmployeeID,
				"date", date.Format("2006-01-02"))
			skipped++
			continue
		}

		events, err := j.logRepo.ListByRecord(ctx, rec.ID)
		if err != nil {
			slog.Error("Cron: Failed to list punch events",
				"record_id", rec.ID,
				"error", err)
			skipped++
			continue
		}

		act := attendanceService.Replay(events, rec.PunchOut)
		undertime := undertimeHours(win.ExpectedMinutes, act.WorkedMinutes, rec.BreakHours)

		if err := j.attendanceRepo.UpdateUndertime(ctx, rec.ID, undertime); err != nil {
			slog.Error("Cron: Failed to update undertime",
				"record_id", rec.ID,
				"error", err)
			skipped++
			continue
		}
		processed++
	}

	slog.Info("Cron: Undertime sweep finished",
		"date", date.Format("2006-01-02"),
		"processed", processed,
		"skipped", skipped)
	return nil
}

// LivenessCheck pings the database so a wedged pool shows up in the logs
// before the next real job hits it.
func (j *AttendanceJobs) LivenessCheck(ctx context.Context) error {
	if err := j.db.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// undertimeHours is the shortfall below the expected window net of breaks,
// clamped at zero and rounded to two fractional digits.
func undertimeHours(expectedMinutes, workedMinutes int, breakHours float64) float64 {
	hours := float64(expectedMinutes-workedMinutes)/60 - breakHours
	if hours < 0 {
		return 0
	}
	return math.Round(hours*100) / 100
}
