package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/bayanihr/payroll-backend-go/internal/config"
	"github.com/bayanihr/payroll-backend-go/internal/domain/attendance"
	"github.com/bayanihr/payroll-backend-go/internal/domain/employee"
	"github.com/bayanihr/payroll-backend-go/internal/domain/holiday"
	"github.com/bayanihr/payroll-backend-go/internal/domain/schedule"
	scheduleService "github.com/bayanihr/payroll-backend-go/internal/service/schedule"
)

// keyedMutex serializes work per string key. Entries are reference-counted
// and removed once the last holder releases, so the map does not grow with
// every employee-day ever seen.
type keyedMutex struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{entries: make(map[string]*lockEntry)}
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &lockEntry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.entries, key)
		}
		k.mu.Unlock()
	}
}

// Service owns the punch-in/punch-out flow: it appends to the immutable punch
// log and maintains the derived attendance record from it.
type Service struct {
	attendanceRepo attendance.Repository
	logRepo        attendance.LogRepository
	employeeRepo   employee.Repository
	holidayRepo    holiday.Repository
	resolver       *scheduleService.Resolver
	cfg            config.PayrollConfig
	loc            *time.Location
	now            func() time.Time
	dayLocks       *keyedMutex
}

func NewService(
	attendanceRepo attendance.Repository,
	logRepo attendance.LogRepository,
	employeeRepo employee.Repository,
	holidayRepo holiday.Repository,
	resolver *scheduleService.Resolver,
	cfg config.PayrollConfig,
	loc *time.Location,
) *Service {
	return &Service{
		attendanceRepo: attendanceRepo,
		logRepo:        logRepo,
		employeeRepo:   employeeRepo,
		holidayRepo:    holidayRepo,
		resolver:       resolver,
		cfg:            cfg,
		loc:            loc,
		now:            time.Now,
		dayLocks:       newKeyedMutex(),
	}
}

func dayKey(employeeID string, day time.Time) string {
	return employeeID + "|" + day.Format("2006-01-02")
}

// PunchIn records a punch-in for the employee at the current time, creating
// the day's attendance record if this is the first punch.
func (s *Service) PunchIn(ctx context.Context, req attendance.PunchRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	now := s.now().In(s.loc)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	unlock := s.dayLocks.lock(dayKey(req.EmployeeID, day))
	defer unlock()

	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, day)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	if rec == nil {
		created, err := s.attendanceRepo.Create(ctx, attendance.Record{
			EmployeeID: req.EmployeeID,
			Date:       day,
			PunchIn:    &now,
			Status:     attendance.StatusPresent,
			SiteID:     req.SiteID,
		})
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
		}
		rec = &created
	} else {
		events, err := s.logRepo.ListByRecord(ctx, rec.ID)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to list punch events: %w", err)
		}
		if Replay(events, nil).OpenPunch {
			return attendance.RecordResponse{}, attendance.ErrAlreadyPunchedIn
		}
		if rec.PunchIn == nil {
			rec.PunchIn = &now
			if err := s.attendanceRepo.Update(ctx, *rec); err != nil {
				return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
			}
		}
	}

	if _, err := s.logRepo.Append(ctx, attendance.PunchEvent{
		EmployeeID: req.EmployeeID,
		RecordID:   rec.ID,
		Timestamp:  now,
		Type:       attendance.PunchIn,
	}); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to append punch event: %w", err)
	}

	return attendance.ToRecordResponse(*rec), nil
}

// PunchOut closes the open punch interval, recomputes the day's aggregates
// from the full log, and reclassifies the record. An overnight shift's
// closing punch lands on the next calendar day, so the open interval may
// belong to yesterday's record.
func (s *Service) PunchOut(ctx context.Context, req attendance.PunchRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	now := s.now().In(s.loc)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	// Today first, then yesterday: a consistent order keeps concurrent
	// punch-outs from deadlocking on the two day keys.
	unlock := s.dayLocks.lock(dayKey(req.EmployeeID, day))
	defer unlock()
	unlockPrev := s.dayLocks.lock(dayKey(req.EmployeeID, day.AddDate(0, 0, -1)))
	defer unlockPrev()

	rec, events, recDay, err := s.openRecord(ctx, req.EmployeeID, day)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	outEvent, err := s.logRepo.Append(ctx, attendance.PunchEvent{
		EmployeeID: req.EmployeeID,
		RecordID:   rec.ID,
		Timestamp:  now,
		Type:       attendance.PunchOut,
	})
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to append punch event: %w", err)
	}
	events = append(events, outEvent)

	act := Replay(events, nil)

	win, err := s.resolver.ResolveWindow(ctx, req.EmployeeID, recDay)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to resolve schedule window: %w", err)
	}

	isHoliday, err := s.holidayRepo.IsHoliday(ctx, recDay)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to check holiday: %w", err)
	}

	rec.PunchOut = &now
	rec.BreakHours = round2(float64(act.BreakMinutes) / 60)
	rec.OvertimeHours = s.overtimeHours(rec, win, act)
	rec.Status = Classify(ClassifyInput{
		Window:       win,
		FirstPunchIn: FirstPunchIn(events),
		Activity:     act,
		Date:         recDay,
		IsHoliday:    isHoliday,
		PayFrequency: emp.PayFrequency,
		GraceMinutes: s.cfg.GraceMinutes,
	})

	if err := s.attendanceRepo.Update(ctx, *rec); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return attendance.ToRecordResponse(*rec), nil
}

// openRecord finds the record holding the open punch interval for a punch-out
// on day: today's record, or yesterday's when yesterday's resolved window is
// overnight and its interval is still running past midnight.
func (s *Service) openRecord(ctx context.Context, employeeID string, day time.Time) (*attendance.Record, []attendance.PunchEvent, time.Time, error) {
	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return nil, nil, time.Time{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if rec != nil {
		events, err := s.logRepo.ListByRecord(ctx, rec.ID)
		if err != nil {
			return nil, nil, time.Time{}, fmt.Errorf("failed to list punch events: %w", err)
		}
		if Replay(events, nil).OpenPunch {
			return rec, events, day, nil
		}
	}

	prevDay := day.AddDate(0, 0, -1)
	prev, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, prevDay)
	if err != nil {
		return nil, nil, time.Time{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if prev == nil {
		return nil, nil, time.Time{}, attendance.ErrNotPunchedIn
	}

	events, err := s.logRepo.ListByRecord(ctx, prev.ID)
	if err != nil {
		return nil, nil, time.Time{}, fmt.Errorf("failed to list punch events: %w", err)
	}
	if !Replay(events, nil).OpenPunch {
		return nil, nil, time.Time{}, attendance.ErrNotPunchedIn
	}

	win, err := s.resolver.ResolveWindow(ctx, employeeID, prevDay)
	if err != nil {
		return nil, nil, time.Time{}, fmt.Errorf("failed to resolve schedule window: %w", err)
	}
	if win == nil || !win.Overnight {
		// A day shift left open is stale data, not a shift in progress.
		return nil, nil, time.Time{}, attendance.ErrNotPunchedIn
	}
	return prev, events, prevDay, nil
}

// GetRecord returns the employee's record for a date.
func (s *Service) GetRecord(ctx context.Context, employeeID string, date time.Time) (attendance.RecordResponse, error) {
	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if rec == nil {
		return attendance.RecordResponse{}, attendance.ErrRecordNotFound
	}
	return attendance.ToRecordResponse(*rec), nil
}

// ListRecords returns the employee's records in [from, to].
func (s *Service) ListRecords(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.RecordResponse, error) {
	records, err := s.attendanceRepo.ListByEmployeePeriod(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToRecordResponse(rec))
	}
	return responses, nil
}

// overtimeHours derives overtime past the expected window. Totals above 24h
// in one day can only come from corrupt punch data, so they are dropped.
func (s *Service) overtimeHours(rec *attendance.Record, win *schedule.ResolvedWindow, act Activity) float64 {
	if win == nil || act.WorkedMinutes <= win.ExpectedMinutes {
		return 0
	}
	hours := float64(act.WorkedMinutes-win.ExpectedMinutes) / 60
	if hours > 24 {
		slog.Warn("overtime exceeds 24 hours, treating as corrupt punch data",
			"employee_id", rec.EmployeeID,
			"record_id", rec.ID,
			"overtime_hours", hours)
		return 0
	}
	return round2(hours)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
