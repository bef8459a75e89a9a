package attendance

import (
	"sort"
	"time"

	"github.com/bayanihr/payroll-backend-go/internal/domain/attendance"
	"github.com/bayanihr/payroll-backend-go/internal/domain/employee"
	"github.com/bayanihr/payroll-backend-go/internal/domain/schedule"
)

// Activity is the aggregate of one day's punch log: time inside in/out pairs,
// time between pairs, and whether a punch-in is still open.
type Activity struct {
	WorkedMinutes int
	BreakMinutes  int
	OpenPunch     bool
}

// Replay folds an ordered punch log into worked and break minutes. Each "in"
// opens an interval, the next "out" closes it; gaps between pairs count as
// breaks. A trailing open "in" is closed against finalOut when the day is
// finalized, otherwise left out of the totals. Events are sorted by timestamp
// first, so replaying the same log always yields the same result.
func Replay(events []attendance.PunchEvent, finalOut *time.Time) Activity {
	sorted := make([]attendance.PunchEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var act Activity
	var open *time.Time
	var lastClose *time.Time

	for i := range sorted {
		ev := sorted[i]
		switch ev.Type {
		case attendance.PunchIn:
			if open != nil {
				// Duplicate "in" while an interval is open; keep the first.
				continue
			}
			ts := ev.Timestamp
			open = &ts
			if lastClose != nil {
				act.BreakMinutes += int(ts.Sub(*lastClose).Minutes())
			}
		case attendance.PunchOut:
			if open == nil {
				// "out" with no open interval; ignore.
				continue
			}
			act.WorkedMinutes += int(ev.Timestamp.Sub(*open).Minutes())
			ts := ev.Timestamp
			lastClose = &ts
			open = nil
		}
	}

	if open != nil {
		if finalOut != nil && finalOut.After(*open) {
			act.WorkedMinutes += int(finalOut.Sub(*open).Minutes())
		} else {
			act.OpenPunch = true
		}
	}

	return act
}

// FirstPunchIn returns the earliest "in" timestamp of the log, or nil when
// the day has no punch-in at all.
func FirstPunchIn(events []attendance.PunchEvent) *time.Time {
	var first *time.Time
	for i := range events {
		if events[i].Type != attendance.PunchIn {
			continue
		}
		if first == nil || events[i].Timestamp.Before(*first) {
			ts := events[i].Timestamp
			first = &ts
		}
	}
	return first
}

// ClassifyInput carries everything the status decision needs. Window may be
// nil (no schedule for the date).
type ClassifyInput struct {
	Window       *schedule.ResolvedWindow
	FirstPunchIn *time.Time
	Activity     Activity
	Date         time.Time
	IsHoliday    bool
	PayFrequency employee.PayFrequency
	GraceMinutes int
}

// Classify decides the qualitative day status. The thresholds are evaluated
// against the window midpoint and a grace window after the scheduled start;
// holiday dates get the same thresholds under a "holiday-" prefix. The
// weekly/semi-monthly asymmetry on unworked holidays is a business rule:
// semi-monthly employees get the paid holiday by default, weekly employees
// are marked absent.
func Classify(in ClassifyInput) string {
	hasPunches := in.FirstPunchIn != nil

	if !hasPunches {
		if in.IsHoliday {
			if in.PayFrequency == employee.PayFrequencyWeekly {
				return attendance.StatusAbsent
			}
			return attendance.StatusHoliday
		}
		if in.Window == nil {
			wd := in.Date.Weekday()
			if wd == time.Saturday || wd == time.Sunday {
				return attendance.StatusWeekendOff
			}
			return attendance.StatusAbsent
		}
		return attendance.StatusAbsent
	}

	status := classifyWorked(in)
	if in.IsHoliday {
		return attendance.HolidayPrefix + status
	}
	return status
}

func classifyWorked(in ClassifyInput) string {
	// Punches without a reference window cannot be late or early.
	if in.Window == nil || in.Window.ExpectedMinutes == 0 {
		return attendance.StatusPresent
	}

	expected := in.Window.ExpectedMinutes
	worked := in.Activity.WorkedMinutes

	if worked >= expected {
		return attendance.StatusFull
	}

	graceLimit := in.Window.Start.Add(time.Duration(in.GraceMinutes) * time.Minute)
	if !in.FirstPunchIn.After(graceLimit) && worked < expected/2 {
		return attendance.StatusMorningOnly
	}

	if in.FirstPunchIn.After(in.Window.Midpoint()) {
		return attendance.StatusAfternoonOnly
	}

	return attendance.StatusPartial
}
