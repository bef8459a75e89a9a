package schedule

import "time"

// Kind discriminates the two schedule shapes. A fixed schedule has one daily
// window; a flexible schedule maps weekdays to windows and treats a missing
// weekday as a rest day.
type Kind string

const (
	KindFixed    Kind = "fixed"
	KindFlexible Kind = "flexible"
)

var KindValues = []string{
	string(KindFixed),
	string(KindFlexible),
}

// Weekday keys for flexible schedules, lowercase three-letter abbreviations.
const (
	DayMon = "mon"
	DayTue = "tue"
	DayWed = "wed"
	DayThu = "thu"
	DayFri = "fri"
	DaySat = "sat"
	DaySun = "sun"
)

// DayWindow is a clock-time window. Start and End carry only the time of day
// (zero date); the resolver anchors them to a concrete calendar date.
type DayWindow struct {
	Start time.Time
	End   time.Time
}

// Schedule is a tagged variant: exactly one of Daily (fixed) or Weekdays
// (flexible) is populated, switched on Kind. The validity interval is
// [EffectiveFrom, EffectiveUntil]; a nil EffectiveUntil means open-ended.
type Schedule struct {
	ID             int64
	EmployeeID     string
	Kind           Kind
	EffectiveFrom  time.Time
	EffectiveUntil *time.Time
	Daily          *DayWindow
	Weekdays       map[string]DayWindow
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Covers reports whether the schedule's validity interval contains date.
// Comparison is by calendar day in each value's own location, so a
// midnight-local date never shifts across the UTC day boundary.
func (s Schedule) Covers(date time.Time) bool {
	day := dateOnly(date)
	if day.Before(dateOnly(s.EffectiveFrom)) {
		return false
	}
	if s.EffectiveUntil == nil {
		return true
	}
	return !day.After(dateOnly(*s.EffectiveUntil))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ResolvedWindow is the expected work window for one employee on one date.
type ResolvedWindow struct {
	ScheduleID      int64
	Start           time.Time
	End             time.Time
	ExpectedMinutes int
	Overnight       bool
}

// Midpoint returns the middle of the expected window, the reference point for
// the afternoon-only classification.
func (w ResolvedWindow) Midpoint() time.Time {
	return w.Start.Add(w.End.Sub(w.Start) / 2)
}

// WeekdayKey returns the lowercase three-letter key for t's weekday, matching
// the Weekdays map keys of flexible schedules.
func WeekdayKey(t time.Time) string {
	switch t.Weekday() {
	case time.Monday:
		return DayMon
	case time.Tuesday:
		return DayTue
	case time.Wednesday:
		return DayWed
	case time.Thursday:
		return DayThu
	case time.Friday:
		return DayFri
	case time.Saturday:
		return DaySat
	default:
		return DaySun
	}
}
