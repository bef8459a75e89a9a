package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bayanihr/payroll-backend-go/internal/domain/attendance"
	"github.com/bayanihr/payroll-backend-go/internal/domain/employee"
	"github.com/bayanihr/payroll-backend-go/internal/domain/schedule"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 4, hour, min, 0, 0, time.UTC) // a Wednesday
}

func ev(t attendance.PunchType, ts time.Time) attendance.PunchEvent {
	return attendance.PunchEvent{EmployeeID: "emp-1", Timestamp: ts, Type: t}
}

func nineToFive() *schedule.ResolvedWindow {
	return &schedule.ResolvedWindow{
		ScheduleID:      1,
		Start:           at(9, 0),
		End:             at(17, 0),
		ExpectedMinutes: 480,
	}
}

func TestReplayFullDay(t *testing.T) {
	events := []attendance.PunchEvent{
		ev(attendance.PunchIn, at(9, 0)),
		ev(attendance.PunchOut, at(17, 0)),
	}

	act := Replay(events, nil)

	assert.Equal(t, 480, act.WorkedMinutes)
	assert.Equal(t, 0, act.BreakMinutes)
	assert.False(t, act.OpenPunch)
}

func TestReplayLunchBreak(t *testing.T) {
	events := []attendance.PunchEvent{
		ev(attendance.PunchIn, at(9, 0)),
		ev(attendance.PunchOut, at(12, 0)),
		ev(attendance.PunchIn, at(13, 0)),
		ev(attendance.PunchOut, at(17, 0)),
	}

	act := Replay(events, nil)

	assert.Equal(t, 420, act.WorkedMinutes)
	assert.Equal(t, 60, act.BreakMinutes)
}

func TestReplayOrderIndependent(t *testing.T) {
	ordered := []attendance.PunchEvent{
		ev(attendance.PunchIn, at(9, 0)),
		ev(attendance.PunchOut, at(12, 0)),
		ev(attendance.PunchIn, at(13, 0)),
		ev(attendance.PunchOut, at(17, 0)),
	}
	shuffled := []attendance.PunchEvent{ordered[3], ordered[1], ordered[0], ordered[2]}

	assert.Equal(t, Replay(ordered, nil), Replay(shuffled, nil))
}

func TestReplayIgnoresDuplicatePunches(t *testing.T) {
	events := []attendance.PunchEvent{
		ev(attendance.PunchOut, at(8, 0)), // out before any in
		ev(attendance.PunchIn, at(9, 0)),
		ev(attendance.PunchIn, at(9, 5)), // duplicate in
		ev(attendance.PunchOut, at(17, 0)),
	}

	act := Replay(events, nil)

	assert.Equal(t, 480, act.WorkedMinutes)
	assert.False(t, act.OpenPunch)
}

func TestReplayOpenPunch(t *testing.T) {
	events := []attendance.PunchEvent{ev(attendance.PunchIn, at(9, 0))}

	act := Replay(events, nil)
	assert.True(t, act.OpenPunch)
	assert.Equal(t, 0, act.WorkedMinutes)

	out := at(17, 0)
	act = Replay(events, &out)
	assert.False(t, act.OpenPunch)
	assert.Equal(t, 480, act.WorkedMinutes)
}

func classify(win *schedule.ResolvedWindow, events []attendance.PunchEvent, opts ...func(*ClassifyInput)) string {
	in := ClassifyInput{
		Window:       win,
		FirstPunchIn: FirstPunchIn(events),
		Activity:     Replay(events, nil),
		Date:         at(0, 0),
		PayFrequency: employee.PayFrequencySemiMonthly,
		GraceMinutes: 30,
	}
	for _, o := range opts {
		o(&in)
	}
	return Classify(in)
}

func onHoliday(in *ClassifyInput) { in.IsHoliday = true }
func paidWeekly(in *ClassifyInput) { in.PayFrequency = employee.PayFrequencyWeekly }

func TestClassifyFullDay(t *testing.T) {
	events := []attendance.PunchEvent{
		ev(attendance.PunchIn, at(9, 0)),
		ev(attendance.PunchOut, at(17, 0)),
	}
	assert.Equal(t, attendance.StatusFull, classify(nineToFive(), events))
}

func TestClassifyPartialMidday(t *testing.T) {
	// Arrived after grace but before the midpoint, worked half the window.
	events := []attendance.PunchEvent{
		ev(attendance.PunchIn, at(10, 0)),
		ev(attendance.PunchOut, at(14, 0)),
	}
	assert.Equal(t, attendance.StatusPartial, classify(nineToFive(), events))
}

func TestClassifyMorningOnly(t *testing.T) {
	events := []attendance.PunchEvent{
		ev(attendance.PunchIn, at(9, 10)),
		ev(attendance.PunchOut, at(11, 0)),
	}
	assert.Equal(t, attendance.StatusMorningOnly, classify(nineToFive(), events))
}

func TestClassifyAfternoonOnly(t *testing.T) {
	events := []attendance.PunchEvent{
		ev(attendance.PunchIn, at(14, 0)),
		ev(attendance.PunchOut, at(17, 0)),
	}
	assert.Equal(t, attendance.StatusAfternoonOnly, classify(nineToFive(), events))
}

func TestClassifyAbsent(t *testing.T) {
	assert.Equal(t, attendance.StatusAbsent, classify(nineToFive(), nil))
}

func TestClassifyNoScheduleWithPunches(t *testing.T) {
	events := []attendance.PunchEvent{
		ev(attendance.PunchIn, at(9, 0)),
		ev(attendance.PunchOut, at(17, 0)),
	}
	assert.Equal(t, attendance.StatusPresent, classify(nil, events))
}

func TestClassifyWeekendOff(t *testing.T) {
	status := classify(nil, nil, func(in *ClassifyInput) {
		in.Date = time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC) // Saturday
	})
	assert.Equal(t, attendance.StatusWeekendOff, status)

	// A weekday with no schedule and no punches is plain absence.
	assert.Equal(t, attendance.StatusAbsent, classify(nil, nil))
}

func TestClassifyZeroExpectedWithPunches(t *testing.T) {
	win := &schedule.ResolvedWindow{ScheduleID: 1, Start: at(9, 0), End: at(9, 0)}
	events := []attendance.PunchEvent{
		ev(attendance.PunchIn, at(9, 0)),
		ev(attendance.PunchOut, at(10, 0)),
	}
	assert.Equal(t, attendance.StatusPresent, classify(win, events))
}

func TestClassifyHolidayWorked(t *testing.T) {
	events := []attendance.PunchEvent{
		ev(attendance.PunchIn, at(9, 0)),
		ev(attendance.PunchOut, at(17, 0)),
	}
	assert.Equal(t, "holiday-full", classify(nineToFive(), events, onHoliday))
}

func TestClassifyHolidayUnworkedByPayFrequency(t *testing.T) {
	// Semi-monthly employees get the paid holiday, weekly employees do not.
	assert.Equal(t, attendance.StatusHoliday, classify(nineToFive(), nil, onHoliday))
	assert.Equal(t, attendance.StatusAbsent, classify(nineToFive(), nil, onHoliday, paidWeekly))
}
