package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayanihr/payroll-backend-go/internal/config"
	"github.com/bayanihr/payroll-backend-go/internal/domain/attendance"
	"github.com/bayanihr/payroll-backend-go/internal/domain/employee"
	"github.com/bayanihr/payroll-backend-go/internal/domain/holiday"
	"github.com/bayanihr/payroll-backend-go/internal/domain/leave"
	"github.com/bayanihr/payroll-backend-go/internal/domain/notification"
	"github.com/bayanihr/payroll-backend-go/internal/domain/payroll"
	"github.com/bayanihr/payroll-backend-go/internal/domain/schedule"
	scheduleService "github.com/bayanihr/payroll-backend-go/internal/service/schedule"
)

type fakePayrollRepo struct {
	rows map[string]payroll.Payroll
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{rows: make(map[string]payroll.Payroll)}
}

func (f *fakePayrollRepo) Create(_ context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	f.rows[p.ID] = p
	return p, nil
}

func (f *fakePayrollRepo) Update(_ context.Context, p payroll.Payroll) error {
	existing, ok := f.rows[p.ID]
	if !ok {
		return payroll.ErrPayrollNotFound
	}
	if existing.Status == payroll.StatusApproved {
		return payroll.ErrPayrollApproved
	}
	f.rows[p.ID] = p
	return nil
}

func (f *fakePayrollRepo) GetByID(_ context.Context, id string) (payroll.Payroll, error) {
	p, ok := f.rows[id]
	if !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	return p, nil
}

func (f *fakePayrollRepo) GetByEmployeePeriod(_ context.Context, employeeID string, start, end time.Time) (*payroll.Payroll, error) {
	for _, p := range f.rows {
		if p.EmployeeID == employeeID && p.PeriodStart.Equal(start) && p.PeriodEnd.Equal(end) {
			row := p
			return &row, nil
		}
	}
	return nil, nil
}

func (f *fakePayrollRepo) Approve(_ context.Context, id string, approvedBy string) (payroll.Payroll, error) {
	p, ok := f.rows[id]
	if !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	if p.Status != payroll.StatusPending {
		return payroll.Payroll{}, payroll.ErrPayrollAlreadyApproved
	}
	now := time.Now()
	p.Status = payroll.StatusApproved
	p.ApprovedBy = &approvedBy
	p.ApprovedAt = &now
	f.rows[id] = p
	return p, nil
}

func (f *fakePayrollRepo) ListMonthlyEarnings(_ context.Context, employeeID string, from, to time.Time) ([]payroll.MonthlyEarnings, error) {
	byMonth := make(map[string]decimal.Decimal)
	for _, p := range f.rows {
		if p.EmployeeID != employeeID || p.PeriodStart.Before(from) || p.PeriodStart.After(to) {
			continue
		}
		month := p.PeriodStart.Format("2006-01")
		byMonth[month] = byMonth[month].Add(p.BasePay).Add(p.Allowance)
	}
	var out []payroll.MonthlyEarnings
	for month, earnings := range byMonth {
		out = append(out, payroll.MonthlyEarnings{Month: month, Earnings: earnings})
	}
	return out, nil
}

func (f *fakePayrollRepo) ListByPeriod(_ context.Context, start, end time.Time) ([]payroll.Payroll, error) {
	var out []payroll.Payroll
	for _, p := range f.rows {
		if p.PeriodStart.Equal(start) && p.PeriodEnd.Equal(end) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeLoanRepo struct {
	loans []payroll.LoanPayrollDeduction
}

func (f *fakeLoanRepo) ListDueInPeriod(_ context.Context, employeeID string, from, to time.Time) ([]payroll.LoanPayrollDeduction, error) {
	var out []payroll.LoanPayrollDeduction
	for _, l := range f.loans {
		if l.EmployeeID == employeeID && !l.DueDate.Before(from) && !l.DueDate.After(to) {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeStatutoryRepo struct {
	tables payroll.StatutoryTables
}

func (f *fakeStatutoryRepo) GetTables(_ context.Context) (payroll.StatutoryTables, error) {
	return f.tables, nil
}

type fakeThirteenthRepo struct {
	rows map[string]payroll.ThirteenthMonthPay // employeeID|year
}

func newFakeThirteenthRepo() *fakeThirteenthRepo {
	return &fakeThirteenthRepo{rows: make(map[string]payroll.ThirteenthMonthPay)}
}

func thirteenthKey(employeeID string, year int) string {
	return employeeID + "|" + time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006")
}

func (f *fakeThirteenthRepo) GetByEmployeeYear(_ context.Context, employeeID string, year int) (*payroll.ThirteenthMonthPay, error) {
	row, ok := f.rows[thirteenthKey(employeeID, year)]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (f *fakeThirteenthRepo) Upsert(_ context.Context, row payroll.ThirteenthMonthPay) (payroll.ThirteenthMonthPay, error) {
	f.rows[thirteenthKey(row.EmployeeID, row.Year)] = row
	return row, nil
}

type fakeAttendanceRepo struct {
	records []attendance.Record
}

func (f *fakeAttendanceRepo) Create(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, rec attendance.Record) error { return nil }

func (f *fakeAttendanceRepo) UpdateUndertime(_ context.Context, recordID int64, hours float64) error {
	return nil
}

func (f *fakeAttendanceRepo) ListByDate(_ context.Context, date time.Time) ([]attendance.Record, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByEmployeePeriod(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && !rec.Date.Before(from) && !rec.Date.After(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeLeaveRepo struct {
	leaves []leave.LeaveRequest
}

func (f *fakeLeaveRepo) ListApprovedBetween(_ context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, l := range f.leaves {
		if l.EmployeeID == employeeID && l.Status == leave.StatusApproved &&
			!l.StartDate.After(to) && !l.EndDate.Before(from) {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeHolidayRepo struct {
	dates map[string]holiday.Holiday
}

func (f *fakeHolidayRepo) IsHoliday(_ context.Context, date time.Time) (bool, error) {
	_, ok := f.dates[date.Format("2006-01-02")]
	return ok, nil
}

func (f *fakeHolidayRepo) ListBetween(_ context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range f.dates {
		if !h.Date.Before(from) && !h.Date.After(to) {
			out = append(out, h)
		}
	}
	return out, nil
}

type fakeScheduleRepo struct {
	schedules []schedule.Schedule
}

func (f *fakeScheduleRepo) Create(_ context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	f.schedules = append(f.schedules, s)
	return s, nil
}

func (f *fakeScheduleRepo) GetValidOnDate(_ context.Context, employeeID string, date time.Time) ([]schedule.Schedule, error) {
	var out []schedule.Schedule
	for _, s := range f.schedules {
		if s.EmployeeID == employeeID && s.Covers(date) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) GetByEmployee(_ context.Context, employeeID string) ([]schedule.Schedule, error) {
	var out []schedule.Schedule
	for _, s := range f.schedules {
		if s.EmployeeID == employeeID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		out = append(out, emp)
	}
	return out, nil
}

type capturingDispatcher struct {
	events []notification.Event
}

func (c *capturingDispatcher) Dispatch(_ context.Context, event notification.Event) {
	c.events = append(c.events, event)
}

type payrollFixture struct {
	svc        *Service
	payrolls   *fakePayrollRepo
	loans      *fakeLoanRepo
	statutory  *fakeStatutoryRepo
	thirteenth *fakeThirteenthRepo
	attendance *fakeAttendanceRepo
	leaves     *fakeLeaveRepo
	holidays   *fakeHolidayRepo
	schedules  *fakeScheduleRepo
	employees  *fakeEmployeeRepo
	dispatched *capturingDispatcher
}

func newPayrollFixture(t *testing.T) *payrollFixture {
	t.Helper()

	f := &payrollFixture{
		payrolls:   newFakePayrollRepo(),
		loans:      &fakeLoanRepo{},
		statutory:  &fakeStatutoryRepo{},
		thirteenth: newFakeThirteenthRepo(),
		attendance: &fakeAttendanceRepo{},
		leaves:     &fakeLeaveRepo{},
		holidays:   &fakeHolidayRepo{dates: map[string]holiday.Holiday{}},
		schedules:  &fakeScheduleRepo{},
		dispatched: &capturingDispatcher{},
	}
	f.employees = &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {
			ID:           "emp-1",
			FullName:     "Ana Reyes",
			BasicSalary:  decimal.NewFromInt(26000),
			DailyRate:    decimal.NewFromInt(1000),
			PayFrequency: employee.PayFrequencySemiMonthly,
			Active:       true,
		},
		"emp-2": {
			ID:           "emp-2",
			FullName:     "Ben Cruz",
			BasicSalary:  decimal.NewFromInt(26000),
			DailyRate:    decimal.NewFromInt(1000),
			PayFrequency: employee.PayFrequencyWeekly,
			Active:       true,
		},
	}}

	cfg := config.PayrollConfig{
		WorkingDaysPerMonth:  26,
		GraceMinutes:         30,
		HoursPerDay:          8,
		MaxShiftHours:        16,
		OvertimeMultiplier:   decimal.NewFromFloat(1.25),
		HolidayMultiplier:    decimal.NewFromFloat(1.0),
		NightDiffRate:        decimal.NewFromFloat(0.10),
		NightStartHour:       22,
		NightEndHour:         6,
		ThirteenthMonthStart: "12-01",
		ThirteenthMonthEnd:   "11-30",
	}

	resolver := scheduleService.NewResolver(f.schedules, cfg, time.UTC)
	f.svc = NewService(
		f.payrolls, f.loans, f.statutory, f.thirteenth,
		f.attendance, f.leaves, f.employees, f.holidays, resolver,
		f.dispatched, cfg,
	)
	return f
}

// withWeekdaySchedule gives the employee a Monday-to-Friday eight-hour
// flexible schedule, so period days resolve without attendance records.
func (f *payrollFixture) withWeekdaySchedule(employeeID string) {
	win := schedule.DayWindow{
		Start: time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		End:   time.Date(0, 1, 1, 17, 0, 0, 0, time.UTC),
	}
	f.schedules.schedules = append(f.schedules.schedules, schedule.Schedule{
		ID:            int64(len(f.schedules.schedules) + 1),
		EmployeeID:    employeeID,
		Kind:          schedule.KindFlexible,
		EffectiveFrom: day(2025, 1, 1),
		Weekdays: map[string]schedule.DayWindow{
			schedule.DayMon: win,
			schedule.DayTue: win,
			schedule.DayWed: win,
			schedule.DayThu: win,
			schedule.DayFri: win,
		},
	})
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (f *payrollFixture) addDays(employeeID string, status string, dates ...time.Time) {
	for _, d := range dates {
		f.attendance.records = append(f.attendance.records, attendance.Record{
			EmployeeID: employeeID,
			Date:       d,
			Status:     status,
		})
	}
}

func juneFirstHalf() (string, string) { return "2025-06-01", "2025-06-15" }

func TestGenerateSemiMonthlyBasePay(t *testing.T) {
	f := newPayrollFixture(t)
	start, end := juneFirstHalf()
	for d := 2; d <= 13; d++ {
		if wd := day(2025, 6, d).Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		f.addDays("emp-1", attendance.StatusFull, day(2025, 6, d))
	}

	resp, err := f.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1", PeriodStart: start, PeriodEnd: end,
	})
	require.NoError(t, err)

	assert.Equal(t, "13000", resp.BasePay.String())
	assert.True(t, resp.AbsenceDeduction.IsZero())
	assert.Equal(t, string(payroll.StatusPending), resp.Status)
	assert.Equal(t, resp.GrossPay.Sub(resp.TotalDeductions).String(), resp.NetPay.String())
}

func TestGenerateWeeklyPaysPerAttendedDay(t *testing.T) {
	f := newPayrollFixture(t)
	f.addDays("emp-2", attendance.StatusFull,
		day(2025, 6, 2), day(2025, 6, 3), day(2025, 6, 4))
	f.addDays("emp-2", attendance.StatusAbsent, day(2025, 6, 5))

	resp, err := f.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID: "emp-2", PeriodStart: "2025-06-02", PeriodEnd: "2025-06-08",
	})
	require.NoError(t, err)

	assert.Equal(t, "3000", resp.BasePay.String())
	// Weekly absence is an unearned day, not a deduction on top.
	assert.True(t, resp.AbsenceDeduction.IsZero())
	assert.Equal(t, 4, resp.WorkingDays)
	assert.Equal(t, 1, resp.AbsentDays)
}

func TestGenerateSemiMonthlyAbsenceDeducted(t *testing.T) {
	f := newPayrollFixture(t)
	start, end := juneFirstHalf()
	f.addDays("emp-1", attendance.StatusFull, day(2025, 6, 2), day(2025, 6, 3))
	f.addDays("emp-1", attendance.StatusAbsent, day(2025, 6, 4), day(2025, 6, 5))

	resp, err := f.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1", PeriodStart: start, PeriodEnd: end,
	})
	require.NoError(t, err)

	assert.Equal(t, "13000", resp.BasePay.String())
	assert.Equal(t, "2000", resp.AbsenceDeduction.String())
	assert.Equal(t, 2, resp.AbsentDays)
}

func TestGenerateOvertimeAndUndertime(t *testing.T) {
	f := newPayrollFixture(t)
	start, end := juneFirstHalf()
	f.attendance.records = append(f.attendance.records, attendance.Record{
		EmployeeID:     "emp-1",
		Date:           day(2025, 6, 2),
		Status:         attendance.StatusFull,
		OvertimeHours:  2,
		UndertimeHours: 0,
	}, attendance.Record{
		EmployeeID:     "emp-1",
		Date:           day(2025, 6, 3),
		Status:         attendance.StatusPartial,
		UndertimeHours: 1.5,
	})

	resp, err := f.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1", PeriodStart: start, PeriodEnd: end,
	})
	require.NoError(t, err)

	// Hourly rate 125: overtime 2h x 1.25 = 312.50, undertime 1.5h = 187.50.
	assert.Equal(t, "312.5", resp.OvertimePay.String())
	assert.Equal(t, "187.5", resp.UndertimeDeduction.String())
}

func TestGenerateStatutoryDeductions(t *testing.T) {
	f := newPayrollFixture(t)
	start, end := juneFirstHalf()
	ceiling := decimal.NewFromInt(30000)
	f.statutory.tables = payroll.StatutoryTables{
		SSS: []payroll.RateBracket{
			{SalaryFloor: decimal.NewFromInt(20000), SalaryCeiling: &ceiling, Amount: decimal.NewFromInt(1000)},
		},
		PhilHealth: []payroll.RateBracket{
			{SalaryFloor: decimal.Zero, Amount: decimal.NewFromInt(500)},
		},
	}
	f.addDays("emp-1", attendance.StatusFull, day(2025, 6, 2))

	resp, err := f.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1", PeriodStart: start, PeriodEnd: end,
	})
	require.NoError(t, err)

	// Monthly bracket amounts halved for the semi-monthly period.
	assert.Equal(t, "500", resp.SSSDeduction.String())
	assert.Equal(t, "250", resp.PhilHealthDeduction.String())
	// No Pag-IBIG bracket covers the salary: zero, not an error.
	assert.True(t, resp.PagIbigDeduction.IsZero())
}

func TestGeneratePaidLeaveRestored(t *testing.T) {
	f := newPayrollFixture(t)
	start, end := juneFirstHalf()
	f.addDays("emp-1", attendance.StatusAbsent, day(2025, 6, 2), day(2025, 6, 3))
	f.leaves.leaves = append(f.leaves.leaves, leave.LeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  day(2025, 6, 2),
		EndDate:    day(2025, 6, 3),
		WithPay:    true,
		Status:     leave.StatusApproved,
	})

	resp, err := f.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1", PeriodStart: start, PeriodEnd: end,
	})
	require.NoError(t, err)

	// The absence deduction and leave-with-pay cancel for paid leave days.
	assert.Equal(t, "2000", resp.AbsenceDeduction.String())
	assert.Equal(t, "2000", resp.LeaveWithPay.String())
}

func TestGenerateLoanDeductions(t *testing.T) {
	f := newPayrollFixture(t)
	start, end := juneFirstHalf()
	f.loans.loans = append(f.loans.loans,
		payroll.LoanPayrollDeduction{EmployeeID: "emp-1", Amount: decimal.NewFromInt(750), DueDate: day(2025, 6, 10)},
		payroll.LoanPayrollDeduction{EmployeeID: "emp-1", Amount: decimal.NewFromInt(250), DueDate: day(2025, 6, 12)},
		payroll.LoanPayrollDeduction{EmployeeID: "emp-1", Amount: decimal.NewFromInt(999), DueDate: day(2025, 7, 1)},
	)

	resp, err := f.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1", PeriodStart: start, PeriodEnd: end,
	})
	require.NoError(t, err)

	assert.Equal(t, "1000", resp.LoanDeduction.String())
}

func TestGenerateIdempotentOverwrite(t *testing.T) {
	f := newPayrollFixture(t)
	start, end := juneFirstHalf()
	f.addDays("emp-1", attendance.StatusFull, day(2025, 6, 2))
	req := payroll.GeneratePayrollRequest{EmployeeID: "emp-1", PeriodStart: start, PeriodEnd: end}

	first, err := f.svc.Generate(context.Background(), req)
	require.NoError(t, err)
	second, err := f.svc.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.NetPay.String(), second.NetPay.String())
	assert.Len(t, f.payrolls.rows, 1)
}

func TestGenerateApprovedRowImmutable(t *testing.T) {
	f := newPayrollFixture(t)
	start, end := juneFirstHalf()
	req := payroll.GeneratePayrollRequest{EmployeeID: "emp-1", PeriodStart: start, PeriodEnd: end}

	resp, err := f.svc.Generate(context.Background(), req)
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), payroll.ApprovePayrollRequest{
		ID: resp.ID, ApprovedBy: "mgr-1",
	})
	require.NoError(t, err)

	_, err = f.svc.Generate(context.Background(), req)
	assert.ErrorIs(t, err, payroll.ErrPayrollApproved)
}

func TestApproveDispatchesNotification(t *testing.T) {
	f := newPayrollFixture(t)
	start, end := juneFirstHalf()

	resp, err := f.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1", PeriodStart: start, PeriodEnd: end,
	})
	require.NoError(t, err)

	approved, err := f.svc.Approve(context.Background(), payroll.ApprovePayrollRequest{
		ID: resp.ID, ApprovedBy: "mgr-1",
	})
	require.NoError(t, err)

	assert.Equal(t, string(payroll.StatusApproved), approved.Status)
	require.Len(t, f.dispatched.events, 1)
	assert.Equal(t, notification.TypePayrollApproved, f.dispatched.events[0].Type)
	assert.Equal(t, "emp-1", f.dispatched.events[0].RecipientID)
}

func TestApproveTwiceRejected(t *testing.T) {
	f := newPayrollFixture(t)
	start, end := juneFirstHalf()

	resp, err := f.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1", PeriodStart: start, PeriodEnd: end,
	})
	require.NoError(t, err)

	approve := payroll.ApprovePayrollRequest{ID: resp.ID, ApprovedBy: "mgr-1"}
	_, err = f.svc.Approve(context.Background(), approve)
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), approve)
	assert.ErrorIs(t, err, payroll.ErrPayrollAlreadyApproved)
}

func TestGenerateHolidayPay(t *testing.T) {
	f := newPayrollFixture(t)
	start, end := juneFirstHalf()
	f.addDays("emp-1", "holiday-full", day(2025, 6, 12))
	f.addDays("emp-1", attendance.StatusHoliday, day(2025, 6, 13))

	resp, err := f.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1", PeriodStart: start, PeriodEnd: end,
	})
	require.NoError(t, err)

	// Two holiday days at daily rate 1000 x multiplier 1.0.
	assert.Equal(t, "2000", resp.HolidayPay.String())
}

func TestGenerateMissedScheduledDaysAbsent(t *testing.T) {
	f := newPayrollFixture(t)
	f.withWeekdaySchedule("emp-1")
	start, end := juneFirstHalf()

	// No punches at all: every record is missing, but the schedule still
	// says ten weekdays were expected.
	resp, err := f.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1", PeriodStart: start, PeriodEnd: end,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, resp.WorkingDays)
	assert.Equal(t, 10, resp.AbsentDays)
	assert.Equal(t, "13000", resp.BasePay.String())
	assert.Equal(t, "10000", resp.AbsenceDeduction.String())
	assert.Equal(t, "3000", resp.NetPay.String())
}

func TestGenerateWeeklyMissedDaysUnearned(t *testing.T) {
	f := newPayrollFixture(t)
	f.withWeekdaySchedule("emp-2")

	resp, err := f.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID: "emp-2", PeriodStart: "2025-06-02", PeriodEnd: "2025-06-08",
	})
	require.NoError(t, err)

	// Weekly pay is per attended day, so missed days earn nothing and
	// deduct nothing.
	assert.Equal(t, 5, resp.WorkingDays)
	assert.Equal(t, 5, resp.AbsentDays)
	assert.Equal(t, "0", resp.BasePay.String())
	assert.True(t, resp.AbsenceDeduction.IsZero())
}

func TestGenerateUnpaidLeaveDeducted(t *testing.T) {
	f := newPayrollFixture(t)
	f.withWeekdaySchedule("emp-1")
	start, end := juneFirstHalf()
	f.leaves.leaves = append(f.leaves.leaves, leave.LeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  day(2025, 6, 2),
		EndDate:    day(2025, 6, 4),
		WithPay:    false,
		Status:     leave.StatusApproved,
	})

	resp, err := f.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1", PeriodStart: start, PeriodEnd: end,
	})
	require.NoError(t, err)

	// Three unpaid leave days deducted on their own line, the remaining
	// seven scheduled days as plain absences.
	assert.Equal(t, "3000", resp.UnpaidLeaveDeduction.String())
	assert.Equal(t, "7000", resp.AbsenceDeduction.String())
	assert.Equal(t, 7, resp.AbsentDays)
	assert.True(t, resp.LeaveWithPay.IsZero())
}

func TestGenerateMissedHolidayByPayFrequency(t *testing.T) {
	f := newPayrollFixture(t)
	f.withWeekdaySchedule("emp-1")
	f.withWeekdaySchedule("emp-2")
	f.holidays.dates["2025-06-12"] = holiday.Holiday{Date: day(2025, 6, 12), Name: "Independence Day"}
	start, end := juneFirstHalf()

	// Semi-monthly employees get the unworked holiday paid.
	semi, err := f.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1", PeriodStart: start, PeriodEnd: end,
	})
	require.NoError(t, err)
	assert.Equal(t, "1000", semi.HolidayPay.String())
	assert.Equal(t, 9, semi.AbsentDays)

	// Weekly employees must work the holiday to earn it.
	weekly, err := f.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeID: "emp-2", PeriodStart: "2025-06-09", PeriodEnd: "2025-06-15",
	})
	require.NoError(t, err)
	assert.True(t, weekly.HolidayPay.IsZero())
	assert.Equal(t, 5, weekly.AbsentDays)
}
