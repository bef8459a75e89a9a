package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/bayanihr/payroll-backend-go/internal/config"
	"github.com/bayanihr/payroll-backend-go/internal/domain/attendance"
	"github.com/bayanihr/payroll-backend-go/internal/domain/employee"
	"github.com/bayanihr/payroll-backend-go/internal/domain/holiday"
	"github.com/bayanihr/payroll-backend-go/internal/domain/leave"
	"github.com/bayanihr/payroll-backend-go/internal/domain/notification"
	"github.com/bayanihr/payroll-backend-go/internal/domain/payroll"
	scheduleService "github.com/bayanihr/payroll-backend-go/internal/service/schedule"
)

var two = decimal.NewFromInt(2)

// Service computes payroll rows from attendance, leave, loan, and statutory
// inputs. Generation is serialized per (employee, period): concurrent requests
// for the same key share one computation instead of racing on the row.
type Service struct {
	payrollRepo    payroll.Repository
	loanRepo       payroll.LoanRepository
	statutoryRepo  payroll.StatutoryRepository
	thirteenthRepo payroll.ThirteenthRepository
	attendanceRepo attendance.Repository
	leaveRepo      leave.Repository
	employeeRepo   employee.Repository
	holidayRepo    holiday.Repository
	resolver       *scheduleService.Resolver
	dispatcher     notification.Dispatcher
	cfg            config.PayrollConfig
	generateGroup  singleflight.Group
}

func NewService(
	payrollRepo payroll.Repository,
	loanRepo payroll.LoanRepository,
	statutoryRepo payroll.StatutoryRepository,
	thirteenthRepo payroll.ThirteenthRepository,
	attendanceRepo attendance.Repository,
	leaveRepo leave.Repository,
	employeeRepo employee.Repository,
	holidayRepo holiday.Repository,
	resolver *scheduleService.Resolver,
	dispatcher notification.Dispatcher,
	cfg config.PayrollConfig,
) *Service {
	return &Service{
		payrollRepo:    payrollRepo,
		loanRepo:       loanRepo,
		statutoryRepo:  statutoryRepo,
		thirteenthRepo: thirteenthRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		employeeRepo:   employeeRepo,
		holidayRepo:    holidayRepo,
		resolver:       resolver,
		dispatcher:     dispatcher,
		cfg:            cfg,
	}
}

// Generate computes the payroll row for the employee and period. A Pending
// row for the same period is recomputed in place; an Approved row makes the
// call fail.
func (s *Service) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	periodStart, _ := time.Parse("2006-01-02", req.PeriodStart)
	periodEnd, _ := time.Parse("2006-01-02", req.PeriodEnd)

	key := req.EmployeeID + "|" + req.PeriodStart + "|" + req.PeriodEnd
	result, err, _ := s.generateGroup.Do(key, func() (interface{}, error) {
		return s.generate(ctx, req.EmployeeID, periodStart, periodEnd)
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return payroll.ToPayrollResponse(result.(payroll.Payroll)), nil
}

func (s *Service) generate(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (payroll.Payroll, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to get employee: %w", err)
	}

	existing, err := s.payrollRepo.GetByEmployeePeriod(ctx, employeeID, periodStart, periodEnd)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to get existing payroll: %w", err)
	}
	if existing != nil && existing.Status == payroll.StatusApproved {
		return payroll.Payroll{}, payroll.ErrPayrollApproved
	}

	records, err := s.attendanceRepo.ListByEmployeePeriod(ctx, employeeID, periodStart, periodEnd)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	leaves, err := s.leaveRepo.ListApprovedBetween(ctx, employeeID, periodStart, periodEnd)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to list approved leaves: %w", err)
	}

	holidayRows, err := s.holidayRepo.ListBetween(ctx, periodStart, periodEnd)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to list holidays: %w", err)
	}
	holidays := make(map[string]bool, len(holidayRows))
	for _, h := range holidayRows {
		holidays[h.Date.Format("2006-01-02")] = true
	}

	loans, err := s.loanRepo.ListDueInPeriod(ctx, employeeID, periodStart, periodEnd)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to list due loans: %w", err)
	}

	tables, err := s.statutoryRepo.GetTables(ctx)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to load statutory tables: %w", err)
	}

	counters, err := s.reduceAttendance(ctx, emp, periodStart, periodEnd, records, leaves, holidays)
	if err != nil {
		return payroll.Payroll{}, err
	}

	p := s.compute(emp, periodStart, periodEnd, counters, loans, tables)

	if existing != nil {
		p.ID = existing.ID
		p.GrossAdjustments = existing.GrossAdjustments
		p.DeductionAdjustments = existing.DeductionAdjustments
		p.GrossPay = round2(p.GrossPay.Add(p.GrossAdjustments))
		p.TotalDeductions = round2(p.TotalDeductions.Add(p.DeductionAdjustments))
		p.NetPay = round2(p.GrossPay.Sub(p.TotalDeductions))
		if err := s.payrollRepo.Update(ctx, p); err != nil {
			return payroll.Payroll{}, fmt.Errorf("failed to update payroll: %w", err)
		}
		return p, nil
	}

	p.ID = uuid.New().String()
	created, err := s.payrollRepo.Create(ctx, p)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to create payroll: %w", err)
	}
	return created, nil
}

// periodCounters is the attendance summary one pay period reduces to.
type periodCounters struct {
	workingDays     int
	attendedDays    int
	absentDays      int
	holidayDays     int
	paidLeaveDays   int
	unpaidLeaveDays int
	undertimeHours  float64
	overtimeHours   float64
	nightHours      float64
}

func (s *Service) compute(
	emp employee.Employee,
	periodStart, periodEnd time.Time,
	c periodCounters,
	loans []payroll.LoanPayrollDeduction,
	tables payroll.StatutoryTables,
) payroll.Payroll {
	dailyRate := s.dailyRate(emp)
	hourlyRate := dailyRate.Div(decimal.NewFromInt(int64(s.cfg.HoursPerDay)))

	p := payroll.Payroll{
		EmployeeID:     emp.ID,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		WorkingDays:    c.workingDays,
		AbsentDays:     c.absentDays,
		UndertimeHours: c.undertimeHours,
		OvertimeHours:  c.overtimeHours,
		Status:         payroll.StatusPending,
	}

	// Base pay and absence handling depend on the pay frequency: weekly
	// employees earn per attended day, so absent and unpaid-leave days are
	// simply unearned. Semi-monthly employees receive a fixed half of basic
	// salary with absences and unpaid leave deducted back out. Paid leave
	// days are restored through LeaveWithPay either way.
	fraction := periodFraction(emp.PayFrequency)
	switch emp.PayFrequency {
	case employee.PayFrequencyWeekly:
		p.BasePay = round2(dailyRate.Mul(decimal.NewFromInt(int64(c.attendedDays))))
	default:
		p.BasePay = round2(emp.BasicSalary.Div(two))
		p.AbsenceDeduction = round2(dailyRate.Mul(decimal.NewFromInt(int64(c.absentDays))))
		p.UnpaidLeaveDeduction = round2(dailyRate.Mul(decimal.NewFromInt(int64(c.unpaidLeaveDays))))
	}
	p.Allowance = round2(emp.Allowance.Mul(fraction))
	p.LeaveWithPay = round2(dailyRate.Mul(decimal.NewFromInt(int64(c.paidLeaveDays))))

	p.OvertimePay = round2(hourlyRate.
		Mul(decimal.NewFromFloat(c.overtimeHours)).
		Mul(s.cfg.OvertimeMultiplier))
	p.HolidayPay = round2(dailyRate.
		Mul(s.cfg.HolidayMultiplier).
		Mul(decimal.NewFromInt(int64(c.holidayDays))))
	p.NightDiffPay = round2(hourlyRate.
		Mul(s.cfg.NightDiffRate).
		Mul(decimal.NewFromFloat(c.nightHours)))

	p.UndertimeDeduction = round2(hourlyRate.Mul(decimal.NewFromFloat(c.undertimeHours)))

	p.SSSDeduction = s.statutoryAmount(emp, tables.SSS, "sss", fraction)
	p.PhilHealthDeduction = s.statutoryAmount(emp, tables.PhilHealth, "philhealth", fraction)
	p.PagIbigDeduction = s.statutoryAmount(emp, tables.PagIbig, "pagibig", fraction)
	p.WithholdingTax = s.statutoryAmount(emp, tables.WithholdingTax, "withholding_tax", fraction)

	for _, loan := range loans {
		p.LoanDeduction = p.LoanDeduction.Add(loan.Amount)
	}
	p.LoanDeduction = round2(p.LoanDeduction)

	p.GrossPay = round2(p.BasePay.
		Add(p.Allowance).
		Add(p.OvertimePay).
		Add(p.HolidayPay).
		Add(p.NightDiffPay).
		Add(p.LeaveWithPay))
	p.TotalDeductions = round2(p.SSSDeduction.
		Add(p.PhilHealthDeduction).
		Add(p.PagIbigDeduction).
		Add(p.WithholdingTax).
		Add(p.UndertimeDeduction).
		Add(p.AbsenceDeduction).
		Add(p.UnpaidLeaveDeduction).
		Add(p.LoanDeduction))
	p.NetPay = round2(p.GrossPay.Sub(p.TotalDeductions))

	return p
}

// reduceAttendance folds the period into the counters the money computation
// runs on. It walks every calendar day of the period rather than just the
// stored records: records are created on first punch, so a scheduled day the
// employee skipped has no row at all and must be reconstructed from the
// schedule. Weekend-off days are not working days; holiday-status days earn
// the holiday premium whether worked or not.
func (s *Service) reduceAttendance(
	ctx context.Context,
	emp employee.Employee,
	periodStart, periodEnd time.Time,
	records []attendance.Record,
	leaves []leave.LeaveRequest,
	holidays map[string]bool,
) (periodCounters, error) {
	paidLeave, unpaidLeave := leaveDaySets(leaves)

	byDate := make(map[string]attendance.Record, len(records))
	for _, rec := range records {
		byDate[rec.Date.Format("2006-01-02")] = rec
	}

	var c periodCounters
	for d := periodStart; !d.After(periodEnd); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		rec, ok := byDate[key]
		if !ok {
			if err := s.reduceMissingDay(ctx, emp, d, key, holidays, paidLeave, unpaidLeave, &c); err != nil {
				return periodCounters{}, err
			}
			continue
		}

		switch {
		case rec.Status == attendance.StatusWeekendOff:
			continue
		case rec.Status == attendance.StatusAbsent:
			c.workingDays++
			countUnworkedDay(key, paidLeave, unpaidLeave, &c)
			continue
		case rec.Status == attendance.StatusHoliday:
			c.holidayDays++
			continue
		}

		c.workingDays++
		c.attendedDays++
		if strings.HasPrefix(rec.Status, attendance.HolidayPrefix) {
			c.holidayDays++
		}

		c.undertimeHours += rec.UndertimeHours
		c.overtimeHours += rec.OvertimeHours
		c.nightHours += s.nightHours(rec)
	}
	c.undertimeHours = roundHours(c.undertimeHours)
	c.overtimeHours = roundHours(c.overtimeHours)
	c.nightHours = roundHours(c.nightHours)
	return c, nil
}

// reduceMissingDay accounts for a period day with no attendance record. The
// schedule decides whether the day counts at all; an unworked holiday keeps
// the classifier's pay-frequency asymmetry.
func (s *Service) reduceMissingDay(
	ctx context.Context,
	emp employee.Employee,
	day time.Time,
	key string,
	holidays, paidLeave, unpaidLeave map[string]bool,
	c *periodCounters,
) error {
	win, err := s.resolver.ResolveWindow(ctx, emp.ID, day)
	if err != nil {
		return fmt.Errorf("failed to resolve schedule window: %w", err)
	}
	if win == nil || win.ExpectedMinutes == 0 {
		return nil
	}

	if holidays[key] {
		if emp.PayFrequency == employee.PayFrequencyWeekly {
			c.workingDays++
			c.absentDays++
		} else {
			c.holidayDays++
		}
		return nil
	}

	c.workingDays++
	countUnworkedDay(key, paidLeave, unpaidLeave, c)
	return nil
}

// countUnworkedDay classifies one scheduled day the employee did not work:
// paid leave (deducted as an absence, then restored through LeaveWithPay),
// unpaid leave, or a plain absence.
func countUnworkedDay(key string, paidLeave, unpaidLeave map[string]bool, c *periodCounters) {
	switch {
	case paidLeave[key]:
		c.absentDays++
		c.paidLeaveDays++
	case unpaidLeave[key]:
		c.unpaidLeaveDays++
	default:
		c.absentDays++
	}
}

// leaveDaySets expands approved leave requests into per-day lookup sets keyed
// by "2006-01-02".
func leaveDaySets(leaves []leave.LeaveRequest) (paid, unpaid map[string]bool) {
	paid = make(map[string]bool)
	unpaid = make(map[string]bool)
	for _, l := range leaves {
		for d := l.StartDate; !d.After(l.EndDate); d = d.AddDate(0, 0, 1) {
			if l.WithPay {
				paid[d.Format("2006-01-02")] = true
			} else {
				unpaid[d.Format("2006-01-02")] = true
			}
		}
	}
	return paid, unpaid
}

// nightHours measures the overlap between the record's punch span and the
// configured night window (NightStartHour on the record's date through
// NightEndHour the next morning).
func (s *Service) nightHours(rec attendance.Record) float64 {
	if rec.PunchIn == nil || rec.PunchOut == nil {
		return 0
	}

	loc := rec.PunchIn.Location()
	nightStart := time.Date(rec.Date.Year(), rec.Date.Month(), rec.Date.Day(),
		s.cfg.NightStartHour, 0, 0, 0, loc)
	nightEnd := time.Date(rec.Date.Year(), rec.Date.Month(), rec.Date.Day(),
		s.cfg.NightEndHour, 0, 0, 0, loc).AddDate(0, 0, 1)

	start := *rec.PunchIn
	if start.Before(nightStart) {
		start = nightStart
	}
	end := *rec.PunchOut
	if end.After(nightEnd) {
		end = nightEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start).Hours()
}

// statutoryAmount resolves the monthly bracket amount for the employee and
// scales it to the pay period. A salary outside every bracket is a
// configuration gap: log it and contribute zero rather than failing the run.
func (s *Service) statutoryAmount(emp employee.Employee, brackets []payroll.RateBracket, table string, fraction decimal.Decimal) decimal.Decimal {
	amount, err := payroll.Lookup(brackets, emp.BasicSalary)
	if err != nil {
		if errors.Is(err, payroll.ErrNoRateBracket) {
			slog.Warn("no statutory bracket for salary, skipping deduction",
				"table", table,
				"employee_id", emp.ID,
				"basic_salary", emp.BasicSalary.String())
			return decimal.Zero
		}
		return decimal.Zero
	}
	return round2(amount.Mul(fraction))
}

// dailyRate prefers the explicit rate on the employee and falls back to
// basic salary over the working-days divisor.
func (s *Service) dailyRate(emp employee.Employee) decimal.Decimal {
	if emp.DailyRate.IsPositive() {
		return emp.DailyRate
	}
	return emp.BasicSalary.Div(decimal.NewFromInt(int64(s.cfg.WorkingDaysPerMonth)))
}

// periodFraction scales monthly amounts (allowance, statutory brackets) to
// the period length implied by the pay frequency.
func periodFraction(freq employee.PayFrequency) decimal.Decimal {
	if freq == employee.PayFrequencyWeekly {
		return decimal.NewFromFloat(0.25)
	}
	return decimal.NewFromFloat(0.5)
}

// Approve flips a Pending row to Approved and notifies the employee. The
// repository enforces the single-transition rule.
func (s *Service) Approve(ctx context.Context, req payroll.ApprovePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	approved, err := s.payrollRepo.Approve(ctx, req.ID, req.ApprovedBy)
	if err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("failed to approve payroll: %w", err)
	}

	s.dispatcher.Dispatch(ctx, notification.Event{
		Type:        notification.TypePayrollApproved,
		RecipientID: approved.EmployeeID,
		Title:       "Payroll approved",
		Message: fmt.Sprintf("Your payroll for %s to %s has been approved.",
			approved.PeriodStart.Format("2006-01-02"),
			approved.PeriodEnd.Format("2006-01-02")),
		Data: map[string]interface{}{
			"payroll_id": approved.ID,
			"net_pay":    approved.NetPay.String(),
		},
	})

	return payroll.ToPayrollResponse(approved), nil
}

// GetByID returns one payroll row.
func (s *Service) GetByID(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	p, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("failed to get payroll: %w", err)
	}
	return payroll.ToPayrollResponse(p), nil
}

// ListByPeriod returns every payroll row generated for the period.
func (s *Service) ListByPeriod(ctx context.Context, periodStart, periodEnd time.Time) ([]payroll.PayrollResponse, error) {
	rows, err := s.payrollRepo.ListByPeriod(ctx, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}
	responses := make([]payroll.PayrollResponse, 0, len(rows))
	for _, p := range rows {
		responses = append(responses, payroll.ToPayrollResponse(p))
	}
	return responses, nil
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func roundHours(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
