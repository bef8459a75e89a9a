package schedule

import (
	"time"

	"github.com/bayanihr/payroll-backend-go/internal/pkg/validator"
)

type DayWindowRequest struct {
	Start string `json:"start"` // "15:04"
	End   string `json:"end"`
}

type CreateScheduleRequest struct {
	EmployeeID     string                      `json:"employee_id"`
	Kind           string                      `json:"kind"`
	EffectiveFrom  string                      `json:"effective_from"` // "2006-01-02"
	EffectiveUntil *string                     `json:"effective_until,omitempty"`
	Daily          *DayWindowRequest           `json:"daily,omitempty"`
	Weekdays       map[string]DayWindowRequest `json:"weekdays,omitempty"`
}

func (r *CreateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsInSlice(r.Kind, KindValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: fixed, flexible",
		})
	}

	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_from",
			Message: "effective_from must be a valid date (YYYY-MM-DD)",
		})
	}

	if r.EffectiveUntil != nil {
		if _, ok := validator.IsValidDate(*r.EffectiveUntil); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_until",
				Message: "effective_until must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	switch Kind(r.Kind) {
	case KindFixed:
		if r.Daily == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "daily",
				Message: "daily window is required for fixed schedules",
			})
		} else if !isValidClock(r.Daily.Start) || !isValidClock(r.Daily.End) {
			errs = append(errs, validator.ValidationError{
				Field:   "daily",
				Message: "daily start/end must be valid times (HH:MM)",
			})
		}
	case KindFlexible:
		if len(r.Weekdays) == 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "weekdays",
				Message: "at least one weekday window is required for flexible schedules",
			})
		}
		validDays := []string{DayMon, DayTue, DayWed, DayThu, DayFri, DaySat, DaySun}
		for day, win := range r.Weekdays {
			if !validator.IsInSlice(day, validDays) {
				errs = append(errs, validator.ValidationError{
					Field:   "weekdays." + day,
					Message: "unknown weekday key",
				})
				continue
			}
			if !isValidClock(win.Start) || !isValidClock(win.End) {
				errs = append(errs, validator.ValidationError{
					Field:   "weekdays." + day,
					Message: "start/end must be valid times (HH:MM)",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func isValidClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// ToSchedule converts a validated request to the domain entity. Validate must
// have been called first; parse errors are impossible afterwards.
func (r *CreateScheduleRequest) ToSchedule() Schedule {
	from, _ := time.Parse("2006-01-02", r.EffectiveFrom)

	sched := Schedule{
		EmployeeID:    r.EmployeeID,
		Kind:          Kind(r.Kind),
		EffectiveFrom: from,
	}

	if r.EffectiveUntil != nil {
		until, _ := time.Parse("2006-01-02", *r.EffectiveUntil)
		sched.EffectiveUntil = &until
	}

	if r.Daily != nil {
		start, _ := time.Parse("15:04", r.Daily.Start)
		end, _ := time.Parse("15:04", r.Daily.End)
		sched.Daily = &DayWindow{Start: start, End: end}
	}

	if len(r.Weekdays) > 0 {
		sched.Weekdays = make(map[string]DayWindow, len(r.Weekdays))
		for day, win := range r.Weekdays {
			start, _ := time.Parse("15:04", win.Start)
			end, _ := time.Parse("15:04", win.End)
			sched.Weekdays[day] = DayWindow{Start: start, End: end}
		}
	}

	return sched
}

type ScheduleResponse struct {
	ID             int64                       `json:"id"`
	EmployeeID     string                      `json:"employee_id"`
	Kind           string                      `json:"kind"`
	EffectiveFrom  string                      `json:"effective_from"`
	EffectiveUntil *string                     `json:"effective_until,omitempty"`
	Daily          *DayWindowRequest           `json:"daily,omitempty"`
	Weekdays       map[string]DayWindowRequest `json:"weekdays,omitempty"`
}

func ToScheduleResponse(s Schedule) ScheduleResponse {
	resp := ScheduleResponse{
		ID:            s.ID,
		EmployeeID:    s.EmployeeID,
		Kind:          string(s.Kind),
		EffectiveFrom: s.EffectiveFrom.Format("2006-01-02"),
	}
	if s.EffectiveUntil != nil {
		until := s.EffectiveUntil.Format("2006-01-02")
		resp.EffectiveUntil = &until
	}
	if s.Daily != nil {
		resp.Daily = &DayWindowRequest{
			Start: s.Daily.Start.Format("15:04"),
			End:   s.Daily.End.Format("15:04"),
		}
	}
	if len(s.Weekdays) > 0 {
		resp.Weekdays = make(map[string]DayWindowRequest, len(s.Weekdays))
		for day, win := range s.Weekdays {
			resp.Weekdays[day] = DayWindowRequest{
				Start: win.Start.Format("15:04"),
				End:   win.End.Format("15:04"),
			}
		}
	}
	return resp
}

type ResolvedWindowResponse struct {
	ScheduleID      int64  `json:"schedule_id"`
	Start           string `json:"start"`
	End             string `json:"end"`
	ExpectedMinutes int    `json:"expected_minutes"`
	Overnight       bool   `json:"overnight"`
}

func ToResolvedWindowResponse(w ResolvedWindow) ResolvedWindowResponse {
	return ResolvedWindowResponse{
		ScheduleID:      w.ScheduleID,
		Start:           w.Start.Format("2006-01-02 15:04"),
		End:             w.End.Format("2006-01-02 15:04"),
		ExpectedMinutes: w.ExpectedMinutes,
		Overnight:       w.Overnight,
	}
}
