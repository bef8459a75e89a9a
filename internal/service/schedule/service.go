package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/bayanihr/payroll-backend-go/internal/domain/employee"
	"github.com/bayanihr/payroll-backend-go/internal/domain/schedule"
)

// Service covers the schedule CRUD surface on top of the resolver.
type Service struct {
	scheduleRepo schedule.Repository
	employeeRepo employee.Repository
	resolver     *Resolver
}

func NewService(scheduleRepo schedule.Repository, employeeRepo employee.Repository, resolver *Resolver) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		employeeRepo: employeeRepo,
		resolver:     resolver,
	}
}

// Create validates and stores a new schedule. The new schedule supersedes any
// overlapping older one from its effective date on.
func (s *Service) Create(ctx context.Context, req schedule.CreateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	created, err := s.scheduleRepo.Create(ctx, req.ToSchedule())
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to create schedule: %w", err)
	}
	return schedule.ToScheduleResponse(created), nil
}

// ListByEmployee returns every schedule of the employee, newest first.
func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]schedule.ScheduleResponse, error) {
	schedules, err := s.scheduleRepo.GetByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	responses := make([]schedule.ScheduleResponse, 0, len(schedules))
	for _, sched := range schedules {
		responses = append(responses, schedule.ToScheduleResponse(sched))
	}
	return responses, nil
}

// Resolve returns the expected window for the employee on date, or
// ErrNoScheduleFound when none applies.
func (s *Service) Resolve(ctx context.Context, employeeID string, date time.Time) (schedule.ResolvedWindowResponse, error) {
	win, err := s.resolver.ResolveWindow(ctx, employeeID, date)
	if err != nil {
		return schedule.ResolvedWindowResponse{}, err
	}
	if win == nil {
		return schedule.ResolvedWindowResponse{}, schedule.ErrNoScheduleFound
	}
	return schedule.ToResolvedWindowResponse(*win), nil
}
