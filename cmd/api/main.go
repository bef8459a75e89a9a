package main

import (
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/bayanihr/payroll-backend-go/internal/config"
	"github.com/bayanihr/payroll-backend-go/internal/domain/notification"
	appHTTP "github.com/bayanihr/payroll-backend-go/internal/handler/http"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/cron"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/lock"
	"github.com/bayanihr/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/bayanihr/payroll-backend-go/internal/service/attendance"
	payrollService "github.com/bayanihr/payroll-backend-go/internal/service/payroll"
	scheduleService "github.com/bayanihr/payroll-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}
	loc := cfg.Location()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	attendanceLogRepo := postgresql.NewAttendanceLogRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	loanRepo := postgresql.NewLoanRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	statutoryRepo := postgresql.NewStatutoryRepository(db)
	thirteenthRepo := postgresql.NewThirteenthRepository(db)

	var locker lock.Locker
	if cfg.Redis.Addr != "" {
		locker = lock.NewRedisLocker(redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}))
	} else {
		locker = lock.NewLocalLocker()
	}

	dispatcher := notification.NewLogDispatcher()

	resolver := scheduleService.NewResolver(scheduleRepo, cfg.Payroll, loc)
	scheduleSvc := scheduleService.NewService(scheduleRepo, employeeRepo, resolver)
	attendanceSvc := attendanceService.NewService(
		attendanceRepo,
		attendanceLogRepo,
		employeeRepo,
		holidayRepo,
		resolver,
		cfg.Payroll,
		loc,
	)
	payrollSvc := payrollService.NewService(
		payrollRepo,
		loanRepo,
		statutoryRepo,
		thirteenthRepo,
		attendanceRepo,
		leaveRepo,
		employeeRepo,
		holidayRepo,
		resolver,
		dispatcher,
		cfg.Payroll,
	)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceRepo, attendanceLogRepo, resolver, locker, db, loc)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(cfg, attendanceHandler, scheduleHandler, payrollHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
