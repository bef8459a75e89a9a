package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/bayanihr/payroll-backend-go/internal/config"
)

func NewRouter(
	cfg *config.Config,
	attendanceHandler AttendanceHandler,
	scheduleHandler ScheduleHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "bayani-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/punch-in", attendanceHandler.PunchIn)
			r.Post("/punch-out", attendanceHandler.PunchOut)
			r.Route("/{employeeID}", func(r chi.Router) {
				r.Get("/", attendanceHandler.GetRecord)
				r.Get("/records", attendanceHandler.ListRecords)
			})
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Post("/", scheduleHandler.Create)
			r.Route("/{employeeID}", func(r chi.Router) {
				r.Get("/", scheduleHandler.ListByEmployee)
				r.Get("/resolve", scheduleHandler.Resolve)
			})
		})

		r.Route("/payrolls", func(r chi.Router) {
			r.Post("/generate", payrollHandler.Generate)
			r.Get("/", payrollHandler.ListByPeriod)
			r.Route("/{payrollID}", func(r chi.Router) {
				r.Get("/", payrollHandler.Get)
				r.Post("/approve", payrollHandler.Approve)
			})
			r.Route("/thirteenth", func(r chi.Router) {
				r.Post("/generate", payrollHandler.GenerateThirteenth)
				r.Get("/{employeeID}", payrollHandler.GetThirteenth)
			})
		})
	})
	return r
}
