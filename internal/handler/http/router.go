package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions carries the transport settings read from config.
type RouterOptions struct {
	AllowedOrigins []string
	// AuthRateLimit is the number of auth requests allowed per IP per minute
	AuthRateLimit int
	// UploadsDir is served under /uploads when set
	UploadsDir string
}

type Handlers struct {
	Health     HealthHandler
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Report     ReportHandler
	Salary     SalaryHandler
	Dashboard  DashboardHandler
}

func NewRouter(logger *slog.Logger, opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", h.Health.Check)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if opts.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir)))
		r.Handle("/uploads/*", fs)
	}

	authLimit := opts.AuthRateLimit
	if authLimit <= 0 {
		authLimit = 20
	}

	r.Route("/api", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Use(httprate.LimitByIP(authLimit, time.Minute))
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/employees", func(r chi.Router) {
				r.Post("/", h.Employee.Register)
				r.Get("/", h.Employee.List)
				r.Get("/{code}", h.Employee.Get)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/review", h.Attendance.Review)
				r.Get("/review/export", h.Attendance.ExportReview)
				r.Get("/history", h.Attendance.History)
				r.Put("/overrides", h.Attendance.SaveOverrides)
				r.Delete("/overrides/{employeeID}/{date}", h.Attendance.DeleteOverride)
				r.Post("/records", h.Attendance.RecordPunches)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/monthly", h.Report.Monthly)
				r.Get("/daily", h.Report.Daily)
				r.Get("/employees/{employeeID}", h.Report.Employee)
			})

			r.Route("/salaries", func(r chi.Router) {
				r.Get("/", h.Salary.List)
				r.Get("/export", h.Salary.Export)
				r.Post("/generate", h.Salary.Generate)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/{id}/approve", h.Salary.Approve)
					r.Post("/{id}/reject", h.Salary.Reject)
					r.Put("/{id}", h.Salary.Update)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/", h.Dashboard.Get)
				r.Get("/today/export", h.Dashboard.ExportToday)
			})
		})
	})
	return r
}
