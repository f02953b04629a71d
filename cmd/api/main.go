package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/factory-attendance-go/internal/config"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/payroll"
	appHTTP "github.com/cmlabs-hris/factory-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/cache"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/storage"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/upstream"
	"github.com/cmlabs-hris/factory-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/factory-attendance-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/factory-attendance-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/factory-attendance-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/factory-attendance-go/internal/service/employee"
	"github.com/cmlabs-hris/factory-attendance-go/internal/service/file"
	payrollService "github.com/cmlabs-hris/factory-attendance-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/factory-attendance-go/internal/service/report"
	"github.com/go-chi/httplog/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: httplog.SchemaECS.Concise(cfg.App.Env == "development").ReplaceAttr,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	recordRepo := postgresql.NewAttendanceRecordRepository(db)
	overrideRepo := postgresql.NewOverrideRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	transactor := postgresql.NewTransactor(db)

	var (
		directory employee.DirectorySource = employeeRepo
		records   attendance.RecordSource  = recordRepo
	)
	if cfg.Upstream.BaseURL != "" {
		client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
		directory = upstream.NewDirectory(client)
		records = upstream.NewRecords(client)
		slog.Info("Using upstream attendance service", "base_url", cfg.Upstream.BaseURL)
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}
	records = cache.NewRecords(records, redisClient, cfg.Redis.CacheTTL)
	recordCache, _ := records.(attendance.RecordCache)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("init local storage: %w", err)
	}
	fileService := file.NewFileService(fileStorage)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	pairing := attendance.ParsePairingMode(cfg.Attendance.PairingMode)

	authSvc := serviceAuth.NewAuthService(userRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, directory, fileService)
	attendanceSvc := attendanceService.NewAttendanceService(transactor, overrideRepo, recordRepo, recordCache)
	reportSvc := reportService.NewReportService(directory, records, overrideRepo, reportService.Settings{
		ExpectedDailyHours: cfg.Attendance.ExpectedDailyHours,
		PairingMode:        pairing,
	})
	salarySvc := payrollService.NewSalaryService(transactor, salaryRepo, directory, reportSvc, payroll.Settings{
		WorkingDaysPerMonth: cfg.Salary.WorkingDaysPerMonth,
		ExpectedDailyHours:  cfg.Attendance.ExpectedDailyHours,
	})
	dashboardSvc := dashboardService.NewDashboardService(directory, records, overrideRepo, salaryRepo, pairing)

	router := appHTTP.NewRouter(logger, appHTTP.RouterOptions{
		AllowedOrigins: cfg.App.AllowedOrigins,
		AuthRateLimit:  cfg.App.AuthRateLimit,
		UploadsDir:     cfg.Storage.BasePath,
	}, JWTService, appHTTP.Handlers{
		Health:     appHTTP.NewHealthHandler(db),
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, reportSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Salary:     appHTTP.NewSalaryHandler(salarySvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
	})

	scheduler := cron.NewScheduler()
	cron.NewSalaryJobs(salarySvc).RegisterJobs(scheduler, cfg.Salary.DraftInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
