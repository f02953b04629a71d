package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Upstream   UpstreamConfig
	Storage    StorageConfig
	Redis      RedisConfig
	Attendance AttendanceConfig
	Salary     SalaryConfig
}

type DatabaseConfig struct {
	// URL, when set, takes precedence over the individual fields
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port            int
	Env             string
	LogLevel        string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
	AuthRateLimit   int
}

// UpstreamConfig points at the read service that owns the employee
// directory and monthly attendance. An empty BaseURL selects the local
// database instead.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

type StorageConfig struct {
	BasePath string
	BaseURL  string
}

// RedisConfig enables the monthly record cache when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type AttendanceConfig struct {
	ExpectedDailyHours float64
	PairingMode        string
}

type SalaryConfig struct {
	WorkingDaysPerMonth int
	// DraftInterval schedules draft generation; zero disables the job
	DraftInterval time.Duration
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	config := &Config{}
	var errs []error

	config.Database = DatabaseConfig{
		URL:      getEnv("DATABASE_URL", ""),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432, &errs),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "factory_attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.App = AppConfig{
		Port:            getEnvInt("PORT", 5001, &errs),
		Env:             getEnv("APP_ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		AllowedOrigins:  getEnvSlice("CORS_ALLOWED_ORIGINS"),
		ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second, &errs),
		AuthRateLimit:   getEnvInt("AUTH_RATE_LIMIT", 20, &errs),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET", ""),
		AccessExpiration: getEnvDuration("JWT_ACCESS_EXPIRATION_TIME", time.Hour, &errs),
	}

	config.Upstream = UpstreamConfig{
		BaseURL: strings.TrimRight(getEnv("UPSTREAM_BASE_URL", ""), "/"),
		Timeout: getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second, &errs),
	}

	config.Storage = StorageConfig{
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "/uploads"),
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0, &errs),
		CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute, &errs),
	}

	config.Attendance = AttendanceConfig{
		ExpectedDailyHours: getEnvFloat("EXPECTED_DAILY_HOURS", 8, &errs),
		PairingMode:        getEnv("PAIRING_MODE", "sequential"),
	}

	config.Salary = SalaryConfig{
		WorkingDaysPerMonth: getEnvInt("WORKING_DAYS_PER_MONTH", 26, &errs),
		DraftInterval:       getEnvDuration("SALARY_DRAFT_INTERVAL", 0, &errs),
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.URL == "" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD or DATABASE_URL is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Attendance.ExpectedDailyHours <= 0 || c.Attendance.ExpectedDailyHours > 24 {
		return fmt.Errorf("EXPECTED_DAILY_HOURS must be between 0 and 24")
	}
	if c.Salary.WorkingDaysPerMonth <= 0 || c.Salary.WorkingDaysPerMonth > 31 {
		return fmt.Errorf("WORKING_DAYS_PER_MONTH must be between 1 and 31")
	}
	if c.Attendance.PairingMode != "sequential" && c.Attendance.PairingMode != "sort_then_pair" {
		return fmt.Errorf("PAIRING_MODE must be sequential or sort_then_pair")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL onto slog, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int, errs *[]error) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64, errs *[]error) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return v
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			result = append(result, p)
		}
	}
	return result
}
