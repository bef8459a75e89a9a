package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig holds the connection settings for the batch-job lock.
// An empty Addr disables Redis and falls back to a process-local lock.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Timezone string
}

// PayrollConfig holds the computation constants the payroll and attendance
// engines depend on. Every value has a documented default so the engine
// produces reproducible numbers without a populated settings table.
type PayrollConfig struct {
	// WorkingDaysPerMonth is the divisor used to derive a daily rate from a
	// monthly basic salary.
	WorkingDaysPerMonth int

	// GraceMinutes is the window after scheduled start during which a
	// punch-in still counts as on time.
	GraceMinutes int

	// HoursPerDay converts a daily rate into an hourly rate.
	HoursPerDay int

	// MaxShiftHours triggers a validation warning for overnight schedules
	// longer than this.
	MaxShiftHours int

	OvertimeMultiplier decimal.Decimal
	HolidayMultiplier  decimal.Decimal
	NightDiffRate      decimal.Decimal

	// NightStartHour/NightEndHour bound the night-differential window,
	// e.g. 22 and 6 for 22:00-06:00.
	NightStartHour int
	NightEndHour   int

	// ThirteenthMonthStart/End define the 12-month earnings window as
	// "MM-DD" anchors; the start falls in the year before the target year.
	ThirteenthMonthStart string
	ThirteenthMonthEnd   string
}

func Load() (*Config, error) {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "bayani-payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("APP_TIMEZONE", "Asia/Manila"),
	}

	payroll, err := loadPayrollConfig()
	if err != nil {
		return nil, err
	}
	config.Payroll = payroll

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadPayrollConfig() (PayrollConfig, error) {
	workingDays, err := strconv.Atoi(getEnv("PAYROLL_WORKING_DAYS_PER_MONTH", "26"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid PAYROLL_WORKING_DAYS_PER_MONTH: %w", err)
	}

	graceMinutes, err := strconv.Atoi(getEnv("PAYROLL_GRACE_MINUTES", "30"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid PAYROLL_GRACE_MINUTES: %w", err)
	}

	overtimeMult, err := decimal.NewFromString(getEnv("PAYROLL_OVERTIME_MULTIPLIER", "1.25"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid PAYROLL_OVERTIME_MULTIPLIER: %w", err)
	}

	holidayMult, err := decimal.NewFromString(getEnv("PAYROLL_HOLIDAY_MULTIPLIER", "1.0"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid PAYROLL_HOLIDAY_MULTIPLIER: %w", err)
	}

	nightRate, err := decimal.NewFromString(getEnv("PAYROLL_NIGHT_DIFF_RATE", "0.10"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid PAYROLL_NIGHT_DIFF_RATE: %w", err)
	}

	return PayrollConfig{
		WorkingDaysPerMonth:  workingDays,
		GraceMinutes:         graceMinutes,
		HoursPerDay:          8,
		MaxShiftHours:        16,
		OvertimeMultiplier:   overtimeMult,
		HolidayMultiplier:    holidayMult,
		NightDiffRate:        nightRate,
		NightStartHour:       22,
		NightEndHour:         6,
		ThirteenthMonthStart: getEnv("THIRTEENTH_MONTH_START", "12-01"),
		ThirteenthMonthEnd:   getEnv("THIRTEENTH_MONTH_END", "11-30"),
	}, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Payroll.WorkingDaysPerMonth <= 0 {
		return fmt.Errorf("PAYROLL_WORKING_DAYS_PER_MONTH must be positive")
	}
	if c.Payroll.GraceMinutes < 0 {
		return fmt.Errorf("PAYROLL_GRACE_MINUTES must not be negative")
	}
	if _, err := time.Parse("01-02", c.Payroll.ThirteenthMonthStart); err != nil {
		return fmt.Errorf("invalid THIRTEENTH_MONTH_START: %w", err)
	}
	if _, err := time.Parse("01-02", c.Payroll.ThirteenthMonthEnd); err != nil {
		return fmt.Errorf("invalid THIRTEENTH_MONTH_END: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return nil
}

// Location returns the organizational time zone. All schedule resolution and
// attendance classification happens in this single zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
