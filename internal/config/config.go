package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultTimezone       = "Asia/Ho_Chi_Minh"
	defaultCheckInStep    = 30
	defaultUploadMaxBytes = 5 * 1024 * 1024
)

type Config struct {
	Env      string         `yaml:"env"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Redis    RedisConfig    `yaml:"redis"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Upload   UploadConfig   `yaml:"upload"`
	Booking  BookingConfig  `yaml:"booking"`
	Payment  PaymentConfig  `yaml:"payment"`
	CORS     CORSConfig     `yaml:"cors"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	LogLevel        string        `yaml:"log_level"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

// RedisConfig is optional; an empty URL selects in-process rate limiting.
type RedisConfig struct {
	URL string `yaml:"url"`
}

// SMTPConfig is optional; an empty Host disables email notifications.
type SMTPConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	From       string `yaml:"from"`
	AdminEmail string `yaml:"admin_email"`
}

// UploadConfig.StaticBase is the URL prefix written into upload records. It
// must resolve to the admin-only /api/v1/admin/uploads route.
type UploadConfig struct {
	Dir        string        `yaml:"dir"`
	StaticBase string        `yaml:"static_base"`
	MaxBytes   int64         `yaml:"max_bytes"`
	RateLimit  int           `yaml:"rate_limit"`
	RateWindow time.Duration `yaml:"rate_window"`
}

type BookingConfig struct {
	Timezone           string         `yaml:"timezone"`
	CheckInStepMinutes int            `yaml:"checkin_step_minutes"`
	Location           *time.Location `yaml:"-"`
}

type PaymentConfig struct {
	WebhookAPIKey string `yaml:"webhook_api_key"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Load reads .env (if present), then the YAML file named by CONFIG_FILE (if
// set), then environment variables. Later sources override earlier ones.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_TIMEZONE %q: %w", cfg.Booking.Timezone, err)
	}
	cfg.Booking.Location = loc

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Env: "dev",
		Server: ServerConfig{
			Port:            "8080",
			LogLevel:        "info",
			ShutdownTimeout: 10 * time.Second,
		},
		JWT: JWTConfig{Secret: defaultJWTSecret, TTL: 24 * time.Hour},
		SMTP: SMTPConfig{Port: 587},
		Upload: UploadConfig{
			Dir:        "./uploads",
			StaticBase: "/api/v1/admin/uploads",
			MaxBytes:   defaultUploadMaxBytes,
			RateLimit:  10,
			RateWindow: time.Minute,
		},
		Booking: BookingConfig{
			Timezone:           defaultTimezone,
			CheckInStepMinutes: defaultCheckInStep,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
	}
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Env = strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", getEnv("ENV", cfg.Env))))

	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", cfg.Server.LogLevel)
	cfg.Database.URL = strings.TrimSpace(getEnv("DATABASE_URL", cfg.Database.URL))
	cfg.JWT.Secret = strings.TrimSpace(getEnv("JWT_SECRET", cfg.JWT.Secret))
	cfg.Redis.URL = strings.TrimSpace(getEnv("REDIS_URL", cfg.Redis.URL))

	cfg.SMTP.Host = getEnv("SMTP_HOST", cfg.SMTP.Host)
	cfg.SMTP.Username = getEnv("SMTP_USERNAME", cfg.SMTP.Username)
	cfg.SMTP.Password = getEnv("SMTP_PASSWORD", cfg.SMTP.Password)
	cfg.SMTP.From = getEnv("SMTP_FROM", cfg.SMTP.From)
	cfg.SMTP.AdminEmail = getEnv("ADMIN_EMAIL", cfg.SMTP.AdminEmail)

	cfg.Upload.Dir = getEnv("UPLOAD_DIR", cfg.Upload.Dir)
	cfg.Upload.StaticBase = getEnv("UPLOAD_STATIC_BASE", cfg.Upload.StaticBase)

	cfg.Booking.Timezone = getEnv("BOOKING_TIMEZONE", cfg.Booking.Timezone)
	cfg.Payment.WebhookAPIKey = strings.TrimSpace(getEnv("PAYMENT_WEBHOOK_API_KEY", cfg.Payment.WebhookAPIKey))

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORS.AllowedOrigins = splitList(v)
	}

	var err error
	if cfg.SMTP.Port, err = parseIntEnv("SMTP_PORT", cfg.SMTP.Port); err != nil {
		return err
	}
	if cfg.Booking.CheckInStepMinutes, err = parseIntEnv("BOOKING_CHECKIN_STEP_MINUTES", cfg.Booking.CheckInStepMinutes); err != nil {
		return err
	}
	if cfg.Upload.RateLimit, err = parseIntEnv("UPLOAD_RATE_LIMIT", cfg.Upload.RateLimit); err != nil {
		return err
	}
	maxBytes, err := parseIntEnv("UPLOAD_MAX_BYTES", int(cfg.Upload.MaxBytes))
	if err != nil {
		return err
	}
	cfg.Upload.MaxBytes = int64(maxBytes)

	if cfg.JWT.TTL, err = parseDurationEnv("JWT_TTL", cfg.JWT.TTL); err != nil {
		return err
	}
	if cfg.Upload.RateWindow, err = parseDurationEnv("UPLOAD_RATE_WINDOW", cfg.Upload.RateWindow); err != nil {
		return err
	}
	if cfg.Server.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout); err != nil {
		return err
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Booking.CheckInStepMinutes <= 0 {
		return fmt.Errorf("BOOKING_CHECKIN_STEP_MINUTES must be > 0")
	}
	if cfg.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.Upload.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be > 0")
	}
	if isProdLike(cfg.Env) && isEmptyOrDefault(cfg.JWT.Secret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	if isProdLike(cfg.Env) && cfg.Payment.WebhookAPIKey == "" {
		return fmt.Errorf("in prod/release PAYMENT_WEBHOOK_API_KEY must be set")
	}
	return nil
}

// IsProduction reports whether the app runs in a prod-like environment.
func (c *Config) IsProduction() bool {
	return isProdLike(c.Env)
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
