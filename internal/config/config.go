package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all configuration for our application
type Config struct {
	Port            string   `validate:"required,numeric"`
	Origin          string   `validate:"required"`
	TrustedProxies  []string `validate:"omitempty,dive,ip|cidr"`
	Environment     string   `validate:"required"`
	JWTSecret       string
	DefaultLanguage string `validate:"required,len=2"`
	LocalesDir      string
	SeedDir         string
	Database        DatabaseConfig
	Log             LogConfig
	Tracing         TracingConfig
	RateLimit       RateLimitConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Type     string `validate:"oneof=memory mysql postgres"`
	Host     string `validate:"required_unless=Type memory"`
	Port     string `validate:"omitempty,numeric"`
	Username string `validate:"required_unless=Type memory"`
	Password string
	Name     string `validate:"required_unless=Type memory"`
}

// LogConfig holds zap logger settings
type LogConfig struct {
	Level      string `validate:"oneof=debug info warn error"`
	Format     string `validate:"oneof=json console"`
	OutputPath string `validate:"required"`
}

// TracingConfig holds OpenTelemetry exporter settings
type TracingConfig struct {
	Enabled     bool
	ServiceName string  `validate:"required"`
	Endpoint    string  `validate:"required_if=Enabled true"`
	SampleRate  float64 `validate:"gte=0,lte=1"`
}

// RateLimitConfig holds the per client token bucket. Zero RequestsPerSecond
// disables limiting. Buckets unused for IdleTTL are dropped.
type RateLimitConfig struct {
	RequestsPerSecond float64       `validate:"gte=0"`
	BurstSize         int           `validate:"gte=0"`
	IdleTTL           time.Duration `validate:"gte=0"`
}

// DSN builds the driver specific connection string. Memory storage has none.
func (d DatabaseConfig) DSN() string {
	switch d.Type {
	case "mysql":
		// clientFoundRows makes UPDATE report matched rather than changed rows.
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
			d.Username, d.Password, d.Host, d.Port, d.Name)
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			d.Host, d.Username, d.Password, d.Name, d.Port)
	default:
		return ""
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	dbType := strings.ToLower(getEnv("DB_TYPE", "memory"))

	// Load database configuration
	dbConfig := DatabaseConfig{
		Type:     dbType,
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", defaultDBPort(dbType)),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "panda"),
	}

	tracingEnabled, err := strconv.ParseBool(getEnv("TRACING_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRACING_ENABLED: %w", err)
	}

	sampleRate, err := strconv.ParseFloat(getEnv("TRACING_SAMPLE_RATE", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TRACING_SAMPLE_RATE: %w", err)
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	idleTTL, err := time.ParseDuration(getEnv("RATE_LIMIT_IDLE_TTL", "3m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_IDLE_TTL: %w", err)
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8889"),
		Origin:          getEnv("ORIGIN", "*"),
		TrustedProxies:  splitList(getEnv("TRUSTED_PROXIES", "")),
		Environment:     getEnv("APP_ENV", "development"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		LocalesDir:      getEnv("LOCALES_DIR", ""),
		SeedDir:         getEnv("SEED_DIR", ""),
		Database:        dbConfig,
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
		Tracing: TracingConfig{
			Enabled:     tracingEnabled,
			ServiceName: getEnv("TRACING_SERVICE_NAME", "panda-server"),
			Endpoint:    getEnv("OTLP_ENDPOINT", "localhost:4318"),
			SampleRate:  sampleRate,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: rps,
			BurstSize:         burst,
			IdleTTL:           idleTTL,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values against their struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// AuthEnabled reports whether mutating routes require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func defaultDBPort(dbType string) string {
	if dbType == "postgres" {
		return "5432"
	}
	return "3306"
}

// splitList parses a comma separated value. Blank entries are dropped and an
// empty value yields nil.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
