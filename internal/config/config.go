package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	envProduction = "production"
)

type Config struct {
	Port            string
	AppEnv          string
	StorageDriver   string
	DatabaseURL     string
	JWTSecret       string
	AdminEmail      string
	GoogleAudience  string
	AllowOrigins    []string
	LogstashTCPAddr string
	SwaggerSpecPath string
	SessionTTL      time.Duration
	FrontendBaseURL string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPUseTLS   bool

	PasswordResetTTL           time.Duration
	PasswordResetVerifiedTTL   time.Duration
	PasswordResetOTPLength     int
	PasswordResetExposeSecrets bool
	NotifyTimeout              time.Duration
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, envProduction)
}

// Load reads the environment (and .env when present). It panics on missing
// required keys and on settings that must never reach production.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	otpLen := 6
	if v, err := strconv.Atoi(getenv("PASSWORD_RESET_OTP_LENGTH", "6")); err == nil && v > 0 {
		otpLen = v
	}

	cfg := Config{
		Port:            getenv("PORT", "8080"),
		AppEnv:          strings.ToLower(getenv("APP_ENV", "development")),
		StorageDriver:   strings.ToLower(getenv("STORAGE_DRIVER", StorageDriverPostgres)),
		JWTSecret:       must("JWT_SECRET"),
		AdminEmail:      strings.ToLower(strings.TrimSpace(getenv("ADMIN_EMAIL", ""))),
		GoogleAudience:  getenv("GOOGLE_AUDIENCE", ""),
		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),
		SwaggerSpecPath: getenv("SWAGGER_SPEC_PATH", "docs/swagger.yaml"),
		SessionTTL:      duration("SESSION_TTL", 7*24*time.Hour),
		FrontendBaseURL: getenv("FRONTEND_BASE_URL", "http://localhost:8080"),
		AllowOrigins:    splitAndTrim(getenv("ALLOW_ORIGINS", "*")),

		SMTPHost:     getenv("SMTP_HOST", ""),
		SMTPPort:     getenv("SMTP_PORT", "587"),
		SMTPUsername: getenv("SMTP_USERNAME", ""),
		SMTPPassword: getenv("SMTP_PASSWORD", ""),
		SMTPFrom:     getenv("SMTP_FROM", ""),
		SMTPUseTLS:   getenv("SMTP_USE_TLS", "false") == "true",

		PasswordResetTTL:           duration("PASSWORD_RESET_TTL", time.Hour),
		PasswordResetVerifiedTTL:   duration("PASSWORD_RESET_VERIFIED_TTL", 15*time.Minute),
		PasswordResetOTPLength:     otpLen,
		PasswordResetExposeSecrets: getenv("PASSWORD_RESET_EXPOSE_SECRETS", "false") == "true",
		NotifyTimeout:              duration("NOTIFY_TIMEOUT", 10*time.Second),
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		cfg.DatabaseURL = must("DATABASE_URL")
	case StorageDriverMemory:
		cfg.DatabaseURL = getenv("DATABASE_URL", "")
	default:
		panic(fmt.Sprintf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver))
	}

	if cfg.PasswordResetExposeSecrets && cfg.IsProduction() {
		panic("PASSWORD_RESET_EXPOSE_SECRETS cannot be enabled when APP_ENV=production")
	}
	return cfg
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func duration(k string, d time.Duration) time.Duration {
	raw := getenv(k, "")
	if raw == "" {
		return d
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		log.Printf("Warning: invalid %s=%q, using %s", k, raw, d)
		return d
	}
	return v
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
