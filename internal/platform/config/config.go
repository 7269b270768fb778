package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	// Owner identity
	JWTSecret  string
	JWTIssuer  string
	DemoMode   bool
	DemoUserID string

	CORSAllowedOrigins []string

	// Recipient links
	PublicBaseURL    string
	AccessTokenTTL   time.Duration
	PublicRateLimit  string
	SignatureMaxSize int64

	DefaultTaxRate decimal.Decimal

	// Audit
	AuditPersist bool
	AuditAsync   bool

	// Notifications
	NotifyWebhookURL    string
	NotifyWebhookSecret string
	NotifyTimeout       time.Duration

	ExpirySweepInterval time.Duration

	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "bizdoc-app")
	v.SetDefault("DEMO_MODE", false)
	v.SetDefault("DEMO_USER_ID", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:3000")
	v.SetDefault("ACCESS_TOKEN_TTL", "168h")
	v.SetDefault("PUBLIC_RATE_LIMIT", "60-M")
	v.SetDefault("SIGNATURE_MAX_BYTES", 5*1024*1024)
	v.SetDefault("DEFAULT_TAX_RATE", "0.10")
	v.SetDefault("AUDIT_ASYNC", false)
	v.SetDefault("NOTIFY_WEBHOOK_URL", "")
	v.SetDefault("NOTIFY_WEBHOOK_SECRET", "")
	v.SetDefault("NOTIFY_TIMEOUT", "5s")
	v.SetDefault("EXPIRY_SWEEP_INTERVAL", "5m")
	v.SetDefault("POSTHOG_API_KEY", "")

	// Values from .env are now in the process environment and can be overridden by real variables.
	v.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")

	cfg.DemoMode = v.GetBool("DEMO_MODE")
	cfg.DemoUserID = v.GetString("DEMO_USER_ID")
	if cfg.DemoMode && cfg.DemoUserID == "" {
		log.Println("Warning: DEMO_MODE is enabled but DEMO_USER_ID is empty. Demo identity disabled.")
		cfg.DemoMode = false
	}
	if cfg.DemoMode && cfg.IsProduction {
		log.Println("Warning: DEMO_MODE is enabled in production. Unauthenticated requests will act as the demo user.")
	}

	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.PublicBaseURL = strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/")
	cfg.AccessTokenTTL = parseDuration(v, "ACCESS_TOKEN_TTL", 7*24*time.Hour)
	cfg.PublicRateLimit = v.GetString("PUBLIC_RATE_LIMIT")

	cfg.SignatureMaxSize = v.GetInt64("SIGNATURE_MAX_BYTES")
	if cfg.SignatureMaxSize <= 0 {
		cfg.SignatureMaxSize = 5 * 1024 * 1024
		log.Printf("Warning: Invalid value for SIGNATURE_MAX_BYTES. Defaulting to %d.\n", cfg.SignatureMaxSize)
	}

	taxRateStr := v.GetString("DEFAULT_TAX_RATE")
	taxRate, err := decimal.NewFromString(taxRateStr)
	// tax_rate is stored as NUMERIC(6,4).
	if err != nil || taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(1)) || !taxRate.Equal(taxRate.Round(4)) {
		taxRate = decimal.RequireFromString("0.10")
		log.Printf("Warning: Invalid value for DEFAULT_TAX_RATE ('%s'). Defaulting to %s.\n", taxRateStr, taxRate)
	}
	cfg.DefaultTaxRate = taxRate

	// Audit rows are persisted in production unless explicitly disabled.
	if v.IsSet("AUDIT_PERSIST") {
		cfg.AuditPersist = v.GetBool("AUDIT_PERSIST")
	} else {
		cfg.AuditPersist = cfg.IsProduction
	}
	cfg.AuditAsync = v.GetBool("AUDIT_ASYNC")

	cfg.NotifyWebhookURL = v.GetString("NOTIFY_WEBHOOK_URL")
	cfg.NotifyWebhookSecret = v.GetString("NOTIFY_WEBHOOK_SECRET")
	if cfg.NotifyWebhookURL != "" && cfg.NotifyWebhookSecret == "" {
		log.Println("Warning: NOTIFY_WEBHOOK_SECRET not set. Outbound notifications will be unsigned.")
	}
	cfg.NotifyTimeout = parseDuration(v, "NOTIFY_TIMEOUT", 5*time.Second)

	cfg.ExpirySweepInterval = parseDuration(v, "EXPIRY_SWEEP_INTERVAL", 5*time.Minute)

	cfg.PosthogAPIKey = v.GetString("POSTHOG_API_KEY")

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
