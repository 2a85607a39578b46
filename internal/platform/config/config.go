package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Proof storage drivers.
const (
	ProofStorageLocal = "local"
	ProofStorageS3    = "s3"
)

// SMTPConfig holds notice e-mail delivery settings.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	NoticeTo []string
}

// Enabled reports whether e-mail delivery is configured.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && len(s.NoticeTo) > 0
}

// S3Config holds proof-photo object storage settings.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	StorageDriver      string
	JWTSecret          string
	JWTIssuer          string
	RequestTimeout     time.Duration
	RateLimit          string // ulule/limiter formatted rate, e.g. "100-M"
	CORSAllowedOrigins []string

	Tariff               domain.Tariff
	OverdueSweepSchedule string // cron expression; empty disables the sweep

	PosthogAPIKey   string
	PosthogEndpoint string
	SMTP            SMTPConfig

	ProofStorageDriver string
	UploadDir          string
	PublicBaseURL      string
	MaxProofSize       int64
	S3                 S3Config
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "municipal-identity")
	v.SetDefault("REQUEST_TIMEOUT", "15s")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("PENALTY_RATE_PERCENT_PER_MONTH", "2")
	v.SetDefault("INTEREST_RATE_PERCENT_PER_ANNUM", "12")
	v.SetDefault("D2DC_MONTHLY_FEE", "60")
	v.SetDefault("NOTICE_GRACE_PERIOD", "360h")
	v.SetDefault("OVERDUE_SWEEP_SCHEDULE", "15 1 * * *")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "noreply@municipality.local")
	v.SetDefault("NOTICE_EMAIL_TO", "")
	v.SetDefault("PROOF_STORAGE_DRIVER", ProofStorageLocal)
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	v.SetDefault("MAX_PROOF_SIZE_BYTES", 5<<20)
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_ACCESS_KEY", "")
	v.SetDefault("S3_SECRET_KEY", "")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	cfg.Port = v.GetString("PORT")
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")

	cfg.StorageDriver = strings.ToLower(v.GetString("STORAGE_DRIVER"))
	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageMemory:
		log.Println("Warning: STORAGE_DRIVER=memory, data will not survive a restart.")
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")

	timeout, err := time.ParseDuration(v.GetString("REQUEST_TIMEOUT"))
	if err != nil {
		timeout = 15 * time.Second
		log.Printf("Warning: Invalid value for REQUEST_TIMEOUT ('%s'). Defaulting to %s.\n", v.GetString("REQUEST_TIMEOUT"), timeout)
	}
	cfg.RequestTimeout = timeout
	cfg.RateLimit = v.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	tariff, err := loadTariff(v)
	if err != nil {
		return nil, err
	}
	cfg.Tariff = tariff
	cfg.OverdueSweepSchedule = v.GetString("OVERDUE_SWEEP_SCHEDULE")

	cfg.PosthogAPIKey = v.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = v.GetString("POSTHOG_ENDPOINT")
	cfg.SMTP = SMTPConfig{
		Host:     v.GetString("SMTP_HOST"),
		Port:     v.GetInt("SMTP_PORT"),
		User:     v.GetString("SMTP_USER"),
		Password: v.GetString("SMTP_PASSWORD"),
		From:     v.GetString("SMTP_FROM"),
		NoticeTo: splitList(v.GetString("NOTICE_EMAIL_TO")),
	}
	if !cfg.SMTP.Enabled() {
		log.Println("Warning: SMTP_HOST or NOTICE_EMAIL_TO not set. Notice e-mails are disabled.")
	}

	cfg.ProofStorageDriver = strings.ToLower(v.GetString("PROOF_STORAGE_DRIVER"))
	cfg.UploadDir = v.GetString("UPLOAD_DIR")
	cfg.PublicBaseURL = strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/")
	cfg.MaxProofSize = v.GetInt64("MAX_PROOF_SIZE_BYTES")
	cfg.S3 = S3Config{
		Bucket:    v.GetString("S3_BUCKET"),
		Region:    v.GetString("S3_REGION"),
		Endpoint:  v.GetString("S3_ENDPOINT"),
		AccessKey: v.GetString("S3_ACCESS_KEY"),
		SecretKey: v.GetString("S3_SECRET_KEY"),
	}
	switch cfg.ProofStorageDriver {
	case ProofStorageLocal:
	case ProofStorageS3:
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required when PROOF_STORAGE_DRIVER=s3")
		}
	default:
		return nil, fmt.Errorf("unknown PROOF_STORAGE_DRIVER %q", cfg.ProofStorageDriver)
	}

	return cfg, nil
}

func loadTariff(v *viper.Viper) (domain.Tariff, error) {
	var t domain.Tariff
	var err error
	if t.PenaltyRatePerMonth, err = nonNegativeDecimal(v, "PENALTY_RATE_PERCENT_PER_MONTH"); err != nil {
		return t, err
	}
	if t.InterestRatePerAnnum, err = nonNegativeDecimal(v, "INTEREST_RATE_PERCENT_PER_ANNUM"); err != nil {
		return t, err
	}
	if t.D2DCMonthlyFee, err = nonNegativeDecimal(v, "D2DC_MONTHLY_FEE"); err != nil {
		return t, err
	}
	grace, err := time.ParseDuration(v.GetString("NOTICE_GRACE_PERIOD"))
	if err != nil || grace <= 0 {
		return t, fmt.Errorf("NOTICE_GRACE_PERIOD must be a positive duration, got %q", v.GetString("NOTICE_GRACE_PERIOD"))
	}
	t.NoticeGracePeriod = grace
	return t, nil
}

func nonNegativeDecimal(v *viper.Viper, key string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.GetString(key))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be a decimal: %w", key, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
