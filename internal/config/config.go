package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Mail providers accepted by MAIL_PROVIDER.
const (
	MailProviderSMTP     = "smtp"
	MailProviderSendGrid = "sendgrid"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort        string
	AppEnv         string
	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	MailProvider   string
	MailFrom       string
	MailFromName   string
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SendGridAPIKey string

	SNSRegion  string
	OwnerPhone string // empty disables new-message SMS alerts

	VerificationTTL           time.Duration
	VerificationSweepInterval time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Messages string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:        getEnv("APP_PORT", "3000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Messages: getEnv("DYNAMO_TABLE_MESSAGES", "messages"),
		},
		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         getEnvDuration("JWT_EXPIRY", 7*24*time.Hour),

		MailProvider:   strings.ToLower(getEnv("MAIL_PROVIDER", MailProviderSMTP)),
		MailFrom:       getEnv("MAIL_FROM", "noreply@example.com"),
		MailFromName:   getEnv("MAIL_FROM_NAME", "Portfolio Contact"),
		SMTPHost:       getEnv("SMTP_HOST", "localhost"),
		SMTPPort:       getEnv("SMTP_PORT", "1025"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		SNSRegion:  getEnv("SNS_REGION", "us-east-1"),
		OwnerPhone: getEnv("OWNER_PHONE", ""),

		VerificationTTL:           getEnvDuration("VERIFICATION_TTL", 10*time.Minute),
		VerificationSweepInterval: getEnvDuration("VERIFICATION_SWEEP_INTERVAL", 5*time.Minute),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 5),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("10m", "168h").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
