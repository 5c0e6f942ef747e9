package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	OtpTTL           time.Duration
	OtpRateWindow    time.Duration
	OtpRateMax       int
	OtpBlockDuration time.Duration

	EmailProvider string // "ses" | "smtp"
	EmailFrom     string
	SESRegion     string
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string

	GoogleClientID string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users string
	Otps  string
	Notes string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users: getEnv("DYNAMO_TABLE_USERS", "users"),
			Otps:  getEnv("DYNAMO_TABLE_OTPS", "otps"),
			Notes: getEnv("DYNAMO_TABLE_NOTES", "notes"),
		},
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET", ""),
		RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET", ""),
		AccessTokenTTL:     getEnvDur("ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL:    getEnvDur("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		OtpTTL:           getEnvDur("OTP_TTL", 10*time.Minute),
		OtpRateWindow:    getEnvDur("OTP_RATE_WINDOW", time.Minute),
		OtpRateMax:       getEnvInt("OTP_RATE_MAX", 3),
		OtpBlockDuration: getEnvDur("OTP_BLOCK_DURATION", time.Hour),
		EmailProvider: getEnv("EMAIL_PROVIDER", "smtp"),
		EmailFrom:     getEnv("EMAIL_FROM", "noreply@example.com"),
		SESRegion:     getEnv("SES_REGION", "us-east-1"),
		SMTPHost:      getEnv("SMTP_HOST", "localhost"),
		SMTPPort:      getEnv("SMTP_PORT", "1025"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
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

func getEnvDur(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
