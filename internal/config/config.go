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
	S3BucketName   string

	// Per-purpose token secrets. Each trust domain is keyed independently:
	// an activation ticket must never verify under the access secret.
	ActivationSecret string
	AccessSecret     string
	RefreshSecret    string
	ActivationTTL    time.Duration
	AccessTTL        time.Duration
	RefreshTTL       time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users      string
	UserEmails string
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
			Users:      getEnv("DYNAMO_TABLE_USERS", "users"),
			UserEmails: getEnv("DYNAMO_TABLE_USER_EMAILS", "user_emails"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "accounts-avatars"),

		ActivationSecret: getEnv("ACTIVATION_SECRET", ""),
		AccessSecret:     getEnv("ACCESS_TOKEN_SECRET", ""),
		RefreshSecret:    getEnv("REFRESH_TOKEN_SECRET", ""),
		ActivationTTL:    getEnvDuration("ACTIVATION_TOKEN_TTL", 10*time.Minute),
		AccessTTL:        getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTTL:       getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion: getEnv("SNS_REGION", "us-east-1"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}
