package config

import (
	"os"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	PublicBaseURL string

	// Outbound call budget for both providers.
	ProviderTimeout time.Duration

	// Email provider selection: "sendgrid", "ses" or "stub".
	EmailProvider string

	// SendGrid Email Configuration
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	// AWS / SES Configuration
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// Addresses used by the form relay.
	NotifyToEmail    string
	NotifyFromEmail  string
	CourtesyFromName string

	// Mailchimp Configuration
	MailchimpAPIKey     string
	MailchimpAudienceID string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "https://hlcc.africa"),

		ProviderTimeout: getEnvAsDuration("PROVIDER_TIMEOUT", 15*time.Second),

		EmailProvider: strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "sendgrid"))),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", "notifications@hlcc.africa"),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "HLCC Website"),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		NotifyToEmail:    getEnv("NOTIFY_TO_EMAIL", "info@hlcc.africa"),
		NotifyFromEmail:  getEnv("NOTIFY_FROM_EMAIL", "notifications@hlcc.africa"),
		CourtesyFromName: getEnv("COURTESY_FROM_NAME", "HLCC"),

		MailchimpAPIKey:     getEnv("MAILCHIMP_API_KEY", ""),
		MailchimpAudienceID: getEnv("MAILCHIMP_AUDIENCE_ID", ""),
	}
}

// MailchimpConfigured reports whether both Mailchimp credentials are present.
func (c *Config) MailchimpConfigured() bool {
	return c.MailchimpAPIKey != "" && c.MailchimpAudienceID != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
