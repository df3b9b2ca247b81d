package config

import (
	"os"
	"strconv"
)

// parseEnv overlays Config fields from environment variables. Variable names
// follow the deployment's .env convention; unset variables leave the current
// value untouched.
//
// Recognized variables:
//
//	ENDPOINT_ADDR   HTTP bind address (e.g. ":8080")
//	DATABASE_URL    PostgreSQL DSN
//	JWT_SECRET      session token signing secret
//	SMTP_HOST       mail relay host
//	SMTP_PORT       mail relay port
//	SMTP_USER       mail relay username
//	SMTP_PASS       mail relay password
//	EMAIL_FROM      sender address on OTP emails
//	EMAIL_FROM_NAME sender display name
//	APP_ENV         "development" or "production"
//	CORS_ORIGIN     comma-separated allowed origins
//	COOKIE_SECURE   "true" to set the Secure cookie attribute
func parseEnv(config *Config) {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	setString(&config.EndpointAddr, "ENDPOINT_ADDR")
	setString(&config.DatabaseDSN, "DATABASE_URL")
	setString(&config.SecretKey, "JWT_SECRET")
	setString(&config.SMTPHost, "SMTP_HOST")
	setString(&config.SMTPUser, "SMTP_USER")
	setString(&config.SMTPPassword, "SMTP_PASS")
	setString(&config.EmailFrom, "EMAIL_FROM")
	setString(&config.EmailFromName, "EMAIL_FROM_NAME")
	setString(&config.Environment, "APP_ENV")
	setString(&config.CORSOrigin, "CORS_ORIGIN")

	if v, ok := os.LookupEnv("SMTP_PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			config.SMTPPort = port
		}
	}

	if v, ok := os.LookupEnv("COOKIE_SECURE"); ok {
		config.CookieSecure = v == "true"
	}
}
