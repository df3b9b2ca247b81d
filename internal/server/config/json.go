package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/knowhowcafe/auth/internal/flagx"
	"github.com/knowhowcafe/auth/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for TTL fields, which allows parsing
// both string values such as "10m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr                    string         `json:"endpoint_addr"`
	DatabaseDSN                     string         `json:"database_dsn"`
	SecretKey                       string         `json:"secret_key"`
	SessionValidityDuration         timex.Duration `json:"session_validity_duration"`
	ExtendedSessionValidityDuration timex.Duration `json:"extended_session_validity_duration"`
	OtpValidityDuration             timex.Duration `json:"otp_validity_duration"`
	SMTPHost                        string         `json:"smtp_host"`
	SMTPPort                        int            `json:"smtp_port"`
	SMTPUser                        string         `json:"smtp_user"`
	SMTPPassword                    string         `json:"smtp_password"`
	EmailFrom                       string         `json:"email_from"`
	EmailFromName                   string         `json:"email_from_name"`
	Environment                     string         `json:"environment"`
	CORSOrigin                      string         `json:"cors_origin"`
	CookieSecure                    bool           `json:"cookie_secure"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; when neither is set no JSON file is loaded. An unreadable file or
// invalid JSON panics, since the operator explicitly asked for the file.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.SessionValidityDuration = time.Duration(c.SessionValidityDuration.Duration)
	config.ExtendedSessionValidityDuration = time.Duration(c.ExtendedSessionValidityDuration.Duration)
	config.OtpValidityDuration = time.Duration(c.OtpValidityDuration.Duration)
	config.SMTPHost = c.SMTPHost
	config.SMTPPort = c.SMTPPort
	config.SMTPUser = c.SMTPUser
	config.SMTPPassword = c.SMTPPassword
	config.EmailFrom = c.EmailFrom
	config.EmailFromName = c.EmailFromName
	config.Environment = c.Environment
	config.CORSOrigin = c.CORSOrigin
	config.CookieSecure = c.CookieSecure
}
