package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"server",
		"-a", ":9090",
		"-d", "postgres://flag",
		"-s", "flag-secret",
		"-t", "30",
		"-r", "1440",
		"-o", "5",
		"-e", "production",
		"-x", "https://app.example.com",
	}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, ":9090", c.EndpointAddr)
	assert.Equal(t, "postgres://flag", c.DatabaseDSN)
	assert.Equal(t, "flag-secret", c.SecretKey)
	assert.Equal(t, 30*time.Minute, c.SessionValidityDuration)
	assert.Equal(t, 24*time.Hour, c.ExtendedSessionValidityDuration)
	assert.Equal(t, 5*time.Minute, c.OtpValidityDuration)
	assert.Equal(t, "production", c.Environment)
	assert.Equal(t, "https://app.example.com", c.CORSOrigin)
}

func TestParseFlags_NoFlagsKeepsDefaults(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"server"}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, 2*time.Hour, c.SessionValidityDuration)
	assert.Equal(t, 10*time.Minute, c.OtpValidityDuration)
}
