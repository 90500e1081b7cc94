package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Port:               "8283",
		JWTSecret:          "a-perfectly-reasonable-development-secret",
		SessionIdleTimeout: 1440,
		Env:                "development",
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateMissingPort(t *testing.T) {
	cfg := validConfig()
	cfg.Port = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateMissingJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateSessionTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.SessionIdleTimeout = 0
	assert.Error(t, cfg.Validate())

	cfg.SessionIdleTimeout = -5
	assert.Error(t, cfg.Validate())
}

func TestValidateProductionRejectsDefaultSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	cfg.JWTSecret = "your-secret-key-change-in-production"
	assert.Error(t, cfg.Validate())
}

func TestValidateProductionRequiresLongSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	cfg.DBPassword = "e6f2b7c9d4a1"
	cfg.JWTSecret = "short-secret"
	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = strings.Repeat("s", 32)
	assert.NoError(t, cfg.Validate())
}

func TestValidateProductionRequiresStrongDBPassword(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	cfg.JWTSecret = strings.Repeat("s", 32)
	cfg.DBPassword = "password"
	assert.Error(t, cfg.Validate())
}
