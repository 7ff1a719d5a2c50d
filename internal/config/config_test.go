package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("QUIZEZ_SERVER_URL", "https://quiz.example.com")
	t.Setenv("QUIZEZ_CONNECT_TIMEOUT", "3s")
	t.Setenv("QUIZEZ_PORT", "9000")
	t.Setenv("QUIZEZ_SESSION_CODE_LENGTH", "8")
	t.Setenv("QUIZEZ_BANK_PATH", "/tmp/questions.db")

	cfg := FromEnv()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://quiz.example.com", cfg.Client.ServerURL)
	assert.Equal(t, 3*time.Second, cfg.Client.ConnectTimeout)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Server.SessionCodeLength)
	assert.Equal(t, "/tmp/questions.db", cfg.Bank.Path)
}

func TestFromEnvKeepsDefaultsOnBadValues(t *testing.T) {
	t.Setenv("QUIZEZ_PORT", "not-a-port")
	t.Setenv("QUIZEZ_CONNECT_TIMEOUT", "soon")

	cfg := FromEnv()
	assert.Equal(t, Default().Server.Port, cfg.Server.Port)
	assert.Equal(t, Default().Client.ConnectTimeout, cfg.Client.ConnectTimeout)
}

func TestValidateRejectsBadSettings(t *testing.T) {
	cases := map[string]func(*Config){
		"empty server url":  func(c *Config) { c.Client.ServerURL = "" },
		"zero timeout":      func(c *Config) { c.Client.ConnectTimeout = 0 },
		"empty host":        func(c *Config) { c.Server.Host = "" },
		"port too large":    func(c *Config) { c.Server.Port = 70000 },
		"zero code length":  func(c *Config) { c.Server.SessionCodeLength = 0 },
		"empty bank path":   func(c *Config) { c.Bank.Path = "" },
		"zero bank timeout": func(c *Config) { c.Bank.Timeout = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestAddr(t *testing.T) {
	assert.Equal(t, "0.0.0.0:8077", Default().Server.Addr())
}
