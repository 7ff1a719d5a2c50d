package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries the settings for both halves of the tool: the client
// commands that talk to a quiz server and the dev server that hosts sessions
// locally.
type Config struct {
	Client *ClientConfig `json:"client"`
	Server *ServerConfig `json:"server"`
	Bank   *BankConfig   `json:"bank"`
}

type ClientConfig struct {
	ServerURL      string        `json:"server_url"`
	ConnectTimeout time.Duration `json:"connect_timeout"`
}

type ServerConfig struct {
	Host              string        `json:"host"`
	Port              int           `json:"port"`
	ReadTimeout       time.Duration `json:"read_timeout"`
	WriteTimeout      time.Duration `json:"write_timeout"`
	SessionCodeLength int           `json:"session_code_length"`
}

type BankConfig struct {
	Path    string        `json:"path"`
	Timeout time.Duration `json:"timeout"`
}

// Default returns settings suitable for running everything on one machine:
// server on localhost:8077, client pointed at it, question bank next to the
// binary.
func Default() *Config {
	return &Config{
		Client: &ClientConfig{
			ServerURL:      "http://localhost:8077",
			ConnectTimeout: 10 * time.Second,
		},
		Server: &ServerConfig{
			Host:              "0.0.0.0",
			Port:              8077,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			SessionCodeLength: 6,
		},
		Bank: &BankConfig{
			Path:    "./quizez.db",
			Timeout: 30 * time.Second,
		},
	}
}

// FromEnv builds a Config from defaults with QUIZEZ_* environment overrides.
// Unparseable values keep the default rather than failing startup.
func FromEnv() *Config {
	cfg := Default()

	if url := os.Getenv("QUIZEZ_SERVER_URL"); url != "" {
		cfg.Client.ServerURL = url
	}
	if timeout := os.Getenv("QUIZEZ_CONNECT_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			cfg.Client.ConnectTimeout = d
		}
	}

	if host := os.Getenv("QUIZEZ_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("QUIZEZ_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if timeout := os.Getenv("QUIZEZ_READ_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if timeout := os.Getenv("QUIZEZ_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if length := os.Getenv("QUIZEZ_SESSION_CODE_LENGTH"); length != "" {
		if n, err := strconv.Atoi(length); err == nil {
			cfg.Server.SessionCodeLength = n
		}
	}

	if path := os.Getenv("QUIZEZ_BANK_PATH"); path != "" {
		cfg.Bank.Path = path
	}
	if timeout := os.Getenv("QUIZEZ_BANK_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			cfg.Bank.Timeout = d
		}
	}

	return cfg
}

func (c *Config) Validate() error {
	if c.Client == nil {
		return fmt.Errorf("client configuration is required")
	}
	if c.Client.ServerURL == "" {
		return fmt.Errorf("server URL cannot be empty")
	}
	if c.Client.ConnectTimeout <= 0 {
		return fmt.Errorf("connect timeout must be positive")
	}

	if c.Server == nil {
		return fmt.Errorf("server configuration is required")
	}
	if c.Server.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}
	if c.Server.SessionCodeLength <= 0 {
		return fmt.Errorf("session code length must be positive")
	}

	if c.Bank == nil {
		return fmt.Errorf("bank configuration is required")
	}
	if c.Bank.Path == "" {
		return fmt.Errorf("bank path cannot be empty")
	}
	if c.Bank.Timeout <= 0 {
		return fmt.Errorf("bank timeout must be positive")
	}

	return nil
}

// Addr returns the host:port the dev server listens on.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
