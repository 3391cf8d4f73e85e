package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Seed     SeedConfig     `yaml:"seed"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host        string   `yaml:"host"`
	Mode        string   `yaml:"mode"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Type     string `yaml:"type"`
	DSN      string `yaml:"dsn"`
	LogLevel string `yaml:"log_level"`
}

// AuthConfig contains token signing settings and the credential records
// accepted by POST /auth/token
type AuthConfig struct {
	JWT   JWTConfig          `yaml:"jwt"`
	Users []CredentialConfig `yaml:"users"`
}

// JWTConfig contains bearer token settings
type JWTConfig struct {
	Secret         string `yaml:"secret"`
	ExpiresMinutes int    `yaml:"expires_minutes"`
}

// CredentialConfig is a salted PBKDF2 credential record. Salt and Hash are
// base64 (standard encoding).
type CredentialConfig struct {
	Username   string `yaml:"username"`
	Role       string `yaml:"role,omitempty"`
	Salt       string `yaml:"salt"`
	Hash       string `yaml:"hash"`
	Iterations int    `yaml:"iterations,omitempty"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Environment string `yaml:"environment"`
	ServiceName string `yaml:"service_name"`
}

// MetricsConfig contains Prometheus settings
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// SeedConfig toggles demo data on startup
type SeedConfig struct {
	Enabled bool `yaml:"enabled"`
}

const minSecretLength = 32

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: ":8080",
			Mode: "release",
			CORSOrigins: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
			},
		},
		Database: DatabaseConfig{
			Type:     "postgres",
			LogLevel: "warn",
		},
		Auth: AuthConfig{
			JWT: JWTConfig{ExpiresMinutes: 60},
		},
		Logging: LoggingConfig{
			Level:       "info",
			Environment: "development",
			ServiceName: "realestate-api",
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// LoadConfig loads configuration from a YAML file, then applies environment
// overrides. A missing file is not an error.
func LoadConfig(filepath string) (*Config, error) {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	config := DefaultConfig()

	if _, err := os.Stat(filepath); err == nil {
		data, err := os.ReadFile(filepath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	config.applyEnv()
	return config, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("DB_TYPE"); v != "" {
		c.Database.Type = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWT.Secret = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Logging.Environment = v
	}
}

// Validate reports configuration the service cannot start with. There is no
// fallback signing secret.
func (c *Config) Validate() error {
	var errs []error

	secret := strings.TrimSpace(c.Auth.JWT.Secret)
	switch {
	case secret == "":
		errs = append(errs, errors.New("auth.jwt.secret (JWT_SECRET) is required"))
	case len(secret) < minSecretLength:
		errs = append(errs, fmt.Errorf("auth.jwt.secret must be at least %d characters", minSecretLength))
	}

	switch c.Database.Type {
	case "postgres", "mysql":
	default:
		errs = append(errs, fmt.Errorf("unsupported database.type %q", c.Database.Type))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn (DB_DSN) is required"))
	}

	for i, u := range c.Auth.Users {
		if strings.TrimSpace(u.Username) == "" || u.Salt == "" || u.Hash == "" {
			errs = append(errs, fmt.Errorf("auth.users[%d] needs username, salt and hash", i))
		}
	}

	return errors.Join(errs...)
}

// TokenTTL returns the bearer token lifetime
func (c *JWTConfig) TokenTTL() time.Duration {
	if c.ExpiresMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.ExpiresMinutes) * time.Minute
}
