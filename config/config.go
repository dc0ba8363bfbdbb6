package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig describes where the tournament datastore lives.
// URL, when set, takes precedence over the individual connection fields.
type DatabaseConfig struct {
	Driver         string        `env:"DB_DRIVER" envDefault:"postgres"`
	URL            string        `env:"DATABASE_URL"`
	Host           string        `env:"DB_HOST" envDefault:"localhost"`
	Port           int           `env:"DB_PORT" envDefault:"5432"`
	Name           string        `env:"DB_NAME" envDefault:"tournament"`
	User           string        `env:"DB_USER"`
	Password       string        `env:"DB_PASSWORD"`
	SSLMode        string        `env:"DB_SSLMODE" envDefault:"disable"`
	Path           string        `env:"DB_PATH" envDefault:"tournament.db"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"5s"`
	AutoProvision  bool          `env:"DB_AUTO_PROVISION" envDefault:"false"`
}

// R2Config holds the Cloudflare R2 credentials used for standings snapshots.
type R2Config struct {
	AccountID       string `env:"R2_ACCOUNT_ID"`
	AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"R2_SECRET_ACCESS_KEY"`
	BucketName      string `env:"R2_BUCKET_NAME"`
	PublicBaseURL   string `env:"R2_PUBLIC_BASE_URL"`
}

// Enabled reports whether every R2 field is filled in.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" &&
		c.BucketName != "" && c.PublicBaseURL != ""
}

// Config holds the application settings read from the environment.
type Config struct {
	Database           DatabaseConfig
	R2                 R2Config
	JWTSecretKey       string   `env:"JWT_SECRET_KEY"`
	AdminPasswordHash  string   `env:"ADMIN_PASSWORD_HASH"`
	ServerPort         int      `env:"SERVER_PORT" envDefault:"8080"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	LogLevel           string   `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}
	if c.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH environment variable is not set")
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	return c.Database.Validate()
}

func (c DatabaseConfig) Validate() error {
	switch c.Driver {
	case DriverPostgres, DriverPgx:
		if c.URL != "" {
			return nil
		}
		if c.Host == "" {
			return fmt.Errorf("DB_HOST must be set for driver %s", c.Driver)
		}
		if c.Port <= 0 || c.Port > 65535 {
			return fmt.Errorf("DB_PORT must be between 1 and 65535, got %d", c.Port)
		}
		if c.Name == "" {
			return fmt.Errorf("DB_NAME must be set for driver %s", c.Driver)
		}
	case DriverSQLite:
		if strings.TrimSpace(c.Path) == "" {
			return fmt.Errorf("DB_PATH must be set for driver %s", c.Driver)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Driver)
	}
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("DB_CONNECT_TIMEOUT must be positive, got %s", c.ConnectTimeout)
	}
	return nil
}

// DSN builds the driver-specific data source name.
func (c DatabaseConfig) DSN() string {
	switch c.Driver {
	case DriverSQLite:
		return c.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	default:
		if c.URL != "" {
			return c.URL
		}
		u := url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
			Path:   "/" + c.Name,
		}
		if c.User != "" {
			if c.Password != "" {
				u.User = url.UserPassword(c.User, c.Password)
			} else {
				u.User = url.User(c.User)
			}
		}
		q := url.Values{}
		if c.SSLMode != "" {
			q.Set("sslmode", c.SSLMode)
		}
		u.RawQuery = q.Encode()
		return u.String()
	}
}
