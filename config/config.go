package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Store drivers
const (
	DriverMemory   = "memory"
	DriverBadger   = "badger"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMinio    = "minio"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Auth      AuthConfig      `yaml:"auth"`
	Share     ShareConfig     `yaml:"share"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	Users     []User          `yaml:"users"`
}

type ServerConfig struct {
	Port                int    `yaml:"port" env:"LEGACY_SERVER_PORT"`
	BasePath            string `yaml:"base_path" env:"LEGACY_SERVER_BASE_PATH"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds" env:"LEGACY_SERVER_READ_TIMEOUT_SECONDS"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds" env:"LEGACY_SERVER_WRITE_TIMEOUT_SECONDS"`
}

type StoreConfig struct {
	Driver   string      `yaml:"driver" env:"LEGACY_STORE_DRIVER"`
	Path     string      `yaml:"path" env:"LEGACY_STORE_PATH"`
	InMemory bool        `yaml:"in_memory" env:"LEGACY_STORE_IN_MEMORY"`
	DSN      string      `yaml:"dsn" env:"LEGACY_STORE_DSN"`
	Minio    MinioConfig `yaml:"minio"`
}

type MinioConfig struct {
	Endpoint  string `yaml:"endpoint" env:"LEGACY_MINIO_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"LEGACY_MINIO_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"LEGACY_MINIO_SECRET_KEY"`
	Bucket    string `yaml:"bucket" env:"LEGACY_MINIO_BUCKET"`
	UseSSL    bool   `yaml:"use_ssl" env:"LEGACY_MINIO_USE_SSL"`
}

type AuthConfig struct {
	// PublicKey is the application credential embedded in the public site.
	PublicKey        string `yaml:"public_key" env:"LEGACY_AUTH_PUBLIC_KEY"`
	JWTSecret        string `yaml:"jwt_secret" env:"LEGACY_AUTH_JWT_SECRET"`
	TokenExpireHours int    `yaml:"token_expire_hours" env:"LEGACY_AUTH_TOKEN_EXPIRE_HOURS"`
}

type ShareConfig struct {
	FrontendOrigin string `yaml:"frontend_origin" env:"LEGACY_SHARE_FRONTEND_ORIGIN"`
}

type RateLimitConfig struct {
	Requests      int `yaml:"requests" env:"LEGACY_RATE_LIMIT_REQUESTS"`
	WindowSeconds int `yaml:"window_seconds" env:"LEGACY_RATE_LIMIT_WINDOW_SECONDS"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LEGACY_LOG_LEVEL"`
	Format string `yaml:"format" env:"LEGACY_LOG_FORMAT"`
}

// User is an administrator allowed to sign in to the back office.
type User struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

// Load reads the YAML file at path (skipped when path is empty), applies
// defaults and overlays LEGACY_* environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.setDefaults()
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.BasePath == "" {
		c.Server.BasePath = "/api"
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 60
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = 60
	}
	if c.Store.Driver == "" {
		c.Store.Driver = DriverBadger
	}
	if c.Store.Minio.Bucket == "" {
		c.Store.Minio.Bucket = "legacyscript"
	}
	if c.Auth.TokenExpireHours == 0 {
		c.Auth.TokenExpireHours = 24
	}
	if c.Share.FrontendOrigin == "" {
		c.Share.FrontendOrigin = "http://localhost:5173"
	}
	if c.RateLimit.Requests == 0 {
		c.RateLimit.Requests = 100
	}
	if c.RateLimit.WindowSeconds == 0 {
		c.RateLimit.WindowSeconds = 60
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks settings the server cannot start without.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverBadger, DriverSQLite:
	case DriverPostgres:
		if c.Store.DSN == "" {
			return errors.New("store.dsn is required for the postgres driver")
		}
	case DriverMinio:
		if c.Store.Minio.Endpoint == "" {
			return errors.New("store.minio.endpoint is required for the minio driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.Auth.PublicKey == "" {
		return errors.New("auth.public_key is required")
	}
	return nil
}

// FindUser finds a user by username
func (c *Config) FindUser(username string) *User {
	for i := range c.Users {
		if c.Users[i].Username == username {
			return &c.Users[i]
		}
	}
	return nil
}
