package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`

	// JWTSecret signs every auth token. There is deliberately no default:
	// the service refuses to start without one.
	JWTSecret string `env:"JWT_SECRET"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"`

	DatabaseDSN string `env:"DATABASE_DSN"`

	SessionBackend string `env:"SESSION_BACKEND" envDefault:"postgres"`
	RedisAddr      string `env:"REDIS_ADDR"`
	RedisPassword  string `env:"REDIS_PASSWORD"`

	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1h"`

	// Path prefix lists for the request gate. Data, not code: which parts
	// of the site require a session is deployment configuration.
	ProtectedPaths []string `env:"PROTECTED_PATHS" envSeparator:"," envDefault:"/dashboard,/onboarding,/profile,/tasks,/blueprint,/templates,/playbook,/admin"`
	AuthOnlyPaths  []string `env:"AUTH_ONLY_PATHS" envSeparator:"," envDefault:"/login,/register"`
}

// Load reads configuration from the environment and validates the parts
// the service cannot run without.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if cfg.DatabaseDSN == "" {
		return Config{}, errors.New("DATABASE_DSN is required")
	}
	if cfg.SessionBackend != "postgres" && cfg.SessionBackend != "redis" {
		return Config{}, errors.New("SESSION_BACKEND must be postgres or redis")
	}
	if cfg.SessionBackend == "redis" && cfg.RedisAddr == "" {
		return Config{}, errors.New("REDIS_ADDR is required when SESSION_BACKEND=redis")
	}

	return cfg, nil
}

// Production reports whether the service runs with production hardening
// (Secure cookies, etc).
func (c Config) Production() bool {
	return c.AppEnv == "production"
}
