// Package config handles configuration for the server component:
// defaults, an optional JSON file, GOPHAUTH_* environment variables and
// finally command-line flags, each layer overriding the previous one.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Config holds runtime settings for the gophauth server.
//
// Fields:
//   - EndpointAddrHTTP / EndpointAddrGRPC: bind addresses; an empty value disables that transport.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory account store.
//   - SecretKey: HMAC secret for signing bearer tokens (HS256). Do not use the default in prod.
//   - TokenValidityDuration: lifetime of an issued bearer token.
//   - EmailPattern / PasswordPattern: regular expressions every candidate must match in full.
//   - Argon2*: password hashing cost parameters.
type Config struct {
	EndpointAddrHTTP      string        `env:"GOPHAUTH_HTTP_ADDR"`
	EndpointAddrGRPC      string        `env:"GOPHAUTH_GRPC_ADDR"`
	DatabaseDSN           string        `env:"GOPHAUTH_DATABASE_DSN"`
	SecretKey             string        `env:"GOPHAUTH_SECRET_KEY"`
	TokenValidityDuration time.Duration `env:"GOPHAUTH_TOKEN_TTL"`
	EmailPattern          string        `env:"GOPHAUTH_EMAIL_PATTERN"`
	PasswordPattern       string        `env:"GOPHAUTH_PASSWORD_PATTERN"`
	LogLevel              string        `env:"GOPHAUTH_LOG_LEVEL"`
	Argon2Memory          uint32        `env:"GOPHAUTH_ARGON2_MEMORY"`
	Argon2Iterations      uint32        `env:"GOPHAUTH_ARGON2_ITERATIONS"`
	Argon2Parallelism     uint8         `env:"GOPHAUTH_ARGON2_PARALLELISM"`
}

const (
	DefaultEmailPattern    = `^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`
	DefaultPasswordPattern = `^[A-Za-z0-9!@#$%^&*._-]{8,12}$`
)

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey is insecure for production and must be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 1 * time.Hour
	c.EmailPattern = DefaultEmailPattern
	c.PasswordPattern = DefaultPasswordPattern
	c.LogLevel = "info"
	c.Argon2Memory = 64 * 1024
	c.Argon2Iterations = 3
	c.Argon2Parallelism = 4
}

// Validate reports settings the server cannot start with. Patterns are
// compiled here so a typo fails the process before it accepts traffic.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.SecretKey) == "" {
		errs = append(errs, errors.New("secret key is required"))
	}
	if c.TokenValidityDuration <= 0 {
		errs = append(errs, errors.New("token validity duration must be positive"))
	}
	if c.EndpointAddrHTTP == "" && c.EndpointAddrGRPC == "" {
		errs = append(errs, errors.New("at least one of the http or grpc endpoints must be set"))
	}
	for name, pattern := range map[string]string{"email": c.EmailPattern, "password": c.PasswordPattern} {
		if pattern == "" {
			errs = append(errs, fmt.Errorf("%s pattern is required", name))
			continue
		}
		if _, err := regexp.Compile(pattern); err != nil {
			errs = append(errs, fmt.Errorf("%s pattern: %w", name, err))
		}
	}
	if c.Argon2Memory == 0 || c.Argon2Iterations == 0 || c.Argon2Parallelism == 0 {
		errs = append(errs, errors.New("argon2 parameters must be positive"))
	}

	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally args (usually
// os.Args[1:]). The result is validated.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
