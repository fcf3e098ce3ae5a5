// Package config loads service configuration from an optional YAML file,
// a .env file and the process environment, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Mongo     MongoConfig     `yaml:"mongo"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds the listener and TLS settings.
type ServerConfig struct {
	Port       string `yaml:"port"`
	TLSCert    string `yaml:"tls_cert"`
	TLSKey     string `yaml:"tls_key"`
	RequireTLS bool   `yaml:"require_tls"`
}

// MongoConfig holds the database connection settings.
type MongoConfig struct {
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	ConnectTimeout time.Duration `yaml:"-"`

	ConnectTimeoutRaw string `yaml:"connect_timeout"`
}

// AuthConfig holds JWT signing configuration. Either JWTSecret or Keys must be
// set; Keys maps a key id to its secret and enables rotation.
type AuthConfig struct {
	JWTSecret string            `yaml:"jwt_secret"`
	Keys      map[string]string `yaml:"keys"`
	ActiveKid string            `yaml:"active_kid"`
	TokenTTL  time.Duration     `yaml:"-"`

	TokenTTLRaw string `yaml:"token_ttl"`
}

// RateLimitConfig controls the Register/Login limiter.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	Burst             int `yaml:"burst"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing else is provided.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "50051"},
		Mongo: MongoConfig{
			Database:       "jobboard_chat",
			ConnectTimeout: 10 * time.Second,
		},
		Auth:      AuthConfig{TokenTTL: 24 * time.Hour},
		RateLimit: RateLimitConfig{RequestsPerMinute: 10, Burst: 3},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load builds a Config. A .env file in the working directory is loaded if
// present, then the YAML file at path (skipped when path is empty) is applied
// over the defaults, then environment variables override both.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(expandEnvVars(string(raw))), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// Unset variables expand to an empty string.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}

func parseDurations(cfg *Config) error {
	var err error

	if cfg.Mongo.ConnectTimeoutRaw != "" {
		cfg.Mongo.ConnectTimeout, err = time.ParseDuration(cfg.Mongo.ConnectTimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing connect_timeout %q: %w", cfg.Mongo.ConnectTimeoutRaw, err)
		}
	}

	if cfg.Auth.TokenTTLRaw != "" {
		cfg.Auth.TokenTTL, err = time.ParseDuration(cfg.Auth.TokenTTLRaw)
		if err != nil {
			return fmt.Errorf("parsing token_ttl %q: %w", cfg.Auth.TokenTTLRaw, err)
		}
	}

	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Mongo.URI, "MONGODB_URI")
	setString(&cfg.Mongo.Database, "MONGODB_DATABASE")
	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setString(&cfg.Auth.ActiveKid, "JWT_ACTIVE_KID")
	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Server.TLSCert, "TLS_CERT")
	setString(&cfg.Server.TLSKey, "TLS_KEY")
	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Format, "LOG_FORMAT")

	if v := os.Getenv("REQUIRE_TLS"); v != "" {
		cfg.Server.RequireTLS = v == "true"
	}

	// RATE_LIMIT_RPM is ignored unless it is a positive integer.
	if v := os.Getenv("RATE_LIMIT_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateLimit.RequestsPerMinute = n
		}
	}

	// JWT_KEYS format: kid:secret,kid2:secret2
	if v := os.Getenv("JWT_KEYS"); v != "" {
		keys, err := ParseKeys(v)
		if err != nil {
			return err
		}
		cfg.Auth.Keys = keys
	}

	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// ParseKeys parses a comma-separated list of kid:secret pairs.
func ParseKeys(s string) (map[string]string, error) {
	keys := map[string]string{}
	for _, p := range strings.Split(s, ",") {
		if p == "" {
			continue
		}
		parts := strings.SplitN(p, ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid JWT_KEYS entry: %s", p)
		}
		keys[parts[0]] = parts[1]
	}
	return keys, nil
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri (MONGODB_URI) is required")
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("mongo.database is required")
	}

	if len(c.Auth.Keys) == 0 && c.Auth.JWTSecret == "" {
		return fmt.Errorf("either auth.jwt_secret (JWT_SECRET) or auth.keys (JWT_KEYS) must be set")
	}
	if len(c.Auth.Keys) > 0 {
		if c.Auth.ActiveKid == "" {
			return fmt.Errorf("auth.active_kid (JWT_ACTIVE_KID) is required when keys are configured")
		}
		if _, ok := c.Auth.Keys[c.Auth.ActiveKid]; !ok {
			return fmt.Errorf("auth.active_kid %q is not in the configured keys", c.Auth.ActiveKid)
		}
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be positive")
	}
	if c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit.burst must be positive")
	}

	if c.Server.RequireTLS && (c.Server.TLSCert == "" || c.Server.TLSKey == "") {
		return fmt.Errorf("server.require_tls is set but tls_cert/tls_key are not configured")
	}

	return nil
}
