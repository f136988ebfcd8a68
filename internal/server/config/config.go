// Package config handles configuration for the server: defaults, an
// optional JSON or YAML file overlay, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Storage drivers accepted by StorageDriver.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config holds runtime settings for the spellcheckd server.
//
// Fields:
//   - EndpointAddrHTTP / EndpointAddrGRPC: bind addresses for the two shells.
//   - StorageDriver / DatabaseDSN: "memory" keeps everything in process; "sqlite"
//     and "postgres" persist users, logins and queries. Sessions are never persisted.
//   - SecretKey: HMAC secret for signing session tokens (HS256).
//   - SessionValidityDuration: fixed session lifetime measured from login.
//   - AdminPassword / AdminSecondFactor: credentials of the seeded "admin" account.
//   - CheckerPath / WordlistPath / CheckTimeout: external spell-check engine.
type Config struct {
	EndpointAddrHTTP        string
	EndpointAddrGRPC        string
	StorageDriver           string
	DatabaseDSN             string
	SecretKey               string
	SessionValidityDuration time.Duration
	BcryptCost              int
	AdminPassword           string
	AdminSecondFactor       string
	CheckerPath             string
	WordlistPath            string
	CheckTimeout            time.Duration
	CSRFEnabled             bool
	LoginRatePerMinute      int
	LogLevel                string
	LogFormat               string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey and the admin credentials must be overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.StorageDriver = StorageMemory
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.SessionValidityDuration = 10 * time.Minute
	c.BcryptCost = bcrypt.DefaultCost
	c.AdminPassword = "Administrator@1"
	c.AdminSecondFactor = "12345678901"
	c.CheckerPath = "./a.out"
	c.WordlistPath = "wordlist.txt"
	c.CheckTimeout = 5 * time.Second
	c.CSRFEnabled = true
	c.LoginRatePerMinute = 30
	c.LogLevel = "info"
	c.LogFormat = "json"
}

var errInvalidConfig = errors.New("invalid config")

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory:
	case StorageSQLite, StoragePostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("%w: storage driver %q needs a database DSN", errInvalidConfig, c.StorageDriver)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", errInvalidConfig, c.StorageDriver)
	}
	if c.SessionValidityDuration <= 0 {
		return fmt.Errorf("%w: session validity must be positive", errInvalidConfig)
	}
	if c.CheckTimeout <= 0 {
		return fmt.Errorf("%w: check timeout must be positive", errInvalidConfig)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost %d out of range", errInvalidConfig, c.BcryptCost)
	}
	if c.SecretKey == "" {
		return fmt.Errorf("%w: empty secret key", errInvalidConfig)
	}
	if c.AdminPassword == "" || c.AdminSecondFactor == "" {
		return fmt.Errorf("%w: admin credentials must be set", errInvalidConfig)
	}
	if c.LoginRatePerMinute < 0 {
		return fmt.Errorf("%w: login rate must not be negative", errInvalidConfig)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file and finally from command-line flags.
// It panics when the file or flags cannot be parsed, or the result is invalid.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}
