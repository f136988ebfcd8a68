package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/spellcheckd/internal/flagx"
	"github.com/dmitrijs2005/spellcheckd/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the config. Absent keys leave the
// current value alone, so a file only needs the settings it changes.
type FileConfig struct {
	EndpointAddrHTTP        string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	EndpointAddrGRPC        string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	StorageDriver           string         `json:"storage_driver" yaml:"storage_driver"`
	DatabaseDSN             string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey               string         `json:"secret_key" yaml:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration" yaml:"session_validity_duration"`
	BcryptCost              int            `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	AdminPassword           string         `json:"admin_password" yaml:"admin_password"`
	AdminSecondFactor       string         `json:"admin_second_factor" yaml:"admin_second_factor"`
	CheckerPath             string         `json:"checker_path" yaml:"checker_path"`
	WordlistPath            string         `json:"wordlist_path" yaml:"wordlist_path"`
	CheckTimeout            timex.Duration `json:"check_timeout" yaml:"check_timeout"`
	CSRFEnabled             *bool          `json:"csrf_enabled" yaml:"csrf_enabled"`
	LoginRatePerMinute      *int           `json:"login_rate_per_minute" yaml:"login_rate_per_minute"`
	LogLevel                string         `json:"log_level" yaml:"log_level"`
	LogFormat               string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays the file named by -c/-config onto config. The format
// is picked by extension: .yaml and .yml are YAML, anything else JSON.
// Unreadable or malformed files panic.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(config)
}

func (fc *FileConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, fc.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, fc.EndpointAddrGRPC)
	setString(&config.StorageDriver, fc.StorageDriver)
	setString(&config.DatabaseDSN, fc.DatabaseDSN)
	setString(&config.SecretKey, fc.SecretKey)
	setString(&config.AdminPassword, fc.AdminPassword)
	setString(&config.AdminSecondFactor, fc.AdminSecondFactor)
	setString(&config.CheckerPath, fc.CheckerPath)
	setString(&config.WordlistPath, fc.WordlistPath)
	setString(&config.LogLevel, fc.LogLevel)
	setString(&config.LogFormat, fc.LogFormat)

	if fc.SessionValidityDuration.Duration != 0 {
		config.SessionValidityDuration = fc.SessionValidityDuration.Duration
	}
	if fc.CheckTimeout.Duration != 0 {
		config.CheckTimeout = fc.CheckTimeout.Duration
	}
	if fc.BcryptCost != 0 {
		config.BcryptCost = fc.BcryptCost
	}
	if fc.CSRFEnabled != nil {
		config.CSRFEnabled = *fc.CSRFEnabled
	}
	if fc.LoginRatePerMinute != nil {
		config.LoginRatePerMinute = *fc.LoginRatePerMinute
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
