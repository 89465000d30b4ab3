package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aussiebroadwan/casdoor-go/pkg/casdoorsdk"
)

// Config is the CLI configuration: the SDK connection settings plus
// logging. Values come from an optional YAML file, then the environment.
type Config struct {
	Casdoor casdoorsdk.Config `yaml:"casdoor"`

	// CertificateFile is read into Casdoor.Certificate when set.
	CertificateFile string `yaml:"certificate_file"`

	Env       string `yaml:"env"`        // dev, staging, prod (default: prod)
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error (default: warn)
	LogFormat string `yaml:"log_format"` // json, text (default: text)
}

// LoadConfig reads path (if non-empty) and overlays the CASDOOR_* and
// logging environment variables. Environment values win over the file.
func LoadConfig(path string) (Config, error) {
	var file Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	cfg := Config{
		Casdoor: casdoorsdk.Config{
			Endpoint:         getEnvOrDefault("CASDOOR_ENDPOINT", file.Casdoor.Endpoint),
			ClientID:         getEnvOrDefault("CASDOOR_CLIENT_ID", file.Casdoor.ClientID),
			ClientSecret:     getEnvOrDefault("CASDOOR_CLIENT_SECRET", file.Casdoor.ClientSecret),
			Certificate:      file.Casdoor.Certificate,
			OrganizationName: getEnvOrDefault("CASDOOR_ORGANIZATION", file.Casdoor.OrganizationName),
			ApplicationName:  getEnvOrDefault("CASDOOR_APPLICATION", file.Casdoor.ApplicationName),
			Timeout:          getEnvDurationOrDefault("CASDOOR_TIMEOUT", file.Casdoor.Timeout),
		},
		CertificateFile: getEnvOrDefault("CASDOOR_CERTIFICATE_FILE", file.CertificateFile),
		Env:             getEnvOrDefault("ENV", orDefault(file.Env, "prod")),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", orDefault(file.LogLevel, "warn")),
		LogFormat:       getEnvOrDefault("LOG_FORMAT", orDefault(file.LogFormat, "text")),
	}

	if cfg.CertificateFile != "" {
		pem, err := os.ReadFile(cfg.CertificateFile)
		if err != nil {
			return Config{}, fmt.Errorf("reading certificate: %w", err)
		}
		cfg.Casdoor.Certificate = string(pem)
	}

	return cfg, nil
}

func orDefault(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "30s", "2m")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
