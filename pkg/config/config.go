// Package config loads client configuration from the config file, .env and
// environment, in that order of increasing precedence.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/skiffworks/skiffctl/pkg/models"
)

// Config holds everything skiffctl needs to talk to a Skiff instance
type Config struct {
	ServerURL   string `yaml:"server_url"`
	APIToken    string `yaml:"api_token"`
	SearchLimit int    `yaml:"search_limit"`
	ServerID    string `yaml:"artifactory_server_id"`
	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`

	// Defaults merged into fetched settings when the server has no value
	DefaultArtifactoryHost string `yaml:"default_artifactory_host"`
	DefaultCLIInstallURL   string `yaml:"default_cli_install_url"`

	// Env-only override (SKIFFCTL_REQUEST_TIMEOUT)
	RequestTimeout time.Duration `yaml:"-"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		SearchLimit:    20,
		ServerID:       models.DefaultServerID,
		LogLevel:       "info",
		RequestTimeout: 10 * time.Second,
	}
}

// DefaultPath returns the standard config file location
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(configDir, "skiffctl", "config.yaml"), nil
}

// Load reads configuration from path (the default location when empty),
// then applies .env and environment overrides. A missing config file is
// not an error; a malformed one is.
func Load(path string) (*Config, error) {
	// .env is best-effort
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("SKIFFCTL_CONFIG")
	}
	if path == "" {
		if defaultPath, err := DefaultPath(); err == nil {
			path = defaultPath
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = Default().SearchLimit
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = Default().RequestTimeout
	}
	if cfg.ServerID == "" {
		cfg.ServerID = models.DefaultServerID
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.ServerURL = getEnv("SKIFFCTL_SERVER_URL", c.ServerURL)
	c.APIToken = getEnv("SKIFFCTL_API_TOKEN", c.APIToken)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("SKIFFCTL_LOG_FILE", c.LogFile)
	c.SearchLimit = getEnvInt("SKIFFCTL_SEARCH_LIMIT", c.SearchLimit)
	c.RequestTimeout = getEnvDuration("SKIFFCTL_REQUEST_TIMEOUT", c.RequestTimeout)
}

// Validate checks the fields every API-touching command needs
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ServerURL) == "" {
		return fmt.Errorf("server URL is not configured (set server_url in the config file or SKIFFCTL_SERVER_URL)")
	}
	parsed, err := url.Parse(c.ServerURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("server URL %q is not a valid URL", c.ServerURL)
	}
	return nil
}

// MergeIntoSettings fills integration fields the server left empty with
// locally configured defaults. Config never overrides a server value.
func (c *Config) MergeIntoSettings(doc *models.Settings) {
	if doc == nil {
		return
	}
	if strings.TrimSpace(doc.ArtifactoryHost) == "" && c.DefaultArtifactoryHost != "" {
		doc.ArtifactoryHost = strings.TrimSpace(c.DefaultArtifactoryHost)
	}
	if strings.TrimSpace(doc.CLIInstallURL) == "" && c.DefaultCLIInstallURL != "" {
		doc.CLIInstallURL = strings.TrimSpace(c.DefaultCLIInstallURL)
	}
}

// Write saves the configuration to path, creating parent directories.
// The file may hold an API token, hence the tight mode.
func (c *Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
