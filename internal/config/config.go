// Package config loads the shipdesk configuration from ~/.shipdesk/config.yaml
// and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file inside the shipdesk home directory.
const FileName = "config.yaml"

// Environment variables
const (
	EnvHome    = "SHIPDESK_HOME" // overrides the ~/.shipdesk directory
	EnvAPIURL  = "SHIPDESK_API_URL"
	EnvProfile = "SHIPDESK_PROFILE"
	EnvToken   = "SHIPDESK_TOKEN"
)

// Defaults
const (
	DefaultAPIURL            = "http://localhost:3000/api"
	DefaultProfile           = "default"
	DefaultPageSize          = 10
	DefaultRequestTimeout    = 30 * time.Second
	DefaultDeleteConcurrency = 8
	DefaultLocale            = "en-US"
	DefaultLogLevel          = "info"
)

// Config represents the shipdesk configuration file.
type Config struct {
	APIURL            string        `yaml:"api_url"`
	Profile           string        `yaml:"profile"`
	PageSize          int           `yaml:"page_size"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	DeleteConcurrency int           `yaml:"delete_concurrency"`
	Locale            string        `yaml:"locale"`
	LogLevel          string        `yaml:"log_level"`

	// Token comes from $SHIPDESK_TOKEN only and is never written to disk.
	Token string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIURL:            DefaultAPIURL,
		Profile:           DefaultProfile,
		PageSize:          DefaultPageSize,
		RequestTimeout:    DefaultRequestTimeout,
		DeleteConcurrency: DefaultDeleteConcurrency,
		Locale:            DefaultLocale,
		LogLevel:          DefaultLogLevel,
	}
}

// Dir returns the shipdesk state directory: $SHIPDESK_HOME or ~/.shipdesk.
func Dir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".shipdesk"), nil
}

// Path returns the path of the configuration file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the configuration at path. A missing file yields the defaults.
// Keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// LoadDefault loads the configuration file from Dir, applies the environment
// and validates the result.
func LoadDefault() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ApplyEnv overlays the environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := getenv(EnvProfile); v != "" {
		c.Profile = v
	}
	if v := getenv(EnvToken); v != "" {
		c.Token = v
	}
}

// Validate checks the values that the rest of the program relies on.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url %q must be an absolute URL", c.APIURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url %q must use http or https", c.APIURL)
	}
	if strings.TrimSpace(c.Profile) == "" {
		return errors.New("profile must not be empty")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1, got %d", c.PageSize)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	if c.DeleteConcurrency < 0 {
		return fmt.Errorf("delete_concurrency must not be negative, got %d", c.DeleteConcurrency)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("locale %q: %w", c.Locale, err)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}

// Language returns the parsed collation locale, falling back to American English.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}
