package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Storage    StorageConfig    `toml:"storage"`
	Summarizer SummarizerConfig `toml:"summarizer"`
	Timeouts   TimeoutConfig    `toml:"timeouts"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host      string  `toml:"host"`
	Port      int     `toml:"port"`
	RateLimit float64 `toml:"rate_limit"` // requests per second per endpoint
	RateBurst int     `toml:"rate_burst"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// StorageConfig contains blob storage account settings.
//
// All three fields are required before a conversion can upload anything.
type StorageConfig struct {
	Account   string `toml:"account"`
	AccessKey string `toml:"access_key"`
	Container string `toml:"container"`
}

// SummarizerConfig contains AI summarization settings.
//
// BaseURL is empty in production; tests point it at a local server.
type SummarizerConfig struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
}

// TimeoutConfig bounds every external call, in seconds.
type TimeoutConfig struct {
	Search    int `toml:"search"`
	Fetch     int `toml:"fetch"`
	Summarize int `toml:"summarize"`
	Upload    int `toml:"upload"`
}

// Validate reports whether the storage account credentials are usable.
func (s StorageConfig) Validate() error {
	if s.Account == "" || s.AccessKey == "" || s.Container == "" {
		return fmt.Errorf("%w: storage account, access key, and container are all required", ErrMissingCredentials)
	}
	return nil
}

// SearchTimeout returns the bounded duration for search calls.
func (t TimeoutConfig) SearchTimeout() time.Duration { return secondsOr(t.Search, 30) }

// FetchTimeout returns the bounded duration for retrieval/transcoding.
func (t TimeoutConfig) FetchTimeout() time.Duration { return secondsOr(t.Fetch, 600) }

// SummarizeTimeout returns the bounded duration for summarization calls.
func (t TimeoutConfig) SummarizeTimeout() time.Duration { return secondsOr(t.Summarize, 120) }

// UploadTimeout returns the bounded duration for a single blob upload.
func (t TimeoutConfig) UploadTimeout() time.Duration { return secondsOr(t.Upload, 300) }

func secondsOr(n, fallback int) time.Duration {
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Second
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Environment variables override file values for credentials, so containerized
// deployments never need secrets on disk.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyEnv()
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyEnv()
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnv overlays environment-provided credentials onto the config.
func (c *Config) applyEnv() {
	if v := os.Getenv("AZURE_STORAGE_ACCOUNT"); v != "" {
		c.Storage.Account = v
	}
	if v := os.Getenv("AZURE_STORAGE_KEY"); v != "" {
		c.Storage.AccessKey = v
	}
	if v := os.Getenv("AZURE_CONTAINER_NAME"); v != "" {
		c.Storage.Container = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Summarizer.APIKey = v
	}
}
