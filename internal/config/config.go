// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/cv-builder/internal/llm"
)

// Storage backends.
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Environment variables read by FromEnv.
const (
	EnvAPIKey        = "GEMINI_API_KEY"
	EnvDataDir       = "CV_DATA_DIR"
	EnvStorage       = "CV_STORAGE"
	EnvDatabaseURL   = "DATABASE_URL"
	EnvProvider      = "LLM_PROVIDER"
	EnvCloudProject  = "GOOGLE_CLOUD_PROJECT"
	EnvCloudLocation = "GOOGLE_CLOUD_LOCATION"
	EnvChromePath    = "CHROME_PATH"
)

// Config is the application configuration. It can be loaded from a JSON file;
// every field is optional and missing values come from the environment or flags.
type Config struct {
	// Storage
	Storage     string `json:"storage,omitempty"`      // file, postgres or memory
	DataDir     string `json:"data_dir,omitempty"`     // directory for file storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Generation
	APIKey   string            `json:"api_key,omitempty"`  // Gemini API key
	Provider string            `json:"provider,omitempty"` // gemini, genai or vertex
	Project  string            `json:"project,omitempty"`  // Google Cloud project for vertex
	Location string            `json:"location,omitempty"` // Google Cloud location for vertex
	Models   map[string]string `json:"models,omitempty"`   // tier -> model override

	// Export and JD fetching
	ChromePath string `json:"chrome_path,omitempty"`
	UseBrowser bool   `json:"use_browser,omitempty"` // headless browser fallback for JS-rendered postings

	// Server
	Port int `json:"port,omitempty"`

	Verbose bool `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Storage:     os.Getenv(EnvStorage),
		DataDir:     os.Getenv(EnvDataDir),
		DatabaseURL: os.Getenv(EnvDatabaseURL),
		APIKey:      os.Getenv(EnvAPIKey),
		Provider:    os.Getenv(EnvProvider),
		Project:     os.Getenv(EnvCloudProject),
		Location:    os.Getenv(EnvCloudLocation),
		ChromePath:  os.Getenv(EnvChromePath),
	}
}

// Validate checks that the configuration has valid values.
// Credentials are not required here; commands that call the model check for them.
func (c *Config) Validate() error {
	switch c.StorageBackend() {
	case StorageFile, StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for postgres storage")
		}
	default:
		return fmt.Errorf("config error: unknown storage %q (want file, postgres or memory)", c.Storage)
	}

	if _, err := llm.ParseProvider(c.Provider); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	for tier := range c.Models {
		switch llm.ModelTier(tier) {
		case llm.TierLite, llm.TierStandard, llm.TierAdvanced:
		default:
			return fmt.Errorf("config error: unknown model tier %q", tier)
		}
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}

	return nil
}

// StorageBackend returns the normalized storage name, defaulting to file.
func (c *Config) StorageBackend() string {
	s := strings.ToLower(strings.TrimSpace(c.Storage))
	if s == "" {
		return StorageFile
	}
	return s
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Bools are not merged since unset and false look the same.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Storage == "" {
		result.Storage = defaults.Storage
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Project == "" {
		result.Project = defaults.Project
	}
	if result.Location == "" {
		result.Location = defaults.Location
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if len(defaults.Models) > 0 {
		models := make(map[string]string, len(defaults.Models)+len(result.Models))
		for k, v := range defaults.Models {
			models[k] = v
		}
		for k, v := range result.Models {
			models[k] = v
		}
		result.Models = models
	}

	return result
}

// LLMConfig converts the generation settings into an llm.Config.
func (c *Config) LLMConfig() (*llm.Config, error) {
	provider, err := llm.ParseProvider(c.Provider)
	if err != nil {
		return nil, err
	}

	cfg := llm.DefaultConfig().WithProvider(provider)
	for tier, model := range c.Models {
		if model != "" {
			cfg = cfg.WithModel(llm.ModelTier(tier), model)
		}
	}
	cfg.Project = c.Project
	cfg.Location = c.Location
	return cfg, nil
}
