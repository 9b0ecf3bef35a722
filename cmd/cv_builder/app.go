package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/db"
	"github.com/jonathan/cv-builder/internal/generation"
	"github.com/jonathan/cv-builder/internal/llm"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/versions"
)

// newLLMClient is swapped out by tests.
var newLLMClient = llm.NewClient

// app is what a command works with: resolved configuration and the opened version store.
type app struct {
	cfg     config.Config
	store   *versions.Store
	printer *observability.Printer
	closers []func()
}

// loadConfig resolves configuration with precedence flags > config file > environment.
func loadConfig() (config.Config, error) {
	cfg := config.Config{}
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *fileCfg
	}
	cfg = cfg.MergeWithDefaults(config.FromEnv())

	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if storageName != "" {
		cfg.Storage = storageName
	}
	if verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openApp loads configuration and opens the configured storage backend.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openAppWith(cmd, cfg)
}

func openAppWith(cmd *cobra.Command, cfg config.Config) (*app, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a := &app{cfg: cfg, printer: observability.NewPrinter(cmd.OutOrStdout())}

	var storage versions.Storage
	switch cfg.StorageBackend() {
	case config.StorageMemory:
		storage = versions.NewMemoryStorage()
	case config.StoragePostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, database.Close)
		if err := database.Migrate(ctx); err != nil {
			a.close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		storage = db.NewKVStore(database)
	default:
		fs, err := versions.NewFileStorage(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		storage = fs
	}

	if cfg.Verbose {
		log.Printf("[VERBOSE] Using %s storage", cfg.StorageBackend())
	}
	a.store = versions.NewStore(ctx, storage)
	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// generator builds the model-backed generator. The vertex provider authenticates with
// application default credentials; the others need GEMINI_API_KEY.
func (a *app) generator(ctx context.Context) (*generation.Generator, error) {
	llmCfg, err := a.cfg.LLMConfig()
	if err != nil {
		return nil, err
	}
	if llmCfg.Provider != llm.ProviderVertex && a.cfg.APIKey == "" {
		return nil, fmt.Errorf("%s environment variable is required", config.EnvAPIKey)
	}

	client, err := newLLMClient(ctx, llmCfg, a.cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	a.closers = append(a.closers, func() {
		if err := client.Close(); err != nil {
			log.Printf("Error closing LLM client: %v", err)
		}
	})
	if a.cfg.Verbose {
		log.Printf("[VERBOSE] Using %s provider (%s)", llmCfg.Provider, client.GetModel(llm.TierStandard))
	}
	return generation.New(client), nil
}

// withApp opens the app for the duration of fn.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}
