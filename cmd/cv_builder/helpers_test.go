package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/llm"
	"github.com/jonathan/cv-builder/internal/llm/llmtest"
	"github.com/jonathan/cv-builder/internal/versions"
)

// setupEnv isolates a test from the developer's .env and home directory and returns the data dir.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvStorage, config.StorageFile)
	t.Setenv(config.EnvDataDir, dir)
	t.Setenv(config.EnvAPIKey, "test-key")
	t.Setenv(config.EnvProvider, "")
	t.Setenv(config.EnvDatabaseURL, "")
	t.Setenv(config.EnvChromePath, "")
	return dir
}

// useFakeLLM routes every model call of the test to fake.
func useFakeLLM(t *testing.T, fake *llmtest.Fake) {
	t.Helper()
	old := newLLMClient
	newLLMClient = func(context.Context, *llm.Config, string) (llm.Client, error) { return fake, nil }
	t.Cleanup(func() { newLLMClient = old })
}

// runCLI executes the root command in-process with fresh flag values.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, "", args...)
	require.NoError(t, err, out)
	return out
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// loadState reads what the CLI persisted to dir.
func loadState(t *testing.T, dir string) versions.State {
	t.Helper()
	fs, err := versions.NewFileStorage(dir)
	require.NoError(t, err)
	return versions.NewStore(context.Background(), fs).State()
}
