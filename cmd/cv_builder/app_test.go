package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/config"
)

// withGlobals sets the persistent flag variables for one test.
func withGlobals(t *testing.T, cfgPath, dir, storage string) {
	t.Helper()
	configPath, dataDir, storageName = cfgPath, dir, storage
	t.Cleanup(func() { configPath, dataDir, storageName = "", "", "" })
}

func TestLoadConfig_Precedence(t *testing.T) {
	setupEnv(t)
	t.Setenv(config.EnvDataDir, "/from/env")
	t.Setenv(config.EnvProvider, "genai")

	cfgFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`{"data_dir":"/from/file","storage":"memory"}`), 0o644))

	withGlobals(t, cfgFile, "", "")
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/from/file", cfg.DataDir, "file beats environment")
	assert.Equal(t, config.StorageMemory, cfg.Storage)
	assert.Equal(t, "genai", cfg.Provider, "environment fills what the file leaves empty")

	withGlobals(t, cfgFile, "/from/flag", "file")
	cfg, err = loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", cfg.DataDir, "flags beat the file")
	assert.Equal(t, config.StorageFile, cfg.Storage)
}

func TestLoadConfig_Invalid(t *testing.T) {
	setupEnv(t)

	withGlobals(t, "", "", "postgres")
	_, err := loadConfig()
	assert.ErrorContains(t, err, "database_url")

	withGlobals(t, filepath.Join(t.TempDir(), "missing.json"), "", "")
	_, err = loadConfig()
	assert.Error(t, err)
}

func TestMemoryStorageDoesNotPersist(t *testing.T) {
	dir := setupEnv(t)

	mustRun(t, "--storage", "memory", "versions", "create", "Scratch")
	mustRun(t, "--storage", "memory", "versions", "create", "Scratch 2")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	out := mustRun(t, "--storage", "memory", "versions", "list")
	assert.Contains(t, out, "VERSIONS (1)")
}

func TestDataDirFlag(t *testing.T) {
	setupEnv(t)
	other := t.TempDir()

	mustRun(t, "--data-dir", other, "versions", "create", "Elsewhere")
	st := loadState(t, other)
	require.Len(t, st.Versions, 2)
	assert.Equal(t, "Elsewhere", st.Versions[1].Name)
}
