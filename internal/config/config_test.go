package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestValidateFillsDefaults checks that empty fields are populated from defaults.
func TestValidateFillsDefaults(t *testing.T) {
	t.Parallel()

	cfg := new(Config)

	require.NoError(t, Validate(cfg))
	require.NotEmpty(t, cfg.ElfPath)
	require.NotEmpty(t, cfg.RSFTemplate)
	require.NotEmpty(t, cfg.RTPDir)
	require.NotEmpty(t, cfg.OutputDir)
	require.NotEmpty(t, cfg.TempDir)
}

// TestValidateRejectsCollidingDirs rejects temp and output pointing at the same place.
func TestValidateRejectsCollidingDirs(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		OutputDir: "build/stuff",
		TempDir:   "build/stuff",
	}

	require.Error(t, Validate(cfg))
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	cfg := &Config{
		ElfPath:   filepath.Join(dir, "player.elf"),
		OutputDir: filepath.Join(dir, "out"),
		TempDir:   filepath.Join(dir, "tmp"),
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.ElfPath, loaded.ElfPath)
	require.Equal(t, cfg.OutputDir, loaded.OutputDir)
	require.Equal(t, cfg.TempDir, loaded.TempDir)
}

// TestLoadMissingDefaultFile falls back to defaults instead of failing.
func TestLoadMissingDefaultFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	require.NoError(t, err)
	require.NotEmpty(t, cfg.TempDir)
}
