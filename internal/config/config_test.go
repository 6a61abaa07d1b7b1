// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	solseqerrors "github.com/dotandev/solseq/internal/errors"
)

// isolateConfig points the user config dir at a temp dir and clears the
// SOLSEQ_* environment so tests never see a developer's real settings.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range []string{
		"SOLSEQ_SOLC_PATH", "SOLSEQ_CACHE_PATH", "SOLSEQ_LOG_LEVEL",
		"SOLSEQ_TELEMETRY", "SOLSEQ_TELEMETRY_ENDPOINT",
		"SOLSEQ_LIGHT_COLORS", "SOLSEQ_NO_CACHE",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	isolateConfig(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LightColors)
	assert.NotEmpty(t, cfg.CachePath)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	isolateConfig(t)

	saved := DefaultConfig().WithLogLevel("debug").WithSolcPath("/opt/solc")
	saved.LightColors = true
	require.NoError(t, SaveConfig(saved))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/opt/solc", cfg.SolcPath)
	assert.True(t, cfg.LightColors)

	path, err := GetGeneralConfigPath()
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestEnvOverrides(t *testing.T) {
	isolateConfig(t)

	t.Setenv("SOLSEQ_SOLC_PATH", "/env/solc")
	t.Setenv("SOLSEQ_LOG_LEVEL", "warn")
	t.Setenv("SOLSEQ_LIGHT_COLORS", "true")
	t.Setenv("SOLSEQ_NO_CACHE", "1")
	t.Setenv("SOLSEQ_CACHE_PATH", "/env/cache")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/env/solc", cfg.SolcPath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/env/cache", cfg.CachePath)
	assert.True(t, cfg.LightColors)
	assert.True(t, cfg.NoCache)
}

func TestLoadRejectsBadConfigFile(t *testing.T) {
	dir := isolateConfig(t)

	configDir := filepath.Join(dir, "solseq")
	require.NoError(t, os.MkdirAll(configDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.json"), []byte("{broken"), 0600))

	_, err := Load()
	assert.ErrorIs(t, err, solseqerrors.ErrConfigInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{LogLevel: "info"}, false},
		{"empty log level", Config{}, false},
		{"uppercase level accepted", Config{LogLevel: "DEBUG"}, false},
		{"bad log level", Config{LogLevel: "loud"}, true},
		{"telemetry without endpoint", Config{TelemetryEnabled: true}, true},
		{"telemetry with endpoint", Config{TelemetryEnabled: true, TelemetryEndpoint: "localhost:4318"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, solseqerrors.ErrConfigInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
