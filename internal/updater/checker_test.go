// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

package updater

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionComparison(t *testing.T) {
	tests := []struct {
		name        string
		current     string
		latest      string
		needsUpdate bool
		expectError bool
	}{
		{
			name:        "older version needs update",
			current:     "v1.0.0",
			latest:      "v1.1.0",
			needsUpdate: true,
		},
		{
			name:        "same version no update",
			current:     "v1.0.0",
			latest:      "v1.0.0",
			needsUpdate: false,
		},
		{
			name:        "newer local build no update",
			current:     "v1.2.0",
			latest:      "v1.1.0",
			needsUpdate: false,
		},
		{
			name:        "prerelease to stable needs update",
			current:     "v1.0.0-alpha",
			latest:      "v1.0.0",
			needsUpdate: true,
		},
		{
			name:        "dev build skips comparison",
			current:     "dev",
			latest:      "v9.9.9",
			needsUpdate: false,
		},
		{
			name:        "empty version skips comparison",
			current:     "",
			latest:      "v1.0.0",
			needsUpdate: false,
		},
		{
			name:        "garbage latest errors",
			current:     "v1.0.0",
			latest:      "not-a-version",
			expectError: true,
		},
	}

	checker := NewChecker("dev")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			needsUpdate, err := checker.compareVersions(tt.current, tt.latest)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.needsUpdate, needsUpdate)
		})
	}
}

func TestShouldCheckRespectsCache(t *testing.T) {
	dir := t.TempDir()
	checker := &Checker{currentVersion: "v1.0.0", cacheDir: dir}

	// No cache file yet: a check is due.
	should, err := checker.shouldCheck()
	require.NoError(t, err)
	assert.True(t, should)

	// A fresh cache entry suppresses the check.
	writeCheckCache(t, dir, time.Now())
	should, err = checker.shouldCheck()
	require.NoError(t, err)
	assert.False(t, should)

	// A stale entry re-enables it.
	writeCheckCache(t, dir, time.Now().Add(-2*CheckInterval))
	should, err = checker.shouldCheck()
	require.NoError(t, err)
	assert.True(t, should)
}

func writeCheckCache(t *testing.T, dir string, lastCheck time.Time) {
	t.Helper()
	data, err := json.Marshal(CacheData{LastCheck: lastCheck, LatestVersion: "v1.0.0"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "last_update_check"), data, 0644))
}

func TestUpdateCacheWritesFile(t *testing.T) {
	dir := t.TempDir()
	checker := &Checker{currentVersion: "v1.0.0", cacheDir: filepath.Join(dir, "nested")}

	require.NoError(t, checker.updateCache("v1.2.3"))

	data, err := os.ReadFile(filepath.Join(dir, "nested", "last_update_check"))
	require.NoError(t, err)

	var cache CacheData
	require.NoError(t, json.Unmarshal(data, &cache))
	assert.Equal(t, "v1.2.3", cache.LatestVersion)
	assert.WithinDuration(t, time.Now(), cache.LastCheck, time.Minute)
}

func TestCheckForUpdatesOptOut(t *testing.T) {
	t.Setenv("SOLSEQ_NO_UPDATE_CHECK", "1")

	// Must return immediately without touching the network or cache.
	checker := &Checker{currentVersion: "v0.0.1", cacheDir: t.TempDir()}
	checker.CheckForUpdates()

	_, err := os.Stat(filepath.Join(checker.cacheDir, "last_update_check"))
	assert.True(t, os.IsNotExist(err))
}
