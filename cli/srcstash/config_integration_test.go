//go:build integration

package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInitAndShow(t *testing.T) {
	tempDir := t.TempDir()
	cfgPath := filepath.Join(tempDir, "config.yaml")

	_, err := runCLI(t, "--config", cfgPath, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, cfgPath)

	// init refuses to clobber without --force
	_, err = runCLI(t, "--config", cfgPath, "config", "init")
	require.Error(t, err)

	_, err = runCLI(t, "--config", cfgPath, "config", "init", "--force")
	require.NoError(t, err)

	out, err := runCLI(t, "--config", cfgPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "store_dir")
	assert.Contains(t, out, "http_timeout")
	assert.Contains(t, out, "output_format")
}

func TestConfigSetAndGet(t *testing.T) {
	tempDir := t.TempDir()
	cfgPath := filepath.Join(tempDir, "config.yaml")
	storeDir := filepath.Join(tempDir, "elsewhere")

	_, err := runCLI(t, "--config", cfgPath, "config", "set", "store_dir", storeDir)
	require.NoError(t, err)

	out, err := runCLI(t, "--config", cfgPath, "config", "get", "store_dir")
	require.NoError(t, err)
	assert.Contains(t, out, storeDir)
}

func TestConfigSetRejectsUnknownKey(t *testing.T) {
	tempDir := t.TempDir()
	cfgPath := filepath.Join(tempDir, "config.yaml")

	_, err := runCLI(t, "--config", cfgPath, "config", "set", "no_such_key", "value")
	require.Error(t, err)
}
