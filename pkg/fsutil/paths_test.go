package fsutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCacheDir(t *testing.T) {
	dir, err := GetCacheDir()
	require.NoError(t, err)
	assert.Equal(t, AppName, filepath.Base(dir))
}

func TestGetStoreDir(t *testing.T) {
	dir, err := GetStoreDir()
	require.NoError(t, err)
	assert.Equal(t, "store", filepath.Base(dir))

	cacheDir, err := GetCacheDir()
	require.NoError(t, err)
	assert.Equal(t, cacheDir, filepath.Dir(dir))
}

func TestGetDefaultConfigPath(t *testing.T) {
	path, err := GetDefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", filepath.Base(path))

	configDir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, configDir, filepath.Dir(path))
}
