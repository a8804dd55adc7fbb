//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTempConfig writes a minimal config YAML pointing the store at storeDir.
func writeTempConfig(t *testing.T, path, storeDir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	yamlContent := "settings:\n" +
		"  store_dir: " + strings.ReplaceAll(storeDir, "\\", "\\\\") + "\n" +
		"  http_timeout: 5s\n" +
		"  max_concurrent_fetches: 2\n" +
		"  log_level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o600))
}

// seedStoreEntry creates a cached source tree for name@version directly in
// the store layout, with a single file inside so the entry has a size.
func seedStoreEntry(t *testing.T, storeDir, name, version string) string {
	t.Helper()
	entryDir := filepath.Join(storeDir, filepath.FromSlash(name)+"@"+version)
	require.NoError(t, os.MkdirAll(entryDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(entryDir, "index.js"), []byte("module.exports = {}\n"), 0o644))
	return entryDir
}

// writeProjectManifest writes a package.json declaring the given dependencies
// (name -> version range) into dir.
func writeProjectManifest(t *testing.T, dir string, deps map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))

	var sb strings.Builder
	sb.WriteString("{\n  \"name\": \"fixture\",\n  \"dependencies\": {\n")
	first := true
	for name, rng := range deps {
		if !first {
			sb.WriteString(",\n")
		}
		first = false
		sb.WriteString("    \"" + name + "\": \"" + rng + "\"")
	}
	sb.WriteString("\n  }\n}\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(sb.String()), 0o644))
}

// runCLI executes the root command with args and returns captured stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	cmd := newRootCmd()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String(), err
}
