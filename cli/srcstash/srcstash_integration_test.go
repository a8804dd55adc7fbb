package main

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

func TestVersionCommand(t *testing.T) {
	// Redirect stdout to capture output
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	cmd := newRootCmd()
	cmd.SetArgs([]string{"version"})
	err := cmd.ExecuteContext(context.Background())

	w.Close()
	os.Stdout = oldStdout

	assert.NoError(t, err, "version command should not return an error")

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	assert.Contains(t, output, "srcstash version", "version output should contain 'srcstash version'")
}

func TestHelpCommand(t *testing.T) {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	cmd := newRootCmd()
	cmd.SetArgs([]string{"help"})
	err := cmd.ExecuteContext(context.Background())

	w.Close()
	os.Stdout = oldStdout

	assert.NoError(t, err, "help command should not return an error")

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	assert.Contains(t, output, "srcstash resolves the upstream repository", "help output should contain description")
	assert.Contains(t, output, "Available Commands", "help output should list available commands")
}
