//go:generate mockgen -package mocks -destination=./mocks/git.go . Runner

// Package git shells out to the git binary for the operations source
// acquisition needs: remote tag listing and shallow sparse clones.
package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	pkgerrors "github.com/srcstash/srcstash/pkg/errors"
)

// Runner executes one git invocation and returns its captured output. It is a
// capability interface so tests can substitute a fake for the real binary.
type Runner interface {
	Run(ctx context.Context, args ...string) (stdout, stderr string, err error)
}

// ExecRunner runs the real git binary via os/exec.
type ExecRunner struct {
	binary string
}

// NewExecRunner creates a runner invoking the given git binary. An empty
// binary means "git" from PATH.
func NewExecRunner(binary string) *ExecRunner {
	if binary == "" {
		binary = "git"
	}
	return &ExecRunner{binary: binary}
}

// Run executes git with the given arguments and captures both output streams.
// A non-zero exit reports the trailing stderr in the error.
func (r *ExecRunner) Run(ctx context.Context, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, r.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Credential prompts would hang a headless run; private repos must fail
	// fast instead.
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return stdout.String(), stderr.String(),
			pkgerrors.Wrapf(pkgerrors.ErrGitFailed, "git %s: %s", strings.Join(args, " "), detail)
	}
	return stdout.String(), stderr.String(), nil
}
