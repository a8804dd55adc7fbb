package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	pkgerrors "github.com/srcstash/srcstash/pkg/errors"
)

// Client bundles the higher-level git operations above a Runner.
type Client struct {
	runner Runner
}

// NewClient creates a git client using the given runner.
func NewClient(runner Runner) *Client {
	return &Client{runner: runner}
}

// ListRemoteTags asks the remote for its tag refs and returns bare tag names.
// Peeled refs ("<tag>^{}") collapse onto their tag; duplicates are dropped.
// The order of first appearance is preserved.
func (c *Client) ListRemoteTags(ctx context.Context, repoURL string) ([]string, error) {
	stdout, _, err := c.runner.Run(ctx, "ls-remote", "--tags", repoURL)
	if err != nil {
		return nil, err
	}
	return parseTagRefs(stdout), nil
}

// parseTagRefs extracts tag names from "ls-remote --tags" output. Each line is
// "<oid>\t<ref>"; refs outside refs/tags/ are ignored.
func parseTagRefs(out string) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		name := strings.TrimPrefix(fields[1], "refs/tags/")
		if name == fields[1] {
			continue
		}
		name = strings.TrimSuffix(name, "^{}")
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		tags = append(tags, name)
	}
	return tags
}

// SparseCloneOptions describe one shallow sparse checkout.
type SparseCloneOptions struct {
	URL          string // clone URL
	Ref          string // tag or branch to pin; empty clones the default branch
	Subdirectory string // cone to materialize, relative to the repo root
	Dir          string // destination working tree
}

// SparseClone materializes Subdirectory's content under Dir without the rest
// of the repository: a depth-1 blob-filtered clone, cone-mode sparse-checkout
// scoped to the subdirectory, a checkout, a non-empty verification, and
// finally stripping the .git directory. Each failing step aborts with that
// step's diagnostic.
func (c *Client) SparseClone(ctx context.Context, opts SparseCloneOptions) error {
	args := []string{"clone", "--depth=1", "--filter=blob:none", "--sparse"}
	if opts.Ref != "" {
		args = append(args, "--branch", opts.Ref)
	}
	args = append(args, opts.URL, opts.Dir)
	if _, _, err := c.runner.Run(ctx, args...); err != nil {
		return pkgerrors.Wrapf(err, "sparse clone of %s failed", opts.URL)
	}

	if _, _, err := c.runner.Run(ctx, "-C", opts.Dir, "sparse-checkout", "init", "--cone"); err != nil {
		return pkgerrors.Wrap(err, "sparse-checkout init failed")
	}
	if _, _, err := c.runner.Run(ctx, "-C", opts.Dir, "sparse-checkout", "set", opts.Subdirectory); err != nil {
		return pkgerrors.Wrapf(err, "sparse-checkout set %s failed", opts.Subdirectory)
	}
	if _, _, err := c.runner.Run(ctx, "-C", opts.Dir, "checkout"); err != nil {
		return pkgerrors.Wrap(err, "checkout failed")
	}

	subdir := filepath.Join(opts.Dir, filepath.FromSlash(opts.Subdirectory))
	entries, err := os.ReadDir(subdir)
	if err != nil || len(entries) == 0 {
		return pkgerrors.Wrapf(pkgerrors.ErrSparseCheckoutEmpty, "subdirectory %q of %s", opts.Subdirectory, opts.URL)
	}

	if err := os.RemoveAll(filepath.Join(opts.Dir, ".git")); err != nil {
		return pkgerrors.Wrap(err, "failed to strip git metadata")
	}
	return nil
}
