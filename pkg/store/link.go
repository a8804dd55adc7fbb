package store

import (
	"os"
	"path/filepath"

	pkgerrors "github.com/srcstash/srcstash/pkg/errors"
	"github.com/srcstash/srcstash/pkg/fsutil"
	"github.com/srcstash/srcstash/pkg/model"
)

// LinkDirName is the directory inside a project that holds references into
// the shared store.
const LinkDirName = ".srcstash"

// Link creates <projectDir>/.srcstash/[<scope>/]<leaf>@<version> as a symlink
// to the cached entry, so a project reaches the sources without duplicating
// them. Creation is idempotent: a correct existing link is left alone; a
// stale or conflicting path is replaced. A missing store entry is an error.
func (m *Manager) Link(projectDir string, ref model.Ref) (string, error) {
	entry, err := m.Get(ref)
	if err != nil {
		return "", err
	}

	scope, leaf := ref.Scope()
	linkPath := filepath.Join(projectDir, LinkDirName, scope, leaf+"@"+ref.Version)
	if err := fsutil.EnsureFileDir(linkPath); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to create link directory for %s", ref)
	}

	if existing, err := os.Readlink(linkPath); err == nil && existing == entry.Path {
		return linkPath, nil
	}
	if err := os.RemoveAll(linkPath); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to replace stale link for %s", ref)
	}
	if err := os.Symlink(entry.Path, linkPath); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to link %s", ref)
	}
	return linkPath, nil
}
