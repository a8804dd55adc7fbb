package store

import (
	"os"
	"path/filepath"
	"strings"

	pkgerrors "github.com/srcstash/srcstash/pkg/errors"
	"github.com/srcstash/srcstash/pkg/fsutil"
	"github.com/srcstash/srcstash/pkg/model"
)

// Install materializes one entry. The stage callback fills a private ".tmp-"
// directory inside the store root; only after it succeeds is the directory
// moved to the entry's final path in one rename. Any failure removes the
// staging directory and leaves the store untouched, so a crash or error mid
// write never produces a partial entry under the final name.
//
// An already-present entry is replaced atomically: the old tree is renamed
// aside first and deleted after the new one is in place.
func (m *Manager) Install(ref model.Ref, stage func(dir string) error) (string, error) {
	stageDir, err := os.MkdirTemp(m.root, tmpPrefix+sanitizeKey(ref.String())+"-")
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to create staging directory")
	}
	defer func() { _ = os.RemoveAll(stageDir) }()

	if err := stage(stageDir); err != nil {
		return "", err
	}

	finalPath := m.Path(ref)
	if err := fsutil.EnsureFileDir(finalPath); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to create parent for %s", ref)
	}

	var aside string
	if _, err := os.Stat(finalPath); err == nil {
		// The displaced tree parks under a dot-prefixed name so a crash
		// between the two renames never leaves a parseable stale entry.
		aside = filepath.Join(m.root, tmpPrefix+"replaced-"+sanitizeKey(ref.String()))
		if err := os.Rename(finalPath, aside); err != nil {
			return "", pkgerrors.Wrapf(err, "failed to displace existing entry for %s", ref)
		}
	}

	if err := os.Rename(stageDir, finalPath); err != nil {
		if aside != "" {
			_ = os.Rename(aside, finalPath)
		}
		return "", pkgerrors.Wrapf(err, "failed to install %s", ref)
	}
	if aside != "" {
		_ = os.RemoveAll(aside)
	}
	return finalPath, nil
}

// sanitizeKey flattens a ref into a single path-safe segment for staging and
// lock file names.
func sanitizeKey(key string) string {
	return strings.NewReplacer("/", "_", "@", "_").Replace(key)
}

// StageDir creates a ".tmp-" scratch directory inside the store root for
// callers that need working space on the same filesystem as the store (sparse
// clones stage here before Install). The caller removes it.
func (m *Manager) StageDir(hint string) (string, error) {
	dir, err := os.MkdirTemp(m.root, tmpPrefix+sanitizeKey(hint)+"-")
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to create scratch directory")
	}
	return dir, nil
}
