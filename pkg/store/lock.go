package store

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	pkgerrors "github.com/srcstash/srcstash/pkg/errors"
	"github.com/srcstash/srcstash/pkg/fsutil"
	"github.com/srcstash/srcstash/pkg/model"
)

// Lock takes the advisory lock for one key and returns its release function.
// Acquisitions hold it across the whole check-download-install sequence so
// two processes racing on the same key serialize instead of clobbering each
// other; distinct keys never contend. The lock file persists after release,
// which is harmless and keeps release free of unlink races.
func (m *Manager) Lock(ref model.Ref) (func(), error) {
	locksDir := filepath.Join(m.root, locksDirName)
	if err := os.MkdirAll(locksDir, fsutil.DirModeDefault); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create locks directory")
	}

	fl := flock.New(filepath.Join(locksDir, sanitizeKey(ref.String())+".lock"))
	if err := fl.Lock(); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to lock %s", ref)
	}
	return func() { _ = fl.Unlock() }, nil
}
