// Package store owns the on-disk layout of acquired package sources. Every
// entry lives at a path derived from its (name, version) key; writes stage
// into a private temporary directory and move into place atomically, so a
// partially written entry is never visible under its final name.
package store

import (
	"os"
	"path/filepath"
	"strings"

	pkgerrors "github.com/srcstash/srcstash/pkg/errors"
	"github.com/srcstash/srcstash/pkg/fsutil"
	"github.com/srcstash/srcstash/pkg/model"
)

const (
	// tmpPrefix marks in-flight staging directories inside the store root.
	tmpPrefix = ".tmp-"
	// locksDirName holds the per-key advisory lock files.
	locksDirName = ".locks"
)

// Entry is one cached source tree: its key and its absolute path. The
// canonical set of entries is exactly the set of valid store children; no
// entry exists only in memory.
type Entry struct {
	Ref  model.Ref
	Path string
}

// Manager provides access to one store root.
type Manager struct {
	root string
}

// NewManager creates a store manager rooted at the given directory. The root
// is created if missing.
func NewManager(root string) (*Manager, error) {
	if root == "" {
		return nil, pkgerrors.ErrStoreDirectory
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "invalid store root %s", root)
	}
	if err := os.MkdirAll(abs, fsutil.DirModeDefault); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create store root")
	}
	return &Manager{root: abs}, nil
}

// Root returns the store root directory.
func (m *Manager) Root() string {
	return m.root
}

// Path returns the canonical directory for one key:
// <root>[/<scope>]/<leaf>@<version>. The mapping is a bijection; List
// reverse-parses it.
func (m *Manager) Path(ref model.Ref) string {
	scope, leaf := ref.Scope()
	if scope != "" {
		return filepath.Join(m.root, scope, leaf+"@"+ref.Version)
	}
	return filepath.Join(m.root, leaf+"@"+ref.Version)
}

// Has reports whether the key is present in the store.
func (m *Manager) Has(ref model.Ref) bool {
	info, err := os.Stat(m.Path(ref))
	return err == nil && info.IsDir()
}

// Get returns the entry for a key, or ErrNotCached.
func (m *Manager) Get(ref model.Ref) (Entry, error) {
	if !m.Has(ref) {
		return Entry{}, pkgerrors.Wrapf(pkgerrors.ErrNotCached, "%s", ref)
	}
	return Entry{Ref: ref, Path: m.Path(ref)}, nil
}

// List enumerates every cached entry by reverse-parsing directory names.
// Children that are not directories, cannot be read, or do not parse as
// "<name>@<version>" are skipped; one bad entry never fails the listing.
func (m *Manager) List() ([]Entry, error) {
	children, err := os.ReadDir(m.root)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to read store root")
	}

	var entries []Entry
	for _, child := range children {
		if !child.IsDir() || strings.HasPrefix(child.Name(), ".") {
			continue
		}
		name := child.Name()
		if strings.HasPrefix(name, "@") && !strings.Contains(name[1:], "@") {
			// Scope directory; the real entries are one level down.
			entries = append(entries, m.listScope(name)...)
			continue
		}
		if entry, ok := m.parseEntry("", name); ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// listScope enumerates the entries inside one "@scope" directory. An
// unreadable scope contributes nothing.
func (m *Manager) listScope(scope string) []Entry {
	children, err := os.ReadDir(filepath.Join(m.root, scope))
	if err != nil {
		return nil
	}
	var entries []Entry
	for _, child := range children {
		if !child.IsDir() {
			continue
		}
		if entry, ok := m.parseEntry(scope, child.Name()); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// parseEntry reverse-parses one leaf directory name. The version separator is
// the last '@' in the segment; scoped names carry their '@' only as the first
// character of the scope, which lives a level up.
func (m *Manager) parseEntry(scope, leaf string) (Entry, bool) {
	idx := strings.LastIndex(leaf, "@")
	if idx <= 0 || idx == len(leaf)-1 {
		return Entry{}, false
	}
	name := leaf[:idx]
	if scope != "" {
		name = scope + "/" + name
	}
	ref := model.Ref{Name: name, Version: leaf[idx+1:]}
	return Entry{Ref: ref, Path: m.Path(ref)}, true
}

// Remove deletes one entry from the store. Removing an absent entry is not an
// error.
func (m *Manager) Remove(ref model.Ref) error {
	if err := os.RemoveAll(m.Path(ref)); err != nil {
		return pkgerrors.Wrapf(err, "failed to remove %s", ref)
	}
	// A scope directory left empty is noise; drop it best-effort.
	if scope, _ := ref.Scope(); scope != "" {
		_ = os.Remove(filepath.Join(m.root, scope))
	}
	return nil
}

// Info summarizes the store contents.
type Info struct {
	Root      string
	Entries   int
	TotalSize int64
}

// GetInfo returns entry count and total size on disk.
func (m *Manager) GetInfo() (*Info, error) {
	entries, err := m.List()
	if err != nil {
		return nil, err
	}
	info := &Info{Root: m.root, Entries: len(entries)}
	for _, entry := range entries {
		size, err := dirSize(entry.Path)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "failed to size %s", entry.Ref)
		}
		info.TotalSize += size
	}
	return info, nil
}

func dirSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		total += fi.Size()
		return nil
	})
	return total, err
}
