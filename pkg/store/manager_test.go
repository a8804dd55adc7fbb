package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/srcstash/srcstash/pkg/errors"
	"github.com/srcstash/srcstash/pkg/model"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)
	return m
}

// install writes a minimal entry via the real staging path.
func install(t *testing.T, m *Manager, ref model.Ref) string {
	t.Helper()
	path, err := m.Install(ref, func(dir string) error {
		return os.WriteFile(filepath.Join(dir, "index.js"), []byte("// "+ref.String()), 0o644)
	})
	require.NoError(t, err)
	return path
}

func TestNewManager_EmptyRoot(t *testing.T) {
	_, err := NewManager("")
	require.ErrorIs(t, err, pkgerrors.ErrStoreDirectory)
}

func TestPath_Bijection(t *testing.T) {
	m := newTestManager(t)

	refs := []model.Ref{
		{Name: "lodash", Version: "4.17.21"},
		{Name: "lodash", Version: "4.17.20"},
		{Name: "@babel/core", Version: "7.23.0"},
		{Name: "@babel/cli", Version: "7.23.0"},
	}
	seen := map[string]model.Ref{}
	for _, ref := range refs {
		path := m.Path(ref)
		prev, dup := seen[path]
		require.False(t, dup, "%s and %s collide on %s", prev, ref, path)
		seen[path] = ref
	}

	assert.Equal(t, filepath.Join(m.Root(), "lodash@4.17.21"), m.Path(refs[0]))
	assert.Equal(t, filepath.Join(m.Root(), "@babel", "core@7.23.0"), m.Path(refs[2]))
}

func TestList_RoundTrip(t *testing.T) {
	m := newTestManager(t)

	want := []model.Ref{
		{Name: "lodash", Version: "4.17.21"},
		{Name: "express", Version: "4.18.2"},
		{Name: "@babel/core", Version: "7.23.0"},
		{Name: "@types/node", Version: "20.8.0"},
	}
	for _, ref := range want {
		install(t, m, ref)
	}

	entries, err := m.List()
	require.NoError(t, err)

	var got []string
	for _, entry := range entries {
		got = append(got, entry.Ref.String())
	}
	sort.Strings(got)
	assert.Equal(t, []string{
		"@babel/core@7.23.0",
		"@types/node@20.8.0",
		"express@4.18.2",
		"lodash@4.17.21",
	}, got)
}

func TestList_SkipsNoise(t *testing.T) {
	m := newTestManager(t)
	install(t, m, model.Ref{Name: "lodash", Version: "4.17.21"})

	// Staging leftovers, lock dirs, stray files and unparseable directories
	// must not break or pollute the listing.
	require.NoError(t, os.MkdirAll(filepath.Join(m.Root(), ".tmp-abandoned"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(m.Root(), ".locks"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(m.Root(), "no-version-here"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(m.Root(), "stray@1.0.0"), []byte("file, not dir"), 0o644))

	entries, err := m.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "lodash@4.17.21", entries[0].Ref.String())
}

func TestHasAndGet(t *testing.T) {
	m := newTestManager(t)
	ref := model.Ref{Name: "@babel/core", Version: "7.23.0"}

	assert.False(t, m.Has(ref))
	_, err := m.Get(ref)
	require.ErrorIs(t, err, pkgerrors.ErrNotCached)

	path := install(t, m, ref)
	assert.True(t, m.Has(ref))

	entry, err := m.Get(ref)
	require.NoError(t, err)
	assert.Equal(t, path, entry.Path)
}

func TestInstall_StageFailureLeavesNothing(t *testing.T) {
	m := newTestManager(t)
	ref := model.Ref{Name: "lodash", Version: "4.17.21"}

	_, err := m.Install(ref, func(dir string) error {
		// Partial output before the failure must be cleaned up too.
		if err := os.WriteFile(filepath.Join(dir, "partial.js"), []byte("x"), 0o644); err != nil {
			return err
		}
		return fmt.Errorf("extraction blew up")
	})
	require.ErrorContains(t, err, "extraction blew up")

	assert.False(t, m.Has(ref))
	children, err := os.ReadDir(m.Root())
	require.NoError(t, err)
	assert.Empty(t, children, "no staging directory may be left behind")
}

func TestInstall_ReplacesExistingEntry(t *testing.T) {
	m := newTestManager(t)
	ref := model.Ref{Name: "lodash", Version: "4.17.21"}
	install(t, m, ref)

	_, err := m.Install(ref, func(dir string) error {
		return os.WriteFile(filepath.Join(dir, "new.js"), []byte("v2"), 0o644)
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(m.Path(ref), "new.js"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(m.Path(ref), "index.js"))
	assert.True(t, os.IsNotExist(err), "old content must be gone")
}

func TestRemove(t *testing.T) {
	m := newTestManager(t)
	ref := model.Ref{Name: "@babel/core", Version: "7.23.0"}
	install(t, m, ref)

	require.NoError(t, m.Remove(ref))
	assert.False(t, m.Has(ref))

	// A second removal is a no-op, and the emptied scope directory is gone.
	require.NoError(t, m.Remove(ref))
	_, err := os.Stat(filepath.Join(m.Root(), "@babel"))
	assert.True(t, os.IsNotExist(err))
}

func TestGetInfo(t *testing.T) {
	m := newTestManager(t)
	install(t, m, model.Ref{Name: "lodash", Version: "4.17.21"})
	install(t, m, model.Ref{Name: "@babel/core", Version: "7.23.0"})

	info, err := m.GetInfo()
	require.NoError(t, err)
	assert.Equal(t, 2, info.Entries)
	assert.Equal(t, m.Root(), info.Root)
	assert.Positive(t, info.TotalSize)
}

func TestLink(t *testing.T) {
	m := newTestManager(t)
	ref := model.Ref{Name: "@babel/core", Version: "7.23.0"}

	projectDir := t.TempDir()

	_, err := m.Link(projectDir, ref)
	require.ErrorIs(t, err, pkgerrors.ErrNotCached, "linking an absent entry must fail loudly")

	entryPath := install(t, m, ref)

	linkPath, err := m.Link(projectDir, ref)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(projectDir, LinkDirName, "@babel", "core@7.23.0"), linkPath)

	target, err := os.Readlink(linkPath)
	require.NoError(t, err)
	assert.Equal(t, entryPath, target)

	// Idempotent: a second call leaves the correct link alone.
	again, err := m.Link(projectDir, ref)
	require.NoError(t, err)
	assert.Equal(t, linkPath, again)

	// A conflicting regular directory at the link path is replaced.
	require.NoError(t, os.RemoveAll(linkPath))
	require.NoError(t, os.MkdirAll(linkPath, 0o755))
	_, err = m.Link(projectDir, ref)
	require.NoError(t, err)
	target, err = os.Readlink(linkPath)
	require.NoError(t, err)
	assert.Equal(t, entryPath, target)
}

func TestLock_SameKeySerializes(t *testing.T) {
	m := newTestManager(t)
	ref := model.Ref{Name: "lodash", Version: "4.17.21"}

	unlock, err := m.Lock(ref)
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		unlock2, err := m.Lock(ref)
		if err == nil {
			unlock2()
		}
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first was held")
	case <-time.After(100 * time.Millisecond):
	}

	unlock()
	<-acquired
}
