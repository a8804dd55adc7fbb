//go:generate mockgen -package mocks -destination=./mocks/acquire.go . RepoSource,TagResolver,ArchiveDownloader,Extractor,SparseCloner

package acquire

import (
	"context"

	"github.com/srcstash/srcstash/pkg/git"
	"github.com/srcstash/srcstash/pkg/locator"
	"github.com/srcstash/srcstash/pkg/model"
	"github.com/srcstash/srcstash/pkg/registry"
)

// RepoSource is the subset of the registry client used when a request carries
// no repository metadata of its own.
type RepoSource interface {
	Lookup(ctx context.Context, name, version string) (registry.Metadata, error)
}

// TagResolver picks the release tag for a version, or reports that none
// exists and the default branch must be used.
type TagResolver interface {
	Resolve(ctx context.Context, desc locator.Descriptor, version, packageName string) (string, bool)
}

// ArchiveDownloader fetches one archive URL into a local file. A missing
// archive surfaces fetch.ErrNotFound so the acquirer can fall through to the
// next strategy.
type ArchiveDownloader interface {
	Download(ctx context.Context, url, dest string) error
}

// Extractor unpacks a downloaded archive into a directory.
type Extractor interface {
	Extract(ctx context.Context, archivePath, destDir string) error
}

// SparseCloner materializes a repository subdirectory for monorepo packages.
type SparseCloner interface {
	SparseClone(ctx context.Context, opts git.SparseCloneOptions) error
}

// Request asks for one package version. RepoField and Subdirectory carry
// already-known repository metadata; when RepoField is empty the registry is
// consulted.
type Request struct {
	Name         string
	Version      string
	RepoField    string
	Subdirectory string
}

// Ref returns the cache key the request identifies.
func (r Request) Ref() model.Ref {
	return model.Ref{Name: r.Name, Version: r.Version}
}

// Kind tags the result of one acquisition attempt.
type Kind string

const (
	// KindCached means the entry was already present; nothing was fetched.
	KindCached Kind = "cached"
	// KindAcquired means the sources were downloaded and installed.
	KindAcquired Kind = "acquired"
	// KindSkipped means the package cannot be acquired for a benign reason,
	// such as missing repository metadata on a private package.
	KindSkipped Kind = "skipped"
	// KindFailed means every applicable strategy failed.
	KindFailed Kind = "failed"
)

// Outcome is the terminal state of one acquisition.
type Outcome struct {
	Kind Kind
	// Path is the cache entry location for cached/acquired outcomes.
	Path string
	// FromFallback marks an acquisition that used a default branch instead of
	// a release tag; such sources are mutable upstream.
	FromFallback bool
	// Reason explains a skip.
	Reason string
	// Err is set for failed outcomes.
	Err error
}

// Hooks carries the progress callback. Events for one package arrive in
// order; there is no ordering guarantee across packages.
type Hooks struct {
	OnEvent func(model.Event)
}

func (h Hooks) emit(ref model.Ref, status model.Status, detail string) {
	if h.OnEvent != nil {
		h.OnEvent(model.Event{Name: ref.Name, Version: ref.Version, Status: status, Detail: detail})
	}
}
