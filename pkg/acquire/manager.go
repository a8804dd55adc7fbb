// Package acquire orchestrates source acquisition: locate the repository,
// resolve a release tag, download and extract (or sparse-clone a monorepo
// subdirectory), and install the result into the store. Acquisitions for
// distinct keys are independent and run in parallel; within one acquisition
// the pipeline is sequential.
package acquire

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/srcstash/srcstash/internal/logger"
	pkgerrors "github.com/srcstash/srcstash/pkg/errors"
	"github.com/srcstash/srcstash/pkg/fetch"
	"github.com/srcstash/srcstash/pkg/fsutil"
	"github.com/srcstash/srcstash/pkg/git"
	"github.com/srcstash/srcstash/pkg/locator"
	"github.com/srcstash/srcstash/pkg/model"
	"github.com/srcstash/srcstash/pkg/store"
)

// SkipReasonNoRepository explains skips for packages with no usable
// repository metadata anywhere; typically private or proprietary packages.
const SkipReasonNoRepository = "no repository metadata; likely private"

// typesScope and definitelyTyped identify the synthetic types-only packages
// backed by one shared monorepo. They are never tag-probed: the monorepo tags
// carry no per-package versions, so the default branch is always used.
const (
	typesScope      = "@types/"
	definitelyTyped = "definitelytyped"
)

// Manager runs acquisitions. All collaborators are injected; tests substitute
// mocks for every interface.
type Manager struct {
	registry   RepoSource
	tags       TagResolver
	downloader ArchiveDownloader
	extractor  Extractor
	cloner     SparseCloner
	store      *store.Manager

	// Hooks receives progress events.
	Hooks Hooks
	// Concurrency caps the AcquireAll worker pool; <=0 picks a default.
	Concurrency int
}

// NewManager wires an acquisition manager from its collaborators.
func NewManager(reg RepoSource, tags TagResolver, downloader ArchiveDownloader, extractor Extractor, cloner SparseCloner, st *store.Manager) *Manager {
	return &Manager{
		registry:   reg,
		tags:       tags,
		downloader: downloader,
		extractor:  extractor,
		cloner:     cloner,
		store:      st,
	}
}

// Acquire runs the pipeline for one package version. Re-running for a cached
// key performs no network or process calls. The returned outcome is terminal;
// errors never panic and never leave a partial entry under the final path.
func (m *Manager) Acquire(ctx context.Context, req Request) Outcome {
	ref := req.Ref()
	m.Hooks.emit(ref, model.StatusPending, "")

	if m.store.Has(ref) {
		m.Hooks.emit(ref, model.StatusComplete, "already cached")
		return Outcome{Kind: KindCached, Path: m.store.Path(ref)}
	}

	unlock, err := m.store.Lock(ref)
	if err != nil {
		return m.fail(ref, err)
	}
	defer unlock()

	// Another process may have finished while we waited on the lock.
	if m.store.Has(ref) {
		m.Hooks.emit(ref, model.StatusComplete, "already cached")
		return Outcome{Kind: KindCached, Path: m.store.Path(ref)}
	}

	m.Hooks.emit(ref, model.StatusFetching, "locating repository")
	desc, ok, err := m.locate(ctx, req)
	if err != nil {
		return m.fail(ref, err)
	}
	if !ok {
		m.Hooks.emit(ref, model.StatusSkipped, SkipReasonNoRepository)
		return Outcome{Kind: KindSkipped, Reason: SkipReasonNoRepository}
	}

	var tag string
	var hasTag bool
	if m.skipTagProbe(req.Name, desc) {
		logger.Debugf("skipping tag probe for %s: shared types monorepo", ref)
	} else {
		m.Hooks.emit(ref, model.StatusFindingTag, desc.String())
		tag, hasTag = m.tags.Resolve(ctx, desc, req.Version, req.Name)
	}

	m.Hooks.emit(ref, model.StatusDownloading, desc.String())

	var path string
	fromFallback := !hasTag
	if desc.Subdirectory != "" {
		path, err = m.sparse(ctx, ref, desc, tag)
	} else {
		path, fromFallback, err = m.tarball(ctx, ref, desc, tag, hasTag)
	}
	if err != nil {
		return m.fail(ref, err)
	}

	detail := "downloaded " + req.Version
	if fromFallback {
		detail = "downloaded from default branch"
	}
	m.Hooks.emit(ref, model.StatusComplete, detail)
	return Outcome{Kind: KindAcquired, Path: path, FromFallback: fromFallback}
}

// AcquireAll acquires a whole dependency set through a bounded worker pool.
// Each package is independent: one failure never aborts its siblings. The
// result map is keyed by "name@version".
func (m *Manager) AcquireAll(ctx context.Context, reqs []Request) map[string]Outcome {
	concurrency := m.Concurrency
	if concurrency <= 0 {
		concurrency = max(2, runtime.NumCPU()/2)
	}

	results := make(map[string]Outcome, len(reqs))
	var mu sync.Mutex

	tasks := make(chan Request)
	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range tasks {
				outcome := m.Acquire(ctx, req)
				mu.Lock()
				results[req.Ref().String()] = outcome
				mu.Unlock()
			}
		}()
	}

	for _, req := range reqs {
		tasks <- req
	}
	close(tasks)
	wg.Wait()

	return results
}

func (m *Manager) fail(ref model.Ref, err error) Outcome {
	wrapped := pkgerrors.Wrapf(err, "failed to acquire %s", ref)
	m.Hooks.emit(ref, model.StatusError, wrapped.Error())
	return Outcome{Kind: KindFailed, Err: wrapped}
}

// locate derives repository coordinates from the declared field, falling back
// to a registry lookup. ok=false means no usable metadata anywhere, which is
// a skip, not an error; only hard lookup failures return one.
func (m *Manager) locate(ctx context.Context, req Request) (locator.Descriptor, bool, error) {
	if req.RepoField != "" {
		if desc, ok := locator.Parse(req.RepoField, req.Subdirectory); ok {
			return desc, true, nil
		}
		logger.Debugf("declared repository %q for %s is unusable, consulting registry", req.RepoField, req.Name)
	}
	if m.registry == nil {
		return locator.Descriptor{}, false, nil
	}

	meta, err := m.registry.Lookup(ctx, req.Name, req.Version)
	if err != nil {
		if errors.Is(err, fetch.ErrNotFound) || errors.Is(err, pkgerrors.ErrVersionNotFound) {
			return locator.Descriptor{}, false, nil
		}
		return locator.Descriptor{}, false, err
	}

	subdir := req.Subdirectory
	if subdir == "" {
		subdir = meta.Directory
	}
	desc, ok := locator.Parse(meta.RepoField, subdir)
	return desc, ok, nil
}

// skipTagProbe recognizes the types-only monorepo case by package name prefix
// and repository identity.
func (m *Manager) skipTagProbe(name string, desc locator.Descriptor) bool {
	return strings.HasPrefix(name, typesScope) &&
		strings.EqualFold(desc.Owner, definitelyTyped) &&
		strings.EqualFold(desc.Repo, definitelyTyped)
}

// tarball tries the tag archive, then each default branch in order. A 404 on
// the tag archive is swallowed and the fallback chain continues; any other
// tag-archive failure propagates immediately. When every strategy fails the
// error aggregates each attempted URL's failure.
func (m *Manager) tarball(ctx context.Context, ref model.Ref, desc locator.Descriptor, tag string, hasTag bool) (string, bool, error) {
	var attempts *multierror.Error

	if hasTag {
		url := desc.TagArchiveURL(tag)
		path, err := m.installArchive(ctx, ref, url)
		if err == nil {
			return path, false, nil
		}
		if !errors.Is(err, fetch.ErrNotFound) {
			return "", false, err
		}
		logger.Debugf("tag archive %s missing, falling back to default branches", url)
		attempts = multierror.Append(attempts, err)
	}

	for _, url := range desc.BranchArchiveURLs() {
		path, err := m.installArchive(ctx, ref, url)
		if err == nil {
			return path, true, nil
		}
		attempts = multierror.Append(attempts, err)
	}

	return "", false, pkgerrors.Wrapf(pkgerrors.ErrStrategiesExhausted, "%s: %v", ref, attempts)
}

// installArchive downloads one archive URL and extracts it into a staged
// store entry. The archive file itself never appears under the final path.
func (m *Manager) installArchive(ctx context.Context, ref model.Ref, url string) (string, error) {
	return m.store.Install(ref, func(dir string) error {
		archivePath := filepath.Join(dir, ".download.tar.gz")
		if err := m.downloader.Download(ctx, url, archivePath); err != nil {
			return pkgerrors.Wrapf(err, "%s", url)
		}
		if err := m.extractor.Extract(ctx, archivePath, dir); err != nil {
			return pkgerrors.Wrapf(err, "failed to extract %s", url)
		}
		return os.Remove(archivePath)
	})
}

// sparse acquires a monorepo package: shallow blob-filtered sparse clone into
// scratch space, then the subdirectory's contents move into the staged entry.
func (m *Manager) sparse(ctx context.Context, ref model.Ref, desc locator.Descriptor, tag string) (string, error) {
	scratch, err := m.store.StageDir(ref.String())
	if err != nil {
		return "", err
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	cloneDir := filepath.Join(scratch, "repo")
	err = m.cloner.SparseClone(ctx, git.SparseCloneOptions{
		URL:          desc.GitURL(),
		Ref:          tag,
		Subdirectory: desc.Subdirectory,
		Dir:          cloneDir,
	})
	if err != nil {
		return "", err
	}

	subdir := filepath.Join(cloneDir, filepath.FromSlash(desc.Subdirectory))
	return m.store.Install(ref, func(dir string) error {
		return moveContents(subdir, dir)
	})
}

// moveContents moves every child of src into dst.
func moveContents(src, dst string) error {
	children, err := os.ReadDir(src)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read %s", src)
	}
	for _, child := range children {
		if err := fsutil.Move(filepath.Join(src, child.Name()), filepath.Join(dst, child.Name())); err != nil {
			return err
		}
	}
	return nil
}
