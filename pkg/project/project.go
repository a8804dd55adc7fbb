// Package project reads the consuming project's manifest: its declared
// dependencies and, when the dependency is actually installed, the exact
// installed version. The acquisition and prune layers consume this through
// the Info interface and never touch manifest files themselves.
package project

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	pkgerrors "github.com/srcstash/srcstash/pkg/errors"
	"github.com/srcstash/srcstash/pkg/model"
)

// Info supplies declared dependencies and installed versions.
type Info interface {
	Dependencies(ctx context.Context) ([]model.DeclaredDependency, error)
	InstalledVersion(ctx context.Context, name string) (string, error)
}

// dependencyGroups are the manifest sections read, in declaration order.
var dependencyGroups = []string{"dependencies", "devDependencies", "optionalDependencies"}

// Manifest reads package.json and node_modules from one project directory.
type Manifest struct {
	dir string
}

// NewManifest creates a manifest reader for the given project directory.
func NewManifest(dir string) *Manifest {
	return &Manifest{dir: dir}
}

// Dir returns the project directory.
func (m *Manifest) Dir() string {
	return m.dir
}

type manifestFile struct {
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
	Version              string            `json:"version"`
}

func (f *manifestFile) group(name string) map[string]string {
	switch name {
	case "dependencies":
		return f.Dependencies
	case "devDependencies":
		return f.DevDependencies
	default:
		return f.OptionalDependencies
	}
}

// Dependencies returns every declared dependency with the group it came from.
// A package declared in several groups appears once per group; consumers
// de-duplicate by name if they need to.
func (m *Manifest) Dependencies(_ context.Context) ([]model.DeclaredDependency, error) {
	path := filepath.Join(m.dir, "package.json")
	file, err := m.readManifest(path)
	if os.IsNotExist(err) {
		return nil, pkgerrors.Wrapf(pkgerrors.ErrNoManifest, "no package.json in %s", m.dir)
	}
	if err != nil {
		return nil, err
	}

	var deps []model.DeclaredDependency
	for _, group := range dependencyGroups {
		for name, spec := range file.group(group) {
			deps = append(deps, model.DeclaredDependency{Name: name, Specifier: spec, Group: group})
		}
	}
	return deps, nil
}

// InstalledVersion returns the version recorded in
// node_modules/<name>/package.json. ErrNotInstalled when the package is not
// materialized in the project.
func (m *Manifest) InstalledVersion(_ context.Context, name string) (string, error) {
	path := filepath.Join(m.dir, "node_modules", filepath.FromSlash(name), "package.json")
	file, err := m.readManifest(path)
	if os.IsNotExist(err) {
		return "", pkgerrors.Wrapf(pkgerrors.ErrNotInstalled, "%s", name)
	}
	if err != nil {
		return "", err
	}
	if file.Version == "" {
		return "", pkgerrors.Wrapf(pkgerrors.ErrNotInstalled, "%s has no version in %s", name, path)
	}
	return file.Version, nil
}

// readManifest parses one package.json. A missing file surfaces as the raw
// not-exist error so callers can map it to their own sentinel.
func (m *Manifest) readManifest(path string) (*manifestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, pkgerrors.Wrapf(err, "failed to read %s", path)
	}
	var file manifestFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, pkgerrors.Wrapf(err, "malformed manifest %s", path)
	}
	return &file, nil
}
