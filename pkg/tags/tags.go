//go:generate mockgen -package mocks -destination=./mocks/tags.go . Lister

// Package tags resolves which remote tag, if any, corresponds to a package
// version. Resolution never fails: every degradation path reports "no tag" so
// the caller can fall back to the default branch.
package tags

import (
	"context"
	"strings"

	"github.com/srcstash/srcstash/internal/logger"
	"github.com/srcstash/srcstash/pkg/locator"
)

// Lister is the subset of the git client used to enumerate remote tags.
type Lister interface {
	ListRemoteTags(ctx context.Context, repoURL string) ([]string, error)
}

// Resolver picks the remote tag matching a package version.
type Resolver struct {
	lister Lister
}

// NewResolver creates a tag resolver using the given lister.
func NewResolver(lister Lister) *Resolver {
	return &Resolver{lister: lister}
}

// Resolve returns the tag for version, or ok=false when the repository has no
// usable tag. A failed or empty remote listing degrades to ok=false rather
// than an error.
func (r *Resolver) Resolve(ctx context.Context, desc locator.Descriptor, version, packageName string) (string, bool) {
	remoteTags, err := r.lister.ListRemoteTags(ctx, desc.GitURL())
	if err != nil {
		logger.Debugf("tag listing for %s failed: %v", desc, err)
		return "", false
	}
	return matchTag(remoteTags, version, packageName)
}

// matchTag runs the priority ladder over the tag list:
//  1. "v<version>" exact
//  2. "<version>" exact
//  3. "<packageName>@<version>" exact
//  4. "<unscopedName>@<version>" exact, for scoped packages only
//  5. the first tag containing <version> as a literal substring
func matchTag(tags []string, version, packageName string) (string, bool) {
	if len(tags) == 0 || version == "" {
		return "", false
	}

	exact := []string{"v" + version, version, packageName + "@" + version}
	if unscoped, scoped := unscopedName(packageName); scoped {
		exact = append(exact, unscoped+"@"+version)
	}

	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	for _, candidate := range exact {
		if _, ok := set[candidate]; ok {
			return candidate, true
		}
	}

	for _, tag := range tags {
		if strings.Contains(tag, version) {
			return tag, true
		}
	}
	return "", false
}

// unscopedName strips the "@scope/" prefix from a scoped package name.
func unscopedName(name string) (string, bool) {
	if strings.HasPrefix(name, "@") {
		if i := strings.Index(name, "/"); i > 0 {
			return name[i+1:], true
		}
	}
	return name, false
}
