// Package model provides the data structures shared across the srcstash
// pipeline: package references, declared dependencies, and progress events.
package model

import (
	"strings"

	"github.com/srcstash/srcstash/pkg/errors"
)

// Ref identifies one cached source tree by package name and version.
// The name may be scoped ("@scope/name"); the version is the exact string the
// acquisition was requested with.
type Ref struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ParseRef parses a "name@version" reference. The separator is the last '@'
// in the string, so scoped names ("@scope/name@1.0.0") parse correctly: the
// leading '@' of a scope can never be the last one in a well-formed reference.
func ParseRef(s string) (Ref, error) {
	idx := strings.LastIndex(s, "@")
	if idx <= 0 {
		// idx==0 means the only '@' is the scope prefix and the version half
		// is missing entirely.
		return Ref{}, errors.Wrapf(errors.ErrInvalidRef, "reference %q must have the form name@version", s)
	}
	name, ver := s[:idx], s[idx+1:]
	if name == "" || ver == "" {
		return Ref{}, errors.Wrapf(errors.ErrInvalidRef, "reference %q must have the form name@version", s)
	}
	return Ref{Name: name, Version: ver}, nil
}

// String renders the reference back to its "name@version" form.
func (r Ref) String() string {
	return r.Name + "@" + r.Version
}

// Scope splits a scoped name into its scope and leaf halves. For unscoped
// names the scope is empty and the leaf is the full name.
func (r Ref) Scope() (scope, leaf string) {
	if strings.HasPrefix(r.Name, "@") {
		if i := strings.Index(r.Name, "/"); i > 0 {
			return r.Name[:i], r.Name[i+1:]
		}
	}
	return "", r.Name
}

// Scoped reports whether the package name carries an "@scope/" prefix.
func (r Ref) Scoped() bool {
	scope, _ := r.Scope()
	return scope != ""
}
