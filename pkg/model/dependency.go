package model

import (
	"regexp"
	"strings"

	version "github.com/hashicorp/go-version"
)

// DeclaredDependency is one entry of a project manifest: a package name, the
// raw version specifier it was declared with, and the manifest group it came
// from. Consumers never mutate it.
type DeclaredDependency struct {
	Name      string `json:"name"`
	Specifier string `json:"specifier"`
	Group     string `json:"group,omitempty"`
}

// versionInSpec extracts the first concrete version-looking run from a range
// specifier: digits and dots, optionally followed by a prerelease/build
// suffix. Range sigils (^, ~, >=, spaces, ||) around it are ignored.
var versionInSpec = regexp.MustCompile(`\d+(?:\.\d+)*(?:[-+][0-9A-Za-z.-]+)?`)

// NormalizeVersionSpec reduces a declared range specifier to a single concrete
// version string, e.g. "^1.2.3" -> "1.2.3" and ">=2.0.0 <3" -> "2.0.0". The
// extracted candidate must parse as a version; wildcard or tag specifiers
// ("*", "latest") yield ok=false.
func NormalizeVersionSpec(spec string) (string, bool) {
	candidate := versionInSpec.FindString(strings.TrimSpace(spec))
	if candidate == "" {
		return "", false
	}
	if _, err := version.NewVersion(candidate); err != nil {
		return "", false
	}
	return candidate, true
}
