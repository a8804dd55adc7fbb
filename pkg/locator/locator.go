// Package locator parses declared repository metadata into a normalized
// descriptor and renders that descriptor back to fetchable URLs. Supported
// hosts are GitHub, GitLab and Bitbucket; everything else is unresolved.
package locator

import (
	"net/url"
	"regexp"
	"strings"
)

// Host identifies a supported source hosting service.
type Host string

const (
	HostGitHub    Host = "github"
	HostGitLab    Host = "gitlab"
	HostBitbucket Host = "bitbucket"
)

// Descriptor identifies one repository on a supported host, optionally scoped
// to a subdirectory for monorepo packages. Immutable once parsed; rendered
// URLs preserve the original owner/repo casing.
type Descriptor struct {
	Host         Host   `json:"host"`
	Owner        string `json:"owner"`
	Repo         string `json:"repo"`
	Subdirectory string `json:"subdirectory,omitempty"`
}

// String renders the descriptor in "host:owner/repo" form for diagnostics.
func (d Descriptor) String() string {
	s := string(d.Host) + ":" + d.Owner + "/" + d.Repo
	if d.Subdirectory != "" {
		s += "#" + d.Subdirectory
	}
	return s
}

// matcher tries to derive a descriptor from a normalized repository field.
// Returns ok=false when the shape does not apply; malformed input is never an
// error.
type matcher func(field string) (Descriptor, bool)

// matchers are tried in order; the first match wins.
var matchers = []matcher{matchSCP, matchURL, matchShorthand, matchOwnerRepo}

// Parse turns a raw repository field plus an optional subdirectory hint into
// a Descriptor. Accepted shapes: full URLs (https/http/git/ssh, with or
// without a "git+" prefix), scp-style "git@host:owner/repo", "host:owner/repo"
// shorthands, and bare "owner/repo" (implicitly GitHub). Malformed or
// unsupported input yields ok=false.
func Parse(repoField, subdirectory string) (Descriptor, bool) {
	field := normalize(repoField)
	if field == "" {
		return Descriptor{}, false
	}
	for _, match := range matchers {
		if desc, ok := match(field); ok {
			desc.Subdirectory = strings.Trim(strings.TrimSpace(subdirectory), "/")
			return desc, true
		}
	}
	return Descriptor{}, false
}

// normalize strips the decorations package manifests commonly wrap around
// repository URLs: "git+" prefixes, URL fragments, trailing ".git" and
// trailing slashes.
func normalize(field string) string {
	s := strings.TrimSpace(field)
	s = strings.TrimPrefix(s, "git+")
	if i := strings.Index(s, "#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(s, "/")
	s = strings.TrimSuffix(s, ".git")
	s = strings.TrimRight(s, "/")
	return s
}

// inferHost maps a hostname token to a supported Host. Comparison is
// case-insensitive and tolerates a leading "www." and a ".com"/".org" suffix.
func inferHost(token string) (Host, bool) {
	t := strings.ToLower(token)
	t = strings.TrimPrefix(t, "www.")
	t = strings.TrimSuffix(t, ".com")
	t = strings.TrimSuffix(t, ".org")
	switch t {
	case "github":
		return HostGitHub, true
	case "gitlab":
		return HostGitLab, true
	case "bitbucket":
		return HostBitbucket, true
	default:
		return "", false
	}
}

// scp-style remotes: user@host:path. The userinfo half must be non-empty so
// scoped package names ("@scope/name") never match.
var scpPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+@([A-Za-z0-9.-]+):(.+)$`)

func matchSCP(field string) (Descriptor, bool) {
	m := scpPattern.FindStringSubmatch(field)
	if m == nil {
		return Descriptor{}, false
	}
	host, ok := inferHost(m[1])
	if !ok {
		return Descriptor{}, false
	}
	owner, repo, ok := splitOwnerRepo(m[2])
	if !ok {
		return Descriptor{}, false
	}
	return Descriptor{Host: host, Owner: owner, Repo: repo}, true
}

func matchURL(field string) (Descriptor, bool) {
	if !strings.Contains(field, "://") {
		return Descriptor{}, false
	}
	u, err := url.Parse(field)
	if err != nil {
		return Descriptor{}, false
	}
	switch u.Scheme {
	case "http", "https", "git", "ssh":
	default:
		return Descriptor{}, false
	}
	host, ok := inferHost(u.Hostname())
	if !ok {
		return Descriptor{}, false
	}
	owner, repo, ok := splitOwnerRepo(u.Path)
	if !ok {
		return Descriptor{}, false
	}
	return Descriptor{Host: host, Owner: owner, Repo: repo}, true
}

// host:owner/repo shorthand, e.g. "github:lodash/lodash".
var shorthandPattern = regexp.MustCompile(`^([A-Za-z0-9.-]+):([^:@]+)$`)

func matchShorthand(field string) (Descriptor, bool) {
	m := shorthandPattern.FindStringSubmatch(field)
	if m == nil {
		return Descriptor{}, false
	}
	host, ok := inferHost(m[1])
	if !ok {
		return Descriptor{}, false
	}
	owner, repo, ok := splitOwnerRepo(m[2])
	if !ok {
		return Descriptor{}, false
	}
	return Descriptor{Host: host, Owner: owner, Repo: repo}, true
}

// bare owner/repo, implicitly GitHub.
var ownerRepoPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*/[A-Za-z0-9._-]+$`)

func matchOwnerRepo(field string) (Descriptor, bool) {
	if !ownerRepoPattern.MatchString(field) {
		return Descriptor{}, false
	}
	owner, repo, ok := splitOwnerRepo(field)
	if !ok {
		return Descriptor{}, false
	}
	return Descriptor{Host: HostGitHub, Owner: owner, Repo: repo}, true
}

// splitOwnerRepo takes the first two segments of a path as owner and repo.
// Deeper segments (tree/branch suffixes and the like) are ignored.
func splitOwnerRepo(path string) (owner, repo string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
