package registry

import (
	"encoding/base64"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	ini "gopkg.in/ini.v1"

	"github.com/srcstash/srcstash/pkg/auth"
)

// ResolveBaseURL picks the registry base. An explicit configured value wins,
// then a "registry" line in the project-local .npmrc, then the user-global
// one, then the public default.
func ResolveBaseURL(explicit, projectDir string) string {
	if explicit != "" {
		return strings.TrimRight(explicit, "/")
	}
	for _, path := range npmrcPaths(projectDir) {
		if base := registryFromNpmrc(path); base != "" {
			return strings.TrimRight(base, "/")
		}
	}
	return DefaultBaseURL
}

// AuthFromNpmrc returns the credentials either .npmrc declares for the
// registry host, project file first. Within one file a scoped _authToken
// wins over _auth; a host-scoped _auth wins over the bare legacy one.
// Returns nil for anonymous access.
func AuthFromNpmrc(baseURL, projectDir string) auth.Authenticator {
	prefix := hostKeyPrefix(baseURL)
	if prefix == "" {
		return nil
	}
	for _, path := range npmrcPaths(projectDir) {
		if token := npmrcValue(path, prefix+":_authToken"); token != "" {
			return auth.BearerAuth{Token: token}
		}
		for _, key := range []string{prefix + ":_auth", "_auth"} {
			if encoded := npmrcValue(path, key); encoded != "" {
				return basicFromEncoded(encoded)
			}
		}
	}
	return nil
}

// basicFromEncoded turns a base64 "user:pass" _auth value into basic
// credentials. A value that does not decode that way is applied verbatim.
func basicFromEncoded(encoded string) auth.Authenticator {
	if raw, err := base64.StdEncoding.DecodeString(encoded); err == nil {
		if user, pass, ok := strings.Cut(string(raw), ":"); ok {
			return auth.BasicAuth{Username: user, Password: pass}
		}
	}
	return auth.LegacyAuth{Encoded: encoded}
}

// npmrcPaths lists candidate .npmrc files in precedence order.
func npmrcPaths(projectDir string) []string {
	var paths []string
	if projectDir != "" {
		paths = append(paths, filepath.Join(projectDir, ".npmrc"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".npmrc"))
	}
	return paths
}

// loadNpmrc parses one .npmrc. The format is ini-like but auth keys contain
// colons, so only '=' may act as the key/value delimiter.
func loadNpmrc(path string) (*ini.File, error) {
	return ini.LoadSources(ini.LoadOptions{KeyValueDelimiters: "="}, path)
}

// registryFromNpmrc reads the registry key from one file. A missing or
// unparsable file contributes nothing.
func registryFromNpmrc(path string) string {
	cfg, err := loadNpmrc(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cfg.Section("").Key("registry").String())
}

// npmrcValue reads one credential line from one file, expanding "${VAR}"
// references the way npm does.
func npmrcValue(path, key string) string {
	cfg, err := loadNpmrc(path)
	if err != nil {
		return ""
	}
	value := strings.TrimSpace(cfg.Section("").Key(key).String())
	if strings.Contains(value, "${") {
		value = os.ExpandEnv(value)
	}
	return value
}

// hostKeyPrefix derives the npmrc key prefix for a registry base URL: the
// URL minus its scheme, between double slashes ("//host/path/").
func hostKeyPrefix(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return ""
	}
	trimmed := strings.TrimRight(u.Host+u.Path, "/")
	return "//" + trimmed + "/"
}
