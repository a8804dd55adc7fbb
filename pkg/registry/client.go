// Package registry looks up package version metadata from an npm-style
// registry, primarily the repository field the locator turns into a fetchable
// source location.
package registry

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/srcstash/srcstash/pkg/auth"
	pkgerrors "github.com/srcstash/srcstash/pkg/errors"
	"github.com/srcstash/srcstash/pkg/fetch"
)

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

// Metadata is the repository information recorded for one package version.
type Metadata struct {
	Name      string
	Version   string
	RepoField string // repository location in any accepted shape; empty when absent
	Directory string // monorepo subdirectory hint; empty when absent
}

// Client fetches package documents from one registry.
type Client struct {
	fetcher       *fetch.Client
	baseURL       string
	authenticator auth.Authenticator
}

// NewClient creates a registry client. An empty baseURL means the public npm
// registry; authenticator may be nil for anonymous access.
func NewClient(fetcher *fetch.Client, baseURL string, authenticator auth.Authenticator) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{fetcher: fetcher, baseURL: baseURL, authenticator: authenticator}
}

// BaseURL returns the registry base this client queries.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Lookup fetches the package document and returns the metadata recorded for
// the exact version. A missing package surfaces fetch.ErrNotFound; a missing
// version surfaces ErrVersionNotFound. Both mean "no repository metadata
// here", which callers treat as unresolvable rather than fatal.
func (c *Client) Lookup(ctx context.Context, name, version string) (Metadata, error) {
	docURL := c.baseURL + "/" + url.PathEscape(name)

	opts := []fetch.RequestOption{fetch.WithHeader("Accept", "application/json")}
	if c.authenticator != nil {
		opts = append(opts, fetch.WithAuth(c.authenticator))
	}

	resp, err := c.fetcher.Get(ctx, docURL, opts...)
	if err != nil {
		return Metadata{}, pkgerrors.Wrapf(err, "registry lookup for %s", name)
	}
	defer resp.Body.Close()

	var doc packageDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return Metadata{}, pkgerrors.Wrapf(pkgerrors.ErrRegistryLookup, "malformed document for %s: %v", name, err)
	}

	details, ok := doc.Versions[version]
	if !ok {
		return Metadata{}, pkgerrors.Wrapf(pkgerrors.ErrVersionNotFound, "%s@%s", name, version)
	}

	return Metadata{
		Name:      name,
		Version:   version,
		RepoField: extractField(details.Repository, "url"),
		Directory: extractField(details.Repository, "directory"),
	}, nil
}

// packageDocument is the registry response shape: a versions map keyed by
// exact version string. The repository field may be a bare string or an
// object with url/directory keys.
type packageDocument struct {
	Name     string                    `json:"name"`
	Versions map[string]versionDetails `json:"versions"`
}

type versionDetails struct {
	Repository any `json:"repository"`
}

// extractField reads a string value out of a field that may be a bare string
// (the string itself is the "url") or an object.
func extractField(v any, field string) string {
	switch val := v.(type) {
	case string:
		if field == "url" {
			return val
		}
	case map[string]any:
		if s, ok := val[field].(string); ok {
			return s
		}
	}
	return ""
}
