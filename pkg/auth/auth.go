// Package auth applies registry credentials to outgoing HTTP requests. The
// supported forms mirror what an .npmrc can declare for a registry host: a
// bearer token (_authToken), a username/password pair decoded from _auth, or
// a legacy pre-encoded _auth value passed through verbatim.
//
//go:generate mockgen -destination=./mocks/auth.go . Authenticator
package auth

import "net/http"

// Authenticator applies one credential form to an HTTP request.
type Authenticator interface {
	Apply(req *http.Request) error
	Type() Type
}

// Type names the credential form.
type Type string

const (
	// BearerAuthType is the _authToken form used by modern registries.
	BearerAuthType Type = "bearer"
	// BasicAuthType is a username/password pair.
	BasicAuthType Type = "basic"
	// LegacyAuthType is a pre-encoded _auth value sent unchanged.
	LegacyAuthType Type = "legacy"
)

// BearerAuth sends an auth token as a Bearer Authorization header.
type BearerAuth struct {
	Token string
}

// Apply sets the Authorization header to the bearer token.
func (b BearerAuth) Apply(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+b.Token)
	return nil
}

// Type returns BearerAuthType.
func (b BearerAuth) Type() Type { return BearerAuthType }

// BasicAuth holds a username/password pair, typically decoded from an
// .npmrc _auth line.
type BasicAuth struct {
	Username string
	Password string
}

// Apply sets standard Basic Authentication headers.
func (b BasicAuth) Apply(req *http.Request) error {
	req.SetBasicAuth(b.Username, b.Password)
	return nil
}

// Type returns BasicAuthType.
func (b BasicAuth) Type() Type { return BasicAuthType }

// LegacyAuth carries an _auth value that did not decode to user:pass. npm
// treats such values as opaque and sends them as-is; so does this.
type LegacyAuth struct {
	Encoded string
}

// Apply sets the Authorization header to the raw encoded value.
func (l LegacyAuth) Apply(req *http.Request) error {
	req.Header.Set("Authorization", "Basic "+l.Encoded)
	return nil
}

// Type returns LegacyAuthType.
func (l LegacyAuth) Type() Type { return LegacyAuthType }
