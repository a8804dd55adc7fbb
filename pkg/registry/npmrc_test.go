package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srcstash/srcstash/pkg/auth"
)

func writeNpmrc(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".npmrc"), []byte(content), 0o644))
}

func TestResolveBaseURL_ExplicitWins(t *testing.T) {
	projectDir := t.TempDir()
	writeNpmrc(t, projectDir, "registry=https://project.example.com/\n")

	base := ResolveBaseURL("https://explicit.example.com", projectDir)
	assert.Equal(t, "https://explicit.example.com", base)
}

func TestResolveBaseURL_ProjectBeatsUser(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeNpmrc(t, home, "registry=https://user.example.com\n")

	projectDir := t.TempDir()
	writeNpmrc(t, projectDir, "registry=https://project.example.com/\n")

	base := ResolveBaseURL("", projectDir)
	assert.Equal(t, "https://project.example.com", base, "project npmrc wins and trailing slash is trimmed")
}

func TestResolveBaseURL_UserFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeNpmrc(t, home, "registry = https://user.example.com\n")

	base := ResolveBaseURL("", t.TempDir())
	assert.Equal(t, "https://user.example.com", base)
}

func TestResolveBaseURL_Default(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	base := ResolveBaseURL("", t.TempDir())
	assert.Equal(t, DefaultBaseURL, base)
}

func TestResolveBaseURL_CommentsAndJunkIgnored(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	projectDir := t.TempDir()
	writeNpmrc(t, projectDir, "# comment line\nsave-exact=true\nregistry=https://mirror.example.com\n")

	base := ResolveBaseURL("", projectDir)
	assert.Equal(t, "https://mirror.example.com", base)
}

func TestAuthFromNpmrc_ProjectToken(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	projectDir := t.TempDir()
	writeNpmrc(t, projectDir, "//registry.example.com/:_authToken=secret123\n")

	a := AuthFromNpmrc("https://registry.example.com", projectDir)
	require.NotNil(t, a)
	assert.Equal(t, auth.BearerAuth{Token: "secret123"}, a)
}

func TestAuthFromNpmrc_EnvExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("NPM_TOKEN", "from-env")

	projectDir := t.TempDir()
	writeNpmrc(t, projectDir, "//registry.example.com/:_authToken=${NPM_TOKEN}\n")

	a := AuthFromNpmrc("https://registry.example.com", projectDir)
	require.NotNil(t, a)
	assert.Equal(t, auth.BearerAuth{Token: "from-env"}, a)
}

func TestAuthFromNpmrc_NoToken(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	a := AuthFromNpmrc("https://registry.npmjs.org", t.TempDir())
	assert.Nil(t, a)
}

func TestAuthFromNpmrc_PathedRegistry(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	projectDir := t.TempDir()
	writeNpmrc(t, projectDir, "//artifacts.example.com/api/npm/npm-main/:_authToken=tok\n")

	a := AuthFromNpmrc("https://artifacts.example.com/api/npm/npm-main/", projectDir)
	require.NotNil(t, a)
	assert.Equal(t, auth.BearerAuth{Token: "tok"}, a)
}

func TestAuthFromNpmrc_BasicFromAuthLine(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	projectDir := t.TempDir()
	// base64("alice:s3cret")
	writeNpmrc(t, projectDir, "//registry.example.com/:_auth=YWxpY2U6czNjcmV0\n")

	a := AuthFromNpmrc("https://registry.example.com", projectDir)
	require.NotNil(t, a)
	assert.Equal(t, auth.BasicAuth{Username: "alice", Password: "s3cret"}, a)
}

func TestAuthFromNpmrc_BareAuthLine(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	projectDir := t.TempDir()
	// base64("bob:hunter2"), declared without a host scope (legacy npmrc form)
	writeNpmrc(t, projectDir, "_auth=Ym9iOmh1bnRlcjI=\n")

	a := AuthFromNpmrc("https://registry.example.com", projectDir)
	require.NotNil(t, a)
	assert.Equal(t, auth.BasicAuth{Username: "bob", Password: "hunter2"}, a)
}

func TestAuthFromNpmrc_OpaqueAuthValuePassedThrough(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	projectDir := t.TempDir()
	writeNpmrc(t, projectDir, "//registry.example.com/:_auth=not-base64!\n")

	a := AuthFromNpmrc("https://registry.example.com", projectDir)
	require.NotNil(t, a)
	assert.Equal(t, auth.LegacyAuth{Encoded: "not-base64!"}, a)
}

func TestAuthFromNpmrc_TokenWinsOverAuthLine(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	projectDir := t.TempDir()
	writeNpmrc(t, projectDir,
		"//registry.example.com/:_auth=YWxpY2U6czNjcmV0\n"+
			"//registry.example.com/:_authToken=tok\n")

	a := AuthFromNpmrc("https://registry.example.com", projectDir)
	require.NotNil(t, a)
	assert.Equal(t, auth.BearerAuth{Token: "tok"}, a)
}
