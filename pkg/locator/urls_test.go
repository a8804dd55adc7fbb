package locator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptor_URLs_GitHub(t *testing.T) {
	d := Descriptor{Host: HostGitHub, Owner: "lodash", Repo: "lodash"}

	assert.Equal(t, "https://github.com/lodash/lodash", d.HTTPSURL())
	assert.Equal(t, "https://github.com/lodash/lodash.git", d.GitURL())
	assert.Equal(t,
		"https://github.com/lodash/lodash/archive/refs/tags/v4.17.21.tar.gz",
		d.TagArchiveURL("v4.17.21"))
	assert.Equal(t,
		"https://github.com/lodash/lodash/archive/refs/heads/main.tar.gz",
		d.BranchArchiveURL("main"))
}

func TestDescriptor_URLs_GitLab(t *testing.T) {
	d := Descriptor{Host: HostGitLab, Owner: "inkscape", Repo: "inkscape"}

	assert.Equal(t, "https://gitlab.com/inkscape/inkscape", d.HTTPSURL())
	assert.Equal(t,
		"https://gitlab.com/inkscape/inkscape/-/archive/v1.3/inkscape-v1.3.tar.gz",
		d.TagArchiveURL("v1.3"))
	assert.Equal(t,
		"https://gitlab.com/inkscape/inkscape/-/archive/master/inkscape-master.tar.gz",
		d.BranchArchiveURL("master"))
}

func TestDescriptor_URLs_Bitbucket(t *testing.T) {
	d := Descriptor{Host: HostBitbucket, Owner: "atlassian", Repo: "localstack"}

	assert.Equal(t, "https://bitbucket.org/atlassian/localstack", d.HTTPSURL())
	assert.Equal(t,
		"https://bitbucket.org/atlassian/localstack/get/v1.0.0.tar.gz",
		d.TagArchiveURL("v1.0.0"))
	assert.Equal(t,
		"https://bitbucket.org/atlassian/localstack/get/main.tar.gz",
		d.BranchArchiveURL("main"))
}

func TestDescriptor_BranchArchiveURLs_Order(t *testing.T) {
	d := Descriptor{Host: HostGitHub, Owner: "o", Repo: "r"}

	urls := d.BranchArchiveURLs()
	assert.Equal(t, []string{
		"https://github.com/o/r/archive/refs/heads/main.tar.gz",
		"https://github.com/o/r/archive/refs/heads/master.tar.gz",
	}, urls)
}
