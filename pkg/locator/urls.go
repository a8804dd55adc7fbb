package locator

import "fmt"

// DefaultBranches are the branch names tried, in order, when no release tag
// can be resolved.
var DefaultBranches = []string{"main", "master"}

func (h Host) domain() string {
	switch h {
	case HostGitLab:
		return "gitlab.com"
	case HostBitbucket:
		return "bitbucket.org"
	default:
		return "github.com"
	}
}

// HTTPSURL renders the canonical HTTPS repository URL.
func (d Descriptor) HTTPSURL() string {
	return fmt.Sprintf("https://%s/%s/%s", d.Host.domain(), d.Owner, d.Repo)
}

// GitURL renders the URL used for clone operations.
func (d Descriptor) GitURL() string {
	return d.HTTPSURL() + ".git"
}

// TagArchiveURL renders the tarball URL for one tag. The shape differs per
// host: GitHub uses refs/tags paths, GitLab a dash-archive with the tag baked
// into the filename, Bitbucket a plain get/<ref> path.
func (d Descriptor) TagArchiveURL(tag string) string {
	switch d.Host {
	case HostGitLab:
		return fmt.Sprintf("%s/-/archive/%s/%s-%s.tar.gz", d.HTTPSURL(), tag, d.Repo, tag)
	case HostBitbucket:
		return fmt.Sprintf("%s/get/%s.tar.gz", d.HTTPSURL(), tag)
	default:
		return fmt.Sprintf("%s/archive/refs/tags/%s.tar.gz", d.HTTPSURL(), tag)
	}
}

// BranchArchiveURL renders the tarball URL for a branch head.
func (d Descriptor) BranchArchiveURL(branch string) string {
	switch d.Host {
	case HostGitLab:
		return fmt.Sprintf("%s/-/archive/%s/%s-%s.tar.gz", d.HTTPSURL(), branch, d.Repo, branch)
	case HostBitbucket:
		return fmt.Sprintf("%s/get/%s.tar.gz", d.HTTPSURL(), branch)
	default:
		return fmt.Sprintf("%s/archive/refs/heads/%s.tar.gz", d.HTTPSURL(), branch)
	}
}

// BranchArchiveURLs renders the default-branch tarball URLs in fallback order.
func (d Descriptor) BranchArchiveURLs() []string {
	urls := make([]string, 0, len(DefaultBranches))
	for _, branch := range DefaultBranches {
		urls = append(urls, d.BranchArchiveURL(branch))
	}
	return urls
}
