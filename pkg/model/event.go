package model

// Status is the closed vocabulary of acquisition progress states. Per package
// the states advance in order; there is no ordering guarantee across packages.
type Status string

const (
	StatusPending     Status = "pending"
	StatusFetching    Status = "fetching"
	StatusFindingTag  Status = "finding-tag"
	StatusDownloading Status = "downloading"
	StatusComplete    Status = "complete"
	StatusSkipped     Status = "skipped"
	StatusError       Status = "error"
)

// Terminal reports whether no further event will follow for the package.
func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusSkipped || s == StatusError
}

// Event is one progress notification for a single package acquisition.
type Event struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Status  Status `json:"status"`
	Detail  string `json:"detail,omitempty"`
}

// Ref returns the cache key the event refers to.
func (e Event) Ref() Ref {
	return Ref{Name: e.Name, Version: e.Version}
}
