package ddragon

import (
	"errors"
	"fmt"
)

// ErrNoVersions is returned when the CDN's version listing comes back empty.
var ErrNoVersions = errors.New("versions.json returned no versions")

// FetchError reports a network-level or HTTP-level failure against the CDN
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("ddragon: HTTP %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("ddragon: fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DataLoadError reports malformed or incomplete upstream JSON. A refresh
// that fails with it commits nothing.
type DataLoadError struct {
	Resource string
	Err      error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("ddragon: load %s: %v", e.Resource, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }
