package cache

import (
	"errors"
	"fmt"
)

// ErrCacheNotFound means no cache file exists for the requested station/date.
var ErrCacheNotFound = errors.New("cache file not found")

// InvalidCacheError means a cache file exists but fails validation: a zero or
// implausibly large point count, or a byte length that disagrees with the
// count header. Truncated writes and stale format versions both surface here.
type InvalidCacheError struct {
	Path   string
	Reason string
}

func (e *InvalidCacheError) Error() string {
	return fmt.Sprintf("invalid cache file %s: %s", e.Path, e.Reason)
}
