package noaa

import "fmt"

// FetchError represents a failed transport call or a non-success status from
// the NOAA API.
type FetchError struct {
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("NOAA fetch failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("NOAA fetch failed: %s", e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError represents a response body that is not well-formed JSON at the
// top level. Individual malformed records inside an otherwise valid body are
// tolerated and never produce this error.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("NOAA parse failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("NOAA parse failed: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
