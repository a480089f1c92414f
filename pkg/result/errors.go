package result

import (
	"errors"
	"fmt"
)

var (
	// ErrFetchFailure matches every FetchError, parse failures included
	ErrFetchFailure = errors.New("fetch failure")
	// ErrParseFailure matches 2xx responses whose body could not be decoded
	ErrParseFailure = errors.New("parse failure")
)

// Kind classifies a FetchError
type Kind int

const (
	KindTransport Kind = iota
	KindStatus
	KindParse
)

// FetchError is returned by every Client operation. A non-nil FetchError means
// the requested data is absent for this call.
type FetchError struct {
	Op         string // e.g. "student info", "semester 241"
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("error fetching %s: unexpected status code %d", e.Op, e.StatusCode)
	case KindParse:
		return fmt.Sprintf("error fetching %s: failed to decode JSON response: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("error fetching %s: %v", e.Op, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the package sentinels
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrParseFailure:
		return e.Kind == KindParse
	case ErrFetchFailure:
		return true
	}
	return false
}
