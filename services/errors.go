package services

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable means a feed fetch exhausted its retries. Callers must
// treat this as "could not check", never as zero stock.
var ErrDataUnavailable = errors.New("data unavailable")

// ErrNoDateAvailable means no legal delivery date within the horizon had
// sufficient stock.
var ErrNoDateAvailable = errors.New("no delivery date with sufficient stock")

// ErrNoRoute means no delivery route is registered for the requested city.
var ErrNoRoute = errors.New("no route available for city")

// ErrAttemptTimeout marks a single fetch attempt that exceeded its deadline.
var ErrAttemptTimeout = errors.New("fetch attempt timed out")

// HTTPError is a terminal, non-retryable HTTP response (4xx other than 429).
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: %s", e.Status)
}

// FetchError wraps the last error after the retry budget is spent. It matches
// ErrDataUnavailable under errors.Is so callers can map it uniformly.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed after %d attempts for %s: %v", e.Attempts, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrDataUnavailable }

func retryableStatus(code int) bool {
	return code == 429 || (code >= 500 && code < 600)
}
