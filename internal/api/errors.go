package api

import "fmt"

// RemoteFetchError is returned when a catalog request fails at the transport,
// comes back with a non-2xx status, or carries a payload that can't be decoded
type RemoteFetchError struct {
	Endpoint string
	Cause    error
}

func (e *RemoteFetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Cause)
}

func (e *RemoteFetchError) Unwrap() error {
	return e.Cause
}

// StatusError is the cause of a RemoteFetchError for non-success responses
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("catalog returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("catalog returned status %d: %s", e.StatusCode, e.Body)
}
