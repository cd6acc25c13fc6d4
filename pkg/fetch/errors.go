package fetch

import "fmt"

// TransportError reports that the request never produced an HTTP
// response: DNS failure, connection refused, timeout, cancelled
// context, and so on. The underlying cause is available via Unwrap.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error for %q: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError reports a response with a status code outside the 2xx
// success range. Code carries the exact numeric status and Status the
// status text as received.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("invalid response code %d (%s) for request url %q", e.Code, e.Status, e.URL)
}

// ParseError reports a 2xx response whose body could not be decoded as
// JSON. No partial value is returned alongside it.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to decode response body for %q: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
