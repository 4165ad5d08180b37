package plex

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
)

// Sentinel errors for plex.tv and Plex Media Server responses.
var (
	// ErrInvalidResponse is returned when a reply cannot be decoded.
	ErrInvalidResponse = errors.New("invalid response")

	// ErrUnauthorized is returned on HTTP 401. It is never retried; callers
	// should prompt the user to link the account again.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPinExpired is returned when a pairing code expires before it is claimed.
	ErrPinExpired = errors.New("pin expired")

	// ErrNoUsableConnection is returned when a server has no connection with a parseable URL.
	ErrNoUsableConnection = errors.New("server has no usable connection")

	// ErrNotFound is returned when a metadata lookup yields no item.
	ErrNotFound = errors.New("item not found")
)

// HTTPError reports a non-2xx status other than 401.
type HTTPError struct {
	Op     string
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d %s", e.Op, e.Status, http.StatusText(e.Status))
}

// NetworkError wraps a transport-level failure.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// checkStatus maps a response status onto the error taxonomy.
func checkStatus(op string, resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", op, ErrUnauthorized)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &HTTPError{Op: op, Status: resp.StatusCode}
	}
	return nil
}

// IsTransient reports whether err is a network failure worth retrying:
// a timeout, a dropped connection, or an unreachable network.
func IsTransient(err error) bool {
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		return false
	}
	return isTransientCause(netErr.Err)
}

func isTransientCause(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}

	// Connection lost mid-request.
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) ||
		errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	// Not connected.
	return errors.Is(err, syscall.ENETUNREACH) || errors.Is(err, syscall.ENETDOWN) ||
		errors.Is(err, syscall.EHOSTUNREACH)
}
