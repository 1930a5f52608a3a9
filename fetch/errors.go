package fetch

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrRetrievalUnavailable means the environment has no way to retrieve the locator at all,
	// e.g. no HTTP client is configured or the scheme is not supported.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")
	// ErrRetrievalFailed means a retrieval was attempted and did not succeed.
	ErrRetrievalFailed = errors.New("retrieval failed")
)

// RetrievalError is returned when a description cannot be obtained. Kind is either
// ErrRetrievalUnavailable or ErrRetrievalFailed so callers can use errors.Is.
type RetrievalError struct {
	Kind       error
	Locator    string
	StatusCode int
	Reason     string
	Cause      error
}

// NewRetrievalUnavailableError is used when there is no capability to retrieve the locator.
func NewRetrievalUnavailableError(locator, reason string) *RetrievalError {
	return &RetrievalError{Kind: ErrRetrievalUnavailable, Locator: locator, Reason: reason}
}

// NewRetrievalFailedError is used when a retrieval ends in a non-success outcome. statusCode is 0
// when there was no response.
func NewRetrievalFailedError(locator string, statusCode int, reason string, cause error) *RetrievalError {
	return &RetrievalError{Kind: ErrRetrievalFailed, Locator: locator, StatusCode: statusCode, Reason: reason, Cause: cause}
}

func (e *RetrievalError) Error() string {
	msg := fmt.Sprintf("%s: %q", e.Kind, e.Locator)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause to errors.Is and errors.As.
func (e *RetrievalError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}
