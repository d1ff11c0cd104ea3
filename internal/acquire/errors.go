package acquire

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// ErrorKind classifies acquisition failures
type ErrorKind string

const (
	ErrNetwork     ErrorKind = "network"
	ErrStatus      ErrorKind = "status"
	ErrDecode      ErrorKind = "decode"
	ErrUnsupported ErrorKind = "unsupported"
	ErrDisallowed  ErrorKind = "disallowed"
	ErrEmpty       ErrorKind = "empty"
)

// FetchError is returned by every failed acquisition call
type FetchError struct {
	Kind       ErrorKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d", e.Kind, e.URL, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Kind, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Kind, e.URL)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func newFetchError(kind ErrorKind, rawURL string, err error) *FetchError {
	if err != nil {
		err = eris.Wrapf(err, "acquire %s", kind)
	}
	return &FetchError{Kind: kind, URL: rawURL, Err: err}
}

func statusError(rawURL string, code int) *FetchError {
	return &FetchError{Kind: ErrStatus, URL: rawURL, StatusCode: code}
}
