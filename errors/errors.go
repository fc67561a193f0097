// Package errors defines the failure kinds reported by drivemirror.
// Callers test for them with errors.Is; the underlying cause stays reachable as well.
package errors

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

var (
	ErrInvalidPath     = errors.New("invalid path")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAPIError        = errors.New("api error")
	ErrIOError         = errors.New("io error")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrNotFolder       = errors.New("not a folder")
	ErrNotReadable     = errors.New("not readable")
)

// Reasons the Drive API gives when an item has no binary content to download.
var notDownloadableReasons = map[string]bool{
	"fileNotDownloadable":       true,
	"cannotDownloadAbusiveFile": true,
}

// kindError attaches one or more kinds and a message to a cause.
type kindError struct {
	kinds []error
	msg   string
	cause error
}

var _ error = (*kindError)(nil)

// NewAPIError wraps a failure of a remote provider call.
// A *googleapi.Error cause is classified further: 404 also matches ErrNotFound,
// and a 403 for content that cannot be downloaded also matches ErrNotReadable.
func NewAPIError(msg string, cause error) error {
	kinds := []error{ErrAPIError}
	if kind := classifyAPIError(cause); kind != nil {
		kinds = append([]error{kind}, kinds...)
	}
	return &kindError{kinds: kinds, msg: msg, cause: cause}
}

// NewIOError wraps a failure reading or writing the local filesystem or a content stream.
func NewIOError(msg string, cause error) error {
	return &kindError{kinds: []error{ErrIOError}, msg: msg, cause: cause}
}

func classifyAPIError(cause error) error {
	var gErr *googleapi.Error
	if !errors.As(cause, &gErr) {
		return nil
	}
	switch gErr.Code {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusForbidden:
		for _, item := range gErr.Errors {
			if notDownloadableReasons[item.Reason] {
				return ErrNotReadable
			}
		}
	}
	return nil
}

func (err *kindError) Error() string {
	if err == nil {
		return "(*kindError)(nil)"
	}
	parts := make([]string, 0, len(err.kinds)+2)
	for _, kind := range err.kinds {
		parts = append(parts, kind.Error())
	}
	parts = append(parts, err.msg)
	if err.cause != nil {
		parts = append(parts, err.cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (err *kindError) Unwrap() []error {
	if err.cause == nil {
		return err.kinds
	}
	return append(append([]error{}, err.kinds...), err.cause)
}
