package cache

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrPageNotFound is returned by FindPages when no source document matches
// the requested name.
var ErrPageNotFound = errors.New("page not found")

// CacheError indicates the cache directory cannot be located, is invalid,
// or cannot be cleared. It is fatal for the operation in progress.
type CacheError struct {
	// Msg describes what failed.
	Msg string

	// Err is the underlying cause, may be nil.
	Err error
}

// Error returns the message, including the cause when present.
func (e *CacheError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As
// to examine the error chain.
func (e *CacheError) Unwrap() error {
	return e.Err
}

func newCacheErrorf(format string, args ...any) *CacheError {
	return &CacheError{Msg: fmt.Sprintf(format, args...)}
}

func wrapCacheError(err error, msg string) *CacheError {
	return &CacheError{Msg: msg, Err: err}
}

// UpdateError indicates the network fetch or archive extraction failed.
// It is fatal for Update only; lookups against whatever cache state remains
// on disk keep working.
type UpdateError struct {
	// Msg describes what failed.
	Msg string

	// Err is the underlying cause, may be nil.
	Err error
}

// Error returns the message, including the cause when present.
func (e *UpdateError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *UpdateError) Unwrap() error {
	return e.Err
}

func newUpdateErrorf(format string, args ...any) *UpdateError {
	return &UpdateError{Msg: fmt.Sprintf(format, args...)}
}

func wrapUpdateError(err error, msg string) *UpdateError {
	return &UpdateError{Msg: msg, Err: err}
}
