// Package errors provides the structured error taxonomy used across
// streamcache: InvalidArgument, NotFound, Corrupted, and RootMissing.
package errors

import (
	"fmt"
	"time"
)

// Code identifies the category of failure a CacheError represents.
type Code string

const (
	// CodeInvalidArgument marks a validation failure: a missing policy, an
	// unreadable source stream, a non-positive capacity or TTL, a negative
	// poll interval, or a stream that exceeds the configured quota. Ingest
	// also reports scratch-file I/O failures with this code. Keys are not
	// validated: a zero-value key is treated like any other key.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	// CodeNotFound marks a Get of a key that is not present in the index.
	CodeNotFound Code = "NOT_FOUND"
	// CodeCorrupted marks an indexed key whose content file is missing or
	// unreadable at retrieval time.
	CodeCorrupted Code = "CORRUPTED"
	// CodeRootMissing marks a configured root directory that does not exist
	// at construction time.
	CodeRootMissing Code = "ROOT_MISSING"
)

// CacheError is a structured error carrying the failing component, an
// operator-facing message, and (optionally) the error it wraps.
type CacheError struct {
	Code      Code
	Component string
	Message   string
	Cause     error
	Timestamp time.Time
}

// Error implements the error interface.
func (e *CacheError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Component, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any, for errors.Is/errors.As.
func (e *CacheError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *CacheError with the same Code — this lets
// callers write errors.Is(err, errors.NotFound("", "")) against any error
// built with the same code rather than comparing messages.
func (e *CacheError) Is(target error) bool {
	other, ok := target.(*CacheError)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

func newError(code Code, component, message string, cause error) *CacheError {
	return &CacheError{
		Code:      code,
		Component: component,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// InvalidArgument builds a CodeInvalidArgument error.
func InvalidArgument(component, message string) *CacheError {
	return newError(CodeInvalidArgument, component, message, nil)
}

// NotFound builds a CodeNotFound error.
func NotFound(component, message string) *CacheError {
	return newError(CodeNotFound, component, message, nil)
}

// Corrupted builds a CodeCorrupted error, optionally wrapping the
// underlying filesystem error that revealed the corruption.
func Corrupted(component, message string, cause error) *CacheError {
	return newError(CodeCorrupted, component, message, cause)
}

// RootMissing builds a CodeRootMissing error.
func RootMissing(component, message string) *CacheError {
	return newError(CodeRootMissing, component, message, nil)
}

// CodeOf returns the Code of err if it is (or wraps) a *CacheError, and ok is
// false otherwise.
func CodeOf(err error) (code Code, ok bool) {
	for err != nil {
		if ce, isCacheErr := err.(*CacheError); isCacheErr {
			return ce.Code, true
		}
		u, canUnwrap := err.(interface{ Unwrap() error })
		if !canUnwrap {
			break
		}
		err = u.Unwrap()
	}
	return "", false
}
