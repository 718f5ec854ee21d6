package document

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes document load errors.
type ErrorCode string

const (
	// CodeNotFound indicates the path does not resolve to a readable file.
	CodeNotFound ErrorCode = "CONFIGURATION_NOT_FOUND"

	// CodeMalformed indicates the file is not a well-formed XML document.
	CodeMalformed ErrorCode = "MALFORMED_CONFIGURATION"
)

// Error represents a failure to load a configuration document.
// Both codes are fatal; callers surface them without retrying.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Path is the path as given by the caller, or the canonical path once
	// it is known.
	Path string

	// Err is the underlying filesystem or parser error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case CodeNotFound:
		return fmt.Sprintf("%s: could not read %q: %v", e.Code, e.Path, e.Err)
	case CodeMalformed:
		return fmt.Sprintf("%s: could not parse %q: %v", e.Code, e.Path, e.Err)
	default:
		return fmt.Sprintf("%s: %q: %v", e.Code, e.Path, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error is a not-found error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == CodeNotFound
	}
	return false
}

// IsMalformed returns true if the error is a malformed-document error.
// Uses errors.As to handle wrapped errors.
func IsMalformed(err error) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == CodeMalformed
	}
	return false
}

func notFound(path string, err error) *Error {
	return &Error{Code: CodeNotFound, Path: path, Err: err}
}

func malformed(path string, err error) *Error {
	return &Error{Code: CodeMalformed, Path: path, Err: err}
}
