/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/

// Package errors provides coded errors for esadmctl. Every failure surfaced to
// the operator carries one of a small set of string codes so that callers (and
// the menu loop) can distinguish configuration mistakes, transport failures,
// bad responses, and deliberate aborts without string matching.
package errors

import (
	"errors"
	"fmt"
)

// Error codes as constants
const (
	// ErrCodeConfig marks invalid or missing configuration (environment files,
	// credentials, flags).
	ErrCodeConfig = "CONFIG"

	// ErrCodeRequest marks a failure to build or send an HTTP request.
	ErrCodeRequest = "REQUEST"

	// ErrCodeResponse marks a non-200 status or a body that does not parse.
	ErrCodeResponse = "RESPONSE"

	// ErrCodeNotFound marks a domain-level absence (no snapshot for a policy,
	// unknown data stream). Operations treat it as informational, not fatal.
	ErrCodeNotFound = "NOT_FOUND"

	// ErrCodeAborted marks an operation cancelled by the operator at a
	// confirmation prompt.
	ErrCodeAborted = "ABORTED"

	// ErrCodeTimeout marks a polling deadline that elapsed before completion.
	ErrCodeTimeout = "TIMEOUT"

	// ErrCodeInternal marks a bug or an unexpected state inside the tool.
	ErrCodeInternal = "INTERNAL"
)

// Error is a coded error. Code is one of the ErrCode* constants.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error with a formatted message.
func New(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a coded error wrapping an underlying cause.
func Wrap(code string, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf returns the code of err, or ErrCodeInternal if err carries no code.
func CodeOf(err error) string {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ErrCodeInternal
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code string) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}

// Is delegates to the standard library so callers need only one errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As delegates to the standard library so callers need only one errors import.
func As(err error, target any) bool {
	return errors.As(err, target)
}
