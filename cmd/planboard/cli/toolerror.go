// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies a startup failure so main can pick an exit
// code without parsing message text.
type ErrorCategory string

const (
	// CategoryValidation covers bad flags and bad configuration. The
	// operator should fix the input and rerun.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound covers missing files: config, users, seed.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden covers rejected credentials.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryTransient covers a storage backend that could not be
	// reached. Rerunning may succeed.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal covers everything else.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error. Hint, when set, is a one-line
// suggestion printed after the message.
type ToolError struct {
	Category ErrorCategory
	Err      error
	Hint     string
}

// Error returns the underlying message followed by the hint, if any.
func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n  hint: " + e.Hint
}

func (e *ToolError) Unwrap() error { return e.Err }

// WithHint sets the hint and returns the receiver, for chaining at the
// construction site.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// ExitCode maps the category to the process exit status.
func (e *ToolError) ExitCode() int {
	switch e.Category {
	case CategoryValidation:
		return 2
	case CategoryNotFound:
		return 3
	case CategoryForbidden:
		return 4
	case CategoryTransient:
		return 5
	default:
		return 1
	}
}

// Validation creates a validation error.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Forbidden creates a forbidden error.
func Forbidden(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryForbidden, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error.
func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
