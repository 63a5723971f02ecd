// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ExitError requests a non-zero exit without printing anything more;
// the caller has already written its own output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitCode returns the status main should exit with for err, and
// whether the error text should be printed. A nil error is 0. Errors
// carrying an ExitCode method (ToolError, ExitError) choose their own
// code; anything else is 1.
func ExitCode(err error) (code int, printMessage bool) {
	if err == nil {
		return 0, false
	}
	var exitError *ExitError
	if errors.As(err, &exitError) {
		return exitError.Code, false
	}
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode(), true
	}
	return 1, true
}
