// Package conversion turns a .docx file into a PDF by trying an ordered chain
// of strategies until one of them leaves the expected PDF on disk.
package conversion

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	// ErrUnavailable means the strategy cannot run in this environment.
	ErrUnavailable = errors.New("strategy unavailable")
	// ErrExecutableNotFound means the office executable could not be located.
	ErrExecutableNotFound = fmt.Errorf("office executable not found: %w", exec.ErrNotFound)
	// ErrTimeout means the external process exceeded its time bound.
	ErrTimeout = errors.New("conversion timed out")
	// ErrOutputMissing means the strategy reported success but no PDF exists.
	ErrOutputMissing = errors.New("conversion reported success but produced no PDF")
)

// CommandError represents a failed external process
type CommandError struct {
	Command string
	Stderr  string
	Cause   error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s failed", e.Command)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Stderr != "" {
		msg = fmt.Sprintf("%s (stderr: %s)", msg, e.Stderr)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Cause
}

// ConversionError is returned when every strategy has been tried without success
type ConversionError struct {
	Attempts []Attempt
}

func (e *ConversionError) Error() string {
	if len(e.Attempts) == 0 {
		return "PDF conversion failed: no conversion strategies configured"
	}
	reasons := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		reasons = append(reasons, fmt.Sprintf("%s: %s", a.Strategy, a.Outcome()))
	}
	return fmt.Sprintf("PDF conversion failed after %d strategies (%s)", len(e.Attempts), strings.Join(reasons, "; "))
}

// Unwrap exposes every attempt error so callers can match sentinels with errors.Is.
func (e *ConversionError) Unwrap() []error {
	var errs []error
	for _, a := range e.Attempts {
		if a.Err != nil {
			errs = append(errs, a.Err)
		}
	}
	return errs
}
