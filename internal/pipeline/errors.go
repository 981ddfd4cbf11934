package pipeline

import "fmt"

// IOError represents a filesystem failure while producing output files
type IOError struct {
	Op    string
	Path  string
	Cause error
}

func (e *IOError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("I/O error: failed to %s %s: %v", e.Op, e.Path, e.Cause)
	}
	return fmt.Sprintf("I/O error: failed to %s %s", e.Op, e.Path)
}

func (e *IOError) Unwrap() error {
	return e.Cause
}
