// Package docx serializes rendered documents to Office Open XML word-processing
// packages and reads them back.
package docx

import "fmt"

// PackageError represents a failure building, writing or reading a .docx package
type PackageError struct {
	Message string
	Cause   error
}

func (e *PackageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("docx error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("docx error: %s", e.Message)
}

func (e *PackageError) Unwrap() error {
	return e.Cause
}
