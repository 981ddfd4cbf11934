// Package parsing turns raw resume and keyword JSON into typed values.
package parsing

import "fmt"

// ValidationError reports a resume record that cannot be rendered: empty
// input, malformed JSON, a schema violation, or a missing name.
type ValidationError struct {
	Message string
	Field   string
	Cause   error
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s (field %s)", e.Message, e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", msg)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// FileReadError represents an error reading an input file
type FileReadError struct {
	Path  string
	Cause error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("file read error: %s: %v", e.Path, e.Cause)
}

func (e *FileReadError) Unwrap() error {
	return e.Cause
}

// KeywordFileWarning is returned alongside an empty keyword set when the bold
// keyword file exists but cannot be used. It is never fatal.
type KeywordFileWarning struct {
	Path    string
	Message string
	Cause   error
}

func (e *KeywordFileWarning) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("bold keywords file %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("bold keywords file %s: %s", e.Path, e.Message)
}

func (e *KeywordFileWarning) Unwrap() error {
	return e.Cause
}
