package parsing

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jonathan/resume-docgen/internal/schemas"
	"github.com/jonathan/resume-docgen/internal/types"
)

// ParseResume validates raw JSON against the resume schema and decodes it
// into a typed record. Every failure is a *ValidationError.
func ParseResume(raw []byte) (*types.ResumeRecord, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, &ValidationError{Message: "no resume JSON provided"}
	}

	if !json.Valid(trimmed) {
		var probe any
		cause := json.Unmarshal(trimmed, &probe)
		return nil, &ValidationError{Message: "invalid JSON format", Cause: cause}
	}

	if err := schemas.ValidateResume(string(trimmed)); err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) && len(schemaErr.Errors) > 0 {
			first := schemaErr.Errors[0]
			return nil, &ValidationError{
				Message: first.Message,
				Field:   first.Field,
				Cause:   err,
			}
		}
		return nil, &ValidationError{Message: "resume does not match schema", Cause: err}
	}

	var record types.ResumeRecord
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return nil, &ValidationError{Message: "failed to decode resume", Cause: err}
	}

	record.Name = strings.TrimSpace(record.Name)
	record.Title = strings.TrimSpace(record.Title)
	if record.Name == "" {
		return nil, &ValidationError{Message: "name is required", Field: "name"}
	}

	return &record, nil
}

// ParseResumeFile reads a resume JSON file and parses it.
func ParseResumeFile(path string) (*types.ResumeRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}
	return ParseResume(raw)
}

// PeekTitle returns the trimmed top-level title without requiring the rest of
// the document to be valid. It returns "" when no string title is present.
func PeekTitle(raw []byte) string {
	result := gjson.GetBytes(raw, "title")
	if result.Type != gjson.String {
		return ""
	}
	return strings.TrimSpace(result.String())
}
