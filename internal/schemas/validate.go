// Package schemas provides JSON Schema validation for resume records and keyword files.
package schemas

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchema string

//go:embed bold_keywords.schema.json
var boldKeywordsSchema string

// ResumeSchema returns the embedded resume record schema.
func ResumeSchema() string { return resumeSchema }

// BoldKeywordsSchema returns the embedded bold keyword file schema.
func BoldKeywordsSchema() string { return boldKeywordsSchema }

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateResume validates raw resume JSON against the embedded resume schema.
func ValidateResume(jsonContent string) error {
	return ValidateJSONString(resumeSchema, jsonContent)
}

// ValidateBoldKeywords validates a bold keyword file against the embedded schema.
func ValidateBoldKeywords(jsonContent string) error {
	return ValidateJSONString(boldKeywordsSchema, jsonContent)
}

// ValidateAgainstSchemaFile checks raw JSON against a schema on disk, on top
// of the embedded rules. The schema is loaded by file URL so that relative
// $ref entries resolve next to it.
func ValidateAgainstSchemaFile(schemaPath string, jsonContent []byte) error {
	abs, err := filepath.Abs(schemaPath)
	if err != nil {
		return &SchemaLoadError{Path: schemaPath, Message: "failed to resolve schema path", Cause: err}
	}
	if _, err := os.Stat(abs); err != nil {
		return &SchemaLoadError{Path: abs, Message: "schema file not found", Cause: err}
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(abs)))
	if err != nil {
		return &SchemaLoadError{Path: abs, Message: "invalid schema", Cause: err}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(jsonContent))
	if err != nil {
		return &SchemaLoadError{Path: abs, Message: "document could not be checked", Cause: err}
	}
	return toValidationError(result)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	return toValidationError(result)
}

func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
