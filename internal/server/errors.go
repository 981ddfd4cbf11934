package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-docgen/internal/conversion"
	"github.com/jonathan/resume-docgen/internal/parsing"
	"github.com/jonathan/resume-docgen/internal/pipeline"
	"github.com/jonathan/resume-docgen/internal/rendering"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		reqErr    *ErrValidation
		recordErr *parsing.ValidationError
		renderErr *rendering.RenderError
		convErr   *conversion.ConversionError
		ioErr     *pipeline.IOError
		tooLarge  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &reqErr), errors.As(err, &recordErr), errors.As(err, &renderErr):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &convErr):
		return http.StatusBadGateway
	case errors.As(err, &ioErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
