package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/cv-builder/internal/editor"
	"github.com/jonathan/cv-builder/internal/fetch"
	"github.com/jonathan/cv-builder/internal/generation"
	"github.com/jonathan/cv-builder/internal/ingestion"
	"github.com/jonathan/cv-builder/internal/versions"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrGenerationDisabled is returned by the generative endpoints when no model is configured.
var ErrGenerationDisabled = errors.New("text generation is not configured (set GEMINI_API_KEY)")

// validationError converts a validator failure into an ErrValidation naming the first field.
func validationError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return &ErrValidation{Field: strings.ToLower(fe.Field()), Message: "failed " + fe.Tag()}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		apiErr        *generation.APICallError
		parseErr      *generation.ParseError
		fetchErr      *fetch.Error
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr),
		errors.Is(err, versions.ErrUnknownSection),
		errors.Is(err, editor.ErrUnknownField),
		errors.Is(err, editor.ErrUnsupportedEdit),
		errors.Is(err, generation.ErrEmptyJobDescription),
		errors.Is(err, ingestion.ErrEmptyContent):
		return http.StatusBadRequest
	case errors.Is(err, versions.ErrVersionNotFound),
		errors.Is(err, editor.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, versions.ErrLastVersion),
		errors.Is(err, generation.ErrInProgress):
		return http.StatusConflict
	case errors.Is(err, ErrGenerationDisabled):
		return http.StatusServiceUnavailable
	case errors.As(err, &apiErr),
		errors.As(err, &parseErr),
		errors.As(err, &fetchErr),
		errors.Is(err, ingestion.ErrHTTPRequestFailed),
		errors.Is(err, ingestion.ErrContentExtractionFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
