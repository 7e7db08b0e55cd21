package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/blogcraft/internal/generation"
)

// MapErrorToStatusCode maps generation errors to HTTP status codes. Failures
// of the remote service surface as 502 so the UI can tell them apart from its
// own bad input.
func MapErrorToStatusCode(err error) int {
	switch generation.KindOf(err) {
	case generation.KindInvalidInput:
		return http.StatusBadRequest
	case generation.KindConfiguration:
		return http.StatusServiceUnavailable
	case generation.KindCancelled:
		return http.StatusRequestTimeout
	case generation.KindNetwork,
		generation.KindServer,
		generation.KindForbiddenOrCORS,
		generation.KindHTTPStatus,
		generation.KindMalformedResponse,
		generation.KindEmptyContent:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message shown to the end user. Generation
// errors are written for end users and pass through; anything else is hidden.
func GetSafeErrorMessage(err error) string {
	var genErr *generation.Error
	if errors.As(err, &genErr) {
		return genErr.Error()
	}
	return "An unexpected error occurred"
}
