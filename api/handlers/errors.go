// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	stderrors "errors"

	"feedreader/core/errors"
	"github.com/danielgtaylor/huma/v2"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsTimeout(err) {
		return huma.Error504GatewayTimeout(err.Error())
	}

	if errors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	if errors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	var apiErr *errors.ExternalAPIError
	if stderrors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode >= 500:
			return huma.Error503ServiceUnavailable("Feed host error", err)
		case apiErr.StatusCode == 429:
			return huma.Error429TooManyRequests("Rate limited by feed host")
		case apiErr.StatusCode >= 400:
			return huma.Error502BadGateway("Feed host rejected the request", err)
		default:
			return huma.Error500InternalServerError("Unexpected feed host response", err)
		}
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
