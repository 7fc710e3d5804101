// ABOUTME: Custom error types for the feed reader core
// ABOUTME: Provides structured errors for page loads, validation and API responses

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyCompleted is returned when a completion signal fires a second time
	ErrAlreadyCompleted = errors.New("completion already signalled")

	// ErrLoadTimeout is returned when a load never signals completion in time
	ErrLoadTimeout = errors.New("feed load did not complete in time")
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError represents a failed request to a feed host
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// IsTimeout checks if a load timed out
func IsTimeout(err error) bool {
	return errors.Is(err, ErrLoadTimeout)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
