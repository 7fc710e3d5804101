package interfaces

import (
	"context"
	"io"
)

// HTTPClient defines the interface for fetching feed documents.
// Tests swap it for a stub that serves fixture XML.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	Get(ctx context.Context, url string) (Response, error)
}

// Response defines the interface for HTTP responses.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body. The caller closes it.
	Body() io.ReadCloser

	// Header returns the value of the specified header, or "" when absent.
	Header(key string) string
}
