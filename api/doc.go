// Package api provides the HTTP API layer for the feed reader.
// It uses the Huma framework over a chi router for OpenAPI documentation,
// request validation and a clean handler interface.
//
// # Architecture
//
//   - server.go: Huma API configuration and middleware setup
//   - handlers/: reader page and check handlers
//   - middleware/: request logging with request IDs and per-IP rate limiting
//
// The OpenAPI document is served at /openapi.json and the interactive docs at /docs.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:    logger,
//	    RateLimit: 20,
//	})
//
//	handlers.NewReaderHandler(page, checks, 5*time.Second).RegisterRoutes(humaAPI)
//
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// Errors use the RFC 7807 problem format:
//
//	{
//	    "status": 504,
//	    "title": "Gateway Timeout",
//	    "detail": "feed load did not complete in time: context deadline exceeded"
//	}
//
// A load that never signals completion maps to 504, an unknown feed ID to 404
// and a failing feed host to 502 or 503.
package api
