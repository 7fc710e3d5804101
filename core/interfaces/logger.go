package interfaces

// Logger defines the interface for logging throughout the application.
// The production implementation wraps logrus; tests capture entries.
//
// Example usage:
//
//	logger.Info("Feed loaded", map[string]interface{}{
//		"feed_id": 0,
//		"entries": 12,
//	})
type Logger interface {
	// Debug logs a debug level message with optional structured fields.
	Debug(msg string, fields map[string]interface{})

	// Info logs an info level message with optional structured fields.
	Info(msg string, fields map[string]interface{})

	// Warn logs a warning level message with optional structured fields.
	Warn(msg string, fields map[string]interface{})

	// Error logs an error level message with optional structured fields.
	Error(msg string, fields map[string]interface{})
}
