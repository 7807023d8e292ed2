package errors

import "errors"

// Custom application errors
var (
	ErrSourceUnavailable = errors.New("roster source unavailable")       // Roster read or write failed; retryable
	ErrSchedulingFailed  = errors.New("reminder scheduling failed")      // Delivery facility rejected a schedule request
	ErrPersistenceFailed = errors.New("durable store write failed")      // Logged and ignored; memory stays authoritative
	ErrInvalidSettings   = errors.New("invalid notification settings")   // Settings object failed validation
	ErrInvalidPerson     = errors.New("invalid person")                  // Add-person input failed validation
	ErrPersonNotFound    = errors.New("person not found")                // No roster entry with the given identifier
	ErrReminderNotFound  = errors.New("reminder not found")              // No pending reminder with the given id
	ErrUnknownHandle     = errors.New("unknown delivery handle")         // Delivery facility has no alert for the handle
	ErrDatabaseOperation = errors.New("database operation failed")       // Generic database error
	ErrLineAPI           = errors.New("LINE API request failed")         // Generic LINE API error
	ErrChannelDisabled   = errors.New("delivery channel not configured") // Optional channel was not set up
	ErrInternalServer    = errors.New("internal server error")           // Generic internal error
)
