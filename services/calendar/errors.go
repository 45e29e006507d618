package calendar

import (
	"fmt"
	"strings"
)

// ConfigError means the OAuth client configuration is missing or unreadable.
// It is raised once, at gateway construction, and is not recoverable.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("calendar config error (%s): %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// AuthError means no usable credential is available and an interactive
// authorization is required before events can be created.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("calendar authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// CreationError wraps a failed event-creation call. InvalidGrant marks the
// class of failures after which the cached credential must be discarded.
type CreationError struct {
	InvalidGrant bool
	Err          error
}

func (e *CreationError) Error() string {
	msg := fmt.Sprintf("failed to create event: %v", e.Err)
	if e.InvalidGrant {
		msg += " (stored credential discarded, re-authentication required)"
	}
	return msg
}

func (e *CreationError) Unwrap() error { return e.Err }

// isInvalidGrant classifies provider errors that permanently invalidate the
// cached credential.
func isInvalidGrant(err error) bool {
	return err != nil && strings.Contains(err.Error(), "invalid_grant")
}
