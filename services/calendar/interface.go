package calendar

import (
	"context"

	"calbot/models"
)

// EventRequest describes the single event the conversation flow books.
// Start and End are naive timestamps; TimeZone is applied by the provider.
type EventRequest struct {
	Summary  string
	Start    models.DateTime
	End      models.DateTime
	TimeZone string
}

// Confirmation is returned for a successfully created event.
type Confirmation struct {
	EventID  string
	HTMLLink string
}

// Gateway is the external calendar collaborator. Implementations own
// credential caching and refresh; callers only see typed errors.
type Gateway interface {
	// Authenticate makes sure a usable credential is available, refreshing
	// and re-persisting the cached one when possible. Returns *AuthError
	// when an interactive authorization is required.
	Authenticate(ctx context.Context) error

	// CreateEvent books one event on the configured calendar. Returns
	// *CreationError on failure; an invalid-grant failure additionally
	// discards the cached credential.
	CreateEvent(ctx context.Context, req EventRequest) (*Confirmation, error)
}
