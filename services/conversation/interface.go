package conversation

import (
	"context"

	bookingRepo "calbot/database/repository/booking"
	"calbot/models"
	"calbot/services/calendar"

	"go.uber.org/zap"
)

// Service drives one conversation per session id on top of a SessionStore.
type Service interface {
	StartSession(ctx context.Context) (*models.ChatSession, error)
	HandleTurn(ctx context.Context, sessionID, input string) (*models.ChatSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.ChatSession, error)
	EndSession(ctx context.Context, sessionID string) error
}

// DefaultService implements Service. The state machine itself lives in
// Advance; this layer owns session storage, the gateway binding, and the
// booking-history trail.
type DefaultService struct {
	Store    SessionStore
	Gateway  calendar.Gateway
	Bookings bookingRepo.Repository
	TimeZone string
	Logger   *zap.Logger
}
