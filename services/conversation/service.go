package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"calbot/models"
)

// StartSession creates a fresh session with the greeting transcript,
// assigns it a unique id, and stores it.
func (s *DefaultService) StartSession(ctx context.Context) (*models.ChatSession, error) {
	session := NewSession(uuid.New().String())
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to start chat session: %w", err)
	}
	s.Logger.Info("chat session started", zap.String("sessionId", session.SessionID))
	return &session, nil
}

// HandleTurn runs one user turn through the state machine and persists the
// resulting state. Blank input is a no-op at this boundary: the stored
// session is returned unchanged.
func (s *DefaultService) HandleTurn(ctx context.Context, sessionID, input string) (*models.ChatSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input) == "" {
		return session, nil
	}

	next, record := Advance(ctx, *session, input, s.Gateway.CreateEvent, s.TimeZone)

	if err := s.Store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save chat session: %w", err)
	}

	if record != nil {
		s.Logger.Info("appointment booked",
			zap.String("sessionId", sessionID),
			zap.String("summary", record.Summary),
			zap.String("eventId", record.EventID))
		if s.Bookings != nil {
			// History is a trail, not part of the booking itself; a
			// write failure must not fail the turn.
			if _, err := s.Bookings.Create(ctx, *record); err != nil {
				s.Logger.Error("failed to record booking history", zap.Error(err))
			}
		}
	}

	return &next, nil
}

// GetSession returns the stored state for a session id.
func (s *DefaultService) GetSession(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	return s.Store.Get(ctx, sessionID)
}

// EndSession drops the session from the store.
func (s *DefaultService) EndSession(ctx context.Context, sessionID string) error {
	if err := s.Store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to end chat session: %w", err)
	}
	s.Logger.Info("chat session ended", zap.String("sessionId", sessionID))
	return nil
}
