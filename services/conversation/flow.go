package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"calbot/models"
	"calbot/services/calendar"
)

// EventBooker is the single gateway call the final stage performs.
type EventBooker func(ctx context.Context, req calendar.EventRequest) (*calendar.Confirmation, error)

// NewSession returns the canonical starting state: a single greeting turn
// and the intent stage.
func NewSession(sessionID string) models.ChatSession {
	now := time.Now()
	return models.ChatSession{
		SessionID:  sessionID,
		Stage:      models.StageAwaitIntent,
		Transcript: models.Transcript{}.Append(models.SpeakerBot, msgGreeting),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Advance applies one user turn to the session and returns the next state,
// plus a BookingRecord when the turn completed a booking. Invalid input at
// any stage rolls the user turn back, so the stage after a rejection equals
// the stage before it. Restart keywords reset the session from every stage.
func Advance(ctx context.Context, s models.ChatSession, input string, book EventBooker, timeZone string) (models.ChatSession, *models.BookingRecord) {
	input = strings.TrimSpace(input)
	if input == "" {
		return s, nil
	}

	// Snapshot the transcript so callers holding the previous state never
	// observe in-place mutation from the append/pop sequence below.
	s.Transcript = append(models.Transcript(nil), s.Transcript...)
	s.UpdatedAt = time.Now()

	if isRestart(input) {
		return reset(s, msgRestarted), nil
	}

	s.Transcript = s.Transcript.Append(models.SpeakerUser, input)

	switch s.Stage {
	case models.StageAwaitIntent:
		if !hasBookingIntent(input) {
			return reject(s, msgIntentHelp), nil
		}
		s.Stage = models.StageAwaitPurpose
		s.Transcript = s.Transcript.Append(models.SpeakerBot, msgAskPurpose)

	case models.StageAwaitPurpose:
		// Any non-empty text is a valid event name.
		s.Pending.Purpose = input
		s.Stage = models.StageAwaitDate
		s.Transcript = s.Transcript.Append(models.SpeakerBot, fmt.Sprintf(msgAskDateFmt, input))

	case models.StageAwaitDate:
		if _, _, _, err := parseDate(input); err != nil {
			return reject(s, fmt.Sprintf(msgInvalidDateFmt, err)), nil
		}
		s.Pending.Date = input
		s.Stage = models.StageAwaitStartTime
		s.Transcript = s.Transcript.Append(models.SpeakerBot, msgAskStart)

	case models.StageAwaitStartTime:
		if _, _, err := parseClock(input); err != nil {
			return reject(s, msgInvalidTime), nil
		}
		s.Pending.Start = input
		s.Stage = models.StageAwaitEndTime
		s.Transcript = s.Transcript.Append(models.SpeakerBot, msgAskEnd)

	case models.StageAwaitEndTime:
		return finishBooking(ctx, s, input, book, timeZone)

	case models.StageAwaitConfirmation:
		switch strings.ToLower(input) {
		case "yes":
			return reset(s, msgGreeting), nil
		case "no":
			s.Stage = models.StageIdle
			s.Transcript = s.Transcript.Append(models.SpeakerBot, msgGoodbye)
		default:
			return reject(s, msgYesOrNo), nil
		}

	case models.StageIdle:
		return reject(s, msgEnded), nil
	}

	return s, nil
}

// finishBooking validates the end time against the collected answers and
// performs the gateway call. Every failure here, including a gateway
// failure, rolls the end-time turn back so the user can retry it.
func finishBooking(ctx context.Context, s models.ChatSession, input string, book EventBooker, timeZone string) (models.ChatSession, *models.BookingRecord) {
	start, err := ParseDateTime(s.Pending.Date, s.Pending.Start)
	if err != nil {
		return reject(s, fmt.Sprintf(msgInvalidEndFmt, err)), nil
	}
	end, err := ParseDateTime(s.Pending.Date, input)
	if err != nil {
		return reject(s, fmt.Sprintf(msgInvalidEndFmt, err)), nil
	}
	if !end.After(start) {
		orderErr := &OrderError{Message: orderMsg}
		return reject(s, fmt.Sprintf(msgInvalidEndFmt, orderErr)), nil
	}

	conf, err := book(ctx, calendar.EventRequest{
		Summary:  s.Pending.Purpose,
		Start:    start,
		End:      end,
		TimeZone: timeZone,
	})
	if err != nil {
		return reject(s, fmt.Sprintf(msgGatewayErrFmt, err)), nil
	}

	record := &models.BookingRecord{
		SessionID: s.SessionID,
		Summary:   s.Pending.Purpose,
		Date:      s.Pending.Date,
		StartTime: s.Pending.Start,
		EndTime:   input,
		TimeZone:  timeZone,
		EventID:   conf.EventID,
		CreatedAt: time.Now(),
	}

	s.Pending.End = input
	s.Stage = models.StageAwaitConfirmation
	s.Transcript = s.Transcript.
		Append(models.SpeakerBot, fmt.Sprintf(msgCreatedFmt, s.Pending.Purpose)).
		Append(models.SpeakerBot, msgAskAnother)
	return s, record
}

// reject rolls back the just-appended user turn and answers with an error
// prompt. The stage is left untouched.
func reject(s models.ChatSession, botMsg string) models.ChatSession {
	s.Transcript = s.Transcript.PopLast().Append(models.SpeakerBot, botMsg)
	return s
}

// reset drops all state and starts over from the greeting.
func reset(s models.ChatSession, greeting string) models.ChatSession {
	s.Stage = models.StageAwaitIntent
	s.Pending = models.PendingBooking{}
	s.Transcript = models.Transcript{}.Append(models.SpeakerBot, greeting)
	return s
}

func isRestart(input string) bool {
	lowered := strings.ToLower(input)
	for _, kw := range restartKeywords {
		if lowered == kw {
			return true
		}
	}
	return false
}

func hasBookingIntent(input string) bool {
	lowered := strings.ToLower(input)
	return strings.Contains(lowered, "appointment") || strings.Contains(lowered, "book")
}
