package conversation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calbot/models"
	"calbot/services/calendar"
)

const testTimeZone = "Asia/Kolkata"

func okBooker() EventBooker {
	return func(ctx context.Context, req calendar.EventRequest) (*calendar.Confirmation, error) {
		return &calendar.Confirmation{EventID: "evt-1"}, nil
	}
}

func failingBooker(err error) EventBooker {
	return func(ctx context.Context, req calendar.EventRequest) (*calendar.Confirmation, error) {
		return nil, err
	}
}

func recordingBooker(captured *calendar.EventRequest) EventBooker {
	return func(ctx context.Context, req calendar.EventRequest) (*calendar.Confirmation, error) {
		*captured = req
		return &calendar.Confirmation{EventID: "evt-1"}, nil
	}
}

// replay runs a sequence of user turns through Advance, asserting after
// every turn that the explicit stage still equals the derived one (count of
// user turns), the invariant the stage counter replaced.
func replay(t *testing.T, inputs []string, book EventBooker) models.ChatSession {
	t.Helper()
	s := NewSession("sess-1")
	for _, input := range inputs {
		s, _ = Advance(context.Background(), s, input, book, testTimeZone)
		require.Equal(t, int(s.Stage), s.Transcript.UserTurns(),
			"stage drifted from user-turn count after input %q", input)
	}
	return s
}

func TestFullBookingScenario(t *testing.T) {
	var captured calendar.EventRequest
	s := replay(t, []string{
		"book an appointment",
		"Dentist",
		"15-06-2024",
		"02:00 PM",
		"03:00 PM",
	}, recordingBooker(&captured))

	require.Equal(t, models.StageAwaitConfirmation, s.Stage)

	turns := s.Transcript
	require.GreaterOrEqual(t, len(turns), 2)
	assert.Contains(t, turns[len(turns)-2].Text, "created successfully")
	assert.Contains(t, turns[len(turns)-1].Text, "book any other")

	assert.Equal(t, "Dentist", captured.Summary)
	assert.Equal(t, "2024-06-15T14:00:00", captured.Start.ISO8601())
	assert.Equal(t, "2024-06-15T15:00:00", captured.End.ISO8601())
	assert.Equal(t, testTimeZone, captured.TimeZone)

	assert.Equal(t, models.PendingBooking{
		Purpose: "Dentist",
		Date:    "15-06-2024",
		Start:   "02:00 PM",
		End:     "03:00 PM",
	}, s.Pending)
}

func TestBookingRecordReturnedOnSuccess(t *testing.T) {
	s := NewSession("sess-1")
	for _, input := range []string{"book an appointment", "Dentist", "15-06-2024", "02:00 PM"} {
		s, _ = Advance(context.Background(), s, input, okBooker(), testTimeZone)
	}

	s, record := Advance(context.Background(), s, "03:00 PM", okBooker(), testTimeZone)
	require.NotNil(t, record)
	assert.Equal(t, "sess-1", record.SessionID)
	assert.Equal(t, "Dentist", record.Summary)
	assert.Equal(t, "15-06-2024", record.Date)
	assert.Equal(t, "02:00 PM", record.StartTime)
	assert.Equal(t, "03:00 PM", record.EndTime)
	assert.Equal(t, "evt-1", record.EventID)
	assert.Equal(t, testTimeZone, record.TimeZone)
}

func TestRestartResetsFromEveryStage(t *testing.T) {
	prefixes := [][]string{
		{},
		{"book an appointment"},
		{"book an appointment", "Dentist"},
		{"book an appointment", "Dentist", "15-06-2024"},
		{"book an appointment", "Dentist", "15-06-2024", "02:00 PM"},
		{"book an appointment", "Dentist", "15-06-2024", "02:00 PM", "03:00 PM"},
		{"book an appointment", "Dentist", "15-06-2024", "02:00 PM", "03:00 PM", "no"},
	}
	keywords := []string{"restart", "Start Over", "RESET"}

	for _, prefix := range prefixes {
		for _, kw := range keywords {
			t.Run(fmt.Sprintf("%d turns/%s", len(prefix), kw), func(t *testing.T) {
				s := replay(t, prefix, okBooker())
				s, record := Advance(context.Background(), s, kw, okBooker(), testTimeZone)

				assert.Nil(t, record)
				assert.Equal(t, models.StageAwaitIntent, s.Stage)
				assert.Equal(t, models.PendingBooking{}, s.Pending)
				require.Len(t, s.Transcript, 1)
				assert.Equal(t, models.SpeakerBot, s.Transcript[0].Speaker)
				assert.Equal(t, "Conversation restarted. Hi! How may I assist you?", s.Transcript[0].Text)
			})
		}
	}
}

func TestRejectionRollsBackStage(t *testing.T) {
	tests := []struct {
		name      string
		prefix    []string
		input     string
		wantStage models.Stage
		wantInMsg string
	}{
		{
			name:      "no booking intent",
			prefix:    nil,
			input:     "what's the weather",
			wantStage: models.StageAwaitIntent,
			wantInMsg: "Please say 'Book an appointment' to start",
		},
		{
			name:      "wrong date delimiter",
			prefix:    []string{"book an appointment", "Dentist"},
			input:     "15/06/2024",
			wantStage: models.StageAwaitDate,
			wantInMsg: "Invalid date format",
		},
		{
			name:      "non-numeric date",
			prefix:    []string{"book an appointment", "Dentist"},
			input:     "next tuesday",
			wantStage: models.StageAwaitDate,
			wantInMsg: "DD-MM-YYYY",
		},
		{
			name:      "24-hour start time",
			prefix:    []string{"book an appointment", "Dentist", "15-06-2024"},
			input:     "14:30",
			wantStage: models.StageAwaitStartTime,
			wantInMsg: "Invalid time format",
		},
		{
			name:      "malformed end time",
			prefix:    []string{"book an appointment", "Dentist", "15-06-2024", "02:30 PM"},
			input:     "half past three",
			wantStage: models.StageAwaitEndTime,
			wantInMsg: "Invalid time",
		},
		{
			name:      "end before start",
			prefix:    []string{"book an appointment", "Dentist", "15-06-2024", "02:30 PM"},
			input:     "01:00 PM",
			wantStage: models.StageAwaitEndTime,
			wantInMsg: "End time must be after start time",
		},
		{
			name:      "end equal to start",
			prefix:    []string{"book an appointment", "Dentist", "15-06-2024", "02:30 PM"},
			input:     "02:30 PM",
			wantStage: models.StageAwaitEndTime,
			wantInMsg: "End time must be after start time",
		},
		{
			name:      "confirmation neither yes nor no",
			prefix:    []string{"book an appointment", "Dentist", "15-06-2024", "02:00 PM", "03:00 PM"},
			input:     "maybe",
			wantStage: models.StageAwaitConfirmation,
			wantInMsg: "Please answer with 'yes' or 'no'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := replay(t, tt.prefix, okBooker())
			beforeUsers := before.Transcript.UserTurns()

			after, record := Advance(context.Background(), before, tt.input, okBooker(), testTimeZone)

			assert.Nil(t, record)
			assert.Equal(t, tt.wantStage, after.Stage)
			assert.Equal(t, beforeUsers, after.Transcript.UserTurns(), "rejected turn must be rolled back")
			last := after.Transcript.LastTurn()
			assert.Equal(t, models.SpeakerBot, last.Speaker)
			assert.Contains(t, last.Text, tt.wantInMsg)
		})
	}
}

// An impossible but well-formed date passes the date stage; the provider is
// the one to reject it later.
func TestUnvalidatedCalendarDateAccepted(t *testing.T) {
	var captured calendar.EventRequest
	s := replay(t, []string{
		"book an appointment",
		"Dentist",
		"31-02-2024",
		"02:00 PM",
		"03:00 PM",
	}, recordingBooker(&captured))

	assert.Equal(t, models.StageAwaitConfirmation, s.Stage)
	assert.Equal(t, "2024-02-31T14:00:00", captured.Start.ISO8601())
}

func TestGatewayFailureRollsBackEndTimeTurn(t *testing.T) {
	gatewayErr := errors.New("googleapi: Error 500: backend unavailable")
	before := replay(t, []string{"book an appointment", "Dentist", "15-06-2024", "02:00 PM"}, okBooker())

	after, record := Advance(context.Background(), before, "03:00 PM", failingBooker(gatewayErr), testTimeZone)

	assert.Nil(t, record)
	assert.Equal(t, models.StageAwaitEndTime, after.Stage)
	assert.Equal(t, before.Transcript.UserTurns(), after.Transcript.UserTurns())
	last := after.Transcript.LastTurn()
	assert.Equal(t, models.SpeakerBot, last.Speaker)
	assert.Contains(t, last.Text, "backend unavailable")
	assert.Empty(t, after.Pending.End)

	// A corrected retry still goes through.
	retried, retriedRecord := Advance(context.Background(), after, "03:00 PM", okBooker(), testTimeZone)
	require.NotNil(t, retriedRecord)
	assert.Equal(t, models.StageAwaitConfirmation, retried.Stage)
}

func TestConfirmationYesStartsOver(t *testing.T) {
	s := replay(t, []string{"book an appointment", "Dentist", "15-06-2024", "02:00 PM", "03:00 PM"}, okBooker())

	s, record := Advance(context.Background(), s, "YES", okBooker(), testTimeZone)
	assert.Nil(t, record)
	assert.Equal(t, models.StageAwaitIntent, s.Stage)
	require.Len(t, s.Transcript, 1)
	assert.Equal(t, "Hi! How may I assist you?", s.Transcript[0].Text)
	assert.Equal(t, models.PendingBooking{}, s.Pending)
}

func TestConfirmationNoEndsConversation(t *testing.T) {
	s := replay(t, []string{"book an appointment", "Dentist", "15-06-2024", "02:00 PM", "03:00 PM", "no"}, okBooker())

	require.Equal(t, models.StageIdle, s.Stage)
	assert.Contains(t, s.Transcript.LastTurn().Text, "Thank you")

	// Idle answers further input without progressing.
	after, record := Advance(context.Background(), s, "book an appointment", okBooker(), testTimeZone)
	assert.Nil(t, record)
	assert.Equal(t, models.StageIdle, after.Stage)
	assert.Equal(t, s.Transcript.UserTurns(), after.Transcript.UserTurns())
	assert.Contains(t, after.Transcript.LastTurn().Text, "restart")

	// But a restart keyword still resets.
	reset, _ := Advance(context.Background(), after, "restart", okBooker(), testTimeZone)
	assert.Equal(t, models.StageAwaitIntent, reset.Stage)
	require.Len(t, reset.Transcript, 1)
}

func TestBlankInputIsNoop(t *testing.T) {
	s := replay(t, []string{"book an appointment"}, okBooker())

	after, record := Advance(context.Background(), s, "   ", okBooker(), testTimeZone)
	assert.Nil(t, record)
	assert.Equal(t, s.Stage, after.Stage)
	assert.Equal(t, len(s.Transcript), len(after.Transcript))
}

func TestAdvanceDoesNotMutateCallerState(t *testing.T) {
	s := replay(t, []string{"book an appointment", "Dentist"}, okBooker())
	turnCount := len(s.Transcript)
	lastBefore := s.Transcript.LastTurn()

	// A rejection pops and re-appends; the caller's snapshot must survive.
	_, _ = Advance(context.Background(), s, "not-a-date", okBooker(), testTimeZone)

	assert.Equal(t, turnCount, len(s.Transcript))
	assert.Equal(t, lastBefore, s.Transcript.LastTurn())
}

func TestIntentKeywordMatching(t *testing.T) {
	accepted := []string{"book an appointment", "I'd like to BOOK something", "appointment please", "Booking"}
	for _, input := range accepted {
		s := NewSession("sess-1")
		s, _ = Advance(context.Background(), s, input, okBooker(), testTimeZone)
		assert.Equal(t, models.StageAwaitPurpose, s.Stage, "input %q should be accepted", input)
	}

	rejected := []string{"hello", "cancel everything", "appointmen"}
	for _, input := range rejected {
		s := NewSession("sess-1")
		s, _ = Advance(context.Background(), s, input, okBooker(), testTimeZone)
		assert.Equal(t, models.StageAwaitIntent, s.Stage, "input %q should be rejected", input)
	}
}
