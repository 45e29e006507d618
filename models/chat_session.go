package models

import "time"

// Stage is the current step of the booking script. It is stored explicitly
// on the session and updated by the same transition that mutates the
// transcript, so the two can never drift apart.
type Stage int

const (
	StageAwaitIntent Stage = iota
	StageAwaitPurpose
	StageAwaitDate
	StageAwaitStartTime
	StageAwaitEndTime
	StageAwaitConfirmation
	StageIdle
)

func (s Stage) String() string {
	switch s {
	case StageAwaitIntent:
		return "awaitIntent"
	case StageAwaitPurpose:
		return "awaitPurpose"
	case StageAwaitDate:
		return "awaitDate"
	case StageAwaitStartTime:
		return "awaitStartTime"
	case StageAwaitEndTime:
		return "awaitEndTime"
	case StageAwaitConfirmation:
		return "awaitConfirmation"
	case StageIdle:
		return "idle"
	}
	return "unknown"
}

// PendingBooking collects the answers given so far, one field per stage.
// It is filled in incrementally as the script advances and cleared on reset.
type PendingBooking struct {
	Purpose string `json:"purpose,omitempty"`
	Date    string `json:"date,omitempty"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
}

// ChatSession holds the full conversational state between turns.
type ChatSession struct {
	SessionID  string         `json:"sessionId"`
	Stage      Stage          `json:"stage"`
	Transcript Transcript     `json:"transcript"`
	Pending    PendingBooking `json:"pending"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}
