package models

// Speaker identifies who produced a turn in the conversation.
type Speaker string

const (
	SpeakerUser Speaker = "user"
	SpeakerBot  Speaker = "bot"
)

// Turn is a single message in a conversation. Immutable once appended.
type Turn struct {
	Speaker Speaker `bson:"speaker" json:"speaker"`
	Text    string  `bson:"text" json:"text"`
}

// Transcript is the ordered list of turns of one conversation.
// The only mutations are appending a turn and removing the last turn.
type Transcript []Turn

// Append returns the transcript with an extra turn at the end.
func (t Transcript) Append(speaker Speaker, text string) Transcript {
	return append(t, Turn{Speaker: speaker, Text: text})
}

// PopLast returns the transcript without its final turn.
// Used to roll back a user turn that failed validation.
func (t Transcript) PopLast() Transcript {
	if len(t) == 0 {
		return t
	}
	return t[:len(t)-1]
}

// UserTurns counts the user turns accumulated since the last reset.
// For the linear booking script this always equals the current stage.
func (t Transcript) UserTurns() int {
	n := 0
	for _, turn := range t {
		if turn.Speaker == SpeakerUser {
			n++
		}
	}
	return n
}

// LastTurn returns the final turn, or a zero Turn for an empty transcript.
func (t Transcript) LastTurn() Turn {
	if len(t) == 0 {
		return Turn{}
	}
	return t[len(t)-1]
}
