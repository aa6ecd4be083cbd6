package chat

import "time"

// State is the turn-handler state of a session.
type State string

const (
	// StateIdle accepts the next user submission.
	StateIdle State = "idle"
	// StateAwaitingResponse holds while a reply is being produced.
	StateAwaitingResponse State = "awaiting-response"
	// StateEnded rejects further submissions.
	StateEnded State = "ended"
)

// Session is a snapshot of a conversation and its transcript.
type Session struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId,omitempty"`
	Language  string     `json:"language"`
	State     State      `json:"state"`
	Escalated bool       `json:"escalated"`
	Rating    int        `json:"rating,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
	Messages  []Message  `json:"messages"`
}
