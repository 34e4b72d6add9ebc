package models

import "time"

// Message is a single timestamped, sender-attributed text entry.
// Timestamp marshals as an RFC3339 string so values round-trip through
// the JSON store without losing wall-clock resolution.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	SenderID  string    `json:"sender_id"`
	// Reactions maps an emoji string to the set of user ids who reacted.
	// A present key implies a non-empty set; the reaction engine removes
	// keys whose set empties.
	Reactions map[string][]string `json:"reactions,omitempty"`
}

// Conversation is the message thread between the owning user and one
// participant account. The participant is denormalized with its password
// stripped; the conversation id is derived from the participant id so
// lookup-or-create is idempotent.
type Conversation struct {
	ID          string    `json:"id"`
	Participant Account   `json:"participant"`
	Messages    []Message `json:"messages"`
}

// LastMessage returns the newest message and true, or a zero message and
// false for an empty conversation.
func (c Conversation) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}
