package utils

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var idSeq uint64

// GenID generates a unique message ID from the current UTC nanosecond
// timestamp and an atomic sequence number. The sequence keeps IDs distinct
// when several messages are appended within the same tick, e.g. a user
// message and the AI reply that immediately follows it.
// The format is "msg-<timestamp>-<seq>".
func GenID() string {
	n := time.Now().UTC().UnixNano()
	s := atomic.AddUint64(&idSeq, 1)
	return fmt.Sprintf("msg-%d-%d", n, s)
}

// GenAccountID generates a fresh account ID. Seeded accounts use fixed
// well-known IDs; registered accounts get "user-<uuid>".
func GenAccountID() string {
	return "user-" + uuid.NewString()
}

// ConversationID derives the conversation ID for a participant. The mapping
// is deterministic so lookup-or-create never duplicates a conversation.
func ConversationID(participantID string) string {
	return "convo-" + participantID
}

// AvatarURL derives a stable avatar reference from a username.
func AvatarURL(username string) string {
	return "https://i.pravatar.cc/150?u=" + username
}
