package chat

import (
	"sort"

	"rchat/pkg/models"
)

// SortConversations returns the display order: most recent message first.
// Conversations without messages sort last. The order is derived on demand
// and never fed back into the persisted snapshot, whose order is the
// creation order.
func SortConversations(convos []models.Conversation) []models.Conversation {
	out := append([]models.Conversation(nil), convos...)
	sort.SliceStable(out, func(i, j int) bool {
		mi, oki := out[i].LastMessage()
		mj, okj := out[j].LastMessage()
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		return mi.Timestamp.After(mj.Timestamp)
	})
	return out
}
