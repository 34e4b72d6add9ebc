package chat

import "rchat/pkg/models"

// ToggleReaction flips userID's reaction with the given emoji on a copy of
// msg and returns it; the input message is never mutated, so callers can
// keep snapshots of prior state. An emoji key whose user set empties is
// removed entirely. Any string is accepted as an emoji key; the picker UI
// constrains input, the engine stays permissive.
func ToggleReaction(msg models.Message, emoji, userID string) models.Message {
	out := msg
	out.Reactions = nil
	for k, ids := range msg.Reactions {
		if out.Reactions == nil {
			out.Reactions = make(map[string][]string, len(msg.Reactions))
		}
		out.Reactions[k] = append([]string(nil), ids...)
	}

	ids := out.Reactions[emoji]
	at := -1
	for i, id := range ids {
		if id == userID {
			at = i
			break
		}
	}
	if at >= 0 {
		ids = append(ids[:at:at], ids[at+1:]...)
		if len(ids) > 0 {
			out.Reactions[emoji] = ids
		} else {
			delete(out.Reactions, emoji)
			if len(out.Reactions) == 0 {
				out.Reactions = nil
			}
		}
		return out
	}
	if out.Reactions == nil {
		out.Reactions = make(map[string][]string, 1)
	}
	out.Reactions[emoji] = append(ids, userID)
	return out
}
