// Package chat owns per-user conversation state: the durable snapshot in
// the key-value store, the pure reaction transition, and the orchestrator
// that turns send/toggle intents into new persisted snapshots.
//
// Every operation works on an immutable snapshot: the input conversation
// slice is never mutated, a new slice is returned and persisted in full.
// Persistence is a last-write-wins overwrite per user; there is exactly one
// writer per user in this design.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rchat/pkg/accounts"
	"rchat/pkg/ai"
	"rchat/pkg/logger"
	"rchat/pkg/models"
	"rchat/pkg/store"
	"rchat/pkg/telemetry"
	"rchat/pkg/utils"
)

const welcomeText = "Hello! I'm your Gemini AI assistant. How can I help you today?"

// Service coordinates conversation state with the AI responder. It holds
// only the session pool; conversation state itself lives in the store and
// in the snapshots passed through each call.
type Service struct {
	sessions *ai.SessionPool
}

func NewService(r ai.Responder) *Service {
	return &Service{sessions: ai.NewSessionPool(r)}
}

// Load returns the user's conversations. A first-time user is seeded with
// one welcome conversation from the AI participant, persisted before
// returning. A corrupted snapshot is treated as absent and reseeded; the
// previous bytes are unrecoverable anyway and the user keeps a working
// client.
func (s *Service) Load(userID string) ([]models.Conversation, error) {
	b, err := store.GetConversations(userID)
	if err != nil {
		if store.IsNotFound(err) {
			return s.seed(userID)
		}
		return nil, err
	}
	var convos []models.Conversation
	if err := json.Unmarshal(b, &convos); err != nil {
		logger.Warn("conversations_corrupted_reseeding", "user_id", userID, "err", err)
		return s.seed(userID)
	}
	return convos, nil
}

// Save persists the full conversation snapshot for a user.
func (s *Service) Save(userID string, convos []models.Conversation) error {
	b, err := json.Marshal(convos)
	if err != nil {
		return fmt.Errorf("failed to marshal conversations: %w", err)
	}
	return store.SaveConversations(userID, b)
}

func (s *Service) seed(userID string) ([]models.Conversation, error) {
	aiAcct := accounts.AIAccount()
	convos := []models.Conversation{{
		ID:          utils.ConversationID(aiAcct.ID),
		Participant: aiAcct,
		Messages: []models.Message{{
			ID:        "msg-gemini-1",
			Text:      welcomeText,
			Timestamp: time.Now().UTC(),
			SenderID:  aiAcct.ID,
		}},
	}}
	if err := s.Save(userID, convos); err != nil {
		return nil, err
	}
	logger.Info("conversations_seeded", "user_id", userID)
	return convos, nil
}

// StartConversation returns the conversation with the given participant,
// creating and persisting an empty one when none exists. The derived id
// makes the call idempotent: repeated calls return the same id and never
// duplicate the conversation.
func (s *Service) StartConversation(userID string, convos []models.Conversation, participant models.Account) ([]models.Conversation, string, error) {
	for _, c := range convos {
		if c.Participant.ID == participant.ID {
			return convos, c.ID, nil
		}
	}
	nc := models.Conversation{
		ID:          utils.ConversationID(participant.ID),
		Participant: participant.Stripped(),
		Messages:    []models.Message{},
	}
	out := make([]models.Conversation, 0, len(convos)+1)
	out = append(out, nc)
	out = append(out, convos...)
	if err := s.Save(userID, out); err != nil {
		return nil, "", err
	}
	logger.Info("conversation_started", "user_id", userID, "conversation", nc.ID)
	return out, nc.ID, nil
}

// SendMessage appends a message to the target conversation and persists the
// snapshot. When the participant is AI-flagged the user message is persisted
// first, then the responder is invoked on the session bound to this
// conversation, and the reply is appended and persisted as a second write.
// A crash between the two writes leaves the user's message saved without a
// reply; it is never duplicated and never lost. The responder absorbs its
// own failures, so the reply append always happens.
func (s *Service) SendMessage(ctx context.Context, userID string, convos []models.Conversation, conversationID, text, senderID string) ([]models.Conversation, error) {
	idx := findConversation(convos, conversationID)
	if idx == -1 {
		logger.Debug("send_message_unknown_conversation", "conversation", conversationID)
		return convos, nil
	}

	msg := models.Message{
		ID:        utils.GenID(),
		Text:      text,
		Timestamp: time.Now().UTC(),
		SenderID:  senderID,
	}
	out := withMessageAppended(convos, idx, msg)
	if err := s.Save(userID, out); err != nil {
		return nil, err
	}
	telemetry.MessagesSent.WithLabelValues("user").Inc()

	participant := out[idx].Participant
	if !participant.IsAI {
		return out, nil
	}

	reply := s.sessions.Respond(ctx, conversationID, text)
	aiMsg := models.Message{
		ID:        utils.GenID(),
		Text:      reply,
		Timestamp: time.Now().UTC(),
		SenderID:  participant.ID,
	}
	out = withMessageAppended(out, idx, aiMsg)
	if err := s.Save(userID, out); err != nil {
		return nil, err
	}
	telemetry.MessagesSent.WithLabelValues("ai").Inc()
	return out, nil
}

// ToggleMessageReaction applies the reaction transition to one message and
// persists the updated snapshot. Unknown conversation or message ids are a
// no-op returning the input unchanged.
func (s *Service) ToggleMessageReaction(userID string, convos []models.Conversation, conversationID, messageID, emoji, reactingUserID string) ([]models.Conversation, error) {
	ci := findConversation(convos, conversationID)
	if ci == -1 {
		return convos, nil
	}
	mi := -1
	for i, m := range convos[ci].Messages {
		if m.ID == messageID {
			mi = i
			break
		}
	}
	if mi == -1 {
		return convos, nil
	}

	out := append([]models.Conversation(nil), convos...)
	msgs := append([]models.Message(nil), out[ci].Messages...)
	msgs[mi] = ToggleReaction(msgs[mi], emoji, reactingUserID)
	out[ci].Messages = msgs
	if err := s.Save(userID, out); err != nil {
		return nil, err
	}
	telemetry.ReactionsToggled.Inc()
	return out, nil
}

func findConversation(convos []models.Conversation, id string) int {
	for i, c := range convos {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// withMessageAppended copies the snapshot with msg appended to the
// conversation at idx.
func withMessageAppended(convos []models.Conversation, idx int, msg models.Message) []models.Conversation {
	out := append([]models.Conversation(nil), convos...)
	msgs := make([]models.Message, 0, len(out[idx].Messages)+1)
	msgs = append(msgs, out[idx].Messages...)
	out[idx].Messages = append(msgs, msg)
	return out
}
