package ai

import (
	"context"
	"time"

	"google.golang.org/genai"

	"rchat/pkg/logger"
	"rchat/pkg/telemetry"
)

// DefaultModel is the fixed model identifier used when none is configured.
const DefaultModel = "gemini-2.5-flash"

const systemInstruction = "You are a friendly and helpful chat assistant."

// Gemini is the Responder implementation backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds a Gemini responder. When apiKey is empty the client
// falls back to the GEMINI_API_KEY / GOOGLE_API_KEY environment variables.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{client: client, model: model}, nil
}

// CreateSession opens a chat with the fixed system instruction. The
// returned session carries the remote turn history.
func (g *Gemini) CreateSession(ctx context.Context) (Session, error) {
	chat, err := g.client.Chats.Create(ctx, g.model, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}, nil)
	if err != nil {
		return nil, err
	}
	return &geminiSession{chat: chat}, nil
}

type geminiSession struct {
	chat *genai.Chat
}

func (s *geminiSession) Respond(ctx context.Context, text string) string {
	start := time.Now()
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: text})
	telemetry.AIRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		telemetry.AIFallbacks.Inc()
		logger.Error("ai_request_failed", "err", err)
		return Fallback
	}
	out := resp.Text()
	if out == "" {
		telemetry.AIFallbacks.Inc()
		logger.Warn("ai_empty_response")
		return Fallback
	}
	return out
}
