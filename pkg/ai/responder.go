// Package ai adapts a remote text-generation service behind a small
// contract: a session per AI conversation, and a Respond call that never
// fails. Any remote error is absorbed into a fixed fallback reply so the
// orchestrator has no failure branch to handle.
package ai

import (
	"context"
	"sync"

	"rchat/pkg/logger"
)

// Fallback is returned in place of a reply on any remote failure.
const Fallback = "Sorry, I encountered an error. Please try again."

// Session is a stateful dialogue context bound to one AI conversation.
// The remote model retains the turn history for the life of the session.
type Session interface {
	// Respond sends the user turn and returns the reply text, or Fallback.
	Respond(ctx context.Context, text string) string
}

// Responder opens dialogue sessions against the remote service.
type Responder interface {
	CreateSession(ctx context.Context) (Session, error)
}

// Unavailable returns a Responder whose sessions can never be created,
// for processes started without a usable remote client. Every turn routed
// through it yields Fallback.
func Unavailable(err error) Responder {
	return unavailable{err: err}
}

type unavailable struct{ err error }

func (u unavailable) CreateSession(context.Context) (Session, error) {
	return nil, u.err
}

// SessionPool keeps one session per conversation id so remote context
// survives across turns. The orchestrator holds only conversation ids,
// never session handles, keeping conversation state serializable.
type SessionPool struct {
	mu sync.Mutex
	r  Responder
	m  map[string]Session
}

func NewSessionPool(r Responder) *SessionPool {
	return &SessionPool{r: r, m: make(map[string]Session)}
}

// Respond routes a user turn through the session bound to conversationID,
// creating the session on first use. Session creation failures are
// absorbed into Fallback like any other remote failure; a session is only
// retained once successfully created.
func (p *SessionPool) Respond(ctx context.Context, conversationID, text string) string {
	p.mu.Lock()
	s, ok := p.m[conversationID]
	p.mu.Unlock()
	if !ok {
		ns, err := p.r.CreateSession(ctx)
		if err != nil {
			logger.Error("ai_session_create_failed", "conversation", conversationID, "err", err)
			return Fallback
		}
		p.mu.Lock()
		// keep an existing session if a concurrent caller won the race
		if cur, exists := p.m[conversationID]; exists {
			ns = cur
		} else {
			p.m[conversationID] = ns
		}
		p.mu.Unlock()
		s = ns
	}
	return s.Respond(ctx, text)
}
