package ai

import (
	"context"
	"errors"
	"testing"
)

type fakeResponder struct {
	created int
	failing bool
}

func (f *fakeResponder) CreateSession(context.Context) (Session, error) {
	if f.failing {
		return nil, errors.New("no remote client")
	}
	f.created++
	return &fakeSession{id: f.created}, nil
}

type fakeSession struct {
	id    int
	turns int
}

func (s *fakeSession) Respond(_ context.Context, text string) string {
	s.turns++
	return text + "!"
}

func TestSessionPoolReusesSessionPerConversation(t *testing.T) {
	r := &fakeResponder{}
	p := NewSessionPool(r)
	ctx := context.Background()

	if got := p.Respond(ctx, "convo-a", "one"); got != "one!" {
		t.Fatalf("unexpected reply: %s", got)
	}
	if got := p.Respond(ctx, "convo-a", "two"); got != "two!" {
		t.Fatalf("unexpected reply: %s", got)
	}
	if r.created != 1 {
		t.Fatalf("expected one session for one conversation; got %d", r.created)
	}

	_ = p.Respond(ctx, "convo-b", "three")
	if r.created != 2 {
		t.Fatalf("expected a fresh session per conversation; got %d", r.created)
	}
}

func TestSessionPoolAbsorbsCreationFailure(t *testing.T) {
	p := NewSessionPool(&fakeResponder{failing: true})

	if got := p.Respond(context.Background(), "convo-a", "hello"); got != Fallback {
		t.Fatalf("expected fallback reply; got %q", got)
	}
}

func TestUnavailableResponderAlwaysFallsBack(t *testing.T) {
	p := NewSessionPool(Unavailable(errors.New("api key missing")))

	for i := 0; i < 3; i++ {
		if got := p.Respond(context.Background(), "convo-a", "hi"); got != Fallback {
			t.Fatalf("expected fallback reply; got %q", got)
		}
	}
}
