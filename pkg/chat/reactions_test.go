package chat

import (
	"reflect"
	"testing"

	"rchat/pkg/models"
)

func TestToggleReactionAddThenRemoveIsRoundTrip(t *testing.T) {
	msg := models.Message{ID: "m1", Text: "hello", SenderID: "u2"}

	once := ToggleReaction(msg, "👍", "u1")
	if got := once.Reactions["👍"]; len(got) != 1 || got[0] != "u1" {
		t.Fatalf("expected singleton set after first toggle; got %v", once.Reactions)
	}

	twice := ToggleReaction(once, "👍", "u1")
	if !reflect.DeepEqual(twice, msg) {
		t.Fatalf("add+remove should round-trip to the original message; got %+v", twice)
	}
}

func TestToggleReactionRemovesEmptyKeyEntirely(t *testing.T) {
	msg := models.Message{
		ID:        "m1",
		Reactions: map[string][]string{"👍": {"u1", "u2"}},
	}

	first := ToggleReaction(msg, "👍", "u1")
	if got := first.Reactions["👍"]; !reflect.DeepEqual(got, []string{"u2"}) {
		t.Fatalf("expected [u2]; got %v", got)
	}

	second := ToggleReaction(first, "👍", "u2")
	if second.Reactions != nil {
		t.Fatalf("expected reactions map removed once empty; got %v", second.Reactions)
	}
}

func TestToggleReactionDoesNotMutateInput(t *testing.T) {
	msg := models.Message{
		ID:        "m1",
		Reactions: map[string][]string{"🔥": {"u1"}},
	}

	_ = ToggleReaction(msg, "🔥", "u2")
	_ = ToggleReaction(msg, "🔥", "u1")

	if !reflect.DeepEqual(msg.Reactions, map[string][]string{"🔥": {"u1"}}) {
		t.Fatalf("input message mutated: %v", msg.Reactions)
	}
}

func TestToggleReactionKeepsOtherKeys(t *testing.T) {
	msg := models.Message{
		ID:        "m1",
		Reactions: map[string][]string{"👍": {"u1"}, "❤️": {"u2"}},
	}

	out := ToggleReaction(msg, "👍", "u1")
	if _, ok := out.Reactions["👍"]; ok {
		t.Fatalf("expected 👍 removed; got %v", out.Reactions)
	}
	if !reflect.DeepEqual(out.Reactions["❤️"], []string{"u2"}) {
		t.Fatalf("expected ❤️ untouched; got %v", out.Reactions)
	}
}

func TestToggleReactionAcceptsAnyKey(t *testing.T) {
	// The engine does not validate emoji values.
	out := ToggleReaction(models.Message{ID: "m1"}, "not-an-emoji", "u1")
	if !reflect.DeepEqual(out.Reactions["not-an-emoji"], []string{"u1"}) {
		t.Fatalf("expected arbitrary key accepted; got %v", out.Reactions)
	}
}
