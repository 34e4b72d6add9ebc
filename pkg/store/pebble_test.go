package store

import (
	"testing"
)

func open(t *testing.T) {
	t.Helper()
	if err := Open(t.TempDir()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = Close() })
}

func TestAccountsRoundTrip(t *testing.T) {
	open(t)

	if _, err := GetAccounts(); !IsNotFound(err) {
		t.Fatalf("expected not-found before first save; got %v", err)
	}

	want := []byte(`[{"id":"user-1","username":"alice"}]`)
	if err := SaveAccounts(want); err != nil {
		t.Fatalf("SaveAccounts: %v", err)
	}
	got, err := GetAccounts()
	if err != nil {
		t.Fatalf("GetAccounts: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("round trip mismatch: %s", got)
	}
}

func TestConversationsKeyedPerUser(t *testing.T) {
	open(t)

	if _, err := GetConversations("user-1"); !IsNotFound(err) {
		t.Fatalf("expected not-found for fresh user; got %v", err)
	}

	if err := SaveConversations("user-1", []byte(`[{"id":"convo-a"}]`)); err != nil {
		t.Fatalf("SaveConversations: %v", err)
	}
	if err := SaveConversations("user-2", []byte(`[{"id":"convo-b"}]`)); err != nil {
		t.Fatalf("SaveConversations: %v", err)
	}

	got, err := GetConversations("user-1")
	if err != nil {
		t.Fatalf("GetConversations: %v", err)
	}
	if string(got) != `[{"id":"convo-a"}]` {
		t.Fatalf("wrong snapshot for user-1: %s", got)
	}

	users, err := ListConversationUsers()
	if err != nil {
		t.Fatalf("ListConversationUsers: %v", err)
	}
	if len(users) != 2 || users[0] != "user-1" || users[1] != "user-2" {
		t.Fatalf("unexpected users: %v", users)
	}
}

func TestSaveOverwritesSnapshot(t *testing.T) {
	open(t)

	if err := SaveConversations("user-1", []byte(`["old"]`)); err != nil {
		t.Fatalf("SaveConversations: %v", err)
	}
	if err := SaveConversations("user-1", []byte(`["new"]`)); err != nil {
		t.Fatalf("SaveConversations: %v", err)
	}
	got, err := GetConversations("user-1")
	if err != nil {
		t.Fatalf("GetConversations: %v", err)
	}
	if string(got) != `["new"]` {
		t.Fatalf("last write should win: %s", got)
	}
}

func TestNotReadyBeforeOpen(t *testing.T) {
	if Ready() {
		t.Fatal("store should not be ready before Open")
	}
	if err := SaveAccounts([]byte("[]")); err == nil {
		t.Fatal("writes before Open must fail")
	}
	if _, err := GetAccounts(); err == nil {
		t.Fatal("reads before Open must fail")
	}

	open(t)
	if !Ready() {
		t.Fatal("store should be ready after Open")
	}
}
