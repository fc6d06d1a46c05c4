package internal

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *HistoryStore {
	t.Helper()
	store, err := OpenHistoryStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sessionFromConversation(t *testing.T, conv *Conversation) *Session {
	t.Helper()
	s := NewSession(6)
	for _, msg := range conv.Messages {
		switch msg.Actor {
		case ActorUser:
			if _, err := s.Submit(msg.Content); err != nil {
				t.Fatalf("Submit failed: %v", err)
			}
		case ActorAssistant:
			success := msg.Success != nil && *msg.Success
			s.Resolve(QueryResult{
				Success:  success,
				Response: msg.Content,
				Analysis: msg.Analysis,
				Error:    msg.Error,
				Data:     msg.Payload,
			})
		}
	}
	return s
}

func TestHistoryStore_SaveAndLoad(t *testing.T) {
	store := openTestStore(t)
	session := sessionFromConversation(t, CreateTestConversation("unused"))

	id, err := store.SaveSession(session)
	if err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveSession returned an empty ID")
	}

	conv, err := store.Load(id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if conv.Title != "show open work orders" {
		t.Errorf("Title = %q", conv.Title)
	}
	if len(conv.Messages) != 2 {
		t.Fatalf("loaded %d messages, want 2", len(conv.Messages))
	}

	reply := conv.Messages[1]
	if reply.Actor != ActorAssistant {
		t.Errorf("Actor = %q", reply.Actor)
	}
	if reply.Success == nil || !*reply.Success {
		t.Error("Success flag lost in round trip")
	}
	datasets := reply.Datasets()
	if len(datasets) != 1 || datasets[0].Key != "work_orders" {
		t.Fatalf("payload lost in round trip: %+v", datasets)
	}
	if len(datasets[0].Records) != 2 {
		t.Errorf("dataset has %d records, want 2", len(datasets[0].Records))
	}
}

func TestHistoryStore_SaveEmptySession(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveSession(NewSession(6)); err == nil {
		t.Error("saving an empty session should fail")
	}
}

func TestHistoryStore_List(t *testing.T) {
	store := openTestStore(t)

	first := sessionFromConversation(t, CreateTestConversation("a"))
	second := sessionFromConversation(t, CreateFailedConversation("b"))
	if _, err := store.SaveSession(first); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	if _, err := store.SaveSession(second); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	summaries, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("List returned %d summaries, want 2", len(summaries))
	}
	for _, s := range summaries {
		if s.MessageCount != 2 {
			t.Errorf("summary %q has MessageCount %d, want 2", s.Title, s.MessageCount)
		}
	}
}

func TestHistoryStore_Delete(t *testing.T) {
	store := openTestStore(t)
	session := sessionFromConversation(t, CreateTestConversation("a"))
	id, err := store.SaveSession(session)
	if err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	if err := store.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Load(id); err == nil {
		t.Error("Load after Delete should fail")
	}
	if err := store.Delete("no-such-id"); err == nil {
		t.Error("Delete of a missing conversation should fail")
	}
}
