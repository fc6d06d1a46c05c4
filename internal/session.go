package internal

import (
	"fmt"
	"time"
)

// Session is the append-only conversation log plus the per-dataset view state
// it owns. All mutation happens from discrete UI events run to completion in
// sequence, so no locking is needed.
//
// The submit lifecycle is two-phase: Submit appends the user message and
// marks the session busy; Resolve appends the matching assistant message and
// clears busy. While busy a second Submit is rejected, but paging and
// expansion on already-rendered messages stay live.
type Session struct {
	messages []Message
	nextID   int
	busy     bool

	Pages    *PageStore
	Expanded *ExpandStore
}

// NewSession creates an empty session with the given page size.
func NewSession(pageSize int) *Session {
	return &Session{
		nextID:   1,
		Pages:    NewPageStore(pageSize),
		Expanded: NewExpandStore(),
	}
}

// Messages returns the conversation log in append order.
func (s *Session) Messages() []Message {
	return s.messages
}

// Len returns the number of messages in the log.
func (s *Session) Len() int {
	return len(s.messages)
}

// Busy reports whether a query is in flight.
func (s *Session) Busy() bool {
	return s.busy
}

// Submit appends a user message and marks the session busy. It fails if a
// query is already in flight: submissions are blocked, not superseded, until
// the previous one resolves.
func (s *Session) Submit(text string) (*Message, error) {
	if s.busy {
		return nil, fmt.Errorf("a query is already in flight")
	}
	s.busy = true
	msg := s.append(Message{
		Actor:     ActorUser,
		Content:   text,
		CreatedAt: time.Now(),
	})
	return msg, nil
}

// Resolve appends the assistant message for the in-flight query and clears
// the busy flag. A failed query still appends a message, with Success=false
// and the error text, so the log grows by exactly two per submission and a
// user message is never removed on failure.
func (s *Session) Resolve(res QueryResult) *Message {
	s.busy = false
	success := res.Success
	msg := Message{
		Actor:     ActorAssistant,
		Content:   res.Response,
		CreatedAt: time.Now(),
		Success:   &success,
		Analysis:  res.Analysis,
		Error:     res.Error,
		Payload:   res.Data,
	}
	if !res.Success && msg.Content == "" {
		msg.Content = "Sorry, that query failed."
	}
	return s.append(msg)
}

// Clear drops the whole log and all view state ("new chat"). Message IDs keep
// increasing so stale refs from a previous log can never alias new state.
func (s *Session) Clear() {
	s.messages = nil
	s.busy = false
	s.Pages.Reset()
	s.Expanded.Reset()
}

// Ref builds the view-state key for one dataset of one message.
func (s *Session) Ref(msg *Message, datasetKey string) DatasetRef {
	return DatasetRef{MessageID: msg.ID, Dataset: datasetKey}
}

func (s *Session) append(msg Message) *Message {
	msg.ID = s.nextID
	s.nextID++
	s.messages = append(s.messages, msg)
	return &s.messages[len(s.messages)-1]
}
