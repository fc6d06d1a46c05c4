package internal

import (
	"encoding/json"
	"fmt"
	"time"
)

// Helpers shared by tests across packages. Kept outside _test files so the
// export and cmd packages can reuse them, mirroring how fixtures travel in
// this codebase.

// MustPayload parses a JSON payload literal, panicking on malformed input.
// For fixtures only.
func MustPayload(jsonText string) *Payload {
	var p Payload
	if err := json.Unmarshal([]byte(jsonText), &p); err != nil {
		panic(fmt.Sprintf("bad payload fixture: %v", err))
	}
	return &p
}

// CreateTestConversation builds a two-message conversation with one dataset,
// for exporter and history tests.
func CreateTestConversation(id string) *Conversation {
	success := true
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return &Conversation{
		ID:        id,
		Title:     "show open work orders",
		CreatedAt: created,
		UpdatedAt: created.Add(2 * time.Second),
		Messages: []Message{
			{
				ID:        1,
				Actor:     ActorUser,
				Content:   "show open work orders",
				CreatedAt: created,
			},
			{
				ID:        2,
				Actor:     ActorAssistant,
				Content:   "Here are the open work orders.",
				CreatedAt: created.Add(2 * time.Second),
				Success:   &success,
				Payload: MustPayload(`{
					"work_orders": [
						{"order_id": "WO-1001", "order_status": "in_progress", "due_date": "2026-03-20", "cost": 125.5},
						{"order_id": "WO-1002", "order_status": "completed", "due_date": "2026-03-18", "cost": 80}
					]
				}`),
			},
		},
	}
}

// CreateFailedConversation builds a conversation whose assistant message is a
// terminal failure.
func CreateFailedConversation(id string) *Conversation {
	failed := false
	created := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return &Conversation{
		ID:        id,
		Title:     "show revenue",
		CreatedAt: created,
		UpdatedAt: created.Add(time.Second),
		Messages: []Message{
			{ID: 1, Actor: ActorUser, Content: "show revenue", CreatedAt: created},
			{
				ID:        2,
				Actor:     ActorAssistant,
				Content:   "Sorry, that query failed.",
				CreatedAt: created.Add(time.Second),
				Success:   &failed,
				Error:     "backend returned 502 Bad Gateway",
			},
		},
	}
}
