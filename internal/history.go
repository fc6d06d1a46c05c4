package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Conversation is a saved session snapshot in the history store.
type Conversation struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	Messages  []Message `json:"messages"`
}

// ConversationSummary is the listing row for a stored conversation.
type ConversationSummary struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	MessageCount int       `json:"message_count" db:"message_count"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// HistoryStore persists conversations to a local SQLite database.
type HistoryStore struct {
	db *sqlx.DB
}

const historySchema = `
CREATE TABLE IF NOT EXISTS conversations (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
	conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
	id              INTEGER NOT NULL,
	actor           TEXT NOT NULL,
	content         TEXT NOT NULL,
	created_at      TIMESTAMP NOT NULL,
	success         INTEGER,
	analysis        TEXT NOT NULL DEFAULT '',
	error           TEXT NOT NULL DEFAULT '',
	payload         TEXT,
	PRIMARY KEY (conversation_id, id)
);`

// OpenHistoryStore opens (creating if needed) the history database.
func OpenHistoryStore(path string) (*HistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &HistoryError{Op: "open", Err: err}
	}
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, &HistoryError{Op: "open", Err: err}
	}
	if _, err := db.Exec(historySchema); err != nil {
		_ = db.Close()
		return nil, &HistoryError{Op: "open", Err: err}
	}
	return &HistoryStore{db: db}, nil
}

// Close closes the underlying database.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// SaveSession stores the session's log as a new conversation and returns its
// generated ID. The title is derived from the first user message.
func (s *HistoryStore) SaveSession(session *Session) (string, error) {
	messages := session.Messages()
	if len(messages) == 0 {
		return "", &HistoryError{Op: "save", Err: fmt.Errorf("nothing to save: conversation is empty")}
	}

	conv := Conversation{
		ID:        uuid.NewString(),
		Title:     deriveTitle(messages),
		CreatedAt: messages[0].CreatedAt,
		UpdatedAt: messages[len(messages)-1].CreatedAt,
		Messages:  messages,
	}
	if err := s.save(conv); err != nil {
		return "", err
	}
	return conv.ID, nil
}

func (s *HistoryStore) save(conv Conversation) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return &HistoryError{Op: "save", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		`INSERT INTO conversations (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		conv.ID, conv.Title, conv.CreatedAt, conv.UpdatedAt)
	if err != nil {
		return &HistoryError{Op: "save", Err: err}
	}

	for _, msg := range conv.Messages {
		var payload any
		if msg.Payload != nil {
			data, err := json.Marshal(msg.Payload)
			if err != nil {
				return &HistoryError{Op: "save", Err: fmt.Errorf("failed to encode payload for message %d: %w", msg.ID, err)}
			}
			payload = string(data)
		}
		var success any
		if msg.Success != nil {
			success = *msg.Success
		}
		_, err = tx.Exec(
			`INSERT INTO messages (conversation_id, id, actor, content, created_at, success, analysis, error, payload)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			conv.ID, msg.ID, msg.Actor, msg.Content, msg.CreatedAt, success, msg.Analysis, msg.Error, payload)
		if err != nil {
			return &HistoryError{Op: "save", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &HistoryError{Op: "save", Err: err}
	}
	return nil
}

// List returns summaries of stored conversations, newest first.
func (s *HistoryStore) List() ([]ConversationSummary, error) {
	var summaries []ConversationSummary
	err := s.db.Select(&summaries, `
		SELECT c.id, c.title, c.created_at, c.updated_at, COUNT(m.id) AS message_count
		FROM conversations c
		LEFT JOIN messages m ON m.conversation_id = c.id
		GROUP BY c.id
		ORDER BY c.updated_at DESC`)
	if err != nil {
		return nil, &HistoryError{Op: "list", Err: err}
	}
	return summaries, nil
}

type messageRow struct {
	ID        int       `db:"id"`
	Actor     string    `db:"actor"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	Success   *bool     `db:"success"`
	Analysis  string    `db:"analysis"`
	Error     string    `db:"error"`
	Payload   *string   `db:"payload"`
	ConvID    string    `db:"conversation_id"`
}

// Load fetches one conversation with its messages in append order.
func (s *HistoryStore) Load(id string) (*Conversation, error) {
	var conv Conversation
	err := s.db.Get(&conv, `SELECT id, title, created_at, updated_at FROM conversations WHERE id = ?`, id)
	if err != nil {
		return nil, &HistoryError{Op: "load", Err: fmt.Errorf("conversation %s: %w", id, err)}
	}

	var rows []messageRow
	err = s.db.Select(&rows, `
		SELECT conversation_id, id, actor, content, created_at, success, analysis, error, payload
		FROM messages WHERE conversation_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, &HistoryError{Op: "load", Err: err}
	}

	for _, row := range rows {
		msg := Message{
			ID:        row.ID,
			Actor:     row.Actor,
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
			Success:   row.Success,
			Analysis:  row.Analysis,
			Error:     row.Error,
		}
		if row.Payload != nil && *row.Payload != "" {
			var payload Payload
			if err := json.Unmarshal([]byte(*row.Payload), &payload); err != nil {
				LogWarn("Skipping malformed stored payload for message %d: %v", row.ID, err)
			} else {
				msg.Payload = &payload
			}
		}
		conv.Messages = append(conv.Messages, msg)
	}
	return &conv, nil
}

// Delete removes a conversation and its messages.
func (s *HistoryStore) Delete(id string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return &HistoryError{Op: "delete", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM messages WHERE conversation_id = ?`, id); err != nil {
		return &HistoryError{Op: "delete", Err: err}
	}
	res, err := tx.Exec(`DELETE FROM conversations WHERE id = ?`, id)
	if err != nil {
		return &HistoryError{Op: "delete", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &HistoryError{Op: "delete", Err: fmt.Errorf("conversation not found: %s", id)}
	}
	return tx.Commit()
}

// deriveTitle uses the first user message, truncated, as the conversation
// title.
func deriveTitle(messages []Message) string {
	for _, msg := range messages {
		if msg.Actor == ActorUser && msg.Content != "" {
			title := msg.Content
			if len(title) > 60 {
				title = title[:57] + "..."
			}
			return title
		}
	}
	return "Untitled conversation"
}
