package export

import (
	"encoding/json"
	"io"

	"github.com/osoko/erpdeck/internal"
)

// JSONLExporter exports conversations as one JSON object per message line
type JSONLExporter struct{}

// jsonlHeader is the first line of a JSONL export, carrying the conversation
// metadata so a stream of lines stays self-describing.
type jsonlHeader struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	MessageCount int    `json:"message_count"`
}

// Export exports a conversation to JSONL format
func (e *JSONLExporter) Export(conv *internal.Conversation, w io.Writer) error {
	enc := json.NewEncoder(w)

	header := jsonlHeader{
		ID:           conv.ID,
		Title:        conv.Title,
		MessageCount: len(conv.Messages),
	}
	if err := enc.Encode(header); err != nil {
		return err
	}

	for _, msg := range conv.Messages {
		if err := enc.Encode(msg); err != nil {
			return err
		}
	}
	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
