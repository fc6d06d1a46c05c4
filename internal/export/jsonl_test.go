package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/osoko/erpdeck/internal"
)

func TestJSONLExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	exporter := &JSONLExporter{}

	conv := internal.CreateTestConversation("conv-1")
	if err := exporter.Export(conv, &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	// header line plus one line per message
	wantLines := 1 + len(conv.Messages)
	if len(lines) != wantLines {
		t.Fatalf("got %d lines, want %d", len(lines), wantLines)
	}

	var header struct {
		ID           string `json:"id"`
		MessageCount int    `json:"message_count"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &header); err != nil {
		t.Fatalf("header line is not valid JSON: %v", err)
	}
	if header.ID != conv.ID || header.MessageCount != len(conv.Messages) {
		t.Errorf("header = %+v", header)
	}

	for i, line := range lines[1:] {
		var msg map[string]any
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i+1, err)
		}
	}
}

func TestJSONLExporter_Extension(t *testing.T) {
	exporter := &JSONLExporter{}
	if got := exporter.Extension(); got != "jsonl" {
		t.Errorf("JSONLExporter.Extension() = %v, want jsonl", got)
	}
}
