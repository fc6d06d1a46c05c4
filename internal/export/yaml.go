package export

import (
	"io"

	"github.com/osoko/erpdeck/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports conversations in YAML format
type YAMLExporter struct{}

// yamlConversation flattens payloads to their dataset form, since the raw
// Payload type only customizes JSON encoding.
type yamlConversation struct {
	ID       string        `yaml:"id"`
	Title    string        `yaml:"title"`
	Messages []yamlMessage `yaml:"messages"`
}

type yamlMessage struct {
	ID       int              `yaml:"id"`
	Actor    string           `yaml:"actor"`
	Content  string           `yaml:"content"`
	Success  *bool            `yaml:"success,omitempty"`
	Analysis string           `yaml:"analysis,omitempty"`
	Error    string           `yaml:"error,omitempty"`
	Datasets []map[string]any `yaml:"datasets,omitempty"`
}

// Export exports a conversation to YAML format
func (e *YAMLExporter) Export(conv *internal.Conversation, w io.Writer) error {
	doc := yamlConversation{ID: conv.ID, Title: conv.Title}
	for _, msg := range conv.Messages {
		ym := yamlMessage{
			ID:       msg.ID,
			Actor:    msg.Actor,
			Content:  msg.Content,
			Success:  msg.Success,
			Analysis: msg.Analysis,
			Error:    msg.Error,
		}
		for _, ds := range msg.Datasets() {
			rows := make([]map[string]any, 0, len(ds.Records))
			for _, rec := range ds.Records {
				row := make(map[string]any, rec.Len())
				for _, name := range rec.Fields() {
					value, _ := rec.Get(name)
					row[name] = value
				}
				rows = append(rows, row)
			}
			ym.Datasets = append(ym.Datasets, map[string]any{
				"key":     ds.Key,
				"records": rows,
			})
		}
		doc.Messages = append(doc.Messages, ym)
	}

	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(doc)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
