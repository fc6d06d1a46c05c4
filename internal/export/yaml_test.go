package export

import (
	"bytes"
	"testing"

	"github.com/osoko/erpdeck/internal"
	"gopkg.in/yaml.v3"
)

func TestYAMLExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	exporter := &YAMLExporter{}

	conv := internal.CreateTestConversation("conv-1")
	if err := exporter.Export(conv, &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var decoded struct {
		ID       string `yaml:"id"`
		Title    string `yaml:"title"`
		Messages []struct {
			Actor    string `yaml:"actor"`
			Datasets []struct {
				Key     string           `yaml:"key"`
				Records []map[string]any `yaml:"records"`
			} `yaml:"datasets"`
		} `yaml:"messages"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid YAML: %v\nOutput: %s", err, buf.String())
	}

	if decoded.ID != "conv-1" {
		t.Errorf("id = %q", decoded.ID)
	}
	if len(decoded.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(decoded.Messages))
	}

	reply := decoded.Messages[1]
	if len(reply.Datasets) != 1 {
		t.Fatalf("assistant message should carry one dataset, got %d", len(reply.Datasets))
	}
	ds := reply.Datasets[0]
	if ds.Key != "work_orders" || len(ds.Records) != 2 {
		t.Errorf("dataset = %q with %d records", ds.Key, len(ds.Records))
	}
	if ds.Records[0]["order_id"] != "WO-1001" {
		t.Errorf("first record order_id = %v", ds.Records[0]["order_id"])
	}
}

func TestYAMLExporter_Extension(t *testing.T) {
	exporter := &YAMLExporter{}
	if got := exporter.Extension(); got != "yaml" {
		t.Errorf("YAMLExporter.Extension() = %v, want yaml", got)
	}
}
