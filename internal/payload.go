package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Payload is the data attachment of an assistant message: a mapping from
// dataset key to raw value, in source key order. Values are kept raw until
// Datasets() qualifies them, so a malformed entry never fails the whole
// payload.
type Payload struct {
	keys []string
	raw  map[string]json.RawMessage
}

// Dataset is a named, non-empty collection of records discovered in a payload.
type Dataset struct {
	Key     string
	Records []*Record
}

// UnmarshalJSON decodes a payload object, preserving key order.
func (p *Payload) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("payload must be a JSON object, got %v", tok)
	}

	p.keys = nil
	p.raw = make(map[string]json.RawMessage)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to decode payload key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("payload key is not a string: %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to decode payload value for %q: %w", key, err)
		}
		if _, exists := p.raw[key]; !exists {
			p.keys = append(p.keys, key)
		}
		p.raw[key] = raw
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}
	return nil
}

// MarshalJSON encodes the payload in key order.
func (p *Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.Write(p.raw[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Keys returns all top-level payload keys in source order, qualifying or not.
func (p *Payload) Keys() []string {
	return p.keys
}

// Datasets returns the ordered list of qualifying datasets: keys whose value
// is a non-empty JSON array of objects. Everything else (empty arrays,
// scalars, strings, arrays of non-objects) is skipped silently — a payload
// with no qualifying keys simply yields no datasets.
func (p *Payload) Datasets() []Dataset {
	var datasets []Dataset
	for _, key := range p.keys {
		records, ok := decodeRecords(p.raw[key])
		if !ok || len(records) == 0 {
			continue
		}
		datasets = append(datasets, Dataset{Key: key, Records: records})
	}
	return datasets
}

// Dataset returns the qualifying dataset for a single key, if any.
func (p *Payload) Dataset(key string) (Dataset, bool) {
	raw, ok := p.raw[key]
	if !ok {
		return Dataset{}, false
	}
	records, ok := decodeRecords(raw)
	if !ok || len(records) == 0 {
		return Dataset{}, false
	}
	return Dataset{Key: key, Records: records}, true
}

func decodeRecords(raw json.RawMessage) ([]*Record, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var records []*Record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, false
	}
	return records, true
}
