package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is a single schema-less row from a dataset. Field order matches the
// source document, which is what the card and table views display.
type Record struct {
	fields []string
	values map[string]any
}

// NewRecord creates a record from ordered field/value pairs.
func NewRecord(pairs ...any) (*Record, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("record pairs must come in name/value couples, got %d items", len(pairs))
	}
	r := &Record{values: make(map[string]any)}
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("field name at index %d is not a string", i)
		}
		r.set(name, pairs[i+1])
	}
	return r, nil
}

func (r *Record) set(name string, value any) {
	if _, exists := r.values[name]; !exists {
		r.fields = append(r.fields, name)
	}
	r.values[name] = value
}

// Fields returns field names in source order.
func (r *Record) Fields() []string {
	return r.fields
}

// Get returns the value for a field name and whether it is present.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.fields)
}

// UnmarshalJSON decodes a JSON object into a record, preserving key order.
// encoding/json maps would lose it, so this walks the token stream directly.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record must be a JSON object, got %v", tok)
	}

	r.fields = nil
	r.values = make(map[string]any)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to decode record key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("record key is not a string: %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to decode value for %q: %w", key, err)
		}
		r.set(key, decodeScalar(raw))
	}

	// consume closing brace
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	return nil
}

// MarshalJSON encodes the record as a JSON object in field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valJSON, err := json.Marshal(r.values[name])
		if err != nil {
			return nil, fmt.Errorf("failed to encode field %q: %w", name, err)
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeScalar converts a raw JSON value to the scalar types records carry:
// string, float64, bool or nil. Nested objects/arrays are kept as their
// compact JSON text so they still format as strings downstream.
func decodeScalar(raw json.RawMessage) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	switch trimmed[0] {
	case 'n':
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err == nil {
			return b
		}
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	case '{', '[':
		return string(trimmed)
	default:
		var f float64
		if err := json.Unmarshal(trimmed, &f); err == nil {
			return f
		}
	}
	return string(trimmed)
}
