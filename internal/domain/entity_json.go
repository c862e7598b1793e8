package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// rawField is one key of a decoded catalog record, in document order.
type rawField struct {
	key   string
	value json.RawMessage
}

// entityFields has Entity's layout without its JSON methods.
type entityFields Entity

// UnmarshalJSON decodes the modeled fields and keeps the whole record so
// that encoding writes back keys the struct does not know about.
func (e *Entity) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var typed entityFields
	if err := json.Unmarshal(data, &typed); err != nil {
		return err
	}
	fields, err := objectFields(data)
	if err != nil {
		return fmt.Errorf("entity: %w", err)
	}

	*e = Entity(typed)
	e.raw = fields
	return nil
}

// MarshalJSON writes the record in its original key order. Modeled fields
// take their current value; an empty modeled field that omitempty would drop
// keeps its original value, as do unknown keys. New keys go last.
func (e Entity) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(entityFields(e))
	if err != nil {
		return nil, err
	}
	if len(e.raw) == 0 {
		return data, nil
	}

	current, err := objectFields(data)
	if err != nil {
		return nil, fmt.Errorf("entity: %w", err)
	}
	byKey := make(map[string]json.RawMessage, len(current))
	for _, f := range current {
		byKey[f.key] = f.value
	}

	var buf bytes.Buffer
	written := make(map[string]bool, len(e.raw)+len(current))
	write := func(key string, value json.RawMessage) error {
		if written[key] {
			return nil
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		if len(written) > 0 {
			buf.WriteByte(',')
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(value)
		written[key] = true
		return nil
	}

	buf.WriteByte('{')
	for _, f := range e.raw {
		value := f.value
		if v, ok := byKey[f.key]; ok {
			value = v
		}
		if err := write(f.key, value); err != nil {
			return nil, err
		}
	}
	for _, f := range current {
		if err := write(f.key, f.value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func objectFields(data []byte) ([]rawField, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var fields []rawField
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		fields = append(fields, rawField{key: key, value: value})
	}
	return fields, nil
}
