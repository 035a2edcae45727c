package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// SpecPair is one technical-specification line of a product ("Capacity": "5L").
type SpecPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SpecList is the canonical, ordered representation of product specifications.
//
// Legacy clients persisted specs in three shapes: a plain JSON object, a
// doubly-JSON-encoded string of that object, or an array of {key,value}
// pairs. All three are normalized here on ingestion so nothing downstream
// ever branches on runtime shape. Object key order is preserved.
type SpecList []SpecPair

// UnmarshalJSON accepts any of the legacy shapes and normalizes them.
func (s *SpecList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}

	switch data[0] {
	case '"':
		// Doubly-encoded: unquote, then normalize the inner document.
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return fmt.Errorf("specs: invalid string form: %w", err)
		}
		if inner == "" {
			*s = nil
			return nil
		}
		return s.UnmarshalJSON([]byte(inner))
	case '{':
		pairs, err := decodeOrderedObject(data)
		if err != nil {
			return err
		}
		*s = pairs
		return nil
	case '[':
		var pairs []SpecPair
		if err := json.Unmarshal(data, &pairs); err != nil {
			return fmt.Errorf("specs: invalid array form: %w", err)
		}
		*s = pairs
		return nil
	}
	return errors.New("specs: unsupported JSON shape")
}

// decodeOrderedObject walks the object token stream so key order survives,
// which a map round-trip would destroy.
func decodeOrderedObject(data []byte) ([]SpecPair, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if _, err := dec.Token(); err != nil { // opening brace
		return nil, fmt.Errorf("specs: invalid object form: %w", err)
	}

	var pairs []SpecPair
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("specs: invalid object key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.New("specs: object key is not a string")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("specs: invalid value for %q: %w", key, err)
		}
		pairs = append(pairs, SpecPair{Key: key, Value: scalarToString(raw)})
	}
	return pairs, nil
}

// scalarToString renders an arbitrary spec value as display text.
func scalarToString(raw json.RawMessage) string {
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		return num.String()
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return fmt.Sprintf("%t", b)
	}
	return string(raw)
}

// Value implements driver.Valuer; the canonical array form is what is stored.
func (s SpecList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]SpecPair(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *SpecList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return s.UnmarshalJSON(v)
	case string:
		return s.UnmarshalJSON([]byte(v))
	}
	return fmt.Errorf("specs: cannot scan %T", src)
}

// StringList stores a list of strings (image URLs, alternative names) as JSON.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, (*[]string)(l))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(l))
	}
	return fmt.Errorf("string list: cannot scan %T", src)
}
