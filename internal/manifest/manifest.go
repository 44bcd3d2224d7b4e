// Package manifest reads, validates and rewrites the bower.json manifest of
// the seed template.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Manifest is a JSON object that remembers the order of its keys, so that the
// rewritten manifest reads like the template it came from.
type Manifest struct {
	keys   []string
	values map[string]json.RawMessage
}

// Parse decodes a single JSON object, keeping its key order.
func Parse(data []byte) (*Manifest, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	m, err := decodeObject(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level object")
	}

	return m, nil
}

func decodeObject(dec *json.Decoder) (*Manifest, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	m := &Manifest{values: make(map[string]json.RawMessage)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected an object key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decoding %q: %w", key, err)
		}
		m.set(key, raw)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manifest) set(key string, raw json.RawMessage) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = raw
}

// Keys returns the object keys in document order.
func (m *Manifest) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Has reports whether key is present.
func (m *Manifest) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// String returns the string value of key.
func (m *Manifest) String(key string) (string, error) {
	raw, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("field %q not present", key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("field %q is not a string: %w", key, err)
	}
	return s, nil
}

// SetString sets key to a string value, appending the key if it is new.
func (m *Manifest) SetString(key, value string) error {
	raw, err := marshalString(value)
	if err != nil {
		return err
	}
	m.set(key, raw)
	return nil
}

// Object returns the nested object stored under key.
func (m *Manifest) Object(key string) (*Manifest, error) {
	raw, ok := m.values[key]
	if !ok {
		return nil, fmt.Errorf("field %q not present", key)
	}
	obj, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", key, err)
	}
	return obj, nil
}

// SetObject stores obj under key.
func (m *Manifest) SetObject(key string, obj *Manifest) error {
	raw, err := obj.compact()
	if err != nil {
		return err
	}
	m.set(key, raw)
	return nil
}

// Delete removes key. It reports whether the key was present.
func (m *Manifest) Delete(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Encode renders the manifest as JSON indented with two spaces and a
// trailing newline.
func (m *Manifest) Encode() ([]byte, error) {
	compact, err := m.compact()
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("indenting manifest: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func (m *Manifest) compact() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalString(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if err := json.Compact(&buf, m.values[key]); err != nil {
			return nil, fmt.Errorf("encoding %q: %w", key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalString encodes s without HTML escaping.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
