package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// wireEntry is the serialized form of one entry.
type wireEntry struct {
	Type       string            `json:"type" msgpack:"type" yaml:"type"`
	Entrypoint string            `json:"entrypoint,omitempty" msgpack:"entrypoint,omitempty" yaml:"entrypoint,omitempty"`
	Path       string            `json:"path,omitempty" msgpack:"path,omitempty" yaml:"path,omitempty"`
	Headers    map[string]string `json:"headers,omitempty" msgpack:"headers,omitempty" yaml:"headers,omitempty"`
}

func toWire(e Entry) wireEntry {
	w := wireEntry{Type: e.Kind.String(), Entrypoint: e.Entrypoint, Path: e.CanonicalPath}
	if e.Kind == KindOverride {
		w.Headers = e.Headers
		if w.Headers == nil {
			w.Headers = map[string]string{}
		}
	}
	return w
}

// MarshalJSON writes the table as a JSON object in insertion order.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range t.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Path)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(toWire(e))
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", e.Path, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EncodeMsgpack writes the table as an array of [path, entry] pairs so that
// decoders keep insertion order.
func (t *Table) EncodeMsgpack(enc *msgpack.Encoder) error {
	entries := t.Entries()
	if err := enc.EncodeArrayLen(len(entries)); err != nil {
		return err
	}
	for _, e := range entries {
		if err := enc.EncodeArrayLen(2); err != nil {
			return err
		}
		if err := enc.EncodeString(e.Path); err != nil {
			return err
		}
		if err := enc.Encode(toWire(e)); err != nil {
			return fmt.Errorf("failed to encode %s: %w", e.Path, err)
		}
	}
	return nil
}

// MarshalYAML renders the table as a mapping in insertion order.
func (t *Table) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range t.Entries() {
		var val yaml.Node
		if err := val.Encode(toWire(e)); err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", e.Path, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Path},
			&val)
	}
	return node, nil
}

// HeaderNames returns a record's header names sorted, for display.
func HeaderNames(headers map[string]string) []string {
	return slices.Sorted(maps.Keys(headers))
}
