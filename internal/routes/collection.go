package routes

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Collection maps every phase to its ordered rules.
// All seven phases are always present.
type Collection struct {
	buckets map[Phase][]Rule
}

// NewCollection returns a collection with all seven phases empty.
func NewCollection() *Collection {
	c := &Collection{buckets: make(map[Phase][]Rule, len(Phases))}
	for _, p := range Phases {
		c.buckets[p] = []Rule{}
	}
	return c
}

// Get returns the rules bucketed under p. Unknown phases yield nil.
func (c *Collection) Get(p Phase) []Rule {
	return c.buckets[p]
}

// Len returns the total number of rules across all phases.
func (c *Collection) Len() int {
	n := 0
	for _, rules := range c.buckets {
		n += len(rules)
	}
	return n
}

func (c *Collection) add(p Phase, r Rule) {
	c.buckets[p] = append(c.buckets[p], r)
}

// MarshalJSON writes the phases in canonical order.
func (c *Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range Phases {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:", string(p))
		data, err := json.Marshal(c.buckets[p])
		if err != nil {
			return nil, fmt.Errorf("failed to encode phase %s: %w", p, err)
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EncodeMsgpack writes the phases in canonical order.
func (c *Collection) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(Phases)); err != nil {
		return err
	}
	for _, p := range Phases {
		if err := enc.EncodeString(string(p)); err != nil {
			return err
		}
		if err := enc.Encode(c.buckets[p]); err != nil {
			return fmt.Errorf("failed to encode phase %s: %w", p, err)
		}
	}
	return nil
}

// MarshalYAML renders the phases in canonical order.
func (c *Collection) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range Phases {
		var rules yaml.Node
		if err := rules.Encode(c.buckets[p]); err != nil {
			return nil, fmt.Errorf("failed to encode phase %s: %w", p, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(p)}, &rules)
	}
	return node, nil
}
