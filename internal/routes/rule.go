package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/vmihailenco/msgpack/v5"
)

// Rule is one entry of the manifest's route list.
//
// A rule with Handle set is a phase marker; every other field is ignored for
// markers. Field names follow the manifest's JSON keys. Keys the router
// understands but edgeroute does not inspect (has, missing, locale, ...) are
// carried in Extra and written back out unchanged.
type Rule struct {
	Src            string            `json:"src,omitempty" yaml:"src,omitempty" msgpack:"src,omitempty"`
	Dest           string            `json:"dest,omitempty" yaml:"dest,omitempty" msgpack:"dest,omitempty"`
	MiddlewarePath string            `json:"middlewarePath,omitempty" yaml:"middlewarePath,omitempty" msgpack:"middlewarePath,omitempty"`
	Headers        map[string]string `json:"headers,omitempty" yaml:"headers,omitempty" msgpack:"headers,omitempty"`
	Methods        []string          `json:"methods,omitempty" yaml:"methods,omitempty" msgpack:"methods,omitempty"`
	Status         int               `json:"status,omitempty" yaml:"status,omitempty" msgpack:"status,omitempty"`
	Continue       bool              `json:"continue,omitempty" yaml:"continue,omitempty" msgpack:"continue,omitempty"`
	Check          bool              `json:"check,omitempty" yaml:"check,omitempty" msgpack:"check,omitempty"`
	Handle         string            `json:"handle,omitempty" yaml:"handle,omitempty" msgpack:"handle,omitempty"`

	// Extra holds every other key of the route object.
	Extra map[string]any `json:"-" yaml:"-" msgpack:"-"`
}

// knownFields are the JSON keys decoded into Rule's named fields.
var knownFields = []string{"src", "dest", "middlewarePath", "headers", "methods", "status", "continue", "check", "handle"}

// plainRule has Rule's fields without its methods.
type plainRule Rule

// IsPhaseMarker reports whether the rule only switches the current phase.
func (r Rule) IsPhaseMarker() bool {
	return r.Handle != ""
}

// UnmarshalJSON decodes the named fields and keeps the rest in Extra.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var plain plainRule
	if err := json.Unmarshal(data, &plain); err != nil {
		return err
	}
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, k := range knownFields {
		delete(all, k)
	}
	plain.Extra = nil
	if len(all) > 0 {
		plain.Extra = all
	}
	*r = Rule(plain)
	return nil
}

// MarshalJSON writes the named fields in declaration order, then Extra in
// key order.
func (r Rule) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(plainRule(r))
	if err != nil {
		return nil, err
	}
	if len(r.Extra) == 0 {
		return data, nil
	}

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	first := len(data) == 2
	for _, k := range slices.Sorted(maps.Keys(r.Extra)) {
		if slices.Contains(knownFields, k) {
			continue
		}
		v, err := json.Marshal(r.Extra[k])
		if err != nil {
			return nil, fmt.Errorf("failed to encode route field %q: %w", k, err)
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, _ := json.Marshal(k)
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Fields returns the rule as one flat object: set named fields plus Extra.
func (r Rule) Fields() map[string]any {
	out := make(map[string]any, len(r.Extra)+4)
	for k, v := range r.Extra {
		if !slices.Contains(knownFields, k) {
			out[k] = v
		}
	}
	set := func(k string, v any, ok bool) {
		if ok {
			out[k] = v
		}
	}
	set("src", r.Src, r.Src != "")
	set("dest", r.Dest, r.Dest != "")
	set("middlewarePath", r.MiddlewarePath, r.MiddlewarePath != "")
	set("headers", r.Headers, len(r.Headers) > 0)
	set("methods", r.Methods, len(r.Methods) > 0)
	set("status", r.Status, r.Status != 0)
	set("continue", r.Continue, r.Continue)
	set("check", r.Check, r.Check)
	set("handle", r.Handle, r.Handle != "")
	return out
}

// EncodeMsgpack writes the rule as a map of its Fields.
func (r Rule) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(r.Fields())
}

// MarshalYAML renders the rule as a map of its Fields.
func (r Rule) MarshalYAML() (any, error) {
	return r.Fields(), nil
}
