// Package artifact encodes the consolidated routing table for the edge runtime.
//
// An artifact carries the phase-bucketed routes and the output table plus
// build metadata. Digest covers only the routes and output, so two builds of
// the same inputs produce the same digest even though BuildID and
// GeneratedAt differ.
package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/danieljhkim/edgeroute/internal/config"
	"github.com/danieljhkim/edgeroute/internal/hash"
	"github.com/danieljhkim/edgeroute/internal/output"
	"github.com/danieljhkim/edgeroute/internal/routes"
)

// SchemaVersion is the artifact layout version.
const SchemaVersion = 1

// Document is the artifact written to disk.
type Document struct {
	Version       int                `json:"version" msgpack:"version"`
	ConfigVersion int                `json:"configVersion" msgpack:"configVersion"`
	BuildID       string             `json:"buildId" msgpack:"buildId"`
	GeneratedAt   time.Time          `json:"generatedAt" msgpack:"generatedAt"`
	Digest        string             `json:"digest" msgpack:"digest"`
	Routes        *routes.Collection `json:"routes" msgpack:"routes"`
	Output        *output.Table      `json:"output" msgpack:"output"`
}

// body is the digested part of a Document.
type body struct {
	Routes *routes.Collection `json:"routes" msgpack:"routes"`
	Output *output.Table      `json:"output" msgpack:"output"`
}

// Encode serializes doc in format, filling in its digest first.
func Encode(doc *Document, format string, hasher hash.Hasher) ([]byte, error) {
	digestInput, err := marshal(body{Routes: doc.Routes, Output: doc.Output}, format, false)
	if err != nil {
		return nil, fmt.Errorf("failed to encode artifact body: %w", err)
	}
	doc.Digest = hasher.HashBytes(digestInput)

	data, err := marshal(doc, format, true)
	if err != nil {
		return nil, fmt.Errorf("failed to encode artifact: %w", err)
	}
	return data, nil
}

func marshal(v any, format string, indent bool) ([]byte, error) {
	switch format {
	case config.FormatJSON:
		if !indent {
			return json.Marshal(v)
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case config.FormatMsgpack:
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetSortMapKeys(true)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported artifact format %q", format)
	}
}
