package artifact

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/danieljhkim/edgeroute/internal/config"
	"github.com/danieljhkim/edgeroute/internal/hash"
	"github.com/danieljhkim/edgeroute/internal/output"
	"github.com/danieljhkim/edgeroute/internal/routes"
)

func sampleDoc(t *testing.T, buildID string) *Document {
	t.Helper()
	coll, err := routes.Bucketize([]routes.Rule{
		{Src: "/a", Dest: "/b"},
		{Handle: "filesystem"},
		{Src: "/c", Dest: "/d"},
	})
	require.NoError(t, err)

	tbl := output.NewTable()
	tbl.Set("/static/app.js", output.Static())
	ov := tbl.NewOverride("/index.html", map[string]string{"vary": "RSC"})
	tbl.Set("/index.html", ov)
	tbl.Set("/", ov)

	return &Document{
		Version:       SchemaVersion,
		ConfigVersion: 3,
		BuildID:       buildID,
		GeneratedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Routes:        coll,
		Output:        tbl,
	}
}

func TestEncode_JSON(t *testing.T) {
	doc := sampleDoc(t, "build-1")
	data, err := Encode(doc, config.FormatJSON, hash.NewSHA256Hasher())
	require.NoError(t, err)

	var decoded struct {
		Version int                        `json:"version"`
		BuildID string                     `json:"buildId"`
		Digest  string                     `json:"digest"`
		Routes  map[string][]routes.Rule   `json:"routes"`
		Output  map[string]json.RawMessage `json:"output"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, SchemaVersion, decoded.Version)
	assert.Equal(t, "build-1", decoded.BuildID)
	assert.Len(t, decoded.Digest, 64)
	assert.Equal(t, doc.Digest, decoded.Digest)
	assert.Len(t, decoded.Routes, 7)
	assert.Equal(t, []routes.Rule{{Src: "/c", Dest: "/d"}}, decoded.Routes["filesystem"])
	assert.JSONEq(t, `{"type":"override","path":"/index.html","headers":{"vary":"RSC"}}`, string(decoded.Output["/"]))

	// Output keys keep insertion order in the encoded text.
	s := string(data)
	assert.Less(t, strings.Index(s, `"/static/app.js"`), strings.Index(s, `"/index.html"`))
	assert.Less(t, strings.Index(s, `"none"`), strings.Index(s, `"error"`))
}

func TestEncode_DigestIgnoresMetadata(t *testing.T) {
	hasher := hash.NewSHA256Hasher()
	a := sampleDoc(t, "build-a")
	b := sampleDoc(t, "build-b")
	b.GeneratedAt = b.GeneratedAt.Add(time.Hour)

	_, err := Encode(a, config.FormatJSON, hasher)
	require.NoError(t, err)
	_, err = Encode(b, config.FormatJSON, hasher)
	require.NoError(t, err)
	assert.Equal(t, a.Digest, b.Digest)

	b.Output.Set("/extra", output.Static())
	_, err = Encode(b, config.FormatJSON, hasher)
	require.NoError(t, err)
	assert.NotEqual(t, a.Digest, b.Digest)
}

func TestEncode_Msgpack(t *testing.T) {
	doc := sampleDoc(t, "build-1")
	data, err := Encode(doc, config.FormatMsgpack, hash.NewFakeHasher("abc"))
	require.NoError(t, err)
	assert.Equal(t, "abc", doc.Digest)

	var decoded map[string]any
	require.NoError(t, msgpack.NewDecoder(bytes.NewReader(data)).Decode(&decoded))
	assert.Equal(t, "build-1", decoded["buildId"])
	assert.Equal(t, "abc", decoded["digest"])

	pairs, ok := decoded["output"].([]any)
	require.True(t, ok)
	require.Len(t, pairs, 3)
	first := pairs[0].([]any)
	assert.Equal(t, "/static/app.js", first[0])

	phases, ok := decoded["routes"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, phases, 7)
}

func TestEncode_UnknownFormat(t *testing.T) {
	_, err := Encode(sampleDoc(t, "x"), "xml", hash.NewFakeHasher("abc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported artifact format "xml"`)
}
