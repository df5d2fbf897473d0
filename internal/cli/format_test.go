package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUI_Table(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	newUI(&buf).table([]string{"PATH", "TYPE", "TARGET"}, [][]string{
		{"/index.html", "static", ""},
		{"/api", "function", "/api/index.js", "dropped"},
	})

	assert.Equal(t, ""+
		"  PATH         TYPE      TARGET\n"+
		"  /index.html  static\n"+
		"  /api         function  /api/index.js\n", buf.String())
}

func TestUI_TableWithoutRowsPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	newUI(&buf).table([]string{"PATH"}, nil)
	assert.Empty(t, buf.String())
}

func TestUI_Field(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	out := newUI(&buf)
	out.field("Digest", "abc")
	out.bullets([]string{"/a", "/b"})
	assert.Equal(t, "  Digest: abc\n    • /a\n    • /b\n", buf.String())
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 entry", plural(1, "entry", "entries"))
	assert.Equal(t, "0 entries", plural(0, "entry", "entries"))
	assert.Equal(t, "3 entries", plural(3, "entry", "entries"))
}
