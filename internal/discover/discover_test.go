package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/edgeroute/internal/fsops"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

func TestAssets(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"index.html":          "<html/>",
		"_next/static/app.js": "js",
		"favicon.ico":         "ico",
	})

	got, err := Assets(fsops.NewRealFS(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"/_next/static/app.js", "/favicon.ico", "/index.html"}, got)

	got, err = Assets(fsops.NewRealFS(), filepath.Join(root, "missing"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFunctions(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"middleware.func/.vc-config.json":     `{"runtime": "edge", "entrypoint": "index.js"}`,
		"middleware.func/index.js":            "export default {}",
		"api/hello.func/.vc-config.json":      `{"runtime": "edge", "entrypoint": "handler.js"}`,
		"page.func/.vc-config.json":           `{"runtime": "edge"}`,
		"index.func/.vc-config.json":          `{"runtime": "edge"}`,
		"index.prerender-config.json":         `{"fallback": {"fsPath": "index.prerender-fallback.html"}}`,
		"index.prerender-fallback.html":       "<html/>",
		"stray/.vc-config.json":               `{}`,
		"a.func/inner/b.func/.vc-config.json": `{}`,
	})

	set, err := Functions(fsops.NewRealFS(), root)
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/hello", "/middleware", "/page"}, set.Keys())
	entry, _ := set.Get("/api/hello")
	assert.Equal(t, "/api/hello/handler.js", entry)
	entry, _ = set.Get("/middleware")
	assert.Equal(t, "/middleware/index.js", entry)
	entry, _ = set.Get("/page")
	assert.Equal(t, "/page/index.js", entry)
	assert.False(t, set.Has("/index"))
}

func TestFunctions_BadConfig(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"page.func/.vc-config.json": `{not json`,
	})
	_, err := Functions(fsops.NewRealFS(), root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse page.func/.vc-config.json")
}

func TestAssetPath(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"index", "/index.html"},
		{"index.rsc", "/index.rsc"},
		{"nested/(route-group)/foo", "/nested/(route-group)/foo.html"},
		{"v1.2/post", "/v1.2/post.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssetPath(tt.name))
		})
	}
}

func TestAliases(t *testing.T) {
	tests := []struct {
		asset string
		want  []string
	}{
		{"/index.html", []string{"/index", "/"}},
		{"/index.rsc", []string{}},
		{"/nested/(route-group)/foo.html", []string{"/nested/foo.html", "/nested/foo"}},
		{"/(marketing)/index.html", []string{"/index.html", "/index", "/"}},
		{"/docs/index.html", []string{"/docs/index", "/docs"}},
		{"/about.html", []string{"/about"}},
	}
	for _, tt := range tests {
		t.Run(tt.asset, func(t *testing.T) {
			assert.Equal(t, tt.want, Aliases(tt.asset))
		})
	}
}

func TestPrerendered(t *testing.T) {
	root := t.TempDir()
	functionsDir := filepath.Join(root, "functions")
	staticDir := filepath.Join(root, "static")
	writeFiles(t, functionsDir, map[string]string{
		"index.prerender-config.json": `{
  "fallback": {"fsPath": "index.prerender-fallback.html"},
  "initialHeaders": {"vary": "RSC"}
}`,
		"index.prerender-fallback.html": "<html>index</html>",
		"index.func/.vc-config.json":    `{}`,
		"nested/(group)/foo.prerender-config.json": `{
  "fallback": {"fsPath": "foo.prerender-fallback.html"}
}`,
		"nested/(group)/foo.prerender-fallback.html": "<html>foo</html>",
	})
	writeFiles(t, staticDir, map[string]string{
		"nested/(group)/foo.html": "<html>already there</html>",
	})

	set, err := Prerendered(fsops.NewRealFS(), functionsDir, staticDir)
	require.NoError(t, err)

	assert.Equal(t, []string{"/index.html", "/nested/(group)/foo.html"}, set.Keys())
	index, _ := set.Get("/index.html")
	assert.Equal(t, map[string]string{"vary": "RSC"}, index.Headers)
	assert.Equal(t, []string{"/index", "/"}, index.Aliases)

	foo, _ := set.Get("/nested/(group)/foo.html")
	assert.Equal(t, map[string]string{}, foo.Headers)
	assert.Equal(t, []string{"/nested/foo.html", "/nested/foo"}, foo.Aliases)

	data, err := os.ReadFile(filepath.Join(staticDir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>index</html>", string(data))

	data, err = os.ReadFile(filepath.Join(staticDir, "nested", "(group)", "foo.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>already there</html>", string(data))
}

func TestPrerendered_FallbackEscapes(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"index.prerender-config.json": `{"fallback": {"fsPath": "../../etc/passwd"}}`,
	})
	_, err := Prerendered(fsops.NewRealFS(), root, filepath.Join(root, "static"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid fallback path")
}

func TestPrerenderedConfigs_DoesNotCopy(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"about.prerender-config.json":   `{"fallback": {"fsPath": "about.prerender-fallback.html"}}`,
		"about.prerender-fallback.html": "<html>about</html>",
	})

	set, err := PrerenderedConfigs(fsops.NewRealFS(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"/about.html"}, set.Keys())

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
