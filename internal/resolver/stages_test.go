package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/edgeroute/internal/manifest"
	"github.com/danieljhkim/edgeroute/internal/ordered"
	"github.com/danieljhkim/edgeroute/internal/output"
)

func TestRegisterAssets_Idempotent(t *testing.T) {
	table := output.NewTable()
	table.Set("/a.js", output.Function("/a.js/index.js"))
	report := NewReport()

	RegisterAssets(table, []string{"/b.css", "/a.js", "/b.css", "/c.png"}, report)

	assert.Equal(t, []string{"/a.js", "/b.css", "/c.png"}, table.Paths())
	item, _ := table.Get("/a.js")
	assert.Equal(t, output.KindFunction, item.Kind)
	assert.Equal(t, 2, report.Assets)
}

func TestRegisterFunctions(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantKey   string
		wantKind  output.Kind
		wantEntry string
	}{
		{name: "middleware is unprefixed", path: "/middleware", wantKey: "middleware", wantKind: output.KindMiddleware, wantEntry: "/middleware/index.js"},
		{name: "regular function kept verbatim", path: "/page", wantKey: "/page", wantKind: output.KindFunction, wantEntry: "/page/index.js"},
		{name: "nested middleware name is just a function", path: "/api/middleware", wantKey: "/api/middleware", wantKind: output.KindFunction, wantEntry: "/api/middleware/index.js"},
		{name: "middleware prefix is not reserved", path: "/middleware2", wantKey: "/middleware2", wantKind: output.KindFunction, wantEntry: "/middleware2/index.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := output.NewTable()
			set := ordered.New[string, string](1)
			set.Set(tt.path, tt.wantEntry)

			RegisterFunctions(table, set, NewReport())

			require.Equal(t, []string{tt.wantKey}, table.Paths())
			item, _ := table.Get(tt.wantKey)
			assert.Equal(t, tt.wantKind, item.Kind)
			assert.Equal(t, tt.wantEntry, item.Entrypoint)
		})
	}
}

func TestRegisterFunctions_OverwritesStatic(t *testing.T) {
	table := output.NewTable()
	table.Set("/about", output.Static())
	table.Set("/other", output.Static())

	RegisterFunctions(table, functions("/about", "/about/index.js"), NewReport())

	assert.Equal(t, []string{"/about", "/other"}, table.Paths())
	item, _ := table.Get("/about")
	assert.Equal(t, output.KindFunction, item.Kind)
}

func TestApplyOverrides_MissingTargetSkipped(t *testing.T) {
	table := output.NewTable()
	table.Set("/404.html", output.Static())
	report := NewReport()

	ApplyOverrides(table, standardOverrides(), report)

	assert.Equal(t, []string{"/404.html", "/404"}, table.Paths())
	require.Len(t, report.Skipped, 2)
	assert.Equal(t, Skip{Stage: StageOverride, Path: "/500.html", Reason: "no output entry for overridden file"}, report.Skipped[0])
	assert.Equal(t, "/index.html", report.Skipped[1].Path)
}

func TestApplyOverrides_NestedIndexClaimsDirectory(t *testing.T) {
	table := output.NewTable()
	table.Set("/docs/index.html", output.Static())
	overrides := ordered.New[string, manifest.Override](1)
	overrides.Set("docs/index.html", manifest.Override{Path: "docs/index", ContentType: htmlType})

	ApplyOverrides(table, overrides, NewReport())

	assert.Equal(t, []string{"/docs/index.html", "/docs/index", "/docs"}, table.Paths())
	e, ok := table.Resolve("/docs")
	require.True(t, ok)
	assert.Equal(t, "/docs/index.html", e.CanonicalPath)
}

func TestApplyOverrides_NoContentTypeLeavesHeadersEmpty(t *testing.T) {
	table := output.NewTable()
	table.Set("/robots.txt", output.Static())
	overrides := ordered.New[string, manifest.Override](1)
	overrides.Set("robots.txt", manifest.Override{Path: "robots"})

	ApplyOverrides(table, overrides, NewReport())

	e, ok := table.Resolve("/robots")
	require.True(t, ok)
	assert.Equal(t, "/robots.txt", e.CanonicalPath)
	assert.NotNil(t, e.Headers)
	assert.Empty(t, e.Headers)
}

func TestIndexAlias(t *testing.T) {
	tests := []struct {
		alias   string
		wantDir string
		wantOK  bool
	}{
		{"/index", "/", true},
		{"/docs/index", "/docs", true},
		{"/404", "", false},
		{"/reindex", "", false},
		{"/index/more", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			dir, ok := indexAlias(tt.alias)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantDir, dir)
		})
	}
}

func TestApplyPrerendered_ReplacesNotMerges(t *testing.T) {
	table := output.NewTable()
	table.Set("/index.html", output.Static())
	report := NewReport()
	ApplyOverrides(table, standardOverrides(), report)

	pages := ordered.New[string, manifest.PrerenderedEntry](1)
	pages.Set("/index.html", manifest.PrerenderedEntry{Headers: map[string]string{"vary": varyRSC}})
	require.NoError(t, ApplyPrerendered(table, pages, report))

	for _, p := range []string{"/index.html", "/index", "/"} {
		e, ok := table.Resolve(p)
		require.True(t, ok, p)
		assert.Equal(t, map[string]string{"vary": varyRSC}, e.Headers, p)
		assert.NotContains(t, e.Headers, "content-type", p)
	}
}

func TestApplyPrerendered_SkipsMissingAndFunctions(t *testing.T) {
	table := output.NewTable()
	table.Set("/api", output.Function("/api/index.js"))
	report := NewReport()

	pages := ordered.New[string, manifest.PrerenderedEntry](2)
	pages.Set("/gone.html", manifest.PrerenderedEntry{Aliases: []string{"/gone"}})
	pages.Set("/api", manifest.PrerenderedEntry{Aliases: []string{"/api-alias"}})
	require.NoError(t, ApplyPrerendered(table, pages, report))

	assert.Equal(t, []string{"/api"}, table.Paths())
	require.Len(t, report.Skipped, 2)
	assert.Equal(t, StagePrerendered, report.Skipped[0].Stage)
	assert.Equal(t, "/gone.html", report.Skipped[0].Path)
	assert.Equal(t, "output entry is a function, not a static asset", report.Skipped[1].Reason)
	assert.Equal(t, 0, report.Prerendered)
}

func TestApplyPrerendered_NilHeadersBecomeEmpty(t *testing.T) {
	table := output.NewTable()
	table.Set("/a.html", output.Static())
	report := NewReport()
	overrides := ordered.New[string, manifest.Override](1)
	overrides.Set("a.html", manifest.Override{Path: "a", ContentType: htmlType})
	ApplyOverrides(table, overrides, report)

	pages := ordered.New[string, manifest.PrerenderedEntry](1)
	pages.Set("/a.html", manifest.PrerenderedEntry{})
	require.NoError(t, ApplyPrerendered(table, pages, report))

	e, _ := table.Resolve("/a")
	assert.Empty(t, e.Headers)
}
