package resolver

import (
	"fmt"
	"path"

	"github.com/danieljhkim/edgeroute/internal/manifest"
	"github.com/danieljhkim/edgeroute/internal/output"
)

// indexAlias returns the directory path an index alias also answers for:
// "/index" -> "/", "/docs/index" -> "/docs". ok is false for other paths.
func indexAlias(alias string) (string, bool) {
	if path.Base(alias) != "index" {
		return "", false
	}
	return path.Dir(alias), true
}

// ApplyOverrides converts overridden assets into override records and
// registers their aliases, in declared order.
//
// For each filename the existing entry at "/"+filename becomes an override
// record with the declared content type, or no headers when none is declared. "/"+path is registered as an alias
// of the same record, and an index alias also claims its directory path.
// Filenames without an entry are skipped.
func ApplyOverrides(table *output.Table, overrides *manifest.OverrideSpec, report *Report) {
	overrides.Each(func(filename string, o manifest.Override) {
		canonical := "/" + filename
		if !table.Has(canonical) {
			report.AddSkip(StageOverride, canonical, "no output entry for overridden file")
			return
		}

		headers := map[string]string{}
		if o.ContentType != "" {
			headers["content-type"] = o.ContentType
		}
		item := table.NewOverride(canonical, headers)
		table.Set(canonical, item)
		report.Overrides++

		alias := "/" + o.Path
		table.Set(alias, item)
		report.Aliases++

		if dir, ok := indexAlias(alias); ok {
			table.Set(dir, item)
			report.Aliases++
		}
	})
}

// describeSkip formats why an entry kind cannot take a prerendered page.
func describeSkip(kind output.Kind) string {
	return fmt.Sprintf("output entry is a %s, not a static asset", kind)
}
