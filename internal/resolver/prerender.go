package resolver

import (
	"github.com/danieljhkim/edgeroute/internal/manifest"
	"github.com/danieljhkim/edgeroute/internal/output"
)

// ApplyPrerendered applies prerendered headers and aliases, in declared order.
//
// Prerendered headers are authoritative: an existing override record has its
// headers replaced outright, dropping e.g. an override's content-type that
// the page does not repeat. A static entry is converted to an override record
// in place. Every alias path is then pointed at that same record.
func ApplyPrerendered(table *output.Table, pages *manifest.PrerenderedSet, report *Report) error {
	var err error
	pages.Each(func(assetPath string, page manifest.PrerenderedEntry) {
		if err != nil {
			return
		}

		existing, ok := table.Get(assetPath)
		if !ok {
			report.AddSkip(StagePrerendered, assetPath, "no output entry for prerendered page")
			return
		}

		var item output.Item
		switch existing.Kind {
		case output.KindOverride:
			if err = table.ReplaceHeaders(existing.Record, page.Headers); err != nil {
				return
			}
			item = existing
		case output.KindStatic:
			item = table.NewOverride(assetPath, page.Headers)
			table.Set(assetPath, item)
		case output.KindFunction, output.KindMiddleware:
			report.AddSkip(StagePrerendered, assetPath, describeSkip(existing.Kind))
			return
		}
		report.Prerendered++

		for _, alias := range page.Aliases {
			table.Set(alias, item)
			report.Aliases++
		}
	})
	return err
}
