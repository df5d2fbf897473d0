package resolver

import "github.com/danieljhkim/edgeroute/internal/output"

// RegisterAssets seeds one static entry per asset path, in input order.
// Paths that already have an entry are left alone.
func RegisterAssets(table *output.Table, assets []string, report *Report) {
	for _, p := range assets {
		if table.Has(p) {
			continue
		}
		table.Set(p, output.Static())
		report.Assets++
	}
}
