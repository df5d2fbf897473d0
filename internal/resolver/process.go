package resolver

import (
	"fmt"

	"github.com/danieljhkim/edgeroute/internal/output"
	"github.com/danieljhkim/edgeroute/internal/routes"
)

// Process reconciles the inputs into one routes collection and output table.
//
// Algorithm steps:
// 1. Bucketize routes by phase
// 2. Seed static assets
// 3. Seed functions and middleware
// 4. Apply filename overrides
// 5. Apply prerendered pages
//
// Any error aborts the whole pass; no partial result is returned.
func Process(in Input) (*Result, error) {
	if in.Manifest == nil {
		return nil, fmt.Errorf("%w: manifest is required", ErrInvalidInput)
	}

	collection, err := routes.Bucketize(in.Manifest.Routes)
	if err != nil {
		return nil, fmt.Errorf("failed to bucketize routes: %w", err)
	}

	table := output.NewTable()
	report := NewReport()

	RegisterAssets(table, in.Assets, report)
	RegisterFunctions(table, in.Functions, report)
	ApplyOverrides(table, in.Manifest.Overrides, report)
	if err := ApplyPrerendered(table, in.Prerendered, report); err != nil {
		return nil, fmt.Errorf("failed to apply prerendered pages: %w", err)
	}

	return &Result{
		Routes: collection,
		Output: table,
		Report: report,
	}, nil
}
