package resolver

import (
	"errors"

	"github.com/danieljhkim/edgeroute/internal/manifest"
	"github.com/danieljhkim/edgeroute/internal/output"
	"github.com/danieljhkim/edgeroute/internal/routes"
)

// ErrInvalidInput indicates the inputs do not have the expected shape.
var ErrInvalidInput = errors.New("invalid resolver input")

// Input bundles the four upstream inputs.
type Input struct {
	// Manifest supplies the route list and filename overrides.
	Manifest *manifest.Manifest

	// Assets are static asset paths, each beginning with "/".
	Assets []string

	// Prerendered maps asset paths to prerendered pages, in declared order.
	Prerendered *manifest.PrerenderedSet

	// Functions maps logical paths to entrypoints, in declared order.
	Functions *manifest.FunctionSet
}

// Result is the consolidated routing table.
type Result struct {
	Routes *routes.Collection
	Output *output.Table
	Report *Report
}

// Stage names a resolution step, used when reporting skips.
type Stage string

// Stage constants
const (
	StageOverride    Stage = "override"
	StagePrerendered Stage = "prerendered"
)

// Skip records an override or prerendered page that did not apply.
type Skip struct {
	// Stage is the step that skipped the path
	Stage Stage `json:"stage"`

	// Path is the output table key that was looked up
	Path string `json:"path"`

	// Reason is a human-readable explanation
	Reason string `json:"reason"`
}

// Report summarizes what Process did.
type Report struct {
	Assets      int    `json:"assets"`
	Functions   int    `json:"functions"`
	Middleware  bool   `json:"middleware"`
	Overrides   int    `json:"overrides"`
	Prerendered int    `json:"prerendered"`
	Aliases     int    `json:"aliases"`
	Skipped     []Skip `json:"skipped"`
}

// NewReport creates an empty Report.
func NewReport() *Report {
	return &Report{Skipped: []Skip{}}
}

// HasSkips returns true if any override or prerendered page was skipped.
func (r *Report) HasSkips() bool {
	return len(r.Skipped) > 0
}

// AddSkip records a skipped path.
func (r *Report) AddSkip(stage Stage, path, reason string) {
	r.Skipped = append(r.Skipped, Skip{Stage: stage, Path: path, Reason: reason})
}
