package manifest

import (
	"github.com/danieljhkim/edgeroute/internal/ordered"
	"github.com/danieljhkim/edgeroute/internal/routes"
)

// Manifest is the decoded config.json.
type Manifest struct {
	Version   int
	Routes    []routes.Rule
	Overrides *OverrideSpec
}

// Override remaps an asset filename (e.g. "404.html") to an extensionless
// path with an explicit content type.
type Override struct {
	Path        string `json:"path"`
	ContentType string `json:"contentType,omitempty"`
}

// OverrideSpec maps asset filenames to overrides in declared order.
type OverrideSpec = ordered.Map[string, Override]

// PrerenderedEntry describes a prerendered page keyed by its asset path.
type PrerenderedEntry struct {
	Headers map[string]string
	Aliases []string
}

// PrerenderedSet maps asset paths to prerendered entries in declared order.
type PrerenderedSet = ordered.Map[string, PrerenderedEntry]

// FunctionSet maps logical function paths to entrypoint files in declared order.
type FunctionSet = ordered.Map[string, string]
