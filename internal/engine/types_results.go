package engine

import (
	"time"

	"github.com/danieljhkim/edgeroute/internal/output"
	"github.com/danieljhkim/edgeroute/internal/resolver"
	"github.com/danieljhkim/edgeroute/internal/routes"
)

// BuildResult represents the result of a build.
type BuildResult struct {
	// Result is the resolved routing table
	Result *resolver.Result

	// ArtifactPath is where the artifact was written (empty if DryRun)
	ArtifactPath string

	// Format is the artifact encoding
	Format string

	// Digest is the artifact content digest (empty if DryRun)
	Digest string

	// BuildID uniquely identifies this build
	BuildID string

	// StaticDir is where static assets are served from
	StaticDir string

	// Staged is the number of assets copied to StaticDir
	Staged int

	// DryRun indicates nothing was written
	DryRun bool

	// Duration is the wall time the build took
	Duration time.Duration
}

// RuleMatch is a route rule that mentions a looked-up path.
type RuleMatch struct {
	Phase routes.Phase `json:"phase" yaml:"phase"`
	Index int          `json:"index" yaml:"index"`
	Rule  routes.Rule  `json:"rule" yaml:"rule"`
}

// LookupResult explains how a single path resolves.
type LookupResult struct {
	// Path is the looked-up path
	Path string

	// Found indicates Path has an output table entry
	Found bool

	// Entry is the output table entry for Path (zero if not Found)
	Entry output.Entry

	// Aliases are the other paths sharing Entry's override record
	Aliases []string

	// Rules are the route rules whose src or dest names Path
	Rules []RuleMatch
}
