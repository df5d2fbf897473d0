package engine

// BuildRequest represents a request to build the routing artifact.
// Zero-valued fields fall back to the loaded settings.
type BuildRequest struct {
	// StaticOut is a directory to stage static assets into (empty: settings)
	StaticOut string

	// Artifact is the artifact path (empty: settings, then the default path)
	Artifact string

	// Format is the artifact encoding ("json" or "msgpack")
	Format string

	// Jobs bounds concurrent asset copies
	Jobs int

	// Retries is the number of extra attempts per failed copy
	Retries int

	// DryRun resolves the table without writing anything
	DryRun bool
}

// LookupRequest represents a request to explain how a path resolves.
type LookupRequest struct {
	// Path is the request path, beginning with "/"
	Path string
}
