// Package manifest loads the build step's config.json and defines the
// ordered input collections consumed by the resolver.
//
// Override order drives alias creation order, so the overrides object is
// walked token by token instead of being decoded into a Go map.
package manifest
