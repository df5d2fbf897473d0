// Package routes splits a manifest's ordered route list into phase buckets.
//
// The route list interleaves matchable rules with phase markers
// ({"handle": "<phase>"}). A marker switches the phase that subsequent rules
// are appended to; it never appears in the output itself. The request-time
// router walks the buckets in the canonical order given by Phases.
package routes
