// Package resolver merges the build step's independently produced inputs
// into one routing table.
//
// Process runs a fixed sequence over in-memory data:
//   - Bucketize the manifest routes into phase buckets
//   - Seed one static entry per asset path
//   - Seed function and middleware entries
//   - Apply filename overrides and their extensionless aliases
//   - Apply prerendered headers and aliases
//
// Overrides must run before prerendering so prerendered headers supersede an
// override's content type on the same record. Aliases never copy a record;
// they point at the canonical entry's record in the output table's arena.
//
// Everything here is synchronous and deterministic. Paths an override or
// prerendered page names but the table lacks are skipped and listed in the
// Report rather than treated as errors.
package resolver
