package resolver

import (
	"strings"

	"github.com/danieljhkim/edgeroute/internal/manifest"
	"github.com/danieljhkim/edgeroute/internal/output"
)

// MiddlewarePath is the logical function path reserved for middleware.
const MiddlewarePath = "/middleware"

// RegisterFunctions seeds function and middleware entries.
//
// Route rules reference middleware by its unprefixed name, so the reserved
// /middleware function is stored under "middleware". Functions replace any
// static entry at the same path.
func RegisterFunctions(table *output.Table, functions *manifest.FunctionSet, report *Report) {
	functions.Each(func(path, entrypoint string) {
		if path == MiddlewarePath {
			table.Set(strings.TrimPrefix(path, "/"), output.Middleware(entrypoint))
			report.Middleware = true
			return
		}
		table.Set(path, output.Function(entrypoint))
		report.Functions++
	})
}
