// Package discover reads the build-output tree produced by the framework
// build step and turns it into resolver inputs.
//
// Layout under the output directory:
//
//	config.json                        route manifest
//	static/**                          static assets
//	functions/<name>.func/             compiled function
//	functions/<name>.func/.vc-config.json
//	functions/<name>.prerender-config.json
//
// A function with a sibling prerender config is a prerendered page: its
// fallback file is served statically and it is not registered as a function.
package discover
