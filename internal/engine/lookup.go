package engine

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/danieljhkim/edgeroute/internal/output"
	"github.com/danieljhkim/edgeroute/internal/routes"
)

// Lookup explains how a request path resolves: its output table entry and
// the route rules that match it.
//
// Lookup never writes to disk. It returns ErrNotFound if neither the table nor
// any rule knows the path.
func (e *Engine) Lookup(ctx context.Context, req *LookupRequest) (*LookupResult, error) {
	if !strings.HasPrefix(req.Path, "/") {
		return nil, fmt.Errorf("%w: path %q must begin with \"/\"", ErrValidation, req.Path)
	}

	res, err := e.resolve(ctx, false)
	if err != nil {
		return nil, err
	}

	result := &LookupResult{Path: req.Path, Rules: matchingRules(res.result.Routes, req.Path)}
	entry, found := res.result.Output.Resolve(req.Path)
	if found {
		result.Entry = entry
		if item, _ := res.result.Output.Get(req.Path); item.Kind == output.KindOverride {
			for _, alias := range res.result.Output.Aliases(item.Record) {
				if alias != req.Path {
					result.Aliases = append(result.Aliases, alias)
				}
			}
		}
	}

	if !found && len(result.Rules) == 0 {
		return nil, fmt.Errorf("%w: no output entry or route matches %s", ErrNotFound, req.Path)
	}
	result.Found = found
	return result, nil
}

// matchingRules returns the rules whose src pattern matches path or whose
// dest is path, in canonical phase order.
func matchingRules(c *routes.Collection, path string) []RuleMatch {
	var matches []RuleMatch
	for _, phase := range routes.Phases {
		for i, r := range c.Get(phase) {
			if r.Dest == path || srcMatches(r.Src, path) {
				matches = append(matches, RuleMatch{Phase: phase, Index: i, Rule: r})
			}
		}
	}
	return matches
}

// srcMatches anchors src the way the edge router does. Invalid patterns
// never match.
func srcMatches(src, path string) bool {
	if src == "" {
		return false
	}
	if src == path {
		return true
	}
	re, err := regexp.Compile("^(?:" + strings.TrimSuffix(strings.TrimPrefix(src, "^"), "$") + ")$")
	if err != nil {
		return false
	}
	return re.MatchString(path)
}
