package cli

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/edgeroute/internal/engine"
	"github.com/danieljhkim/edgeroute/internal/output"
)

var lookupDump bool

// lookupView is the --json and --yaml rendering of a lookup.
type lookupView struct {
	Path       string             `json:"path" yaml:"path"`
	Found      bool               `json:"found" yaml:"found"`
	Type       string             `json:"type,omitempty" yaml:"type,omitempty"`
	Entrypoint string             `json:"entrypoint,omitempty" yaml:"entrypoint,omitempty"`
	Canonical  string             `json:"canonicalPath,omitempty" yaml:"canonicalPath,omitempty"`
	Headers    map[string]string  `json:"headers,omitempty" yaml:"headers,omitempty"`
	Aliases    []string           `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Rules      []engine.RuleMatch `json:"rules" yaml:"rules"`
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <path>",
	Short: "Explain how a request path resolves",
	Long: `Resolve the build output without writing anything and show the output
table entry for <path>, the paths that share it, and the route rules whose
src matches or whose dest is <path>.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, logger, err := newEngine()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		result, err := eng.Lookup(context.Background(), &engine.LookupRequest{Path: args[0]})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if lookupDump {
			spew.Fdump(w, result)
			return nil
		}

		if jsonOutput || yamlOutput {
			view := lookupView{
				Path:    result.Path,
				Found:   result.Found,
				Aliases: result.Aliases,
				Rules:   result.Rules,
			}
			if result.Found {
				view.Type = result.Entry.Kind.String()
				view.Entrypoint = result.Entry.Entrypoint
				view.Canonical = result.Entry.CanonicalPath
				view.Headers = result.Entry.Headers
			}
			if view.Rules == nil {
				view.Rules = []engine.RuleMatch{}
			}
			if yamlOutput {
				return outputYAML(w, view)
			}
			return outputJSON(w, view)
		}

		out := newUI(w)
		out.section(result.Path)
		if result.Found {
			printEntry(out, result.Entry)
			if len(result.Aliases) > 0 {
				out.field("Shared with", "")
				out.bullets(result.Aliases)
			}
		} else {
			out.muted("no output table entry")
		}

		if len(result.Rules) > 0 {
			out.line("")
			out.field("Matching rules", "")
			items := make([]string, 0, len(result.Rules))
			for _, m := range result.Rules {
				items = append(items, fmt.Sprintf("%s[%d] %s -> %s", m.Phase, m.Index, m.Rule.Src, ruleTarget(m.Rule)))
			}
			out.bullets(items)
		}
		return nil
	},
}

func printEntry(out *ui, e output.Entry) {
	out.field("Type", e.Kind.String())
	switch e.Kind {
	case output.KindFunction, output.KindMiddleware:
		out.field("Entrypoint", e.Entrypoint)
	case output.KindOverride:
		out.field("Serves", e.CanonicalPath)
		if len(e.Headers) > 0 {
			headers, err := formatJSON(e.Headers)
			if err == nil {
				out.field("Headers", headers)
			}
		}
	}
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupDump, "dump", false, "Dump the raw lookup result")
}
