package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/edgeroute/internal/engine"
	"github.com/danieljhkim/edgeroute/internal/output"
	"github.com/danieljhkim/edgeroute/internal/routes"
)

var routesEntries bool

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Show routes grouped by phase",
	Long: `Resolve the build output without writing anything and print the route
rules grouped by phase, in the order the edge router walks them.

With --entries, print the output table instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, logger, err := newEngine()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		result, err := eng.Build(context.Background(), &engine.BuildRequest{DryRun: true})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if routesEntries {
			switch {
			case jsonOutput:
				return outputJSON(w, result.Result.Output)
			case yamlOutput:
				return outputYAML(w, result.Result.Output)
			}
			printEntries(newUI(w), result.Result.Output)
			return nil
		}

		switch {
		case jsonOutput:
			return outputJSON(w, result.Result.Routes)
		case yamlOutput:
			return outputYAML(w, result.Result.Routes)
		}
		printPhases(newUI(w), result.Result.Routes)
		return nil
	},
}

func printPhases(out *ui, c *routes.Collection) {
	for _, phase := range routes.Phases {
		rules := c.Get(phase)
		out.section(fmt.Sprintf("%s (%s)", phase, plural(len(rules), "rule", "rules")))
		if len(rules) == 0 {
			out.muted("no rules")
			continue
		}
		rows := make([][]string, 0, len(rules))
		for i, r := range rules {
			rows = append(rows, []string{strconv.Itoa(i), r.Src, ruleTarget(r), ruleFlags(r)})
		}
		out.table([]string{"#", "SRC", "TARGET", "FLAGS"}, rows)
	}
}

// ruleTarget describes where a rule sends a request.
func ruleTarget(r routes.Rule) string {
	switch {
	case r.MiddlewarePath != "":
		return "middleware:" + r.MiddlewarePath
	case r.Dest != "":
		return r.Dest
	case r.Status != 0:
		return strconv.Itoa(r.Status)
	}
	return "-"
}

func ruleFlags(r routes.Rule) string {
	var flags []string
	if r.Continue {
		flags = append(flags, "continue")
	}
	if r.Check {
		flags = append(flags, "check")
	}
	if len(r.Methods) > 0 {
		flags = append(flags, strings.Join(r.Methods, "|"))
	}
	if len(r.Headers) > 0 {
		flags = append(flags, "headers="+strings.Join(output.HeaderNames(r.Headers), ","))
	}
	if len(r.Extra) > 0 {
		flags = append(flags, "+"+strings.Join(slices.Sorted(maps.Keys(r.Extra)), ",+"))
	}
	return strings.Join(flags, " ")
}

func printEntries(out *ui, t *output.Table) {
	out.section(fmt.Sprintf("Output Table (%s)", plural(t.Len(), "entry", "entries")))
	rows := make([][]string, 0, t.Len())
	for _, e := range t.Entries() {
		rows = append(rows, []string{e.Path, e.Kind.String(), entryTarget(e)})
	}
	out.table([]string{"PATH", "TYPE", "TARGET"}, rows)
}

// entryTarget describes what an output entry serves.
func entryTarget(e output.Entry) string {
	switch e.Kind {
	case output.KindFunction, output.KindMiddleware:
		return e.Entrypoint
	case output.KindOverride:
		names := output.HeaderNames(e.Headers)
		if len(names) == 0 {
			return e.CanonicalPath
		}
		return fmt.Sprintf("%s [%s]", e.CanonicalPath, strings.Join(names, ","))
	}
	return ""
}

func init() {
	routesCmd.Flags().BoolVar(&routesEntries, "entries", false, "Print the output table instead of route rules")
}
