package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	jsonOutput bool
	yamlOutput bool
	verbose    bool
	projectDir string

	// Colors for help output sections
	groupTitleColor   = color.New(color.FgCyan, color.Bold)
	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

// rootCmd is the root command for edgeroute.
var rootCmd = &cobra.Command{
	Use:     "edgeroute",
	Version: "dev",
	Short:   "Edge routing table builder",
	Long: `edgeroute turns a framework's build output into a routing table for an
edge runtime.

It reads the route manifest, static assets, functions and prerendered pages
under .vercel/output and writes a single artifact describing how every request
path resolves.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// helpFunc prints the long description, usage, commands by group and flags.
// Group titles are colored; cobra's default template has no hook for that.
func helpFunc(cmd *cobra.Command, args []string) {
	var b strings.Builder
	if cmd.Long != "" {
		b.WriteString(cmd.Long + "\n\n")
	}
	fmt.Fprintf(&b, "%s\n  %s\n\n", sectionTitleColor.Sprint("Usage:"), cmd.UseLine())

	listed := func(title, groupID string, colored *color.Color) {
		var lines []string
		for _, c := range cmd.Commands() {
			if c.GroupID == groupID && (c.IsAvailableCommand() || c.Name() == "help") {
				lines = append(lines, fmt.Sprintf("  %-11s %s\n", c.Name(), c.Short))
			}
		}
		if len(lines) == 0 {
			return
		}
		b.WriteString(colored.Sprint(title) + "\n")
		b.WriteString(strings.Join(lines, "") + "\n")
	}
	for _, g := range cmd.Groups() {
		listed(g.Title, g.ID, groupTitleColor)
	}
	listed("Additional Commands:", "", sectionTitleColor)

	if cmd.HasAvailableFlags() {
		b.WriteString(sectionTitleColor.Sprint("Flags:") + "\n")
		b.WriteString(cmd.LocalFlags().FlagUsages())
		b.WriteString(cmd.InheritedFlags().FlagUsages())
		b.WriteString("\n")
	}
	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&b, "Use \"%s [command] --help\" for more information about a command.\n", cmd.CommandPath())
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), b.String())
}

func init() {
	rootCmd.SetHelpFunc(helpFunc)

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&yamlOutput, "yaml", false, "Output in YAML format")
	rootCmd.MarkFlagsMutuallyExclusive("json", "yaml")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "C", "", "Project directory (default: $EDGEROUTE_PROJECT_DIR or the current directory)")

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "build",
		Title: "Build:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "inspect",
		Title: "Inspect:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "cli-tooling",
		Title: "CLI & Tooling:",
	})

	// CLI & Tooling commands
	versionCmd := &cobra.Command{
		Use:     "version",
		Short:   "Print the edgeroute CLI version",
		Args:    cobra.NoArgs,
		GroupID: "cli-tooling",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rootCmd.Version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	helpCmd := &cobra.Command{
		Use:     "help [command]",
		Short:   "Help about any command",
		GroupID: "cli-tooling",
		Run: func(cmd *cobra.Command, args []string) {
			target, _, err := cmd.Root().Find(args)
			if err != nil || target == nil {
				target = cmd.Root()
			}
			_ = target.Help()
		},
	}
	rootCmd.SetHelpCommand(helpCmd)

	rootCmd.SetCompletionCommandGroupID("cli-tooling")

	// Build commands
	buildCmd.GroupID = "build"
	rootCmd.AddCommand(buildCmd)

	// Inspect commands
	routesCmd.GroupID = "inspect"
	lookupCmd.GroupID = "inspect"
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(lookupCmd)
}

// Execute executes the root command.
// Errors are printed to stderr before being returned.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		return err
	}
	return nil
}
