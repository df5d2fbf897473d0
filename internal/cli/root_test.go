package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeRoot runs the root command with args and returns what it wrote.
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag in the tree to its default. Flag values
// outlive Execute, so a --help in one test would otherwise leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// section returns the lines of help between title and the next blank line.
func section(help, title string) []string {
	_, rest, ok := strings.Cut(help, title+"\n")
	if !ok {
		return nil
	}
	block, _, _ := strings.Cut(rest, "\n\n")
	var names []string
	for _, line := range strings.Split(block, "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			names = append(names, fields[0])
		}
	}
	return names
}

func TestHelp_GroupsCommands(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	help, err := executeRoot(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, help, "Usage:\n  edgeroute [flags]")
	assert.Equal(t, []string{"build"}, section(help, "Build:"))
	assert.Equal(t, []string{"lookup", "routes"}, section(help, "Inspect:"))
	assert.Contains(t, section(help, "CLI & Tooling:"), "version")
	assert.Contains(t, section(help, "CLI & Tooling:"), "help")
	assert.NotContains(t, help, "Additional Commands:")

	for _, flag := range []string{"--json", "--yaml", "--verbose", "--project"} {
		assert.Contains(t, help, flag)
	}
}

func TestHelp_BuildFlags(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	help, err := executeRoot(t, "build", "--help")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(help, buildCmd.Long))
	for _, flag := range []string{"--static-out", "--out", "--format", "--jobs", "--retries", "--dry-run", "--json"} {
		assert.Contains(t, help, flag)
	}
	assert.NotContains(t, help, "for more information about a command", "build has no subcommands")
}

func TestHelpCommand_ShowsTargetHelp(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	help, err := executeRoot(t, "help", "lookup")
	require.NoError(t, err)
	assert.Contains(t, help, "edgeroute lookup <path>")
	assert.Contains(t, help, "--dump")
}

func TestVersion(t *testing.T) {
	t.Cleanup(func() { rootCmd.Version = "dev" })

	SetVersion("")
	assert.Equal(t, "dev", rootCmd.Version)

	SetVersion("1.2.3")
	out, err := executeRoot(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)

	out, err = executeRoot(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)
}

func TestJSONAndYAMLAreExclusive(t *testing.T) {
	_, err := executeRoot(t, "routes", "--json", "--yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
}

func TestUnknownCommand(t *testing.T) {
	_, err := executeRoot(t, "deploy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "deploy"`)
}
