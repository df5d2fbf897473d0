package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/edgeroute/internal/engine"
	"github.com/danieljhkim/edgeroute/internal/resolver"
)

var (
	buildStaticOut string
	buildArtifact  string
	buildFormat    string
	buildJobs      int
	buildRetries   int
	buildDryRun    bool
)

// buildSummary is the --json rendering of a build.
type buildSummary struct {
	BuildID      string           `json:"buildId"`
	DryRun       bool             `json:"dryRun"`
	ArtifactPath string           `json:"artifactPath,omitempty"`
	Format       string           `json:"format"`
	Digest       string           `json:"digest,omitempty"`
	StaticDir    string           `json:"staticDir"`
	Staged       int              `json:"staged"`
	Entries      int              `json:"entries"`
	Rules        int              `json:"rules"`
	Report       *resolver.Report `json:"report"`
	DurationMs   int64            `json:"durationMs"`
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the edge routing artifact",
	Long: `Resolve the framework's build output into a routing table and write it
as an artifact for the edge runtime.

Routes are grouped by phase. Static assets, functions, filename overrides and
prerendered pages are merged into a single output table. With --static-out,
static assets are staged into that directory first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, logger, err := newEngine()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx := context.Background()
		req := &engine.BuildRequest{
			StaticOut: buildStaticOut,
			Artifact:  buildArtifact,
			Format:    buildFormat,
			Jobs:      buildJobs,
			Retries:   buildRetries,
			DryRun:    buildDryRun,
		}

		result, err := eng.Build(ctx, req)
		if err != nil {
			return err
		}

		report := result.Result.Report
		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), buildSummary{
				BuildID:      result.BuildID,
				DryRun:       result.DryRun,
				ArtifactPath: result.ArtifactPath,
				Format:       result.Format,
				Digest:       result.Digest,
				StaticDir:    result.StaticDir,
				Staged:       result.Staged,
				Entries:      result.Result.Output.Len(),
				Rules:        result.Result.Routes.Len(),
				Report:       report,
				DurationMs:   result.Duration.Milliseconds(),
			})
		}

		out := newUI(cmd.OutOrStdout())
		if report.HasSkips() {
			out.section("Skipped")
			for _, skip := range report.Skipped {
				out.warn(fmt.Sprintf("%s %s: %s", skip.Stage, skip.Path, skip.Reason))
			}
		}

		out.section("Output Table")
		out.field("Static assets", plural(report.Assets, "file", "files"))
		out.field("Functions", plural(report.Functions, "function", "functions"))
		out.field("Middleware", fmt.Sprintf("%v", report.Middleware))
		out.field("Overrides", plural(report.Overrides, "file", "files"))
		out.field("Prerendered", plural(report.Prerendered, "page", "pages"))
		out.field("Aliases", plural(report.Aliases, "path", "paths"))
		out.line("")

		entries := plural(result.Result.Output.Len(), "entry", "entries")
		rules := plural(result.Result.Routes.Len(), "rule", "rules")
		if result.DryRun {
			out.line(fmt.Sprintf("Dry run: would write %s and %s", entries, rules))
			return nil
		}

		out.ok(fmt.Sprintf("Built %s and %s in %s", entries, rules, result.Duration.Round(time.Millisecond)))
		out.field("Artifact", result.ArtifactPath)
		out.field("Digest", result.Digest)
		out.field("Build ID", result.BuildID)
		if result.Staged > 0 {
			out.field("Static output", fmt.Sprintf("%s (%s)", result.StaticDir, plural(result.Staged, "file", "files")))
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildStaticOut, "static-out", "", "Stage static assets into this directory")
	buildCmd.Flags().StringVarP(&buildArtifact, "out", "o", "", "Artifact path (default: <output>/edge-routes.<ext>)")
	buildCmd.Flags().StringVarP(&buildFormat, "format", "f", "", "Artifact format (json or msgpack)")
	buildCmd.Flags().IntVarP(&buildJobs, "jobs", "j", 0, "Concurrent asset copies")
	buildCmd.Flags().IntVar(&buildRetries, "retries", 0, "Extra attempts per failed asset copy")
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "Resolve the table without writing anything")
}
