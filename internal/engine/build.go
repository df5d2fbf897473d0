package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/danieljhkim/edgeroute/internal/artifact"
	"github.com/danieljhkim/edgeroute/internal/config"
	"github.com/danieljhkim/edgeroute/internal/staging"
)

// Build resolves the build output into a routing table and writes it as the
// routing artifact.
//
// Nothing is written until the table has been fully resolved, so a failed
// build never leaves a partial artifact behind.
func (e *Engine) Build(ctx context.Context, req *BuildRequest) (*BuildResult, error) {
	start := e.clock.Now()
	opts := e.buildOptions(req)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	res, err := e.resolve(ctx, !req.DryRun)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{
		Result:    res.result,
		Format:    opts.Build.Format,
		BuildID:   e.newID(),
		StaticDir: e.paths.StaticDir,
		DryRun:    req.DryRun,
	}
	if opts.Build.StaticOut != "" {
		result.StaticDir = config.ResolvePath(e.paths.ProjectDir, opts.Build.StaticOut)
	}

	if req.DryRun {
		result.Duration = e.clock.Now().Sub(start)
		return result, nil
	}

	stager := staging.NewStager(e.fs, e.logger)
	staged, err := stager.Stage(ctx, staging.StageRequest{
		SourceDir:  e.paths.StaticDir,
		DestDir:    result.StaticDir,
		DefaultDir: e.paths.StaticDir,
		Assets:     res.assets,
		Jobs:       opts.Build.Jobs,
		Retries:    opts.Build.Retries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to stage static assets: %w", err)
	}
	result.Staged = staged

	doc := &artifact.Document{
		Version:       artifact.SchemaVersion,
		ConfigVersion: res.manifest.Version,
		BuildID:       result.BuildID,
		GeneratedAt:   e.clock.Now(),
		Routes:        res.result.Routes,
		Output:        res.result.Output,
	}
	data, err := artifact.Encode(doc, opts.Build.Format, e.hasher)
	if err != nil {
		return nil, err
	}

	result.ArtifactPath = config.ResolvePath(e.paths.ProjectDir, opts.Build.Artifact)
	if result.ArtifactPath == "" {
		result.ArtifactPath = e.paths.ArtifactPath(opts.Build.Format)
	}
	if err := e.fs.AtomicWrite(result.ArtifactPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write artifact: %w", err)
	}
	result.Digest = doc.Digest
	result.Duration = e.clock.Now().Sub(start)

	e.logger.Info("build complete",
		zap.String("buildId", result.BuildID),
		zap.String("artifact", result.ArtifactPath),
		zap.String("digest", result.Digest),
		zap.Int("entries", res.result.Output.Len()),
		zap.Int("staged", staged),
		zap.Duration("duration", result.Duration))

	return result, nil
}

// buildOptions overlays non-zero request fields onto the loaded settings.
func (e *Engine) buildOptions(req *BuildRequest) config.Settings {
	opts := e.settings
	if req.StaticOut != "" {
		opts.Build.StaticOut = req.StaticOut
	}
	if req.Artifact != "" {
		opts.Build.Artifact = req.Artifact
	}
	if req.Format != "" {
		opts.Build.Format = req.Format
	}
	if req.Jobs != 0 {
		opts.Build.Jobs = req.Jobs
	}
	if req.Retries != 0 {
		opts.Build.Retries = req.Retries
	}
	return opts
}
