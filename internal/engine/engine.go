// Package engine provides the core business logic for edgeroute operations.
//
// The engine package acts as the orchestration layer between CLI commands and
// lower-level operations. Build turns the framework's build output into the
// routing artifact.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Build: Produces the routing artifact
//   - Lookup: Explains how a single request path resolves
package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/danieljhkim/edgeroute/internal/clock"
	"github.com/danieljhkim/edgeroute/internal/config"
	"github.com/danieljhkim/edgeroute/internal/discover"
	"github.com/danieljhkim/edgeroute/internal/fsops"
	"github.com/danieljhkim/edgeroute/internal/hash"
	"github.com/danieljhkim/edgeroute/internal/manifest"
	"github.com/danieljhkim/edgeroute/internal/resolver"
	"github.com/danieljhkim/edgeroute/internal/routes"
)

// Engine orchestrates all edgeroute operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs       fsops.FS
	hasher   hash.Hasher
	clock    clock.Clock
	logger   *zap.Logger
	paths    config.Paths
	settings config.Settings
	newID    func() string
}

// New creates a new Engine with the given dependencies.
func New(
	fs fsops.FS,
	hasher hash.Hasher,
	clk clock.Clock,
	logger *zap.Logger,
	paths config.Paths,
	settings config.Settings,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		fs:       fs,
		hasher:   hasher,
		clock:    clk,
		logger:   logger,
		paths:    paths,
		settings: settings,
		newID:    uuid.NewString,
	}
}

// Paths returns the paths the engine operates on.
func (e *Engine) Paths() config.Paths {
	return e.paths
}

// resolved is the outcome of reading the build output and resolving it.
type resolved struct {
	manifest *manifest.Manifest
	assets   []string
	result   *resolver.Result
}

// resolve reads the build output tree and runs the resolver.
// With stage false, prerender fallbacks are not copied into the static dir.
func (e *Engine) resolve(ctx context.Context, stage bool) (*resolved, error) {
	exists, err := e.fs.Exists(e.paths.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to check build output: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: build output directory %s (run the framework build first)", ErrNotFound, e.paths.OutputDir)
	}

	exists, err = e.fs.Exists(e.paths.ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("failed to check manifest: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: route manifest %s", ErrNotFound, e.paths.ManifestFile)
	}

	m, err := manifest.Load(e.fs, e.paths.ManifestFile)
	if errors.Is(err, manifest.ErrInvalidManifest) {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err != nil {
		return nil, err
	}

	// Route phases are checked before any fallback is copied into the
	// static directory.
	if _, err := routes.Bucketize(m.Routes); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	// Assets are listed before fallbacks are staged so dry runs and real
	// builds order the table identically.
	assets, err := discover.Assets(e.fs, e.paths.StaticDir)
	if err != nil {
		return nil, err
	}

	var prerendered *manifest.PrerenderedSet
	if stage {
		prerendered, err = discover.Prerendered(e.fs, e.paths.FunctionsDir, e.paths.StaticDir)
	} else {
		prerendered, err = discover.PrerenderedConfigs(e.fs, e.paths.FunctionsDir)
	}
	if err != nil {
		return nil, err
	}
	for _, p := range prerendered.Keys() {
		if !slices.Contains(assets, p) {
			assets = append(assets, p)
		}
	}

	functions, err := discover.Functions(e.fs, e.paths.FunctionsDir)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logger.Debug("build output discovered",
		zap.Int("routes", len(m.Routes)),
		zap.Int("assets", len(assets)),
		zap.Int("prerendered", prerendered.Len()),
		zap.Int("functions", functions.Len()))

	result, err := resolver.Process(resolver.Input{
		Manifest:    m,
		Assets:      assets,
		Prerendered: prerendered,
		Functions:   functions,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	for _, skip := range result.Report.Skipped {
		e.logger.Warn("skipped",
			zap.String("stage", string(skip.Stage)),
			zap.String("path", skip.Path),
			zap.String("reason", skip.Reason))
	}

	return &resolved{manifest: m, assets: assets, result: result}, nil
}
