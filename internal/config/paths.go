// Package config manages edgeroute configuration and filesystem paths.
//
// Paths are derived from the project directory: the framework build step
// writes its output to <project>/.vercel/output, which holds config.json,
// static/ and functions/. Settings come from an optional edgeroute.toml in
// the project directory. Environment variables override both.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// SettingsFileName is the optional per-project settings file.
	SettingsFileName = "edgeroute.toml"

	// EnvProjectDir overrides the project directory.
	EnvProjectDir = "EDGEROUTE_PROJECT_DIR"

	// EnvOutputDir overrides the build-output directory.
	EnvOutputDir = "EDGEROUTE_OUTPUT_DIR"
)

// Paths contains all the filesystem paths used by edgeroute.
type Paths struct {
	// ProjectDir is the framework project root
	ProjectDir string

	// OutputDir is the build step's output directory (default: .vercel/output)
	OutputDir string

	// ManifestFile is the route manifest (config.json)
	ManifestFile string

	// StaticDir holds static assets; it is the default static output directory
	StaticDir string

	// FunctionsDir holds compiled functions and prerender configs
	FunctionsDir string

	// SettingsFile is the optional edgeroute.toml
	SettingsFile string
}

// DefaultPaths returns the paths for projectDir.
// Paths can be overridden with environment variables:
// - EDGEROUTE_PROJECT_DIR: project directory when projectDir is empty
// - EDGEROUTE_OUTPUT_DIR: build-output directory
func DefaultPaths(projectDir string) (*Paths, error) {
	if projectDir == "" {
		projectDir = os.Getenv(EnvProjectDir)
	}
	if projectDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		projectDir = cwd
	}

	projectDir, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}

	outputDir := os.Getenv(EnvOutputDir)
	if outputDir == "" {
		outputDir = filepath.Join(projectDir, ".vercel", "output")
	}
	outputDir = ResolvePath(projectDir, outputDir)

	return &Paths{
		ProjectDir:   projectDir,
		OutputDir:    outputDir,
		ManifestFile: filepath.Join(outputDir, "config.json"),
		StaticDir:    filepath.Join(outputDir, "static"),
		FunctionsDir: filepath.Join(outputDir, "functions"),
		SettingsFile: filepath.Join(projectDir, SettingsFileName),
	}, nil
}

// ResolvePath makes p absolute relative to base. Empty stays empty.
func ResolvePath(base, p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// ArtifactPath returns the default artifact location for format.
func (p *Paths) ArtifactPath(format string) string {
	ext := ".json"
	if format == FormatMsgpack {
		ext = ".msgpack"
	}
	return filepath.Join(p.OutputDir, "edge-routes"+ext)
}
