// Package staging copies static assets into a deployment output directory.
//
// Staging runs after resolution and never touches the routing table. When the
// destination is the build step's own static directory nothing is copied;
// otherwise the destination is cleared and every asset is copied, preserving
// its relative path.
package staging

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/danieljhkim/edgeroute/internal/fsops"
)

// ErrUnsafeAsset indicates an asset path escapes the source directory.
var ErrUnsafeAsset = errors.New("unsafe asset path")

// ErrUnsafeDest indicates the output directory contains the source directory,
// so clearing it would delete the assets being staged.
var ErrUnsafeDest = errors.New("unsafe output directory")

// StageRequest describes one staging run.
type StageRequest struct {
	// SourceDir is the directory assets are read from
	SourceDir string

	// DestDir is the directory assets are copied to
	DestDir string

	// DefaultDir is the build step's own static directory; staging into it is a no-op
	DefaultDir string

	// Assets are "/"-prefixed asset paths relative to SourceDir
	Assets []string

	// Jobs bounds concurrent copies (values below 1 mean 1)
	Jobs int

	// Retries is the number of extra attempts per failed copy
	Retries int
}

// Stager copies assets through an FS.
type Stager struct {
	fs     fsops.FS
	logger *zap.Logger
}

// NewStager creates a Stager.
func NewStager(fs fsops.FS, logger *zap.Logger) *Stager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stager{fs: fs, logger: logger}
}

// Stage copies req.Assets into req.DestDir and returns the number of files copied.
func (s *Stager) Stage(ctx context.Context, req StageRequest) (int, error) {
	dest, err := filepath.Abs(req.DestDir)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve output directory: %w", err)
	}
	if req.DefaultDir != "" {
		def, err := filepath.Abs(req.DefaultDir)
		if err != nil {
			return 0, fmt.Errorf("failed to resolve default directory: %w", err)
		}
		if def == dest {
			s.logger.Debug("static output is the default directory, nothing to stage", zap.String("dir", dest))
			return 0, nil
		}
	}

	src, err := filepath.Abs(req.SourceDir)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve source directory: %w", err)
	}
	if contains(dest, src) {
		return 0, fmt.Errorf("%w: %s contains source directory %s", ErrUnsafeDest, dest, src)
	}

	rels := make([]string, len(req.Assets))
	for i, asset := range req.Assets {
		rel := filepath.FromSlash(strings.TrimPrefix(asset, "/"))
		if err := s.fs.ValidateRelPath(rel); err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrUnsafeAsset, asset, err)
		}
		rels[i] = rel
	}

	s.logger.Info("output directory", zap.String("dir", dest))

	if err := s.fs.RemoveAll(dest); err != nil {
		return 0, fmt.Errorf("failed to clear output directory: %w", err)
	}
	if err := s.fs.MkdirAll(dest, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	s.logger.Info("copying static assets", zap.Int("count", len(rels)))

	jobs := req.Jobs
	if jobs < 1 {
		jobs = 1
	}

	var copied atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, rel := range rels {
		g.Go(func() error {
			src := filepath.Join(req.SourceDir, rel)
			dst := filepath.Join(dest, rel)
			if err := s.copyWithRetry(gctx, src, dst, req.Retries); err != nil {
				return err
			}
			copied.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(copied.Load()), err
	}

	return int(copied.Load()), nil
}

// contains reports whether dir is path or one of its ancestors.
func contains(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// copyWithRetry copies one file, retrying up to retries extra times.
func (s *Stager) copyWithRetry(ctx context.Context, src, dst string, retries int) error {
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err = s.fs.Copy(src, dst); err == nil {
			return nil
		}
		s.logger.Warn("copy failed",
			zap.String("src", src),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	return fmt.Errorf("failed to copy %s after %d attempts: %w", src, retries+1, err)
}
