package integration

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/danieljhkim/edgeroute/internal/clock"
	"github.com/danieljhkim/edgeroute/internal/config"
	"github.com/danieljhkim/edgeroute/internal/engine"
	"github.com/danieljhkim/edgeroute/internal/fsops"
	"github.com/danieljhkim/edgeroute/internal/hash"
)

// testFS is a filesystem implementation that tracks files in memory for testing
type testFS struct {
	files map[string][]byte
	dirs  map[string]bool
}

func newTestFS() *testFS {
	return &testFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (t *testFS) under(root, p string) bool {
	return p == root || strings.HasPrefix(p, root+"/")
}

func (t *testFS) MkdirAll(p string, perm os.FileMode) error {
	t.dirs[filepath.Clean(p)] = true
	return nil
}

func (t *testFS) RemoveAll(p string) error {
	p = filepath.Clean(p)
	for f := range t.files {
		if t.under(p, f) {
			delete(t.files, f)
		}
	}
	for d := range t.dirs {
		if t.under(p, d) {
			delete(t.dirs, d)
		}
	}
	return nil
}

func (t *testFS) Copy(src, dst string) error {
	content, ok := t.files[filepath.Clean(src)]
	if !ok {
		return &fs.PathError{Op: "copy", Path: src, Err: fs.ErrNotExist}
	}
	t.files[filepath.Clean(dst)] = append([]byte(nil), content...)
	return nil
}

func (t *testFS) AtomicWrite(p string, data []byte, perm os.FileMode) error {
	t.files[filepath.Clean(p)] = append([]byte(nil), data...)
	return nil
}

func (t *testFS) ReadFile(p string) ([]byte, error) {
	content, ok := t.files[filepath.Clean(p)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return content, nil
}

func (t *testFS) Exists(p string) (bool, error) {
	p = filepath.Clean(p)
	if t.dirs[p] {
		return true, nil
	}
	for f := range t.files {
		if t.under(p, f) {
			return true, nil
		}
	}
	return false, nil
}

func (t *testFS) ListFiles(root string) ([]string, error) {
	root = filepath.Clean(root)
	var out []string
	for f := range t.files {
		if strings.HasPrefix(f, root+"/") {
			out = append(out, strings.TrimPrefix(f, root+"/"))
		}
	}
	sort.Strings(out)
	return out, nil
}

func (t *testFS) ValidateRelPath(relPath string) error {
	return fsops.NewRealFS().ValidateRelPath(relPath)
}

// write adds files under root.
func (t *testFS) write(root string, files map[string]string) {
	for rel, content := range files {
		t.files[path.Join(root, rel)] = []byte(content)
	}
}

// setupTestEngine creates an engine over an in-memory project at /project.
func setupTestEngine(t *testing.T) (*engine.Engine, *testFS, config.Paths) {
	t.Helper()

	outputDir := "/project/.vercel/output"
	paths := config.Paths{
		ProjectDir:   "/project",
		OutputDir:    outputDir,
		ManifestFile: outputDir + "/config.json",
		StaticDir:    outputDir + "/static",
		FunctionsDir: outputDir + "/functions",
		SettingsFile: "/project/" + config.SettingsFileName,
	}

	memFS := newTestFS()
	hasher := hash.NewSHA256Hasher()
	clk := clock.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	eng := engine.New(memFS, hasher, clk, zap.NewNop(), paths, *config.DefaultSettings())
	return eng, memFS, paths
}

func mustRead(t *testing.T, f *testFS, p string) string {
	t.Helper()
	data, err := f.ReadFile(p)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", p, err)
	}
	return string(data)
}

func orderOf(t *testing.T, doc string, keys ...string) {
	t.Helper()
	last := -1
	for _, k := range keys {
		i := strings.Index(doc, fmt.Sprintf("%q:", k))
		if i < 0 {
			t.Fatalf("key %q missing from artifact", k)
		}
		if i < last {
			t.Errorf("key %q out of order", k)
		}
		last = i
	}
}
