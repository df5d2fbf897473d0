package discover

import (
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/edgeroute/internal/fsops"
	"github.com/danieljhkim/edgeroute/internal/manifest"
	"github.com/danieljhkim/edgeroute/internal/ordered"
)

const (
	funcSuffix      = ".func"
	funcConfigName  = ".vc-config.json"
	prerenderSuffix = ".prerender-config.json"

	defaultEntrypoint = "index.js"
)

type funcConfig struct {
	Runtime    string `json:"runtime"`
	Entrypoint string `json:"entrypoint"`
}

// funcName returns "<name>" for a "<name>.func/.vc-config.json" listing entry.
func funcName(rel string) (string, bool) {
	dir, file := path.Split(rel)
	if file != funcConfigName {
		return "", false
	}
	dir = strings.TrimSuffix(dir, "/")
	if !strings.HasSuffix(dir, funcSuffix) {
		return "", false
	}
	name := strings.TrimSuffix(dir, funcSuffix)
	if name == "" || strings.Contains(name, funcSuffix+"/") {
		return "", false
	}
	return name, true
}

// Functions maps every non-prerendered function to its entrypoint, in
// lexical order of function name.
func Functions(fs fsops.FS, functionsDir string) (*manifest.FunctionSet, error) {
	files, err := fs.ListFiles(functionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list functions: %w", err)
	}

	prerendered := make(map[string]bool)
	for _, f := range files {
		if name, ok := strings.CutSuffix(f, prerenderSuffix); ok {
			prerendered[name] = true
		}
	}

	set := ordered.New[string, string](len(files))
	for _, f := range files {
		name, ok := funcName(f)
		if !ok || prerendered[name] {
			continue
		}

		data, err := fs.ReadFile(filepath.Join(functionsDir, filepath.FromSlash(f)))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
		var cfg funcConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f, err)
		}
		entrypoint := cfg.Entrypoint
		if entrypoint == "" {
			entrypoint = defaultEntrypoint
		}

		set.Set("/"+name, "/"+name+"/"+entrypoint)
	}
	return set, nil
}
