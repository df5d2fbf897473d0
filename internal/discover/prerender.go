package discover

import (
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/danieljhkim/edgeroute/internal/fsops"
	"github.com/danieljhkim/edgeroute/internal/manifest"
	"github.com/danieljhkim/edgeroute/internal/ordered"
)

type prerenderConfig struct {
	Fallback *struct {
		FsPath string `json:"fsPath"`
	} `json:"fallback"`
	InitialHeaders map[string]string `json:"initialHeaders"`
}

// routeGroup matches a "(group)" path segment, which never appears in URLs.
var routeGroup = regexp.MustCompile(`/\([^/]+\)`)

// AssetPath returns the static asset path a prerendered function is served from.
func AssetPath(name string) string {
	p := "/" + name
	if path.Ext(p) == "" {
		p += ".html"
	}
	return p
}

// Aliases derives the request paths that should also serve assetPath: the
// route-group-stripped path, the extensionless form of .html pages, and the
// directory path of index pages.
func Aliases(assetPath string) []string {
	aliases := []string{}
	stripped := routeGroup.ReplaceAllString(assetPath, "")
	if stripped == "" {
		stripped = "/"
	}
	if stripped != assetPath {
		aliases = append(aliases, stripped)
	}
	if path.Ext(stripped) != ".html" {
		return aliases
	}

	bare := strings.TrimSuffix(stripped, ".html")
	aliases = append(aliases, bare)
	if path.Base(bare) == "index" {
		aliases = append(aliases, path.Dir(bare))
	}
	return aliases
}

// Prerendered reads every prerender config under functionsDir. Each page's
// fallback file is copied into staticDir at its asset path unless an asset
// already exists there.
func Prerendered(fs fsops.FS, functionsDir, staticDir string) (*manifest.PrerenderedSet, error) {
	return prerendered(fs, functionsDir, staticDir, true)
}

// PrerenderedConfigs is Prerendered without copying any fallback files.
func PrerenderedConfigs(fs fsops.FS, functionsDir string) (*manifest.PrerenderedSet, error) {
	return prerendered(fs, functionsDir, "", false)
}

func prerendered(fs fsops.FS, functionsDir, staticDir string, stage bool) (*manifest.PrerenderedSet, error) {
	files, err := fs.ListFiles(functionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list functions: %w", err)
	}

	set := ordered.New[string, manifest.PrerenderedEntry](0)
	for _, f := range files {
		name, ok := strings.CutSuffix(f, prerenderSuffix)
		if !ok {
			continue
		}

		data, err := fs.ReadFile(filepath.Join(functionsDir, filepath.FromSlash(f)))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
		var cfg prerenderConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f, err)
		}

		assetPath := AssetPath(name)
		if stage && cfg.Fallback != nil && cfg.Fallback.FsPath != "" {
			if err := stageFallback(fs, functionsDir, staticDir, path.Dir(f), cfg.Fallback.FsPath, assetPath); err != nil {
				return nil, fmt.Errorf("prerendered page %s: %w", assetPath, err)
			}
		}

		headers := cfg.InitialHeaders
		if headers == nil {
			headers = map[string]string{}
		}
		set.Set(assetPath, manifest.PrerenderedEntry{
			Headers: headers,
			Aliases: Aliases(assetPath),
		})
	}
	return set, nil
}

// stageFallback copies a prerender fallback file to the static asset path.
// fsPath is relative to the directory holding the prerender config.
func stageFallback(fs fsops.FS, functionsDir, staticDir, configDir, fsPath, assetPath string) error {
	rel := path.Join(configDir, fsPath)
	if err := fs.ValidateRelPath(filepath.FromSlash(rel)); err != nil {
		return fmt.Errorf("invalid fallback path: %w", err)
	}

	dst := filepath.Join(staticDir, filepath.FromSlash(strings.TrimPrefix(assetPath, "/")))
	exists, err := fs.Exists(dst)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", dst, err)
	}
	if exists {
		return nil
	}

	src := filepath.Join(functionsDir, filepath.FromSlash(rel))
	if err := fs.Copy(src, dst); err != nil {
		return fmt.Errorf("failed to copy fallback: %w", err)
	}
	return nil
}
