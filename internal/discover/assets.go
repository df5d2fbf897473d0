package discover

import (
	"fmt"

	"github.com/danieljhkim/edgeroute/internal/fsops"
)

// Assets lists the static directory as "/"-prefixed asset paths.
func Assets(fs fsops.FS, staticDir string) ([]string, error) {
	files, err := fs.ListFiles(staticDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list static assets: %w", err)
	}
	assets := make([]string, len(files))
	for i, f := range files {
		assets[i] = "/" + f
	}
	return assets, nil
}
