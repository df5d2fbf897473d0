package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Artifact formats.
const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// ErrInvalidSettings indicates edgeroute.toml has bad values.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the decoded edgeroute.toml.
type Settings struct {
	Build BuildSettings `toml:"build"`
	Log   LogSettings   `toml:"log"`
}

// BuildSettings configures the build command.
type BuildSettings struct {
	// StaticOut is a directory to stage static assets into (empty: don't stage)
	StaticOut string `toml:"static_out"`

	// Artifact is the routing artifact path (empty: <output>/edge-routes.<ext>)
	Artifact string `toml:"artifact"`

	// Format is the artifact encoding: json or msgpack
	Format string `toml:"format"`

	// Jobs bounds concurrent asset copies
	Jobs int `toml:"jobs"`

	// Retries is the number of extra attempts per failed copy
	Retries int `toml:"retries"`
}

// LogSettings configures logging.
type LogSettings struct {
	Level string `toml:"level"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() *Settings {
	return &Settings{
		Build: BuildSettings{
			Format:  FormatJSON,
			Jobs:    8,
			Retries: 2,
		},
		Log: LogSettings{Level: "info"},
	}
}

// LoadSettings decodes path over the defaults. A missing file yields defaults.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	meta, err := toml.DecodeFile(path, s)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalidSettings, path, strings.Join(keys, ", "))
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks setting values.
func (s *Settings) Validate() error {
	switch s.Build.Format {
	case FormatJSON, FormatMsgpack:
	default:
		return fmt.Errorf("%w: build.format must be %q or %q, got %q", ErrInvalidSettings, FormatJSON, FormatMsgpack, s.Build.Format)
	}
	if s.Build.Jobs < 1 {
		return fmt.Errorf("%w: build.jobs must be at least 1, got %d", ErrInvalidSettings, s.Build.Jobs)
	}
	if s.Build.Retries < 0 {
		return fmt.Errorf("%w: build.retries must not be negative, got %d", ErrInvalidSettings, s.Build.Retries)
	}
	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q is not one of debug, info, warn, error", ErrInvalidSettings, s.Log.Level)
	}
	return nil
}
