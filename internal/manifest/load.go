package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danieljhkim/edgeroute/internal/fsops"
	"github.com/danieljhkim/edgeroute/internal/ordered"
	"github.com/danieljhkim/edgeroute/internal/routes"
)

// ErrInvalidManifest indicates the manifest does not have the expected shape.
var ErrInvalidManifest = errors.New("invalid manifest")

type rawManifest struct {
	Version   *int            `json:"version"`
	Routes    json.RawMessage `json:"routes"`
	Overrides json.RawMessage `json:"overrides"`
}

// Load reads and parses the manifest at path.
func Load(fs fsops.FS, path string) (*Manifest, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes manifest JSON.
func Parse(data []byte) (*Manifest, error) {
	var raw rawManifest
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	if raw.Version == nil {
		return nil, fmt.Errorf("%w: missing version", ErrInvalidManifest)
	}
	if *raw.Version <= 0 {
		return nil, fmt.Errorf("%w: version must be positive, got %d", ErrInvalidManifest, *raw.Version)
	}

	rules, err := decodeRoutes(raw.Routes)
	if err != nil {
		return nil, err
	}

	overrides, err := decodeOverrides(raw.Overrides)
	if err != nil {
		return nil, err
	}

	return &Manifest{
		Version:   *raw.Version,
		Routes:    rules,
		Overrides: overrides,
	}, nil
}

func isAbsent(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// isKind reports whether data opens with delim ('{' or '[').
func isKind(data json.RawMessage, delim byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == delim
}

func decodeRoutes(data json.RawMessage) ([]routes.Rule, error) {
	if isAbsent(data) {
		return []routes.Rule{}, nil
	}
	if !isKind(data, '[') {
		return nil, fmt.Errorf("%w: routes must be a list", ErrInvalidManifest)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: routes: %v", ErrInvalidManifest, err)
	}

	rules := make([]routes.Rule, 0, len(items))
	for i, item := range items {
		if !isKind(item, '{') {
			return nil, fmt.Errorf("%w: route %d must be an object", ErrInvalidManifest, i)
		}
		var r routes.Rule
		if err := json.Unmarshal(item, &r); err != nil {
			return nil, fmt.Errorf("%w: route %d: %v", ErrInvalidManifest, i, err)
		}
		switch {
		case r.Src == "" && r.Handle == "":
			return nil, fmt.Errorf("%w: route %d has neither src nor handle", ErrInvalidManifest, i)
		case r.Src != "" && r.Handle != "":
			return nil, fmt.Errorf("%w: route %d has both src and handle", ErrInvalidManifest, i)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// decodeOverrides walks the overrides object token by token so declared key
// order survives. A repeated key keeps its first position and its last value.
func decodeOverrides(data json.RawMessage) (*OverrideSpec, error) {
	overrides := ordered.New[string, Override](0)
	if isAbsent(data) {
		return overrides, nil
	}
	if !isKind(data, '{') {
		return nil, fmt.Errorf("%w: overrides must be an object", ErrInvalidManifest)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: overrides: %v", ErrInvalidManifest, err)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: overrides: %v", ErrInvalidManifest, err)
		}
		key, _ := tok.(string)

		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, fmt.Errorf("%w: override %q: %v", ErrInvalidManifest, key, err)
		}
		if !isKind(val, '{') {
			return nil, fmt.Errorf("%w: override %q must be an object", ErrInvalidManifest, key)
		}
		var o Override
		if err := json.Unmarshal(val, &o); err != nil {
			return nil, fmt.Errorf("%w: override %q: %v", ErrInvalidManifest, key, err)
		}
		if o.Path == "" {
			return nil, fmt.Errorf("%w: override %q is missing path", ErrInvalidManifest, key)
		}
		overrides.Set(key, o)
	}
	return overrides, nil
}
