package routes

import (
	"errors"
	"fmt"
)

// ErrUnknownPhase indicates a phase marker named a phase outside the fixed set.
var ErrUnknownPhase = errors.New("unknown route phase")

// Phase names a route-evaluation stage.
type Phase string

// Phase constants in router walk order.
const (
	PhaseNone       Phase = "none"
	PhaseFilesystem Phase = "filesystem"
	PhaseMiss       Phase = "miss"
	PhaseRewrite    Phase = "rewrite"
	PhaseResource   Phase = "resource"
	PhaseHit        Phase = "hit"
	PhaseError      Phase = "error"
)

// Phases lists every phase in canonical order.
var Phases = []Phase{
	PhaseNone,
	PhaseFilesystem,
	PhaseMiss,
	PhaseRewrite,
	PhaseResource,
	PhaseHit,
	PhaseError,
}

// Valid reports whether p is one of the seven known phases.
func (p Phase) Valid() bool {
	for _, known := range Phases {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePhase converts a marker name into a Phase.
func ParsePhase(name string) (Phase, error) {
	p := Phase(name)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPhase, name)
	}
	return p, nil
}
