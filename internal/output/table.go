package output

import (
	"fmt"
	"maps"

	"github.com/danieljhkim/edgeroute/internal/ordered"
)

// Table is the insertion-ordered build output map plus its record arena.
type Table struct {
	items   *ordered.Map[string, Item]
	records []OverrideRecord
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{items: ordered.New[string, Item](0)}
}

// Has reports whether path has an entry.
func (t *Table) Has(path string) bool {
	return t.items.Has(path)
}

// Get returns the item at path.
func (t *Table) Get(path string) (Item, bool) {
	return t.items.Get(path)
}

// Set stores item at path. Overwriting keeps the path's original position.
func (t *Table) Set(path string, item Item) {
	t.items.Set(path, item)
}

// Len returns the number of paths in the table.
func (t *Table) Len() int {
	return t.items.Len()
}

// Paths returns the table's paths in insertion order.
func (t *Table) Paths() []string {
	return t.items.Keys()
}

// NewOverride allocates an override record and returns an item pointing at it.
// The item is not stored; callers Set it under the canonical path and any
// aliases.
func (t *Table) NewOverride(canonicalPath string, headers map[string]string) Item {
	t.records = append(t.records, OverrideRecord{
		CanonicalPath: canonicalPath,
		Headers:       maps.Clone(headers),
	})
	return Item{Kind: KindOverride, Record: RecordID(len(t.records) - 1)}
}

// Record returns the arena record for id. The pointer is only valid until the
// next NewOverride call.
func (t *Table) Record(id RecordID) (*OverrideRecord, error) {
	if id < 0 || int(id) >= len(t.records) {
		return nil, fmt.Errorf("override record %d out of range", id)
	}
	return &t.records[id], nil
}

// ReplaceHeaders swaps the headers of the record behind id wholesale.
func (t *Table) ReplaceHeaders(id RecordID, headers map[string]string) error {
	rec, err := t.Record(id)
	if err != nil {
		return err
	}
	rec.Headers = maps.Clone(headers)
	if rec.Headers == nil {
		rec.Headers = map[string]string{}
	}
	return nil
}

// Entry is a flattened, read-only view of one table path.
type Entry struct {
	Path          string            `json:"-"`
	Kind          Kind              `json:"-"`
	Entrypoint    string            `json:"entrypoint,omitempty"`
	CanonicalPath string            `json:"path,omitempty"`
	Headers       map[string]string `json:"headers,omitempty"`
}

// Resolve returns the flattened entry at path.
func (t *Table) Resolve(path string) (Entry, bool) {
	item, ok := t.items.Get(path)
	if !ok {
		return Entry{}, false
	}
	return t.flatten(path, item), true
}

// Entries returns every entry in insertion order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, t.items.Len())
	t.items.Each(func(path string, item Item) {
		out = append(out, t.flatten(path, item))
	})
	return out
}

func (t *Table) flatten(path string, item Item) Entry {
	e := Entry{Path: path, Kind: item.Kind}
	switch item.Kind {
	case KindStatic:
	case KindFunction, KindMiddleware:
		e.Entrypoint = item.Entrypoint
	case KindOverride:
		if rec, err := t.Record(item.Record); err == nil {
			e.CanonicalPath = rec.CanonicalPath
			e.Headers = maps.Clone(rec.Headers)
		}
	}
	return e
}

// Aliases returns every path whose item points at the record id, in table order.
func (t *Table) Aliases(id RecordID) []string {
	var paths []string
	t.items.Each(func(path string, item Item) {
		if item.Kind == KindOverride && item.Record == id {
			paths = append(paths, path)
		}
	})
	return paths
}
