// Package ordered provides an insertion-ordered map.
//
// Build-output inputs (overrides, prerendered pages, function entries) are
// JSON objects whose key order drives resolution order, and the output table
// itself must iterate deterministically. Map keeps the position of a key's
// first insertion; setting an existing key replaces its value in place.
package ordered

// Map is an insertion-ordered map. The zero value is ready to use.
type Map[K comparable, V any] struct {
	keys  []K
	index map[K]int
	vals  []V
}

// New creates an empty Map with room for n entries.
func New[K comparable, V any](n int) *Map[K, V] {
	return &Map[K, V]{
		keys:  make([]K, 0, n),
		index: make(map[K]int, n),
		vals:  make([]V, 0, n),
	}
}

// Set stores v under k. An existing key keeps its position.
func (m *Map[K, V]) Set(k K, v V) {
	if m.index == nil {
		m.index = make(map[K]int)
	}
	if i, ok := m.index[k]; ok {
		m.vals[i] = v
		return
	}
	m.index[k] = len(m.keys)
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	if m != nil {
		if i, ok := m.index[k]; ok {
			return m.vals[i], true
		}
	}
	var zero V
	return zero, false
}

// Has reports whether k is present.
func (m *Map[K, V]) Has(k K) bool {
	if m == nil {
		return false
	}
	_, ok := m.index[k]
	return ok
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Each calls fn for every entry in insertion order.
func (m *Map[K, V]) Each(fn func(k K, v V)) {
	if m == nil {
		return
	}
	for i, k := range m.keys {
		fn(k, m.vals[i])
	}
}
