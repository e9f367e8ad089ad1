// Package chart holds the slot-indexed edge table shared by the syntactic
// reachability engine: a 3-D array of maps keyed by (begin, end, length),
// then by grammar symbol, then by a caller-supplied "other" key that
// disambiguates edges which would otherwise collide (the edge's own
// property array). This mirrors the array-of-hashmaps structure the
// original engine uses for the same purpose, without needing a generational
// arena — Go's garbage collector plays that role.
package chart

import "github.com/dekarrin/fixgo/internal/reachability/grammar"

// Edge is the minimum shape chart.EdgeMap needs to index an edge: a chart
// span, an edit length, a grammar symbol, and a string key distinguishing it
// from any other edge sharing that (begin, end, length, symbol) slot.
type Edge interface {
	Begin() int
	End() int
	Length() int
	Symbol() *grammar.Symbol
	OtherKey() string
}

type slotKey struct {
	begin, end, length int
}

// EdgeMap stores at most one E per (begin, end, length, symbol, otherKey)
// tuple, plus an associated mutable value V. Insert is idempotent: inserting
// an edge that already exists (by that tuple) does not replace the stored
// edge or reset its value; callers that want "find-or-create" semantics
// should call Get first.
type EdgeMap[E Edge, V any] struct {
	slots map[slotKey]map[*grammar.Symbol]map[string]*slotEntry[E, V]
}

type slotEntry[E Edge, V any] struct {
	edge  E
	value V
}

// New returns an empty EdgeMap.
func New[E Edge, V any]() *EdgeMap[E, V] {
	return &EdgeMap[E, V]{slots: map[slotKey]map[*grammar.Symbol]map[string]*slotEntry[E, V]{}}
}

func (m *EdgeMap[E, V]) bucket(e E, create bool) map[string]*slotEntry[E, V] {
	sk := slotKey{e.Begin(), e.End(), e.Length()}
	bySymbol, ok := m.slots[sk]
	if !ok {
		if !create {
			return nil
		}
		bySymbol = map[*grammar.Symbol]map[string]*slotEntry[E, V]{}
		m.slots[sk] = bySymbol
	}
	byOther, ok := bySymbol[e.Symbol()]
	if !ok {
		if !create {
			return nil
		}
		byOther = map[string]*slotEntry[E, V]{}
		bySymbol[e.Symbol()] = byOther
	}
	return byOther
}

// Insert stores e with value v, unless an edge already occupies e's slot —
// in which case the map is left unchanged.
func (m *EdgeMap[E, V]) Insert(e E, v V) {
	b := m.bucket(e, true)
	if _, exists := b[e.OtherKey()]; exists {
		return
	}
	b[e.OtherKey()] = &slotEntry[E, V]{edge: e, value: v}
}

// InsertDefault stores e with V's zero value, unless its slot is already
// occupied.
func (m *EdgeMap[E, V]) InsertDefault(e E) {
	var zero V
	m.Insert(e, zero)
}

// Get returns the canonical stored edge and its value for a probe edge
// occupying the same slot as e, if any.
func (m *EdgeMap[E, V]) Get(e E) (E, *V, bool) {
	b := m.bucket(e, false)
	if b == nil {
		var zero E
		return zero, nil, false
	}
	entry, ok := b[e.OtherKey()]
	if !ok {
		var zero E
		return zero, nil, false
	}
	return entry.edge, &entry.value, true
}

// ContainsKey reports whether some edge occupies e's slot.
func (m *EdgeMap[E, V]) ContainsKey(e E) bool {
	_, _, ok := m.Get(e)
	return ok
}

// AllEdges returns every stored edge, in unspecified order.
func (m *EdgeMap[E, V]) AllEdges() []E {
	var out []E
	for _, bySymbol := range m.slots {
		for _, byOther := range bySymbol {
			for _, entry := range byOther {
				out = append(out, entry.edge)
			}
		}
	}
	return out
}
