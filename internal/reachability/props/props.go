// Package props holds the generic property-array type shared by the
// syntactic (G-layer) and semantic (S-layer) reachability engines.
//
// A processor callback in this system never returns a single fixed answer;
// it returns a set of admissible properties (possibly empty, possibly one,
// possibly several), and the caller explores every one of them. In Go that
// set is modeled directly as a slice, which already captures "zero, one, or
// many" without a dedicated tagged union.
package props

import "fmt"

// Array is an ordered, immutable array of properties attached to a grammar
// rule's right-hand side. Length zero corresponds to a ConcatZero rule's
// property (the epsilon case); length one to a literal/Induction/ConcatOne
// property; longer arrays accumulate one element per argument position of an
// original alternative (ConcatTwo seeds two, ConcatAppend appends one at a
// time).
//
// Go slices are not comparable, so Array cannot be used directly as a map
// key. Key returns a canonical string suitable for that purpose; it is
// computed once at construction time.
type Array[P comparable] struct {
	items []P
	key   string
}

// Zero returns the empty property array (the ConcatZero case).
func Zero[P comparable]() Array[P] {
	return Array[P]{items: nil, key: "[]"}
}

// Single wraps exactly one property.
func Single[P comparable](p P) Array[P] {
	return New([]P{p})
}

// New builds an Array from a slice of properties, copying it so later
// mutation of items by the caller cannot corrupt the array.
func New[P comparable](items []P) Array[P] {
	cp := append([]P(nil), items...)
	return Array[P]{items: cp, key: fmt.Sprint(cp)}
}

// Items returns the underlying properties in order. The caller must not
// mutate the returned slice.
func (a Array[P]) Items() []P { return a.items }

// Len returns the number of properties in the array.
func (a Array[P]) Len() int { return len(a.items) }

// Key returns a canonical, comparable representation of the array suitable
// for use as (part of) a Go map key.
func (a Array[P]) Key() string { return a.key }

// One returns the array's sole property. It panics if the array does not
// have exactly one element; callers use this only where a grammar rule
// (ConcatOne, Induction applied to a one-argument alternative, or a
// terminal) guarantees arity one, mirroring the original engine's
// "unwrap_single" accessor.
func (a Array[P]) One() P {
	if len(a.items) != 1 {
		panic(fmt.Sprintf("props: One() called on array of length %d, expected 1", len(a.items)))
	}
	return a.items[0]
}

// Append returns a new array with p appended, used by ConcatAppend rules.
func (a Array[P]) Append(p P) Array[P] {
	next := make([]P, len(a.items)+1)
	copy(next, a.items)
	next[len(a.items)] = p
	return New(next)
}

// Pair builds the two-element array used by a ConcatTwo rule.
func Pair[P comparable](p1, p2 P) Array[P] {
	return New([]P{p1, p2})
}
