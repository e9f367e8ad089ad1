// Package syntactic implements the G-layer: a BFS-over-edit-length closure
// that discovers every way a grammar symbol can span a region of the token
// stream at a given edit length, given a processor's syntactic property
// rules. This is the chart search proper (spec.md §4.2-§4.3).
package syntactic

import (
	"fmt"

	"github.com/dekarrin/fixgo/internal/reachability/grammar"
	"github.com/dekarrin/fixgo/internal/reachability/props"
)

// GEdge is one proven span: symbol derives some string of length (end-begin)
// tokens, built from exactly `length` inserted/substituted tokens, carrying
// prop as its syntactic property (or property tuple, for a synthetic
// alternative-accumulator symbol). Two GEdges are the same edge iff their
// (Begin, End, Symbol, Length, Prop) tuples match; GReachability enforces
// that by construction (see reachability.go's addEdge), so pointer identity
// and tuple identity coincide for any GEdge produced by one engine.
type GEdge[PG comparable] struct {
	begin, end, length int
	symbol             *grammar.Symbol
	prop               props.Array[PG]
}

func (e *GEdge[PG]) Begin() int                 { return e.begin }
func (e *GEdge[PG]) End() int                   { return e.end }
func (e *GEdge[PG]) Length() int                { return e.length }
func (e *GEdge[PG]) Symbol() *grammar.Symbol    { return e.symbol }
func (e *GEdge[PG]) Prop() props.Array[PG]      { return e.prop }
func (e *GEdge[PG]) OtherKey() string           { return e.prop.Key() }

func (e *GEdge[PG]) String() string {
	return fmt.Sprintf("[%d, %d, %s, %d, %v]", e.begin, e.end, e.symbol.Name(), e.length, e.prop.Items())
}

// RuleUse is one justification for a GEdge: the grammar rule applied, and
// the (zero, one, or two) sub-edges it was applied to. It is comparable
// because all three fields are pointers, letting a bare Go map serve as the
// per-edge dedup set the original keeps under each chart slot.
type RuleUse[PG comparable] struct {
	Sub1, Sub2 *GEdge[PG]
	Rule       *grammar.GrammarRule
}

func (u RuleUse[PG]) String() string {
	switch {
	case u.Sub1 != nil && u.Sub2 != nil:
		return fmt.Sprintf("<%s -- %s>", u.Sub1, u.Sub2)
	case u.Sub1 != nil:
		return fmt.Sprintf("<%s>", u.Sub1)
	default:
		return "<>"
	}
}
