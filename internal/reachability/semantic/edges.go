package semantic

import (
	"github.com/dekarrin/fixgo/internal/reachability/grammar"
	"github.com/dekarrin/fixgo/internal/reachability/props"
	"github.com/dekarrin/fixgo/internal/reachability/syntactic"
)

// edges is the F-layer chart: every proven (span, symbol, properties)
// combination and the shortest edit length it has been derived at so far.
// It is keyed on FKey's canonical string rather than the struct itself,
// since props.Array embeds a slice and so is not Go-comparable; canonical
// gives every distinct (begin, end, symbol, gprop, inh, syn) tuple a single
// interned *FKey, the same role grammar.builder.intern plays for symbols.
type edges[PG, PSI, PSS comparable] struct {
	byCanonical map[string]*FKey[PG, PSI, PSS]
	entities    map[*FKey[PG, PSI, PSS]]*FEntity[PG, PSI, PSS]
}

func newEdges[PG, PSI, PSS comparable]() *edges[PG, PSI, PSS] {
	return &edges[PG, PSI, PSS]{
		byCanonical: map[string]*FKey[PG, PSI, PSS]{},
		entities:    map[*FKey[PG, PSI, PSS]]*FEntity[PG, PSI, PSS]{},
	}
}

func (e *edges[PG, PSI, PSS]) getEntity(k *FKey[PG, PSI, PSS]) (*FEntity[PG, PSI, PSS], bool) {
	ent, ok := e.entities[k]
	return ent, ok
}

// findOrAddEdge interns the (gedge, inh, syn) tuple as an FKey, creating a
// fresh FEntity the first time it is seen.
func (e *edges[PG, PSI, PSS]) findOrAddEdge(gedge *syntactic.GEdge[PG], inh PSI, syn props.Array[PSS], literal *string) *FEntity[PG, PSI, PSS] {
	probe := newFKey[PG, PSI, PSS](gedge, inh, syn)
	if existing, ok := e.byCanonical[probe.canonical]; ok {
		return e.entities[existing]
	}
	e.byCanonical[probe.canonical] = probe
	ent := &FEntity[PG, PSI, PSS]{
		key:     probe,
		length:  gedge.Length(),
		rules:   map[FRule[PG, PSI, PSS]]bool{},
		literal: literal,
	}
	e.entities[probe] = ent
	return ent
}

// assemblyResult records one candidate derivation of key's edge and returns
// the FKey it resolved to, or nil if a shorter derivation is already known
// (meaning this candidate is pruned: spec.md §8's monotone-minimum-length
// invariant). rule is nil for a terminal edge (no rule was applied); sub1/
// sub2 and the left/right inherited and synthesized properties are nil
// unless rule's arity calls for them.
func (e *edges[PG, PSI, PSS]) assemblyResult(
	key SKey[PG, PSI],
	syn props.Array[PSS],
	rule *grammar.GrammarRule,
	sub1, sub2 *syntactic.GEdge[PG],
	leftInh, rightInh *PSI,
	leftSyn, rightSyn *props.Array[PSS],
	literal *string,
) *FKey[PG, PSI, PSS] {
	gedge := key.Edge
	var left, right *FKey[PG, PSI, PSS]
	if gedge.Symbol().Kind() == grammar.NonTerminal {
		arity := rule.Type().Arity()
		if arity >= 1 {
			left = e.findOrAddEdge(sub1, *leftInh, *leftSyn, nil).key
		}
		if arity == 2 {
			right = e.findOrAddEdge(sub2, *rightInh, *rightSyn, nil).key
		}
	}

	ent := e.findOrAddEdge(gedge, key.InhProp, syn, literal)
	if ent.length < gedge.Length() {
		return nil
	}
	if ent.length > gedge.Length() {
		ent.length = gedge.Length()
		ent.rules = map[FRule[PG, PSI, PSS]]bool{}
	}
	if gedge.Symbol().Kind() == grammar.NonTerminal {
		ent.rules[FRule[PG, PSI, PSS]{Right1: left, Right2: right, Rule: rule}] = true
	}
	return ent.key
}
