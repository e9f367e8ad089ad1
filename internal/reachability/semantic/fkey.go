package semantic

import (
	"fmt"

	"github.com/dekarrin/fixgo/internal/reachability/grammar"
	"github.com/dekarrin/fixgo/internal/reachability/props"
	"github.com/dekarrin/fixgo/internal/reachability/syntactic"
)

// FKey names one proven semantic derivation: a syntactic span/symbol/grammar
// property together with the inherited and synthesized semantic properties
// that made it admissible. Like grammar.Symbol, an FKey has pointer identity;
// two semantically distinct derivations of the same span never share an
// FKey, and the same derivation reached two different ways always collapses
// to one (see edges.go's findOrAddEdge).
type FKey[PG, PSI, PSS comparable] struct {
	begin, end int
	symbol     *grammar.Symbol
	gprop      props.Array[PG]
	inhProp    PSI
	synProp    props.Array[PSS]
	canonical  string
}

func newFKey[PG, PSI, PSS comparable](gedge *syntactic.GEdge[PG], inh PSI, syn props.Array[PSS]) *FKey[PG, PSI, PSS] {
	k := &FKey[PG, PSI, PSS]{
		begin:   gedge.Begin(),
		end:     gedge.End(),
		symbol:  gedge.Symbol(),
		gprop:   gedge.Prop(),
		inhProp: inh,
		synProp: syn,
	}
	k.canonical = fmt.Sprintf("%d|%d|%d|%s|%v|%s", k.begin, k.end, k.symbol.ID(), k.gprop.Key(), k.inhProp, k.synProp.Key())
	return k
}

func (k *FKey[PG, PSI, PSS]) Begin() int                 { return k.begin }
func (k *FKey[PG, PSI, PSS]) End() int                   { return k.end }
func (k *FKey[PG, PSI, PSS]) Symbol() *grammar.Symbol    { return k.symbol }
func (k *FKey[PG, PSI, PSS]) GProp() props.Array[PG]     { return k.gprop }
func (k *FKey[PG, PSI, PSS]) InhProp() PSI               { return k.inhProp }
func (k *FKey[PG, PSI, PSS]) SynProp() props.Array[PSS]  { return k.synProp }

func (k *FKey[PG, PSI, PSS]) String() string {
	return fmt.Sprintf("[%d, %d, %s, inh=%v, syn=%v]", k.begin, k.end, k.symbol.Name(), k.inhProp, k.synProp.Items())
}

// FRule is one justification for an FKey: the grammar rule applied, and the
// (zero, one, or two) sub-derivations it combines. All three fields are
// pointers, so FRule is itself comparable and serves as the rule-use set's
// element type directly, the same trick syntactic.RuleUse uses.
type FRule[PG, PSI, PSS comparable] struct {
	Right1, Right2 *FKey[PG, PSI, PSS]
	Rule           *grammar.GrammarRule
}

// FEntity is the chart slot an FKey resolves to: the shortest edit length
// any derivation of this (span, symbol, properties) combination has been
// proven at, and every rule use achieving that length. A derivation found at
// a longer length than one already recorded is simply discarded (spec.md
// §8's monotone-minimum-length invariant); one found at a shorter length
// replaces the whole rule set, since longer-length derivations are no longer
// admissible once a shorter one is known.
type FEntity[PG, PSI, PSS comparable] struct {
	key     *FKey[PG, PSI, PSS]
	length  int
	rules   map[FRule[PG, PSI, PSS]]bool
	literal *string
}

func (e *FEntity[PG, PSI, PSS]) Key() *FKey[PG, PSI, PSS]            { return e.key }
func (e *FEntity[PG, PSI, PSS]) Length() int                         { return e.length }
func (e *FEntity[PG, PSI, PSS]) Rules() map[FRule[PG, PSI, PSS]]bool { return e.rules }
func (e *FEntity[PG, PSI, PSS]) Literal() *string                    { return e.literal }
