package semantic

import (
	"fmt"
	"log"

	"github.com/dekarrin/fixgo/internal/reachability/grammar"
	"github.com/dekarrin/fixgo/internal/reachability/props"
	"github.com/dekarrin/fixgo/internal/reachability/syntactic"
)

// Reachability drives the S-layer over an already-closed G-layer chart. It
// walks the chart's rule-use DAG, combining a top-down inherited property
// with a bottom-up synthesized one per spec.md §5, and keeps the set of
// resolved (span, symbol, properties) derivations it finds in edges.
//
// The original engine explores this DAG with a hand-rolled coroutine (one
// state machine step per call, so sibling branches can interleave and a
// caller can stop after the first admissible result without paying for the
// rest). Go has no coroutines cheap enough to hand-port that state machine
// faithfully, so this port instead expands each (edge, inherited property)
// pair fully and once, memoizing every result under its SKey; a re-entrance
// guard keeps a rule that cycles back to its own SKey within one expansion
// (possible with non-epsilon unary chains the grammar's zero-production
// check doesn't reject) from recursing forever, at the cost of exploring
// some derivations the original's short-circuiting coroutine never would.
// Every chart built by this engine is bounded (finitely many edges, finite
// edit budget), so full expansion terminates; it just isn't lazy.
type Reachability[PG, PSI, PSS comparable] struct {
	g          *syntactic.GReachability[PG]
	proc       SProcessor[PG, PSI, PSS]
	edges      *edges[PG, PSI, PSS]
	cache      map[SKey[PG, PSI]][]Result[PG, PSI, PSS]
	inProgress map[SKey[PG, PSI]]bool
}

// Result is one admissible (synthesized property, resolved derivation) pair
// for an SKey.
type Result[PG, PSI, PSS comparable] struct {
	Syn props.Array[PSS]
	Key *FKey[PG, PSI, PSS]
}

// New builds an S-layer engine over an already-closed G-layer chart g, using
// proc for the language's semantic property rules.
func New[PG, PSI, PSS comparable](g *syntactic.GReachability[PG], proc SProcessor[PG, PSI, PSS]) *Reachability[PG, PSI, PSS] {
	return &Reachability[PG, PSI, PSS]{
		g:          g,
		proc:       proc,
		edges:      newEdges[PG, PSI, PSS](),
		cache:      map[SKey[PG, PSI]][]Result[PG, PSI, PSS]{},
		inProgress: map[SKey[PG, PSI]]bool{},
	}
}

// Find searches every G-layer start edge at edit lengths [lengthFrom,
// lengthTo], shortest first, for an admissible semantic derivation, and
// returns the first one found (spec.md §5's "smallest-edit-distance fix
// wins"). Within a single edit length, start edges and their derivations are
// tried in the chart's own iteration order, which is not guaranteed stable
// across engine runs (the original's coroutine has the same property, since
// it walks the same HashMap-backed rule-use sets).
func (r *Reachability[PG, PSI, PSS]) Find(lengthFrom, lengthTo int) (*FKey[PG, PSI, PSS], bool) {
	rootProp := r.proc.ProcessRootInh()
	starts := r.g.GetStartEdges()
	for curLen := lengthFrom; curLen <= lengthTo; curLen++ {
		if curLen >= len(starts) {
			continue
		}
		for _, gkey := range starts[curLen] {
			results := r.queryEdge(gkey, rootProp)
			if len(results) > 0 {
				return results[0].Key, true
			}
		}
	}
	return nil, false
}

// queryEdge returns every admissible (synthesized property, derivation) pair
// for (gedge, inh), computing and caching them on first request.
func (r *Reachability[PG, PSI, PSS]) queryEdge(gedge *syntactic.GEdge[PG], inh PSI) []Result[PG, PSI, PSS] {
	key := SKey[PG, PSI]{Edge: gedge, InhProp: inh}
	if cached, ok := r.cache[key]; ok {
		return cached
	}
	if r.inProgress[key] {
		return nil
	}
	r.inProgress[key] = true
	results := r.computeEdge(key)
	delete(r.inProgress, key)
	r.cache[key] = results
	return results
}

func (r *Reachability[PG, PSI, PSS]) computeEdge(key SKey[PG, PSI]) []Result[PG, PSI, PSS] {
	gedge := key.Edge
	switch gedge.Symbol().Kind() {
	case grammar.LiteralTerminal:
		var zero PSS
		syn := props.Single(zero)
		if fk := r.edges.assemblyResult(key, syn, nil, nil, nil, nil, nil, nil, nil, nil); fk != nil {
			return []Result[PG, PSI, PSS]{{Syn: syn, Key: fk}}
		}
		return nil

	case grammar.SymbolicTerminal:
		var literal *string
		if gedge.Length() == 0 {
			lit := r.g.Literals()[gedge.Begin()]
			literal = &lit
		}
		var out []Result[PG, PSI, PSS]
		for _, ssyn := range r.proc.ProcessSymbolicTerminalSyn(gedge.Symbol(), gedge.Prop(), key.InhProp, literal) {
			syn := props.Single(ssyn)
			if fk := r.edges.assemblyResult(key, syn, nil, nil, nil, nil, nil, nil, nil, literal); fk != nil {
				out = append(out, Result[PG, PSI, PSS]{Syn: syn, Key: fk})
			}
		}
		return out

	default: // NonTerminal
		var out []Result[PG, PSI, PSS]
		for use := range r.g.GetSubEdges(gedge) {
			out = append(out, r.computeRuleUse(key, use)...)
		}
		return out
	}
}

func (r *Reachability[PG, PSI, PSS]) computeRuleUse(key SKey[PG, PSI], use syntactic.RuleUse[PG]) []Result[PG, PSI, PSS] {
	rule := use.Rule

	if rule.Type() == grammar.ConcatZero {
		syn := props.Zero[PSS]()
		if fk := r.edges.assemblyResult(key, syn, rule, nil, nil, nil, nil, nil, nil, nil); fk != nil {
			return []Result[PG, PSI, PSS]{{Syn: syn, Key: fk}}
		}
		return nil
	}

	var out []Result[PG, PSI, PSS]
	for _, leftInh := range r.processLeftInh(key, rule) {
		leftInh := leftInh
		for _, leftRes := range r.queryEdge(use.Sub1, leftInh) {
			leftSyn := leftRes.Syn

			if rule.Type().Arity() == 1 {
				for _, syn := range r.processSyn(key, rule, leftSyn, nil) {
					if fk := r.edges.assemblyResult(key, syn, rule, use.Sub1, nil, &leftInh, nil, &leftSyn, nil, nil); fk != nil {
						out = append(out, Result[PG, PSI, PSS]{Syn: syn, Key: fk})
					}
				}
				continue
			}

			for _, rightInh := range r.processRightInh(key, rule, leftSyn) {
				rightInh := rightInh
				for _, rightRes := range r.queryEdge(use.Sub2, rightInh) {
					rightSyn := rightRes.Syn
					for _, syn := range r.processSyn(key, rule, leftSyn, &rightSyn) {
						if fk := r.edges.assemblyResult(key, syn, rule, use.Sub1, use.Sub2, &leftInh, &rightInh, &leftSyn, &rightSyn, nil); fk != nil {
							out = append(out, Result[PG, PSI, PSS]{Syn: syn, Key: fk})
						}
					}
				}
			}
		}
	}
	return out
}

// processLeftInh computes the inherited property available to a rule's
// first sub-edge.
func (r *Reachability[PG, PSI, PSS]) processLeftInh(key SKey[PG, PSI], rule *grammar.GrammarRule) []PSI {
	switch rule.Type() {
	case grammar.Induction, grammar.ConcatAppend:
		return []PSI{key.InhProp}
	case grammar.ConcatOne, grammar.ConcatTwo:
		return r.proc.ProcessNonTerminalInh(rule.InductionSymbol(), key.Edge.Prop(), rule.InductionID(), 0, key.InhProp, nil)
	default:
		panic(fmt.Sprintf("semantic: processLeftInh called on %s rule", rule.Type()))
	}
}

// processRightInh computes the inherited property available to a rule's
// second sub-edge, given the first sub-edge's already-resolved synthesized
// property.
func (r *Reachability[PG, PSI, PSS]) processRightInh(key SKey[PG, PSI], rule *grammar.GrammarRule, leftSyn props.Array[PSS]) []PSI {
	switch rule.Type() {
	case grammar.ConcatAppend:
		return r.proc.ProcessNonTerminalInh(rule.InductionSymbol(), key.Edge.Prop(), rule.InductionID(), rule.InductionLocation(), key.InhProp, leftSyn.Items())
	case grammar.ConcatTwo:
		return r.proc.ProcessNonTerminalInh(rule.InductionSymbol(), key.Edge.Prop(), rule.InductionID(), rule.InductionLocation(), key.InhProp, []PSS{leftSyn.One()})
	default:
		panic(fmt.Sprintf("semantic: processRightInh called on %s rule", rule.Type()))
	}
}

// processSyn computes the candidate synthesized properties for a rule
// application given its (already-resolved) sub-edge synthesized properties.
// Only Induction consults the processor; the Concat* rules are purely
// structural accumulation (spec.md §3's alternative-accumulator chain).
func (r *Reachability[PG, PSI, PSS]) processSyn(key SKey[PG, PSI], rule *grammar.GrammarRule, leftSyn props.Array[PSS], rightSyn *props.Array[PSS]) []props.Array[PSS] {
	switch rule.Type() {
	case grammar.Induction:
		vals := r.proc.ProcessNonTerminalSyn(rule.InductionSymbol(), key.Edge.Prop(), rule.InductionID(), key.InhProp, leftSyn.Items())
		out := make([]props.Array[PSS], len(vals))
		for i, v := range vals {
			out[i] = props.Single(v)
		}
		return out
	case grammar.ConcatOne:
		return []props.Array[PSS]{props.Single(leftSyn.One())}
	case grammar.ConcatTwo:
		return []props.Array[PSS]{props.Pair(leftSyn.One(), rightSyn.One())}
	case grammar.ConcatAppend:
		return []props.Array[PSS]{leftSyn.Append(rightSyn.One())}
	default:
		panic(fmt.Sprintf("semantic: processSyn called on %s rule", rule.Type()))
	}
}

// GenerateFrom renders a resolved derivation to its output text, depth-first
// over the F-DAG rooted at start (spec.md §5/C6). verbose logs one line per
// node visited, in the teacher's structured-log style, for --verbose-gen.
func (r *Reachability[PG, PSI, PSS]) GenerateFrom(start *FKey[PG, PSI, PSS], verbose bool) []string {
	var out []string
	r.appendGen(start, &out, verbose)
	return out
}

func (r *Reachability[PG, PSI, PSS]) appendGen(cur *FKey[PG, PSI, PSS], out *[]string, verbose bool) {
	ent, ok := r.edges.getEntity(cur)
	if !ok {
		panic("semantic: generate visited a key this engine never resolved")
	}
	if verbose {
		log.Printf("gen: %d %d %s len=%d literal=%v gprop=%v inh=%v syn=%v",
			cur.Begin(), cur.End(), cur.Symbol().Name(), ent.Length(), ent.Literal(), cur.GProp().Items(), cur.InhProp(), cur.SynProp().Items())
	}

	switch cur.Symbol().Kind() {
	case grammar.NonTerminal:
		var fr FRule[PG, PSI, PSS]
		for use := range ent.Rules() {
			fr = use
			break
		}
		if fr.Right1 != nil {
			r.appendGen(fr.Right1, out, verbose)
		}
		if fr.Right2 != nil {
			r.appendGen(fr.Right2, out, verbose)
		}
	case grammar.LiteralTerminal:
		*out = append(*out, cur.Symbol().Name())
	case grammar.SymbolicTerminal:
		gen := r.proc.ProcessSymbolicTerminalGen(cur.Symbol(), cur.GProp(), cur.InhProp(), cur.SynProp().One(), ent.Literal())
		*out = append(*out, gen)
	}
}
