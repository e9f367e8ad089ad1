package syntactic

import (
	"github.com/dekarrin/fixgo/internal/reachability/chart"
	"github.com/dekarrin/fixgo/internal/reachability/grammar"
	"github.com/dekarrin/fixgo/internal/reachability/props"
)

type quickRefKey struct {
	symbol *grammar.Symbol
	anchor int
	length int
}

// symbolQuickRef indexes every known edge twice: once by its begin position
// (refByBegin) and once by its end position (refByEnd). update2's binary
// closure needs to find, for a fixed partner symbol/length, every edge
// anchored at a specific chart position — by-begin when growing to the
// right, by-end when growing to the left.
type symbolQuickRef[PG comparable] struct {
	refByBegin map[quickRefKey]map[*GEdge[PG]]bool
	refByEnd   map[quickRefKey]map[*GEdge[PG]]bool
}

func newSymbolQuickRef[PG comparable]() *symbolQuickRef[PG] {
	return &symbolQuickRef[PG]{
		refByBegin: map[quickRefKey]map[*GEdge[PG]]bool{},
		refByEnd:   map[quickRefKey]map[*GEdge[PG]]bool{},
	}
}

func (q *symbolQuickRef[PG]) add(e *GEdge[PG]) {
	beginKey := quickRefKey{e.symbol, e.begin, e.length}
	if q.refByBegin[beginKey] == nil {
		q.refByBegin[beginKey] = map[*GEdge[PG]]bool{}
	}
	q.refByBegin[beginKey][e] = true

	endKey := quickRefKey{e.symbol, e.end, e.length}
	if q.refByEnd[endKey] == nil {
		q.refByEnd[endKey] = map[*GEdge[PG]]bool{}
	}
	q.refByEnd[endKey][e] = true
}

// GReachability drives the syntactic chart to a fixed point over a growing
// edit-length budget. Construction seeds the original tokens, every
// single-token insertion/substitution, and every zero-production; UpdateUntil
// then closes the chart under the grammar's unary and binary rules out to a
// requested maximum length.
type GReachability[PG comparable] struct {
	grammar *grammar.Grammar

	edges *chart.EdgeMap[*GEdge[PG], map[RuleUse[PG]]bool]

	literals []string

	toUpdate *lengthQueue[*GEdge[PG]]

	maxLength   int
	tokenLength int

	processor GProcessor[PG]

	quickRef *symbolQuickRef[PG]

	// startEdge[length] holds every start-symbol edge spanning the whole
	// token stream discovered at exactly that edit length.
	startEdge [][]*GEdge[PG]

	nextUpdatedLength int
}

// New builds the initial chart (original tokens, single-token
// insert/substitute edges if maxLength > 0, and zero-production seeding) and
// runs the first closure pass at length 0.
func New[PG comparable](g *grammar.Grammar, tokens []Token, processor GProcessor[PG], maxLength int) *GReachability[PG] {
	r := &GReachability[PG]{
		grammar:     g,
		edges:       chart.New[*GEdge[PG], map[RuleUse[PG]]bool](),
		maxLength:   maxLength,
		tokenLength: len(tokens),
		processor:   processor,
		quickRef:    newSymbolQuickRef[PG](),
		toUpdate:    newLengthQueue[*GEdge[PG]](),
	}
	r.addOriginals(tokens)
	if maxLength > 0 {
		r.addModifications()
	}
	r.updateZero()
	return r
}

func (r *GReachability[PG]) addOriginals(tokens []Token) {
	for i, tok := range tokens {
		r.literals = append(r.literals, tok.Literal)
		symbol := tok.Symbol
		var candidates []PG
		switch symbol.Kind() {
		case grammar.LiteralTerminal:
			var zero PG
			candidates = []PG{zero}
		case grammar.SymbolicTerminal:
			lit := tok.Literal
			candidates = r.processor.ProcessSymbolicTerminal(symbol, &lit)
		default:
			panic("syntactic: input token classified as a non-terminal: " + symbol.Name())
		}
		for _, p := range candidates {
			r.addEdge(i, i+1, symbol, 0, props.Single(p))
		}
	}
}

func (r *GReachability[PG]) addModifications() {
	var literalTerminals, symbolicTerminals []*grammar.Symbol
	for _, s := range r.grammar.Symbols() {
		switch s.Kind() {
		case grammar.LiteralTerminal:
			literalTerminals = append(literalTerminals, s)
		case grammar.SymbolicTerminal:
			symbolicTerminals = append(symbolicTerminals, s)
		}
	}

	type span struct{ begin, end int }
	var spans []span
	for x := 0; x < r.tokenLength; x++ {
		spans = append(spans, span{x, x + 1}) // substitution
	}
	for x := 0; x <= r.tokenLength; x++ {
		spans = append(spans, span{x, x}) // insertion
	}

	for _, sp := range spans {
		for _, symbol := range literalTerminals {
			var zero PG
			r.addEdge(sp.begin, sp.end, symbol, 1, props.Single(zero))
		}
		for _, symbol := range symbolicTerminals {
			for _, p := range r.processor.ProcessSymbolicTerminal(symbol, nil) {
				r.addEdge(sp.begin, sp.end, symbol, 1, props.Single(p))
			}
		}
	}
}

// addEdge returns the canonical edge for (begin, end, symbol, length, prop),
// allocating and registering a new one only if none already exists.
func (r *GReachability[PG]) addEdge(begin, end int, symbol *grammar.Symbol, length int, prop props.Array[PG]) *GEdge[PG] {
	probe := &GEdge[PG]{begin: begin, end: end, length: length, symbol: symbol, prop: prop}
	if existing, _, ok := r.edges.Get(probe); ok {
		return existing
	}
	r.edges.InsertDefault(probe)
	r.toUpdate.push(probe, probe.length)
	r.quickRef.add(probe)
	r.tryPutIntoStartEdge(probe)
	return probe
}

func (r *GReachability[PG]) tryPutIntoStartEdge(e *GEdge[PG]) {
	if e.symbol != r.grammar.Start() {
		return
	}
	for e.length >= len(r.startEdge) {
		r.startEdge = append(r.startEdge, nil)
	}
	r.startEdge[e.length] = append(r.startEdge[e.length], e)
}

func (r *GReachability[PG]) addGeneration(edge *GEdge[PG], sub1, sub2 *GEdge[PG], rule *grammar.GrammarRule) {
	if edge.length < r.nextUpdatedLength {
		panic("syntactic: edge generated at a length already closed")
	}
	_, uses, ok := r.edges.Get(edge)
	if !ok {
		panic("syntactic: addGeneration on an edge not present in the chart")
	}
	if *uses == nil {
		*uses = map[RuleUse[PG]]bool{}
	}
	(*uses)[RuleUse[PG]{Sub1: sub1, Sub2: sub2, Rule: rule}] = true
}

// updateZero seeds one length-0 edge per ConcatZero rule per chart anchor.
func (r *GReachability[PG]) updateZero() {
	for _, rule := range r.grammar.ZeroProductionRules() {
		symbol := rule.Left()
		prop := props.Zero[PG]()
		for i := 0; i <= r.tokenLength; i++ {
			edge := r.addEdge(i, i, symbol, 0, prop)
			r.addGeneration(edge, nil, nil, rule)
		}
	}
}

// updateOne applies every unary (Induction/ConcatOne) rule referencing
// edge's symbol, producing the parent edge at the same span (or, if the
// rule's left-hand side is the grammar's start symbol, collapsing straight
// to the canonical whole-stream start edge per the "potential total edits"
// formula).
func (r *GReachability[PG]) updateOne(edge *GEdge[PG]) {
	start := r.grammar.Start()
	for _, rule := range edge.symbol.RefOne() {
		if rule.Left() == start {
			totalLen := edge.length + edge.begin + (r.tokenLength - edge.end)
			if totalLen > r.maxLength {
				continue
			}
			for _, p := range r.processorOne(rule, edge.prop) {
				genEdge := r.addEdge(0, r.tokenLength, start, totalLen, p)
				r.addGeneration(genEdge, edge, nil, rule)
			}
			continue
		}
		for _, p := range r.processorOne(rule, edge.prop) {
			genEdge := r.addEdge(edge.begin, edge.end, rule.Left(), edge.length, p)
			r.addGeneration(genEdge, edge, nil, rule)
		}
	}
}

// updateTwo applies every binary rule in which edge's symbol fills the
// `rightward`-determined slot (right1 when growing rightward, right2 when
// growing leftward), pairing edge against every matching partner edge the
// quick-ref index already knows about, for partner lengths that keep the
// combined edit length within [fromLength, toLength].
func (r *GReachability[PG]) updateTwo(edge *GEdge[PG], rightward bool, fromLength, toLength int) {
	var rules []*grammar.GrammarRule
	if rightward {
		rules = edge.symbol.RefTwoLeft()
	} else {
		rules = edge.symbol.RefTwoRight()
	}

	for _, rule := range rules {
		var locMax int
		var otherSymbol *grammar.Symbol
		if rightward {
			locMax = r.tokenLength - edge.end
			otherSymbol = rule.Right2()
		} else {
			locMax = edge.begin
			otherSymbol = rule.Right1()
		}
		if toLength-edge.length < locMax {
			locMax = toLength - edge.length
		}

		for i := 0; i <= locMax; i++ {
			var curLoc int
			if rightward {
				curLoc = edge.end + i
				if curLoc > r.tokenLength {
					break
				}
			} else {
				if edge.begin-i < 0 {
					break
				}
				curLoc = edge.begin - i
			}

			lengthFrom := 0
			if fromLength >= edge.length+i {
				lengthFrom = fromLength - (edge.length + i)
			}
			lengthTo := toLength - (edge.length + i)

			for l := lengthFrom; l <= lengthTo; l++ {
				key := quickRefKey{otherSymbol, curLoc, l}
				var partners map[*GEdge[PG]]bool
				if rightward {
					partners = r.quickRef.refByBegin[key]
				} else {
					partners = r.quickRef.refByEnd[key]
				}
				for other := range partners {
					var right1, right2 *GEdge[PG]
					if rightward {
						right1, right2 = edge, other
					} else {
						right1, right2 = other, edge
					}
					for _, p := range r.processTwo(rule, right1.prop, right2.prop) {
						genEdge := r.addEdge(right1.begin, right2.end, rule.Left(), i+right1.length+right2.length, p)
						r.addGeneration(genEdge, right1, right2, rule)
					}
				}
			}
		}
	}
}

func (r *GReachability[PG]) processorOne(rule *grammar.GrammarRule, p props.Array[PG]) []props.Array[PG] {
	switch rule.Type() {
	case grammar.Induction:
		results := r.processor.ProcessNonTerminal(rule.Left(), rule.InductionID(), p)
		out := make([]props.Array[PG], len(results))
		for i, v := range results {
			out[i] = props.Single(v)
		}
		return out
	case grammar.ConcatOne:
		return []props.Array[PG]{props.Single(p.One())}
	default:
		panic("syntactic: processorOne invoked with rule of type " + rule.Type().String())
	}
}

func (r *GReachability[PG]) processTwo(rule *grammar.GrammarRule, p1, p2 props.Array[PG]) []props.Array[PG] {
	switch rule.Type() {
	case grammar.ConcatAppend:
		return []props.Array[PG]{p1.Append(p2.One())}
	case grammar.ConcatTwo:
		return []props.Array[PG]{props.Pair(p1.One(), p2.One())}
	default:
		panic("syntactic: processTwo invoked with rule of type " + rule.Type().String())
	}
}

// UpdateUntil closes the chart under the grammar's rules out to maxLength
// (clamped to the engine's own configured maximum). It is idempotent and
// incremental: calling it again with a larger maxLength only does the
// incremental work, re-running the binary closure over already-settled
// lengths against the newly enlarged window before processing genuinely new
// lengths.
func (r *GReachability[PG]) UpdateUntil(maxLength int) {
	if maxLength > r.maxLength {
		maxLength = r.maxLength
	}
	if maxLength < r.nextUpdatedLength {
		return
	}

	for length := 0; length < r.nextUpdatedLength; length++ {
		idx := r.toUpdate.indexFromBegin()
		for {
			edge, ok := r.toUpdate.getNext(length, &idx)
			if !ok {
				break
			}
			r.updateTwo(edge, true, r.nextUpdatedLength, maxLength)
			r.updateTwo(edge, false, r.nextUpdatedLength, maxLength)
		}
	}

	for length := r.nextUpdatedLength; length <= maxLength; length++ {
		consumed := 0
		for {
			edge, ok := r.toUpdate.queueNext(length, &consumed)
			if !ok {
				break
			}
			r.updateOne(edge)
			r.updateTwo(edge, true, r.nextUpdatedLength, maxLength)
			r.updateTwo(edge, false, r.nextUpdatedLength, maxLength)
		}
	}

	r.nextUpdatedLength = maxLength + 1
}

// GetStartEdges returns every discovered start-symbol, whole-stream edge,
// indexed by edit length.
func (r *GReachability[PG]) GetStartEdges() [][]*GEdge[PG] {
	return r.startEdge
}

// GetSubEdges returns every rule-use recorded as justifying edge.
func (r *GReachability[PG]) GetSubEdges(edge *GEdge[PG]) map[RuleUse[PG]]bool {
	_, uses, ok := r.edges.Get(edge)
	if !ok {
		return nil
	}
	return *uses
}

// Literals returns the original input tokens' lexemes, in order.
func (r *GReachability[PG]) Literals() []string { return r.literals }

// AllEdges returns every edge discovered so far, in unspecified order.
func (r *GReachability[PG]) AllEdges() []*GEdge[PG] { return r.edges.AllEdges() }
