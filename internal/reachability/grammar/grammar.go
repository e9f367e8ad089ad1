package grammar

import "sort"

// Grammar is a fully built, validated, 2-normal-form grammar: every
// alternative of every non-terminal has already been rewritten into a chain
// of unary/binary GrammarRules (see rule.go), every non-terminal is
// reachable from the start symbol, and no symbol participates in a
// zero-production cycle.
//
// A Grammar is read-only after Parse returns it; the reachability engines in
// ../chart, ../syntactic and ../semantic only ever read from it.
type Grammar struct {
	symbols []*Symbol // all symbols, indexed by Symbol.id

	byKind map[SymbolKind]map[string]*Symbol

	start *Symbol

	// unknown is the designated symbolic terminal used to seed single-token
	// substitution edges when a processor's token stream contains a token
	// class the grammar never names explicitly (spec.md §4.2's "unknown
	// literal terminal" convention, generalized to cover both literal and
	// symbolic stand-ins — fixgo always resolves it to a SymbolicTerminal so
	// a processor still receives lexeme text to classify).
	unknown *Symbol

	// zeroProducing lists every non-terminal with at least one ConcatZero (or
	// Induction-over-ConcatZero) rule, i.e. every symbol that can derive the
	// empty string. The chart seeds one zero-length edge per entry per
	// anchor position.
	zeroProducing []*Symbol

	// zeroProductionRules lists every ConcatZero rule directly (as opposed
	// to zeroProducing, which lists the transitive closure of symbols that
	// derive epsilon). The syntactic engine seeds a length-0 edge for each
	// ConcatZero rule's own left-hand side (a synthetic alternative-top
	// symbol); unary closure then propagates that up through the owning
	// Induction rule.
	zeroProductionRules []*GrammarRule
}

// Symbols returns every symbol in the grammar, ordered by ID.
func (g *Grammar) Symbols() []*Symbol { return g.symbols }

// Symbol looks up a symbol by kind and name, returning nil if absent.
func (g *Grammar) Symbol(kind SymbolKind, name string) *Symbol {
	return g.byKind[kind][name]
}

// Start returns the grammar's single root non-terminal.
func (g *Grammar) Start() *Symbol { return g.start }

// Unknown returns the symbolic terminal used to stand in for an unrecognized
// input token class.
func (g *Grammar) Unknown() *Symbol { return g.unknown }

// ZeroProducing returns every non-terminal that can derive the empty string.
func (g *Grammar) ZeroProducing() []*Symbol {
	out := make([]*Symbol, len(g.zeroProducing))
	copy(out, g.zeroProducing)
	return out
}

// ZeroProductionRules returns every direct ConcatZero rule in the grammar.
func (g *Grammar) ZeroProductionRules() []*GrammarRule {
	out := make([]*GrammarRule, len(g.zeroProductionRules))
	copy(out, g.zeroProductionRules)
	return out
}

// builder accumulates symbols and rules while parsing, then finishes into an
// immutable Grammar.
type builder struct {
	symbols []*Symbol
	byKind  map[SymbolKind]map[string]*Symbol
	start   *Symbol
	unknown *Symbol
}

func newBuilder() *builder {
	b := &builder{
		byKind: map[SymbolKind]map[string]*Symbol{
			LiteralTerminal:  {},
			SymbolicTerminal: {},
			NonTerminal:      {},
		},
	}
	return b
}

// intern returns the existing symbol of the given kind/name, or allocates a
// new one. Literal terminals and non-terminals are each globally unique by
// name; multiple calls with the same (kind, name) always return the same
// *Symbol, giving symbols pointer identity as required throughout the
// reachability engines.
func (b *builder) intern(kind SymbolKind, name string) *Symbol {
	if s, ok := b.byKind[kind][name]; ok {
		return s
	}
	s := &Symbol{id: len(b.symbols), kind: kind, name: name}
	b.symbols = append(b.symbols, s)
	b.byKind[kind][name] = s
	return s
}

// lookup returns the existing symbol of the given kind/name without creating
// one, and false if no such symbol has been interned yet.
func (b *builder) lookup(kind SymbolKind, name string) (*Symbol, bool) {
	s, ok := b.byKind[kind][name]
	return s, ok
}

func (b *builder) setStart(s *Symbol, line int) error {
	if b.start != nil && b.start != s {
		return errf(ErrDuplicateRoot, line, "symbol %q declared root but %q is already root", s.name, b.start.name)
	}
	b.start = s
	return nil
}

// finish validates the built symbol/rule set and produces an immutable
// Grammar, or the first validation error encountered.
func (b *builder) finish() (*Grammar, error) {
	if b.start == nil {
		return nil, errf(ErrMissingRoot, 0, "no non-terminal declared root")
	}

	for _, s := range b.symbols {
		if s.kind == NonTerminal && len(s.rules) == 0 {
			return nil, errf(ErrNoAlternatives, 0, "non-terminal %q has no alternatives", s.name)
		}
	}

	if err := checkZeroProductionCycles(b.symbols); err != nil {
		return nil, err
	}

	if err := checkReachable(b.start, b.symbols); err != nil {
		return nil, err
	}

	g := &Grammar{
		symbols: b.symbols,
		byKind:  b.byKind,
		start:   b.start,
		unknown: b.unknown,
	}
	for _, s := range b.symbols {
		if s.kind == NonTerminal && symbolDerivesEmpty(s) {
			g.zeroProducing = append(g.zeroProducing, s)
		}
		for _, r := range s.rules {
			if r.ruleType == ConcatZero {
				g.zeroProductionRules = append(g.zeroProductionRules, r)
			}
		}
	}
	return g, nil
}

// checkReachable verifies every symbol is reachable from start via some
// chain of rules (spec.md §7's "unreachable symbol" fatal error).
func checkReachable(start *Symbol, all []*Symbol) error {
	seen := map[*Symbol]bool{start: true}
	queue := []*Symbol{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, r := range cur.rules {
			for _, nxt := range []*Symbol{r.right1, r.right2} {
				if nxt == nil || seen[nxt] {
					continue
				}
				seen[nxt] = true
				queue = append(queue, nxt)
			}
		}
	}
	var unreachable []string
	for _, s := range all {
		if !seen[s] {
			unreachable = append(unreachable, s.name)
		}
	}
	if len(unreachable) > 0 {
		sort.Strings(unreachable)
		return errf(ErrUnreachableSymbol, 0, "unreachable from root %q: %v", start.name, unreachable)
	}
	return nil
}

// checkZeroProductionCycles rejects a non-terminal that can derive itself
// via a chain of purely zero-length (epsilon-producing) rules with no
// terminal consumed anywhere in the cycle — such a cycle would let the
// syntactic closure loop at a single chart position forever. This mirrors
// spec.md §9's acknowledgment that the check is necessary but may not catch
// every pathological grammar; it catches the direct unary-chain case, which
// is the one the engine's BFS closure cannot terminate on.
func checkZeroProductionCycles(all []*Symbol) error {
	// white = unvisited, gray = on current DFS stack, black = resolved.
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := map[*Symbol]int{}

	var visit func(s *Symbol, path []string) error
	visit = func(s *Symbol, path []string) error {
		if color[s] == black {
			return nil
		}
		if color[s] == gray {
			return errf(ErrZeroProductionCycle, 0, "zero-production cycle: %v -> %s", path, s.name)
		}
		color[s] = gray
		path = append(path, s.name)
		for _, r := range s.rules {
			switch r.ruleType {
			case Induction, ConcatOne:
				if r.right1.kind == NonTerminal && symbolDerivesEmpty(r.right1) {
					if err := visit(r.right1, path); err != nil {
						return err
					}
				}
			case ConcatZero:
				// no right-hand symbol; does not extend the cycle further.
			}
		}
		color[s] = black
		return nil
	}

	for _, s := range all {
		if s.kind != NonTerminal {
			continue
		}
		if err := visit(s, nil); err != nil {
			return err
		}
	}
	return nil
}

// symbolDerivesEmpty reports whether s has a direct or chained rule deriving
// the empty string. Memoized per-call via a closure-local cache would help
// at scale, but grammars are small enough (tens of non-terminals) that the
// plain recursive check used by both checkZeroProductionCycles and
// Grammar.finish's zeroProducing pass is fast enough to run repeatedly.
func symbolDerivesEmpty(s *Symbol) bool {
	return symbolDerivesEmptyVisit(s, map[*Symbol]bool{})
}

func symbolDerivesEmptyVisit(s *Symbol, visiting map[*Symbol]bool) bool {
	if visiting[s] {
		return false
	}
	visiting[s] = true
	for _, r := range s.rules {
		switch r.ruleType {
		case ConcatZero:
			return true
		case Induction, ConcatOne:
			if r.right1.kind == NonTerminal && symbolDerivesEmptyVisit(r.right1, visiting) {
				return true
			}
		}
	}
	return false
}
