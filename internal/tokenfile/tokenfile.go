// Package tokenfile reads the tab-separated input-token-file format every
// frontend consumes in place of lexing raw source text: one token per line,
// "KIND\tNAME\tLITERAL", KIND one of LT (literal terminal) or ST (symbolic
// terminal). A NAME that does not resolve against the grammar falls back to
// the grammar's unknown literal terminal, with LITERAL preserved so the
// faulty text still surfaces in diagnostics and --verbose-gen traces.
package tokenfile

import (
	"fmt"
	"strings"

	"github.com/dekarrin/fixgo/internal/fixerrors"
	"github.com/dekarrin/fixgo/internal/reachability/grammar"
	"github.com/dekarrin/fixgo/internal/reachability/syntactic"
)

// Kind is the KIND field of an input-token-file line.
type Kind string

const (
	LiteralTerminal Kind = "LT"
	SymbolicTerminal Kind = "ST"
)

// Read parses src (the full contents of an input token file) against g,
// resolving each line's NAME to a grammar symbol of the matching kind. Blank
// lines are skipped. A NAME grammar doesn't define resolves to g's unknown
// literal terminal (spec.md §6's "a name that does not resolve maps to the
// unknown-literal-terminal with the given literal preserved").
func Read(g *grammar.Grammar, src string) ([]syntactic.Token, error) {
	var tokens []syntactic.Token
	lineNo := 0
	for _, line := range strings.Split(src, "\n") {
		lineNo++
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return nil, fixerrors.Tokenizerf("line %d: want 3 tab-separated fields, got %d", lineNo, len(fields))
		}
		kind, name, literal := Kind(fields[0]), fields[1], fields[2]

		var sym *grammar.Symbol
		switch kind {
		case LiteralTerminal:
			sym = g.Symbol(grammar.LiteralTerminal, name)
		case SymbolicTerminal:
			sym = g.Symbol(grammar.SymbolicTerminal, name)
		default:
			return nil, fixerrors.Tokenizerf("line %d: unknown token kind %q", lineNo, string(kind))
		}
		if sym == nil {
			sym = g.Unknown()
		}
		tokens = append(tokens, syntactic.Token{Symbol: sym, Literal: literal})
	}
	return tokens, nil
}

// Write renders tokens back to the tab-separated format Read accepts, one
// line per token, classifying each by its symbol's kind.
func Write(tokens []syntactic.Token) (string, error) {
	var b strings.Builder
	for i, tok := range tokens {
		var kind Kind
		switch tok.Symbol.Kind() {
		case grammar.LiteralTerminal:
			kind = LiteralTerminal
		case grammar.SymbolicTerminal:
			kind = SymbolicTerminal
		default:
			return "", fmt.Errorf("tokenfile: token %d: symbol %q is not a terminal", i, tok.Symbol.Name())
		}
		fmt.Fprintf(&b, "%s\t%s\t%s\n", kind, tok.Symbol.Name(), tok.Literal)
	}
	return b.String(), nil
}
