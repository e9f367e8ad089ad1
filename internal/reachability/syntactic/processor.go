package syntactic

import (
	"github.com/dekarrin/fixgo/internal/reachability/grammar"
	"github.com/dekarrin/fixgo/internal/reachability/props"
)

// GProcessor supplies the language-specific half of the syntactic property
// rules (spec.md §4.3/C7): how a symbolic terminal's lexeme (or its absence,
// for a synthetic insertion/substitution edge) classifies into syntactic
// properties, and how an alternative's argument tuple composes into its
// own. Every result is a set of admissible properties — nil, one, or many —
// and the engine explores all of them.
type GProcessor[PG comparable] interface {
	// ProcessSymbolicTerminal classifies a symbolic terminal occurrence.
	// literal is the token's lexeme for an original input token, or nil for
	// a synthetic inserted/substituted occurrence the processor must
	// classify without seeing any text.
	ProcessSymbolicTerminal(symbol *grammar.Symbol, literal *string) []PG

	// ProcessNonTerminal computes the syntactic properties available for an
	// entire alternative (identified by symbol and inductionID), given the
	// already-assembled argument tuple.
	ProcessNonTerminal(symbol *grammar.Symbol, inductionID int, args props.Array[PG]) []PG
}

// Token is one entry of the external, pre-tokenized input (spec.md §6):
// a grammar symbolic-terminal classification paired with its lexeme.
type Token struct {
	Symbol  *grammar.Symbol
	Literal string
}
