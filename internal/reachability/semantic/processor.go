package semantic

import (
	"github.com/dekarrin/fixgo/internal/reachability/grammar"
	"github.com/dekarrin/fixgo/internal/reachability/props"
)

// SProcessor supplies the language-specific half of the semantic property
// rules (spec.md §5/C4): how an alternative's inherited property passes down
// to each argument, how its synthesized property composes back up, how a
// symbolic terminal's lexeme constrains and produces its synthesized
// property, and how a resolved derivation renders to output text. As with
// syntactic.GProcessor, every "process" result is a set of admissible
// properties the engine explores in full; an empty set prunes that branch.
type SProcessor[PG, PSI, PSS comparable] interface {
	// ProcessNonTerminalInh computes the inherited property available to one
	// argument of an alternative (identified by symbol and inductionID, at
	// argument slot inductionLoc), given the alternative's own inherited
	// property and the synthesized properties already assembled for earlier
	// argument slots.
	ProcessNonTerminalInh(symbol *grammar.Symbol, gprop props.Array[PG], inductionID, inductionLoc int, inh PSI, subTypes []PSS) []PSI

	// ProcessNonTerminalSyn computes the synthesized property for an entire
	// alternative, given its inherited property and the synthesized
	// properties of all its arguments.
	ProcessNonTerminalSyn(symbol *grammar.Symbol, gprop props.Array[PG], inductionID int, inh PSI, subTypes []PSS) []PSS

	// ProcessSymbolicTerminalSyn computes the synthesized property of a
	// symbolic terminal occurrence. literal is the token's lexeme for an
	// original input token, or nil for a synthetic insertion/substitution.
	ProcessSymbolicTerminalSyn(symbol *grammar.Symbol, gprop props.Array[PG], inh PSI, literal *string) []PSS

	// ProcessSymbolicTerminalGen renders one resolved symbolic-terminal
	// derivation to its output text.
	ProcessSymbolicTerminalGen(symbol *grammar.Symbol, gprop props.Array[PG], inh PSI, syn PSS, literal *string) string

	// ProcessRootInh computes the inherited property the whole search starts
	// from, applied to every G-layer start edge in turn.
	ProcessRootInh() PSI
}

// Empty is an SProcessor that carries no semantic properties at all: every
// inherited/synthesized value is the zero value of struct{}, and rendering
// falls back to echoing the literal lexeme (or the empty string for a
// synthetic occurrence). Grammars with no semantic layer of their own wire
// this in instead of a hand-written no-op processor.
type Empty[PG comparable] struct{}

func (Empty[PG]) ProcessNonTerminalInh(_ *grammar.Symbol, _ props.Array[PG], _, _ int, _ struct{}, _ []struct{}) []struct{} {
	return []struct{}{{}}
}

func (Empty[PG]) ProcessNonTerminalSyn(_ *grammar.Symbol, _ props.Array[PG], _ int, _ struct{}, _ []struct{}) []struct{} {
	return []struct{}{{}}
}

func (Empty[PG]) ProcessSymbolicTerminalSyn(_ *grammar.Symbol, _ props.Array[PG], _ struct{}, _ *string) []struct{} {
	return []struct{}{{}}
}

func (Empty[PG]) ProcessSymbolicTerminalGen(_ *grammar.Symbol, _ props.Array[PG], _ struct{}, _ struct{}, literal *string) string {
	if literal != nil {
		return *literal
	}
	return ""
}

func (Empty[PG]) ProcessRootInh() struct{} { return struct{}{} }
