// Package gensrc emits Go source stubs for a new language frontend's
// processor implementation from a grammar, the fixgo counterpart of the
// original's gen_g_src/gen_s_src/gen_s_symbolic_src (A7 in SPEC_FULL.md's
// component table). Grounded on
// original_source/fixing-rs-base/src/gensrc.rs: that original emits one
// concrete Rust function per (symbol, alternative[, location]), since its
// generated processor is a table of free functions looked up by name; this
// port's GProcessor/SProcessor are single interfaces with one big switch
// over symbol.Name()/inductionID/inductionLocation (internal/lang/clike and
// internal/lang/mjlike's own processor.go are the worked examples), so the
// stub is one switch-case arm per (symbol, alternative[, location]) instead
// of one function — the same information, laid out the way this port's
// processors actually consume it.
package gensrc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/fixgo/internal/reachability/grammar"
)

// Kind selects which processor method(s) to stub, matching the original's
// GenSrcType::{G,S,SS} (fixgo has no separate "symbolic" axis the way the
// original's macro-generated code did, so Kind SS stubs the two
// ProcessSymbolicTerminal* methods instead of a parallel set of generated
// functions).
type Kind int

const (
	G Kind = iota
	S
	SS
)

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "g":
		return G, nil
	case "s":
		return S, nil
	case "ss":
		return SS, nil
	default:
		return 0, fmt.Errorf("gensrc: unknown stub kind %q (want g, s, or ss)", s)
	}
}

// alt describes one Induction rule: the alternative's owning non-terminal,
// its stable id, and its arity.
type alt struct {
	symbol string
	id     int
	arity  int
}

func inductionAlts(g *grammar.Grammar) []alt {
	var alts []alt
	for _, sym := range g.Symbols() {
		if sym.Kind() != grammar.NonTerminal {
			continue
		}
		for _, r := range sym.Rules() {
			if r.Type() != grammar.Induction {
				continue
			}
			alts = append(alts, alt{symbol: sym.Name(), id: r.InductionID(), arity: r.InductionArgs()})
		}
	}
	sort.Slice(alts, func(i, j int) bool {
		if alts[i].symbol != alts[j].symbol {
			return alts[i].symbol < alts[j].symbol
		}
		return alts[i].id < alts[j].id
	})
	return alts
}

// Generate renders a Go source stub of kind for grammarSource, as a
// standalone text block meant to be pasted into a processor.go switch.
func Generate(grammarSource string, kind Kind) (string, error) {
	g, err := grammar.Parse(grammarSource)
	if err != nil {
		return "", fmt.Errorf("gensrc: %w", err)
	}
	alts := inductionAlts(g)

	var b strings.Builder
	switch kind {
	case G:
		writeGStub(&b, alts)
	case S:
		writeSStub(&b, alts)
	case SS:
		writeSSStub(&b, g)
	}
	return b.String(), nil
}

func writeGStub(b *strings.Builder, alts []alt) {
	fmt.Fprintln(b, "// ProcessNonTerminal stub, one case per alternative.")
	fmt.Fprintln(b, "func (GProc) ProcessNonTerminal(symbol *grammar.Symbol, inductionID int, args props.Array[struct{}]) []struct{} {")
	fmt.Fprintln(b, "\tswitch symbol.Name() {")
	lastSym := ""
	for _, a := range alts {
		if a.symbol != lastSym {
			if lastSym != "" {
				fmt.Fprintln(b, "\t}")
			}
			fmt.Fprintf(b, "\tcase %q:\n\t\tswitch inductionID {\n", a.symbol)
			lastSym = a.symbol
		}
		fmt.Fprintf(b, "\t\tcase %d: // arity %d\n\t\t\t// TODO\n", a.id, a.arity)
	}
	if lastSym != "" {
		fmt.Fprintln(b, "\t\t}")
	}
	fmt.Fprintln(b, "\t}")
	fmt.Fprintln(b, "\treturn []struct{}{{}}")
	fmt.Fprintln(b, "}")
}

func writeSStub(b *strings.Builder, alts []alt) {
	fmt.Fprintln(b, "// ProcessNonTerminalInh stub, one case per (alternative, location);")
	fmt.Fprintln(b, "// a location that the grammar fills with a literal terminal never gets")
	fmt.Fprintln(b, "// consulted at runtime, so a stray case for one is harmless dead code.")
	fmt.Fprintln(b, "func (s SProc) ProcessNonTerminalInh(symbol *grammar.Symbol, _ props.Array[struct{}], inductionID, loc int, cur inh, subTypes []SynType) []inh {")
	fmt.Fprintln(b, "\tswitch symbol.Name() {")
	lastSym := ""
	for _, a := range alts {
		if a.symbol != lastSym {
			if lastSym != "" {
				fmt.Fprintln(b, "\t}")
			}
			fmt.Fprintf(b, "\tcase %q:\n\t\tswitch inductionID {\n", a.symbol)
			lastSym = a.symbol
		}
		fmt.Fprintf(b, "\t\tcase %d:\n\t\t\tswitch loc {\n", a.id)
		for loc := 0; loc < a.arity; loc++ {
			fmt.Fprintf(b, "\t\t\tcase %d:\n\t\t\t\t// TODO\n", loc)
		}
		fmt.Fprintln(b, "\t\t\t}")
	}
	if lastSym != "" {
		fmt.Fprintln(b, "\t\t}")
	}
	fmt.Fprintln(b, "\t}")
	fmt.Fprintln(b, "\treturn pass(cur)")
	fmt.Fprintln(b, "}")
	fmt.Fprintln(b)
	fmt.Fprintln(b, "// ProcessNonTerminalSyn stub, one case per alternative.")
	fmt.Fprintln(b, "func (s SProc) ProcessNonTerminalSyn(symbol *grammar.Symbol, _ props.Array[struct{}], inductionID int, inh inh, subTypes []SynType) []SynType {")
	fmt.Fprintln(b, "\tswitch symbol.Name() {")
	lastSym = ""
	for _, a := range alts {
		if a.symbol != lastSym {
			if lastSym != "" {
				fmt.Fprintln(b, "\t}")
			}
			fmt.Fprintf(b, "\tcase %q:\n\t\tswitch inductionID {\n", a.symbol)
			lastSym = a.symbol
		}
		fmt.Fprintf(b, "\t\tcase %d:\n\t\t\t// TODO\n", a.id)
	}
	if lastSym != "" {
		fmt.Fprintln(b, "\t\t}")
	}
	fmt.Fprintln(b, "\t}")
	fmt.Fprintln(b, "\treturn []SynType{{}}")
	fmt.Fprintln(b, "}")
}

func writeSSStub(b *strings.Builder, g *grammar.Grammar) {
	fmt.Fprintln(b, "// ProcessSymbolicTerminalSyn/Gen stub, one case per symbolic terminal.")
	fmt.Fprintln(b, "func (s SProc) ProcessSymbolicTerminalSyn(symbol *grammar.Symbol, _ props.Array[struct{}], inh inh, literal *string) []SynType {")
	fmt.Fprintln(b, "\tswitch symbol.Name() {")
	for _, sym := range g.Symbols() {
		if sym.Kind() != grammar.SymbolicTerminal {
			continue
		}
		fmt.Fprintf(b, "\tcase %q:\n\t\t// TODO\n", sym.Name())
	}
	fmt.Fprintln(b, "\t}")
	fmt.Fprintln(b, "\treturn []SynType{{}}")
	fmt.Fprintln(b, "}")
	fmt.Fprintln(b)
	fmt.Fprintln(b, "func (s SProc) ProcessSymbolicTerminalGen(symbol *grammar.Symbol, _ props.Array[struct{}], inh inh, syn SynType, literal *string) string {")
	fmt.Fprintln(b, "\tif literal != nil {")
	fmt.Fprintln(b, "\t\treturn *literal")
	fmt.Fprintln(b, "\t}")
	fmt.Fprintln(b, "\t// TODO: synthesize a replacement lexeme per symbol.Name()")
	fmt.Fprintln(b, "\treturn \"\"")
	fmt.Fprintln(b, "}")
}
