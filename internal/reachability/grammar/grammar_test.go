package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/fixgo/internal/reachability/grammar"
)

const miniGrammar = `
# a tiny grammar exercising arities 0, 1, 2 and 3
stmt root = 0: expr ";"
          | 1: decl
          | 2:
expr = 0: IDENT
     | 1: expr "+" expr
decl = 0: "var" IDENT ":"
multivalued { IDENT }
`

func mustParse(t *testing.T, src string) *grammar.Grammar {
	t.Helper()
	g, err := grammar.Parse(src)
	require.NoError(t, err)
	require.NotNil(t, g)
	return g
}

func TestParse_Basic(t *testing.T) {
	g := mustParse(t, miniGrammar)

	start := g.Start()
	require.NotNil(t, start)
	assert.Equal(t, "stmt", start.Name())

	ident := g.Symbol(grammar.SymbolicTerminal, "IDENT")
	require.NotNil(t, ident)
	assert.True(t, ident.MultiValued())

	expr := g.Symbol(grammar.NonTerminal, "expr")
	require.NotNil(t, expr)
}

func TestParse_ArityZeroProducesConcatZero(t *testing.T) {
	g := mustParse(t, miniGrammar)
	stmt := g.Symbol(grammar.NonTerminal, "stmt")
	require.NotNil(t, stmt)

	var foundZeroAlt bool
	for _, r := range stmt.Rules() {
		require.Equal(t, grammar.Induction, r.Type())
		top := r.Right1()
		require.Len(t, top.Rules(), 1)
		if top.Rules()[0].Type() == grammar.ConcatZero {
			foundZeroAlt = true
			assert.Equal(t, 2, r.InductionID())
		}
	}
	assert.True(t, foundZeroAlt, "expected stmt's alt 2 (empty) to normalize to ConcatZero")

	var found bool
	for _, s := range g.ZeroProducing() {
		if s == stmt {
			found = true
		}
	}
	assert.True(t, found, "stmt should be recognized as zero-producing")
}

func TestParse_ArityThreeChainsConcatAppend(t *testing.T) {
	g := mustParse(t, miniGrammar)
	decl := g.Symbol(grammar.NonTerminal, "decl")
	require.NotNil(t, decl)
	require.Len(t, decl.Rules(), 1)

	induction := decl.Rules()[0]
	assert.Equal(t, grammar.Induction, induction.Type())
	assert.Equal(t, 3, induction.InductionArgs())

	top := induction.Right1()
	require.Len(t, top.Rules(), 1)
	finalRule := top.Rules()[0]
	assert.Equal(t, grammar.ConcatAppend, finalRule.Type())
	assert.Equal(t, 3, finalRule.InductionLocation())

	acc2 := finalRule.Right1()
	require.Len(t, acc2.Rules(), 1)
	assert.Equal(t, grammar.ConcatTwo, acc2.Rules()[0].Type())
}

func TestParse_DuplicateAltID(t *testing.T) {
	_, err := grammar.Parse(`
n root = 0: "a"
       | 0: "b"
`)
	require.Error(t, err)
	var gerr *grammar.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, grammar.ErrDuplicateAltID, gerr.Kind)
}

func TestParse_MissingRoot(t *testing.T) {
	_, err := grammar.Parse(`n = 0: "a"`)
	require.Error(t, err)
	var gerr *grammar.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, grammar.ErrMissingRoot, gerr.Kind)
}

func TestParse_DuplicateRoot(t *testing.T) {
	_, err := grammar.Parse(`
a root = 0: "x"
b root = 0: a
`)
	require.Error(t, err)
	var gerr *grammar.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, grammar.ErrDuplicateRoot, gerr.Kind)
}

func TestParse_UnreachableSymbol(t *testing.T) {
	_, err := grammar.Parse(`
a root = 0: "x"
orphan = 0: "y"
`)
	require.Error(t, err)
	var gerr *grammar.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, grammar.ErrUnreachableSymbol, gerr.Kind)
}

func TestParse_ZeroProductionCycle(t *testing.T) {
	// a and b are each directly ε-productive (their second alternative is
	// empty) and each also reduces to the other via a one-element
	// alternative, so the ε-productive subgraph contains a <-> b.
	_, err := grammar.Parse(`
a root = 0: b
       | 1:
b = 0: a
     | 1:
`)
	require.Error(t, err)
	var gerr *grammar.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, grammar.ErrZeroProductionCycle, gerr.Kind)
}

func TestParse_DuplicateSymbol(t *testing.T) {
	_, err := grammar.Parse(`
a root = 0: "x"
a = 0: "y"
`)
	require.Error(t, err)
	var gerr *grammar.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, grammar.ErrDuplicateSymbol, gerr.Kind)
}

func TestParse_DuplicateMultivalued(t *testing.T) {
	_, err := grammar.Parse(`
a root = 0: IDENT
multivalued { IDENT }
multivalued { IDENT }
`)
	require.Error(t, err)
	var gerr *grammar.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, grammar.ErrDuplicateMultivalued, gerr.Kind)
}

func TestParse_MissingMultivaluedSymbol(t *testing.T) {
	_, err := grammar.Parse(`
a root = 0: IDENT
multivalued { NOTREAL }
`)
	require.Error(t, err)
	var gerr *grammar.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, grammar.ErrMissingMultivaluedSymbol, gerr.Kind)
}

func TestParse_NoAlternatives(t *testing.T) {
	// "b" is referenced as an element of a's alternative but never given its
	// own header+alternatives line, so it is interned but rule-less.
	_, err := grammar.Parse(`
a root = 0: b
`)
	require.Error(t, err)
	var gerr *grammar.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, grammar.ErrNoAlternatives, gerr.Kind)
}
