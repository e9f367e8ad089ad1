package gensrc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/fixgo/internal/gensrc"
)

const miniGrammar = `
stmt root = 0: expr ";"
          | 1: decl
expr = 0: IDENT
     | 1: expr "+" expr
decl = 0: "var" IDENT ":"
multivalued { IDENT }
`

func Test_ParseKind(t *testing.T) {
	cases := map[string]gensrc.Kind{
		"g": gensrc.G, "G": gensrc.G,
		"s": gensrc.S, "S": gensrc.S,
		"ss": gensrc.SS, "SS": gensrc.SS,
	}
	for in, want := range cases {
		got, err := gensrc.ParseKind(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func Test_ParseKind_Unknown(t *testing.T) {
	_, err := gensrc.ParseKind("bogus")
	assert.Error(t, err)
}

func Test_Generate_G_OneCasePerAlt(t *testing.T) {
	out, err := gensrc.Generate(miniGrammar, gensrc.G)
	require.NoError(t, err)
	assert.Contains(t, out, "ProcessNonTerminal")
	assert.Contains(t, out, `case "stmt"`)
	assert.Contains(t, out, `case "expr"`)
	assert.Contains(t, out, `case "decl"`)
}

func Test_Generate_S_HasInhAndSynStubs(t *testing.T) {
	out, err := gensrc.Generate(miniGrammar, gensrc.S)
	require.NoError(t, err)
	assert.Contains(t, out, "ProcessNonTerminalInh")
	assert.Contains(t, out, "ProcessNonTerminalSyn")
}

func Test_Generate_SS_OneCasePerSymbolicTerminal(t *testing.T) {
	out, err := gensrc.Generate(miniGrammar, gensrc.SS)
	require.NoError(t, err)
	assert.Contains(t, out, "ProcessSymbolicTerminalSyn")
	assert.Contains(t, out, "ProcessSymbolicTerminalGen")
	assert.Contains(t, out, `case "IDENT"`)
}

func Test_Generate_BadGrammarIsError(t *testing.T) {
	_, err := gensrc.Generate("not a valid grammar {{{", gensrc.G)
	assert.Error(t, err)
}
