package syntactic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/fixgo/internal/reachability/grammar"
	"github.com/dekarrin/fixgo/internal/reachability/props"
	"github.com/dekarrin/fixgo/internal/reachability/syntactic"
)

type noopProcessor struct{}

func (noopProcessor) ProcessSymbolicTerminal(_ *grammar.Symbol, _ *string) []struct{} {
	return []struct{}{{}}
}
func (noopProcessor) ProcessNonTerminal(_ *grammar.Symbol, _ int, _ props.Array[struct{}]) []struct{} {
	return []struct{}{{}}
}

func TestGReachability_ExactParseNeedsNoEdits(t *testing.T) {
	g, err := grammar.Parse(`
pair root = 0: NUM NUM
multivalued { NUM }
`)
	require.NoError(t, err)
	num := g.Symbol(grammar.SymbolicTerminal, "NUM")
	require.NotNil(t, num)

	tokens := []syntactic.Token{{Symbol: num, Literal: "1"}, {Symbol: num, Literal: "2"}}
	gr := syntactic.New[struct{}](g, tokens, noopProcessor{}, 0)
	gr.UpdateUntil(0)

	starts := gr.GetStartEdges()
	require.True(t, len(starts) > 0)
	assert.Len(t, starts[0], 1)
}

func TestGReachability_InsertionRepairsShortStream(t *testing.T) {
	g, err := grammar.Parse(`
pair root = 0: NUM NUM
multivalued { NUM }
`)
	require.NoError(t, err)
	num := g.Symbol(grammar.SymbolicTerminal, "NUM")
	require.NotNil(t, num)

	// Only one token: no exact parse, but inserting one NUM (either before
	// or after) repairs it at edit length 1.
	tokens := []syntactic.Token{{Symbol: num, Literal: "1"}}
	gr := syntactic.New[struct{}](g, tokens, noopProcessor{}, 1)
	gr.UpdateUntil(1)

	starts := gr.GetStartEdges()
	require.True(t, len(starts) == 0 || len(starts[0]) == 0, "no exact parse should exist at length 0")
	require.True(t, len(starts) > 1)
	assert.NotEmpty(t, starts[1])
}

func TestGReachability_ZeroProductionSeedsEmptyStreamParse(t *testing.T) {
	g, err := grammar.Parse(`
opt root = 0: NUM
         | 1:
multivalued { NUM }
`)
	require.NoError(t, err)

	gr := syntactic.New[struct{}](g, nil, noopProcessor{}, 0)
	gr.UpdateUntil(0)

	starts := gr.GetStartEdges()
	require.True(t, len(starts) > 0)
	require.NotEmpty(t, starts[0])
	assert.Equal(t, 0, starts[0][0].Begin())
	assert.Equal(t, 0, starts[0][0].End())
}
