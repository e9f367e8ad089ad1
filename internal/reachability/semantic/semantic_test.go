package semantic_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/fixgo/internal/reachability/grammar"
	"github.com/dekarrin/fixgo/internal/reachability/props"
	"github.com/dekarrin/fixgo/internal/reachability/semantic"
	"github.com/dekarrin/fixgo/internal/reachability/syntactic"
)

// sumGrammar is a toy left-recursive grammar where concatenation means
// addition: "3 4 5" derives expr=3+4+5. It has no literal terminals, so
// every composition rule exercised is Induction/ConcatOne/ConcatTwo (no
// ConcatAppend, which grammar_test.go already covers directly).
const sumGrammar = `
expr root = 0: NUM
          | 1: expr NUM
multivalued { NUM }
`

type gproc struct{}

func (gproc) ProcessSymbolicTerminal(_ *grammar.Symbol, _ *string) []struct{} { return []struct{}{{}} }
func (gproc) ProcessNonTerminal(_ *grammar.Symbol, _ int, _ props.Array[struct{}]) []struct{} {
	return []struct{}{{}}
}

// sproc synthesizes each NUM leaf to its parsed integer value and each expr
// node to the sum of its children's values; it never needs an inherited
// property.
type sproc struct{}

func (sproc) ProcessNonTerminalInh(_ *grammar.Symbol, _ props.Array[struct{}], _, _ int, _ struct{}, _ []int) []struct{} {
	return []struct{}{{}}
}

func (sproc) ProcessNonTerminalSyn(_ *grammar.Symbol, _ props.Array[struct{}], _ int, _ struct{}, subTypes []int) []int {
	sum := 0
	for _, v := range subTypes {
		sum += v
	}
	return []int{sum}
}

func (sproc) ProcessSymbolicTerminalSyn(_ *grammar.Symbol, _ props.Array[struct{}], _ struct{}, literal *string) []int {
	if literal == nil {
		return nil
	}
	n, err := strconv.Atoi(*literal)
	if err != nil {
		return nil
	}
	return []int{n}
}

func (sproc) ProcessSymbolicTerminalGen(_ *grammar.Symbol, _ props.Array[struct{}], _ struct{}, syn int, _ *string) string {
	return strconv.Itoa(syn)
}

func (sproc) ProcessRootInh() struct{} { return struct{}{} }

func buildChart(t *testing.T, g *grammar.Grammar, literals []string, maxLength int) *syntactic.GReachability[struct{}] {
	t.Helper()
	num := g.Symbol(grammar.SymbolicTerminal, "NUM")
	require.NotNil(t, num)
	tokens := make([]syntactic.Token, len(literals))
	for i, lit := range literals {
		tokens[i] = syntactic.Token{Symbol: num, Literal: lit}
	}
	gr := syntactic.New[struct{}](g, tokens, gproc{}, maxLength)
	gr.UpdateUntil(maxLength)
	return gr
}

func TestFind_SumsLeftRecursiveConcatenation(t *testing.T) {
	g, err := grammar.Parse(sumGrammar)
	require.NoError(t, err)

	gr := buildChart(t, g, []string{"3", "4", "5"}, 0)
	s := semantic.New[struct{}, struct{}, int](gr, sproc{})

	fkey, ok := s.Find(0, 0)
	require.True(t, ok)
	assert.Equal(t, 12, fkey.SynProp().One())

	text := s.GenerateFrom(fkey, false)
	assert.Equal(t, []string{"3", "4", "5"}, text)
}

func TestFind_RejectsUnparsableLiteral(t *testing.T) {
	g, err := grammar.Parse(sumGrammar)
	require.NoError(t, err)

	// "x" is not a valid integer, so ProcessSymbolicTerminalSyn prunes every
	// derivation through it; no semantic fix exists even though the G-layer
	// parses the span fine.
	gr := buildChart(t, g, []string{"3", "x"}, 0)
	s := semantic.New[struct{}, struct{}, int](gr, sproc{})

	_, ok := s.Find(0, 0)
	assert.False(t, ok)
}

func TestFind_PicksShortestEditLength(t *testing.T) {
	g, err := grammar.Parse(sumGrammar)
	require.NoError(t, err)

	// A lone NUM already parses and sums at edit length 0; allowing edits up
	// to 2 must not change the answer found, since Find tries length 0 first.
	gr := buildChart(t, g, []string{"7"}, 2)
	s := semantic.New[struct{}, struct{}, int](gr, sproc{})

	fkey, ok := s.Find(0, 2)
	require.True(t, ok)
	assert.Equal(t, 0, fkey.Begin())
	assert.Equal(t, 1, fkey.End())
	assert.Equal(t, 7, fkey.SynProp().One())
}
