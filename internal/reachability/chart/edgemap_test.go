package chart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/fixgo/internal/reachability/chart"
	"github.com/dekarrin/fixgo/internal/reachability/grammar"
)

const miniGrammar = `
a root = 0: "x"
`

type fakeEdge struct {
	begin, end, length int
	symbol             *grammar.Symbol
	other              string
}

func (e *fakeEdge) Begin() int                 { return e.begin }
func (e *fakeEdge) End() int                    { return e.end }
func (e *fakeEdge) Length() int                 { return e.length }
func (e *fakeEdge) Symbol() *grammar.Symbol     { return e.symbol }
func (e *fakeEdge) OtherKey() string            { return e.other }

func testSymbols(t *testing.T) (a, x *grammar.Symbol) {
	t.Helper()
	g, err := grammar.Parse(miniGrammar)
	require.NoError(t, err)
	a = g.Start()
	require.NotNil(t, a)
	x = g.Symbol(grammar.LiteralTerminal, "x")
	require.NotNil(t, x)
	return a, x
}

func TestEdgeMap_InsertAndGet(t *testing.T) {
	a, _ := testSymbols(t)
	m := chart.New[*fakeEdge, int]()

	e := &fakeEdge{begin: 0, end: 1, length: 0, symbol: a, other: "p1"}
	m.Insert(e, 42)

	got, val, ok := m.Get(e)
	require.True(t, ok)
	assert.Same(t, e, got)
	assert.Equal(t, 42, *val)
}

func TestEdgeMap_InsertIsIdempotent(t *testing.T) {
	a, _ := testSymbols(t)
	m := chart.New[*fakeEdge, int]()

	first := &fakeEdge{begin: 0, end: 1, length: 0, symbol: a, other: "p1"}
	second := &fakeEdge{begin: 0, end: 1, length: 0, symbol: a, other: "p1"}
	m.Insert(first, 1)
	m.Insert(second, 2)

	got, val, ok := m.Get(first)
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.Equal(t, 1, *val)
}

func TestEdgeMap_OtherKeyDisambiguatesSameSlot(t *testing.T) {
	a, _ := testSymbols(t)
	m := chart.New[*fakeEdge, int]()

	e1 := &fakeEdge{begin: 0, end: 1, length: 0, symbol: a, other: "p1"}
	e2 := &fakeEdge{begin: 0, end: 1, length: 0, symbol: a, other: "p2"}
	m.Insert(e1, 1)
	m.Insert(e2, 2)

	_, v1, ok1 := m.Get(e1)
	_, v2, ok2 := m.Get(e2)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, 1, *v1)
	assert.Equal(t, 2, *v2)
}

func TestEdgeMap_ContainsKeyAndAllEdges(t *testing.T) {
	a, x := testSymbols(t)
	m := chart.New[*fakeEdge, int]()

	present := &fakeEdge{begin: 0, end: 1, length: 0, symbol: a, other: "p1"}
	m.InsertDefault(present)

	absent := &fakeEdge{begin: 0, end: 1, length: 0, symbol: x, other: "p1"}
	assert.True(t, m.ContainsKey(present))
	assert.False(t, m.ContainsKey(absent))

	all := m.AllEdges()
	require.Len(t, all, 1)
	assert.Same(t, present, all[0])
}
