package fixgo_test

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fixgo "github.com/dekarrin/fixgo"
	"github.com/dekarrin/fixgo/internal/reachability/grammar"
	"github.com/dekarrin/fixgo/internal/reachability/props"
	"github.com/dekarrin/fixgo/internal/reachability/semantic"
	"github.com/dekarrin/fixgo/internal/reachability/syntactic"
)

// sumGrammar mirrors internal/reachability/semantic's toy "concatenation
// means addition" grammar, reused here to exercise the Fix facade end to end
// without needing a full language frontend.
const sumGrammar = `
expr root = 0: NUM
          | 1: expr NUM
multivalued { NUM }
`

type sumGProc struct{}

func (sumGProc) ProcessSymbolicTerminal(_ *grammar.Symbol, _ *string) []struct{} { return []struct{}{{}} }
func (sumGProc) ProcessNonTerminal(_ *grammar.Symbol, _ int, _ props.Array[struct{}]) []struct{} {
	return []struct{}{{}}
}

type sumSProc struct{}

func (sumSProc) ProcessNonTerminalInh(_ *grammar.Symbol, _ props.Array[struct{}], _, _ int, _ struct{}, _ []int) []struct{} {
	return []struct{}{{}}
}

func (sumSProc) ProcessNonTerminalSyn(_ *grammar.Symbol, _ props.Array[struct{}], _ int, _ struct{}, subTypes []int) []int {
	sum := 0
	for _, v := range subTypes {
		sum += v
	}
	return []int{sum}
}

func (sumSProc) ProcessSymbolicTerminalSyn(_ *grammar.Symbol, _ props.Array[struct{}], _ struct{}, literal *string) []int {
	if literal == nil {
		return nil
	}
	n, err := strconv.Atoi(*literal)
	if err != nil {
		return nil
	}
	return []int{n}
}

func (sumSProc) ProcessSymbolicTerminalGen(_ *grammar.Symbol, _ props.Array[struct{}], _ struct{}, syn int, _ *string) string {
	return strconv.Itoa(syn)
}

func (sumSProc) ProcessRootInh() struct{} { return struct{}{} }

// sumFrontend adapts sumGrammar/sumGProc/sumSProc to fixgo.Processor: each
// line of the input file is one NUM token's literal, and the environment
// file is ignored entirely.
type sumFrontend struct{}

func (sumFrontend) Info() fixgo.FixingInfo {
	return fixgo.FixingInfo{Grammar: sumGrammar, GrammarFile: "sumGrammar"}
}

func (sumFrontend) Load(g *grammar.Grammar, inputStr, _ string, _ fixgo.FixTaskInfo) ([]syntactic.Token, syntactic.GProcessor[struct{}], semantic.SProcessor[struct{}, struct{}, int], error) {
	num := g.Symbol(grammar.SymbolicTerminal, "NUM")
	var tokens []syntactic.Token
	for _, field := range strings.Fields(inputStr) {
		tokens = append(tokens, syntactic.Token{Symbol: num, Literal: field})
	}
	return tokens, sumGProc{}, sumSProc{}, nil
}

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFix_FindsExactParseAtLengthZero(t *testing.T) {
	dir := t.TempDir()
	input := writeTemp(t, dir, "in.txt", "3 4 5")
	env := writeTemp(t, dir, "env.txt", "")

	results := fixgo.Fix[struct{}, struct{}, int]([]fixgo.FixTaskInfo{
		{InputName: input, EnvName: env, MaxLen: 2},
	}, sumFrontend{})

	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, 0, results[0].Result.FoundLength)
	assert.Equal(t, []string{"3", "4", "5"}, results[0].Result.Outputs)
}

func TestFix_WritesOutputFileWhenRequested(t *testing.T) {
	dir := t.TempDir()
	input := writeTemp(t, dir, "in.txt", "1 2")
	env := writeTemp(t, dir, "env.txt", "")
	output := filepath.Join(dir, "out.txt")

	results := fixgo.Fix[struct{}, struct{}, int]([]fixgo.FixTaskInfo{
		{InputName: input, EnvName: env, OutputName: output, MaxLen: 0},
	}, sumFrontend{})

	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", string(written))
}

func TestFix_ReportsIOErrorForMissingInput(t *testing.T) {
	dir := t.TempDir()
	env := writeTemp(t, dir, "env.txt", "")

	results := fixgo.Fix[struct{}, struct{}, int]([]fixgo.FixTaskInfo{
		{InputName: filepath.Join(dir, "missing.txt"), EnvName: env, MaxLen: 0},
	}, sumFrontend{})

	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
	assert.Nil(t, results[0].Result)
}
