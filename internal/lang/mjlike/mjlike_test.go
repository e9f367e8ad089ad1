package mjlike

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fixgo "github.com/dekarrin/fixgo"
	"github.com/dekarrin/fixgo/internal/reachability/grammar"
	"github.com/dekarrin/fixgo/internal/tokenfile"
)

func lt(lit string) string {
	return string(tokenfile.LiteralTerminal) + "\t" + lit + "\t" + lit + "\n"
}

func id(name string) string {
	return string(tokenfile.SymbolicTerminal) + "\tIDENT\t" + name + "\n"
}

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runFix(t *testing.T, input, env string, maxLen int) fixgo.FixResult {
	t.Helper()
	dir := t.TempDir()
	inputPath := writeTemp(t, dir, "in.tok", input)
	envPath := writeTemp(t, dir, "env.txt", env)

	results := fixgo.Fix[struct{}, inh, MJType]([]fixgo.FixTaskInfo{
		{InputName: inputPath, EnvName: envPath, MaxLen: maxLen},
	}, Frontend{})
	require.Len(t, results, 1)
	return results[0]
}

func TestGrammarParses(t *testing.T) {
	_, err := grammar.Parse(Grammar)
	require.NoError(t, err)
}

// scenarioEnv declares the class hierarchy and pre-declared variables
// spec.md §8's MJ-like scenario assumes: a, b : A; c : D; x : X (a subclass
// of A, with a field y : A); y, z : A; and MYCLS, a subclass of D whose
// constructor takes three A-compatible parameters.
const scenarioEnv = `
class A
class X : A
class D
class MYCLS : D
field X.y : A
ctor MYCLS : A, A, A
var a : A
var b : A
var c : D
var x : X
var y : A
var z : A
`

func scenarioTokens(withEquality bool) string {
	var b strings.Builder
	b.WriteString(lt("{"))
	b.WriteString(lt("if"))
	b.WriteString(lt("("))
	b.WriteString(id("a"))
	if withEquality {
		b.WriteString(lt("=="))
	}
	b.WriteString(id("b"))
	b.WriteString(lt(")"))
	b.WriteString(lt("{"))
	b.WriteString(id("a"))
	b.WriteString(lt("="))
	b.WriteString(id("b"))
	b.WriteString(lt(";"))
	b.WriteString(lt("}"))
	b.WriteString(lt("else"))
	b.WriteString(lt("{"))
	b.WriteString(id("c"))
	b.WriteString(lt("="))
	b.WriteString(lt("("))
	b.WriteString(id("D"))
	b.WriteString(lt(")"))
	b.WriteString(lt("("))
	b.WriteString(lt("new"))
	b.WriteString(id("MYCLS"))
	b.WriteString(lt("("))
	b.WriteString(id("x"))
	b.WriteString(lt(","))
	b.WriteString(id("y"))
	b.WriteString(lt(","))
	b.WriteString(id("z"))
	b.WriteString(lt(")"))
	b.WriteString(lt(")"))
	b.WriteString(lt(";"))
	b.WriteString(lt("}"))
	b.WriteString(id("x"))
	b.WriteString(lt("."))
	b.WriteString(id("y"))
	b.WriteString(lt("="))
	b.WriteString(id("a"))
	b.WriteString(lt(";"))
	b.WriteString(lt("return"))
	b.WriteString(lt("null"))
	b.WriteString(lt(";"))
	b.WriteString(lt("}"))
	return b.String()
}

func TestFix_ScenarioParsesExactlyAtBudgetZero(t *testing.T) {
	r := runFix(t, scenarioTokens(true), scenarioEnv, 0)
	require.NoError(t, r.Err)
	assert.Equal(t, 0, r.Result.FoundLength)
}

func TestFix_MissingEqualityNeedsOneInsertion(t *testing.T) {
	r0 := runFix(t, scenarioTokens(false), scenarioEnv, 0)
	require.NoError(t, r0.Err)
	assert.Equal(t, -1, r0.Result.FoundLength)

	r1 := runFix(t, scenarioTokens(false), scenarioEnv, 1)
	require.NoError(t, r1.Err)
	assert.Equal(t, 1, r1.Result.FoundLength)
}

func TestFix_AssigningIncompatibleClassNeedsAnEdit(t *testing.T) {
	// "c = a;" with c:D and a:A, A unrelated to D, should fail at budget 0.
	env := scenarioEnv
	input := strings.Join([]string{
		id("c"), lt("="), id("a"), lt(";"),
	}, "")
	r := runFix(t, input, env, 0)
	require.NoError(t, r.Err)
	assert.Equal(t, -1, r.Result.FoundLength)
}

func TestFix_LocalDeclarationIntroducesVariable(t *testing.T) {
	env := `
class A
`
	input := strings.Join([]string{
		id("A"), id("v"), lt(";"),
		id("v"), lt("="), lt("null"), lt(";"),
	}, "")
	r := runFix(t, input, env, 0)
	require.NoError(t, r.Err)
	assert.Equal(t, 0, r.Result.FoundLength)
}
