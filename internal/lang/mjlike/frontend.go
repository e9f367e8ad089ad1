package mjlike

import (
	"github.com/dekarrin/fixgo/internal/fixerrors"
	"github.com/dekarrin/fixgo/internal/reachability/grammar"
	"github.com/dekarrin/fixgo/internal/reachability/semantic"
	"github.com/dekarrin/fixgo/internal/reachability/syntactic"
	"github.com/dekarrin/fixgo/internal/tokenfile"

	"github.com/dekarrin/fixgo"
)

// Frontend wires the mjlike grammar, tokenizer, and Env/SProc type checker
// into a fixgo.Processor, the mjlike counterpart of the original's
// MJFixingInputProcessor/MJ_FIXING_INFO pairing.
type Frontend struct{}

func (Frontend) Info() fixgo.FixingInfo {
	return fixgo.FixingInfo{Grammar: Grammar, GrammarFile: GrammarFile}
}

func (Frontend) Load(g *grammar.Grammar, inputStr, envStr string, _ fixgo.FixTaskInfo) ([]syntactic.Token, syntactic.GProcessor[struct{}], semantic.SProcessor[struct{}, inh, MJType], error) {
	env, err := Parse(envStr)
	if err != nil {
		return nil, nil, nil, err
	}
	tokens, err := tokenfile.Read(g, inputStr)
	if err != nil {
		return nil, nil, nil, fixerrors.WrapTokenizer(err)
	}
	return tokens, GProc{}, SProc{Env: env}, nil
}

// Fix runs tasks through the mjlike frontend. It exists because inh is
// unexported: fixgo.Fix's type parameters cannot be spelled from outside
// this package, so the instantiation has to live here.
func Fix(tasks []fixgo.FixTaskInfo) []fixgo.FixResult {
	return fixgo.Fix[struct{}, inh, MJType](tasks, Frontend{})
}
