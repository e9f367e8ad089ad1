// Package fixgo is the root facade: it drives a language frontend's grammar
// and processors through the G-layer/S-layer engines in internal/reachability
// for one or many repair tasks, and reports timing and outcome the same way
// for every caller (cmd/fixgo, cmd/fixgod, and the test suite below).
package fixgo

import (
	"fmt"
	"os"
	"time"

	"github.com/dekarrin/fixgo/internal/fixerrors"
	"github.com/dekarrin/fixgo/internal/reachability/grammar"
	"github.com/dekarrin/fixgo/internal/reachability/result"
	"github.com/dekarrin/fixgo/internal/reachability/semantic"
	"github.com/dekarrin/fixgo/internal/reachability/syntactic"
)

// FixingInfo names a language frontend's grammar source and the logical path
// it came from, for error messages and gen-src output.
type FixingInfo struct {
	Grammar     string
	GrammarFile string
}

// FixTaskInfo is one unit of repair work: an input token file checked against
// an environment file, searched up to an edit budget of MaxLen.
type FixTaskInfo struct {
	InputName  string
	EnvName    string
	OutputName string // empty means don't write a repaired-output file
	MaxLen     int
	MaxNewID   int
	VerboseGen bool
}

// FixTaskResult times and records the outcome of one FixTaskInfo. FoundLength
// is -1 if no fix within MaxLen edits exists.
type FixTaskResult struct {
	TimeBeforeLoad             time.Time
	TimeAfterLoad              time.Time
	TimeAfterReachabilityBuilt time.Time
	TimeAfterFind              []time.Time
	FoundLength                int
	Originals                  []string
	Outputs                    []string
}

// Diff pairs the task's original token literals with its repaired output for
// display, via internal/reachability/result's rosed-backed rendering. Call
// only when FoundLength >= 0.
func (r *FixTaskResult) Diff() result.Diff {
	return result.NewDiff(r.Originals, r.Outputs)
}

// Processor adapts one language frontend to the Fix driver: Info names its
// grammar, and Load turns one task's raw input/environment text into tokens
// and the G/S processors that check them.
type Processor[PG, PSI, PSS comparable] interface {
	Info() FixingInfo
	Load(g *grammar.Grammar, inputStr, envStr string, info FixTaskInfo) ([]syntactic.Token, syntactic.GProcessor[PG], semantic.SProcessor[PG, PSI, PSS], error)
}

// FixResult pairs one FixTaskInfo's outcome with whatever error, if any,
// stopped it from producing a FixTaskResult.
type FixResult struct {
	Info   FixTaskInfo
	Result *FixTaskResult
	Err    error
}

// Fix parses proc's grammar once, then runs every task in inputs against it
// in order, printing one "---RESULT---" summary line per task to stdout as
// it finishes. A failing task never stops the run: its error is recorded in
// its FixResult and the next task proceeds.
func Fix[PG, PSI, PSS comparable](inputs []FixTaskInfo, proc Processor[PG, PSI, PSS]) []FixResult {
	info := proc.Info()
	g, err := grammar.Parse(info.Grammar)
	if err != nil {
		panic(fmt.Sprintf("fixgo: %s: %v", info.GrammarFile, err))
	}

	results := make([]FixResult, 0, len(inputs))
	for _, task := range inputs {
		r, err := fixOne[PG, PSI, PSS](g, proc, task)
		printResultLine(task, r, err)
		results = append(results, FixResult{Info: task, Result: r, Err: err})
	}
	return results
}

// fixOne reads one task's input/environment files, loads it through proc,
// and drives it through the engines.
func fixOne[PG, PSI, PSS comparable](g *grammar.Grammar, proc Processor[PG, PSI, PSS], task FixTaskInfo) (*FixTaskResult, error) {
	timeBeforeLoad := time.Now()

	inputBytes, err := os.ReadFile(task.InputName)
	if err != nil {
		return nil, fixerrors.WrapIO(err)
	}
	envBytes, err := os.ReadFile(task.EnvName)
	if err != nil {
		return nil, fixerrors.WrapIO(err)
	}

	tokens, gproc, sproc, err := proc.Load(g, string(inputBytes), string(envBytes), task)
	if err != nil {
		return nil, err
	}

	return doFix[PG, PSI, PSS](g, tokens, gproc, sproc, task, timeBeforeLoad)
}

// doFix grows the edit budget one length at a time, rebuilding the G-layer
// chart's closure to that length and asking the S-layer for a semantic fix
// at exactly that length, until one is found or MaxLen is exhausted. This
// mirrors the original's own length-by-length loop rather than building the
// full chart up front and searching it once, so a cheap early fix at length 0
// never pays for closure at length MaxLen.
func doFix[PG, PSI, PSS comparable](
	g *grammar.Grammar,
	tokens []syntactic.Token,
	gproc syntactic.GProcessor[PG],
	sproc semantic.SProcessor[PG, PSI, PSS],
	task FixTaskInfo,
	timeBeforeLoad time.Time,
) (*FixTaskResult, error) {
	timeAfterLoad := time.Now()

	gr := syntactic.New[PG](g, tokens, gproc, task.MaxLen)
	sreach := semantic.New[PG, PSI, PSS](gr, sproc)

	timeAfterBuilt := time.Now()

	originals := make([]string, len(tokens))
	for i, tok := range tokens {
		originals[i] = tok.Literal
	}

	res := &FixTaskResult{
		TimeBeforeLoad:             timeBeforeLoad,
		TimeAfterLoad:              timeAfterLoad,
		TimeAfterReachabilityBuilt: timeAfterBuilt,
		FoundLength:                -1,
		Originals:                  originals,
	}

	for curLen := 0; curLen <= task.MaxLen; curLen++ {
		gr.UpdateUntil(curLen)
		fkey, ok := sreach.Find(curLen, curLen)
		res.TimeAfterFind = append(res.TimeAfterFind, time.Now())
		if !ok {
			continue
		}
		res.FoundLength = curLen
		res.Outputs = sreach.GenerateFrom(fkey, task.VerboseGen)
		if task.OutputName != "" {
			if err := writeOutput(task.OutputName, res.Outputs); err != nil {
				return res, fixerrors.WrapIO(err)
			}
		}
		break
	}

	return res, nil
}

func writeOutput(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, line := range lines {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return err
		}
	}
	return nil
}

func printResultLine(task FixTaskInfo, r *FixTaskResult, err error) {
	if err != nil {
		fmt.Printf("---RESULT---,input_name:%s,error:%v\n", task.InputName, err)
		return
	}
	timeLoad := r.TimeAfterLoad.Sub(r.TimeBeforeLoad).Seconds()
	timeBuild := r.TimeAfterReachabilityBuilt.Sub(r.TimeAfterLoad).Seconds()
	var timeFind float64
	if n := len(r.TimeAfterFind); n > 0 {
		timeFind = r.TimeAfterFind[n-1].Sub(r.TimeAfterReachabilityBuilt).Seconds()
	}
	fmt.Printf("---RESULT---,input_name:%s,length:%d,time_load:%g,time_build:%g,time_find:%g\n",
		task.InputName, r.FoundLength, timeLoad, timeBuild, timeFind)
}
