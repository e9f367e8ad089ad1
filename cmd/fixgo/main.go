/*
Fixgo repairs a syntactically and semantically broken token stream, finding
the shortest sequence of token edits that makes it well-formed against a
given grammar and environment.

Usage:

	fixgo fix --lang {c|mj} --max-len N [flags] (--input I --env E [--output O] | --file-list CSV)
	fixgo gen-src {c|mj} {g|s|ss}
	fixgo interactive --lang {c|mj} --env E

The fix flags are:

	--lang {c|mj}
		Which frontend's grammar and environment format to use. Required.

	--max-len N
		Maximum number of token edits to search before giving up.

	--max-new-id M
		Maximum number of distinct synthetic identifiers the generator may
		invent across one task's repair (spec.md §6).

	--verbose-gen
		Include every candidate the generator considered, not just the
		winning repair, in the printed output.

	--memory-limit BYTES
		Best-effort RLIMIT_AS cap for the process (Linux only; logged and
		ignored elsewhere).

	--input, --env, --output
		Single-task mode: one input token file, one environment file, and an
		optional repaired-output path.

	--file-list CSV
		Batch mode: a CSV file with an "input,env,output" header and one data
		row per task; output may be left blank.

	--config PATH
		Optional fixgo.toml supplying defaults for the flags above (default
		"fixgo.toml" in the working directory, silently skipped if absent).

	--grammar-cache PATH
		Optional path to a persisted grammar-cache manifest (see
		internal/gcache).

Every task prints one "---RESULT---,input_name:...,length:L,time_load:...,
time_build:...,time_find:..." summary line to stdout as it finishes.
*/
package main

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dekarrin/fixgo"
	"github.com/dekarrin/fixgo/internal/config"
	"github.com/dekarrin/fixgo/internal/fixerrors"
	"github.com/dekarrin/fixgo/internal/gensrc"
	"github.com/dekarrin/fixgo/internal/input"
	"github.com/dekarrin/fixgo/internal/lang/clike"
	"github.com/dekarrin/fixgo/internal/lang/mjlike"
	"github.com/dekarrin/fixgo/internal/util"
	"github.com/dekarrin/fixgo/internal/version"
)

func supportedLangsList() string {
	return util.MakeTextList([]string{"c", "mj"})
}

const (
	// ExitSuccess indicates every requested task completed (found or not).
	ExitSuccess = iota

	// ExitUsageError indicates bad flags or a missing required argument.
	ExitUsageError

	// ExitGrammarError indicates a malformed embedded grammar, which should
	// never happen outside of development on a new frontend.
	ExitGrammarError

	// ExitIOError indicates a file-list or input/environment file could not
	// be read.
	ExitIOError

	// ExitTaskError indicates at least one task in a batch could not even be
	// loaded (as opposed to simply finding no fix within budget, which is
	// not an error).
	ExitTaskError
)

var returnCode = ExitSuccess

func main() {
	defer func() {
		if p := recover(); p != nil {
			panic(fmt.Sprintf("fixgo: unrecoverable panic: %v", p))
		}
		os.Exit(returnCode)
	}()

	if len(os.Args) < 2 {
		usage()
		returnCode = ExitUsageError
		return
	}

	switch os.Args[1] {
	case "fix":
		runFix(os.Args[2:])
	case "gen-src":
		runGenSrc(os.Args[2:])
	case "interactive":
		runInteractive(os.Args[2:])
	case "-v", "--version":
		fmt.Println(version.Current)
	default:
		fmt.Fprintf(os.Stderr, "fixgo: unknown subcommand %q\n", os.Args[1])
		usage()
		returnCode = ExitUsageError
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: fixgo {fix|gen-src|interactive} [flags]")
}

func runFix(args []string) {
	fs := pflag.NewFlagSet("fix", pflag.ContinueOnError)
	lang := fs.String("lang", "", "frontend to use: c or mj")
	maxLen := fs.Int("max-len", 3, "maximum number of token edits to search")
	maxNewID := fs.Int("max-new-id", 1, "maximum number of synthetic identifiers the generator may invent")
	verboseGen := fs.Bool("verbose-gen", false, "include every candidate the generator considered")
	memoryLimit := fs.Int64("memory-limit", 0, "best-effort RLIMIT_AS cap in bytes (0 disables)")
	inputName := fs.String("input", "", "single-task input token file")
	envName := fs.String("env", "", "single-task environment file")
	outputName := fs.String("output", "", "single-task repaired-output path")
	fileList := fs.String("file-list", "", "CSV file of input,env,output rows for batch mode")
	configPath := fs.String("config", "fixgo.toml", "optional CLI-defaults file")

	if err := fs.Parse(args); err != nil {
		returnCode = ExitUsageError
		return
	}

	defaults, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fixgo: %v\n", err)
		returnCode = ExitIOError
		return
	}
	if *lang == "" {
		*lang = defaults.Lang
	}
	if !fs.Changed("max-len") && defaults.MaxLen != nil {
		*maxLen = *defaults.MaxLen
	}
	if !fs.Changed("max-new-id") && defaults.MaxNewID != nil {
		*maxNewID = *defaults.MaxNewID
	}
	if !fs.Changed("verbose-gen") && defaults.VerboseGen != nil {
		*verboseGen = *defaults.VerboseGen
	}
	if !fs.Changed("memory-limit") && defaults.MemoryLimit != nil {
		*memoryLimit = *defaults.MemoryLimit
	}

	if *memoryLimit > 0 {
		applyMemoryLimit(*memoryLimit)
	}

	var tasks []fixgo.FixTaskInfo
	switch {
	case *fileList != "":
		tasks, err = readFileList(*fileList, *maxLen, *maxNewID, *verboseGen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fixgo: %v\n", err)
			returnCode = ExitIOError
			return
		}
	case *inputName != "" && *envName != "":
		tasks = []fixgo.FixTaskInfo{{
			InputName: *inputName, EnvName: *envName, OutputName: *outputName,
			MaxLen: *maxLen, MaxNewID: *maxNewID, VerboseGen: *verboseGen,
		}}
	default:
		fmt.Fprintln(os.Stderr, "fixgo fix: need either --file-list or both --input and --env")
		returnCode = ExitUsageError
		return
	}

	var results []fixgo.FixResult
	switch *lang {
	case "c":
		results = clike.Fix(tasks)
	case "mj":
		results = mjlike.Fix(tasks)
	default:
		fmt.Fprintf(os.Stderr, "fixgo fix: unknown --lang %q (want %s)\n", *lang, supportedLangsList())
		returnCode = ExitUsageError
		return
	}

	for _, r := range results {
		if r.Err != nil {
			returnCode = ExitTaskError
		}
	}
}

// readFileList parses a "input,env,output" CSV (header row required; output
// may be left blank per row) into one FixTaskInfo per data row, sharing the
// batch-wide maxLen/maxNewID/verboseGen settings.
func readFileList(path string, maxLen, maxNewID int, verboseGen bool) ([]fixgo.FixTaskInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fixerrors.WrapIO(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fixerrors.WrapIO(err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("fixgo: %s: empty file list", path)
	}

	header := rows[0]
	col := map[string]int{}
	for i, name := range header {
		col[name] = i
	}
	for _, want := range []string{"input", "env"} {
		if _, ok := col[want]; !ok {
			return nil, fmt.Errorf("fixgo: %s: missing required column %q", path, want)
		}
	}

	tasks := make([]fixgo.FixTaskInfo, 0, len(rows)-1)
	for _, row := range rows[1:] {
		task := fixgo.FixTaskInfo{
			InputName: row[col["input"]],
			EnvName:   row[col["env"]],
			MaxLen:    maxLen, MaxNewID: maxNewID, VerboseGen: verboseGen,
		}
		if i, ok := col["output"]; ok && i < len(row) {
			task.OutputName = row[i]
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func runGenSrc(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: fixgo gen-src {c|mj} {g|s|ss}")
		returnCode = ExitUsageError
		return
	}
	var grammarSrc string
	switch args[0] {
	case "c":
		grammarSrc = clike.Grammar
	case "mj":
		grammarSrc = mjlike.Grammar
	default:
		fmt.Fprintf(os.Stderr, "fixgo gen-src: unknown language %q\n", args[0])
		returnCode = ExitUsageError
		return
	}
	kind, err := gensrc.ParseKind(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "fixgo gen-src: %v\n", err)
		returnCode = ExitUsageError
		return
	}
	out, err := gensrc.Generate(grammarSrc, kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fixgo gen-src: %v\n", err)
		returnCode = ExitGrammarError
		return
	}
	fmt.Print(out)
}

// runInteractive steps through fixgo's repair search one edit-length at a
// time against a readline prompt, re-running fixgo.Fix at each length the
// user confirms rather than jumping straight to --max-len.
func runInteractive(args []string) {
	fs := pflag.NewFlagSet("interactive", pflag.ContinueOnError)
	lang := fs.String("lang", "", "frontend to use: c or mj")
	envName := fs.String("env", "", "environment file")
	inputName := fs.String("input", "", "input token file")
	if err := fs.Parse(args); err != nil {
		returnCode = ExitUsageError
		return
	}
	if *lang == "" || *envName == "" || *inputName == "" {
		fmt.Fprintln(os.Stderr, "usage: fixgo interactive --lang {c|mj} --env E --input I")
		returnCode = ExitUsageError
		return
	}

	reader, err := input.NewInteractiveReader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fixgo interactive: %v\n", err)
		returnCode = ExitIOError
		return
	}
	defer reader.Close()
	reader.AllowBlank(true)
	reader.SetPrompt("fixgo (enter to try next length, q to quit)> ")

	for curLen := 0; ; curLen++ {
		line, err := reader.ReadCommand()
		if err != nil {
			break
		}
		if line == "q" || line == "quit" {
			break
		}

		task := fixgo.FixTaskInfo{InputName: *inputName, EnvName: *envName, MaxLen: curLen}
		var results []fixgo.FixResult
		switch *lang {
		case "c":
			results = clike.Fix([]fixgo.FixTaskInfo{task})
		case "mj":
			results = mjlike.Fix([]fixgo.FixTaskInfo{task})
		default:
			fmt.Fprintf(os.Stderr, "fixgo interactive: unknown --lang %q (want %s)\n", *lang, supportedLangsList())
			returnCode = ExitUsageError
			return
		}
		if len(results) == 0 {
			continue
		}
		r := results[0]
		if r.Err != nil {
			fmt.Printf("length %d: error: %v\n", curLen, r.Err)
			continue
		}
		if r.Result.FoundLength >= 0 {
			fmt.Printf("found at length %d: %v\n", r.Result.FoundLength, r.Result.Outputs)
			return
		}
		fmt.Printf("no fix at length %d, press enter to try %d\n", curLen, curLen+1)
	}
}
