// Package result renders a repair outcome (original tokens vs. the
// generated replacement stream) as human-readable text for cmd/fixgo's
// --verbose-gen trace and for any caller that wants a readable diff rather
// than the bare []string GenerateFrom returns. This is the C6 "result
// assembler" of SPEC_FULL.md's component table; the assembly of the FKey
// chain into a token stream itself lives in
// internal/reachability/semantic.Reachability.GenerateFrom (spec.md §4.4's
// AssemblyResult axis) — this package only formats what that assembly
// already produced. Grounded on the teacher's own text-layout idiom
// (tunascript/syntax/ast.go's rosed.Edit(...).Wrap(...), internal/game/debug.go's
// rosed.Edit("").InsertTableOpts(...) table rendering).
package result

import (
	"strings"

	"github.com/dekarrin/rosed"
)

// Diff is a line-aligned comparison between an original token stream and its
// repaired replacement.
type Diff struct {
	Original []string
	Repaired []string
}

// NewDiff pairs an original literal-token stream with the repaired one
// GenerateFrom produced.
func NewDiff(original, repaired []string) Diff {
	return Diff{Original: original, Repaired: repaired}
}

// Table renders the diff as a two-column before/after text table wrapped to
// width, one row per repaired-stream position; a position with no
// corresponding original token (an insertion) shows an empty left column.
func (d Diff) Table(width int) string {
	rows := [][]string{{"original", "repaired"}}
	n := len(d.Repaired)
	if len(d.Original) > n {
		n = len(d.Original)
	}
	for i := 0; i < n; i++ {
		var before, after string
		if i < len(d.Original) {
			before = d.Original[i]
		}
		if i < len(d.Repaired) {
			after = d.Repaired[i]
		}
		rows = append(rows, []string{before, after})
	}

	opts := rosed.Options{TableHeaders: true, NoTrailingLineSeparators: true}
	return rosed.Edit("").InsertTableOpts(0, rows, width, opts).String()
}

// Summary renders a one-paragraph prose summary of the repair, wrapped to
// width: how many edits were made and the resulting token stream joined with
// spaces, matching the terse register of a --verbose-gen trace line rather
// than a full table.
func (d Diff) Summary(width int) string {
	edits := len(d.Repaired) - len(d.Original)
	if edits < 0 {
		edits = -edits
	}
	text := strings.Join(d.Repaired, " ")
	return rosed.Edit(text).Wrap(width).String()
}
