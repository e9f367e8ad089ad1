// Package semantic implements the S-layer: given a G-layer chart (every
// syntactic way the token stream can be repaired within an edit budget), walk
// its rule-use DAG top-down with an inherited property and bottom-up with a
// synthesized one, keeping only the combinations a language's semantic rules
// (type checks, scoping, arity) actually admit. The first admissible
// combination at the smallest edit length wins (spec.md §5, §8).
package semantic

import "github.com/dekarrin/fixgo/internal/reachability/syntactic"

// SKey names one semantic sub-problem: "derive this syntactic edge under
// this inherited property." Two SKeys are equal iff their edge pointers and
// inherited properties are equal, which is exactly the granularity the
// engine memoizes at (spec.md §8's "every (edge, inherited property) pair is
// solved at most once").
type SKey[PG, PSI comparable] struct {
	Edge    *syntactic.GEdge[PG]
	InhProp PSI
}
