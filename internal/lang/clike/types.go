// Package clike is the C-like frontend: a simplified C expression/statement
// grammar plus a type-checking semantic layer (declarations, lvalue
// assignment, call arity/variadic checks), adapted from the original's
// fixing-rs-main/src/c tree. The original threads a bitflag-composed
// CTypeComposed (every C type-specifier combination: "unsigned long long
// int", "const char", ...) through a hand-written declarator grammar; this
// port keeps the same role (a single synthesized property carrying a C-ish
// type, checked for compatibility at assignment/declaration/call sites) but
// narrows the type vocabulary to int/char/float/void, since the spec's
// concrete scenarios (decls, lval, args, printf) never require the full
// specifier-combination state machine to exercise type mismatch repair.
package clike

import "strings"

// CType is the synthesized property (PSS) threaded through every clike
// parse: either a plain value type, or (for a symbol bound to a function
// declaration) a function signature packed into the same comparable struct
// so it can flow through props.Array like any other synthesized value.
type CType struct {
	Name     string // "int", "char", "float", "void", "unknown", or "func"
	Params   string // comma-joined fixed parameter type names, Name=="func" only
	Variadic bool   // true if a "..." tail follows Params, Name=="func" only
	Ret      string // return type name, Name=="func" only
}

// Unknown is returned for identifiers the environment has no declaration
// for; it compares unequal to every real type, so any check against it
// fails and the repair search is forced to consider an edit at that
// position.
var Unknown = CType{Name: "unknown"}

// basic builds a plain value CType.
func basic(name string) CType { return CType{Name: name} }

// okSentinel is the synthesized value returned by purely structural
// checkpoints (exprlist/arglist) once their arity/type check has passed; its
// own value is never inspected further, only its presence among a subedge's
// results (absence means the check failed and that edge has no derivation).
var okSentinel = basic("argsok")

func paramList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func joinParams(ps []string) string {
	return strings.Join(ps, ",")
}

// popFirst splits the first parameter off a comma-joined remaining-params
// string, returning it and the rest (still comma-joined).
func popFirst(s string) (first, rest string) {
	ps := paramList(s)
	if len(ps) == 0 {
		return "", ""
	}
	return ps[0], joinParams(ps[1:])
}

// compatible reports whether an argument/assignment of type got may stand in
// for an expected type want. Only exact name match plus int<-char widening
// is modeled, matching the original's own trimmed-down promotion rules for
// this frontend's test scenarios (full C usual-arithmetic-conversions are out
// of scope for a grammar this small).
func compatible(want, got string) bool {
	if want == got {
		return true
	}
	if want == "int" && got == "char" {
		return true
	}
	if want == "float" && (got == "int" || got == "char") {
		return true
	}
	return false
}
