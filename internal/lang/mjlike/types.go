// Package mjlike is the MJ-like frontend: a small class-based object
// language (fields, a constructor, methods, single inheritance, casts,
// equality, field access, `new`) adapted from the original's
// fixing-rs-main/src/mj tree. That original targets "Middleweight Java" by
// way of an unambiguous LALRPOP grammar, disambiguating postfix-vs-cast
// parses by threading an MJExpressionPriority syntactic property
// (NoLeft/HaveLeft) through a flattened expression/pExpression pair. The
// chart-and-edit-budget engine in internal/reachability explores every
// derivation rather than committing to one deterministic parse, so that
// disambiguation has no work left to do here: the grammar below expresses
// the same precedence (cast binds a whole primary, postfix chains off of
// one) structurally, and GProp is the trivial struct{} just as in
// internal/lang/clike.
package mjlike

import "strings"

// MJType is the synthesized property (PSS) threaded through every mjlike
// parse. Most of the time it names a class ("Object", a declared class,
// "void", "null"); a declaration production also packs its new local's name
// alongside its type so stmtlist can extend the threaded symbol table
// without a separate property kind, and a className occurrence carries its
// constructor's parameter types for "new" to read back out (the same
// "pack a signature into the value type" trick CType uses for functions).
type MJType struct {
	Name     string // class name, "void", "null", "method", or "argsok"
	Params   string // comma-joined constructor/method parameter class names
	Ret      string // method return class name, Name=="method" only
	HasDecl  bool   // true if this value also represents a new local's decl
	DeclName string // the declared local's name, HasDecl only
}

func basic(name string) MJType { return MJType{Name: name} }

var argsOK = basic("argsok")

func paramList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func joinParams(ps []string) string {
	return strings.Join(ps, ",")
}

func popFirst(s string) (first, rest string) {
	ps := paramList(s)
	if len(ps) == 0 {
		return "", ""
	}
	return ps[0], joinParams(ps[1:])
}
