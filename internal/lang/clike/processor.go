package clike

import (
	"strconv"
	"strings"

	"github.com/dekarrin/fixgo/internal/reachability/grammar"
	"github.com/dekarrin/fixgo/internal/reachability/props"
)

// GProc is the clike G-layer processor. The precedence chain in Grammar
// needs no syntactic property to disambiguate operator binding (unlike the
// original's flattened exprbinop grammar, which threads OperatorPrecedence
// through a single GProp to do that job), so GProp is struct{} and every
// call admits exactly one candidate.
type GProc struct{}

func (GProc) ProcessSymbolicTerminal(_ *grammar.Symbol, _ *string) []struct{} {
	return []struct{}{{}}
}

func (GProc) ProcessNonTerminal(_ *grammar.Symbol, _ int, _ props.Array[struct{}]) []struct{} {
	return []struct{}{{}}
}

// SProc is the clike S-layer processor: type-checks declarations,
// assignment, and call arity/variadic-ness against an Env, grounded on the
// original's CSyntacticProcessor/CEnv pairing (fixing-rs-main/src/c/semantic.rs).
type SProc struct {
	Env *Env
}

func (s SProc) ProcessRootInh() inh { return inh{kind: plainName} }

// ProcessNonTerminalInh narrows an IDENT's role (variable reference,
// declaration name, or called function name) and threads a call's
// remaining expected parameter types down through arglist/exprlist. Every
// production not named here just echoes its own inherited property
// unchanged, which is what the default case does.
func (s SProc) ProcessNonTerminalInh(symbol *grammar.Symbol, _ props.Array[struct{}], inductionID, loc int, cur inh, subTypes []CType) []inh {
	switch symbol.Name() {
	case "lvalue":
		if inductionID == 0 && loc == 0 {
			return []inh{{kind: refName}}
		}

	case "decl":
		// typename IDENT ...: the IDENT at loc 2 is the name being declared,
		// typed by typename's synthesized value at subTypes[0].
		if loc == 2 {
			return []inh{{kind: declName, declType: subTypes[0].Name}}
		}

	case "primary":
		if inductionID == 3 {
			switch loc {
			case 0:
				return []inh{{kind: callName}}
			case 3:
				fn := subTypes[0]
				return []inh{{kind: plainName, remainingParams: fn.Params, variadic: fn.Variadic}}
			}
		}

	case "exprlist":
		if inductionID == 1 && loc == 3 {
			_, rest := popFirst(cur.remainingParams)
			return []inh{{kind: cur.kind, remainingParams: rest, variadic: cur.variadic}}
		}
	}
	return pass(cur)
}

// ProcessNonTerminalSyn composes each alternative's result type and rejects
// (returns nil) any alternative whose type/arity constraint fails.
func (s SProc) ProcessNonTerminalSyn(symbol *grammar.Symbol, _ props.Array[struct{}], inductionID int, inh inh, subTypes []CType) []CType {
	switch symbol.Name() {
	case "program", "stmtlist":
		return []CType{basic("void")}

	case "stmt":
		switch inductionID {
		case 2: // "if" "(" expr ")" stmt
			if subTypes[2].Name == "void" {
				return nil
			}
		case 3: // "if" "(" expr ")" stmt "else" stmt
			if subTypes[2].Name == "void" {
				return nil
			}
		}
		return []CType{basic("void")}

	case "decl":
		if inductionID == 1 { // typename IDENT "=" expr ";"
			if !compatible(subTypes[0].Name, subTypes[3].Name) {
				return nil
			}
		}
		return []CType{basic("void")}

	case "typename":
		switch inductionID {
		case 0:
			return []CType{basic("int")}
		case 1:
			return []CType{basic("char")}
		case 2:
			return []CType{basic("float")}
		case 3:
			return []CType{basic("void")}
		}

	case "expr":
		if inductionID == 0 { // lvalue "=" expr
			if !compatible(subTypes[0].Name, subTypes[2].Name) {
				return nil
			}
			return []CType{subTypes[0]}
		}
		return []CType{subTypes[0]}

	case "orexpr", "andexpr", "eqexpr", "relexpr":
		if len(subTypes) == 1 {
			return []CType{subTypes[0]}
		}
		if subTypes[0].Name == "void" || subTypes[2].Name == "void" {
			return nil
		}
		return []CType{basic("int")}

	case "addexpr", "mulexpr":
		if len(subTypes) == 1 {
			return []CType{subTypes[0]}
		}
		l, r := subTypes[0], subTypes[2]
		if l.Name == "void" || r.Name == "void" {
			return nil
		}
		if l.Name == "float" || r.Name == "float" {
			return []CType{basic("float")}
		}
		return []CType{basic("int")}

	case "unary":
		return []CType{subTypes[0]}

	case "primary":
		switch inductionID {
		case 0: // IDENT
			if subTypes[0] == Unknown {
				return nil
			}
			return []CType{subTypes[0]}
		case 1: // NUMBER
			return []CType{subTypes[0]}
		case 2: // "(" expr ")"
			return []CType{subTypes[1]}
		case 3: // IDENT "(" arglist ")"
			fn := subTypes[0]
			if fn == Unknown {
				return nil
			}
			return []CType{basic(fn.Ret)}
		}

	case "lvalue":
		if subTypes[0] == Unknown {
			return nil
		}
		return []CType{subTypes[0]}

	case "arglist":
		if inductionID == 0 {
			return []CType{subTypes[0]}
		}
		// empty arglist: every expected param must already be satisfied, or
		// the call must be variadic with nothing but the fixed params (none
		// here) to fill.
		if inh.remainingParams != "" {
			return nil
		}
		return []CType{okSentinel}

	case "exprlist":
		first, rest := popFirst(inh.remainingParams)
		switch inductionID {
		case 0: // expr alone: must consume exactly the last remaining param
			if first == "" {
				if !inh.variadic {
					return nil
				}
				return []CType{okSentinel}
			}
			if rest != "" || !compatible(first, subTypes[0].Name) {
				return nil
			}
			return []CType{okSentinel}
		case 1: // expr "," exprlist: consume one param, recurse on the rest
			if first == "" {
				if !inh.variadic {
					return nil
				}
				return []CType{okSentinel}
			}
			if !compatible(first, subTypes[0].Name) {
				return nil
			}
			return []CType{okSentinel}
		}
	}
	return []CType{basic("void")}
}

// ProcessSymbolicTerminalSyn resolves an IDENT against the environment
// according to the role carried in inh, or parses a NUMBER literal.
func (s SProc) ProcessSymbolicTerminalSyn(symbol *grammar.Symbol, _ props.Array[struct{}], inh inh, literal *string) []CType {
	switch symbol.Name() {
	case "IDENT":
		switch inh.kind {
		case declName:
			return []CType{basic(inh.declType)}
		case callName:
			if literal == nil {
				return nil
			}
			fd, ok := s.Env.Funcs[*literal]
			if !ok {
				return nil
			}
			return []CType{fd.Type()}
		default: // refName, plainName
			if literal == nil {
				return nil
			}
			t, ok := s.Env.Vars[*literal]
			if !ok {
				return nil
			}
			return []CType{basic(t)}
		}

	case "NUMBER":
		if literal == nil {
			return []CType{basic("int")}
		}
		if strings.ContainsAny(*literal, ".eE") {
			if _, err := strconv.ParseFloat(*literal, 64); err != nil {
				return nil
			}
			return []CType{basic("float")}
		}
		if _, err := strconv.ParseInt(*literal, 10, 64); err != nil {
			return nil
		}
		return []CType{basic("int")}
	}
	return []CType{basic("void")}
}

// ProcessSymbolicTerminalGen renders a resolved symbolic-terminal occurrence
// back to text, echoing the original lexeme when one was consumed and
// inventing a minimal placeholder for a synthetic insertion.
func (s SProc) ProcessSymbolicTerminalGen(symbol *grammar.Symbol, _ props.Array[struct{}], _ inh, syn CType, literal *string) string {
	if literal != nil {
		return *literal
	}
	switch symbol.Name() {
	case "NUMBER":
		return "0"
	case "IDENT":
		return "_fix"
	}
	return ""
}
