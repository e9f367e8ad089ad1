package mjlike

import (
	"github.com/dekarrin/fixgo/internal/reachability/grammar"
	"github.com/dekarrin/fixgo/internal/reachability/props"
)

// GProc is the mjlike G-layer processor. As in internal/lang/clike, the
// chart-and-edit-budget engine explores every derivation itself, so no
// syntactic property is needed to disambiguate cast-vs-postfix parses the
// way the original's threaded MJExpressionPriority does; GProp is struct{}
// and every call admits exactly one candidate.
type GProc struct{}

func (GProc) ProcessSymbolicTerminal(_ *grammar.Symbol, _ *string) []struct{} {
	return []struct{}{{}}
}

func (GProc) ProcessNonTerminal(_ *grammar.Symbol, _ int, _ props.Array[struct{}]) []struct{} {
	return []struct{}{{}}
}

// SProc is the mjlike S-layer processor: resolves variables, fields,
// methods, and class names against an Env, and type-checks assignment,
// construction, and call arity, grounded on the original's
// MJSProcessor/MJEnv pairing (fixing-rs-main/src/mj/semantic.rs).
type SProc struct {
	Env *Env
}

func (s SProc) ProcessRootInh() inh {
	vars := make(map[string]string, len(s.Env.Vars))
	for k, v := range s.Env.Vars {
		vars[k] = v
	}
	return inh{vars: vars, role: roleVarRef}
}

func (s SProc) ProcessNonTerminalInh(symbol *grammar.Symbol, _ props.Array[struct{}], inductionID, loc int, cur inh, subTypes []MJType) []inh {
	switch symbol.Name() {
	case "stmtlist":
		if inductionID == 0 && loc == 2 {
			// right side of "stmt stmtlist": extend the scope with
			// whatever local the just-processed stmt declared, if any.
			stmtSyn := subTypes[0]
			if !stmtSyn.HasDecl {
				return pass(cur)
			}
			extended := make(map[string]string, len(cur.vars)+1)
			for k, v := range cur.vars {
				extended[k] = v
			}
			extended[stmtSyn.DeclName] = stmtSyn.Name
			return []inh{withVars(cur, extended)}
		}

	case "decl":
		switch loc {
		case 0: // className
			return []inh{{role: roleClassName}}
		case 2: // varName, typed by the className just resolved
			return []inh{{role: roleDeclName, declClass: subTypes[0].Name}}
		}

	case "lvalue":
		if inductionID == 1 && loc == 3 { // lvalue "." IDENT: IDENT is a field name
			return []inh{{role: roleFieldName, ownerClass: subTypes[0].Name, vars: cur.vars}}
		}

	case "primary":
		switch inductionID {
		case 2: // "new" IDENT "(" arglist ")"
			switch loc {
			case 2:
				return []inh{{role: roleClassName}}
			case 4:
				ctor := subTypes[1]
				return []inh{{role: roleVarRef, vars: cur.vars, remainingParams: ctor.Params}}
			}
		case 4: // "(" IDENT ")" primary
			if loc == 2 {
				return []inh{{role: roleClassName}}
			}
		case 5: // primary "." IDENT
			if loc == 3 {
				return []inh{{role: roleFieldName, ownerClass: subTypes[0].Name, vars: cur.vars}}
			}
		case 6: // primary "." IDENT "(" arglist ")"
			switch loc {
			case 3:
				return []inh{{role: roleMethodName, ownerClass: subTypes[0].Name, vars: cur.vars}}
			case 5:
				method := subTypes[2]
				return []inh{{role: roleVarRef, vars: cur.vars, remainingParams: method.Params}}
			}
		}

	case "exprlist":
		if inductionID == 1 && loc == 3 {
			_, rest := popFirst(cur.remainingParams)
			return []inh{{role: cur.role, vars: cur.vars, remainingParams: rest}}
		}
	}
	return pass(cur)
}

func (s SProc) ProcessNonTerminalSyn(symbol *grammar.Symbol, _ props.Array[struct{}], inductionID int, inh inh, subTypes []MJType) []MJType {
	switch symbol.Name() {
	case "program", "stmtlist":
		return []MJType{basic("void")}

	case "stmt":
		switch inductionID {
		case 0: // decl
			return []MJType{subTypes[0]}
		case 1: // lvalue "=" expr ";"
			if !s.Env.Compatible(subTypes[0].Name, subTypes[2].Name) {
				return nil
			}
			return []MJType{basic("void")}
		case 3, 4: // if / if-else
			if subTypes[2].Name == "void" {
				return nil
			}
			return []MJType{basic("void")}
		default:
			return []MJType{basic("void")}
		}

	case "decl":
		return []MJType{subTypes[1]}

	case "lvalue":
		return []MJType{subTypes[len(subTypes)-1]}

	case "expr":
		return []MJType{subTypes[0]}

	case "eqexpr":
		if inductionID == 1 {
			return []MJType{subTypes[0]}
		}
		if subTypes[0].Name == "void" || subTypes[2].Name == "void" {
			return nil
		}
		return []MJType{basic("boolean")}

	case "primary":
		switch inductionID {
		case 0: // IDENT
			return []MJType{subTypes[0]}
		case 1: // "null"
			return []MJType{basic("null")}
		case 2: // "new" IDENT "(" arglist ")"
			return []MJType{basic(subTypes[1].Name)}
		case 3: // "(" expr ")"
			return []MJType{subTypes[1]}
		case 4: // "(" IDENT ")" primary
			return []MJType{basic(subTypes[1].Name)}
		case 5: // primary "." IDENT
			return []MJType{subTypes[2]}
		case 6: // primary "." IDENT "(" arglist ")"
			return []MJType{basic(subTypes[2].Ret)}
		}

	case "arglist":
		if inductionID == 0 {
			return []MJType{subTypes[0]}
		}
		if inh.remainingParams != "" {
			return nil
		}
		return []MJType{argsOK}

	case "exprlist":
		first, rest := popFirst(inh.remainingParams)
		switch inductionID {
		case 0: // expr alone: must consume exactly the last remaining param
			if first == "" || rest != "" || !s.Env.Compatible(first, subTypes[0].Name) {
				return nil
			}
			return []MJType{argsOK}
		case 1: // expr "," exprlist: consume one param, recurse on the rest
			if first == "" || !s.Env.Compatible(first, subTypes[0].Name) {
				return nil
			}
			return []MJType{argsOK}
		}
	}
	return []MJType{basic("void")}
}

func (s SProc) ProcessSymbolicTerminalSyn(symbol *grammar.Symbol, _ props.Array[struct{}], inh inh, literal *string) []MJType {
	if symbol.Name() != "IDENT" {
		return []MJType{{}}
	}
	if literal == nil {
		return nil
	}
	switch inh.role {
	case roleDeclName:
		return []MJType{{Name: inh.declClass, DeclName: *literal, HasDecl: true}}

	case roleClassName:
		cls, ok := s.Env.Classes[*literal]
		if !ok {
			return nil
		}
		return []MJType{{Name: cls.Name, Params: joinParams(cls.CtorParams)}}

	case roleFieldName:
		cls, ok := s.Env.Classes[inh.ownerClass]
		if !ok {
			return nil
		}
		ftype, ok := cls.Fields[*literal]
		if !ok {
			return nil
		}
		return []MJType{basic(ftype)}

	case roleMethodName:
		cls, ok := s.Env.Classes[inh.ownerClass]
		if !ok {
			return nil
		}
		m, ok := cls.Methods[*literal]
		if !ok {
			return nil
		}
		return []MJType{{Name: "method", Params: joinParams(m.Params), Ret: m.Ret}}

	default: // roleVarRef
		t, ok := inh.vars[*literal]
		if !ok {
			return nil
		}
		return []MJType{basic(t)}
	}
}

func (s SProc) ProcessSymbolicTerminalGen(symbol *grammar.Symbol, _ props.Array[struct{}], _ inh, _ MJType, literal *string) string {
	if literal != nil {
		return *literal
	}
	if symbol.Name() == "IDENT" {
		return "_fix"
	}
	return ""
}
