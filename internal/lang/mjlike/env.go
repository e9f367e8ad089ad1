package mjlike

import (
	"strings"

	"github.com/dekarrin/fixgo/internal/fixerrors"
)

// MethodDecl is one declared method's signature.
type MethodDecl struct {
	Name   string
	Ret    string
	Params []string
}

// ClassDecl is one declared class: its superclass, the fields and methods
// visible on it (already flattened to include inherited ones not
// overridden, mirroring the original's propgrate step), and its
// constructor's parameter types.
type ClassDecl struct {
	Name       string
	Super      string
	Fields     map[string]string
	Methods    map[string]MethodDecl
	CtorParams []string
}

// Env is the micro-class-file environment: a class hierarchy with fields, a
// constructor, and methods, mirroring the original's MJEnv stripped to
// name/signature tables without its arena-allocated string interning, plus a
// set of pre-declared variables (spec.md §8's MJ-like scenario assumes a
// receiving scope where identifiers like parameters are "already declared"
// without an in-program decl statement for each).
type Env struct {
	Classes map[string]ClassDecl
	Vars    map[string]string
}

// IsSubclass reports whether sub is class base or a (possibly indirect)
// subclass of it, per the super chain. Every class eventually reaches
// "Object" unless it IS "Object".
func (e *Env) IsSubclass(sub, base string) bool {
	for cur := sub; cur != ""; {
		if cur == base {
			return true
		}
		c, ok := e.Classes[cur]
		if !ok {
			return false
		}
		cur = c.Super
	}
	return false
}

// Compatible reports whether a value of class got may stand in for a
// location/parameter of class want, mirroring the original's
// can_right_assign_to_left: neither side may be "void", and got must equal
// want, be "null", or be a subclass of want.
func (e *Env) Compatible(want, got string) bool {
	if want == "void" || got == "void" {
		return false
	}
	if want == got || got == "null" {
		return true
	}
	return e.IsSubclass(got, want)
}

// Parse reads the environment-file micro-language:
//
//	class NAME[ : SUPER]
//	ctor NAME : PARAM, PARAM, ...
//	field NAME.FIELD : TYPE
//	method NAME.METHOD : RET -> PARAM, PARAM, ...
//	var NAME : TYPE
//
// SUPER defaults to "Object" when omitted. Fields, methods, and vars must
// name an already-declared class. Blank lines and lines starting with "#"
// are ignored. After every line is read, each class's fields and methods
// are extended with its ancestors' un-overridden ones.
func Parse(src string) (*Env, error) {
	env := &Env{
		Classes: map[string]ClassDecl{
			"Object": {Name: "Object", Fields: map[string]string{}, Methods: map[string]MethodDecl{}},
			"void":   {Name: "void", Fields: map[string]string{}, Methods: map[string]MethodDecl{}},
			"null":   {Name: "null", Fields: map[string]string{}, Methods: map[string]MethodDecl{}},
		},
		Vars: map[string]string{},
	}

	for lineNo, line := range strings.Split(src, "\n") {
		lineNo++
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "class "):
			rest := strings.TrimSpace(strings.TrimPrefix(line, "class "))
			name, super, ok := strings.Cut(rest, ":")
			name = strings.TrimSpace(name)
			if ok {
				super = strings.TrimSpace(super)
			} else {
				super = "Object"
			}
			if name == "" {
				return nil, fixerrors.Environmentf("line %d: class declaration missing name", lineNo)
			}
			env.Classes[name] = ClassDecl{Name: name, Super: super, Fields: map[string]string{}, Methods: map[string]MethodDecl{}}

		case strings.HasPrefix(line, "ctor "):
			rest := strings.TrimSpace(strings.TrimPrefix(line, "ctor "))
			name, params, ok := strings.Cut(rest, ":")
			if !ok {
				return nil, fixerrors.Environmentf("line %d: ctor declaration missing ':'", lineNo)
			}
			name = strings.TrimSpace(name)
			cls, ok := env.Classes[name]
			if !ok {
				return nil, fixerrors.Environmentf("line %d: ctor for undeclared class %q", lineNo, name)
			}
			cls.CtorParams = splitParams(params)
			env.Classes[name] = cls

		case strings.HasPrefix(line, "field "):
			rest := strings.TrimSpace(strings.TrimPrefix(line, "field "))
			qualified, typ, ok := strings.Cut(rest, ":")
			if !ok {
				return nil, fixerrors.Environmentf("line %d: field declaration missing ':'", lineNo)
			}
			className, fieldName, ok := strings.Cut(strings.TrimSpace(qualified), ".")
			if !ok {
				return nil, fixerrors.Environmentf("line %d: field declaration missing 'Class.field'", lineNo)
			}
			cls, ok := env.Classes[className]
			if !ok {
				return nil, fixerrors.Environmentf("line %d: field for undeclared class %q", lineNo, className)
			}
			cls.Fields[fieldName] = strings.TrimSpace(typ)
			env.Classes[className] = cls

		case strings.HasPrefix(line, "method "):
			rest := strings.TrimSpace(strings.TrimPrefix(line, "method "))
			qualified, sig, ok := strings.Cut(rest, ":")
			if !ok {
				return nil, fixerrors.Environmentf("line %d: method declaration missing ':'", lineNo)
			}
			className, methodName, ok := strings.Cut(strings.TrimSpace(qualified), ".")
			if !ok {
				return nil, fixerrors.Environmentf("line %d: method declaration missing 'Class.method'", lineNo)
			}
			cls, ok := env.Classes[className]
			if !ok {
				return nil, fixerrors.Environmentf("line %d: method for undeclared class %q", lineNo, className)
			}
			ret, paramsPart, ok := strings.Cut(sig, "->")
			if !ok {
				return nil, fixerrors.Environmentf("line %d: method declaration missing '->'", lineNo)
			}
			cls.Methods[methodName] = MethodDecl{
				Name:   methodName,
				Ret:    strings.TrimSpace(ret),
				Params: splitParams(paramsPart),
			}
			env.Classes[className] = cls

		case strings.HasPrefix(line, "var "):
			rest := strings.TrimSpace(strings.TrimPrefix(line, "var "))
			name, typ, ok := strings.Cut(rest, ":")
			if !ok {
				return nil, fixerrors.Environmentf("line %d: var declaration missing ':'", lineNo)
			}
			name, typ = strings.TrimSpace(name), strings.TrimSpace(typ)
			if name == "" || typ == "" {
				return nil, fixerrors.Environmentf("line %d: var declaration missing name or type", lineNo)
			}
			env.Vars[name] = typ

		default:
			return nil, fixerrors.Environmentf("line %d: expected 'class', 'ctor', 'field', 'method', or 'var' declaration", lineNo)
		}
	}

	for name := range env.Classes {
		propagate(env, name)
	}
	return env, nil
}

func splitParams(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// propagate copies every inherited, un-overridden field and method from
// name's ancestors into its own table, mirroring MJEnv::propgrate.
func propagate(env *Env, name string) {
	cls := env.Classes[name]
	for cur := cls.Super; cur != ""; {
		super, ok := env.Classes[cur]
		if !ok {
			break
		}
		for fname, ftype := range super.Fields {
			if _, has := cls.Fields[fname]; !has {
				cls.Fields[fname] = ftype
			}
		}
		for mname, m := range super.Methods {
			if _, has := cls.Methods[mname]; !has {
				cls.Methods[mname] = m
			}
		}
		cur = super.Super
	}
	env.Classes[name] = cls
}
