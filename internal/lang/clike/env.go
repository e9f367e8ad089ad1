package clike

import (
	"strings"

	"github.com/dekarrin/fixgo/internal/fixerrors"
)

// FuncDecl is one declared function's signature.
type FuncDecl struct {
	Name     string
	Ret      string
	Params   []string
	Variadic bool
}

// Env is the micro-declaration-language environment: the set of in-scope
// variables and functions an input is checked against, mirroring the
// original's CEnv (stripped to name/type tables, without its full
// scope-nesting and storage-class tracking).
type Env struct {
	Vars  map[string]string
	Funcs map[string]FuncDecl
}

// Type returns the CType for the function named name, or Unknown if no such
// function is declared.
func (fd FuncDecl) Type() CType {
	return CType{Name: "func", Params: joinParams(fd.Params), Variadic: fd.Variadic, Ret: fd.Ret}
}

// Parse reads the environment-file micro-language:
//
//	var NAME : TYPE
//	func NAME : RET -> PARAM, PARAM, ...
//
// A func line's parameter list may end with a bare "..." to mark the
// function variadic (spec.md §8's printf scenario); blank lines and lines
// starting with "#" are ignored.
func Parse(src string) (*Env, error) {
	env := &Env{Vars: map[string]string{}, Funcs: map[string]FuncDecl{}}
	for lineNo, line := range strings.Split(src, "\n") {
		lineNo++
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
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

		case strings.HasPrefix(line, "func "):
			rest := strings.TrimSpace(strings.TrimPrefix(line, "func "))
			name, sig, ok := strings.Cut(rest, ":")
			if !ok {
				return nil, fixerrors.Environmentf("line %d: func declaration missing ':'", lineNo)
			}
			name = strings.TrimSpace(name)
			ret, paramsPart, ok := strings.Cut(sig, "->")
			if !ok {
				return nil, fixerrors.Environmentf("line %d: func declaration missing '->'", lineNo)
			}
			ret = strings.TrimSpace(ret)
			if name == "" || ret == "" {
				return nil, fixerrors.Environmentf("line %d: func declaration missing name or return type", lineNo)
			}
			fd := FuncDecl{Name: name, Ret: ret}
			paramsPart = strings.TrimSpace(paramsPart)
			if paramsPart != "" {
				for _, p := range strings.Split(paramsPart, ",") {
					p = strings.TrimSpace(p)
					if p == "..." {
						fd.Variadic = true
						continue
					}
					if p == "" {
						continue
					}
					fd.Params = append(fd.Params, p)
				}
			}
			env.Funcs[name] = fd

		default:
			return nil, fixerrors.Environmentf("line %d: expected 'var' or 'func' declaration", lineNo)
		}
	}
	return env, nil
}
