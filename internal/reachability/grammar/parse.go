package grammar

import (
	"strings"
)

// Parse reads a grammar-source document (spec.md §6) and returns a fully
// normalized, validated Grammar.
//
// Concrete syntax, one logical statement per source line (a `|`-prefixed
// line continues the nearest preceding non-terminal header):
//
//	# comment
//	name [: "type0", "type1", ...] [root]? = alt_id : elem elem …
//	                                        | alt_id : elem elem …
//	multivalued { NAME, NAME, … }
//	@ANNOT types { "ty", … } { NAME, … }
//
// elem is either a quoted literal ("if", "+="), a SCREAMING_CASE symbolic
// terminal name (IDENT, INTEGER), or a lowercase non-terminal name. alt_id
// is a small non-negative integer, stable and unique within its
// non-terminal; it is the value a GrammarRule's InductionID carries through
// to processor callbacks.
//
// This reader, like the grammar-file parser it realizes, is surrounding
// infrastructure around the reachability engine rather than part of its
// specified algorithm (spec.md §1 lists "the grammar-file parser" as an
// out-of-scope collaborator); it exists so fixgo has a runnable grammar
// loader, not because the engine depends on this exact textual form.
func Parse(src string) (*Grammar, error) {
	b := newBuilder()

	type pendingAlt struct {
		sym   *Symbol
		altID int
		elems []string
		line  int
	}
	var alts []pendingAlt
	seenAltID := map[*Symbol]map[int]bool{}
	usedSym := map[string]bool{}

	type pendingMultivalued struct {
		name string
		line int
	}
	var multivaluedNames []pendingMultivalued
	seenMultivalued := map[string]bool{}

	var curSym *Symbol

	lines := strings.Split(src, "\n")
	for i, raw := range lines {
		lineNo := i + 1
		line := stripComment(raw)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "@") {
			continue // annotation blocks are carried through uninterpreted
		}

		if strings.HasPrefix(line, "multivalued") {
			names, err := parseMultivalued(line, lineNo)
			if err != nil {
				return nil, err
			}
			for _, n := range names {
				if seenMultivalued[n] {
					return nil, errf(ErrDuplicateMultivalued, lineNo, "symbol %q declared multivalued more than once", n)
				}
				seenMultivalued[n] = true
				multivaluedNames = append(multivaluedNames, pendingMultivalued{name: n, line: lineNo})
			}
			continue
		}

		toks := tokenizeLine(line, lineNo)

		rest := toks
		if !strings.HasPrefix(line, "|") {
			// header: name [: "t0", ...] [root]? = ...
			if len(rest) == 0 {
				return nil, errf(ErrSyntax, lineNo, "empty declaration")
			}
			name := rest[0]
			rest = rest[1:]
			if name == "|" {
				return nil, errf(ErrSyntax, lineNo, "unexpected '|' at start of header line")
			}
			if isUpperName(name) || strings.HasPrefix(name, "\"") {
				return nil, errf(ErrSyntax, lineNo, "%q is not a valid non-terminal name", name)
			}
			if usedSym[name] {
				return nil, errf(ErrDuplicateSymbol, lineNo, "non-terminal %q declared more than once as a header", name)
			}
			usedSym[name] = true
			sym := b.intern(NonTerminal, name)
			curSym = sym

			// optional ": "t0", "t1", ..." type list, uninterpreted by the
			// core engine (used only by gen-src stub generation).
			for len(rest) > 0 && rest[0] == ":" {
				rest = rest[1:]
				for len(rest) > 0 && strings.HasPrefix(rest[0], "\"") {
					rest = rest[1:]
					if len(rest) > 0 && rest[0] == "," {
						rest = rest[1:]
					}
				}
			}

			if len(rest) > 0 && rest[0] == "root" {
				if err := b.setStart(sym, lineNo); err != nil {
					return nil, err
				}
				rest = rest[1:]
			}

			if len(rest) == 0 || rest[0] != "=" {
				return nil, errf(ErrSyntax, lineNo, "expected '=' in declaration of %q", name)
			}
			rest = rest[1:]
		} else {
			if curSym == nil {
				return nil, errf(ErrSyntax, lineNo, "'|' continuation with no preceding non-terminal")
			}
			rest = rest[1:] // drop leading "|"
		}

		for len(rest) > 0 {
			altID, elems, remainder, err := parseAlternative(rest, lineNo)
			if err != nil {
				return nil, err
			}
			if seenAltID[curSym] == nil {
				seenAltID[curSym] = map[int]bool{}
			}
			if seenAltID[curSym][altID] {
				return nil, errf(ErrDuplicateAltID, lineNo, "duplicate alt id %d for symbol %q", altID, curSym.name)
			}
			seenAltID[curSym][altID] = true
			alts = append(alts, pendingAlt{sym: curSym, altID: altID, elems: elems, line: lineNo})
			rest = remainder
			if len(rest) > 0 && rest[0] == "|" {
				rest = rest[1:]
				continue
			}
			break
		}
	}

	// Resolve every element name to an interned Symbol now that every
	// non-terminal/symbolic-terminal name in the document has been seen at
	// least once as a header or as a RHS occurrence.
	type resolvedAlt struct {
		sym   *Symbol
		altID int
		elems []*Symbol
		line  int
	}
	resolved := make([]resolvedAlt, 0, len(alts))
	for _, a := range alts {
		elemSyms := make([]*Symbol, len(a.elems))
		for i, e := range a.elems {
			elemSyms[i] = internElement(b, e)
		}
		resolved = append(resolved, resolvedAlt{sym: a.sym, altID: a.altID, elems: elemSyms, line: a.line})
	}

	// Every symbolic terminal that appears anywhere as an RHS element has now
	// been interned, so a multivalued declaration naming one that still
	// isn't there is a typo, not a forward reference.
	for _, m := range multivaluedNames {
		s, ok := b.lookup(SymbolicTerminal, m.name)
		if !ok {
			return nil, errf(ErrMissingMultivaluedSymbol, m.line, "multivalued declaration names unknown symbolic terminal %q", m.name)
		}
		s.multiValued = true
	}

	if b.unknown == nil {
		b.unknown = b.intern(SymbolicTerminal, "UNKNOWN")
	}

	for _, a := range resolved {
		if err := normalizeAlternative(b, a.sym, a.altID, a.elems); err != nil {
			return nil, err
		}
	}

	return b.finish()
}

func internElement(b *builder, tok string) *Symbol {
	if strings.HasPrefix(tok, "\"") {
		return b.intern(LiteralTerminal, strings.Trim(tok, "\""))
	}
	if isUpperName(tok) {
		return b.intern(SymbolicTerminal, tok)
	}
	return b.intern(NonTerminal, tok)
}

// parseAlternative consumes "altid : elem elem … " from toks, stopping
// before a top-level "|" or at end of input, and returns the remaining
// tokens (which still include a leading "|" if that's what stopped it).
func parseAlternative(toks []string, line int) (altID int, elems []string, rest []string, err error) {
	if len(toks) == 0 {
		return 0, nil, nil, errf(ErrSyntax, line, "expected alternative id")
	}
	id, ok := parseSmallInt(toks[0])
	if !ok {
		return 0, nil, nil, errf(ErrSyntax, line, "expected integer alt id, got %q", toks[0])
	}
	toks = toks[1:]
	if len(toks) == 0 || toks[0] != ":" {
		return 0, nil, nil, errf(ErrSyntax, line, "expected ':' after alt id %d", id)
	}
	toks = toks[1:]
	for len(toks) > 0 && toks[0] != "|" {
		elems = append(elems, toks[0])
		toks = toks[1:]
	}
	return id, elems, toks, nil
}

func parseSmallInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

func parseMultivalued(line string, lineNo int) ([]string, error) {
	open := strings.Index(line, "{")
	closeIdx := strings.LastIndex(line, "}")
	if open < 0 || closeIdx < 0 || closeIdx < open {
		return nil, errf(ErrSyntax, lineNo, "malformed multivalued block")
	}
	inner := line[open+1 : closeIdx]
	var names []string
	for _, part := range strings.Split(inner, ",") {
		n := strings.TrimSpace(part)
		if n == "" {
			continue
		}
		names = append(names, n)
	}
	return names, nil
}

func stripComment(line string) string {
	inQuote := false
	for i, r := range line {
		switch r {
		case '"':
			inQuote = !inQuote
		case '#':
			if !inQuote {
				return line[:i]
			}
		}
	}
	return line
}

// tokenizeLine splits a line into whitespace-separated tokens, treating a
// double-quoted string (no escapes) as a single token that keeps its quotes,
// and ':', '|', '=' as tokens even when not surrounded by whitespace.
func tokenizeLine(line string, lineNo int) []string {
	var toks []string
	var cur strings.Builder
	inQuote := false
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range line {
		switch {
		case r == '"':
			cur.WriteRune(r)
			inQuote = !inQuote
		case inQuote:
			cur.WriteRune(r)
		case r == ' ' || r == '\t':
			flush()
		case r == ':' || r == '|' || r == '=' || r == ',':
			flush()
			toks = append(toks, string(r))
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

func isUpperName(s string) bool {
	if s == "" {
		return false
	}
	sawLetter := false
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			sawLetter = true
		case r >= '0' && r <= '9', r == '_':
			// allowed anywhere in a symbolic terminal name
		default:
			return false
		}
	}
	return sawLetter
}
