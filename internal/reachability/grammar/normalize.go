package grammar

import "fmt"

// normalizeAlternative rewrites one source alternative — symbol's altID-th
// alternative, with right-hand-side elems in source order — into a chain of
// 2-normal-form GrammarRules and wires them into the builder's symbol
// indices (spec.md §3's 2-normal-form rewrite).
//
// The chain always starts with a single Induction rule `sym -> sym^altID`,
// the only rule a processor ever sees invoked for the whole alternative.
// sym^altID's own rule then depends on arity k = len(elems):
//
//	k == 0: sym^altID -> e                  (ConcatZero)
//	k == 1: sym^altID -> elems[0]           (ConcatOne)
//	k == 2: sym^altID -> elems[0] elems[1]  (ConcatTwo)
//	k >= 3: a chain of synthetic accumulator symbols sym^altID%2 ..
//	        sym^altID%(k-1), topped by sym^altID itself, each ConcatAppend
//	        adding one more element's property onto the growing array.
//
// Synthetic symbol names use '^' and '%', which source-level non-terminal
// names must not contain.
func normalizeAlternative(b *builder, sym *Symbol, altID int, elems []*Symbol) error {
	top := b.intern(NonTerminal, fmt.Sprintf("%s^%d", sym.name, altID))

	addRule(&GrammarRule{
		ruleType:          Induction,
		left:              sym,
		right1:            top,
		inductionSymbol:   sym,
		inductionID:       altID,
		inductionArgs:     len(elems),
		inductionLocation: -1,
	})

	k := len(elems)
	switch {
	case k == 0:
		addRule(&GrammarRule{
			ruleType: ConcatZero, left: top,
			inductionSymbol: sym, inductionID: altID, inductionArgs: 0, inductionLocation: -1,
		})
	case k == 1:
		addRule(&GrammarRule{
			ruleType: ConcatOne, left: top, right1: elems[0],
			inductionSymbol: sym, inductionID: altID, inductionArgs: 1, inductionLocation: -1,
		})
	case k == 2:
		addRule(&GrammarRule{
			ruleType: ConcatTwo, left: top, right1: elems[0], right2: elems[1],
			inductionSymbol: sym, inductionID: altID, inductionArgs: 2, inductionLocation: 2,
		})
	default:
		acc := b.intern(NonTerminal, fmt.Sprintf("%s^%d%%2", sym.name, altID))
		addRule(&GrammarRule{
			ruleType: ConcatTwo, left: acc, right1: elems[0], right2: elems[1],
			inductionSymbol: sym, inductionID: altID, inductionArgs: k, inductionLocation: 2,
		})
		for j := 3; j < k; j++ {
			next := b.intern(NonTerminal, fmt.Sprintf("%s^%d%%%d", sym.name, altID, j))
			addRule(&GrammarRule{
				ruleType: ConcatAppend, left: next, right1: acc, right2: elems[j-1],
				inductionSymbol: sym, inductionID: altID, inductionArgs: k, inductionLocation: j,
			})
			acc = next
		}
		addRule(&GrammarRule{
			ruleType: ConcatAppend, left: top, right1: acc, right2: elems[k-1],
			inductionSymbol: sym, inductionID: altID, inductionArgs: k, inductionLocation: k,
		})
	}
	return nil
}

func addRule(r *GrammarRule) {
	r.left.rules = append(r.left.rules, r)
	switch r.ruleType.Arity() {
	case 0:
	case 1:
		if r.right1 != nil {
			r.right1.refOne = append(r.right1.refOne, r)
		}
	case 2:
		if r.right1 != nil {
			r.right1.refTwoLeft = append(r.right1.refTwoLeft, r)
		}
		if r.right2 != nil {
			r.right2.refTwoRight = append(r.right2.refTwoRight, r)
		}
	}
}
