package clike

// identKind disambiguates why an IDENT leaf is being requested: the same
// terminal stands for a variable reference, a new declaration's name, and a
// called function's name, and only the inherited property passed down from
// its parent rule can tell those apart.
type identKind int

const (
	refName identKind = iota
	declName
	callName
	plainName
)

// inh is the S-layer's inherited property (PSI): in most of the grammar it
// is just passed straight through unchanged (CSProcessor.ProcessNonTerminalInh
// defaults to echoing it), and is only ever overridden at the handful of
// productions that need to narrow an IDENT's role or thread a call's
// remaining expected parameter types down through arglist/exprlist.
type inh struct {
	kind            identKind
	declType        string // expected type for a declName IDENT
	remainingParams string // comma-joined remaining expected call params
	variadic        bool   // whether the call being checked is variadic
}

// pass returns cur unchanged, wrapped as the single-option result every
// ProcessNonTerminalInh case returns by default.
func pass(cur inh) []inh { return []inh{cur} }
