package clike

// Grammar is the clike frontend's grammar source (spec.md §6's grammar-file
// format), a deliberately narrowed C: declarations, assignment, a precedence
// chain of binary operators, if/else, return, and function calls. The
// original's own c_grammar threads an OperatorPrecedence syntactic property
// through a single flattened exprbinop/exprunop pair to disambiguate operator
// binding without grammar-level precedence levels; this port instead encodes
// precedence structurally as a chain of non-terminals (orexpr > andexpr >
// eqexpr > relexpr > addexpr > mulexpr > unary), which needs no non-trivial
// GProp at all — see CGProcessor.
const Grammar = `
program root = 0: stmtlist
stmtlist = 0: stmt stmtlist
         | 1:
stmt = 0: decl
     | 1: expr ";"
     | 2: "if" "(" expr ")" stmt
     | 3: "if" "(" expr ")" stmt "else" stmt
     | 4: "return" expr ";"
     | 5: "return" ";"
     | 6: "{" stmtlist "}"
decl = 0: typename IDENT ";"
     | 1: typename IDENT "=" expr ";"
typename = 0: "int"
         | 1: "char"
         | 2: "float"
         | 3: "void"
expr = 0: lvalue "=" expr
     | 1: orexpr
orexpr = 0: orexpr "||" andexpr
       | 1: andexpr
andexpr = 0: andexpr "&&" eqexpr
        | 1: eqexpr
eqexpr = 0: eqexpr "==" relexpr
       | 1: eqexpr "!=" relexpr
       | 2: relexpr
relexpr = 0: relexpr "<" addexpr
        | 1: relexpr ">" addexpr
        | 2: addexpr
addexpr = 0: addexpr "+" mulexpr
        | 1: addexpr "-" mulexpr
        | 2: mulexpr
mulexpr = 0: mulexpr "*" unary
        | 1: mulexpr "/" unary
        | 2: unary
unary = 0: primary
primary = 0: IDENT
        | 1: NUMBER
        | 2: "(" expr ")"
        | 3: IDENT "(" arglist ")"
lvalue = 0: IDENT
arglist = 0: exprlist
        | 1:
exprlist = 0: expr
         | 1: expr "," exprlist
multivalued { IDENT, NUMBER }
`

// GrammarFile is the logical source path recorded in FixingInfo, for parity
// with the original embedding its grammar via include_str! of a path under
// its own src tree.
const GrammarFile = "internal/lang/clike/grammar.go:Grammar"
