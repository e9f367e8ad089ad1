package mjlike

// Grammar is the mjlike frontend's grammar source (spec.md §6's grammar-file
// format): local declarations, assignment (including to a field through a
// chain of field accesses), if/else, return, blocks, object construction,
// casts, equality, field access, and method calls. It covers exactly the
// constructs spec.md §8's concrete MJ-like scenario exercises.
const Grammar = `
program root = 0: stmtlist
stmtlist = 0: stmt stmtlist
         | 1:
stmt = 0: decl
     | 1: lvalue "=" expr ";"
     | 2: expr ";"
     | 3: "if" "(" expr ")" stmt
     | 4: "if" "(" expr ")" stmt "else" stmt
     | 5: "return" expr ";"
     | 6: "return" ";"
     | 7: "{" stmtlist "}"
decl = 0: IDENT IDENT ";"
lvalue = 0: IDENT
       | 1: lvalue "." IDENT
expr = 0: eqexpr
eqexpr = 0: eqexpr "==" primary
       | 1: primary
primary = 0: IDENT
        | 1: "null"
        | 2: "new" IDENT "(" arglist ")"
        | 3: "(" expr ")"
        | 4: "(" IDENT ")" primary
        | 5: primary "." IDENT
        | 6: primary "." IDENT "(" arglist ")"
arglist = 0: exprlist
        | 1:
exprlist = 0: expr
         | 1: expr "," exprlist
multivalued { IDENT }
`

// GrammarFile is the logical source path recorded in FixingInfo.
const GrammarFile = "internal/lang/mjlike/grammar.go:Grammar"
