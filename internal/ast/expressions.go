package ast

import "github.com/UmarbekFU/lyra-lang/internal/token"

// BinOp enumerates the binary operators, matching §3's closed set.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Mod
	OpEq
	OpNotEq
	OpLt
	OpGt
	OpLe
	OpGe
	OpAnd
	OpOr
	OpCons
)

func (op BinOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case OpEq:
		return "=="
	case OpNotEq:
		return "!="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpCons:
		return "::"
	default:
		return "?"
	}
}

// UnaryOp enumerates the unary operators.
type UnaryOp int

const (
	Neg UnaryOp = iota
	Not
)

// IntLit, FloatLit, BoolLit, StringLit, UnitLit are the literal forms.
type IntLit struct {
	Tok   token.Token
	Value int64
}

func (e *IntLit) exprNode()       {}
func (e *IntLit) Span() token.Span { return e.Tok.Span }

type FloatLit struct {
	Tok   token.Token
	Value float64
}

func (e *FloatLit) exprNode()       {}
func (e *FloatLit) Span() token.Span { return e.Tok.Span }

type BoolLit struct {
	Tok   token.Token
	Value bool
}

func (e *BoolLit) exprNode()       {}
func (e *BoolLit) Span() token.Span { return e.Tok.Span }

type StringLit struct {
	Tok   token.Token
	Value string
}

func (e *StringLit) exprNode()       {}
func (e *StringLit) Span() token.Span { return e.Tok.Span }

type UnitLit struct {
	Tok token.Token
}

func (e *UnitLit) exprNode()       {}
func (e *UnitLit) Span() token.Span { return e.Tok.Span }

// Ident is a variable reference.
type Ident struct {
	Tok   token.Token
	Name  string
}

func (e *Ident) exprNode()       {}
func (e *Ident) Span() token.Span { return e.Tok.Span }

// ListLit is `[e, …]`.
type ListLit struct {
	Tok      token.Token
	EndTok   token.Token
	Elements []Expr
}

func (e *ListLit) exprNode()       {}
func (e *ListLit) Span() token.Span { return e.Tok.Span.Merge(e.EndTok.Span) }

// TupleLit is `(e, …)` with at least two elements.
type TupleLit struct {
	Tok      token.Token
	EndTok   token.Token
	Elements []Expr
}

func (e *TupleLit) exprNode()       {}
func (e *TupleLit) Span() token.Span { return e.Tok.Span.Merge(e.EndTok.Span) }

// RecordField is one (name, expr) pair of a record literal.
type RecordField struct {
	Name  string
	Value Expr
}

// RecordLit is `{f: e, …}`; duplicate fields are undefined behavior per §3,
// so the parser keeps insertion order and later stages simply let the last
// one shadow earlier ones when building the ordered map.
type RecordLit struct {
	Tok    token.Token
	EndTok token.Token
	Fields []RecordField
}

func (e *RecordLit) exprNode()       {}
func (e *RecordLit) Span() token.Span { return e.Tok.Span.Merge(e.EndTok.Span) }

// Param is one lambda parameter (no type annotation in surface syntax).
type Param struct {
	Tok  token.Token
	Name string
}

// Lambda is `fn (p1, p2) -> body`.
type Lambda struct {
	Tok    token.Token
	Params []Param
	Body   Expr
}

func (e *Lambda) exprNode()       {}
func (e *Lambda) Span() token.Span { return e.Tok.Span.Merge(e.Body.Span()) }

// Apply is `f(a, b, …)`, N-ary application.
type Apply struct {
	Fn     Expr
	Args   []Expr
	EndTok token.Token
}

func (e *Apply) exprNode()       {}
func (e *Apply) Span() token.Span { return e.Fn.Span().Merge(e.EndTok.Span) }

// Binary is a binary operator application.
type Binary struct {
	Tok   token.Token
	Op    BinOp
	Left  Expr
	Right Expr
}

func (e *Binary) exprNode()       {}
func (e *Binary) Span() token.Span { return e.Left.Span().Merge(e.Right.Span()) }

// Unary is a unary operator application.
type Unary struct {
	Tok      token.Token
	Op       UnaryOp
	Operand  Expr
}

func (e *Unary) exprNode()       {}
func (e *Unary) Span() token.Span { return e.Tok.Span.Merge(e.Operand.Span()) }

// Pipe is `lhs |> rhs`, sugar for `rhs(lhs)` but kept distinct so typing
// can require rhs to be a function (§3).
type Pipe struct {
	Tok   token.Token
	Left  Expr
	Right Expr
}

func (e *Pipe) exprNode()       {}
func (e *Pipe) Span() token.Span { return e.Left.Span().Merge(e.Right.Span()) }

// If is `if c then t else e`.
type If struct {
	Tok    token.Token
	Cond   Expr
	Then   Expr
	Else   Expr
}

func (e *If) exprNode()       {}
func (e *If) Span() token.Span { return e.Tok.Span.Merge(e.Else.Span()) }

// LetIn is `let x = v in b` (optionally `let rec`).
type LetIn struct {
	Tok        token.Token
	Name       string
	Recursive  bool
	Value      Expr
	Body       Expr
}

func (e *LetIn) exprNode()       {}
func (e *LetIn) Span() token.Span { return e.Tok.Span.Merge(e.Body.Span()) }

// MatchArm is one `| pattern -> body` arm.
type MatchArm struct {
	Pattern Pattern
	Body    Expr
}

// Match is `match e with | pat -> body | …`.
type Match struct {
	Tok       token.Token
	Scrutinee Expr
	Arms      []MatchArm
}

func (e *Match) exprNode() {}
func (e *Match) Span() token.Span {
	if len(e.Arms) == 0 {
		return e.Tok.Span.Merge(e.Scrutinee.Span())
	}
	return e.Tok.Span.Merge(e.Arms[len(e.Arms)-1].Body.Span())
}

// InterpPart is one part of a string interpolation: either a literal
// fragment or an embedded expression.
type InterpPart struct {
	Literal string
	Expr    Expr // nil when this part is a literal fragment
}

// Interp is a string interpolation literal: a sequence of literal/expr
// parts.
type Interp struct {
	Tok   token.Token
	Parts []InterpPart
}

func (e *Interp) exprNode()       {}
func (e *Interp) Span() token.Span { return e.Tok.Span }

// FieldAccess is `e.f`, left-associative and chainable.
type FieldAccess struct {
	Object Expr
	Field  string
	Tok    token.Token // the field identifier token
}

func (e *FieldAccess) exprNode()       {}
func (e *FieldAccess) Span() token.Span { return e.Object.Span().Merge(e.Tok.Span) }
