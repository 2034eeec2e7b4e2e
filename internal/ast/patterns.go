package ast

import "github.com/UmarbekFU/lyra-lang/internal/token"

// Pattern is a match/binding pattern node.
type Pattern interface {
	Node
	patternNode()
}

// WildcardPattern is `_`.
type WildcardPattern struct {
	Tok token.Token
}

func (p *WildcardPattern) patternNode()     {}
func (p *WildcardPattern) Span() token.Span { return p.Tok.Span }

// VarPattern binds the scrutinee to Name.
type VarPattern struct {
	Tok  token.Token
	Name string
}

func (p *VarPattern) patternNode()     {}
func (p *VarPattern) Span() token.Span { return p.Tok.Span }

// LitKind distinguishes literal pattern payload types.
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitBool
	LitUnit
)

// LiteralPattern matches an exact literal value.
type LiteralPattern struct {
	Tok    token.Token
	Kind   LitKind
	Int    int64
	Float  float64
	String string
	Bool   bool
}

func (p *LiteralPattern) patternNode()     {}
func (p *LiteralPattern) Span() token.Span { return p.Tok.Span }

// TuplePattern matches a tuple of exactly len(Elements) patterns.
type TuplePattern struct {
	Tok      token.Token
	EndTok   token.Token
	Elements []Pattern
}

func (p *TuplePattern) patternNode()     {}
func (p *TuplePattern) Span() token.Span { return p.Tok.Span.Merge(p.EndTok.Span) }

// ListPattern matches a list of exactly len(Elements) patterns.
type ListPattern struct {
	Tok      token.Token
	EndTok   token.Token
	Elements []Pattern
}

func (p *ListPattern) patternNode()     {}
func (p *ListPattern) Span() token.Span { return p.Tok.Span.Merge(p.EndTok.Span) }

// ConsPattern matches `head :: tail`.
type ConsPattern struct {
	Head Pattern
	Tail Pattern
}

func (p *ConsPattern) patternNode()     {}
func (p *ConsPattern) Span() token.Span { return p.Head.Span().Merge(p.Tail.Span()) }

// ConstructorPattern matches `C(args…)` (or bare `C` when there are no
// fields).
type ConstructorPattern struct {
	Tok    token.Token
	EndTok token.Token
	Name   string
	Args   []Pattern
}

func (p *ConstructorPattern) patternNode()     {}
func (p *ConstructorPattern) Span() token.Span { return p.Tok.Span.Merge(p.EndTok.Span) }
