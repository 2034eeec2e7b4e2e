package ast

import "github.com/UmarbekFU/lyra-lang/internal/token"

// TypeAnnotation is the surface syntax for type annotations, as opposed to
// the inferencer's internal MonoType representation (see internal/types).
type TypeAnnotation interface {
	Node
	typeAnnotationNode()
}

// NamedType is a bare type name: `Int`, `Shape`, …
type NamedType struct {
	Tok  token.Token
	Name string
}

func (t *NamedType) typeAnnotationNode() {}
func (t *NamedType) Span() token.Span    { return t.Tok.Span }

// VarType is a lowercase type variable in a surface annotation: `a`, `b`.
type VarType struct {
	Tok  token.Token
	Name string
}

func (t *VarType) typeAnnotationNode() {}
func (t *VarType) Span() token.Span    { return t.Tok.Span }

// ArrowType is `A -> B`, right-associative.
type ArrowType struct {
	From TypeAnnotation
	To   TypeAnnotation
}

func (t *ArrowType) typeAnnotationNode() {}
func (t *ArrowType) Span() token.Span    { return t.From.Span().Merge(t.To.Span()) }

// AppType is a type application, e.g. `Option Int`.
type AppType struct {
	Head TypeAnnotation
	Args []TypeAnnotation
}

func (t *AppType) typeAnnotationNode() {}
func (t *AppType) Span() token.Span {
	sp := t.Head.Span()
	if len(t.Args) > 0 {
		sp = sp.Merge(t.Args[len(t.Args)-1].Span())
	}
	return sp
}

// TupleType is `(A, B, …)`.
type TupleType struct {
	Tok      token.Token
	EndTok   token.Token
	Elements []TypeAnnotation
}

func (t *TupleType) typeAnnotationNode() {}
func (t *TupleType) Span() token.Span    { return t.Tok.Span.Merge(t.EndTok.Span) }

// ListType is `[A]`.
type ListType struct {
	Tok     token.Token
	EndTok  token.Token
	Element TypeAnnotation
}

func (t *ListType) typeAnnotationNode() {}
func (t *ListType) Span() token.Span    { return t.Tok.Span.Merge(t.EndTok.Span) }

// UnitType is `()`.
type UnitType struct {
	Tok    token.Token
	EndTok token.Token
}

func (t *UnitType) typeAnnotationNode() {}
func (t *UnitType) Span() token.Span    { return t.Tok.Span.Merge(t.EndTok.Span) }
