// Package ast defines the abstract syntax produced by the parser and
// consumed by the type inferencer and both back ends.
package ast

import "github.com/UmarbekFU/lyra-lang/internal/token"

// Node is the root interface every AST node satisfies.
type Node interface {
	Span() token.Span
}

// Decl is a top-level declaration.
type Decl interface {
	Node
	declNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of a parsed file (after import inlining, the
// spliced-in declarations of every import appear in Decls in place,
// per §6 "Imports").
type Program struct {
	File  string
	Decls []Decl
}

func (p *Program) Span() token.Span {
	if len(p.Decls) == 0 {
		return token.Span{}
	}
	return p.Decls[0].Span().Merge(p.Decls[len(p.Decls)-1].Span())
}

// ---- Declarations ----

// LetDecl is `let name [: Type] = expr` or `let rec name = expr`.
type LetDecl struct {
	Tok        token.Token
	Name       string
	Recursive  bool
	Annotation TypeAnnotation // nil if absent
	Body       Expr
}

func (d *LetDecl) declNode()       {}
func (d *LetDecl) Span() token.Span { return d.Tok.Span.Merge(d.Body.Span()) }

// Variant is one constructor of a TypeDecl: `CName F1 F2 …`.
type Variant struct {
	Tok    token.Token
	Name   string
	Fields []TypeAnnotation
}

// TypeDecl is `type Name a b = C1 F… | C2 F… | …`.
type TypeDecl struct {
	Tok       token.Token
	Name      string
	TypeParams []string
	Variants  []Variant
}

func (d *TypeDecl) declNode() {}
func (d *TypeDecl) Span() token.Span {
	end := d.Tok.Span
	if len(d.Variants) > 0 {
		last := d.Variants[len(d.Variants)-1]
		end = last.Tok.Span
		if len(last.Fields) > 0 {
			end = last.Fields[len(last.Fields)-1].Span()
		}
	}
	return d.Tok.Span.Merge(end)
}

// ImportDecl is `import "path"`.
type ImportDecl struct {
	Tok  token.Token
	Path string
}

func (d *ImportDecl) declNode()       {}
func (d *ImportDecl) Span() token.Span { return d.Tok.Span }

// ExprDecl is a bare top-level expression.
type ExprDecl struct {
	Expr Expr
}

func (d *ExprDecl) declNode()       {}
func (d *ExprDecl) Span() token.Span { return d.Expr.Span() }
