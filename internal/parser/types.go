package parser

import (
	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/token"
)

// parseTypeAnnotation parses a surface type, handling `->` as right-
// associative and lowest-precedence (§4.2's surface grammar).
func (p *Parser) parseTypeAnnotation() ast.TypeAnnotation {
	left := p.parseTypeApp()
	if p.at(token.ARROW) {
		p.advance()
		right := p.parseTypeAnnotation()
		return &ast.ArrowType{From: left, To: right}
	}
	return left
}

// parseTypeApp parses a type application: a head atom followed by zero or
// more further atoms, e.g. `Option Int`, `Map k v`.
func (p *Parser) parseTypeApp() ast.TypeAnnotation {
	head := p.parseTypeAtom()
	var args []ast.TypeAnnotation
	for p.startsTypeAtom() {
		args = append(args, p.parseTypeAtom())
	}
	if len(args) == 0 {
		return head
	}
	return &ast.AppType{Head: head, Args: args}
}

// startsTypeAtom reports whether the current token can begin an atomic
// type annotation, used both to decide when type-application arguments
// continue and to detect a variant's field list in `type` declarations.
func (p *Parser) startsTypeAtom() bool {
	switch p.cur().Type {
	case token.IDENT, token.LPAREN, token.LBRACKET:
		return true
	default:
		return false
	}
}

func (p *Parser) parseTypeAtom() ast.TypeAnnotation {
	tok := p.cur()
	switch tok.Type {
	case token.IDENT:
		p.advance()
		if isLowerIdent(tok.Lexeme) {
			return &ast.VarType{Tok: tok, Name: tok.Lexeme}
		}
		return &ast.NamedType{Tok: tok, Name: tok.Lexeme}
	case token.LBRACKET:
		p.advance()
		elem := p.parseTypeAnnotation()
		end := p.expect(token.RBRACKET)
		return &ast.ListType{Tok: tok, EndTok: end, Element: elem}
	case token.LPAREN:
		p.advance()
		if p.at(token.RPAREN) {
			end := p.advance()
			return &ast.UnitType{Tok: tok, EndTok: end}
		}
		first := p.parseTypeAnnotation()
		if p.at(token.COMMA) {
			elems := []ast.TypeAnnotation{first}
			for p.at(token.COMMA) {
				p.advance()
				if p.at(token.RPAREN) {
					break
				}
				elems = append(elems, p.parseTypeAnnotation())
			}
			end := p.expect(token.RPAREN)
			return &ast.TupleType{Tok: tok, EndTok: end, Elements: elems}
		}
		p.expect(token.RPAREN)
		return first
	default:
		p.errorf(tok.Span, "P020", "expected a type, found %s", tok.Type)
		p.advance()
		return &ast.NamedType{Tok: tok, Name: "?"}
	}
}
