package parser

import (
	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/token"
)

// parsePattern parses one pattern, handling `::` as a right-associative
// infix form over the atomic pattern forms (§4.2).
func (p *Parser) parsePattern() ast.Pattern {
	left := p.parsePatternAtom()
	if p.at(token.CONS) {
		p.advance()
		tail := p.parsePattern()
		return &ast.ConsPattern{Head: left, Tail: tail}
	}
	return left
}

func (p *Parser) parsePatternAtom() ast.Pattern {
	tok := p.cur()
	switch tok.Type {
	case token.UNDERSCORE:
		p.advance()
		return &ast.WildcardPattern{Tok: tok}
	case token.INT:
		p.advance()
		return &ast.LiteralPattern{Tok: tok, Kind: ast.LitInt, Int: parseIntLiteral(tok)}
	case token.FLOAT:
		p.advance()
		return &ast.LiteralPattern{Tok: tok, Kind: ast.LitFloat, Float: parseFloatLiteral(tok)}
	case token.TRUE:
		p.advance()
		return &ast.LiteralPattern{Tok: tok, Kind: ast.LitBool, Bool: true}
	case token.FALSE:
		p.advance()
		return &ast.LiteralPattern{Tok: tok, Kind: ast.LitBool, Bool: false}
	case token.STRING:
		p.advance()
		return &ast.LiteralPattern{Tok: tok, Kind: ast.LitString, String: stringLiteralValue(tok)}
	case token.LPAREN:
		return p.parsePatternParenOrTupleOrUnit()
	case token.LBRACKET:
		return p.parsePatternList()
	case token.IDENT:
		p.advance()
		if isUpperIdent(tok.Lexeme) {
			return p.parseConstructorPattern(tok)
		}
		return &ast.VarPattern{Tok: tok, Name: tok.Lexeme}
	default:
		p.errorf(tok.Span, "P010", "expected a pattern, found %s", tok.Type)
		p.advance()
		return &ast.WildcardPattern{Tok: tok}
	}
}

func isUpperIdent(s string) bool {
	return len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z'
}

func (p *Parser) parseConstructorPattern(nameTok token.Token) ast.Pattern {
	cp := &ast.ConstructorPattern{Tok: nameTok, EndTok: nameTok, Name: nameTok.Lexeme}
	if p.at(token.LPAREN) {
		p.advance()
		for !p.at(token.RPAREN) && !p.at(token.EOF) {
			cp.Args = append(cp.Args, p.parsePattern())
			if p.at(token.COMMA) {
				p.advance()
			} else {
				break
			}
		}
		cp.EndTok = p.expect(token.RPAREN)
	}
	return cp
}

func (p *Parser) parsePatternParenOrTupleOrUnit() ast.Pattern {
	start := p.expect(token.LPAREN)
	if p.at(token.RPAREN) {
		p.advance()
		return &ast.LiteralPattern{Tok: start, Kind: ast.LitUnit}
	}
	first := p.parsePattern()
	if p.at(token.COMMA) {
		elems := []ast.Pattern{first}
		for p.at(token.COMMA) {
			p.advance()
			if p.at(token.RPAREN) {
				break
			}
			elems = append(elems, p.parsePattern())
		}
		end := p.expect(token.RPAREN)
		return &ast.TuplePattern{Tok: start, EndTok: end, Elements: elems}
	}
	p.expect(token.RPAREN)
	return first
}

func (p *Parser) parsePatternList() ast.Pattern {
	start := p.expect(token.LBRACKET)
	var elems []ast.Pattern
	for !p.at(token.RBRACKET) && !p.at(token.EOF) {
		elems = append(elems, p.parsePattern())
		if p.at(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	end := p.expect(token.RBRACKET)
	return &ast.ListPattern{Tok: start, EndTok: end, Elements: elems}
}
