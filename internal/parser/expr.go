package parser

import (
	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/token"
)

// Precedence levels, low to high, matching §4.1/§6 exactly.
const (
	LOWEST = iota
	PIPE    // |>            (1)
	OR      // ||            (3)
	AND     // &&            (5)
	EQUALITY // == !=        (7)
	COMPARE  // < > <= >=    (9)
	CONS     // ::           (11/12, right-assoc)
	SUM      // + -          (13)
	PRODUCT  // * / %        (15)
	PREFIX   // unary - !    (17)
	CALL     // application / field access
)

func precedenceOf(tt token.Type) int {
	switch tt {
	case token.PIPE_R:
		return PIPE
	case token.OR:
		return OR
	case token.AND:
		return AND
	case token.EQ, token.NOT_EQ:
		return EQUALITY
	case token.LT, token.GT, token.LE, token.GE:
		return COMPARE
	case token.CONS:
		return CONS
	case token.PLUS, token.MINUS:
		return SUM
	case token.STAR, token.SLASH, token.PERCENT:
		return PRODUCT
	case token.LPAREN, token.DOT:
		return CALL
	default:
		return LOWEST
	}
}

var binOps = map[token.Type]ast.BinOp{
	token.PLUS:    ast.Add,
	token.MINUS:   ast.Sub,
	token.STAR:    ast.Mul,
	token.SLASH:   ast.Div,
	token.PERCENT: ast.Mod,
	token.EQ:      ast.OpEq,
	token.NOT_EQ:  ast.OpNotEq,
	token.LT:      ast.OpLt,
	token.GT:      ast.OpGt,
	token.LE:      ast.OpLe,
	token.GE:      ast.OpGe,
	token.AND:     ast.OpAnd,
	token.OR:      ast.OpOr,
	token.CONS:    ast.OpCons,
}

// parseExpression is the precedence-climbing core: parse a prefix
// expression, then repeatedly consume infix/postfix operators whose
// precedence exceeds minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expr {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for {
		tt := p.cur().Type
		prec := precedenceOf(tt)
		if prec <= minPrec || prec == LOWEST {
			break
		}

		switch tt {
		case token.LPAREN:
			if !isCallable(left) {
				return left
			}
			left = p.parseApply(left)
		case token.DOT:
			left = p.parseFieldAccess(left)
		case token.PIPE_R:
			tok := p.advance()
			right := p.parseExpression(PIPE)
			left = &ast.Pipe{Tok: tok, Left: left, Right: right}
		case token.CONS:
			tok := p.advance()
			right := p.parseExpression(CONS - 1) // right-associative
			left = &ast.Binary{Tok: tok, Op: ast.OpCons, Left: left, Right: right}
		default:
			op, ok := binOps[tt]
			if !ok {
				return left
			}
			tok := p.advance()
			right := p.parseExpression(prec)
			left = &ast.Binary{Tok: tok, Op: op, Left: left, Right: right}
		}
	}
	return left
}

// isCallable reports whether left may be the callee of a postfix `(...)`
// application, per §4.1: application is allowed only after a non-literal
// atomic prefix.
func isCallable(left ast.Expr) bool {
	switch left.(type) {
	case *ast.IntLit, *ast.FloatLit, *ast.BoolLit, *ast.StringLit, *ast.UnitLit,
		*ast.ListLit, *ast.TupleLit, *ast.RecordLit, *ast.Interp:
		return false
	default:
		return true
	}
}

func (p *Parser) parseApply(fn ast.Expr) ast.Expr {
	p.expect(token.LPAREN)
	var args []ast.Expr
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		args = append(args, p.parseExpression(LOWEST))
		if p.at(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	end := p.expect(token.RPAREN)
	return &ast.Apply{Fn: fn, Args: args, EndTok: end}
}

func (p *Parser) parseFieldAccess(obj ast.Expr) ast.Expr {
	p.expect(token.DOT)
	nameTok := p.expect(token.IDENT)
	return &ast.FieldAccess{Object: obj, Field: nameTok.Lexeme, Tok: nameTok}
}

// parsePrefix dispatches on the current token to parse a primary/prefix
// expression.
func (p *Parser) parsePrefix() ast.Expr {
	tok := p.cur()
	switch tok.Type {
	case token.INT:
		p.advance()
		return &ast.IntLit{Tok: tok, Value: parseIntLiteral(tok)}
	case token.FLOAT:
		p.advance()
		return &ast.FloatLit{Tok: tok, Value: parseFloatLiteral(tok)}
	case token.TRUE:
		p.advance()
		return &ast.BoolLit{Tok: tok, Value: true}
	case token.FALSE:
		p.advance()
		return &ast.BoolLit{Tok: tok, Value: false}
	case token.STRING:
		p.advance()
		return &ast.StringLit{Tok: tok, Value: stringLiteralValue(tok)}
	case token.STRING_INTERP:
		p.advance()
		return p.parseInterp(tok)
	case token.IDENT:
		p.advance()
		return &ast.Ident{Tok: tok, Name: tok.Lexeme}
	case token.MINUS:
		p.advance()
		operand := p.parseExpression(PREFIX)
		return &ast.Unary{Tok: tok, Op: ast.Neg, Operand: operand}
	case token.NOT:
		p.advance()
		operand := p.parseExpression(PREFIX)
		return &ast.Unary{Tok: tok, Op: ast.Not, Operand: operand}
	case token.LPAREN:
		return p.parseParenOrTupleOrUnit()
	case token.LBRACKET:
		return p.parseListLit()
	case token.LBRACE:
		return p.parseRecordLit()
	case token.FN:
		return p.parseLambda()
	case token.IF:
		return p.parseIf()
	case token.LET:
		return p.parseLetIn()
	case token.MATCH:
		return p.parseMatch()
	default:
		p.errorf(tok.Span, "P002", "expected an expression, found %s", tok.Type)
		return nil
	}
}

func stringLiteralValue(tok token.Token) string {
	if len(tok.Interp) == 1 && !tok.Interp[0].IsExpr {
		return tok.Interp[0].Text
	}
	return ""
}

func (p *Parser) parseInterp(tok token.Token) ast.Expr {
	node := &ast.Interp{Tok: tok}
	for _, part := range tok.Interp {
		if !part.IsExpr {
			if part.Text == "" {
				continue
			}
			node.Parts = append(node.Parts, ast.InterpPart{Literal: part.Text})
			continue
		}
		sub := New(part.Tokens)
		expr := sub.parseExpression(LOWEST)
		p.diags = append(p.diags, sub.diags...)
		node.Parts = append(node.Parts, ast.InterpPart{Expr: expr})
	}
	return node
}

func (p *Parser) parseParenOrTupleOrUnit() ast.Expr {
	start := p.expect(token.LPAREN)
	if p.at(token.RPAREN) {
		end := p.advance()
		unitTok := start
		unitTok.Span = start.Span.Merge(end.Span)
		return &ast.UnitLit{Tok: unitTok}
	}
	first := p.parseExpression(LOWEST)
	if p.at(token.COMMA) {
		elems := []ast.Expr{first}
		for p.at(token.COMMA) {
			p.advance()
			if p.at(token.RPAREN) {
				break
			}
			elems = append(elems, p.parseExpression(LOWEST))
		}
		end := p.expect(token.RPAREN)
		return &ast.TupleLit{Tok: start, EndTok: end, Elements: elems}
	}
	p.expect(token.RPAREN)
	return first
}


func (p *Parser) parseListLit() ast.Expr {
	start := p.expect(token.LBRACKET)
	var elems []ast.Expr
	for !p.at(token.RBRACKET) && !p.at(token.EOF) {
		elems = append(elems, p.parseExpression(LOWEST))
		if p.at(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	end := p.expect(token.RBRACKET)
	return &ast.ListLit{Tok: start, EndTok: end, Elements: elems}
}

func (p *Parser) parseRecordLit() ast.Expr {
	start := p.expect(token.LBRACE)
	var fields []ast.RecordField
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		nameTok := p.expect(token.IDENT)
		p.expect(token.COLON)
		val := p.parseExpression(LOWEST)
		fields = append(fields, ast.RecordField{Name: nameTok.Lexeme, Value: val})
		if p.at(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	end := p.expect(token.RBRACE)
	return &ast.RecordLit{Tok: start, EndTok: end, Fields: fields}
}

func (p *Parser) parseLambda() ast.Expr {
	tok := p.expect(token.FN)
	p.expect(token.LPAREN)
	var params []ast.Param
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		nameTok := p.expect(token.IDENT)
		params = append(params, ast.Param{Tok: nameTok, Name: nameTok.Lexeme})
		if p.at(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)
	p.expect(token.ARROW)
	body := p.parseExpression(LOWEST)
	return &ast.Lambda{Tok: tok, Params: params, Body: body}
}

func (p *Parser) parseIf() ast.Expr {
	tok := p.expect(token.IF)
	cond := p.parseExpression(LOWEST)
	p.expect(token.THEN)
	thenE := p.parseExpression(LOWEST)
	p.expect(token.ELSE)
	elseE := p.parseExpression(LOWEST)
	return &ast.If{Tok: tok, Cond: cond, Then: thenE, Else: elseE}
}

func (p *Parser) parseLetIn() ast.Expr {
	tok := p.expect(token.LET)
	recursive := false
	if p.at(token.REC) {
		p.advance()
		recursive = true
	}
	nameTok := p.expect(token.IDENT)
	p.expect(token.ASSIGN)
	value := p.parseExpression(LOWEST)
	p.expect(token.IN)
	body := p.parseExpression(LOWEST)
	return &ast.LetIn{Tok: tok, Name: nameTok.Lexeme, Recursive: recursive, Value: value, Body: body}
}

func (p *Parser) parseMatch() ast.Expr {
	tok := p.expect(token.MATCH)
	scrutinee := p.parseExpression(LOWEST)
	p.expect(token.WITH)
	m := &ast.Match{Tok: tok, Scrutinee: scrutinee}
	for p.at(token.PIPE_ARM) {
		p.advance()
		pat := p.parsePattern()
		p.expect(token.ARROW)
		body := p.parseExpression(LOWEST)
		m.Arms = append(m.Arms, ast.MatchArm{Pattern: pat, Body: body})
	}
	return m
}
