// Package parser implements the Pratt expression parser described in §4.1:
// precedence climbing over tokens, with application and field access as
// postfix operators binding tighter than any infix operator.
package parser

import (
	"strconv"

	"github.com/UmarbekFU/lyra-lang/internal/ast"
	"github.com/UmarbekFU/lyra-lang/internal/diagnostics"
	"github.com/UmarbekFU/lyra-lang/internal/lexer"
	"github.com/UmarbekFU/lyra-lang/internal/pipeline"
	"github.com/UmarbekFU/lyra-lang/internal/token"
)

// Parser consumes a token stream and produces an *ast.Program.
type Parser struct {
	tokens []token.Token
	pos    int
	diags  []*diagnostics.Diagnostic
}

// New builds a Parser over an already-scanned, EOF-terminated token slice.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// FromSource lexes source and builds a Parser over the resulting tokens.
func FromSource(source string) *Parser {
	return New(lexer.All(source))
}

// Diagnostics returns every error recorded while parsing.
func (p *Parser) Diagnostics() []*diagnostics.Diagnostic { return p.diags }

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[idx]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) at(tt token.Type) bool { return p.cur().Type == tt }

func (p *Parser) expect(tt token.Type) token.Token {
	if p.at(tt) {
		return p.advance()
	}
	tok := p.cur()
	p.errorf(tok.Span, "P001", "unexpected token: expected %s, found %s", tt, tok.Type)
	return tok
}

func (p *Parser) errorf(span token.Span, code, format string, args ...interface{}) {
	p.diags = append(p.diags, diagnostics.New(diagnostics.Parse, code, span, format, args...))
}

// ParseProgram parses a complete file: a sequence of declarations and/or
// bare expressions, delimited by keyword-start lookahead or EOF (§4.1).
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.at(token.EOF) {
		startPos := p.pos
		decl := p.parseDecl()
		if decl != nil {
			prog.Decls = append(prog.Decls, decl)
		}
		// Recover to the next top-level declaration boundary on error, so a
		// single bad declaration doesn't cascade into spurious errors for
		// the rest of the file (§4.1: "recovers to statement boundaries
		// only at top level").
		if p.pos == startPos {
			p.recoverToDeclBoundary()
		}
	}
	return prog
}

func (p *Parser) recoverToDeclBoundary() {
	p.advance()
	for !p.at(token.EOF) {
		switch p.cur().Type {
		case token.LET, token.TYPE, token.IMPORT:
			return
		}
		p.advance()
	}
}

func (p *Parser) parseDecl() ast.Decl {
	switch p.cur().Type {
	case token.LET:
		return p.parseLetDecl()
	case token.TYPE:
		return p.parseTypeDecl()
	case token.IMPORT:
		return p.parseImportDecl()
	default:
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return nil
		}
		return &ast.ExprDecl{Expr: expr}
	}
}

func (p *Parser) parseLetDecl() ast.Decl {
	tok := p.expect(token.LET)
	recursive := false
	if p.at(token.REC) {
		p.advance()
		recursive = true
	}
	nameTok := p.expect(token.IDENT)
	var ann ast.TypeAnnotation
	if p.at(token.COLON) {
		p.advance()
		ann = p.parseTypeAnnotation()
	}
	p.expect(token.ASSIGN)
	body := p.parseExpression(LOWEST)
	return &ast.LetDecl{Tok: tok, Name: nameTok.Lexeme, Recursive: recursive, Annotation: ann, Body: body}
}

func (p *Parser) parseTypeDecl() ast.Decl {
	tok := p.expect(token.TYPE)
	nameTok := p.expect(token.IDENT)
	var params []string
	for p.at(token.IDENT) && isLowerIdent(p.cur().Lexeme) {
		params = append(params, p.advance().Lexeme)
	}
	p.expect(token.ASSIGN)
	decl := &ast.TypeDecl{Tok: tok, Name: nameTok.Lexeme, TypeParams: params}
	decl.Variants = append(decl.Variants, p.parseVariant())
	for p.at(token.PIPE_ARM) {
		p.advance()
		decl.Variants = append(decl.Variants, p.parseVariant())
	}
	return decl
}

func isLowerIdent(s string) bool {
	return len(s) > 0 && s[0] >= 'a' && s[0] <= 'z'
}

func (p *Parser) parseVariant() ast.Variant {
	nameTok := p.expect(token.IDENT)
	v := ast.Variant{Tok: nameTok, Name: nameTok.Lexeme}
	for p.startsTypeAtom() {
		v.Fields = append(v.Fields, p.parseTypeAtom())
	}
	return v
}

func (p *Parser) parseImportDecl() ast.Decl {
	tok := p.expect(token.IMPORT)
	pathTok := p.expect(token.STRING)
	return &ast.ImportDecl{Tok: tok, Path: stringLiteralValue(pathTok)}
}

// ---- literal conversion helpers ----

func parseIntLiteral(tok token.Token) int64 {
	v, _ := strconv.ParseInt(tok.Lexeme, 10, 64)
	return v
}

func parseFloatLiteral(tok token.Token) float64 {
	v, _ := strconv.ParseFloat(tok.Lexeme, 64)
	return v
}

// ParseSource is a convenience entry point used by the pipeline processor.
func ParseSource(source, file string) (*ast.Program, []*diagnostics.Diagnostic) {
	p := FromSource(source)
	prog := p.ParseProgram()
	prog.File = file
	for _, d := range p.diags {
		if d.File == "" {
			d.File = file
		}
	}
	return prog, p.diags
}

// Processor adapts the parser into a pipeline.Processor.
type Processor struct{}

func (Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	prog, diags := ParseSource(ctx.Source, ctx.FilePath)
	ctx.AST = prog
	for _, d := range diags {
		ctx.AddError(d)
	}
	return ctx
}
