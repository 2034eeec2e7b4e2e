// Package lexer turns Lyra source text into a token stream.
//
// This is treated as an external collaborator by the spec (a
// character-by-character scanner whose only contract that matters to the
// core is "produces token.Token values"), so it stays a straightforward
// hand-rolled scanner rather than something exotic.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/UmarbekFU/lyra-lang/internal/token"
)

// Lexer scans a single source string into tokens on demand.
type Lexer struct {
	input        string
	position     int // start of current rune
	readPosition int // position after current rune
	ch           rune
	line         int
	column       int
}

// New creates a Lexer over input.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		if l.ch == '-' && l.peekChar() == '-' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		break
	}
}

func (l *Lexer) simple(t token.Type) token.Token {
	tok := token.Token{
		Type:   t,
		Lexeme: string(l.ch),
		Span:   token.Span{Start: l.position, End: l.position + utf8.RuneLen(l.ch)},
		Line:   l.line,
		Column: l.column,
	}
	l.readChar()
	return tok
}

// two produces a two-rune token starting at the current character,
// assuming peekChar() already matched.
func (l *Lexer) two(t token.Type, lexeme string) token.Token {
	start := l.position
	line, col := l.line, l.column
	l.readChar()
	l.readChar()
	return token.Token{Type: t, Lexeme: lexeme, Span: token.Span{Start: start, End: l.position}, Line: line, Column: col}
}

// NextToken scans and returns the next token, advancing the lexer.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Lexeme: "", Span: token.Span{Start: l.position, End: l.position}, Line: l.line, Column: l.column}
	case l.ch == '(':
		return l.simple(token.LPAREN)
	case l.ch == ')':
		return l.simple(token.RPAREN)
	case l.ch == '[':
		return l.simple(token.LBRACKET)
	case l.ch == ']':
		return l.simple(token.RBRACKET)
	case l.ch == '{':
		return l.simple(token.LBRACE)
	case l.ch == '}':
		return l.simple(token.RBRACE)
	case l.ch == ',':
		return l.simple(token.COMMA)
	case l.ch == '.':
		return l.simple(token.DOT)
	case l.ch == '+':
		return l.simple(token.PLUS)
	case l.ch == '*':
		return l.simple(token.STAR)
	case l.ch == '%':
		return l.simple(token.PERCENT)
	case l.ch == '-':
		if l.peekChar() == '>' {
			return l.two(token.ARROW, "->")
		}
		return l.simple(token.MINUS)
	case l.ch == '/':
		return l.simple(token.SLASH)
	case l.ch == ':':
		if l.peekChar() == ':' {
			return l.two(token.CONS, "::")
		}
		return l.simple(token.COLON)
	case l.ch == '=':
		if l.peekChar() == '=' {
			return l.two(token.EQ, "==")
		}
		return l.simple(token.ASSIGN)
	case l.ch == '!':
		if l.peekChar() == '=' {
			return l.two(token.NOT_EQ, "!=")
		}
		return l.simple(token.NOT)
	case l.ch == '<':
		if l.peekChar() == '=' {
			return l.two(token.LE, "<=")
		}
		return l.simple(token.LT)
	case l.ch == '>':
		if l.peekChar() == '=' {
			return l.two(token.GE, ">=")
		}
		return l.simple(token.GT)
	case l.ch == '&':
		if l.peekChar() == '&' {
			return l.two(token.AND, "&&")
		}
		return l.simple(token.ILLEGAL)
	case l.ch == '|':
		if l.peekChar() == '|' {
			return l.two(token.OR, "||")
		}
		if l.peekChar() == '>' {
			return l.two(token.PIPE_R, "|>")
		}
		return l.simple(token.PIPE_ARM)
	case l.ch == '_' && !isIdentCont(l.peekChar()):
		return l.simple(token.UNDERSCORE)
	case l.ch == '"':
		return l.readString()
	case unicode.IsDigit(l.ch):
		return l.readNumber()
	case isIdentStart(l.ch):
		return l.readIdent()
	default:
		return l.simple(token.ILLEGAL)
	}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentCont(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func (l *Lexer) readIdent() token.Token {
	start := l.position
	line, col := l.line, l.column
	for isIdentCont(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	return token.Token{
		Type: token.LookupIdent(lexeme), Lexeme: lexeme,
		Span: token.Span{Start: start, End: l.position}, Line: line, Column: col,
	}
}

func (l *Lexer) readNumber() token.Token {
	start := l.position
	line, col := l.line, l.column
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	isFloat := false
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
	}
	lexeme := l.input[start:l.position]
	t := token.INT
	if isFloat {
		t = token.FLOAT
	}
	return token.Token{Type: t, Lexeme: lexeme, Span: token.Span{Start: start, End: l.position}, Line: line, Column: col}
}

// readString scans a double-quoted string literal, decoding escapes and
// collecting {expr} interpolation parts as nested token runs.
func (l *Lexer) readString() token.Token {
	start := l.position
	line, col := l.line, l.column
	l.readChar() // consume opening quote

	var parts []token.InterpPart
	var lit strings.Builder
	hasInterp := false

	flushLiteral := func() {
		if lit.Len() == 0 {
			return
		}
		parts = append(parts, token.InterpPart{IsExpr: false, Text: lit.String()})
		lit.Reset()
	}

	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				lit.WriteByte('\n')
			case 't':
				lit.WriteByte('\t')
			case 'r':
				lit.WriteByte('\r')
			case '\\':
				lit.WriteByte('\\')
			case '"':
				lit.WriteByte('"')
			case '{':
				lit.WriteByte('{')
			case '}':
				lit.WriteByte('}')
			default:
				lit.WriteRune(l.ch)
			}
			l.readChar()
			continue
		}
		if l.ch == '{' {
			hasInterp = true
			flushLiteral()
			l.readChar() // consume '{'
			var toks []token.Token
			depth := 1
			for {
				l.skipWhitespaceAndComments()
				if l.ch == 0 {
					break
				}
				if l.ch == '{' {
					depth++
				}
				if l.ch == '}' {
					depth--
					if depth == 0 {
						l.readChar() // consume closing '}'
						break
					}
				}
				tok := l.NextToken()
				toks = append(toks, tok)
			}
			toks = append(toks, token.Token{Type: token.EOF})
			parts = append(parts, token.InterpPart{IsExpr: true, Tokens: toks})
			continue
		}
		lit.WriteRune(l.ch)
		l.readChar()
	}
	flushLiteral()
	if l.ch == '"' {
		l.readChar() // consume closing quote
	}

	lexeme := l.input[start:l.position]
	typ := token.STRING
	if hasInterp {
		typ = token.STRING_INTERP
	}
	return token.Token{
		Type: typ, Lexeme: lexeme, Span: token.Span{Start: start, End: l.position},
		Line: line, Column: col, Interp: parts,
	}
}

// All tokenizes the entire input, returning a slice terminated by a final
// EOF token.
func All(input string) []token.Token {
	l := New(input)
	var out []token.Token
	for {
		tok := l.NextToken()
		out = append(out, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return out
}
