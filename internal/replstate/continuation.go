// Package replstate implements the REPL's minimal line-continuation
// state machine and its YAML-backed session file (§6 "REPL commands").
// Both collaborators are explicitly out-of-scope/implemented-minimally
// per the spec: the continuation rule is one paragraph of prose and the
// session format round-trips through `gopkg.in/yaml.v3`, the same
// library funxy reaches for its own config surface
// (internal/ext/config.go's `funxy.yaml`).
package replstate

import (
	"strings"

	"github.com/UmarbekFU/lyra-lang/internal/lexer"
	"github.com/UmarbekFU/lyra-lang/internal/token"
)

// NeedsContinuation reports whether buffered, the REPL input accumulated
// so far, is an incomplete declaration that should keep reading more
// lines rather than being submitted: an unclosed paren/bracket/brace or
// string literal, or a trailing token that can only be followed by more
// input (`->`, `with`, `=`, `then`, `else`, `in`, `|`).
func NeedsContinuation(buffered string) bool {
	if strings.TrimSpace(buffered) == "" {
		return false
	}
	toks := lexer.All(buffered)

	depth := 0
	for _, t := range toks {
		switch t.Type {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			depth--
		}
		if (t.Type == token.STRING || t.Type == token.STRING_INTERP) && !strings.HasSuffix(t.Lexeme, `"`) {
			return true
		}
	}
	if depth > 0 {
		return true
	}

	last := lastSignificant(toks)
	if last == nil {
		return false
	}
	switch last.Type {
	case token.ARROW, token.WITH, token.ASSIGN, token.THEN, token.ELSE, token.IN, token.PIPE_ARM:
		return true
	default:
		return false
	}
}

// lastSignificant returns the last non-EOF token, or nil for an
// all-EOF/empty stream.
func lastSignificant(toks []token.Token) *token.Token {
	for i := len(toks) - 1; i >= 0; i-- {
		if toks[i].Type != token.EOF {
			return &toks[i]
		}
	}
	return nil
}
