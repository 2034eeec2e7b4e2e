package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/UmarbekFU/lyra-lang/internal/lexer"
	"github.com/UmarbekFU/lyra-lang/internal/token"
)

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestLexerTokenizesKeywordsAndPunctuation(t *testing.T) {
	toks := lexer.All("let rec fn if then else match with in true false type import")
	require.Equal(t, []token.Type{
		token.LET, token.REC, token.FN, token.IF, token.THEN, token.ELSE,
		token.MATCH, token.WITH, token.IN, token.TRUE, token.FALSE,
		token.TYPE, token.IMPORT, token.EOF,
	}, types(toks))
}

func TestLexerTokenizesOperatorsAndArrows(t *testing.T) {
	toks := lexer.All("-> |> | :: = == != <= >= < > && || !")
	require.Equal(t, []token.Type{
		token.ARROW, token.PIPE_R, token.PIPE_ARM, token.CONS,
		token.ASSIGN, token.EQ, token.NOT_EQ, token.LE, token.GE, token.LT,
		token.GT, token.AND, token.OR, token.NOT, token.EOF,
	}, types(toks))
}

func TestLexerDistinguishesIntFromFloat(t *testing.T) {
	toks := lexer.All("42 3.14")
	require.Equal(t, []token.Type{token.INT, token.FLOAT, token.EOF}, types(toks))
	require.Equal(t, "42", toks[0].Lexeme)
	require.Equal(t, "3.14", toks[1].Lexeme)
}

func TestLexerIdentifierDoesNotSwallowKeywordPrefix(t *testing.T) {
	toks := lexer.All("lettuce ifs")
	require.Equal(t, []token.Type{token.IDENT, token.IDENT, token.EOF}, types(toks))
}

func TestLexerPlainStringLiteral(t *testing.T) {
	toks := lexer.All(`"hello world"`)
	require.Equal(t, []token.Type{token.STRING, token.EOF}, types(toks))
	require.Equal(t, `"hello world"`, toks[0].Lexeme)
}

func TestLexerEscapeSequencesInString(t *testing.T) {
	toks := lexer.All(`"a\nb\tc\"d"`)
	require.Len(t, toks, 2)
	require.Equal(t, token.STRING, toks[0].Type)
	require.Len(t, toks[0].Interp, 1)
	require.Equal(t, "a\nb\tc\"d", toks[0].Interp[0].Text)
}

func TestLexerInterpolatedStringSplitsLiteralAndExprParts(t *testing.T) {
	toks := lexer.All(`"hello {name}"`)
	require.Len(t, toks, 2)
	require.Equal(t, token.STRING_INTERP, toks[0].Type)
	require.Len(t, toks[0].Interp, 2)
	require.False(t, toks[0].Interp[0].IsExpr)
	require.Equal(t, "hello ", toks[0].Interp[0].Text)
	require.True(t, toks[0].Interp[1].IsExpr)
	require.Equal(t, []token.Type{token.IDENT, token.EOF}, types(toks[0].Interp[1].Tokens))
}

func TestLexerInterpolationHandlesNestedBraces(t *testing.T) {
	toks := lexer.All(`"{ {a: 1}.a }"`)
	require.Equal(t, token.STRING_INTERP, toks[0].Type)
	require.Len(t, toks[0].Interp, 1)
	require.True(t, toks[0].Interp[0].IsExpr)
}

func TestLexerSkipsCommentsBetweenTokens(t *testing.T) {
	toks := lexer.All("let x = 1 -- this is a comment\nlet y = 2")
	require.Equal(t, []token.Type{
		token.LET, token.IDENT, token.ASSIGN, token.INT,
		token.LET, token.IDENT, token.ASSIGN, token.INT,
		token.EOF,
	}, types(toks))
}

func TestLexerBracketsAndSeparators(t *testing.T) {
	toks := lexer.All("( ) [ ] { } , : . _")
	require.Equal(t, []token.Type{
		token.LPAREN, token.RPAREN, token.LBRACKET, token.RBRACKET,
		token.LBRACE, token.RBRACE, token.COMMA, token.COLON, token.DOT,
		token.UNDERSCORE, token.EOF,
	}, types(toks))
}

func TestLexerEveryTokenCarriesASpanIntoSource(t *testing.T) {
	src := "let x = 1"
	toks := lexer.All(src)
	for _, tok := range toks {
		if tok.Type == token.EOF {
			continue
		}
		require.Equal(t, tok.Lexeme, src[tok.Span.Start:tok.Span.End])
	}
}
