// Package highlight classifies Tribhasha tokens into chroma token
// categories so the token dump and the REPL can render
// syntax-colored output — the ambient "syntax-colored editing" surface
// spec.md §1/§6 names but scopes out of the hard core. The original
// implementation hand-rolls ANSI color codes per token kind
// (original_source/src/repl/REPL.cpp, getColorForToken); here the same
// per-kind classification feeds chroma's own formatters instead of a
// bespoke color table.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/tribhasha/tribhasha/internal/diag"
	"github.com/tribhasha/tribhasha/internal/lexer"
	"github.com/tribhasha/tribhasha/pkg/token"
)

// Classify maps a Tribhasha token kind to the chroma token category
// used to color it.
func Classify(kind token.Kind) chroma.TokenType {
	switch {
	case kind.IsKeyword():
		return chroma.Keyword
	case kind == token.TRUE, kind == token.FALSE:
		return chroma.KeywordConstant
	case kind == token.IDENT:
		return chroma.Name
	case kind == token.INT:
		return chroma.LiteralNumberInteger
	case kind == token.FLOAT:
		return chroma.LiteralNumberFloat
	case kind == token.STRING:
		return chroma.LiteralString
	case kind == token.ILLEGAL:
		return chroma.Error
	}
	switch kind {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.ASSIGN, token.EQ, token.NOT_EQ, token.LESS, token.LESS_EQ,
		token.GREATER, token.GREATER_EQ, token.BANG:
		return chroma.Operator
	case token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.LBRACKET, token.RBRACKET, token.COMMA, token.DOT,
		token.SEMICOLON, token.COLON:
		return chroma.Punctuation
	default:
		return chroma.Text
	}
}

// Style is the chroma style used to render Tribhasha source; chosen to
// match the original REPL's dark-background ANSI palette.
var Style = styles.Get("monokai")

// ANSI lexes code and renders it as an ANSI-colored string suitable for
// a terminal that is not under tcell's control (the `--color` flag of
// the tokens command). Lexical errors are reported to a throwaway
// sink: ANSI is a display aid, not a compilation step, so a malformed
// fragment still renders whatever tokens it produced.
func ANSI(code string) string {
	sink := diag.NewSink(nil)
	toks := lexer.New(code, sink).Tokens()

	tokens := make([]chroma.Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind == token.EOF {
			break
		}
		tokens = append(tokens, chroma.Token{Type: Classify(t.Kind), Value: t.Lexeme + " "})
	}

	var buf strings.Builder
	formatter := formatters.TTY16m
	if err := formatter.Format(&buf, Style, chroma.Literal(tokens...)); err != nil {
		return code
	}
	return buf.String()
}
