package highlight

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/tribhasha/tribhasha/pkg/token"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		kind token.Kind
		want chroma.TokenType
	}{
		{token.VAR, chroma.Keyword},
		{token.IF, chroma.Keyword},
		{token.TRUE, chroma.KeywordConstant},
		{token.FALSE, chroma.KeywordConstant},
		{token.IDENT, chroma.Name},
		{token.INT, chroma.LiteralNumberInteger},
		{token.FLOAT, chroma.LiteralNumberFloat},
		{token.STRING, chroma.LiteralString},
		{token.ILLEGAL, chroma.Error},
		{token.PLUS, chroma.Operator},
		{token.LESS_EQ, chroma.Operator},
		{token.LPAREN, chroma.Punctuation},
		{token.SEMICOLON, chroma.Punctuation},
		{token.EOF, chroma.Text},
	}
	for _, tc := range cases {
		if got := Classify(tc.kind); got != tc.want {
			t.Errorf("Classify(%v) = %v, want %v", tc.kind, got, tc.want)
		}
	}
}

func TestANSIProducesNonEmptyOutputContainingTheSource(t *testing.T) {
	out := ANSI(`var x = 1;`)
	if out == "" {
		t.Fatal("ANSI returned an empty string")
	}
	for _, lexeme := range []string{"var", "x", "1"} {
		if !strings.Contains(out, lexeme) {
			t.Errorf("ANSI output missing lexeme %q; got:\n%q", lexeme, out)
		}
	}
}

func TestANSIOnMalformedInputStillRendersWhatWasLexed(t *testing.T) {
	out := ANSI(`1 @ 2`)
	if !strings.Contains(out, "1") || !strings.Contains(out, "2") {
		t.Errorf("ANSI output missing surrounding tokens; got:\n%q", out)
	}
}
