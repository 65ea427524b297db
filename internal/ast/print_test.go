package ast

import (
	"strings"
	"testing"

	"github.com/tribhasha/tribhasha/pkg/token"
)

func TestDumpBasicProgram(t *testing.T) {
	prog := &Program{
		Statements: []Statement{
			&VarDecl{
				Name: token.New(token.IDENT, "x", 1),
				Init: NewLiteral("1", IntLiteral, 1),
			},
			&ExpressionStmt{
				Expr: &Binary{
					Left:  &Variable{Name: token.New(token.IDENT, "x", 2)},
					Op:    token.New(token.PLUS, "+", 2),
					Right: NewLiteral("2", IntLiteral, 2),
				},
			},
		},
	}

	out := Dump(prog)
	for _, want := range []string{"Program (2 statements)", "VarDecl x", "Literal: 1", "Binary (+)", "Variable: x"} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump output missing %q; got:\n%s", want, out)
		}
	}
}

func TestDumpIfWhileFunctionReturn(t *testing.T) {
	prog := &Program{
		Statements: []Statement{
			NewIf(
				&Literal{Text: "true", Kind: BoolLiteral},
				NewBlock(nil, 1),
				NewBlock(nil, 1),
				1,
			),
			&FunctionDecl{
				Name:   token.New(token.IDENT, "f", 2),
				Params: []token.Token{token.New(token.IDENT, "a", 2)},
				Body: []Statement{
					&Return{Keyword: token.New(token.RETURN, "return", 2), Value: &Variable{Name: token.New(token.IDENT, "a", 2)}},
				},
			},
		},
	}

	out := Dump(prog)
	for _, want := range []string{"If", "Then:", "Else:", "FunctionDecl f(a)", "Return"} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump output missing %q; got:\n%s", want, out)
		}
	}
}
