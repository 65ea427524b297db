package ast

import (
	"fmt"
	"strings"
)

// Dump renders a structural text rendering of prog for the CLI's
// `ast` subcommand (spec.md §6: "implementer's choice of format").
func Dump(prog *Program) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Program (%d statements)\n", len(prog.Statements))
	for _, s := range prog.Statements {
		dumpStmt(&b, s, 1)
	}
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func dumpStmt(b *strings.Builder, s Statement, depth int) {
	indent(b, depth)
	switch n := s.(type) {
	case *ExpressionStmt:
		b.WriteString("ExpressionStmt\n")
		dumpExpr(b, n.Expr, depth+1)
	case *VarDecl:
		fmt.Fprintf(b, "VarDecl %s\n", n.Name.Lexeme)
		if n.Init != nil {
			dumpExpr(b, n.Init, depth+1)
		}
	case *Block:
		fmt.Fprintf(b, "Block (%d statements)\n", len(n.Statements))
		for _, stmt := range n.Statements {
			dumpStmt(b, stmt, depth+1)
		}
	case *If:
		b.WriteString("If\n")
		indent(b, depth+1)
		b.WriteString("Cond:\n")
		dumpExpr(b, n.Cond, depth+2)
		indent(b, depth+1)
		b.WriteString("Then:\n")
		dumpStmt(b, n.Then, depth+2)
		if n.Else != nil {
			indent(b, depth+1)
			b.WriteString("Else:\n")
			dumpStmt(b, n.Else, depth+2)
		}
	case *While:
		b.WriteString("While\n")
		indent(b, depth+1)
		b.WriteString("Cond:\n")
		dumpExpr(b, n.Cond, depth+2)
		indent(b, depth+1)
		b.WriteString("Body:\n")
		dumpStmt(b, n.Body, depth+2)
	case *FunctionDecl:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Lexeme
		}
		fmt.Fprintf(b, "FunctionDecl %s(%s)\n", n.Name.Lexeme, strings.Join(params, ", "))
		for _, stmt := range n.Body {
			dumpStmt(b, stmt, depth+1)
		}
	case *Return:
		b.WriteString("Return\n")
		if n.Value != nil {
			dumpExpr(b, n.Value, depth+1)
		}
	default:
		fmt.Fprintf(b, "%T\n", s)
	}
}

func dumpExpr(b *strings.Builder, e Expression, depth int) {
	indent(b, depth)
	switch n := e.(type) {
	case *Binary:
		fmt.Fprintf(b, "Binary (%s)\n", n.Op.Lexeme)
		dumpExpr(b, n.Left, depth+1)
		dumpExpr(b, n.Right, depth+1)
	case *Unary:
		fmt.Fprintf(b, "Unary (%s)\n", n.Op.Lexeme)
		dumpExpr(b, n.Right, depth+1)
	case *Grouping:
		b.WriteString("Grouping\n")
		dumpExpr(b, n.Inner, depth+1)
	case *Literal:
		fmt.Fprintf(b, "Literal: %s\n", n.Text)
	case *Variable:
		fmt.Fprintf(b, "Variable: %s\n", n.Name.Lexeme)
	case *Assignment:
		fmt.Fprintf(b, "Assignment: %s\n", n.Name.Lexeme)
		dumpExpr(b, n.Value, depth+1)
	case *Call:
		fmt.Fprintf(b, "Call (%d args)\n", len(n.Args))
		dumpExpr(b, n.Callee, depth+1)
		for _, a := range n.Args {
			dumpExpr(b, a, depth+1)
		}
	default:
		fmt.Fprintf(b, "%T\n", e)
	}
}
