// Package repl implements the interactive shell (spec.md §1/§6),
// grounded on original_source/src/repl/REPL.cpp's line loop: each
// submitted line is lexed, parsed, and lowered fresh, but function
// declarations accumulate across lines so later lines can call
// earlier ones — the REPL's stand-in for the original's incremental
// module-per-line JIT linking.
package repl

import (
	"strings"

	"github.com/tribhasha/tribhasha/internal/ast"
	"github.com/tribhasha/tribhasha/internal/diag"
	"github.com/tribhasha/tribhasha/internal/jit"
	"github.com/tribhasha/tribhasha/internal/lexer"
	"github.com/tribhasha/tribhasha/internal/lower"
	"github.com/tribhasha/tribhasha/internal/parser"
)

// Result is the outcome of evaluating one submitted line.
type Result struct {
	Defined     string // non-empty if the line was a function declaration
	ExitCode    int
	Diagnostics []string
	Ran         bool // false if the line declared a function and nothing executed
}

// Interpreter holds the REPL's persistent state: the source of every
// function declared so far, carried into each subsequent evaluation.
type Interpreter struct {
	decls []string
}

// New creates an empty Interpreter.
func New() *Interpreter { return &Interpreter{} }

// Eval compiles and runs line. A line that is exactly one function
// declaration is remembered for later lines instead of being executed
// immediately, matching how a top-level `function` statement behaves
// in a whole-file compilation.
func (in *Interpreter) Eval(line string) Result {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Result{}
	}

	if name, ok := soleFunctionDecl(trimmed); ok {
		in.decls = append(in.decls, trimmed)
		return Result{Defined: name}
	}

	source := strings.Join(in.decls, "\n") + "\n" + trimmed
	sink := diag.NewSink(nil)
	toks := lexer.New(source, sink).Tokens()
	prog := parser.New(toks, sink).Parse()
	if sink.HasErrors() {
		return Result{Diagnostics: diagStrings(sink), Ran: true}
	}

	mod := lower.Lower(prog, "<repl>", sink)
	if mod == nil || sink.HasErrors() {
		return Result{Diagnostics: diagStrings(sink), Ran: true}
	}

	code := jit.Run(mod, sink)
	return Result{ExitCode: code, Diagnostics: diagStrings(sink), Ran: true}
}

// Declared returns the names of every function defined so far, in
// declaration order.
func (in *Interpreter) Declared() []string {
	names := make([]string, 0, len(in.decls))
	for _, src := range in.decls {
		if name, ok := soleFunctionDecl(src); ok {
			names = append(names, name)
		}
	}
	return names
}

func diagStrings(sink *diag.Sink) []string {
	diags := sink.Diagnostics()
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.String()
	}
	return out
}

// soleFunctionDecl reports whether trimmed parses, on its own, to
// exactly one function declaration, returning its name.
func soleFunctionDecl(trimmed string) (string, bool) {
	sink := diag.NewSink(nil)
	toks := lexer.New(trimmed, sink).Tokens()
	prog := parser.New(toks, sink).Parse()
	if sink.HasErrors() || len(prog.Statements) != 1 {
		return "", false
	}
	fd, ok := prog.Statements[0].(*ast.FunctionDecl)
	if !ok {
		return "", false
	}
	return fd.Name.Lexeme, true
}
