package jit

import (
	"testing"

	"github.com/tribhasha/tribhasha/internal/diag"
	"github.com/tribhasha/tribhasha/internal/ir"
	"github.com/tribhasha/tribhasha/internal/lexer"
	"github.com/tribhasha/tribhasha/internal/lower"
	"github.com/tribhasha/tribhasha/internal/parser"
)

func compile(t *testing.T, src string) (*ir.Module, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink(nil)
	toks := lexer.New(src, sink).Tokens()
	prog := parser.New(toks, sink).Parse()
	if sink.HasErrors() {
		t.Fatalf("parse diagnostics: %v", sink.Diagnostics())
	}
	mod := lower.Lower(prog, "test", sink)
	if mod == nil {
		t.Fatalf("lower diagnostics: %v", sink.Diagnostics())
	}
	return mod, sink
}

func TestRunReturnsZeroOnSuccess(t *testing.T) {
	mod, _ := compile(t, `var x = 1;`)
	sink := diag.NewSink(nil)
	code := Run(mod, sink)
	if code != 0 {
		t.Errorf("Run() = %d, want 0", code)
	}
	if sink.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", sink.Diagnostics())
	}
}

func TestRunReturnsExplicitExitCode(t *testing.T) {
	mod, _ := compile(t, `return 3;`)
	sink := diag.NewSink(nil)
	code := Run(mod, sink)
	if code != 3 {
		t.Errorf("Run() = %d, want 3", code)
	}
	if !sink.HasErrors() {
		t.Fatal("expected a Link diagnostic reporting the non-zero exit")
	}
}

func TestRunReportsMissingMain(t *testing.T) {
	b := ir.NewModuleBuilder()
	b.NewModule("empty")
	sink := diag.NewSink(nil)
	code := Run(b.Module(), sink)
	if code != 1 {
		t.Errorf("Run() = %d, want 1", code)
	}
	if !sink.HasErrors() {
		t.Fatal("expected a Link diagnostic for the missing main function")
	}
}

func TestRunExecutesFunctionCallsTransitively(t *testing.T) {
	mod, _ := compile(t, `
function double(x) { return x * 2; }
return double(21);
`)
	sink := diag.NewSink(nil)
	code := Run(mod, sink)
	if code != 42 {
		t.Errorf("Run() = %d, want 42", code)
	}
}
