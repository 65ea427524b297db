package repl

import "testing"

func TestEvalSimpleExpressionStatement(t *testing.T) {
	in := New()
	r := in.Eval("var x = 1; x;")
	if !r.Ran {
		t.Fatal("expected the line to run")
	}
	if len(r.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", r.Diagnostics)
	}
	if r.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", r.ExitCode)
	}
}

func TestEvalFunctionDeclarationIsRememberedNotRun(t *testing.T) {
	in := New()
	r := in.Eval("function greet() { return 1; }")
	if r.Ran {
		t.Error("a sole function declaration should not run immediately")
	}
	if r.Defined != "greet" {
		t.Errorf("Defined = %q, want %q", r.Defined, "greet")
	}
	if len(in.Declared()) != 1 || in.Declared()[0] != "greet" {
		t.Errorf("Declared() = %v, want [greet]", in.Declared())
	}
}

func TestEvalLaterLineCanCallEarlierDeclaration(t *testing.T) {
	in := New()
	in.Eval("function double(x) { return x * 2; }")
	r := in.Eval("return double(21);")
	if !r.Ran {
		t.Fatal("expected the line to run")
	}
	if len(r.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", r.Diagnostics)
	}
	if r.ExitCode != 42 {
		t.Errorf("ExitCode = %d, want 42", r.ExitCode)
	}
}

func TestEvalReportsDiagnosticsForUnknownIdentifier(t *testing.T) {
	in := New()
	r := in.Eval("return notDeclared;")
	if !r.Ran {
		t.Fatal("expected the line to attempt a run")
	}
	if len(r.Diagnostics) == 0 {
		t.Fatal("expected a diagnostic for the unknown identifier")
	}
}

func TestEvalEmptyLineIsANoOp(t *testing.T) {
	in := New()
	r := in.Eval("   ")
	if r.Ran || r.Defined != "" || len(r.Diagnostics) != 0 {
		t.Errorf("expected a no-op Result for a blank line, got %+v", r)
	}
}
