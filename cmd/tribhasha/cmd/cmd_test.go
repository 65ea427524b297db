package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything written to it, mirroring the teacher's own CLI test style
// (cmd/dwscript/cmd/run_unit_test.go).
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestReadSourceFromEvalFlag(t *testing.T) {
	input, filename, err := readSource("चर य = 10;", nil)
	if err != nil {
		t.Fatalf("readSource: %v", err)
	}
	if input != "चर य = 10;" {
		t.Errorf("input = %q, want the eval expression verbatim", input)
	}
	if filename != "<eval>" {
		t.Errorf("filename = %q, want <eval>", filename)
	}
}

func TestReadSourceFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.tri")
	if err := os.WriteFile(path, []byte("return 1;"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	input, filename, err := readSource("", []string{path})
	if err != nil {
		t.Fatalf("readSource: %v", err)
	}
	if input != "return 1;" {
		t.Errorf("input = %q, want file contents", input)
	}
	if filename != path {
		t.Errorf("filename = %q, want %q", filename, path)
	}
}

func TestReadSourceWithNeitherEvalNorFileErrors(t *testing.T) {
	if _, _, err := readSource("", nil); err == nil {
		t.Fatal("expected an error when neither -e nor a file path is given")
	}
}

func TestRunTokensPrintsTokenStream(t *testing.T) {
	oldEval := tokensEvalExpr
	oldColor := tokensColor
	defer func() { tokensEvalExpr = oldEval; tokensColor = oldColor }()
	tokensEvalExpr = "var x = 1;"
	tokensColor = false

	output := captureStdout(t, func() {
		if err := runTokens(tokensCmd, nil); err != nil {
			t.Fatalf("runTokens: %v", err)
		}
	})

	for _, want := range []string{"VAR", "IDENT", "ASSIGN", "INT", "END_OF_FILE"} {
		if !strings.Contains(output, want) {
			t.Errorf("token output missing %q; got:\n%s", want, output)
		}
	}
}

func TestRunTokensWithColorPrintsHighlightedSourceFirst(t *testing.T) {
	oldEval := tokensEvalExpr
	oldColor := tokensColor
	defer func() { tokensEvalExpr = oldEval; tokensColor = oldColor }()
	tokensEvalExpr = "var x = 1;"
	tokensColor = true

	output := captureStdout(t, func() {
		if err := runTokens(tokensCmd, nil); err != nil {
			t.Fatalf("runTokens: %v", err)
		}
	})

	if !strings.Contains(output, "---") {
		t.Errorf("expected the --- separator between the colored source and the token list; got:\n%s", output)
	}
}

func TestRunASTDumpsSyntaxTree(t *testing.T) {
	oldEval := astEvalExpr
	defer func() { astEvalExpr = oldEval }()
	astEvalExpr = "var x = 1 + 2;"

	output := captureStdout(t, func() {
		if err := runAST(astCmd, nil); err != nil {
			t.Fatalf("runAST: %v", err)
		}
	})

	for _, want := range []string{"Program", "VarDecl x", "Binary (+)"} {
		if !strings.Contains(output, want) {
			t.Errorf("AST dump missing %q; got:\n%s", want, output)
		}
	}
}
