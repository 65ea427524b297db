package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestSinkAccumulatesAndStreams(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf)
	if s.HasErrors() {
		t.Fatal("new sink should start empty")
	}

	s.Lexical(1, "bad character %q", '@')
	s.Parse(2, "expected %s", "')'")
	s.Lowering(3, "unknown variable %q", "x")
	s.Link(0, "program exited with code %d", 7)

	if !s.HasErrors() {
		t.Fatal("expected HasErrors to be true after reporting")
	}
	if len(s.Diagnostics()) != 4 {
		t.Fatalf("got %d diagnostics, want 4", len(s.Diagnostics()))
	}

	for _, want := range []string{"lexical error", "parse error", "lowering error", "execution error"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("streamed output missing %q; got:\n%s", want, buf.String())
		}
	}
}

func TestSinkWithNilWriterOnlyAccumulates(t *testing.T) {
	s := NewSink(nil)
	s.Parse(5, "unexpected token")
	if len(s.Diagnostics()) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(s.Diagnostics()))
	}
}

func TestDiagnosticKindString(t *testing.T) {
	cases := map[Kind]string{
		Lexical:  "lexical error",
		Parse:    "parse error",
		Lowering: "lowering error",
		Link:     "execution error",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestSinkStringRendersInOrder(t *testing.T) {
	s := NewSink(nil)
	s.Lexical(1, "first")
	s.Parse(2, "second")
	out := s.String()
	firstIdx := strings.Index(out, "first")
	secondIdx := strings.Index(out, "second")
	if firstIdx == -1 || secondIdx == -1 || firstIdx > secondIdx {
		t.Errorf("String() did not render diagnostics in report order:\n%s", out)
	}
}
