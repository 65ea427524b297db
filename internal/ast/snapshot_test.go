package ast_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/tribhasha/tribhasha/internal/ast"
	"github.com/tribhasha/tribhasha/internal/diag"
	"github.com/tribhasha/tribhasha/internal/lexer"
	"github.com/tribhasha/tribhasha/internal/parser"
)

// TestDumpSnapshot guards the structural dump format the `ast` CLI
// command prints, the way fixture_test.go guards DWScript's own
// interpreter output with go-snaps.
func TestDumpSnapshot(t *testing.T) {
	src := `
function fact(n) {
	if (n < 2) { return 1; }
	return n * fact(n - 1);
}
var result = fact(5);
`
	sink := diag.NewSink(nil)
	toks := lexer.New(src, sink).Tokens()
	prog := parser.New(toks, sink).Parse()
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}

	snaps.MatchSnapshot(t, ast.Dump(prog))
}
