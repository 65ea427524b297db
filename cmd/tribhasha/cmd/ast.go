package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tribhasha/tribhasha/internal/ast"
	"github.com/tribhasha/tribhasha/internal/diag"
	"github.com/tribhasha/tribhasha/internal/lexer"
	"github.com/tribhasha/tribhasha/internal/parser"
)

var astEvalExpr string

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Parse a Tribhasha file or expression and print its syntax tree",
	Long: `Parse a Tribhasha program and print a structural dump of the resulting
abstract syntax tree — useful for debugging the parser and the counted-
for-loop desugaring.

Examples:
  tribhasha ast script.tri
  tribhasha ast -e "के_लिए (चर i = 0; i < 10; i = i + 1) { }"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
	astCmd.Flags().StringVarP(&astEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func runAST(cmd *cobra.Command, args []string) error {
	input, _, err := readSource(astEvalExpr, args)
	if err != nil {
		return err
	}

	sink := diag.NewSink(os.Stderr)
	toks := lexer.New(input, sink).Tokens()
	prog := parser.New(toks, sink).Parse()

	fmt.Print(ast.Dump(prog))

	if sink.HasErrors() {
		os.Exit(1)
	}
	return nil
}
