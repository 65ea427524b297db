package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tribhasha/tribhasha/internal/diag"
	"github.com/tribhasha/tribhasha/internal/jit"
	"github.com/tribhasha/tribhasha/internal/lexer"
	"github.com/tribhasha/tribhasha/internal/lower"
	"github.com/tribhasha/tribhasha/internal/parser"
)

var runEvalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile and execute a Tribhasha program",
	Long: `Compile a Tribhasha program through the full lex → parse → lower →
execute pipeline and run it, exiting 0 on success and 1 on any error,
including a non-zero result from main.

Examples:
  tribhasha run script.tri
  tribhasha run -e "चर य = 10; फलन परीक्षण() { वापस य + 5; }"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runEvalExpr, "eval", "e", "", "run inline code instead of reading from file")
}

func runRun(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(runEvalExpr, args)
	if err != nil {
		return err
	}

	sink := diag.NewSink(os.Stderr)
	toks := lexer.New(input, sink).Tokens()
	prog := parser.New(toks, sink).Parse()
	if sink.HasErrors() {
		os.Exit(1)
	}

	mod := lower.Lower(prog, filename, sink)
	if mod == nil || sink.HasErrors() {
		os.Exit(1)
	}

	if jit.Run(mod, sink) != 0 {
		os.Exit(1)
	}
	return nil
}
