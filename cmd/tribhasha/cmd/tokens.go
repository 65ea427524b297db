package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tribhasha/tribhasha/internal/diag"
	"github.com/tribhasha/tribhasha/internal/highlight"
	"github.com/tribhasha/tribhasha/internal/lexer"
	"github.com/tribhasha/tribhasha/pkg/token"
)

var (
	tokensEvalExpr string
	tokensColor    bool
)

var tokensCmd = &cobra.Command{
	Use:     "tokens [file]",
	Aliases: []string{"lex"},
	Short:   "Tokenize a Tribhasha file or expression",
	Long: `Tokenize (lex) a Tribhasha program and print the resulting tokens, one
per line, in the form:

  <TOKEN_KIND> <lexeme> (line N)

Examples:
  tribhasha tokens script.tri
  tribhasha tokens -e "चर य = 10;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().StringVarP(&tokensEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	tokensCmd.Flags().BoolVar(&tokensColor, "color", false, "print a syntax-colored rendering of the source above the token list")
}

func runTokens(cmd *cobra.Command, args []string) error {
	input, _, err := readSource(tokensEvalExpr, args)
	if err != nil {
		return err
	}

	if tokensColor {
		fmt.Println(highlight.ANSI(input))
		fmt.Println("---")
	}

	sink := diag.NewSink(os.Stderr)
	toks := lexer.New(input, sink).Tokens()
	for _, t := range toks {
		fmt.Println(t.String())
		if t.Kind == token.EOF {
			break
		}
	}

	if sink.HasErrors() {
		os.Exit(1)
	}
	return nil
}
