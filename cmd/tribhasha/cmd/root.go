package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tribhasha/tribhasha/internal/repl"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "tribhasha",
	Short: "Tribhasha compiler and REPL",
	Long: `tribhasha is a Go implementation of the Tribhasha programming language.

Tribhasha is a small imperative language whose keywords are available in
three surface languages — English, Hindi, and Assamese — resolving to the
same canonical grammar:
  - Variables, functions, and the usual arithmetic/comparison operators
  - if/else, while, and a counted for loop desugared into while
  - A uniform floating-point scalar value model at the IR level

This is an original implementation grounded on SirCodeKnight/tribhasha's
lexer, parser and IR design.

Invoked with no subcommand, it starts the interactive shell.`,
	Version: Version,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return repl.Run()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}

// readSource resolves the input for a subcommand: either the single
// positional file argument, or the inline -e/--eval expression.
func readSource(evalExpr string, args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], readErr)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e/--eval for inline code")
}
