package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tribhasha/tribhasha/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive Tribhasha shell",
	Long: `Start an interactive shell: each submitted line is compiled and run
immediately, with function declarations persisting across lines so later
lines can call functions defined earlier in the session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return repl.Run()
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
