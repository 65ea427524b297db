// Command tribhasha is the compiler and interactive shell entry point.
package main

import (
	"fmt"
	"os"

	"github.com/tribhasha/tribhasha/cmd/tribhasha/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
