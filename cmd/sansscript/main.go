// Command sansscript is the CLI entry point for the SansScript
// interpreter: run files, start an interactive shell, or dump
// lexer/parser debug output.
package main

import (
	"fmt"
	"os"

	"github.com/omthedev001/sansscript/cmd/sansscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
