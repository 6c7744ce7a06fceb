package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/omthedev001/sansscript/internal/config"
	"github.com/omthedev001/sansscript/internal/sansscript"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive SansScript shell",
	Long: `Start a read-eval-print loop against a single shared SansScript
environment, the way the original shell.py REPL does: each line is run
against the same global symbol table, so definitions and assignments
persist across inputs.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	cfg, cfgErr := config.Load(".sansscript.yaml")
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "warning: could not read .sansscript.yaml: %v\n", cfgErr)
		cfg = config.Default()
	}

	runtime := sansscript.NewNativeWithSearchPaths(cfg.IncludePaths)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(cfg.Prompt)
		if !scanner.Scan() {
			fmt.Println("\nExiting SansScript shell...")
			return nil
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		value, err := runtime.Run("<stdin>", line)
		if err != nil {
			fmt.Println(err.Error())
			continue
		}
		fmt.Println(value.Repr())
	}
}
