package cmd

import (
	"fmt"
	"os"

	"github.com/omthedev001/sansscript/internal/config"
	"github.com/omthedev001/sansscript/internal/sansscript"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a SansScript file or expression",
	Long: `Execute a SansScript program from a file or inline expression.

Examples:
  # Run a script file
  sansscript run script.ss

  # Evaluate an inline expression
  sansscript run -e "mudrayati('namaste')"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := readProgramInput(evalExpr, args)
	if err != nil {
		return err
	}

	cfg, cfgErr := config.Load(".sansscript.yaml")
	if cfgErr != nil {
		cfg = config.Default()
	}

	runtime := sansscript.NewNativeWithSearchPaths(cfg.IncludePaths)
	value, runErr := runtime.Run(filename, input)
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr.Error())
		return fmt.Errorf("execution failed")
	}

	if verbose {
		fmt.Println(value.Repr())
	}
	return nil
}

func readProgramInput(eval string, args []string) (input, filename string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if len(args) == 1 {
		content, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], readErr)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}
