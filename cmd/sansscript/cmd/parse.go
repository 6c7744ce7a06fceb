package cmd

import (
	"fmt"
	"os"

	"github.com/omthedev001/sansscript/internal/lexer"
	"github.com/omthedev001/sansscript/internal/parser"
	"github.com/omthedev001/sansscript/internal/translit"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a SansScript file or expression and print its AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func parseScript(_ *cobra.Command, args []string) error {
	input, filename, err := readProgramInput(evalExpr, args)
	if err != nil {
		return err
	}

	normalized := translit.Normalize(input)
	tokens, lexErr := lexer.New(filename, normalized).Tokenize()
	if lexErr != nil {
		fmt.Fprintln(os.Stderr, lexErr.Error())
		return fmt.Errorf("lexing failed")
	}

	program, parseErr := parser.New(tokens).Parse()
	if parseErr != nil {
		fmt.Fprintln(os.Stderr, parseErr.Error())
		return fmt.Errorf("parsing failed")
	}

	fmt.Println(program.String())
	return nil
}
