package cmd

import (
	"fmt"
	"os"

	"github.com/omthedev001/sansscript/internal/lexer"
	"github.com/omthedev001/sansscript/internal/translit"
	"github.com/spf13/cobra"
)

var (
	showPos  bool
	showType bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a SansScript file or expression",
	Long: `Transliterate and tokenize a SansScript program and print the
resulting tokens. Useful for debugging the lexer and the
Devanagari-to-ITRANS transliteration pass.`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
}

func lexScript(_ *cobra.Command, args []string) error {
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

	for _, tok := range tokens {
		printToken(tok)
	}
	return nil
}

func printToken(tok lexer.Token) {
	var output string
	if showType {
		output = fmt.Sprintf("[%-10s]", tok.Kind)
	}
	output += " " + tok.String()
	if showPos {
		output += fmt.Sprintf(" @%d:%d", tok.Span.Start.Line+1, tok.Span.Start.Column)
	}
	fmt.Println(output)
}
