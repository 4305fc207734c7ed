package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/daedalus-dc/internal/lexer"
	"github.com/spf13/cobra"
)

var showSpans bool

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a Daedalus source file and print its token stream",
	Long: `Tokenize (lex) a single Daedalus source file and print the resulting
tokens, one per line. Useful for debugging the lexer and for understanding
how a file's bytes are split into tokens.

This command always reads exactly one file directly — it does not expand
a .src manifest, since a token stream is only ever meaningful per file.`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&showSpans, "show-spans", false, "show each token's byte span")
}

func runLex(_ *cobra.Command, args []string) error {
	filename := args[0]
	data, err := readFile(filename)
	if err != nil {
		return err
	}

	toks, warnings, err := lexer.Lex(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lex error: %v\n", err)
		return diagnosticsError(fmt.Errorf("lexing failed"))
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: byte %d: %s\n", w.Offset, w.Reason)
	}

	for _, tok := range toks {
		if showSpans {
			fmt.Printf("%-12s %q [%d,%d)\n", tok.Type, tok.Literal, tok.Span.Start, tok.Span.End)
		} else {
			fmt.Printf("%-12s %q\n", tok.Type, tok.Literal)
		}
	}
	return nil
}
