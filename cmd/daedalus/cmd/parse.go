package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/daedalus-dc/internal/diag"
	"github.com/cwbudde/daedalus-dc/internal/lexer"
	"github.com/cwbudde/daedalus-dc/internal/parser"
	"github.com/cwbudde/daedalus-dc/internal/source"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a Daedalus source file and report its declaration count or parse errors",
	Long: `Lex and parse a single Daedalus source file, printing a summary of the
declarations recovered and any structured parse errors (spec.md §4.3).`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	filename := args[0]
	data, err := readFile(filename)
	if err != nil {
		return err
	}

	db := source.NewDatabase()
	id := db.Add(filename, data)

	toks, _, lexErr := lexer.Lex(data)
	if lexErr != nil {
		fmt.Fprintf(os.Stderr, "lex error: %v\n", lexErr)
		return diagnosticsError(fmt.Errorf("parsing failed"))
	}

	decls, perrs := parser.Parse(toks)
	if len(perrs) > 0 {
		var diags []diag.Diagnostic
		for _, pe := range perrs {
			diags = append(diags, diag.FromParseError(id, pe))
		}
		diag.Sort(diags)
		if jsonOutput {
			out, err := diag.RenderJSON(diags)
			if err != nil {
				return err
			}
			fmt.Println(out)
		} else {
			fmt.Fprintln(os.Stderr, diag.RenderTerminal(db, diags, false))
		}
		return diagnosticsError(fmt.Errorf("parsing failed with %d error(s)", len(perrs)))
	}

	fmt.Printf("parsed %d declaration(s) from %s\n", len(decls), filename)
	return nil
}
