package cmd

import (
	"fmt"

	"github.com/cwbudde/daedalus-dc/internal/pipeline"
	"github.com/spf13/cobra"
)

var collectCmd = &cobra.Command{
	Use:   "collect <file|manifest.src>",
	Short: "Lex, parse, and collect symbols from a source file or manifest",
	Long: `Runs the full pipeline (including type checking) and prints the
fully-qualified name and kind of every symbol collected (spec.md §4.4),
in order of appearance. Files with parse errors are excluded from
collection, matching spec.md §7's "a file with any parse error does not
contribute to the type-checker input" (collection follows the same rule).
When any error diagnostic (lex, parse, or type check) is reported, the
diagnostics are printed and the symbol list is not.`,
	Args: cobra.ExactArgs(1),
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)
}

func runCollect(_ *cobra.Command, args []string) error {
	_, paths, err := resolveInput(args[0])
	if err != nil {
		return err
	}

	res, err := pipeline.Run(paths, readFile)
	if err != nil {
		return err
	}

	if err := reportDiagnostics(res); err != nil {
		return err
	}

	if res.Symbols != nil {
		for _, sym := range res.Symbols.All() {
			fmt.Printf("%-8s %s\n", sym.Kind, sym.FQN)
		}
	}
	return nil
}
