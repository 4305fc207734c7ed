package cmd

import (
	"fmt"

	"github.com/cwbudde/daedalus-dc/internal/pipeline"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file|manifest.src>",
	Short: "Run the full lex/parse/collect/check pipeline and report diagnostics",
	Long: `Runs every core stage (spec.md §2) and reports every diagnostic found.
check runs the same pipeline as compile and, like compile, produces no
intermediate representation; the two differ only in their success
summary line. It is the validate-only entry point a CI job or editor
integration would call.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
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

	if !jsonOutput {
		fmt.Printf("%d file(s) checked, no errors\n", len(paths))
	}
	return nil
}
