package cmd

import (
	"fmt"

	"github.com/cwbudde/daedalus-dc/internal/pipeline"
	"github.com/spf13/cobra"
)

var compileVerbose bool

var compileCmd = &cobra.Command{
	Use:   "compile <file|manifest.src>",
	Short: "Run the full analysis pipeline, the entry point a bytecode emitter would sit behind",
	Long: `compile runs the complete analysis pipeline of spec.md §2 — lex, parse,
collect, check — over every file named by a single source file or a .src
manifest (spec.md §6), and reports the merged, deterministically-ordered
diagnostics.

Code generation is out of scope for this core (spec.md §1 Non-goals): on
success this command reports that every file type-checked cleanly and
exits 0, the point at which a downstream bytecode emitter would take over
the validated symbol collection and ASTs.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "print the input and its file count before compiling")
}

func runCompile(_ *cobra.Command, args []string) error {
	input, paths, err := resolveInput(args[0])
	if err != nil {
		return err
	}

	if compileVerbose {
		fmt.Printf("compiling %s (%d file(s))\n", input, len(paths))
	}

	res, err := pipeline.Run(paths, readFile)
	if err != nil {
		return err
	}

	if err := reportDiagnostics(res); err != nil {
		return err
	}

	if !jsonOutput {
		symCount := 0
		if res.Symbols != nil {
			symCount = len(res.Symbols.All())
		}
		fmt.Printf("%s: %d file(s), %d symbol(s), no errors\n", input, len(paths), symCount)
	}
	return nil
}
