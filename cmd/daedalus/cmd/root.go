package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// jsonOutput backs the persistent --json flag every subcommand reads,
// matching spec.md §6's Config.json field.
var jsonOutput bool

var rootCmd = &cobra.Command{
	Use:   "daedalus",
	Short: "Front-end compiler for the Daedalus scripting language",
	Long: `daedalus lexes, parses, collects symbols from, and type-checks
Daedalus scripting-language source files (the C-like language used by a
classic game engine's scripting layer) and reports precise, span-annotated
diagnostics.

It does not generate bytecode, link, or optimize: it is the analysis
front end only.`,
	Version: Version,
	// Diagnostics are rendered by reportDiagnostics (terminal or JSON)
	// before a RunE returns its error; cobra's default "Error: ..." plus
	// usage dump would just be noise on top of that.
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "render diagnostics as JSON instead of terminal text")
}
