// Package cmd is the cobra command tree for the lox CLI: a root
// command holding version metadata plus a `run` subcommand.
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

var rootCmd = &cobra.Command{
	Use:   "lox",
	Short: "A tree-walking interpreter for the lox scripting language",
	Long: `lox runs programs written in a small, dynamically-typed scripting
language in the Lox family: numbers, strings, booleans, and nil;
global and block-scoped variables; first-class functions with lexical
closures; and the usual arithmetic, comparison, and control-flow
operators.`,
	Version: Version,
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
}
