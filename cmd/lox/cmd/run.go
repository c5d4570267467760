package cmd

import (
	"fmt"
	"os"

	loxerrors "github.com/jdpolicano/lox/internal/errors"
	"github.com/jdpolicano/lox/internal/interp"
	"github.com/jdpolicano/lox/internal/lexer"
	"github.com/jdpolicano/lox/internal/parser"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a lox program from a file or inline expression",
	Long: `Execute a lox program from a file or inline expression.

Examples:
  # Run a script file
  lox run script.lox

  # Evaluate an inline expression
  lox run -e "print 1 + 2;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	var input string

	switch {
	case evalExpr != "":
		input = evalExpr
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		input = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	tokens, err := lexer.ScanTokens(input)
	if err != nil {
		loxerrors.Report(os.Stderr, []error{err})
		return fmt.Errorf("scanning failed")
	}

	p := parser.New(tokens)
	stmts, parseErrs := p.ParseProgram()
	if len(parseErrs) > 0 {
		loxerrors.Report(os.Stderr, parseErrs)
		return fmt.Errorf("parsing failed with %d error(s)", len(parseErrs))
	}
	for _, w := range p.Warnings() {
		fmt.Fprintln(os.Stderr, "Warning:", w)
	}

	in := interp.New()
	if err := in.Interpret(stmts); err != nil {
		loxerrors.Report(os.Stderr, []error{err})
		return fmt.Errorf("runtime error")
	}

	return nil
}
