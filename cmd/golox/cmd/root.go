// Package cmd wires the golox pipeline packages into a cobra CLI: a bare
// invocation (or the explicit `run` subcommand) drives the scan → parse
// → resolve → evaluate pipeline against a file or an interactive prompt,
// and `tokens` exposes the scanner alone for debugging, the way the
// teacher wires its own `lex` subcommand around the same pipeline.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "golox [script]",
	Short: "A tree-walking interpreter for Lox",
	Long: `golox is a tree-walking interpreter for the Lox programming language.

Run a script file:

  golox script.lox

Or invoke with no arguments to start an interactive prompt; declarations
made at one prompt remain visible to later ones.`,
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) > 1 {
			return exitCode(64)
		}
		return nil
	},
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(tokensCmd)
}

// exitCode is an error that also carries the process exit code the
// pipeline stage that raised it demands: 64 for a CLI usage error, 65
// for a scan/parse/resolve error, 70 for a runtime error. main.go turns
// the value Execute returns into os.Exit's argument directly.
type exitCode int

func (c exitCode) Error() string { return fmt.Sprintf("exit status %d", int(c)) }

// Execute runs golox and returns the process exit code.
func Execute() int {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	if code, ok := err.(exitCode); ok {
		if code == 64 {
			fmt.Fprintln(os.Stderr, "Usage: golox [script]")
		}
		return int(code)
	}
	fmt.Fprintln(os.Stderr, err)
	return 64
}
