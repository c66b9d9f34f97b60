package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/golox/internal/scanner"
	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <script>",
	Short: "Scan a Lox script and print its tokens, one per line",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func runTokens(_ *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	s := scanner.New(string(source))
	for _, tok := range s.ScanTokens() {
		fmt.Println(tok)
	}
	if s.HadError() {
		for _, e := range s.Errors() {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return exitCode(65)
	}
	return nil
}
