package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/config"
	loxerrors "github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/interp"
	"github.com/cwbudde/golox/internal/parser"
	"github.com/cwbudde/golox/internal/resolver"
	"github.com/cwbudde/golox/internal/scanner"
	"github.com/spf13/cobra"
)

var echoResults bool

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run a Lox script, or start an interactive prompt",
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) > 1 {
			return exitCode(64)
		}
		return nil
	},
	RunE: runScript,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&echoResults, "echo", false, "echo the value of bare expression statements in the REPL")
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if cmd.Flags().Changed("echo") {
		cfg.EchoExpressionResults = echoResults
	}

	if len(args) == 1 {
		return runFile(cfg, args[0])
	}
	return runPrompt(cfg)
}

// runFile reads path and runs it once through a fresh interpreter,
// returning the exit-code-carrying error §6 demands on failure.
func runFile(cfg config.Config, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	i := interp.New(interp.WithStdout(os.Stdout), interp.WithMaxCallDepth(cfg.MaxCallDepth))

	stmts, staticErr := compile(string(source), i)
	if staticErr {
		return exitCode(65)
	}

	if err := i.Interpret(stmts); err != nil {
		reportRuntimeError(err)
		return exitCode(70)
	}
	return nil
}

// runPrompt drives the REPL: one persistent interpreter survives across
// lines, so a function or variable declared at one prompt is visible to
// later ones, per §6.
func runPrompt(cfg config.Config) error {
	i := interp.New(interp.WithStdout(os.Stdout), interp.WithMaxCallDepth(cfg.MaxCallDepth))

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stdout, cfg.Prompt)
		if !in.Scan() {
			break
		}
		line := in.Text()

		stmts, staticErr := compile(line, i)
		if staticErr {
			continue
		}

		if cfg.EchoExpressionResults && len(stmts) == 1 {
			if exprStmt, ok := stmts[0].(*ast.ExpressionStmt); ok {
				value, err := i.EvaluateExpr(exprStmt.Expression)
				if err != nil {
					reportRuntimeError(err)
					continue
				}
				fmt.Fprintln(os.Stdout, interp.Stringify(value))
				continue
			}
		}

		if err := i.Interpret(stmts); err != nil {
			reportRuntimeError(err)
		}
	}
	return nil
}

// compile runs the scan → parse → resolve stages against source, wiring
// their distance output into i. The bool result reports whether any
// stage found an error, in which case the caller must not evaluate.
func compile(source string, i *interp.Interpreter) ([]ast.Stmt, bool) {
	s := scanner.New(source)
	tokens := s.ScanTokens()
	if s.HadError() {
		for _, e := range s.Errors() {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return nil, true
	}

	p := parser.New(tokens)
	stmts := p.Parse()
	if p.HadError() {
		for _, e := range p.Errors() {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return nil, true
	}

	r := resolver.New(i)
	r.Resolve(stmts)
	for _, w := range r.Warnings() {
		fmt.Fprintln(os.Stderr, w.String())
	}
	if r.HadError() {
		for _, e := range r.Errors() {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return nil, true
	}

	return stmts, false
}

func reportRuntimeError(err error) {
	if rerr, ok := err.(*loxerrors.RuntimeError); ok {
		fmt.Fprintln(os.Stderr, rerr.Report())
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
