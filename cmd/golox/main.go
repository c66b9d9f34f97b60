// Command golox runs the Lox tree-walking interpreter: a script file if
// one is given, or an interactive prompt otherwise.
package main

import (
	"os"

	"github.com/cwbudde/golox/cmd/golox/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
