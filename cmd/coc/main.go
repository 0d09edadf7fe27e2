// Command coc is the CO compiler driver: it ties the lexer, parser,
// semantic analyser, and C backend into a single command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/psenchanka/colang/cmd/coc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
