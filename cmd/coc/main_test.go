package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/psenchanka/colang/cmd/coc/cmd"
)

// cocMain is the entry point testscript re-executes the test binary
// through, so the scripts below drive the real CLI end to end: real flag
// parsing, real exit codes, real files.
func cocMain() int {
	if err := cmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	return 0
}

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"coc": cocMain,
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
