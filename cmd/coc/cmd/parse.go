package cmd

import (
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/psenchanka/colang/internal/lexer"
	"github.com/psenchanka/colang/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a CO file and print the raw syntax tree",
	Long: `Parse a CO program and print the raw (pre-analysis) syntax tree.

This command is useful for debugging the parser and understanding how CO
source code is structured before name and type resolution.

Examples:
  # Parse a program and dump its tree
  coc parse program.co`,
	Args: cobra.ExactArgs(1),
	RunE: parseProgram,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func parseProgram(_ *cobra.Command, args []string) error {
	filename := args[0]
	cfg := loadConfig()
	locale := activeLocale(cfg)

	src, err := readSource(filename)
	if err != nil {
		return err
	}

	l := lexer.New(filename, src, lexer.WithLocale(locale))
	p := parser.New(l, parser.WithLocale(locale))
	program := p.ParseProgram()

	fmt.Printf("%# v\n", pretty.Formatter(program))

	issues := p.Issues()
	printIssues(issues, src, cfg.includeNotes())
	if hasErrors(issues) {
		os.Exit(1)
	}
	return nil
}
