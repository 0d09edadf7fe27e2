package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/psenchanka/colang/internal/lexer"
	"github.com/psenchanka/colang/internal/token"
)

var (
	showPos  bool
	showKind bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a CO file",
	Long: `Tokenize (lex) a CO program and print the resulting tokens.

This command is useful for debugging the lexer and understanding how CO
source code is tokenized.

Examples:
  # Tokenize a program
  coc lex program.co

  # Show token kinds and positions
  coc lex --show-kind --show-pos program.co`,
	Args: cobra.ExactArgs(1),
	RunE: lexProgram,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showKind, "show-kind", false, "show token kind names")
}

func lexProgram(_ *cobra.Command, args []string) error {
	filename := args[0]
	cfg := loadConfig()
	locale := activeLocale(cfg)

	src, err := readSource(filename)
	if err != nil {
		return err
	}

	l := lexer.New(filename, src, lexer.WithLocale(locale), lexer.WithComments())
	for {
		tok := l.Next()
		if tok.Kind == token.EOF {
			break
		}
		printToken(tok)
	}

	issues := l.Issues()
	printIssues(issues, src, cfg.includeNotes())
	if hasErrors(issues) {
		os.Exit(1)
	}
	return nil
}

func printToken(tok token.Token) {
	var output string
	if showKind {
		output = fmt.Sprintf("[%-8s] ", tok.Kind)
	}
	if tok.Literal != "" {
		output += fmt.Sprintf("%q", tok.Literal)
	} else {
		output += tok.Kind.String()
	}
	if showPos {
		output += fmt.Sprintf(" @%s", tok.Span.Start)
	}
	fmt.Println(output)
}
