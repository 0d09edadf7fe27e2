package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/psenchanka/colang/internal/backend"
	"github.com/psenchanka/colang/internal/lexer"
	"github.com/psenchanka/colang/internal/parser"
	"github.com/psenchanka/colang/internal/semantic"
)

var (
	outputFile  string
	dumpSymbols bool
	buildTrace  bool
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Compile a CO file to C",
	Long: `Compile a CO program to a single self-contained C99 translation unit.

The emitted C includes everything the program needs: struct typedefs for
user types, the native operator macros and I/O helpers, and a main that
calls the program's entry point. Any C99 compiler can build the result.

Exit codes: 0 on success, 1 when the program has errors, 2 on an
internal compiler error.

Examples:
  # Compile a program
  coc build program.co

  # Compile with a custom output path
  coc build program.co -o out/program.c

  # Render diagnostics in Russian
  coc build program.co --locale ru`,
	Args: cobra.ExactArgs(1),
	RunE: buildProgram,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: <input>.c)")
	buildCmd.Flags().BoolVar(&dumpSymbols, "dump-symbols", false, "print the resolved root namespace after analysis")
	buildCmd.Flags().BoolVar(&buildTrace, "trace", false, "trace compilation stages to stderr")
}

func buildProgram(_ *cobra.Command, args []string) error {
	filename := args[0]
	cfg := loadConfig()
	locale := activeLocale(cfg)

	src, err := readSource(filename)
	if err != nil {
		return err
	}

	sessionID := uuid.NewString()
	if buildTrace {
		fmt.Fprintf(os.Stderr, "[%s] compiling %s (locale %s)\n", sessionID, filename, locale)
	}

	l := lexer.New(filename, src, lexer.WithLocale(locale))
	p := parser.New(l, parser.WithLocale(locale))
	program := p.ParseProgram()
	issues := p.Issues()

	if buildTrace {
		fmt.Fprintf(os.Stderr, "[%s] parsed %d definition(s), %d front-end issue(s)\n", sessionID, len(program.Definitions), len(issues))
	}

	analyzer := semantic.New(program, semantic.WithLocale(locale))
	typed := analyzer.Analyze()
	issues = append(issues, analyzer.Issues()...)

	if dumpSymbols {
		printSymbolDump(typed)
	}

	printIssues(issues, src, cfg.includeNotes())
	if hasErrors(issues) {
		os.Exit(1)
	}

	if buildTrace {
		fmt.Fprintf(os.Stderr, "[%s] analysis clean, emitting C\n", sessionID)
	}

	out, err := backend.New(backend.WithBuildID(sessionID)).Emit(typed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "internal compiler error: %v\n", err)
		os.Exit(2)
	}

	outFile := outputPath(filename, cfg)
	if err := os.WriteFile(outFile, out, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outFile, err)
	}

	if buildTrace {
		fmt.Fprintf(os.Stderr, "[%s] wrote %s (%d bytes)\n", sessionID, outFile, len(out))
	}
	return nil
}

// outputPath picks the emitted file's path: the -o flag, then the project
// config, then the input path with its extension replaced by .c.
func outputPath(filename string, cfg *config) string {
	if outputFile != "" {
		return outputFile
	}
	if cfg.Output != "" {
		return cfg.Output
	}
	ext := filepath.Ext(filename)
	if ext != "" {
		return strings.TrimSuffix(filename, ext) + ".c"
	}
	return filename + ".c"
}
