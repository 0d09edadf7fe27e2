package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/psenchanka/colang/internal/diag"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	localeFlag string
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "coc",
	Short: "CO compiler",
	Long: `coc compiles CO, a small statically-typed imperative language, to a
single self-contained C99 translation unit.

CO has primitive numeric/boolean types, user-defined value types with
fields, methods, and constructors, reference types, free functions with
overloading, and if/else/while/return control flow. Diagnostics are
emitted with stable E-codes and rendered in English, Belarusian, or
Russian.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&localeFlag, "locale", "", "diagnostic locale (en, be, ru)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI colors in diagnostics")
}

// activeLocale resolves the diagnostic locale: the --locale flag wins,
// then $CO_LOCALE, then the project config, then the process locale, then
// the default.
func activeLocale(cfg *config) diag.Locale {
	for _, candidate := range []string{localeFlag, os.Getenv("CO_LOCALE"), cfg.Locale, processLocale()} {
		if candidate != "" && diag.ValidLocale(candidate) {
			return diag.Locale(candidate)
		}
	}
	return diag.DefaultLocale
}

// processLocale extracts the two-letter language from $LC_ALL/$LANG style
// values ("ru_RU.UTF-8" yields "ru").
func processLocale() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		if i := strings.IndexAny(v, "_."); i > 0 {
			v = v[:i]
		}
		return v
	}
	return ""
}

// colorOutput reports whether diagnostics written to stderr should carry
// ANSI colors: only when stderr is a terminal and --no-color is off.
func colorOutput() bool {
	if noColor {
		return false
	}
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

func readSource(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(content), nil
}

// printIssues renders issues to stderr in the active locale's formatting.
func printIssues(issues []diag.Issue, src string, withNotes bool) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprint(os.Stderr, diag.FormatAll(issues, src, colorOutput(), withNotes))
}

func hasErrors(issues []diag.Issue) bool {
	for _, issue := range issues {
		if issue.Severity == diag.Error {
			return true
		}
	}
	return false
}
