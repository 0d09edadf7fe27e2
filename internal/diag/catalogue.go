package diag

import (
	_ "embed"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Locale selects which language an Issue's message is rendered in. CO ships
// three locales out of the box; callers pick one through $CO_LOCALE, the
// --locale flag, or the process locale.
type Locale string

const (
	EN Locale = "en"
	BE Locale = "be"
	RU Locale = "ru"
)

// DefaultLocale is used when the environment and CLI flags don't name one.
const DefaultLocale = EN

//go:embed locales/en.yaml
var enCatalogue []byte

//go:embed locales/be.yaml
var beCatalogue []byte

//go:embed locales/ru.yaml
var ruCatalogue []byte

type messageTable map[Code]string

var catalogues map[Locale]messageTable

func init() {
	catalogues = map[Locale]messageTable{
		EN: loadCatalogue(enCatalogue),
		BE: loadCatalogue(beCatalogue),
		RU: loadCatalogue(ruCatalogue),
	}
}

func loadCatalogue(data []byte) messageTable {
	table := messageTable{}
	if err := yaml.Unmarshal(data, &table); err != nil {
		// The catalogues are embedded and fixed at build time; a parse
		// failure here is a programming error, not a user-facing one.
		panic(fmt.Sprintf("diag: malformed locale catalogue: %v", err))
	}
	return table
}

// ValidLocale reports whether name is one of the locales CO ships.
func ValidLocale(name string) bool {
	_, ok := catalogues[Locale(name)]
	return ok
}

// render looks up code's template in locale and formats it with args,
// falling back to English if either the locale or the code is missing from
// its table (a locale catalogue may lag behind newly added codes).
func render(locale Locale, code Code, args ...any) string {
	table, ok := catalogues[locale]
	if !ok {
		table = catalogues[DefaultLocale]
	}
	tmpl, ok := table[code]
	if !ok {
		tmpl = catalogues[DefaultLocale][code]
	}
	if tmpl == "" {
		return string(code)
	}
	return fmt.Sprintf(tmpl, args...)
}
