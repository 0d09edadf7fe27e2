package backend

import (
	"fmt"
	"strings"

	"github.com/psenchanka/colang/internal/symbols"
)

// nameGen hands out the stable C identifiers non-native symbols are
// emitted under: "co_" plus the sanitised qualified name, with a "_N"
// suffix appended when two qualified names collide after sanitisation
// (or collide by construction, like a type and its constructors). Each
// symbol is named exactly once; repeated lookups return the same name.
type nameGen struct {
	used  map[string]bool
	names map[symbols.Symbol]string
}

func newNameGen() *nameGen {
	return &nameGen{used: map[string]bool{}, names: map[symbols.Symbol]string{}}
}

// nameFor returns sym's C identifier, assigning one from qualified on
// first use.
func (g *nameGen) nameFor(sym symbols.Symbol, qualified string) string {
	if name, ok := g.names[sym]; ok {
		return name
	}
	base := "co_" + sanitize(qualified)
	name := base
	for n := 1; g.used[name]; n++ {
		name = fmt.Sprintf("%s_%d", base, n)
	}
	g.used[name] = true
	g.names[sym] = name
	return name
}

// sanitize maps an arbitrary qualified name onto C identifier characters.
func sanitize(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "_"
	}
	return sb.String()
}
