package semantic

import (
	"github.com/psenchanka/colang/internal/ast"
	"github.com/psenchanka/colang/internal/diag"
	"github.com/psenchanka/colang/internal/symbols"
)

// resolveTypeRef maps a raw type expression to a TypeSymbol, building
// reference types on demand. A nil ref (the parser's recovery shape for a
// malformed type) resolves to Unknown without a diagnostic of its own,
// since the parser already reported the syntax error.
func (a *Analyzer) resolveTypeRef(scope *symbols.Scope, ref *ast.TypeReference) symbols.TypeSymbol {
	if ref == nil || ref.Name == "" {
		return symbols.Unknown
	}

	sym, ok := scope.Resolve(ref.Name)
	if !ok {
		a.issue(diag.NameUnknown(a.locale, ref.Sp, ref.Name))
		return symbols.Unknown
	}
	t, ok := sym.(*symbols.Type)
	if !ok {
		a.issue(diag.NotAType(a.locale, ref.Sp, ref.Name))
		return symbols.Unknown
	}

	if !ref.Reference {
		return t
	}
	// A reference's referent is itself already a reference only if someone
	// writes "T&&", which can't happen through this grammar (TypeReference
	// carries a single Reference bool, not a count), and a name that
	// already resolves to a ReferenceType can never occur since Scope only
	// ever holds plain *symbols.Type under a type name. OverreferencedType
	// therefore can't be reached through resolveTypeRef as written; it is
	// reserved for a future extension that allows "T&" to itself be named
	// and referenced again.
	return t.Reference()
}
