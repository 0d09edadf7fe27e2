package semantic

import (
	"github.com/psenchanka/colang/internal/diag"
	"github.com/psenchanka/colang/internal/symbols"
)

// argTypes collects the static type of every already-analysed argument,
// the shape symbols.ResolveOverload wants.
func argTypes(args []Expression) []symbols.TypeSymbol {
	types := make([]symbols.TypeSymbol, len(args))
	for i, arg := range args {
		types[i] = arg.Type()
	}
	return types
}

// kindTerm maps a symbol's kind onto the diagnostic Term describing it,
// so messages can name "a function" or "перагружаны метад" in the right
// grammatical form.
func kindTerm(k symbols.Kind) diag.Term {
	switch k {
	case symbols.KindType:
		return diag.TermType
	case symbols.KindField:
		return diag.TermField
	case symbols.KindFunction:
		return diag.TermFunction
	case symbols.KindMethod:
		return diag.TermMethod
	case symbols.KindConstructor:
		return diag.TermConstructor
	case symbols.KindOverloadedFunction:
		return diag.TermOverloadedFunction
	case symbols.KindOverloadedMethod:
		return diag.TermOverloadedMethod
	case symbols.KindNamespace:
		return diag.TermNamespace
	default:
		return diag.TermVariable
	}
}

// anyUnknown reports whether any argument failed analysis earlier: an
// Unknown-typed argument matches every candidate, so resolving an
// overload against it would manufacture a spurious ambiguity out of a
// mistake that was already reported once.
func anyUnknown(args []Expression) bool {
	for _, arg := range args {
		if arg.Type().Underlying() == symbols.Unknown {
			return true
		}
	}
	return false
}

// ambiguityNotes builds one Note per tied candidate, used by both
// AmbiguousOverloadedCall and AmbiguousConversionCandidates diagnostics.
func ambiguityNotes(candidates []symbols.Signature) []diag.Note {
	notes := make([]diag.Note, len(candidates))
	for i, c := range candidates {
		notes[i] = diag.SpanNote(c.DeclSpan(), signatureNoteText(c))
	}
	return notes
}

func signatureNoteText(c symbols.Signature) string {
	text := c.Name() + "("
	for i, p := range c.Params() {
		if i > 0 {
			text += ", "
		}
		text += p.Type.Name()
	}
	text += ")"
	return text
}

// argTypeList renders the static types of a call's arguments for the
// InvalidCallArguments message, e.g. "int, double&".
func argTypeList(args []Expression) string {
	text := ""
	for i, arg := range args {
		if i > 0 {
			text += ", "
		}
		text += arg.Type().Name()
	}
	return text
}

// dereferenceIfNeeded inserts an ImplicitDereference when a by-value
// parameter receives a reference-typed argument.
func dereferenceIfNeeded(arg Expression, want symbols.TypeSymbol) Expression {
	if arg.Type().IsReference() && !want.IsReference() {
		return &ImplicitDereference{Inner: arg, Sp: arg.Span()}
	}
	return arg
}

// adjustArgs pairs each argument with its resolved parameter type,
// inserting implicit dereferences where the parameter expects a plain
// value but the argument is reference-typed.
func adjustArgs(args []Expression, params []symbols.Parameter) []Expression {
	out := make([]Expression, len(args))
	for i, arg := range args {
		out[i] = dereferenceIfNeeded(arg, params[i].Type)
	}
	return out
}
