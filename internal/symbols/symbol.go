// Package symbols implements CO's symbol and type model: the capability
// set every named entity (type, variable, function, method, constructor,
// overload set, namespace) exposes to name resolution, type resolution,
// and the expression/statement analysers.
package symbols

import "github.com/psenchanka/colang/internal/source"

// Kind identifies what a Symbol denotes, for diagnostics and for
// exhaustive switches across the analyser.
type Kind int

const (
	KindType Kind = iota
	KindVariable
	KindField
	KindFunction
	KindMethod
	KindConstructor
	KindOverloadedFunction
	KindOverloadedMethod
	KindNamespace
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindVariable:
		return "variable"
	case KindField:
		return "field"
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	case KindConstructor:
		return "constructor"
	case KindOverloadedFunction:
		return "overloaded function"
	case KindOverloadedMethod:
		return "overloaded method"
	default:
		return "namespace"
	}
}

// Symbol is implemented by every named entity a Scope can hold.
type Symbol interface {
	Name() string
	Kind() Kind
	DeclSpan() source.Span
}
