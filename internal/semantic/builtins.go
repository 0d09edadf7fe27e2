package semantic

import (
	"github.com/psenchanka/colang/internal/source"
	"github.com/psenchanka/colang/internal/symbols"
)

// builtinFunctions declares the native free functions every CO program can
// call without declaring them: console output, assertions, exponentiation,
// and the two numeric conversion functions casts resolve to. The backend
// maps each to a fixed C helper by its signature string.
func builtinFunctions() []*symbols.Function {
	intP := func(name string) symbols.Parameter { return symbols.Parameter{Name: name, Type: symbols.IntType} }
	dblP := func(name string) symbols.Parameter { return symbols.Parameter{Name: name, Type: symbols.DoubleType} }
	boolP := func(name string) symbols.Parameter { return symbols.Parameter{Name: name, Type: symbols.BoolType} }
	fn := func(name string, params []symbols.Parameter, ret *symbols.Type) *symbols.Function {
		return symbols.NewFunction(name, params, ret, true, source.Span{})
	}

	return []*symbols.Function{
		fn("println", []symbols.Parameter{intP("value")}, symbols.VoidType),
		fn("println", []symbols.Parameter{dblP("value")}, symbols.VoidType),
		fn("println", []symbols.Parameter{boolP("value")}, symbols.VoidType),
		fn("writeInt", []symbols.Parameter{intP("value")}, symbols.VoidType),
		fn("writeIntLn", []symbols.Parameter{intP("value")}, symbols.VoidType),
		fn("writeDouble", []symbols.Parameter{dblP("value")}, symbols.VoidType),
		fn("writeDoubleLn", []symbols.Parameter{dblP("value")}, symbols.VoidType),
		fn("writeBool", []symbols.Parameter{boolP("value")}, symbols.VoidType),
		fn("writeBoolLn", []symbols.Parameter{boolP("value")}, symbols.VoidType),
		fn("assert", []symbols.Parameter{boolP("condition")}, symbols.VoidType),
		fn("pow", []symbols.Parameter{intP("base"), intP("exponent")}, symbols.IntType),
		fn("pow", []symbols.Parameter{dblP("base"), dblP("exponent")}, symbols.DoubleType),
		fn("toInt", []symbols.Parameter{dblP("value")}, symbols.IntType),
		fn("toDouble", []symbols.Parameter{intP("value")}, symbols.DoubleType),
	}
}

// registerBuiltins adds the builtin functions to a freshly created root
// scope, promoting to overload sets exactly the way user-defined functions
// are promoted in pass 3.
func registerBuiltins(root *symbols.Scope) []*symbols.Function {
	fns := builtinFunctions()
	for _, f := range fns {
		existing, ok := root.ResolveLocal(f.Name())
		if !ok {
			root.Define(f)
			continue
		}
		switch prior := existing.(type) {
		case *symbols.OverloadedFunction:
			prior.AddCandidate(f)
		case *symbols.Function:
			root.Replace(symbols.NewOverloadedFunction(f.Name(), prior, f))
		}
	}
	return fns
}
