package semantic

import (
	"sync"

	"github.com/psenchanka/colang/internal/source"
	"github.com/psenchanka/colang/internal/symbols"
)

// bootstrapOnce guards registration of the predeclared primitives' native
// operator methods: IntType/DoubleType/BoolType are package-level
// singletons shared by every Analyzer, so registering onto them more than
// once per process would duplicate every overload candidate.
var bootstrapOnce sync.Once

// bootstrapPrimitives registers the native methods arithmetic and
// comparison operators desugar to, plus the `assign` method every
// reference type carries, on CO's three operator-bearing primitives.
// VoidType receives only `assign`, since a void value can never appear on
// either side of an operator.
func bootstrapPrimitives() {
	bootstrapOnce.Do(func() {
		addArithmetic(symbols.IntType)
		addArithmetic(symbols.DoubleType)
		addLogic(symbols.BoolType)
		addAssign(symbols.IntType)
		addAssign(symbols.DoubleType)
		addAssign(symbols.BoolType)
		addAssign(symbols.VoidType)
		addPrimitiveConstructors(symbols.IntType)
		addPrimitiveConstructors(symbols.DoubleType)
		addPrimitiveConstructors(symbols.BoolType)
	})
}

// addPrimitiveConstructors gives a primitive its native default (zero
// value) and copy constructors, so that "int x;" and "int x = 5;" both
// resolve a constructor the way user-type definitions do. void gets
// neither: a void variable can never be declared.
func addPrimitiveConstructors(t *symbols.Type) {
	t.AddConstructor(symbols.NewConstructor(nil, true, source.Span{}))
	t.AddConstructor(symbols.NewConstructor([]symbols.Parameter{{Name: "other", Type: t}}, true, source.Span{}))
}

func nativeMethod(name string, params []symbols.Parameter, ret symbols.TypeSymbol) *symbols.Method {
	return symbols.NewMethod(name, params, ret, true, source.Span{})
}

func addArithmetic(t *symbols.Type) {
	self := symbols.Parameter{Name: "other", Type: t}
	t.AddMethod(nativeMethod("plus", []symbols.Parameter{self}, t))
	t.AddMethod(nativeMethod("minus", []symbols.Parameter{self}, t))
	t.AddMethod(nativeMethod("multiply", []symbols.Parameter{self}, t))
	t.AddMethod(nativeMethod("divide", []symbols.Parameter{self}, t))
	t.AddMethod(nativeMethod("lessThan", []symbols.Parameter{self}, symbols.BoolType))
	t.AddMethod(nativeMethod("greaterThan", []symbols.Parameter{self}, symbols.BoolType))
	t.AddMethod(nativeMethod("lessOrEqual", []symbols.Parameter{self}, symbols.BoolType))
	t.AddMethod(nativeMethod("greaterOrEqual", []symbols.Parameter{self}, symbols.BoolType))
	t.AddMethod(nativeMethod("equals", []symbols.Parameter{self}, symbols.BoolType))
	t.AddMethod(nativeMethod("notEquals", []symbols.Parameter{self}, symbols.BoolType))
	t.AddMethod(nativeMethod("unaryMinus", nil, t))
}

func addLogic(t *symbols.Type) {
	self := symbols.Parameter{Name: "other", Type: t}
	t.AddMethod(nativeMethod("and", []symbols.Parameter{self}, symbols.BoolType))
	t.AddMethod(nativeMethod("or", []symbols.Parameter{self}, symbols.BoolType))
	t.AddMethod(nativeMethod("equals", []symbols.Parameter{self}, symbols.BoolType))
	t.AddMethod(nativeMethod("notEquals", []symbols.Parameter{self}, symbols.BoolType))
	t.AddMethod(nativeMethod("not", nil, symbols.BoolType))
}

// addAssign registers the `assign` method every type's reference carries:
// one parameter of the plain type, returning the reference to itself.
// Marked RequiresReference so that a plain (non-reference) receiver can
// never resolve it: "x = 5" only type-checks when x's static type is a
// reference.
func addAssign(t *symbols.Type) {
	m := nativeMethod("assign", []symbols.Parameter{{Name: "other", Type: t}}, t.Reference())
	m.MarkRequiresReference()
	t.AddMethod(m)
}

// addUserTypeDefaults registers the auto-generated members every
// non-native (user-defined) type receives: a zero-argument default
// constructor, a copy constructor taking one parameter of the same type,
// and an `assign` method on its reference. All three are native: the
// backend implements them as memberwise construction/copy, never a CO
// source body.
func addUserTypeDefaults(t *symbols.Type) {
	t.AddConstructor(symbols.NewConstructor(nil, true, source.Span{}))
	t.AddConstructor(symbols.NewConstructor([]symbols.Parameter{{Name: "other", Type: t}}, true, source.Span{}))
	addAssign(t)
}

// isCopyConstructorSignature reports whether params is the signature of a copy
// constructor for owner: exactly one parameter whose type equals owner.
func isCopyConstructorSignature(owner *symbols.Type, params []symbols.Parameter) bool {
	return len(params) == 1 && params[0].Type.Underlying() == owner && !params[0].Type.IsReference()
}
