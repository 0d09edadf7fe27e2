package backend

import (
	"fmt"
	"strings"

	"github.com/psenchanka/colang/internal/symbols"
)

// Native entities are mapped to fixed C helpers by their signature string:
// "returnType name(paramTypes)" for functions and
// "returnType container.name(paramTypes)" for methods. A native entity
// missing from its table is an internal compiler error, not a user
// diagnostic: the semantic stage only resolves natives the bootstrap
// registered, so an unmapped one means the two tables drifted apart.

var nativeFunctions = map[string]string{
	"void println(int)":          "_writeIntLn",
	"void println(double)":       "_writeDblLn",
	"void println(bool)":         "_writeBoolLn",
	"void writeInt(int)":         "_writeInt",
	"void writeIntLn(int)":       "_writeIntLn",
	"void writeDouble(double)":   "_writeDbl",
	"void writeDoubleLn(double)": "_writeDblLn",
	"void writeBool(bool)":       "_writeBool",
	"void writeBoolLn(bool)":     "_writeBoolLn",
	"void assert(bool)":          "_assert",
	"int pow(int, int)":          "_powInt",
	"double pow(double, double)": "_powDbl",
	"int toInt(double)":          "_dblToInt",
	"double toDouble(int)":       "_intToDbl",
}

var nativeMethods = map[string]string{
	"int int.plus(int)":            "_add",
	"int int.minus(int)":           "_sub",
	"int int.multiply(int)":        "_mul",
	"int int.divide(int)":          "_div",
	"bool int.lessThan(int)":       "_lt",
	"bool int.greaterThan(int)":    "_gt",
	"bool int.lessOrEqual(int)":    "_le",
	"bool int.greaterOrEqual(int)": "_ge",
	"bool int.equals(int)":         "_eq",
	"bool int.notEquals(int)":      "_ne",
	"int int.unaryMinus()":         "_neg",

	"double double.plus(double)":         "_add",
	"double double.minus(double)":        "_sub",
	"double double.multiply(double)":     "_mul",
	"double double.divide(double)":       "_div",
	"bool double.lessThan(double)":       "_lt",
	"bool double.greaterThan(double)":    "_gt",
	"bool double.lessOrEqual(double)":    "_le",
	"bool double.greaterOrEqual(double)": "_ge",
	"bool double.equals(double)":         "_eq",
	"bool double.notEquals(double)":      "_ne",
	"double double.unaryMinus()":         "_neg",

	"bool bool.and(bool)":       "_and",
	"bool bool.or(bool)":        "_or",
	"bool bool.equals(bool)":    "_eq",
	"bool bool.notEquals(bool)": "_ne",
	"bool bool.not()":           "_not",
}

// functionSignature renders a free function's native-table key.
func functionSignature(fn *symbols.Function) string {
	return fmt.Sprintf("%s %s(%s)", fn.ReturnType().Name(), fn.Name(), paramTypeList(fn.Params()))
}

// methodSignature renders a method's native-table key, qualified by its
// container type.
func methodSignature(m *symbols.Method) string {
	return fmt.Sprintf("%s %s.%s(%s)", m.ReturnType().Name(), m.Owner().Name(), m.Name(), paramTypeList(m.Params()))
}

func paramTypeList(params []symbols.Parameter) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Type.Name()
	}
	return strings.Join(names, ", ")
}

// nativeFunctionName resolves a native free function to its C helper.
func nativeFunctionName(fn *symbols.Function) (string, error) {
	sig := functionSignature(fn)
	name, ok := nativeFunctions[sig]
	if !ok {
		return "", fmt.Errorf("no native mapping for function %q", sig)
	}
	return name, nil
}

// nativeMethodName resolves a native method to its C helper. The assign
// method every reference type carries is handled structurally rather than
// through the table, since its signature mentions the (unbounded) set of
// user type names.
func nativeMethodName(m *symbols.Method) (string, error) {
	if m.RequiresReference() && m.Name() == "assign" {
		return "_assign", nil
	}
	sig := methodSignature(m)
	name, ok := nativeMethods[sig]
	if !ok {
		return "", fmt.Errorf("no native mapping for method %q", sig)
	}
	return name, nil
}
