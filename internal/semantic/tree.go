// Package semantic turns a raw syntax tree into a typed, fully resolved
// program: every name looked up, every overload resolved, every implicit
// conversion made explicit, paired with the diagnostics produced along the
// way.
package semantic

import (
	"github.com/psenchanka/colang/internal/source"
	"github.com/psenchanka/colang/internal/symbols"
)

// Expression is implemented by every node of the typed tree that produces
// a value. Unlike the raw tree, every typed expression already knows its
// Type.
type Expression interface {
	Span() source.Span
	Type() symbols.TypeSymbol
}

// Statement is implemented by every typed statement.
type Statement interface {
	Span() source.Span
}

// IntLiteral is a bounds-checked 32-bit integer constant.
type IntLiteral struct {
	Value int32
	Sp    source.Span
}

func (n *IntLiteral) Span() source.Span      { return n.Sp }
func (n *IntLiteral) Type() symbols.TypeSymbol { return symbols.IntType }

// DoubleLiteral is a bounds-checked binary64 constant.
type DoubleLiteral struct {
	Value float64
	Sp    source.Span
}

func (n *DoubleLiteral) Span() source.Span      { return n.Sp }
func (n *DoubleLiteral) Type() symbols.TypeSymbol { return symbols.DoubleType }

// BoolLiteral is "true" or "false".
type BoolLiteral struct {
	Value bool
	Sp    source.Span
}

func (n *BoolLiteral) Span() source.Span      { return n.Sp }
func (n *BoolLiteral) Type() symbols.TypeSymbol { return symbols.BoolType }

// VariableRef names a variable. It always yields a reference-typed result:
// if the variable's declared type is already a T&, that's its type as-is;
// otherwise it's the reference to the variable's plain type, since a named
// variable always denotes storage that can be assigned through.
type VariableRef struct {
	Var *symbols.Variable
	Sp  source.Span
}

func (n *VariableRef) Span() source.Span { return n.Sp }
func (n *VariableRef) Type() symbols.TypeSymbol {
	t := n.Var.Type()
	if t.IsReference() {
		return t
	}
	return t.Underlying().Reference()
}

// ThisRef is the "this" keyword inside a method or constructor body; it is
// always reference-typed.
type ThisRef struct {
	Ref *symbols.ReferenceType
	Sp  source.Span
}

func (n *ThisRef) Span() source.Span      { return n.Sp }
func (n *ThisRef) Type() symbols.TypeSymbol { return n.Ref }

// FunctionRef and OverloadedFunctionRef denote a free function (or its
// overload set) used as a callee, before call resolution picks a concrete
// candidate. Neither is a value in its own right, so Type reports Unknown;
// nothing ever needs to convert one to a target type.
type FunctionRef struct {
	Fn *symbols.Function
	Sp source.Span
}

func (n *FunctionRef) Span() source.Span      { return n.Sp }
func (n *FunctionRef) Type() symbols.TypeSymbol { return symbols.Unknown }

type OverloadedFunctionRef struct {
	Set *symbols.OverloadedFunction
	Sp  source.Span
}

func (n *OverloadedFunctionRef) Span() source.Span      { return n.Sp }
func (n *OverloadedFunctionRef) Type() symbols.TypeSymbol { return symbols.Unknown }

// FunctionCall is a resolved call to a free function.
type FunctionCall struct {
	Fn   *symbols.Function
	Args []Expression
	Sp   source.Span
}

func (n *FunctionCall) Span() source.Span      { return n.Sp }
func (n *FunctionCall) Type() symbols.TypeSymbol { return n.Fn.ReturnType() }

// MethodCall is a resolved call to a method, bound to its receiving
// instance (already reference-typed if the method requires that).
type MethodCall struct {
	Method   *symbols.Method
	Instance Expression
	Args     []Expression
	Sp       source.Span
}

func (n *MethodCall) Span() source.Span      { return n.Sp }
func (n *MethodCall) Type() symbols.TypeSymbol { return n.Method.ReturnType() }

// ConstructorCall builds a new instance of a type. It is the result of a
// cast expression resolved to a constructor; variable-definition sites use
// VariableConstructorCall instead.
type ConstructorCall struct {
	Ctor *symbols.Constructor
	Args []Expression
	Sp   source.Span
}

func (n *ConstructorCall) Span() source.Span      { return n.Sp }
func (n *ConstructorCall) Type() symbols.TypeSymbol { return n.Ctor.Owner() }

// ConversionCall is a cast resolved to a named (non-constructor) conversion
// function rather than a constructor.
type ConversionCall struct {
	Fn   *symbols.Function
	Arg  Expression
	Sp   source.Span
}

func (n *ConversionCall) Span() source.Span      { return n.Sp }
func (n *ConversionCall) Type() symbols.TypeSymbol { return n.Fn.ReturnType() }

// FieldAccess reads a field off an instance. Accessing a field through a
// reference instance yields a reference to the field (so it can itself be
// assigned through); accessing it through a plain value yields a plain
// rvalue copy of the field's type.
type FieldAccess struct {
	Instance Expression
	Field    *symbols.Field
	Sp       source.Span
}

func (n *FieldAccess) Span() source.Span { return n.Sp }
func (n *FieldAccess) Type() symbols.TypeSymbol {
	if n.Instance.Type().IsReference() {
		return n.Field.Type().Underlying().Reference()
	}
	return n.Field.Type()
}

// ImplicitDereference drops a reference when an rvalue is needed,
// recorded explicitly in the typed tree so the backend's job stays
// mechanical rather than needing its own conversion logic.
type ImplicitDereference struct {
	Inner Expression
	Sp    source.Span
}

func (n *ImplicitDereference) Span() source.Span      { return n.Sp }
func (n *ImplicitDereference) Type() symbols.TypeSymbol { return n.Inner.Type().Underlying() }

// Invalid stands in for an expression that failed analysis; its type is
// Unknown, which silently satisfies every conversion check so one root
// cause does not cascade into a pile of unrelated diagnostics.
type Invalid struct {
	Sp source.Span
}

func (n *Invalid) Span() source.Span      { return n.Sp }
func (n *Invalid) Type() symbols.TypeSymbol { return symbols.Unknown }

// ExprStatement evaluates an expression for its side effect.
type ExprStatement struct {
	Expr Expression
	Sp   source.Span
}

func (n *ExprStatement) Span() source.Span { return n.Sp }

// Block is a sequence of statements with its own lexical scope.
type Block struct {
	Statements []Statement
	Sp         source.Span
}

func (n *Block) Span() source.Span { return n.Sp }

// VariableConstructorCall is synthesised at every variable-definition
// site: it declares the storage and constructs it in one step, whether
// from an explicit initializer or the type's default constructor.
type VariableConstructorCall struct {
	Var  *symbols.Variable
	Ctor *symbols.Constructor
	Args []Expression
	Sp   source.Span
}

func (n *VariableConstructorCall) Span() source.Span { return n.Sp }

// If is "if (condition) then [else elseBranch]"; Else is nil for a bare if.
type If struct {
	Condition Expression
	Then      Statement
	Else      Statement
	Sp        source.Span
}

func (n *If) Span() source.Span { return n.Sp }

// While is "while (condition) body".
type While struct {
	Condition Expression
	Body      Statement
	Sp        source.Span
}

func (n *While) Span() source.Span { return n.Sp }

// Return is "return [value];"; Value is nil for a bare return.
type Return struct {
	Value Expression
	Sp    source.Span
}

func (n *Return) Span() source.Span { return n.Sp }

// FunctionBody, MethodBody, and ConstructorBody pair a registered callable
// with its analysed body, ready for the backend walker. ParamVars are the
// body-scope Variables backing the callable's parameters, in signature
// order: the same symbols the body's VariableRef nodes point at, so the
// backend can give a parameter one name in the signature and its uses.
type FunctionBody struct {
	Fn        *symbols.Function
	ParamVars []*symbols.Variable
	Body      *Block
}

type MethodBody struct {
	Method    *symbols.Method
	ParamVars []*symbols.Variable
	Body      *Block
}

type ConstructorBody struct {
	Ctor      *symbols.Constructor
	ParamVars []*symbols.Variable
	Body      *Block
}

// Program is the fully analysed compilation unit: the root scope plus
// every callable's analysed body, in registration order.
type Program struct {
	Root         *symbols.Scope
	Globals      []*VariableConstructorCall
	Functions    []*FunctionBody
	Methods      []*MethodBody
	Constructors []*ConstructorBody
	Main         *symbols.Function
}
