// Package ast defines CO's raw syntax tree: the shape the parser builds
// directly from tokens, before name or type resolution.
package ast

import "github.com/psenchanka/colang/internal/source"

// Node is implemented by every raw syntax tree node.
type Node interface {
	Span() source.Span
}

// GlobalDefinition is implemented by the three kinds of top-level
// declaration a CO program may contain: types, functions, and globals.
type GlobalDefinition interface {
	Node
	globalDefinitionNode()
}

// Member is implemented by the three kinds of declaration a type body may
// contain: fields, methods, and constructors.
type Member interface {
	Node
	memberNode()
}

// Expression is implemented by every expression node.
type Expression interface {
	Node
	expressionNode()
}

// Statement is implemented by every statement node.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: a file's ordered list of global definitions.
type Program struct {
	Definitions []GlobalDefinition
	Sp          source.Span
}

func (p *Program) Span() source.Span { return p.Sp }

// Specifier is a single modifier word preceding a declaration, e.g.
// "native". Kept as a list of spans+names rather than a bitset so a
// duplicate or unknown specifier can be reported with its own location.
type Specifier struct {
	Name string
	Sp   source.Span
}

// TypeReference names a type by identifier, optionally marked as a
// reference type with a trailing '&' (e.g. "Vector&").
type TypeReference struct {
	Name      string
	Reference bool
	Sp        source.Span
}

func (t *TypeReference) Span() source.Span { return t.Sp }

// Parameter is one entry in a function, method, or constructor's
// parameter list.
type Parameter struct {
	Type *TypeReference
	Name string
	Sp   source.Span
}

func (p *Parameter) Span() source.Span { return p.Sp }

// TypeDefinition declares a value type: "type Name { members... }".
type TypeDefinition struct {
	Specifiers []Specifier
	Name       string
	Members    []Member
	Sp         source.Span
}

func (t *TypeDefinition) Span() source.Span    { return t.Sp }
func (t *TypeDefinition) globalDefinitionNode() {}

// FieldDefinition declares a type's field: "Type name;".
type FieldDefinition struct {
	Type *TypeReference
	Name string
	Sp   source.Span
}

func (f *FieldDefinition) Span() source.Span { return f.Sp }
func (f *FieldDefinition) memberNode() {}

// MethodDefinition declares a method: "[specifiers] ReturnType name(params) [body]".
// Body is nil for a native method (no body permitted) and must be non-nil
// otherwise; the parser records whichever shape it actually saw and lets
// semantic analysis judge whether that shape is legal for the specifiers.
type MethodDefinition struct {
	Specifiers []Specifier
	ReturnType *TypeReference
	Name       string
	Parameters []*Parameter
	Body       *CodeBlock
	Sp         source.Span
}

func (m *MethodDefinition) Span() source.Span { return m.Sp }
func (m *MethodDefinition) memberNode() {}

// ConstructorDefinition declares a constructor: "[specifiers] Name(params) [body]".
type ConstructorDefinition struct {
	Specifiers []Specifier
	Name       string
	Parameters []*Parameter
	Body       *CodeBlock
	Sp         source.Span
}

func (c *ConstructorDefinition) Span() source.Span { return c.Sp }
func (c *ConstructorDefinition) memberNode() {}

// FunctionDefinition declares a free function: "[specifiers] ReturnType name(params) [body]".
type FunctionDefinition struct {
	Specifiers []Specifier
	ReturnType *TypeReference
	Name       string
	Parameters []*Parameter
	Body       *CodeBlock
	Sp         source.Span
}

func (f *FunctionDefinition) Span() source.Span    { return f.Sp }
func (f *FunctionDefinition) globalDefinitionNode() {}

// VariableDefinition declares one variable: "Type name [= expr];". The
// initializer is nil when the variable has none (legal only for plain
// value types per the statement analyser's rules).
type VariableDefinition struct {
	Type        *TypeReference
	Name        string
	Initializer Expression
	Sp          source.Span
}

func (v *VariableDefinition) Span() source.Span { return v.Sp }

// VariablesDefinition is a top-level group of global variable
// declarations; CO allows "Type a, b = 1, c;" style lists at global scope.
type VariablesDefinition struct {
	Variables []*VariableDefinition
	Sp        source.Span
}

func (v *VariablesDefinition) Span() source.Span    { return v.Sp }
func (v *VariablesDefinition) globalDefinitionNode() {}
