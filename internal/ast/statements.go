package ast

import "github.com/psenchanka/colang/internal/source"

// CodeBlock is a brace-delimited sequence of statements; it is itself a
// Statement (so it can appear as a while/if body) and the shape every
// function/method/constructor body takes.
type CodeBlock struct {
	Statements []Statement
	Sp         source.Span
}

func (b *CodeBlock) Span() source.Span { return b.Sp }
func (b *CodeBlock) statementNode() {}

// ExpressionStatement is an expression evaluated for its side effect,
// terminated by ';'. Only assignment and call expressions are useful
// here; the statement analyser doesn't forbid others, but they carry no
// side effect by construction.
type ExpressionStatement struct {
	Expr Expression
	Sp   source.Span
}

func (s *ExpressionStatement) Span() source.Span { return s.Sp }
func (s *ExpressionStatement) statementNode() {}

// VariableDefinitionStatement declares one or more local variables of a
// shared type inside a body: "T x, y = e, z;".
type VariableDefinitionStatement struct {
	Definitions []*VariableDefinition
	Sp          source.Span
}

func (s *VariableDefinitionStatement) Span() source.Span { return s.Sp }
func (s *VariableDefinitionStatement) statementNode() {}

// IfStatement is "if (cond) then [else else_]". Else is nil for a bare if.
type IfStatement struct {
	Condition Expression
	Then      Statement
	Else      Statement
	Sp        source.Span
}

func (s *IfStatement) Span() source.Span { return s.Sp }
func (s *IfStatement) statementNode() {}

// WhileStatement is "while (cond) body".
type WhileStatement struct {
	Condition Expression
	Body      Statement
	Sp        source.Span
}

func (s *WhileStatement) Span() source.Span { return s.Sp }
func (s *WhileStatement) statementNode() {}

// ReturnStatement is "return [value];". Value is nil for a bare return,
// legal only in a void-returning function/constructor.
type ReturnStatement struct {
	Value Expression
	Sp    source.Span
}

func (s *ReturnStatement) Span() source.Span { return s.Sp }
func (s *ReturnStatement) statementNode() {}
