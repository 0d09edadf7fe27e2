package semantic

import (
	"github.com/psenchanka/colang/internal/ast"
	"github.com/psenchanka/colang/internal/diag"
	"github.com/psenchanka/colang/internal/symbols"
)

// analyzeBlock analyses a raw code block in its own nested scope,
// enforcing reachability as it goes: once a statement is seen to always
// return, everything after it in the same block is unreachable, reported
// with exactly one diagnostic at the first dead statement rather than
// one per dead line.
func (a *Analyzer) analyzeBlock(raw *ast.CodeBlock, ctx *bodyContext) *Block {
	inner := ctx.child(symbols.NewScope(ctx.scope))
	block := &Block{Sp: raw.Sp}

	reported := false
	dead := false
	for _, rs := range raw.Statements {
		if dead && !reported {
			a.issue(diag.CodeUnreachable(a.locale, rs.Span()))
			reported = true
		}
		// A multi-declarator definition splices into the block as one
		// statement per declarator, all sharing the block's own scope.
		if vds, ok := rs.(*ast.VariableDefinitionStatement); ok {
			block.Statements = append(block.Statements, a.analyzeVariableDefinitions(vds, inner)...)
			continue
		}
		stmt := a.analyzeStatement(rs, inner)
		block.Statements = append(block.Statements, stmt)
		if !dead && statementAlwaysReturns(stmt) {
			dead = true
		}
	}
	return block
}

func (a *Analyzer) analyzeStatement(raw ast.Statement, ctx *bodyContext) Statement {
	switch s := raw.(type) {
	case *ast.ExpressionStatement:
		return &ExprStatement{Expr: a.valueExpr(s.Expr, ctx), Sp: s.Sp}
	case *ast.CodeBlock:
		return a.analyzeBlock(s, ctx)
	case *ast.VariableDefinitionStatement:
		return a.analyzeVariableDefinitionStatement(s, ctx)
	case *ast.IfStatement:
		return a.analyzeIfStatement(s, ctx)
	case *ast.WhileStatement:
		return a.analyzeWhileStatement(s, ctx)
	case *ast.ReturnStatement:
		return a.analyzeReturnStatement(s, ctx)
	default:
		return &ExprStatement{Expr: &Invalid{Sp: raw.Span()}, Sp: raw.Span()}
	}
}

// analyzeVariableDefinitions resolves the declared type and synthesises
// one VariableConstructorCall per declarator: each gets its own Variable
// in the enclosing scope plus a constructor call, whether from an
// explicit initializer or the type's default constructor.
func (a *Analyzer) analyzeVariableDefinitions(s *ast.VariableDefinitionStatement, ctx *bodyContext) []Statement {
	out := make([]Statement, 0, len(s.Definitions))
	for _, def := range s.Definitions {
		out = append(out, a.analyzeOneVariableDefinition(def, ctx))
	}
	return out
}

// analyzeVariableDefinitionStatement handles a definition outside a block
// (a braceless if/while body): the declarators wrap in their own Block so
// the statement stays a single node.
func (a *Analyzer) analyzeVariableDefinitionStatement(s *ast.VariableDefinitionStatement, ctx *bodyContext) Statement {
	stmts := a.analyzeVariableDefinitions(s, ctx)
	if len(stmts) == 1 {
		return stmts[0]
	}
	return &Block{Statements: stmts, Sp: s.Sp}
}

func (a *Analyzer) analyzeOneVariableDefinition(def *ast.VariableDefinition, ctx *bodyContext) Statement {
	typ := a.resolveTypeRef(ctx.scope, def.Type)

	if existing, ok := ctx.scope.ResolveLocal(def.Name); ok {
		a.issue(diag.VariableAlreadyDefined(a.locale, def.Sp, def.Name, existing.DeclSpan()))
		// Still analyse the initializer (if any) for its own diagnostics,
		// but don't register a second symbol under the same name.
		if def.Initializer != nil {
			a.rvalue(def.Initializer, ctx)
		}
		return &ExprStatement{Expr: &Invalid{Sp: def.Sp}, Sp: def.Sp}
	}

	v := symbols.NewVariable(def.Name, typ, def.Sp)
	ctx.scope.Define(v)

	// A reference-typed variable binds to existing storage rather than
	// constructing any: its initializer must itself be a reference, kept
	// un-dereferenced, and no constructor is involved.
	if typ.IsReference() {
		if def.Initializer == nil {
			a.issue(diag.NonPlainVariableNeedsInitializer(a.locale, def.Sp, def.Name))
			return &VariableConstructorCall{Var: v, Sp: def.Sp}
		}
		init := a.valueExpr(def.Initializer, ctx)
		if !symbols.ConvertibleTo(init.Type(), typ) {
			a.issue(diag.IncompatibleInitializer(a.locale, def.Sp, typ.Name(), init.Type().Name()))
			return &VariableConstructorCall{Var: v, Sp: def.Sp}
		}
		return &VariableConstructorCall{Var: v, Args: []Expression{init}, Sp: def.Sp}
	}

	owner := typ.Underlying()
	if owner == symbols.Unknown && def.Initializer == nil {
		return &VariableConstructorCall{Var: v, Sp: def.Sp}
	}
	if def.Initializer == nil {
		ctor, ok := defaultConstructor(owner)
		if !ok {
			a.issue(diag.NonPlainVariableNeedsInitializer(a.locale, def.Sp, def.Name))
			return &VariableConstructorCall{Var: v, Sp: def.Sp}
		}
		return &VariableConstructorCall{Var: v, Ctor: ctor, Sp: def.Sp}
	}

	initExpr := a.valueExpr(def.Initializer, ctx)
	if anyUnknown([]Expression{initExpr}) || owner == symbols.Unknown {
		return &VariableConstructorCall{Var: v, Sp: def.Sp}
	}
	candidates := make([]symbols.Signature, 0, len(owner.Constructors()))
	for _, c := range owner.Constructors() {
		candidates = append(candidates, c)
	}
	match, tied := symbols.ResolveOverload(candidates, []symbols.TypeSymbol{initExpr.Type()})
	if tied != nil {
		a.issue(diag.AmbiguousCall(a.locale, def.Sp, owner.Name(), ambiguityNotes(tied)))
		return &VariableConstructorCall{Var: v, Sp: def.Sp}
	}
	if match == nil {
		a.issue(diag.IncompatibleInitializer(a.locale, def.Sp, typ.Name(), initExpr.Type().Name()))
		return &VariableConstructorCall{Var: v, Sp: def.Sp}
	}
	ctor := match.Candidate.(*symbols.Constructor)
	return &VariableConstructorCall{Var: v, Ctor: ctor, Args: adjustArgs([]Expression{initExpr}, ctor.Params()), Sp: def.Sp}
}

// defaultConstructor finds owner's zero-argument constructor. User types
// always have one (addUserTypeDefaults) and the value primitives get a
// native zero-value one at bootstrap; a type without one is not "plain"
// and cannot be declared without an initializer.
func defaultConstructor(owner *symbols.Type) (*symbols.Constructor, bool) {
	for _, c := range owner.Constructors() {
		if len(c.Params()) == 0 {
			return c, true
		}
	}
	return nil, false
}

func (a *Analyzer) analyzeIfStatement(s *ast.IfStatement, ctx *bodyContext) Statement {
	cond := a.analyzeCondition(s.Condition, "if", ctx)
	then := a.analyzeStatement(s.Then, ctx)
	var elseStmt Statement
	if s.Else != nil {
		elseStmt = a.analyzeStatement(s.Else, ctx)
	}
	return &If{Condition: cond, Then: then, Else: elseStmt, Sp: s.Sp}
}

func (a *Analyzer) analyzeWhileStatement(s *ast.WhileStatement, ctx *bodyContext) Statement {
	cond := a.analyzeCondition(s.Condition, "while", ctx)
	body := a.analyzeStatement(s.Body, ctx)
	return &While{Condition: cond, Body: body, Sp: s.Sp}
}

// analyzeCondition requires a bool-convertible expression for an if/while
// condition; construct names which of the two the message blames.
func (a *Analyzer) analyzeCondition(raw ast.Expression, construct string, ctx *bodyContext) Expression {
	cond := a.rvalue(raw, ctx)
	if !symbols.ConvertibleTo(cond.Type(), symbols.BoolType) {
		a.issue(diag.ConditionNotBool(a.locale, cond.Span(), construct, cond.Type().Name()))
		return &Invalid{Sp: cond.Span()}
	}
	return cond
}

func (a *Analyzer) analyzeReturnStatement(s *ast.ReturnStatement, ctx *bodyContext) Statement {
	if ctx.isConstructor {
		if s.Value != nil {
			a.rvalue(s.Value, ctx)
			a.issue(diag.ConstructorReturnsValue(a.locale, s.Sp))
			return &Return{Sp: s.Sp}
		}
		return &Return{Sp: s.Sp}
	}

	if s.Value == nil {
		if ctx.expectedReturn != nil && ctx.expectedReturn.Underlying() != symbols.VoidType {
			a.issue(diag.ReturnMissingValue(a.locale, s.Sp, ctx.expectedReturn.Name()))
		}
		return &Return{Sp: s.Sp}
	}

	value := a.rvalue(s.Value, ctx)
	if ctx.expectedReturn != nil && !symbols.ConvertibleTo(value.Type(), ctx.expectedReturn) {
		a.issue(diag.ReturnTypeIncompatible(a.locale, s.Sp, ctx.expectedReturn.Name(), value.Type().Name()))
		return &Return{Value: value, Sp: s.Sp}
	}
	return &Return{Value: value, Sp: s.Sp}
}

// statementAlwaysReturns is the return-path rule for a single statement:
// a bare return always returns, an if/else does only when both branches
// do, and a nested block does when its own last live statement does.
func statementAlwaysReturns(s Statement) bool {
	switch st := s.(type) {
	case *Return:
		return true
	case *Block:
		return blockAlwaysReturns(st)
	case *If:
		if st.Else == nil {
			return false
		}
		return statementAlwaysReturns(st.Then) && statementAlwaysReturns(st.Else)
	default:
		// While's body may never execute (condition could be false up
		// front), so a while can never be relied on to return.
		return false
	}
}

// blockAlwaysReturns reports whether every control-flow path through
// block ends in a return. Statements after the first always-returning
// one are dead code (already reported by analyzeBlock) and don't count
// against the block.
func blockAlwaysReturns(block *Block) bool {
	for _, s := range block.Statements {
		if statementAlwaysReturns(s) {
			return true
		}
	}
	return false
}
