package semantic

import (
	"strconv"

	"github.com/psenchanka/colang/internal/ast"
	"github.com/psenchanka/colang/internal/diag"
	"github.com/psenchanka/colang/internal/source"
	"github.com/psenchanka/colang/internal/symbols"
)

// bodyContext carries the information an expression/statement needs from
// the body it's nested in but that isn't itself part of the AST: which
// scope names resolve against, what a bare "return" is allowed to return,
// and (inside a method or constructor) what "this" denotes.
type bodyContext struct {
	scope          *symbols.Scope
	expectedReturn symbols.TypeSymbol
	thisType       *symbols.ReferenceType
	isConstructor  bool
}

// child returns a context sharing everything but scope, nested one level
// deeper - used whenever a nested CodeBlock (if/while bodies, explicit
// nested blocks) opens its own lexical scope.
func (c *bodyContext) child(scope *symbols.Scope) *bodyContext {
	cp := *c
	cp.scope = scope
	return &cp
}

// analyzeExpr is the single entry point for typing a raw expression node;
// every other *Expression helper in this file is reached from here.
func (a *Analyzer) analyzeExpr(raw ast.Expression, ctx *bodyContext) Expression {
	switch e := raw.(type) {
	case nil:
		return &Invalid{}
	case *ast.IntLiteral:
		return a.analyzeIntLiteral(e)
	case *ast.DoubleLiteral:
		return a.analyzeDoubleLiteral(e)
	case *ast.BoolLiteral:
		return &BoolLiteral{Value: e.Value, Sp: e.Sp}
	case *ast.NameExpression:
		return a.analyzeNameExpression(e, ctx)
	case *ast.ThisExpression:
		return a.analyzeThisExpression(e, ctx)
	case *ast.ParenExpression:
		return a.analyzeExpr(e.Inner, ctx)
	case *ast.CallExpression:
		return a.analyzeCallExpression(e, ctx)
	case *ast.MemberExpression:
		return a.analyzeMemberExpression(e, ctx)
	case *ast.InfixExpression:
		return a.analyzeInfixExpression(e, ctx)
	case *ast.PrefixExpression:
		return a.analyzePrefixExpression(e, ctx)
	default:
		return &Invalid{Sp: raw.Span()}
	}
}

// valueExpr analyses raw and rejects the result if it's a bare function
// reference: CO has no function values, so a function name is only
// meaningful as a call's callee. References stay references.
func (a *Analyzer) valueExpr(raw ast.Expression, ctx *bodyContext) Expression {
	e := a.analyzeExpr(raw, ctx)
	switch r := e.(type) {
	case *FunctionRef:
		a.issue(diag.NotAnExpression(a.locale, r.Sp, r.Fn.Name(), diag.TermFunction))
		return &Invalid{Sp: r.Sp}
	case *OverloadedFunctionRef:
		a.issue(diag.NotAnExpression(a.locale, r.Sp, r.Set.Name(), diag.TermOverloadedFunction))
		return &Invalid{Sp: r.Sp}
	}
	return e
}

// rvalue analyses raw, then inserts an ImplicitDereference if the result
// is reference-typed: the one place in the analyser where "I need a plain
// value here" is made explicit.
func (a *Analyzer) rvalue(raw ast.Expression, ctx *bodyContext) Expression {
	e := a.valueExpr(raw, ctx)
	return dereferenceIfNeeded(e, e.Type().Underlying())
}

func (a *Analyzer) analyzeIntLiteral(e *ast.IntLiteral) Expression {
	v, err := strconv.ParseInt(e.Text, 10, 64)
	if err != nil {
		a.issue(diag.LiteralTooBig(a.locale, e.Sp, e.Text, symbols.IntType.Name()))
		return &Invalid{Sp: e.Sp}
	}
	if v < int64(minInt32) {
		a.issue(diag.LiteralTooSmall(a.locale, e.Sp, e.Text, symbols.IntType.Name()))
		return &Invalid{Sp: e.Sp}
	}
	if v > int64(maxInt32) {
		a.issue(diag.LiteralTooBig(a.locale, e.Sp, e.Text, symbols.IntType.Name()))
		return &Invalid{Sp: e.Sp}
	}
	return &IntLiteral{Value: int32(v), Sp: e.Sp}
}

const (
	minInt32 = -2147483648
	maxInt32 = 2147483647
)

func (a *Analyzer) analyzeDoubleLiteral(e *ast.DoubleLiteral) Expression {
	v, err := strconv.ParseFloat(e.Text, 64)
	if err != nil {
		numErr, ok := err.(*strconv.NumError)
		if ok && numErr.Err == strconv.ErrRange {
			a.issue(diag.LiteralTooBig(a.locale, e.Sp, e.Text, symbols.DoubleType.Name()))
		} else {
			a.issue(diag.BadExponent(a.locale, e.Sp, e.Text))
		}
		return &Invalid{Sp: e.Sp}
	}
	return &DoubleLiteral{Value: v, Sp: e.Sp}
}

func (a *Analyzer) analyzeNameExpression(e *ast.NameExpression, ctx *bodyContext) Expression {
	sym, ok := ctx.scope.Resolve(e.Name)
	if !ok {
		a.issue(diag.NameUnknown(a.locale, e.Sp, e.Name))
		return &Invalid{Sp: e.Sp}
	}
	switch s := sym.(type) {
	case *symbols.Variable:
		return &VariableRef{Var: s, Sp: e.Sp}
	case *symbols.Function:
		return &FunctionRef{Fn: s, Sp: e.Sp}
	case *symbols.OverloadedFunction:
		return &OverloadedFunctionRef{Set: s, Sp: e.Sp}
	default:
		a.issue(diag.NotAnExpression(a.locale, e.Sp, e.Name, kindTerm(sym.Kind())))
		return &Invalid{Sp: e.Sp}
	}
}

func (a *Analyzer) analyzeThisExpression(e *ast.ThisExpression, ctx *bodyContext) Expression {
	if ctx.thisType == nil {
		a.issue(diag.ThisOutsideMethod(a.locale, e.Sp))
		return &Invalid{Sp: e.Sp}
	}
	return &ThisRef{Ref: ctx.thisType, Sp: e.Sp}
}

// analyzeArgs analyses every call argument in order, regardless of
// whether the callee itself resolved, so a typo in one argument is
// reported even when the callee name is also wrong. Arguments keep their reference-ness here: overload
// resolution needs the pre-dereference type to match by-reference
// parameters, and adjustArgs inserts the dereference afterwards wherever
// the winning candidate takes a plain value.
func (a *Analyzer) analyzeArgs(raw []ast.Expression, ctx *bodyContext) []Expression {
	args := make([]Expression, len(raw))
	for i, r := range raw {
		args[i] = a.valueExpr(r, ctx)
	}
	return args
}

func (a *Analyzer) analyzeCallExpression(e *ast.CallExpression, ctx *bodyContext) Expression {
	switch callee := e.Callee.(type) {
	case *ast.NameExpression:
		return a.analyzeNamedCall(callee, e, ctx)
	case *ast.MemberExpression:
		return a.analyzeMemberCall(callee, e, ctx)
	default:
		a.analyzeArgs(e.Arguments, ctx)
		a.issue(diag.NotCallable(a.locale, e.Callee.Span(), "<expression>"))
		return &Invalid{Sp: e.Sp}
	}
}

// analyzeNamedCall resolves "name(args...)": a free function call, an
// overloaded free function call, or - when name resolves to a Type - a
// cast.
func (a *Analyzer) analyzeNamedCall(callee *ast.NameExpression, call *ast.CallExpression, ctx *bodyContext) Expression {
	sym, ok := ctx.scope.Resolve(callee.Name)
	if !ok {
		a.analyzeArgs(call.Arguments, ctx)
		a.issue(diag.NameUnknown(a.locale, callee.Sp, callee.Name))
		return &Invalid{Sp: call.Sp}
	}

	switch s := sym.(type) {
	case *symbols.Type:
		return a.analyzeCast(s, call, ctx)
	case *symbols.Function:
		args := a.analyzeArgs(call.Arguments, ctx)
		return a.resolveFunctionCall(callee.Name, call.Sp, []symbols.Signature{s}, args)
	case *symbols.OverloadedFunction:
		args := a.analyzeArgs(call.Arguments, ctx)
		return a.resolveFunctionCall(callee.Name, call.Sp, s.Signatures(), args)
	default:
		a.analyzeArgs(call.Arguments, ctx)
		a.issue(diag.NotCallable(a.locale, callee.Sp, callee.Name))
		return &Invalid{Sp: call.Sp}
	}
}

func (a *Analyzer) resolveFunctionCall(name string, span source.Span, candidates []symbols.Signature, args []Expression) Expression {
	if anyUnknown(args) {
		return &Invalid{Sp: span}
	}
	match, tied := symbols.ResolveOverload(candidates, argTypes(args))
	if tied != nil {
		a.issue(diag.AmbiguousCall(a.locale, span, name, ambiguityNotes(tied)))
		return &Invalid{Sp: span}
	}
	if match == nil {
		a.issue(diag.CallArgumentsInvalid(a.locale, span, name, argTypeList(args)))
		return &Invalid{Sp: span}
	}
	fn := match.Candidate.(*symbols.Function)
	return &FunctionCall{Fn: fn, Args: adjustArgs(args, fn.Params()), Sp: span}
}

// memberLookup is the shared result of resolving "receiver.name", used by
// both bare member access and a member used as a call's callee.
type memberLookup struct {
	instance   Expression
	field      *symbols.Field
	candidates []symbols.Signature
	ok         bool
}

func (a *Analyzer) resolveMember(e *ast.MemberExpression, ctx *bodyContext) memberLookup {
	if name, ok := e.Receiver.(*ast.NameExpression); ok {
		if sym, found := ctx.scope.Resolve(name.Name); found {
			if _, isType := sym.(*symbols.Type); isType {
				a.issue(diag.StaticMemberUnknown(a.locale, e.Sp, name.Name, e.Name))
				return memberLookup{}
			}
		}
	}

	instance := a.valueExpr(e.Receiver, ctx)
	container := instance.Type().Underlying()
	isRef := instance.Type().IsReference()

	// A receiver that already failed analysis was already reported; a
	// member lookup on it would only name "<unknown>" in a second message
	// about the same mistake.
	if container == symbols.Unknown {
		return memberLookup{}
	}

	if field, found := container.Field(e.Name); found {
		return memberLookup{instance: instance, field: field, ok: true}
	}

	candidates, filteredRequiresRef := memberMethodCandidates(container, e.Name, isRef)
	if len(candidates) > 0 {
		return memberLookup{instance: instance, candidates: candidates, ok: true}
	}
	if filteredRequiresRef {
		a.issue(diag.MemberNeedsReference(a.locale, e.Sp, e.Name))
		return memberLookup{}
	}
	a.issue(diag.ObjectMemberUnknown(a.locale, e.Sp, container.Name(), e.Name))
	return memberLookup{}
}

// memberMethodCandidates returns container's overload candidates for
// name, excluding any that require a reference receiver when the actual
// receiver isn't one. filteredOut reports whether every
// candidate was excluded that way, so the caller can tell "no such
// member" apart from "member exists but needs a reference".
func memberMethodCandidates(container *symbols.Type, name string, receiverIsRef bool) (candidates []symbols.Signature, filteredOut bool) {
	all := container.MethodSignatures(name)
	if len(all) == 0 {
		return nil, false
	}
	for _, sig := range all {
		m, ok := sig.(*symbols.Method)
		if ok && m.RequiresReference() && !receiverIsRef {
			filteredOut = true
			continue
		}
		candidates = append(candidates, sig)
	}
	return candidates, filteredOut && len(candidates) == 0
}

func (a *Analyzer) analyzeMemberExpression(e *ast.MemberExpression, ctx *bodyContext) Expression {
	lk := a.resolveMember(e, ctx)
	if !lk.ok {
		return &Invalid{Sp: e.Sp}
	}
	if lk.field != nil {
		return &FieldAccess{Instance: lk.instance, Field: lk.field, Sp: e.Sp}
	}
	term := diag.TermMethod
	if len(lk.candidates) > 1 {
		term = diag.TermOverloadedMethod
	}
	a.issue(diag.NotAnExpression(a.locale, e.Sp, e.Name, term))
	return &Invalid{Sp: e.Sp}
}

func (a *Analyzer) analyzeMemberCall(callee *ast.MemberExpression, call *ast.CallExpression, ctx *bodyContext) Expression {
	lk := a.resolveMember(callee, ctx)
	if !lk.ok {
		a.analyzeArgs(call.Arguments, ctx)
		return &Invalid{Sp: call.Sp}
	}
	if lk.field != nil {
		a.analyzeArgs(call.Arguments, ctx)
		a.issue(diag.NotCallable(a.locale, callee.Sp, callee.Name))
		return &Invalid{Sp: call.Sp}
	}

	args := a.analyzeArgs(call.Arguments, ctx)
	if anyUnknown(args) {
		return &Invalid{Sp: call.Sp}
	}
	match, tied := symbols.ResolveOverload(lk.candidates, argTypes(args))
	if tied != nil {
		a.issue(diag.AmbiguousCall(a.locale, call.Sp, callee.Name, ambiguityNotes(tied)))
		return &Invalid{Sp: call.Sp}
	}
	if match == nil {
		a.issue(diag.CallArgumentsInvalid(a.locale, call.Sp, callee.Name, argTypeList(args)))
		return &Invalid{Sp: call.Sp}
	}
	m := match.Candidate.(*symbols.Method)
	return &MethodCall{Method: m, Instance: lk.instance, Args: adjustArgs(args, m.Params()), Sp: call.Sp}
}

// analyzeCast resolves "T(args...)": a constructor of T matching the
// argument types, or - for the single-argument form - a named
// (non-constructor) conversion function returning T. A conversion function
// whose declared return type doesn't actually come back as T is rejected.
func (a *Analyzer) analyzeCast(target *symbols.Type, call *ast.CallExpression, ctx *bodyContext) Expression {
	args := a.analyzeArgs(call.Arguments, ctx)
	if anyUnknown(args) {
		return &Invalid{Sp: call.Sp}
	}

	var ctorCandidates []symbols.Signature
	for _, c := range target.Constructors() {
		ctorCandidates = append(ctorCandidates, c)
	}
	ctorMatch, ctorTied := symbols.ResolveOverload(ctorCandidates, argTypes(args))

	// Conversion functions only ever take part in the one-argument form:
	// "T(a, b)" can only mean a constructor call.
	var fnMatch *symbols.Match
	var fnTied []symbols.Signature
	if len(args) == 1 {
		var fnCandidates []symbols.Signature
		for _, fn := range a.conversionFunctionsReturning(target) {
			if len(fn.Params()) == 1 {
				fnCandidates = append(fnCandidates, fn)
			}
		}
		fnMatch, fnTied = symbols.ResolveOverload(fnCandidates, argTypes(args))
	}

	switch {
	case (ctorMatch != nil && fnMatch != nil) || ctorTied != nil || fnTied != nil:
		a.issue(diag.ConversionAmbiguous(a.locale, call.Sp, target.Name()))
		return &Invalid{Sp: call.Sp}
	case ctorMatch != nil:
		c := ctorMatch.Candidate.(*symbols.Constructor)
		return &ConstructorCall{Ctor: c, Args: adjustArgs(args, c.Params()), Sp: call.Sp}
	case fnMatch != nil:
		fn := fnMatch.Candidate.(*symbols.Function)
		if fn.ReturnType().Underlying() != target {
			a.issue(diag.ConversionFunctionReturnTypeInvalid(a.locale, call.Sp, fn.Name(), target.Name()))
			return &Invalid{Sp: call.Sp}
		}
		return &ConversionCall{Fn: fn, Arg: dereferenceIfNeeded(args[0], fn.Params()[0].Type), Sp: call.Sp}
	case len(args) == 1:
		a.issue(diag.NoConversionFunction(a.locale, call.Sp, target.Name()))
		return &Invalid{Sp: call.Sp}
	default:
		a.issue(diag.CallArgumentsInvalid(a.locale, call.Sp, target.Name(), argTypeList(args)))
		return &Invalid{Sp: call.Sp}
	}
}

// conversionFunctionsReturning collects every registered free function
// whose return type is target: CO has no "convert" keyword, so a cast to
// a non-constructible shape only works through an ordinarily-named
// function that happens to return T.
func (a *Analyzer) conversionFunctionsReturning(target *symbols.Type) []*symbols.Function {
	var out []*symbols.Function
	for _, fn := range a.builtins {
		if fn.ReturnType().Underlying() == target {
			out = append(out, fn)
		}
	}
	for _, fe := range a.funcDefs {
		if fe.sym.ReturnType().Underlying() == target {
			out = append(out, fe.sym)
		}
	}
	return out
}

// operatorMethod maps a desugared infix/prefix operator to the method
// name it calls on its left (or only) operand.
func operatorMethod(op ast.InfixOperator) string {
	switch op {
	case ast.OpAdd:
		return "plus"
	case ast.OpSubtract:
		return "minus"
	case ast.OpMultiply:
		return "multiply"
	case ast.OpDivide:
		return "divide"
	case ast.OpLess:
		return "lessThan"
	case ast.OpGreater:
		return "greaterThan"
	case ast.OpLessEq:
		return "lessOrEqual"
	case ast.OpGreaterEq:
		return "greaterOrEqual"
	case ast.OpEqual:
		return "equals"
	case ast.OpNotEqual:
		return "notEquals"
	case ast.OpAnd:
		return "and"
	case ast.OpOr:
		return "or"
	case ast.OpAssign:
		return "assign"
	default:
		return ""
	}
}

func prefixOperatorMethod(op ast.PrefixOperator) string {
	switch op {
	case ast.OpNegate:
		return "unaryMinus"
	case ast.OpNot:
		return "not"
	default:
		return ""
	}
}

// analyzeInfixExpression desugars "left op right" into a method call on
// left. Assignment is not dereferenced on its left
// operand (that's the whole point: assign needs the reference itself),
// every other operator analyses its left operand as an rvalue.
func (a *Analyzer) analyzeInfixExpression(e *ast.InfixExpression, ctx *bodyContext) Expression {
	methodName := operatorMethod(e.Operator)

	var left Expression
	if e.Operator == ast.OpAssign {
		left = a.valueExpr(e.Left, ctx)
	} else {
		left = a.rvalue(e.Left, ctx)
	}

	if e.Right == nil {
		return &Invalid{Sp: e.Sp}
	}
	right := a.valueExpr(e.Right, ctx)

	container := left.Type().Underlying()
	isRef := left.Type().IsReference()
	if container == symbols.Unknown || anyUnknown([]Expression{right}) {
		return &Invalid{Sp: e.Sp}
	}

	candidates, filteredOut := memberMethodCandidates(container, methodName, isRef)
	if len(candidates) == 0 {
		if filteredOut && e.Operator == ast.OpAssign {
			a.issue(diag.MemberNeedsReference(a.locale, e.Sp, methodName))
		} else {
			a.issue(diag.OperatorUndefined(a.locale, e.Sp, string(e.Operator), container.Name()))
		}
		return &Invalid{Sp: e.Sp}
	}

	match, tied := symbols.ResolveOverload(candidates, []symbols.TypeSymbol{right.Type()})
	if tied != nil {
		a.issue(diag.AmbiguousCall(a.locale, e.Sp, methodName, ambiguityNotes(tied)))
		return &Invalid{Sp: e.Sp}
	}
	if match == nil {
		a.issue(diag.OperatorUndefined(a.locale, e.Sp, string(e.Operator), container.Name()))
		return &Invalid{Sp: e.Sp}
	}
	m := match.Candidate.(*symbols.Method)
	return &MethodCall{Method: m, Instance: left, Args: adjustArgs([]Expression{right}, m.Params()), Sp: e.Sp}
}

func (a *Analyzer) analyzePrefixExpression(e *ast.PrefixExpression, ctx *bodyContext) Expression {
	methodName := prefixOperatorMethod(e.Operator)
	if e.Operand == nil {
		return &Invalid{Sp: e.Sp}
	}
	operand := a.rvalue(e.Operand, ctx)
	container := operand.Type().Underlying()
	if container == symbols.Unknown {
		return &Invalid{Sp: e.Sp}
	}

	candidates, _ := memberMethodCandidates(container, methodName, operand.Type().IsReference())
	match, tied := symbols.ResolveOverload(candidates, nil)
	if tied != nil {
		a.issue(diag.AmbiguousCall(a.locale, e.Sp, methodName, ambiguityNotes(tied)))
		return &Invalid{Sp: e.Sp}
	}
	if match == nil {
		a.issue(diag.OperatorUndefined(a.locale, e.Sp, string(e.Operator), container.Name()))
		return &Invalid{Sp: e.Sp}
	}
	m := match.Candidate.(*symbols.Method)
	return &MethodCall{Method: m, Instance: operand, Args: nil, Sp: e.Sp}
}
