package semantic

import (
	"github.com/psenchanka/colang/internal/ast"
	"github.com/psenchanka/colang/internal/diag"
	"github.com/psenchanka/colang/internal/symbols"
)

// Option configures an Analyzer at construction time.
type Option func(*Analyzer)

// WithLocale selects the locale diagnostics are rendered in.
func WithLocale(locale diag.Locale) Option {
	return func(a *Analyzer) { a.locale = locale }
}

// Analyzer runs CO's four name-resolution passes over a raw program and
// produces a typed Program plus every diagnostic observed along the way.
// It is single-use: construct one per compilation with New, call Analyze
// once.
type Analyzer struct {
	locale diag.Locale
	issues diag.Bag

	program  *ast.Program
	root     *symbols.Scope
	builtins []*symbols.Function

	typeDefs      []typeEntry
	methodDefs    []methodEntry
	ctorDefs      []ctorEntry
	funcDefs      []funcEntry
	globalVarDefs []varEntry
}

type methodEntry struct {
	def *ast.MethodDefinition
	sym *symbols.Method
}

type ctorEntry struct {
	def   *ast.ConstructorDefinition
	sym   *symbols.Constructor
	owner *symbols.Type
}

type funcEntry struct {
	def *ast.FunctionDefinition
	sym *symbols.Function
}

type varEntry struct {
	def *ast.VariableDefinition
	sym *symbols.Variable
}

// New creates an Analyzer for program. It bootstraps the primitives'
// native operator methods on first use process-wide.
func New(program *ast.Program, opts ...Option) *Analyzer {
	bootstrapPrimitives()
	a := &Analyzer{
		locale:  diag.DefaultLocale,
		program: program,
		root:    symbols.NewUniverse(),
	}
	a.builtins = registerBuiltins(a.root)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) issue(i diag.Issue) { a.issues.Add(i) }

// Issues returns every diagnostic recorded by Analyze, in the order
// passes 1 through 4 (then entry-point validation) produced them.
func (a *Analyzer) Issues() []diag.Issue { return a.issues.Issues() }

// Root returns the root scope populated by name resolution.
func (a *Analyzer) Root() *symbols.Scope { return a.root }

// Analyze runs every pass in order and returns the typed program. The
// program is always returned, even when issues were recorded: callers
// that want to bail out on error severity check Issues()/HasErrors
// themselves, mirroring the "accumulate, don't abort" policy used
// throughout the front-end.
func (a *Analyzer) Analyze() *Program {
	a.registerTypes()
	a.registerMembers()
	a.registerGlobals()

	prog := &Program{Root: a.root}
	a.analyzeGlobalInitializers(prog)
	a.analyzeConstructorBodies(prog)
	a.analyzeMethodBodies(prog)
	a.analyzeFunctionBodies(prog)
	a.validateEntryPoint(prog)

	return prog
}

// parameterScope opens the scope a body's statements resolve against: a
// child of the root namespace holding one Variable per parameter, returned
// in signature order for the typed tree to keep. A duplicate parameter
// name is a definition conflict like any other.
func (a *Analyzer) parameterScope(raw []*ast.Parameter, resolved []symbols.Parameter) (*symbols.Scope, []*symbols.Variable) {
	scope := symbols.NewScope(a.root)
	vars := make([]*symbols.Variable, 0, len(raw))
	for i, p := range raw {
		v := symbols.NewVariable(p.Name, resolved[i].Type, p.Sp)
		vars = append(vars, v)
		if p.Name == "" {
			continue
		}
		if existing, added := scope.Define(v); !added {
			a.issue(diag.VariableAlreadyDefined(a.locale, p.Sp, p.Name, existing.DeclSpan()))
		}
	}
	return scope, vars
}

func (a *Analyzer) analyzeFunctionBodies(prog *Program) {
	for _, fe := range a.funcDefs {
		if fe.def.Body == nil {
			continue
		}
		scope, paramVars := a.parameterScope(fe.def.Parameters, fe.sym.Params())
		ctx := &bodyContext{scope: scope, expectedReturn: fe.sym.ReturnType()}
		body := a.analyzeBlock(fe.def.Body, ctx)
		if fe.sym.ReturnType().Underlying() != symbols.VoidType && !blockAlwaysReturns(body) {
			a.issue(diag.ReturnStatementMissing(a.locale, fe.def.Sp, fe.sym.Name()))
		}
		prog.Functions = append(prog.Functions, &FunctionBody{Fn: fe.sym, ParamVars: paramVars, Body: body})
	}
}

func (a *Analyzer) analyzeMethodBodies(prog *Program) {
	for _, me := range a.methodDefs {
		if me.def.Body == nil {
			continue
		}
		scope, paramVars := a.parameterScope(me.def.Parameters, me.sym.Params())
		ctx := &bodyContext{
			scope:          scope,
			expectedReturn: me.sym.ReturnType(),
			thisType:       me.sym.Owner().Reference(),
		}
		body := a.analyzeBlock(me.def.Body, ctx)
		if me.sym.ReturnType().Underlying() != symbols.VoidType && !blockAlwaysReturns(body) {
			a.issue(diag.ReturnStatementMissing(a.locale, me.def.Sp, me.sym.Name()))
		}
		prog.Methods = append(prog.Methods, &MethodBody{Method: me.sym, ParamVars: paramVars, Body: body})
	}
}

func (a *Analyzer) analyzeConstructorBodies(prog *Program) {
	for _, ce := range a.ctorDefs {
		if ce.def.Body == nil {
			continue
		}
		scope, paramVars := a.parameterScope(ce.def.Parameters, ce.sym.Params())
		ctx := &bodyContext{
			scope:         scope,
			thisType:      ce.owner.Reference(),
			isConstructor: true,
		}
		body := a.analyzeBlock(ce.def.Body, ctx)
		prog.Constructors = append(prog.Constructors, &ConstructorBody{Ctor: ce.sym, ParamVars: paramVars, Body: body})
	}
}

// analyzeGlobalInitializers synthesises a VariableConstructorCall per
// registered global, the same shape local definitions get, so the backend
// can construct globals in declaration order before main's body runs.
func (a *Analyzer) analyzeGlobalInitializers(prog *Program) {
	ctx := &bodyContext{scope: a.root}
	for _, ve := range a.globalVarDefs {
		if ve.sym.Type().IsReference() {
			if ve.def.Initializer == nil {
				a.issue(diag.NonPlainVariableNeedsInitializer(a.locale, ve.def.Sp, ve.def.Name))
				continue
			}
			init := a.valueExpr(ve.def.Initializer, ctx)
			if !symbols.ConvertibleTo(init.Type(), ve.sym.Type()) {
				a.issue(diag.IncompatibleInitializer(a.locale, ve.def.Sp, ve.sym.Type().Name(), init.Type().Name()))
				continue
			}
			prog.Globals = append(prog.Globals, &VariableConstructorCall{Var: ve.sym, Args: []Expression{init}, Sp: ve.def.Sp})
			continue
		}

		owner := ve.sym.Type().Underlying()
		if owner == symbols.Unknown && ve.def.Initializer == nil {
			continue
		}
		if ve.def.Initializer == nil {
			ctor, ok := defaultConstructor(owner)
			if !ok {
				a.issue(diag.NonPlainVariableNeedsInitializer(a.locale, ve.def.Sp, ve.def.Name))
				continue
			}
			prog.Globals = append(prog.Globals, &VariableConstructorCall{Var: ve.sym, Ctor: ctor, Sp: ve.def.Sp})
			continue
		}

		initExpr := a.valueExpr(ve.def.Initializer, ctx)
		if anyUnknown([]Expression{initExpr}) || owner == symbols.Unknown {
			continue
		}
		candidates := make([]symbols.Signature, 0, len(owner.Constructors()))
		for _, c := range owner.Constructors() {
			candidates = append(candidates, c)
		}
		match, tied := symbols.ResolveOverload(candidates, []symbols.TypeSymbol{initExpr.Type()})
		if tied != nil {
			a.issue(diag.AmbiguousCall(a.locale, ve.def.Sp, owner.Name(), ambiguityNotes(tied)))
			continue
		}
		if match == nil {
			a.issue(diag.IncompatibleInitializer(a.locale, ve.def.Sp, ve.sym.Type().Name(), initExpr.Type().Name()))
			continue
		}
		ctor := match.Candidate.(*symbols.Constructor)
		prog.Globals = append(prog.Globals, &VariableConstructorCall{
			Var: ve.sym, Ctor: ctor, Args: adjustArgs([]Expression{initExpr}, ctor.Params()), Sp: ve.def.Sp,
		})
	}
}

// validateEntryPoint enforces that the root namespace contains exactly one
// non-overloaded `main` function of type `() -> void`.
func (a *Analyzer) validateEntryPoint(prog *Program) {
	sym, ok := a.root.ResolveLocal("main")
	if !ok {
		a.issue(diag.MainMissing(a.locale))
		return
	}
	fn, ok := sym.(*symbols.Function)
	if !ok {
		a.issue(diag.MainNotAFunction(a.locale, sym.DeclSpan()))
		return
	}
	if len(fn.Params()) != 0 || fn.ReturnType().Underlying() != symbols.VoidType || fn.ReturnType().IsReference() {
		a.issue(diag.MainSignatureInvalid(a.locale, fn.DeclSpan()))
		return
	}
	prog.Main = fn
}
