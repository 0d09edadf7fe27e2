package semantic

import (
	"github.com/psenchanka/colang/internal/ast"
	"github.com/psenchanka/colang/internal/diag"
	"github.com/psenchanka/colang/internal/symbols"
)

// registerTypes is pass 1: create an (empty) Type for every raw
// TypeDefinition and add it to the root namespace, so later passes can
// resolve forward references between types.
func (a *Analyzer) registerTypes() {
	for _, def := range a.program.Definitions {
		td, ok := def.(*ast.TypeDefinition)
		if !ok {
			continue
		}
		t := symbols.NewType(td.Name, td.Sp)
		if existing, added := a.root.Define(t); !added {
			a.issue(diag.NameAlreadyTaken(a.locale, td.Sp, td.Name, kindTerm(existing.Kind()), existing.DeclSpan()))
			continue
		}
		if hasSpecifier(td.Specifiers, "native") {
			// A native type's constructors come from its own declared
			// members; only the assign method on its reference is implied.
			addAssign(t)
		} else {
			addUserTypeDefaults(t)
		}
		a.typeDefs = append(a.typeDefs, typeEntry{def: td, sym: t})
	}
}

type typeEntry struct {
	def *ast.TypeDefinition
	sym *symbols.Type
}

// registerMembers is pass 2: within each registered type, create stub
// Field/Method/Constructor symbols with resolved parameter/return types
// but no analysed body yet.
func (a *Analyzer) registerMembers() {
	for _, te := range a.typeDefs {
		for _, m := range te.def.Members {
			switch member := m.(type) {
			case *ast.FieldDefinition:
				a.registerField(te.sym, member)
			case *ast.MethodDefinition:
				a.registerMethod(te.sym, member)
			case *ast.ConstructorDefinition:
				a.registerConstructor(te.sym, member)
			}
		}
	}
}

func (a *Analyzer) registerField(owner *symbols.Type, raw *ast.FieldDefinition) {
	typ := a.resolveTypeRef(a.root, raw.Type)
	if existing, found := owner.Field(raw.Name); found {
		a.issue(diag.NameAlreadyTaken(a.locale, raw.Sp, raw.Name, kindTerm(existing.Kind()), existing.DeclSpan()))
		return
	}
	f := symbols.NewField(raw.Name, typ, raw.Sp)
	owner.AddField(f)
}

func (a *Analyzer) registerMethod(owner *symbols.Type, raw *ast.MethodDefinition) {
	native := hasSpecifier(raw.Specifiers, "native")
	if native && raw.Body != nil {
		a.issue(diag.NativeMethodHasBody(a.locale, raw.Sp, raw.Name))
	}
	if !native && raw.Body == nil {
		a.issue(diag.MethodMissingBody(a.locale, raw.Sp, raw.Name))
	}
	if raw.ReturnType != nil && raw.ReturnType.Reference {
		a.issue(diag.ReferenceMarkerInFunction(a.locale, raw.ReturnType.Sp))
	}

	params := a.resolveParams(raw.Parameters)
	ret := a.resolveTypeRef(a.root, raw.ReturnType)

	for _, cand := range owner.MethodSignatures(raw.Name) {
		if sameParamTypes(cand.Params(), params) {
			a.issue(diag.MethodAlreadyDefined(a.locale, raw.Sp, raw.Name, owner.Name(), cand.DeclSpan()))
			return
		}
	}

	m := symbols.NewMethod(raw.Name, params, ret, native, raw.Sp)
	owner.AddMethod(m)
	a.methodDefs = append(a.methodDefs, methodEntry{def: raw, sym: m})
}

func (a *Analyzer) registerConstructor(owner *symbols.Type, raw *ast.ConstructorDefinition) {
	native := hasSpecifier(raw.Specifiers, "native")
	if native && raw.Body != nil {
		a.issue(diag.NativeConstructorHasBody(a.locale, raw.Sp, owner.Name()))
	}
	if !native && raw.Body == nil {
		a.issue(diag.ConstructorMissingBody(a.locale, raw.Sp, owner.Name()))
	}

	params := a.resolveParams(raw.Parameters)
	if isCopyConstructorSignature(owner, params) {
		a.issue(diag.CopyConstructorNotAllowed(a.locale, raw.Sp, owner.Name(), owner.Name()))
		return
	}
	for _, cand := range owner.Constructors() {
		if sameParamTypes(cand.Params(), params) {
			a.issue(diag.ConstructorAlreadyDefined(a.locale, raw.Sp, owner.Name(), cand.DeclSpan()))
			return
		}
	}

	c := symbols.NewConstructor(params, native, raw.Sp)
	owner.AddConstructor(c)
	a.ctorDefs = append(a.ctorDefs, ctorEntry{def: raw, sym: c, owner: owner})
}

// registerGlobals is pass 3: free functions and global variables, added to
// the root namespace.
func (a *Analyzer) registerGlobals() {
	for _, def := range a.program.Definitions {
		switch g := def.(type) {
		case *ast.FunctionDefinition:
			a.registerFunction(g)
		case *ast.VariablesDefinition:
			for _, v := range g.Variables {
				a.registerGlobalVariable(v)
			}
		}
	}
}

func (a *Analyzer) registerFunction(raw *ast.FunctionDefinition) {
	native := hasSpecifier(raw.Specifiers, "native")
	if native && raw.Body != nil {
		a.issue(diag.NativeFunctionHasBody(a.locale, raw.Sp, raw.Name))
	}
	if !native && raw.Body == nil {
		a.issue(diag.FunctionMissingBody(a.locale, raw.Sp, raw.Name))
	}

	params := a.resolveParams(raw.Parameters)
	ret := a.resolveTypeRef(a.root, raw.ReturnType)

	if existing, ok := a.root.ResolveLocal(raw.Name); ok {
		switch prior := existing.(type) {
		case *symbols.OverloadedFunction:
			for _, cand := range prior.Candidates() {
				if sameParamTypes(cand.Params(), params) {
					a.issue(diag.FunctionAlreadyDefined(a.locale, raw.Sp, raw.Name, cand.DeclSpan()))
					return
				}
			}
			f := symbols.NewFunction(raw.Name, params, ret, native, raw.Sp)
			prior.AddCandidate(f)
			a.funcDefs = append(a.funcDefs, funcEntry{def: raw, sym: f})
		case *symbols.Function:
			if sameParamTypes(prior.Params(), params) {
				a.issue(diag.FunctionAlreadyDefined(a.locale, raw.Sp, raw.Name, prior.DeclSpan()))
				return
			}
			f := symbols.NewFunction(raw.Name, params, ret, native, raw.Sp)
			a.root.Replace(symbols.NewOverloadedFunction(raw.Name, prior, f))
			a.funcDefs = append(a.funcDefs, funcEntry{def: raw, sym: f})
		default:
			a.issue(diag.NameAlreadyTaken(a.locale, raw.Sp, raw.Name, kindTerm(existing.Kind()), existing.DeclSpan()))
		}
		return
	}

	f := symbols.NewFunction(raw.Name, params, ret, native, raw.Sp)
	a.root.Define(f)
	a.funcDefs = append(a.funcDefs, funcEntry{def: raw, sym: f})
}

func (a *Analyzer) registerGlobalVariable(raw *ast.VariableDefinition) {
	typ := a.resolveTypeRef(a.root, raw.Type)
	if existing, ok := a.root.ResolveLocal(raw.Name); ok {
		a.issue(diag.NameAlreadyTaken(a.locale, raw.Sp, raw.Name, kindTerm(existing.Kind()), existing.DeclSpan()))
		return
	}
	v := symbols.NewVariable(raw.Name, typ, raw.Sp)
	a.root.Define(v)
	a.globalVarDefs = append(a.globalVarDefs, varEntry{def: raw, sym: v})
}

func (a *Analyzer) resolveParams(raw []*ast.Parameter) []symbols.Parameter {
	params := make([]symbols.Parameter, len(raw))
	for i, p := range raw {
		params[i] = symbols.Parameter{Name: p.Name, Type: a.resolveTypeRef(a.root, p.Type)}
	}
	return params
}

func hasSpecifier(specs []ast.Specifier, name string) bool {
	for _, s := range specs {
		if s.Name == name {
			return true
		}
	}
	return false
}

func sameParamTypes(a []symbols.Parameter, b []symbols.Parameter) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Type.Underlying() != b[i].Type.Underlying() || a[i].Type.IsReference() != b[i].Type.IsReference() {
			return false
		}
	}
	return true
}
