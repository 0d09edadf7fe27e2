package backend

import (
	"fmt"

	"github.com/maruel/natural"
	"github.com/psenchanka/colang/internal/semantic"
	"github.com/psenchanka/colang/internal/symbols"
)

// reachable is everything the emitter has to produce C for: user types in
// an order that satisfies their field-layout dependencies, global
// constructor calls in declaration order, and every callable body found by
// walking the typed tree outward from main. Native constructors of user
// types (the synthesised default/copy pair) are tracked separately since
// they have no CO body but still need a generated helper.
type reachable struct {
	types       []*symbols.Type
	globals     []*semantic.VariableConstructorCall
	functions   []*semantic.FunctionBody
	methods     []*semantic.MethodBody
	ctors       []*semantic.ConstructorBody
	nativeCtors []*symbols.Constructor
}

// walker computes the reachable set. It indexes the program's bodies up
// front, then runs a worklist from main: each callable's body is walked
// exactly once, in discovery order, which keeps the emitted C stable for a
// given input.
type walker struct {
	prog *semantic.Program

	fnBodies     map[*symbols.Function]*semantic.FunctionBody
	methodBodies map[*symbols.Method]*semantic.MethodBody
	ctorBodies   map[*symbols.Constructor]*semantic.ConstructorBody
	globalVars   map[*symbols.Variable]*semantic.VariableConstructorCall

	seenFns     map[*symbols.Function]bool
	seenMethods map[*symbols.Method]bool
	seenCtors   map[*symbols.Constructor]bool
	seenTypes   map[*symbols.Type]bool
	seenGlobals map[*symbols.Variable]bool

	out reachable
}

func newWalker(prog *semantic.Program) *walker {
	w := &walker{
		prog:         prog,
		fnBodies:     map[*symbols.Function]*semantic.FunctionBody{},
		methodBodies: map[*symbols.Method]*semantic.MethodBody{},
		ctorBodies:   map[*symbols.Constructor]*semantic.ConstructorBody{},
		globalVars:   map[*symbols.Variable]*semantic.VariableConstructorCall{},
		seenFns:      map[*symbols.Function]bool{},
		seenMethods:  map[*symbols.Method]bool{},
		seenCtors:    map[*symbols.Constructor]bool{},
		seenTypes:    map[*symbols.Type]bool{},
		seenGlobals:  map[*symbols.Variable]bool{},
	}
	for _, fb := range prog.Functions {
		w.fnBodies[fb.Fn] = fb
	}
	for _, mb := range prog.Methods {
		w.methodBodies[mb.Method] = mb
	}
	for _, cb := range prog.Constructors {
		w.ctorBodies[cb.Ctor] = cb
	}
	for _, g := range prog.Globals {
		w.globalVars[g.Var] = g
	}
	return w
}

func (w *walker) walk() (*reachable, error) {
	if w.prog.Main == nil {
		return nil, fmt.Errorf("program has no entry point")
	}

	// A global constructed by a user-written constructor is kept even when
	// nothing references the variable: dropping it would drop the
	// constructor body's side effects.
	for _, g := range w.prog.Globals {
		if g.Ctor != nil && !g.Ctor.IsNative() {
			w.markGlobal(g)
		}
	}

	w.markFunction(w.prog.Main)
	if err := w.drain(); err != nil {
		return nil, err
	}

	// Globals initialise in declaration order regardless of the order the
	// walk discovered them in.
	ordered := make([]*semantic.VariableConstructorCall, 0, len(w.out.globals))
	for _, g := range w.prog.Globals {
		if w.seenGlobals[g.Var] {
			ordered = append(ordered, g)
		}
	}
	w.out.globals = ordered

	sorted, err := topoSortTypes(w.out.types)
	if err != nil {
		return nil, err
	}
	w.out.types = sorted
	return &w.out, nil
}

// drain walks bodies until no new callable is discovered. The slices in
// w.out grow while this loop runs, so it re-checks lengths each round.
func (w *walker) drain() error {
	doneFns, doneMethods, doneCtors, doneGlobals := 0, 0, 0, 0
	for {
		progress := false
		for ; doneFns < len(w.out.functions); doneFns++ {
			progress = true
			fb := w.out.functions[doneFns]
			w.markParams(fb.Fn.Params(), fb.Fn.ReturnType())
			if err := w.walkBlock(fb.Body); err != nil {
				return err
			}
		}
		for ; doneMethods < len(w.out.methods); doneMethods++ {
			progress = true
			mb := w.out.methods[doneMethods]
			w.markType(mb.Method.Owner())
			w.markParams(mb.Method.Params(), mb.Method.ReturnType())
			if err := w.walkBlock(mb.Body); err != nil {
				return err
			}
		}
		for ; doneCtors < len(w.out.ctors); doneCtors++ {
			progress = true
			cb := w.out.ctors[doneCtors]
			w.markType(cb.Ctor.Owner())
			w.markParams(cb.Ctor.Params(), nil)
			if err := w.walkBlock(cb.Body); err != nil {
				return err
			}
		}
		for ; doneGlobals < len(w.out.globals); doneGlobals++ {
			progress = true
			g := w.out.globals[doneGlobals]
			if err := w.walkStatement(g); err != nil {
				return err
			}
		}
		if !progress {
			return nil
		}
	}
}

func (w *walker) markFunction(fn *symbols.Function) {
	if fn.IsNative() || w.seenFns[fn] {
		return
	}
	w.seenFns[fn] = true
	if fb, ok := w.fnBodies[fn]; ok {
		w.out.functions = append(w.out.functions, fb)
	}
}

func (w *walker) markMethod(m *symbols.Method) {
	if m.IsNative() || w.seenMethods[m] {
		return
	}
	w.seenMethods[m] = true
	if mb, ok := w.methodBodies[m]; ok {
		w.out.methods = append(w.out.methods, mb)
	}
}

func (w *walker) markCtor(c *symbols.Constructor) {
	if w.seenCtors[c] {
		return
	}
	w.seenCtors[c] = true
	w.markType(c.Owner())
	if c.IsNative() {
		if !c.Owner().IsPrimitive() {
			w.out.nativeCtors = append(w.out.nativeCtors, c)
		}
		return
	}
	if cb, ok := w.ctorBodies[c]; ok {
		w.out.ctors = append(w.out.ctors, cb)
	}
}

func (w *walker) markGlobal(g *semantic.VariableConstructorCall) {
	if w.seenGlobals[g.Var] {
		return
	}
	w.seenGlobals[g.Var] = true
	w.markTypeSymbol(g.Var.Type())
	w.out.globals = append(w.out.globals, g)
}

func (w *walker) markParams(params []symbols.Parameter, ret symbols.TypeSymbol) {
	for _, p := range params {
		w.markTypeSymbol(p.Type)
	}
	if ret != nil {
		w.markTypeSymbol(ret)
	}
}

func (w *walker) markTypeSymbol(ts symbols.TypeSymbol) {
	if ts == nil {
		return
	}
	w.markType(ts.Underlying())
}

// markType records a user type and, transitively, every type its fields
// are laid out in terms of.
func (w *walker) markType(t *symbols.Type) {
	if t == nil || t.IsPrimitive() || w.seenTypes[t] {
		return
	}
	w.seenTypes[t] = true
	w.out.types = append(w.out.types, t)
	for _, f := range t.Fields() {
		w.markTypeSymbol(f.Type())
	}
}

func (w *walker) walkBlock(b *semantic.Block) error {
	if b == nil {
		return nil
	}
	for _, stmt := range b.Statements {
		if err := w.walkStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) walkStatement(s semantic.Statement) error {
	switch st := s.(type) {
	case *semantic.ExprStatement:
		return w.walkExpr(st.Expr)
	case *semantic.Block:
		return w.walkBlock(st)
	case *semantic.VariableConstructorCall:
		w.markTypeSymbol(st.Var.Type())
		if st.Ctor != nil {
			w.markCtor(st.Ctor)
		}
		for _, arg := range st.Args {
			if err := w.walkExpr(arg); err != nil {
				return err
			}
		}
		return nil
	case *semantic.If:
		if err := w.walkExpr(st.Condition); err != nil {
			return err
		}
		if err := w.walkStatement(st.Then); err != nil {
			return err
		}
		if st.Else != nil {
			return w.walkStatement(st.Else)
		}
		return nil
	case *semantic.While:
		if err := w.walkExpr(st.Condition); err != nil {
			return err
		}
		return w.walkStatement(st.Body)
	case *semantic.Return:
		if st.Value != nil {
			return w.walkExpr(st.Value)
		}
		return nil
	default:
		return fmt.Errorf("unexpected statement %T in backend walk", s)
	}
}

func (w *walker) walkExpr(e semantic.Expression) error {
	switch ex := e.(type) {
	case *semantic.IntLiteral, *semantic.DoubleLiteral, *semantic.BoolLiteral, *semantic.ThisRef:
		return nil
	case *semantic.VariableRef:
		w.markTypeSymbol(ex.Var.Type())
		if g, ok := w.globalVars[ex.Var]; ok {
			w.markGlobal(g)
		}
		return nil
	case *semantic.FunctionCall:
		w.markFunction(ex.Fn)
		w.markParams(ex.Fn.Params(), ex.Fn.ReturnType())
		return w.walkExprs(ex.Args)
	case *semantic.MethodCall:
		w.markMethod(ex.Method)
		if err := w.walkExpr(ex.Instance); err != nil {
			return err
		}
		return w.walkExprs(ex.Args)
	case *semantic.ConstructorCall:
		w.markCtor(ex.Ctor)
		return w.walkExprs(ex.Args)
	case *semantic.ConversionCall:
		w.markFunction(ex.Fn)
		return w.walkExpr(ex.Arg)
	case *semantic.FieldAccess:
		w.markTypeSymbol(ex.Field.Type())
		return w.walkExpr(ex.Instance)
	case *semantic.ImplicitDereference:
		return w.walkExpr(ex.Inner)
	case *semantic.Invalid:
		return fmt.Errorf("invalid expression survived analysis")
	default:
		return fmt.Errorf("unexpected expression %T in backend walk", e)
	}
}

func (w *walker) walkExprs(exprs []semantic.Expression) error {
	for _, e := range exprs {
		if err := w.walkExpr(e); err != nil {
			return err
		}
	}
	return nil
}

// topoSortTypes orders types so every by-value field's type is defined
// before the struct embedding it. Reference-typed fields are pointers in
// the emitted C and impose no ordering. Among types with no dependency
// between them, natural name order breaks the tie, which keeps the emitted
// translation unit byte-stable across runs. A dependency cycle cannot be
// laid out and is a fatal internal error.
func topoSortTypes(types []*symbols.Type) ([]*symbols.Type, error) {
	inSet := map[*symbols.Type]bool{}
	for _, t := range types {
		inSet[t] = true
	}

	deps := map[*symbols.Type]map[*symbols.Type]bool{}
	for _, t := range types {
		deps[t] = map[*symbols.Type]bool{}
		for _, f := range t.Fields() {
			ft := f.Type().Underlying()
			if f.Type().IsReference() || !inSet[ft] || ft == t {
				if ft == t && !f.Type().IsReference() {
					return nil, fmt.Errorf("type %q contains itself by value", t.Name())
				}
				continue
			}
			deps[t][ft] = true
		}
	}

	var sorted []*symbols.Type
	remaining := append([]*symbols.Type(nil), types...)
	for len(remaining) > 0 {
		var next *symbols.Type
		for _, t := range remaining {
			if len(deps[t]) != 0 {
				continue
			}
			if next == nil || natural.Less(t.Name(), next.Name()) {
				next = t
			}
		}
		if next == nil {
			return nil, fmt.Errorf("cyclic field layout involving type %q", remaining[0].Name())
		}
		sorted = append(sorted, next)
		filtered := remaining[:0]
		for _, t := range remaining {
			if t == next {
				continue
			}
			delete(deps[t], next)
			filtered = append(filtered, t)
		}
		remaining = filtered
	}
	return sorted, nil
}
