package symbols

import (
	"sort"

	"github.com/maruel/natural"
)

// Scope is a lexical namespace: the root (global) scope holding every
// type/function/variable, or a block scope nested inside a function body.
// Lookup walks outward through Parent until it reaches the root.
type Scope struct {
	parent  *Scope
	symbols map[string]Symbol
}

// Symbols returns every symbol defined directly in this scope, sorted in
// natural name order so that walks over a scope (backend reachability,
// symbol dumps) are deterministic regardless of map iteration order.
func (s *Scope) Symbols() []Symbol {
	out := make([]Symbol, 0, len(s.symbols))
	for _, sym := range s.symbols {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool {
		return natural.Less(out[i].Name(), out[j].Name())
	})
	return out
}

// NewScope creates a scope nested inside parent. Passing a nil parent
// creates a root scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, symbols: map[string]Symbol{}}
}

// Define adds sym under its own name. If a symbol with that name already
// exists in this exact scope, Define reports it without overwriting, so
// the caller (name resolution) can turn the collision into a diagnostic
// that points back at the original definition.
func (s *Scope) Define(sym Symbol) (existing Symbol, added bool) {
	if existing, found := s.symbols[sym.Name()]; found {
		return existing, false
	}
	s.symbols[sym.Name()] = sym
	return nil, true
}

// Replace overwrites whatever is registered under sym.Name() in this
// scope, unconditionally. Used only to promote a single Function/Method
// into an OverloadedFunction/OverloadedMethod when a second candidate is
// registered under the same name: the original entry is retired in favor
// of an overload set containing both.
func (s *Scope) Replace(sym Symbol) {
	s.symbols[sym.Name()] = sym
}

// Resolve looks up name in this scope, then each enclosing scope in turn.
func (s *Scope) Resolve(name string) (Symbol, bool) {
	if sym, ok := s.symbols[name]; ok {
		return sym, true
	}
	if s.parent != nil {
		return s.parent.Resolve(name)
	}
	return nil, false
}

// ResolveLocal looks up name in this scope only, ignoring any enclosing
// scope. Used to tell a local variable shadowing an outer one (legal)
// apart from a true duplicate definition within the same scope.
func (s *Scope) ResolveLocal(name string) (Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Parent returns the enclosing scope, or nil for the root.
func (s *Scope) Parent() *Scope { return s.parent }

// NewUniverse creates the root scope pre-populated with CO's four
// primitive types. User-declared types, functions, and globals are added
// to this same scope by name resolution's first three passes.
func NewUniverse() *Scope {
	root := NewScope(nil)
	for _, t := range []*Type{IntType, DoubleType, BoolType, VoidType} {
		root.Define(t)
	}
	return root
}
