package symbols

import (
	"testing"

	"github.com/psenchanka/colang/internal/source"
)

func TestReferenceIsCachedAndDereferencesToUnderlying(t *testing.T) {
	vector := NewType("Vector", source.Span{})
	ref1 := vector.Reference()
	ref2 := vector.Reference()
	if ref1 != ref2 {
		t.Fatal("Reference() should return the same *ReferenceType on repeat calls")
	}
	if ref1.Underlying() != vector {
		t.Fatal("reference type's Underlying() should be the element type")
	}
	if ref1.Name() != "Vector&" {
		t.Errorf("Name() = %q, want Vector&", ref1.Name())
	}
}

func TestConvertibleTo(t *testing.T) {
	vector := NewType("Vector", source.Span{})
	ref := vector.Reference()

	cases := []struct {
		name     string
		from, to TypeSymbol
		want     bool
	}{
		{"T to T", vector, vector, true},
		{"T& to T", ref, vector, true},
		{"T to T&", vector, ref, false},
		{"T& to T&", ref, ref, true},
		{"Unknown to T", Unknown, vector, true},
		{"T to Unknown", vector, Unknown, true},
		{"int to double", IntType, DoubleType, false},
	}
	for _, c := range cases {
		if got := ConvertibleTo(c.from, c.to); got != c.want {
			t.Errorf("%s: ConvertibleTo = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestScopeResolveWalksParentChain(t *testing.T) {
	root := NewUniverse()
	child := NewScope(root)

	if _, ok := child.Resolve("int"); !ok {
		t.Fatal("expected child scope to resolve a universe symbol through its parent")
	}

	v := NewVariable("x", IntType, source.Span{})
	child.Define(v)
	if _, ok := root.ResolveLocal("x"); ok {
		t.Fatal("a symbol defined in a child scope must not leak into its parent")
	}
	if sym, ok := child.Resolve("x"); !ok || sym != v {
		t.Fatal("expected child scope to resolve its own symbol")
	}
}

func TestScopeDefineRejectsDuplicateInSameScope(t *testing.T) {
	s := NewScope(nil)
	a := NewVariable("x", IntType, source.Span{})
	b := NewVariable("x", DoubleType, source.Span{})

	if _, added := s.Define(a); !added {
		t.Fatal("first definition of x should succeed")
	}
	existing, added := s.Define(b)
	if added {
		t.Fatal("second definition of x in the same scope should be rejected")
	}
	if existing != a {
		t.Fatal("Define should return the original symbol on collision")
	}
}

func TestResolveOverloadPicksExactMatchOverDereference(t *testing.T) {
	vector := NewType("Vector", source.Span{})
	ref := vector.Reference()

	byValue := NewFunction("plus", []Parameter{{Name: "other", Type: vector}}, vector, false, source.Span{})
	byRef := NewFunction("plus", []Parameter{{Name: "other", Type: ref}}, vector, false, source.Span{})

	best, tied := ResolveOverload([]Signature{byValue, byRef}, []TypeSymbol{ref})
	if tied != nil {
		t.Fatalf("expected an unambiguous winner, got tie: %v", tied)
	}
	if best.Candidate != byRef {
		t.Fatal("expected the exact-match (by-reference) overload to win over a dereferencing one")
	}
}

func TestResolveOverloadReportsAmbiguity(t *testing.T) {
	intParam := NewFunction("f", []Parameter{{Name: "a", Type: IntType}}, IntType, false, source.Span{})
	anotherIntParam := NewFunction("f", []Parameter{{Name: "a", Type: IntType}}, BoolType, false, source.Span{})

	best, tied := ResolveOverload([]Signature{intParam, anotherIntParam}, []TypeSymbol{IntType})
	if best != nil {
		t.Fatalf("expected no single winner, got %v", best)
	}
	if len(tied) != 2 {
		t.Fatalf("expected both candidates tied, got %d", len(tied))
	}
}

func TestResolveOverloadRejectsWrongArgumentCount(t *testing.T) {
	f := NewFunction("f", []Parameter{{Name: "a", Type: IntType}}, IntType, false, source.Span{})
	best, tied := ResolveOverload([]Signature{f}, []TypeSymbol{IntType, IntType})
	if best != nil || tied != nil {
		t.Fatal("expected no match for a wrong argument count")
	}
}

func TestLeastUpperBoundOfValueAndReference(t *testing.T) {
	vector := NewType("Vector", source.Span{})
	ref := vector.Reference()
	if got := LeastUpperBound(vector, ref); got.Underlying() != vector || got.IsReference() {
		t.Fatalf("LeastUpperBound(T, T&) should be plain T, got %v", got)
	}
	other := NewType("Other", source.Span{})
	if got := LeastUpperBound(vector, other); got != Unknown {
		t.Fatalf("LeastUpperBound of unrelated types should be Unknown, got %v", got)
	}
}
