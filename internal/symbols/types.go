package symbols

import (
	"sort"

	"github.com/maruel/natural"

	"github.com/psenchanka/colang/internal/source"
)

// TypeSymbol is implemented by both *Type and *ReferenceType, so the
// expression and statement analysers can work with "the type of this
// expression" without caring up front whether it's a reference.
type TypeSymbol interface {
	Symbol
	// Underlying returns the plain value type: itself for a *Type, the
	// pointee for a *ReferenceType.
	Underlying() *Type
	// IsReference reports whether this is a T& rather than a plain T.
	IsReference() bool
}

// Type is a value type: one of CO's four primitives, or a user-defined
// type with fields, methods, and constructors. CO has no inheritance, so
// a Type's only relationship to other types is "my fields are typed in
// terms of them."
type Type struct {
	name      string
	sp        source.Span
	primitive bool

	fields       []*Field
	methods      map[string]Symbol // *Method, or *OverloadedMethod once a name has 2+ candidates
	constructors []*Constructor

	ref *ReferenceType // lazily built and cached by Reference()
}

// NewType declares a new, empty user type; fields/methods/constructors are
// added afterward as name resolution's later passes discover them.
func NewType(name string, sp source.Span) *Type {
	return &Type{name: name, sp: sp, methods: map[string]Symbol{}}
}

func newPrimitive(name string) *Type {
	return &Type{name: name, primitive: true, methods: map[string]Symbol{}}
}

// Predeclared primitive types and the error-recovery sentinel. Unknown is
// never a real type: it's what a failed lookup resolves to, and it
// converts to and from everything so that one error doesn't cascade into
// dozens of follow-on "no such operator"/"wrong argument type" diagnostics
// over the same mistake.
var (
	IntType    = newPrimitive("int")
	DoubleType = newPrimitive("double")
	BoolType   = newPrimitive("bool")
	VoidType   = newPrimitive("void")
	Unknown    = newPrimitive("<unknown>")
)

func (t *Type) Name() string             { return t.name }
func (t *Type) Kind() Kind                { return KindType }
func (t *Type) DeclSpan() source.Span     { return t.sp }
func (t *Type) Underlying() *Type         { return t }
func (t *Type) IsReference() bool         { return false }
func (t *Type) IsPrimitive() bool         { return t.primitive }
func (t *Type) Fields() []*Field          { return t.fields }
func (t *Type) Constructors() []*Constructor { return t.constructors }

// Reference returns the (lazily created) T& wrapper for t. The type
// resolver builds these on demand rather than eagerly for every type,
// since most types are never referenced.
func (t *Type) Reference() *ReferenceType {
	if t.ref == nil {
		t.ref = &ReferenceType{elem: t}
	}
	return t.ref
}

// Field looks up a field declared directly on t (CO has no inheritance,
// so there is never a base type to fall back to).
func (t *Type) Field(name string) (*Field, bool) {
	for _, f := range t.fields {
		if f.name == name {
			return f, true
		}
	}
	return nil, false
}

// AddField registers a new field. Duplicate-name detection is the name
// resolver's job (it has the span of the earlier definition to report
// against), not this type's.
func (t *Type) AddField(f *Field) {
	f.owner = t
	t.fields = append(t.fields, f)
}

// Method looks up the symbol registered under name, if any: a *Method
// while only one has been added, or a *OverloadedMethod once a second
// candidate arrived.
func (t *Type) Method(name string) (Symbol, bool) {
	sym, ok := t.methods[name]
	return sym, ok
}

// MethodSignatures returns every candidate registered under name, whether
// it's currently a single *Method or a promoted *OverloadedMethod. Used by
// overload resolution, which always wants the full candidate list.
func (t *Type) MethodSignatures(name string) []Signature {
	sym, ok := t.methods[name]
	if !ok {
		return nil
	}
	switch s := sym.(type) {
	case *Method:
		return []Signature{s}
	case *OverloadedMethod:
		return s.Signatures()
	default:
		return nil
	}
}

// AllMethods returns every method of t across every name, in natural name
// order, for callers that enumerate a type's members (symbol dumps, the
// backend walker) rather than looking one name up.
func (t *Type) AllMethods() []Signature {
	names := make([]string, 0, len(t.methods))
	for name := range t.methods {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })
	var out []Signature
	for _, name := range names {
		out = append(out, t.MethodSignatures(name)...)
	}
	return out
}

// AddMethod registers m under its name: the first method of that name is
// stored directly, a second promotes the slot to an OverloadedMethod.
func (t *Type) AddMethod(m *Method) {
	m.owner = t
	existing, ok := t.methods[m.name]
	if !ok {
		t.methods[m.name] = m
		return
	}
	if set, isSet := existing.(*OverloadedMethod); isSet {
		set.candidates = append(set.candidates, m)
		return
	}
	first := existing.(*Method)
	t.methods[m.name] = &OverloadedMethod{name: m.name, candidates: []*Method{first, m}}
}

// AddConstructor registers a constructor overload.
func (t *Type) AddConstructor(c *Constructor) {
	c.owner = t
	t.constructors = append(t.constructors, c)
}

// ReferenceType is CO's "T&": never itself referenced again, carrying no
// members of its own beyond forwarding to its Element's. Implicit
// dereferencing (T& used where T is expected) is the only conversion
// defined on it; going the other way (T used where T& is expected) is
// never legal, since there's no way to manufacture a reference out of a
// plain value.
type ReferenceType struct {
	elem *Type
}

func (r *ReferenceType) Name() string         { return r.elem.name + "&" }
func (r *ReferenceType) Kind() Kind            { return KindType }
func (r *ReferenceType) DeclSpan() source.Span { return r.elem.sp }
func (r *ReferenceType) Underlying() *Type     { return r.elem }
func (r *ReferenceType) IsReference() bool     { return true }
func (r *ReferenceType) Element() *Type        { return r.elem }
