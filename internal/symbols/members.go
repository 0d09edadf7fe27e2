package symbols

import "github.com/psenchanka/colang/internal/source"

// Parameter is one entry of a function/method/constructor signature.
type Parameter struct {
	Name string
	Type TypeSymbol
}

// Signature is implemented by every symbol that participates in overload
// resolution: Function, Method, and Constructor.
type Signature interface {
	Symbol
	Params() []Parameter
}

// Field is a value type's data member.
type Field struct {
	name  string
	typ   TypeSymbol
	owner *Type
	sp    source.Span
}

func NewField(name string, typ TypeSymbol, sp source.Span) *Field {
	return &Field{name: name, typ: typ, sp: sp}
}

func (f *Field) Name() string             { return f.name }
func (f *Field) Kind() Kind                { return KindField }
func (f *Field) DeclSpan() source.Span     { return f.sp }
func (f *Field) Type() TypeSymbol          { return f.typ }
func (f *Field) Owner() *Type              { return f.owner }

// Variable is a local or global variable.
type Variable struct {
	name string
	typ  TypeSymbol
	sp   source.Span
}

func NewVariable(name string, typ TypeSymbol, sp source.Span) *Variable {
	return &Variable{name: name, typ: typ, sp: sp}
}

func (v *Variable) Name() string         { return v.name }
func (v *Variable) Kind() Kind            { return KindVariable }
func (v *Variable) DeclSpan() source.Span { return v.sp }
func (v *Variable) Type() TypeSymbol       { return v.typ }

// Function is a free function.
type Function struct {
	name   string
	params []Parameter
	ret    TypeSymbol
	native bool
	sp     source.Span
}

func NewFunction(name string, params []Parameter, ret TypeSymbol, native bool, sp source.Span) *Function {
	return &Function{name: name, params: params, ret: ret, native: native, sp: sp}
}

func (f *Function) Name() string           { return f.name }
func (f *Function) Kind() Kind              { return KindFunction }
func (f *Function) DeclSpan() source.Span   { return f.sp }
func (f *Function) Params() []Parameter     { return f.params }
func (f *Function) ReturnType() TypeSymbol  { return f.ret }
func (f *Function) IsNative() bool          { return f.native }

// Method is a member function of a Type, implicitly taking a `this`
// receiver of that type.
type Method struct {
	name              string
	owner             *Type
	params            []Parameter
	ret               TypeSymbol
	native            bool
	requiresReference bool // true for the auto-generated "assign" method
	sp                source.Span
}

func NewMethod(name string, params []Parameter, ret TypeSymbol, native bool, sp source.Span) *Method {
	return &Method{name: name, params: params, ret: ret, native: native, sp: sp}
}

func (m *Method) Name() string              { return m.name }
func (m *Method) Kind() Kind                 { return KindMethod }
func (m *Method) DeclSpan() source.Span      { return m.sp }
func (m *Method) Params() []Parameter        { return m.params }
func (m *Method) ReturnType() TypeSymbol     { return m.ret }
func (m *Method) Owner() *Type               { return m.owner }
func (m *Method) IsNative() bool             { return m.native }
func (m *Method) RequiresReference() bool    { return m.requiresReference }
func (m *Method) MarkRequiresReference() { m.requiresReference = true }

// Constructor builds a new instance of its owner type. Constructors share
// their owner type's name; CO has no separate constructor-name syntax.
type Constructor struct {
	owner  *Type
	params []Parameter
	native bool
	sp     source.Span
}

func NewConstructor(params []Parameter, native bool, sp source.Span) *Constructor {
	return &Constructor{params: params, native: native, sp: sp}
}

func (c *Constructor) Name() string         { return c.owner.Name() }
func (c *Constructor) Kind() Kind            { return KindConstructor }
func (c *Constructor) DeclSpan() source.Span { return c.sp }
func (c *Constructor) Params() []Parameter   { return c.params }
func (c *Constructor) Owner() *Type          { return c.owner }
func (c *Constructor) IsNative() bool        { return c.native }

// OverloadedFunction bundles every free function sharing one name.
type OverloadedFunction struct {
	name       string
	candidates []*Function
}

func (o *OverloadedFunction) Name() string           { return o.name }
func (o *OverloadedFunction) Kind() Kind              { return KindOverloadedFunction }
func (o *OverloadedFunction) DeclSpan() source.Span   { return o.candidates[0].sp }
func (o *OverloadedFunction) Candidates() []*Function { return o.candidates }

// AddCandidate appends a new overload to the set.
func (o *OverloadedFunction) AddCandidate(f *Function) { o.candidates = append(o.candidates, f) }

// NewOverloadedFunction promotes first and second, the two free functions
// that collided under one name, into an overload set.
func NewOverloadedFunction(name string, first, second *Function) *OverloadedFunction {
	return &OverloadedFunction{name: name, candidates: []*Function{first, second}}
}

func (o *OverloadedFunction) Signatures() []Signature {
	sigs := make([]Signature, len(o.candidates))
	for i, f := range o.candidates {
		sigs[i] = f
	}
	return sigs
}

// OverloadedMethod bundles every method of one Type sharing one name.
type OverloadedMethod struct {
	name       string
	candidates []*Method
}

func (o *OverloadedMethod) Name() string           { return o.name }
func (o *OverloadedMethod) Kind() Kind              { return KindOverloadedMethod }
func (o *OverloadedMethod) DeclSpan() source.Span   { return o.candidates[0].sp }
func (o *OverloadedMethod) Candidates() []*Method   { return o.candidates }

func (o *OverloadedMethod) Signatures() []Signature {
	sigs := make([]Signature, len(o.candidates))
	for i, m := range o.candidates {
		sigs[i] = m
	}
	return sigs
}

// Namespace is the root symbol holding every global type, function, and
// variable. CO has no nested modules, so there is exactly one.
type Namespace struct {
	name string
}

func NewNamespace(name string) *Namespace { return &Namespace{name: name} }

func (n *Namespace) Name() string         { return n.name }
func (n *Namespace) Kind() Kind            { return KindNamespace }
func (n *Namespace) DeclSpan() source.Span { return source.Span{} }
