package backend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/psenchanka/colang/internal/semantic"
	"github.com/psenchanka/colang/internal/symbols"
)

// prelude is the fixed front matter of every emitted translation unit: the
// operator macros primitives' native methods map onto, and the I/O,
// assertion, and exponentiation helpers the builtin functions map onto.
const prelude = `#include <stdlib.h>
#include <stdio.h>
#include <math.h>
#include <stdint.h>

#define _add(a, b) ((a) + (b))
#define _sub(a, b) ((a) - (b))
#define _mul(a, b) ((a) * (b))
#define _div(a, b) ((a) / (b))
#define _lt(a, b) ((a) < (b))
#define _gt(a, b) ((a) > (b))
#define _le(a, b) ((a) <= (b))
#define _ge(a, b) ((a) >= (b))
#define _eq(a, b) ((a) == (b))
#define _ne(a, b) ((a) != (b))
#define _and(a, b) ((a) && (b))
#define _or(a, b) ((a) || (b))
#define _not(a) (!(a))
#define _neg(a) (-(a))
#define _assign(p, v) (*(p) = (v), (p))
#define _dblToInt(v) ((int32_t)(v))
#define _intToDbl(v) ((double)(v))

static void _writeInt(int32_t v) { printf("%d", (int)v); }
static void _writeIntLn(int32_t v) { printf("%d\n", (int)v); }
static void _writeDbl(double v) { printf("%g", v); }
static void _writeDblLn(double v) { printf("%g\n", v); }
static void _writeBool(int32_t v) { fputs(v ? "true" : "false", stdout); }
static void _writeBoolLn(int32_t v) { puts(v ? "true" : "false"); }
static void _assert(int32_t cond) {
	if (!cond) {
		fputs("assertion failed\n", stderr);
		exit(1);
	}
}
static int32_t _powInt(int32_t base, int32_t exp) {
	int32_t r = 1;
	while (exp > 0) {
		if (exp & 1) r *= base;
		base *= base;
		exp >>= 1;
	}
	return r;
}
static double _powDbl(double base, double exp) { return pow(base, exp); }
`

type emitter struct {
	sb      strings.Builder
	gen     *nameGen
	reach   *reachable
	buildID string
}

func (e *emitter) emit(prog *semantic.Program) ([]byte, error) {
	if e.buildID != "" {
		fmt.Fprintf(&e.sb, "/* _COCO_BUILD_ID: %s */\n", e.buildID)
	}
	e.sb.WriteString(prelude)

	e.emitTypes()
	e.emitGlobalDeclarations()
	if err := e.emitPrototypes(); err != nil {
		return nil, err
	}
	e.emitNativeConstructors()
	if err := e.emitGlobalInit(); err != nil {
		return nil, err
	}
	if err := e.emitDefinitions(); err != nil {
		return nil, err
	}
	e.emitMain(prog)

	return []byte(e.sb.String()), nil
}

// cType maps a CO type onto its C spelling. References are pointers.
func (e *emitter) cType(ts symbols.TypeSymbol) string {
	base := e.cValueType(ts.Underlying())
	if ts.IsReference() {
		return base + "*"
	}
	return base
}

func (e *emitter) cValueType(t *symbols.Type) string {
	switch t {
	case symbols.IntType:
		return "int32_t"
	case symbols.DoubleType:
		return "double"
	case symbols.BoolType:
		return "int32_t"
	case symbols.VoidType:
		return "void"
	default:
		return e.gen.nameFor(t, t.Name())
	}
}

func (e *emitter) fieldName(f *symbols.Field) string {
	return e.gen.nameFor(f, f.Owner().Name()+"_"+f.Name())
}

func (e *emitter) varName(v *symbols.Variable) string {
	return e.gen.nameFor(v, v.Name())
}

func (e *emitter) functionName(fn *symbols.Function) string {
	return e.gen.nameFor(fn, fn.Name())
}

func (e *emitter) methodName(m *symbols.Method) string {
	return e.gen.nameFor(m, m.Owner().Name()+"_"+m.Name())
}

// ctorName names a constructor by its container, per CO's rule that
// constructors share their type's name; the collision with the type's own
// C identifier is resolved by the generator's suffixing.
func (e *emitter) ctorName(c *symbols.Constructor) string {
	if c.IsNative() {
		if len(c.Params()) == 0 {
			return e.gen.nameFor(c, c.Owner().Name()+"_default")
		}
		return e.gen.nameFor(c, c.Owner().Name()+"_copy")
	}
	return e.gen.nameFor(c, c.Owner().Name())
}

func (e *emitter) emitTypes() {
	if len(e.reach.types) == 0 {
		return
	}
	e.sb.WriteString("\n")
	for _, t := range e.reach.types {
		name := e.cValueType(t)
		fmt.Fprintf(&e.sb, "typedef struct %s %s;\n", name, name)
	}
	for _, t := range e.reach.types {
		fmt.Fprintf(&e.sb, "\nstruct %s {\n", e.cValueType(t))
		if len(t.Fields()) == 0 {
			e.sb.WriteString("\tchar _empty;\n")
		}
		for _, f := range t.Fields() {
			fmt.Fprintf(&e.sb, "\t%s %s;\n", e.cType(f.Type()), e.fieldName(f))
		}
		e.sb.WriteString("};\n")
	}
}

func (e *emitter) emitGlobalDeclarations() {
	if len(e.reach.globals) == 0 {
		return
	}
	e.sb.WriteString("\n")
	for _, g := range e.reach.globals {
		fmt.Fprintf(&e.sb, "static %s %s;\n", e.cType(g.Var.Type()), e.varName(g.Var))
	}
}

func (e *emitter) emitPrototypes() error {
	e.sb.WriteString("\n")
	for _, c := range e.reach.nativeCtors {
		e.sb.WriteString("static " + e.nativeCtorSignature(c) + ";\n")
	}
	for _, cb := range e.reach.ctors {
		e.sb.WriteString("static " + e.ctorSignature(cb) + ";\n")
	}
	for _, mb := range e.reach.methods {
		e.sb.WriteString("static " + e.methodSignatureC(mb) + ";\n")
	}
	for _, fb := range e.reach.functions {
		e.sb.WriteString("static " + e.functionSignatureC(fb) + ";\n")
	}
	return nil
}

func (e *emitter) paramList(vars []*symbols.Variable) string {
	if len(vars) == 0 {
		return "void"
	}
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = fmt.Sprintf("%s %s", e.cType(v.Type()), e.varName(v))
	}
	return strings.Join(parts, ", ")
}

func (e *emitter) functionSignatureC(fb *semantic.FunctionBody) string {
	return fmt.Sprintf("%s %s(%s)", e.cType(fb.Fn.ReturnType()), e.functionName(fb.Fn), e.paramList(fb.ParamVars))
}

func (e *emitter) methodSignatureC(mb *semantic.MethodBody) string {
	owner := e.cValueType(mb.Method.Owner())
	params := fmt.Sprintf("%s* this", owner)
	if len(mb.ParamVars) > 0 {
		params += ", " + e.paramList(mb.ParamVars)
	}
	return fmt.Sprintf("%s %s(%s)", e.cType(mb.Method.ReturnType()), e.methodName(mb.Method), params)
}

func (e *emitter) ctorSignature(cb *semantic.ConstructorBody) string {
	owner := e.cValueType(cb.Ctor.Owner())
	return fmt.Sprintf("%s %s(%s)", owner, e.ctorName(cb.Ctor), e.paramList(cb.ParamVars))
}

func (e *emitter) nativeCtorSignature(c *symbols.Constructor) string {
	owner := e.cValueType(c.Owner())
	if len(c.Params()) == 0 {
		return fmt.Sprintf("%s %s(void)", owner, e.ctorName(c))
	}
	return fmt.Sprintf("%s %s(%s other)", owner, e.ctorName(c), owner)
}

// emitNativeConstructors generates the bodies of the synthesised default
// and copy constructors of reachable user types: zero construction and a
// plain struct copy.
func (e *emitter) emitNativeConstructors() {
	for _, c := range e.reach.nativeCtors {
		e.sb.WriteString("\nstatic " + e.nativeCtorSignature(c) + " {\n")
		if len(c.Params()) == 0 {
			fmt.Fprintf(&e.sb, "\t%s v = {0};\n\treturn v;\n", e.cValueType(c.Owner()))
		} else {
			e.sb.WriteString("\treturn other;\n")
		}
		e.sb.WriteString("}\n")
	}
}

func (e *emitter) emitGlobalInit() error {
	if len(e.reach.globals) == 0 {
		return nil
	}
	e.sb.WriteString("\nstatic void _initGlobals(void) {\n")
	for _, g := range e.reach.globals {
		init, err := e.constructorExpr(g)
		if err != nil {
			return err
		}
		fmt.Fprintf(&e.sb, "\t%s = %s;\n", e.varName(g.Var), init)
	}
	e.sb.WriteString("}\n")
	return nil
}

func (e *emitter) emitDefinitions() error {
	for _, cb := range e.reach.ctors {
		e.sb.WriteString("\nstatic " + e.ctorSignature(cb) + " {\n")
		owner := e.cValueType(cb.Ctor.Owner())
		fmt.Fprintf(&e.sb, "\t%s _self = {0};\n\t%s* this = &_self;\n", owner, owner)
		if err := e.emitBlockBody(cb.Body, 1, true); err != nil {
			return err
		}
		e.sb.WriteString("\treturn _self;\n}\n")
	}
	for _, mb := range e.reach.methods {
		e.sb.WriteString("\nstatic " + e.methodSignatureC(mb) + " {\n")
		if err := e.emitBlockBody(mb.Body, 1, false); err != nil {
			return err
		}
		e.sb.WriteString("}\n")
	}
	for _, fb := range e.reach.functions {
		e.sb.WriteString("\nstatic " + e.functionSignatureC(fb) + " {\n")
		if err := e.emitBlockBody(fb.Body, 1, false); err != nil {
			return err
		}
		e.sb.WriteString("}\n")
	}
	return nil
}

func (e *emitter) emitMain(prog *semantic.Program) {
	e.sb.WriteString("\nint main(void) {\n")
	if len(e.reach.globals) > 0 {
		e.sb.WriteString("\t_initGlobals();\n")
	}
	fmt.Fprintf(&e.sb, "\t%s();\n\treturn 0;\n}\n", e.functionName(prog.Main))
}

// emitBlockBody writes a block's statements without surrounding braces,
// for bodies whose braces the caller already opened.
func (e *emitter) emitBlockBody(b *semantic.Block, indent int, inCtor bool) error {
	for _, stmt := range b.Statements {
		if err := e.emitStatement(stmt, indent, inCtor); err != nil {
			return err
		}
	}
	return nil
}

func (e *emitter) indentBy(n int) {
	e.sb.WriteString(strings.Repeat("\t", n))
}

func (e *emitter) emitStatement(s semantic.Statement, indent int, inCtor bool) error {
	switch st := s.(type) {
	case *semantic.ExprStatement:
		expr, err := e.expr(st.Expr)
		if err != nil {
			return err
		}
		e.indentBy(indent)
		e.sb.WriteString(expr + ";\n")
		return nil
	case *semantic.Block:
		e.indentBy(indent)
		e.sb.WriteString("{\n")
		if err := e.emitBlockBody(st, indent+1, inCtor); err != nil {
			return err
		}
		e.indentBy(indent)
		e.sb.WriteString("}\n")
		return nil
	case *semantic.VariableConstructorCall:
		init, err := e.constructorExpr(st)
		if err != nil {
			return err
		}
		e.indentBy(indent)
		fmt.Fprintf(&e.sb, "%s %s = %s;\n", e.cType(st.Var.Type()), e.varName(st.Var), init)
		return nil
	case *semantic.If:
		cond, err := e.expr(st.Condition)
		if err != nil {
			return err
		}
		e.indentBy(indent)
		fmt.Fprintf(&e.sb, "if (%s) {\n", cond)
		if err := e.emitNested(st.Then, indent+1, inCtor); err != nil {
			return err
		}
		e.indentBy(indent)
		e.sb.WriteString("}")
		if st.Else != nil {
			e.sb.WriteString(" else {\n")
			if err := e.emitNested(st.Else, indent+1, inCtor); err != nil {
				return err
			}
			e.indentBy(indent)
			e.sb.WriteString("}")
		}
		e.sb.WriteString("\n")
		return nil
	case *semantic.While:
		cond, err := e.expr(st.Condition)
		if err != nil {
			return err
		}
		e.indentBy(indent)
		fmt.Fprintf(&e.sb, "while (%s) {\n", cond)
		if err := e.emitNested(st.Body, indent+1, inCtor); err != nil {
			return err
		}
		e.indentBy(indent)
		e.sb.WriteString("}\n")
		return nil
	case *semantic.Return:
		e.indentBy(indent)
		switch {
		case inCtor:
			e.sb.WriteString("return _self;\n")
		case st.Value != nil:
			value, err := e.expr(st.Value)
			if err != nil {
				return err
			}
			e.sb.WriteString("return " + value + ";\n")
		default:
			e.sb.WriteString("return;\n")
		}
		return nil
	default:
		return fmt.Errorf("unexpected statement %T in emitter", s)
	}
}

// emitNested emits an if/while branch: a Block's statements are spliced
// into the braces the caller opened, any other statement is emitted as the
// braces' single line.
func (e *emitter) emitNested(s semantic.Statement, indent int, inCtor bool) error {
	if b, ok := s.(*semantic.Block); ok {
		return e.emitBlockBody(b, indent, inCtor)
	}
	return e.emitStatement(s, indent, inCtor)
}

// constructorExpr renders the right-hand side of a variable-definition
// site: the constructor call that produces the variable's initial value,
// or the pointer being bound when the variable is reference-typed.
func (e *emitter) constructorExpr(vcc *semantic.VariableConstructorCall) (string, error) {
	if vcc.Ctor == nil {
		if len(vcc.Args) == 1 {
			return e.expr(vcc.Args[0])
		}
		return "", fmt.Errorf("variable %q has no constructor", vcc.Var.Name())
	}
	return e.ctorCall(vcc.Ctor, vcc.Args)
}

func (e *emitter) ctorCall(c *symbols.Constructor, args []semantic.Expression) (string, error) {
	if c.IsNative() && c.Owner().IsPrimitive() {
		if len(args) == 0 {
			if c.Owner() == symbols.DoubleType {
				return "0.0", nil
			}
			return "0", nil
		}
		return e.expr(args[0])
	}
	rendered, err := e.exprs(args)
	if err != nil {
		return "", err
	}
	return e.ctorName(c) + "(" + strings.Join(rendered, ", ") + ")", nil
}

func (e *emitter) exprs(args []semantic.Expression) ([]string, error) {
	out := make([]string, len(args))
	for i, a := range args {
		s, err := e.expr(a)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func (e *emitter) expr(x semantic.Expression) (string, error) {
	switch ex := x.(type) {
	case *semantic.IntLiteral:
		if ex.Value == -2147483648 {
			return "(-2147483647 - 1)", nil
		}
		return strconv.FormatInt(int64(ex.Value), 10), nil
	case *semantic.DoubleLiteral:
		return doubleLiteral(ex.Value), nil
	case *semantic.BoolLiteral:
		if ex.Value {
			return "1", nil
		}
		return "0", nil
	case *semantic.VariableRef:
		name := e.varName(ex.Var)
		if ex.Var.Type().IsReference() {
			return name, nil
		}
		return "(&" + name + ")", nil
	case *semantic.ThisRef:
		return "this", nil
	case *semantic.ImplicitDereference:
		inner, err := e.expr(ex.Inner)
		if err != nil {
			return "", err
		}
		return "(*" + inner + ")", nil
	case *semantic.FieldAccess:
		return e.fieldAccess(ex)
	case *semantic.FunctionCall:
		return e.functionCall(ex.Fn, ex.Args)
	case *semantic.ConversionCall:
		return e.functionCall(ex.Fn, []semantic.Expression{ex.Arg})
	case *semantic.MethodCall:
		return e.methodCall(ex)
	case *semantic.ConstructorCall:
		return e.ctorCall(ex.Ctor, ex.Args)
	case *semantic.Invalid:
		return "", fmt.Errorf("invalid expression survived analysis")
	default:
		return "", fmt.Errorf("unexpected expression %T in emitter", x)
	}
}

func (e *emitter) fieldAccess(fa *semantic.FieldAccess) (string, error) {
	inst, err := e.expr(fa.Instance)
	if err != nil {
		return "", err
	}
	member := e.fieldName(fa.Field)
	if fa.Instance.Type().IsReference() {
		if fa.Field.Type().IsReference() {
			return "(" + inst + ")->" + member, nil
		}
		return "(&(" + inst + ")->" + member + ")", nil
	}
	return "(" + inst + ")." + member, nil
}

func (e *emitter) functionCall(fn *symbols.Function, args []semantic.Expression) (string, error) {
	rendered, err := e.exprs(args)
	if err != nil {
		return "", err
	}
	name := ""
	if fn.IsNative() {
		name, err = nativeFunctionName(fn)
		if err != nil {
			return "", err
		}
	} else {
		name = e.functionName(fn)
	}
	return name + "(" + strings.Join(rendered, ", ") + ")", nil
}

func (e *emitter) methodCall(mc *semantic.MethodCall) (string, error) {
	inst, err := e.expr(mc.Instance)
	if err != nil {
		return "", err
	}
	args, err := e.exprs(mc.Args)
	if err != nil {
		return "", err
	}

	if mc.Method.IsNative() {
		helper, err := nativeMethodName(mc.Method)
		if err != nil {
			return "", err
		}
		// The operator macros take their receiver by value; assign is the
		// one native that wants the reference itself.
		if helper != "_assign" && mc.Instance.Type().IsReference() {
			inst = "(*" + inst + ")"
		}
		return helper + "(" + strings.Join(append([]string{inst}, args...), ", ") + ")", nil
	}

	// A user method receives `this` as a pointer. A plain-value receiver
	// (a call chained off a function result, say) is materialised through
	// a compound literal, whose array-to-pointer decay yields an
	// addressable temporary with by-value semantics.
	if !mc.Instance.Type().IsReference() {
		inst = "(" + e.cValueType(mc.Instance.Type().Underlying()) + "[1]){" + inst + "}"
	}
	return e.methodName(mc.Method) + "(" + strings.Join(append([]string{inst}, args...), ", ") + ")", nil
}

// doubleLiteral renders a float64 so C reads it back as a double: the
// shortest representation that round-trips, forced to carry a decimal
// point or exponent.
func doubleLiteral(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
