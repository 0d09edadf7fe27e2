package semantic

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/psenchanka/colang/internal/diag"
	"github.com/psenchanka/colang/internal/lexer"
	"github.com/psenchanka/colang/internal/parser"
	"github.com/psenchanka/colang/internal/symbols"
)

// analyzeSource runs the full front end over src and returns the typed
// program plus the analyser's issues. Parse issues fail the test: these
// tests feed syntactically valid programs and probe semantic behavior.
func analyzeSource(t *testing.T, src string) (*Program, []diag.Issue) {
	t.Helper()
	l := lexer.New("test.co", src)
	p := parser.New(l)
	raw := p.ParseProgram()
	if issues := p.Issues(); len(issues) != 0 {
		t.Fatalf("unexpected parse issues: %v", issues)
	}
	a := New(raw)
	prog := a.Analyze()
	return prog, a.Issues()
}

func issueCodes(issues []diag.Issue) []string {
	codes := make([]string, len(issues))
	for i, issue := range issues {
		codes[i] = string(issue.Code)
	}
	return codes
}

func wantCodes(t *testing.T, issues []diag.Issue, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	got := issueCodes(issues)
	if len(got) == 0 {
		got = []string{}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("issue codes mismatch (-want +got):\n%s\nissues: %v", diff, issues)
	}
}

func TestHappyPath(t *testing.T) {
	prog, issues := analyzeSource(t, `
void main() {
	int x = 5;
	writeIntLn(x);
}
`)
	wantCodes(t, issues)
	if prog.Main == nil {
		t.Fatal("expected a validated main function")
	}
	body := prog.Functions[0].Body
	if len(body.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(body.Statements))
	}

	vcc, ok := body.Statements[0].(*VariableConstructorCall)
	if !ok {
		t.Fatalf("statement 0 = %T, want *VariableConstructorCall", body.Statements[0])
	}
	if vcc.Ctor == nil || len(vcc.Ctor.Params()) != 1 {
		t.Fatalf("expected the int copy constructor, got %+v", vcc.Ctor)
	}

	call, ok := body.Statements[1].(*ExprStatement).Expr.(*FunctionCall)
	if !ok {
		t.Fatalf("statement 1 is not a function call")
	}
	// The argument is a variable reference dereferenced down to the
	// by-value parameter.
	deref, ok := call.Args[0].(*ImplicitDereference)
	if !ok {
		t.Fatalf("argument = %T, want *ImplicitDereference", call.Args[0])
	}
	if _, ok := deref.Inner.(*VariableRef); !ok {
		t.Fatalf("dereferenced expression = %T, want *VariableRef", deref.Inner)
	}
}

func TestUnknownNameDoesNotCascade(t *testing.T) {
	_, issues := analyzeSource(t, `
void main() {
	println(y);
}
`)
	wantCodes(t, issues, "E0017")
}

func TestOverloadResolution(t *testing.T) {
	t.Run("exact double match wins", func(t *testing.T) {
		prog, issues := analyzeSource(t, `
void f(int a) {}
void f(double a) {}
void main() {
	f(1.0);
}
`)
		wantCodes(t, issues)
		var mainBody *Block
		for _, fb := range prog.Functions {
			if fb.Fn.Name() == "main" {
				mainBody = fb.Body
			}
		}
		call := mainBody.Statements[0].(*ExprStatement).Expr.(*FunctionCall)
		if call.Fn.Params()[0].Type != symbols.TypeSymbol(symbols.DoubleType) {
			t.Errorf("resolved overload takes %s, want double", call.Fn.Params()[0].Type.Name())
		}
	})

	t.Run("rvalue does not convert to reference", func(t *testing.T) {
		_, issues := analyzeSource(t, `
void g(int& r) {}
void main() {
	g(5);
}
`)
		wantCodes(t, issues, "E0013")
	})

	t.Run("reference parameter receives variable without dereference", func(t *testing.T) {
		prog, issues := analyzeSource(t, `
void g(int& r) {}
void main() {
	int x = 1;
	g(x);
}
`)
		wantCodes(t, issues)
		var mainBody *Block
		for _, fb := range prog.Functions {
			if fb.Fn.Name() == "main" {
				mainBody = fb.Body
			}
		}
		call := mainBody.Statements[1].(*ExprStatement).Expr.(*FunctionCall)
		if _, ok := call.Args[0].(*VariableRef); !ok {
			t.Errorf("argument = %T, want an un-dereferenced *VariableRef", call.Args[0])
		}
	})

	t.Run("exact reference match beats dereferencing one", func(t *testing.T) {
		prog, issues := analyzeSource(t, `
void f(int a) {}
void f(int& a) {}
void main() {
	int x = 1;
	f(x);
}
`)
		wantCodes(t, issues)
		var mainBody *Block
		for _, fb := range prog.Functions {
			if fb.Fn.Name() == "main" {
				mainBody = fb.Body
			}
		}
		call := mainBody.Statements[1].(*ExprStatement).Expr.(*FunctionCall)
		if !call.Fn.Params()[0].Type.IsReference() {
			t.Error("expected the int& overload to win for a variable argument")
		}
	})
}

func TestDuplicateFunctionDefinition(t *testing.T) {
	_, issues := analyzeSource(t, `
int foo() { return 1; }
int foo() { return 2; }
void main() {}
`)
	wantCodes(t, issues, "E0030")
	if len(issues[0].Notes) != 1 {
		t.Fatalf("expected one note pointing at the first definition, got %d", len(issues[0].Notes))
	}
	if !issues[0].Notes[0].HasSpan {
		t.Error("duplicate-definition note should carry the first definition's span")
	}
}

func TestMissingReturnOnFalseBranch(t *testing.T) {
	_, issues := analyzeSource(t, `
int f() {
	if (true) {
		return 1;
	}
}
void main() {}
`)
	wantCodes(t, issues, "E0020")
}

func TestReturnPathThroughIfElse(t *testing.T) {
	_, issues := analyzeSource(t, `
int sign(int n) {
	if (n < 0) {
		return 0 - 1;
	} else {
		if (n > 0) {
			return 1;
		} else {
			return 0;
		}
	}
}
void main() {}
`)
	wantCodes(t, issues)
}

func TestWhileDoesNotSatisfyReturnPath(t *testing.T) {
	_, issues := analyzeSource(t, `
int f() {
	while (true) {
		return 1;
	}
}
void main() {}
`)
	wantCodes(t, issues, "E0020")
}

func TestAssignmentDesugarsToAssignMethod(t *testing.T) {
	prog, issues := analyzeSource(t, `
void main() {
	int x = 3;
	x = 5;
}
`)
	wantCodes(t, issues)
	body := prog.Functions[0].Body
	call, ok := body.Statements[1].(*ExprStatement).Expr.(*MethodCall)
	if !ok {
		t.Fatalf("assignment did not desugar to a method call: %T", body.Statements[1].(*ExprStatement).Expr)
	}
	if call.Method.Name() != "assign" {
		t.Fatalf("desugared method = %q, want assign", call.Method.Name())
	}
	// The left side stays a reference; no dereference is inserted on it.
	ref, ok := call.Instance.(*VariableRef)
	if !ok {
		t.Fatalf("assign receiver = %T, want *VariableRef", call.Instance)
	}
	if !ref.Type().IsReference() {
		t.Error("assign receiver should be reference-typed")
	}
}

func TestReferenceRoundTrip(t *testing.T) {
	prog, issues := analyzeSource(t, `
void main() {
	int x = 1;
	writeIntLn(x);
}
`)
	wantCodes(t, issues)
	body := prog.Functions[0].Body
	deref := body.Statements[1].(*ExprStatement).Expr.(*FunctionCall).Args[0].(*ImplicitDereference)
	ref := deref.Inner.(*VariableRef)
	if ref.Type() != symbols.TypeSymbol(symbols.IntType.Reference()) {
		t.Errorf("VariableRef type = %s, want int&", ref.Type().Name())
	}
	if deref.Type() != symbols.TypeSymbol(symbols.IntType) {
		t.Errorf("dereferenced type = %s, want int", deref.Type().Name())
	}
}

func TestAssignToRvalueRejected(t *testing.T) {
	_, issues := analyzeSource(t, `
int f() { return 1; }
void main() {
	f() = 3;
}
`)
	wantCodes(t, issues, "E0047")
}

func TestUnreachableCodeReportedOnce(t *testing.T) {
	_, issues := analyzeSource(t, `
int f() {
	return 1;
	int a = 2;
	int b = 3;
}
void main() {}
`)
	wantCodes(t, issues, "E0053")
	if issues[0].Severity != diag.Warning {
		t.Errorf("unreachable code should be a warning, got %v", issues[0].Severity)
	}
}

func TestReturnInsideConstructor(t *testing.T) {
	t.Run("bare return is allowed", func(t *testing.T) {
		_, issues := analyzeSource(t, `
type V {
	int n;
	V(int n) {
		this.n = n;
		return;
	}
}
void main() {
	V v = V(1);
}
`)
		wantCodes(t, issues)
	})

	t.Run("returning a value is rejected", func(t *testing.T) {
		_, issues := analyzeSource(t, `
type V {
	V(int n) {
		return 1;
	}
}
void main() {
	V v = V(1);
}
`)
		wantCodes(t, issues, "E0041")
	})
}

func TestConditionMustBeBool(t *testing.T) {
	_, issues := analyzeSource(t, `
void main() {
	if (1) {}
}
`)
	wantCodes(t, issues, "E0050")
}

func TestThisOutsideMethod(t *testing.T) {
	_, issues := analyzeSource(t, `
void main() {
	this;
}
`)
	wantCodes(t, issues, "E0048")
}

func TestIntLiteralBounds(t *testing.T) {
	_, issues := analyzeSource(t, `
void main() {
	int x = 2147483648;
}
`)
	wantCodes(t, issues, "E0052")
}

func TestCopyConstructorForbidden(t *testing.T) {
	_, issues := analyzeSource(t, `
type V {
	V(V other) {}
}
void main() {}
`)
	wantCodes(t, issues, "E0033")
}

func TestNativeAndBodyRules(t *testing.T) {
	_, issues := analyzeSource(t, `
native int f(int a) { return a; }
int g();
void main() {}
`)
	wantCodes(t, issues, "E0028", "E0023")
}

func TestEntryPointValidation(t *testing.T) {
	t.Run("missing main", func(t *testing.T) {
		_, issues := analyzeSource(t, `int f() { return 1; }`)
		wantCodes(t, issues, "E0025")
	})

	t.Run("main is not a function", func(t *testing.T) {
		_, issues := analyzeSource(t, `int main = 3;`)
		wantCodes(t, issues, "E0026")
	})

	t.Run("wrong signature", func(t *testing.T) {
		_, issues := analyzeSource(t, `int main() { return 1; }`)
		wantCodes(t, issues, "E0027")
	})
}

func TestShadowingAndDuplicates(t *testing.T) {
	t.Run("nested block may shadow", func(t *testing.T) {
		prog, issues := analyzeSource(t, `
void main() {
	int x = 1;
	{
		int x = 2;
		writeIntLn(x);
	}
	writeIntLn(x);
}
`)
		wantCodes(t, issues)
		// The inner write must resolve the inner variable, the outer write
		// the outer one.
		body := prog.Functions[0].Body
		inner := body.Statements[1].(*Block)
		innerVar := inner.Statements[0].(*VariableConstructorCall).Var
		innerRef := inner.Statements[1].(*ExprStatement).Expr.(*FunctionCall).Args[0].(*ImplicitDereference).Inner.(*VariableRef)
		if innerRef.Var != innerVar {
			t.Error("inner reference should resolve to the shadowing variable")
		}
		outerVar := body.Statements[0].(*VariableConstructorCall).Var
		outerRef := body.Statements[2].(*ExprStatement).Expr.(*FunctionCall).Args[0].(*ImplicitDereference).Inner.(*VariableRef)
		if outerRef.Var != outerVar {
			t.Error("outer reference should resolve to the original variable")
		}
	})

	t.Run("duplicate in same scope", func(t *testing.T) {
		_, issues := analyzeSource(t, `
void main() {
	int x = 1;
	int x = 2;
}
`)
		wantCodes(t, issues, "E0049")
	})
}

func TestLocalVariableLists(t *testing.T) {
	prog, issues := analyzeSource(t, `
void main() {
	int a, b = 7, c;
	writeIntLn(b);
}
`)
	wantCodes(t, issues)
	body := prog.Functions[0].Body
	if len(body.Statements) != 4 {
		t.Fatalf("expected one spliced statement per declarator plus the call, got %d", len(body.Statements))
	}
	for _, i := range []int{0, 2} {
		vcc := body.Statements[i].(*VariableConstructorCall)
		if vcc.Ctor == nil || len(vcc.Ctor.Params()) != 0 {
			t.Errorf("bare declarator at %d should use the default constructor", i)
		}
	}
	withInit := body.Statements[1].(*VariableConstructorCall)
	if withInit.Ctor == nil || len(withInit.Ctor.Params()) != 1 {
		t.Error("initialized declarator should use the copy constructor")
	}
}

func TestGlobalInitializers(t *testing.T) {
	prog, issues := analyzeSource(t, `
int counter = 3;
void main() {
	writeIntLn(counter);
}
`)
	wantCodes(t, issues)
	if len(prog.Globals) != 1 {
		t.Fatalf("expected 1 global constructor call, got %d", len(prog.Globals))
	}
	if prog.Globals[0].Ctor == nil {
		t.Fatal("global should be constructed through the int copy constructor")
	}
}

func TestUserTypeMethodsAndFields(t *testing.T) {
	prog, issues := analyzeSource(t, `
type Vector {
	double x;
	double y;

	Vector(double x, double y) {
		this.x = x;
		this.y = y;
	}

	double dot(Vector& other) {
		return this.x * other.x + this.y * other.y;
	}
}

void main() {
	Vector v = Vector(3.0, 4.0);
	writeDoubleLn(v.dot(v));
}
`)
	wantCodes(t, issues)

	if len(prog.Constructors) != 1 || len(prog.Methods) != 1 {
		t.Fatalf("expected 1 analysed constructor and 1 method, got %d and %d", len(prog.Constructors), len(prog.Methods))
	}

	// this.x = x desugars to assign on a reference-typed field access.
	ctorBody := prog.Constructors[0].Body
	assign := ctorBody.Statements[0].(*ExprStatement).Expr.(*MethodCall)
	fa, ok := assign.Instance.(*FieldAccess)
	if !ok {
		t.Fatalf("assign receiver = %T, want *FieldAccess", assign.Instance)
	}
	if !fa.Type().IsReference() {
		t.Error("field access through `this` should be reference-typed")
	}
}

func TestMemberAccessErrors(t *testing.T) {
	t.Run("unknown object member", func(t *testing.T) {
		_, issues := analyzeSource(t, `
type V {
	int n;
}
void main() {
	V v = V();
	writeIntLn(v.missing);
}
`)
		wantCodes(t, issues, "E0036")
	})

	t.Run("unknown static member", func(t *testing.T) {
		_, issues := analyzeSource(t, `
type V {
	int n;
}
void main() {
	writeIntLn(V.n);
}
`)
		wantCodes(t, issues, "E0037")
	})
}

func TestCasts(t *testing.T) {
	t.Run("int to double through conversion function", func(t *testing.T) {
		prog, issues := analyzeSource(t, `
void main() {
	double d = double(5);
	writeDoubleLn(d);
}
`)
		wantCodes(t, issues)
		vcc := prog.Functions[0].Body.Statements[0].(*VariableConstructorCall)
		if _, ok := vcc.Args[0].(*ConversionCall); !ok {
			t.Errorf("initializer = %T, want *ConversionCall", vcc.Args[0])
		}
	})

	t.Run("no conversion available", func(t *testing.T) {
		_, issues := analyzeSource(t, `
type V {}
void main() {
	V(5);
}
`)
		wantCodes(t, issues, "E0035")
	})

	t.Run("copy constructor cast", func(t *testing.T) {
		_, issues := analyzeSource(t, `
void main() {
	int x = int(7);
	writeIntLn(x);
}
`)
		wantCodes(t, issues)
	})
}

func TestDefaultConstructionRules(t *testing.T) {
	t.Run("user type without initializer uses default constructor", func(t *testing.T) {
		prog, issues := analyzeSource(t, `
type V {
	int n;
}
void main() {
	V v;
}
`)
		wantCodes(t, issues)
		vcc := prog.Functions[0].Body.Statements[0].(*VariableConstructorCall)
		if vcc.Ctor == nil || len(vcc.Ctor.Params()) != 0 {
			t.Fatalf("expected the synthesised default constructor, got %+v", vcc.Ctor)
		}
	})

	t.Run("incompatible initializer", func(t *testing.T) {
		_, issues := analyzeSource(t, `
type V {
	int n;
}
void main() {
	V v = 3;
}
`)
		wantCodes(t, issues, "E0039")
	})
}

func TestReferenceVariableBinding(t *testing.T) {
	prog, issues := analyzeSource(t, `
void main() {
	int x = 1;
	int& r = x;
	r = 5;
}
`)
	wantCodes(t, issues)
	body := prog.Functions[0].Body
	bind := body.Statements[1].(*VariableConstructorCall)
	if bind.Ctor != nil {
		t.Error("a reference binding should not involve a constructor")
	}
	if len(bind.Args) != 1 {
		t.Fatalf("expected the bound reference as the single argument, got %d", len(bind.Args))
	}
	if !bind.Args[0].Type().IsReference() {
		t.Error("the bound expression should stay reference-typed")
	}
}

func TestOperatorOnUnsupportedType(t *testing.T) {
	_, issues := analyzeSource(t, `
type V {}
void main() {
	V a;
	V b;
	a + b;
}
`)
	wantCodes(t, issues, "E0015")
}

func TestDuplicateMembers(t *testing.T) {
	_, issues := analyzeSource(t, `
type V {
	int m(int a) { return a; }
	int m(int a) { return a; }
	V(int a) {}
	V(int a) {}
}
void main() {}
`)
	wantCodes(t, issues, "E0029", "E0031")
}

func TestAnalysedProgramHasNoInvalidExpressions(t *testing.T) {
	prog, issues := analyzeSource(t, `
type Counter {
	int value;

	Counter(int start) {
		this.value = start;
	}

	int next() {
		this.value = this.value + 1;
		return this.value;
	}
}

int limit = 3;

void main() {
	Counter c = Counter(0);
	while (c.next() < limit) {
		writeIntLn(c.value);
	}
}
`)
	wantCodes(t, issues)

	var visitExpr func(e Expression)
	var visitStmt func(s Statement)
	visitExpr = func(e Expression) {
		switch ex := e.(type) {
		case *Invalid:
			t.Errorf("invalid expression survived a clean analysis at %v", ex.Span())
		case *ImplicitDereference:
			visitExpr(ex.Inner)
		case *FieldAccess:
			visitExpr(ex.Instance)
		case *FunctionCall:
			for _, a := range ex.Args {
				visitExpr(a)
			}
		case *MethodCall:
			visitExpr(ex.Instance)
			for _, a := range ex.Args {
				visitExpr(a)
			}
		case *ConstructorCall:
			for _, a := range ex.Args {
				visitExpr(a)
			}
		case *ConversionCall:
			visitExpr(ex.Arg)
		}
		if e.Type() == symbols.TypeSymbol(symbols.Unknown) {
			t.Errorf("expression %T has unknown type after a clean analysis", e)
		}
	}
	visitStmt = func(s Statement) {
		switch st := s.(type) {
		case *ExprStatement:
			visitExpr(st.Expr)
		case *Block:
			for _, inner := range st.Statements {
				visitStmt(inner)
			}
		case *VariableConstructorCall:
			for _, a := range st.Args {
				visitExpr(a)
			}
		case *If:
			visitExpr(st.Condition)
			visitStmt(st.Then)
			if st.Else != nil {
				visitStmt(st.Else)
			}
		case *While:
			visitExpr(st.Condition)
			visitStmt(st.Body)
		case *Return:
			if st.Value != nil {
				visitExpr(st.Value)
			}
		}
	}
	for _, fb := range prog.Functions {
		visitStmt(fb.Body)
	}
	for _, mb := range prog.Methods {
		visitStmt(mb.Body)
	}
	for _, cb := range prog.Constructors {
		visitStmt(cb.Body)
	}
}

func TestForwardReferencesAmongGlobals(t *testing.T) {
	_, issues := analyzeSource(t, `
int double_(int n) { return n * factor; }
int factor = 2;
void main() {
	writeIntLn(double_(21));
}
`)
	wantCodes(t, issues)
}

func TestIncompatibleReturn(t *testing.T) {
	_, issues := analyzeSource(t, `
int f() {
	return true;
}
void main() {}
`)
	wantCodes(t, issues, "E0042")
}

func TestReturnWithoutValue(t *testing.T) {
	_, issues := analyzeSource(t, `
int f() {
	return;
}
void main() {}
`)
	wantCodes(t, issues, "E0043")
}
