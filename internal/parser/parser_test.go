package parser

import (
	"testing"

	"github.com/psenchanka/colang/internal/ast"
	"github.com/psenchanka/colang/internal/lexer"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New("test.co", src)
	p := New(l)
	prog := p.ParseProgram()
	if issues := p.Issues(); len(issues) != 0 {
		t.Fatalf("unexpected parse issues: %v", issues)
	}
	return prog
}

func TestParseTypeDefinition(t *testing.T) {
	src := `
type Vector {
	double x;
	double y;

	Vector(double x, double y) {
		this.x = x;
		this.y = y;
	}

	Vector plus(Vector& other) {
		return Vector(this.x + other.x, this.y + other.y);
	}
}
`
	prog := parseProgram(t, src)
	if len(prog.Definitions) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(prog.Definitions))
	}
	td, ok := prog.Definitions[0].(*ast.TypeDefinition)
	if !ok {
		t.Fatalf("expected *ast.TypeDefinition, got %T", prog.Definitions[0])
	}
	if td.Name != "Vector" {
		t.Errorf("type name = %q, want Vector", td.Name)
	}
	if len(td.Members) != 4 {
		t.Fatalf("expected 4 members, got %d", len(td.Members))
	}
	if _, ok := td.Members[0].(*ast.FieldDefinition); !ok {
		t.Errorf("member 0 = %T, want *ast.FieldDefinition", td.Members[0])
	}
	if _, ok := td.Members[2].(*ast.ConstructorDefinition); !ok {
		t.Errorf("member 2 = %T, want *ast.ConstructorDefinition", td.Members[2])
	}
	method, ok := td.Members[3].(*ast.MethodDefinition)
	if !ok {
		t.Fatalf("member 3 = %T, want *ast.MethodDefinition", td.Members[3])
	}
	if len(method.Parameters) != 1 || !method.Parameters[0].Type.Reference {
		t.Errorf("expected one reference-typed parameter, got %+v", method.Parameters)
	}
}

func TestParseNativeMemberWithoutBody(t *testing.T) {
	src := `
type Point {
	native double distanceTo(Point& other);
}
`
	prog := parseProgram(t, src)
	td := prog.Definitions[0].(*ast.TypeDefinition)
	m := td.Members[0].(*ast.MethodDefinition)
	if m.Body != nil {
		t.Errorf("expected nil body for native method, got %+v", m.Body)
	}
	if len(m.Specifiers) != 1 || m.Specifiers[0].Name != "native" {
		t.Errorf("expected one 'native' specifier, got %+v", m.Specifiers)
	}
}

func TestParseFreeFunction(t *testing.T) {
	prog := parseProgram(t, `int square(int n) { return n * n; }`)
	fn, ok := prog.Definitions[0].(*ast.FunctionDefinition)
	if !ok {
		t.Fatalf("expected *ast.FunctionDefinition, got %T", prog.Definitions[0])
	}
	if fn.Name != "square" || len(fn.Parameters) != 1 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(fn.Body.Statements))
	}
	ret, ok := fn.Body.Statements[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("expected *ast.ReturnStatement, got %T", fn.Body.Statements[0])
	}
	infix, ok := ret.Value.(*ast.InfixExpression)
	if !ok || infix.Operator != ast.OpMultiply {
		t.Fatalf("expected n * n, got %+v", ret.Value)
	}
}

func TestParseGlobalVariables(t *testing.T) {
	prog := parseProgram(t, `int counter = 0, limit = 100;`)
	vd, ok := prog.Definitions[0].(*ast.VariablesDefinition)
	if !ok {
		t.Fatalf("expected *ast.VariablesDefinition, got %T", prog.Definitions[0])
	}
	if len(vd.Variables) != 2 {
		t.Fatalf("expected 2 variables, got %d", len(vd.Variables))
	}
	if vd.Variables[0].Name != "counter" || vd.Variables[1].Name != "limit" {
		t.Errorf("unexpected names: %+v", vd.Variables)
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	cases := []struct {
		input string
		want  string // a hand expanded description, used only to sanity-check shape
	}{
		{"1 + 2 * 3", "add-of-int-and-mul"},
		{"a = b = c", "right-assoc-assign"},
		{"a || b && c", "or-of-a-and-and"},
	}
	for _, c := range cases {
		l := lexer.New("test.co", c.input+";")
		p := New(l)
		expr := p.parseExpression(lowest)
		if expr == nil {
			t.Fatalf("%s: got nil expression", c.input)
		}
		switch c.want {
		case "add-of-int-and-mul":
			add, ok := expr.(*ast.InfixExpression)
			if !ok || add.Operator != ast.OpAdd {
				t.Fatalf("%s: expected top-level '+', got %+v", c.input, expr)
			}
			if _, ok := add.Right.(*ast.InfixExpression); !ok {
				t.Fatalf("%s: expected right operand to be '2 * 3', got %+v", c.input, add.Right)
			}
		case "right-assoc-assign":
			assign, ok := expr.(*ast.InfixExpression)
			if !ok || assign.Operator != ast.OpAssign {
				t.Fatalf("%s: expected top-level '=', got %+v", c.input, expr)
			}
			if _, ok := assign.Left.(*ast.NameExpression); !ok {
				t.Fatalf("%s: expected left operand 'a', got %+v", c.input, assign.Left)
			}
			inner, ok := assign.Right.(*ast.InfixExpression)
			if !ok || inner.Operator != ast.OpAssign {
				t.Fatalf("%s: expected right operand 'b = c', got %+v", c.input, assign.Right)
			}
		case "or-of-a-and-and":
			or, ok := expr.(*ast.InfixExpression)
			if !ok || or.Operator != ast.OpOr {
				t.Fatalf("%s: expected top-level '||', got %+v", c.input, expr)
			}
			if _, ok := or.Right.(*ast.InfixExpression); !ok {
				t.Fatalf("%s: expected right operand 'b && c', got %+v", c.input, or.Right)
			}
		}
	}
}

func TestParseIfElseAndWhile(t *testing.T) {
	src := `
int main() {
	while (x < 10) {
		if (x == 5) {
			return 1;
		} else {
			x = x + 1;
		}
	}
	return 0;
}
`
	prog := parseProgram(t, src)
	fn := prog.Definitions[0].(*ast.FunctionDefinition)
	while, ok := fn.Body.Statements[0].(*ast.WhileStatement)
	if !ok {
		t.Fatalf("expected *ast.WhileStatement, got %T", fn.Body.Statements[0])
	}
	body, ok := while.Body.(*ast.CodeBlock)
	if !ok || len(body.Statements) != 1 {
		t.Fatalf("unexpected while body: %+v", while.Body)
	}
	ifStmt, ok := body.Statements[0].(*ast.IfStatement)
	if !ok || ifStmt.Else == nil {
		t.Fatalf("expected if/else, got %+v", body.Statements[0])
	}
}

func TestParseMissingClosingParenReportsIssue(t *testing.T) {
	l := lexer.New("test.co", `int f(int x { return x; }`)
	p := New(l)
	p.ParseProgram()
	issues := p.Issues()
	if len(issues) == 0 {
		t.Fatal("expected at least one diagnostic for the missing ')'")
	}
	found := false
	for _, iss := range issues {
		if iss.Code == "E0008" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an E0008 among issues, got %v", issues)
	}
}
