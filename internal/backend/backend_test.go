package backend

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/psenchanka/colang/internal/lexer"
	"github.com/psenchanka/colang/internal/parser"
	"github.com/psenchanka/colang/internal/semantic"
	"github.com/psenchanka/colang/internal/source"
	"github.com/psenchanka/colang/internal/symbols"
)

// compile runs the whole front end over src and fails the test on any
// issue: the backend only ever sees programs that analysed cleanly.
func compile(t *testing.T, src string) *semantic.Program {
	t.Helper()
	l := lexer.New("test.co", src)
	p := parser.New(l)
	raw := p.ParseProgram()
	if issues := p.Issues(); len(issues) != 0 {
		t.Fatalf("unexpected parse issues: %v", issues)
	}
	a := semantic.New(raw)
	prog := a.Analyze()
	if issues := a.Issues(); len(issues) != 0 {
		t.Fatalf("unexpected semantic issues: %v", issues)
	}
	return prog
}

func emit(t *testing.T, src string) string {
	t.Helper()
	out, err := New().Emit(compile(t, src))
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	return string(out)
}

func TestEmitHappyPath(t *testing.T) {
	out := emit(t, `
void main() {
	int x = 5;
	writeIntLn(x);
}
`)
	for _, want := range []string{
		"static void co_main(void)",
		"int32_t co_x = 5;",
		"_writeIntLn((*(&co_x)));",
		"int main(void) {",
		"co_main();",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("emitted C missing %q", want)
		}
	}
	if strings.Contains(out, "_initGlobals") {
		t.Error("a program without globals should not emit _initGlobals")
	}
	snaps.MatchSnapshot(t, out)
}

func TestEmitAssignment(t *testing.T) {
	out := emit(t, `
void main() {
	int x = 3;
	x = 5;
}
`)
	if !strings.Contains(out, "_assign((&co_x), 5);") {
		t.Errorf("assignment should emit through the _assign macro, got:\n%s", out)
	}
}

func TestEmitUserType(t *testing.T) {
	out := emit(t, `
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
	for _, want := range []string{
		"typedef struct co_Vector co_Vector;",
		"struct co_Vector {",
		"double co_Vector_x;",
		// The user constructor shares the type's qualified name and picks
		// up a collision suffix.
		"static co_Vector co_Vector_1(",
		"co_Vector _self = {0};",
		"co_Vector* this = &_self;",
		"return _self;",
		"static double co_Vector_dot(co_Vector* this, co_Vector* co_other)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("emitted C missing %q", want)
		}
	}
	snaps.MatchSnapshot(t, out)
}

func TestEmitGlobals(t *testing.T) {
	out := emit(t, `
int counter = 3;

void main() {
	writeIntLn(counter);
}
`)
	for _, want := range []string{
		"static int32_t co_counter;",
		"static void _initGlobals(void) {",
		"co_counter = 3;",
		"_initGlobals();",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("emitted C missing %q", want)
		}
	}
}

func TestEmitControlFlow(t *testing.T) {
	out := emit(t, `
int fib(int n) {
	if (n < 2) {
		return n;
	}
	return fib(n - 1) + fib(n - 2);
}

void main() {
	int i = 0;
	while (i < 10) {
		writeIntLn(fib(i));
		i = i + 1;
	}
}
`)
	for _, want := range []string{
		"if (_lt((*(&co_n)), 2)) {",
		"while (",
		"return _add(co_fib(_sub((*(&co_n)), 1)), co_fib(_sub((*(&co_n)), 2)));",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("emitted C missing %q", want)
		}
	}
	snaps.MatchSnapshot(t, out)
}

func TestUnreachableDefinitionsAreDropped(t *testing.T) {
	out := emit(t, `
int used() { return 1; }
int unused() { return 2; }

void main() {
	writeIntLn(used());
}
`)
	if !strings.Contains(out, "co_used") {
		t.Error("reachable function missing from output")
	}
	if strings.Contains(out, "co_unused") {
		t.Error("unreachable function should not be emitted")
	}
}

func TestNameGen(t *testing.T) {
	g := newNameGen()
	a := symbols.NewType("Vector", source.Span{})
	b := symbols.NewType("Vec tor", source.Span{})

	if got := g.nameFor(a, a.Name()); got != "co_Vector" {
		t.Errorf("first name = %q, want co_Vector", got)
	}
	// Sanitisation maps the space onto '_'; "co_Vec_tor" is still free.
	if got := g.nameFor(b, b.Name()); got != "co_Vec_tor" {
		t.Errorf("second name = %q, want co_Vec_tor", got)
	}
	c := symbols.NewType("Vec_tor", source.Span{})
	if got := g.nameFor(c, c.Name()); got != "co_Vec_tor_1" {
		t.Errorf("colliding name = %q, want co_Vec_tor_1", got)
	}
	// Stable on repeat lookups.
	if got := g.nameFor(c, c.Name()); got != "co_Vec_tor_1" {
		t.Errorf("repeated lookup = %q, want co_Vec_tor_1", got)
	}
}

func TestTopoSortTypes(t *testing.T) {
	inner := symbols.NewType("Inner", source.Span{})
	outer := symbols.NewType("Outer", source.Span{})
	outer.AddField(symbols.NewField("i", inner, source.Span{}))

	sorted, err := topoSortTypes([]*symbols.Type{outer, inner})
	if err != nil {
		t.Fatalf("topoSortTypes: %v", err)
	}
	if sorted[0] != inner || sorted[1] != outer {
		t.Errorf("expected Inner before Outer, got %v then %v", sorted[0].Name(), sorted[1].Name())
	}
}

func TestTopoSortRejectsCycle(t *testing.T) {
	a := symbols.NewType("A", source.Span{})
	b := symbols.NewType("B", source.Span{})
	a.AddField(symbols.NewField("b", b, source.Span{}))
	b.AddField(symbols.NewField("a", a, source.Span{}))

	if _, err := topoSortTypes([]*symbols.Type{a, b}); err == nil {
		t.Fatal("expected a cycle error")
	}
}

func TestTopoSortAllowsReferenceCycle(t *testing.T) {
	a := symbols.NewType("A", source.Span{})
	b := symbols.NewType("B", source.Span{})
	a.AddField(symbols.NewField("b", b, source.Span{}))
	b.AddField(symbols.NewField("a", a.Reference(), source.Span{}))

	if _, err := topoSortTypes([]*symbols.Type{a, b}); err != nil {
		t.Fatalf("a cycle through a reference field is a pointer, not a layout cycle: %v", err)
	}
}

func TestNativeMappingMissingIsInternalError(t *testing.T) {
	weird := symbols.NewMethod("weird", nil, symbols.IntType, true, source.Span{})
	symbols.IntType.AddMethod(weird)
	if _, err := nativeMethodName(weird); err == nil {
		t.Fatal("expected a missing-mapping error for an unknown native method")
	}
}

func TestBuildIDComment(t *testing.T) {
	prog := compile(t, `void main() {}`)
	out, err := New(WithBuildID("test-build")).Emit(prog)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.HasPrefix(string(out), "/* _COCO_BUILD_ID: test-build */") {
		t.Error("build id comment missing from the head of the translation unit")
	}
}
