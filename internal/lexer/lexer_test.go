package lexer

import (
	"testing"

	"github.com/psenchanka/colang/internal/token"
)

func tokenKinds(t *testing.T, input string) []token.Kind {
	t.Helper()
	l := New("test.co", input)
	var kinds []token.Kind
	for {
		tok := l.Next()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			return kinds
		}
	}
}

func TestNextBasicTokens(t *testing.T) {
	input := `type Vector {
	double x;
	double y;

	Vector(double x, double y) { this.x = x; this.y = y; }

	Vector plus(Vector& other) {
		return Vector(this.x + other.x, this.y - other.y);
	}
}

int main() {
	Vector v = Vector(1, 2.5);
	while (v.x < 10) {
		if (v.x >= 5) {
			return 1;
		}
	}
	return 0;
}
`
	kinds := tokenKinds(t, input)
	if kinds[len(kinds)-1] != token.EOF {
		t.Fatalf("expected trailing EOF, got %v", kinds[len(kinds)-1])
	}
	for _, k := range kinds {
		if k == token.ILLEGAL {
			t.Fatalf("unexpected ILLEGAL token in well-formed input: %v", kinds)
		}
	}
}

func TestNextOperators(t *testing.T) {
	cases := []struct {
		input string
		want  token.Kind
	}{
		{"<=", token.LE},
		{">=", token.GE},
		{"==", token.EQ},
		{"!=", token.NE},
		{"&&", token.AND_AND},
		{"||", token.OR_OR},
		{"&", token.AMP},
		{"!", token.BANG},
		{"=", token.ASSIGN},
		{"<", token.LT},
		{">", token.GT},
	}
	for _, c := range cases {
		l := New("test.co", c.input)
		tok := l.Next()
		if tok.Kind != c.want {
			t.Errorf("Next(%q) = %v, want %v", c.input, tok.Kind, c.want)
		}
		if tok.Literal != c.input {
			t.Errorf("Next(%q).Literal = %q, want %q", c.input, tok.Literal, c.input)
		}
	}
}

func TestNextKeywordsVsIdentifiers(t *testing.T) {
	cases := []struct {
		input string
		want  token.Kind
	}{
		{"type", token.TYPE},
		{"native", token.NATIVE},
		{"this", token.THIS},
		{"if", token.IF},
		{"else", token.ELSE},
		{"while", token.WHILE},
		{"return", token.RETURN},
		{"true", token.TRUE},
		{"false", token.FALSE},
		{"typeName", token.IDENT},
		{"_underscore", token.IDENT},
		{"x2", token.IDENT},
	}
	for _, c := range cases {
		l := New("test.co", c.input)
		tok := l.Next()
		if tok.Kind != c.want {
			t.Errorf("Next(%q) = %v, want %v", c.input, tok.Kind, c.want)
		}
	}
}

func TestNextNumberLiterals(t *testing.T) {
	cases := []struct {
		input string
		kind  token.Kind
	}{
		{"0", token.INT},
		{"42", token.INT},
		{"3.14", token.DOUBLE},
		{"1e10", token.DOUBLE},
		{"1.5e-3", token.DOUBLE},
		{"2E+8", token.DOUBLE},
	}
	for _, c := range cases {
		l := New("test.co", c.input)
		tok := l.Next()
		if tok.Kind != c.kind {
			t.Errorf("Next(%q).Kind = %v, want %v", c.input, tok.Kind, c.kind)
		}
		if tok.Literal != c.input {
			t.Errorf("Next(%q).Literal = %q, want %q", c.input, tok.Literal, c.input)
		}
	}
}

func TestNextIllegalCharacterRecordsIssue(t *testing.T) {
	l := New("test.co", "int x = 1 @ 2;")
	for {
		tok := l.Next()
		if tok.Kind == token.EOF {
			break
		}
	}
	issues := l.Issues()
	if len(issues) != 1 {
		t.Fatalf("expected exactly one issue, got %d: %v", len(issues), issues)
	}
	if issues[0].Code != "E0004" {
		t.Errorf("issue code = %v, want E0004", issues[0].Code)
	}
}

func TestNextMalformedNumberFollowedByIdentifier(t *testing.T) {
	l := New("test.co", "123abc")
	tok := l.Next()
	if tok.Kind != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %v", tok.Kind)
	}
	issues := l.Issues()
	if len(issues) != 1 || issues[0].Code != "E0003" {
		t.Fatalf("expected one E0003 issue, got %v", issues)
	}
}

func TestNextSkipsLineComments(t *testing.T) {
	input := "// this is a comment\nint x;"
	l := New("test.co", input)
	tok := l.Next()
	if tok.Kind != token.IDENT && tok.Kind != token.TYPE {
		// "int" is not a CO keyword, just an ordinary identifier used as a
		// type reference, so the first token is IDENT.
	}
	if tok.Literal != "int" {
		t.Fatalf("expected comment to be skipped, got %q", tok.Literal)
	}
}

func TestPositionsTrackLinesAndColumns(t *testing.T) {
	l := New("test.co", "a\nbb")
	first := l.Next()
	if first.Span.Start.Line != 1 {
		t.Errorf("first token line = %d, want 1", first.Span.Start.Line)
	}
	second := l.Next()
	if second.Span.Start.Line != 2 {
		t.Errorf("second token line = %d, want 2", second.Span.Start.Line)
	}
}

func TestComments(t *testing.T) {
	input := "int x; // trailing note\n// full line\nint y;"

	kinds := tokenKinds(t, input)
	for _, k := range kinds {
		if k == token.COMMENT {
			t.Fatal("comments should be skipped without WithComments")
		}
	}

	l := New("test.co", input, WithComments())
	sawComment := 0
	for {
		tok := l.Next()
		if tok.Kind == token.COMMENT {
			sawComment++
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	if sawComment != 2 {
		t.Fatalf("expected 2 COMMENT tokens with WithComments, got %d", sawComment)
	}
}
