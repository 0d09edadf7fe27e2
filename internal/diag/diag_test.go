package diag

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/psenchanka/colang/internal/source"
)

// TestCataloguesCoverEveryCode guards against a locale table lagging
// behind a newly added code: every locale must carry every E-number.
func TestCataloguesCoverEveryCode(t *testing.T) {
	for _, locale := range []Locale{EN, BE, RU} {
		table := catalogues[locale]
		for n := 1; n <= 54; n++ {
			code := Code(fmt.Sprintf("E%04d", n))
			if _, ok := table[code]; !ok {
				t.Errorf("locale %s is missing code %s", locale, code)
			}
		}
	}
}

func TestRenderFallsBackToEnglish(t *testing.T) {
	got := render(Locale("fr"), UnknownName, "x")
	want := render(EN, UnknownName, "x")
	if got != want {
		t.Errorf("unknown locale should fall back to English: got %q, want %q", got, want)
	}
}

func TestRenderPerLocale(t *testing.T) {
	en := render(EN, UnknownName, "foo")
	be := render(BE, UnknownName, "foo")
	ru := render(RU, UnknownName, "foo")
	if en == be || en == ru || be == ru {
		t.Errorf("locales should differ: en=%q be=%q ru=%q", en, be, ru)
	}
}

func TestValidLocale(t *testing.T) {
	for _, name := range []string{"en", "be", "ru"} {
		if !ValidLocale(name) {
			t.Errorf("ValidLocale(%q) = false, want true", name)
		}
	}
	if ValidLocale("de") {
		t.Error("ValidLocale(de) = true, want false")
	}
}

func TestDescribeGrammaticalForms(t *testing.T) {
	if got := Describe(EN, TermFunction, Indefinite); got != "a function" {
		t.Errorf("Describe(en, function, indefinite) = %q", got)
	}
	if got := Describe(RU, TermFunction, Genitive); got != "функции" {
		t.Errorf("Describe(ru, function, genitive) = %q", got)
	}
	// A case the locale doesn't fill falls back to the bare form.
	if got := Describe(EN, TermFunction, Instrumental); got != "function" {
		t.Errorf("Describe(en, function, instrumental) = %q", got)
	}
}

func TestDescribeQualifiedComposesAdjectiveAndNoun(t *testing.T) {
	cases := []struct {
		locale Locale
		adj    Adjective
		term   Term
		c      Case
		want   string
	}{
		{EN, Overloaded, TermFunction, Indefinite, "an overloaded function"},
		{EN, Valid, TermType, Definite, "the valid type"},
		// The adjective agrees with the noun's gender and case.
		{RU, Overloaded, TermFunction, Instrumental, "перегруженной функцией"},
		{RU, Overloaded, TermMethod, Genitive, "перегруженного метода"},
		{RU, Valid, TermType, Nominative, "корректный тип"},
		{BE, Overloaded, TermMethod, Nominative, "перагружаны метад"},
		{BE, Valid, TermFunction, Accusative, "карэктную функцыю"},
	}
	for _, c := range cases {
		if got := DescribeQualified(c.locale, c.adj, c.term, c.c); got != c.want {
			t.Errorf("DescribeQualified(%s) = %q, want %q", c.locale, got, c.want)
		}
	}
}

func TestOverloadedTermsAreCompositions(t *testing.T) {
	if got := Describe(RU, TermOverloadedFunction, Instrumental); got != "перегруженной функцией" {
		t.Errorf("Describe(ru, overloaded function, instrumental) = %q", got)
	}
	if got := Describe(EN, TermOverloadedMethod, Indefinite); got != "an overloaded method" {
		t.Errorf("Describe(en, overloaded method, indefinite) = %q", got)
	}
}

// TestFactoriesRenderDeclinedNouns pins the Describe wiring: the symbol
// kind named inside a rendered message comes out of the Term tables in the
// case the sentence needs, not out of the template text.
func TestFactoriesRenderDeclinedNouns(t *testing.T) {
	span := source.Span{File: "t.co", Start: source.Position{Line: 1, Column: 1}, End: source.Position{Line: 1, Column: 2}}

	if got := NameAlreadyTaken(EN, span, "x", TermFunction, span).Message; got != "the name 'x' is already used by a function" {
		t.Errorf("en EntityNameTaken = %q", got)
	}
	if got := NameAlreadyTaken(RU, span, "x", TermOverloadedFunction, span).Message; got != "имя 'x' уже занято перегруженной функцией" {
		t.Errorf("ru EntityNameTaken = %q", got)
	}
	if got := FunctionAlreadyDefined(RU, span, "f", span).Message; got != "повторное определение функции 'f'" {
		t.Errorf("ru DuplicateFunctionDefinition = %q", got)
	}
	if got := ObjectMemberUnknown(BE, span, "V", "x").Message; got != "у тыпу 'V' няма члена з імем 'x'" {
		t.Errorf("be UnknownObjectMember = %q", got)
	}
	if got := NotAnExpression(RU, span, "V", TermType).Message; got != "'V' обозначает тип, а не выражение" {
		t.Errorf("ru InvalidReferenceAsExpression = %q", got)
	}
	if got := MainNotAFunction(EN, span).Message; got != "'main' is not a function" {
		t.Errorf("en MainIsNotFunction = %q", got)
	}
}

func TestBagOrderingAndSeverity(t *testing.T) {
	var bag Bag
	bag.Add(Issue{Severity: Warning, Code: UnreachableCode, Message: "first"})
	bag.Add(Issue{Severity: Error, Code: UnknownName, Message: "second"})

	issues := bag.Issues()
	if len(issues) != 2 || issues[0].Message != "first" {
		t.Fatalf("issues should keep insertion order, got %v", issues)
	}
	if !bag.HasErrors() {
		t.Error("bag with an Error-severity issue should report HasErrors")
	}
}

func TestFormatRendering(t *testing.T) {
	src := "void main() {\n\tprintln(y);\n}\n"
	span := source.Span{
		File:  "test.co",
		Start: source.Position{Line: 2, Column: 10, Offset: 23},
		End:   source.Position{Line: 2, Column: 11, Offset: 24},
	}
	first := source.Span{
		File:  "test.co",
		Start: source.Position{Line: 1, Column: 1, Offset: 0},
		End:   source.Position{Line: 1, Column: 5, Offset: 4},
	}

	for _, locale := range []Locale{EN, BE, RU} {
		t.Run(string(locale), func(t *testing.T) {
			issues := []Issue{
				NameUnknown(locale, span, "y"),
				FunctionAlreadyDefined(locale, span, "main", first),
				CodeUnreachable(locale, span),
			}
			snaps.MatchSnapshot(t, FormatAll(issues, src, false, true))
		})
	}
}

func TestFormatWithoutNotesDropsThem(t *testing.T) {
	span := source.Span{File: "t.co", Start: source.Position{Line: 1, Column: 1}, End: source.Position{Line: 1, Column: 2}}
	issue := FunctionAlreadyDefined(EN, span, "f", span)
	withNotes := FormatAll([]Issue{issue}, "int f;", false, true)
	withoutNotes := FormatAll([]Issue{issue}, "int f;", false, false)
	if withNotes == withoutNotes {
		t.Error("withNotes=false should drop note rendering")
	}
}
