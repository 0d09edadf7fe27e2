package diag

// Term names a kind of symbol for use inside a rendered message, e.g. "the
// method 'plus'" versus "the type 'Vector'". Each locale renders a Term in
// its own grammatical forms: English chooses an article, Belarusian and
// Russian decline the noun's case.
type Term int

const (
	TermType Term = iota
	TermVariable
	TermField
	TermFunction
	TermMethod
	TermConstructor
	TermNamespace
	TermOverloadedFunction
	TermOverloadedMethod
)

// Case selects which grammatical form of a Term to use. CO's locales only
// ever need these seven: the four Slavic cases diagnostics actually use,
// English's two articles, and the bare form for headings and lists.
type Case int

const (
	Nominative Case = iota
	Genitive
	Accusative
	Instrumental
	Indefinite   // English "a/an X"; no-op in be/ru
	Definite     // English "the X"; no-op in be/ru
	NoDeterminer // bare noun, no article or case ending
)

// gender drives adjective agreement in the Slavic locales; English
// ignores it.
type gender int

const (
	masculine gender = iota
	feminine
	neuter
)

// nounForms holds a word's spelling in each Case it has.
type nounForms map[Case]string

// noun is one locale's rendering of a Term: its declined forms plus the
// gender any qualifying adjective must agree with.
type noun struct {
	g     gender
	forms nounForms
}

var nouns = map[Term]map[Locale]noun{
	TermType: {
		EN: {masculine, nounForms{Indefinite: "a type", Definite: "the type", NoDeterminer: "type"}},
		BE: {masculine, nounForms{Nominative: "тып", Genitive: "тыпу", Accusative: "тып", Instrumental: "тыпам", NoDeterminer: "тып"}},
		RU: {masculine, nounForms{Nominative: "тип", Genitive: "типа", Accusative: "тип", Instrumental: "типом", NoDeterminer: "тип"}},
	},
	TermVariable: {
		EN: {feminine, nounForms{Indefinite: "a variable", Definite: "the variable", NoDeterminer: "variable"}},
		BE: {feminine, nounForms{Nominative: "зменная", Genitive: "зменнай", Accusative: "зменную", Instrumental: "зменнай", NoDeterminer: "зменная"}},
		RU: {feminine, nounForms{Nominative: "переменная", Genitive: "переменной", Accusative: "переменную", Instrumental: "переменной", NoDeterminer: "переменная"}},
	},
	TermField: {
		EN: {neuter, nounForms{Indefinite: "a field", Definite: "the field", NoDeterminer: "field"}},
		BE: {neuter, nounForms{Nominative: "поле", Genitive: "поля", Accusative: "поле", Instrumental: "полем", NoDeterminer: "поле"}},
		RU: {neuter, nounForms{Nominative: "поле", Genitive: "поля", Accusative: "поле", Instrumental: "полем", NoDeterminer: "поле"}},
	},
	TermFunction: {
		EN: {feminine, nounForms{Indefinite: "a function", Definite: "the function", NoDeterminer: "function"}},
		BE: {feminine, nounForms{Nominative: "функцыя", Genitive: "функцыі", Accusative: "функцыю", Instrumental: "функцыяй", NoDeterminer: "функцыя"}},
		RU: {feminine, nounForms{Nominative: "функция", Genitive: "функции", Accusative: "функцию", Instrumental: "функцией", NoDeterminer: "функция"}},
	},
	TermMethod: {
		EN: {masculine, nounForms{Indefinite: "a method", Definite: "the method", NoDeterminer: "method"}},
		BE: {masculine, nounForms{Nominative: "метад", Genitive: "метаду", Accusative: "метад", Instrumental: "метадам", NoDeterminer: "метад"}},
		RU: {masculine, nounForms{Nominative: "метод", Genitive: "метода", Accusative: "метод", Instrumental: "методом", NoDeterminer: "метод"}},
	},
	TermConstructor: {
		EN: {masculine, nounForms{Indefinite: "a constructor", Definite: "the constructor", NoDeterminer: "constructor"}},
		BE: {masculine, nounForms{Nominative: "канструктар", Genitive: "канструктара", Accusative: "канструктар", Instrumental: "канструктарам", NoDeterminer: "канструктар"}},
		RU: {masculine, nounForms{Nominative: "конструктор", Genitive: "конструктора", Accusative: "конструктор", Instrumental: "конструктором", NoDeterminer: "конструктор"}},
	},
	TermNamespace: {
		EN: {feminine, nounForms{Indefinite: "a namespace", Definite: "the namespace", NoDeterminer: "namespace"}},
		BE: {feminine, nounForms{Nominative: "прастора імёнаў", Genitive: "прасторы імёнаў", Accusative: "прастору імёнаў", Instrumental: "прасторай імёнаў", NoDeterminer: "прастора імёнаў"}},
		RU: {neuter, nounForms{Nominative: "пространство имён", Genitive: "пространства имён", Accusative: "пространство имён", Instrumental: "пространством имён", NoDeterminer: "пространство имён"}},
	},
}

// Adjective qualifies a Term inside a message. English adjectives carry
// the article (so "an overloaded function" picks "an" from the adjective,
// not the noun); Belarusian and Russian ones decline to agree with the
// noun's gender and case.
type Adjective int

const (
	Valid Adjective = iota
	Overloaded
)

// adjectiveForms is one locale's declension table for an adjective, keyed
// by the qualified noun's gender. English stores one row under every
// gender, since it has no agreement.
type adjectiveForms map[gender]nounForms

func allGenders(f nounForms) adjectiveForms {
	return adjectiveForms{masculine: f, feminine: f, neuter: f}
}

var adjectives = map[Adjective]map[Locale]adjectiveForms{
	Valid: {
		EN: allGenders(nounForms{Indefinite: "a valid", Definite: "the valid", NoDeterminer: "valid"}),
		BE: {
			masculine: nounForms{Nominative: "карэктны", Genitive: "карэктнага", Accusative: "карэктны", Instrumental: "карэктным", NoDeterminer: "карэктны"},
			feminine:  nounForms{Nominative: "карэктная", Genitive: "карэктнай", Accusative: "карэктную", Instrumental: "карэктнай", NoDeterminer: "карэктная"},
			neuter:    nounForms{Nominative: "карэктнае", Genitive: "карэктнага", Accusative: "карэктнае", Instrumental: "карэктным", NoDeterminer: "карэктнае"},
		},
		RU: {
			masculine: nounForms{Nominative: "корректный", Genitive: "корректного", Accusative: "корректный", Instrumental: "корректным", NoDeterminer: "корректный"},
			feminine:  nounForms{Nominative: "корректная", Genitive: "корректной", Accusative: "корректную", Instrumental: "корректной", NoDeterminer: "корректная"},
			neuter:    nounForms{Nominative: "корректное", Genitive: "корректного", Accusative: "корректное", Instrumental: "корректным", NoDeterminer: "корректное"},
		},
	},
	Overloaded: {
		EN: allGenders(nounForms{Indefinite: "an overloaded", Definite: "the overloaded", NoDeterminer: "overloaded"}),
		BE: {
			masculine: nounForms{Nominative: "перагружаны", Genitive: "перагружанага", Accusative: "перагружаны", Instrumental: "перагружаным", NoDeterminer: "перагружаны"},
			feminine:  nounForms{Nominative: "перагружаная", Genitive: "перагружанай", Accusative: "перагружаную", Instrumental: "перагружанай", NoDeterminer: "перагружаная"},
			neuter:    nounForms{Nominative: "перагружанае", Genitive: "перагружанага", Accusative: "перагружанае", Instrumental: "перагружаным", NoDeterminer: "перагружанае"},
		},
		RU: {
			masculine: nounForms{Nominative: "перегруженный", Genitive: "перегруженного", Accusative: "перегруженный", Instrumental: "перегруженным", NoDeterminer: "перегруженный"},
			feminine:  nounForms{Nominative: "перегруженная", Genitive: "перегруженной", Accusative: "перегруженную", Instrumental: "перегруженной", NoDeterminer: "перегруженная"},
			neuter:    nounForms{Nominative: "перегруженное", Genitive: "перегруженного", Accusative: "перегруженное", Instrumental: "перегруженным", NoDeterminer: "перегруженное"},
		},
	},
}

// Describe renders term in the given locale and grammatical case, falling
// back to the term's English bare form if the locale or case has no entry
// (keeps message rendering total even for partially-filled tables). The
// overloaded-callable terms are not stored as nouns of their own: they
// compose the Overloaded adjective with the plain callable noun.
func Describe(locale Locale, term Term, c Case) string {
	switch term {
	case TermOverloadedFunction:
		return DescribeQualified(locale, Overloaded, TermFunction, c)
	case TermOverloadedMethod:
		return DescribeQualified(locale, Overloaded, TermMethod, c)
	}
	n, ok := nouns[term][locale]
	if !ok {
		n = nouns[term][EN]
	}
	return pickForm(n.forms, c, nouns[term][EN].forms)
}

// DescribeQualified renders "adjective noun" with the adjective agreeing
// with the noun's gender and case. In English the adjective form carries
// the article, so the noun contributes its bare spelling.
func DescribeQualified(locale Locale, adj Adjective, term Term, c Case) string {
	n, ok := nouns[term][locale]
	if !ok {
		locale = EN
		n = nouns[term][EN]
	}
	byGender, ok := adjectives[adj][locale]
	if !ok {
		byGender = adjectives[adj][EN]
	}
	adjWord := pickForm(byGender[n.g], c, adjectives[adj][EN][masculine])

	nounCase := c
	if locale == EN && (c == Indefinite || c == Definite) {
		nounCase = NoDeterminer
	}
	return adjWord + " " + pickForm(n.forms, nounCase, nouns[term][EN].forms)
}

func pickForm(forms nounForms, c Case, fallback nounForms) string {
	if s, ok := forms[c]; ok && s != "" {
		return s
	}
	if s, ok := forms[NoDeterminer]; ok && s != "" {
		return s
	}
	return fallback[NoDeterminer]
}
