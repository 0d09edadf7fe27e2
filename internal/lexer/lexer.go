// Package lexer turns CO source text into a stream of tokens.
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/psenchanka/colang/internal/diag"
	"github.com/psenchanka/colang/internal/source"
	"github.com/psenchanka/colang/internal/token"
)

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// WithLocale selects the locale lexical diagnostics are rendered in.
// Defaults to diag.DefaultLocale.
func WithLocale(locale diag.Locale) Option {
	return func(l *Lexer) { l.locale = locale }
}

// WithComments makes the lexer emit token.COMMENT tokens instead of
// discarding comments. Off by default, since the parser never wants them.
func WithComments() Option {
	return func(l *Lexer) { l.keepComments = true }
}

// Lexer scans one file's worth of CO source text into tokens, one at a
// time, advancing a single rune-at-a-time cursor.
type Lexer struct {
	file  string
	input string

	pos     int // byte offset of ch
	readPos int // byte offset of the rune after ch
	ch      rune

	line, col int

	locale       diag.Locale
	keepComments bool
	issues       diag.Bag
}

// New creates a Lexer over input, attributed to file for diagnostics.
func New(file, input string, opts ...Option) *Lexer {
	l := &Lexer{file: file, input: input, line: 1, col: 0, locale: diag.DefaultLocale}
	for _, opt := range opts {
		opt(l)
	}
	l.advance()
	return l
}

// Issues returns the lexical diagnostics accumulated so far.
func (l *Lexer) Issues() []diag.Issue {
	return l.issues.Issues()
}

func (l *Lexer) advance() {
	if l.readPos >= len(l.input) {
		l.pos = len(l.input)
		l.ch = 0
		return
	}
	r, width := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.pos = l.readPos
	l.readPos += width
	l.ch = r
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

func (l *Lexer) peek() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) here() source.Position {
	return source.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) spanFrom(start source.Position) source.Span {
	return source.Span{File: l.file, Start: start, End: l.here()}
}

func isLetter(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// Next scans and returns the next token, ending with an infinite run of
// EOF tokens once the input is exhausted.
func (l *Lexer) Next() token.Token {
	l.skipWhitespaceAndComments()

	start := l.here()

	if l.ch == 0 {
		return token.Token{Kind: token.EOF, Span: l.spanFrom(start)}
	}

	if l.keepComments && l.ch == '/' && l.peek() == '/' {
		return l.readComment(start)
	}

	switch {
	case isLetter(l.ch):
		return l.readIdentifier(start)
	case isDigit(l.ch):
		return l.readNumber(start)
	}

	switch l.ch {
	case '(':
		return l.simple(token.LPAREN, start)
	case ')':
		return l.simple(token.RPAREN, start)
	case '{':
		return l.simple(token.LBRACE, start)
	case '}':
		return l.simple(token.RBRACE, start)
	case ',':
		return l.simple(token.COMMA, start)
	case ';':
		return l.simple(token.SEMI, start)
	case '.':
		return l.simple(token.DOT, start)
	case '+':
		return l.simple(token.PLUS, start)
	case '-':
		return l.simple(token.MINUS, start)
	case '*':
		return l.simple(token.STAR, start)
	case '/':
		return l.simple(token.SLASH, start)
	case '&':
		if l.peek() == '&' {
			l.advance()
			return l.simple(token.AND_AND, start)
		}
		return l.simple(token.AMP, start)
	case '|':
		if l.peek() == '|' {
			l.advance()
			return l.simple(token.OR_OR, start)
		}
		return l.illegal(start, string(l.ch))
	case '<':
		if l.peek() == '=' {
			l.advance()
			return l.simple(token.LE, start)
		}
		return l.simple(token.LT, start)
	case '>':
		if l.peek() == '=' {
			l.advance()
			return l.simple(token.GE, start)
		}
		return l.simple(token.GT, start)
	case '=':
		if l.peek() == '=' {
			l.advance()
			return l.simple(token.EQ, start)
		}
		return l.simple(token.ASSIGN, start)
	case '!':
		if l.peek() == '=' {
			l.advance()
			return l.simple(token.NE, start)
		}
		return l.simple(token.BANG, start)
	}

	return l.illegal(start, string(l.ch))
}

// simple consumes the current rune as a one- or two-rune token of kind k.
// Callers that matched a two-rune operator (e.g. "<=") have already
// advanced past the first rune before calling this, so l.readPos always
// marks the end of the full lexeme.
func (l *Lexer) simple(k token.Kind, start source.Position) token.Token {
	lit := l.input[start.Offset:l.readPos]
	l.advance()
	return token.Token{Kind: k, Literal: lit, Span: l.spanFrom(start)}
}

func (l *Lexer) illegal(start source.Position, ch string) token.Token {
	span := l.spanFrom(start)
	l.issues.Add(diag.UnknownCharacter(l.locale, span, ch))
	l.advance()
	return token.Token{Kind: token.ILLEGAL, Literal: ch, Span: span}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.advance()
		case l.ch == '/' && l.peek() == '/':
			if l.keepComments {
				return
			}
			for l.ch != '\n' && l.ch != 0 {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readComment(start source.Position) token.Token {
	for l.ch != '\n' && l.ch != 0 {
		l.advance()
	}
	return token.Token{Kind: token.COMMENT, Literal: l.input[start.Offset:l.pos], Span: l.spanFrom(start)}
}

func (l *Lexer) readIdentifier(start source.Position) token.Token {
	var b strings.Builder
	for isLetter(l.ch) || isDigit(l.ch) {
		b.WriteRune(l.ch)
		l.advance()
	}
	lit := b.String()
	return token.Token{Kind: token.LookupIdent(lit), Literal: lit, Span: l.spanFrom(start)}
}

// readNumber scans an integer or floating-point literal. A literal becomes
// DOUBLE as soon as it has a fractional part or an exponent; otherwise it's
// INT. Bounds-checking against a *target type* (e.g. does 300 fit in an
// int8) is the expression analyser's job per its literal-handling rules;
// here we only reject what cannot be represented as a number at all.
func (l *Lexer) readNumber(start source.Position) token.Token {
	var b strings.Builder
	isDouble := false

	for isDigit(l.ch) {
		b.WriteRune(l.ch)
		l.advance()
	}

	if l.ch == '.' && isDigit(l.peek()) {
		isDouble = true
		b.WriteRune(l.ch)
		l.advance()
		for isDigit(l.ch) {
			b.WriteRune(l.ch)
			l.advance()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		lookahead := l.peek()
		if isDigit(lookahead) || ((lookahead == '+' || lookahead == '-') && l.peekAfterSign()) {
			isDouble = true
			b.WriteRune(l.ch)
			l.advance()
			if l.ch == '+' || l.ch == '-' {
				b.WriteRune(l.ch)
				l.advance()
			}
			for isDigit(l.ch) {
				b.WriteRune(l.ch)
				l.advance()
			}
		} else if isLetter(lookahead) || lookahead == '.' {
			// looks like an exponent marker was intended but has no digits
			span := l.spanFrom(start)
			l.issues.Add(diag.BadExponent(l.locale, span, b.String()+string(l.ch)))
			l.advance()
			return token.Token{Kind: token.ILLEGAL, Literal: b.String(), Span: span}
		}
	}

	lit := b.String()
	span := l.spanFrom(start)

	if isLetter(l.ch) {
		// a number immediately followed by an identifier character, e.g.
		// "123abc", is not a valid token shape at all.
		for isLetter(l.ch) || isDigit(l.ch) {
			l.advance()
		}
		l.issues.Add(diag.UnknownNumber(l.locale, l.spanFrom(start), l.input[start.Offset:l.pos]))
		return token.Token{Kind: token.ILLEGAL, Literal: l.input[start.Offset:l.pos], Span: l.spanFrom(start)}
	}

	if isDouble {
		if _, err := strconv.ParseFloat(lit, 64); err != nil {
			l.issues.Add(diag.UnknownNumber(l.locale, span, lit))
			return token.Token{Kind: token.ILLEGAL, Literal: lit, Span: span}
		}
		return token.Token{Kind: token.DOUBLE, Literal: lit, Span: span}
	}

	if _, err := strconv.ParseInt(lit, 10, 64); err != nil {
		l.issues.Add(diag.NumericOutOfRange(l.locale, span, lit))
		return token.Token{Kind: token.ILLEGAL, Literal: lit, Span: span}
	}
	return token.Token{Kind: token.INT, Literal: lit, Span: span}
}

// peekAfterSign reports whether the rune after a potential 'e+'/'e-' sign
// is a digit, so "1e+" without trailing digits isn't mistaken for a valid
// exponent lookahead.
func (l *Lexer) peekAfterSign() bool {
	if l.readPos >= len(l.input) {
		return false
	}
	_, width := utf8.DecodeRuneInString(l.input[l.readPos:])
	next := l.readPos + width
	if next >= len(l.input) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(l.input[next:])
	return isDigit(r)
}
