// Package parser builds CO's raw syntax tree from a token stream using a
// recursive-descent, Pratt-style expression parser.
package parser

import (
	"github.com/psenchanka/colang/internal/ast"
	"github.com/psenchanka/colang/internal/diag"
	"github.com/psenchanka/colang/internal/lexer"
	"github.com/psenchanka/colang/internal/source"
	"github.com/psenchanka/colang/internal/token"
)

// precedence levels for CO's operator table.
type precedence int

const (
	_ precedence = iota
	lowest
	assignPrec     // = (right-associative)        10
	orPrec         // ||                           20
	andPrec        // &&                           30
	equalityPrec   // == !=                        40
	relationalPrec // < > <= >=                     50
	sumPrec        // + -                           60
	productPrec    // * /                           70
	prefixPrec     // unary ! and -
	callPrec       // f(...) / receiver.member
)

var precedences = map[token.Kind]precedence{
	token.ASSIGN:  assignPrec,
	token.OR_OR:   orPrec,
	token.AND_AND: andPrec,
	token.EQ:      equalityPrec,
	token.NE:      equalityPrec,
	token.LT:      relationalPrec,
	token.GT:      relationalPrec,
	token.LE:      relationalPrec,
	token.GE:      relationalPrec,
	token.PLUS:    sumPrec,
	token.MINUS:   sumPrec,
	token.STAR:    productPrec,
	token.SLASH:   productPrec,
	token.LPAREN:  callPrec,
	token.DOT:     callPrec,
}

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithLocale selects the locale parser diagnostics are rendered in.
func WithLocale(locale diag.Locale) Option {
	return func(p *Parser) { p.locale = locale }
}

// Parser consumes a lexer's token stream and builds a *ast.Program.
type Parser struct {
	l      *lexer.Lexer
	locale diag.Locale
	issues diag.Bag

	cur, peek token.Token
}

// New creates a Parser reading tokens from l.
func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{l: l, locale: diag.DefaultLocale}
	for _, opt := range opts {
		opt(p)
	}
	p.advance()
	p.advance()
	return p
}

// Issues returns every parse-time diagnostic recorded so far, including
// any lexical issues the underlying lexer recorded.
func (p *Parser) Issues() []diag.Issue {
	return append(append([]diag.Issue{}, p.l.Issues()...), p.issues.Issues()...)
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.Next()
}

func (p *Parser) curIs(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek.Kind == k }

// expect advances past cur if it has kind k, otherwise records a
// MissingNode diagnostic at the point cur actually starts and returns
// false without advancing, leaving the caller free to attempt recovery.
func (p *Parser) expect(k token.Kind, what string) bool {
	if p.curIs(k) {
		p.advance()
		return true
	}
	p.issues.Add(diag.MissingNode(p.locale, p.cur.Span.Before(), what))
	return false
}

// expectClosingParen and expectClosingBrace are expect's counterparts for
// the two delimiters that get their own diagnostic codes (E0008/E0009)
// rather than the generic "expected X" of MissingNode.
func (p *Parser) expectClosingParen() bool {
	if p.curIs(token.RPAREN) {
		p.advance()
		return true
	}
	p.issues.Add(diag.MissingClosingParen(p.locale, p.cur.Span.Before()))
	return false
}

func (p *Parser) expectClosingBrace() bool {
	if p.curIs(token.RBRACE) {
		p.advance()
		return true
	}
	p.issues.Add(diag.MissingClosingBrace(p.locale, p.cur.Span.Before()))
	return false
}

func (p *Parser) curPrecedence() precedence {
	if pr, ok := precedences[p.cur.Kind]; ok {
		return pr
	}
	return lowest
}

// ParseProgram parses an entire file into a *ast.Program.
func (p *Parser) ParseProgram() *ast.Program {
	start := p.cur.Span
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		before := p.cur
		def := p.parseGlobalDefinition()
		if def != nil {
			prog.Definitions = append(prog.Definitions, def)
		}
		if p.cur == before {
			// Nothing was consumed: avoid looping forever on unrecoverable
			// input by skipping the offending token.
			p.advance()
		}
	}
	prog.Sp = start.Union(p.cur.Span)
	return prog
}

func (p *Parser) parseSpecifiers() []ast.Specifier {
	var specs []ast.Specifier
	for p.curIs(token.NATIVE) {
		specs = append(specs, ast.Specifier{Name: p.cur.Literal, Sp: p.cur.Span})
		p.advance()
	}
	return specs
}

func (p *Parser) parseTypeReference() *ast.TypeReference {
	start := p.cur.Span
	if !p.curIs(token.IDENT) {
		p.issues.Add(diag.MissingSpecifier(p.locale, p.cur.Span))
		return &ast.TypeReference{Sp: start}
	}
	name := p.cur.Literal
	p.advance()
	ref := false
	sp := start
	if p.curIs(token.AMP) {
		ref = true
		sp = sp.Union(p.cur.Span)
		p.advance()
	}
	return &ast.TypeReference{Name: name, Reference: ref, Sp: sp}
}

func (p *Parser) parseParameters() []*ast.Parameter {
	p.expect(token.LPAREN, "'('")
	var params []*ast.Parameter
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		start := p.cur.Span
		typeRef := p.parseTypeReference()
		name := p.identOrEmpty()
		params = append(params, &ast.Parameter{Type: typeRef, Name: name, Sp: start.Union(p.cur.Span)})
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expectClosingParen()
	return params
}

func (p *Parser) identOrEmpty() string {
	if p.curIs(token.IDENT) {
		name := p.cur.Literal
		p.advance()
		return name
	}
	if token.IsKeyword(p.cur.Kind) {
		p.issues.Add(diag.KeywordAsIdentifier(p.locale, p.cur.Span, p.cur.Literal))
		p.advance()
	} else {
		p.issues.Add(diag.MissingNode(p.locale, p.cur.Span.Before(), "a name"))
	}
	return ""
}

// parseGlobalDefinition parses one top-level TypeDefinition,
// FunctionDefinition, or VariablesDefinition. Leading specifiers (e.g.
// "native") are collected before the keyword/type that disambiguates
// the three, since all three grammar productions allow them.
func (p *Parser) parseGlobalDefinition() ast.GlobalDefinition {
	start := p.cur.Span
	specifiers := p.parseSpecifiers()

	if p.curIs(token.TYPE) {
		return p.parseTypeDefinition(specifiers, start)
	}

	typeRef := p.parseTypeReference()
	name := p.identOrEmpty()

	if p.curIs(token.LPAREN) {
		return p.parseFunctionDefinition(specifiers, typeRef, name, start)
	}
	return p.parseVariablesDefinition(typeRef, name, start)
}

func (p *Parser) parseTypeDefinition(specifiers []ast.Specifier, start source.Span) *ast.TypeDefinition {
	p.advance() // 'type'
	name := p.identOrEmpty()
	p.expect(token.LBRACE, "'{'")

	td := &ast.TypeDefinition{Specifiers: specifiers, Name: name}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		before := p.cur
		member := p.parseMember(name)
		if member != nil {
			td.Members = append(td.Members, member)
		}
		if p.cur == before {
			p.advance()
		}
	}
	end := p.cur.Span
	p.expectClosingBrace()
	td.Sp = start.Union(end)
	return td
}

func (p *Parser) parseMember(typeName string) ast.Member {
	start := p.cur.Span
	specifiers := p.parseSpecifiers()

	if p.curIs(token.IDENT) && p.cur.Literal == typeName && p.peekIs(token.LPAREN) {
		name := p.cur.Literal
		p.advance()
		params := p.parseParameters()
		body := p.parseOptionalBody()
		return &ast.ConstructorDefinition{Specifiers: specifiers, Name: name, Parameters: params, Body: body, Sp: start.Union(p.cur.Span)}
	}

	typeRef := p.parseTypeReference()
	name := p.identOrEmpty()

	if p.curIs(token.LPAREN) {
		params := p.parseParameters()
		body := p.parseOptionalBody()
		return &ast.MethodDefinition{Specifiers: specifiers, ReturnType: typeRef, Name: name, Parameters: params, Body: body, Sp: start.Union(p.cur.Span)}
	}

	end := p.cur.Span
	p.expect(token.SEMI, "';'")
	return &ast.FieldDefinition{Type: typeRef, Name: name, Sp: start.Union(end)}
}

// parseOptionalBody parses a '{ ... }' code block, or a bare ';' for a
// native declaration with no body. Whether that absence is legal for this
// particular declaration is a semantic question, not a syntax one.
func (p *Parser) parseOptionalBody() *ast.CodeBlock {
	if p.curIs(token.SEMI) {
		p.advance()
		return nil
	}
	return p.parseCodeBlock()
}

func (p *Parser) parseFunctionDefinition(specifiers []ast.Specifier, returnType *ast.TypeReference, name string, start source.Span) *ast.FunctionDefinition {
	if returnType.Reference {
		p.issues.Add(diag.ReferenceMarkerInFunction(p.locale, returnType.Sp))
	}
	params := p.parseParameters()
	body := p.parseOptionalBody()
	return &ast.FunctionDefinition{Specifiers: specifiers, ReturnType: returnType, Name: name, Parameters: params, Body: body, Sp: start.Union(p.cur.Span)}
}

func (p *Parser) parseVariablesDefinition(typeRef *ast.TypeReference, firstName string, start source.Span) *ast.VariablesDefinition {
	vd := &ast.VariablesDefinition{}
	vd.Variables = append(vd.Variables, p.parseOneVariable(typeRef, firstName))
	for p.curIs(token.COMMA) {
		p.advance()
		name := p.identOrEmpty()
		vd.Variables = append(vd.Variables, p.parseOneVariable(typeRef, name))
	}
	end := p.cur.Span
	p.expect(token.SEMI, "';'")
	vd.Sp = start.Union(end)
	return vd
}

func (p *Parser) parseOneVariable(typeRef *ast.TypeReference, name string) *ast.VariableDefinition {
	start := p.cur.Span
	var init ast.Expression
	if p.curIs(token.ASSIGN) {
		p.advance()
		if p.curIs(token.COMMA) || p.curIs(token.SEMI) {
			p.issues.Add(diag.MissingVariableInitializer(p.locale, p.cur.Span.Before()))
		} else {
			init = p.parseExpression(lowest)
		}
	}
	return &ast.VariableDefinition{Type: typeRef, Name: name, Initializer: init, Sp: start.Union(p.cur.Span)}
}

func (p *Parser) parseCodeBlock() *ast.CodeBlock {
	start := p.cur.Span
	p.expect(token.LBRACE, "'{'")
	block := &ast.CodeBlock{}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		before := p.cur
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if p.cur == before {
			p.advance()
		}
	}
	end := p.cur.Span
	p.expectClosingBrace()
	block.Sp = start.Union(end)
	return block
}
