package parser

import (
	"github.com/psenchanka/colang/internal/ast"
	"github.com/psenchanka/colang/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.LBRACE:
		return p.parseCodeBlock()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IDENT:
		if p.looksLikeVariableDefinition() {
			return p.parseVariableDefinitionStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// looksLikeVariableDefinition disambiguates "Type name ..." (a local
// variable definition) from an expression statement that merely starts
// with an identifier (a call, an assignment, a bare reference): both start
// with IDENT, but only a variable definition has a second IDENT right
// after it without an intervening operator.
func (p *Parser) looksLikeVariableDefinition() bool {
	return p.peekIs(token.IDENT) || (p.peekIs(token.AMP))
}

func (p *Parser) parseVariableDefinitionStatement() *ast.VariableDefinitionStatement {
	start := p.cur.Span
	typeRef := p.parseTypeReference()
	name := p.identOrEmpty()
	defs := []*ast.VariableDefinition{p.parseOneVariable(typeRef, name)}
	for p.curIs(token.COMMA) {
		p.advance()
		defs = append(defs, p.parseOneVariable(typeRef, p.identOrEmpty()))
	}
	end := p.cur.Span
	p.expect(token.SEMI, "';'")
	return &ast.VariableDefinitionStatement{Definitions: defs, Sp: start.Union(end)}
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	start := p.cur.Span
	expr := p.parseExpression(lowest)
	end := p.cur.Span
	p.expect(token.SEMI, "';'")
	return &ast.ExpressionStatement{Expr: expr, Sp: start.Union(end)}
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	start := p.cur.Span
	p.advance() // 'if'
	p.expect(token.LPAREN, "'('")
	cond := p.parseExpression(lowest)
	p.expectClosingParen()
	then := p.parseStatement()
	var elseStmt ast.Statement
	if p.curIs(token.ELSE) {
		p.advance()
		elseStmt = p.parseStatement()
	}
	return &ast.IfStatement{Condition: cond, Then: then, Else: elseStmt, Sp: start.Union(p.cur.Span)}
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	start := p.cur.Span
	p.advance() // 'while'
	p.expect(token.LPAREN, "'('")
	cond := p.parseExpression(lowest)
	p.expectClosingParen()
	body := p.parseStatement()
	return &ast.WhileStatement{Condition: cond, Body: body, Sp: start.Union(p.cur.Span)}
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	start := p.cur.Span
	p.advance() // 'return'
	var value ast.Expression
	if !p.curIs(token.SEMI) {
		value = p.parseExpression(lowest)
	}
	end := p.cur.Span
	p.expect(token.SEMI, "';'")
	return &ast.ReturnStatement{Value: value, Sp: start.Union(end)}
}
