package parser

import (
	"github.com/psenchanka/colang/internal/ast"
	"github.com/psenchanka/colang/internal/diag"
	"github.com/psenchanka/colang/internal/source"
	"github.com/psenchanka/colang/internal/token"
)

type prefixParseFn func() ast.Expression
type infixParseFn func(left ast.Expression) ast.Expression

func (p *Parser) prefixParseFn(k token.Kind) prefixParseFn {
	switch k {
	case token.IDENT:
		return p.parseNameExpression
	case token.INT:
		return p.parseIntLiteral
	case token.DOUBLE:
		return p.parseDoubleLiteral
	case token.TRUE, token.FALSE:
		return p.parseBoolLiteral
	case token.THIS:
		return p.parseThisExpression
	case token.LPAREN:
		return p.parseParenExpression
	case token.BANG, token.MINUS:
		return p.parsePrefixExpression
	default:
		return nil
	}
}

func (p *Parser) infixParseFn(k token.Kind) infixParseFn {
	switch k {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH,
		token.LT, token.GT, token.LE, token.GE,
		token.EQ, token.NE, token.AND_AND, token.OR_OR, token.ASSIGN:
		return p.parseInfixExpression
	case token.LPAREN:
		return p.parseCallExpression
	case token.DOT:
		return p.parseMemberExpression
	default:
		return nil
	}
}

// parseExpression implements standard Pratt parsing: a prefix parser
// builds the left operand, then infix parsers fold in operators whose
// precedence exceeds minPrec. '=' is the one right-associative operator;
// every other operator is left-associative.
func (p *Parser) parseExpression(minPrec precedence) ast.Expression {
	prefix := p.prefixParseFn(p.cur.Kind)
	if prefix == nil {
		p.issues.Add(diag.MissingNode(p.locale, p.cur.Span.Before(), "an expression"))
		return nil
	}
	left := prefix()

	for minPrec < p.curPrecedence() {
		infix := p.infixParseFn(p.cur.Kind)
		if infix == nil {
			break
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseNameExpression() ast.Expression {
	n := &ast.NameExpression{Name: p.cur.Literal, Sp: p.cur.Span}
	p.advance()
	return n
}

func (p *Parser) parseIntLiteral() ast.Expression {
	n := &ast.IntLiteral{Text: p.cur.Literal, Sp: p.cur.Span}
	p.advance()
	return n
}

func (p *Parser) parseDoubleLiteral() ast.Expression {
	n := &ast.DoubleLiteral{Text: p.cur.Literal, Sp: p.cur.Span}
	p.advance()
	return n
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	n := &ast.BoolLiteral{Value: p.cur.Kind == token.TRUE, Sp: p.cur.Span}
	p.advance()
	return n
}

func (p *Parser) parseThisExpression() ast.Expression {
	n := &ast.ThisExpression{Sp: p.cur.Span}
	p.advance()
	return n
}

func (p *Parser) parseParenExpression() ast.Expression {
	start := p.cur.Span
	p.advance() // '('
	inner := p.parseExpression(lowest)
	end := p.cur.Span
	p.expectClosingParen()
	return &ast.ParenExpression{Inner: inner, Sp: start.Union(end)}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	start := p.cur.Span
	op := ast.PrefixOperator(p.cur.Literal)
	opTok := p.cur
	p.advance()
	operand := p.parseExpression(prefixPrec)
	if operand == nil {
		p.issues.Add(diag.MissingRightOperand(p.locale, opTok.Span.After(), opTok.Literal))
	}
	return &ast.PrefixExpression{Operator: op, Operand: operand, Sp: start.Union(p.cur.Span)}
}

// parseInfixExpression folds in a binary operator. '=' binds its
// right-hand side at one level below its own precedence, making repeated
// assignment ("a = b = c") associate to the right; every other operator
// binds at its own precedence, making it left-associative.
func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	opTok := p.cur
	prec := p.curPrecedence()
	op := ast.InfixOperator(p.cur.Literal)
	p.advance()

	rhsMin := prec
	if op == ast.OpAssign {
		rhsMin = prec - 1
	}
	right := p.parseExpression(rhsMin)
	if right == nil {
		p.issues.Add(diag.MissingRightOperand(p.locale, opTok.Span.After(), opTok.Literal))
	}
	sp := spanOf(left).Union(opTok.Span)
	if right != nil {
		sp = sp.Union(right.Span())
	}
	return &ast.InfixExpression{Left: left, Operator: op, Right: right, Sp: sp}
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	start := spanOf(callee)
	p.advance() // '('
	var args []ast.Expression
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		args = append(args, p.parseExpression(lowest))
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	end := p.cur.Span
	p.expectClosingParen()
	return &ast.CallExpression{Callee: callee, Arguments: args, Sp: start.Union(end)}
}

func (p *Parser) parseMemberExpression(receiver ast.Expression) ast.Expression {
	start := spanOf(receiver)
	p.advance() // '.'
	name := p.identOrEmpty()
	return &ast.MemberExpression{Receiver: receiver, Name: name, Sp: start.Union(p.cur.Span)}
}

// spanOf safely reads a node's span even when a prior parse error left a
// nil expression in its place, returning a zero span in that case.
func spanOf(n ast.Expression) source.Span {
	if n == nil {
		return source.Span{}
	}
	return n.Span()
}
