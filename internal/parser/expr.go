package parser

import (
	"github.com/cwbudde/quill/internal/ast"
	"github.com/cwbudde/quill/internal/lexer"
)

// compoundOps maps a compound-assignment token to the binary operator it
// desugars into.
var compoundOps = map[lexer.TokenType]lexer.TokenType{
	lexer.PlusEqual:  lexer.Plus,
	lexer.MinusEqual: lexer.Minus,
	lexer.StarEqual:  lexer.Star,
	lexer.SlashEqual: lexer.Slash,
}

func (p *Parser) expression() ast.Expression {
	return p.assignment()
}

// assignment is right-associative and sits above `or`: it parses an
// or-level expression, then rewrites it into Assign/Set/SetIndexed if
// followed by `=`, a compound operator, or a postfix `++`/`--`.
func (p *Parser) assignment() ast.Expression {
	expr := p.or()

	if p.match(lexer.Equal) {
		equals := p.previous()
		value := p.assignment()
		return p.rewriteAssign(expr, equals, value)
	}

	if op, ok := compoundOps[p.peek().Type]; ok {
		opTok := p.advance()
		rhs := p.assignment()
		combined := &ast.Binary{Left: expr, Op: lexer.Token{Type: op, Lexeme: opTok.Lexeme, Pos: opTok.Pos}, Right: rhs}
		return p.rewriteAssign(expr, opTok, combined)
	}

	if p.match(lexer.PlusPlus, lexer.MinusMinus) {
		opTok := p.previous()
		one := &ast.Literal{Tok: opTok, Value: float64(1)}
		binOp := lexer.Plus
		if opTok.Type == lexer.MinusMinus {
			binOp = lexer.Minus
		}
		combined := &ast.Binary{Left: expr, Op: lexer.Token{Type: binOp, Lexeme: opTok.Lexeme, Pos: opTok.Pos}, Right: one}
		return p.rewriteAssign(expr, opTok, combined)
	}

	return expr
}

// rewriteAssign builds the Assign/Set/SetIndexed node for target = value,
// or reports "Invalid assignment target." if target is not an assignable
// form.
func (p *Parser) rewriteAssign(target ast.Expression, errTok lexer.Token, value ast.Expression) ast.Expression {
	switch t := target.(type) {
	case *ast.Variable:
		return &ast.Assign{Name: t.Name, Value: value}
	case *ast.Get:
		return &ast.Set{Object: t.Object, Name: t.Name, Value: value}
	case *ast.GetIndexed:
		return &ast.SetIndexed{Object: t.Object, Index: t.Index, Value: value, Bracket: t.Bracket}
	default:
		p.errorAt(errTok, "Invalid assignment target.")
		panic(parseError{})
	}
}

func (p *Parser) or() ast.Expression {
	expr := p.and()
	for p.match(lexer.Or, lexer.PipePipe) {
		op := p.previous()
		right := p.and()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expression {
	expr := p.equality()
	for p.match(lexer.And, lexer.AmpAmp) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expression {
	expr := p.comparison()
	for p.match(lexer.BangEqual, lexer.EqualEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expression {
	expr := p.term()
	for p.match(lexer.Greater, lexer.GreaterEqual, lexer.Less, lexer.LessEqual) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expression {
	expr := p.factor()
	for p.match(lexer.Plus, lexer.Minus, lexer.Percent) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expression {
	expr := p.unary()
	for p.match(lexer.Star, lexer.Slash) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// unary is right-associative via direct recursion: `!!x` parses as `!(!x)`.
func (p *Parser) unary() ast.Expression {
	if p.match(lexer.Bang, lexer.Minus) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Op: op, Right: right}
	}
	return p.call()
}

// call parses postfix `(args)`, `.name`, and `[index]` chains, left to
// right, on top of a primary expression.
func (p *Parser) call() ast.Expression {
	expr := p.primary()

	for {
		switch {
		case p.match(lexer.LeftParen):
			expr = p.finishCall(expr)
		case p.match(lexer.Dot):
			name := p.consume(lexer.Identifier, "Expect property name after '.'")
			expr = &ast.Get{Object: expr, Name: name}
		case p.match(lexer.LeftBracket):
			bracket := p.previous()
			index := p.expression()
			p.consume(lexer.RightBracket, "Expect ']' after index.")
			expr = &ast.GetIndexed{Object: expr, Index: index, Bracket: bracket}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) ast.Expression {
	var args []ast.Expression
	if !p.check(lexer.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
				panic(parseError{})
			}
			args = append(args, p.expression())
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	paren := p.consume(lexer.RightParen, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expression {
	switch {
	case p.match(lexer.False):
		return &ast.Literal{Tok: p.previous(), Value: false}
	case p.match(lexer.True):
		return &ast.Literal{Tok: p.previous(), Value: true}
	case p.match(lexer.Nil):
		return &ast.Literal{Tok: p.previous(), Value: nil}
	case p.match(lexer.Number):
		tok := p.previous()
		return &ast.Literal{Tok: tok, Value: tok.Literal}
	case p.match(lexer.String):
		tok := p.previous()
		return &ast.Literal{Tok: tok, Value: tok.Literal}
	case p.match(lexer.This):
		return &ast.This{Keyword: p.previous()}
	case p.match(lexer.Super):
		keyword := p.previous()
		p.consume(lexer.Dot, "Expect '.' after 'super'")
		method := p.consume(lexer.Identifier, "Expect property name after '.'")
		return &ast.Super{Keyword: keyword, Method: method}
	case p.match(lexer.Identifier):
		return &ast.Variable{Name: p.previous()}
	case p.match(lexer.LeftParen):
		paren := p.previous()
		expr := p.expression()
		p.consume(lexer.RightParen, "Expect ')' after expression.")
		return &ast.Grouping{Paren: paren, Expr: expr}
	case p.match(lexer.LeftBracket):
		bracket := p.previous()
		var elems []ast.Expression
		if !p.check(lexer.RightBracket) {
			for {
				elems = append(elems, p.expression())
				if !p.match(lexer.Comma) {
					break
				}
			}
		}
		p.consume(lexer.RightBracket, "Expect ']' after index.")
		return &ast.ArrayLit{Bracket: bracket, Elements: elems}
	default:
		p.errorAt(p.peek(), "Expect expression.")
		panic(parseError{})
	}
}
