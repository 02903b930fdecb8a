package parser

import (
	"github.com/cwbudde/quill/internal/ast"
	"github.com/cwbudde/quill/internal/lexer"
)

// declaration parses one top-level-or-block production: a var/fun/class
// declaration, or a fallthrough to statement(). It catches a parseError
// raised anywhere below it and resynchronizes; panic-mode recovery only
// ever triggers at this level.
func (p *Parser) declaration() (stmt ast.Statement) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(lexer.Var):
		return p.varDeclaration()
	case p.match(lexer.Fun):
		return p.function("function")
	case p.match(lexer.Class):
		return p.classDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) varDeclaration() ast.Statement {
	name := p.consume(lexer.Identifier, "Expect variable name.")
	var init ast.Expression
	if p.match(lexer.Equal) {
		init = p.expression()
	}
	p.consume(lexer.Semicolon, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Init: init}
}

// function parses `NAME(params) { body }`. kind is "function" or "method",
// used only to pick the right error messages.
func (p *Parser) function(kind string) *ast.FunctionStmt {
	nameMsg := "Expect function name."
	if kind == "method" {
		nameMsg = "Expect method name."
	}
	name := p.consume(lexer.Identifier, nameMsg)
	p.consume(lexer.LeftParen, "Expect '(' after function name.")

	var params []lexer.Token
	if !p.check(lexer.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
				panic(parseError{})
			}
			params = append(params, p.consume(lexer.Identifier, "Expect variable name."))
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	p.consume(lexer.RightParen, "Expect ')' after parameters.")

	p.consume(lexer.LeftBrace, "Expect '{' before 'class' body.")
	body := p.blockStatements()
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

func (p *Parser) classDeclaration() ast.Statement {
	name := p.consume(lexer.Identifier, "Expect 'class' name")

	var superclass *ast.Variable
	if p.match(lexer.Inherits) {
		p.consume(lexer.Identifier, "Expect variable name.")
		superclass = &ast.Variable{Name: p.previous()}
	}

	p.consume(lexer.LeftBrace, "Expect '{' before 'class' body.")
	var methods []*ast.FunctionStmt
	for !p.check(lexer.RightBrace) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(lexer.RightBrace, "Expect '}' after block.")

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) statement() ast.Statement {
	switch {
	case p.match(lexer.Print):
		return p.printStatement()
	case p.match(lexer.LeftBrace):
		brace := p.previous()
		return &ast.BlockStmt{Brace: brace, Statements: p.blockStatements()}
	case p.match(lexer.If):
		return p.ifStatement()
	case p.match(lexer.While):
		return p.whileStatement()
	case p.match(lexer.For):
		return p.forStatement()
	case p.match(lexer.Return):
		return p.returnStatement()
	case p.match(lexer.Break):
		keyword := p.previous()
		p.consume(lexer.Semicolon, "Expect ';' after expression.")
		return &ast.BreakStmt{Keyword: keyword}
	case p.match(lexer.Continue):
		keyword := p.previous()
		p.consume(lexer.Semicolon, "Expect ';' after expression.")
		return &ast.ContinueStmt{Keyword: keyword}
	default:
		return p.exprStatement()
	}
}

func (p *Parser) printStatement() ast.Statement {
	keyword := p.previous()
	value := p.expression()
	p.consume(lexer.Semicolon, "Expect ';' after value.")
	return &ast.PrintStmt{Keyword: keyword, Expr: value}
}

func (p *Parser) exprStatement() ast.Statement {
	expr := p.expression()
	p.consume(lexer.Semicolon, "Expect ';' after expression.")
	return &ast.ExprStmt{Expr: expr}
}

// blockStatements parses statements up to (and consuming) the closing '}'.
func (p *Parser) blockStatements() []ast.Statement {
	var stmts []ast.Statement
	for !p.check(lexer.RightBrace) && !p.isAtEnd() {
		stmt := p.declaration()
		if p.reporter.HasErrors() {
			// The nested declaration already reported and resynchronized;
			// keep unwinding so parsing stops at this first error.
			panic(parseError{})
		}
		stmts = append(stmts, stmt)
	}
	p.consume(lexer.RightBrace, "Expect '}' after block.")
	return stmts
}

func (p *Parser) ifStatement() ast.Statement {
	keyword := p.previous()
	p.consume(lexer.LeftParen, "Expect '(' after 'if'")
	cond := p.expression()
	p.consume(lexer.RightParen, "Expect ')' after 'if' condition.")

	then := p.statement()
	var elseBranch ast.Statement
	if p.match(lexer.Else) {
		elseBranch = p.statement()
	} else if p.match(lexer.ElseIf) {
		// `elif` is parsed as an `if` nested in Else, so dangling-else binds
		// to the nearest unmatched `if` regardless of which spelling chains.
		elifKeyword := p.previous()
		elseBranch = p.ifStatementFromElif(elifKeyword)
	}
	return &ast.IfStmt{Keyword: keyword, Cond: cond, Then: then, Else: elseBranch}
}

// ifStatementFromElif parses the condition/then/else triple following an
// already-consumed `elif` token, reusing ifStatement's body by treating
// `elif` as the keyword of a nested `if`.
func (p *Parser) ifStatementFromElif(keyword lexer.Token) ast.Statement {
	p.consume(lexer.LeftParen, "Expect '(' after 'if'")
	cond := p.expression()
	p.consume(lexer.RightParen, "Expect ')' after 'if' condition.")

	then := p.statement()
	var elseBranch ast.Statement
	if p.match(lexer.Else) {
		elseBranch = p.statement()
	} else if p.match(lexer.ElseIf) {
		elseBranch = p.ifStatementFromElif(p.previous())
	}
	return &ast.IfStmt{Keyword: keyword, Cond: cond, Then: then, Else: elseBranch}
}

func (p *Parser) whileStatement() ast.Statement {
	keyword := p.previous()
	p.consume(lexer.LeftParen, "Expect '(' after 'while'")
	cond := p.expression()
	p.consume(lexer.RightParen, "Expect ')' after 'while' condition.")
	body := p.statement()
	return &ast.WhileStmt{Keyword: keyword, Cond: cond, Body: body}
}

// forStatement desugars `for (init; cond; inc) body` into
// `{ init; while (cond) { body } }` with `inc` run as the while loop's Post
// clause — not appended as a sibling statement inside body,
// so that a `continue` in body (which unwinds the rest of body but must
// still run `inc`) can't skip it along the way. A missing cond defaults to
// `true`; a missing init skips the outer block.
func (p *Parser) forStatement() ast.Statement {
	keyword := p.previous()
	p.consume(lexer.LeftParen, "Expect '(' after 'for'")

	var init ast.Statement
	switch {
	case p.match(lexer.Semicolon):
		init = nil
	case p.match(lexer.Var):
		init = p.varDeclaration()
	default:
		init = p.exprStatement()
	}

	var cond ast.Expression
	if !p.check(lexer.Semicolon) {
		cond = p.expression()
	}
	p.consume(lexer.Semicolon, "Expect ';' after expression.")

	var inc ast.Expression
	if !p.check(lexer.RightParen) {
		inc = p.expression()
	}
	p.consume(lexer.RightParen, "Expect ')' after 'for' clauses.")

	body := p.statement()

	if cond == nil {
		cond = &ast.Literal{Tok: keyword, Value: true}
	}
	loop := &ast.WhileStmt{Keyword: keyword, Cond: cond, Body: body, Post: inc}

	if init != nil {
		return &ast.BlockStmt{Brace: keyword, Statements: []ast.Statement{init, loop}}
	}
	return loop
}

func (p *Parser) returnStatement() ast.Statement {
	keyword := p.previous()
	var value ast.Expression
	if !p.check(lexer.Semicolon) {
		value = p.expression()
	}
	p.consume(lexer.Semicolon, "Expect ';' after 'return' value")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}
