// Package parser implements quill's recursive-descent parser.
//
// Unlike a Pratt parser, each precedence level of the grammar gets its
// own named method (the expression() family in expr.go); the ladder itself
// is the explicit call chain, not a precedence table.
package parser

import (
	"github.com/cwbudde/quill/internal/ast"
	"github.com/cwbudde/quill/internal/diag"
	"github.com/cwbudde/quill/internal/lexer"
)

// maxArgs is the cap on function parameters and call arguments.
const maxArgs = 255

// parseError is the sentinel panic value used to unwind out of a broken
// production once its diagnostic has already been reported. It carries no
// payload: the Reporter is the single source of truth for what went wrong.
type parseError struct{}

// Parser consumes a token slice and produces an *ast.Program.
type Parser struct {
	tokens   []lexer.Token
	current  int
	reporter *diag.Reporter
}

// New creates a Parser over tokens, reporting syntax errors to reporter.
func New(tokens []lexer.Token, reporter *diag.Reporter) *Parser {
	return &Parser{tokens: tokens, reporter: reporter}
}

// Parse parses the full token stream into a Program. On the first syntax
// error it stops and returns nil; the error itself is already recorded on
// the Reporter, and no further errors are collected after it.
func (p *Parser) Parse() (prog *ast.Program) {
	prog = &ast.Program{}
	for !p.isAtEnd() {
		stmt := p.declaration()
		if p.reporter.HasErrors() {
			return nil
		}
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.EOF
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt lexer.TokenType) bool {
	if p.isAtEnd() {
		return tt == lexer.EOF
	}
	return p.peek().Type == tt
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past the expected token type or reports message and
// unwinds the current production via parseError.
func (p *Parser) consume(tt lexer.TokenType, message string) lexer.Token {
	if p.check(tt) {
		return p.advance()
	}
	p.errorAt(p.peek(), message)
	panic(parseError{})
}

func (p *Parser) errorAt(tok lexer.Token, message string) {
	p.reporter.Report(diag.FromToken(diag.Syntax, tok, message))
}

// synchronize discards tokens until a likely statement boundary, used by
// declaration() to recover after a caught parseError so panic-mode actually
// has somewhere to resume — though in practice Parse's outer loop stops at
// the first reported error before a second declaration is ever attempted.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == lexer.Semicolon {
			return
		}
		switch p.peek().Type {
		case lexer.Class, lexer.Fun, lexer.Var, lexer.For, lexer.If, lexer.While, lexer.Print, lexer.Return:
			return
		}
		p.advance()
	}
}
