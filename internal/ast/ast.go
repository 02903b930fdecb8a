// Package ast defines quill's abstract syntax tree node types.
package ast

import (
	"strings"

	"github.com/cwbudde/quill/internal/lexer"
)

// Node is the base interface every AST node implements.
type Node interface {
	// Pos returns the node's source position, used for diagnostics.
	Pos() lexer.Position
	// String renders the node for debugging (the CLI's --dump-ast flag).
	String() string
}

// Expression is any node that produces a Value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without producing a value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of a parsed source file: a sequence of statements.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 0}
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
