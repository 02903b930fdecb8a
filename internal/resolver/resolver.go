// Package resolver performs quill's static resolution pass: a single AST
// walk that computes, for every variable reference, the number of lexical
// scopes to walk to find its binding, and enforces the handful of static
// rules (this/super usage, top-level return, redeclaration, self-inherit).
package resolver

import (
	"fmt"

	"github.com/cwbudde/quill/internal/ast"
	"github.com/cwbudde/quill/internal/diag"
	"github.com/cwbudde/quill/internal/lexer"
)

// functionType tags what kind of function body is currently being resolved.
type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnMethod
	fnInitializer
)

// classType tags whether the class currently being resolved has a
// superclass, which gates whether `super` is legal inside it.
type classType int

const (
	clsNone classType = iota
	clsClass
	clsSubclass
)

// Locals maps an expression node (Variable, Assign, This, or Super, keyed
// by pointer identity) to its resolved lexical depth. Absence means the
// binding is global and is looked up at runtime instead.
type Locals map[ast.Expression]int

// Resolver walks a parsed Program and produces a Locals map.
type Resolver struct {
	reporter *diag.Reporter
	scopes   []map[string]bool
	locals   Locals

	currentFunction functionType
	currentClass    classType
}

// New creates a Resolver reporting static errors to reporter.
func New(reporter *diag.Reporter) *Resolver {
	return &Resolver{reporter: reporter, locals: Locals{}}
}

// Resolve walks prog's statements and returns the accumulated Locals map.
// It stops at the first reported error, mirroring the parser's
// first-error-wins contract.
func (r *Resolver) Resolve(prog *ast.Program) Locals {
	r.resolveStmts(prog.Statements)
	return r.locals
}

func (r *Resolver) resolveStmts(stmts []ast.Statement) {
	for _, s := range stmts {
		if r.reporter.HasErrors() {
			return
		}
		r.resolveStmt(s)
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]bool{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare inserts name into the innermost scope as "not yet defined". A
// duplicate declaration in the same scope is a static error.
func (r *Resolver) declare(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.reportAt(name, fmt.Sprintf("Variable with name '%s' already declared in this scope.", name.Lexeme))
		return
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) reportAt(tok lexer.Token, message string) {
	r.reporter.Report(diag.FromToken(diag.Runtime, tok, message))
}

// resolveLocal walks the scope stack from the innermost scope outward looking
// for name; on a hit at depth d (0 = innermost) it records expr -> d.
// Not found means a global, left unresolved.
func (r *Resolver) resolveLocal(expr ast.Expression, name lexer.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}
