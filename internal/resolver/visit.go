package resolver

import (
	"github.com/cwbudde/quill/internal/ast"
)

func (r *Resolver) resolveStmt(stmt ast.Statement) {
	if r.reporter.HasErrors() {
		return
	}
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		r.resolveExpr(s.Expr)
	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)
	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
		if s.Post != nil {
			r.resolveExpr(s.Post)
		}
	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fnFunction)
	case *ast.ReturnStmt:
		if r.currentFunction == fnNone {
			r.reportAt(s.Keyword, "Cannot return from top-level code.")
			return
		}
		if s.Value != nil {
			if r.currentFunction == fnInitializer {
				r.reportAt(s.Keyword, "Cannot return a value from an initializer.")
				return
			}
			r.resolveExpr(s.Value)
		}
	case *ast.ClassStmt:
		r.resolveClass(s)
	case *ast.BreakStmt, *ast.ContinueStmt:
		// no bindings to resolve; loop-context validity (used outside any
		// loop, or leaking across a function-call boundary) is an evaluator
		// concern, not a static one.
	}
}

// resolveFunction pushes a scope for params, resolves the body, and
// restores the enclosing function tag — mirroring the save/restore
// discipline the evaluator's own call stack uses.
func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionType) {
	enclosing := r.currentFunction
	r.currentFunction = kind
	defer func() { r.currentFunction = enclosing }()

	r.beginScope()
	for _, p := range fn.Params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(fn.Body)
	r.endScope()
}

func (r *Resolver) resolveClass(c *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = clsClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(c.Name)
	r.define(c.Name)

	if c.Superclass != nil {
		if c.Superclass.Name.Lexeme == c.Name.Lexeme {
			r.reportAt(c.Superclass.Name, "A class cannot inherit from itself.")
			return
		}
		r.currentClass = clsSubclass
		r.resolveExpr(c.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
		defer r.endScope()
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true
	defer r.endScope()

	for _, m := range c.Methods {
		kind := fnMethod
		if m.Name.Lexeme == "init" {
			kind = fnInitializer
		}
		r.resolveFunction(m, kind)
	}
}

func (r *Resolver) resolveExpr(expr ast.Expression) {
	if r.reporter.HasErrors() {
		return
	}
	switch e := expr.(type) {
	case *ast.Literal:
		// no bindings
	case *ast.ArrayLit:
		for _, el := range e.Elements {
			r.resolveExpr(el)
		}
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.reportAt(e.Name, "Cannot read local variable '"+e.Name.Lexeme+"' in its own initializer.")
				return
			}
		}
		r.resolveLocal(e, e.Name)
	case *ast.Grouping:
		r.resolveExpr(e.Expr)
	case *ast.Unary:
		r.resolveExpr(e.Right)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *ast.Get:
		r.resolveExpr(e.Object)
	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.GetIndexed:
		r.resolveExpr(e.Object)
		r.resolveExpr(e.Index)
	case *ast.SetIndexed:
		r.resolveExpr(e.Object)
		r.resolveExpr(e.Index)
		r.resolveExpr(e.Value)
	case *ast.This:
		if r.currentClass == clsNone {
			r.reportAt(e.Keyword, "Cannot use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.Super:
		if r.currentClass == clsNone {
			r.reportAt(e.Keyword, "Cannot use 'super' outside of a class.")
			return
		}
		if r.currentClass != clsSubclass {
			r.reportAt(e.Keyword, "Cannot use 'super' in a class with no superclass.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	}
}
