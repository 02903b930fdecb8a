package ast

import (
	"strings"

	"github.com/cwbudde/quill/internal/lexer"
)

// ExprStmt is an expression evaluated for its side effect, its value
// discarded.
type ExprStmt struct {
	Expr Expression
}

func (*ExprStmt) statementNode()      {}
func (e *ExprStmt) Pos() lexer.Position { return e.Expr.Pos() }
func (e *ExprStmt) String() string      { return e.Expr.String() + ";" }

// PrintStmt evaluates Expr and appends its rendering to the run's output log.
type PrintStmt struct {
	Keyword lexer.Token
	Expr    Expression
}

func (*PrintStmt) statementNode()      {}
func (p *PrintStmt) Pos() lexer.Position { return p.Keyword.Pos }
func (p *PrintStmt) String() string      { return "print " + p.Expr.String() + ";" }

// VarStmt declares a new binding, optionally with an initializer. A
// variable declared without one is bound to Nil.
type VarStmt struct {
	Name lexer.Token
	Init Expression // nil when no initializer was given
}

func (*VarStmt) statementNode()      {}
func (v *VarStmt) Pos() lexer.Position { return v.Name.Pos }
func (v *VarStmt) String() string {
	if v.Init == nil {
		return "let " + v.Name.Lexeme + ";"
	}
	return "let " + v.Name.Lexeme + " = " + v.Init.String() + ";"
}

// BlockStmt is a `{ ... }` sequence of statements introducing a new scope.
type BlockStmt struct {
	Brace      lexer.Token
	Statements []Statement
}

func (*BlockStmt) statementNode()      {}
func (b *BlockStmt) Pos() lexer.Position { return b.Brace.Pos }
func (b *BlockStmt) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.Statements {
		sb.WriteString("  ")
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// IfStmt is `if (cond) then [else else_]`. Else is nil when absent; an
// `elif` chain is represented as a nested IfStmt in Else.
type IfStmt struct {
	Keyword lexer.Token
	Cond    Expression
	Then    Statement
	Else    Statement
}

func (*IfStmt) statementNode()      {}
func (i *IfStmt) Pos() lexer.Position { return i.Keyword.Pos }
func (i *IfStmt) String() string {
	s := "if (" + i.Cond.String() + ") " + i.Then.String()
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

// WhileStmt is `while (cond) body`. The parser desugars `for` loops into
// this, so WhileStmt is the only loop node; Post holds a `for` loop's
// increment clause (nil for a plain `while`) and runs after Body on every
// iteration that doesn't `break`, including one that hit `continue` — it is
// not part of Body itself, so a `continue` skipping the rest of Body can't
// also skip it.
type WhileStmt struct {
	Keyword lexer.Token
	Cond    Expression
	Body    Statement
	Post    Expression // nil for a plain `while`; a `for` loop's increment
}

func (*WhileStmt) statementNode()      {}
func (w *WhileStmt) Pos() lexer.Position { return w.Keyword.Pos }
func (w *WhileStmt) String() string {
	if w.Post != nil {
		return "while (" + w.Cond.String() + ") { " + w.Body.String() + "; " + w.Post.String() + "; }"
	}
	return "while (" + w.Cond.String() + ") " + w.Body.String()
}

// FunctionStmt is both a top-level function declaration and a class
// method body; the resolver and evaluator tell the two apart by where the
// node appears (ClassStmt.Methods vs. a block's statement list).
type FunctionStmt struct {
	Name   lexer.Token
	Params []lexer.Token
	Body   []Statement
}

func (*FunctionStmt) statementNode()      {}
func (f *FunctionStmt) Pos() lexer.Position { return f.Name.Pos }
func (f *FunctionStmt) String() string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Lexeme
	}
	return "fun " + f.Name.Lexeme + "(" + strings.Join(names, ", ") + ") { ... }"
}

// ReturnStmt is `return [expr];`. Value is nil for a bare `return;`, which
// evaluates to Nil.
type ReturnStmt struct {
	Keyword lexer.Token
	Value   Expression // nil when no value was given
}

func (*ReturnStmt) statementNode()      {}
func (r *ReturnStmt) Pos() lexer.Position { return r.Keyword.Pos }
func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "return;"
	}
	return "return " + r.Value.String() + ";"
}

// ClassStmt is a class declaration, optionally inheriting from Superclass.
type ClassStmt struct {
	Name       lexer.Token
	Superclass *Variable // nil when the class has no `inherits` clause
	Methods    []*FunctionStmt
}

func (*ClassStmt) statementNode()      {}
func (c *ClassStmt) Pos() lexer.Position { return c.Name.Pos }
func (c *ClassStmt) String() string {
	var sb strings.Builder
	sb.WriteString("class ")
	sb.WriteString(c.Name.Lexeme)
	if c.Superclass != nil {
		sb.WriteString(" inherits ")
		sb.WriteString(c.Superclass.Name.Lexeme)
	}
	sb.WriteString(" {\n")
	for _, m := range c.Methods {
		sb.WriteString("  ")
		sb.WriteString(m.String())
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// BreakStmt is `break;`, valid only inside a loop body (enforced at
// evaluation time, since loop nesting is a dynamic property here, not a
// static one).
type BreakStmt struct {
	Keyword lexer.Token
}

func (*BreakStmt) statementNode()      {}
func (b *BreakStmt) Pos() lexer.Position { return b.Keyword.Pos }
func (b *BreakStmt) String() string      { return "break;" }

// ContinueStmt is `continue;`, the counterpart to BreakStmt.
type ContinueStmt struct {
	Keyword lexer.Token
}

func (*ContinueStmt) statementNode()      {}
func (c *ContinueStmt) Pos() lexer.Position { return c.Keyword.Pos }
func (c *ContinueStmt) String() string      { return "continue;" }
