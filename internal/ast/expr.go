package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/quill/internal/lexer"
)

// Literal is a number, string, bool, or nil constant. Value holds a
// float64, string, bool, or the untyped nil interface (the Nil literal) —
// the evaluator converts it to a runtime Value when it walks this node.
type Literal struct {
	Tok   lexer.Token
	Value any
}

func (*Literal) expressionNode()      {}
func (l *Literal) Pos() lexer.Position { return l.Tok.Pos }
func (l *Literal) String() string {
	switch v := l.Value.(type) {
	case string:
		return strconv.Quote(v)
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ArrayLit is an array literal `[e1, e2, ...]`.
type ArrayLit struct {
	Bracket  lexer.Token
	Elements []Expression
}

func (*ArrayLit) expressionNode()       {}
func (a *ArrayLit) Pos() lexer.Position { return a.Bracket.Pos }
func (a *ArrayLit) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Variable is a reference to a named binding.
type Variable struct {
	Name lexer.Token
}

func (*Variable) expressionNode()       {}
func (v *Variable) Pos() lexer.Position { return v.Name.Pos }
func (v *Variable) String() string      { return v.Name.Lexeme }

// Grouping is a parenthesized expression `(e)`.
type Grouping struct {
	Paren lexer.Token
	Expr  Expression
}

func (*Grouping) expressionNode()       {}
func (g *Grouping) Pos() lexer.Position { return g.Paren.Pos }
func (g *Grouping) String() string      { return "(" + g.Expr.String() + ")" }

// Unary is a prefix operator: `-e`, `!e`.
type Unary struct {
	Op    lexer.Token
	Right Expression
}

func (*Unary) expressionNode()       {}
func (u *Unary) Pos() lexer.Position { return u.Op.Pos }
func (u *Unary) String() string      { return "(" + u.Op.Lexeme + u.Right.String() + ")" }

// Binary is an arithmetic or comparison operator.
type Binary struct {
	Left  Expression
	Op    lexer.Token
	Right Expression
}

func (*Binary) expressionNode()       {}
func (b *Binary) Pos() lexer.Position { return b.Op.Pos }
func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op.Lexeme + " " + b.Right.String() + ")"
}

// Logical is a short-circuiting `and`/`or` expression.
type Logical struct {
	Left  Expression
	Op    lexer.Token
	Right Expression
}

func (*Logical) expressionNode()       {}
func (l *Logical) Pos() lexer.Position { return l.Op.Pos }
func (l *Logical) String() string {
	return "(" + l.Left.String() + " " + l.Op.Lexeme + " " + l.Right.String() + ")"
}

// Assign is a plain `name = value` assignment (compound `+=`/`++` etc. on a
// variable are desugared into this node by the parser; on a property or an
// index they become Set/SetIndexed).
type Assign struct {
	Name  lexer.Token
	Value Expression
}

func (*Assign) expressionNode()       {}
func (a *Assign) Pos() lexer.Position { return a.Name.Pos }
func (a *Assign) String() string      { return a.Name.Lexeme + " = " + a.Value.String() }

// Call is a function or class invocation `callee(args...)`.
type Call struct {
	Callee Expression
	Paren  lexer.Token // used for diagnostics
	Args   []Expression
}

func (*Call) expressionNode()       {}
func (c *Call) Pos() lexer.Position { return c.Paren.Pos }
func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// Get is property access `object.name`.
type Get struct {
	Object Expression
	Name   lexer.Token
}

func (*Get) expressionNode()       {}
func (g *Get) Pos() lexer.Position { return g.Name.Pos }
func (g *Get) String() string      { return g.Object.String() + "." + g.Name.Lexeme }

// Set is property assignment `object.name = value`.
type Set struct {
	Object Expression
	Name   lexer.Token
	Value  Expression
}

func (*Set) expressionNode()       {}
func (s *Set) Pos() lexer.Position { return s.Name.Pos }
func (s *Set) String() string {
	return s.Object.String() + "." + s.Name.Lexeme + " = " + s.Value.String()
}

// GetIndexed is indexed access `object[index]`.
type GetIndexed struct {
	Object  Expression
	Index   Expression
	Bracket lexer.Token
}

func (*GetIndexed) expressionNode()       {}
func (g *GetIndexed) Pos() lexer.Position { return g.Bracket.Pos }
func (g *GetIndexed) String() string {
	return g.Object.String() + "[" + g.Index.String() + "]"
}

// SetIndexed is indexed assignment `object[index] = value`.
type SetIndexed struct {
	Object  Expression
	Index   Expression
	Value   Expression
	Bracket lexer.Token
}

func (*SetIndexed) expressionNode()       {}
func (s *SetIndexed) Pos() lexer.Position { return s.Bracket.Pos }
func (s *SetIndexed) String() string {
	return s.Object.String() + "[" + s.Index.String() + "] = " + s.Value.String()
}

// This is the `this` keyword, resolved to the enclosing method's receiver.
type This struct {
	Keyword lexer.Token
}

func (*This) expressionNode()       {}
func (t *This) Pos() lexer.Position { return t.Keyword.Pos }
func (t *This) String() string      { return "this" }

// Super is `super.method`, a dispatch to the nearest ancestor's method.
type Super struct {
	Keyword lexer.Token
	Method  lexer.Token
}

func (*Super) expressionNode()       {}
func (s *Super) Pos() lexer.Position { return s.Keyword.Pos }
func (s *Super) String() string      { return "super." + s.Method.Lexeme }
