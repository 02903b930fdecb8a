// Package runtime implements quill's value model, lexical environments,
// and the non-error control-flow signals the evaluator threads through a
// running program.
package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/quill/internal/ast"
)

// Value is the runtime tagged sum. Every concrete variant
// implements Type, String (the print-statement rendering), and Truthy.
type Value interface {
	Type() string
	String() string
	Truthy() bool
}

// Number is a 64-bit float; quill has no separate integer type.
type Number float64

func (Number) Type() string   { return "number" }
func (n Number) Truthy() bool { return n != 0 }

// String returns the shortest round-trip decimal rendering: integral
// values print without a fractional part or trailing zeros.
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// String is quill's immutable text value. The Go name clashes with the
// standard library's strings package only in prose, never in code: callers
// always qualify as runtime.String.
type String string

func (String) Type() string    { return "string" }
func (s String) Truthy() bool  { return true }
func (s String) String() string { return string(s) }

// Bool is quill's boolean value.
type Bool bool

func (Bool) Type() string    { return "bool" }
func (b Bool) Truthy() bool  { return bool(b) }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Nil is quill's single absent value.
type Nil struct{}

func (Nil) Type() string    { return "nil" }
func (Nil) Truthy() bool    { return false }
func (Nil) String() string  { return "nil" }

// Array is a mutable, reference-shared ordered sequence of Values: two
// Array Values referencing the same backing slice observe each other's
// mutations.
type Array struct {
	Elements []Value
}

func NewArray(elems []Value) *Array { return &Array{Elements: elems} }

func (*Array) Type() string { return "array" }
func (a *Array) Truthy() bool { return len(a.Elements) > 0 }
func (a *Array) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Callable is anything invokable: a user function or a class (whose call
// constructs an Instance).
type Callable interface {
	Value
	Arity() int
	Call(interp Interpreter, args []Value) (Value, error)
}

// Interpreter is the subset of the evaluator a Callable needs to invoke a
// function body or run a class initializer, kept here to avoid an import
// cycle between runtime and interp.
type Interpreter interface {
	ExecuteBlock(stmts []ast.Statement, env *Environment) (Value, ControlFlowKind, error)
}

// Instance is an object: a mutable field map plus a pointer to its class.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: map[string]Value{}}
}

func (*Instance) Type() string   { return "instance" }
func (*Instance) Truthy() bool   { return true }
func (i *Instance) String() string { return fmt.Sprintf("<instanceof %s>", i.Class.Name) }

// Get implements property read: field first, then a bound method, else a
// runtime error.
func (i *Instance) Get(name string) (Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if m, ok := i.Class.FindMethod(name); ok {
		return m.Bind(i), true
	}
	return nil, false
}

// Set always stores into the field map, shadowing any method of the same
// name.
func (i *Instance) Set(name string, v Value) {
	i.Fields[name] = v
}
