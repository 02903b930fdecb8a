package runtime

import (
	"fmt"
	"strings"

	"github.com/cwbudde/quill/internal/ast"
)

// Function is a user-defined function or method value: its declaration
// AST, the environment captured at definition time (its closure), and
// whether it is a class's `init` method.
type Function struct {
	Decl          *ast.FunctionStmt
	Closure       *Environment
	IsInitializer bool
}

func NewFunction(decl *ast.FunctionStmt, closure *Environment, isInitializer bool) *Function {
	return &Function{Decl: decl, Closure: closure, IsInitializer: isInitializer}
}

func (*Function) Type() string { return "function" }
func (*Function) Truthy() bool { return true }

func (f *Function) String() string {
	names := make([]string, len(f.Decl.Params))
	for i, p := range f.Decl.Params {
		names[i] = p.Lexeme
	}
	return fmt.Sprintf("<fn %s(%s)>", f.Decl.Name.Lexeme, strings.Join(names, ","))
}

func (f *Function) Arity() int { return len(f.Decl.Params) }

// Call binds parameters into a fresh environment enclosing the closure and
// runs the body. A `return` propagates as a FlowReturn control signal;
// falling off the end yields Nil (or `this`, for an initializer).
func (f *Function) Call(interp Interpreter, args []Value) (Value, error) {
	env := NewChildEnvironment(f.Closure)
	for i, p := range f.Decl.Params {
		env.Define(p.Lexeme, args[i])
	}

	result, kind, err := interp.ExecuteBlock(f.Decl.Body, env)
	if err != nil {
		return nil, err
	}

	if f.IsInitializer {
		this, _ := f.Closure.Get("this")
		return this, nil
	}

	if kind == FlowReturn {
		return result, nil
	}
	return Nil{}, nil
}

// Bind produces a new Function whose closure extends f's with `this` bound
// to instance — used for both ordinary method dispatch and `super.m()`.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewChildEnvironment(f.Closure)
	env.Define("this", instance)
	return &Function{Decl: f.Decl, Closure: env, IsInitializer: f.IsInitializer}
}
