// Package interp is quill's tree-walking evaluator: the fourth and final
// pipeline stage, consuming the AST, the resolver's Locals map, and a
// shared Reporter, and producing output lines plus runtime diagnostics.
package interp

import (
	"github.com/cwbudde/quill/internal/ast"
	"github.com/cwbudde/quill/internal/diag"
	"github.com/cwbudde/quill/internal/lexer"
	"github.com/cwbudde/quill/internal/resolver"
	"github.com/cwbudde/quill/internal/runtime"
)

// maxCallDepth bounds function-call nesting; exceeding it is reported as a
// runtime error rather than crashing the host process.
const maxCallDepth = 1024

// runtimeError pairs a message with the token that triggered it, so the
// top-level Run can turn it into a properly positioned Diagnostic.
type runtimeError struct {
	tok     lexer.Token
	message string
}

func (e *runtimeError) Error() string { return e.message }

// Evaluator walks a resolved Program, maintaining the global environment,
// the environment currently in scope, and the resolver's local-depth map.
type Evaluator struct {
	globals  *runtime.Environment
	env      *runtime.Environment
	locals   resolver.Locals
	reporter *diag.Reporter
	calls    *runtime.CallStack

	// loopDepth counts enclosing `while`/`for` loops, reset to 0 across a
	// function call boundary (see evalCall) so `break`/`continue` can't leak
	// through a call into a loop enclosing the *caller* instead of the
	// callee. Checked by BreakStmt/ContinueStmt in stmt.go.
	loopDepth int
}

// New creates an Evaluator. locals is the map produced by resolver.Resolve;
// reporter receives both runtime diagnostics and print output.
func New(reporter *diag.Reporter, locals resolver.Locals) *Evaluator {
	globals := runtime.NewEnvironment()
	return &Evaluator{
		globals:  globals,
		env:      globals,
		locals:   locals,
		reporter: reporter,
		calls:    runtime.NewCallStack(maxCallDepth),
	}
}

// Run executes every statement in prog in order, stopping and reporting on
// the first runtime error: a running program completes or terminates on
// the first one, never continuing past it.
func (e *Evaluator) Run(prog *ast.Program) {
	for _, stmt := range prog.Statements {
		if _, _, err := e.exec(stmt); err != nil {
			e.report(err)
			return
		}
	}
}

func (e *Evaluator) report(err error) {
	if re, ok := err.(*runtimeError); ok {
		e.reporter.Report(diag.FromToken(diag.Runtime, re.tok, re.message))
		return
	}
	e.reporter.Report(diag.Diagnostic{Phase: diag.Runtime, Message: err.Error()})
}

func (e *Evaluator) runtimeErr(tok lexer.Token, message string) error {
	return &runtimeError{tok: tok, message: message}
}

// ExecuteBlock implements runtime.Interpreter: it swaps in env for the
// duration of stmts, always restoring the previous environment on the way
// out, and is the entry point runtime.Function.Call uses to run a function
// body.
func (e *Evaluator) ExecuteBlock(stmts []ast.Statement, env *runtime.Environment) (runtime.Value, runtime.ControlFlowKind, error) {
	previous := e.env
	e.env = env
	defer func() { e.env = previous }()

	for _, stmt := range stmts {
		val, kind, err := e.exec(stmt)
		if err != nil {
			return nil, runtime.FlowNone, err
		}
		if kind != runtime.FlowNone {
			return val, kind, nil
		}
	}
	return runtime.Nil{}, runtime.FlowNone, nil
}
