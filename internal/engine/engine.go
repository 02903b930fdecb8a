// Package engine is quill's thin embedding surface: it wires the lexer,
// parser, resolver, and evaluator into a single entry point, the minimum
// viable host integration.
package engine

import (
	"github.com/cwbudde/quill/internal/ast"
	"github.com/cwbudde/quill/internal/diag"
	"github.com/cwbudde/quill/internal/interp"
	"github.com/cwbudde/quill/internal/lexer"
	"github.com/cwbudde/quill/internal/parser"
	"github.com/cwbudde/quill/internal/resolver"
)

// Result is the structured outcome of a single Run: whether the program
// completed without error, every diagnostic collected along the way, and
// the ordered output log written by `print` statements.
type Result struct {
	Succeeded bool
	Errors    []diag.Diagnostic
	Output    []string
}

// Run executes source through all four pipeline phases, stopping at the
// first phase that reports an error.
func Run(source string) Result {
	reporter := diag.New()

	l := lexer.New(source)
	tokens := l.Tokenize()
	for _, le := range l.Errors() {
		reporter.Report(diag.FromPos(diag.Lexical, le.Pos, le.Message))
	}
	if reporter.HasErrors() {
		return finish(reporter)
	}

	prog := parseProgram(tokens, reporter)
	if reporter.HasErrors() || prog == nil {
		return finish(reporter)
	}

	locals := resolver.New(reporter).Resolve(prog)
	if reporter.HasErrors() {
		return finish(reporter)
	}

	interp.New(reporter, locals).Run(prog)
	return finish(reporter)
}

func parseProgram(tokens []lexer.Token, reporter *diag.Reporter) *ast.Program {
	return parser.New(tokens, reporter).Parse()
}

func finish(reporter *diag.Reporter) Result {
	return Result{
		Succeeded: !reporter.HasErrors(),
		Errors:    reporter.Diagnostics(),
		Output:    reporter.Output(),
	}
}
