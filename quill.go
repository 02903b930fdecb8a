// Package quill is the public embedding surface for the quill scripting
// language: one function that runs a source program through the full
// lexer/parser/resolver/evaluator pipeline and returns its result.
//
// This mirrors go-dws's pkg/dwscript package sitting above its own
// internal phases — a thin embedding layer, not where the interesting
// design work lives, but still a real, tested public API.
package quill

import (
	"github.com/cwbudde/quill/internal/diag"
	"github.com/cwbudde/quill/internal/engine"
)

// Result is the structured outcome of a Run: whether the program
// completed without error, every diagnostic collected along the way, and
// the ordered output log written by `print` statements.
type Result = engine.Result

// Diagnostic is a single phased error — Lexical, Syntax, or Runtime — with
// a message and source position.
type Diagnostic = diag.Diagnostic

// Run executes source through all four pipeline phases — lexing, parsing,
// resolution, evaluation — stopping at the first phase that reports an
// error.
func Run(source string) Result {
	return engine.Run(source)
}
