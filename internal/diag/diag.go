// Package diag provides the diagnostic and output collection shared by
// quill's four pipeline phases (lexer, parser, resolver, evaluator).
package diag

import (
	"fmt"
	"strings"

	"github.com/cwbudde/quill/internal/lexer"
)

// Phase identifies which pipeline stage raised a Diagnostic.
type Phase int

const (
	Lexical Phase = iota
	Syntax
	Runtime
)

func (p Phase) String() string {
	switch p {
	case Lexical:
		return "Lexical"
	case Syntax:
		return "Syntax"
	case Runtime:
		return "Runtime"
	default:
		return "Unknown"
	}
}

// Diagnostic is one reported error: a phase tag, message, position, and an
// optional lexeme for context.
//
// Resolver static errors (undeclared `this`, top-level return, and so on)
// are tagged Runtime rather than a dedicated Semantic phase — preserved
// deliberately rather than "fixed" without a spec for the replacement.
type Diagnostic struct {
	Phase   Phase
	Message string
	Line    int
	Column  int
	Lexeme  string // empty when no token is attached
}

// Format renders a Diagnostic as
// "[<Phase> Error] on line <L> at column <C>: <message>", with an optional
// "(at '<lexeme>')" suffix when a lexeme is attached.
func (d Diagnostic) Format() string {
	s := fmt.Sprintf("[%s Error] on line %d at column %d: %s", d.Phase, d.Line, d.Column, d.Message)
	if d.Lexeme != "" {
		s += fmt.Sprintf(" (at '%s')", d.Lexeme)
	}
	return s
}

func (d Diagnostic) Error() string { return d.Format() }

// FormatWithContext renders d the way Format does, plus a source-line
// excerpt from src and a caret pointing at d.Column, the way the CLI's
// `run` command reports a failure. contextLines is the number of lines of
// surrounding source to include above and below the offending line; 0
// shows only the offending line itself.
func (d Diagnostic) FormatWithContext(src string, contextLines int) string {
	lines := strings.Split(src, "\n")
	if d.Line < 1 || d.Line > len(lines) {
		return d.Format()
	}

	start := d.Line - contextLines
	if start < 1 {
		start = 1
	}
	end := d.Line + contextLines
	if end > len(lines) {
		end = len(lines)
	}

	var sb strings.Builder
	sb.WriteString(d.Format())
	sb.WriteString("\n")
	for n := start; n <= end; n++ {
		lineNum := fmt.Sprintf("%4d | ", n)
		sb.WriteString(lineNum)
		sb.WriteString(lines[n-1])
		sb.WriteString("\n")
		if n == d.Line {
			sb.WriteString(strings.Repeat(" ", len(lineNum)+d.Column))
			sb.WriteString("^\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FromPos builds a Diagnostic with no attached lexeme.
func FromPos(phase Phase, pos lexer.Position, message string) Diagnostic {
	return Diagnostic{Phase: phase, Message: message, Line: pos.Line, Column: pos.Column}
}

// FromToken builds a Diagnostic attached to tok, carrying its lexeme.
func FromToken(phase Phase, tok lexer.Token, message string) Diagnostic {
	return Diagnostic{Phase: phase, Message: message, Line: tok.Pos.Line, Column: tok.Pos.Column, Lexeme: tok.Lexeme}
}
