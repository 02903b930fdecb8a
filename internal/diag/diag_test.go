package diag

import (
	"strings"
	"testing"

	"github.com/cwbudde/quill/internal/lexer"
)

func TestFormatMatchesOutputContract(t *testing.T) {
	d := Diagnostic{Phase: Runtime, Message: "Division by zero.", Line: 3, Column: 7}
	want := "[Runtime Error] on line 3 at column 7: Division by zero."
	if got := d.Format(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatWithLexemeAddsSuffix(t *testing.T) {
	tok := lexer.Token{Lexeme: "x", Pos: lexer.Position{Line: 1, Column: 0}}
	d := FromToken(Syntax, tok, "Expect expression.")
	if !strings.HasSuffix(d.Format(), "(at 'x')") {
		t.Errorf("got %q, want a trailing \"(at 'x')\"", d.Format())
	}
}

func TestFormatWithContextIncludesCaret(t *testing.T) {
	src := "let x = 1;\nprint y;\n"
	d := Diagnostic{Phase: Runtime, Message: "Undefined variable 'y'.", Line: 2, Column: 6}
	out := d.FormatWithContext(src, 1)
	if !strings.Contains(out, "print y;") {
		t.Errorf("context output missing the offending source line:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("context output missing a caret:\n%s", out)
	}
	if !strings.Contains(out, "let x = 1;") {
		t.Errorf("context output missing the requested surrounding line:\n%s", out)
	}
}

func TestFormatWithContextFallsBackOutOfRange(t *testing.T) {
	d := Diagnostic{Phase: Runtime, Message: "oops", Line: 99, Column: 0}
	if got := d.FormatWithContext("only one line", 1); got != d.Format() {
		t.Errorf("got %q, want plain Format() fallback %q", got, d.Format())
	}
}

func TestReporterCollectsInOrder(t *testing.T) {
	r := New()
	r.Report(Diagnostic{Message: "first"})
	r.Report(Diagnostic{Message: "second"})
	if !r.HasErrors() {
		t.Fatal("expected HasErrors to be true")
	}
	first, ok := r.First()
	if !ok || first.Message != "first" {
		t.Errorf("First() = %v, want {Message: first}", first)
	}
	if len(r.Diagnostics()) != 2 {
		t.Errorf("got %d diagnostics, want 2", len(r.Diagnostics()))
	}
}

func TestReporterPrintAccumulatesOutput(t *testing.T) {
	r := New()
	r.Print("a")
	r.Print("b")
	got := r.Output()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got %v, want [a b]", got)
	}
}
