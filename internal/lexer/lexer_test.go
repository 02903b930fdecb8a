package lexer

import "testing"

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, t := range tokens {
		types[i] = t.Type
	}
	return types
}

func TestTokenizeSimpleExpression(t *testing.T) {
	tokens := New("1 + 2;").Tokenize()
	want := []TokenType{Number, Plus, Number, Semicolon, EOF}
	got := tokenTypes(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenizeKeywords(t *testing.T) {
	tokens := New("let x = true and not false;").Tokenize()
	want := []TokenType{Var, Identifier, Equal, True, And, Bang, False, Semicolon, EOF}
	got := tokenTypes(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestColumnTracksLineStart(t *testing.T) {
	tokens := New("let x = 1;\nlet y = 2;").Tokenize()
	var secondLet Token
	seen := 0
	for _, tok := range tokens {
		if tok.Type == Var {
			seen++
			if seen == 2 {
				secondLet = tok
			}
		}
	}
	if secondLet.Pos.Line != 2 || secondLet.Pos.Column != 0 {
		t.Errorf("second 'let' position = %+v, want line 2 column 0", secondLet.Pos)
	}
}

func TestUnterminatedStringReportsError(t *testing.T) {
	l := New(`"unterminated`)
	l.Tokenize()
	errs := l.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].Message != "Unterminated string." {
		t.Errorf("got message %q, want %q", errs[0].Message, "Unterminated string.")
	}
}

func TestStringEscapesPassThroughVerbatim(t *testing.T) {
	tokens := New(`"a\nb"`).Tokenize()
	if tokens[0].Type != String {
		t.Fatalf("got type %s, want String", tokens[0].Type)
	}
	if tokens[0].Literal != `a\nb` {
		t.Errorf("got literal %q, want %q (escape sequences are not decoded)", tokens[0].Literal, `a\nb`)
	}
}

func TestTrailingDotIsNotConsumedByNumber(t *testing.T) {
	tokens := New("42.").Tokenize()
	want := []TokenType{Number, Dot, EOF}
	got := tokenTypes(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if tokens[0].Literal != 42.0 {
		t.Errorf("got literal %v, want 42", tokens[0].Literal)
	}
}

func TestSingleAmpersandIsSilentlySkipped(t *testing.T) {
	tokens := New("a & b;").Tokenize()
	want := []TokenType{Identifier, Identifier, Semicolon, EOF}
	got := tokenTypes(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
}

func TestDoubledAmpersandEmitsAmpAmp(t *testing.T) {
	tokens := New("a && b;").Tokenize()
	want := []TokenType{Identifier, AmpAmp, Identifier, Semicolon, EOF}
	got := tokenTypes(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestUnknownCharacterReportsErrorAndContinues(t *testing.T) {
	l := New("1 @ 2;")
	tokens := l.Tokenize()
	if len(l.Errors()) != 1 || l.Errors()[0].Message != "Unexpected character." {
		t.Fatalf("got errors %+v, want one 'Unexpected character.'", l.Errors())
	}
	want := []TokenType{Number, Number, Semicolon, EOF}
	got := tokenTypes(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
}

func TestLineCommentConsumesToEndOfLine(t *testing.T) {
	tokens := New("1; // a comment\n2;").Tokenize()
	want := []TokenType{Number, Semicolon, Number, Semicolon, EOF}
	got := tokenTypes(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
}
