package lexer

// Position identifies a single point in source text for diagnostics.
// Line is 1-based; Column is 0-based, defined as (start - lineStart).
type Position struct {
	Line   int
	Column int
}
