// Package token holds the grammar-level data types shared by every stage of
// the front end: source positions, locations, and lexical tokens. It is the
// lowest leaf in the dependency graph — lex, parse, ir, and errorexample
// build on it, but it depends on nothing else in this module.
package token

import "fmt"

// Position is a 1-based (line, column) location in source text. Both Line
// and Column are always >= 1 for a valid Position.
type Position struct {
	Line   int
	Column int
}

// Before returns whether p sorts lexicographically before o, i.e. p.Line <
// o.Line, or the lines are equal and p.Column < o.Column.
func (p Position) Before(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

// LessOrEqual returns whether p sorts at or before o.
func (p Position) LessOrEqual(o Position) bool {
	return p == o || p.Before(o)
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
