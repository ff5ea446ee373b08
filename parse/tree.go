// Package parse builds LR(1) parsing tables from a grammar's canonical
// collection and drives a shift-reduce parse with them, including the
// annotated-error-example labeling described for the grammar registry's
// error reporting.
package parse

import (
	"strings"

	"github.com/dekarrin/embossfe/grammar"
	"github.com/dekarrin/embossfe/token"
)

// Tree is a node of a parse tree: either a leaf holding the matched token,
// or an internal node recording which production reduced and the children
// that were popped off the stack to build it.
type Tree struct {
	Token      *token.Token
	Production *grammar.HeadedProduction
	Children   []*Tree
	Location   token.Location
}

// Symbol is the terminal symbol name for a leaf, or the production head for
// an internal node.
func (t *Tree) Symbol() string {
	if t.Token != nil {
		return t.Token.SymbolName
	}
	return t.Production.Head
}

func (t *Tree) IsLeaf() bool {
	return t.Token != nil
}

func (t *Tree) String() string {
	var sb strings.Builder
	t.write(&sb, 0)
	return sb.String()
}

func (t *Tree) write(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if t.IsLeaf() {
		sb.WriteString(t.Token.String())
		sb.WriteString("\n")
		return
	}
	sb.WriteString(t.Production.Head)
	sb.WriteString(" ->\n")
	for _, c := range t.Children {
		c.write(sb, depth+1)
	}
}

// spanLocation returns the smallest location containing every child's
// location. Children with a zero location (e.g. an epsilon reduction with no
// children at all) are skipped; if none have a usable location, the zero
// Location is returned and the caller is expected to have one to fall back
// on (e.g. the current token's position).
func spanLocation(children []*Tree) token.Location {
	var span token.Location
	first := true
	for _, c := range children {
		var loc token.Location
		if c.IsLeaf() {
			loc = c.Token.Location
		} else {
			loc = c.Location
		}
		if loc.Zero() {
			continue
		}
		if first {
			span = loc
			first = false
		} else {
			span = token.Span(span, loc)
		}
	}
	return span
}
