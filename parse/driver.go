package parse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/embossfe/token"
	"github.com/dekarrin/rosed"
)

// SyntaxError reports a parse failure: the state the driver was in, the
// token (or synthesized end-of-input token) it could not act on, and the
// annotated error code installed for that (state, terminal) cell, if any.
type SyntaxError struct {
	State    int
	Token    token.Token
	Code     string
	Expected []string
}

func (e *SyntaxError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s [%s]", e.Token.Location, e.Token, e.Code)
	}
	return fmt.Sprintf("%s: unexpected %s", e.Token.Location, e.Token)
}

// Diagnostic returns a caller-facing, word-wrapped rendering of e that lists
// the terminals that would have been accepted in place of e.Token, in the
// shape a CLI diagnostic-formatter would print above a source snippet. The
// expected list is sorted for reproducibility, joined into an Oxford-comma
// list, and wrapped at 60 columns the same way the teacher wraps long
// single-line messages before display.
func (e *SyntaxError) Diagnostic() string {
	msg := e.Error()
	if len(e.Expected) == 0 {
		return msg
	}

	expected := make([]string, len(e.Expected))
	copy(expected, e.Expected)
	sort.Strings(expected)

	line := msg + " (expected one of: " + expectedTerminalList(expected) + ")"
	return rosed.Edit(line).Wrap(60).String()
}

// expectedTerminalList joins sorted expected-terminal names into an
// Oxford-comma list, e.g. `"[", SnakeWord, and "("`, matching the register
// a CLI diagnostic would print for "expected one of: ...".
func expectedTerminalList(expected []string) string {
	switch len(expected) {
	case 0:
		return ""
	case 1:
		return expected[0]
	case 2:
		return expected[0] + " and " + expected[1]
	default:
		last := len(expected) - 1
		return strings.Join(expected[:last], ", ") + ", and " + expected[last]
	}
}

type frame struct {
	state   int
	payload *Tree
}

// Driver runs the shift-reduce algorithm against a fixed set of Tables.
type Driver struct {
	Tables *Tables
}

// NewDriver returns a Driver for t.
func NewDriver(t *Tables) *Driver {
	return &Driver{Tables: t}
}

// Parse consumes tokens (which must not itself include an end-of-input
// token; the driver synthesizes one after the last real token) and returns
// the resulting parse tree, or a SyntaxError describing where and why the
// parse failed.
func (d *Driver) Parse(tokens []token.Token) (*Tree, *SyntaxError) {
	stack := []frame{{state: d.Tables.Start}}
	cursor := 0

	endOfInput := token.EndOfInputToken(token.Position{Line: 1, Column: 1})
	if len(tokens) > 0 {
		endOfInput = token.EndOfInputToken(tokens[len(tokens)-1].Location.End)
	}

	current := func() token.Token {
		if cursor < len(tokens) {
			return tokens[cursor]
		}
		return endOfInput
	}

	for {
		s := stack[len(stack)-1].state
		cur := current()
		act := d.Tables.Lookup(s, cur.SymbolName)

		switch act.Type {
		case Shift:
			leaf := cur
			stack = append(stack, frame{state: act.State, payload: &Tree{Token: &leaf, Location: leaf.Location}})
			cursor++

		case Reduce:
			n := len(act.Production.Production)
			if act.Production.Production.IsEpsilon() {
				n = 0
			}
			children := make([]*Tree, n)
			copy(children, childrenOf(stack, n))
			stack = stack[:len(stack)-n]

			prod := act.Production
			node := &Tree{Production: &prod, Children: children, Location: spanLocation(children)}
			if node.Location.Zero() {
				node.Location = token.Point(cur.Location.Start)
			}

			top := stack[len(stack)-1].state
			dest, ok := d.Tables.gotoState(top, act.Production.Head)
			if !ok {
				return nil, &SyntaxError{State: top, Token: cur, Expected: d.expectedFor(top)}
			}
			stack = append(stack, frame{state: dest, payload: node})

		case Accept:
			return stack[len(stack)-1].payload, nil

		default:
			return nil, &SyntaxError{State: s, Token: cur, Code: act.Code, Expected: d.expectedFor(s)}
		}
	}
}

func childrenOf(stack []frame, n int) []*Tree {
	out := make([]*Tree, n)
	base := len(stack) - n
	for i := 0; i < n; i++ {
		out[i] = stack[base+i].payload
	}
	return out
}

func (d *Driver) expectedFor(state int) []string {
	set := d.Tables.Expected[state]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for sym := range set {
		out = append(out, sym)
	}
	return out
}

// trialRun is the same shift-reduce loop Parse runs, but it also reports the
// (state, token index) of the cell at which the parse first actually
// consulted the Error fallback -- whether by an explicit labeled Error
// action or by an absent ACTION entry. Error-example labeling uses this to
// discover, rather than guess, which state a new annotated example should
// label.
func (d *Driver) trialRun(tokens []token.Token) (state int, index int, failed bool) {
	stack := []frame{{state: d.Tables.Start}}
	cursor := 0

	endOfInput := token.EndOfInputToken(token.Position{Line: 1, Column: 1})
	if len(tokens) > 0 {
		endOfInput = token.EndOfInputToken(tokens[len(tokens)-1].Location.End)
	}
	current := func() token.Token {
		if cursor < len(tokens) {
			return tokens[cursor]
		}
		return endOfInput
	}

	for {
		s := stack[len(stack)-1].state
		cur := current()
		act := d.Tables.Lookup(s, cur.SymbolName)

		switch act.Type {
		case Shift:
			leaf := cur
			stack = append(stack, frame{state: act.State, payload: &Tree{Token: &leaf, Location: leaf.Location}})
			cursor++
		case Reduce:
			n := len(act.Production.Production)
			if act.Production.Production.IsEpsilon() {
				n = 0
			}
			children := childrenOf(stack, n)
			stack = stack[:len(stack)-n]
			prod := act.Production
			node := &Tree{Production: &prod, Children: children, Location: spanLocation(children)}
			top := stack[len(stack)-1].state
			dest, ok := d.Tables.gotoState(top, act.Production.Head)
			if !ok {
				return top, cursor, true
			}
			stack = append(stack, frame{state: dest, payload: node})
		case Accept:
			return s, cursor, false
		default:
			return s, cursor, true
		}
	}
}
