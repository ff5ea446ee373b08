// Package lex implements the indentation-sensitive tokenizer for the binary
// format definition language: splitting source text into a token stream
// with synthesized Indent, Dedent, and end-of-line markers, ready for the
// parse package's LR(1) driver.
package lex

import (
	"fmt"
	"strings"

	"github.com/dekarrin/embossfe/token"
)

// Error is a tokenization failure anchored at a source position.
type Error struct {
	FileName string
	Pos      token.Position
	Msg      string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%s: %s", e.FileName, e.Pos, e.Msg)
}

// Tokenize splits text into a token stream. Indentation is tracked per the
// stack-of-prefixes algorithm: every non-blank, non-comment-only line's
// leading whitespace must either equal the top of the stack, strictly extend
// it, or exactly equal some entry further down the stack (a dedent back to
// that level); anything else is a "bad indentation" error. Blank and comment-only lines never touch the stack
// and never produce Indent, Dedent, or end-of-line tokens. At end of input
// the stack is unwound with a Dedent per remaining entry.
//
// Per §4.1's contract and §7's propagation policy, Tokenize stops at the
// first syntactic error: it returns either a complete token list and a nil
// error list, or a nil token list and exactly one error.
func Tokenize(text string, fileName string) ([]token.Token, []error) {
	var tokens []token.Token

	lines := strings.Split(text, "\n")
	// strings.Split on a trailing "\n" yields a final empty element that is
	// not a real line; drop it so EOF dedents land at the true last line.
	if len(lines) > 0 && lines[len(lines)-1] == "" && strings.HasSuffix(text, "\n") {
		lines = lines[:len(lines)-1]
	}

	indentStack := []string{""}
	lastLine := 1

	for i, line := range lines {
		lineNo := i + 1
		lastLine = lineNo

		lineTokens, lineErr := tokenizeLine(line, lineNo, fileName)
		if lineErr != nil {
			return nil, []error{lineErr}
		}

		if isBlankOrCommentOnly(lineTokens) {
			tokens = append(tokens, lineTokens...)
			continue
		}

		indent := leadingWhitespace(line)
		top := indentStack[len(indentStack)-1]

		switch {
		case indent == top:
			// no change
		case strings.HasPrefix(indent, top):
			tokens = append(tokens, token.New(token.Indent, indent[len(top):], token.Position{Line: lineNo, Column: 1}, token.Position{Line: lineNo, Column: len(indent) + 1}))
			indentStack = append(indentStack, indent)
		default:
			popped := false
			for len(indentStack) > 1 {
				indentStack = indentStack[:len(indentStack)-1]
				tokens = append(tokens, token.Synthetic(token.Dedent, "", token.Position{Line: lineNo, Column: 1}))
				if indentStack[len(indentStack)-1] == indent {
					popped = true
					break
				}
			}
			if !popped && indentStack[len(indentStack)-1] != indent {
				return nil, []error{&Error{FileName: fileName, Pos: token.Position{Line: lineNo, Column: 1}, Msg: "bad indentation: does not match any enclosing indent level"}}
			}
		}

		tokens = append(tokens, lineTokens...)
		tokens = append(tokens, token.Synthetic(token.Newline, "\n", token.Position{Line: lineNo, Column: len(line) + 1}))
	}

	for len(indentStack) > 1 {
		indentStack = indentStack[:len(indentStack)-1]
		tokens = append(tokens, token.Synthetic(token.Dedent, "", token.Position{Line: lastLine + 1, Column: 1}))
	}

	return tokens, nil
}

// isBlankOrCommentOnly reports whether a line's tokens are empty or contain
// only Comment tokens, in which case the line is invisible to the indent
// stack and contributes no Indent, Dedent, or end-of-line token.
func isBlankOrCommentOnly(lineTokens []token.Token) bool {
	for _, tok := range lineTokens {
		if tok.SymbolName != token.Comment {
			return false
		}
	}
	return true
}

func leadingWhitespace(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}

// tokenizeLine scans line left to right, at every column choosing the
// single longest match among patterns (ties broken in favor of a literal
// match over a regex match), and emits one token per match that has a
// non-empty symbol. Matching restarts at the byte after the consumed text.
// It stops and returns an error at the first column with no match, per
// Tokenize's first-error-stops contract.
func tokenizeLine(line string, lineNo int, fileName string) ([]token.Token, error) {
	var tokens []token.Token

	col := 0
	for col < len(line) {
		rest := line[col:]

		bestLen := -1
		bestIsLiteral := false
		var best pattern

		for _, p := range patterns {
			n := p.match(rest)
			if n < 0 {
				continue
			}
			isLit := p.kind == literalPattern
			if n > bestLen || (n == bestLen && isLit && !bestIsLiteral) {
				bestLen = n
				best = p
				bestIsLiteral = isLit
			}
		}

		if bestLen <= 0 {
			return nil, &Error{
				FileName: fileName,
				Pos:      token.Position{Line: lineNo, Column: col + 1},
				Msg:      fmt.Sprintf("unrecognized token starting at %q", rest[:min(len(rest), 16)]),
			}
		}

		text := rest[:bestLen]
		if best.symbol != "" {
			start := token.Position{Line: lineNo, Column: col + 1}
			end := token.Position{Line: lineNo, Column: col + 1 + bestLen}
			tokens = append(tokens, token.New(best.symbol, text, start, end))
		}
		col += bestLen
	}

	return tokens, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
