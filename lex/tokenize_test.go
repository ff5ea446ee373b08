package lex

import (
	"testing"

	"github.com/dekarrin/embossfe/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func symbols(toks []token.Token) []string {
	var out []string
	for _, t := range toks {
		out = append(out, t.SymbolName)
	}
	return out
}

func TestTokenize_structFoo(t *testing.T) {
	toks, errs := Tokenize("struct Foo:\n  x UInt:8\n", "test.emb")
	require.Empty(t, errs)

	assert.Equal(t, []string{
		token.Literal("struct"), token.CamelWord, token.Literal(":"), token.Newline,
		token.Indent, token.SnakeWord, token.CamelWord, token.Literal(":"), token.Number, token.Newline,
		token.Dedent,
	}, symbols(toks))
}

func TestTokenize_blankAndCommentLinesProduceNoStructuralTokens(t *testing.T) {
	toks, errs := Tokenize("struct Foo:\n\n  # a comment\n  x UInt:8\n", "test.emb")
	require.Empty(t, errs)

	// the blank line and the comment-only line must not contribute Indent,
	// Dedent, or end-of-line tokens -- only the Comment token itself survives
	// from the comment line, and nothing at all from the blank line.
	assert.Equal(t, []string{
		token.Literal("struct"), token.CamelWord, token.Literal(":"), token.Newline,
		token.Comment,
		token.Indent, token.SnakeWord, token.CamelWord, token.Literal(":"), token.Number, token.Newline,
		token.Dedent,
	}, symbols(toks))
}

func TestTokenize_badIndentation(t *testing.T) {
	// the second line indents past the first, establishing a level; the
	// third line dedents to a width that matches no level on the stack.
	toks, errs := Tokenize("struct Foo:\n    x UInt:8\n  y UInt:8\n", "test.emb")
	assert.Nil(t, toks)
	require.Len(t, errs, 1)
}

func TestTokenize_numbersAndStrings(t *testing.T) {
	toks, errs := Tokenize(`x = 0x1A "hi\n" true`, "test.emb")
	require.Empty(t, errs)

	assert.Equal(t, []string{
		token.SnakeWord, token.Literal("="), token.Number, token.String, token.BooleanConstant, token.Newline,
	}, symbols(toks))
}

func TestTokenize_dedentsFlushAtEndOfInput(t *testing.T) {
	toks, errs := Tokenize("struct Foo:\n  x UInt:8\n", "test.emb")
	require.Empty(t, errs)

	last := toks[len(toks)-1]
	assert.Equal(t, token.Dedent, last.SymbolName)
}

func TestTokenize_unrecognizedCharacterIsAnError(t *testing.T) {
	toks, errs := Tokenize("x ` y\n", "test.emb")
	assert.Nil(t, toks)
	require.Len(t, errs, 1)
}

// TestTokenize_stopsAtFirstError confirms §4.1's contract: a second bad
// line never contributes a second error, because Tokenize never reaches it.
func TestTokenize_stopsAtFirstError(t *testing.T) {
	toks, errs := Tokenize("x ` y\nz ~ w\n", "test.emb")
	assert.Nil(t, toks)
	require.Len(t, errs, 1)
}

// TestTokenize_fieldLocationSyntax reproduces spec §8 scenario 2: a field's
// "start [+size]" location-expression tokenizes as a bracketed offset/size
// pair ahead of the field's type and name.
func TestTokenize_fieldLocationSyntax(t *testing.T) {
	toks, errs := Tokenize("struct Foo:\n  0 [+1]  UInt  field\n", "test.emb")
	require.Empty(t, errs)

	assert.Equal(t, []string{
		token.Literal("struct"), token.CamelWord, token.Literal(":"), token.Newline,
		token.Indent, token.Number, token.Literal("["), token.Literal("+"), token.Number, token.Literal("]"),
		token.CamelWord, token.SnakeWord, token.Newline,
		token.Dedent,
	}, symbols(toks))
}
