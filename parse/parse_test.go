package parse

import (
	"testing"

	"github.com/dekarrin/embossfe/grammar"
	"github.com/dekarrin/embossfe/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ccdGrammar() *grammar.Grammar {
	g := grammar.New()
	g.Start = "S"
	g.AddTerm("c", "'c'")
	g.AddTerm("d", "'d'")
	g.AddRule("S", []string{"C", "C"})
	g.AddRule("C", []string{"c", "C"})
	g.AddRule("C", []string{"d"})
	return g
}

func tok(symbol string, line, col int) token.Token {
	return token.New(symbol, symbol, token.Position{Line: line, Column: col}, token.Position{Line: line, Column: col + 1})
}

func TestGenerate_ccdGrammar_noConflicts(t *testing.T) {
	tables, err := Generate(ccdGrammar())
	require.NoError(t, err)
	assert.Empty(t, tables.Conflicts)
}

func TestDriver_Parse_acceptsCCD(t *testing.T) {
	tables, err := Generate(ccdGrammar())
	require.NoError(t, err)
	d := NewDriver(tables)

	// c c c d c d -> (ccd)(cd), both valid C productions
	toks := []token.Token{
		tok("c", 1, 1), tok("c", 1, 2), tok("c", 1, 3), tok("d", 1, 4), tok("c", 1, 5), tok("d", 1, 6),
	}
	tree, synErr := d.Parse(toks)
	require.Nil(t, synErr)
	require.NotNil(t, tree)
	assert.Equal(t, "S", tree.Symbol())
}

func TestDriver_Parse_rejectsLoneD(t *testing.T) {
	tables, err := Generate(ccdGrammar())
	require.NoError(t, err)
	d := NewDriver(tables)

	toks := []token.Token{tok("d", 1, 1)}
	_, synErr := d.Parse(toks)
	require.NotNil(t, synErr)
}

func TestSyntaxError_Diagnostic_listsExpectedTerminals(t *testing.T) {
	tables, err := Generate(ccdGrammar())
	require.NoError(t, err)
	d := NewDriver(tables)

	toks := []token.Token{tok("d", 1, 1)}
	_, synErr := d.Parse(toks)
	require.NotNil(t, synErr)

	diag := synErr.Diagnostic()
	assert.Contains(t, diag, "expected one of")
	assert.Contains(t, diag, "c")
}

func TestLabel_installsAndReuses(t *testing.T) {
	tables, err := Generate(ccdGrammar())
	require.NoError(t, err)
	d := NewDriver(tables)

	// A lone "d" fails at end of input: the state reached after shifting it
	// reduces C -> d only on "c" or "d" (the start of a second C), so
	// end-of-input has no action there.
	toks := []token.Token{tok("d", 1, 1)}
	require.NoError(t, Label(d, toks, -1, "Merr_missing_second_c"))

	_, synErr := d.Parse(toks)
	require.NotNil(t, synErr)
	assert.Equal(t, "Merr_missing_second_c", synErr.Code)

	// relabeling with the same code is fine
	require.NoError(t, Label(d, toks, -1, "Merr_missing_second_c"))

	// relabeling with a different code is rejected
	err = Label(d, toks, -1, "Merr_something_else")
	assert.Error(t, err)
}
