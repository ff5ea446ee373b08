package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func exprGrammar() *Grammar {
	g := New()
	g.Start = "E"
	g.AddTerm("num", "a number")
	g.AddTerm("+", "'+'")
	g.AddRule("E", []string{"E", "+", "T"})
	g.AddRule("E", []string{"T"})
	g.AddRule("T", []string{"num"})
	return g
}

func TestGrammar_FIRST(t *testing.T) {
	g := exprGrammar()

	assert.Equal(t, map[string]bool{"num": true}, g.FIRST("E"))
	assert.Equal(t, map[string]bool{"num": true}, g.FIRST("T"))
	assert.Equal(t, map[string]bool{"num": true}, g.FIRST("num"))
}

func TestGrammar_FIRST_withEpsilon(t *testing.T) {
	g := New()
	g.Start = "S"
	g.AddTerm("a", "'a'")
	g.AddRule("S", []string{"A", "a"})
	g.AddRule("A", []string{""})
	g.AddRule("A", []string{"a"})

	first := g.FIRST("S")
	assert.Equal(t, map[string]bool{"a": true}, first)

	firstA := g.FIRST("A")
	assert.True(t, firstA["a"])
	assert.True(t, firstA[""])
}

func TestGrammar_Augmented(t *testing.T) {
	g := exprGrammar()
	aug := g.Augmented()

	assert.NotEqual(t, g.StartSymbol(), aug.StartSymbol())
	startRule := aug.Rule(aug.StartSymbol())
	assert.Len(t, startRule.Productions, 1)
	assert.Equal(t, Production{"E"}, startRule.Productions[0])
}

func TestGrammar_Validate_catchesUndefinedSymbol(t *testing.T) {
	g := New()
	g.Start = "S"
	g.AddRule("S", []string{"missing"})

	err := g.Validate()
	assert.Error(t, err)
}

func TestGrammar_Validate_catchesUnreachable(t *testing.T) {
	g := New()
	g.Start = "S"
	g.AddTerm("a", "'a'")
	g.AddRule("S", []string{"a"})
	g.AddRule("UNUSED", []string{"a"})

	err := g.Validate()
	assert.Error(t, err)
}

func TestGrammar_Validate_ok(t *testing.T) {
	g := exprGrammar()
	assert.NoError(t, g.Validate())
}

func TestProduction_Equal(t *testing.T) {
	assert.True(t, Production{"a", "b"}.Equal(Production{"a", "b"}))
	assert.False(t, Production{"a", "b"}.Equal(Production{"a", "c"}))
	assert.True(t, Epsilon.IsEpsilon())
}

func TestItem_Advanced(t *testing.T) {
	it := NewItem("E", Production{"E", "+", "T"}, 0, "$")
	assert.Equal(t, "E", it.NextSymbol)

	it2 := it.Advanced()
	assert.Equal(t, "+", it2.NextSymbol)

	it3 := it2.Advanced()
	assert.Equal(t, "T", it3.NextSymbol)

	it4 := it3.Advanced()
	assert.True(t, it4.AtEnd())
}
