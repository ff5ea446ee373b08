package parsercache

import (
	"strings"
	"testing"

	"github.com/dekarrin/embossfe/grammar"
	"github.com/dekarrin/embossfe/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exprGrammar() *grammar.Grammar {
	g := grammar.New()
	g.Start = "E"
	g.AddTerm("num", "a number")
	g.AddTerm("+", "'+'")
	g.AddRule("E", []string{"E", "+", "T"})
	g.AddRule("E", []string{"T"})
	g.AddRule("T", []string{"num"})
	return g
}

func TestEncode_isDeterministic(t *testing.T) {
	tables, err := parse.Generate(exprGrammar())
	require.NoError(t, err)

	out1, err := Encode(tables, "gen", "LoadTables")
	require.NoError(t, err)
	out2, err := Encode(tables, "gen", "LoadTables")
	require.NoError(t, err)

	assert.Equal(t, out1, out2)
	assert.Contains(t, out1, "DO NOT EDIT")
	assert.Contains(t, out1, "func LoadTables() *parse.Tables {")
	assert.True(t, strings.Contains(out1, "p0 := grammar.HeadedProduction"))
}

func TestIsFresh(t *testing.T) {
	g := exprGrammar()
	assert.True(t, IsFresh(g.AllProductions(), g))

	g2 := exprGrammar()
	g2.AddRule("T", []string{"(", "E", ")"})
	assert.False(t, IsFresh(g.AllProductions(), g2))
}

func TestDecode_reportsSymmetricDifference(t *testing.T) {
	cached := exprGrammar()
	cachedProductions := cached.AllProductions()

	current := exprGrammar()
	current.AddRule("T", []string{"(", "E", ")"})

	diff := Decode(cachedProductions, current)
	require.True(t, diff.Stale())
	require.Len(t, diff.Added, 1)
	assert.Equal(t, "T", diff.Added[0].Head)
	assert.Equal(t, []string{"(", "E", ")"}, diff.Added[0].Production)
	assert.Empty(t, diff.Removed)
}

func TestDecode_freshCacheHasNoDifference(t *testing.T) {
	g := exprGrammar()
	diff := Decode(g.AllProductions(), g)
	assert.False(t, diff.Stale())
	assert.Empty(t, diff.Added)
	assert.Empty(t, diff.Removed)
}
