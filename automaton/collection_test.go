package automaton

import (
	"testing"

	"github.com/dekarrin/embossfe/grammar"
	"github.com/stretchr/testify/assert"
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

func TestBuild_stateCount(t *testing.T) {
	// From the classic two-rule LR(1) example (S -> C C; C -> c C | d): the
	// canonical collection has exactly 10 states.
	g := ccdGrammar().Augmented()
	coll := Build(g)

	assert.Len(t, coll.States, 10)
}

func TestBuild_startStateIsClosureOfSeed(t *testing.T) {
	g := ccdGrammar().Augmented()
	coll := Build(g)

	start := coll.States[coll.Start]
	// the seed item S-aug -> .S, $ and its predicted closure items must all
	// be present in the start state
	assert.True(t, start.Has(grammar.NewItem(g.StartSymbol(), grammar.Production{"S"}, 0, "$")))
	assert.True(t, start.Has(grammar.NewItem("S", grammar.Production{"C", "C"}, 0, "$")))
	assert.True(t, start.Has(grammar.NewItem("C", grammar.Production{"c", "C"}, 0, "c")))
	assert.True(t, start.Has(grammar.NewItem("C", grammar.Production{"c", "C"}, 0, "d")))
	assert.True(t, start.Has(grammar.NewItem("C", grammar.Production{"d"}, 0, "c")))
	assert.True(t, start.Has(grammar.NewItem("C", grammar.Production{"d"}, 0, "d")))
}

func TestClosureTable_memoizesBySeedItem(t *testing.T) {
	g := ccdGrammar().Augmented()
	ct := NewClosureTable(g)

	item := grammar.NewItem("S", grammar.Production{"C", "C"}, 0, "$")
	first := ct.Closure(item)
	second := ct.Closure(item)

	assert.Equal(t, first.Canonical(), second.Canonical())
	_, ok := ct.full[item.Key()]
	assert.True(t, ok)
}
