package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddStar_producesListRules(t *testing.T) {
	g := New()
	name := g.AddStar("field")
	assert.Equal(t, "field*", name)

	rule := g.Rule(name)
	assert.True(t, rule.CanProduce(Production{name, "field"}))
	assert.True(t, rule.CanProduce(Epsilon))
}

func TestAddPlus_requiresAtLeastOne(t *testing.T) {
	g := New()
	name := g.AddPlus("field")

	rule := g.Rule(name)
	assert.True(t, rule.CanProduce(Production{name, "field"}))
	assert.True(t, rule.CanProduce(Production{"field"}))
	assert.False(t, rule.CanProduce(Epsilon))
}

func TestAddOptional(t *testing.T) {
	g := New()
	name := g.AddOptional("doc")

	rule := g.Rule(name)
	assert.True(t, rule.CanProduce(Production{"doc"}))
	assert.True(t, rule.CanProduce(Epsilon))
}
