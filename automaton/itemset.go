// Package automaton builds the canonical collection of LR(1) item sets for
// a grammar — the viable-prefix automaton that the parse package's table
// construction walks to fill in ACTION and GOTO.
package automaton

import (
	"strings"

	"github.com/dekarrin/embossfe/grammar"
	"github.com/dekarrin/embossfe/internal/box"
)

// ItemSet is a set of LR(1) items, keyed by their Key() so that membership
// and equality checks don't depend on slice ordering.
type ItemSet box.VSet[string, grammar.Item]

// NewItemSet returns an ItemSet containing the given items.
func NewItemSet(items ...grammar.Item) ItemSet {
	s := make(ItemSet, len(items))
	for _, it := range items {
		s[it.Key()] = it
	}
	return s
}

// Add inserts it into the set if not already present.
func (s ItemSet) Add(it grammar.Item) {
	box.VSet[string, grammar.Item](s).Set(it.Key(), it)
}

// Has reports whether an item equal to it is already in the set.
func (s ItemSet) Has(it grammar.Item) bool {
	return box.VSet[string, grammar.Item](s).Has(it.Key())
}

// Items returns the set's items in a deterministic (key-sorted) order.
func (s ItemSet) Items() []grammar.Item {
	keys := box.OrderedStringKeys(s)

	items := make([]grammar.Item, len(keys))
	for i, k := range keys {
		items[i] = s[k]
	}
	return items
}

// Canonical returns a string uniquely identifying the contents of the item
// set regardless of insertion order, used to deduplicate states in the
// canonical collection (§4.2: "New states are deduplicated by item-set
// equality").
func (s ItemSet) Canonical() string {
	return strings.Join(box.OrderedStringKeys(s), "\n")
}

// Core returns the LR(0) core of the set: the same items with lookaheads
// stripped, still keyed uniquely. Two LR(1) states with the same core but
// different lookaheads are distinct canonical-LR(1) states but would be
// merged by an LALR(1) construction; this front end always uses the
// canonical collection (§4.2), so Core exists only for diagnostics.
func (s ItemSet) Core() ItemSet {
	core := make(ItemSet, len(s))
	for _, it := range s {
		coreItem := grammar.NewItem(it.Head, it.Production, it.Dot, "")
		core[coreItem.Key()] = coreItem
	}
	return core
}
