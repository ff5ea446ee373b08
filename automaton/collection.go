package automaton

import "github.com/dekarrin/embossfe/grammar"

// Collection is the canonical collection of LR(1) item sets for an
// augmented grammar: a numbered list of states plus a GOTO transition table
// indexed by (state, symbol) for every grammar symbol, terminal or not. The
// parse package's table construction reads Shift targets and nonterminal
// GOTO entries straight out of this structure.
type Collection struct {
	States      []ItemSet
	Transitions []map[string]int
	Start       int
}

// Goto returns the destination state for (state, symbol), or -1 if there is
// no such transition.
func (c *Collection) Goto(state int, symbol string) int {
	if state < 0 || state >= len(c.Transitions) {
		return -1
	}
	if next, ok := c.Transitions[state][symbol]; ok {
		return next
	}
	return -1
}

// Build constructs the canonical collection of LR(1) item sets for the
// augmented grammar gPrime, whose start symbol's sole rule must be the
// augmenting production S' -> S (see grammar.Grammar.Augmented).
//
// This is the item-set half of Algorithm 4.56 ("Construction of canonical-
// LR parsing tables") from the dragon book: state 0 is the closure of the
// seed item S' -> .S, $; for every state and every grammar symbol, GOTO is
// computed by advancing the dot over that symbol in every item whose
// next symbol matches, then taking the closure of the result. Per §4.2,
// GOTO is computed for all symbols at once with a single grouping pass over
// the state's items, rather than once per candidate symbol.
func Build(gPrime *grammar.Grammar) *Collection {
	ct := NewClosureTable(gPrime)

	startProd := gPrime.Rule(gPrime.StartSymbol()).Productions[0]
	seed := grammar.NewItem(gPrime.StartSymbol(), startProd, 0, "$")
	startState := ct.ClosureOfSet(NewItemSet(seed))

	coll := &Collection{Start: 0}
	index := map[string]int{}

	addState := func(set ItemSet) (int, bool) {
		key := set.Canonical()
		if i, ok := index[key]; ok {
			return i, false
		}
		i := len(coll.States)
		coll.States = append(coll.States, set)
		coll.Transitions = append(coll.Transitions, map[string]int{})
		index[key] = i
		return i, true
	}

	startIdx, _ := addState(startState)
	coll.Start = startIdx

	worklist := []int{startIdx}
	for len(worklist) > 0 {
		i := worklist[0]
		worklist = worklist[1:]

		// Group this state's items by next symbol in a single pass, so
		// GOTO(I, X) for every X is computed together rather than by
		// re-scanning the item set once per candidate symbol.
		bySymbol := map[string][]grammar.Item{}
		for _, it := range coll.States[i].Items() {
			if it.AtEnd() {
				continue
			}
			bySymbol[it.NextSymbol] = append(bySymbol[it.NextSymbol], it)
		}

		for symbol, items := range bySymbol {
			advanced := ItemSet{}
			for _, it := range items {
				advanced.Add(it.Advanced())
			}
			gotoSet := ct.ClosureOfSet(advanced)

			j, isNew := addState(gotoSet)
			coll.Transitions[i][symbol] = j
			if isNew {
				worklist = append(worklist, j)
			}
		}
	}

	return coll
}
