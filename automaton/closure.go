package automaton

import "github.com/dekarrin/embossfe/grammar"

// ClosureTable computes and memoizes LR(1) item closures for a fixed
// grammar. It owns two caches, per §5's "shared state" description:
//
//   - immediate: the single, non-recursive step of predictions an item
//     contributes directly (one pass over the productions of its
//     next-symbol nonterminal).
//   - full: the transitive closure of a single seed item, built by
//     following immediate additions to a fixed point.
//
// Both are keyed by grammar.Item.Key() and are owned by this ClosureTable
// instance; concurrent use of one instance from multiple goroutines is not
// supported (§5).
type ClosureTable struct {
	g         *grammar.Grammar
	immediate map[string]ItemSet
	full      map[string]ItemSet
}

// NewClosureTable returns a ClosureTable for g with empty caches.
func NewClosureTable(g *grammar.Grammar) *ClosureTable {
	return &ClosureTable{
		g:         g,
		immediate: map[string]ItemSet{},
		full:      map[string]ItemSet{},
	}
}

// immediateAdditions returns the items directly predicted by it: for
// it = A -> α.Bβ, u, one item B -> .γ, t for every production γ of B and
// every t in FIRST(βu). Non-nonterminal or end-of-production items predict
// nothing. The result is memoized by it.Key().
func (ct *ClosureTable) immediateAdditions(it grammar.Item) ItemSet {
	if cached, ok := ct.immediate[it.Key()]; ok {
		return cached
	}

	additions := ItemSet{}
	if !it.AtEnd() {
		B := it.NextSymbol
		if rule := ct.g.Rule(B); rule.Head != "" {
			beta := it.Production[it.Dot+1:]
			lookaheads := ct.g.FirstOfString(beta, it.Lookahead)
			for _, prod := range rule.Productions {
				for t := range lookaheads {
					additions.Add(grammar.NewItem(B, prod, 0, t))
				}
			}
		}
	}

	ct.immediate[it.Key()] = additions
	return additions
}

// Closure returns the full transitive closure of the single item it,
// memoized by it.Key() (§4.2, §5).
func (ct *ClosureTable) Closure(it grammar.Item) ItemSet {
	if cached, ok := ct.full[it.Key()]; ok {
		return cached
	}

	result := NewItemSet(it)
	worklist := []grammar.Item{it}
	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]

		for _, predicted := range ct.immediateAdditions(cur).Items() {
			if !result.Has(predicted) {
				result.Add(predicted)
				worklist = append(worklist, predicted)
			}
		}
	}

	ct.full[it.Key()] = result
	return result
}

// ClosureOfSet returns the closure of an entire item set: the union of
// Closure(it) over every item it in items. This decomposition is valid
// because the prediction rule only ever looks at the item being expanded,
// never at sibling items in the same set — so the closure of a set is
// exactly the union of the closures of its members.
func (ct *ClosureTable) ClosureOfSet(items ItemSet) ItemSet {
	result := ItemSet{}
	for _, it := range items.Items() {
		for k, v := range ct.Closure(it) {
			result[k] = v
		}
	}
	return result
}
