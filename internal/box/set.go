// Package box holds small generic container helpers used by the grammar,
// automaton, and parsercache packages. It is a scaled-down cousin of the teacher's
// internal/util set hierarchy: this front end only ever needs ordered-key
// iteration, membership, and value-mapped sets keyed by comparable values,
// so that's all that lives here.
package box

import "sort"

// VSet maps comparable elements to an arbitrary payload, tracking insertion
// as membership. It backs the LR(1) item-set representations in automaton,
// where the payload is the grammar.Item itself and the key is its Key().
type VSet[K comparable, V any] map[K]V

// NewVSet returns an empty VSet.
func NewVSet[K comparable, V any]() VSet[K, V] {
	return make(VSet[K, V])
}

// Set assigns data to key, inserting it if not already present.
func (s VSet[K, V]) Set(key K, data V) {
	s[key] = data
}

// Get retrieves the value mapped to key, or the zero value of V if absent.
func (s VSet[K, V]) Get(key K) V {
	return s[key]
}

// Has returns whether key is present in the set.
func (s VSet[K, V]) Has(key K) bool {
	_, ok := s[key]
	return ok
}

// Len returns the number of keys in the set.
func (s VSet[K, V]) Len() int {
	return len(s)
}

// Keys returns the set's keys in no particular order.
func (s VSet[K, V]) Keys() []K {
	keys := make([]K, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}

// OrderedStringKeys returns the keys of m sorted lexicographically. Used
// throughout the generator to make iteration order (and therefore state
// numbering and cache output) deterministic.
func OrderedStringKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

