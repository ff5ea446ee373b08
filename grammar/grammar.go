package grammar

import (
	"fmt"

	"github.com/dekarrin/embossfe/internal/box"
)

// Grammar is a context-free grammar: a set of rules (one per nonterminal)
// plus the set of terminal symbols it recognizes. It is the input to the
// LR(1) generator (package automaton/parse) and is built up incrementally
// by a grammar registry (package ir) binding productions to IR-construction
// handlers.
type Grammar struct {
	rulesByHead map[string]int
	rules       []Rule

	// terminals maps terminal symbol name to a short human-readable
	// description, used only for diagnostics (expected-terminal lists).
	terminals map[string]string

	// Start is the name of the grammar's start symbol. If unset, "module" is
	// assumed — sensible for this grammar's actual start symbol, unlike a
	// bare "S" default, since there is no single-letter convention here.
	Start string
}

// New returns an empty Grammar.
func New() *Grammar {
	return &Grammar{
		rulesByHead: map[string]int{},
		terminals:   map[string]string{},
	}
}

// StartSymbol returns g.Start, defaulting to "module" if unset.
func (g *Grammar) StartSymbol() string {
	if g.Start == "" {
		return "module"
	}
	return g.Start
}

// AddTerm registers a terminal symbol with a human-readable description
// used in diagnostics. Re-registering an existing terminal overwrites its
// description.
func (g *Grammar) AddTerm(symbol, human string) {
	if symbol == "" {
		panic("empty terminal symbol not allowed")
	}
	g.terminals[symbol] = human
}

// IsTerminal reports whether symbol has been registered with AddTerm.
func (g *Grammar) IsTerminal(symbol string) bool {
	_, ok := g.terminals[symbol]
	return ok
}

// Human returns the diagnostic description registered for a terminal, or
// the symbol itself if none was registered.
func (g *Grammar) Human(symbol string) string {
	if h, ok := g.terminals[symbol]; ok {
		return h
	}
	return symbol
}

// AddRule adds production as an alternative for nonterminal head, appending
// it after any productions already registered for head. The same
// nonterminal may be passed repeatedly to add further alternatives.
func (g *Grammar) AddRule(head string, production []string) {
	if head == "" {
		panic("empty nonterminal name not allowed for production rule")
	}
	if len(production) < 1 {
		panic("production must have at least one symbol; use [\"\"] for epsilon")
	}

	idx, ok := g.rulesByHead[head]
	if !ok {
		g.rules = append(g.rules, Rule{Head: head})
		idx = len(g.rules) - 1
		g.rulesByHead[head] = idx
	}

	g.rules[idx].Productions = append(g.rules[idx].Productions, Production(production))
}

// Rule returns the registered Rule for nonterminal head, or the zero Rule
// if head has no productions.
func (g *Grammar) Rule(head string) Rule {
	idx, ok := g.rulesByHead[head]
	if !ok {
		return Rule{}
	}
	return g.rules[idx]
}

// NonTerminals returns every nonterminal with at least one registered
// production, in the order rules were first added.
func (g *Grammar) NonTerminals() []string {
	names := make([]string, len(g.rules))
	for i, r := range g.rules {
		names[i] = r.Head
	}
	return names
}

// Terminals returns every registered terminal symbol, sorted for
// deterministic iteration (state construction and cache serialization both
// depend on this being stable across runs).
func (g *Grammar) Terminals() []string {
	return box.OrderedStringKeys(g.terminals)
}

// AllProductions returns every (head, production) pair in the grammar, in
// rule-definition order and, within a rule, alternative-definition order.
// This is the grammar's production set as referenced by §4.5's "coverage"
// property: every production here must have a registered IR-builder
// handler.
func (g *Grammar) AllProductions() []HeadedProduction {
	var all []HeadedProduction
	for _, r := range g.rules {
		for _, p := range r.Productions {
			all = append(all, HeadedProduction{Head: r.Head, Production: p})
		}
	}
	return all
}

// HeadedProduction pairs a production with the nonterminal it belongs to.
type HeadedProduction struct {
	Head       string
	Production Production
}

func (hp HeadedProduction) String() string {
	return hp.Head + " -> " + hp.Production.String()
}

// Equal reports whether hp and o name the same head and an equal
// production.
func (hp HeadedProduction) Equal(o HeadedProduction) bool {
	return hp.Head == o.Head && hp.Production.Equal(o.Production)
}

// Augmented returns a copy of g with a fresh start rule S' -> S added, where
// S is g's current start symbol. The new grammar's Start is set to S'. This
// is the first step of canonical LR(1) table construction (§4.2).
func (g *Grammar) Augmented() *Grammar {
	g2 := g.Copy()
	freshStart := g.freshNonTerminalName(g.StartSymbol() + "-aug")
	g2.AddRule(freshStart, []string{g.StartSymbol()})
	g2.Start = freshStart
	return g2
}

func (g *Grammar) freshNonTerminalName(base string) string {
	name := base
	for {
		if _, ok := g.rulesByHead[name]; !ok {
			return name
		}
		name += "-P"
	}
}

// Copy returns a deep copy of g.
func (g *Grammar) Copy() *Grammar {
	g2 := &Grammar{
		rulesByHead: make(map[string]int, len(g.rulesByHead)),
		rules:       make([]Rule, len(g.rules)),
		terminals:   make(map[string]string, len(g.terminals)),
		Start:       g.Start,
	}
	for k, v := range g.rulesByHead {
		g2.rulesByHead[k] = v
	}
	for i := range g.rules {
		g2.rules[i] = g.rules[i].Copy()
	}
	for k, v := range g.terminals {
		g2.terminals[k] = v
	}
	return g2
}

// FIRST computes FIRST(X) for a single grammar symbol X: the set of
// terminals (and possibly epsilon, represented by the key "") that can
// begin a string derived from X. Terminals and epsilon are their own FIRST
// set; nonterminals are computed by recursing into their productions.
//
// This directly recurses per the dragon-book definition rather than
// iterating a global fixed point, matching the grammar the IR registry
// builds: the productions this front end's grammar contains are not
// left-recursive in a way that would make naive recursion nonterminating
// (list productions are right-recursive by construction, see ir.Registry).
func (g *Grammar) FIRST(X string) map[string]bool {
	if !g.IsTerminal(X) && g.Rule(X).Head == "" {
		// X is neither a declared terminal nor has a rule: treat as a
		// terminal/literal symbol (keywords and punctuation are never
		// explicitly registered with AddTerm in every caller).
		return map[string]bool{X: true}
	}
	if g.IsTerminal(X) {
		return map[string]bool{X: true}
	}

	firsts := map[string]bool{}
	rule := g.Rule(X)
	for _, prod := range rule.Productions {
		if prod.IsEpsilon() {
			firsts[""] = true
			continue
		}

		allNullableSoFar := true
		for _, sym := range prod {
			symFirst := g.FIRST(sym)
			for t := range symFirst {
				if t != "" {
					firsts[t] = true
				}
			}
			if !symFirst[""] {
				allNullableSoFar = false
				break
			}
		}
		if allNullableSoFar {
			firsts[""] = true
		}
	}
	return firsts
}

// FirstOfString computes FIRST(X1 X2 ... Xn beta) where beta is represented
// by lookahead: FIRST of a symbol sequence followed by a known terminal.
// This is exactly the set used when computing item closures (§4.2): "t ∈
// FIRST(βu)" where u is the current lookahead.
func (g *Grammar) FirstOfString(symbols []string, lookahead string) map[string]bool {
	result := map[string]bool{}
	allNullable := true
	for _, sym := range symbols {
		symFirst := g.FIRST(sym)
		for t := range symFirst {
			if t != "" {
				result[t] = true
			}
		}
		if !symFirst[""] {
			allNullable = false
			break
		}
	}
	if allNullable {
		result[lookahead] = true
	}
	return result
}

// Validate checks basic well-formedness: the start symbol has a rule, every
// symbol referenced by a production is either a declared terminal or a
// nonterminal with its own rule, and every nonterminal is reachable from
// the start symbol.
func (g *Grammar) Validate() error {
	if g.Rule(g.StartSymbol()).Head == "" {
		return fmt.Errorf("grammar has no rule for start symbol %q", g.StartSymbol())
	}

	for _, r := range g.rules {
		for _, p := range r.Productions {
			if p.IsEpsilon() {
				continue
			}
			for _, sym := range p {
				if g.IsTerminal(sym) {
					continue
				}
				if g.Rule(sym).Head != "" {
					continue
				}
				// literal keyword/punctuation symbols are spelled as their
				// own quoted text and are not required to be pre-registered
				// with AddTerm; anything else undeclared is an error.
				if len(sym) >= 2 && sym[0] == '"' && sym[len(sym)-1] == '"' {
					continue
				}
				return fmt.Errorf("production %s -> %s references undefined symbol %q", r.Head, p, sym)
			}
		}
	}

	unreachable := g.unreachableNonTerminals()
	if len(unreachable) > 0 {
		return fmt.Errorf("grammar has unreachable nonterminals: %v", unreachable)
	}

	return nil
}

func (g *Grammar) unreachableNonTerminals() []string {
	reachable := map[string]bool{g.StartSymbol(): true}
	changed := true
	for changed {
		changed = false
		for _, r := range g.rules {
			if !reachable[r.Head] {
				continue
			}
			for _, p := range r.Productions {
				for _, sym := range p {
					if g.Rule(sym).Head != "" && !reachable[sym] {
						reachable[sym] = true
						changed = true
					}
				}
			}
		}
	}

	var unreachable []string
	for _, nt := range g.NonTerminals() {
		if !reachable[nt] {
			unreachable = append(unreachable, nt)
		}
	}
	return unreachable
}
