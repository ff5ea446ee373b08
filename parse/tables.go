package parse

import (
	"fmt"
	"sort"

	"github.com/dekarrin/embossfe/automaton"
	"github.com/dekarrin/embossfe/grammar"
)

// ActionType tags the kind of move an Action represents.
type ActionType int

const (
	Error ActionType = iota
	Shift
	Reduce
	Accept
)

func (a ActionType) String() string {
	switch a {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "error"
	}
}

// Action is one ACTION table entry: a shift to a state, a reduce by a
// production, an accept, or an explicit labeled error.
type Action struct {
	Type       ActionType
	State      int                      // for Shift: destination state
	Production grammar.HeadedProduction // for Reduce
	Code       string                   // for Error: the annotated error code, if any
}

func (a Action) String() string {
	switch a.Type {
	case Shift:
		return fmt.Sprintf("shift %d", a.State)
	case Reduce:
		return fmt.Sprintf("reduce %s", a.Production)
	case Accept:
		return "accept"
	default:
		if a.Code != "" {
			return "error " + a.Code
		}
		return "error"
	}
}

func (a Action) Equal(o Action) bool {
	if a.Type != o.Type {
		return false
	}
	switch a.Type {
	case Shift:
		return a.State == o.State
	case Reduce:
		return a.Production.Equal(o.Production)
	case Accept:
		return true
	default:
		return a.Code == o.Code
	}
}

type stateTerm struct {
	State int
	Term  string
}

type stateNonTerm struct {
	State int
	Sym   string
}

// Conflict records two actions a generated grammar's table construction
// wanted to install at the same (state, terminal) cell. Conflicts are never
// auto-resolved; Generate reports every one it finds, and it is up to the
// caller (ordinarily the build-time driver described by the grammar
// registry) to treat a non-empty Conflicts slice as fatal.
type Conflict struct {
	State    int
	Terminal string
	Existing Action
	Proposed Action
}

func (c Conflict) String() string {
	return fmt.Sprintf("state %d on %s: %s vs %s", c.State, c.Terminal, c.Existing, c.Proposed)
}

// Tables is a complete LR(1) parsing table: ACTION and GOTO, the set of
// terminals expected (non-error) in each state for diagnostics, and a
// per-state fallback error code installed by error-example labeling.
type Tables struct {
	Action        map[stateTerm]Action
	Goto          map[stateNonTerm]int
	Expected      map[int]map[string]bool
	DefaultErrors map[int]string
	Productions   []grammar.HeadedProduction
	Conflicts     []Conflict
	Start         int
	collection    *automaton.Collection
	grammar       *grammar.Grammar // the augmented grammar this was generated from
}

// Lookup returns the action for (state, terminal). If no ACTION entry was
// installed there, the result falls back to Error(DefaultErrors[state]) if
// one was labeled, or a bare Error otherwise -- this is the "absent means
// error" rule the driver and the error-example labeler both rely on.
func (t *Tables) Lookup(state int, terminal string) Action {
	if a, ok := t.Action[stateTerm{state, terminal}]; ok {
		return a
	}
	if code, ok := t.DefaultErrors[state]; ok {
		return Action{Type: Error, Code: code}
	}
	return Action{Type: Error}
}

func (t *Tables) gotoState(state int, symbol string) (int, bool) {
	s, ok := t.Goto[stateNonTerm{state, symbol}]
	return s, ok
}

func (t *Tables) setAction(state int, terminal string, a Action) {
	key := stateTerm{state, terminal}
	if existing, ok := t.Action[key]; ok && !existing.Equal(a) {
		t.Conflicts = append(t.Conflicts, Conflict{State: state, Terminal: terminal, Existing: existing, Proposed: a})
		return
	}
	t.Action[key] = a
	if t.Expected[state] == nil {
		t.Expected[state] = map[string]bool{}
	}
	t.Expected[state][terminal] = true
}

// Generate builds the canonical LR(1) ACTION/GOTO tables for g. Shift-
// reduce and reduce-reduce conflicts are recorded in the returned Tables'
// Conflicts field rather than silently resolved; callers that require a
// conflict-free grammar should use GenerateStrict instead.
func Generate(g *grammar.Grammar) (*Tables, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	aug := g.Augmented()
	coll := automaton.Build(aug)

	t := &Tables{
		Action:        map[stateTerm]Action{},
		Goto:          map[stateNonTerm]int{},
		Expected:      map[int]map[string]bool{},
		DefaultErrors: map[int]string{},
		Productions:   g.AllProductions(),
		Start:         coll.Start,
		collection:    coll,
		grammar:       aug,
	}

	augStartHead := aug.StartSymbol()

	for state, items := range coll.States {
		for _, it := range items.Items() {
			if it.AtEnd() {
				if it.Head == augStartHead {
					t.setAction(state, it.Lookahead, Action{Type: Accept})
					continue
				}
				t.setAction(state, it.Lookahead, Action{Type: Reduce, Production: grammar.HeadedProduction{Head: it.Head, Production: it.Production}})
				continue
			}
			if g.IsTerminal(it.NextSymbol) || isLiteralSymbol(it.NextSymbol) {
				dest := coll.Goto(state, it.NextSymbol)
				if dest < 0 {
					continue
				}
				t.setAction(state, it.NextSymbol, Action{Type: Shift, State: dest})
			}
		}
		for _, nt := range aug.NonTerminals() {
			if dest := coll.Goto(state, nt); dest >= 0 {
				t.Goto[stateNonTerm{state, nt}] = dest
			}
		}
	}

	sort.Slice(t.Conflicts, func(i, j int) bool {
		if t.Conflicts[i].State != t.Conflicts[j].State {
			return t.Conflicts[i].State < t.Conflicts[j].State
		}
		return t.Conflicts[i].Terminal < t.Conflicts[j].Terminal
	})

	return t, nil
}

// GenerateStrict is Generate, but treats a non-empty Conflicts slice as a
// fatal generation error. This is the entry point the build-time parser
// generation driver uses; Generate itself is also exposed for tooling that
// wants to inspect conflicts before deciding what to do with them.
func GenerateStrict(g *grammar.Grammar) (*Tables, error) {
	t, err := Generate(g)
	if err != nil {
		return nil, err
	}
	if len(t.Conflicts) > 0 {
		return nil, fmt.Errorf("%d unresolved conflict(s) in generated grammar, first: %s", len(t.Conflicts), t.Conflicts[0])
	}
	return t, nil
}

func isLiteralSymbol(sym string) bool {
	return len(sym) >= 2 && sym[0] == '"' && sym[len(sym)-1] == '"'
}

// NewTables returns an empty Tables, ready for a parsercache-generated
// loader function to populate with AddProduction/SetAction/SetGoto/
// SetDefaultError. Generate is the normal way to produce a Tables; NewTables
// exists for that generated code.
func NewTables() *Tables {
	return &Tables{
		Action:        map[stateTerm]Action{},
		Goto:          map[stateNonTerm]int{},
		Expected:      map[int]map[string]bool{},
		DefaultErrors: map[int]string{},
	}
}

// AddProduction records a production in the table's production inventory,
// used by parsercache.IsFresh to detect a stale cache.
func (t *Tables) AddProduction(head string, production []string) {
	t.Productions = append(t.Productions, grammar.HeadedProduction{Head: head, Production: grammar.Production(production)})
}

// SetAction installs an ACTION cell unconditionally, overwriting whatever
// was there before. Unlike the conflict-tracking setAction used by
// Generate, this is for loading a cache that is already known to be
// conflict-free.
func (t *Tables) SetAction(state int, terminal string, a Action) {
	t.Action[stateTerm{state, terminal}] = a
	if t.Expected[state] == nil {
		t.Expected[state] = map[string]bool{}
	}
	if a.Type != Error {
		t.Expected[state][terminal] = true
	}
}

// SetGoto installs a GOTO cell unconditionally.
func (t *Tables) SetGoto(state int, symbol string, dest int) {
	t.Goto[stateNonTerm{state, symbol}] = dest
}

// SetDefaultError installs a state's fallback error code.
func (t *Tables) SetDefaultError(state int, code string) {
	t.DefaultErrors[state] = code
}

// ActionEntry is one exported, deterministically ordered view of an ACTION
// table cell, for callers outside this package (parsercache) that need to
// enumerate the table without access to its unexported key type.
type ActionEntry struct {
	State    int
	Terminal string
	Action   Action
}

// ActionEntries returns every explicit ACTION cell, ordered by (state,
// terminal).
func (t *Tables) ActionEntries() []ActionEntry {
	out := make([]ActionEntry, 0, len(t.Action))
	for k, a := range t.Action {
		out = append(out, ActionEntry{State: k.State, Terminal: k.Term, Action: a})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].State != out[j].State {
			return out[i].State < out[j].State
		}
		return out[i].Terminal < out[j].Terminal
	})
	return out
}

// GotoEntry is the GOTO-table analogue of ActionEntry.
type GotoEntry struct {
	State  int
	Symbol string
	Dest   int
}

// GotoEntries returns every GOTO cell, ordered by (state, symbol).
func (t *Tables) GotoEntries() []GotoEntry {
	out := make([]GotoEntry, 0, len(t.Goto))
	for k, dest := range t.Goto {
		out = append(out, GotoEntry{State: k.State, Symbol: k.Sym, Dest: dest})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].State != out[j].State {
			return out[i].State < out[j].State
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}
