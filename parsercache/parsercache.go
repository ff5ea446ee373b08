// Package parsercache encodes compiled LR(1) parsing tables as generated Go
// source, and detects when such generated source has gone stale against the
// grammar it was built from -- the parser cache codec described for the
// grammar registry, so that a build step only has to pay the cost of table
// construction when the grammar actually changed.
package parsercache

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dekarrin/embossfe/grammar"
	"github.com/dekarrin/embossfe/internal/box"
	"github.com/dekarrin/embossfe/parse"
)

// Encode renders tables as a self-contained Go source file in package pkg,
// exposing a single exported function, loaderFunc, that rebuilds an
// equivalent *parse.Tables at runtime.
//
// Every production that appears in a Reduce action is first hoisted into a
// local variable named by its reduce frequency, most-used first (p0, p1,
// ...; ties broken by the production's canonical text), rather than spelled
// out inline at each use -- the deterministic, frequency-sorted short-
// identifier scheme called for by a generated table this size, where a
// handful of productions (list/comma auxiliaries especially) account for
// most of the reduce actions.
func Encode(tables *parse.Tables, pkg, loaderFunc string) (string, error) {
	prodName, byName := nameProductionsByReduceFrequency(tables)

	var sb strings.Builder
	fmt.Fprintf(&sb, "package %s\n\n", pkg)
	sb.WriteString("// File automatically generated by the parser cache codec. DO NOT EDIT.\n\n")
	sb.WriteString("import (\n\t\"github.com/dekarrin/embossfe/grammar\"\n\t\"github.com/dekarrin/embossfe/parse\"\n)\n\n")

	fmt.Fprintf(&sb, "func %s() *parse.Tables {\n", loaderFunc)
	sb.WriteString("\tt := parse.NewTables()\n\n")

	fmt.Fprintf(&sb, "\tt.Start = %d\n\n", tables.Start)

	for _, prod := range sortedProductions(tables.Productions) {
		fmt.Fprintf(&sb, "\tt.AddProduction(%q, %s)\n", prod.Head, stringSliceLiteral(prod.Production))
	}
	sb.WriteString("\n")

	for _, np := range byName {
		fmt.Fprintf(&sb, "\t%s := grammar.HeadedProduction{Head: %q, Production: %s}\n", np.name, np.prod.Head, stringSliceLiteral(np.prod.Production))
	}
	sb.WriteString("\n")

	for _, e := range tables.ActionEntries() {
		a := e.Action
		switch a.Type {
		case parse.Shift:
			fmt.Fprintf(&sb, "\tt.SetAction(%d, %q, parse.Action{Type: parse.Shift, State: %d})\n", e.State, e.Terminal, a.State)
		case parse.Reduce:
			fmt.Fprintf(&sb, "\tt.SetAction(%d, %q, parse.Action{Type: parse.Reduce, Production: %s})\n",
				e.State, e.Terminal, prodName[a.Production.String()])
		case parse.Accept:
			fmt.Fprintf(&sb, "\tt.SetAction(%d, %q, parse.Action{Type: parse.Accept})\n", e.State, e.Terminal)
		default:
			fmt.Fprintf(&sb, "\tt.SetAction(%d, %q, parse.Action{Type: parse.Error, Code: %q})\n", e.State, e.Terminal, a.Code)
		}
	}
	sb.WriteString("\n")

	for _, e := range tables.GotoEntries() {
		fmt.Fprintf(&sb, "\tt.SetGoto(%d, %q, %d)\n", e.State, e.Symbol, e.Dest)
	}
	sb.WriteString("\n")

	for _, state := range sortedIntKeys(tables.DefaultErrors) {
		fmt.Fprintf(&sb, "\tt.SetDefaultError(%d, %q)\n", state, tables.DefaultErrors[state])
	}

	sb.WriteString("\n\treturn t\n}\n")
	return sb.String(), nil
}

func stringSliceLiteral(ss []string) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = fmt.Sprintf("%q", s)
	}
	return "[]string{" + strings.Join(parts, ", ") + "}"
}

func sortedIntKeys(m map[int]string) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func sortedProductions(ps []grammar.HeadedProduction) []grammar.HeadedProduction {
	out := make([]grammar.HeadedProduction, len(ps))
	copy(out, ps)
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// namedProduction pairs a generated identifier with the production it names,
// kept together so Encode can emit each declaration in the frequency order
// nameProductionsByReduceFrequency assigned the identifiers in.
type namedProduction struct {
	name string
	prod grammar.HeadedProduction
}

// nameProductionsByReduceFrequency assigns each production reduced at least
// once a short identifier ("p0", "p1", ...), ordered by descending count of
// Reduce actions that cite it, ties broken by the production's canonical
// string for determinism. It returns both a lookup from canonical string to
// identifier (for referencing a production at its use sites) and the
// identifier/production pairs in declaration order (for emitting the
// declarations themselves).
func nameProductionsByReduceFrequency(t *parse.Tables) (byKey map[string]string, byName []namedProduction) {
	freq := map[string]int{}
	prod := map[string]grammar.HeadedProduction{}
	for _, e := range t.ActionEntries() {
		if e.Action.Type != parse.Reduce {
			continue
		}
		key := e.Action.Production.String()
		freq[key]++
		prod[key] = e.Action.Production
	}

	keys := make([]string, 0, len(freq))
	for k := range freq {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if freq[keys[i]] != freq[keys[j]] {
			return freq[keys[i]] > freq[keys[j]]
		}
		return keys[i] < keys[j]
	})

	byKey = map[string]string{}
	byName = make([]namedProduction, len(keys))
	for i, k := range keys {
		name := fmt.Sprintf("p%d", i)
		byKey[k] = name
		byName[i] = namedProduction{name: name, prod: prod[k]}
	}
	return byKey, byName
}

// Diff is the symmetric difference between a cached production set and a
// grammar's current one: the productions the grammar gained and lost since
// the cache was generated. Spec §4.4: "report the symmetric difference ...
// to facilitate regeneration"; §7's cache-staleness notice is this pair,
// surfaced for a human to act on rather than logged.
type Diff struct {
	Added   []grammar.HeadedProduction
	Removed []grammar.HeadedProduction
}

// Stale reports whether d represents any actual difference.
func (d Diff) Stale() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0
}

// Decode compares a previously generated parser's production set
// (cachedProductions, as recorded by Encode's AddProduction calls) against
// g's current productions and returns the symmetric difference: productions
// present in g but not in the cache (Added) and productions present in the
// cache but no longer in g (Removed). An empty Diff means the cache is
// still fresh.
func Decode(cachedProductions []grammar.HeadedProduction, g *grammar.Grammar) Diff {
	cached := map[string]grammar.HeadedProduction{}
	for _, p := range cachedProductions {
		cached[p.String()] = p
	}
	current := map[string]grammar.HeadedProduction{}
	for _, p := range g.AllProductions() {
		current[p.String()] = p
	}

	var d Diff
	for _, key := range box.OrderedStringKeys(current) {
		if _, ok := cached[key]; !ok {
			d.Added = append(d.Added, current[key])
		}
	}
	for _, key := range box.OrderedStringKeys(cached) {
		if _, ok := current[key]; !ok {
			d.Removed = append(d.Removed, cached[key])
		}
	}
	return d
}

// IsFresh reports whether a previously generated parser (identified by the
// production set it was built from, cachedProductions) is still valid for
// the current grammar g: it is stale exactly when the symmetric difference
// between the two production sets (see Decode) is non-empty, i.e. g added
// or removed at least one production since the cache was generated.
func IsFresh(cachedProductions []grammar.HeadedProduction, g *grammar.Grammar) bool {
	return !Decode(cachedProductions, g).Stale()
}

// GeneratedAt is a human-readable timestamp comment helper for callers that
// want to stamp generated output; parsercache itself never calls time.Now,
// keeping Encode deterministic and suitable for golden-file comparisons.
func GeneratedAt(t time.Time) string {
	return t.Format(time.RFC3339)
}
