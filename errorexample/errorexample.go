// Package errorexample loads the annotated corpus of example parse
// failures used to attach human-readable error codes to LR(1) parser
// states, and enumerates the states of a generated parser that still lack
// such an annotation.
package errorexample

import (
	"fmt"
	"strings"

	"github.com/dekarrin/embossfe/lex"
	"github.com/dekarrin/embossfe/parse"
	"github.com/dekarrin/embossfe/token"
	"gopkg.in/yaml.v3"
)

const (
	ruleWidth       = 80
	exampleRule     = "---"
	frontMatterRule = "+++"
)

var (
	recordRule    = strings.Repeat("=", ruleWidth)
	subrecordRule = strings.Repeat("-", ruleWidth)
)

// Metadata is optional, record-level structured tagging for an error-example
// record, carried in a "+++"-fenced YAML front-matter block at the start of
// the record's message section. A record with no front-matter block has a
// zero-value Metadata.
type Metadata struct {
	Severity string   `yaml:"severity"`
	Tags     []string `yaml:"tags"`
}

// Example is one annotated parse-failure example: the token stream to feed
// the driver (with $ERR already stripped and $ANY replaced by the "$ANY"
// wildcard symbol), the index within Tokens that $ERR designated (-1 if
// $ERR designated end-of-input), and the human-readable error code the
// record around it supplies.
type Example struct {
	Code     string
	Message  string
	Tokens   []token.Token
	ErrIndex int
	Metadata Metadata
}

// Corpus is the decoded form of an error-example document: the full set of
// annotated examples, grouped in file order.
type Corpus struct {
	Examples []Example
}

// Load parses the 80-rule-delimited annotated error-example format: the
// document is split on lines of 80 "=" signs into records (the first record
// is free-form prose and is discarded); each subsequent record is split on
// a line of 80 "-" signs into a human-readable message and a block of
// examples; examples within a block are separated by a "---" line.
//
// Each example's text is tokenized with the same lexer used for real input
// (a tokenization failure is a loader error). Within the resulting tokens,
// exactly one $ERR marker must be present; it is removed, and the token
// immediately after it (or end-of-input, if none) becomes the example's
// designated error position. Any token whose text is "$ANY" is replaced by
// the wildcard symbol, regardless of position.
func Load(text string, fileName string) (*Corpus, error) {
	records := strings.Split(text, recordRule)
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: no record delimiters found", fileName)
	}

	var corpus Corpus
	for ri, record := range records[1:] {
		parts := strings.SplitN(record, subrecordRule, 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%s: record %d: missing message/example delimiter", fileName, ri+1)
		}
		meta, message, err := splitFrontMatter(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: front matter: %w", fileName, ri+1, err)
		}
		code := firstWord(message)
		if code == "" {
			return nil, fmt.Errorf("%s: record %d: empty error code", fileName, ri+1)
		}

		for ei, exampleText := range strings.Split(parts[1], exampleRule) {
			exampleText = strings.TrimSpace(exampleText)
			if exampleText == "" {
				continue
			}

			toks, errs := lex.Tokenize(exampleText, fmt.Sprintf("%s:record%d:example%d", fileName, ri+1, ei+1))
			if len(errs) > 0 {
				return nil, fmt.Errorf("%s: record %d example %d: %w", fileName, ri+1, ei+1, errs[0])
			}

			ex, err := buildExample(toks, code, message)
			if err != nil {
				return nil, fmt.Errorf("%s: record %d example %d: %w", fileName, ri+1, ei+1, err)
			}
			ex.Metadata = meta
			corpus.Examples = append(corpus.Examples, ex)
		}
	}

	return &corpus, nil
}

// splitFrontMatter splits a record's message section into its optional
// "+++"-fenced YAML metadata block and the remaining prose message. A
// message with no front-matter block (the common case: the corpus predates
// this extension) returns a zero-value Metadata and the message unchanged.
func splitFrontMatter(section string) (Metadata, string, error) {
	lines := strings.Split(section, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontMatterRule {
		return Metadata{}, section, nil
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontMatterRule {
			var meta Metadata
			if err := yaml.Unmarshal([]byte(strings.Join(lines[1:i], "\n")), &meta); err != nil {
				return Metadata{}, "", fmt.Errorf("invalid YAML: %w", err)
			}
			rest := strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
			return meta, rest, nil
		}
	}

	return Metadata{}, "", fmt.Errorf("unterminated front-matter block (missing closing %q)", frontMatterRule)
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func buildExample(toks []token.Token, code, message string) (Example, error) {
	errIdx := -1
	var out []token.Token
	for _, tok := range toks {
		if tok.SymbolName == "$ERR" {
			if errIdx != -1 {
				return Example{}, fmt.Errorf("more than one $ERR marker in example")
			}
			errIdx = len(out)
			continue
		}
		out = append(out, tok)
	}
	if errIdx == -1 {
		return Example{}, fmt.Errorf("missing $ERR marker in example")
	}
	if errIdx == len(out) {
		// $ERR was the last thing in the example: designates end-of-input.
		errIdx = -1
	}

	return Example{Code: code, Message: message, Tokens: out, ErrIndex: errIdx}, nil
}

// Apply installs every example in the corpus into d's tables via
// parse.Label, in order. It stops and returns the first labeling error it
// encounters, identified by the example's index in c.Examples.
func Apply(d *parse.Driver, c *Corpus) error {
	for i, ex := range c.Examples {
		if err := parse.Label(d, ex.Tokens, ex.ErrIndex, ex.Code); err != nil {
			return fmt.Errorf("example %d (%s): %w", i, ex.Code, err)
		}
	}
	return nil
}

// Enumerate returns, for every state in d's tables that has no ACTION entry
// and no DefaultErrors entry for at least one of the given terminals, the
// state number and the terminals it still lacks an annotation for. This
// supplements the loader with the original implementation's coverage
// check: a grammar with unlabeled error states compiles but gives opaque
// syntax errors at run time, so tooling can use this to drive corpus
// authoring instead of waiting for user bug reports.
func Enumerate(d *parse.Driver, terminals []string) map[int][]string {
	gaps := map[int][]string{}
	for state := 0; state < stateCountHint(d); state++ {
		for _, term := range terminals {
			act := d.Tables.Lookup(state, term)
			if act.Type != parse.Error {
				continue
			}
			if act.Code != "" {
				continue
			}
			gaps[state] = append(gaps[state], term)
		}
	}
	return gaps
}

// stateCountHint returns an upper bound on state numbers worth checking:
// one past the highest state number that appears anywhere in the tables'
// ACTION entries (including Shift destinations), GOTO entries and their
// destinations, or Start. Tables does not otherwise
// expose its state count (that belongs to the automaton.Collection it was
// built from), so Enumerate works from what it can see in the public API.
func stateCountHint(d *parse.Driver) int {
	max := d.Tables.Start
	for _, e := range d.Tables.ActionEntries() {
		if e.State > max {
			max = e.State
		}
		if e.Action.Type == parse.Shift && e.Action.State > max {
			max = e.Action.State
		}
	}
	for _, e := range d.Tables.GotoEntries() {
		if e.State > max {
			max = e.State
		}
		if e.Dest > max {
			max = e.Dest
		}
	}
	return max + 1
}
