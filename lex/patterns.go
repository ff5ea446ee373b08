package lex

import (
	"regexp"

	"github.com/dekarrin/embossfe/token"
)

type patternKind int

const (
	literalPattern patternKind = iota
	regexPattern
)

// pattern is one candidate lexical rule: either a fixed string (literalPattern)
// or a compiled regular expression anchored to the start of the remaining
// line (regexPattern). Symbol is the terminal symbol name emitted for a
// match, or "" if the match should be discarded (whitespace).
type pattern struct {
	kind   patternKind
	text   string
	re     *regexp.Regexp
	symbol string
}

func lit(text, symbol string) pattern {
	return pattern{kind: literalPattern, text: text, symbol: symbol}
}

func rx(expr, symbol string) pattern {
	return pattern{kind: regexPattern, re: regexp.MustCompile("^(?:" + expr + ")"), symbol: symbol}
}

// match returns the length of the longest match of p against s starting at
// s's first byte, or -1 if p does not match there at all.
func (p pattern) match(s string) int {
	switch p.kind {
	case literalPattern:
		if len(s) >= len(p.text) && s[:len(p.text)] == p.text {
			return len(p.text)
		}
		return -1
	case regexPattern:
		loc := p.re.FindStringIndex(s)
		if loc == nil || loc[0] != 0 {
			return -1
		}
		return loc[1]
	default:
		return -1
	}
}

// patterns is the fixed lexical rule table for the DSL, tried at every
// column. Matching always picks the single longest match; ties between a
// literal and a regex pattern favor the literal, so that keywords win over
// the generic word patterns they would otherwise also satisfy (e.g.
// "struct" lexes as the keyword, not as SnakeWord followed by nothing).
//
// $ERR and $ANY are not part of the DSL grammar; they are reserved literal
// markers recognized only so that the error-example corpus loader (package
// errorexample) can tokenize its annotated examples with this same
// tokenizer instead of a bespoke text splitter.
var keywords = []string{
	"struct", "bits", "enum", "external", "import", "as", "if", "let",
	"$default", "$max", "$present", "$upper_bound", "$lower_bound", "$next",
	"$size_in_bits", "$size_in_bytes", "$max_size_in_bits", "$max_size_in_bytes",
	"$min_size_in_bits", "$min_size_in_bytes", "$is_statically_sized",
	"$static_size_in_bits",
}

var punctuation = []string{
	// two-character forms are listed alongside their one-character
	// prefixes purely for readability; it is the longest-match rule, not
	// table order, that actually decides between them.
	"==", "!=", "&&", "||", "<=", ">=",
	"[", "]", "(", ")", ":", "=", "+", "-", "*", ".", "?", ",", "<", ">",
}

func init() {
	for _, kw := range keywords {
		patterns = append(patterns, lit(kw, token.Literal(kw)))
	}
	for _, p := range punctuation {
		patterns = append(patterns, lit(p, token.Literal(p)))
	}
}

var patterns = []pattern{
	lit("$ERR", "$ERR"),
	lit("$ANY", "$ANY"),

	rx(`[Ee][Mm][Bb][Oo][Ss][Ss]_[Rr][Ee][Ss][Ee][Rr][Vv][Ee][Dd][A-Za-z0-9_]*`, "BadWord"),

	// a quoted string body: an escaped backslash, an escaped quote, an
	// escaped "n" (the \n escape), or any other character but an
	// unescaped quote, backslash, or real newline.
	rx(`"(?:\\\\|\\"|\\n|[^"\\\n])*"`, "String"),

	rx(`0[xX][0-9a-fA-F](?:_?[0-9a-fA-F])*`, "Number"),
	rx(`0[bB][01](?:_?[01])*`, "Number"),
	rx(`[0-9](?:_?[0-9])*`, "Number"),
	rx(`0[xXbB][0-9a-fA-F_]*`, "BadNumber"),

	rx(`true|false`, "BooleanConstant"),

	rx(`[a-z][a-z_0-9]*`, "SnakeWord"),
	// ShoutyWord is tried before CamelWord so that a run of all-caps
	// letters (e.g. "FOO"), which both patterns match with equal length,
	// resolves to ShoutyWord; CamelWord still wins on any word with a
	// lowercase letter, since only it matches the word's full length there.
	rx(`[A-Z][A-Z_0-9]*`, "ShoutyWord"),
	rx(`[A-Z][A-Za-z0-9]*`, "CamelWord"),

	rx(`-- [^\n]*`, "Documentation"),
	rx(`--`, "Documentation"),
	rx(`--[^\n]*`, "BadDocumentation"),

	rx(`#[^\n]*`, "Comment"),

	rx(`[ \t]+`, ""),
}
