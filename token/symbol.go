package token

// Symbol categories for named terminals. Literal keywords and punctuation
// are not listed here; their symbol name is simply their quoted text (e.g.
// `"struct"`, `"+"`), following the convention the grammar package uses for
// every literal production symbol.
const (
	SnakeWord         = "SnakeWord"
	CamelWord         = "CamelWord"
	ShoutyWord        = "ShoutyWord"
	Number            = "Number"
	String            = "String"
	BooleanConstant   = "BooleanConstant"
	Documentation     = "Documentation"
	Comment           = "Comment"
	BadWord           = "BadWord"
	BadNumber         = "BadNumber"
	BadDocumentation  = "BadDocumentation"

	// Indent and Dedent are synthesized by the tokenizer to mark changes in
	// leading-whitespace depth. A Dedent carries a zero-width location; an
	// Indent spans its line's leading whitespace.
	Indent = "Indent"
	Dedent = "Dedent"

	// Newline is emitted once per non-blank source line.
	Newline = "\"\\n\""

	// EndOfInput is the implicit lookahead appended after the last real
	// token in a parse; it never appears in a tokenizer's output slice.
	EndOfInput = "$"
)

// Literal returns the terminal symbol name used for a literal keyword or
// punctuation mark: its own quoted text, e.g. Literal("struct") == `"struct"`.
func Literal(text string) string {
	return "\"" + text + "\""
}
