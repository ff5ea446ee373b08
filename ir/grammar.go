package ir

import (
	"github.com/dekarrin/embossfe/grammar"
	"github.com/dekarrin/embossfe/token"
)

// DefinitionGrammar returns the grammar the Builder's handler registry is
// bound against: structure and enum definitions, fields (with an optional
// bracket attribute list and an optional existence condition), and the
// expression language (left-associative +/-, chained comparisons, unary
// +/-, parenthesized grouping, and the ternary choice operator).
//
// Repeated and optional constructs (a module's list of type definitions, a
// struct's list of fields, a field's attribute list) are built with
// Grammar.AddStar/AddPlus/AddOptional rather than hand-written recursive
// rules, per the X*/X+/X? auxiliary-production convention.
func DefinitionGrammar() *grammar.Grammar {
	g := grammar.New()
	g.Start = "module"

	g.AddTerm(token.SnakeWord, "a lowercase field or attribute name")
	g.AddTerm(token.CamelWord, "a type name")
	g.AddTerm(token.ShoutyWord, "an enum value name")
	g.AddTerm(token.Number, "a numeric literal")
	g.AddTerm(token.String, "a string literal")
	g.AddTerm(token.BooleanConstant, "a boolean literal")
	g.AddTerm(token.Documentation, "a documentation comment")
	g.AddTerm(token.Indent, "an indent")
	g.AddTerm(token.Dedent, "a dedent")
	g.AddTerm(token.Newline, "end of line")

	typeDef := g.AddStar("type_def")
	g.AddRule("module", []string{typeDef})
	g.AddRule("type_def", []string{"struct_def"})
	g.AddRule("type_def", []string{"enum_def"})

	field := g.AddPlus("field")
	g.AddRule("struct_def", []string{token.Literal("struct"), token.CamelWord, token.Literal(":"), token.Newline, token.Indent, field, token.Dedent})

	enumValue := g.AddPlus("enum_value")
	g.AddRule("enum_def", []string{token.Literal("enum"), token.CamelWord, token.Literal(":"), token.Newline, token.Indent, enumValue, token.Dedent})

	attrs := g.AddStar("attribute")
	g.AddRule("attribute", []string{token.Literal("["), token.SnakeWord, token.Literal("="), "expr", token.Literal("]")})

	existence := g.AddOptional("existence_condition")
	g.AddRule("existence_condition", []string{token.Literal("if"), "expr"})

	// A field's type is either a plain named reference, or one of the three
	// inline bodies (§4.5 "Inline types"): an unnamed struct:/enum:/bits:
	// block nested directly under the field, whose synthesized subtype name
	// is derived from the field's own name by the Builder's handler.
	g.AddRule("field_type", []string{token.CamelWord})
	g.AddRule("field_type", []string{"inline_struct"})
	g.AddRule("field_type", []string{"inline_enum"})
	g.AddRule("field_type", []string{"inline_bits"})

	g.AddRule("inline_struct", []string{token.Literal("struct"), token.Literal(":"), token.Newline, token.Indent, field, token.Dedent})
	g.AddRule("inline_enum", []string{token.Literal("enum"), token.Literal(":"), token.Newline, token.Indent, enumValue, token.Dedent})
	g.AddRule("inline_bits", []string{token.Literal("bits"), token.Literal(":"), token.Newline, token.Indent, field, token.Dedent})

	// A field's location-expression (§3 data model: "location-expression
	// (start, size)"), e.g. "0 [+1]": an offset expression, a literal "+",
	// and a size expression, bracketed.
	g.AddRule("field_location", []string{"expr", token.Literal("["), token.Literal("+"), "expr", token.Literal("]")})

	// An optional parenthesized abbreviation following a field's type, e.g.
	// "(abbr)".
	abbreviation := g.AddOptional("abbreviation")
	g.AddRule("abbreviation", []string{token.Literal("("), token.SnakeWord, token.Literal(")")})

	g.AddRule("field", []string{"field_location", token.SnakeWord, "field_type", abbreviation, attrs, existence, token.Newline})

	// A bits: block with no field name (§4.5 "Anonymous bit blocks") is its
	// own field alternative, distinguished from the named case by its
	// leading "bits" keyword rather than a SnakeWord.
	g.AddRule("field", []string{"field_location", "anon_bits_field", attrs, existence, token.Newline})
	g.AddRule("anon_bits_field", []string{token.Literal("bits"), token.Literal(":"), token.Newline, token.Indent, field, token.Dedent})

	// A virtual field (§3 "optional read_transform", glossary "virtual
	// field"): "let name = expr", computed rather than stored, so it has no
	// field_location of its own.
	g.AddRule("field", []string{token.Literal("let"), token.SnakeWord, token.Literal("="), "expr", attrs, token.Newline})

	g.AddRule("enum_value", []string{token.ShoutyWord, token.Literal("="), "expr", token.Newline})

	g.AddRule("expr", []string{"choice"})
	g.AddRule("choice", []string{"comparison", token.Literal("?"), "choice", token.Literal(":"), "choice"})
	g.AddRule("choice", []string{"comparison"})

	relTail := g.AddStar("comparison_tail")
	g.AddRule("comparison_tail", []string{"rel_op", "sum"})
	g.AddRule("rel_op", []string{token.Literal("<")})
	g.AddRule("rel_op", []string{token.Literal(">")})
	g.AddRule("rel_op", []string{token.Literal("<=")})
	g.AddRule("rel_op", []string{token.Literal(">=")})
	g.AddRule("rel_op", []string{token.Literal("==")})
	g.AddRule("rel_op", []string{token.Literal("!=")})
	g.AddRule("comparison", []string{"sum", relTail})

	g.AddRule("sum", []string{"sum", token.Literal("+"), "term"})
	g.AddRule("sum", []string{"sum", token.Literal("-"), "term"})
	g.AddRule("sum", []string{"term"})

	g.AddRule("term", []string{token.Literal("-"), "term"})
	g.AddRule("term", []string{token.Literal("+"), "term"})
	g.AddRule("term", []string{"primary"})

	g.AddRule("primary", []string{token.Number})
	g.AddRule("primary", []string{token.String})
	g.AddRule("primary", []string{token.BooleanConstant})
	g.AddRule("primary", []string{token.SnakeWord})
	g.AddRule("primary", []string{token.ShoutyWord})
	g.AddRule("primary", []string{token.Literal("("), "expr", token.Literal(")")})

	return g
}
