package ir

import (
	"fmt"

	"github.com/dekarrin/embossfe/token"
)

// Operator/function name constants, per §4.5's operator -> enum mapping.
// These are the values stored in Expression.Function; Expression itself
// keeps the operator as a plain string rather than a separate closed enum
// type, since every consumer in this port switches on the string directly.
const (
	OpAddition        = "ADDITION"
	OpSubtraction     = "SUBTRACTION"
	OpMultiplication  = "MULTIPLICATION"
	OpEquality        = "EQUALITY"
	OpInequality      = "INEQUALITY"
	OpAnd             = "AND"
	OpOr              = "OR"
	OpGreater         = "GREATER"
	OpGreaterOrEqual  = "GREATER_OR_EQUAL"
	OpLess            = "LESS"
	OpLessOrEqual     = "LESS_OR_EQUAL"
	OpChoice          = "CHOICE"
	OpMaximum         = "MAXIMUM"
	OpPresence        = "PRESENCE"
	OpUpperBound      = "UPPER_BOUND"
	OpLowerBound      = "LOWER_BOUND"
)

// relOpFunction maps a relational/equality operator's source text (the text
// of the token matched by the "rel_op" production) to its Function name.
func relOpFunction(text string) string {
	switch text {
	case "<":
		return OpLess
	case ">":
		return OpGreater
	case "<=":
		return OpLessOrEqual
	case ">=":
		return OpGreaterOrEqual
	case "==":
		return OpEquality
	case "!=":
		return OpInequality
	default:
		return text
	}
}

// comparisonTail is the intermediate build result of the "comparison_tail"
// production (rel_op sum): the chosen operator and the right-hand operand,
// not yet folded into the running chained-comparison expression.
type comparisonTail struct {
	op    string
	right *Expression
}

// fieldTypeResult is the intermediate build result of "field_type": either a
// plain named type reference, or an inline struct:/enum:/bits: definition
// not yet given its synthesized name (the "field" production assigns that,
// since only it knows the enclosing field's own name).
type fieldTypeResult struct {
	typeName string
	inline   *TypeDefinition
}

// fieldResult is the intermediate build result of a "field" production: the
// field itself, plus any subtype(s) its inline type definition synthesized
// that must be hoisted onto the enclosing struct_def/inline_struct/
// inline_bits's SubTypes list (§4.5 "Inline types", "Anonymous bit blocks").
type fieldResult struct {
	field    *Field
	subtypes []TypeDefinition
}

// applyFieldTail fills in the attribute list and existence condition shared
// by every "field" alternative, given the raw "attribute*" and
// "existence_condition?" child values.
func applyFieldTail(f *Field, rawAttrs, rawCond any) {
	if attrs, _ := rawAttrs.([]any); attrs != nil {
		for _, v := range attrs {
			f.Attributes = append(f.Attributes, *v.(*Attribute))
		}
	}

	if cond, ok := rawCond.(*Expression); ok && cond != nil {
		cond.Location.IsDisjointFromParent = true
		f.ExistenceCondition = cond
	} else {
		f.ExistenceCondition = literalTrue(f.Location)
	}
}

// collectFields splits a "field+" list's []*fieldResult values into the
// Field slice the enclosing type keeps directly and the TypeDefinition
// slice of subtypes any of those fields synthesized inline.
func collectFields(list []any) ([]Field, []TypeDefinition) {
	var fields []Field
	var subtypes []TypeDefinition
	for _, v := range list {
		fr := v.(*fieldResult)
		fields = append(fields, *fr.field)
		subtypes = append(subtypes, fr.subtypes...)
	}
	return fields, subtypes
}

func newIntLiteral(n *token.Token) (*Expression, error) {
	v, err := ParseInteger(n.Text)
	if err != nil {
		return nil, fmt.Errorf("ir: %s: %w", n.Location, err)
	}
	return &Expression{Kind: ExprConstant, IntValue: v, Location: n.Location}, nil
}

func newBoolLiteral(n *token.Token) (*Expression, error) {
	v, err := ParseBoolean(n.Text)
	if err != nil {
		return nil, fmt.Errorf("ir: %s: %w", n.Location, err)
	}
	return &Expression{Kind: ExprConstant, BoolValue: &v, Location: n.Location}, nil
}

func newStringLiteral(n *token.Token) (*Expression, error) {
	v, err := ParseStringLiteral(n.Text)
	if err != nil {
		return nil, fmt.Errorf("ir: %s: %w", n.Location, err)
	}
	return &Expression{Kind: ExprConstant, StringValue: &v, Location: n.Location}, nil
}

// literalTrue returns a fresh boolean-constant Expression with value true,
// used as the default existence_condition for a field that has no "if"
// clause of its own (§4.5: "Fields outside any if get existence_condition =
// boolean_constant(true) with source-location equal to the field's
// declaration").
func literalTrue(loc token.Location) *Expression {
	t := true
	return &Expression{Kind: ExprConstant, BoolValue: &t, Location: loc}
}

// zeroLiteral returns the phantom-zero operand used for a unary +/- (§4.5):
// a synthetic integer constant 0 whose location is collapsed to the point
// where the unary operator token began.
func zeroLiteral(opStart token.Location) *Expression {
	big0, _ := ParseInteger("0")
	return &Expression{
		Kind:     ExprConstant,
		IntValue: big0,
		Location: token.Point(opStart.Start),
	}
}

// DefaultRegistry returns the Registry binding a Handler to every
// non-auxiliary production of DefinitionGrammar, implementing the §4.5
// grammar-directed translations: left-associative folding of the sum/term
// operator chain, chained-comparison expansion, unary +/- with a phantom
// zero operand, the ternary choice operator, integer/boolean/string literal
// decoding, field-reference and constant-reference expression construction,
// and the prelude-import/existence-condition defaulting done at the module
// and field level.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Bind("module", []string{"type_def*"}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		mod := &Module{}
		preludeLoc := token.Point(token.Position{Line: 1, Column: 1})
		if list, _ := children[0].([]any); list != nil {
			for _, v := range list {
				td := v.(*TypeDefinition)
				mod.Types = append(mod.Types, *td)
			}
			if first := mod.Types[0].Location; !first.Zero() {
				preludeLoc = token.Point(first.Start)
			}
		}
		mod.Imports = []Import{{Path: "", LocalName: "", Location: preludeLoc}}
		return mod, nil
	})

	r.Bind("struct_def", []string{`"struct"`, token.CamelWord, `":"`, token.Newline, token.Indent, "field+", token.Dedent}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		nameTok := children[1].(*token.Token)
		td := &TypeDefinition{
			Kind:     TypeStructure,
			Unit:     UnitByte,
			Name:     NameDefinition{Name: Word{Text: nameTok.Text, Case: token.CamelWord, Location: nameTok.Location}, Location: nameTok.Location},
			Location: loc,
		}
		td.Fields, td.SubTypes = collectFields(children[5].([]any))
		return td, nil
	})

	r.Bind("enum_def", []string{`"enum"`, token.CamelWord, `":"`, token.Newline, token.Indent, "enum_value+", token.Dedent}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		nameTok := children[1].(*token.Token)
		td := &TypeDefinition{
			Kind:     TypeEnum,
			Name:     NameDefinition{Name: Word{Text: nameTok.Text, Case: token.CamelWord, Location: nameTok.Location}, Location: nameTok.Location},
			Location: loc,
		}
		for _, v := range children[5].([]any) {
			td.EnumValues = append(td.EnumValues, *v.(*EnumValue))
		}
		return td, nil
	})

	r.Bind("attribute", []string{`"["`, token.SnakeWord, `"="`, "expr", `"]"`}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		nameTok := children[1].(*token.Token)
		val := children[3].(*Expression)
		return &Attribute{Name: nameTok.Text, Value: val, Location: loc}, nil
	})

	r.Bind("existence_condition", []string{`"if"`, "expr"}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		return children[1].(*Expression), nil
	})

	r.Bind("field_location", []string{"expr", `"["`, `"+"`, "expr", `"]"`}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		start := children[0].(*Expression)
		size := children[3].(*Expression)
		return &FieldLocation{Start: start, Size: size}, nil
	})

	r.Bind("abbreviation", []string{`"("`, token.SnakeWord, `")"`}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		tok := children[1].(*token.Token)
		return &Word{Text: tok.Text, Case: token.SnakeWord, Location: tok.Location}, nil
	})

	r.Bind("field", []string{"field_location", token.SnakeWord, "field_type", "abbreviation?", "attribute*", "existence_condition?", token.Newline}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		fieldLoc := children[0].(*FieldLocation)
		nameTok := children[1].(*token.Token)
		ft := children[2].(*fieldTypeResult)

		f := &Field{
			Kind:          FieldData,
			Name:          NameDefinition{Name: Word{Text: nameTok.Text, Case: token.SnakeWord, Location: nameTok.Location}, Location: nameTok.Location},
			FieldLocation: fieldLoc,
			Location:      loc,
		}
		if abbr, ok := children[3].(*Word); ok && abbr != nil {
			f.Abbreviation = abbr
		}

		var subtypes []TypeDefinition
		if ft.inline != nil {
			ft.inline.Name = NameDefinition{Name: Word{Text: inlineTypeName(nameTok.Text), Case: token.CamelWord, Location: nameTok.Location}, Location: nameTok.Location}
			f.TypeName = ft.inline.Name.Name.Text
			subtypes = []TypeDefinition{*ft.inline}
		} else {
			f.TypeName = ft.typeName
		}

		applyFieldTail(f, children[4], children[5])

		return &fieldResult{field: f, subtypes: subtypes}, nil
	})

	// An anonymous bits: field (§4.5 "Anonymous bit blocks") has no
	// SnakeWord of its own; its reserved name comes from the Builder's
	// per-build counter, mirroring how a named "x bits: ..." field gets its
	// inline subtype's name from inlineTypeName.
	r.Bind("field", []string{"field_location", "anon_bits_field", "attribute*", "existence_condition?", token.Newline}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		fieldLoc := children[0].(*FieldLocation)
		subtype := children[1].(*TypeDefinition)
		subtype.Name = NameDefinition{Name: Word{Text: bits.name(), Case: token.SnakeWord, Location: loc}, Location: loc}

		f := &Field{
			Kind:          FieldAnonymousBits,
			Name:          subtype.Name,
			TypeName:      subtype.Name.Name.Text,
			FieldLocation: fieldLoc,
			Location:      loc,
		}
		applyFieldTail(f, children[2], children[3])

		return &fieldResult{field: f, subtypes: []TypeDefinition{*subtype}}, nil
	})

	// A virtual field (§3 "optional read_transform"): "let name = expr" is
	// computed, not laid out, so it has no field_location and no existence
	// condition of its own -- it is always present whenever its enclosing
	// type is.
	r.Bind("field", []string{`"let"`, token.SnakeWord, `"="`, "expr", "attribute*", token.Newline}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		nameTok := children[1].(*token.Token)
		val := children[3].(*Expression)

		f := &Field{
			Kind:               FieldVirtual,
			Name:               NameDefinition{Name: Word{Text: nameTok.Text, Case: token.SnakeWord, Location: nameTok.Location}, Location: nameTok.Location},
			ReadTransform:      val,
			ExistenceCondition: literalTrue(loc),
			Location:           loc,
		}
		if attrs, _ := children[4].([]any); attrs != nil {
			for _, v := range attrs {
				f.Attributes = append(f.Attributes, *v.(*Attribute))
			}
		}

		return &fieldResult{field: f}, nil
	})

	r.Bind("field_type", []string{token.CamelWord}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		return &fieldTypeResult{typeName: children[0].(*token.Token).Text}, nil
	})
	r.Bind("field_type", []string{"inline_struct"}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		return &fieldTypeResult{inline: children[0].(*TypeDefinition)}, nil
	})
	r.Bind("field_type", []string{"inline_enum"}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		return &fieldTypeResult{inline: children[0].(*TypeDefinition)}, nil
	})
	r.Bind("field_type", []string{"inline_bits"}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		return &fieldTypeResult{inline: children[0].(*TypeDefinition)}, nil
	})

	r.Bind("inline_struct", []string{`"struct"`, `":"`, token.Newline, token.Indent, "field+", token.Dedent}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		td := &TypeDefinition{Kind: TypeStructure, Unit: UnitByte, Location: loc}
		td.Fields, td.SubTypes = collectFields(children[4].([]any))
		return td, nil
	})
	r.Bind("inline_bits", []string{`"bits"`, `":"`, token.Newline, token.Indent, "field+", token.Dedent}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		td := &TypeDefinition{Kind: TypeBits, Unit: UnitBit, Location: loc}
		td.Fields, td.SubTypes = collectFields(children[4].([]any))
		return td, nil
	})
	r.Bind("inline_enum", []string{`"enum"`, `":"`, token.Newline, token.Indent, "enum_value+", token.Dedent}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		td := &TypeDefinition{Kind: TypeEnum, Location: loc}
		for _, v := range children[4].([]any) {
			td.EnumValues = append(td.EnumValues, *v.(*EnumValue))
		}
		return td, nil
	})

	r.Bind("anon_bits_field", []string{`"bits"`, `":"`, token.Newline, token.Indent, "field+", token.Dedent}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		td := &TypeDefinition{Kind: TypeBits, Unit: UnitBit, IsAnonymous: true, Location: loc}
		td.Fields, td.SubTypes = collectFields(children[4].([]any))
		return td, nil
	})

	r.Bind("enum_value", []string{token.ShoutyWord, `"="`, "expr", token.Newline}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		nameTok := children[0].(*token.Token)
		val := children[2].(*Expression)
		return &EnumValue{
			Name:     NameDefinition{Name: Word{Text: nameTok.Text, Case: token.ShoutyWord, Location: nameTok.Location}, Location: nameTok.Location},
			Value:    val,
			Location: loc,
		}, nil
	})

	r.Bind("choice", []string{"comparison", `"?"`, "choice", `":"`, "choice"}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		cond := children[0].(*Expression)
		then := children[2].(*Expression)
		els := children[4].(*Expression)
		return &Expression{Kind: ExprFunction, Function: OpChoice, Arguments: []*Expression{cond, then, els}, Location: loc}, nil
	})

	r.Bind("comparison_tail", []string{"rel_op", "sum"}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		opTok := children[0].(*token.Token)
		right := children[1].(*Expression)
		return &comparisonTail{op: relOpFunction(opTok.Text), right: right}, nil
	})

	r.Bind("comparison", []string{"sum", "comparison_tail*"}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		left := children[0].(*Expression)
		tails, _ := children[1].([]any)
		if len(tails) == 0 {
			return left, nil
		}

		var result *Expression
		for _, v := range tails {
			ct := v.(*comparisonTail)
			cmp := &Expression{
				Kind:     ExprFunction,
				Function: ct.op,
				Arguments: []*Expression{left, ct.right},
				Location: token.Span(left.Location, ct.right.Location),
			}
			if result == nil {
				result = cmp
			} else {
				result = &Expression{
					Kind:      ExprFunction,
					Function:  OpAnd,
					Arguments: []*Expression{result, cmp},
					Location:  token.Span(result.Location, cmp.Location),
				}
			}
			left = ct.right
		}
		return result, nil
	})

	r.Bind("sum", []string{"sum", `"+"`, "term"}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		return foldBinary(children, OpAddition, loc), nil
	})
	r.Bind("sum", []string{"sum", `"-"`, "term"}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		return foldBinary(children, OpSubtraction, loc), nil
	})

	r.Bind("term", []string{`"-"`, "term"}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		opTok := children[0].(*token.Token)
		operand := children[1].(*Expression)
		zero := zeroLiteral(opTok.Location)
		return &Expression{Kind: ExprFunction, Function: OpSubtraction, Arguments: []*Expression{zero, operand}, Location: loc}, nil
	})
	r.Bind("term", []string{`"+"`, "term"}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		opTok := children[0].(*token.Token)
		operand := children[1].(*Expression)
		zero := zeroLiteral(opTok.Location)
		return &Expression{Kind: ExprFunction, Function: OpAddition, Arguments: []*Expression{zero, operand}, Location: loc}, nil
	})

	r.Bind("primary", []string{token.Number}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		return newIntLiteral(children[0].(*token.Token))
	})
	r.Bind("primary", []string{token.String}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		return newStringLiteral(children[0].(*token.Token))
	})
	r.Bind("primary", []string{token.BooleanConstant}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		return newBoolLiteral(children[0].(*token.Token))
	})
	r.Bind("primary", []string{token.SnakeWord}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		tok := children[0].(*token.Token)
		return &Expression{Kind: ExprReference, Reference: &Reference{Path: []string{tok.Text}, Location: tok.Location}, Location: tok.Location}, nil
	})
	r.Bind("primary", []string{token.ShoutyWord}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		tok := children[0].(*token.Token)
		return &Expression{Kind: ExprReference, Reference: &Reference{Path: []string{tok.Text}, Location: tok.Location}, Location: tok.Location}, nil
	})
	r.Bind("primary", []string{`"("`, "expr", `")"`}, func(loc token.Location, children []any, bits *anonymousBitsCounter) (any, error) {
		return children[1].(*Expression), nil
	})

	return r
}

// foldBinary implements the left-fold described in §4.5 for a single step
// of a "sum -> sum op term" reduction: acc = Function(op, [acc, right]).
// Because the grammar production itself is left-recursive, each reduction
// already receives the accumulator built by the previous one, so a single
// step here is all that is needed -- the recursion in the grammar does the
// rest of the folding.
func foldBinary(children []any, op string, loc token.Location) *Expression {
	left := children[0].(*Expression)
	right := children[2].(*Expression)
	return &Expression{Kind: ExprFunction, Function: op, Arguments: []*Expression{left, right}, Location: loc}
}
