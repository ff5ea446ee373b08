// Package ir defines the intermediate representation a compiled format
// definition is translated into, and the grammar-directed Builder that
// performs that translation over a parse.Tree.
package ir

import (
	"math/big"

	"github.com/dekarrin/embossfe/token"
)

// Documentation is a run of "--" comment lines attached to the definition
// that immediately follows them.
type Documentation struct {
	Text     string
	Location token.Location
}

// Word is a single identifier occurrence, tagged with the lexical case it
// was written in (SnakeWord, CamelWord, or ShoutyWord) so that later passes
// can enforce the naming convention appropriate to what it names.
type Word struct {
	Text     string
	Case     string
	Location token.Location
}

// NameDefinition introduces a new name: a field, a type, an enum value, or
// a runtime parameter.
type NameDefinition struct {
	Name     Word
	Location token.Location
}

// Reference is a (possibly dotted) reference to a previously defined name,
// e.g. "header.length" or "$size_in_bytes".
type Reference struct {
	Path     []string
	Location token.Location
}

// ExpressionKind tags the shape of an Expression node.
type ExpressionKind int

const (
	ExprConstant ExpressionKind = iota
	ExprReference
	ExprFunction
	ExprBuiltin
)

// Expression is an arithmetic/boolean/choice expression, as used in field
// array sizes, attribute values, and existence conditions.
//
// Constant expressions carry an integer, boolean, or string value directly. Function
// expressions represent every n-ary operator (including the binary
// arithmetic/comparison/logical operators, unary +/- as a synthetic
// two-argument Function per §4.5, and the ternary choice operator) so that
// a single field, Arguments, covers every operator's operands uniformly.
type Expression struct {
	Kind        ExpressionKind
	IntValue    *big.Int // set when Kind == ExprConstant and the constant is an integer
	BoolValue   *bool    // set when Kind == ExprConstant and the constant is a boolean
	StringValue *string  // set when Kind == ExprConstant and the constant is a string
	Builtin     string   // set when Kind == ExprBuiltin, e.g. "$size_in_bytes"
	Reference   *Reference
	Function    string // operator name, set when Kind == ExprFunction
	Arguments   []*Expression
	Location    token.Location
}

// RuntimeParameter is a `(param_name: Type)` declaration on a structure or
// external, giving callers a way to parameterize a type's layout.
type RuntimeParameter struct {
	Name     NameDefinition
	Type     string
	Location token.Location
}

// Attribute is a `[name = expr]` or `[name]` annotation attached to a
// module, type, or field.
type Attribute struct {
	Name       string
	Value      *Expression // nil for a bare boolean attribute, e.g. [is_signed]
	BackTicked bool
	Location   token.Location
}

// FieldKind distinguishes an ordinary data field from a virtual field
// (computed, occupying no space) and from a synthesized auxiliary field
// produced for an inline anonymous bit-block.
type FieldKind int

const (
	FieldData FieldKind = iota
	FieldVirtual
	FieldAnonymousBits
)

// FieldLocation is a field's `start [+size]` location-expression: the byte
// or bit offset a data field begins at and the span it occupies. Virtual
// fields (FieldVirtual) have no FieldLocation; they are computed, not laid
// out.
type FieldLocation struct {
	Start *Expression
	Size  *Expression
}

// Field is one member of a structure or bits type.
type Field struct {
	Kind              FieldKind
	Name              NameDefinition
	TypeName          string // resolved or synthesized inline-type name
	FieldLocation     *FieldLocation // nil for FieldVirtual
	Abbreviation      *Word          // nil if the field declared no "(abbr)"
	ReadTransform     *Expression    // set for FieldVirtual; the computed value's expression
	ArraySizes        []*Expression
	ExistenceCondition *Expression
	IsDisjointFromParent bool
	Attributes        []Attribute
	Documentation     []Documentation
	Location          token.Location
}

// TypeDefinitionKind distinguishes the four kinds of definable types.
type TypeDefinitionKind int

const (
	TypeStructure TypeDefinitionKind = iota
	TypeBits
	TypeEnum
	TypeExternal
)

// AddressableUnit distinguishes a byte-addressed structure from a
// bit-addressed bits type (§3's "addressable unit = BYTE or BIT").
type AddressableUnit int

const (
	UnitByte AddressableUnit = iota
	UnitBit
)

// EnumValue is one `NAME = constant` line inside an enum body.
type EnumValue struct {
	Name          NameDefinition
	Value         *Expression
	Documentation []Documentation
	Location      token.Location
}

// TypeDefinition is one `struct`, `bits`, `enum`, or `external` definition.
type TypeDefinition struct {
	Kind              TypeDefinitionKind
	Name              NameDefinition
	Unit              AddressableUnit  // meaningful for Kind == TypeStructure || TypeBits
	RuntimeParameters []RuntimeParameter
	Fields            []Field          // Kind == TypeStructure || TypeBits
	EnumValues        []EnumValue      // Kind == TypeEnum
	SubTypes          []TypeDefinition // types synthesized from this type's inline field definitions
	Attributes        []Attribute
	Documentation     []Documentation
	IsAnonymous       bool // synthesized for an inline bit-block, not user-named
	Location          token.Location
}

// Import is an `import "path" as name` line.
type Import struct {
	Path     string
	LocalName string
	Location token.Location
}

// Module is the root of a compiled format definition file's IR: its
// imports (including any synthesized prelude import), top-level type
// definitions, and module-level attributes/documentation.
type Module struct {
	SourceFile    string
	Imports       []Import
	Types         []TypeDefinition
	Attributes    []Attribute
	Documentation []Documentation
}
