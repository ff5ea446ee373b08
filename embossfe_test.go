package embossfe

import (
	"testing"

	"github.com/dekarrin/embossfe/ir"
	"github.com/dekarrin/embossfe/parse"
	"github.com/dekarrin/embossfe/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, source string) *ir.Module {
	t.Helper()
	tables, err := NewParser()
	require.NoError(t, err)

	res, err := Compile(source, "test.emb", tables, ir.DefaultRegistry())
	require.NoError(t, err)
	return res.Module
}

func TestCompile_enumValuesGetDecimalStringConstants(t *testing.T) {
	mod := compile(t, "enum E:\n  A = 0b0111_1111\n  B = 0x10\n")

	require.Len(t, mod.Types, 1)
	e := mod.Types[0]
	require.Len(t, e.EnumValues, 2)
	assert.Equal(t, "127", e.EnumValues[0].Value.IntValue.String())
	assert.Equal(t, "16", e.EnumValues[1].Value.IntValue.String())
}

func TestCompile_conditionalFieldGetsDisjointExistenceCondition(t *testing.T) {
	mod := compile(t, "struct S:\n  0 [+1]  x  UInt if cond\n")

	require.Len(t, mod.Types, 1)
	s := mod.Types[0]
	require.Len(t, s.Fields, 1)
	f := s.Fields[0]
	assert.Equal(t, "x", f.Name.Name.Text)

	cond := f.ExistenceCondition
	require.NotNil(t, cond)
	assert.Equal(t, ir.ExprReference, cond.Kind)
	require.NotNil(t, cond.Reference)
	assert.Equal(t, []string{"cond"}, cond.Reference.Path)
	assert.True(t, cond.Location.IsDisjointFromParent)
}

func TestCompile_unconditionalFieldDefaultsToLiteralTrue(t *testing.T) {
	mod := compile(t, "struct S:\n  0 [+1]  x  UInt\n")

	f := mod.Types[0].Fields[0]
	cond := f.ExistenceCondition
	require.NotNil(t, cond)
	assert.Equal(t, ir.ExprConstant, cond.Kind)
	require.NotNil(t, cond.BoolValue)
	assert.True(t, *cond.BoolValue)
	assert.Equal(t, f.Location, cond.Location)
}

func TestCompile_leftAssociativeSubtractionChain(t *testing.T) {
	mod := compile(t, "struct S:\n  0 [+1]  x  UInt [a = 1 - 2 - 3]\n")

	attr := mod.Types[0].Fields[0].Attributes[0]
	outer := attr.Value
	require.Equal(t, ir.ExprFunction, outer.Kind)
	assert.Equal(t, ir.OpSubtraction, outer.Function)
	require.Len(t, outer.Arguments, 2)

	inner := outer.Arguments[0]
	assert.Equal(t, ir.ExprFunction, inner.Kind)
	assert.Equal(t, ir.OpSubtraction, inner.Function)
	assert.Equal(t, "1", inner.Arguments[0].IntValue.String())
	assert.Equal(t, "2", inner.Arguments[1].IntValue.String())
	assert.Equal(t, "3", outer.Arguments[1].IntValue.String())
}

func TestCompile_chainedComparisonExpandsToAnd(t *testing.T) {
	mod := compile(t, "struct S:\n  0 [+1]  x  UInt [a = 0 <= b <= 64]\n")

	v := mod.Types[0].Fields[0].Attributes[0].Value
	require.Equal(t, ir.ExprFunction, v.Kind)
	assert.Equal(t, ir.OpAnd, v.Function)
	require.Len(t, v.Arguments, 2)

	left := v.Arguments[0]
	right := v.Arguments[1]
	assert.Equal(t, ir.OpLessOrEqual, left.Function)
	assert.Equal(t, ir.OpLessOrEqual, right.Function)
	assert.Equal(t, "b", right.Arguments[0].Reference.Path[0])
	assert.Equal(t, "b", left.Arguments[1].Reference.Path[0])
}

func TestCompile_unaryMinusYieldsSyntheticZero(t *testing.T) {
	mod := compile(t, "struct S:\n  0 [+1]  x  UInt [a = -y]\n")

	v := mod.Types[0].Fields[0].Attributes[0].Value
	require.Equal(t, ir.ExprFunction, v.Kind)
	assert.Equal(t, ir.OpSubtraction, v.Function)
	require.Len(t, v.Arguments, 2)

	zero := v.Arguments[0]
	assert.Equal(t, "0", zero.IntValue.String())
	assert.True(t, zero.Location.IsSynthetic)
	assert.Equal(t, zero.Location.Start, zero.Location.End)
}

func TestCompile_inlineStructFieldSynthesizesCamelCaseSubtype(t *testing.T) {
	mod := compile(t, "struct S:\n  0 [+1]  header struct:\n    0 [+1]  length  UInt\n")

	s := mod.Types[0]
	require.Len(t, s.Fields, 1)
	f := s.Fields[0]
	assert.Equal(t, "header", f.Name.Name.Text)
	assert.Equal(t, "Header", f.TypeName)

	require.Len(t, s.SubTypes, 1)
	sub := s.SubTypes[0]
	assert.Equal(t, "Header", sub.Name.Name.Text)
	assert.Equal(t, ir.TypeStructure, sub.Kind)
	require.Len(t, sub.Fields, 1)
	assert.Equal(t, "length", sub.Fields[0].Name.Name.Text)
}

func TestCompile_anonymousBitsFieldGetsReservedNameAndIsMarkedAnonymous(t *testing.T) {
	mod := compile(t, "struct S:\n  0 [+1]  bits:\n    0 [+1]  flag  UInt\n")

	s := mod.Types[0]
	require.Len(t, s.Fields, 1)
	f := s.Fields[0]
	assert.Equal(t, ir.FieldAnonymousBits, f.Kind)
	assert.Equal(t, "emboss_reserved_anonymous_field_0", f.Name.Name.Text)
	assert.Equal(t, "emboss_reserved_anonymous_field_0", f.TypeName)

	require.Len(t, s.SubTypes, 1)
	sub := s.SubTypes[0]
	assert.True(t, sub.IsAnonymous)
	assert.Equal(t, ir.TypeBits, sub.Kind)
	assert.Equal(t, ir.UnitBit, sub.Unit)
	require.Len(t, sub.Fields, 1)
	assert.Equal(t, "flag", sub.Fields[0].Name.Name.Text)
}

func TestCompile_modulePrependsPreludeImport(t *testing.T) {
	mod := compile(t, "struct S:\n  0 [+1]  x  UInt\n")

	require.Len(t, mod.Imports, 1)
	assert.Equal(t, "", mod.Imports[0].Path)
	assert.Equal(t, "", mod.Imports[0].LocalName)
}

func TestModule_marshalsToJSONRoundTrip(t *testing.T) {
	mod := compile(t, "struct S:\n  0 [+1]  x  UInt [a = 1 - 2]\n")

	data, err := mod.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"source_file"`)

	var decoded ir.Module
	require.NoError(t, decoded.UnmarshalJSON(data))
	assert.Equal(t, mod.Types[0].Name.Name.Text, decoded.Types[0].Name.Name.Text)
	assert.Equal(t, mod.Types[0].Fields[0].Attributes[0].Value.Function, decoded.Types[0].Fields[0].Attributes[0].Value.Function)
	assert.Equal(t, mod.Types[0].Fields[0].FieldLocation.Start.IntValue.String(), decoded.Types[0].Fields[0].FieldLocation.Start.IntValue.String())
}

// TestCompile_fieldLocationCapturesStartAndSize reproduces spec §8 scenario
// 2's canonical field syntax: a location-expression giving a field's start
// offset and size.
func TestCompile_fieldLocationCapturesStartAndSize(t *testing.T) {
	mod := compile(t, "struct Foo:\n  0 [+1]  field  UInt\n")

	f := mod.Types[0].Fields[0]
	require.NotNil(t, f.FieldLocation)
	assert.Equal(t, "0", f.FieldLocation.Start.IntValue.String())
	assert.Equal(t, "1", f.FieldLocation.Size.IntValue.String())
	assert.Equal(t, "field", f.Name.Name.Text)
	assert.Equal(t, "UInt", f.TypeName)
}

// TestCompile_fieldAbbreviationIsCaptured exercises the parenthesized
// abbreviation grammar added alongside the location-expression fix.
func TestCompile_fieldAbbreviationIsCaptured(t *testing.T) {
	mod := compile(t, "struct S:\n  0 [+1]  x  UInt (x_abbr)\n")

	f := mod.Types[0].Fields[0]
	require.NotNil(t, f.Abbreviation)
	assert.Equal(t, "x_abbr", f.Abbreviation.Text)
}

// TestCompile_virtualFieldBuildsReadTransform exercises the "let" virtual
// field production: a computed field with a read_transform expression and
// no field_location.
func TestCompile_virtualFieldBuildsReadTransform(t *testing.T) {
	mod := compile(t, "struct S:\n  0 [+1]  x  UInt\n  let y = x + 1\n")

	require.Len(t, mod.Types[0].Fields, 2)
	v := mod.Types[0].Fields[1]
	assert.Equal(t, ir.FieldVirtual, v.Kind)
	assert.Equal(t, "y", v.Name.Name.Text)
	assert.Nil(t, v.FieldLocation)
	require.NotNil(t, v.ReadTransform)
	assert.Equal(t, ir.ExprFunction, v.ReadTransform.Kind)
	assert.Equal(t, ir.OpAddition, v.ReadTransform.Function)
}

// TestCompile_missingFieldNameFailsToParse reproduces spec §8 scenario 3: a
// location-expression and type with no field name is a syntax error, not a
// silently-accepted anonymous field.
func TestCompile_missingFieldNameFailsToParse(t *testing.T) {
	tables, err := NewParser()
	require.NoError(t, err)

	_, err = Compile("struct LogFileStatus:\n  0 [+4]    UInt\n", "test.emb", tables, ir.DefaultRegistry())
	require.Error(t, err)

	synErr, ok := err.(*parse.SyntaxError)
	require.True(t, ok, "expected a *parse.SyntaxError, got %T", err)
	assert.Contains(t, synErr.Expected, token.SnakeWord)
}
