package ir

// Hand-maintained to the shape easyjson's generator produces (see
// github.com/mailru/easyjson), so that the one place this front end needs a
// JSON-compatible view of its output (§6: "IR out ... serialized form is a
// JSON-compatible representation with field names matching the IR schema")
// avoids the reflection-based encoding/json path the rest of the pipeline
// never otherwise pays for. Field names below match the IR schema in
// ir/types.go exactly.

import (
	"math/big"

	"github.com/dekarrin/embossfe/token"
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

func writePosition(w *jwriter.Writer, p token.Position) {
	w.RawByte('{')
	w.RawString(`"line":`)
	w.Int(p.Line)
	w.RawString(`,"column":`)
	w.Int(p.Column)
	w.RawByte('}')
}

func readPosition(l *jlexer.Lexer) token.Position {
	var p token.Position
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "line":
			p.Line = l.Int()
		case "column":
			p.Column = l.Int()
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
	return p
}

func writeLocation(w *jwriter.Writer, loc token.Location) {
	w.RawByte('{')
	w.RawString(`"start":`)
	writePosition(w, loc.Start)
	w.RawString(`,"end":`)
	writePosition(w, loc.End)
	w.RawString(`,"is_synthetic":`)
	w.Bool(loc.IsSynthetic)
	w.RawString(`,"is_disjoint_from_parent":`)
	w.Bool(loc.IsDisjointFromParent)
	w.RawByte('}')
}

func readLocation(l *jlexer.Lexer) token.Location {
	var loc token.Location
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "start":
			loc.Start = readPosition(l)
		case "end":
			loc.End = readPosition(l)
		case "is_synthetic":
			loc.IsSynthetic = l.Bool()
		case "is_disjoint_from_parent":
			loc.IsDisjointFromParent = l.Bool()
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
	return loc
}

func writeWord(w *jwriter.Writer, wd Word) {
	w.RawByte('{')
	w.RawString(`"text":`)
	w.String(wd.Text)
	w.RawString(`,"case":`)
	w.String(wd.Case)
	w.RawString(`,"location":`)
	writeLocation(w, wd.Location)
	w.RawByte('}')
}

func readWord(l *jlexer.Lexer) Word {
	var wd Word
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "text":
			wd.Text = l.String()
		case "case":
			wd.Case = l.String()
		case "location":
			wd.Location = readLocation(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
	return wd
}

func writeNameDefinition(w *jwriter.Writer, nd NameDefinition) {
	w.RawByte('{')
	w.RawString(`"name":`)
	writeWord(w, nd.Name)
	w.RawString(`,"location":`)
	writeLocation(w, nd.Location)
	w.RawByte('}')
}

func readNameDefinition(l *jlexer.Lexer) NameDefinition {
	var nd NameDefinition
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "name":
			nd.Name = readWord(l)
		case "location":
			nd.Location = readLocation(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
	return nd
}

func writeStringSlice(w *jwriter.Writer, ss []string) {
	w.RawByte('[')
	for i, s := range ss {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(s)
	}
	w.RawByte(']')
}

func readStringSlice(l *jlexer.Lexer) []string {
	var out []string
	l.Delim('[')
	for !l.IsDelim(']') {
		out = append(out, l.String())
		l.WantComma()
	}
	l.Delim(']')
	return out
}

func writeReference(w *jwriter.Writer, ref *Reference) {
	if ref == nil {
		w.RawString("null")
		return
	}
	w.RawByte('{')
	w.RawString(`"path":`)
	writeStringSlice(w, ref.Path)
	w.RawString(`,"location":`)
	writeLocation(w, ref.Location)
	w.RawByte('}')
}

func readReference(l *jlexer.Lexer) *Reference {
	if l.IsNull() {
		l.Skip()
		return nil
	}
	ref := &Reference{}
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "path":
			ref.Path = readStringSlice(l)
		case "location":
			ref.Location = readLocation(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
	return ref
}

func writeExpression(w *jwriter.Writer, e *Expression) {
	if e == nil {
		w.RawString("null")
		return
	}
	w.RawByte('{')
	w.RawString(`"kind":`)
	w.Int(int(e.Kind))
	if e.IntValue != nil {
		w.RawString(`,"int_value":`)
		w.String(e.IntValue.String())
	}
	if e.BoolValue != nil {
		w.RawString(`,"bool_value":`)
		w.Bool(*e.BoolValue)
	}
	if e.StringValue != nil {
		w.RawString(`,"string_value":`)
		w.String(*e.StringValue)
	}
	if e.Builtin != "" {
		w.RawString(`,"builtin":`)
		w.String(e.Builtin)
	}
	if e.Reference != nil {
		w.RawString(`,"reference":`)
		writeReference(w, e.Reference)
	}
	if e.Function != "" {
		w.RawString(`,"function":`)
		w.String(e.Function)
	}
	w.RawString(`,"arguments":[`)
	for i, a := range e.Arguments {
		if i > 0 {
			w.RawByte(',')
		}
		writeExpression(w, a)
	}
	w.RawByte(']')
	w.RawString(`,"location":`)
	writeLocation(w, e.Location)
	w.RawByte('}')
}

func readExpression(l *jlexer.Lexer) *Expression {
	if l.IsNull() {
		l.Skip()
		return nil
	}
	e := &Expression{}
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "kind":
			e.Kind = ExpressionKind(l.Int())
		case "int_value":
			s := l.String()
			n := new(big.Int)
			n.SetString(s, 10)
			e.IntValue = n
		case "bool_value":
			b := l.Bool()
			e.BoolValue = &b
		case "string_value":
			s := l.String()
			e.StringValue = &s
		case "builtin":
			e.Builtin = l.String()
		case "reference":
			e.Reference = readReference(l)
		case "function":
			e.Function = l.String()
		case "arguments":
			l.Delim('[')
			for !l.IsDelim(']') {
				e.Arguments = append(e.Arguments, readExpression(l))
				l.WantComma()
			}
			l.Delim(']')
		case "location":
			e.Location = readLocation(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
	return e
}

func writeDocumentationSlice(w *jwriter.Writer, docs []Documentation) {
	w.RawByte('[')
	for i, d := range docs {
		if i > 0 {
			w.RawByte(',')
		}
		w.RawByte('{')
		w.RawString(`"text":`)
		w.String(d.Text)
		w.RawString(`,"location":`)
		writeLocation(w, d.Location)
		w.RawByte('}')
	}
	w.RawByte(']')
}

func readDocumentationSlice(l *jlexer.Lexer) []Documentation {
	var out []Documentation
	l.Delim('[')
	for !l.IsDelim(']') {
		var d Documentation
		l.Delim('{')
		for !l.IsDelim('}') {
			key := l.UnsafeFieldName(false)
			l.WantColon()
			switch key {
			case "text":
				d.Text = l.String()
			case "location":
				d.Location = readLocation(l)
			default:
				l.SkipRecursive()
			}
			l.WantComma()
		}
		l.Delim('}')
		out = append(out, d)
		l.WantComma()
	}
	l.Delim(']')
	return out
}

func writeAttributeSlice(w *jwriter.Writer, attrs []Attribute) {
	w.RawByte('[')
	for i, a := range attrs {
		if i > 0 {
			w.RawByte(',')
		}
		w.RawByte('{')
		w.RawString(`"name":`)
		w.String(a.Name)
		w.RawString(`,"value":`)
		writeExpression(w, a.Value)
		w.RawString(`,"back_ticked":`)
		w.Bool(a.BackTicked)
		w.RawString(`,"location":`)
		writeLocation(w, a.Location)
		w.RawByte('}')
	}
	w.RawByte(']')
}

func readAttributeSlice(l *jlexer.Lexer) []Attribute {
	var out []Attribute
	l.Delim('[')
	for !l.IsDelim(']') {
		var a Attribute
		l.Delim('{')
		for !l.IsDelim('}') {
			key := l.UnsafeFieldName(false)
			l.WantColon()
			switch key {
			case "name":
				a.Name = l.String()
			case "value":
				a.Value = readExpression(l)
			case "back_ticked":
				a.BackTicked = l.Bool()
			case "location":
				a.Location = readLocation(l)
			default:
				l.SkipRecursive()
			}
			l.WantComma()
		}
		l.Delim('}')
		out = append(out, a)
		l.WantComma()
	}
	l.Delim(']')
	return out
}

func writeExpressionSlice(w *jwriter.Writer, exprs []*Expression) {
	w.RawByte('[')
	for i, e := range exprs {
		if i > 0 {
			w.RawByte(',')
		}
		writeExpression(w, e)
	}
	w.RawByte(']')
}

func readExpressionSlice(l *jlexer.Lexer) []*Expression {
	var out []*Expression
	l.Delim('[')
	for !l.IsDelim(']') {
		out = append(out, readExpression(l))
		l.WantComma()
	}
	l.Delim(']')
	return out
}

func writeFieldLocation(w *jwriter.Writer, fl *FieldLocation) {
	if fl == nil {
		w.RawString("null")
		return
	}
	w.RawByte('{')
	w.RawString(`"start":`)
	writeExpression(w, fl.Start)
	w.RawString(`,"size":`)
	writeExpression(w, fl.Size)
	w.RawByte('}')
}

func readFieldLocation(l *jlexer.Lexer) *FieldLocation {
	if l.IsNull() {
		l.Skip()
		return nil
	}
	fl := &FieldLocation{}
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "start":
			fl.Start = readExpression(l)
		case "size":
			fl.Size = readExpression(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
	return fl
}

func writeWordPtr(w *jwriter.Writer, wd *Word) {
	if wd == nil {
		w.RawString("null")
		return
	}
	writeWord(w, *wd)
}

func readWordPtr(l *jlexer.Lexer) *Word {
	if l.IsNull() {
		l.Skip()
		return nil
	}
	wd := readWord(l)
	return &wd
}

func writeField(w *jwriter.Writer, f Field) {
	w.RawByte('{')
	w.RawString(`"kind":`)
	w.Int(int(f.Kind))
	w.RawString(`,"name":`)
	writeNameDefinition(w, f.Name)
	w.RawString(`,"type_name":`)
	w.String(f.TypeName)
	w.RawString(`,"field_location":`)
	writeFieldLocation(w, f.FieldLocation)
	w.RawString(`,"abbreviation":`)
	writeWordPtr(w, f.Abbreviation)
	w.RawString(`,"read_transform":`)
	writeExpression(w, f.ReadTransform)
	w.RawString(`,"array_sizes":`)
	writeExpressionSlice(w, f.ArraySizes)
	w.RawString(`,"existence_condition":`)
	writeExpression(w, f.ExistenceCondition)
	w.RawString(`,"is_disjoint_from_parent":`)
	w.Bool(f.IsDisjointFromParent)
	w.RawString(`,"attributes":`)
	writeAttributeSlice(w, f.Attributes)
	w.RawString(`,"documentation":`)
	writeDocumentationSlice(w, f.Documentation)
	w.RawString(`,"location":`)
	writeLocation(w, f.Location)
	w.RawByte('}')
}

func readField(l *jlexer.Lexer) Field {
	var f Field
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "kind":
			f.Kind = FieldKind(l.Int())
		case "name":
			f.Name = readNameDefinition(l)
		case "type_name":
			f.TypeName = l.String()
		case "field_location":
			f.FieldLocation = readFieldLocation(l)
		case "abbreviation":
			f.Abbreviation = readWordPtr(l)
		case "read_transform":
			f.ReadTransform = readExpression(l)
		case "array_sizes":
			f.ArraySizes = readExpressionSlice(l)
		case "existence_condition":
			f.ExistenceCondition = readExpression(l)
		case "is_disjoint_from_parent":
			f.IsDisjointFromParent = l.Bool()
		case "attributes":
			f.Attributes = readAttributeSlice(l)
		case "documentation":
			f.Documentation = readDocumentationSlice(l)
		case "location":
			f.Location = readLocation(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
	return f
}

func writeEnumValueSlice(w *jwriter.Writer, vals []EnumValue) {
	w.RawByte('[')
	for i, v := range vals {
		if i > 0 {
			w.RawByte(',')
		}
		w.RawByte('{')
		w.RawString(`"name":`)
		writeNameDefinition(w, v.Name)
		w.RawString(`,"value":`)
		writeExpression(w, v.Value)
		w.RawString(`,"documentation":`)
		writeDocumentationSlice(w, v.Documentation)
		w.RawString(`,"location":`)
		writeLocation(w, v.Location)
		w.RawByte('}')
	}
	w.RawByte(']')
}

func readEnumValueSlice(l *jlexer.Lexer) []EnumValue {
	var out []EnumValue
	l.Delim('[')
	for !l.IsDelim(']') {
		var v EnumValue
		l.Delim('{')
		for !l.IsDelim('}') {
			key := l.UnsafeFieldName(false)
			l.WantColon()
			switch key {
			case "name":
				v.Name = readNameDefinition(l)
			case "value":
				v.Value = readExpression(l)
			case "documentation":
				v.Documentation = readDocumentationSlice(l)
			case "location":
				v.Location = readLocation(l)
			default:
				l.SkipRecursive()
			}
			l.WantComma()
		}
		l.Delim('}')
		out = append(out, v)
		l.WantComma()
	}
	l.Delim(']')
	return out
}

func writeRuntimeParameterSlice(w *jwriter.Writer, params []RuntimeParameter) {
	w.RawByte('[')
	for i, p := range params {
		if i > 0 {
			w.RawByte(',')
		}
		w.RawByte('{')
		w.RawString(`"name":`)
		writeNameDefinition(w, p.Name)
		w.RawString(`,"type":`)
		w.String(p.Type)
		w.RawString(`,"location":`)
		writeLocation(w, p.Location)
		w.RawByte('}')
	}
	w.RawByte(']')
}

func readRuntimeParameterSlice(l *jlexer.Lexer) []RuntimeParameter {
	var out []RuntimeParameter
	l.Delim('[')
	for !l.IsDelim(']') {
		var p RuntimeParameter
		l.Delim('{')
		for !l.IsDelim('}') {
			key := l.UnsafeFieldName(false)
			l.WantColon()
			switch key {
			case "name":
				p.Name = readNameDefinition(l)
			case "type":
				p.Type = l.String()
			case "location":
				p.Location = readLocation(l)
			default:
				l.SkipRecursive()
			}
			l.WantComma()
		}
		l.Delim('}')
		out = append(out, p)
		l.WantComma()
	}
	l.Delim(']')
	return out
}

func writeFieldSlice(w *jwriter.Writer, fields []Field) {
	w.RawByte('[')
	for i, f := range fields {
		if i > 0 {
			w.RawByte(',')
		}
		writeField(w, f)
	}
	w.RawByte(']')
}

func readFieldSlice(l *jlexer.Lexer) []Field {
	var out []Field
	l.Delim('[')
	for !l.IsDelim(']') {
		out = append(out, readField(l))
		l.WantComma()
	}
	l.Delim(']')
	return out
}

func writeTypeDefinition(w *jwriter.Writer, td TypeDefinition) {
	w.RawByte('{')
	w.RawString(`"kind":`)
	w.Int(int(td.Kind))
	w.RawString(`,"unit":`)
	w.Int(int(td.Unit))
	w.RawString(`,"name":`)
	writeNameDefinition(w, td.Name)
	w.RawString(`,"runtime_parameters":`)
	writeRuntimeParameterSlice(w, td.RuntimeParameters)
	w.RawString(`,"fields":`)
	writeFieldSlice(w, td.Fields)
	w.RawString(`,"enum_values":`)
	writeEnumValueSlice(w, td.EnumValues)
	w.RawString(`,"sub_types":`)
	writeTypeDefinitionSlice(w, td.SubTypes)
	w.RawString(`,"attributes":`)
	writeAttributeSlice(w, td.Attributes)
	w.RawString(`,"documentation":`)
	writeDocumentationSlice(w, td.Documentation)
	w.RawString(`,"is_anonymous":`)
	w.Bool(td.IsAnonymous)
	w.RawString(`,"location":`)
	writeLocation(w, td.Location)
	w.RawByte('}')
}

func readTypeDefinition(l *jlexer.Lexer) TypeDefinition {
	var td TypeDefinition
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "kind":
			td.Kind = TypeDefinitionKind(l.Int())
		case "unit":
			td.Unit = AddressableUnit(l.Int())
		case "name":
			td.Name = readNameDefinition(l)
		case "runtime_parameters":
			td.RuntimeParameters = readRuntimeParameterSlice(l)
		case "fields":
			td.Fields = readFieldSlice(l)
		case "enum_values":
			td.EnumValues = readEnumValueSlice(l)
		case "sub_types":
			td.SubTypes = readTypeDefinitionSlice(l)
		case "attributes":
			td.Attributes = readAttributeSlice(l)
		case "documentation":
			td.Documentation = readDocumentationSlice(l)
		case "is_anonymous":
			td.IsAnonymous = l.Bool()
		case "location":
			td.Location = readLocation(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
	return td
}

func writeImportSlice(w *jwriter.Writer, imports []Import) {
	w.RawByte('[')
	for i, imp := range imports {
		if i > 0 {
			w.RawByte(',')
		}
		w.RawByte('{')
		w.RawString(`"path":`)
		w.String(imp.Path)
		w.RawString(`,"local_name":`)
		w.String(imp.LocalName)
		w.RawString(`,"location":`)
		writeLocation(w, imp.Location)
		w.RawByte('}')
	}
	w.RawByte(']')
}

func readImportSlice(l *jlexer.Lexer) []Import {
	var out []Import
	l.Delim('[')
	for !l.IsDelim(']') {
		var imp Import
		l.Delim('{')
		for !l.IsDelim('}') {
			key := l.UnsafeFieldName(false)
			l.WantColon()
			switch key {
			case "path":
				imp.Path = l.String()
			case "local_name":
				imp.LocalName = l.String()
			case "location":
				imp.Location = readLocation(l)
			default:
				l.SkipRecursive()
			}
			l.WantComma()
		}
		l.Delim('}')
		out = append(out, imp)
		l.WantComma()
	}
	l.Delim(']')
	return out
}

func writeTypeDefinitionSlice(w *jwriter.Writer, types []TypeDefinition) {
	w.RawByte('[')
	for i, td := range types {
		if i > 0 {
			w.RawByte(',')
		}
		writeTypeDefinition(w, td)
	}
	w.RawByte(']')
}

func readTypeDefinitionSlice(l *jlexer.Lexer) []TypeDefinition {
	var out []TypeDefinition
	l.Delim('[')
	for !l.IsDelim(']') {
		out = append(out, readTypeDefinition(l))
		l.WantComma()
	}
	l.Delim(']')
	return out
}

// MarshalEasyJSON supports easyjson.Marshaler.
func (m Module) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	w.RawString(`"source_file":`)
	w.String(m.SourceFile)
	w.RawString(`,"imports":`)
	writeImportSlice(w, m.Imports)
	w.RawString(`,"types":`)
	writeTypeDefinitionSlice(w, m.Types)
	w.RawString(`,"attributes":`)
	writeAttributeSlice(w, m.Attributes)
	w.RawString(`,"documentation":`)
	writeDocumentationSlice(w, m.Documentation)
	w.RawByte('}')
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler.
func (m *Module) UnmarshalEasyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "source_file":
			m.SourceFile = l.String()
		case "imports":
			m.Imports = readImportSlice(l)
		case "types":
			m.Types = readTypeDefinitionSlice(l)
		case "attributes":
			m.Attributes = readAttributeSlice(l)
		case "documentation":
			m.Documentation = readDocumentationSlice(l)
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

// MarshalJSON supports json.Marshaler, delegating to the easyjson writer so
// that callers outside this package (or using encoding/json directly) get
// the same field-name mapping as MarshalEasyJSON without a reflection pass.
func (m Module) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	m.MarshalEasyJSON(&w)
	return w.Buffer.BuildBytes(), w.Error
}

// UnmarshalJSON supports json.Unmarshaler.
func (m *Module) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	m.UnmarshalEasyJSON(&r)
	return r.Error()
}
