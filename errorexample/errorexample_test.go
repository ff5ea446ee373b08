package errorexample

import (
	"strings"
	"testing"

	"github.com/dekarrin/embossfe/grammar"
	"github.com/dekarrin/embossfe/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rule(ch byte) string {
	return strings.Repeat(string(ch), ruleWidth)
}

func fieldGrammar() *grammar.Grammar {
	g := grammar.New()
	g.Start = "struct"
	g.AddTerm("SnakeWord", "a snake_case word")
	g.AddRule("struct", []string{`"struct"`, "SnakeWord", `":"`})
	return g
}

func TestLoad_parsesRecordsAndExamples(t *testing.T) {
	doc := "Intro prose, ignored.\n" +
		rule('=') + "\n" +
		"Merr_bad_field_name A field name must be a snake_case word.\n" +
		rule('-') + "\n" +
		"struct $ERR Foo:\n"

	corpus, err := Load(doc, "errors.txt")
	require.NoError(t, err)
	require.Len(t, corpus.Examples, 1)

	ex := corpus.Examples[0]
	assert.Equal(t, "Merr_bad_field_name", ex.Code)
	require.True(t, ex.ErrIndex >= 0)
	assert.Equal(t, "CamelWord", ex.Tokens[ex.ErrIndex].SymbolName)
}

func TestLoad_missingErrMarkerIsAnError(t *testing.T) {
	doc := "Intro.\n" + rule('=') + "\n" +
		"Merr_x message\n" + rule('-') + "\n" +
		"struct Foo:\n"

	_, err := Load(doc, "errors.txt")
	assert.Error(t, err)
}

func TestLoad_wildcardAny(t *testing.T) {
	doc := "Intro.\n" + rule('=') + "\n" +
		"Merr_anything message\n" + rule('-') + "\n" +
		"struct $ERR $ANY\n"

	corpus, err := Load(doc, "errors.txt")
	require.NoError(t, err)
	require.Len(t, corpus.Examples, 1)
	assert.Equal(t, "$ANY", corpus.Examples[0].Tokens[corpus.Examples[0].ErrIndex].SymbolName)
}

func TestLoad_parsesFrontMatterMetadata(t *testing.T) {
	doc := "Intro.\n" + rule('=') + "\n" +
		"+++\n" +
		"severity: warning\n" +
		"tags: [struct, naming]\n" +
		"+++\n" +
		"Merr_bad_field_name A field name must be a snake_case word.\n" + rule('-') + "\n" +
		"struct $ERR Foo:\n"

	corpus, err := Load(doc, "errors.txt")
	require.NoError(t, err)
	require.Len(t, corpus.Examples, 1)

	ex := corpus.Examples[0]
	assert.Equal(t, "Merr_bad_field_name", ex.Code)
	assert.Equal(t, "warning", ex.Metadata.Severity)
	assert.Equal(t, []string{"struct", "naming"}, ex.Metadata.Tags)
}

func TestLoad_unterminatedFrontMatterIsAnError(t *testing.T) {
	doc := "Intro.\n" + rule('=') + "\n" +
		"+++\n" +
		"severity: warning\n" +
		"Merr_x message\n" + rule('-') + "\n" +
		"struct $ERR Foo:\n"

	_, err := Load(doc, "errors.txt")
	assert.Error(t, err)
}

func TestApply_installsLabel(t *testing.T) {
	g := fieldGrammar()
	tables, err := parse.Generate(g)
	require.NoError(t, err)
	d := parse.NewDriver(tables)

	doc := "Intro.\n" + rule('=') + "\n" +
		"Merr_need_field_name A field name is required after struct.\n" + rule('-') + "\n" +
		"struct $ERR Foo:\n"

	corpus, err := Load(doc, "errors.txt")
	require.NoError(t, err)
	require.NoError(t, Apply(d, corpus))
}
