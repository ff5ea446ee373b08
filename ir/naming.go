package ir

import (
	"fmt"
	"strings"
)

// anonymousBitsCounter assigns a monotonically increasing number to each
// inline, unnamed bit-block encountered during a single Build. It must be
// reset at the start of every build so that the generated names are a pure
// function of the input and the translation stays deterministic across
// repeated compilations of the same source (§5): naming an anonymous type
// from a counter that persisted across builds would make output depend on
// how many prior builds happened to run in the same process.
type anonymousBitsCounter struct {
	next int
}

// name returns the next reserved name for an anonymous bit-block field,
// "emboss_reserved_anonymous_field_N" with N monotonically increasing per
// build (§4.5).
func (c *anonymousBitsCounter) name() string {
	n := fmt.Sprintf("emboss_reserved_anonymous_field_%d", c.next)
	c.next++
	return n
}

// inlineTypeName synthesizes the name for a type defined inline on a field
// (e.g. a struct field whose type is itself an inline struct or bits body):
// the CamelCase conversion of the field's own snake_case name (§4.5), e.g.
// field "header" becomes type "Header".
func inlineTypeName(fieldName string) string {
	return toCamel(fieldName)
}

func toCamel(snake string) string {
	parts := strings.Split(snake, "_")
	var sb strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]))
		sb.WriteString(p[1:])
	}
	return sb.String()
}
