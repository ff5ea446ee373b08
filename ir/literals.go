package ir

import (
	"fmt"
	"math/big"
	"strings"
)

// ParseInteger parses a Number token's text into an arbitrary-precision
// integer. Decimal, "0x"-prefixed hexadecimal, and "0b"-prefixed binary
// forms are accepted; a digit run may contain single underscores as
// grouping separators (e.g. "1_000_000", "0xDEAD_BEEF"), which are
// stripped before parsing. big.Int is used rather than a fixed-width type
// because format definitions routinely need field sizes and constants
// larger than 64 bits (e.g. 128-bit UUID fields).
func ParseInteger(text string) (*big.Int, error) {
	clean := strings.ReplaceAll(text, "_", "")

	base := 10
	switch {
	case strings.HasPrefix(clean, "0x") || strings.HasPrefix(clean, "0X"):
		base = 16
		clean = clean[2:]
	case strings.HasPrefix(clean, "0b") || strings.HasPrefix(clean, "0B"):
		base = 2
		clean = clean[2:]
	}

	n := new(big.Int)
	if _, ok := n.SetString(clean, base); !ok {
		return nil, fmt.Errorf("invalid integer literal %q", text)
	}
	return n, nil
}

// ParseStringLiteral decodes a String token's text (including its
// surrounding quotes) into the string it denotes, resolving the \\, \",
// and \n escape sequences.
func ParseStringLiteral(text string) (string, error) {
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return "", fmt.Errorf("not a quoted string literal: %q", text)
	}
	body := text[1 : len(text)-1]

	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("dangling escape at end of string literal %q", text)
		}
		switch body[i] {
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case 'n':
			sb.WriteByte('\n')
		default:
			return "", fmt.Errorf("unknown escape sequence \\%c in string literal %q", body[i], text)
		}
	}
	return sb.String(), nil
}

// ParseBoolean parses a BooleanConstant token's text ("true" or "false").
func ParseBoolean(text string) (bool, error) {
	switch text {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean literal %q", text)
	}
}
