package token

import "fmt"

// Token is a single lexeme read from source text: the terminal symbol it
// was recognized as, the literal text it matched, and the span it occupied.
type Token struct {
	SymbolName string
	Text       string
	Location   Location
}

// New builds a Token with the given symbol and text, spanning from start to
// end.
func New(symbolName, text string, start, end Position) Token {
	return Token{
		SymbolName: symbolName,
		Text:       text,
		Location:   Location{Start: start, End: end},
	}
}

// Synthetic builds a zero-width Token at p, with IsSynthetic set on its
// Location. Used for the implicit end-of-input marker and other
// builder-fabricated tokens.
func Synthetic(symbolName, text string, p Position) Token {
	return Token{
		SymbolName: symbolName,
		Text:       text,
		Location:   Point(p),
	}
}

// EndOfInputToken returns the implicit "$" token a parser driver appends
// after the last token in a stream, positioned immediately after the last
// real token.
func EndOfInputToken(after Position) Token {
	return Synthetic(EndOfInput, "", after)
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.SymbolName, t.Text, t.Location)
}
