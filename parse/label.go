package parse

import (
	"fmt"

	"github.com/dekarrin/embossfe/token"
)

// Label installs an annotated error code from the error-example corpus
// (package errorexample) into the driver's tables.
//
// tokens is the example's token stream with its $ERR marker already
// stripped; designatedIndex is the index within tokens that $ERR marked (or
// -1 if $ERR was the last thing in the example, designating end-of-input).
// If the designated token's symbol is the wildcard "$ANY", the code is
// installed as the state's DefaultErrors entry instead of a specific
// (state, terminal) ACTION cell, per the corpus format's $ANY convention.
//
// Label first re-parses tokens against the current tables to find out
// where the parse actually fails; it is an error for the example to parse
// successfully, or to fail anywhere other than the designated position.
// Relabeling a cell with the same code it already has is a no-op;
// relabeling it with a different code, or labeling a cell that already has
// a non-error action, is rejected.
func Label(d *Driver, tokens []token.Token, designatedIndex int, code string) error {
	state, index, failed := d.trialRun(tokens)
	if !failed {
		return fmt.Errorf("example parses successfully; expected a failure at the designated token")
	}

	wantIndex := designatedIndex
	if wantIndex < 0 {
		wantIndex = len(tokens)
	}
	if index != wantIndex {
		return fmt.Errorf("example failed at token index %d, but designates index %d", index, wantIndex)
	}

	var terminal string
	wildcard := false
	switch {
	case designatedIndex < 0:
		terminal = token.EndOfInput
	case tokens[designatedIndex].SymbolName == "$ANY":
		wildcard = true
	default:
		terminal = tokens[designatedIndex].SymbolName
	}

	if wildcard {
		if existing, ok := d.Tables.DefaultErrors[state]; ok && existing != code {
			return fmt.Errorf("state %d already has default error code %q, cannot relabel %q", state, existing, code)
		}
		d.Tables.DefaultErrors[state] = code
		return nil
	}

	key := stateTerm{state, terminal}
	if existing, ok := d.Tables.Action[key]; ok {
		if existing.Type != Error {
			return fmt.Errorf("state %d on %s already has action %s, cannot label as error", state, terminal, existing)
		}
		if existing.Code != code {
			return fmt.Errorf("state %d on %s already labeled %q, cannot relabel %q", state, terminal, existing.Code, code)
		}
		return nil
	}
	d.Tables.Action[key] = Action{Type: Error, Code: code}
	return nil
}
