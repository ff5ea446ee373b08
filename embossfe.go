// Package embossfe is the front-end parsing core of a binary-format
// definition compiler: it tokenizes a Python-like, indentation-sensitive
// source language, drives a generated LR(1) parser over the resulting
// token stream, and translates the parse tree into a typed module IR ready
// for a downstream symbol-resolution/type-checking/code-generation pass.
//
// The three stages -- lex, parse (backed by grammar/automaton), and ir --
// are independently usable packages; this file only wires their default
// configuration together for the common case of compiling one source file
// start to finish.
package embossfe

import (
	"github.com/dekarrin/embossfe/ir"
	"github.com/dekarrin/embossfe/lex"
	"github.com/dekarrin/embossfe/parse"
	"github.com/dekarrin/embossfe/token"
)

// Result is the one-shot return value of Compile: a module IR built from a
// single source file, together with the tokens it was parsed from. An error
// that stops translation is returned by Compile alongside a nil Result, not
// stored here. Per §7's propagation policy, the core does not attempt
// recovery -- the first tokenizer or parser error stops the pipeline and is
// returned; the IR builder is never invoked over a partial parse tree.
type Result struct {
	Module *ir.Module
	Tokens []token.Token
}

// Compile runs the full tokenize -> parse -> build-IR pipeline over source
// text read from a file named fileName (used only for error messages and
// the resulting Module's SourceFile field -- this package performs no file
// I/O of its own, per spec §1's "file I/O ... out of scope").
//
// tables must be a *parse.Tables built from ir.DefinitionGrammar(), e.g.
// via parse.Generate or a parsercache-loaded cache; registry must bind the
// handlers for that same grammar, e.g. ir.DefaultRegistry(). Compile does
// not build these itself so that a caller compiling many files reuses one
// generated parser rather than paying LR(1) construction cost per file.
func Compile(source, fileName string, tables *parse.Tables, registry *ir.Registry) (*Result, error) {
	tokens, errs := lex.Tokenize(source, fileName)
	if len(errs) > 0 {
		// lex.Tokenize's contract (§4.1/§7) is to stop at the first error,
		// so errs always holds exactly one entry here.
		return nil, errs[0]
	}

	driver := parse.NewDriver(tables)
	tree, synErr := driver.Parse(tokens)
	if synErr != nil {
		return nil, synErr
	}

	builder := ir.NewBuilder(registry)
	mod, err := builder.Build(tree, fileName)
	if err != nil {
		return nil, err
	}

	return &Result{Module: mod, Tokens: tokens}, nil
}

// NewParser builds a fresh *parse.Tables for the format-definition grammar.
// It is the "regenerate from scratch" half of §4.4's cache-or-regenerate
// choice; the other half is loading a parsercache-generated source file's
// exported loader function directly, which this package does not need to
// wrap since the generated function already returns a *parse.Tables.
func NewParser() (*parse.Tables, error) {
	return parse.Generate(ir.DefinitionGrammar())
}

