// Package textparser is a concrete parsetree.Parser[byte] adapter: a
// minimal S-expression-style record grammar built with
// github.com/alecthomas/participle/v2. It exists to give HDD a real
// tree to reduce over instead of only the identity/flat case.
package textparser

import (
	"fmt"

	"github.com/alecthomas/participle/v2"

	"ddmin/internal/configuration"
	"ddmin/internal/parsetree"
)

var recordGrammar = buildParser()

func buildParser() *participle.Parser[Record] {
	p, err := participle.Build[Record](
		participle.Lexer(recordLexer),
		participle.Elide("Whitespace"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build record parser: %w", err))
	}
	return p
}

// RecordParser parses a byte configuration as a single top-level
// Record and exposes it as a parsetree.Tree[byte].
type RecordParser struct{}

func (RecordParser) Parse(cfg configuration.Configuration[byte]) (*parsetree.Tree[byte], error) {
	source := cfg.Elements()
	ast, err := recordGrammar.ParseBytes("", source)
	if err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	b := parsetree.NewBuilder[byte]()
	addRecord(b, source, ast, 0)
	return b.Tree(), nil
}

// addRecord emits a node for r and, as its children, synthetic leaves
// for the literal parens plus one subtree per field, all one level
// deeper than r itself. The parens are represented explicitly so that
// a fully-kept reconstruction still contains them; inter-field
// whitespace, elided by the lexer, is not reproduced.
func addRecord(b *parsetree.Builder[byte], source []byte, r *Record, level int) int {
	id := b.Reserve(level)

	open := b.Reserve(level + 1)
	b.Set(open, configuration.New([]byte("(")), nil)
	children := []int{open}

	for _, f := range r.Fields {
		children = append(children, addField(b, source, f, level+1))
	}

	closeParen := b.Reserve(level + 1)
	b.Set(closeParen, configuration.New([]byte(")")), nil)
	children = append(children, closeParen)

	b.Set(id, configuration.New(append([]byte(nil), source[r.Pos.Offset:r.EndPos.Offset]...)), children)
	return id
}

func addField(b *parsetree.Builder[byte], source []byte, f *Field, level int) int {
	if f.Record != nil {
		return addRecord(b, source, f.Record, level)
	}
	id := b.Reserve(level)
	span := append([]byte(nil), source[f.Atom.Pos.Offset:f.Atom.EndPos.Offset]...)
	b.Set(id, configuration.New(span), nil)
	return id
}
