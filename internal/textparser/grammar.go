package textparser

import "github.com/alecthomas/participle/v2/lexer"

// recordLexer tokenizes a small S-expression-like record grammar: a
// Record is a parenthesized sequence of Fields, and a Field is either
// a nested Record or an Atom (identifier or integer).
var recordLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Integer", Pattern: `[0-9]+`},
})

// Atom is a leaf token: an identifier or an integer literal. Pos and
// EndPos are populated automatically by participle for fields with
// these exact names.
type Atom struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  string `@Ident | @Integer`
}

// Field is either a nested Record or an Atom.
type Field struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Record *Record `  @@`
	Atom   *Atom   `| @@`
}

// Record is a parenthesized, possibly empty, sequence of Fields.
type Record struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Fields []*Field `"(" @@* ")"`
}
