package resolver

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// callExpr is a calendar function call such as
// "WeekdayRelativeTo(2024-05-01, 7, 2, false)". Arguments are literals or
// nested calls.
//
//nolint:govet // participle grammar tags are not standard struct tags
type callExpr struct {
	Name string     `@Ident`
	Args []*argExpr `"(" ( @@ ( "," @@ )* )? ")"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type argExpr struct {
	Call    *callExpr `  @@`
	Literal *string   `| @(Date | Int | Ident)`
}

// callLexer tokenizes function calls. Date must come before Int so that
// "2024-05-01" is not split into "2024" and "-05".
var callLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Date", Pattern: `\d{4}-\d{2}-\d{2}`},
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[(),]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var callParser = participle.MustBuild[callExpr](
	participle.Lexer(callLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

func parseCall(s string) (*callExpr, error) {
	return callParser.ParseString("", s)
}
