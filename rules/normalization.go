package rules

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

//nolint:govet // participle grammar tags are not standard struct tags
type normalization struct {
	Start int `"group" "(" @Int ")" "-"`
	End   int `"group" "(" @Int ")"`
}

var normalizationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-z]+`},
	{Name: "Punct", Pattern: `[()\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var normalizationParser = participle.MustBuild[normalization](
	participle.Lexer(normalizationLexer),
	participle.Elide("Whitespace"),
)

// ParseNormalization parses "group(i)-group(j)" and returns i and j.
func ParseNormalization(expr string) (start, end int, err error) {
	n, err := normalizationParser.ParseString("", expr)
	if err != nil {
		return 0, 0, err
	}
	return n.Start, n.End, nil
}
