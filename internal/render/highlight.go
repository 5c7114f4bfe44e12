package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlightLines tokenizes source lines with chroma and formats them as
// classed spans (no inline styles, classes resolve against the shipped CSS).
// Returns ok=false when the syntax tag has no lexer or tokenizing fails, in
// which case the caller escapes the lines verbatim.
func highlightLines(syntax string, lines []string) (string, bool) {
	if syntax == "" {
		return "", false
	}
	lexer := lexers.Get(syntax)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, strings.Join(lines, "\n"))
	if err != nil {
		return "", false
	}
	formatter := chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.PreventSurroundingPre(true),
	)
	var b strings.Builder
	if err := formatter.Format(&b, styles.Fallback, it); err != nil {
		return "", false
	}
	return b.String(), true
}
