package render

import (
	"html"
	"strings"

	"git.home.luguber.info/inful/docrender/internal/links"
	"git.home.luguber.info/inful/docrender/internal/model"
)

// Declaration renders one declaration fragment list as a code region of
// classed token spans.
func (r *Renderer) Declaration(decl model.Declaration) string {
	var b strings.Builder
	b.WriteString(`<div class="declaration"><pre><code>`)
	for _, tok := range decl.Tokens {
		b.WriteString(r.declarationToken(tok))
	}
	b.WriteString(`</code></pre></div>`)
	return b.String()
}

// declarationToken emits one token. Kind "text" gets no class; every other
// kind gets a class named after it. A resolvable identifier wraps the token
// in an anchor independent of its kind class.
func (r *Renderer) declarationToken(tok model.DeclarationToken) string {
	inner := html.EscapeString(tok.Text)
	if tok.Kind != "" && tok.Kind != "text" {
		inner = `<span class="token-` + html.EscapeString(tok.Kind) + `">` + inner + `</span>`
	}
	if tok.Identifier != "" {
		if topic := r.topicFor(tok.Identifier); topic != nil {
			target := topic.URL
			if target == "" {
				target = topic.Identifier
			}
			href := links.RelativeLink(target, r.depth)
			return `<a href="` + html.EscapeString(href) + `">` + inner + `</a>`
		}
	}
	return inner
}
