package page

import (
	"html"
	"strings"

	"git.home.luguber.info/inful/docrender/internal/links"
	"git.home.luguber.info/inful/docrender/internal/model"
	"git.home.luguber.info/inful/docrender/internal/render"
)

// overviewPage is the tutorial-collection archetype: hero plus a flat list
// of chapters with card links to member tutorials.
func (a *Assembler) overviewPage(doc *model.Document, r *render.Renderer) string {
	depth := doc.Depth()
	var b strings.Builder
	b.WriteString(a.head(doc))
	b.WriteString("<body>\n")
	b.WriteString(a.headerBar(depth))
	b.WriteString(`<main class="tutorial-overview">`)
	b.WriteString(a.hero(doc, heroSection(doc), r))

	for _, sec := range doc.Sections {
		switch sec.Kind {
		case model.SectionVolume:
			for _, ch := range sec.Chapters {
				b.WriteString(a.chapterCard(ch, doc, r, depth))
			}
		case model.SectionResources:
			if len(sec.Content) > 0 {
				b.WriteString(`<section class="resources">`)
				if sec.Title != "" {
					b.WriteString(`<h2>` + html.EscapeString(sec.Title) + `</h2>`)
				}
				b.WriteString(r.Blocks(sec.Content))
				b.WriteString(`</section>`)
			}
		case model.SectionCallToAction:
			b.WriteString(a.callToAction(sec, doc, r, depth))
		}
	}

	b.WriteString(`</main>`)
	b.WriteString(a.footer())
	b.WriteString(a.scripts(depth))
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// chapterCard renders one chapter: name, description, card links to member
// tutorials resolved through the document's reference table.
func (a *Assembler) chapterCard(ch model.Chapter, doc *model.Document, r *render.Renderer, depth int) string {
	var b strings.Builder
	b.WriteString(`<section class="chapter">`)
	if ch.Name != "" {
		b.WriteString(`<h2>` + html.EscapeString(ch.Name) + `</h2>`)
	}
	b.WriteString(`<div class="chapter-description">` + r.Blocks(ch.Content) + `</div>`)
	b.WriteString(`<ul class="tutorial-cards">`)
	for _, target := range ch.Tutorials {
		b.WriteString(`<li class="tutorial-card">` + a.topicEntry(target, doc, r, depth) + `</li>`)
	}
	b.WriteString(`</ul></section>`)
	return b.String()
}

func (a *Assembler) callToAction(sec model.Section, doc *model.Document, r *render.Renderer, depth int) string {
	var b strings.Builder
	b.WriteString(`<section class="call-to-action">`)
	if sec.Title != "" {
		b.WriteString(`<h2>` + html.EscapeString(sec.Title) + `</h2>`)
	}
	if len(sec.Abstract) > 0 {
		b.WriteString(`<p>` + r.Inlines(sec.Abstract) + `</p>`)
	}
	if sec.Action != "" {
		if ref := doc.Resolve(sec.Action); ref != nil && ref.Type == model.RefTopic {
			dest := ref.Topic.URL
			if dest == "" {
				dest = ref.Topic.Identifier
			}
			b.WriteString(`<a class="cta-link" href="` + html.EscapeString(links.RelativeLink(dest, depth)) + `">` +
				html.EscapeString(ref.Topic.Title) + `</a>`)
		}
	}
	b.WriteString(`</section>`)
	return b.String()
}
