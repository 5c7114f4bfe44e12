package page

import (
	"html"
	"strings"

	"git.home.luguber.info/inful/docrender/internal/diagnostics"
	"git.home.luguber.info/inful/docrender/internal/links"
	"git.home.luguber.info/inful/docrender/internal/model"
	"git.home.luguber.info/inful/docrender/internal/navigation"
	"git.home.luguber.info/inful/docrender/internal/render"
)

// referencePage is the symbol/article archetype: header bar, sidebar,
// breadcrumbs, then the rendered document body.
func (a *Assembler) referencePage(doc *model.Document, r *render.Renderer) string {
	depth := doc.Depth()
	var b strings.Builder
	b.WriteString(a.head(doc))
	b.WriteString("<body>\n")
	b.WriteString(a.headerBar(depth))
	b.WriteString(`<div class="layout">`)
	b.WriteString(navigation.BuildSidebar(a.nav, moduleRoot(doc), doc.Identifier, depth))
	b.WriteString(`<main class="content">`)
	b.WriteString(a.breadcrumbs(doc))

	if doc.Metadata.RoleHeading != "" {
		b.WriteString(`<p class="role-heading">` + html.EscapeString(doc.Metadata.RoleHeading) + `</p>`)
	}
	b.WriteString("<h1>" + html.EscapeString(Title(doc)) + "</h1>")
	if len(doc.Abstract) > 0 {
		b.WriteString(`<div class="abstract">` + r.Inlines(doc.Abstract) + `</div>`)
	}

	for _, sec := range doc.Sections {
		b.WriteString(a.referenceSection(sec, r))
	}

	b.WriteString(a.topicGroups("Topics", doc.TopicGroups, doc, r))
	b.WriteString(a.relationships(doc, r))
	b.WriteString(a.topicGroups("See Also", doc.SeeAlsoGroups, doc, r))

	b.WriteString(`</main></div>`)
	b.WriteString(a.footer())
	b.WriteString(a.scripts(depth))
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// referenceSection renders the section kinds a reference page understands;
// everything else renders to nothing.
func (a *Assembler) referenceSection(sec model.Section, r *render.Renderer) string {
	switch sec.Kind {
	case model.SectionDeclarations:
		var b strings.Builder
		b.WriteString(`<section class="declarations">`)
		for _, d := range sec.Declarations {
			b.WriteString(r.Declaration(d))
		}
		b.WriteString(`</section>`)
		return b.String()
	case model.SectionParameters:
		if len(sec.Parameters) == 0 {
			return ""
		}
		var b strings.Builder
		b.WriteString(`<section class="parameters"><h2>Parameters</h2><dl>`)
		for _, p := range sec.Parameters {
			b.WriteString(`<dt><code>` + html.EscapeString(p.Name) + `</code></dt>`)
			b.WriteString(`<dd>` + r.Blocks(p.Content) + `</dd>`)
		}
		b.WriteString(`</dl></section>`)
		return b.String()
	case model.SectionContent, model.SectionDiscussion:
		if len(sec.Content) == 0 {
			return ""
		}
		title := sec.Title
		if title == "" && sec.Kind == model.SectionDiscussion {
			title = "Discussion"
		}
		var b strings.Builder
		b.WriteString(`<section class="discussion">`)
		if title != "" {
			b.WriteString("<h2>" + html.EscapeString(title) + "</h2>")
		}
		b.WriteString(r.Blocks(sec.Content))
		b.WriteString(`</section>`)
		return b.String()
	default:
		return ""
	}
}

// topicGroups renders curated target lists through the document's own
// reference table; unresolved targets degrade to unlinked text.
func (a *Assembler) topicGroups(heading string, groups []model.TopicGroup, doc *model.Document, r *render.Renderer) string {
	if len(groups) == 0 {
		return ""
	}
	depth := doc.Depth()
	var b strings.Builder
	b.WriteString(`<section class="topics"><h2>` + html.EscapeString(heading) + `</h2>`)
	for _, g := range groups {
		if g.Title != "" {
			b.WriteString(`<h3>` + html.EscapeString(g.Title) + `</h3>`)
		}
		b.WriteString(`<ul class="topic-list">`)
		for _, target := range g.Targets {
			b.WriteString(`<li>` + a.topicEntry(target, doc, r, depth) + `</li>`)
		}
		b.WriteString(`</ul>`)
	}
	b.WriteString(`</section>`)
	return b.String()
}

func (a *Assembler) topicEntry(target string, doc *model.Document, r *render.Renderer, depth int) string {
	ref := doc.Resolve(target)
	if ref == nil || ref.Type != model.RefTopic {
		a.sink.Emit(diagnostics.Diagnostic{
			Severity: diagnostics.SeverityWarning,
			Message:  "unresolved topic target " + target,
			Source:   doc.Identifier,
		})
		return `<span class="link-inactive">` + html.EscapeString(target) + `</span>`
	}
	topic := ref.Topic
	label := topic.Title
	if label == "" {
		label = target
	}
	dest := topic.URL
	if dest == "" {
		dest = topic.Identifier
	}
	var b strings.Builder
	b.WriteString(`<a class="topic-link" href="` + html.EscapeString(links.RelativeLink(dest, depth)) + `">` + html.EscapeString(label) + `</a>`)
	if len(topic.Abstract) > 0 {
		b.WriteString(`<p class="topic-abstract">` + r.Inlines(topic.Abstract) + `</p>`)
	}
	return b.String()
}

func (a *Assembler) relationships(doc *model.Document, r *render.Renderer) string {
	if len(doc.RelationshipGroups) == 0 {
		return ""
	}
	depth := doc.Depth()
	var b strings.Builder
	b.WriteString(`<section class="relationships"><h2>Relationships</h2>`)
	for _, g := range doc.RelationshipGroups {
		title := g.Title
		if title == "" {
			title = g.Kind
		}
		if title != "" {
			b.WriteString(`<h3>` + html.EscapeString(title) + `</h3>`)
		}
		b.WriteString(`<ul class="relationship-list">`)
		for _, target := range g.Targets {
			b.WriteString(`<li>` + a.topicEntry(target, doc, r, depth) + `</li>`)
		}
		b.WriteString(`</ul>`)
	}
	b.WriteString(`</section>`)
	return b.String()
}

// breadcrumbs walks the first hierarchy path, resolving each segment's title
// and link through the local reference table. Unresolvable segments show
// their trailing id segment unlinked.
func (a *Assembler) breadcrumbs(doc *model.Document) string {
	if len(doc.Hierarchy.Paths) == 0 || len(doc.Hierarchy.Paths[0]) == 0 {
		return ""
	}
	depth := doc.Depth()
	var b strings.Builder
	b.WriteString(`<nav class="breadcrumbs"><ol>`)
	for _, segID := range doc.Hierarchy.Paths[0] {
		ref := doc.Resolve(segID)
		if ref != nil && ref.Type == model.RefTopic {
			dest := ref.Topic.URL
			if dest == "" {
				dest = ref.Topic.Identifier
			}
			b.WriteString(`<li><a href="` + html.EscapeString(links.RelativeLink(dest, depth)) + `">` +
				html.EscapeString(ref.Topic.Title) + `</a></li>`)
			continue
		}
		seg := strings.Trim(segID, "/")
		if i := strings.LastIndex(seg, "/"); i >= 0 {
			seg = seg[i+1:]
		}
		b.WriteString(`<li>` + html.EscapeString(seg) + `</li>`)
	}
	b.WriteString(`<li aria-current="page">` + html.EscapeString(Title(doc)) + `</li>`)
	b.WriteString(`</ol></nav>`)
	return b.String()
}
