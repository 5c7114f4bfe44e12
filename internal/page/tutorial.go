package page

import (
	"html"
	"strings"

	"git.home.luguber.info/inful/docrender/internal/links"
	"git.home.luguber.info/inful/docrender/internal/model"
	"git.home.luguber.info/inful/docrender/internal/render"
)

// tutorialPage is the step-by-step archetype: no sidebar, a persistent top
// bar with two dropdown menus, a full-bleed hero, then tasks and assessments.
func (a *Assembler) tutorialPage(doc *model.Document, r *render.Renderer) string {
	depth := doc.Depth()
	var b strings.Builder
	b.WriteString(a.head(doc))
	b.WriteString("<body>\n")
	b.WriteString(a.headerBar(depth))
	b.WriteString(a.tutorialTopBar(doc))
	b.WriteString(`<main class="tutorial">`)

	hero := heroSection(doc)
	b.WriteString(a.hero(doc, hero, r))

	for _, sec := range doc.Sections {
		switch sec.Kind {
		case model.SectionTutorialTasks:
			for _, task := range sec.Tasks {
				b.WriteString(a.task(task, r))
			}
		case model.SectionAssessments:
			b.WriteString(a.assessments(sec, r))
		}
	}

	b.WriteString(`</main>`)
	b.WriteString(a.footer())
	b.WriteString(a.scripts(depth))
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func heroSection(doc *model.Document) *model.Section {
	for i := range doc.Sections {
		if doc.Sections[i].Kind == model.SectionHero {
			return &doc.Sections[i]
		}
	}
	return nil
}

// hero renders the full-bleed intro region: chapter label, title, abstract,
// estimated time.
func (a *Assembler) hero(doc *model.Document, sec *model.Section, r *render.Renderer) string {
	var b strings.Builder
	b.WriteString(`<section class="hero" id="introduction">`)
	if sec != nil && sec.Chapter != "" {
		b.WriteString(`<p class="hero-chapter">` + html.EscapeString(sec.Chapter) + `</p>`)
	}
	b.WriteString(`<h1>` + html.EscapeString(Title(doc)) + `</h1>`)
	if sec != nil && len(sec.Abstract) > 0 {
		b.WriteString(`<div class="hero-abstract">` + r.Inlines(sec.Abstract) + `</div>`)
	} else if len(doc.Abstract) > 0 {
		b.WriteString(`<div class="hero-abstract">` + r.Inlines(doc.Abstract) + `</div>`)
	}
	estimated := doc.Metadata.EstimatedTime
	if estimated == "" && sec != nil {
		estimated = sec.EstimatedTime
	}
	if estimated != "" {
		b.WriteString(`<p class="hero-time"><span class="hero-time-value">` + html.EscapeString(estimated) + `</span> Estimated Time</p>`)
	}
	b.WriteString(`</section>`)
	return b.String()
}

// tutorialTopBar emits the persistent bar with the chapter-grouped tutorial
// menu and the in-page section menu. Dropdowns are details/summary disclosure
// widgets so no script is involved.
func (a *Assembler) tutorialTopBar(doc *model.Document) string {
	depth := doc.Depth()
	var b strings.Builder
	b.WriteString(`<nav class="tutorial-bar">`)

	current := links.Normalize(doc.Identifier)
	b.WriteString(`<details class="dropdown dropdown-tutorials"><summary>Tutorials</summary><ul>`)
	for _, ch := range a.chaptersFor(doc.Identifier) {
		b.WriteString(`<li class="dropdown-chapter">` + html.EscapeString(ch.Title) + `<ul>`)
		for _, tut := range ch.Children {
			if tut.Path == "" {
				continue
			}
			cls := "dropdown-item"
			if links.Normalize(tut.Path) == current {
				cls += " dropdown-item-current"
			}
			b.WriteString(`<li><a class="` + cls + `" href="` + html.EscapeString(links.RelativeLink(tut.Path, depth)) + `">` +
				html.EscapeString(tut.Title) + `</a></li>`)
		}
		b.WriteString(`</ul></li>`)
	}
	b.WriteString(`</ul></details>`)

	b.WriteString(`<details class="dropdown dropdown-sections"><summary>` + html.EscapeString(Title(doc)) + `</summary><ul>`)
	b.WriteString(`<li><a href="#introduction">Introduction</a></li>`)
	for _, sec := range doc.Sections {
		if sec.Kind != model.SectionTutorialTasks {
			continue
		}
		for _, task := range sec.Tasks {
			if task.Anchor == "" || task.Title == "" {
				continue
			}
			b.WriteString(`<li><a href="#` + html.EscapeString(task.Anchor) + `">` + html.EscapeString(task.Title) + `</a></li>`)
		}
	}
	b.WriteString(`</ul></details>`)

	b.WriteString(`</nav>`)
	return b.String()
}

// chaptersFor finds every chapter node in the module subtree containing the
// tutorial, so the dropdown lists all sibling tutorials grouped by chapter.
func (a *Assembler) chaptersFor(tutorialID string) []*model.NavigationNode {
	if a.nav == nil {
		return nil
	}
	for _, m := range a.nav.Modules {
		if !m.ContainsPath(tutorialID) {
			continue
		}
		var chapters []*model.NavigationNode
		collectChapters(m, &chapters)
		return chapters
	}
	return nil
}

func collectChapters(n *model.NavigationNode, out *[]*model.NavigationNode) {
	if n.NodeType == "chapter" {
		*out = append(*out, n)
		return
	}
	for _, c := range n.Children {
		collectChapters(c, out)
	}
}

func (a *Assembler) task(task model.Task, r *render.Renderer) string {
	var b strings.Builder
	b.WriteString(`<section class="task"`)
	if task.Anchor != "" {
		b.WriteString(` id="` + html.EscapeString(task.Anchor) + `"`)
	}
	b.WriteString(`>`)
	if task.Title != "" {
		b.WriteString(`<h2>` + html.EscapeString(task.Title) + `</h2>`)
	}
	b.WriteString(r.Blocks(task.Content))
	b.WriteString(`</section>`)
	return b.String()
}

func (a *Assembler) assessments(sec model.Section, r *render.Renderer) string {
	if len(sec.Assessments) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<section class="assessments"><h2>Check Your Understanding</h2>`)
	for _, as := range sec.Assessments {
		b.WriteString(`<div class="assessment">`)
		if as.Title != "" {
			b.WriteString(`<h3>` + html.EscapeString(as.Title) + `</h3>`)
		}
		b.WriteString(r.Blocks(as.Content))
		b.WriteString(`</div>`)
	}
	b.WriteString(`</section>`)
	return b.String()
}
