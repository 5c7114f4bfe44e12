// Package page composes complete HTML documents from rendered fragments.
// One of three archetypes is selected by document kind; all three share the
// head, header bar, and footer fragments and the same depth-derived relative
// asset paths.
package page

import (
	"html"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docrender/internal/diagnostics"
	"git.home.luguber.info/inful/docrender/internal/links"
	"git.home.luguber.info/inful/docrender/internal/model"
	"git.home.luguber.info/inful/docrender/internal/render"
)

// Assembler builds pages against one loaded navigation index. It is safe for
// concurrent use across documents; all fields are read-only after creation.
type Assembler struct {
	nav           *model.NavigationIndex
	siteTitle     string
	footerHTML    string // pre-rendered extra footer content, may be empty
	searchEnabled bool
	sink          diagnostics.Sink
}

// Options configures an Assembler.
type Options struct {
	SiteTitle     string
	FooterHTML    string
	SearchEnabled bool
	Sink          diagnostics.Sink
}

// New creates an Assembler over an immutable navigation index.
func New(nav *model.NavigationIndex, opts Options) *Assembler {
	sink := opts.Sink
	if sink == nil {
		sink = diagnostics.Discard{}
	}
	return &Assembler{
		nav:           nav,
		siteTitle:     opts.SiteTitle,
		footerHTML:    opts.FooterHTML,
		searchEnabled: opts.SearchEnabled,
		sink:          sink,
	}
}

// Page renders the complete HTML document for doc.
func (a *Assembler) Page(doc *model.Document) string {
	r := render.New(doc.References, doc.Depth(), a.sink)
	switch doc.Kind {
	case model.KindTutorial:
		return a.tutorialPage(doc, r)
	case model.KindTutorialOverview:
		return a.overviewPage(doc, r)
	default:
		return a.referencePage(doc, r)
	}
}

var titleCaser = cases.Title(language.English)

// Title returns the page title, deriving one from the identifier's last
// segment when the document carries none.
func Title(doc *model.Document) string {
	if doc.Title != "" {
		return doc.Title
	}
	id := strings.Trim(doc.Identifier, "/")
	if i := strings.LastIndex(id, "/"); i >= 0 {
		id = id[i+1:]
	}
	return titleCaser.String(id)
}

// head emits the document head: title, optional meta description from the
// abstract, and exactly one relative stylesheet link.
func (a *Assembler) head(doc *model.Document) string {
	depth := doc.Depth()
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString(`<meta charset="utf-8" />` + "\n")
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1" />` + "\n")
	title := Title(doc)
	if a.siteTitle != "" && a.siteTitle != title {
		title += " | " + a.siteTitle
	}
	b.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	if desc := plainText(doc, doc.Abstract); desc != "" {
		b.WriteString(`<meta name="description" content="` + html.EscapeString(desc) + `" />` + "\n")
	}
	b.WriteString(`<link rel="stylesheet" href="` + links.RelativeAsset("css/main.css", depth) + `" />` + "\n")
	b.WriteString("</head>\n")
	return b.String()
}

// scripts emits the search script tags when search is enabled. They sit at
// the end of body so rendering never blocks on them.
func (a *Assembler) scripts(depth int) string {
	if !a.searchEnabled {
		return ""
	}
	return `<script src="` + links.RelativeAsset("js/search-index.js", depth) + `"></script>` + "\n" +
		`<script src="` + links.RelativeAsset("js/search.js", depth) + `"></script>` + "\n"
}

// headerBar is the slim top bar shared by all archetypes.
func (a *Assembler) headerBar(depth int) string {
	title := a.siteTitle
	if title == "" {
		title = "Documentation"
	}
	return `<header class="header-bar"><a class="header-title" href="` +
		links.RelativeAsset("index.html", depth) + `">` + html.EscapeString(title) + `</a></header>`
}

// footer emits the shared footer: configured extra content plus the
// three-state appearance toggle. The toggle is plain markup driven by CSS
// :checked/data-theme selectors; only choice persistence needs script.
func (a *Assembler) footer() string {
	var b strings.Builder
	b.WriteString(`<footer class="footer">`)
	if a.footerHTML != "" {
		b.WriteString(`<div class="footer-content">` + a.footerHTML + `</div>`)
	}
	b.WriteString(appearanceToggle)
	b.WriteString(`</footer>`)
	return b.String()
}

const appearanceToggle = `<fieldset class="appearance-toggle">` +
	`<legend>Appearance</legend>` +
	`<input type="radio" name="appearance" id="appearance-light" value="light" />` +
	`<label for="appearance-light">Light</label>` +
	`<input type="radio" name="appearance" id="appearance-dark" value="dark" />` +
	`<label for="appearance-dark">Dark</label>` +
	`<input type="radio" name="appearance" id="appearance-auto" value="auto" checked />` +
	`<label for="appearance-auto">Auto</label>` +
	`</fieldset>`

// plainText flattens inline content to unstyled text for meta descriptions.
// References follow the same label precedence the inline renderer uses, so a
// description never loses the tail of an abstract ending in a bare reference.
func plainText(doc *model.Document, spans []model.Inline) string {
	var b strings.Builder
	for _, s := range spans {
		switch s.Type {
		case model.InlineText, model.InlineCodeVoice:
			b.WriteString(s.Text)
		case model.InlineReference:
			b.WriteString(referenceText(doc, s))
		default:
			b.WriteString(plainText(doc, s.Children))
		}
	}
	return strings.TrimSpace(b.String())
}

func referenceText(doc *model.Document, s model.Inline) string {
	if s.OverrideTitle != "" {
		return s.OverrideTitle
	}
	if t := plainText(doc, s.OverrideSpans); t != "" {
		return t
	}
	if ref := doc.Resolve(s.Identifier); ref != nil && ref.Type == model.RefTopic && ref.Topic.Title != "" {
		return ref.Topic.Title
	}
	id := strings.Trim(s.Identifier, "/")
	if i := strings.LastIndex(id, "/"); i >= 0 {
		id = id[i+1:]
	}
	return id
}

// moduleRoot picks the navigation module path for a document: the head of
// its first hierarchy path when present, else the first two id segments.
// Hierarchy entries are reference-table keys (doc:// form), never canonical
// paths, so the head is resolved through the reference table the same way
// breadcrumbs resolves its segments.
func moduleRoot(doc *model.Document) string {
	if len(doc.Hierarchy.Paths) > 0 && len(doc.Hierarchy.Paths[0]) > 0 {
		head := doc.Hierarchy.Paths[0][0]
		if ref := doc.Resolve(head); ref != nil && ref.Type == model.RefTopic {
			if ref.Topic.URL != "" {
				return ref.Topic.URL
			}
			if ref.Topic.Identifier != "" {
				return ref.Topic.Identifier
			}
		}
		return head
	}
	segs := strings.Split(strings.Trim(doc.Identifier, "/"), "/")
	if len(segs) >= 2 {
		return "/" + segs[0] + "/" + segs[1]
	}
	return doc.Identifier
}
