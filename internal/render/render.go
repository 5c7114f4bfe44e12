// Package render turns block and inline content nodes into HTML fragments.
// Rendering is a pure function of (node, reference table, depth); there is no
// shared mutable state, so documents can be rendered in parallel.
package render

import (
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docrender/internal/diagnostics"
	"git.home.luguber.info/inful/docrender/internal/model"
)

// asideTitleCaser capitalizes aside styles for the default title. Styles may
// start with a multi-byte rune, so byte slicing is not an option here.
var asideTitleCaser = cases.Title(language.English)

// Renderer renders content for one document. All fields are read-only after
// construction.
type Renderer struct {
	refs  map[string]*model.Reference
	depth int
	sink  diagnostics.Sink
}

// New creates a renderer for a document's reference table at the given depth.
func New(refs map[string]*model.Reference, depth int, sink diagnostics.Sink) *Renderer {
	if sink == nil {
		sink = diagnostics.Discard{}
	}
	return &Renderer{refs: refs, depth: depth, sink: sink}
}

// Depth returns the page depth the renderer links from.
func (r *Renderer) Depth() int { return r.depth }

// Blocks renders a block list in order.
func (r *Renderer) Blocks(blocks []model.Block) string {
	var b strings.Builder
	for _, blk := range blocks {
		b.WriteString(r.Block(blk))
	}
	return b.String()
}

// Block renders a single block node. Unknown kinds render to an empty string
// so content from a newer compiler never aborts a generation run.
func (r *Renderer) Block(blk model.Block) string {
	switch blk.Type {
	case model.BlockParagraph:
		return "<p>" + r.Inlines(blk.Spans) + "</p>"
	case model.BlockHeading:
		return r.heading(blk)
	case model.BlockAside:
		return r.aside(blk)
	case model.BlockCodeListing:
		return r.codeListing(blk.Syntax, blk.Lines)
	case model.BlockOrderedList, model.BlockUnorderedList:
		return r.list(blk)
	case model.BlockTable:
		return r.table(blk)
	case model.BlockTermList:
		return r.termList(blk)
	case model.BlockStep:
		return r.step(blk)
	case model.BlockThematicBreak:
		return "<hr />"
	default:
		return ""
	}
}

func (r *Renderer) heading(blk model.Block) string {
	level := blk.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	anchor := ""
	if blk.Anchor != "" {
		anchor = fmt.Sprintf(` id="%s"`, html.EscapeString(blk.Anchor))
	}
	return fmt.Sprintf("<h%d%s>%s</h%d>", level, anchor, html.EscapeString(blk.Text), level)
}

func (r *Renderer) aside(blk model.Block) string {
	style := blk.AsideStyle
	if style == "" {
		style = "note"
	}
	title := blk.AsideTitle
	if title == "" {
		title = asideTitleCaser.String(style)
	}
	var b strings.Builder
	b.WriteString(`<aside class="aside aside-` + html.EscapeString(strings.ToLower(style)) + `">`)
	b.WriteString(`<p class="aside-title">` + html.EscapeString(title) + `</p>`)
	b.WriteString(r.Blocks(blk.Children))
	b.WriteString(`</aside>`)
	return b.String()
}

func (r *Renderer) list(blk model.Block) string {
	tag := "ul"
	attrs := ""
	if blk.Type == model.BlockOrderedList {
		tag = "ol"
		// A start attribute only appears when it differs from the default.
		if blk.StartIndex != 1 {
			attrs = fmt.Sprintf(` start="%d"`, blk.StartIndex)
		}
	}
	var b strings.Builder
	b.WriteString("<" + tag + attrs + ">")
	for _, item := range blk.Items {
		b.WriteString("<li>" + r.Blocks(item) + "</li>")
	}
	b.WriteString("</" + tag + ">")
	return b.String()
}

// table treats the first row as header cells unconditionally. A one-row table
// gets no tbody section.
func (r *Renderer) table(blk model.Block) string {
	if len(blk.Rows) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<table>")
	b.WriteString("<thead><tr>")
	for _, cell := range blk.Rows[0] {
		b.WriteString("<th>" + r.Blocks(cell) + "</th>")
	}
	b.WriteString("</tr></thead>")
	if len(blk.Rows) > 1 {
		b.WriteString("<tbody>")
		for _, row := range blk.Rows[1:] {
			b.WriteString("<tr>")
			for _, cell := range row {
				b.WriteString("<td>" + r.Blocks(cell) + "</td>")
			}
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody>")
	}
	b.WriteString("</table>")
	return b.String()
}

func (r *Renderer) termList(blk model.Block) string {
	var b strings.Builder
	b.WriteString(`<dl class="term-list">`)
	for _, item := range blk.Terms {
		b.WriteString("<dt>" + r.Inlines(item.Term) + "</dt>")
		b.WriteString("<dd>" + r.Blocks(item.Definition) + "</dd>")
	}
	b.WriteString("</dl>")
	return b.String()
}

func (r *Renderer) step(blk model.Block) string {
	var b strings.Builder
	b.WriteString(`<div class="step">`)
	b.WriteString(`<div class="step-content">` + r.Blocks(blk.StepContent) + `</div>`)
	if len(blk.StepCaption) > 0 {
		b.WriteString(`<div class="step-caption">` + r.Blocks(blk.StepCaption) + `</div>`)
	}
	if blk.MediaTarget != "" {
		b.WriteString(`<div class="step-media">` + r.image(blk.MediaTarget) + `</div>`)
	}
	if blk.CodeTarget != "" {
		if ref := r.refs[blk.CodeTarget]; ref != nil && ref.Type == model.RefFile {
			b.WriteString(r.fileListing(ref.File))
		}
	}
	b.WriteString(`</div>`)
	return b.String()
}

// codeListing emits a highlighted pre/code region. Unknown syntax tags fall
// back to plain escaped lines.
func (r *Renderer) codeListing(syntax string, lines []string) string {
	var b strings.Builder
	b.WriteString(`<div class="code-listing"`)
	if syntax != "" {
		b.WriteString(` data-syntax="` + html.EscapeString(syntax) + `"`)
	}
	b.WriteString(`><pre><code>`)
	if highlighted, ok := highlightLines(syntax, lines); ok {
		b.WriteString(highlighted)
	} else {
		for i, line := range lines {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(html.EscapeString(line))
		}
	}
	b.WriteString("</code></pre></div>")
	return b.String()
}

// fileListing renders a file reference (tutorial step code) with its name.
func (r *Renderer) fileListing(f *model.FileReference) string {
	var b strings.Builder
	b.WriteString(`<div class="step-code">`)
	if f.FileName != "" {
		b.WriteString(`<p class="file-name">` + html.EscapeString(f.FileName) + `</p>`)
	}
	b.WriteString(r.codeListing(f.Syntax, f.Lines))
	b.WriteString(`</div>`)
	return b.String()
}
