package render

import (
	"html"
	"strings"

	"git.home.luguber.info/inful/docrender/internal/diagnostics"
	"git.home.luguber.info/inful/docrender/internal/links"
	"git.home.luguber.info/inful/docrender/internal/model"
)

var inlineWrappers = map[model.InlineType][2]string{
	model.InlineEmphasis:      {"<em>", "</em>"},
	model.InlineStrong:        {"<strong>", "</strong>"},
	model.InlineStrikethrough: {"<s>", "</s>"},
	model.InlineSubscript:     {"<sub>", "</sub>"},
	model.InlineSuperscript:   {"<sup>", "</sup>"},
	model.InlineNewTerm:       {`<em class="new-term">`, "</em>"},
}

// Inlines renders an inline span list in order.
func (r *Renderer) Inlines(spans []model.Inline) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(r.Inline(s))
	}
	return b.String()
}

// Inline renders a single inline node. Unknown kinds render to an empty string.
func (r *Renderer) Inline(in model.Inline) string {
	switch in.Type {
	case model.InlineText:
		return html.EscapeString(in.Text)
	case model.InlineCodeVoice:
		return "<code>" + html.EscapeString(in.Text) + "</code>"
	case model.InlineReference:
		return r.reference(in)
	case model.InlineImage:
		return r.image(in.Identifier)
	default:
		if w, ok := inlineWrappers[in.Type]; ok {
			return w[0] + r.Inlines(in.Children) + w[1]
		}
		return ""
	}
}

// reference renders an inline cross-reference. Label precedence, highest to
// lowest: explicit inline-content override, plain-string title override, the
// matched topic reference's title, the raw target id.
func (r *Renderer) reference(in model.Inline) string {
	topic := r.topicFor(in.Identifier)

	label := ""
	switch {
	case len(in.OverrideSpans) > 0:
		label = r.Inlines(in.OverrideSpans)
	case in.OverrideTitle != "":
		label = html.EscapeString(in.OverrideTitle)
	case topic != nil && topic.Title != "":
		label = html.EscapeString(topic.Title)
	default:
		label = html.EscapeString(in.Identifier)
	}

	// Inactive or unresolved references never become dead anchors.
	if !in.IsActive || topic == nil {
		if topic == nil {
			r.sink.Emit(diagnostics.Diagnostic{
				Severity: diagnostics.SeverityWarning,
				Message:  "unresolved reference " + in.Identifier,
			})
		}
		return `<span class="link-inactive">` + label + `</span>`
	}

	target := topic.URL
	if target == "" {
		target = topic.Identifier
	}
	if target == "" {
		target = in.Identifier
	}
	href := links.RelativeLink(target, r.depth)
	return `<a class="link" href="` + html.EscapeString(href) + `">` + label + `</a>`
}

// image renders an inline image through the local reference table. A missing
// or non-image reference renders to nothing.
func (r *Renderer) image(targetID string) string {
	ref := r.refs[targetID]
	if ref == nil || ref.Type != model.RefImage || ref.Image == nil {
		r.sink.Emit(diagnostics.Diagnostic{
			Severity: diagnostics.SeverityWarning,
			Message:  "unresolved image " + targetID,
		})
		return ""
	}
	src := ref.Image.DefaultVariant()
	if src == "" {
		return ""
	}
	alt := ""
	if ref.Image.AltText != "" {
		alt = html.EscapeString(ref.Image.AltText)
	}
	return `<img src="` + html.EscapeString(links.RelativeAsset(src, r.depth)) + `" alt="` + alt + `" />`
}

// topicFor resolves a target id to its topic reference, or nil.
func (r *Renderer) topicFor(targetID string) *model.TopicReference {
	ref := r.refs[targetID]
	if ref == nil || ref.Type != model.RefTopic {
		return nil
	}
	return ref.Topic
}
