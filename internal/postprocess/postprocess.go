// Package postprocess resolves scheme-prefixed cross-document tokens left in
// rendered HTML. Some references only ever appear as doc:// tokens inherited
// from free text outside the loaded reference table, so this pass works on
// the rendered string, not the content tree.
package postprocess

import (
	"html"
	"regexp"
	"sort"
	"strings"

	"git.home.luguber.info/inful/docrender/internal/diagnostics"
	"git.home.luguber.info/inful/docrender/internal/links"
)

// docLinkPattern captures the bundle identifier and the /-prefixed path of a
// doc:// token. The path charset is deliberately restricted; anything outside
// it terminates the token.
var docLinkPattern = regexp.MustCompile(`doc://([A-Za-z0-9._-]+)((?:/[A-Za-z0-9._~-]+)+)`)

// Processor rewrites doc:// tokens against the modules documented in this
// run and a configured map of externally hosted bundles.
type Processor struct {
	// modules maps a module's display name to its bundle identifier.
	modules map[string]string
	// externalURLs maps a bundle identifier to the base URL its docs live at.
	externalURLs map[string]string
	sink         diagnostics.Sink
}

// New builds a processor. Either map may be nil.
func New(modules map[string]string, externalURLs map[string]string, sink diagnostics.Sink) *Processor {
	if sink == nil {
		sink = diagnostics.Discard{}
	}
	return &Processor{modules: modules, externalURLs: externalURLs, sink: sink}
}

type match struct {
	start, end int
	bundle     string
	path       string
}

// Process rewrites all resolvable tokens in page, computing relative links
// from the given page depth. Tokens inside open <code>/<pre> regions and
// tokens that resolve nowhere are left untouched.
func (p *Processor) Process(page string, depth int) string {
	idxs := docLinkPattern.FindAllStringSubmatchIndex(page, -1)
	if len(idxs) == 0 {
		return page
	}

	matches := make([]match, 0, len(idxs))
	for _, m := range idxs {
		matches = append(matches, match{
			start:  m[0],
			end:    m[1],
			bundle: page[m[2]:m[3]],
			path:   page[m[4]:m[5]],
		})
	}

	type substitution struct {
		start, end int
		text       string
	}
	var subs []substitution
	for _, m := range matches {
		if insideCodeRegion(page[:m.start]) {
			continue
		}
		href, ok := p.resolve(m.bundle, m.path, depth)
		if !ok {
			p.sink.Emit(diagnostics.Diagnostic{
				Severity: diagnostics.SeverityWarning,
				Message:  "unresolved cross-document link doc://" + m.bundle + m.path,
			})
			continue
		}
		label := m.path[strings.LastIndex(m.path, "/")+1:]
		subs = append(subs, substitution{
			start: m.start,
			end:   m.end,
			text:  `<a href="` + html.EscapeString(href) + `">` + html.EscapeString(label) + `</a>`,
		})
	}

	// Substitute back-to-front so earlier replacements never invalidate the
	// byte offsets of matches not yet processed. This ordering is a
	// correctness property, not an optimization.
	sort.Slice(subs, func(i, j int) bool { return subs[i].start > subs[j].start })
	out := page
	for _, s := range subs {
		out = out[:s.start] + s.text + out[s.end:]
	}
	return out
}

// resolve maps a bundle+path to an href. Documented modules win over the
// external URL map.
func (p *Processor) resolve(bundle, path string, depth int) (string, bool) {
	for name, id := range p.modules {
		if bundle == id || strings.EqualFold(bundle, name) {
			return links.RelativeLink(path, depth), true
		}
	}
	if base, ok := p.externalURLs[bundle]; ok {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		return base + strings.ToLower(strings.TrimPrefix(path, "/")), true
	}
	return "", false
}

// insideCodeRegion approximates "the position falls inside an unclosed
// <code> or <pre>" by comparing open and close tag counts in the preceding
// text. Not a full HTML parse; the input is produced by this same renderer
// and is well-formed.
func insideCodeRegion(prefix string) bool {
	lower := strings.ToLower(prefix)
	if strings.Count(lower, "<code") > strings.Count(lower, "</code") {
		return true
	}
	return strings.Count(lower, "<pre") > strings.Count(lower, "</pre")
}
