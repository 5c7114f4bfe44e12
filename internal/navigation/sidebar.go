// Package navigation builds the collapsible sidebar from the site-wide
// navigation index. Disclosure state is encoded with checkbox/label markup so
// pages work without script; only the active-page expansion and group
// defaults are decided at generation time.
package navigation

import (
	"fmt"
	"html"
	"strings"

	"git.home.luguber.info/inful/docrender/internal/links"
	"git.home.luguber.info/inful/docrender/internal/model"
)

// Builder renders one sidebar. A fresh Builder is created per page build so
// the pre-order disclosure counter is deterministic for every page.
type Builder struct {
	activeID string // normalized; compare via isActive only
	depth    int
	counter  int
}

// isActive reports whether a navigation path denotes the page being built.
// Both sides go through the link normalization so mixed-case identifiers
// match lowercase navigation paths.
func (b *Builder) isActive(path string) bool {
	return path != "" && links.Normalize(path) == b.activeID
}

// BuildSidebar renders the sidebar for the module at modulePath, expanded so
// the document with activeID stays visible. When the module is missing from
// the tree a minimal title-only sidebar is returned instead of failing.
func BuildSidebar(idx *model.NavigationIndex, modulePath, activeID string, depth int) string {
	module := idx.FindModule(modulePath)
	if module == nil {
		return fallbackSidebar(modulePath)
	}
	b := &Builder{activeID: links.Normalize(activeID), depth: depth}
	var out strings.Builder
	out.WriteString(`<nav class="sidebar"><p class="sidebar-module">`)
	out.WriteString(`<a href="` + html.EscapeString(links.RelativeLink(module.Path, depth)) + `">`)
	out.WriteString(html.EscapeString(module.Title))
	out.WriteString(`</a></p>`)
	out.WriteString(b.siblings(module.Children))
	out.WriteString(`</nav>`)
	return out.String()
}

func fallbackSidebar(modulePath string) string {
	title := modulePath
	if i := strings.LastIndex(strings.Trim(modulePath, "/"), "/"); i >= 0 {
		title = strings.Trim(modulePath, "/")[i+1:]
	}
	return `<nav class="sidebar"><p class="sidebar-module">` + html.EscapeString(title) + `</p></nav>`
}

// group is one partitioned segment of a sibling list: a marker plus the
// items up to the next marker. Leading items without a marker form a group
// with a nil marker.
type group struct {
	marker *model.NavigationNode
	items  []*model.NavigationNode
}

func partition(siblings []*model.NavigationNode) []group {
	var groups []group
	cur := group{}
	flush := func() {
		if cur.marker != nil || len(cur.items) > 0 {
			groups = append(groups, cur)
		}
	}
	for _, n := range siblings {
		if n.IsGroupMarker {
			flush()
			cur = group{marker: n}
			continue
		}
		cur.items = append(cur.items, n)
	}
	flush()
	return groups
}

// siblings renders a sibling list as partitioned groups.
func (b *Builder) siblings(nodes []*model.NavigationNode) string {
	var out strings.Builder
	for _, g := range partition(nodes) {
		if g.marker == nil {
			out.WriteString(`<ul class="nav-list">`)
			for _, n := range g.items {
				out.WriteString(b.item(n))
			}
			out.WriteString(`</ul>`)
			continue
		}
		if flat, ok := flatten(g); ok {
			// Redundant marker elided: one collapsible header carrying the
			// marker's title, linking to the expandable child's own path,
			// with that child's children promoted a level. Collapsed unless
			// the active page lives inside.
			expanded := flat.ContainsPath(b.activeID)
			out.WriteString(b.collapsible(g.marker.Title, flat.Path, flat.Children, expanded))
			continue
		}
		// Ordinary groups default to expanded.
		expanded := true
		out.WriteString(b.collapsible(g.marker.Title, "", g.items, expanded))
	}
	return out.String()
}

// flatten reports whether a marker group is the redundant marker+sole-child
// shape: exactly one item, expandable, title equal to the marker's title
// case-insensitively. Best-effort cosmetic normalization; see DESIGN.md.
func flatten(g group) (*model.NavigationNode, bool) {
	if len(g.items) != 1 {
		return nil, false
	}
	only := g.items[0]
	if !only.IsExpandable {
		return nil, false
	}
	if !strings.EqualFold(strings.TrimSpace(only.Title), strings.TrimSpace(g.marker.Title)) {
		return nil, false
	}
	return only, true
}

// collapsible emits one disclosure section. headerPath, when non-empty, makes
// the header itself a link. The checkbox encodes open state; expand-on-load
// overrides the default whenever the active document lives in the subtree.
func (b *Builder) collapsible(title, headerPath string, children []*model.NavigationNode, expandedDefault bool) string {
	expanded := expandedDefault
	if !expanded {
		for _, c := range children {
			if c.ContainsPath(b.activeID) {
				expanded = true
				break
			}
		}
		if b.isActive(headerPath) {
			expanded = true
		}
	}
	id := b.nextID()

	var out strings.Builder
	out.WriteString(`<section class="nav-group">`)
	out.WriteString(`<input type="checkbox" class="nav-toggle" id="` + id + `"`)
	if expanded {
		out.WriteString(` checked`)
	}
	out.WriteString(` />`)
	out.WriteString(`<label class="nav-group-title" for="` + id + `">`)
	if headerPath != "" {
		out.WriteString(`<a href="` + html.EscapeString(links.RelativeLink(headerPath, b.depth)) + `">` + html.EscapeString(title) + `</a>`)
	} else {
		out.WriteString(html.EscapeString(title))
	}
	out.WriteString(`</label>`)
	if hasMarker(children) {
		// Nested markers partition the child list into their own groups.
		out.WriteString(`<div class="nav-children">` + b.siblings(children) + `</div>`)
	} else {
		out.WriteString(`<ul class="nav-list">`)
		for _, c := range children {
			out.WriteString(b.item(c))
		}
		out.WriteString(`</ul>`)
	}
	out.WriteString(`</section>`)
	return out.String()
}

func hasMarker(nodes []*model.NavigationNode) bool {
	for _, n := range nodes {
		if n.IsGroupMarker {
			return true
		}
	}
	return false
}

// item renders one navigation entry; expandable nodes recurse as nested
// collapsibles which are force-expanded only around the active document.
func (b *Builder) item(n *model.NavigationNode) string {
	if n.IsGroupMarker {
		// Markers never reach here; partition and hasMarker consume them.
		return ""
	}
	if n.IsExpandable {
		expanded := b.isActive(n.Path) || n.ContainsPath(b.activeID)
		return `<li class="nav-item">` + b.collapsible(n.Title, n.Path, n.Children, expanded) + `</li>`
	}
	var out strings.Builder
	out.WriteString(`<li class="nav-item">`)
	decoration := decorationFor(n.NodeType)
	if n.Path != "" {
		cls := "nav-link"
		if b.isActive(n.Path) {
			cls += " nav-link-current"
		}
		out.WriteString(`<a class="` + cls + `" href="` + html.EscapeString(links.RelativeLink(n.Path, b.depth)) + `">`)
		out.WriteString(decoration)
		out.WriteString(html.EscapeString(n.Title))
		out.WriteString(`</a>`)
	} else {
		out.WriteString(`<span class="nav-text">` + decoration + html.EscapeString(n.Title) + `</span>`)
	}
	out.WriteString(`</li>`)
	return out.String()
}

func (b *Builder) nextID() string {
	b.counter++
	return fmt.Sprintf("nav-disclosure-%d", b.counter)
}
