package navigation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docrender/internal/model"
)

func marker(title string) *model.NavigationNode {
	return &model.NavigationNode{Title: title, NodeType: "groupMarker", IsGroupMarker: true}
}

func leaf(title, path, nodeType string) *model.NavigationNode {
	return &model.NavigationNode{Title: title, Path: path, NodeType: nodeType}
}

func expandable(title, path string, children ...*model.NavigationNode) *model.NavigationNode {
	return &model.NavigationNode{Title: title, Path: path, NodeType: "collection", Children: children, IsExpandable: true}
}

func index(children ...*model.NavigationNode) *model.NavigationIndex {
	return &model.NavigationIndex{Modules: []*model.NavigationNode{
		{Title: "Acme", Path: "/documentation/acme", NodeType: "module", Children: children, IsExpandable: true},
	}}
}

func TestBuildSidebar_FallbackWhenModuleMissing(t *testing.T) {
	idx := index()
	out := BuildSidebar(idx, "/documentation/other", "", 1)
	require.Contains(t, out, "other")
	require.NotContains(t, out, "nav-group")
}

func TestBuildSidebar_ModuleHeadingLink(t *testing.T) {
	idx := index(leaf("Widget", "/documentation/acme/widget", "struct"))
	out := BuildSidebar(idx, "/documentation/acme", "", 2)
	require.Contains(t, out, `<a href="../../documentation/acme/index.html">Acme</a>`)
}

func TestFlattening_MarkerWithMatchingSoleExpandableChild(t *testing.T) {
	idx := index(
		marker("Tutorials"),
		expandable("Tutorials", "/tutorials/acme",
			leaf("Getting Started", "/tutorials/acme/getting-started", "project"),
			leaf("Advanced", "/tutorials/acme/advanced", "project"),
		),
	)
	out := BuildSidebar(idx, "/documentation/acme", "", 0)

	// Exactly one collapsible, not two nested ones.
	require.Equal(t, 1, strings.Count(out, "nav-toggle"))
	// Header carries the marker title and links to the child's path.
	require.Contains(t, out, `<a href="tutorials/acme/index.html">Tutorials</a>`)
	// Children promoted one level.
	require.Contains(t, out, "Getting Started")
	require.Contains(t, out, "Advanced")
	// Flattened groups default to collapsed.
	require.NotContains(t, out, "checked")
}

func TestFlattening_TitleMatchIsCaseInsensitive(t *testing.T) {
	idx := index(
		marker("TUTORIALS"),
		expandable("Tutorials", "/tutorials/acme", leaf("A", "/tutorials/acme/a", "project")),
	)
	out := BuildSidebar(idx, "/documentation/acme", "", 0)
	require.Equal(t, 1, strings.Count(out, "nav-toggle"))
}

func TestFlattening_NotAppliedWhenExtraSiblingPresent(t *testing.T) {
	idx := index(
		marker("Tutorials"),
		expandable("Tutorials", "/tutorials/acme", leaf("A", "/tutorials/acme/a", "project")),
		leaf("Stray", "/documentation/acme/stray", "article"),
	)
	out := BuildSidebar(idx, "/documentation/acme", "", 0)
	// Marker group plus nested expandable: two disclosure controls.
	require.Equal(t, 2, strings.Count(out, "nav-toggle"))
}

func TestExpandOnLoad_AncestorsOfActiveDocument(t *testing.T) {
	idx := index(
		marker("Tutorials"),
		expandable("Tutorials", "/tutorials/acme",
			expandable("Chapter 1", "/tutorials/acme/chapter1",
				leaf("Deep", "/tutorials/acme/chapter1/deep", "project"),
			),
		),
	)
	// The active page is a grand-descendant; the flattened group must still
	// open (full-subtree check, not direct children only).
	out := BuildSidebar(idx, "/documentation/acme", "/tutorials/acme/chapter1/deep", 0)
	first := strings.Index(out, "nav-toggle")
	require.Greater(t, first, -1)
	require.Contains(t, out[:strings.Index(out, "</label>")], "checked")
}

func TestGroupDefaults(t *testing.T) {
	idx := index(
		marker("Essentials"),
		leaf("Widget", "/documentation/acme/widget", "struct"),
		marker("Tutorials"),
		expandable("Tutorials", "/tutorials/acme", leaf("A", "/tutorials/acme/a", "project")),
	)
	out := BuildSidebar(idx, "/documentation/acme", "/somewhere/else", 0)

	sections := strings.Split(out, "<section")
	// First marker group is ordinary: defaults expanded.
	require.Contains(t, sections[1], "checked")
	// Second is flattened and unrelated to the active page: collapsed.
	require.NotContains(t, sections[2], "checked")
}

func TestDisclosureIDsAreDeterministicPerBuild(t *testing.T) {
	idx := index(
		marker("One"), leaf("A", "/documentation/acme/a", "article"),
		marker("Two"), leaf("B", "/documentation/acme/b", "article"),
	)
	first := BuildSidebar(idx, "/documentation/acme", "", 0)
	second := BuildSidebar(idx, "/documentation/acme", "", 0)
	require.Equal(t, first, second)
	require.Contains(t, first, `id="nav-disclosure-1"`)
	require.Contains(t, first, `id="nav-disclosure-2"`)
}

func TestBadgesAndIcons(t *testing.T) {
	require.Contains(t, decorationFor("struct"), ">S<")
	require.Contains(t, decorationFor("article"), "nav-icon-article")
	require.NotContains(t, decorationFor("article"), "nav-badge")
	require.Contains(t, decorationFor("mystery-kind"), "nav-badge-generic")
}

func TestMixedCaseActiveIDMatchesLowercasePaths(t *testing.T) {
	idx := index(
		expandable("Widget", "/documentation/acme/widget",
			leaf("init()", "/documentation/acme/widget/init()", "init"),
		),
	)
	out := BuildSidebar(idx, "/Documentation/Acme", "/Documentation/Acme/Widget/init()", 0)

	// The module resolves despite the casing difference: real groups, not
	// the title-only fallback.
	require.Contains(t, out, "nav-group")
	// The active leaf is marked and its ancestor opens.
	require.Contains(t, out, "nav-link-current")
	require.Contains(t, out, "checked")
}

func TestActiveLeafGetsCurrentClass(t *testing.T) {
	idx := index(leaf("Widget", "/documentation/acme/widget", "struct"))
	out := BuildSidebar(idx, "/documentation/acme", "/documentation/acme/widget", 0)
	require.Contains(t, out, "nav-link-current")
}
