package model

import (
	"encoding/json"

	"git.home.luguber.info/inful/docrender/internal/links"
)

// NavigationNode is one node of the site-wide navigation index. The tree is
// loaded once per run and treated as immutable by every renderer.
type NavigationNode struct {
	Title    string
	Path     string
	NodeType string
	Children []*NavigationNode

	// IsGroupMarker marks a non-clickable section header within a sibling
	// list; its following siblings become the group's members.
	IsGroupMarker bool
	// IsExpandable marks a destination node that also owns children.
	IsExpandable bool
}

// NavigationIndex is the whole-site navigation tree plus interface metadata.
type NavigationIndex struct {
	SchemaVersion string            `json:"schemaVersion,omitempty"`
	Modules       []*NavigationNode `json:"modules"`
}

const nodeTypeGroupMarker = "groupMarker"

func (n *NavigationNode) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title    string            `json:"title"`
		Path     string            `json:"path"`
		Type     string            `json:"type"`
		Children []*NavigationNode `json:"children"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = NavigationNode{
		Title:         raw.Title,
		Path:          raw.Path,
		NodeType:      raw.Type,
		Children:      raw.Children,
		IsGroupMarker: raw.Type == nodeTypeGroupMarker,
		IsExpandable:  raw.Type != nodeTypeGroupMarker && len(raw.Children) > 0,
	}
	return nil
}

// ContainsPath reports whether the node or any descendant carries the given
// path. The full subtree is checked, not just direct children; expand-on-load
// depends on that. Comparison is normalized: document identifiers arrive
// mixed-case, navigation paths lowercase.
func (n *NavigationNode) ContainsPath(path string) bool {
	return n.containsNormalized(links.Normalize(path))
}

func (n *NavigationNode) containsNormalized(path string) bool {
	if n == nil || path == "" {
		return false
	}
	if n.Path != "" && links.Normalize(n.Path) == path {
		return true
	}
	for _, c := range n.Children {
		if c.containsNormalized(path) {
			return true
		}
	}
	return false
}

// FindModule locates the top-level module subtree whose path matches, under
// the same normalization ContainsPath uses. Returns nil when absent; callers
// render a fallback sidebar instead of failing.
func (idx *NavigationIndex) FindModule(path string) *NavigationNode {
	if idx == nil {
		return nil
	}
	want := links.Normalize(path)
	if want == "" {
		return nil
	}
	for _, m := range idx.Modules {
		if links.Normalize(m.Path) == want {
			return m
		}
	}
	return nil
}
