// Package links computes relative URLs between generated pages. It is the
// single implementation of the depth-prefix formula; every component that
// emits an href or src must go through it so link shape never diverges
// between body content, sidebar, and breadcrumbs.
package links

import "strings"

// RelativeLink maps a canonical target id plus the referring page's depth to
// a relative page URL. The upstream compiler emits lowercase directory names,
// so the target is lowercased to match on case-sensitive filesystems.
func RelativeLink(targetID string, fromDepth int) string {
	return prefix(fromDepth) + Normalize(targetID) + "/index.html"
}

// RelativeAsset is RelativeLink without the index.html suffix, for images
// and downloads whose target is a file path rather than a page directory.
func RelativeAsset(targetPath string, fromDepth int) string {
	return prefix(fromDepth) + Normalize(targetPath)
}

// Normalize is the canonical form used for path identity: surrounding
// slashes trimmed, lowercased. Document identifiers arrive mixed-case while
// navigation paths are lowercase, so every comparison between the two must
// normalize both sides with this same formula.
func Normalize(id string) string {
	return strings.ToLower(strings.Trim(id, "/"))
}

// DepthOf counts non-empty slash-delimited segments of a canonical id.
func DepthOf(id string) int {
	n := 0
	for _, seg := range strings.Split(id, "/") {
		if seg != "" {
			n++
		}
	}
	return n
}

func prefix(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat("../", depth)
}
