package navigation

import "html"

// symbolBadges maps API-symbol node types to their single-character badge.
var symbolBadges = map[string]string{
	"class":          "C",
	"struct":         "S",
	"enum":           "E",
	"enum.case":      "K",
	"protocol":       "P",
	"typealias":      "T",
	"associatedtype": "A",
	"func":           "F",
	"method":         "M",
	"property":       "P",
	"var":            "V",
	"init":           "I",
	"subscript":      "B",
	"operator":       "O",
	"macro":          "X",
}

// documentIcons holds the node types rendered with a pictogram icon instead
// of a badge. Badge and icon are mutually exclusive per node type.
var documentIcons = map[string]struct{}{
	"article":    {},
	"collection": {},
	"module":     {},
	"overview":   {},
	"tutorial":   {},
	"project":    {},
	"chapter":    {},
	"volume":     {},
	"sampleCode": {},
	"book":       {},
	"root":       {},
}

// decorationFor returns the badge or icon span for a node type. Unknown
// types get a generic placeholder badge.
func decorationFor(nodeType string) string {
	if nodeType == "" {
		return ""
	}
	if badge, ok := symbolBadges[nodeType]; ok {
		return `<span class="nav-badge nav-badge-` + html.EscapeString(nodeType) + `" aria-hidden="true">` + badge + `</span>`
	}
	if _, ok := documentIcons[nodeType]; ok {
		return `<span class="nav-icon nav-icon-` + html.EscapeString(nodeType) + `" aria-hidden="true"></span>`
	}
	return `<span class="nav-badge nav-badge-generic" aria-hidden="true">?</span>`
}
