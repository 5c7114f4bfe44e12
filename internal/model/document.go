package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DocumentKind selects which page archetype a document renders with.
type DocumentKind string

const (
	KindReference        DocumentKind = "reference"
	KindTutorial         DocumentKind = "tutorial"
	KindTutorialOverview DocumentKind = "tutorialOverview"
)

// Document is a single documented entity as emitted by the compiler.
// Instances are read-only after decoding; the rendering core never mutates them.
type Document struct {
	Identifier         string                `json:"identifier"`
	Kind               DocumentKind          `json:"kind"`
	Title              string                `json:"title,omitempty"`
	Abstract           []Inline              `json:"abstract,omitempty"`
	Sections           []Section             `json:"sections,omitempty"`
	TopicGroups        []TopicGroup          `json:"topicGroups,omitempty"`
	RelationshipGroups []RelationshipGroup   `json:"relationshipGroups,omitempty"`
	SeeAlsoGroups      []TopicGroup          `json:"seeAlsoGroups,omitempty"`
	References         map[string]*Reference `json:"references,omitempty"`
	Hierarchy          Hierarchy             `json:"hierarchy,omitempty"`
	Metadata           Metadata              `json:"metadata,omitempty"`
}

// TopicGroup is a titled list of curation targets resolved through the
// document's own reference table.
type TopicGroup struct {
	Title   string   `json:"title,omitempty"`
	Targets []string `json:"identifiers,omitempty"`
}

// RelationshipGroup captures inheritance/conformance style relations.
type RelationshipGroup struct {
	Kind    string   `json:"kind,omitempty"`
	Title   string   `json:"title,omitempty"`
	Targets []string `json:"identifiers,omitempty"`
}

// Hierarchy lists the ancestor paths of a document; the first path drives
// breadcrumb construction.
type Hierarchy struct {
	Paths [][]string `json:"paths,omitempty"`
}

// Metadata carries presentation extras that are optional for every kind.
type Metadata struct {
	RoleHeading   string `json:"roleHeading,omitempty"`
	EstimatedTime string `json:"estimatedTime,omitempty"`
	Category      string `json:"category,omitempty"`
}

// Depth returns the number of non-empty path segments in the document's
// identifier. It drives every relative-link computation for pages of this
// document, so it must never be derived from a link target instead.
func (d *Document) Depth() int {
	return PathDepth(d.Identifier)
}

// PathDepth counts non-empty slash-delimited segments of a canonical id.
func PathDepth(id string) int {
	n := 0
	for _, seg := range strings.Split(id, "/") {
		if seg != "" {
			n++
		}
	}
	return n
}

// Resolve looks up a target id in the document's local reference table.
// A miss returns nil; callers degrade to unlinked output rather than failing.
func (d *Document) Resolve(targetID string) *Reference {
	if d == nil || d.References == nil {
		return nil
	}
	return d.References[targetID]
}

// UnmarshalJSON validates the discriminator before the default decode so a
// bad kind is reported against the document rather than deep inside a page.
func (d *Document) UnmarshalJSON(data []byte) error {
	type alias Document
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	switch a.Kind {
	case KindReference, KindTutorial, KindTutorialOverview:
	case "":
		a.Kind = KindReference
	default:
		return fmt.Errorf("unknown document kind %q for %s", a.Kind, a.Identifier)
	}
	*d = Document(a)
	return nil
}
