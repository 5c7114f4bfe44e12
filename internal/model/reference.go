package model

import "encoding/json"

// ReferenceType discriminates the closed set of reference variants.
type ReferenceType string

const (
	RefTopic       ReferenceType = "topic"
	RefImage       ReferenceType = "image"
	RefFile        ReferenceType = "file"
	RefUnsupported ReferenceType = "unsupported"
)

// Reference is one entry of a document's local reference table. Exactly one
// variant payload is populated according to Type; unknown payloads decode to
// RefUnsupported so a newer compiler never breaks rendering.
type Reference struct {
	Type     ReferenceType
	Topic    *TopicReference
	Image    *ImageReference
	File     *FileReference
}

// TopicReference points at another documented entity.
type TopicReference struct {
	Identifier string   `json:"identifier"`
	Title      string   `json:"title,omitempty"`
	URL        string   `json:"url,omitempty"`
	Abstract   []Inline `json:"abstract,omitempty"`
	KindTag    string   `json:"kind,omitempty"`
	Role       string   `json:"role,omitempty"`
}

// ImageReference carries per-appearance asset paths for one image.
type ImageReference struct {
	Identifier string            `json:"identifier"`
	Variants   map[string]string `json:"variants,omitempty"`
	AltText    string            `json:"alt,omitempty"`
}

// DefaultVariant picks the light-appearance asset, falling back to any
// variant with a stable preference order so output is deterministic.
func (r *ImageReference) DefaultVariant() string {
	if r == nil {
		return ""
	}
	for _, key := range []string{"light", "1x", "standard"} {
		if p, ok := r.Variants[key]; ok && p != "" {
			return p
		}
	}
	// Deterministic fallback: smallest key wins.
	best, bestKey := "", ""
	for k, p := range r.Variants {
		if p == "" {
			continue
		}
		if bestKey == "" || k < bestKey {
			bestKey, best = k, p
		}
	}
	return best
}

// FileReference is an inlined code file shown alongside tutorial steps.
type FileReference struct {
	Identifier string   `json:"identifier"`
	FileName   string   `json:"fileName,omitempty"`
	Syntax     string   `json:"syntax,omitempty"`
	Lines      []string `json:"content,omitempty"`
}

func (r *Reference) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type ReferenceType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch probe.Type {
	case RefTopic, "": // older archives omit the tag on topic entries
		var t TopicReference
		if err := json.Unmarshal(data, &t); err != nil {
			return err
		}
		*r = Reference{Type: RefTopic, Topic: &t}
	case RefImage:
		var img ImageReference
		if err := json.Unmarshal(data, &img); err != nil {
			return err
		}
		*r = Reference{Type: RefImage, Image: &img}
	case RefFile:
		var f FileReference
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*r = Reference{Type: RefFile, File: &f}
	default:
		*r = Reference{Type: RefUnsupported}
	}
	return nil
}
