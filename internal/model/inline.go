package model

import "encoding/json"

// InlineType discriminates inline span variants.
type InlineType string

const (
	InlineText          InlineType = "text"
	InlineCodeVoice     InlineType = "codeVoice"
	InlineEmphasis      InlineType = "emphasis"
	InlineStrong        InlineType = "strong"
	InlineStrikethrough InlineType = "strikethrough"
	InlineSubscript     InlineType = "subscript"
	InlineSuperscript   InlineType = "superscript"
	InlineNewTerm       InlineType = "newTerm"
	InlineReference     InlineType = "reference"
	InlineImage         InlineType = "image"
	InlineUnsupported   InlineType = "unsupported"
)

// Inline is one span of inline content. Container variants (emphasis, strong,
// and friends) carry Children; reference and image variants carry a target id.
type Inline struct {
	Type     InlineType
	Text     string   // text, codeVoice
	Children []Inline // emphasis, strong, strikethrough, subscript, superscript, newTerm

	// Reference fields.
	Identifier    string
	IsActive      bool
	OverrideTitle string   // plain-string label override
	OverrideSpans []Inline // inline-content label override, wins over OverrideTitle
}

func (in *Inline) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type          InlineType `json:"type"`
		Text          string     `json:"text"`
		Code          string     `json:"code"`
		Children      []Inline   `json:"inlineContent"`
		Identifier    string     `json:"identifier"`
		IsActive      *bool      `json:"isActive"`
		OverrideTitle string     `json:"overridingTitle"`
		OverrideSpans []Inline   `json:"overridingTitleInlineContent"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Type {
	case InlineText:
		*in = Inline{Type: InlineText, Text: raw.Text}
	case InlineCodeVoice:
		*in = Inline{Type: InlineCodeVoice, Text: raw.Code}
	case InlineEmphasis, InlineStrong, InlineStrikethrough, InlineSubscript, InlineSuperscript, InlineNewTerm:
		*in = Inline{Type: raw.Type, Children: raw.Children}
	case InlineReference:
		active := true
		if raw.IsActive != nil {
			active = *raw.IsActive
		}
		*in = Inline{
			Type:          InlineReference,
			Identifier:    raw.Identifier,
			IsActive:      active,
			OverrideTitle: raw.OverrideTitle,
			OverrideSpans: raw.OverrideSpans,
		}
	case InlineImage:
		*in = Inline{Type: InlineImage, Identifier: raw.Identifier}
	default:
		*in = Inline{Type: InlineUnsupported}
	}
	return nil
}
