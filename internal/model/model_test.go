package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
	"identifier": "/documentation/acme/widget",
	"kind": "reference",
	"title": "Widget",
	"abstract": [{"type": "text", "text": "A widget."}],
	"sections": [
		{"kind": "declarations", "declarations": [{"tokens": [
			{"text": "struct ", "kind": "keyword"},
			{"text": "Widget", "kind": "identifier"}
		]}]},
		{"kind": "content", "content": [
			{"type": "paragraph", "inlineContent": [
				{"type": "text", "text": "See "},
				{"type": "reference", "identifier": "doc://acme/documentation/acme", "isActive": true}
			]},
			{"type": "hologram", "frob": 1}
		]}
	],
	"topicGroups": [{"title": "Essentials", "identifiers": ["doc://acme/documentation/acme"]}],
	"references": {
		"doc://acme/documentation/acme": {
			"type": "topic",
			"identifier": "doc://acme/documentation/acme",
			"title": "Acme",
			"url": "/documentation/acme"
		},
		"hero.png": {
			"type": "image",
			"identifier": "hero.png",
			"variants": {"light": "/images/hero.png", "dark": "/images/hero~dark.png"},
			"alt": "Hero"
		},
		"mystery": {"type": "hologram"}
	}
}`

func TestDecodeDocument(t *testing.T) {
	doc, err := DecodeDocument([]byte(sampleDocument))
	require.NoError(t, err)
	require.Equal(t, "/documentation/acme/widget", doc.Identifier)
	require.Equal(t, KindReference, doc.Kind)
	require.Equal(t, 3, doc.Depth())

	require.Len(t, doc.Sections, 2)
	require.Equal(t, SectionDeclarations, doc.Sections[0].Kind)
	require.Equal(t, "keyword", doc.Sections[0].Declarations[0].Tokens[0].Kind)

	content := doc.Sections[1].Content
	require.Len(t, content, 2)
	require.Equal(t, BlockParagraph, content[0].Type)
	require.Equal(t, InlineReference, content[0].Spans[1].Type)
	require.True(t, content[0].Spans[1].IsActive)
	// Unknown block kinds decode to the unsupported variant, not an error.
	require.Equal(t, BlockUnsupported, content[1].Type)
}

func TestDecodeDocument_References(t *testing.T) {
	doc, err := DecodeDocument([]byte(sampleDocument))
	require.NoError(t, err)

	topic := doc.Resolve("doc://acme/documentation/acme")
	require.NotNil(t, topic)
	require.Equal(t, RefTopic, topic.Type)
	require.Equal(t, "Acme", topic.Topic.Title)

	img := doc.Resolve("hero.png")
	require.Equal(t, RefImage, img.Type)
	require.Equal(t, "/images/hero.png", img.Image.DefaultVariant())

	require.Equal(t, RefUnsupported, doc.Resolve("mystery").Type)
	require.Nil(t, doc.Resolve("absent"))
}

func TestDecodeDocument_MissingIdentifierFails(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"kind": "reference"}`))
	require.Error(t, err)
}

func TestBlockDecode_ListsAndTables(t *testing.T) {
	raw := `{"type": "orderedList", "start": 3, "items": [
		{"content": [{"type": "paragraph", "inlineContent": [{"type": "text", "text": "x"}]}]}
	]}`
	var blk Block
	require.NoError(t, json.Unmarshal([]byte(raw), &blk))
	require.Equal(t, BlockOrderedList, blk.Type)
	require.Equal(t, 3, blk.StartIndex)
	require.Len(t, blk.Items, 1)

	raw = `{"type": "unorderedList", "items": [{"content": []}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &blk))
	require.Equal(t, 1, blk.StartIndex)

	raw = `{"type": "termList", "items": [
		{"term": {"inlineContent": [{"type": "text", "text": "term"}]},
		 "definition": {"content": [{"type": "paragraph", "inlineContent": []}]}}
	]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &blk))
	require.Equal(t, BlockTermList, blk.Type)
	require.Len(t, blk.Terms, 1)
}

func TestInlineDecode_DefaultsActiveTrue(t *testing.T) {
	var in Inline
	require.NoError(t, json.Unmarshal([]byte(`{"type": "reference", "identifier": "doc://x"}`), &in))
	require.True(t, in.IsActive)

	require.NoError(t, json.Unmarshal([]byte(`{"type": "reference", "identifier": "doc://x", "isActive": false}`), &in))
	require.False(t, in.IsActive)
}

func TestNavigationNodeDecode_DerivesFlags(t *testing.T) {
	raw := `{"title": "Essentials", "type": "groupMarker"}`
	var n NavigationNode
	require.NoError(t, json.Unmarshal([]byte(raw), &n))
	require.True(t, n.IsGroupMarker)
	require.False(t, n.IsExpandable)

	raw = `{"title": "Widget", "path": "/documentation/acme/widget", "type": "struct",
		"children": [{"title": "init()", "path": "/documentation/acme/widget/init()", "type": "init"}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &n))
	require.False(t, n.IsGroupMarker)
	require.True(t, n.IsExpandable)
	require.True(t, n.ContainsPath("/documentation/acme/widget/init()"))
	require.False(t, n.ContainsPath("/documentation/other"))
}

func TestNavigationLookupIgnoresIdentifierCase(t *testing.T) {
	// Document identifiers keep their original casing while navigation paths
	// are lowercase; lookups must meet in the middle.
	idx := &NavigationIndex{Modules: []*NavigationNode{{
		Title: "AcmeKit", Path: "/documentation/acmekit", NodeType: "module",
		Children: []*NavigationNode{
			{Title: "Widget", Path: "/documentation/acmekit/widget", NodeType: "struct"},
		},
	}}}
	require.NotNil(t, idx.FindModule("/documentation/AcmeKit"))
	require.NotNil(t, idx.FindModule("documentation/acmekit/"))
	require.Nil(t, idx.FindModule("/documentation/other"))
	require.Nil(t, idx.FindModule(""))
	require.True(t, idx.Modules[0].ContainsPath("/documentation/AcmeKit/Widget"))
	require.False(t, idx.Modules[0].ContainsPath(""))
}

func TestPathDepth(t *testing.T) {
	require.Equal(t, 0, PathDepth("/"))
	require.Equal(t, 2, PathDepth("/documentation/acme"))
	require.Equal(t, 3, PathDepth("documentation/acme/widget/"))
}
