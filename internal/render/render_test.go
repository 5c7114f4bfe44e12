package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docrender/internal/diagnostics"
	"git.home.luguber.info/inful/docrender/internal/model"
)

func testRefs() map[string]*model.Reference {
	return map[string]*model.Reference{
		"doc://acme/documentation/acme/widget": {
			Type: model.RefTopic,
			Topic: &model.TopicReference{
				Identifier: "doc://acme/documentation/acme/widget",
				Title:      "Widget",
				URL:        "/documentation/acme/widget",
			},
		},
		"hero.png": {
			Type: model.RefImage,
			Image: &model.ImageReference{
				Identifier: "hero.png",
				Variants:   map[string]string{"light": "/images/hero.png"},
				AltText:    "A hero",
			},
		},
	}
}

func TestInlineReference_TitleFromTopic(t *testing.T) {
	r := New(testRefs(), 2, nil)
	out := r.Inline(model.Inline{
		Type:       model.InlineReference,
		Identifier: "doc://acme/documentation/acme/widget",
		IsActive:   true,
	})
	require.Equal(t, `<a class="link" href="../../documentation/acme/widget/index.html">Widget</a>`, out)
}

func TestInlineReference_LabelPrecedence(t *testing.T) {
	// All override sources present at once: inline-content override wins.
	r := New(testRefs(), 0, nil)
	in := model.Inline{
		Type:          model.InlineReference,
		Identifier:    "doc://acme/documentation/acme/widget",
		IsActive:      true,
		OverrideTitle: "Plain Override",
		OverrideSpans: []model.Inline{{Type: model.InlineText, Text: "Span Override"}},
	}
	require.Contains(t, r.Inline(in), ">Span Override</a>")

	in.OverrideSpans = nil
	require.Contains(t, r.Inline(in), ">Plain Override</a>")

	in.OverrideTitle = ""
	require.Contains(t, r.Inline(in), ">Widget</a>")
}

func TestInlineReference_RawIDFallbackLabel(t *testing.T) {
	r := New(map[string]*model.Reference{}, 0, nil)
	out := r.Inline(model.Inline{Type: model.InlineReference, Identifier: "doc://acme/missing", IsActive: true})
	require.Equal(t, `<span class="link-inactive">doc://acme/missing</span>`, out)
}

func TestInlineReference_InactiveNeverLinks(t *testing.T) {
	sink := &diagnostics.Collector{}
	r := New(testRefs(), 1, sink)
	out := r.Inline(model.Inline{
		Type:       model.InlineReference,
		Identifier: "doc://acme/documentation/acme/widget",
		IsActive:   false,
	})
	require.NotContains(t, out, "<a ")
	require.Contains(t, out, "Widget")
	// Inactive-but-resolvable is not a diagnostic.
	require.Equal(t, 0, sink.Count(diagnostics.SeverityWarning))
}

func TestInlineReference_UnresolvedEmitsWarning(t *testing.T) {
	sink := &diagnostics.Collector{}
	r := New(map[string]*model.Reference{}, 0, sink)
	_ = r.Inline(model.Inline{Type: model.InlineReference, Identifier: "doc://gone", IsActive: true})
	require.Equal(t, 1, sink.Count(diagnostics.SeverityWarning))
}

func TestInlineImage_UsesAssetPath(t *testing.T) {
	r := New(testRefs(), 2, nil)
	out := r.Inline(model.Inline{Type: model.InlineImage, Identifier: "hero.png"})
	require.Equal(t, `<img src="../../images/hero.png" alt="A hero" />`, out)
}

func TestInlineContainers(t *testing.T) {
	r := New(nil, 0, nil)
	out := r.Inlines([]model.Inline{
		{Type: model.InlineEmphasis, Children: []model.Inline{{Type: model.InlineText, Text: "em"}}},
		{Type: model.InlineCodeVoice, Text: "let x = 1"},
		{Type: model.InlineText, Text: "a < b"},
	})
	require.Equal(t, "<em>em</em><code>let x = 1</code>a &lt; b", out)
}

func TestUnknownNodesRenderEmpty(t *testing.T) {
	r := New(nil, 0, nil)
	require.Equal(t, "", r.Block(model.Block{Type: model.BlockUnsupported}))
	require.Equal(t, "", r.Inline(model.Inline{Type: model.InlineUnsupported}))
}

func TestTable_FirstRowIsHeader(t *testing.T) {
	cell := func(text string) []model.Block {
		return []model.Block{{Type: model.BlockParagraph, Spans: []model.Inline{{Type: model.InlineText, Text: text}}}}
	}
	r := New(nil, 0, nil)
	out := r.Block(model.Block{Type: model.BlockTable, Rows: [][][]model.Block{
		{cell("h1"), cell("h2")},
		{cell("a"), cell("b")},
	}})
	require.Contains(t, out, "<thead><tr><th><p>h1</p></th><th><p>h2</p></th></tr></thead>")
	require.Contains(t, out, "<tbody><tr><td><p>a</p></td><td><p>b</p></td></tr></tbody>")
}

func TestTable_SingleRowHasNoBody(t *testing.T) {
	cell := func(text string) []model.Block {
		return []model.Block{{Type: model.BlockParagraph, Spans: []model.Inline{{Type: model.InlineText, Text: text}}}}
	}
	r := New(nil, 0, nil)
	out := r.Block(model.Block{Type: model.BlockTable, Rows: [][][]model.Block{{cell("only")}}})
	require.Contains(t, out, "<thead>")
	require.NotContains(t, out, "<tbody>")
}

func TestOrderedList_StartAttribute(t *testing.T) {
	r := New(nil, 0, nil)
	item := [][]model.Block{{{Type: model.BlockParagraph, Spans: []model.Inline{{Type: model.InlineText, Text: "x"}}}}}

	out := r.Block(model.Block{Type: model.BlockOrderedList, StartIndex: 1, Items: item})
	require.True(t, strings.HasPrefix(out, "<ol>"), out)

	out = r.Block(model.Block{Type: model.BlockOrderedList, StartIndex: 4, Items: item})
	require.True(t, strings.HasPrefix(out, `<ol start="4">`), out)
}

func TestCodeListing_UnknownSyntaxFallsBack(t *testing.T) {
	r := New(nil, 0, nil)
	out := r.Block(model.Block{Type: model.BlockCodeListing, Syntax: "no-such-lang", Lines: []string{"a < b", "c"}})
	require.Contains(t, out, "a &lt; b\nc")
	require.Contains(t, out, `data-syntax="no-such-lang"`)
}

func TestCodeListing_KnownSyntaxHighlights(t *testing.T) {
	r := New(nil, 0, nil)
	out := r.Block(model.Block{Type: model.BlockCodeListing, Syntax: "go", Lines: []string{`fmt.Println("hi")`}})
	// chroma with classes emits classed spans inside the code region
	require.Contains(t, out, "<span class=")
}

func TestDeclarationTokens(t *testing.T) {
	r := New(testRefs(), 1, nil)
	out := r.Declaration(model.Declaration{Tokens: []model.DeclarationToken{
		{Text: "func ", Kind: "keyword"},
		{Text: "makeWidget", Kind: "identifier", Identifier: "doc://acme/documentation/acme/widget"},
		{Text: "()", Kind: "text"},
	}})
	require.Contains(t, out, `<span class="token-keyword">func </span>`)
	require.Contains(t, out, `<a href="../documentation/acme/widget/index.html"><span class="token-identifier">makeWidget</span></a>`)
	require.Contains(t, out, "()")
	require.NotContains(t, out, `class="token-text"`)
}

func TestAsideDefaultsTitleFromStyle(t *testing.T) {
	r := New(nil, 0, nil)
	out := r.Block(model.Block{Type: model.BlockAside, AsideStyle: "warning", Children: []model.Block{
		{Type: model.BlockParagraph, Spans: []model.Inline{{Type: model.InlineText, Text: "careful"}}},
	}})
	require.Contains(t, out, `class="aside aside-warning"`)
	require.Contains(t, out, `<p class="aside-title">Warning</p>`)
}

func TestAsideTitleCapitalizesMultibyteStyle(t *testing.T) {
	r := New(nil, 0, nil)
	out := r.Block(model.Block{Type: model.BlockAside, AsideStyle: "überhinweis"})
	require.Contains(t, out, `<p class="aside-title">Überhinweis</p>`)
}
