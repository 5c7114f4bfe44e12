package model

import "encoding/json"

// BlockType discriminates block-level content variants.
type BlockType string

const (
	BlockParagraph     BlockType = "paragraph"
	BlockHeading       BlockType = "heading"
	BlockAside         BlockType = "aside"
	BlockCodeListing   BlockType = "codeListing"
	BlockOrderedList   BlockType = "orderedList"
	BlockUnorderedList BlockType = "unorderedList"
	BlockTable         BlockType = "table"
	BlockTermList      BlockType = "termList"
	BlockStep          BlockType = "step"
	BlockThematicBreak BlockType = "thematicBreak"
	BlockUnsupported   BlockType = "unsupported"
)

// Block is one node of block-level content. Only the fields belonging to the
// active Type are populated; everything else stays zero.
type Block struct {
	Type BlockType

	// paragraph
	Spans []Inline

	// heading
	Level  int
	Text   string
	Anchor string

	// aside
	AsideStyle string
	AsideTitle string
	Children   []Block

	// codeListing
	Syntax string
	Lines  []string

	// orderedList / unorderedList
	StartIndex int
	Items      [][]Block

	// table: rows of cells, each cell a block list; first row is the header
	Rows [][][]Block

	// termList
	Terms []TermItem

	// step
	StepContent []Block
	StepCaption []Block
	MediaTarget string
	CodeTarget  string
}

// TermItem is one term/definition pair of a term list.
type TermItem struct {
	Term       []Inline
	Definition []Block
}

// UnmarshalJSON decodes per-variant. List items and term pairs share the
// "items" key upstream, so the payload decode is keyed on the discriminator
// instead of one catch-all struct.
func (b *Block) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type BlockType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch probe.Type {
	case BlockParagraph:
		var p struct {
			Spans []Inline `json:"inlineContent"`
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*b = Block{Type: BlockParagraph, Spans: p.Spans}
	case BlockHeading:
		var h struct {
			Level  int    `json:"level"`
			Text   string `json:"text"`
			Anchor string `json:"anchor"`
		}
		if err := json.Unmarshal(data, &h); err != nil {
			return err
		}
		*b = Block{Type: BlockHeading, Level: h.Level, Text: h.Text, Anchor: h.Anchor}
	case BlockAside:
		var a struct {
			Style   string  `json:"style"`
			Name    string  `json:"name"`
			Content []Block `json:"content"`
		}
		if err := json.Unmarshal(data, &a); err != nil {
			return err
		}
		*b = Block{Type: BlockAside, AsideStyle: a.Style, AsideTitle: a.Name, Children: a.Content}
	case BlockCodeListing:
		var c struct {
			Syntax string   `json:"syntax"`
			Code   []string `json:"code"`
		}
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		*b = Block{Type: BlockCodeListing, Syntax: c.Syntax, Lines: c.Code}
	case BlockOrderedList, BlockUnorderedList:
		var l struct {
			Start *int `json:"start"`
			Items []struct {
				Content []Block `json:"content"`
			} `json:"items"`
		}
		if err := json.Unmarshal(data, &l); err != nil {
			return err
		}
		items := make([][]Block, 0, len(l.Items))
		for _, it := range l.Items {
			items = append(items, it.Content)
		}
		start := 1
		if l.Start != nil {
			start = *l.Start
		}
		*b = Block{Type: probe.Type, StartIndex: start, Items: items}
	case BlockTable:
		var t struct {
			Rows [][][]Block `json:"rows"`
		}
		if err := json.Unmarshal(data, &t); err != nil {
			return err
		}
		*b = Block{Type: BlockTable, Rows: t.Rows}
	case BlockTermList:
		var tl struct {
			Items []struct {
				Term struct {
					Spans []Inline `json:"inlineContent"`
				} `json:"term"`
				Definition struct {
					Content []Block `json:"content"`
				} `json:"definition"`
			} `json:"items"`
		}
		if err := json.Unmarshal(data, &tl); err != nil {
			return err
		}
		terms := make([]TermItem, 0, len(tl.Items))
		for _, it := range tl.Items {
			terms = append(terms, TermItem{Term: it.Term.Spans, Definition: it.Definition.Content})
		}
		*b = Block{Type: BlockTermList, Terms: terms}
	case BlockStep:
		var s struct {
			Content []Block `json:"content"`
			Caption []Block `json:"caption"`
			Media   string  `json:"media"`
			Code    string  `json:"code"`
		}
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = Block{Type: BlockStep, StepContent: s.Content, StepCaption: s.Caption, MediaTarget: s.Media, CodeTarget: s.Code}
	case BlockThematicBreak:
		*b = Block{Type: BlockThematicBreak}
	default:
		*b = Block{Type: BlockUnsupported}
	}
	return nil
}
