// Package editor maintains the ordered block sequence behind the visual
// post editor and renders saved block structures back to HTML.
package editor

import (
	"encoding/json"
	"fmt"
)

// BlockType enumerates the eight layout archetypes of the visual editor.
type BlockType string

const (
	TypeImageLeft    BlockType = "image_left"
	TypeImageRight   BlockType = "image_right"
	TypeImageFull    BlockType = "image_full"
	TypeTextFull     BlockType = "text_full"
	TypeImageCaption BlockType = "image_caption"
	TypeVideo        BlockType = "video"
	TypeTable        BlockType = "table"
	TypeChart        BlockType = "chart"
)

// BlockTypes lists every archetype in palette order.
var BlockTypes = []BlockType{
	TypeImageLeft, TypeImageRight, TypeImageFull, TypeTextFull,
	TypeImageCaption, TypeVideo, TypeTable, TypeChart,
}

// TableData holds table block content. Row length is assumed, not enforced,
// to match the header length.
type TableData struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// ChartData is a structural placeholder: only title, chart type, and labels
// are surfaced. There is no rendering backend behind it.
type ChartData struct {
	Title  string   `json:"title"`
	Type   string   `json:"type"`
	Labels []string `json:"labels"`
}

// BlockContent is the variant payload of a block. TableData is valid only on
// table blocks and ChartData only on chart blocks; normalize enforces that
// at the deserialization boundary.
type BlockContent struct {
	Text       string     `json:"text,omitempty"`
	ImageURL   string     `json:"imageUrl,omitempty"`
	Caption    string     `json:"caption,omitempty"`
	VideoURL   string     `json:"videoUrl,omitempty"`
	Width      int        `json:"width,omitempty"`     // percent, default 100
	Alignment  string     `json:"alignment,omitempty"` // left|center|right, default center
	HasBorder  bool       `json:"hasBorder,omitempty"`
	HasShadow  bool       `json:"hasShadow,omitempty"`
	FontSize   string     `json:"fontSize,omitempty"`
	FontWeight string     `json:"fontWeight,omitempty"`
	TableData  *TableData `json:"tableData,omitempty"`
	ChartData  *ChartData `json:"chartData,omitempty"`
}

// VisualBlock is one unit of the authoring sequence. The containing slice's
// order is the canonical render order; there is no display_order field.
type VisualBlock struct {
	ID      string       `json:"id"`
	Type    BlockType    `json:"type"`
	Content BlockContent `json:"content"`
}

func (b *VisualBlock) normalize() {
	if b.Type != TypeTable {
		b.Content.TableData = nil
	}
	if b.Type != TypeChart {
		b.Content.ChartData = nil
	}
	if b.Content.Width <= 0 || b.Content.Width > 100 {
		b.Content.Width = 100
	}
	switch b.Content.Alignment {
	case "left", "center", "right":
	default:
		b.Content.Alignment = "center"
	}
}

// Document is the whole editor state persisted as one JSON value alongside
// the post's flat fields.
type Document struct {
	Title         string        `json:"title"`
	FeaturedImage string        `json:"featuredImage,omitempty"`
	Author        string        `json:"author,omitempty"`
	Date          string        `json:"date,omitempty"`
	Blocks        []VisualBlock `json:"blocks"`
}

// ParseDocument decodes a serialized editor document, normalizing every
// block so invalid variant fields never survive past this boundary.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("editor: decode document: %w", err)
	}
	for i := range doc.Blocks {
		doc.Blocks[i].normalize()
	}
	return &doc, nil
}

// MarshalDocument serializes an editor document for storage.
func MarshalDocument(doc *Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("editor: encode document: %w", err)
	}
	return data, nil
}
