// Package docparse converts uploaded documents into a normalized block model
// and renders that model back into HTML for the post editor.
//
// Supported inputs:
//   - .docx, Microsoft Word (archive/zip, word/document.xml, HTML, blocks)
//   - text-like buffers, including PDF (extracted with pdfcpu before the
//     line heuristics run)
package docparse

import "fmt"

// SourceKind declares how an uploaded buffer should be interpreted.
type SourceKind string

const (
	KindWord SourceKind = "word"
	KindText SourceKind = "text"
)

// BlockType is the closed enumeration of parser output blocks.
type BlockType string

const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockList      BlockType = "list"
	BlockImage     BlockType = "image"
	BlockTable     BlockType = "table"
)

// ContentBlock is one typed unit of parsed document content.
//
// Level is set only for heading blocks and stays within 1..6. Items is
// present and non-empty only for list blocks. For image blocks Content is
// the image source; for table blocks it is the table's inner markup kept
// verbatim (sanitized at render time).
type ContentBlock struct {
	Type    BlockType `json:"type"`
	Level   int       `json:"level,omitempty"`
	Content string    `json:"content,omitempty"`
	Ordered bool      `json:"ordered,omitempty"`
	Items   []string  `json:"items,omitempty"`
}

// ParsedDocument is the terminal artifact of ingestion. It is handed to the
// admin form for manual edit and never persisted in this shape.
type ParsedDocument struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Excerpt string   `json:"excerpt"`
	Images  []string `json:"images"`
}

// DefaultTitle is used when no heading-like text is found in a document.
const DefaultTitle = "Untitled Document"

// ParseError wraps any failure during conversion or decoding. No partial
// document is ever returned alongside it.
type ParseError struct {
	Kind SourceKind
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("docparse: parse %s document: %v", e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
