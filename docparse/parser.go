package docparse

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Parser converts uploaded document buffers into a ParsedDocument.
type Parser struct {
	logger *slog.Logger
}

// NewParser returns a Parser. A nil logger falls back to slog.Default.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse converts a binary buffer of the declared kind into a ParsedDocument.
// The operation is all-or-nothing: any failure surfaces as a *ParseError and
// no partial result is returned.
func (p *Parser) Parse(data []byte, kind SourceKind) (*ParsedDocument, error) {
	var (
		title  string
		blocks []ContentBlock
		err    error
	)
	switch kind {
	case KindWord:
		title, blocks, err = p.parseWord(data)
	case KindText:
		title, blocks, err = p.parseText(data)
	default:
		err = fmt.Errorf("unknown source kind %q", kind)
	}
	if err != nil {
		return nil, &ParseError{Kind: kind, Err: err}
	}
	if title == "" {
		title = DefaultTitle
	}

	p.logger.Debug("parsed document", "kind", kind, "blocks", len(blocks))

	return &ParsedDocument{
		Title:   title,
		Content: RenderBlocks(blocks),
		Excerpt: Excerpt(blocks),
		Images:  collectImages(blocks),
	}, nil
}

// parseWord converts a .docx buffer to intermediate HTML, then walks the
// element tree classifying each element into exactly one block.
func (p *Parser) parseWord(data []byte) (string, []ContentBlock, error) {
	markup, err := convertDocx(data)
	if err != nil {
		return "", nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", nil, err
	}

	// Title scan runs before and independently of block classification:
	// the first h1/h2/h3 or emphasized inline text wins.
	title := ""
	doc.Find("h1,h2,h3,strong,b").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if t := strings.TrimSpace(s.Text()); t != "" {
			title = t
			return false
		}
		return true
	})

	var blocks []ContentBlock
	doc.Find("body").Children().Each(func(_ int, s *goquery.Selection) {
		if b, ok := classify(s); ok {
			blocks = append(blocks, b)
		}
	})
	return title, blocks, nil
}

// classify maps one element to at most one ContentBlock. Elements with empty
// text are skipped, except images which are kept regardless.
func classify(s *goquery.Selection) (ContentBlock, bool) {
	tag := goquery.NodeName(s)
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return ContentBlock{}, false
		}
		return ContentBlock{Type: BlockHeading, Level: int(tag[1] - '0'), Content: text}, true

	case "p":
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return ContentBlock{}, false
		}
		return ContentBlock{Type: BlockParagraph, Content: text}, true

	case "ul", "ol":
		var items []string
		s.Find("li").Each(func(_ int, li *goquery.Selection) {
			if t := strings.TrimSpace(li.Text()); t != "" {
				items = append(items, t)
			}
		})
		if len(items) == 0 {
			return ContentBlock{}, false
		}
		return ContentBlock{Type: BlockList, Ordered: tag == "ol", Items: items}, true

	case "img":
		src, ok := s.Attr("src")
		if !ok || src == "" {
			return ContentBlock{}, false
		}
		return ContentBlock{Type: BlockImage, Content: src}, true

	case "table":
		inner, err := s.Html()
		if err != nil || strings.TrimSpace(s.Text()) == "" {
			return ContentBlock{}, false
		}
		// Tables are captured as opaque markup, not decomposed into cells.
		return ContentBlock{Type: BlockTable, Content: inner}, true
	}
	return ContentBlock{}, false
}

func collectImages(blocks []ContentBlock) []string {
	var images []string
	for _, b := range blocks {
		if b.Type == BlockImage {
			images = append(images, b.Content)
		}
	}
	return images
}
