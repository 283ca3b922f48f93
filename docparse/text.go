package docparse

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"
)

var pdfMagic = []byte("%PDF-")

// headingMaxLen is the cutoff for the short-line heading heuristic. A line
// under this length that does not end in a period is classified as a level-2
// heading. Tunable: the heuristic has known false positives either way.
const headingMaxLen = 100

// parseText handles text-like buffers. PDF buffers are run through a real
// extractor first; everything else is decoded as UTF-8 text. The decoded
// text then goes through line heuristics.
func (p *Parser) parseText(data []byte) (string, []ContentBlock, error) {
	var text string
	if bytes.HasPrefix(data, pdfMagic) {
		extracted, err := extractPDFText(data)
		if err != nil {
			return "", nil, err
		}
		text = extracted
	} else {
		text = sanitizeUTF8(string(data))
	}

	title := ""
	var blocks []ContentBlock
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		// First non-blank line is both the title and an h1 block.
		if title == "" {
			title = line
			blocks = append(blocks, ContentBlock{Type: BlockHeading, Level: 1, Content: line})
			continue
		}

		switch {
		case isBulleted(line):
			// Each qualifying line is its own single-item list; lines are
			// not grouped into a shared list.
			blocks = append(blocks, ContentBlock{Type: BlockList, Items: []string{stripBullet(line)}})
		case utf8.RuneCountInString(line) < headingMaxLen && !strings.HasSuffix(line, "."):
			blocks = append(blocks, ContentBlock{Type: BlockHeading, Level: 2, Content: line})
		default:
			blocks = append(blocks, ContentBlock{Type: BlockParagraph, Content: line})
		}
	}
	return title, blocks, nil
}

// isBulleted reports whether a line starts with a bullet glyph, a hyphen,
// or a numeric-dot prefix like "3.".
func isBulleted(line string) bool {
	if strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
		return true
	}
	for i, r := range line {
		if unicode.IsDigit(r) {
			continue
		}
		return i > 0 && r == '.'
	}
	return false
}

func stripBullet(line string) string {
	for _, prefix := range []string{"•", "-", "*"} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(line[len(prefix):])
		}
	}
	if idx := strings.Index(line, "."); idx > 0 {
		return strings.TrimSpace(line[idx+1:])
	}
	return line
}

// sanitizeUTF8 drops invalid bytes and non-printable runes so a stray binary
// upload degrades to its readable content instead of garbage.
func sanitizeUTF8(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r == utf8.RuneError {
			continue
		}
		if r == '\n' || r == '\t' || unicode.IsPrint(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
