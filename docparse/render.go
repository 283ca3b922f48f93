package docparse

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// excerptMaxLen caps derived excerpts. Longer first paragraphs are cut to
// 157 characters plus an ellipsis.
const excerptMaxLen = 160

// tablePolicy keeps table structure and basic inline markup from uploaded
// documents and strips everything else.
var tablePolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("table", "thead", "tbody", "tr", "th", "td", "caption", "p", "strong", "em", "b", "i", "br", "span")
	return p
}()

// RenderBlocks concatenates all blocks, in order, into one markup string.
// Image alignment alternates left/right for each successive image; this is
// a layout rule, not an accident of the walk order.
func RenderBlocks(blocks []ContentBlock) string {
	var buf bytes.Buffer
	imageCount := 0
	for _, b := range blocks {
		renderBlock(&buf, b, &imageCount)
	}
	return buf.String()
}

func renderBlock(buf *bytes.Buffer, b ContentBlock, imageCount *int) {
	switch b.Type {
	case BlockHeading:
		level := b.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		fmt.Fprintf(buf, "<h%d>%s</h%d>", level, html.EscapeString(b.Content), level)

	case BlockParagraph:
		buf.WriteString("<p>" + html.EscapeString(b.Content) + "</p>")

	case BlockList:
		tag := "ul"
		if b.Ordered {
			tag = "ol"
		}
		buf.WriteString("<" + tag + ">")
		for _, item := range b.Items {
			buf.WriteString("<li>" + html.EscapeString(item) + "</li>")
		}
		buf.WriteString("</" + tag + ">")

	case BlockImage:
		*imageCount++
		align := "left"
		if *imageCount%2 == 0 {
			align = "right"
		}
		src := html.EscapeString(b.Content)
		fmt.Fprintf(buf, `<figure class="doc-image align-%s"><img src="%s" alt=""/><figcaption>%s</figcaption></figure>`,
			align, src, html.EscapeString(imageCaption(b.Content)))

	case BlockTable:
		buf.WriteString("<table>" + tablePolicy.Sanitize(b.Content) + "</table>")

	default:
		buf.WriteString("<p>" + html.EscapeString(b.Content) + "</p>")
	}
}

// imageCaption derives a caption from the image filename.
func imageCaption(src string) string {
	base := src
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndexByte(base, '.'); idx > 0 {
		base = base[:idx]
	}
	return strings.ReplaceAll(base, "-", " ")
}

// Excerpt returns the first paragraph's text capped at excerptMaxLen
// characters, or "" when the document has no paragraph blocks.
func Excerpt(blocks []ContentBlock) string {
	for _, b := range blocks {
		if b.Type != BlockParagraph {
			continue
		}
		text := b.Content
		if utf8.RuneCountInString(text) <= excerptMaxLen {
			return text
		}
		runes := []rune(text)
		return string(runes[:excerptMaxLen-3]) + "..."
	}
	return ""
}
