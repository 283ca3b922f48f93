package editor

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
)

// textPolicy sanitizes author-supplied rich text. The WYSIWYG widgets emit
// HTML strings; everything outside basic formatting is stripped here.
var textPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("span", "p", "div")
	return p
}()

// Render returns a templ component for a whole saved document.
func Render(doc *Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		for _, b := range doc.Blocks {
			renderBlock(&buf, b)
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// RenderBlock returns a templ component for a single block, dispatching on
// its archetype. Unknown types fall back to plain-text rendering.
func RenderBlock(b VisualBlock) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		renderBlock(&buf, b)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func renderBlock(buf *bytes.Buffer, b VisualBlock) {
	c := b.Content
	switch b.Type {
	case TypeImageLeft:
		buf.WriteString(`<div class="block block-split">`)
		writeImage(buf, c)
		writeText(buf, c)
		buf.WriteString("</div>")

	case TypeImageRight:
		buf.WriteString(`<div class="block block-split block-reverse">`)
		writeText(buf, c)
		writeImage(buf, c)
		buf.WriteString("</div>")

	case TypeImageFull:
		buf.WriteString(`<div class="block block-image-full">`)
		writeImage(buf, c)
		buf.WriteString("</div>")

	case TypeTextFull:
		buf.WriteString(`<div class="block block-text` + fontClasses(c) + `">`)
		writeText(buf, c)
		buf.WriteString("</div>")

	case TypeImageCaption:
		buf.WriteString(`<figure class="block block-image-caption">`)
		writeImage(buf, c)
		buf.WriteString("<figcaption>" + html.EscapeString(c.Caption) + "</figcaption></figure>")

	case TypeVideo:
		src := safeURL(c.VideoURL)
		if src != "" {
			buf.WriteString(`<div class="block block-video"><iframe src="` + src + `" allowfullscreen></iframe></div>`)
		}

	case TypeTable:
		if c.TableData != nil {
			writeTable(buf, c.TableData)
		}

	case TypeChart:
		// Placeholder only; there is no chart rendering backend.
		if c.ChartData != nil {
			buf.WriteString(`<div class="block block-chart" data-chart-type="` + html.EscapeString(c.ChartData.Type) + `">`)
			buf.WriteString("<h4>" + html.EscapeString(c.ChartData.Title) + "</h4><ul>")
			for _, label := range c.ChartData.Labels {
				buf.WriteString("<li>" + html.EscapeString(label) + "</li>")
			}
			buf.WriteString("</ul></div>")
		}

	default:
		writeText(buf, c)
	}
}

// writeImage emits the image container with width, alignment, and the
// independent border/shadow style flags applied.
func writeImage(buf *bytes.Buffer, c BlockContent) {
	src := safeURL(c.ImageURL)
	if src == "" {
		return
	}
	classes := "block-img align-" + c.Alignment
	if c.HasBorder {
		classes += " bordered"
	}
	if c.HasShadow {
		classes += " shadowed"
	}
	fmt.Fprintf(buf, `<img class="%s" style="width:%d%%" src="%s" alt=""/>`, classes, c.Width, src)
}

func writeText(buf *bytes.Buffer, c BlockContent) {
	if strings.TrimSpace(c.Text) == "" {
		return
	}
	buf.WriteString(`<div class="block-body">` + textPolicy.Sanitize(c.Text) + "</div>")
}

func fontClasses(c BlockContent) string {
	out := ""
	if c.FontSize != "" {
		out += " text-" + c.FontSize
	}
	if c.FontWeight != "" {
		out += " font-" + c.FontWeight
	}
	return out
}

// writeTable renders headers once, then each row as a body row. Row length
// is assumed to match the header length.
func writeTable(buf *bytes.Buffer, t *TableData) {
	buf.WriteString(`<table class="block block-table"><thead><tr>`)
	for _, h := range t.Headers {
		buf.WriteString("<th>" + html.EscapeString(h) + "</th>")
	}
	buf.WriteString("</tr></thead><tbody>")
	for _, row := range t.Rows {
		buf.WriteString("<tr>")
		for _, cell := range row {
			buf.WriteString("<td>" + html.EscapeString(cell) + "</td>")
		}
		buf.WriteString("</tr>")
	}
	buf.WriteString("</tbody></table>")
}

// safeURL validates a URL for use in src attributes.
func safeURL(raw string) string {
	val := strings.TrimSpace(raw)
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return html.EscapeString(val)
	default:
		return ""
	}
}
