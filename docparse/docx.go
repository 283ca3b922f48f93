package docparse

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"path"
	"strings"
)

// convertDocx reads word/document.xml from a .docx archive and converts it to
// an intermediate HTML string that the block classifier walks afterwards.
func convertDocx(data []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open zip: %w", err)
	}

	rels := readDocxRels(r)

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("word/document.xml not found in archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	return docxToHTML(rc, rels)
}

// readDocxRels maps relationship ids to their targets so image references
// can be resolved to media paths. Missing rels are not an error.
func readDocxRels(r *zip.Reader) map[string]string {
	rels := make(map[string]string)
	for _, f := range r.File {
		if f.Name != "word/_rels/document.xml.rels" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return rels
		}
		defer rc.Close()

		var doc struct {
			Relationships []struct {
				ID     string `xml:"Id,attr"`
				Target string `xml:"Target,attr"`
			} `xml:"Relationship"`
		}
		if err := xml.NewDecoder(rc).Decode(&doc); err != nil {
			return rels
		}
		for _, rel := range doc.Relationships {
			rels[rel.ID] = rel.Target
		}
	}
	return rels
}

// docxToHTML walks the WordprocessingML token stream and emits flat HTML.
// Heading styles map to h1..h6, numbered/bulleted paragraphs are grouped
// into lists, tables become table markup, and embedded images resolve
// through the relationship map.
func docxToHTML(rc io.Reader, rels map[string]string) (string, error) {
	decoder := xml.NewDecoder(rc)

	var out bytes.Buffer
	var text strings.Builder
	var pendingImages []string

	inParagraph := false
	style := ""
	listItem := false
	inList := false

	// Table state. Cells hold their text; rows close on w:tr end.
	tableDepth := 0
	var table bytes.Buffer
	var cell strings.Builder

	closeList := func() {
		if inList {
			out.WriteString("</ul>")
			inList = false
		}
	}

	flushParagraph := func() {
		t := strings.TrimSpace(text.String())
		text.Reset()
		if t != "" {
			switch {
			case listItem:
				if !inList {
					out.WriteString("<ul>")
					inList = true
				}
				out.WriteString("<li>" + html.EscapeString(t) + "</li>")
			default:
				closeList()
				if level := docxHeadingLevel(style); level > 0 {
					fmt.Fprintf(&out, "<h%d>%s</h%d>", level, html.EscapeString(t), level)
				} else {
					out.WriteString("<p>" + html.EscapeString(t) + "</p>")
				}
			}
		}
		// Images referenced inside the paragraph come out as standalone
		// elements so the classifier sees one element per block.
		for _, src := range pendingImages {
			closeList()
			out.WriteString(`<img src="` + html.EscapeString(src) + `"/>`)
		}
		pendingImages = nil
	}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
				if tableDepth == 1 {
					flushParagraph()
					closeList()
					table.Reset()
					table.WriteString("<table>")
				}
			case "tr":
				if tableDepth > 0 {
					table.WriteString("<tr>")
				}
			case "tc":
				if tableDepth > 0 {
					cell.Reset()
				}
			case "p":
				if tableDepth == 0 {
					inParagraph = true
					style = ""
					listItem = false
					text.Reset()
				}
			case "pStyle":
				for _, attr := range t.Attr {
					if attr.Name.Local == "val" {
						style = attr.Value
					}
				}
			case "numPr":
				listItem = true
			case "blip":
				for _, attr := range t.Attr {
					if attr.Name.Local == "embed" {
						if target, ok := rels[attr.Value]; ok {
							pendingImages = append(pendingImages, path.Join("media", path.Base(target)))
						}
					}
				}
			}

		case xml.CharData:
			if tableDepth > 0 {
				cell.Write(t)
			} else if inParagraph {
				text.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				if tableDepth > 0 {
					tableDepth--
					if tableDepth == 0 {
						table.WriteString("</table>")
						out.Write(table.Bytes())
					}
				}
			case "tr":
				if tableDepth > 0 {
					table.WriteString("</tr>")
				}
			case "tc":
				if tableDepth > 0 {
					table.WriteString("<td>" + html.EscapeString(strings.TrimSpace(cell.String())) + "</td>")
				}
			case "p":
				if tableDepth == 0 && inParagraph {
					inParagraph = false
					flushParagraph()
				}
			}
		}
	}
	closeList()

	return "<html><body>" + out.String() + "</body></html>", nil
}

// docxHeadingLevel extracts the heading level from a paragraph style name:
// "Heading1" → 1, "Title" → 1, "Subtitle" → 2.
func docxHeadingLevel(style string) int {
	lower := strings.ToLower(style)
	if lower == "title" {
		return 1
	}
	if lower == "subtitle" {
		return 2
	}
	for _, prefix := range []string{"heading", "titre", "überschrift"} {
		if strings.HasPrefix(lower, prefix) {
			rest := lower[len(prefix):]
			if len(rest) == 1 && rest[0] >= '1' && rest[0] <= '6' {
				return int(rest[0] - '0')
			}
		}
	}
	return 0
}
