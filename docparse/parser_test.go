package docparse

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func buildDocx(t *testing.T, documentXML, rels string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create document.xml: %v", err)
	}
	if _, err := f.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if rels != "" {
		f, err := w.Create("word/_rels/document.xml.rels")
		if err != nil {
			t.Fatalf("create rels: %v", err)
		}
		if _, err := f.Write([]byte(rels)); err != nil {
			t.Fatalf("write rels: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

const docxHeader = `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><w:body>`

const docxFooter = `</w:body></w:document>`

func TestParseTextHeuristics(t *testing.T) {
	input := "My Document Title\nA Short Introduction\nThis is the first paragraph of the document and it ends with a period."

	doc, err := NewParser(nil).Parse([]byte(input), KindText)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if doc.Title != "My Document Title" {
		t.Errorf("Title = %q, want %q", doc.Title, "My Document Title")
	}
	want := "<h1>My Document Title</h1>" +
		"<h2>A Short Introduction</h2>" +
		"<p>This is the first paragraph of the document and it ends with a period.</p>"
	if doc.Content != want {
		t.Errorf("Content = %q, want %q", doc.Content, want)
	}
	if doc.Excerpt != "This is the first paragraph of the document and it ends with a period." {
		t.Errorf("Excerpt = %q", doc.Excerpt)
	}
}

func TestParseTextBullets(t *testing.T) {
	input := "Checklist\n• First thing\n- Second thing\n3. Third thing"

	doc, err := NewParser(nil).Parse([]byte(input), KindText)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Each bulleted line becomes its own single-item list.
	want := "<h1>Checklist</h1>" +
		"<ul><li>First thing</li></ul>" +
		"<ul><li>Second thing</li></ul>" +
		"<ul><li>Third thing</li></ul>"
	if doc.Content != want {
		t.Errorf("Content = %q, want %q", doc.Content, want)
	}
}

func TestParseTextExcerptTruncation(t *testing.T) {
	para := strings.Repeat("a", 199) + "."
	input := "Title\n" + para

	doc, err := NewParser(nil).Parse([]byte(input), KindText)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := strings.Repeat("a", 157) + "..."
	if doc.Excerpt != want {
		t.Errorf("Excerpt = %q, want %q", doc.Excerpt, want)
	}
	if n := utf8.RuneCountInString(doc.Excerpt); n != 160 {
		t.Errorf("excerpt length = %d runes, want 160", n)
	}
}

func TestParseEmptyInputFallsBackToDefaultTitle(t *testing.T) {
	doc, err := NewParser(nil).Parse(nil, KindText)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", doc.Title, DefaultTitle)
	}
	if doc.Content != "" {
		t.Errorf("Content = %q, want empty", doc.Content)
	}
}

func TestParseUnknownKind(t *testing.T) {
	_, err := NewParser(nil).Parse([]byte("x"), SourceKind("spreadsheet"))
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if pe.Kind != SourceKind("spreadsheet") {
		t.Errorf("ParseError.Kind = %q", pe.Kind)
	}
}

func TestParseWordRejectsGarbage(t *testing.T) {
	_, err := NewParser(nil).Parse([]byte("not a zip archive"), KindWord)
	if err == nil {
		t.Fatal("expected error for non-zip input")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
}

func TestParseWordHeadingsAndLists(t *testing.T) {
	data := buildDocx(t, docxHeader+
		`<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Quarterly Update</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>Welcome to the update.</w:t></w:r></w:p>`+
		`<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/></w:numPr></w:pPr><w:r><w:t>First item</w:t></w:r></w:p>`+
		`<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/></w:numPr></w:pPr><w:r><w:t>Second item</w:t></w:r></w:p>`+
		docxFooter, "")

	doc, err := NewParser(nil).Parse(data, KindWord)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Title != "Quarterly Update" {
		t.Errorf("Title = %q, want %q", doc.Title, "Quarterly Update")
	}
	for _, fragment := range []string{
		"<h1>Quarterly Update</h1>",
		"<p>Welcome to the update.</p>",
		"<ul><li>First item</li><li>Second item</li></ul>",
	} {
		if !strings.Contains(doc.Content, fragment) {
			t.Errorf("Content missing %q\nContent = %q", fragment, doc.Content)
		}
	}
	if doc.Excerpt != "Welcome to the update." {
		t.Errorf("Excerpt = %q", doc.Excerpt)
	}
}

func TestParseWordImageAlternation(t *testing.T) {
	rels := `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/first-photo.png"/>` +
		`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/second-photo.png"/>` +
		`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/third-photo.png"/>` +
		`</Relationships>`
	data := buildDocx(t, docxHeader+
		`<w:p><w:pPr><w:pStyle w:val="Title"/></w:pPr><w:r><w:t>Gallery</w:t></w:r></w:p>`+
		`<w:p><w:r><w:drawing><a:blip r:embed="rId1"/></w:drawing></w:r></w:p>`+
		`<w:p><w:r><w:drawing><a:blip r:embed="rId2"/></w:drawing></w:r></w:p>`+
		`<w:p><w:r><w:drawing><a:blip r:embed="rId3"/></w:drawing></w:r></w:p>`+
		docxFooter, rels)

	doc, err := NewParser(nil).Parse(data, KindWord)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.Images) != 3 {
		t.Fatalf("Images = %v, want 3 entries", doc.Images)
	}
	if doc.Images[0] != "media/first-photo.png" {
		t.Errorf("Images[0] = %q", doc.Images[0])
	}

	// Successive images alternate left, right, left.
	var aligns []string
	rest := doc.Content
	for {
		idx := strings.Index(rest, `doc-image align-`)
		if idx < 0 {
			break
		}
		rest = rest[idx+len(`doc-image align-`):]
		end := strings.IndexByte(rest, '"')
		aligns = append(aligns, rest[:end])
	}
	want := []string{"left", "right", "left"}
	if len(aligns) != len(want) {
		t.Fatalf("aligns = %v, want %v", aligns, want)
	}
	for i := range want {
		if aligns[i] != want[i] {
			t.Errorf("aligns[%d] = %q, want %q", i, aligns[i], want[i])
		}
	}
	if !strings.Contains(doc.Content, "<figcaption>first photo</figcaption>") {
		t.Errorf("caption not derived from filename: %q", doc.Content)
	}
}

func TestParseWordTable(t *testing.T) {
	data := buildDocx(t, docxHeader+
		`<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Pricing</w:t></w:r></w:p>`+
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>Plan</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Price</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`+
		docxFooter, "")

	doc, err := NewParser(nil).Parse(data, KindWord)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	for _, fragment := range []string{"<table>", "<td>Plan</td>", "<td>Price</td>"} {
		if !strings.Contains(doc.Content, fragment) {
			t.Errorf("Content missing %q\nContent = %q", fragment, doc.Content)
		}
	}
}

func TestParseIsDeterministic(t *testing.T) {
	input := []byte("Title\nShort Heading\nA paragraph that closes with a period.")
	p := NewParser(nil)

	first, err := p.Parse(input, KindText)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	second, err := p.Parse(input, KindText)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if first.Content != second.Content || first.Title != second.Title || first.Excerpt != second.Excerpt {
		t.Error("repeated parses of the same buffer differ")
	}
}
