package editor

import (
	"context"
	"strings"
	"testing"
)

func blockIDs(blocks []VisualBlock) []string {
	ids := make([]string, len(blocks))
	for i, b := range blocks {
		ids[i] = b.ID
	}
	return ids
}

func TestAddBlockAssignsIDAndDefaults(t *testing.T) {
	e := New()
	b := e.AddBlock(TypeTable)
	if b.ID == "" {
		t.Fatal("expected a generated id")
	}
	if b.Content.TableData == nil {
		t.Fatal("table block should carry default table data")
	}
	if len(b.Content.TableData.Headers) != 3 {
		t.Errorf("default headers = %d, want 3", len(b.Content.TableData.Headers))
	}
	for i, row := range b.Content.TableData.Rows {
		if len(row) != len(b.Content.TableData.Headers) {
			t.Errorf("row %d length = %d, want %d", i, len(row), len(b.Content.TableData.Headers))
		}
	}
	if b.Content.Width != 100 {
		t.Errorf("default width = %d, want 100", b.Content.Width)
	}
	if b.Content.Alignment != "center" {
		t.Errorf("default alignment = %q, want center", b.Content.Alignment)
	}
}

func TestReorderMovesBlock(t *testing.T) {
	e := New()
	a := e.AddBlock(TypeTextFull)
	b := e.AddBlock(TypeImageFull)
	c := e.AddBlock(TypeVideo)

	if !e.Reorder(0, 2) {
		t.Fatal("Reorder(0, 2) returned false")
	}
	got := blockIDs(e.Blocks())
	want := []string{b.ID, c.ID, a.ID}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after Reorder(0,2): order = %v, want %v", got, want)
		}
	}

	// The inverse move restores the original order.
	if !e.Reorder(2, 0) {
		t.Fatal("Reorder(2, 0) returned false")
	}
	got = blockIDs(e.Blocks())
	want = []string{a.ID, b.ID, c.ID}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after inverse: order = %v, want %v", got, want)
		}
	}
}

func TestReorderOutOfRange(t *testing.T) {
	e := New()
	e.AddBlock(TypeTextFull)
	if e.Reorder(0, 1) {
		t.Error("Reorder beyond length should return false")
	}
	if e.Reorder(-1, 0) {
		t.Error("Reorder with negative index should return false")
	}
	if !e.Reorder(0, 0) {
		t.Error("Reorder to same position should succeed")
	}
}

func TestUpdateBlockMergesPatch(t *testing.T) {
	e := New()
	b := e.AddBlock(TypeImageLeft)

	text := "Updated body"
	width := 50
	if !e.UpdateBlock(b.ID, ContentPatch{Text: &text, Width: &width}) {
		t.Fatal("UpdateBlock returned false for known id")
	}
	got := e.Blocks()[0].Content
	if got.Text != text {
		t.Errorf("Text = %q, want %q", got.Text, text)
	}
	if got.Width != 50 {
		t.Errorf("Width = %d, want 50", got.Width)
	}
	// Unpatched fields are untouched.
	if got.ImageURL != b.Content.ImageURL {
		t.Errorf("ImageURL changed: %q -> %q", b.Content.ImageURL, got.ImageURL)
	}

	if e.UpdateBlock("no-such-id", ContentPatch{Text: &text}) {
		t.Error("UpdateBlock should be a no-op for unknown ids")
	}
}

func TestUpdateBlockDropsInvalidVariant(t *testing.T) {
	e := New()
	b := e.AddBlock(TypeTextFull)

	// A table payload on a text block is stripped on normalize.
	e.UpdateBlock(b.ID, ContentPatch{TableData: &TableData{Headers: []string{"x"}}})
	if e.Blocks()[0].Content.TableData != nil {
		t.Error("tableData should not survive on a non-table block")
	}
}

func TestDeleteBlock(t *testing.T) {
	e := New()
	a := e.AddBlock(TypeTextFull)
	b := e.AddBlock(TypeVideo)

	if !e.DeleteBlock(a.ID) {
		t.Fatal("DeleteBlock returned false for known id")
	}
	if e.Len() != 1 || e.Blocks()[0].ID != b.ID {
		t.Fatalf("unexpected state after delete: %v", blockIDs(e.Blocks()))
	}
	if e.DeleteBlock(a.ID) {
		t.Error("deleting the same id twice should be a no-op")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	e := New()
	e.AddBlock(TypeImageCaption)
	e.AddBlock(TypeChart)

	doc := e.Save("Launch Post", "/public/uploads/hero.jpg", "Dana", "2026-08-30")
	data, err := MarshalDocument(doc)
	if err != nil {
		t.Fatalf("MarshalDocument failed: %v", err)
	}
	parsed, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if parsed.Title != "Launch Post" || parsed.Author != "Dana" {
		t.Errorf("round trip lost metadata: %+v", parsed)
	}
	reloaded := Load(parsed)
	if reloaded.Len() != 2 {
		t.Fatalf("Len = %d, want 2", reloaded.Len())
	}
	if reloaded.Blocks()[1].Type != TypeChart {
		t.Errorf("block order lost on round trip")
	}
}

func TestParseDocumentNormalizes(t *testing.T) {
	// text_full block smuggling chart data and an out-of-range width.
	raw := `{"title":"t","blocks":[{"id":"b1","type":"text_full","content":{"text":"hi","width":250,"chartData":{"title":"x","type":"bar","labels":["a"]}}}]}`
	doc, err := ParseDocument([]byte(raw))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	c := doc.Blocks[0].Content
	if c.ChartData != nil {
		t.Error("chartData should be dropped from non-chart blocks")
	}
	if c.Width != 100 {
		t.Errorf("Width = %d, want clamped default 100", c.Width)
	}
	if c.Alignment != "center" {
		t.Errorf("Alignment = %q, want center", c.Alignment)
	}
}

func TestParseDocumentRejectsMalformedJSON(t *testing.T) {
	if _, err := ParseDocument([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed document")
	}
}

func renderToString(t *testing.T, b VisualBlock) string {
	t.Helper()
	var sb strings.Builder
	if err := RenderBlock(b).Render(context.Background(), &sb); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return sb.String()
}

func TestRenderBlockTypes(t *testing.T) {
	tests := []struct {
		name  string
		block VisualBlock
		want  []string
	}{
		{
			name: "image left",
			block: VisualBlock{Type: TypeImageLeft, Content: BlockContent{
				ImageURL: "/public/uploads/a.jpg", Text: "Beside the image",
				Width: 80, Alignment: "left", HasBorder: true,
			}},
			want: []string{"block-split", `align-left`, "bordered", "width:80%", "Beside the image"},
		},
		{
			name: "caption",
			block: VisualBlock{Type: TypeImageCaption, Content: BlockContent{
				ImageURL: "https://example.com/a.png", Caption: "A caption", Width: 100, Alignment: "center",
			}},
			want: []string{"<figcaption>A caption</figcaption>"},
		},
		{
			name: "table",
			block: VisualBlock{Type: TypeTable, Content: BlockContent{
				TableData: &TableData{Headers: []string{"H1", "H2"}, Rows: [][]string{{"a", "b"}}},
			}},
			want: []string{"<th>H1</th>", "<td>b</td>"},
		},
		{
			name: "chart placeholder",
			block: VisualBlock{Type: TypeChart, Content: BlockContent{
				ChartData: &ChartData{Title: "Revenue", Type: "bar", Labels: []string{"Q1"}},
			}},
			want: []string{`data-chart-type="bar"`, "<h4>Revenue</h4>", "<li>Q1</li>"},
		},
		{
			name:  "unknown type falls back to text",
			block: VisualBlock{Type: BlockType("mystery"), Content: BlockContent{Text: "fallback body"}},
			want:  []string{"fallback body"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderToString(t, tt.block)
			for _, fragment := range tt.want {
				if !strings.Contains(out, fragment) {
					t.Errorf("output missing %q\noutput = %q", fragment, out)
				}
			}
		})
	}
}

func TestRenderSkipsUnsafeURLs(t *testing.T) {
	out := renderToString(t, VisualBlock{Type: TypeVideo, Content: BlockContent{
		VideoURL: "javascript:alert(1)",
	}})
	if strings.Contains(out, "iframe") {
		t.Errorf("unsafe video URL should not render an iframe: %q", out)
	}
}

func TestRenderSanitizesText(t *testing.T) {
	out := renderToString(t, VisualBlock{Type: TypeTextFull, Content: BlockContent{
		Text: `<p>ok</p><script>alert(1)</script>`,
	}})
	if strings.Contains(out, "<script>") {
		t.Errorf("script tag survived sanitization: %q", out)
	}
	if !strings.Contains(out, "<p>ok</p>") {
		t.Errorf("benign markup was stripped: %q", out)
	}
}
