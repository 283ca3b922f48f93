package editor

// placeholderImage is shown until the author picks an upload.
const placeholderImage = "/public/placeholder.svg"

// defaultContent returns the archetype-specific starter payload for a fresh
// block.
func defaultContent(t BlockType) BlockContent {
	c := BlockContent{Width: 100, Alignment: "center"}
	switch t {
	case TypeImageLeft, TypeImageRight:
		c.ImageURL = placeholderImage
		c.Text = "Write something about this image..."
	case TypeImageFull:
		c.ImageURL = placeholderImage
	case TypeTextFull:
		c.Text = "Start writing..."
		c.FontSize = "base"
		c.FontWeight = "normal"
	case TypeImageCaption:
		c.ImageURL = placeholderImage
		c.Caption = "Image caption"
	case TypeVideo:
		c.VideoURL = ""
	case TypeTable:
		c.TableData = &TableData{
			Headers: []string{"Column 1", "Column 2", "Column 3"},
			Rows: [][]string{
				{"", "", ""},
				{"", "", ""},
			},
		}
	case TypeChart:
		c.ChartData = &ChartData{
			Title:  "Chart title",
			Type:   "bar",
			Labels: []string{"A", "B", "C"},
		}
	}
	return c
}
