package editor

import "github.com/google/uuid"

// Editor owns the in-memory block sequence of one authoring session. All
// operations are synchronous; nothing is persisted until the caller
// serializes the document with Save.
type Editor struct {
	blocks []VisualBlock
}

// New returns an empty editor.
func New() *Editor {
	return &Editor{}
}

// Load replaces the editor state with the blocks of a stored document.
func Load(doc *Document) *Editor {
	e := &Editor{blocks: make([]VisualBlock, len(doc.Blocks))}
	copy(e.blocks, doc.Blocks)
	return e
}

// CreateBlock returns a new block of the given archetype with a fresh id and
// the archetype's default payload. The block is not added to the sequence.
func CreateBlock(t BlockType) VisualBlock {
	return VisualBlock{
		ID:      uuid.NewString(),
		Type:    t,
		Content: defaultContent(t),
	}
}

// AddBlock appends a freshly created block to the end of the sequence and
// returns it.
func (e *Editor) AddBlock(t BlockType) VisualBlock {
	b := CreateBlock(t)
	e.blocks = append(e.blocks, b)
	return b
}

// Blocks returns a copy of the current sequence in render order.
func (e *Editor) Blocks() []VisualBlock {
	out := make([]VisualBlock, len(e.blocks))
	copy(out, e.blocks)
	return out
}

// Len returns the number of blocks.
func (e *Editor) Len() int { return len(e.blocks) }

// Reorder removes the block at from and reinserts it at to. This is the sole
// mechanism for establishing render order.
func (e *Editor) Reorder(from, to int) bool {
	if from < 0 || from >= len(e.blocks) || to < 0 || to >= len(e.blocks) {
		return false
	}
	if from == to {
		return true
	}
	b := e.blocks[from]
	e.blocks = append(e.blocks[:from], e.blocks[from+1:]...)
	rest := append([]VisualBlock{b}, e.blocks[to:]...)
	e.blocks = append(e.blocks[:to:to], rest...)
	return true
}

// UpdateBlock merges the patch into the identified block's content, leaving
// unspecified fields untouched. Unknown ids are a no-op.
func (e *Editor) UpdateBlock(id string, patch ContentPatch) bool {
	for i := range e.blocks {
		if e.blocks[i].ID == id {
			patch.apply(&e.blocks[i].Content)
			e.blocks[i].normalize()
			return true
		}
	}
	return false
}

// DeleteBlock removes the block with the given id. Unknown ids are a no-op.
func (e *Editor) DeleteBlock(id string) bool {
	for i := range e.blocks {
		if e.blocks[i].ID == id {
			e.blocks = append(e.blocks[:i], e.blocks[i+1:]...)
			return true
		}
	}
	return false
}

// Save assembles the full document for persistence.
func (e *Editor) Save(title, featuredImage, author, date string) *Document {
	return &Document{
		Title:         title,
		FeaturedImage: featuredImage,
		Author:        author,
		Date:          date,
		Blocks:        e.Blocks(),
	}
}

// ContentPatch carries the fields of a partial content update. Nil fields
// are left untouched by apply.
type ContentPatch struct {
	Text       *string    `json:"text,omitempty"`
	ImageURL   *string    `json:"imageUrl,omitempty"`
	Caption    *string    `json:"caption,omitempty"`
	VideoURL   *string    `json:"videoUrl,omitempty"`
	Width      *int       `json:"width,omitempty"`
	Alignment  *string    `json:"alignment,omitempty"`
	HasBorder  *bool      `json:"hasBorder,omitempty"`
	HasShadow  *bool      `json:"hasShadow,omitempty"`
	FontSize   *string    `json:"fontSize,omitempty"`
	FontWeight *string    `json:"fontWeight,omitempty"`
	TableData  *TableData `json:"tableData,omitempty"`
	ChartData  *ChartData `json:"chartData,omitempty"`
}

func (p ContentPatch) apply(c *BlockContent) {
	if p.Text != nil {
		c.Text = *p.Text
	}
	if p.ImageURL != nil {
		c.ImageURL = *p.ImageURL
	}
	if p.Caption != nil {
		c.Caption = *p.Caption
	}
	if p.VideoURL != nil {
		c.VideoURL = *p.VideoURL
	}
	if p.Width != nil {
		c.Width = *p.Width
	}
	if p.Alignment != nil {
		c.Alignment = *p.Alignment
	}
	if p.HasBorder != nil {
		c.HasBorder = *p.HasBorder
	}
	if p.HasShadow != nil {
		c.HasShadow = *p.HasShadow
	}
	if p.FontSize != nil {
		c.FontSize = *p.FontSize
	}
	if p.FontWeight != nil {
		c.FontWeight = *p.FontWeight
	}
	if p.TableData != nil {
		c.TableData = p.TableData
	}
	if p.ChartData != nil {
		c.ChartData = p.ChartData
	}
}
