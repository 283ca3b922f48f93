package sitepress

import (
	"encoding/json"
	"strings"
)

// PostStatus is the publication state of a blog post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
	StatusArchived  PostStatus = "archived"
)

// BlogPost is the persisted blog record. Content always holds renderable
// markup; Structure additionally holds the serialized visual-editor document
// when the post was authored with the block editor.
type BlogPost struct {
	Slug             string
	Title            string
	Content          string
	Excerpt          string
	Category         string
	Status           PostStatus
	Featured         bool
	FeaturedImageURL string
	CreatedAt        string // YYYY-MM-DD
	Structure        string // editor.Document JSON, "" for flat posts
	Link             string
}

// Published reports whether the post is publicly visible.
func (p BlogPost) Published() bool { return p.Status == StatusPublished }

// SectionType enumerates the page-composition archetypes.
type SectionType string

const (
	SectionHero     SectionType = "hero"
	SectionFeature  SectionType = "feature"
	SectionStats    SectionType = "stats"
	SectionCTA      SectionType = "cta"
	SectionProduct  SectionType = "product"
	SectionSolution SectionType = "solution"
	SectionImage    SectionType = "image"
	SectionText     SectionType = "text"
)

// SectionTypes lists every archetype for admin forms.
var SectionTypes = []SectionType{
	SectionHero, SectionFeature, SectionStats, SectionCTA,
	SectionProduct, SectionSolution, SectionImage, SectionText,
}

// ContentSection is a database-backed, page-scoped unit used to compose
// marketing pages. DisplayOrder is a total order within a PagePath scope,
// not globally.
type ContentSection struct {
	ID           int64
	SectionKey   string
	Title        string
	Content      string
	ImageURL     string
	Data         SectionData
	DataJSON     string // raw data column, kept for admin round-trips
	SectionType  SectionType
	PagePath     string
	DisplayOrder int
	Visible      bool
}

// Button is a call-to-action entry on hero and cta sections.
type Button struct {
	Text  string `json:"text"`
	Link  string `json:"link"`
	Style string `json:"style,omitempty"`
}

// Feature is one entry of a feature/product/solution list. Product and
// solution sections may store entries as bare strings; decoding accepts
// both shapes.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

func (f *Feature) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f.Title = s
		f.Description = ""
		return nil
	}
	type alias Feature
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*f = Feature(a)
	return nil
}

// Stat is one entry of a stats section.
type Stat struct {
	Number string `json:"number"`
	Label  string `json:"label"`
}

// SectionData is the decoded form of a section's open data column. Only the
// variant matching the section type is populated; malformed JSON decodes to
// the zero value so rendering degrades to title/content/image.
type SectionData struct {
	Buttons  []Button  `json:"buttons,omitempty"`
	Features []Feature `json:"features,omitempty"`
	Stats    []Stat    `json:"stats,omitempty"`
}

// DecodeSectionData decodes the raw data JSON for a given section type,
// keeping only the fields valid for that type.
func DecodeSectionData(t SectionType, raw string) SectionData {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SectionData{}
	}
	var d SectionData
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return SectionData{}
	}
	switch t {
	case SectionHero, SectionCTA:
		return SectionData{Buttons: d.Buttons}
	case SectionFeature, SectionProduct, SectionSolution:
		return SectionData{Features: d.Features}
	case SectionStats:
		return SectionData{Stats: d.Stats}
	default:
		return SectionData{}
	}
}

// Image is the metadata record of one uploaded asset.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the head.
type PageMeta struct {
	Title       string
	Description string
	URL         string
	OGType      string // "website" or "article"
}
