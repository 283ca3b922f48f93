package views

import (
	"bytes"

	"github.com/a-h/templ"

	"github.com/norlind/sitepress"
)

// Section renders one content section according to its archetype. Unknown
// types fall back to the generic title/content/image layout so new archetypes
// degrade instead of disappearing.
func Section(cs sitepress.ContentSection) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writeSection(buf, cs)
	})
}

func writeSection(buf *bytes.Buffer, cs sitepress.ContentSection) {
	switch cs.SectionType {
	case sitepress.SectionHero:
		writeHero(buf, cs)
	case sitepress.SectionFeature:
		writeFeatureList(buf, cs, "section-feature")
	case sitepress.SectionStats:
		writeStats(buf, cs)
	case sitepress.SectionCTA:
		writeCTA(buf, cs)
	case sitepress.SectionProduct:
		writeShowcase(buf, cs, "section-product")
	case sitepress.SectionSolution:
		writeShowcase(buf, cs, "section-solution")
	case sitepress.SectionImage:
		writeImageSection(buf, cs)
	case sitepress.SectionText:
		writeTextSection(buf, cs)
	default:
		writeGeneric(buf, cs)
	}
}

func openSection(buf *bytes.Buffer, cs sitepress.ContentSection, class string) {
	buf.WriteString(`<section class="` + class + `" data-section-key="` + esc(cs.SectionKey) + `">`)
}

func writeButtons(buf *bytes.Buffer, buttons []sitepress.Button) {
	if len(buttons) == 0 {
		return
	}
	buf.WriteString(`<div class="section-buttons">`)
	for _, b := range buttons {
		style := b.Style
		if style == "" {
			style = "primary"
		}
		buf.WriteString(`<a class="btn btn-` + esc(style) + `" href="` + esc(b.Link) + `">` + esc(b.Text) + `</a>`)
	}
	buf.WriteString("</div>")
}

func writeHero(buf *bytes.Buffer, cs sitepress.ContentSection) {
	openSection(buf, cs, "section-hero")
	buf.WriteString("<h1>" + esc(cs.Title) + "</h1>")
	if cs.Content != "" {
		buf.WriteString(`<p class="hero-lead">` + esc(cs.Content) + "</p>")
	}
	writeButtons(buf, cs.Data.Buttons)
	if cs.ImageURL != "" {
		buf.WriteString(`<img class="hero-image" src="` + esc(cs.ImageURL) + `" alt="` + esc(cs.Title) + `">`)
	}
	buf.WriteString("</section>")
}

func writeFeatureList(buf *bytes.Buffer, cs sitepress.ContentSection, class string) {
	openSection(buf, cs, class)
	if cs.Title != "" {
		buf.WriteString("<h2>" + esc(cs.Title) + "</h2>")
	}
	if cs.Content != "" {
		buf.WriteString(`<p class="section-lead">` + esc(cs.Content) + "</p>")
	}
	if len(cs.Data.Features) > 0 {
		buf.WriteString(`<ul class="feature-grid">`)
		for _, f := range cs.Data.Features {
			buf.WriteString("<li><h3>" + esc(f.Title) + "</h3>")
			if f.Description != "" {
				buf.WriteString("<p>" + esc(f.Description) + "</p>")
			}
			buf.WriteString("</li>")
		}
		buf.WriteString("</ul>")
	}
	buf.WriteString("</section>")
}

func writeStats(buf *bytes.Buffer, cs sitepress.ContentSection) {
	openSection(buf, cs, "section-stats")
	if cs.Title != "" {
		buf.WriteString("<h2>" + esc(cs.Title) + "</h2>")
	}
	if len(cs.Data.Stats) > 0 {
		buf.WriteString(`<dl class="stats-grid">`)
		for _, s := range cs.Data.Stats {
			buf.WriteString("<div><dt>" + esc(s.Number) + "</dt><dd>" + esc(s.Label) + "</dd></div>")
		}
		buf.WriteString("</dl>")
	}
	buf.WriteString("</section>")
}

func writeCTA(buf *bytes.Buffer, cs sitepress.ContentSection) {
	openSection(buf, cs, "section-cta")
	buf.WriteString("<h2>" + esc(cs.Title) + "</h2>")
	if cs.Content != "" {
		buf.WriteString("<p>" + esc(cs.Content) + "</p>")
	}
	writeButtons(buf, cs.Data.Buttons)
	buf.WriteString("</section>")
}

// writeShowcase renders product and solution sections: image beside a
// feature list.
func writeShowcase(buf *bytes.Buffer, cs sitepress.ContentSection, class string) {
	openSection(buf, cs, class)
	if cs.ImageURL != "" {
		buf.WriteString(`<img class="showcase-image" src="` + esc(cs.ImageURL) + `" alt="` + esc(cs.Title) + `">`)
	}
	buf.WriteString(`<div class="showcase-body">`)
	if cs.Title != "" {
		buf.WriteString("<h2>" + esc(cs.Title) + "</h2>")
	}
	if cs.Content != "" {
		buf.WriteString("<p>" + esc(cs.Content) + "</p>")
	}
	if len(cs.Data.Features) > 0 {
		buf.WriteString(`<ul class="showcase-features">`)
		for _, f := range cs.Data.Features {
			buf.WriteString("<li>" + esc(f.Title))
			if f.Description != "" {
				buf.WriteString(`<span class="feature-desc">` + esc(f.Description) + "</span>")
			}
			buf.WriteString("</li>")
		}
		buf.WriteString("</ul>")
	}
	buf.WriteString("</div></section>")
}

func writeImageSection(buf *bytes.Buffer, cs sitepress.ContentSection) {
	if cs.ImageURL == "" {
		return
	}
	openSection(buf, cs, "section-image")
	buf.WriteString(`<figure><img src="` + esc(cs.ImageURL) + `" alt="` + esc(cs.Title) + `">`)
	if cs.Title != "" {
		buf.WriteString("<figcaption>" + esc(cs.Title) + "</figcaption>")
	}
	buf.WriteString("</figure></section>")
}

func writeTextSection(buf *bytes.Buffer, cs sitepress.ContentSection) {
	openSection(buf, cs, "section-text")
	if cs.Title != "" {
		buf.WriteString("<h2>" + esc(cs.Title) + "</h2>")
	}
	// Content of text sections is admin-authored HTML.
	buf.WriteString(`<div class="section-body">` + cs.Content + "</div>")
	buf.WriteString("</section>")
}

func writeGeneric(buf *bytes.Buffer, cs sitepress.ContentSection) {
	openSection(buf, cs, "section-generic")
	if cs.Title != "" {
		buf.WriteString("<h2>" + esc(cs.Title) + "</h2>")
	}
	if cs.Content != "" {
		buf.WriteString("<p>" + esc(cs.Content) + "</p>")
	}
	if cs.ImageURL != "" {
		buf.WriteString(`<img src="` + esc(cs.ImageURL) + `" alt="` + esc(cs.Title) + `">`)
	}
	buf.WriteString("</section>")
}
